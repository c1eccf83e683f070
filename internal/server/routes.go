package server

import (
	"sisyphus/internal/handlers"

	"github.com/gin-gonic/gin"
)

type routeHandlers struct {
	blog  *handlers.BlogHandler
	admin *handlers.AdminHandler
	auth  *handlers.AuthHandler
	feed  *handlers.FeedHandler
}

func registerRoutes(r *gin.Engine, h routeHandlers) {
	// Public pages
	r.GET("/", h.blog.Index)
	r.GET("/categories", h.blog.Categories)
	r.GET("/posts/:slug", h.blog.ShowPost)
	r.GET("/posts/:slug/comments", h.blog.ListComments)
	r.POST("/posts/:slug/comments", h.blog.AddComment)
	r.GET("/feed.xml", h.feed.RSS)
	r.GET("/sitemap.xml", h.feed.Sitemap)

	// Auth
	r.GET("/login", h.auth.ShowLoginPage)
	r.POST("/login", h.auth.Login)
	r.GET("/logout", h.auth.Logout)

	// Admin form posts answer 403 to anonymous requests.
	adminOnly := r.Group("/posts/:slug", handlers.AdminOnly())
	{
		adminOnly.POST("/delete", h.admin.DeletePost)
		adminOnly.POST("/comments/:id/delete", h.blog.DeleteComment)
	}

	// Editor pages redirect anonymous requests to /login.
	editor := r.Group("/", handlers.AuthMiddleware())
	{
		editor.GET("/new", h.admin.NewPost)
		editor.POST("/new", h.admin.CreatePost)
		editor.GET("/edit/:slug", h.admin.EditPost)
		editor.POST("/edit/:slug", h.admin.UpdatePost)
	}

	r.NoRoute(h.blog.NotFound)
}
