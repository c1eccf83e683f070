package handlers

import (
	"net/http"
	"net/url"

	"sisyphus/internal/models"
	"sisyphus/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	postService *services.PostService
}

func NewAdminHandler(postService *services.PostService) *AdminHandler {
	return &AdminHandler{postService: postService}
}

func (h *AdminHandler) NewPost(c *gin.Context) {
	renderEditor(c, http.StatusOK, models.PostInput{}, "")
}

func (h *AdminHandler) CreatePost(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid form data")
		return
	}
	in.OriginalSlug = ""

	post, err := h.postService.CreatePost(in)
	if err != nil {
		h.saveFailed(c, in, err)
		return
	}
	h.saved(c, http.StatusCreated, post)
}

// EditPost shows the editor prefilled from the stored post.
func (h *AdminHandler) EditPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	renderEditor(c, http.StatusOK, models.FormFromPost(post), "")
}

func (h *AdminHandler) UpdatePost(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBind(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid form data")
		return
	}
	// The post being edited is named by the URL, not the form.
	in.OriginalSlug = c.Param("slug")

	post, err := h.postService.UpdatePost(in)
	if err != nil {
		h.saveFailed(c, in, err)
		return
	}
	h.saved(c, http.StatusOK, post)
}

func (h *AdminHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Param("slug")); err != nil {
		handleError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "post deleted"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AdminHandler) saved(c *gin.Context, status int, post *models.Post) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"status": "success", "slug": post.Slug})
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+url.PathEscape(post.Slug))
}

// saveFailed re-renders the submitted form with the validation message.
func (h *AdminHandler) saveFailed(c *gin.Context, in models.PostInput, err error) {
	if isValidationError(err) && !wantsJSON(c) {
		renderEditor(c, http.StatusBadRequest, in, err.Error())
		return
	}
	handleError(c, err)
}

func renderEditor(c *gin.Context, status int, form models.PostInput, message string) {
	action := "/new"
	if form.OriginalSlug != "" {
		action = "/edit/" + url.PathEscape(form.OriginalSlug)
	}
	render(c, status, "editor.html", gin.H{
		"form":   form,
		"IsEdit": form.OriginalSlug != "",
		"Action": action,
		"Error":  message,
	})
}
