package handlers

import (
	"errors"
	"net/http"
	"strings"

	"sisyphus/internal/constants"
	"sisyphus/internal/models"
	"sisyphus/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware exposes the login state and the site identity to every
// handler and template.
func SessionMiddleware(site models.Site) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		authenticated, _ := session.Get(constants.SessionKeyAuthenticated).(bool)
		c.Set(constants.ContextKeyIsLoggedIn, authenticated)
		c.Set(constants.ContextKeySite, site)
		c.Next()
	}
}

// AuthMiddleware checks if a user is authenticated via session flag.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isLoggedIn(c) {
			// User is not logged in, redirect to login page.
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly refuses anonymous requests with 403 instead of redirecting.
// It guards form posts that are only ever sent from admin controls.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isLoggedIn(c) {
			respondError(c, http.StatusForbidden, services.ErrUnauthorized.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}

func isLoggedIn(c *gin.Context) bool {
	return c.GetBool(constants.ContextKeyIsLoggedIn)
}

// render is a helper function to render templates with common data.
func render(c *gin.Context, status int, templateName string, data gin.H) {
	if site, ok := c.Get(constants.ContextKeySite); ok {
		data["Site"] = site
	}
	data["IsLoggedIn"] = isLoggedIn(c)
	data["Path"] = c.Request.URL.Path
	c.HTML(status, templateName, data)
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// respondError answers with the error page, or with a JSON error body for
// clients that asked for JSON.
func respondError(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}
	if status == http.StatusNotFound {
		render(c, status, "404.html", gin.H{})
		return
	}
	render(c, status, "error.html", gin.H{
		"Status":  status,
		"Title":   http.StatusText(status),
		"Message": message,
	})
}

// handleError maps service and repository errors to responses. Unexpected
// errors are attached to the context so the request logger records them.
func handleError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, services.ErrUnauthorized):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrTooManyAttempts):
		respondError(c, http.StatusTooManyRequests, err.Error())
	case isValidationError(err):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrTitleContentRequired) ||
		errors.Is(err, services.ErrSlugRequired) ||
		errors.Is(err, services.ErrEmptyComment) ||
		errors.Is(err, services.ErrCommentTooLong)
}
