package handlers

import (
	"errors"
	"net/http"

	"sisyphus/internal/constants"
	"sisyphus/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	if isLoggedIn(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	err := h.authService.Login(c.ClientIP(), c.PostForm("password"))
	switch {
	case errors.Is(err, services.ErrTooManyAttempts):
		h.loginFailed(c, http.StatusTooManyRequests, "Too many attempts. Please wait a minute and try again.")
		return
	case errors.Is(err, services.ErrInvalidPassword):
		h.loginFailed(c, http.StatusUnauthorized, "Invalid password")
		return
	case err != nil:
		handleError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyAuthenticated, true)
	if err := session.Save(); err != nil {
		handleError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) loginFailed(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}
	render(c, status, "login.html", gin.H{"Error": message})
}

// Logout expires the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusFound, "/")
}
