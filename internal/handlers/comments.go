package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// ListComments returns a post's comments as JSON.
func (h *BlogHandler) ListComments(c *gin.Context) {
	slug := c.Param("slug")
	if _, err := h.postService.GetPost(slug); err != nil {
		handleError(c, err)
		return
	}
	comments, err := h.commentService.List(slug)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment stores a comment. Comments written while logged in are
// signed as the admin.
func (h *BlogHandler) AddComment(c *gin.Context) {
	slug := c.Param("slug")
	content := c.PostForm("content")

	comment, err := h.commentService.Add(slug, content, isLoggedIn(c))
	if err != nil {
		if isValidationError(err) && !wantsJSON(c) {
			h.renderPost(c, http.StatusBadRequest, slug, gin.H{
				"CommentError": err.Error(),
				"CommentDraft": content,
			})
			return
		}
		handleError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"status": "success", "comment": comment})
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+url.PathEscape(slug)+"#comment-"+comment.ID)
}

// DeleteComment removes a comment. The route is admin only.
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	slug := c.Param("slug")
	if err := h.commentService.Delete(slug, c.Param("id"), isLoggedIn(c)); err != nil {
		handleError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+url.PathEscape(slug)+"#comments")
}
