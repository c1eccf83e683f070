package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"sisyphus/internal/services"
	"sisyphus/internal/utils"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	postService    *services.PostService
	commentService *services.CommentService
	pageSize       int
}

func NewBlogHandler(postService *services.PostService, commentService *services.CommentService, pageSize int) *BlogHandler {
	return &BlogHandler{postService: postService, commentService: commentService, pageSize: pageSize}
}

// Index lists posts, optionally narrowed by ?category= and ?search=.
func (h *BlogHandler) Index(c *gin.Context) {
	// Preload the stylesheet and script every page uses.
	header := c.Writer.Header()
	header.Add("Link", `</static/css/style.css>; rel=preload; as=style`)
	header.Add("Link", `</static/js/main.js>; rel=preload; as=script`)

	category := c.Query("category")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	all, err := h.postService.ListPosts()
	if err != nil {
		handleError(c, err)
		return
	}
	filtered := services.FilterPosts(all, category, search)

	page, start, end, totalPages := utils.PageBounds(page, h.pageSize, len(filtered))
	pagination := utils.GeneratePagination(page, totalPages, func(n int) string {
		return indexURL(category, search, n)
	})

	render(c, http.StatusOK, "index.html", gin.H{
		"posts":      filtered[start:end],
		"Total":      len(filtered),
		"Categories": services.Categories(all),
		"Category":   category,
		"Search":     search,
		"Pagination": pagination,
		"is_index":   true,
	})
}

func indexURL(category, search string, page int) string {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func (h *BlogHandler) ShowPost(c *gin.Context) {
	h.renderPost(c, http.StatusOK, c.Param("slug"), gin.H{})
}

// renderPost renders a post with its comments. extra carries comment form
// state when a submission is re-rendered.
func (h *BlogHandler) renderPost(c *gin.Context, status int, slug string, extra gin.H) {
	post, err := h.postService.GetRenderedPost(slug)
	if err != nil {
		handleError(c, err)
		return
	}
	comments, err := h.commentService.List(slug)
	if err != nil {
		handleError(c, err)
		return
	}

	data := gin.H{
		"post":     post,
		"comments": comments,
	}
	for k, v := range extra {
		data[k] = v
	}
	render(c, status, "post.html", data)
}

// Categories shows every post grouped under its category.
func (h *BlogHandler) Categories(c *gin.Context) {
	groups, err := h.postService.GroupByCategory()
	if err != nil {
		handleError(c, err)
		return
	}
	render(c, http.StatusOK, "categories.html", gin.H{
		"groups": groups,
	})
}

func (h *BlogHandler) NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "page not found")
}
