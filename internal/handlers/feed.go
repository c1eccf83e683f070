package handlers

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"time"

	"sisyphus/internal/constants"
	"sisyphus/internal/models"
	"sisyphus/internal/services"
	"sisyphus/internal/utils"

	"github.com/gin-gonic/gin"
)

// feedExcerptLength bounds item descriptions taken from the post body.
const feedExcerptLength = 200

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type FeedHandler struct {
	postService *services.PostService
	site        models.Site
}

func NewFeedHandler(postService *services.PostService, site models.Site) *FeedHandler {
	return &FeedHandler{postService: postService, site: site}
}

// RSS serves an RSS 2.0 feed of all posts, newest first.
func (h *FeedHandler) RSS(c *gin.Context) {
	posts, err := h.postService.ListPosts()
	if err != nil {
		handleError(c, err)
		return
	}

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := h.postURL(p.Slug)
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Description,
			Category:    p.Category,
			GUID:        link,
		}
		if t, ok := utils.ParseDate(p.Date); ok {
			item.PubDate = t.Format(time.RFC1123Z)
		}
		if item.Description == "" {
			if post, err := h.postService.GetPost(p.Slug); err == nil {
				item.Description = utils.GenerateExcerpt(post.Content, feedExcerptLength)
			}
		}
		items = append(items, item)
	}

	writeXML(c, "application/rss+xml; charset=utf-8", rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       h.site.Name,
			Link:        h.site.URL + "/",
			Description: h.site.Description,
			Items:       items,
		},
	})
}

// Sitemap lists the home page, the categories page and every post.
func (h *FeedHandler) Sitemap(c *gin.Context) {
	posts, err := h.postService.ListPosts()
	if err != nil {
		handleError(c, err)
		return
	}

	urls := []sitemapURL{
		{Loc: h.site.URL + "/"},
		{Loc: h.site.URL + "/categories"},
	}
	for _, p := range posts {
		u := sitemapURL{Loc: h.postURL(p.Slug)}
		if t, ok := utils.ParseDate(p.Date); ok {
			u.LastMod = t.Format(constants.DateLayout)
		}
		urls = append(urls, u)
	}

	writeXML(c, "application/xml; charset=utf-8", sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func (h *FeedHandler) postURL(slug string) string {
	return h.site.URL + "/posts/" + url.PathEscape(slug)
}

func writeXML(c *gin.Context, contentType string, v any) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		handleError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, append([]byte(xml.Header), out...))
}
