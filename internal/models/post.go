package models

import (
	"html/template"
	"strings"
)

// PostMeta is the front-matter part of a post.
type PostMeta struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Post is a post file: metadata plus the raw MDX body.
type Post struct {
	PostMeta
	Content string `json:"content"`
}

// RenderedPost is a view model for displaying a post with rendered HTML content.
type RenderedPost struct {
	PostMeta
	DisplayDate string
	HTML        template.HTML
}

// PostInput is what the new/edit form submits.
type PostInput struct {
	OriginalSlug string `form:"originalSlug"`
	Title        string `form:"title"`
	Slug         string `form:"slug"`
	Category     string `form:"category"`
	Description  string `form:"description"`
	Tags         string `form:"tags"`
	Content      string `form:"content"`
}

// TagList splits the comma separated tags field, dropping blanks.
func (in PostInput) TagList() []string {
	var tags []string
	for _, t := range strings.Split(in.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FormFromPost fills the edit form from an existing post.
func FormFromPost(p *Post) PostInput {
	return PostInput{
		OriginalSlug: p.Slug,
		Title:        p.Title,
		Slug:         p.Slug,
		Category:     p.Category,
		Description:  p.Description,
		Tags:         strings.Join(p.Tags, ", "),
		Content:      p.Content,
	}
}

// CategoryGroup is one section of the categories page.
type CategoryGroup struct {
	Name  string
	Posts []PostMeta
}

// Count is the number of posts in the group.
func (g CategoryGroup) Count() int {
	return len(g.Posts)
}
