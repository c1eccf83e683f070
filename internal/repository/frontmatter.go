package repository

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"sisyphus/internal/constants"
	"sisyphus/internal/models"
	"sisyphus/internal/utils"

	"gopkg.in/yaml.v3"
)

// frontMatter is the header written for every post, in field order.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,flow"`
}

// parsePost splits a post file into metadata and body. Header fields that
// are missing or of an unexpected type are left empty; category falls back
// to the default.
func parsePost(slug string, data []byte) *models.Post {
	post := &models.Post{PostMeta: models.PostMeta{Slug: slug}}

	body := string(data)
	if m := utils.FrontMatterRegex.FindStringSubmatchIndex(body); m != nil {
		var header map[string]any
		if err := yaml.Unmarshal([]byte(body[m[2]:m[3]]), &header); err == nil {
			post.Title = scalarString(header["title"])
			post.Date = scalarString(header["date"])
			post.Category = scalarString(header["category"])
			post.Description = scalarString(header["description"])
			post.Tags = stringList(header["tags"])
		}
		body = body[m[1]:]
	}
	if post.Category == "" {
		post.Category = constants.DefaultCategory
	}
	post.Content = strings.TrimRight(strings.TrimLeft(body, "\r\n"), " \t\r\n")
	return post
}

// encodePost renders the on-disk form of a post.
func encodePost(post *models.Post) ([]byte, error) {
	fm := frontMatter{
		Title:       post.Title,
		Date:        post.Date,
		Category:    post.Category,
		Description: post.Description,
		Tags:        post.Tags,
	}
	if fm.Tags == nil {
		fm.Tags = []string{}
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&fm); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(post.Content)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(constants.DateLayout)
		}
		return t.Format(time.RFC3339)
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// stringList accepts both a YAML sequence and a comma separated string.
func stringList(v any) []string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := strings.TrimSpace(scalarString(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
