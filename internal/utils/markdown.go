package utils

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Post bodies are MDX, so inline HTML is passed through by goldmark and
// then cleaned by the sanitizer.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

var htmlPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+-]+$`)).OnElements("code", "pre")
	return p
}()

// RenderMarkdown converts a post body to sanitized HTML.
func RenderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(htmlPolicy.SanitizeBytes(buf.Bytes())), nil
}

var (
	mdLinkOrImage = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	mdHTMLTag     = regexp.MustCompile(`<[^>]+>`)
	mdSyntax      = regexp.MustCompile("(?m)^\\s*(#+|>|[-*+]\\s)|[*_`~]")
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// stripMarkdown reduces markdown to plain text, keeping link text.
func stripMarkdown(md string) string {
	md = mdLinkOrImage.ReplaceAllString(md, "$1")
	md = mdHTMLTag.ReplaceAllString(md, "")
	md = mdSyntax.ReplaceAllString(md, "")
	md = whitespaceRun.ReplaceAllString(md, " ")
	return md
}

// GenerateExcerpt returns the first length runes of the plain-text body.
func GenerateExcerpt(md string, length int) string {
	plainText := strings.TrimSpace(stripMarkdown(md))
	// Use runes to handle multi-byte characters
	runes := []rune(plainText)
	if len(runes) > length {
		return string(runes[:length]) + "..."
	}
	return string(runes)
}
