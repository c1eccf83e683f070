// Package views parses the page templates into a gin renderer.
package views

import (
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"sisyphus/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// pages maps each renderable page to the files it is parsed from. Every
// page shares base.html.
var pages = map[string][]string{
	"index.html":      {"base.html", "index.html", "_pagination.html"},
	"post.html":       {"base.html", "post.html"},
	"categories.html": {"base.html", "categories.html"},
	"editor.html":     {"base.html", "editor.html"},
	"login.html":      {"base.html", "login.html"},
	"404.html":        {"base.html", "404.html"},
	"error.html":      {"base.html", "error.html"},
}

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"displayDate": utils.DisplayDate,
	"join":        strings.Join,
	"initial": func(s string) string {
		for _, r := range s {
			return strings.ToUpper(string(r))
		}
		return "?"
	},
}

// NewRenderer parses all pages from fsys.
func NewRenderer(fsys fs.FS) (multitemplate.Render, error) {
	r := multitemplate.New()
	for name, files := range pages {
		tpl, err := template.New(files[0]).Funcs(Funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.Add(name, tpl)
	}
	return r, nil
}
