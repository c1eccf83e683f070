// Package importer brings Markdown posts from other static site generators
// into the posts directory, and can seed sample content.
package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sisyphus/internal/models"
	"sisyphus/internal/services"
	"sisyphus/internal/utils"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var sourceExts = map[string]bool{".md": true, ".mdx": true, ".markdown": true}

// Result lists what an import run did, by source file name.
type Result struct {
	Imported []string
	Skipped  []string
}

type Importer struct {
	posts  *services.PostService
	logger *zap.Logger
}

func New(posts *services.PostService, logger *zap.Logger) *Importer {
	return &Importer{posts: posts, logger: logger}
}

// ImportDir imports every Markdown file under dir. Drafts and files that
// cannot be read or parsed are skipped and logged; only a failure to walk
// dir is returned as an error.
func (im *Importer) ImportDir(dir string) (Result, error) {
	var res Result
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !sourceExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, _ := filepath.Rel(dir, path)
		if err := im.importFile(path); err != nil {
			im.logger.Warn("skipping file", zap.String("file", rel), zap.Error(err))
			res.Skipped = append(res.Skipped, rel)
			return nil
		}
		res.Imported = append(res.Imported, rel)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("import %s: %w", dir, err)
	}
	im.logger.Info("import finished", zap.Int("imported", len(res.Imported)), zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

var errDraft = errors.New("draft")

func (im *Importer) importFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	in, date, err := parseSource(filepath.Base(path), string(data))
	if err != nil {
		return err
	}
	_, err = im.posts.ImportPost(in, date)
	return err
}

// parseSource reads the front matter used by common generators (Hugo,
// Astro, Jekyll). The file name, without extension, becomes the slug.
func parseSource(name, content string) (models.PostInput, string, error) {
	m := utils.FrontMatterRegex.FindStringSubmatch(content)
	if m == nil {
		return models.PostInput{}, "", fmt.Errorf("no front matter")
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(m[1]), &fm); err != nil {
		return models.PostInput{}, "", fmt.Errorf("front matter: %w", err)
	}
	if draft, _ := fm["draft"].(bool); draft {
		return models.PostInput{}, "", errDraft
	}

	in := models.PostInput{
		Title:       first(fm, "title"),
		Slug:        first(fm, "slug"),
		Category:    first(fm, "category", "categories"),
		Description: first(fm, "description", "summary", "excerpt"),
		Tags:        strings.Join(list(fm["tags"]), ", "),
		Content:     strings.TrimSpace(content[len(m[0]):]),
	}
	if in.Slug == "" {
		in.Slug = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return in, first(fm, "date", "publishDate", "pubDate"), nil
}

// first returns the first of keys present in fm as a string. For list
// values the first element is used.
func first(fm map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := fm[k]; ok && v != nil {
			if l := list(v); len(l) > 0 {
				return l[0]
			}
		}
	}
	return ""
}

func list(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		var out []string
		for _, e := range t {
			if s := scalar(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := scalar(t); s != "" {
			return []string{s}
		}
		return nil
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
