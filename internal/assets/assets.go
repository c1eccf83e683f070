// Package assets serves the static directory from memory, minified in
// production.
package assets

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

var mediaTypes = map[string]string{
	".css": "text/css",
	".js":  "text/javascript",
	".svg": "image/svg+xml",
}

type asset struct {
	data        []byte
	contentType string
	etag        string
}

// Store holds every static file in memory.
type Store struct {
	files   map[string]asset
	modTime time.Time
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}

// Load reads all files under fsys. With minifyAssets set, CSS, JS and SVG
// files are minified once here rather than per request.
func Load(fsys fs.FS, minifyAssets bool) (*Store, error) {
	m := newMinifier()
	s := &Store{files: make(map[string]asset), modTime: time.Now()}

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		ext := strings.ToLower(path.Ext(name))
		if mediaType, ok := mediaTypes[ext]; ok && minifyAssets {
			if data, err = m.Bytes(mediaType, data); err != nil {
				return fmt.Errorf("minify %s: %w", name, err)
			}
		}

		contentType := mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		sum := sha256.Sum256(data)
		s.files[name] = asset{
			data:        data,
			contentType: contentType,
			etag:        `"` + hex.EncodeToString(sum[:8]) + `"`,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load static assets: %w", err)
	}
	return s, nil
}

// Len is the number of loaded files.
func (s *Store) Len() int {
	return len(s.files)
}

// Handler serves the file named by the *filepath route parameter.
func (s *Store) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")
		a, ok := s.files[name]
		if !ok {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Header("Content-Type", a.contentType)
		c.Header("ETag", a.etag)
		c.Header("Cache-Control", "public, max-age=3600")
		http.ServeContent(c.Writer, c.Request, name, s.modTime, bytes.NewReader(a.data))
	}
}
