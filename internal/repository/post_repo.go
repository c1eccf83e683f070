package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"sisyphus/internal/constants"
	"sisyphus/internal/models"
	"sisyphus/internal/utils"
)

// ErrPostNotFound is returned when no file exists for a slug.
var ErrPostNotFound = errors.New("post not found")

// PostRepository stores one <slug>.mdx file per post in a directory.
type PostRepository struct {
	dir string
	mu  sync.Mutex // serializes writers
}

func NewPostRepository(dir string) *PostRepository {
	return &PostRepository{dir: dir}
}

func (r *PostRepository) path(slug string) string {
	return filepath.Join(r.dir, slug+constants.PostFileExt)
}

// FindAll parses the header of every post file and returns them sorted by
// date, newest first. A missing directory yields an empty list.
func (r *PostRepository) FindAll() ([]models.PostMeta, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.PostMeta{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}

	posts := make([]models.PostMeta, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, constants.PostFileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		slug := strings.TrimSuffix(name, constants.PostFileExt)
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			return nil, fmt.Errorf("read post %s: %w", slug, err)
		}
		posts = append(posts, parsePost(slug, data).PostMeta)
	}

	SortByDateDesc(posts)
	return posts, nil
}

// SortByDateDesc orders posts newest first. Undated posts sort last; ties
// are broken by slug so the order is stable across directory scans.
func SortByDateDesc(posts []models.PostMeta) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, oki := utils.ParseDate(posts[i].Date)
		tj, okj := utils.ParseDate(posts[j].Date)
		switch {
		case oki != okj:
			return oki
		case oki && !ti.Equal(tj):
			return ti.After(tj)
		default:
			return posts[i].Slug < posts[j].Slug
		}
	})
}

func (r *PostRepository) FindBySlug(slug string) (*models.Post, error) {
	if err := checkSlug(slug); err != nil {
		return nil, ErrPostNotFound
	}
	data, err := os.ReadFile(r.path(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read post %s: %w", slug, err)
	}
	return parsePost(slug, data), nil
}

// Save writes the post file, replacing any post with the same slug.
func (r *PostRepository) Save(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(post)
}

func (r *PostRepository) save(post *models.Post) error {
	if err := checkSlug(post.Slug); err != nil {
		return err
	}
	data, err := encodePost(post)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.path(post.Slug), data); err != nil {
		return fmt.Errorf("write post %s: %w", post.Slug, err)
	}
	return nil
}

// Replace writes post and, when its slug differs from oldSlug, removes the
// old file. The new file is written first so a failure never loses the post.
func (r *PostRepository) Replace(oldSlug string, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.save(post); err != nil {
		return err
	}
	if oldSlug == "" || oldSlug == post.Slug || checkSlug(oldSlug) != nil {
		return nil
	}
	if err := os.Remove(r.path(oldSlug)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove old post %s: %w", oldSlug, err)
	}
	return nil
}

func (r *PostRepository) Delete(slug string) error {
	if err := checkSlug(slug); err != nil {
		return ErrPostNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrPostNotFound
	}
	return err
}

// ReadDate returns the date recorded in an existing post file.
func (r *PostRepository) ReadDate(slug string) (string, error) {
	post, err := r.FindBySlug(slug)
	if err != nil {
		return "", err
	}
	if _, ok := utils.ParseDate(post.Date); !ok {
		return "", fmt.Errorf("post %s has no valid date %q", slug, post.Date)
	}
	return post.Date, nil
}
