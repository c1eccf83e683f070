package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sisyphus/internal/constants"
	"sisyphus/internal/models"
)

// CommentRepository keeps each post's comments as a JSON array in
// <slug>.json. Every mutation rewrites the whole file while holding that
// slug's lock, so concurrent submissions to one post do not lose updates.
type CommentRepository struct {
	dir   string
	locks keyedMutex
	now   func() time.Time
}

func NewCommentRepository(dir string) *CommentRepository {
	return &CommentRepository{dir: dir, now: time.Now}
}

func (r *CommentRepository) path(slug string) string {
	return filepath.Join(r.dir, slug+constants.CommentFileExt)
}

// FindBySlug returns the comments of a post in insertion order. A missing
// file yields an empty list.
func (r *CommentRepository) FindBySlug(slug string) ([]models.Comment, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	return r.read(slug)
}

func (r *CommentRepository) read(slug string) ([]models.Comment, error) {
	data, err := os.ReadFile(r.path(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Comment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read comments %s: %w", slug, err)
	}
	comments := []models.Comment{}
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("decode comments %s: %w", slug, err)
	}
	return comments, nil
}

func (r *CommentRepository) write(slug string, comments []models.Comment) error {
	data, err := json.MarshalIndent(comments, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.path(slug), data); err != nil {
		return fmt.Errorf("write comments %s: %w", slug, err)
	}
	return nil
}

// Append assigns the comment an id and creation time and adds it to the
// post's file. Ids are the creation time in Unix milliseconds, bumped when
// that value is already taken within the file.
func (r *CommentRepository) Append(slug string, c models.Comment) (models.Comment, error) {
	if err := checkSlug(slug); err != nil {
		return models.Comment{}, err
	}
	unlock := r.locks.lock(slug)
	defer unlock()

	comments, err := r.read(slug)
	if err != nil {
		return models.Comment{}, err
	}

	now := r.now().UTC()
	taken := make(map[string]bool, len(comments))
	for _, existing := range comments {
		taken[existing.ID] = true
	}
	id := now.UnixMilli()
	for taken[strconv.FormatInt(id, 10)] {
		id++
	}
	c.ID = strconv.FormatInt(id, 10)
	c.CreatedAt = now

	comments = append(comments, c)
	if err := r.write(slug, comments); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// Delete removes the comment with id. Deleting an unknown id is a no-op.
func (r *CommentRepository) Delete(slug, id string) error {
	if err := checkSlug(slug); err != nil {
		return err
	}
	unlock := r.locks.lock(slug)
	defer unlock()

	comments, err := r.read(slug)
	if err != nil {
		return err
	}
	n := len(comments)
	filtered := comments[:0]
	for _, c := range comments {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == n {
		return nil
	}
	return r.write(slug, filtered)
}

// Move renames a post's comment file after the post's slug changed.
func (r *CommentRepository) Move(oldSlug, newSlug string) error {
	if oldSlug == newSlug {
		return nil
	}
	if err := checkSlug(oldSlug); err != nil {
		return err
	}
	if err := checkSlug(newSlug); err != nil {
		return err
	}
	// Lock in a fixed order so two opposite moves cannot deadlock.
	first, second := oldSlug, newSlug
	if second < first {
		first, second = second, first
	}
	unlockFirst := r.locks.lock(first)
	defer unlockFirst()
	unlockSecond := r.locks.lock(second)
	defer unlockSecond()

	err := os.Rename(r.path(oldSlug), r.path(newSlug))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("move comments %s -> %s: %w", oldSlug, newSlug, err)
	}
	return nil
}

// DeleteAll removes a post's comment file.
func (r *CommentRepository) DeleteAll(slug string) error {
	if err := checkSlug(slug); err != nil {
		return err
	}
	unlock := r.locks.lock(slug)
	defer unlock()

	err := os.Remove(r.path(slug))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete comments %s: %w", slug, err)
	}
	return nil
}
