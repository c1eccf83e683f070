package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisyphus/internal/models"
)

func newPost(slug, title, date string) *models.Post {
	return &models.Post{
		PostMeta: models.PostMeta{Slug: slug, Title: title, Date: date, Category: "General"},
		Content:  "Content of " + title,
	}
}

func TestFindAllMissingDir(t *testing.T) {
	repo := NewPostRepository(filepath.Join(t.TempDir(), "nope"))

	posts, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestFindAllSortedByDateDesc(t *testing.T) {
	dir := t.TempDir()
	repo := NewPostRepository(dir)

	require.NoError(t, repo.Save(newPost("middle", "Middle", "2024-02-01")))
	require.NoError(t, repo.Save(newPost("oldest", "Oldest", "2023-01-01")))
	require.NoError(t, repo.Save(newPost("newest", "Newest", "2024-12-31")))
	require.NoError(t, repo.Save(newPost("undated", "Undated", "")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	posts, err := repo.FindAll()
	require.NoError(t, err)

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"newest", "middle", "oldest", "undated"}, slugs)
}

func TestFindBySlug(t *testing.T) {
	repo := NewPostRepository(t.TempDir())
	require.NoError(t, repo.Save(newPost("hello", "Hello", "2024-01-01")))

	post, err := repo.FindBySlug("hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "Content of Hello", post.Content)

	_, err = repo.FindBySlug("missing")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = repo.FindBySlug("../../etc/passwd")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestSaveRejectsInvalidSlug(t *testing.T) {
	repo := NewPostRepository(t.TempDir())
	assert.ErrorIs(t, repo.Save(newPost("", "Empty", "2024-01-01")), ErrInvalidSlug)
	assert.ErrorIs(t, repo.Save(newPost("a/b", "Slash", "2024-01-01")), ErrInvalidSlug)
}

func TestReplaceRenames(t *testing.T) {
	dir := t.TempDir()
	repo := NewPostRepository(dir)
	require.NoError(t, repo.Save(newPost("old", "Old", "2024-01-01")))

	require.NoError(t, repo.Replace("old", newPost("new", "New", "2024-01-01")))

	_, err := repo.FindBySlug("old")
	assert.ErrorIs(t, err, ErrPostNotFound)
	post, err := repo.FindBySlug("new")
	require.NoError(t, err)
	assert.Equal(t, "New", post.Title)

	// no leftover temp files
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDelete(t *testing.T) {
	repo := NewPostRepository(t.TempDir())
	require.NoError(t, repo.Save(newPost("gone", "Gone", "2024-01-01")))

	require.NoError(t, repo.Delete("gone"))
	assert.ErrorIs(t, repo.Delete("gone"), ErrPostNotFound)
}

func TestReadDate(t *testing.T) {
	repo := NewPostRepository(t.TempDir())
	require.NoError(t, repo.Save(newPost("dated", "Dated", "2022-05-06")))
	require.NoError(t, repo.Save(newPost("bad-date", "Bad", "soon")))

	date, err := repo.ReadDate("dated")
	require.NoError(t, err)
	assert.Equal(t, "2022-05-06", date)

	_, err = repo.ReadDate("bad-date")
	assert.Error(t, err)
	_, err = repo.ReadDate("missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
