package repository

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sisyphus/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCommentsMissingFileIsEmpty(t *testing.T) {
	repo := NewCommentRepository(t.TempDir())

	comments, err := repo.FindBySlug("nothing-here")
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.NotNil(t, comments)
}

func TestAppendAndDelete(t *testing.T) {
	repo := NewCommentRepository(t.TempDir())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = fixedClock(now)

	first, err := repo.Append("post", models.Comment{Content: "first", Author: "Visitor"})
	require.NoError(t, err)
	second, err := repo.Append("post", models.Comment{Content: "second", Author: "Admin", IsAdmin: true})
	require.NoError(t, err)

	assert.Equal(t, "1714564800000", first.ID)
	assert.Equal(t, "1714564800001", second.ID, "same millisecond gets the next free id")
	assert.True(t, first.CreatedAt.Equal(now))

	comments, err := repo.FindBySlug("post")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.True(t, comments[1].IsAdmin)

	require.NoError(t, repo.Delete("post", first.ID))

	comments, err = repo.FindBySlug("post")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, second.ID, comments[0].ID)

	require.NoError(t, repo.Delete("post", "unknown"))
}

func TestDeleteOnMissingFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	repo := NewCommentRepository(dir)

	require.NoError(t, repo.Delete("ghost", "1"))
	assert.NoFileExists(t, filepath.Join(dir, "ghost.json"))
}

func TestCommentFileFormat(t *testing.T) {
	dir := t.TempDir()
	repo := NewCommentRepository(dir)
	repo.now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	_, err := repo.Append("post", models.Comment{Content: "hi", Author: "Visitor"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "post.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1714564800000","content":"hi","author":"Visitor","createdAt":"2024-05-01T12:00:00Z","isAdmin":false}]`, string(data))
}

func TestCorruptCommentFile(t *testing.T) {
	dir := t.TempDir()
	repo := NewCommentRepository(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.json"), []byte("{not json"), 0o644))

	_, err := repo.FindBySlug("post")
	assert.Error(t, err)

	_, err = repo.Append("post", models.Comment{Content: "x"})
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "post.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "a corrupt file is never overwritten")
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	repo := NewCommentRepository(t.TempDir())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Append("busy", models.Comment{Content: "hello"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	comments, err := repo.FindBySlug("busy")
	require.NoError(t, err)
	assert.Len(t, comments, n)

	ids := make(map[string]bool)
	for _, c := range comments {
		ids[c.ID] = true
	}
	assert.Len(t, ids, n, "ids are unique")
}

func TestMoveAndDeleteAll(t *testing.T) {
	repo := NewCommentRepository(t.TempDir())
	_, err := repo.Append("before", models.Comment{Content: "moved"})
	require.NoError(t, err)

	require.NoError(t, repo.Move("before", "after"))

	comments, err := repo.FindBySlug("after")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	comments, err = repo.FindBySlug("before")
	require.NoError(t, err)
	assert.Empty(t, comments)

	// moving a post that never had comments is fine
	require.NoError(t, repo.Move("quiet", "quieter"))

	require.NoError(t, repo.DeleteAll("after"))
	comments, err = repo.FindBySlug("after")
	require.NoError(t, err)
	assert.Empty(t, comments)
	require.NoError(t, repo.DeleteAll("after"))
}
