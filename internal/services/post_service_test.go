package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisyphus/internal/models"
	"sisyphus/internal/repository"
)

func TestCreatePost(t *testing.T) {
	f := newFixture(t)

	post, err := f.posts.CreatePost(models.PostInput{
		Title:       "  The Art of Clean Code ",
		Category:    "Engineering",
		Description: "A brief summary",
		Tags:        "go, design, ",
		Content:     "# Introduction\n\nStart writing...",
	})
	require.NoError(t, err)

	assert.Equal(t, "the-art-of-clean-code", post.Slug)
	assert.Equal(t, "2025-06-01", post.Date)
	assert.Equal(t, []string{"go", "design"}, post.Tags)
	assert.FileExists(t, filepath.Join(f.postDir, "the-art-of-clean-code.mdx"))

	got, err := f.posts.GetPost("the-art-of-clean-code")
	require.NoError(t, err)
	assert.Equal(t, "The Art of Clean Code", got.Title)
	assert.Equal(t, "Engineering", got.Category)
	assert.Equal(t, "# Introduction\n\nStart writing...", got.Content)
}

func TestCreatePostCustomSlugIsSanitized(t *testing.T) {
	f := newFixture(t)

	post, err := f.posts.CreatePost(models.PostInput{Title: "Anything", Slug: "My Custom/Slug!", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "my-custom-slug", post.Slug)
	assert.Equal(t, "General", post.Category)
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.CreatePost(models.PostInput{Title: "", Content: "body"})
	assert.ErrorIs(t, err, ErrTitleContentRequired)

	_, err = f.posts.CreatePost(models.PostInput{Title: "Title", Content: "   "})
	assert.ErrorIs(t, err, ErrTitleContentRequired)

	_, err = f.posts.CreatePost(models.PostInput{Title: "???", Content: "body"})
	assert.ErrorIs(t, err, ErrSlugRequired)
}

func TestCreatePostSameSlugOverwrites(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.CreatePost(models.PostInput{Title: "Hello World", Content: "first"})
	require.NoError(t, err)
	_, err = f.posts.CreatePost(models.PostInput{Title: "Hello, World!", Content: "second"})
	require.NoError(t, err)

	posts, err := f.posts.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)

	got, err := f.posts.GetPost("hello-world")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)
}

func writeRaw(t *testing.T, dir, slug, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".mdx"), []byte(contents), 0o644))
}

func TestUpdatePostKeepsDateAndRenames(t *testing.T) {
	f := newFixture(t)
	writeRaw(t, f.postDir, "old-slug", "---\ntitle: \"Old\"\ndate: \"2020-02-02\"\n---\nold body")

	_, err := f.comments.Add("old-slug", "a comment", false)
	require.NoError(t, err)

	post, err := f.posts.UpdatePost(models.PostInput{
		OriginalSlug: "old-slug",
		Slug:         "new-slug",
		Title:        "New",
		Category:     "Life",
		Content:      "new body",
	})
	require.NoError(t, err)
	assert.Equal(t, "2020-02-02", post.Date)

	_, err = f.posts.GetPost("old-slug")
	assert.True(t, IsNotFound(err))

	got, err := f.posts.GetPost("new-slug")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "2020-02-02", got.Date)

	comments, err := f.comments.List("new-slug")
	require.NoError(t, err)
	assert.Len(t, comments, 1, "comments follow the renamed post")
}

func TestUpdatePostFallsBackToToday(t *testing.T) {
	f := newFixture(t)
	writeRaw(t, f.postDir, "undated", "---\ntitle: Undated\n---\nbody")

	post, err := f.posts.UpdatePost(models.PostInput{OriginalSlug: "undated", Slug: "undated", Title: "Undated", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", post.Date)
}

func TestUpdatePostKeepsUnchangedSlugVerbatim(t *testing.T) {
	f := newFixture(t)
	writeRaw(t, f.postDir, "Hand_Named", "---\ntitle: Hand\ndate: 2021-01-01\n---\nbody")

	post, err := f.posts.UpdatePost(models.PostInput{OriginalSlug: "Hand_Named", Slug: "Hand_Named", Title: "Hand", Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "Hand_Named", post.Slug)
	assert.Equal(t, "2021-01-01", post.Date)
}

func TestUpdatePostMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.UpdatePost(models.PostInput{OriginalSlug: "ghost", Title: "Ghost", Content: "boo"})
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	_, err := f.posts.CreatePost(models.PostInput{Title: "Doomed", Content: "bye"})
	require.NoError(t, err)
	_, err = f.comments.Add("doomed", "nice", false)
	require.NoError(t, err)

	require.NoError(t, f.posts.DeletePost("doomed"))

	_, err = f.posts.GetPost("doomed")
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(f.posts.DeletePost("doomed")))
}

func TestGetRenderedPost(t *testing.T) {
	f := newFixture(t)
	writeRaw(t, f.postDir, "rendered", "---\ntitle: Rendered\ndate: \"2024-03-05\"\ntags: [a]\n---\n## Section\n\ntext")

	post, err := f.posts.GetRenderedPost("rendered")
	require.NoError(t, err)
	assert.Equal(t, "March 5, 2024", post.DisplayDate)
	assert.Contains(t, string(post.HTML), `<h2 id="section">Section</h2>`)

	_, err = f.posts.GetRenderedPost("nope")
	assert.True(t, IsNotFound(err))
}

func TestFilterPostsAndCategories(t *testing.T) {
	posts := []models.PostMeta{
		{Slug: "a", Title: "Go Generics", Description: "type params", Category: "Engineering"},
		{Slug: "b", Title: "Morning Run", Description: "running in the rain", Category: "Life"},
		{Slug: "c", Title: "Rust vs Go", Description: "comparison", Category: "Engineering"},
	}

	assert.Equal(t, []string{"Engineering", "Life"}, Categories(posts))
	assert.Len(t, FilterPosts(posts, "", ""), 3)
	assert.Len(t, FilterPosts(posts, "Engineering", ""), 2)
	assert.Len(t, FilterPosts(posts, "", "GO"), 2)
	assert.Len(t, FilterPosts(posts, "", "rain"), 1)
	assert.Len(t, FilterPosts(posts, "Life", "go"), 0)
}

func TestGroupByCategory(t *testing.T) {
	f := newFixture(t)
	writeRaw(t, f.postDir, "one", "---\ntitle: One\ndate: \"2024-01-03\"\ncategory: Engineering\n---\nx")
	writeRaw(t, f.postDir, "two", "---\ntitle: Two\ndate: \"2024-01-02\"\n---\nx")
	writeRaw(t, f.postDir, "three", "---\ntitle: Three\ndate: \"2024-01-01\"\ncategory: Engineering\n---\nx")

	groups, err := f.posts.GroupByCategory()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Engineering", groups[0].Name)
	assert.Equal(t, 2, groups[0].Count())
	assert.Equal(t, "General", groups[1].Name)
	assert.Equal(t, "two", groups[1].Posts[0].Slug)
}

func TestImportPost(t *testing.T) {
	f := newFixture(t)

	post, err := f.posts.ImportPost(models.PostInput{Title: "Imported", Slug: "Old_File", Content: "x"}, "2019-07-08T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "old-file", post.Slug)
	assert.Equal(t, "2019-07-08", post.Date)

	post, err = f.posts.ImportPost(models.PostInput{Title: "Undated", Content: "x"}, "sometime")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", post.Date)
}
