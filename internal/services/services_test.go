package services

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"sisyphus/internal/repository"
)

type fixture struct {
	posts    *PostService
	comments *CommentService
	postDir  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	postDir := filepath.Join(root, "posts")
	logger := zaptest.NewLogger(t)

	postRepo := repository.NewPostRepository(postDir)
	commentRepo := repository.NewCommentRepository(filepath.Join(root, "comments"))

	ps := NewPostService(postRepo, commentRepo, logger)
	ps.now = func() time.Time { return time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC) }

	return &fixture{
		posts:    ps,
		comments: NewCommentService(commentRepo, postRepo, logger),
		postDir:  postDir,
	}
}
