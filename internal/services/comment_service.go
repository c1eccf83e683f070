package services

import (
	"strings"
	"unicode/utf8"

	"sisyphus/internal/constants"
	"sisyphus/internal/models"
	"sisyphus/internal/repository"

	"go.uber.org/zap"
)

// MaxCommentLength bounds a comment's size in characters.
const MaxCommentLength = 5000

type CommentService struct {
	repo   *repository.CommentRepository
	posts  *repository.PostRepository
	logger *zap.Logger
}

func NewCommentService(repo *repository.CommentRepository, posts *repository.PostRepository, logger *zap.Logger) *CommentService {
	return &CommentService{repo: repo, posts: posts, logger: logger}
}

// List returns a post's comments, oldest first.
func (s *CommentService) List(slug string) ([]models.Comment, error) {
	return s.repo.FindBySlug(slug)
}

// Add stores a comment on an existing post. Comments written while logged
// in are attributed to the admin.
func (s *CommentService) Add(slug, content string, isAdmin bool) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return models.Comment{}, ErrCommentTooLong
	}
	if _, err := s.posts.FindBySlug(slug); err != nil {
		return models.Comment{}, err
	}

	author := constants.AuthorVisitor
	if isAdmin {
		author = constants.AuthorAdmin
	}
	c, err := s.repo.Append(slug, models.Comment{
		Content: content,
		Author:  author,
		IsAdmin: isAdmin,
	})
	if err != nil {
		return models.Comment{}, err
	}
	s.logger.Info("comment added", zap.String("slug", slug), zap.String("id", c.ID), zap.String("author", author))
	return c, nil
}

// Delete removes a comment. Only the admin may delete.
func (s *CommentService) Delete(slug, id string, isAdmin bool) error {
	if !isAdmin {
		return ErrUnauthorized
	}
	if err := s.repo.Delete(slug, id); err != nil {
		return err
	}
	s.logger.Info("comment deleted", zap.String("slug", slug), zap.String("id", id))
	return nil
}
