package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sisyphus/internal/constants"
	"sisyphus/internal/models"
	"sisyphus/internal/repository"
	"sisyphus/internal/utils"

	"go.uber.org/zap"
)

type PostService struct {
	repo     *repository.PostRepository
	comments *repository.CommentRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewPostService(repo *repository.PostRepository, comments *repository.CommentRepository, logger *zap.Logger) *PostService {
	return &PostService{
		repo:     repo,
		comments: comments,
		logger:   logger,
		now:      time.Now,
	}
}

// ListPosts returns every post's metadata, newest first.
func (s *PostService) ListPosts() ([]models.PostMeta, error) {
	return s.repo.FindAll()
}

// FilterPosts keeps posts in category (when set) whose title or description
// contains search, case-insensitively (when set).
func FilterPosts(posts []models.PostMeta, category, search string) []models.PostMeta {
	search = strings.ToLower(strings.TrimSpace(search))
	filtered := make([]models.PostMeta, 0, len(posts))
	for _, p := range posts {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Categories lists distinct non-empty categories in first-seen order.
func Categories(posts []models.PostMeta) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range posts {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	return cats
}

// GroupByCategory groups posts for the categories page. Groups appear in
// the order their newest post appears.
func (s *PostService) GroupByCategory() ([]models.CategoryGroup, error) {
	posts, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var groups []models.CategoryGroup
	for _, p := range posts {
		name := p.Category
		if name == "" {
			name = constants.UncategorizedCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, models.CategoryGroup{Name: name})
		}
		groups[i].Posts = append(groups[i].Posts, p)
	}
	return groups, nil
}

func (s *PostService) GetPost(slug string) (*models.Post, error) {
	return s.repo.FindBySlug(slug)
}

// GetRenderedPost loads a post and renders its body to HTML.
func (s *PostService) GetRenderedPost(slug string) (*models.RenderedPost, error) {
	post, err := s.repo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	html, err := utils.RenderMarkdown(post.Content)
	if err != nil {
		return nil, fmt.Errorf("render post %s: %w", slug, err)
	}
	return &models.RenderedPost{
		PostMeta:    post.PostMeta,
		DisplayDate: utils.DisplayDate(post.Date),
		HTML:        html,
	}, nil
}

// CreatePost publishes a new post dated today. The slug comes from the
// slug field when given, otherwise from the title. An existing post with
// the same slug is overwritten.
func (s *PostService) CreatePost(in models.PostInput) (*models.Post, error) {
	post, err := s.buildPost(in)
	if err != nil {
		return nil, err
	}
	post.Date = s.today()

	if err := s.repo.Save(post); err != nil {
		return nil, err
	}
	s.logger.Info("post created", zap.String("slug", post.Slug))
	return post, nil
}

// ImportPost saves a post brought in from elsewhere, keeping its date when
// it parses and using today otherwise.
func (s *PostService) ImportPost(in models.PostInput, date string) (*models.Post, error) {
	in.OriginalSlug = ""
	post, err := s.buildPost(in)
	if err != nil {
		return nil, err
	}
	if t, ok := utils.ParseDate(strings.TrimSpace(date)); ok {
		post.Date = t.Format(constants.DateLayout)
	} else {
		post.Date = s.today()
	}

	if err := s.repo.Save(post); err != nil {
		return nil, err
	}
	s.logger.Debug("post imported", zap.String("slug", post.Slug), zap.String("date", post.Date))
	return post, nil
}

// UpdatePost rewrites the post named by in.OriginalSlug, keeping its
// original date. If the slug changed the old file is removed and the
// post's comments follow it.
func (s *PostService) UpdatePost(in models.PostInput) (*models.Post, error) {
	if in.OriginalSlug == "" {
		return s.CreatePost(in)
	}
	if _, err := s.repo.FindBySlug(in.OriginalSlug); err != nil {
		return nil, err
	}

	post, err := s.buildPost(in)
	if err != nil {
		return nil, err
	}

	date, err := s.repo.ReadDate(in.OriginalSlug)
	if err != nil {
		s.logger.Warn("could not read original post date, using today",
			zap.String("slug", in.OriginalSlug), zap.Error(err))
		date = s.today()
	}
	post.Date = date

	if err := s.repo.Replace(in.OriginalSlug, post); err != nil {
		return nil, err
	}
	if post.Slug != in.OriginalSlug {
		if err := s.comments.Move(in.OriginalSlug, post.Slug); err != nil {
			s.logger.Warn("could not move comments", zap.String("from", in.OriginalSlug),
				zap.String("to", post.Slug), zap.Error(err))
		}
	}
	s.logger.Info("post updated", zap.String("slug", post.Slug), zap.String("originalSlug", in.OriginalSlug))
	return post, nil
}

// DeletePost removes a post and its comments.
func (s *PostService) DeletePost(slug string) error {
	if err := s.repo.Delete(slug); err != nil {
		return err
	}
	if err := s.comments.DeleteAll(slug); err != nil {
		s.logger.Warn("could not delete comments", zap.String("slug", slug), zap.Error(err))
	}
	s.logger.Info("post deleted", zap.String("slug", slug))
	return nil
}

func (s *PostService) buildPost(in models.PostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, ErrTitleContentRequired
	}

	slug := strings.TrimSpace(in.Slug)
	// An unchanged slug is kept verbatim so hand-named files are not renamed.
	if slug == "" || slug != in.OriginalSlug {
		if slug == "" {
			slug = title
		}
		slug = utils.Slugify(slug)
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = constants.DefaultCategory
	}

	return &models.Post{
		PostMeta: models.PostMeta{
			Slug:        slug,
			Title:       title,
			Category:    category,
			Description: strings.TrimSpace(in.Description),
			Tags:        in.TagList(),
		},
		Content: strings.TrimSpace(in.Content),
	}, nil
}

func (s *PostService) today() string {
	return s.now().UTC().Format(constants.DateLayout)
}

// IsNotFound reports whether err means the post does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrPostNotFound) || errors.Is(err, repository.ErrInvalidSlug)
}
