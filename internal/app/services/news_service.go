package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/cache"
	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// NewsService defines the news engagement operations
type NewsService interface {
	// ListNewsWithEngagement returns news newest first with like and comment
	// counts and whether memberID liked each item. A failed counter query
	// leaves that counter at zero.
	ListNewsWithEngagement(ctx context.Context, memberID string) ([]dto.NewsResponse, error)
	// ToggleLike flips the member's like on the item and returns the new state.
	ToggleLike(ctx context.Context, newsID, memberID string) (*dto.LikeStateResponse, error)
	// AddComment appends a comment. Blank content fails with apperrors.ErrEmptyComment.
	AddComment(ctx context.Context, newsID, memberID, content string) (*dto.AddCommentResponse, error)
	// RecordView counts one view. Failures are logged, never returned.
	RecordView(ctx context.Context, newsID string)
	// ListComments returns the item's comments newest first
	ListComments(ctx context.Context, newsID string) ([]dto.CommentResponse, error)
	CreateNews(ctx context.Context, authorID string, req *dto.CreateNewsRequest) (*dto.NewsResponse, error)
}

// newsServiceImpl implements the NewsService interface
type newsServiceImpl struct {
	newsRepo    *repositories.NewsRepository
	likeRepo    *repositories.LikeRepository
	commentRepo *repositories.CommentRepository
	profileRepo *repositories.ProfileRepository
	cache       cache.Cache
	now         Clock
	logger      zerolog.Logger
}

// NewNewsService creates a new news service instance
func NewNewsService(
	newsRepo *repositories.NewsRepository,
	likeRepo *repositories.LikeRepository,
	commentRepo *repositories.CommentRepository,
	profileRepo *repositories.ProfileRepository,
	c cache.Cache,
	clock Clock,
	logger zerolog.Logger,
) NewsService {
	return &newsServiceImpl{
		newsRepo:    newsRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		profileRepo: profileRepo,
		cache:       c,
		now:         clock,
		logger:      logger,
	}
}

// ListNewsWithEngagement implements NewsService
func (s *newsServiceImpl) ListNewsWithEngagement(ctx context.Context, memberID string) ([]dto.NewsResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "NewsService.ListNewsWithEngagement")
	defer span.End()

	items, err := s.newsRepo.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("error listing news: %w", err)
	}

	ids := make([]string, 0, len(items))
	authors := make([]string, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
		authors = append(authors, models.Value(items[i].AuthorID))
	}

	var (
		likes    map[string]int64
		comments map[string]int64
		liked    map[string]bool
		names    map[string]string
		mu       sync.Mutex
		failed   []string
	)
	partial := func(field string, err error) {
		span.RecordError(err)
		s.logger.Warn().Err(err).Str("field", field).Msg("Engagement sub-query failed, defaulting field")
		mu.Lock()
		failed = append(failed, field)
		mu.Unlock()
	}

	// Each sub-query defaults its own field on failure and returns nil, so g.Wait never reports an error.
	var g errgroup.Group
	g.Go(func() error {
		counts, err := s.likeRepo.CountByNews(ctx, ids)
		if err != nil {
			partial("likesCount", err)
			return nil
		}
		likes = counts
		return nil
	})
	g.Go(func() error {
		counts, err := s.commentRepo.CountByNews(ctx, ids)
		if err != nil {
			partial("commentsCount", err)
			return nil
		}
		comments = counts
		return nil
	})
	g.Go(func() error {
		if memberID == "" {
			return nil
		}
		set, err := s.likeRepo.LikedNewsIDs(ctx, memberID, ids)
		if err != nil {
			partial("userHasLiked", err)
			return nil
		}
		liked = set
		return nil
	})
	g.Go(func() error {
		resolved, err := s.profileRepo.NamesByIDs(ctx, authors)
		if err != nil {
			partial("authorName", err)
			return nil
		}
		names = resolved
		return nil
	})
	_ = g.Wait()

	out := make([]dto.NewsResponse, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, dto.NewsResponse{
			NewsItem:      item,
			LikesCount:    likes[item.ID],
			CommentsCount: comments[item.ID],
			UserHasLiked:  liked[item.ID],
			AuthorName:    names[models.Value(item.AuthorID)],
		})
	}

	span.SetAttributes(
		attribute.Int("news.count", len(out)),
		attribute.StringSlice("news.partial", failed),
	)
	return out, nil
}

// ToggleLike implements NewsService.
// The unique (news, member) pair decides races: delete first, and if nothing
// was removed insert; a conflicting insert means a concurrent like already won.
func (s *newsServiceImpl) ToggleLike(ctx context.Context, newsID, memberID string) (*dto.LikeStateResponse, error) {
	if err := s.ensureNews(ctx, newsID); err != nil {
		return nil, err
	}

	removed, err := s.likeRepo.Delete(ctx, newsID, memberID)
	if err != nil {
		s.logger.Error().Err(err).Str("newsId", newsID).Str("memberId", memberID).Msg("Error removing like")
		return nil, fmt.Errorf("error toggling like: %w", err)
	}

	liked := false
	if removed == 0 {
		liked = true
		if err := s.likeRepo.Create(ctx, newsID, memberID, s.now()); err != nil && !store.IsConflict(err) {
			s.logger.Error().Err(err).Str("newsId", newsID).Str("memberId", memberID).Msg("Error adding like")
			return nil, fmt.Errorf("error toggling like: %w", err)
		}
	}

	count, err := s.likeRepo.CountForNews(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}

	s.logger.Debug().Str("newsId", newsID).Str("memberId", memberID).Bool("liked", liked).Msg("Like toggled")
	return &dto.LikeStateResponse{NewsID: newsID, Liked: liked, LikesCount: count}, nil
}

// AddComment implements NewsService
func (s *newsServiceImpl) AddComment(ctx context.Context, newsID, memberID, content string) (*dto.AddCommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyComment
	}
	if err := s.ensureNews(ctx, newsID); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.Create(ctx, &models.NewsComment{
		NewsID:    newsID,
		UserID:    memberID,
		Content:   content,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("newsId", newsID).Str("memberId", memberID).Msg("Error adding comment")
		return nil, fmt.Errorf("error adding comment: %w", err)
	}

	count, err := s.commentRepo.CountForNews(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("error counting comments: %w", err)
	}
	names, err := s.profileRepo.NamesByIDs(ctx, []string{memberID})
	if err != nil {
		s.logger.Warn().Err(err).Str("memberId", memberID).Msg("Could not resolve comment author name")
	}

	return &dto.AddCommentResponse{
		Comment:       dto.CommentResponse{NewsComment: *created, AuthorName: names[memberID]},
		CommentsCount: count,
	}, nil
}

// RecordView implements NewsService
func (s *newsServiceImpl) RecordView(ctx context.Context, newsID string) {
	n, err := s.newsRepo.IncrementViews(ctx, newsID)
	if err != nil {
		s.logger.Warn().Err(err).Str("newsId", newsID).Msg("Failed to record view")
		return
	}
	if n == 0 {
		s.logger.Debug().Str("newsId", newsID).Msg("View recorded for unknown news item")
	}
}

// ListComments implements NewsService
func (s *newsServiceImpl) ListComments(ctx context.Context, newsID string) ([]dto.CommentResponse, error) {
	if err := s.ensureNews(ctx, newsID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByNews(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	authors := make([]string, 0, len(comments))
	for i := range comments {
		authors = append(authors, comments[i].UserID)
	}
	names, err := s.profileRepo.NamesByIDs(ctx, authors)
	if err != nil {
		s.logger.Warn().Err(err).Str("newsId", newsID).Msg("Could not resolve comment author names")
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, dto.CommentResponse{NewsComment: comments[i], AuthorName: names[comments[i].UserID]})
	}
	return out, nil
}

// CreateNews implements NewsService
func (s *newsServiceImpl) CreateNews(ctx context.Context, authorID string, req *dto.CreateNewsRequest) (*dto.NewsResponse, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("title", "title cannot be empty")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewValidationError("content", "content cannot be empty")
	}

	author := authorID
	created, err := s.newsRepo.Create(ctx, &models.NewsItem{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Summary:     strings.TrimSpace(req.Summary),
		ImageURL:    req.ImageURL,
		Category:    strings.TrimSpace(req.Category),
		AuthorID:    &author,
		ViewCount:   0,
		PublishedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating news item: %w", err)
	}
	invalidateDashboard(ctx, s.cache, s.logger)

	names, err := s.profileRepo.NamesByIDs(ctx, []string{authorID})
	if err != nil {
		s.logger.Warn().Err(err).Str("authorId", authorID).Msg("Could not resolve author name")
	}
	s.logger.Info().Str("newsId", created.ID).Str("authorId", authorID).Msg("News item created")
	return &dto.NewsResponse{NewsItem: *created, AuthorName: names[authorID]}, nil
}

func (s *newsServiceImpl) ensureNews(ctx context.Context, newsID string) error {
	if strings.TrimSpace(newsID) == "" {
		return apperrors.NewValidationError("id", "news id is required")
	}
	exists, err := s.newsRepo.Exists(ctx, newsID)
	if err != nil {
		return fmt.Errorf("error checking news item: %w", err)
	}
	if !exists {
		return apperrors.NewResourceNotFoundError("news item not found")
	}
	return nil
}

