package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// CommentRepository handles append-only news comments
type CommentRepository struct {
	store store.Client
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(s store.Client) *CommentRepository {
	return &CommentRepository{store: s}
}

// Create appends a comment and returns the stored row
func (r *CommentRepository) Create(ctx context.Context, c *models.NewsComment) (*models.NewsComment, error) {
	rec, err := r.store.Insert(ctx, models.CollectionNewsComments, store.Record{
		"news_id":    c.NewsID,
		"user_id":    c.UserID,
		"content":    c.Content,
		"created_at": c.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	created := commentFromRecord(rec)
	return &created, nil
}

// ListByNews returns an item's comments, newest first
func (r *CommentRepository) ListByNews(ctx context.Context, newsID string) ([]models.NewsComment, error) {
	rows, err := r.store.Select(ctx, store.Query{
		Collection: models.CollectionNewsComments,
		Filters:    []store.Filter{store.Eq("news_id", newsID)},
		Order:      []store.Order{store.Desc("created_at"), store.Desc("id")},
	})
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	comments := make([]models.NewsComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, commentFromRecord(row))
	}
	return comments, nil
}

// CountByNews returns comment counts keyed by news id
func (r *CommentRepository) CountByNews(ctx context.Context, newsIDs []string) (map[string]int64, error) {
	counts, err := r.store.GroupCount(ctx, models.CollectionNewsComments, "news_id", store.In("news_id", uniqueIDs(newsIDs)))
	if err != nil {
		return nil, fmt.Errorf("error counting comments: %w", err)
	}
	return counts, nil
}

// CountForNews returns the comment count of one item
func (r *CommentRepository) CountForNews(ctx context.Context, newsID string) (int64, error) {
	n, err := r.store.Count(ctx, models.CollectionNewsComments, store.Eq("news_id", newsID))
	if err != nil {
		return 0, fmt.Errorf("error counting comments: %w", err)
	}
	return n, nil
}

func commentFromRecord(rec store.Record) models.NewsComment {
	return models.NewsComment{
		ID:        rec.String("id"),
		NewsID:    rec.String("news_id"),
		UserID:    rec.String("user_id"),
		Content:   rec.String("content"),
		CreatedAt: rec.Time("created_at"),
	}
}
