package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// LikeRepository handles news likes. The (news, member) pair is unique in storage.
type LikeRepository struct {
	store store.Client
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(s store.Client) *LikeRepository {
	return &LikeRepository{store: s}
}

// Create records a like. An existing like fails with an error matching store.ErrConflict.
func (r *LikeRepository) Create(ctx context.Context, newsID, userID string, at time.Time) error {
	_, err := r.store.Insert(ctx, models.CollectionNewsLikes, store.Record{
		"news_id":    newsID,
		"user_id":    userID,
		"created_at": at,
	})
	if err != nil {
		return fmt.Errorf("error creating like: %w", err)
	}
	return nil
}

// Delete removes the member's like and returns the rows removed
func (r *LikeRepository) Delete(ctx context.Context, newsID, userID string) (int64, error) {
	n, err := r.store.Delete(ctx, models.CollectionNewsLikes,
		store.Eq("news_id", newsID),
		store.Eq("user_id", userID),
	)
	if err != nil {
		return 0, fmt.Errorf("error deleting like: %w", err)
	}
	return n, nil
}

// CountByNews returns like counts keyed by news id
func (r *LikeRepository) CountByNews(ctx context.Context, newsIDs []string) (map[string]int64, error) {
	counts, err := r.store.GroupCount(ctx, models.CollectionNewsLikes, "news_id", store.In("news_id", uniqueIDs(newsIDs)))
	if err != nil {
		return nil, fmt.Errorf("error counting likes: %w", err)
	}
	return counts, nil
}

// CountForNews returns the like count of one item
func (r *LikeRepository) CountForNews(ctx context.Context, newsID string) (int64, error) {
	n, err := r.store.Count(ctx, models.CollectionNewsLikes, store.Eq("news_id", newsID))
	if err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return n, nil
}

// LikedNewsIDs reports which of newsIDs the member has liked
func (r *LikeRepository) LikedNewsIDs(ctx context.Context, userID string, newsIDs []string) (map[string]bool, error) {
	rows, err := r.store.Select(ctx, store.Query{
		Collection: models.CollectionNewsLikes,
		Columns:    []string{"news_id"},
		Filters: []store.Filter{
			store.Eq("user_id", userID),
			store.In("news_id", uniqueIDs(newsIDs)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error loading member likes: %w", err)
	}
	liked := make(map[string]bool, len(rows))
	for _, row := range rows {
		liked[row.String("news_id")] = true
	}
	return liked, nil
}
