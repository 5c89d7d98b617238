package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/logger"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// NewsRepository handles news item storage
type NewsRepository struct {
	store store.Client
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(s store.Client) *NewsRepository {
	return &NewsRepository{store: s}
}

// Create inserts a news item and returns the stored row
func (r *NewsRepository) Create(ctx context.Context, n *models.NewsItem) (*models.NewsItem, error) {
	rec, err := r.store.Insert(ctx, models.CollectionNews, store.Record{
		"id":           n.ID,
		"title":        n.Title,
		"content":      n.Content,
		"summary":      n.Summary,
		"image_url":    n.ImageURL,
		"category":     n.Category,
		"author_id":    n.AuthorID,
		"view_count":   n.ViewCount,
		"published_at": n.PublishedAt,
	})
	if err != nil {
		logger.Error().Err(err).Str("title", n.Title).Msg("Error creating news item")
		return nil, fmt.Errorf("error creating news item: %w", err)
	}
	created := newsFromRecord(rec)
	return &created, nil
}

// List returns news items, most recently published first. A zero limit returns all.
func (r *NewsRepository) List(ctx context.Context, limit uint64) ([]models.NewsItem, error) {
	return r.selectNews(ctx, store.Query{
		Collection: models.CollectionNews,
		Order:      []store.Order{store.Desc("published_at"), store.Asc("id")},
		Limit:      limit,
	})
}

// GetByID retrieves a news item by id
func (r *NewsRepository) GetByID(ctx context.Context, id string) (*models.NewsItem, error) {
	items, err := r.selectNews(ctx, store.Query{
		Collection: models.CollectionNews,
		Filters:    []store.Filter{store.Eq("id", id)},
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("news item %s: %w", id, ErrNotFound)
	}
	return &items[0], nil
}

// Exists reports whether a news item with id is stored
func (r *NewsRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.store.Count(ctx, models.CollectionNews, store.Eq("id", id))
	if err != nil {
		return false, fmt.Errorf("error checking news item: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of news items
func (r *NewsRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, models.CollectionNews)
	if err != nil {
		return 0, fmt.Errorf("error counting news: %w", err)
	}
	return n, nil
}

// IncrementViews adds one to the item's view count in a single statement
func (r *NewsRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	n, err := r.store.Increment(ctx, models.CollectionNews, "view_count", 1, store.Eq("id", id))
	if err != nil {
		return 0, fmt.Errorf("error incrementing view count: %w", err)
	}
	return n, nil
}

func (r *NewsRepository) selectNews(ctx context.Context, q store.Query) ([]models.NewsItem, error) {
	rows, err := r.store.Select(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying news")
		return nil, fmt.Errorf("error querying news: %w", err)
	}
	items := make([]models.NewsItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, newsFromRecord(row))
	}
	return items, nil
}

func newsFromRecord(rec store.Record) models.NewsItem {
	return models.NewsItem{
		ID:          rec.String("id"),
		Title:       rec.String("title"),
		Content:     rec.String("content"),
		Summary:     rec.String("summary"),
		ImageURL:    rec.StringPtr("image_url"),
		Category:    rec.String("category"),
		AuthorID:    rec.StringPtr("author_id"),
		ViewCount:   rec.Int64("view_count"),
		PublishedAt: rec.Time("published_at"),
	}
}
