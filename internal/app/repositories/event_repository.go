package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/logger"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// EventRepository handles event storage
type EventRepository struct {
	store store.Client
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(s store.Client) *EventRepository {
	return &EventRepository{store: s}
}

// Create inserts an event and returns the stored row
func (r *EventRepository) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	rec, err := r.store.Insert(ctx, models.CollectionEvents, store.Record{
		"id":            e.ID,
		"title":         e.Title,
		"description":   e.Description,
		"event_date":    e.EventDate,
		"location":      e.Location,
		"max_attendees": e.MaxAttendees,
		"image_url":     e.ImageURL,
		"category":      e.Category,
		"organizer_id":  e.OrganizerID,
		"status":        string(e.Status),
		"created_at":    e.CreatedAt,
	})
	if err != nil {
		logger.Error().Err(err).Str("title", e.Title).Msg("Error creating event")
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	created := eventFromRecord(rec)
	return &created, nil
}

// List returns every event, soonest first
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	return r.selectEvents(ctx, store.Query{
		Collection: models.CollectionEvents,
		Order:      []store.Order{store.Asc("event_date"), store.Asc("id")},
	})
}

// Upcoming returns up to limit events with status upcoming dated at or after from, soonest first
func (r *EventRepository) Upcoming(ctx context.Context, from time.Time, limit uint64) ([]models.Event, error) {
	return r.selectEvents(ctx, store.Query{
		Collection: models.CollectionEvents,
		Filters: []store.Filter{
			store.Eq("status", string(models.EventStatusUpcoming)),
			store.Gte("event_date", from),
		},
		Order: []store.Order{store.Asc("event_date"), store.Asc("id")},
		Limit: limit,
	})
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	events, err := r.selectEvents(ctx, store.Query{
		Collection: models.CollectionEvents,
		Filters:    []store.Filter{store.Eq("id", id)},
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return &events[0], nil
}

// Count returns the number of events
func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, models.CollectionEvents)
	if err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return n, nil
}

// MarkPast flips upcoming events dated before cutoff to past and returns how many changed
func (r *EventRepository) MarkPast(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := r.store.Update(ctx, models.CollectionEvents,
		store.Record{"status": string(models.EventStatusPast)},
		store.Eq("status", string(models.EventStatusUpcoming)),
		store.Lt("event_date", cutoff),
	)
	if err != nil {
		return 0, fmt.Errorf("error marking events past: %w", err)
	}
	return n, nil
}

func (r *EventRepository) selectEvents(ctx context.Context, q store.Query) ([]models.Event, error) {
	rows, err := r.store.Select(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying events")
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	events := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, eventFromRecord(row))
	}
	return events, nil
}

func eventFromRecord(rec store.Record) models.Event {
	return models.Event{
		ID:           rec.String("id"),
		Title:        rec.String("title"),
		Description:  rec.String("description"),
		EventDate:    rec.Time("event_date"),
		Location:     rec.String("location"),
		MaxAttendees: int(rec.Int64("max_attendees")),
		ImageURL:     rec.StringPtr("image_url"),
		Category:     rec.String("category"),
		OrganizerID:  rec.StringPtr("organizer_id"),
		Status:       models.EventStatus(rec.String("status")),
		CreatedAt:    rec.Time("created_at"),
	}
}
