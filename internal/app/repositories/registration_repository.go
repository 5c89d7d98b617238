package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// RegistrationRepository handles event registrations.
// Only rows with status registered count as active.
type RegistrationRepository struct {
	store store.Client
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(s store.Client) *RegistrationRepository {
	return &RegistrationRepository{store: s}
}

// Create inserts an active registration. A duplicate (event, member) pair
// fails with an error matching store.ErrConflict.
func (r *RegistrationRepository) Create(ctx context.Context, eventID, userID string, at time.Time) (*models.EventRegistration, error) {
	rec, err := r.store.Insert(ctx, models.CollectionRegistrations, store.Record{
		"event_id":   eventID,
		"user_id":    userID,
		"status":     string(models.RegistrationStatusRegistered),
		"created_at": at,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating registration: %w", err)
	}
	return &models.EventRegistration{
		ID:        rec.String("id"),
		EventID:   rec.String("event_id"),
		UserID:    rec.String("user_id"),
		Status:    models.RegistrationStatus(rec.String("status")),
		CreatedAt: rec.Time("created_at"),
	}, nil
}

// Reactivate flips the pair's cancelled row back to registered. It reports
// false when there is no cancelled row, i.e. the registration is already active.
func (r *RegistrationRepository) Reactivate(ctx context.Context, eventID, userID string) (bool, error) {
	n, err := r.store.Update(ctx, models.CollectionRegistrations,
		store.Record{"status": string(models.RegistrationStatusRegistered)},
		store.Eq("event_id", eventID),
		store.Eq("user_id", userID),
		store.Eq("status", string(models.RegistrationStatusCancelled)),
	)
	if err != nil {
		return false, fmt.Errorf("error reactivating registration: %w", err)
	}
	return n > 0, nil
}

// Delete removes the member's registration for the event and returns the rows removed
func (r *RegistrationRepository) Delete(ctx context.Context, eventID, userID string) (int64, error) {
	n, err := r.store.Delete(ctx, models.CollectionRegistrations,
		store.Eq("event_id", eventID),
		store.Eq("user_id", userID),
	)
	if err != nil {
		return 0, fmt.Errorf("error deleting registration: %w", err)
	}
	return n, nil
}

// CountByEvents returns active registration counts keyed by event id. Events without registrations are absent.
func (r *RegistrationRepository) CountByEvents(ctx context.Context, eventIDs []string) (map[string]int64, error) {
	counts, err := r.store.GroupCount(ctx, models.CollectionRegistrations, "event_id",
		store.In("event_id", uniqueIDs(eventIDs)),
		store.Eq("status", string(models.RegistrationStatusRegistered)),
	)
	if err != nil {
		return nil, fmt.Errorf("error counting registrations: %w", err)
	}
	return counts, nil
}

// CountForEvent returns the active registrations of one event
func (r *RegistrationRepository) CountForEvent(ctx context.Context, eventID string) (int64, error) {
	n, err := r.store.Count(ctx, models.CollectionRegistrations,
		store.Eq("event_id", eventID),
		store.Eq("status", string(models.RegistrationStatusRegistered)),
	)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return n, nil
}

// CountForUser returns the member's active registrations
func (r *RegistrationRepository) CountForUser(ctx context.Context, userID string) (int64, error) {
	n, err := r.store.Count(ctx, models.CollectionRegistrations,
		store.Eq("user_id", userID),
		store.Eq("status", string(models.RegistrationStatusRegistered)),
	)
	if err != nil {
		return 0, fmt.Errorf("error counting member registrations: %w", err)
	}
	return n, nil
}

// RegisteredEventIDs reports which of eventIDs the member holds an active registration for
func (r *RegistrationRepository) RegisteredEventIDs(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error) {
	rows, err := r.store.Select(ctx, store.Query{
		Collection: models.CollectionRegistrations,
		Columns:    []string{"event_id"},
		Filters: []store.Filter{
			store.Eq("user_id", userID),
			store.Eq("status", string(models.RegistrationStatusRegistered)),
			store.In("event_id", uniqueIDs(eventIDs)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error loading member registrations: %w", err)
	}
	registered := make(map[string]bool, len(rows))
	for _, row := range rows {
		registered[row.String("event_id")] = true
	}
	return registered, nil
}
