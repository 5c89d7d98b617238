package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/pkg/logger"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// ProfileRepository handles member profile storage
type ProfileRepository struct {
	store store.Client
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(s store.Client) *ProfileRepository {
	return &ProfileRepository{store: s}
}

// Create inserts a profile and returns the stored row
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	rec, err := r.store.Insert(ctx, models.CollectionProfiles, store.Record{
		"id":              p.ID,
		"email":           p.Email,
		"full_name":       p.FullName,
		"graduation_year": p.GraduationYear,
		"major":           p.Major,
		"company":         p.Company,
		"position":        p.Position,
		"location":        p.Location,
		"industry":        p.Industry,
		"bio":             p.Bio,
		"avatar_url":      p.AvatarURL,
		"phone":           p.Phone,
		"created_at":      p.CreatedAt,
		"updated_at":      p.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	created := profileFromRecord(rec)
	return &created, nil
}

// List returns every profile, newest first
func (r *ProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.store.Select(ctx, store.Query{
		Collection: models.CollectionProfiles,
		Order:      []store.Order{store.Desc("created_at"), store.Asc("id")},
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error listing profiles")
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}

	profiles := make([]models.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, profileFromRecord(row))
	}
	return profiles, nil
}

// GetByID retrieves a profile by id
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	rows, err := r.store.Select(ctx, store.Query{
		Collection: models.CollectionProfiles,
		Filters:    []store.Filter{store.Eq("id", id)},
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("error getting profile by ID: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	p := profileFromRecord(rows[0])
	return &p, nil
}

// NamesByIDs resolves display names for ids in one query. Unknown ids are absent from the map.
func (r *ProfileRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	ids = uniqueIDs(ids)
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	rows, err := r.store.Select(ctx, store.Query{
		Collection: models.CollectionProfiles,
		Columns:    []string{"id", "full_name"},
		Filters:    []store.Filter{store.In("id", ids)},
	})
	if err != nil {
		return nil, fmt.Errorf("error resolving profile names: %w", err)
	}
	for _, row := range rows {
		names[row.String("id")] = row.String("full_name")
	}
	return names, nil
}

// Update applies patch to the profile with id
func (r *ProfileRepository) Update(ctx context.Context, id string, patch store.Record) error {
	affected, err := r.store.Update(ctx, models.CollectionProfiles, patch, store.Eq("id", id))
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of profiles
func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, models.CollectionProfiles)
	if err != nil {
		return 0, fmt.Errorf("error counting profiles: %w", err)
	}
	return n, nil
}

func profileFromRecord(rec store.Record) models.Profile {
	return models.Profile{
		ID:             rec.String("id"),
		Email:          rec.String("email"),
		FullName:       rec.String("full_name"),
		GraduationYear: rec.StringPtr("graduation_year"),
		Major:          rec.StringPtr("major"),
		Company:        rec.StringPtr("company"),
		Position:       rec.StringPtr("position"),
		Location:       rec.StringPtr("location"),
		Industry:       rec.StringPtr("industry"),
		Bio:            rec.StringPtr("bio"),
		AvatarURL:      rec.StringPtr("avatar_url"),
		Phone:          rec.StringPtr("phone"),
		CreatedAt:      rec.Time("created_at"),
		UpdatedAt:      rec.Time("updated_at"),
	}
}
