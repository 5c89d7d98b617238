package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/directory"
	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/pkg/validation"
)

// DirectoryService defines the member directory operations
type DirectoryService interface {
	// Search computes facets over every member and returns the members matching req.
	// A size of zero returns every match without pagination.
	Search(ctx context.Context, req dto.DirectoryRequest, page helpers.Page) (*dto.DirectoryResponse, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	// UpdateOwnProfile applies req to the caller's own profile
	UpdateOwnProfile(ctx context.Context, memberID string, req *dto.UpdateProfileRequest) (*models.Profile, error)
}

// directoryServiceImpl implements the DirectoryService interface
type directoryServiceImpl struct {
	profileRepo *repositories.ProfileRepository
	now         Clock
	logger      zerolog.Logger
}

// NewDirectoryService creates a new directory service instance
func NewDirectoryService(profileRepo *repositories.ProfileRepository, clock Clock, logger zerolog.Logger) DirectoryService {
	return &directoryServiceImpl{
		profileRepo: profileRepo,
		now:         clock,
		logger:      logger,
	}
}

// maxFacetFilterLength bounds the year, industry and location filters
const maxFacetFilterLength = 100

// Search implements DirectoryService
func (s *directoryServiceImpl) Search(ctx context.Context, req dto.DirectoryRequest, page helpers.Page) (*dto.DirectoryResponse, error) {
	query := directory.Query{
		Text:     strings.TrimSpace(req.Q),
		Year:     strings.TrimSpace(req.Year),
		Industry: strings.TrimSpace(req.Industry),
		Location: strings.TrimSpace(req.Location),
	}
	// Facet filters are exact matches against stored free text; only their length is bounded.
	for field, value := range map[string]string{"year": query.Year, "industry": query.Industry, "location": query.Location} {
		if utf8.RuneCountInString(value) > maxFacetFilterLength {
			return nil, apperrors.NewValidationError(field, fmt.Sprintf("%s filter is longer than %d characters", field, maxFacetFilterLength))
		}
	}

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error loading profiles for directory")
		return nil, fmt.Errorf("error loading directory: %w", err)
	}

	members := directory.Filter(profiles, query)
	resp := &dto.DirectoryResponse{
		Facets: directory.ComputeFacets(profiles),
		Total:  len(members),
	}
	if page.Paged() {
		start, end := page.Bounds(len(members))
		members = members[start:end]
		info := page.Info(resp.Total)
		resp.Pagination = &info
	}
	resp.Members = members

	s.logger.Debug().
		Int("profiles", len(profiles)).
		Int("matches", resp.Total).
		Msg("Directory search completed")
	return resp, nil
}

// GetProfile implements DirectoryService
func (s *directoryServiceImpl) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("id", "profile id is required")
	}
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("profile not found")
		}
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return profile, nil
}

// UpdateOwnProfile implements DirectoryService
func (s *directoryServiceImpl) UpdateOwnProfile(ctx context.Context, memberID string, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty update", apperrors.ErrValidationFailed)
	}

	patch := store.Record{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, apperrors.NewValidationError("fullName", "full name cannot be empty")
		}
		patch["full_name"] = name
	}
	if req.GraduationYear != nil {
		year := strings.TrimSpace(*req.GraduationYear)
		if year != "" && !validation.IsYear(year) {
			return nil, apperrors.NewValidationError("graduationYear", "graduation year must be a four-digit number")
		}
		patch["graduation_year"] = nullable(year)
	}
	optional := []struct {
		column string
		value  *string
	}{
		{"major", req.Major},
		{"company", req.Company},
		{"position", req.Position},
		{"location", req.Location},
		{"industry", req.Industry},
		{"bio", req.Bio},
		{"avatar_url", req.AvatarURL},
		{"phone", req.Phone},
	}
	for _, f := range optional {
		if f.value != nil {
			patch[f.column] = nullable(strings.TrimSpace(*f.value))
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidationFailed)
	}
	patch["updated_at"] = s.now()

	if err := s.profileRepo.Update(ctx, memberID, patch); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("profile not found")
		}
		s.logger.Error().Err(err).Str("memberId", memberID).Msg("Error updating profile")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	s.logger.Info().Str("memberId", memberID).Int("fields", len(patch)-1).Msg("Profile updated")
	return s.GetProfile(ctx, memberID)
}

// nullable maps "" to NULL so cleared fields drop out of facets
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
