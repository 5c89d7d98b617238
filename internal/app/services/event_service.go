package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/directory"
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

const defaultMaxAttendees = 50

// EventService defines the event registration ledger
type EventService interface {
	// ListEventsWithCounts returns events soonest first with registration
	// counts, organizer names and the caller's registration state.
	ListEventsWithCounts(ctx context.Context, memberID string, q directory.EventQuery) (*dto.EventListResponse, error)
	GetEvent(ctx context.Context, eventID, memberID string) (*dto.EventResponse, error)
	CreateEvent(ctx context.Context, organizerID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// Register fails with apperrors.ErrAlreadyRegistered when the member already holds a registration.
	Register(ctx context.Context, eventID, memberID string) (*dto.RegistrationResponse, error)
	// Cancel removes the member's registration. Cancelling nothing succeeds.
	Cancel(ctx context.Context, eventID, memberID string) (*dto.RegistrationResponse, error)
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo        *repositories.EventRepository
	registrationRepo *repositories.RegistrationRepository
	profileRepo      *repositories.ProfileRepository
	cache            cache.Cache
	policy           RegistrationPolicy
	now              Clock
	logger           zerolog.Logger
}

// RegistrationPolicy holds the opt-in registration checks. The zero value
// accepts every registration that is not a duplicate.
type RegistrationPolicy struct {
	// EnforceCapacity rejects registrations once max attendees is reached
	EnforceCapacity bool
	// RejectClosed rejects registrations for past and cancelled events
	RejectClosed bool
}

// NewEventService creates a new event service instance
func NewEventService(
	eventRepo *repositories.EventRepository,
	registrationRepo *repositories.RegistrationRepository,
	profileRepo *repositories.ProfileRepository,
	c cache.Cache,
	policy RegistrationPolicy,
	clock Clock,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		profileRepo:      profileRepo,
		cache:            c,
		policy:           policy,
		now:              clock,
		logger:           logger,
	}
}

// ListEventsWithCounts implements EventService
func (s *eventServiceImpl) ListEventsWithCounts(ctx context.Context, memberID string, q directory.EventQuery) (*dto.EventListResponse, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "EventService.ListEventsWithCounts")
	defer span.End()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	q.Text = strings.TrimSpace(q.Text)
	q.Category = strings.TrimSpace(q.Category)
	matched := directory.FilterEvents(events, q)

	ids := make([]string, 0, len(matched))
	organizers := make([]string, 0, len(matched))
	for i := range matched {
		ids = append(ids, matched[i].ID)
		organizers = append(organizers, models.Value(matched[i].OrganizerID))
	}

	var (
		counts     map[string]int64
		registered map[string]bool
		names      map[string]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.registrationRepo.CountByEvents(gctx, ids)
		return err
	})
	g.Go(func() error {
		if memberID == "" {
			return nil
		}
		var err error
		registered, err = s.registrationRepo.RegisteredEventIDs(gctx, memberID, ids)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = s.profileRepo.NamesByIDs(gctx, organizers)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		s.logger.Error().Err(err).Msg("Error aggregating event registrations")
		return nil, fmt.Errorf("error aggregating event registrations: %w", err)
	}

	resp := &dto.EventListResponse{
		Events:     make([]dto.EventResponse, 0, len(matched)),
		Categories: directory.ComputeEventFacets(events),
		Total:      len(matched),
	}
	for i := range matched {
		e := matched[i]
		resp.Events = append(resp.Events, toEventResponse(e, counts[e.ID], registered[e.ID], names[models.Value(e.OrganizerID)]))
	}
	span.SetAttributes(attribute.Int("events.count", len(resp.Events)))
	return resp, nil
}

// GetEvent implements EventService
func (s *eventServiceImpl) GetEvent(ctx context.Context, eventID, memberID string) (*dto.EventResponse, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.registrationRepo.CountForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error counting registrations: %w", err)
	}
	var isRegistered bool
	if memberID != "" {
		registered, err := s.registrationRepo.RegisteredEventIDs(ctx, memberID, []string{eventID})
		if err != nil {
			return nil, fmt.Errorf("error loading registration state: %w", err)
		}
		isRegistered = registered[eventID]
	}
	names, err := s.profileRepo.NamesByIDs(ctx, []string{models.Value(event.OrganizerID)})
	if err != nil {
		s.logger.Warn().Err(err).Str("eventId", eventID).Msg("Could not resolve organizer name")
	}

	resp := toEventResponse(*event, count, isRegistered, names[models.Value(event.OrganizerID)])
	return &resp, nil
}

// CreateEvent implements EventService
func (s *eventServiceImpl) CreateEvent(ctx context.Context, organizerID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("title", "title cannot be empty")
	}
	if req.EventDate.IsZero() {
		return nil, apperrors.NewValidationError("eventDate", "event date is required")
	}
	if req.MaxAttendees < 0 {
		return nil, apperrors.NewValidationError("maxAttendees", "max attendees cannot be negative")
	}

	maxAttendees := req.MaxAttendees
	if maxAttendees == 0 {
		maxAttendees = defaultMaxAttendees
	}
	organizer := organizerID
	event := &models.Event{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		EventDate:    req.EventDate.UTC(),
		Location:     strings.TrimSpace(req.Location),
		MaxAttendees: maxAttendees,
		ImageURL:     req.ImageURL,
		Category:     strings.TrimSpace(req.Category),
		OrganizerID:  &organizer,
		Status:       models.EventStatusUpcoming,
		CreatedAt:    s.now(),
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	invalidateDashboard(ctx, s.cache, s.logger)

	s.logger.Info().Str("eventId", created.ID).Str("organizerId", organizerID).Msg("Event created")
	return s.GetEvent(ctx, created.ID, organizerID)
}

// Register implements EventService
func (s *eventServiceImpl) Register(ctx context.Context, eventID, memberID string) (*dto.RegistrationResponse, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if s.policy.RejectClosed && !event.IsOpen() {
		return nil, apperrors.ErrEventClosed
	}

	if s.policy.EnforceCapacity {
		// Check-then-insert: concurrent registrations can still overshoot by a few.
		count, err := s.registrationRepo.CountForEvent(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("error counting registrations: %w", err)
		}
		if event.IsFull(count) {
			return nil, apperrors.ErrEventFull
		}
	}

	if _, err := s.registrationRepo.Create(ctx, eventID, memberID, s.now()); err != nil {
		if !store.IsConflict(err) {
			s.logger.Error().Err(err).Str("eventId", eventID).Str("memberId", memberID).Msg("Error registering for event")
			return nil, fmt.Errorf("error registering for event: %w", err)
		}
		// The pair already has a row; only a cancelled one may be taken back.
		reactivated, rerr := s.registrationRepo.Reactivate(ctx, eventID, memberID)
		if rerr != nil {
			s.logger.Error().Err(rerr).Str("eventId", eventID).Str("memberId", memberID).Msg("Error reactivating registration")
			return nil, fmt.Errorf("error registering for event: %w", rerr)
		}
		if !reactivated {
			s.logger.Debug().Str("eventId", eventID).Str("memberId", memberID).Msg("Duplicate registration rejected")
			return nil, apperrors.ErrAlreadyRegistered
		}
		s.logger.Info().Str("eventId", eventID).Str("memberId", memberID).Msg("Cancelled registration reactivated")
		return s.registrationState(ctx, event, true)
	}

	s.logger.Info().Str("eventId", eventID).Str("memberId", memberID).Msg("Member registered for event")
	return s.registrationState(ctx, event, true)
}

// Cancel implements EventService
func (s *eventServiceImpl) Cancel(ctx context.Context, eventID, memberID string) (*dto.RegistrationResponse, error) {
	removed, err := s.registrationRepo.Delete(ctx, eventID, memberID)
	if err != nil {
		s.logger.Error().Err(err).Str("eventId", eventID).Str("memberId", memberID).Msg("Error cancelling registration")
		return nil, fmt.Errorf("error cancelling registration: %w", err)
	}
	s.logger.Info().Str("eventId", eventID).Str("memberId", memberID).Int64("removed", removed).Msg("Registration cancelled")

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &dto.RegistrationResponse{EventID: eventID}, nil
		}
		return nil, fmt.Errorf("error getting event: %w", err)
	}
	return s.registrationState(ctx, event, false)
}

func (s *eventServiceImpl) getEvent(ctx context.Context, eventID string) (*models.Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, apperrors.NewValidationError("id", "event id is required")
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError("event not found")
		}
		return nil, fmt.Errorf("error getting event: %w", err)
	}
	return event, nil
}

// registrationState reloads the event's count after a register or cancel
func (s *eventServiceImpl) registrationState(ctx context.Context, event *models.Event, isRegistered bool) (*dto.RegistrationResponse, error) {
	count, err := s.registrationRepo.CountForEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting registrations: %w", err)
	}
	return &dto.RegistrationResponse{
		EventID:           event.ID,
		IsRegistered:      isRegistered,
		RegistrationCount: count,
		SpotsLeft:         event.Remaining(count),
		IsFull:            event.IsFull(count),
	}, nil
}

func toEventResponse(e models.Event, count int64, isRegistered bool, organizerName string) dto.EventResponse {
	return dto.EventResponse{
		Event:             e,
		RegistrationCount: count,
		SpotsLeft:         e.Remaining(count),
		IsFull:            e.IsFull(count),
		IsRegistered:      isRegistered,
		OrganizerName:     organizerName,
	}
}
