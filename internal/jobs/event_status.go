package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/repositories"
)

// EventStatusSweeper moves upcoming events whose date has passed to past
type EventStatusSweeper struct {
	events *repositories.EventRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewEventStatusSweeper creates the sweeper; now is the clock used as the cutoff
func NewEventStatusSweeper(events *repositories.EventRepository, now func() time.Time, logger zerolog.Logger) *EventStatusSweeper {
	return &EventStatusSweeper{events: events, now: now, logger: logger}
}

// Name implements Job
func (s *EventStatusSweeper) Name() string {
	return "event-status-sweeper"
}

// Run implements Job
func (s *EventStatusSweeper) Run(ctx context.Context) error {
	n, err := s.events.MarkPast(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info().Int64("events", n).Msg("Marked elapsed events as past")
	}
	return nil
}
