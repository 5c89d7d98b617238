package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/cache"
)

// Services defined in this package:
// - DirectoryService: member search, facets and own-profile updates
// - EventService: event listing with registration counts, register and cancel
// - NewsService: news engagement (likes, comments, views)
// - DashboardService: cross-entity summary

// Clock returns the current time
type Clock func() time.Time

// SystemClock is the wall clock in UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}

// dashboardTotalsKey caches the global counts shown on the dashboard
const dashboardTotalsKey = "dashboard:totals"

// Options configures the service layer
type Options struct {
	Registration RegistrationPolicy
	DashboardTTL time.Duration
	Clock        Clock
}

// Services holds all the service instances
type Services struct {
	DirectoryService DirectoryService
	EventService     EventService
	NewsService      NewsService
	DashboardService DashboardService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, c cache.Cache, opts Options, log zerolog.Logger) *Services {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Services{
		DirectoryService: NewDirectoryService(repos.ProfileRepository, opts.Clock, log.With().Str("service", "DirectoryService").Logger()),
		EventService: NewEventService(repos.EventRepository, repos.RegistrationRepository, repos.ProfileRepository,
			c, opts.Registration, opts.Clock, log.With().Str("service", "EventService").Logger()),
		NewsService: NewNewsService(repos.NewsRepository, repos.LikeRepository, repos.CommentRepository, repos.ProfileRepository,
			c, opts.Clock, log.With().Str("service", "NewsService").Logger()),
		DashboardService: NewDashboardService(repos, c, opts.DashboardTTL, opts.Clock, log.With().Str("service", "DashboardService").Logger()),
	}
}

// invalidateDashboard drops the cached dashboard totals after a write changes them
func invalidateDashboard(ctx context.Context, c cache.Cache, log zerolog.Logger) {
	if err := c.Delete(ctx, dashboardTotalsKey); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate dashboard totals cache")
	}
}
