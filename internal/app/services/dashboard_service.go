package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/app/models"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/repositories"
	"github.com/yigit/alumnihub/internal/pkg/cache"
	"github.com/yigit/alumnihub/internal/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardUpcomingLimit = 3
	dashboardNewsLimit     = 3
)

// DashboardService defines the dashboard summary
type DashboardService interface {
	// ComputeSummary never fails as a whole: a failed sub-query zeroes its
	// field and is named in DashboardStats.Incomplete.
	ComputeSummary(ctx context.Context, memberID string) *dto.DashboardStats
}

// dashboardTotals is the cached part of the summary
type dashboardTotals struct {
	Members int64 `json:"members"`
	Events  int64 `json:"events"`
	News    int64 `json:"news"`
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	repos  *repositories.Repositories
	cache  cache.Cache
	ttl    time.Duration
	now    Clock
	logger zerolog.Logger
}

// NewDashboardService creates a new dashboard service instance.
// A non-positive ttl disables caching of the global totals.
func NewDashboardService(repos *repositories.Repositories, c cache.Cache, ttl time.Duration, clock Clock, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{
		repos:  repos,
		cache:  c,
		ttl:    ttl,
		now:    clock,
		logger: logger,
	}
}

// ComputeSummary implements DashboardService
func (s *dashboardServiceImpl) ComputeSummary(ctx context.Context, memberID string) *dto.DashboardStats {
	ctx, span := telemetry.Tracer().Start(ctx, "DashboardService.ComputeSummary")
	defer span.End()

	stats := &dto.DashboardStats{
		UpcomingEvents: []models.Event{},
		LatestNews:     []dto.LatestNewsItem{},
	}

	var (
		mu     sync.Mutex
		failed []string
	)
	partial := func(field string, err error) {
		span.RecordError(err)
		s.logger.Warn().Err(err).Str("field", field).Msg("Dashboard sub-query failed, defaulting field")
		mu.Lock()
		failed = append(failed, field)
		mu.Unlock()
	}

	totals, hit := s.cachedTotals(ctx)
	var totalsIncomplete bool

	// Every task reports through partial and returns nil, so g.Wait never reports an error.
	var g errgroup.Group
	if hit {
		stats.TotalMembers = totals.Members
		stats.TotalEvents = totals.Events
		stats.TotalNews = totals.News
	} else {
		count := func(field string, dst *int64, fn func(context.Context) (int64, error)) {
			g.Go(func() error {
				n, err := fn(ctx)
				if err != nil {
					partial(field, err)
					mu.Lock()
					totalsIncomplete = true
					mu.Unlock()
					return nil
				}
				*dst = n
				return nil
			})
		}
		count("totalMembers", &stats.TotalMembers, s.repos.ProfileRepository.Count)
		count("totalEvents", &stats.TotalEvents, s.repos.EventRepository.Count)
		count("totalNews", &stats.TotalNews, s.repos.NewsRepository.Count)
	}

	g.Go(func() error {
		if memberID == "" {
			return nil
		}
		n, err := s.repos.RegistrationRepository.CountForUser(ctx, memberID)
		if err != nil {
			partial("myRegistrations", err)
			return nil
		}
		stats.MyRegistrations = n
		return nil
	})
	g.Go(func() error {
		events, err := s.repos.EventRepository.Upcoming(ctx, s.now(), dashboardUpcomingLimit)
		if err != nil {
			partial("upcomingEvents", err)
			return nil
		}
		stats.UpcomingEvents = events
		return nil
	})
	g.Go(func() error {
		items, err := s.repos.NewsRepository.List(ctx, dashboardNewsLimit)
		if err != nil {
			partial("latestNews", err)
			return nil
		}
		authors := make([]string, 0, len(items))
		for i := range items {
			authors = append(authors, models.Value(items[i].AuthorID))
		}
		names, err := s.repos.ProfileRepository.NamesByIDs(ctx, authors)
		if err != nil {
			partial("latestNews.authorName", err)
		}
		latest := make([]dto.LatestNewsItem, 0, len(items))
		for i := range items {
			latest = append(latest, dto.LatestNewsItem{NewsItem: items[i], AuthorName: names[models.Value(items[i].AuthorID)]})
		}
		stats.LatestNews = latest
		return nil
	})
	// Every sub-query defaults its field on failure, so Wait always returns nil.
	_ = g.Wait()

	if !hit && !totalsIncomplete {
		s.storeTotals(ctx, dashboardTotals{
			Members: stats.TotalMembers,
			Events:  stats.TotalEvents,
			News:    stats.TotalNews,
		})
	}

	if len(failed) > 0 {
		sort.Strings(failed)
		stats.Incomplete = failed
	}
	span.SetAttributes(attribute.StringSlice("dashboard.partial", failed))
	return stats
}

func (s *dashboardServiceImpl) cachedTotals(ctx context.Context) (dashboardTotals, bool) {
	var totals dashboardTotals
	if s.ttl <= 0 {
		return totals, false
	}
	ok, err := s.cache.Get(ctx, dashboardTotalsKey, &totals)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Dashboard totals cache read failed, querying store")
		return totals, false
	}
	return totals, ok
}

func (s *dashboardServiceImpl) storeTotals(ctx context.Context, totals dashboardTotals) {
	if s.ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, dashboardTotalsKey, totals, s.ttl); err != nil {
		s.logger.Warn().Err(err).Msg("Dashboard totals cache write failed")
	}
}
