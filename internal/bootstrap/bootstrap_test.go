package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/alumnihub/internal/config"
	"github.com/yigit/alumnihub/internal/pkg/cache"
)

func sqliteConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.SQLitePath = ":memory:"
	cfg.Database.Seed = true
	cfg.JWT.Secret = "secret"
	cfg.Cache.DashboardTTL = "30s"
	cfg.Jobs.EventStatusSchedule = "@every 15m"
	return cfg
}

func TestWiringServesProbesAndGuardsAPI(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig()
	lgr := zerolog.Nop()

	database, err := SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		t.Fatalf("SetupDatabase: %v", err)
	}
	t.Cleanup(func() { _ = database.Closer.Close() })

	c, closer := SetupCache(ctx, cfg, lgr)
	if _, ok := c.(cache.Nop); !ok || closer != nil {
		t.Fatalf("expected the no-op cache without a Redis address, got %T", c)
	}

	deps := BuildDependencies(cfg, database, c, lgr)
	SeedDemoData(ctx, cfg, deps, lgr)
	if n, err := deps.Repos.ProfileRepository.Count(ctx); err != nil || n == 0 {
		t.Fatalf("seeded members = %d, %v", n, err)
	}

	if _, err := SetupJobs(cfg, deps, lgr); err != nil {
		t.Fatalf("SetupJobs: %v", err)
	}

	router := SetupRouter(cfg, deps, lgr)
	for path, want := range map[string]int{
		"/healthz":          http.StatusOK,
		"/ping":             http.StatusOK,
		"/api/v1/dashboard": http.StatusUnauthorized,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("GET %s = %d, want %d", path, rec.Code, want)
		}
	}
}

func TestSetupJobsRejectsBadSchedule(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig()
	database, err := SetupDatabase(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("SetupDatabase: %v", err)
	}
	t.Cleanup(func() { _ = database.Closer.Close() })

	cfg.Jobs.EventStatusSchedule = "whenever"
	deps := BuildDependencies(cfg, database, cache.Nop{}, zerolog.Nop())
	if _, err := SetupJobs(cfg, deps, zerolog.Nop()); err == nil {
		t.Error("expected an error for a malformed schedule")
	}
}
