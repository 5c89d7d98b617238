package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/alumnihub/internal/bootstrap"
	"github.com/yigit/alumnihub/internal/config"
	"github.com/yigit/alumnihub/internal/jobs"
)

// Server holds the state for the HTTP server.
type Server struct {
	config    *config.Config
	router    *gin.Engine
	database  *bootstrap.Database
	cache     io.Closer
	scheduler *jobs.Scheduler
	tracing   func(context.Context) error
	logger    zerolog.Logger
	http      *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracing, err := bootstrap.SetupTelemetry(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}

	database, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		_ = tracing(ctx)
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	c, cacheCloser := bootstrap.SetupCache(ctx, cfg, lgr)
	deps := bootstrap.BuildDependencies(cfg, database, c, lgr)
	bootstrap.SeedDemoData(ctx, cfg, deps, lgr)

	scheduler, err := bootstrap.SetupJobs(cfg, deps, lgr)
	if err != nil {
		if cacheCloser != nil {
			_ = cacheCloser.Close()
		}
		_ = database.Closer.Close()
		_ = tracing(ctx)
		return nil, fmt.Errorf("failed to setup jobs: %w", err)
	}

	return &Server{
		config:    cfg,
		router:    bootstrap.SetupRouter(cfg, deps, lgr),
		database:  database,
		cache:     cacheCloser,
		scheduler: scheduler,
		tracing:   tracing,
		logger:    lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()
	s.scheduler.Start()

	// Channel to listen for OS signals
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive either a server error or an OS signal
	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return errors.Join(runErr, s.Shutdown(context.Background()))
}

// Shutdown gracefully stops the server and closes resources.
// HTTP drains first, then jobs, then the cache and the database, then tracing is flushed.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var shutdownErr error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = errors.Join(shutdownErr, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.scheduler != nil {
		if err := s.scheduler.Stop(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Job scheduler did not stop in time")
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Cache close error")
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection...")
		if err := s.database.Closer.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Database close error")
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}

	if s.tracing != nil {
		if err := s.tracing(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Tracer shutdown error")
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}
