package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appControllers "github.com/yigit/alumnihub/internal/app/controllers"
	appMigrations "github.com/yigit/alumnihub/internal/app/migrations"
	appRepos "github.com/yigit/alumnihub/internal/app/repositories"
	appRoutes "github.com/yigit/alumnihub/internal/app/routes"
	appServices "github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/config"
	"github.com/yigit/alumnihub/internal/db"
	"github.com/yigit/alumnihub/internal/jobs"
	appMiddleware "github.com/yigit/alumnihub/internal/middleware"
	pkgAuth "github.com/yigit/alumnihub/internal/pkg/auth"
	"github.com/yigit/alumnihub/internal/pkg/cache"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
	"github.com/yigit/alumnihub/internal/pkg/logger"
	"github.com/yigit/alumnihub/internal/pkg/store"
	"github.com/yigit/alumnihub/internal/pkg/telemetry"
	"github.com/yigit/alumnihub/internal/pkg/validation"
	"github.com/yigit/alumnihub/internal/seed"
)

// Database is the opened store plus what the server needs to probe and close it
type Database struct {
	Store  store.Client
	Ping   func(ctx context.Context) error
	Closer io.Closer
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	Services            *appServices.Services
	JWTService          *pkgAuth.JWTService
	AuthMiddleware      *appMiddleware.AuthMiddleware
	DirectoryController *appControllers.DirectoryController
	EventController     *appControllers.EventController
	NewsController      *appControllers.NewsController
	DashboardController *appControllers.DashboardController
	HealthController    *appControllers.HealthController
	Cache               cache.Cache
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	lgr.Info().Str("logLevel", zerolog.GlobalLevel().String()).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupTelemetry installs the tracer provider and returns its shutdown func
func SetupTelemetry(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (func(context.Context) error, error) {
	return telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Server.Mode,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	}, logger.Component(lgr, "telemetry"))
}

// SetupDatabase opens the configured backend and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	driver := strings.ToLower(cfg.Database.Driver)
	lgr.Info().Str("driver", driver).Msg("Establishing database connection...")

	switch driver {
	case "sqlite":
		sqliteDB, err := db.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open sqlite database")
			return nil, err
		}
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.MigrateSQLite(ctx, sqliteDB.DB); err != nil {
			_ = sqliteDB.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Str("path", cfg.Database.SQLitePath).Msg("SQLite database ready")
		return &Database{Store: store.NewSQLite(sqliteDB.DB), Ping: sqliteDB.Ping, Closer: sqliteDB}, nil

	default:
		pg, err := db.NewPostgresDB(ctx, cfg, logger.Component(lgr, "postgres"))
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(pg.Pool, logger.Component(lgr, "migrations")).Migrate(ctx); err != nil {
			_ = pg.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
		return &Database{Store: store.NewPostgres(pg.Pool), Ping: pg.Ping, Closer: pg}, nil
	}
}

// SetupCache connects to Redis when an address is configured. Without one, or when
// Redis is unreachable, a no-op cache is returned and the dashboard reads the store every time.
func SetupCache(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (cache.Cache, io.Closer) {
	if cfg.Cache.RedisAddr == "" {
		lgr.Info().Msg("No Redis address configured, caching disabled")
		return cache.Nop{}, nil
	}
	rc, err := cache.NewRedis(ctx, cache.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		Prefix:   "alumnihub:",
	})
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, caching disabled")
		return cache.Nop{}, nil
	}
	lgr.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Redis cache connected")
	return rc, rc
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *Database, c cache.Cache, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Cache: c, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Store)
	deps.Services = appServices.NewServices(deps.Repos, c, appServices.Options{
		Registration: appServices.RegistrationPolicy{
			EnforceCapacity: cfg.Events.EnforceCapacity,
			RejectClosed:    cfg.Events.RejectClosed,
		},
		DashboardTTL: helpers.DurationOr(cfg.Cache.DashboardTTL, 30*time.Second),
		Clock:        appServices.SystemClock,
	}, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
		Leeway:      30 * time.Second,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	checks := map[string]appControllers.HealthCheck{"database": database.Ping}
	if pinger, ok := c.(interface{ Ping(context.Context) error }); ok {
		checks["cache"] = pinger.Ping
	}

	deps.DirectoryController = appControllers.NewDirectoryController(deps.Services.DirectoryService)
	deps.EventController = appControllers.NewEventController(deps.Services.EventService)
	deps.NewsController = appControllers.NewNewsController(deps.Services.NewsService)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.DashboardService)
	deps.HealthController = appControllers.NewHealthController(checks)

	return deps
}

// SeedDemoData loads demo content when enabled in config. Failures are logged, not fatal.
func SeedDemoData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if !cfg.Database.Seed {
		return
	}
	if err := seed.CreateDemoData(ctx, deps.Repos, appServices.SystemClock(), logger.Component(lgr, "seed")); err != nil {
		lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
	}
}

// SetupJobs schedules the background jobs. The caller starts and stops the scheduler.
func SetupJobs(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*jobs.Scheduler, error) {
	jobLogger := logger.Component(lgr, "jobs")
	scheduler := jobs.NewScheduler(jobLogger)
	sweeper := jobs.NewEventStatusSweeper(deps.Repos.EventRepository, appServices.SystemClock, jobLogger)
	if err := scheduler.Add(cfg.Jobs.EventStatusSchedule, sweeper); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterWithGin(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validation rules")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery())
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	router.Use(appMiddleware.RequestLogger(logger.Component(lgr, "http")))
	router.Use(appMiddleware.CORS(cfg.CORS.AllowOrigins))

	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Directory: deps.DirectoryController,
		Event:     deps.EventController,
		News:      deps.NewsController,
		Dashboard: deps.DashboardController,
		Health:    deps.HealthController,
	}, deps.AuthMiddleware)

	return router
}
