package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		// SQLitePath is used when Driver is "sqlite". ":memory:" keeps everything in process.
		SQLitePath string `yaml:"sqlite_path" env:"DB_SQLITE_PATH"`
		// Seed loads demo members, events and news on startup.
		Seed bool `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"JWT_SECRET"`
		Issuer string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Cache struct {
		RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
		RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
		RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
		DashboardTTL  string `yaml:"dashboard_ttl" env:"CACHE_DASHBOARD_TTL"`
	} `yaml:"cache"`

	Events struct {
		// EnforceCapacity rejects registrations once max_attendees is reached.
		// Off by default: capacity is informational.
		EnforceCapacity bool `yaml:"enforce_capacity" env:"EVENTS_ENFORCE_CAPACITY"`
		// RejectClosed refuses registrations for past and cancelled events. Off by default.
		RejectClosed bool `yaml:"reject_closed" env:"EVENTS_REJECT_CLOSED"`
	} `yaml:"events"`

	Jobs struct {
		EventStatusSchedule string `yaml:"event_status_schedule" env:"JOBS_EVENT_STATUS_SCHEDULE"`
	} `yaml:"jobs"`

	Telemetry struct {
		Enabled     bool    `yaml:"enabled" env:"OTEL_ENABLED"`
		ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
		Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		Insecure    bool    `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
		SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLER_RATIO"`
	} `yaml:"telemetry"`

	CORS struct {
		AllowOrigins []string `yaml:"allow_origins" env:"CORS_ALLOW_ORIGINS" envSeparator:","`
	} `yaml:"cors"`
}

// LoadConfig loads configuration from a file and environment variables.
// Precedence, lowest first: defaults, YAML file, .env file, process environment.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "alumnihub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.SQLitePath = "alumnihub.db"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Cache defaults
	config.Cache.DashboardTTL = "30s"

	// Job defaults
	config.Jobs.EventStatusSchedule = "@every 15m"

	// Telemetry defaults
	config.Telemetry.ServiceName = "alumnihub"
	config.Telemetry.SampleRatio = 0.1

	config.CORS.AllowOrigins = []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
	}
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Database.Driver) {
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	case "sqlite":
		if config.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.Cache.DashboardTTL); err != nil {
		return fmt.Errorf("invalid dashboard cache TTL: %w", err)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be between 0 and 1")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}
