package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// base is what the package-level helpers write to until Configure runs
var base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Config selects level and output format
type Config struct {
	// Level is a zerolog level name; unknown or empty values mean info
	Level string
	// Format is "json" or "text" (console output)
	Format string
	// Output defaults to os.Stdout
	Output io.Writer
}

func (c Config) level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Configure sets the global level, installs the logger as zerolog's global and returns it.
func Configure(c Config) zerolog.Logger {
	out := c.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(c.Format, "text") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(c.level())

	base = zerolog.New(out).With().Timestamp().Str("service", "alumnihub").Logger()
	log.Logger = base
	return base
}

// Component returns a child of parent tagged with the component name
func Component(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}

// Info logs on the configured logger
func Info() *zerolog.Event {
	return base.Info()
}

// Error logs on the configured logger
func Error() *zerolog.Event {
	return base.Error()
}
