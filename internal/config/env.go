package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvPath is the optional file loaded into the process environment before overrides are read.
var DotEnvPath = ".env"

// loadFromEnv overrides configuration with environment variables named by `env` tags.
// Variables already set in the process win over values from the .env file.
func loadFromEnv(config *Config) error {
	if err := godotenv.Load(DotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", DotEnvPath, err)
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
