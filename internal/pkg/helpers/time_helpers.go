package helpers

import (
	"strings"
	"time"
)

// DurationOr parses raw ("30s", "15m") and falls back when it is blank,
// malformed or not positive.
func DurationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
