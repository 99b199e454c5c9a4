package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment helpers. A value that fails to parse is ignored with a
// warning and the current value is kept.

func envString(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		warnInvalid(key, v, err)
		return
	}
	*dst = parsed
}

func envFloat(key string, dst *float64) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		warnInvalid(key, v, err)
		return
	}
	*dst = parsed
}

func envDuration(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		warnInvalid(key, v, err)
		return
	}
	*dst = parsed
}

func warnInvalid(key, value string, err error) {
	slog.Warn("invalid value for environment variable, keeping previous value",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("error", err.Error()))
}
