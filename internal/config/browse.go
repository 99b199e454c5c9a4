// Package config loads the catalog browser settings.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then environment variables. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"catalog-browser/internal/common/debounce"
	"catalog-browser/internal/common/pagination"
	"catalog-browser/internal/infra/productapi"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// BrowseConfig holds every setting the CLI needs to build a browsing session.
type BrowseConfig struct {
	API        productapi.Config `yaml:"api"`
	Pagination pagination.Config `yaml:"pagination"`

	// Mode selects cursor or client pagination.
	Mode string `yaml:"mode"`

	// QueryDelay is the debounce window for free-text input.
	QueryDelay time.Duration `yaml:"query_delay"`

	// SearchLimit caps remote search results.
	SearchLimit int `yaml:"search_limit"`

	// RefreshSchedule is an optional cron spec for periodic refreshes.
	RefreshSchedule string `yaml:"refresh_schedule"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the log output format.
type LogConfig struct {
	Format string `yaml:"format"` // json or text
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	// Port serves /metrics and /health when non-zero.
	Port int `yaml:"port"`
}

// Default returns the built-in configuration.
func Default() *BrowseConfig {
	return &BrowseConfig{
		API:         productapi.DefaultConfig(),
		Pagination:  pagination.DefaultConfig(),
		Mode:        pagination.ModeCursor.String(),
		QueryDelay:  debounce.DefaultDelay,
		SearchLimit: 20,
		Log:         LogConfig{Format: "text"},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the environment.
func Load(path string) (*BrowseConfig, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *BrowseConfig) loadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *BrowseConfig) applyEnv() {
	envString("CATALOG_API_BASE_URL", &c.API.BaseURL)
	envString("CATALOG_CATEGORIES_URL", &c.API.CategoriesURL)
	envDuration("CATALOG_API_TIMEOUT", &c.API.Timeout)
	envString("CATALOG_USER_AGENT", &c.API.UserAgent)
	envInt("CATALOG_ALL_LIMIT", &c.API.AllLimit)
	envFloat("CATALOG_RATE_LIMIT", &c.API.RateLimit)
	envInt("CATALOG_RATE_BURST", &c.API.RateBurst)
	envInt("CATALOG_RETRY_ATTEMPTS", &c.API.Retry.MaxAttempts)

	c.Pagination = c.Pagination.OverrideFromEnv()

	envString("CATALOG_MODE", &c.Mode)
	envDuration("CATALOG_QUERY_DELAY", &c.QueryDelay)
	envInt("CATALOG_SEARCH_LIMIT", &c.SearchLimit)
	envString("CATALOG_REFRESH_SCHEDULE", &c.RefreshSchedule)
	envString("LOG_FORMAT", &c.Log.Format)
	envInt("METRICS_PORT", &c.Metrics.Port)
}

// Validate checks every section and joins all problems into one error.
func (c *BrowseConfig) Validate() error {
	var errs []error

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("api: %w", err))
	}
	if err := c.Pagination.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pagination: %w", err))
	}
	if _, err := pagination.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.QueryDelay < 0 {
		errs = append(errs, fmt.Errorf("query_delay must not be negative, got %v", c.QueryDelay))
	}
	if c.SearchLimit <= 0 {
		errs = append(errs, fmt.Errorf("search_limit must be positive, got %d", c.SearchLimit))
	}
	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			errs = append(errs, fmt.Errorf("refresh_schedule %q: %w", c.RefreshSchedule, err))
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		errs = append(errs, fmt.Errorf("metrics.port out of range: %d", c.Metrics.Port))
	}

	return errors.Join(errs...)
}

// PaginationMode returns the parsed Mode. It assumes Validate passed.
func (c *BrowseConfig) PaginationMode() pagination.Mode {
	m, _ := pagination.ParseMode(c.Mode)
	return m
}

// PageSize returns the configured page size clamped to the allowed range.
func (c *BrowseConfig) PageSize() int {
	return pagination.ClampPageSize(c.Pagination.DefaultPageSize, c.Pagination)
}
