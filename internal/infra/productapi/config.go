package productapi

import (
	"fmt"
	"net/url"
	"time"

	"catalog-browser/internal/resilience/circuitbreaker"
	"catalog-browser/internal/resilience/retry"
)

// Config holds the settings for the catalog API client.
type Config struct {
	// BaseURL is the product API root; pages, the full listing and search
	// are served under {BaseURL}/products.
	BaseURL string `yaml:"base_url"`

	// CategoriesURL returns the category list used by the filter editor.
	CategoriesURL string `yaml:"categories_url"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `yaml:"timeout"`

	UserAgent string `yaml:"user_agent"`

	// AllLimit is the limit sent when fetching the whole collection.
	AllLimit int `yaml:"all_limit"`

	// RateLimit is the sustained requests per second; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	Retry   retry.Config          `yaml:"retry"`
	Breaker circuitbreaker.Config `yaml:"breaker"`
}

// DefaultConfig returns settings for the public DummyJSON and Fake Store APIs.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://dummyjson.com",
		CategoriesURL: "https://fakestoreapi.com/products/categories",
		Timeout:       10 * time.Second,
		UserAgent:     "catalog-browser/1.0",
		AllLimit:      100,
		RateLimit:     5,
		RateBurst:     5,
		Retry:         retry.DefaultConfig(),
		Breaker:       circuitbreaker.CatalogAPIConfig("catalog-api"),
	}
}

// Validate checks that the configuration can build a working client.
func (c Config) Validate() error {
	if err := validateURL("base_url", c.BaseURL); err != nil {
		return err
	}
	if err := validateURL("categories_url", c.CategoriesURL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.AllLimit <= 0 {
		return fmt.Errorf("all_limit must be positive, got %d", c.AllLimit)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1 when rate limiting, got %d", c.RateBurst)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", field, raw)
	}
	return nil
}
