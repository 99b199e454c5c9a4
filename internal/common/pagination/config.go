// Package pagination provides the page window that reveals a collection
// incrementally, for both server cursors and in-memory views.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultPageSize int `yaml:"page_size"`     // Items revealed per page (typically 10)
	MaxPageSize     int `yaml:"max_page_size"` // Upper bound for page size (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: page size=10, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

// OverrideFromEnv returns c with values replaced by environment variables.
// Supported environment variables:
//   - PAGINATION_PAGE_SIZE: Items revealed per page
//   - PAGINATION_MAX_PAGE_SIZE: Maximum page size
//
// Unset or unparsable variables keep the value from c.
func (c Config) OverrideFromEnv() Config {
	return Config{
		DefaultPageSize: getEnvAsInt("PAGINATION_PAGE_SIZE", c.DefaultPageSize),
		MaxPageSize:     getEnvAsInt("PAGINATION_MAX_PAGE_SIZE", c.MaxPageSize),
	}
}

// Validate returns an error if:
//   - MaxPageSize is less than 1
//   - DefaultPageSize is less than 1 or greater than MaxPageSize
func (c Config) Validate() error {
	if c.MaxPageSize < 1 {
		return fmt.Errorf("max page size must be a positive integer")
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d", c.MaxPageSize)
	}
	return nil
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
