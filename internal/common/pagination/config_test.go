package pagination_test

import (
	"testing"

	"catalog-browser/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := pagination.DefaultConfig()

	if config.DefaultPageSize != 10 {
		t.Errorf("DefaultConfig() DefaultPageSize = %d, want 10", config.DefaultPageSize)
	}
	if config.MaxPageSize != 100 {
		t.Errorf("DefaultConfig() MaxPageSize = %d, want 100", config.MaxPageSize)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfig_OverrideFromEnv(t *testing.T) {
	t.Run("with all env vars set", func(t *testing.T) {
		t.Setenv("PAGINATION_PAGE_SIZE", "25")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "50")

		config := pagination.DefaultConfig().OverrideFromEnv()

		if config.DefaultPageSize != 25 {
			t.Errorf("OverrideFromEnv() DefaultPageSize = %d, want 25", config.DefaultPageSize)
		}
		if config.MaxPageSize != 50 {
			t.Errorf("OverrideFromEnv() MaxPageSize = %d, want 50", config.MaxPageSize)
		}
	})

	t.Run("with no env vars (fallback to defaults)", func(t *testing.T) {
		t.Setenv("PAGINATION_PAGE_SIZE", "")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "")

		config := pagination.DefaultConfig().OverrideFromEnv()

		if config != pagination.DefaultConfig() {
			t.Errorf("OverrideFromEnv() = %+v, want %+v", config, pagination.DefaultConfig())
		}
	})

	t.Run("keeps base values when unset", func(t *testing.T) {
		t.Setenv("PAGINATION_PAGE_SIZE", "")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "40")

		base := pagination.Config{DefaultPageSize: 5, MaxPageSize: 20}
		config := base.OverrideFromEnv()

		if config.DefaultPageSize != 5 || config.MaxPageSize != 40 {
			t.Errorf("OverrideFromEnv() = %+v, want {5 40}", config)
		}
	})

	t.Run("with invalid env vars (fallback to defaults)", func(t *testing.T) {
		t.Setenv("PAGINATION_PAGE_SIZE", "ten")
		t.Setenv("PAGINATION_MAX_PAGE_SIZE", "xyz")

		config := pagination.DefaultConfig().OverrideFromEnv()

		if config != pagination.DefaultConfig() {
			t.Errorf("OverrideFromEnv() = %+v, want defaults on invalid input", config)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  pagination.Config
		wantErr bool
	}{
		{"valid", pagination.Config{DefaultPageSize: 10, MaxPageSize: 100}, false},
		{"page size equals max", pagination.Config{DefaultPageSize: 100, MaxPageSize: 100}, false},
		{"zero page size", pagination.Config{DefaultPageSize: 0, MaxPageSize: 100}, true},
		{"page size above max", pagination.Config{DefaultPageSize: 101, MaxPageSize: 100}, true},
		{"zero max", pagination.Config{DefaultPageSize: 1, MaxPageSize: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
