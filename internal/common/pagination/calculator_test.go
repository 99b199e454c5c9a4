package pagination_test

import (
	"testing"

	"catalog-browser/internal/common/pagination"
)

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{name: "zero total", total: 0, pageSize: 10, want: 1},
		{name: "partial page", total: 7, pageSize: 10, want: 1},
		{name: "exact page", total: 10, pageSize: 10, want: 1},
		{name: "one over", total: 11, pageSize: 10, want: 2},
		{name: "twenty five items", total: 25, pageSize: 10, want: 3},
		{name: "page size one", total: 5, pageSize: 1, want: 5},
		{name: "non-positive page size", total: 5, pageSize: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pagination.CalculateTotalPages(tt.total, tt.pageSize)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestCalculateCurrentPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		loaded int
		want   int
	}{
		{0, 1},
		{10, 1},
		{20, 2},
		{25, 3},
	}

	for _, tt := range tests {
		if got := pagination.CalculateCurrentPage(tt.loaded, 10); got != tt.want {
			t.Errorf("CalculateCurrentPage(%d, 10) = %d, want %d", tt.loaded, got, tt.want)
		}
	}
}

func TestClampPageSize(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()
	tests := []struct {
		size int
		want int
	}{
		{0, 10},
		{-3, 10},
		{30, 30},
		{500, 100},
	}

	for _, tt := range tests {
		if got := pagination.ClampPageSize(tt.size, cfg); got != tt.want {
			t.Errorf("ClampPageSize(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
