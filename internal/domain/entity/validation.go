package entity

import (
	"fmt"
	"math"
	"strings"
)

// maxTitleLength bounds titles accepted from the catalog.
const maxTitleLength = 1024

// Validate checks the fields the browsing engine relies on.
// Returns a ValidationError describing the first offending field.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if i.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(i.Title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}
	if math.IsNaN(i.Price) || math.IsInf(i.Price, 0) || i.Price < 0 {
		return &ValidationError{Field: "price", Message: "price must be a non-negative number"}
	}
	return nil
}

// ValidateItems validates every item, reporting the index of the first
// offending one.
func ValidateItems(items []Item) error {
	for idx, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	return nil
}
