package productapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"catalog-browser/internal/domain/entity"
)

// productsResponse is the list envelope returned by DummyJSON.
type productsResponse struct {
	Products []entity.Item `json:"products"`
	Total    *int          `json:"total"`
	Skip     int           `json:"skip"`
	Limit    int           `json:"limit"`
}

// categoryObject is the newer category shape: {"slug": "...", "name": "..."}.
type categoryObject struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// decodeProducts parses and validates a list envelope. A missing total is
// reported as -1.
func decodeProducts(body []byte) ([]entity.Item, int, error) {
	var resp productsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("%w: decode products: %w", entity.ErrMalformedResponse, err)
	}
	if resp.Products == nil {
		return nil, 0, fmt.Errorf("%w: products array missing", entity.ErrMalformedResponse)
	}
	if err := entity.ValidateItems(resp.Products); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrMalformedResponse, err)
	}
	total := -1
	if resp.Total != nil {
		total = *resp.Total
	}
	return resp.Products, total, nil
}

// decodeCategories accepts either a list of strings or a list of
// {slug, name} objects and returns the category keys in order.
func decodeCategories(body []byte) ([]string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode categories: %w", entity.ErrMalformedResponse, err)
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for idx, v := range raw {
		name, err := decodeCategory(v)
		if err != nil {
			return nil, fmt.Errorf("%w: category %d: %w", entity.ErrMalformedResponse, idx, err)
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func decodeCategory(v json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var obj categoryObject
	if err := json.Unmarshal(v, &obj); err != nil {
		return "", fmt.Errorf("expected string or object: %w", err)
	}
	if obj.Slug != "" {
		return obj.Slug, nil
	}
	return strings.TrimSpace(obj.Name), nil
}
