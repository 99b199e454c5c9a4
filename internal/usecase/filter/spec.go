// Package filter provides the filter and sort settings for product lists
// and the pure projection that turns a collection into an ordered view.
package filter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the ordering of the projected view.
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
)

// SortKeys lists every supported key in display order.
var SortKeys = []SortKey{SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

var sortLabels = map[SortKey]string{
	SortDefault:   "Default",
	SortPriceAsc:  "Price: Low to High",
	SortPriceDesc: "Price: High to Low",
	SortNameAsc:   "Name: A-Z",
	SortNameDesc:  "Name: Z-A",
}

// ParseSortKey parses a sort key. An empty string means SortDefault.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortDefault, nil
	}
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sortLabels[k]; !ok {
		return SortDefault, fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

// Label returns the human-readable name of the key.
func (k SortKey) Label() string {
	if l, ok := sortLabels[k]; ok {
		return l
	}
	return sortLabels[SortDefault]
}

// Spec is an immutable filter/sort configuration.
// Values are copied on every change; callers never share the category set.
type Spec struct {
	Query      string
	categories map[string]struct{}
	MinPrice   float64
	MaxPrice   float64
	SortKey    SortKey
}

// DefaultSpec returns the no-filter spec spanning the given bounds.
func DefaultSpec(b Bounds) Spec {
	return Spec{
		MinPrice: b.Min,
		MaxPrice: b.Max,
		SortKey:  SortDefault,
	}
}

// NewSpec builds a spec, clamping the price range so min <= max.
func NewSpec(query string, categories []string, minPrice, maxPrice float64, key SortKey) Spec {
	s := Spec{
		Query:    query,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		SortKey:  key,
	}
	if s.SortKey == "" {
		s.SortKey = SortDefault
	}
	s = s.WithCategories(categories)
	if s.MinPrice > s.MaxPrice {
		s.MinPrice = s.MaxPrice
	}
	return s
}

// Categories returns the selected categories in sorted order.
func (s Spec) Categories() []string {
	out := make([]string, 0, len(s.categories))
	for c := range s.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// HasCategory reports whether c is selected.
func (s Spec) HasCategory(c string) bool {
	_, ok := s.categories[c]
	return ok
}

// WithCategories returns a copy with the category set replaced.
func (s Spec) WithCategories(categories []string) Spec {
	s.categories = nil
	if len(categories) > 0 {
		s.categories = make(map[string]struct{}, len(categories))
		for _, c := range categories {
			s.categories[c] = struct{}{}
		}
	}
	return s
}

// WithCategoryToggled returns a copy with c added or removed.
func (s Spec) WithCategoryToggled(c string) Spec {
	next := make(map[string]struct{}, len(s.categories)+1)
	for k := range s.categories {
		next[k] = struct{}{}
	}
	if _, ok := next[c]; ok {
		delete(next, c)
	} else {
		next[c] = struct{}{}
	}
	s.categories = nil
	if len(next) > 0 {
		s.categories = next
	}
	return s
}

// WithMinPrice returns a copy with MinPrice set. A value above MaxPrice is
// clamped down to MaxPrice.
func (s Spec) WithMinPrice(p float64) Spec {
	if p > s.MaxPrice {
		p = s.MaxPrice
	}
	s.MinPrice = p
	return s
}

// WithMaxPrice returns a copy with MaxPrice set. A value below MinPrice is
// clamped up to MinPrice.
func (s Spec) WithMaxPrice(p float64) Spec {
	if p < s.MinPrice {
		p = s.MinPrice
	}
	s.MaxPrice = p
	return s
}

// Equal reports whether two specs select and order items identically.
func (s Spec) Equal(o Spec) bool {
	if s.Query != o.Query || s.MinPrice != o.MinPrice || s.MaxPrice != o.MaxPrice || s.SortKey != o.SortKey {
		return false
	}
	if len(s.categories) != len(o.categories) {
		return false
	}
	for c := range s.categories {
		if _, ok := o.categories[c]; !ok {
			return false
		}
	}
	return true
}

// String renders the spec for logs.
func (s Spec) String() string {
	return fmt.Sprintf("query=%q categories=%v price=[%g,%g] sort=%s",
		s.Query, s.Categories(), s.MinPrice, s.MaxPrice, s.SortKey)
}

// MarshalJSON renders the spec with its category set as a sorted list.
func (s Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Query      string   `json:"query"`
		Categories []string `json:"categories"`
		MinPrice   float64  `json:"min_price"`
		MaxPrice   float64  `json:"max_price"`
		SortKey    SortKey  `json:"sort"`
	}{s.Query, s.Categories(), s.MinPrice, s.MaxPrice, s.SortKey})
}
