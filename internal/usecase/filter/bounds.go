package filter

import (
	"math"

	"catalog-browser/internal/domain/entity"
)

// Fallback bounds used when the collection is empty.
const (
	fallbackMinPrice = 0
	fallbackMaxPrice = 1000
)

// Bounds is the price range a price slider may span.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DeriveBounds returns floor(min price) .. ceil(max price) of items,
// or 0..1000 when there are none.
func DeriveBounds(items []entity.Item) Bounds {
	if len(items) == 0 {
		return Bounds{Min: fallbackMinPrice, Max: fallbackMaxPrice}
	}
	lo, hi := items[0].Price, items[0].Price
	for _, it := range items[1:] {
		lo = math.Min(lo, it.Price)
		hi = math.Max(hi, it.Price)
	}
	return Bounds{Min: math.Floor(lo), Max: math.Ceil(hi)}
}

// Clamp limits p to the bounds.
func (b Bounds) Clamp(p float64) float64 {
	return math.Max(b.Min, math.Min(b.Max, p))
}
