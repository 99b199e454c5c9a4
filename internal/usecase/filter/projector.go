package filter

import (
	"sort"
	"strings"

	"catalog-browser/internal/domain/entity"
)

// ComputeView filters and orders items according to spec.
// It never modifies items and never returns nil.
//
// An item is kept when all of the following hold:
//   - the query is empty, or the title or description contains it (case-insensitive)
//   - no categories are selected, or the item's category is selected
//   - MinPrice <= price <= MaxPrice
//
// Sorting is stable, so equal keys keep source order.
func ComputeView(items []entity.Item, spec Spec) []entity.Item {
	out := make([]entity.Item, 0, len(items))
	needle := strings.ToLower(spec.Query)

	for _, it := range items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(it.Title), needle) &&
			!strings.Contains(strings.ToLower(it.Description), needle) {
			continue
		}
		if len(spec.categories) > 0 && !spec.HasCategory(it.Category) {
			continue
		}
		if it.Price < spec.MinPrice || it.Price > spec.MaxPrice {
			continue
		}
		out = append(out, it)
	}

	if less := lessFor(spec.SortKey); less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func lessFor(k SortKey) func(a, b entity.Item) bool {
	switch k {
	case SortPriceAsc:
		return func(a, b entity.Item) bool { return a.Price < b.Price }
	case SortPriceDesc:
		return func(a, b entity.Item) bool { return a.Price > b.Price }
	case SortNameAsc:
		return func(a, b entity.Item) bool { return a.Title < b.Title }
	case SortNameDesc:
		return func(a, b entity.Item) bool { return a.Title > b.Title }
	default:
		return nil
	}
}
