package pagination

// CalculateTotalPages returns how many pages of size pageSize hold total items.
// Uses ceiling division to ensure all items are included.
//
// Special cases:
//   - If total is 0, returns 1 (an empty list still renders one page)
//   - If pageSize is not positive, returns 1
//
// Examples:
//   - Total 0, PageSize 10 -> 1 page
//   - Total 10, PageSize 10 -> 1 page
//   - Total 25, PageSize 10 -> 3 pages
func CalculateTotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// CalculateCurrentPage returns the 1-based index of the last page that is at
// least partially revealed. Nothing revealed counts as page 1.
//
// Examples:
//   - Loaded 0, PageSize 10 -> 1
//   - Loaded 10, PageSize 10 -> 1
//   - Loaded 25, PageSize 10 -> 3
func CalculateCurrentPage(loaded, pageSize int) int {
	return CalculateTotalPages(loaded, pageSize)
}

// ClampPageSize caps size to cfg.MaxPageSize and replaces non-positive
// values with cfg.DefaultPageSize.
func ClampPageSize(size int, cfg Config) int {
	if size <= 0 {
		size = cfg.DefaultPageSize
	}
	if cfg.MaxPageSize > 0 && size > cfg.MaxPageSize {
		size = cfg.MaxPageSize
	}
	return size
}
