package pagination

// Window tracks how much of a collection is revealed and whether more can be
// requested. HasMore is true iff Loaded < total once a total is known.
//
// A Window is not safe for concurrent use; its owner serializes access.
type Window struct {
	mode         Mode
	pageSize     int
	loaded       int
	total        int
	totalKnown   bool
	hasMore      bool
	fetchingMore bool
	refreshing   bool
}

// NewWindow creates an empty window. A non-positive pageSize falls back to
// DefaultConfig().DefaultPageSize.
func NewWindow(mode Mode, pageSize int) *Window {
	if pageSize <= 0 {
		pageSize = DefaultConfig().DefaultPageSize
	}
	return &Window{mode: mode, pageSize: pageSize, hasMore: true}
}

func (w *Window) Mode() Mode           { return w.mode }
func (w *Window) PageSize() int        { return w.pageSize }
func (w *Window) Loaded() int          { return w.loaded }
func (w *Window) HasMore() bool        { return w.hasMore }
func (w *Window) IsFetchingMore() bool { return w.fetchingMore }
func (w *Window) IsRefreshing() bool   { return w.refreshing }

// Total returns the last known total and whether one is known.
func (w *Window) Total() (int, bool) { return w.total, w.totalKnown }

// NextOffset is the offset of the next cursor page.
func (w *Window) NextOffset() int { return w.loaded }

// Reset returns the window to {Loaded: 0, HasMore: true}. In-flight flags
// are left to the caller.
func (w *Window) Reset() {
	w.loaded = 0
	w.total = 0
	w.totalKnown = false
	w.hasMore = true
	windowResets.WithLabelValues(w.mode.String()).Inc()
}

// RevealNext grows Loaded by one page, clamped to total, and returns how many
// items became visible.
func (w *Window) RevealNext(total int) int {
	if total < 0 {
		total = 0
	}
	before := w.loaded
	w.loaded += w.pageSize
	if w.loaded > total {
		w.loaded = total
	}
	if w.loaded < before {
		// total shrank below what was already shown; keep monotonic.
		w.loaded = before
	}
	w.setTotal(total)
	if n := w.loaded - before; n > 0 {
		pagesRevealed.WithLabelValues(w.mode.String()).Inc()
		return n
	}
	return 0
}

// Sync records a cursor page result: loaded items so far and the reported
// total. A negative total means the source did not report one; the window
// then keeps HasMore set until the caller marks it exhausted.
func (w *Window) Sync(loaded, total int) {
	if loaded < 0 {
		loaded = 0
	}
	if loaded > w.loaded {
		pagesRevealed.WithLabelValues(w.mode.String()).Inc()
	}
	w.loaded = loaded
	w.setTotal(total)
}

// MarkExhausted clears HasMore. Used when a source returns an empty page
// before the reported total is reached.
func (w *Window) MarkExhausted() {
	if w.hasMore {
		exhausted.WithLabelValues(w.mode.String()).Inc()
	}
	w.hasMore = false
}

func (w *Window) SetFetchingMore(v bool) { w.fetchingMore = v }
func (w *Window) SetRefreshing(v bool)   { w.refreshing = v }

// Metadata returns a snapshot of the window.
func (w *Window) Metadata() Metadata {
	return Metadata{
		Mode:         w.mode.String(),
		Total:        w.total,
		TotalKnown:   w.totalKnown,
		Loaded:       w.loaded,
		PageSize:     w.pageSize,
		HasMore:      w.hasMore,
		TotalPages:   CalculateTotalPages(w.total, w.pageSize),
		CurrentPage:  CalculateCurrentPage(w.loaded, w.pageSize),
		FetchingMore: w.fetchingMore,
		Refreshing:   w.refreshing,
	}
}

func (w *Window) setTotal(total int) {
	if total < 0 {
		if w.totalKnown {
			w.hasMore = w.loaded < w.total
		} else {
			w.hasMore = true
		}
		return
	}
	w.total = total
	w.totalKnown = true
	w.hasMore = w.loaded < total
}

// Visible returns the revealed prefix of items. The result shares storage
// with items.
func Visible[T any](w *Window, items []T) []T {
	n := w.loaded
	if n > len(items) {
		n = len(items)
	}
	return items[:n:n]
}
