package browse

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"catalog-browser/internal/common/debounce"
	"catalog-browser/internal/domain/entity"
	"catalog-browser/internal/observability/metrics"
)

// DefaultSearchLimit caps how many results a search asks for.
const DefaultSearchLimit = 20

// SearchOptions configures a Searcher.
type SearchOptions struct {
	Delay   time.Duration // debounce.DefaultDelay when zero
	Limit   int           // DefaultSearchLimit when zero
	Logger  *slog.Logger
	OnState func(SearchSnapshot) // called after every state change, outside the lock
}

// SearchSnapshot is what a search box renders.
type SearchSnapshot struct {
	Query        string        `json:"query"`
	Results      []entity.Item `json:"results"`
	Loading      bool          `json:"loading"`
	HasSearched  bool          `json:"has_searched"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Searcher debounces keystrokes into remote searches. Only the newest issued
// search may update the results.
type Searcher struct {
	src       SearchSource
	limit     int
	logger    *slog.Logger
	onState   func(SearchSnapshot)
	debouncer *debounce.Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	seq      uint64
	inflight context.CancelFunc
	snap     SearchSnapshot
}

// NewSearcher creates a Searcher. Searches run with a context derived from
// ctx; Close cancels it.
func NewSearcher(ctx context.Context, src SearchSource, opts SearchOptions) *Searcher {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Searcher{
		src:       src,
		limit:     limit,
		logger:    logger.With(slog.String("component", "search")),
		onState:   opts.OnState,
		debouncer: debounce.New(opts.Delay),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Type records a keystroke. A blank query cancels the pending search and
// clears the results without fetching.
func (s *Searcher) Type(query string) {
	q := strings.TrimSpace(query)

	s.mu.Lock()
	s.snap.Query = query
	if q == "" {
		s.debouncer.Cancel()
		s.seq++
		s.cancelInflightLocked()
		s.snap.Results = nil
		s.snap.Loading = false
		s.snap.HasSearched = false
		s.snap.ErrorMessage = ""
		snap := s.snapshotLocked()
		s.mu.Unlock()

		metrics.RecordSearch("cleared", 0)
		s.emit(snap)
		return
	}
	seq := s.seq
	s.mu.Unlock()

	s.debouncer.Trigger(func() { s.run(q, seq) })
}

// Flush runs the pending search immediately, if any.
func (s *Searcher) Flush() {
	s.mu.Lock()
	q := strings.TrimSpace(s.snap.Query)
	seq := s.seq
	s.mu.Unlock()
	if s.debouncer.Cancel() && q != "" {
		s.run(q, seq)
	}
}

// Snapshot returns the current search state.
func (s *Searcher) Snapshot() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels the pending timer and any in-flight search.
func (s *Searcher) Close() {
	s.debouncer.Cancel()
	s.cancel()
}

// run issues the search for q unless the searcher moved past scheduled, the
// sequence observed when the search was queued.
func (s *Searcher) run(q string, scheduled uint64) {
	s.mu.Lock()
	if s.seq != scheduled {
		s.mu.Unlock()
		s.logger.Debug("Skipping superseded search", slog.String("query", q))
		return
	}
	s.seq++
	seq := s.seq
	s.cancelInflightLocked()
	ctx, cancel := context.WithCancel(s.ctx)
	s.inflight = cancel
	s.snap.Loading = true
	s.snap.ErrorMessage = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)

	s.logger.Debug("Searching", slog.String("query", q), slog.Uint64("seq", seq))
	start := time.Now()
	items, err := s.src.Search(ctx, q, s.limit)
	cancel()

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		metrics.RecordSearch("stale", time.Since(start))
		s.logger.Debug("Discarding stale search", slog.String("query", q), slog.Uint64("seq", seq))
		return
	}
	s.inflight = nil
	s.snap.Loading = false
	s.snap.HasSearched = true
	if err != nil {
		s.snap.Results = nil
		s.snap.ErrorMessage = entity.UserMessage(err)
		metrics.RecordSearch("failure", time.Since(start))
		s.logger.Error("Search failed", slog.String("query", q), slog.Any("error", err))
	} else {
		s.snap.Results = items
		metrics.RecordSearch("success", time.Since(start))
		s.logger.Info("Search completed", slog.String("query", q), slog.Int("results", len(items)))
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
}

func (s *Searcher) cancelInflightLocked() {
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}

func (s *Searcher) snapshotLocked() SearchSnapshot {
	out := s.snap
	out.Results = append([]entity.Item(nil), s.snap.Results...)
	return out
}

func (s *Searcher) emit(snap SearchSnapshot) {
	if s.onState != nil {
		s.onState(snap)
	}
}
