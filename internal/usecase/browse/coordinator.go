package browse

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"catalog-browser/internal/common/pagination"
	"catalog-browser/internal/domain/entity"
	"catalog-browser/internal/observability/metrics"
	"catalog-browser/internal/observability/tracing"
	"catalog-browser/internal/usecase/filter"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Options configures a Coordinator.
type Options struct {
	PageSize   int           // Items per page (pagination default when zero)
	QueryDelay time.Duration // Debounce window for the filter editor's query box
	Logger     *slog.Logger  // slog.Default() when nil
	Tracer     trace.Tracer  // tracing.GetTracer() when nil
}

// Coordinator owns the state of one list screen. All methods are safe for
// concurrent use; fetches run on the caller's goroutine without holding the
// lock, and their results are applied only if no refresh or spec change
// happened in the meantime.
type Coordinator struct {
	mode     pagination.Mode
	pageSize int
	pages    PageSource
	catalog  CatalogSource
	logger   *slog.Logger
	tracer   trace.Tracer

	mu         sync.Mutex
	state      State
	mounted    bool
	generation uint64
	coll       *Collection
	window     *pagination.Window
	editor     *filter.Editor
	view       []entity.Item
	categories []string
	lastFailed Operation
}

// NewCursorCoordinator creates a coordinator that appends server pages.
func NewCursorCoordinator(src PageSource, opts Options) *Coordinator {
	c := newCoordinator(pagination.ModeCursor, opts)
	c.pages = src
	return c
}

// NewClientCoordinator creates a coordinator that fetches the whole catalog
// once and filters, sorts and pages it in memory.
func NewClientCoordinator(src CatalogSource, opts Options) *Coordinator {
	c := newCoordinator(pagination.ModeClient, opts)
	c.catalog = src
	return c
}

func newCoordinator(mode pagination.Mode, opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tr := opts.Tracer
	if tr == nil {
		tr = tracing.GetTracer()
	}
	window := pagination.NewWindow(mode, opts.PageSize)
	return &Coordinator{
		mode:     mode,
		pageSize: window.PageSize(),
		logger:   logger.With(slog.String("component", "browse"), slog.String("mode", mode.String())),
		tracer:   tr,
		coll:     NewCollection(),
		window:   window,
		editor:   filter.NewEditor(filter.DeriveBounds(nil), opts.QueryDelay),
	}
}

// Mode returns the pagination mode.
func (c *Coordinator) Mode() pagination.Mode { return c.mode }

// Editor returns the filter editor holding the active and draft specs.
// Draft edits take effect through ApplyDraft.
func (c *Coordinator) Editor() *filter.Editor { return c.editor }

// Close stops pending debounced edits.
func (c *Coordinator) Close() { c.editor.Close() }

// Mount performs the initial load. Only the first call has an effect.
func (c *Coordinator) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.ignoreLocked(OpMount, "already_mounted")
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	gen := c.beginInitialLocked()
	c.mu.Unlock()

	return c.runInitial(ctx, gen)
}

// LoadMore reveals or fetches the next page. It is a no-op unless the screen
// is Ready and more items exist. In cursor mode at most one page fetch is in
// flight; in client mode no fetch happens.
func (c *Coordinator) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	switch {
	case c.state == StateLoadingMore:
		c.ignoreLocked(OpLoadMore, "in_flight")
		c.mu.Unlock()
		return nil
	case c.state != StateReady && !c.canRevealLocked():
		c.ignoreLocked(OpLoadMore, "not_ready")
		c.mu.Unlock()
		return nil
	case !c.window.HasMore():
		c.ignoreLocked(OpLoadMore, "no_more")
		c.mu.Unlock()
		return nil
	}

	if c.mode == pagination.ModeClient {
		n := c.window.RevealNext(len(c.view))
		c.publishLocked()
		c.logger.Debug("Page revealed",
			slog.Int("revealed", n),
			slog.Int("loaded", c.window.Loaded()),
			slog.Bool("has_more", c.window.HasMore()))
		c.mu.Unlock()
		return nil
	}

	gen, offset := c.beginLoadMoreLocked()
	c.mu.Unlock()
	return c.runLoadMore(ctx, gen, offset)
}

// Refresh reloads from the first page. Items already shown stay visible
// until the replacement arrives. A refresh while one is in flight is a no-op.
// In client mode the filter specs are reset to the defaults of the new data.
func (c *Coordinator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	switch c.state {
	case StateReady, StateLoadingMore, StateError:
	case StateRefreshing:
		c.ignoreLocked(OpRefresh, "in_flight")
		c.mu.Unlock()
		return nil
	default:
		c.ignoreLocked(OpRefresh, "not_ready")
		c.mu.Unlock()
		return nil
	}
	gen, needCategories := c.beginRefreshLocked()
	c.mu.Unlock()

	return c.runRefresh(ctx, gen, needCategories)
}

// Retry re-runs the operation that put the screen into Error.
func (c *Coordinator) Retry(ctx context.Context) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return ErrNotMounted
	}
	if c.state != StateError {
		c.ignoreLocked(OpNone, "not_failed")
		c.mu.Unlock()
		return nil
	}

	op := c.lastFailed
	c.logger.Info("Retrying failed operation", slog.String("operation", op.String()))
	switch op {
	case OpMount:
		gen := c.beginInitialLocked()
		c.mu.Unlock()
		return c.runInitial(ctx, gen)
	case OpLoadMore:
		gen, offset := c.beginLoadMoreLocked()
		c.mu.Unlock()
		return c.runLoadMore(ctx, gen, offset)
	default:
		gen, needCategories := c.beginRefreshLocked()
		c.mu.Unlock()
		return c.runRefresh(ctx, gen, needCategories)
	}
}

// ApplySpec replaces the active and draft specs with s (clamped into the
// current price bounds) and re-projects the view from its first page.
func (c *Coordinator) ApplySpec(s filter.Spec) (filter.Spec, error) {
	return c.applyWith(func() filter.Spec { return c.editor.Replace(s) })
}

// ApplyDraft commits the editor's draft spec.
func (c *Coordinator) ApplyDraft() (filter.Spec, error) {
	return c.applyWith(c.editor.Commit)
}

// ResetFilters applies the default spec for the current bounds.
func (c *Coordinator) ResetFilters() (filter.Spec, error) {
	return c.applyWith(c.editor.Reset)
}

func (c *Coordinator) applyWith(change func() filter.Spec) (filter.Spec, error) {
	if c.mode != pagination.ModeClient {
		return filter.Spec{}, ErrSpecUnsupported
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return filter.Spec{}, ErrNotMounted
	}
	if c.state == StateInitialLoading || c.state == StateRefreshing {
		c.ignoreLocked(OpNone, "busy")
		return c.editor.Active(), ErrBusy
	}

	applied := change()
	c.generation++
	c.recomputeLocked(applied)
	c.logger.Info("Filter applied",
		slog.String("spec", applied.String()),
		slog.Int("matched", len(c.view)),
		slog.Uint64("generation", c.generation))
	return applied, nil
}

// Snapshot is an immutable copy of what a screen renders.
type Snapshot struct {
	Mode         string              `json:"mode"`
	State        State               `json:"state"`
	Status       Status              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Items        []entity.Item       `json:"items"`
	Matched      int                 `json:"matched"` // Items in the collection (cursor) or the filtered view (client)
	Window       pagination.Metadata `json:"window"`
	Generation   uint64              `json:"generation"`
	Spec         filter.Spec         `json:"spec"`
	Bounds       filter.Bounds       `json:"bounds"`
	Categories   []string            `json:"categories,omitempty"`
	LastFailed   Operation           `json:"last_failed"`
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.visibleLocked()
	items := make([]entity.Item, len(visible))
	copy(items, visible)

	matched := c.coll.Len()
	if c.mode == pagination.ModeClient {
		matched = len(c.view)
	}

	return Snapshot{
		Mode:         c.mode.String(),
		State:        c.state,
		Status:       c.coll.Status(),
		ErrorMessage: c.coll.ErrorMessage(),
		Items:        items,
		Matched:      matched,
		Window:       c.window.Metadata(),
		Generation:   c.generation,
		Spec:         c.editor.Active(),
		Bounds:       c.editor.Bounds(),
		Categories:   append([]string(nil), c.categories...),
		LastFailed:   c.lastFailed,
	}
}

func (c *Coordinator) beginInitialLocked() uint64 {
	c.generation++
	c.setStateLocked(StateInitialLoading)
	c.coll.BeginLoad(true)
	c.window.Reset()
	c.view = nil
	pagination.LogPageRequest(c.logger, c.generation, c.window)
	return c.generation
}

func (c *Coordinator) beginLoadMoreLocked() (uint64, int) {
	c.setStateLocked(StateLoadingMore)
	c.window.SetFetchingMore(true)
	c.coll.BeginLoad(false)
	pagination.LogPageRequest(c.logger, c.generation, c.window)
	return c.generation, c.window.NextOffset()
}

func (c *Coordinator) beginRefreshLocked() (uint64, bool) {
	c.generation++
	c.setStateLocked(StateRefreshing)
	c.window.SetFetchingMore(false)
	c.window.SetRefreshing(true)
	c.coll.BeginLoad(false)
	c.logger.Info("Refreshing", slog.Uint64("generation", c.generation))
	return c.generation, c.categories == nil
}

func (c *Coordinator) runInitial(ctx context.Context, gen uint64) error {
	ctx, span := c.startSpan(ctx, OpMount, gen)
	defer span.End()
	start := time.Now()

	if c.mode == pagination.ModeCursor {
		page, err := c.pages.FetchPage(ctx, c.pageSize, 0)
		return endSpan(span, c.finishCursor(OpMount, gen, start, page, err))
	}
	items, cats, err := c.fetchCatalog(ctx, true)
	return endSpan(span, c.finishClient(OpMount, gen, start, items, cats, err))
}

func (c *Coordinator) runLoadMore(ctx context.Context, gen uint64, offset int) error {
	ctx, span := c.startSpan(ctx, OpLoadMore, gen)
	defer span.End()
	span.SetAttributes(attribute.Int("offset", offset))
	start := time.Now()

	page, err := c.pages.FetchPage(ctx, c.pageSize, offset)
	return endSpan(span, c.finishCursor(OpLoadMore, gen, start, page, err))
}

func (c *Coordinator) runRefresh(ctx context.Context, gen uint64, needCategories bool) error {
	ctx, span := c.startSpan(ctx, OpRefresh, gen)
	defer span.End()
	start := time.Now()

	if c.mode == pagination.ModeCursor {
		page, err := c.pages.FetchPage(ctx, c.pageSize, 0)
		return endSpan(span, c.finishCursor(OpRefresh, gen, start, page, err))
	}
	items, cats, err := c.fetchCatalog(ctx, needCategories)
	return endSpan(span, c.finishClient(OpRefresh, gen, start, items, cats, err))
}

// fetchCatalog loads products and, when asked, categories in parallel.
// Either failure fails the whole load.
func (c *Coordinator) fetchCatalog(ctx context.Context, withCategories bool) ([]entity.Item, []string, error) {
	var (
		items []entity.Item
		cats  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = c.catalog.FetchAll(gctx)
		return err
	})
	if withCategories {
		g.Go(func() error {
			var err error
			cats, err = c.catalog.FetchCategories(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return items, cats, nil
}

func (c *Coordinator) finishCursor(op Operation, gen uint64, start time.Time, page Page, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.staleLocked(op, gen, start)
		return nil
	}
	c.window.SetFetchingMore(false)
	c.window.SetRefreshing(false)
	if err != nil {
		return c.failLocked(op, gen, start, err)
	}

	appendMode := op == OpLoadMore
	if !appendMode {
		c.window.Reset()
	}
	added := c.coll.LoadSucceeded(page.Items, page.Total, appendMode)
	c.window.Sync(c.coll.Len(), page.Total)
	pagination.RecordPageFill(c.mode, len(page.Items), c.pageSize)
	if _, known := c.window.Total(); !known && len(page.Items) < c.pageSize {
		// Without a total, a short page is the last one.
		c.window.MarkExhausted()
	}
	if added == 0 && c.window.HasMore() {
		// Offset would not advance; stop instead of refetching the same page.
		c.window.MarkExhausted()
		c.logger.Warn("Source returned no new items before reaching its total",
			slog.Int("loaded", c.coll.Len()),
			slog.Int("total", page.Total))
	}

	c.succeedLocked(op, gen, start, len(page.Items))
	return nil
}

func (c *Coordinator) finishClient(op Operation, gen uint64, start time.Time, items []entity.Item, cats []string, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.staleLocked(op, gen, start)
		return nil
	}
	c.window.SetRefreshing(false)
	if err != nil {
		return c.failLocked(op, gen, start, err)
	}

	c.coll.LoadSucceeded(items, len(items), false)
	if cats != nil {
		c.categories = cats
	}
	if len(c.categories) == 0 {
		c.categories = categoriesOf(c.coll.All())
	}
	spec := c.editor.Rebase(filter.DeriveBounds(c.coll.All()))
	c.recomputeLocked(spec)

	c.succeedLocked(op, gen, start, len(items))
	return nil
}

// recomputeLocked projects the collection through spec and shows the first page.
func (c *Coordinator) recomputeLocked(spec filter.Spec) {
	c.view = filter.ComputeView(c.coll.All(), spec)
	c.window.Reset()
	c.window.RevealNext(len(c.view))
	c.publishLocked()
}

func (c *Coordinator) succeedLocked(op Operation, gen uint64, start time.Time, returned int) {
	c.setStateLocked(StateReady)
	c.lastFailed = OpNone
	c.publishLocked()
	metrics.RecordBrowseFetch(op.String(), c.mode.String(), "success", time.Since(start))
	pagination.LogPageResult(c.logger, gen, returned, time.Since(start), c.window)
}

func (c *Coordinator) failLocked(op Operation, gen uint64, start time.Time, err error) error {
	c.coll.LoadFailed(entity.UserMessage(err))
	c.setStateLocked(StateError)
	c.lastFailed = op
	c.publishLocked()
	metrics.RecordBrowseFetch(op.String(), c.mode.String(), "failure", time.Since(start))
	pagination.LogPageError(c.logger, gen, c.window, err)
	return fmt.Errorf("%s: %w", op, err)
}

func (c *Coordinator) staleLocked(op Operation, gen uint64, start time.Time) {
	metrics.RecordStaleResponse(op.String())
	metrics.RecordBrowseFetch(op.String(), c.mode.String(), "stale", time.Since(start))
	c.logger.Debug("Discarding stale response",
		slog.String("operation", op.String()),
		slog.Uint64("generation", gen),
		slog.Uint64("current_generation", c.generation))
}

func (c *Coordinator) ignoreLocked(op Operation, reason string) {
	metrics.RecordBrowseIgnored(op.String(), reason)
	c.logger.Debug("Action ignored",
		slog.String("operation", op.String()),
		slog.String("reason", reason),
		slog.String("state", c.state.String()))
}

func (c *Coordinator) setStateLocked(to State) {
	from := c.state
	if from == to {
		return
	}
	if !CanTransition(from, to) {
		c.logger.Warn("Unexpected state transition",
			slog.String("from", from.String()),
			slog.String("to", to.String()))
	}
	c.state = to
	metrics.RecordStateTransition(from.String(), to.String())
}

// canRevealLocked reports whether client mode may page through the items it
// still holds after a failed refresh.
func (c *Coordinator) canRevealLocked() bool {
	return c.mode == pagination.ModeClient && c.state == StateError && c.coll.Len() > 0
}

func (c *Coordinator) visibleLocked() []entity.Item {
	if c.mode == pagination.ModeClient {
		return pagination.Visible(c.window, c.view)
	}
	return c.coll.All()
}

func (c *Coordinator) publishLocked() {
	metrics.SetVisibleItems(c.mode.String(), len(c.visibleLocked()))
}

func (c *Coordinator) startSpan(ctx context.Context, op Operation, gen uint64) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "browse."+op.String(),
		trace.WithAttributes(
			attribute.String("mode", c.mode.String()),
			attribute.Int64("generation", int64(gen)),
		))
}

func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// categoriesOf lists distinct non-empty categories in sorted order.
func categoriesOf(items []entity.Item) []string {
	seen := make(map[string]struct{})
	for _, it := range items {
		if it.Category != "" {
			seen[it.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
