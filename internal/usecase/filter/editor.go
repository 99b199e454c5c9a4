package filter

import (
	"sync"
	"time"

	"catalog-browser/internal/common/debounce"
)

// Editor holds the two live specs of a list screen: the active spec that
// drives the view and a draft edited in the filter modal. Draft edits never
// touch the active spec; Commit copies the draft over it in one step.
type Editor struct {
	mu        sync.Mutex
	bounds    Bounds
	active    Spec
	draft     Spec
	open      bool
	debouncer *debounce.Debouncer
}

// NewEditor creates an editor whose active and draft specs are the default
// spec for bounds. queryDelay is the debounce window for SetQueryDebounced.
func NewEditor(bounds Bounds, queryDelay time.Duration) *Editor {
	def := DefaultSpec(bounds)
	return &Editor{
		bounds:    bounds,
		active:    def,
		draft:     def,
		debouncer: debounce.New(queryDelay),
	}
}

// Active returns the applied spec.
func (e *Editor) Active() Spec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Draft returns the spec being edited.
func (e *Editor) Draft() Spec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Bounds returns the price range sliders may span.
func (e *Editor) Bounds() Bounds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds
}

// IsOpen reports whether a draft is being edited.
func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Open seeds the draft from the active spec.
func (e *Editor) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.active
	e.open = true
}

// Cancel discards the draft.
func (e *Editor) Cancel() {
	e.debouncer.Cancel()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.active
	e.open = false
}

// SetQuery sets the draft's free-text query immediately.
func (e *Editor) SetQuery(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Query = q
}

// SetQueryDebounced sets the draft query once typing pauses for the
// debounce window. Only the last call within the window takes effect;
// settled, if non-nil, receives the draft after the update.
func (e *Editor) SetQueryDebounced(q string, settled func(Spec)) {
	e.debouncer.Trigger(func() {
		e.mu.Lock()
		e.draft.Query = q
		d := e.draft
		e.mu.Unlock()
		if settled != nil {
			settled(d)
		}
	})
}

// ToggleCategory adds or removes a category from the draft.
func (e *Editor) ToggleCategory(c string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.draft.WithCategoryToggled(c)
}

// SetCategories replaces the draft's category set.
func (e *Editor) SetCategories(cs []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.draft.WithCategories(cs)
}

// SetMinPrice moves the draft's lower bound, clamped into the bounds and
// never above the draft's upper bound.
func (e *Editor) SetMinPrice(p float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.draft.WithMinPrice(e.bounds.Clamp(p))
}

// SetMaxPrice moves the draft's upper bound, clamped into the bounds and
// never below the draft's lower bound.
func (e *Editor) SetMaxPrice(p float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.draft.WithMaxPrice(e.bounds.Clamp(p))
}

// SetSortKey sets the draft's ordering.
func (e *Editor) SetSortKey(k SortKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.SortKey = k
}

// Commit makes the draft the active spec and closes the editor.
func (e *Editor) Commit() Spec {
	e.debouncer.Cancel()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = e.draft
	e.open = false
	return e.active
}

// Replace sets both specs to s, clamped into the bounds.
func (e *Editor) Replace(s Spec) Spec {
	e.debouncer.Cancel()
	e.mu.Lock()
	defer e.mu.Unlock()
	s.MinPrice = e.bounds.Clamp(s.MinPrice)
	s.MaxPrice = e.bounds.Clamp(s.MaxPrice)
	if s.MinPrice > s.MaxPrice {
		s.MinPrice = s.MaxPrice
	}
	if s.SortKey == "" {
		s.SortKey = SortDefault
	}
	e.active = s
	e.draft = s
	e.open = false
	return s
}

// Reset applies the default spec to both draft and active.
func (e *Editor) Reset() Spec {
	e.debouncer.Cancel()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = DefaultSpec(e.bounds)
	e.draft = e.active
	e.open = false
	return e.active
}

// Rebase installs new bounds (after the collection was reloaded) and
// resets both specs to the default for them.
func (e *Editor) Rebase(b Bounds) Spec {
	e.mu.Lock()
	e.bounds = b
	e.mu.Unlock()
	return e.Reset()
}

// Close stops any pending debounced edit.
func (e *Editor) Close() {
	e.debouncer.Cancel()
}
