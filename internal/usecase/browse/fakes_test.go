package browse_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"catalog-browser/internal/domain/entity"
	"catalog-browser/internal/usecase/browse"
)

var errUpstream = fmt.Errorf("connection reset: %w", entity.ErrTransport)

func makeItems(prefix string, n int, price func(i int) float64) []entity.Item {
	items := make([]entity.Item, n)
	for i := range items {
		p := float64(i + 1)
		if price != nil {
			p = price(i)
		}
		items[i] = entity.Item{
			ID:       fmt.Sprintf("%s%d", prefix, i),
			Title:    fmt.Sprintf("Item %s%02d", prefix, i),
			Category: []string{"laptops", "home", "phones"}[i%3],
			Price:    p,
		}
	}
	return items
}

// gate lets a test hold fetches until it releases them.
type gate struct {
	entered chan int
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan int, 16), release: make(chan struct{}, 16)}
}

func (g *gate) wait(ctx context.Context, tag int) error {
	if g == nil {
		return nil
	}
	g.entered <- tag
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fakePages serves a fixed slice by limit/offset.
type fakePages struct {
	mu      sync.Mutex
	items   []entity.Item
	total   int // reported total; len(items) when zero
	shift   int // offsets past zero are moved back by shift, simulating inserts
	errs    []error
	gate    *gate
	offsets []int
}

func (f *fakePages) FetchPage(ctx context.Context, limit, offset int) (browse.Page, error) {
	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	var err error
	if len(f.errs) > 0 {
		err, f.errs = f.errs[0], f.errs[1:]
	}
	items, total, g := f.items, f.total, f.gate
	start := offset
	if start > 0 {
		start -= f.shift
	}
	f.mu.Unlock()

	if total == 0 {
		total = len(items)
	}
	var page []entity.Item
	if start < len(items) {
		end := min(start+limit, len(items))
		page = append(page, items[start:end]...)
	}

	if werr := g.wait(ctx, offset); werr != nil {
		return browse.Page{}, werr
	}
	if err != nil {
		return browse.Page{}, err
	}
	return browse.Page{Items: page, Total: total}, nil
}

func (f *fakePages) setItems(items []entity.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

func (f *fakePages) setGate(g *gate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = g
}

func (f *fakePages) failNext(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, errs...)
}

func (f *fakePages) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.offsets...)
}

// fakeCatalog serves the whole collection and a category list.
type fakeCatalog struct {
	mu         sync.Mutex
	items      []entity.Item
	categories []string
	allErrs    []error
	catErr     error
	gate       *gate
	allCalls   int
	catCalls   int
}

func (f *fakeCatalog) FetchAll(ctx context.Context) ([]entity.Item, error) {
	f.mu.Lock()
	f.allCalls++
	var err error
	if len(f.allErrs) > 0 {
		err, f.allErrs = f.allErrs[0], f.allErrs[1:]
	}
	items, g := append([]entity.Item(nil), f.items...), f.gate
	f.mu.Unlock()

	if werr := g.wait(ctx, 0); werr != nil {
		return nil, werr
	}
	return items, err
}

func (f *fakeCatalog) FetchCategories(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catCalls++
	if f.catErr != nil {
		return nil, f.catErr
	}
	return append([]string(nil), f.categories...), nil
}

func (f *fakeCatalog) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allCalls, f.catCalls
}

func (f *fakeCatalog) set(fn func(*fakeCatalog)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// fakeSearch answers queries from a fixed slice by title prefix.
type fakeSearch struct {
	mu      sync.Mutex
	items   []entity.Item
	queries []string
	limits  []int
	err     error
	gates   map[string]*gate
}

func (f *fakeSearch) Search(ctx context.Context, query string, limit int) ([]entity.Item, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	err := f.err
	g := f.gates[query]
	var out []entity.Item
	for _, it := range f.items {
		if len(out) < limit && containsFold(it.Title, query) {
			out = append(out, it)
		}
	}
	f.mu.Unlock()

	if werr := g.wait(ctx, len(query)); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeSearch) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
