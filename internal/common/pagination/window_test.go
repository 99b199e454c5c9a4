package pagination_test

import (
	"testing"

	"catalog-browser/internal/common/pagination"

	"github.com/stretchr/testify/assert"
)

func TestWindow_RevealNext(t *testing.T) {
	t.Parallel()

	w := pagination.NewWindow(pagination.ModeClient, 10)
	assert.True(t, w.HasMore())
	_, known := w.Total()
	assert.False(t, known)

	steps := []struct {
		revealed int
		loaded   int
		hasMore  bool
	}{
		{10, 10, true},
		{10, 20, true},
		{5, 25, false},
		{0, 25, false},
	}
	for i, s := range steps {
		n := w.RevealNext(25)
		assert.Equal(t, s.revealed, n, "step %d", i)
		assert.Equal(t, s.loaded, w.Loaded(), "step %d", i)
		assert.Equal(t, s.hasMore, w.HasMore(), "step %d", i)
	}
}

func TestWindow_RevealNextEmpty(t *testing.T) {
	t.Parallel()

	w := pagination.NewWindow(pagination.ModeClient, 10)
	assert.Equal(t, 0, w.RevealNext(0))
	assert.False(t, w.HasMore())
	assert.Equal(t, 1, w.Metadata().TotalPages)
}

func TestWindow_SyncAndOffset(t *testing.T) {
	t.Parallel()

	w := pagination.NewWindow(pagination.ModeCursor, 10)
	assert.Equal(t, 0, w.NextOffset())

	w.Sync(10, 25)
	assert.Equal(t, 10, w.NextOffset())
	assert.True(t, w.HasMore())

	w.Sync(25, 25)
	assert.False(t, w.HasMore())

	meta := w.Metadata()
	assert.Equal(t, pagination.Metadata{
		Mode:        "cursor",
		Total:       25,
		TotalKnown:  true,
		Loaded:      25,
		PageSize:    10,
		HasMore:     false,
		TotalPages:  3,
		CurrentPage: 3,
	}, meta)
}

func TestWindow_ResetAndExhausted(t *testing.T) {
	t.Parallel()

	w := pagination.NewWindow(pagination.ModeCursor, 5)
	w.Sync(5, 40)
	w.MarkExhausted()
	assert.False(t, w.HasMore())

	w.Reset()
	assert.Equal(t, 0, w.Loaded())
	assert.True(t, w.HasMore())
	_, known := w.Total()
	assert.False(t, known)
}

func TestWindow_Flags(t *testing.T) {
	t.Parallel()

	w := pagination.NewWindow(pagination.ModeCursor, 0)
	assert.Equal(t, 10, w.PageSize())

	w.SetFetchingMore(true)
	w.SetRefreshing(true)
	assert.True(t, w.IsFetchingMore())
	assert.True(t, w.Metadata().Refreshing)
}

func TestVisible(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5, 6, 7}
	w := pagination.NewWindow(pagination.ModeClient, 3)

	assert.Empty(t, pagination.Visible(w, items))
	w.RevealNext(len(items))
	assert.Equal(t, []int{1, 2, 3}, pagination.Visible(w, items))
	w.RevealNext(len(items))
	w.RevealNext(len(items))
	assert.Equal(t, items, pagination.Visible(w, items))

	// Shorter slice than the window never panics.
	assert.Equal(t, []int{1, 2}, pagination.Visible(w, items[:2]))
}

func TestWindow_LoadedIsMonotonic(t *testing.T) {
	t.Parallel()

	w := pagination.NewWindow(pagination.ModeClient, 4)
	prev := 0
	for i := 0; i < 20; i++ {
		w.RevealNext(30 - i)
		assert.GreaterOrEqual(t, w.Loaded(), prev)
		prev = w.Loaded()
	}
}

func TestWindow_SyncUnknownTotal(t *testing.T) {
	t.Parallel()

	w := pagination.NewWindow(pagination.ModeCursor, 10)
	w.Sync(10, -1)
	assert.True(t, w.HasMore())
	assert.Equal(t, 10, w.Loaded())
	total, known := w.Total()
	assert.False(t, known)
	assert.Equal(t, 0, total)

	w.Sync(20, -1)
	assert.True(t, w.HasMore())

	// A total reported earlier still bounds the window.
	k := pagination.NewWindow(pagination.ModeCursor, 10)
	k.Sync(10, 20)
	k.Sync(20, -1)
	assert.False(t, k.HasMore())
	total, known = k.Total()
	assert.True(t, known)
	assert.Equal(t, 20, total)
}
