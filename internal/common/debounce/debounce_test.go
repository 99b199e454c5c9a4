package debounce_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"catalog-browser/internal/common/debounce"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_OnlyLastTriggerRuns(t *testing.T) {
	t.Parallel()

	d := debounce.New(30 * time.Millisecond)

	var mu sync.Mutex
	var got []string
	for _, q := range []string{"l", "la", "lap", "lapt"} {
		q := q
		d.Trigger(func() {
			mu.Lock()
			got = append(got, q)
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	// Nothing else fires afterwards.
	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"lapt"}, got)
	assert.False(t, d.Pending())
}

func TestDebouncer_Cancel(t *testing.T) {
	t.Parallel()

	d := debounce.New(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Pending())
	assert.True(t, d.Cancel())
	assert.False(t, d.Pending())
	assert.False(t, d.Cancel())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_SeparatedTriggersBothRun(t *testing.T) {
	t.Parallel()

	d := debounce.New(10 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 2*time.Millisecond)

	d.Trigger(func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 2*time.Millisecond)
}

func TestNew_DefaultDelay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, debounce.DefaultDelay, debounce.New(0).Delay())
	assert.Equal(t, 500*time.Millisecond, debounce.DefaultDelay)
}
