package browse_test

import (
	"encoding/json"
	"testing"

	"catalog-browser/internal/usecase/browse"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to browse.State
		want     bool
	}{
		{browse.StateIdle, browse.StateInitialLoading, true},
		{browse.StateIdle, browse.StateReady, false},
		{browse.StateInitialLoading, browse.StateReady, true},
		{browse.StateInitialLoading, browse.StateError, true},
		{browse.StateReady, browse.StateLoadingMore, true},
		{browse.StateReady, browse.StateRefreshing, true},
		{browse.StateLoadingMore, browse.StateReady, true},
		{browse.StateLoadingMore, browse.StateRefreshing, true},
		{browse.StateRefreshing, browse.StateLoadingMore, false},
		{browse.StateError, browse.StateRefreshing, true},
		{browse.StateError, browse.StateReady, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, browse.CanTransition(tt.from, tt.to))
		})
	}
}

func TestState_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		S browse.State     `json:"s"`
		O browse.Operation `json:"o"`
		T browse.Status    `json:"t"`
	}{browse.StateLoadingMore, browse.OpRefresh, browse.StatusError})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"s":"loading_more","o":"refresh","t":"error"}`, string(b))
	assert.Equal(t, "unknown", browse.State(99).String())
}
