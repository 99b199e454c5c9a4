// Package browse implements the fetch coordinator behind a paged product
// list: it keeps the collection, the filter spec, the projected view and the
// page window consistent while scroll, refresh, filter and search actions
// race each other.
package browse

import "errors"

// Sentinel errors for browse operations.
var (
	// ErrSpecUnsupported is returned when filter operations are attempted
	// in cursor mode, where the remote source owns ordering.
	ErrSpecUnsupported = errors.New("filter spec is only supported in client mode")

	// ErrNotMounted is returned by operations that need an initial load.
	ErrNotMounted = errors.New("browse coordinator is not mounted")

	// ErrBusy is returned when a filter change arrives while the whole
	// collection is being replaced.
	ErrBusy = errors.New("collection is loading")
)
