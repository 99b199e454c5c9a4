package browse

import (
	"catalog-browser/internal/domain/entity"
)

// Status is the load status of a Collection.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalText renders the status name in JSON snapshots.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Collection holds fetched items in source order, unique by ID.
// It is not safe for concurrent use; the Coordinator serializes access.
type Collection struct {
	items      []entity.Item
	ids        map[string]struct{}
	total      int
	totalKnown bool
	status     Status
	errMsg     string
}

// NewCollection returns an idle, empty collection.
func NewCollection() *Collection {
	return &Collection{ids: make(map[string]struct{})}
}

// BeginLoad marks a load in progress and clears the error message. Items are
// dropped only when clear is set.
func (c *Collection) BeginLoad(clear bool) {
	c.status = StatusLoading
	c.errMsg = ""
	if clear {
		c.reset()
	}
}

// LoadSucceeded stores a successful response. In append mode items whose ID
// is already present are skipped; otherwise the contents are replaced in one
// step. A negative total leaves the total unknown. Returns how many items
// were added.
func (c *Collection) LoadSucceeded(items []entity.Item, total int, appendMode bool) int {
	if !appendMode {
		c.reset()
	}
	added := 0
	for _, it := range items {
		if _, dup := c.ids[it.ID]; dup {
			continue
		}
		c.ids[it.ID] = struct{}{}
		c.items = append(c.items, it)
		added++
	}
	if total >= 0 {
		c.total = total
		c.totalKnown = true
	}
	c.status = StatusReady
	c.errMsg = ""
	return added
}

// LoadFailed records a failure. Existing items are kept.
func (c *Collection) LoadFailed(msg string) {
	c.status = StatusError
	c.errMsg = msg
}

// Items returns a copy of the items in source order.
func (c *Collection) Items() []entity.Item {
	out := make([]entity.Item, len(c.items))
	copy(out, c.items)
	return out
}

// All returns the backing slice. Callers must not modify it.
func (c *Collection) All() []entity.Item { return c.items }

func (c *Collection) Contains(id string) bool {
	_, ok := c.ids[id]
	return ok
}

func (c *Collection) Len() int             { return len(c.items) }
func (c *Collection) Total() (int, bool)   { return c.total, c.totalKnown }
func (c *Collection) Status() Status       { return c.status }
func (c *Collection) ErrorMessage() string { return c.errMsg }

func (c *Collection) reset() {
	c.items = nil
	c.ids = make(map[string]struct{})
	c.total = 0
	c.totalKnown = false
}
