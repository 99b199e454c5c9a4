package browse

// State is the lifecycle of a list screen.
type State int

const (
	StateIdle State = iota
	StateInitialLoading
	StateReady
	StateLoadingMore
	StateRefreshing
	StateError
)

var stateNames = map[State]string{
	StateIdle:           "idle",
	StateInitialLoading: "initial_loading",
	StateReady:          "ready",
	StateLoadingMore:    "loading_more",
	StateRefreshing:     "refreshing",
	StateError:          "error",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// MarshalText renders the state name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// transitions lists the allowed edges. Error re-enters loading states only
// through Retry or Refresh.
var transitions = map[State][]State{
	StateIdle:           {StateInitialLoading},
	StateInitialLoading: {StateReady, StateError},
	StateReady:          {StateLoadingMore, StateRefreshing},
	StateLoadingMore:    {StateReady, StateError, StateRefreshing},
	StateRefreshing:     {StateReady, StateError},
	StateError:          {StateRefreshing, StateInitialLoading, StateLoadingMore},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Operation names a fetch the coordinator can run and retry.
type Operation int

const (
	OpNone Operation = iota
	OpMount
	OpLoadMore
	OpRefresh
)

func (o Operation) String() string {
	switch o {
	case OpMount:
		return "mount"
	case OpLoadMore:
		return "load_more"
	case OpRefresh:
		return "refresh"
	default:
		return "none"
	}
}

// MarshalText renders the operation name in JSON snapshots.
func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
