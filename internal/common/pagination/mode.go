package pagination

import (
	"fmt"
	"strings"
)

// Mode selects where pages come from.
type Mode int

const (
	// ModeCursor fetches fixed-size pages from the remote source with
	// limit/offset and appends them on demand.
	ModeCursor Mode = iota
	// ModeClient fetches the whole collection once and reveals the
	// filtered, sorted view page by page in memory.
	ModeClient
)

// String returns the lowercase name used in flags, logs and metric labels.
func (m Mode) String() string {
	switch m {
	case ModeCursor:
		return "cursor"
	case ModeClient:
		return "client"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "cursor" or "client" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cursor", "server":
		return ModeCursor, nil
	case "client", "local":
		return ModeClient, nil
	default:
		return ModeCursor, fmt.Errorf("unknown pagination mode %q", s)
	}
}
