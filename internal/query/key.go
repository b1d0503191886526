package query

import (
	"fmt"
	"strings"
)

// Key identifies one cached result: domain segments joined with "/".
// A parameter change produces a different key, never a transition of an
// existing one.
type Key string

// NewKey builds a key from domain segments, e.g.
// NewKey("gamification", "leaderboard", "carbon_saved", "month", 10).
func NewKey(segments ...any) Key {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, fmt.Sprint(s))
	}
	return Key(strings.Join(parts, "/"))
}

// HasPrefix reports whether k falls under prefix. A prefix matches
// itself and every key nested below it, on segment boundaries.
func (k Key) HasPrefix(prefix Key) bool {
	if k == prefix {
		return true
	}
	return strings.HasPrefix(string(k), string(prefix)+"/")
}
