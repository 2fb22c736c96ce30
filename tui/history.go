// Package tui is the real-time terminal front end: a tile view of the map,
// mouse targeting, skill keys and a command console.
package tui

// History remembers console commands for Up/Down recall. It keeps at most
// max entries and drops the oldest first.
type History struct {
	entries []string
	max     int
	cursor  int // len(entries) when not navigating
}

// NewHistory creates a history holding up to max commands.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Push records cmd and stops any navigation. Repeating the newest entry is
// a no-op.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.cursor = len(h.entries)
}

// Last returns the newest entry.
func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Prev steps back to an older entry, stopping at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward. Moving past the newest entry returns false and ends
// navigation so the caller can clear the input.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor ends navigation.
func (h *History) ResetCursor() {
	h.cursor = len(h.entries)
}
