package console

import "sync"

// History holds submitted command lines in insertion order and a navigation
// cursor. Navigation happens on the console loop goroutine, but Entries is
// read by the history builtin from dispatch goroutines, so access is
// mutex-guarded.
type History struct {
	mu      sync.Mutex
	entries []string
	pos     int
	max     int
}

// NewHistory creates a history bounded to max entries; zero or negative
// means unbounded.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Add records a submitted line and resets navigation. Submitting the same
// line twice in a row keeps a single entry.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if line == "" {
		h.pos = len(h.entries)
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		h.pos = n
		return
	}
	h.entries = append(h.entries, line)
	if h.max > 0 && len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
	h.pos = len(h.entries)
}

// Prev steps backward toward older entries, returning false at the oldest.
func (h *History) Prev() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next steps forward toward newer entries. Past the newest entry it returns
// an empty line, restoring the blank prompt.
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return "", true
	}
	return h.entries[h.pos], true
}

// Len reports the number of stored entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the stored lines, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
