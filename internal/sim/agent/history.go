package agent

// History is a bounded, insertion-ordered log of rendered lines. When full,
// appending drops the oldest line.
// History is not safe for concurrent use.
type History struct {
	lines []string
	start int
	n     int
}

// NewHistory creates an empty History holding at most capacity lines.
//
// Precondition: capacity >= 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		panic("agent.NewHistory: capacity must be >= 1")
	}
	return &History{lines: make([]string, capacity)}
}

// Append adds lines in order.
func (h *History) Append(lines ...string) {
	for _, line := range lines {
		idx := (h.start + h.n) % len(h.lines)
		h.lines[idx] = line
		if h.n < len(h.lines) {
			h.n++
		} else {
			h.start = (h.start + 1) % len(h.lines)
		}
	}
}

// Len returns the number of retained lines.
func (h *History) Len() int { return h.n }

// Cap returns the maximum number of retained lines.
func (h *History) Cap() int { return len(h.lines) }

// Recent returns the last min(n, Len()) lines, oldest first.
//
// Postcondition: The returned slice is a copy.
func (h *History) Recent(n int) []string {
	if n > h.n {
		n = h.n
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	first := h.start + h.n - n
	for i := range out {
		out[i] = h.lines[(first+i)%len(h.lines)]
	}
	return out
}

// All returns every retained line, oldest first.
func (h *History) All() []string {
	return h.Recent(h.n)
}
