package presenter

import "sync"

const prefetchFraction = 0.6

// ScrollTracker turns scroll positions into "fetch the next page" signals.
type ScrollTracker struct {
	mu   sync.Mutex
	last float64
}

// Observe records a scroll position and reports whether more data should be
// loaded: either the position moved down past 60% of the content height, or
// the viewport reached the bottom edge.
func (t *ScrollTracker) Observe(offset, contentHeight, viewportHeight float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	movingDown := offset > t.last
	t.last = offset

	if movingDown && offset > contentHeight*prefetchFraction {
		return true
	}
	return offset >= contentHeight-viewportHeight
}

// Reset forgets the last position, e.g. after the content was replaced.
func (t *ScrollTracker) Reset() {
	t.mu.Lock()
	t.last = 0
	t.mu.Unlock()
}
