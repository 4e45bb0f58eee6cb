// Package history tracks which products the shopper has viewed, most recent
// first, and signals observers after every change.
package history

import "sync"

type Tracker struct {
	mu      sync.Mutex
	titles  []string
	changes chan struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		// Buffer of one: a pending signal already covers any change that
		// lands before the observer wakes up.
		changes: make(chan struct{}, 1),
	}
}

// Record prepends a viewed product title. Repeat views are recorded again
// rather than deduplicated.
func (t *Tracker) Record(title string) {
	t.mu.Lock()
	t.titles = append([]string{title}, t.titles...)
	t.mu.Unlock()

	select {
	case t.changes <- struct{}{}:
	default:
	}
}

// Snapshot returns the history most recent first.
func (t *Tracker) Snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.titles))
	copy(out, t.titles)
	return out
}

// Changes delivers at most one pending signal per batch of records.
func (t *Tracker) Changes() <-chan struct{} {
	return t.changes
}
