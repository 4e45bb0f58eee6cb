// Package recommend turns browsing activity into AI product suggestions. A
// burst of views produces a single request: the trigger waits for the history
// to go quiet before asking the model.
package recommend

import (
	"context"
	"sync"
	"time"
)

// Recommender fetches suggested product ids for a browsing history. It never
// fails; a degraded backend shows up as an empty list.
type Recommender interface {
	Recommendations(ctx context.Context, history []string) []string
}

// HistorySource is the slice of the tracker the trigger needs.
type HistorySource interface {
	Snapshot() []string
	Changes() <-chan struct{}
}

type Trigger struct {
	recommender Recommender
	history     HistorySource
	debounce    time.Duration

	mu      sync.Mutex
	ids     []string
	updates chan struct{}
}

func NewTrigger(recommender Recommender, history HistorySource, debounce time.Duration) *Trigger {
	return &Trigger{
		recommender: recommender,
		history:     history,
		debounce:    debounce,
		ids:         []string{},
		updates:     make(chan struct{}, 1),
	}
}

// Run watches the history for changes and fetches suggestions once the
// debounce window passes without further activity. Each change restarts the
// window, so a browsing burst costs one request. Blocks until ctx is done.
func (t *Trigger) Run(ctx context.Context) {
	timer := time.NewTimer(t.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-t.history.Changes():
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(t.debounce)
			armed = true
		case <-timer.C:
			armed = false
			t.refresh(ctx)
		}
	}
}

// refresh runs inline in the loop, so at most one request is in flight and a
// change arriving mid-fetch schedules the next one rather than racing it.
func (t *Trigger) refresh(ctx context.Context) {
	snapshot := t.history.Snapshot()
	if len(snapshot) == 0 {
		return
	}
	ids := t.recommender.Recommendations(ctx, snapshot)

	t.mu.Lock()
	t.ids = ids
	t.mu.Unlock()

	select {
	case t.updates <- struct{}{}:
	default:
	}
}

// Updates signals after each completed refresh, coalescing like the history
// change channel.
func (t *Trigger) Updates() <-chan struct{} {
	return t.updates
}

// Suggestions returns the latest fetched ids. The previous batch is replaced
// wholesale on every refresh, never merged.
func (t *Trigger) Suggestions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}
