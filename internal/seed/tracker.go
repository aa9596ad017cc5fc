package seed

import "sync"

// Tracker keeps the most recent seed result for health and readiness probes.
type Tracker struct {
	mu     sync.RWMutex
	result Result
}

// NewTracker returns a tracker in the pending state.
func NewTracker() *Tracker {
	return &Tracker{result: Result{Status: StatusPending}}
}

// Record stores r as the latest result.
func (t *Tracker) Record(r Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.result = r
}

// Last returns the latest result.
func (t *Tracker) Last() Result {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result
}

// Ready reports whether a run has completed without failing.
func (t *Tracker) Ready() bool {
	status := t.Last().Status
	return status != StatusPending && status != StatusFailed
}
