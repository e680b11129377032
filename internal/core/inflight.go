package core

// inflight.go guards form submissions against overlap.
//
// Each form (the create form, and the edit form of each product) may have at
// most one submission waiting on the catalog API. A second submission of the
// same form while the first is outstanding is rejected immediately with
// ErrSubmissionInFlight rather than queued. Different forms do not block each
// other.
//
// The guard also supports graceful shutdown via WaitForDrain, which blocks
// until every outstanding submission has completed.

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"
)

// ErrSubmissionInFlight is returned when the same form is submitted again
// before the previous submission finished.
var ErrSubmissionInFlight = errors.New("submission already in progress for this form")

// createFormKey identifies the create form.
const createFormKey = "create"

// editFormKey identifies the edit form of a product.
func editFormKey(id int) string {
	return "edit:" + strconv.Itoa(id)
}

// InFlight tracks which forms have a submission outstanding.
type InFlight struct {
	mu     sync.Mutex
	active map[string]time.Time
}

// NewInFlight creates an empty guard.
func NewInFlight() *InFlight {
	return &InFlight{active: make(map[string]time.Time)}
}

// TryAcquire marks key as in flight. It returns false without blocking if
// key already has a submission outstanding.
// The caller MUST call Release(key) after a successful TryAcquire.
func (g *InFlight) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = time.Now()
	return true
}

// Release clears key.
func (g *InFlight) Release(key string) {
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
}

// Busy reports whether key has a submission outstanding.
func (g *InFlight) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}

// ActiveCount returns the number of outstanding submissions.
func (g *InFlight) ActiveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active)
}

// WaitForDrain blocks until no submissions are outstanding or ctx is done.
func (g *InFlight) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if g.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// InFlightStatus is a snapshot of the guard for monitoring.
type InFlightStatus struct {
	Active int      `json:"active"`
	Forms  []string `json:"forms,omitempty"`
}

// Status returns the current guard state.
func (g *InFlight) Status() InFlightStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := InFlightStatus{Active: len(g.active)}
	for k := range g.active {
		st.Forms = append(st.Forms, k)
	}
	slices.Sort(st.Forms)
	return st
}
