// Package clock provides the wall-clock source used for fetch tokens.
package clock

import (
	"sync"
	"time"
)

// Wall returns wall-clock milliseconds, strictly increasing across calls.
// Strict monotonicity keeps fetch tokens unique even when two fetches are
// issued within the same millisecond.
type Wall struct {
	mu   sync.Mutex
	last int64
}

// NewWall returns a ready-to-use wall clock.
func NewWall() *Wall {
	return &Wall{}
}

// Now returns the current time in epoch milliseconds. Successive calls
// always return strictly greater values.
func (w *Wall) Now() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= w.last {
		now = w.last + 1
	}
	w.last = now
	return now
}
