package model

import "time"

// Shared defaults used by both the daemon and the dashboard client.
const (
	// OneWeekSeconds is the fallback report duration and the distance of
	// the default start time behind process start.
	OneWeekSeconds int64 = 604800

	DefaultUpdateInterval = 200 * time.Millisecond
	DefaultAPIAddr        = "127.0.0.1:3000"
)

// DefaultStartTime returns the fixed default window start for a process
// started at now: one week back, in epoch seconds. Callers compute this
// once at startup and inject it; it is deliberately not recomputed per
// fetch.
func DefaultStartTime(now time.Time) int64 {
	return now.Unix() - OneWeekSeconds
}
