package tracker

import (
	"sync/atomic"
	"time"
)

// Monitor is the shared last-input timestamp handle. The input capture
// path only ever writes a single value through Touch and must never
// block, so the state is one atomic int64 (unix nanoseconds).
type Monitor struct {
	lastInput atomic.Int64
}

// NewMonitor returns a monitor primed with now, so the tracker does not
// start in the idle state.
func NewMonitor(now time.Time) *Monitor {
	m := &Monitor{}
	m.Touch(now)
	return m
}

// Touch records input activity at t.
func (m *Monitor) Touch(t time.Time) {
	m.lastInput.Store(t.UnixNano())
}

// Age returns the time elapsed between the last recorded input and now.
func (m *Monitor) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, m.lastInput.Load()))
}

// Idle reports whether the user has been inactive longer than threshold.
// A sample taken exactly at the threshold is still active.
func (m *Monitor) Idle(now time.Time, threshold time.Duration) bool {
	return m.Age(now) > threshold
}
