// Package tracker implements the idle/foreground-window state machine
// that turns raw window-focus samples into discrete usage sessions.
//
// The core is a pure state machine (Machine) fed explicit samples, so
// tests drive it with synthetic timestamps. The Sampler wraps it in the
// polling loop that talks to the OS probe and hands closed sessions to
// the persistence sink.
package tracker

import "time"

// Session is one contiguous interval attributed to a single foreground
// process/window pair. Immutable once written to the store.
type Session struct {
	ProcessName string    `json:"process_name"`
	WindowTitle string    `json:"window_title"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// Duration returns the session length truncated to whole seconds,
// never negative.
func (s Session) Duration() time.Duration {
	d := s.EndTime.Sub(s.StartTime).Truncate(time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Sink persists closed sessions. Implemented by the session store.
type Sink interface {
	AddSession(s Session) error
}
