// Package probe abstracts the operating-system queries the tracker needs:
// the foreground window's owning process and title, and the age of the
// last global keyboard/mouse input.
//
// The sampling state machine never talks to the OS directly — it consumes
// this interface, so the core stays portable and testable with a scripted
// fake (see internal/tracker tests).
package probe

import (
	"errors"
	"time"
)

// Sentinel process names. Sessions attributed to either are never persisted.
const (
	ProcessIdle    = "idle"
	ProcessUnknown = "unknown"
)

// Sentinel window titles paired with the sentinel processes.
const (
	TitleIdle    = "User is Idle"
	TitleUnknown = "Unknown"
)

// ErrUnsupported is returned on platforms without a foreground-window probe.
// The daemon refuses to track there; every other surface keeps working.
var ErrUnsupported = errors.New("probe: platform not supported")

// Probe answers the two OS questions the sampler asks every poll interval.
type Probe interface {
	// Foreground returns the lower-cased executable name and window title
	// of the currently focused window. Transient failures (process exited
	// mid-query, access denied) are resolved to the unknown sentinels by
	// implementations, not returned as errors.
	Foreground() (process, title string, err error)

	// InputAge returns the time elapsed since the last global keyboard or
	// mouse input.
	InputAge() (time.Duration, error)
}

// New returns the platform probe, or an error on unsupported platforms.
func New() (Probe, error) {
	return newPlatformProbe()
}
