// Package focus runs bounded focus sessions. While a session is open
// the foreground process is polled and checked against a set of allowed
// categories; the first sighting of each off-category app raises a
// distraction notification. One notice per app per session.
package focus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rtur2003/Kognita/internal/notify"
	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/Rtur2003/Kognita/internal/store"
)

const (
	pollInterval        = 10 * time.Second
	notificationTimeout = 5 * time.Second
)

// CurrentProcessFunc reports the process currently in the foreground.
type CurrentProcessFunc func() string

// Session is one bounded focus run. Not safe for concurrent use; Run
// owns it for the session's lifetime.
type Session struct {
	store    *store.Store
	notifier notify.Notifier
	current  CurrentProcessFunc
	log      *slog.Logger

	allowed  map[string]bool
	notified map[string]bool
}

// New builds a session allowing the given categories. Category names
// are matched as stored in the category map.
func New(st *store.Store, n notify.Notifier, current CurrentProcessFunc, allowedCategories []string, log *slog.Logger) *Session {
	allowed := make(map[string]bool, len(allowedCategories))
	for _, c := range allowedCategories {
		allowed[strings.TrimSpace(c)] = true
	}
	return &Session{
		store:    st,
		notifier: n,
		current:  current,
		log:      log,
		allowed:  allowed,
		notified: make(map[string]bool),
	}
}

// Run blocks for the given duration, observing the foreground process
// every poll interval. It returns nil after a full session and ctx.Err()
// when cancelled early; the completion notification is only sent for a
// full session.
func (s *Session) Run(ctx context.Context, duration time.Duration) error {
	minutes := int(duration / time.Minute)
	s.notifier.Notify("Kognita - Focus Started",
		fmt.Sprintf("Time to focus for %d minutes.", minutes), notificationTimeout)

	deadline := time.NewTimer(duration)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			s.notifier.Notify("Kognita - Session Complete",
				fmt.Sprintf("Congratulations! You finished your %d minute focus session.", minutes),
				notificationTimeout)
			return nil
		case <-ticker.C:
			s.Observe(s.current())
		}
	}
}

// Observe checks one foreground sighting. Idle/unknown sentinels and
// already-reported processes are ignored; an off-category process is
// reported once for the rest of the session.
func (s *Session) Observe(process string) {
	if process == "" || process == probe.ProcessIdle || process == probe.ProcessUnknown {
		return
	}
	if s.notified[process] {
		return
	}
	category, err := s.store.CategoryFor(process)
	if err != nil {
		s.log.Error("focus: looking up category", "process", process, "error", err)
		return
	}
	if s.allowed[category] {
		return
	}
	s.notified[process] = true
	s.notifier.Notify("Kognita - Distraction",
		fmt.Sprintf("'%s' is not in your focus categories. Your session is still running.", process),
		notificationTimeout)
}
