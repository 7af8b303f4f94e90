// Package notify delivers user-facing notifications raised by the goal
// and achievement evaluators.
package notify

import (
	"log/slog"
	"time"
)

// Notifier delivers a single notification. Implementations must be safe
// for concurrent use; delivery is best effort and never blocks callers
// beyond the given timeout.
type Notifier interface {
	Notify(title, message string, timeout time.Duration)
}

// LogNotifier writes notifications to the structured log. Desktop
// delivery backends can replace it without touching the evaluators.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(title, message string, timeout time.Duration) {
	n.log.Info("notification", "title", title, "message", message, "timeout", timeout)
}
