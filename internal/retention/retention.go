// Package retention prunes session history past the configured age.
package retention

import (
	"log/slog"
	"time"

	"github.com/Rtur2003/Kognita/internal/store"
)

// Sweeper deletes sessions older than the retention window.
type Sweeper struct {
	store *store.Store
	log   *slog.Logger
}

func New(st *store.Store, log *slog.Logger) *Sweeper {
	return &Sweeper{store: st, log: log}
}

// Sweep deletes sessions that started more than retentionDays before
// now. A non-positive retention disables pruning entirely.
func (s *Sweeper) Sweep(now time.Time, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	deleted, err := s.store.PurgeSessionsBefore(cutoff)
	if err != nil {
		s.log.Error("retention sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		s.log.Info("retention sweep", "deleted", deleted, "cutoff", cutoff)
	}
}
