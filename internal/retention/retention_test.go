package retention

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rtur2003/Kognita/internal/codec"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/Rtur2003/Kognita/internal/tracker"
)

func newTestSweeper(t *testing.T) (*Sweeper, *store.Store) {
	t.Helper()
	c, err := codec.New(codec.DeriveKey("test-machine"))
	if err != nil {
		t.Fatalf("creating codec: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(filepath.Join(t.TempDir(), store.DBFileName), c, log)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return New(st, log), st
}

func addSession(t *testing.T, st *store.Store, start time.Time) {
	t.Helper()
	err := st.AddSession(tracker.Session{
		ProcessName: "code.exe",
		WindowTitle: "code",
		StartTime:   start,
		EndTime:     start.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("adding session: %v", err)
	}
}

func TestSweep_DeletesOnlyExpired(t *testing.T) {
	s, st := newTestSweeper(t)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	addSession(t, st, now.AddDate(0, 0, -40))
	addSession(t, st, now.AddDate(0, 0, -31))
	addSession(t, st, now.AddDate(0, 0, -10))
	addSession(t, st, now.Add(-time.Hour))

	s.Sweep(now, 30)

	count, err := st.CountSessions()
	if err != nil {
		t.Fatalf("CountSessions: %v", err)
	}
	if count != 2 {
		t.Errorf("sessions after sweep = %d, want 2", count)
	}
}

func TestSweep_DisabledRetention(t *testing.T) {
	s, st := newTestSweeper(t)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	addSession(t, st, now.AddDate(0, 0, -400))

	s.Sweep(now, 0)
	s.Sweep(now, -1)

	count, err := st.CountSessions()
	if err != nil {
		t.Fatalf("CountSessions: %v", err)
	}
	if count != 1 {
		t.Errorf("sessions after disabled sweep = %d, want 1", count)
	}
}
