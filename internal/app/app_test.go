package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rtur2003/Kognita/internal/codec"
	"github.com/Rtur2003/Kognita/internal/config"
	"github.com/Rtur2003/Kognita/internal/store"
)

type stubProbe struct{}

func (stubProbe) Foreground() (string, string, error) { return "code.exe", "main.go - code", nil }
func (stubProbe) InputAge() (time.Duration, error)    { return 0, nil }

func TestRun_StopsAndFlushesOnCancel(t *testing.T) {
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

	cfg := config.Default()
	cfg.PollIntervalSeconds = 1
	a := New(stubProbe{}, st, func() config.Config { return cfg }, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	// Let the sampler accumulate an in-flight session, then shut down.
	time.Sleep(2500 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	// The session open at shutdown must have been flushed and stored.
	count, err := st.CountSessions()
	if err != nil {
		t.Fatalf("CountSessions: %v", err)
	}
	if count == 0 {
		t.Error("no session persisted by the shutdown flush")
	}
}
