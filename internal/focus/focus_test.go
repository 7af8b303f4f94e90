package focus

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rtur2003/Kognita/internal/codec"
	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/Rtur2003/Kognita/internal/store"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(title, message string, timeout time.Duration) {
	n.messages = append(n.messages, message)
}

func newSession(t *testing.T, allowed ...string) (*Session, *recordingNotifier, *store.Store) {
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

	n := &recordingNotifier{}
	return New(st, n, func() string { return "" }, allowed, log), n, st
}

func TestObserve_OffCategoryNotifiedOnce(t *testing.T) {
	s, n, _ := newSession(t, "Development")

	s.Observe("cs2.exe") // seeded Gaming, not allowed
	s.Observe("cs2.exe")
	s.Observe("cs2.exe")

	if len(n.messages) != 1 {
		t.Fatalf("notifications = %d, want 1", len(n.messages))
	}
	if !strings.Contains(n.messages[0], "cs2.exe") {
		t.Errorf("message = %q, want the process named", n.messages[0])
	}
}

func TestObserve_AllowedCategorySilent(t *testing.T) {
	s, n, _ := newSession(t, "Development")

	s.Observe("code.exe") // seeded Development
	if len(n.messages) != 0 {
		t.Errorf("notifications = %v, want none", n.messages)
	}
}

func TestObserve_SentinelsIgnored(t *testing.T) {
	s, n, _ := newSession(t, "Development")

	s.Observe(probe.ProcessIdle)
	s.Observe(probe.ProcessUnknown)
	s.Observe("")
	if len(n.messages) != 0 {
		t.Errorf("notifications = %v, want none", n.messages)
	}
}

func TestObserve_EachDistractionReportedSeparately(t *testing.T) {
	s, n, st := newSession(t, "Office")
	if err := st.SetCategory("game.exe", "Gaming"); err != nil {
		t.Fatalf("SetCategory: %v", err)
	}

	s.Observe("game.exe")  // Gaming
	s.Observe("slack.exe") // seeded Communication
	s.Observe("game.exe")  // repeat, suppressed

	if len(n.messages) != 2 {
		t.Errorf("notifications = %d, want 2", len(n.messages))
	}
}

func TestObserve_UnmappedProcessCountsAsDistraction(t *testing.T) {
	s, n, _ := newSession(t, "Development")

	// Unknown apps fall into the default category, which is not allowed.
	s.Observe("mystery.exe")
	if len(n.messages) != 1 {
		t.Errorf("notifications = %d, want 1", len(n.messages))
	}
}
