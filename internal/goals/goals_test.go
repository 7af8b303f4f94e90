package goals

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rtur2003/Kognita/internal/analyzer"
	"github.com/Rtur2003/Kognita/internal/codec"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/Rtur2003/Kognita/internal/tracker"
)

var noon = time.Date(2025, 6, 2, 12, 0, 0, 0, time.Local)

type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Notify(title, message string, timeout time.Duration) {
	n.titles = append(n.titles, title)
}

type fixture struct {
	store     *store.Store
	evaluator *Evaluator
	notifier  *recordingNotifier
	current   string
}

func newFixture(t *testing.T) *fixture {
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

	f := &fixture{store: st, notifier: &recordingNotifier{}}
	f.evaluator = New(st, analyzer.New(st, log), f.notifier,
		func() string { return f.current }, 5*time.Minute, log)
	return f
}

func (f *fixture) addUsage(t *testing.T, process string, start time.Time, d time.Duration) {
	t.Helper()
	err := f.store.AddSession(tracker.Session{
		ProcessName: process,
		WindowTitle: process,
		StartTime:   start,
		EndTime:     start.Add(d),
	})
	if err != nil {
		t.Fatalf("adding session: %v", err)
	}
}

func (f *fixture) addGoal(t *testing.T, g store.Goal) {
	t.Helper()
	if _, err := f.store.AddGoal(g); err != nil {
		t.Fatalf("adding goal: %v", err)
	}
}

func TestEvaluate_MaxUsageFiresOncePerDay(t *testing.T) {
	f := newFixture(t)
	f.addGoal(t, store.Goal{Category: "Office", Type: store.GoalMaxUsage, TimeLimitMinutes: 600})
	f.addUsage(t, "winword.exe", noon.Add(-11*time.Hour), 650*time.Minute) // 650 min today

	f.evaluator.Evaluate(noon)
	if len(f.notifier.titles) != 1 {
		t.Fatalf("notifications after first pass = %d, want 1", len(f.notifier.titles))
	}
	if !strings.Contains(f.notifier.titles[0], "Exceeded") {
		t.Errorf("title = %q, want exceeded", f.notifier.titles[0])
	}

	// Still over the limit on the next pass; must not refire.
	f.evaluator.Evaluate(noon.Add(15 * time.Minute))
	if len(f.notifier.titles) != 1 {
		t.Errorf("notifications after second pass = %d, want 1", len(f.notifier.titles))
	}

	rows, err := f.store.Notifications(false)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(rows) != 1 || rows[0].Type != store.NotificationGoal {
		t.Errorf("stored notifications = %+v, want one goal row", rows)
	}
}

func TestEvaluate_MaxUsageUnderLimitSilent(t *testing.T) {
	f := newFixture(t)
	f.addGoal(t, store.Goal{Category: "Office", Type: store.GoalMaxUsage, TimeLimitMinutes: 600})
	f.addUsage(t, "winword.exe", noon.Add(-2*time.Hour), 100*time.Minute)

	f.evaluator.Evaluate(noon)
	if len(f.notifier.titles) != 0 {
		t.Errorf("notifications = %v, want none", f.notifier.titles)
	}
}

func TestEvaluate_MinUsageFiresAtLimit(t *testing.T) {
	f := newFixture(t)
	f.addGoal(t, store.Goal{Category: "Development", Type: store.GoalMinUsage, TimeLimitMinutes: 30})
	f.addUsage(t, "code.exe", noon.Add(-time.Hour), 30*time.Minute)

	f.evaluator.Evaluate(noon)
	if len(f.notifier.titles) != 1 || !strings.Contains(f.notifier.titles[0], "Reached") {
		t.Errorf("notifications = %v, want one reached", f.notifier.titles)
	}
}

func TestEvaluate_DayChangeResetsFiredSet(t *testing.T) {
	f := newFixture(t)
	f.addGoal(t, store.Goal{Category: "Office", Type: store.GoalMaxUsage, TimeLimitMinutes: 60})
	f.addUsage(t, "winword.exe", noon.Add(-3*time.Hour), 90*time.Minute)

	f.evaluator.Evaluate(noon)
	if len(f.notifier.titles) != 1 {
		t.Fatalf("day one notifications = %d, want 1", len(f.notifier.titles))
	}

	// Next day with fresh over-limit usage: the watermark reset lets it fire again.
	nextNoon := noon.AddDate(0, 0, 1)
	f.addUsage(t, "winword.exe", nextNoon.Add(-3*time.Hour), 90*time.Minute)
	f.evaluator.Evaluate(nextNoon)
	if len(f.notifier.titles) != 2 {
		t.Errorf("day two notifications = %d, want 2", len(f.notifier.titles))
	}
}

func TestEvaluate_BlockGoalCooldown(t *testing.T) {
	f := newFixture(t)
	f.addGoal(t, store.Goal{ProcessName: "game.exe", Type: store.GoalBlock})
	f.current = "game.exe"

	f.evaluator.Evaluate(noon)
	f.evaluator.Evaluate(noon.Add(2 * time.Minute)) // inside cooldown
	if len(f.notifier.titles) != 1 {
		t.Fatalf("notifications inside cooldown = %d, want 1", len(f.notifier.titles))
	}

	f.evaluator.Evaluate(noon.Add(6 * time.Minute)) // cooldown elapsed
	if len(f.notifier.titles) != 2 {
		t.Errorf("notifications after cooldown = %d, want 2", len(f.notifier.titles))
	}

	rows, err := f.store.Notifications(false)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	for _, r := range rows {
		if r.Type != store.NotificationBlock {
			t.Errorf("notification type = %q, want block", r.Type)
		}
	}
}

func TestEvaluate_BlockGoalMatchesMixedCaseInput(t *testing.T) {
	f := newFixture(t)
	// The probe reports process names lower case; a goal typed with
	// capitals must still match.
	f.addGoal(t, store.Goal{ProcessName: "Game.EXE", Type: store.GoalBlock})
	f.current = "game.exe"

	f.evaluator.Evaluate(noon)
	if len(f.notifier.titles) != 1 {
		t.Errorf("notifications = %v, want one block", f.notifier.titles)
	}
}

func TestEvaluate_BlockGoalIgnoresOtherForeground(t *testing.T) {
	f := newFixture(t)
	f.addGoal(t, store.Goal{ProcessName: "game.exe", Type: store.GoalBlock})
	f.current = "code.exe"

	f.evaluator.Evaluate(noon)
	if len(f.notifier.titles) != 0 {
		t.Errorf("notifications = %v, want none", f.notifier.titles)
	}
}

func TestEvaluate_TimeWindowMax(t *testing.T) {
	f := newFixture(t)
	f.addGoal(t, store.Goal{
		Category:         "Gaming",
		Type:             store.GoalTimeWindowMax,
		TimeLimitMinutes: 60,
		StartOfDay:       "10:00",
		EndOfDay:         "14:00",
	})
	// 90 minutes of gaming inside the window.
	f.addUsage(t, "game.exe", noon.Add(-90*time.Minute), 90*time.Minute)
	if err := f.store.SetCategory("game.exe", "Gaming"); err != nil {
		t.Fatalf("SetCategory: %v", err)
	}

	// Outside the window: silent even though the limit is blown.
	f.evaluator.Evaluate(time.Date(2025, 6, 2, 15, 0, 0, 0, time.Local))
	if len(f.notifier.titles) != 0 {
		t.Fatalf("notifications outside window = %v, want none", f.notifier.titles)
	}

	// Inside the window: fires once.
	f.evaluator.Evaluate(noon.Add(30 * time.Minute))
	f.evaluator.Evaluate(noon.Add(45 * time.Minute))
	if len(f.notifier.titles) != 1 {
		t.Errorf("notifications inside window = %d, want 1", len(f.notifier.titles))
	}
}
