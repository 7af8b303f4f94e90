// Package goals evaluates usage goals against today's activity and
// raises notifications when a goal fires.
package goals

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Rtur2003/Kognita/internal/analyzer"
	"github.com/Rtur2003/Kognita/internal/notify"
	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/Rtur2003/Kognita/internal/store"
)

const notificationTimeout = 10 * time.Second

// CurrentProcessFunc reports the process currently in the foreground.
// It backs block goals; the sampler provides the production implementation.
type CurrentProcessFunc func() string

// Evaluator runs goal passes. Not safe for concurrent use; the daemon
// calls Evaluate from a single loop.
type Evaluator struct {
	store    *store.Store
	analyzer *analyzer.Analyzer
	notifier notify.Notifier
	current  CurrentProcessFunc
	cooldown time.Duration
	log      *slog.Logger

	day        string // local date watermark, "2006-01-02"
	firedToday map[int64]bool
	lastBlock  map[string]time.Time
}

func New(st *store.Store, an *analyzer.Analyzer, n notify.Notifier, current CurrentProcessFunc, blockCooldown time.Duration, log *slog.Logger) *Evaluator {
	return &Evaluator{
		store:      st,
		analyzer:   an,
		notifier:   n,
		current:    current,
		cooldown:   blockCooldown,
		log:        log,
		firedToday: make(map[int64]bool),
		lastBlock:  make(map[string]time.Time),
	}
}

// Evaluate runs one pass over all goals at the given time. Once-per-day
// goals fire at most once between local midnights; block goals fire at
// most once per cooldown window per process. Evaluation errors are
// logged and the pass continues with the next goal.
func (e *Evaluator) Evaluate(now time.Time) {
	now = now.Local()
	if date := now.Format("2006-01-02"); date != e.day {
		e.day = date
		e.firedToday = make(map[int64]bool)
	}

	goals, err := e.store.Goals()
	if err != nil {
		e.log.Error("goal pass: loading goals", "error", err)
		return
	}
	if len(goals) == 0 {
		return
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	totals, _, err := e.analyzer.CategoryTotals(midnight, now)
	if err != nil {
		e.log.Error("goal pass: computing totals", "error", err)
		return
	}

	for _, g := range goals {
		switch g.Type {
		case store.GoalMaxUsage:
			if e.firedToday[g.ID] {
				continue
			}
			if minutes := float64(totals[g.Category]) / 60; minutes > float64(g.TimeLimitMinutes) {
				e.fire(g.ID, now, store.NotificationGoal, "Kognita - Goal Exceeded",
					fmt.Sprintf("You passed your daily %d min limit for '%s'.", g.TimeLimitMinutes, g.Category))
			}
		case store.GoalMinUsage:
			if e.firedToday[g.ID] {
				continue
			}
			if minutes := float64(totals[g.Category]) / 60; minutes >= float64(g.TimeLimitMinutes) {
				e.fire(g.ID, now, store.NotificationGoal, "Kognita - Goal Reached",
					fmt.Sprintf("Congratulations! You reached your daily %d min goal for '%s'.", g.TimeLimitMinutes, g.Category))
			}
		case store.GoalBlock:
			e.evaluateBlock(g, now)
		case store.GoalTimeWindowMax:
			if e.firedToday[g.ID] {
				continue
			}
			e.evaluateWindow(g, now, midnight)
		default:
			e.log.Warn("goal pass: unknown goal type", "type", g.Type, "id", g.ID)
		}
	}
}

// evaluateBlock fires when the blocked process holds the foreground,
// throttled per process rather than per day.
func (e *Evaluator) evaluateBlock(g store.Goal, now time.Time) {
	process := e.current()
	if process != g.ProcessName || process == probe.ProcessIdle || process == probe.ProcessUnknown {
		return
	}
	if last, ok := e.lastBlock[process]; ok && now.Sub(last) < e.cooldown {
		return
	}
	e.lastBlock[process] = now

	title := "Kognita - Blocked App"
	message := fmt.Sprintf("'%s' is on your block list. Time to switch to something else.", process)
	if err := e.store.AddNotification(title, message, store.NotificationBlock, now); err != nil {
		e.log.Error("goal pass: storing block notification", "error", err)
	}
	e.notifier.Notify(title, message, notificationTimeout)
}

// evaluateWindow handles time_window_max goals: usage of the category
// inside [start, end) of the current day, checked only while the window
// is open.
func (e *Evaluator) evaluateWindow(g store.Goal, now, midnight time.Time) {
	startMin, err := parseClock(g.StartOfDay)
	if err != nil {
		e.log.Warn("goal pass: bad window start", "id", g.ID, "value", g.StartOfDay)
		return
	}
	endMin, err := parseClock(g.EndOfDay)
	if err != nil {
		e.log.Warn("goal pass: bad window end", "id", g.ID, "value", g.EndOfDay)
		return
	}

	nowMin := now.Hour()*60 + now.Minute()
	if nowMin < startMin || nowMin >= endMin {
		return
	}

	windowStart := midnight.Add(time.Duration(startMin) * time.Minute)
	totals, _, err := e.analyzer.CategoryTotals(windowStart, now)
	if err != nil {
		e.log.Error("goal pass: computing window totals", "error", err)
		return
	}
	if minutes := float64(totals[g.Category]) / 60; minutes > float64(g.TimeLimitMinutes) {
		e.fire(g.ID, now, store.NotificationGoal, "Kognita - Window Limit Exceeded",
			fmt.Sprintf("You passed your %d min limit for '%s' between %s and %s.",
				g.TimeLimitMinutes, g.Category, g.StartOfDay, g.EndOfDay))
	}
}

func (e *Evaluator) fire(goalID int64, now time.Time, typ, title, message string) {
	e.firedToday[goalID] = true
	if err := e.store.AddNotification(title, message, typ, now); err != nil {
		e.log.Error("goal pass: storing notification", "error", err)
	}
	e.notifier.Notify(title, message, notificationTimeout)
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("goals: invalid clock %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("goals: invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("goals: invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}
