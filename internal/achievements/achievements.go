// Package achievements maintains the unlock catalog: all-time usage
// metrics, a predicate per achievement and idempotent unlocks.
package achievements

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Rtur2003/Kognita/internal/notify"
	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/Rtur2003/Kognita/internal/store"
)

const notificationTimeout = 15 * time.Second

// Metrics are the all-time aggregates the predicates test against.
// All values are seconds except ActiveDays.
type Metrics struct {
	TotalUsage     int64
	ActiveDays     int
	ProductiveTime int64
	MaxDailyGaming int64
	NightUsage     int64
	WeekendUsage   int64
}

// Achievement describes one catalog entry.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      func(Metrics) bool
}

// Catalog lists every achievement. Order is presentation order.
var Catalog = []Achievement{
	{
		ID:          "ROOKIE",
		Name:        "Rookie",
		Description: "You completed your first hour of active usage.",
		Icon:        "rookie.png",
		Earned:      func(m Metrics) bool { return m.TotalUsage >= 3600 },
	},
	{
		ID:          "PERSISTENT_USER",
		Name:        "Persistent User",
		Description: "You used Kognita on 7 different days.",
		Icon:        "persistent_user.png",
		Earned:      func(m Metrics) bool { return m.ActiveDays >= 7 },
	},
	{
		ID:          "PRODUCTIVITY_GURU",
		Name:        "Productivity Guru",
		Description: "You spent a total of 10 hours in productive categories.",
		Icon:        "productivity_guru.png",
		Earned:      func(m Metrics) bool { return m.ProductiveTime >= 36000 },
	},
	{
		ID:          "GAME_ADDICT",
		Name:        "Game Enthusiast",
		Description: "You spent more than 4 hours gaming in a single day.",
		Icon:        "game_addict.png",
		Earned:      func(m Metrics) bool { return m.MaxDailyGaming >= 14400 },
	},
	{
		ID:          "NIGHT_OWL",
		Name:        "Night Owl",
		Description: "You were active for at least 2 hours between midnight and 4 AM.",
		Icon:        "night_owl.png",
		Earned:      func(m Metrics) bool { return m.NightUsage >= 7200 },
	},
	{
		ID:          "WEEKEND_WARRIOR",
		Name:        "Weekend Warrior",
		Description: "You were active for a total of 8 hours on weekends.",
		Icon:        "weekend_warrior.png",
		Earned:      func(m Metrics) bool { return m.WeekendUsage >= 28800 },
	},
}

// productiveCategories mirror the analyzer's productive set.
var productiveCategories = map[string]bool{
	"Office":        true,
	"Development":   true,
	"Communication": true,
}

// Evaluator runs unlock passes against the store.
type Evaluator struct {
	store    *store.Store
	notifier notify.Notifier
	log      *slog.Logger
}

func New(st *store.Store, n notify.Notifier, log *slog.Logger) *Evaluator {
	return &Evaluator{store: st, notifier: n, log: log}
}

// Evaluate computes the metrics once and tests every still-locked
// achievement. Unlocks are idempotent inserts; the notification is
// raised only when this pass actually inserted the row, so concurrent
// or repeated passes never duplicate it. Earned achievements are never
// re-tested or revoked.
func (e *Evaluator) Evaluate(now time.Time) {
	unlocked, err := e.store.UnlockedIDs()
	if err != nil {
		e.log.Error("achievement pass: loading unlocked set", "error", err)
		return
	}

	locked := make([]Achievement, 0, len(Catalog))
	for _, a := range Catalog {
		if !unlocked[a.ID] {
			locked = append(locked, a)
		}
	}
	if len(locked) == 0 {
		return
	}

	metrics, err := e.ComputeMetrics()
	if err != nil {
		e.log.Error("achievement pass: computing metrics", "error", err)
		return
	}

	for _, a := range locked {
		if !a.Earned(metrics) {
			continue
		}
		inserted, err := e.store.UnlockAchievement(a.ID, a.Name, a.Description, a.Icon, now)
		if err != nil {
			e.log.Error("achievement pass: unlocking", "id", a.ID, "error", err)
			continue
		}
		if !inserted {
			continue
		}
		e.log.Info("achievement unlocked", "id", a.ID, "name", a.Name)

		title := fmt.Sprintf("New Achievement: %s", a.Name)
		if err := e.store.AddNotification(title, a.Description, store.NotificationAchievement, now); err != nil {
			e.log.Error("achievement pass: storing notification", "error", err)
		}
		e.notifier.Notify(title, a.Description, notificationTimeout)
	}
}

// ComputeMetrics walks the full decrypted history once. Idle and
// zero-duration rows are skipped; day, night and weekend attribution
// use the session's local start time.
func (e *Evaluator) ComputeMetrics() (Metrics, error) {
	sessions, err := e.store.AllSessions()
	if err != nil {
		return Metrics{}, fmt.Errorf("achievements: loading history: %w", err)
	}
	categories, err := e.store.CategoryMap()
	if err != nil {
		return Metrics{}, fmt.Errorf("achievements: loading categories: %w", err)
	}

	var m Metrics
	activeDays := make(map[string]bool)
	gamingByDay := make(map[string]int64)

	for _, s := range sessions {
		secs := int64(s.Duration() / time.Second)
		if s.ProcessName == probe.ProcessIdle || secs <= 0 {
			continue
		}
		start := s.StartTime.Local()
		day := start.Format("2006-01-02")
		category := categories[s.ProcessName]

		m.TotalUsage += secs
		activeDays[day] = true
		if productiveCategories[category] {
			m.ProductiveTime += secs
		}
		if category == "Gaming" {
			gamingByDay[day] += secs
		}
		if start.Hour() < 4 {
			m.NightUsage += secs
		}
		if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			m.WeekendUsage += secs
		}
	}

	m.ActiveDays = len(activeDays)
	for _, secs := range gamingByDay {
		if secs > m.MaxDailyGaming {
			m.MaxDailyGaming = secs
		}
	}
	return m, nil
}
