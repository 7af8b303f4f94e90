// Package analyzer turns raw session history into usage aggregates:
// category totals, hourly and weekly profiles, per-app trends and the
// user persona derived from the time distribution.
package analyzer

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Rtur2003/Kognita/internal/probe"
	"github.com/Rtur2003/Kognita/internal/store"
	"github.com/Rtur2003/Kognita/internal/tracker"
)

// Personas, in cascade order. The first matching share wins.
const (
	PersonaGamer    = "The Focused Gamer"
	PersonaGuru     = "The Productivity Guru"
	PersonaArtist   = "The Creative Artist"
	PersonaBalancer = "The Work-Life Balancer"
	PersonaExplorer = "The Digital Explorer"
	PersonaBalanced = "The Balanced User"
	PersonaNoData   = "Not Enough Data"
)

// productiveCategories are the ones counted toward "productive" time in
// weekday rankings and achievement metrics.
var productiveCategories = map[string]bool{
	"Office":        true,
	"Development":   true,
	"Communication": true,
}

// Analyzer computes aggregates over the session store. All operations
// tolerate an empty history and return zero values rather than errors.
type Analyzer struct {
	store *store.Store
	log   *slog.Logger
}

func New(st *store.Store, log *slog.Logger) *Analyzer {
	return &Analyzer{store: st, log: log}
}

// ─── Category totals ─────────────────────────────────────────────────────────

// CategoryTotals sums usage per category for sessions starting in
// [start, end). Idle time is excluded; unmapped processes count as
// store.DefaultCategory. Returns seconds per category and the grand total.
func (a *Analyzer) CategoryTotals(start, end time.Time) (map[string]int64, int64, error) {
	sessions, err := a.store.SessionsBetween(start, end)
	if err != nil {
		return nil, 0, fmt.Errorf("analyzer: loading sessions: %w", err)
	}
	categories, err := a.store.CategoryMap()
	if err != nil {
		return nil, 0, fmt.Errorf("analyzer: loading categories: %w", err)
	}

	totals := make(map[string]int64)
	var total int64
	for _, s := range sessions {
		secs := int64(s.Duration() / time.Second)
		if s.ProcessName == probe.ProcessIdle || secs <= 0 {
			continue
		}
		category, ok := categories[s.ProcessName]
		if !ok {
			category = store.DefaultCategory
		}
		totals[category] += secs
		total += secs
	}
	return totals, total, nil
}

// ─── Hourly profile ──────────────────────────────────────────────────────────

// HourlyProfile returns average active minutes per hour-of-day over the
// trailing seven days. Each session is attributed to its start hour.
func (a *Analyzer) HourlyProfile(now time.Time) ([24]float64, error) {
	var profile [24]float64
	sessions, err := a.store.SessionsBetween(now.AddDate(0, 0, -7), now)
	if err != nil {
		return profile, fmt.Errorf("analyzer: loading sessions: %w", err)
	}
	for _, s := range sessions {
		if s.ProcessName == probe.ProcessIdle {
			continue
		}
		profile[s.StartTime.Local().Hour()] += s.Duration().Minutes()
	}
	for h := range profile {
		profile[h] /= 7
	}
	return profile, nil
}

// ─── Weekly comparison ───────────────────────────────────────────────────────

// WeekCategory compares one category's usage between the current week so
// far and the whole previous week, in minutes.
type WeekCategory struct {
	Category string
	ThisWeek float64
	LastWeek float64
}

// WeeklyComparison returns the current week's top three categories with
// their minutes this week so far and in the full previous week. Weeks
// start on Monday, local time.
func (a *Analyzer) WeeklyComparison(now time.Time) ([]WeekCategory, error) {
	weekStart := startOfWeek(now)

	thisWeek, _, err := a.CategoryTotals(weekStart, now)
	if err != nil {
		return nil, err
	}
	lastWeek, _, err := a.CategoryTotals(weekStart.AddDate(0, 0, -7), weekStart)
	if err != nil {
		return nil, err
	}

	top := make([]string, 0, len(thisWeek))
	for category := range thisWeek {
		top = append(top, category)
	}
	sort.Slice(top, func(i, j int) bool {
		if thisWeek[top[i]] != thisWeek[top[j]] {
			return thisWeek[top[i]] > thisWeek[top[j]]
		}
		return top[i] < top[j]
	})
	if len(top) > 3 {
		top = top[:3]
	}

	out := make([]WeekCategory, 0, len(top))
	for _, category := range top {
		out = append(out, WeekCategory{
			Category: category,
			ThisWeek: float64(thisWeek[category]) / 60,
			LastWeek: float64(lastWeek[category]) / 60,
		})
	}
	return out, nil
}

// startOfWeek returns local midnight of the Monday of now's week.
func startOfWeek(now time.Time) time.Time {
	now = now.Local()
	offset := (int(now.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday := now.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// ─── Persona ─────────────────────────────────────────────────────────────────

// Persona classifies the usage distribution. The cascade checks gaming,
// work, creative, mixed and web shares in that order; when nothing
// dominates the balanced fallback names the largest category.
func Persona(totals map[string]int64, total int64) string {
	if len(totals) == 0 || total == 0 {
		return PersonaNoData
	}

	share := func(categories ...string) float64 {
		var sum int64
		for _, c := range categories {
			sum += totals[c]
		}
		return float64(sum) / float64(total)
	}

	work := share("Office", "Development", "Communication")
	game := share("Gaming", "Gaming Platform")
	creative := share("Design", "Video", "Media")
	web := share("Web", "Social")

	switch {
	case game > 0.45:
		return PersonaGamer
	case work > 0.50:
		return PersonaGuru
	case creative > 0.40:
		return PersonaArtist
	case work > 0.25 && game > 0.25:
		return PersonaBalancer
	case web > 0.50:
		return PersonaExplorer
	}

	if dominant := dominantCategory(totals); dominant != "" {
		return fmt.Sprintf("%s (mostly %s)", PersonaBalanced, dominant)
	}
	return PersonaBalanced
}

func dominantCategory(totals map[string]int64) string {
	var best string
	var bestSecs int64 = -1
	for category, secs := range totals {
		if secs > bestSecs || (secs == bestSecs && category < best) {
			best, bestSecs = category, secs
		}
	}
	return best
}

// ─── Daily averages and weekday ranking ──────────────────────────────────────

// DailyAverageByCategory returns average minutes per day per category
// over the trailing nDays.
func (a *Analyzer) DailyAverageByCategory(now time.Time, nDays int) (map[string]float64, error) {
	if nDays <= 0 {
		nDays = 1
	}
	totals, _, err := a.CategoryTotals(now.AddDate(0, 0, -nDays), now)
	if err != nil {
		return nil, err
	}
	averages := make(map[string]float64, len(totals))
	for category, secs := range totals {
		averages[category] = float64(secs) / 60 / float64(nDays)
	}
	return averages, nil
}

// MostProductiveWeekday returns the weekday accumulating the most
// Office, Development and Communication time over the trailing nDays,
// or "" when no productive time was recorded.
func (a *Analyzer) MostProductiveWeekday(now time.Time, nDays int) (string, error) {
	if nDays <= 0 {
		nDays = 30
	}
	sessions, err := a.store.SessionsBetween(now.AddDate(0, 0, -nDays), now)
	if err != nil {
		return "", fmt.Errorf("analyzer: loading sessions: %w", err)
	}
	categories, err := a.store.CategoryMap()
	if err != nil {
		return "", fmt.Errorf("analyzer: loading categories: %w", err)
	}

	var byWeekday [7]int64
	for _, s := range sessions {
		if !productiveCategories[categories[s.ProcessName]] {
			continue
		}
		byWeekday[s.StartTime.Local().Weekday()] += int64(s.Duration() / time.Second)
	}

	best := -1
	var bestSecs int64
	for day, secs := range byWeekday {
		if secs > bestSecs {
			best, bestSecs = day, secs
		}
	}
	if best < 0 {
		return "", nil
	}
	return time.Weekday(best).String(), nil
}

// ─── Per-app trend ───────────────────────────────────────────────────────────

// DayPoint is one day of an application's usage series.
type DayPoint struct {
	Date    string // "2006-01-02", local
	Minutes float64
}

// AppDailySeries returns a continuous nDays series of daily minutes for
// one process, oldest day first. Days without usage appear with zero.
func (a *Analyzer) AppDailySeries(process string, now time.Time, nDays int) ([]DayPoint, error) {
	if nDays <= 0 {
		nDays = 7
	}
	sessions, err := a.store.SessionsBetween(now.AddDate(0, 0, -nDays), now)
	if err != nil {
		return nil, fmt.Errorf("analyzer: loading sessions: %w", err)
	}

	perDay := make(map[string]float64)
	for _, s := range sessions {
		if s.ProcessName != process {
			continue
		}
		perDay[s.StartTime.Local().Format("2006-01-02")] += s.Duration().Minutes()
	}

	series := make([]DayPoint, 0, nDays)
	for i := nDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Local().Format("2006-01-02")
		series = append(series, DayPoint{Date: date, Minutes: perDay[date]})
	}
	return series, nil
}

// ─── Suggestions ─────────────────────────────────────────────────────────────

// Suggestions derives usage tips from the category distribution. Empty
// input yields no suggestions.
func Suggestions(totals map[string]int64, total int64) []string {
	if len(totals) == 0 || total == 0 {
		return nil
	}

	share := func(categories ...string) float64 {
		var sum int64
		for _, c := range categories {
			sum += totals[c]
		}
		return float64(sum) / float64(total)
	}

	var tips []string
	if game := share("Gaming", "Gaming Platform"); game > 0.40 {
		tips = append(tips, fmt.Sprintf(
			"Gaming makes up %.0f%% of your time. Consider a daily limit goal to keep it in check.", game*100))
	}
	if web := share("Web", "Social"); web > 0.40 {
		tips = append(tips, fmt.Sprintf(
			"Browsing and social apps take %.0f%% of your time. A time-window goal for the evening can help you wind down.", web*100))
	}
	if work := share("Office", "Development", "Communication"); work > 0.60 {
		tips = append(tips, fmt.Sprintf(
			"Work tools account for %.0f%% of your usage. Remember to schedule breaks away from the screen.", work*100))
	} else if work > 0 && work < 0.15 {
		tips = append(tips, "Productive time is under 15%. A minimum-usage goal on a work category can help build the habit.")
	}
	if media := share("Video", "Media"); media > 0.35 {
		tips = append(tips, fmt.Sprintf(
			"Media playback is %.0f%% of your time. Try moving some of it to a fixed slot instead of throughout the day.", media*100))
	}
	if len(tips) == 0 {
		tips = append(tips, "Your usage looks balanced across categories. Keep it up.")
	}
	return tips
}

// Sessions is a convenience passthrough used by the report surface to
// expose the raw window of history alongside aggregates.
func (a *Analyzer) Sessions(start, end time.Time) ([]tracker.Session, error) {
	return a.store.SessionsBetween(start, end)
}
