package store

import (
	"fmt"
	"strings"
)

// Goal kinds. min/max/time_window goals target a category; block goals
// target a single process name.
const (
	GoalMinUsage      = "min_usage"
	GoalMaxUsage      = "max_usage"
	GoalBlock         = "block"
	GoalTimeWindowMax = "time_window_max"
)

// Goal is one user-defined threshold rule. Uniqueness is keyed by the
// full non-id tuple, so a category can hold independent min, max and
// time-window goals at the same time.
type Goal struct {
	ID               int64
	Category         string
	ProcessName      string
	Type             string
	TimeLimitMinutes int
	StartOfDay       string // "HH:MM", time_window_max only
	EndOfDay         string // "HH:MM", time_window_max only
}

// AddGoal inserts a goal and returns its id. A goal with the same
// non-id tuple yields ErrDuplicateGoal. Process names are stored lower
// case, the form the foreground probe reports.
func (s *Store) AddGoal(g Goal) (int64, error) {
	g.ProcessName = strings.ToLower(g.ProcessName)
	res, err := s.db.Exec(
		`INSERT INTO goals (category, process_name, goal_type, time_limit_minutes, start_time_of_day, end_time_of_day)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.Category, g.ProcessName, g.Type, g.TimeLimitMinutes, g.StartOfDay, g.EndOfDay,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateGoal
		}
		return 0, fmt.Errorf("store: insert goal: %w", err)
	}
	return res.LastInsertId()
}

// DeleteGoal removes a goal by id; ErrNotFound if no such goal exists.
func (s *Store) DeleteGoal(id int64) error {
	res, err := s.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Goals returns all goals ordered by id.
func (s *Store) Goals() ([]Goal, error) {
	rows, err := s.db.Query(
		`SELECT id, category, process_name, goal_type, time_limit_minutes, start_time_of_day, end_time_of_day
		 FROM goals ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query goals: %w", err)
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.Category, &g.ProcessName, &g.Type, &g.TimeLimitMinutes, &g.StartOfDay, &g.EndOfDay); err != nil {
			return nil, fmt.Errorf("store: scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
