package store

import (
	"fmt"
	"time"
)

// Achievement is an earned unlock. The static catalog (names, predicates)
// lives in internal/achievements; the store only records earned state.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	UnlockedAt  time.Time
}

// UnlockAchievement records an unlock. The insert is idempotent: the
// returned bool reports whether this call actually inserted the row, so
// concurrent evaluator passes cannot double-notify.
func (s *Store) UnlockAchievement(id, name, description, icon string, at time.Time) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO achievements (achievement_id, name, description, icon_ref, unlocked_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, name, description, icon, at.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("store: unlock achievement: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UnlockedAchievements returns all earned achievements, oldest first.
func (s *Store) UnlockedAchievements() ([]Achievement, error) {
	rows, err := s.db.Query(
		`SELECT achievement_id, name, description, icon_ref, unlocked_at
		 FROM achievements ORDER BY unlocked_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []Achievement
	for rows.Next() {
		var a Achievement
		var unlocked int64
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &unlocked); err != nil {
			return nil, fmt.Errorf("store: scan achievement: %w", err)
		}
		a.UnlockedAt = time.Unix(unlocked, 0)
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// UnlockedIDs returns the set of earned achievement ids.
func (s *Store) UnlockedIDs() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT achievement_id FROM achievements`)
	if err != nil {
		return nil, fmt.Errorf("store: query achievement ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan achievement id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
