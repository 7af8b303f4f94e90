package store

import (
	"fmt"
	"time"
)

// Notification type tags, matching the producers.
const (
	NotificationGoal        = "goal"
	NotificationAchievement = "achievement"
	NotificationBlock       = "block"
)

// Notification is one row of the append-only notification feed. Only the
// read flag ever changes after insert.
type Notification struct {
	ID        int64
	Timestamp time.Time
	Title     string
	Message   string
	Type      string
	Read      bool
}

// AddNotification appends a notification record.
func (s *Store) AddNotification(title, message, typ string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO notifications (timestamp, title, message, type) VALUES (?, ?, ?, ?)`,
		at.Unix(), title, message, typ,
	)
	if err != nil {
		return fmt.Errorf("store: insert notification: %w", err)
	}
	return nil
}

// Notifications returns the feed, newest first. With unreadOnly set,
// read rows are filtered out.
func (s *Store) Notifications(unreadOnly bool) ([]Notification, error) {
	query := `SELECT id, timestamp, title, message, type, is_read FROM notifications`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY timestamp DESC, id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("store: query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		var ts int64
		var read int
		if err := rows.Scan(&n.ID, &ts, &n.Title, &n.Message, &n.Type, &read); err != nil {
			return nil, fmt.Errorf("store: scan notification: %w", err)
		}
		n.Timestamp = time.Unix(ts, 0)
		n.Read = read != 0
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkAllRead flips the read flag on every notification.
func (s *Store) MarkAllRead() error {
	if _, err := s.db.Exec(`UPDATE notifications SET is_read = 1 WHERE is_read = 0`); err != nil {
		return fmt.Errorf("store: mark notifications read: %w", err)
	}
	return nil
}

// DeleteRead removes every already-read notification.
func (s *Store) DeleteRead() error {
	if _, err := s.db.Exec(`DELETE FROM notifications WHERE is_read = 1`); err != nil {
		return fmt.Errorf("store: delete read notifications: %w", err)
	}
	return nil
}
