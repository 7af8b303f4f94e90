package store

import (
	"fmt"
	"time"

	"github.com/Rtur2003/Kognita/internal/tracker"
)

// AddSession seals and appends one session row. The plaintext column is
// only the start timestamp; every other field lives inside the blob.
func (s *Store) AddSession(session tracker.Session) error {
	blob, err := s.codec.Seal(session)
	if err != nil {
		return fmt.Errorf("store: seal session: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO sessions (start_time, payload) VALUES (?, ?)`,
		session.StartTime.Unix(), blob,
	)
	if err != nil {
		return fmt.Errorf("store: insert session: %w", err)
	}
	return nil
}

// SessionsBetween returns decrypted sessions whose start_time falls in
// [start, end), in chronological order. Records that fail to open are
// skipped with a warning — a corrupt row never aborts the batch.
func (s *Store) SessionsBetween(start, end time.Time) ([]tracker.Session, error) {
	return s.querySessions(
		`SELECT id, payload FROM sessions WHERE start_time >= ? AND start_time < ? ORDER BY start_time`,
		start.Unix(), end.Unix(),
	)
}

// AllSessions returns the full decrypted history in chronological order.
func (s *Store) AllSessions() ([]tracker.Session, error) {
	return s.querySessions(`SELECT id, payload FROM sessions ORDER BY start_time`)
}

func (s *Store) querySessions(query string, args ...any) ([]tracker.Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []tracker.Session
	for rows.Next() {
		var id int64
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("store: scan session: %w", err)
		}
		session, err := s.codec.Open(blob)
		if err != nil {
			s.log.Warn("skipping corrupt session record", "id", id, "error", err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// CountSessions returns the number of stored session rows.
func (s *Store) CountSessions() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count sessions: %w", err)
	}
	return n, nil
}

// PurgeSessionsBefore deletes every session older than cutoff and
// returns the number of rows removed. Used by the retention sweeper.
func (s *Store) PurgeSessionsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE start_time < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("store: purge sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
