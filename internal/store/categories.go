package store

import (
	"database/sql"
	"fmt"
	"sort"
)

// defaultCategories is the seed map of well-known executables installed
// on first run. INSERT OR IGNORE keeps user reassignments intact on
// later starts.
var defaultCategories = map[string]string{
	"winword.exe":                 "Office",
	"excel.exe":                   "Office",
	"powerpnt.exe":                "Office",
	"outlook.exe":                 "Communication",
	"slack.exe":                   "Communication",
	"teams.exe":                   "Communication",
	"code.exe":                    "Development",
	"pycharm64.exe":               "Development",
	"devenv.exe":                  "Development",
	"explorer.exe":                "System",
	"cmd.exe":                     "System",
	"powershell.exe":              "System",
	"photoshop.exe":               "Design",
	"illustrator.exe":             "Design",
	"figma.exe":                   "Design",
	"adobe premiere pro.exe":      "Video",
	"afterfx.exe":                 "Video",
	"vlc.exe":                     "Media",
	"spotify.exe":                 "Music",
	"chrome.exe":                  "Web",
	"firefox.exe":                 "Web",
	"msedge.exe":                  "Web",
	"discord.exe":                 "Social",
	"telegram.exe":                "Social",
	"valorant-win64-shipping.exe": "Gaming",
	"cs2.exe":                     "Gaming",
	"league of legends.exe":       "Gaming",
	"steam.exe":                   "Gaming Platform",
}

func (s *Store) seedCategories() error {
	for process, category := range defaultCategories {
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO app_categories (process_name, category) VALUES (?, ?)`,
			process, category,
		); err != nil {
			return err
		}
	}
	return nil
}

// CategoryMap returns the full process → category mapping.
func (s *Store) CategoryMap() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT process_name, category FROM app_categories`)
	if err != nil {
		return nil, fmt.Errorf("store: query categories: %w", err)
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var process, category string
		if err := rows.Scan(&process, &category); err != nil {
			return nil, fmt.Errorf("store: scan category: %w", err)
		}
		m[process] = category
	}
	return m, rows.Err()
}

// CategoryFor returns the category of a process, or DefaultCategory when
// the process has no mapping.
func (s *Store) CategoryFor(process string) (string, error) {
	var category string
	err := s.db.QueryRow(
		`SELECT category FROM app_categories WHERE process_name = ?`, process,
	).Scan(&category)
	if err == sql.ErrNoRows {
		return DefaultCategory, nil
	}
	if err != nil {
		return "", fmt.Errorf("store: category for %q: %w", process, err)
	}
	return category, nil
}

// SetCategory assigns a category to a process. Last write wins.
func (s *Store) SetCategory(process, category string) error {
	_, err := s.db.Exec(
		`INSERT INTO app_categories (process_name, category) VALUES (?, ?)
		 ON CONFLICT(process_name) DO UPDATE SET category = excluded.category`,
		process, category,
	)
	if err != nil {
		return fmt.Errorf("store: set category: %w", err)
	}
	return nil
}

// Categories returns the distinct category labels in use, sorted.
func (s *Store) Categories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT category FROM app_categories ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("store: query category labels: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("store: scan category label: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ObservedProcesses returns the distinct process names present in the
// decrypted session history, sorted. Requires a full-table decrypt since
// process names are inside the sealed payload.
func (s *Store) ObservedProcesses() ([]string, error) {
	sessions, err := s.AllSessions()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, session := range sessions {
		seen[session.ProcessName] = true
	}

	processes := make([]string, 0, len(seen))
	for p := range seen {
		processes = append(processes, p)
	}
	sort.Strings(processes)
	return processes, nil
}

// UncategorizedProcesses returns observed processes that have no
// category mapping yet.
func (s *Store) UncategorizedProcesses() ([]string, error) {
	processes, err := s.ObservedProcesses()
	if err != nil {
		return nil, err
	}
	mapped, err := s.CategoryMap()
	if err != nil {
		return nil, err
	}

	var unmapped []string
	for _, p := range processes {
		if _, ok := mapped[p]; !ok {
			unmapped = append(unmapped, p)
		}
	}
	return unmapped, nil
}
