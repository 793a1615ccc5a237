package db

import "fmt"

// migrate creates the items table if it does not exist yet.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS items (
			id       INTEGER PRIMARY KEY,
			content  TEXT NOT NULL,
			start_at TEXT NOT NULL,
			end_at   TEXT NOT NULL,
			editable INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_items_start ON items(start_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}

	return nil
}
