package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS groups (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			preferred_room TEXT NOT NULL DEFAULT '',
			position       INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS entries (
			position     INTEGER PRIMARY KEY,
			id           TEXT NOT NULL DEFAULT '',
			group_id     TEXT NOT NULL,
			group_name   TEXT NOT NULL DEFAULT '',
			teacher_id   TEXT NOT NULL DEFAULT '',
			teacher_name TEXT NOT NULL DEFAULT '',
			course_name  TEXT NOT NULL DEFAULT '',
			room_name    TEXT NOT NULL DEFAULT '',
			day          INTEGER NOT NULL CHECK(day BETWEEN 1 AND 7),
			start_hour   INTEGER NOT NULL,
			length_hours INTEGER NOT NULL CHECK(length_hours >= 1),
			pinned       INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_entries_group ON entries(group_id);
		CREATE INDEX IF NOT EXISTS idx_entries_teacher ON entries(teacher_id);
		CREATE INDEX IF NOT EXISTS idx_entries_room ON entries(room_name);

		CREATE TABLE IF NOT EXISTS snapshot_meta (
			id                INTEGER PRIMARY KEY CHECK(id = 1),
			total_assignments INTEGER NOT NULL,
			assigned_count    INTEGER NOT NULL,
			unassigned_count  INTEGER NOT NULL,
			fetched_at        DATETIME NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating snapshot tables: %w", err)
	}

	return nil
}
