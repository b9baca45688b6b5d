// Package db provides the SQLite snapshot cache for offline viewing.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/horario/internal/schedule"
)

// ErrNoSnapshot is returned when the cache has never been synced.
var ErrNoSnapshot = errors.New("no cached snapshot, run 'horario sync' first")

// SQLite stores the last fetched schedule and implements schedule.Source.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

// Option configures the cache.
type Option func(*SQLite)

// WithLogger sets the logger used to report entries left out of a snapshot.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLite) {
		if l != nil {
			s.logger = l
		}
	}
}

// Snapshot describes the stored schedule.
type Snapshot struct {
	FetchedAt time.Time
	Entries   int
	Groups    int
}

// New creates a new SQLite cache and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored schedule with view and groups in one transaction.
// Entry order is preserved so reads return the backend's order. Entries that
// fail validation are logged and left out; the rest are stored.
func (s *SQLite) SaveSnapshot(ctx context.Context, view schedule.View, groups []schedule.Group, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"entries", "groups", "snapshot_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	groupStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO groups (id, name, preferred_room, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing group statement: %w", err)
	}
	defer func() { _ = groupStmt.Close() }()

	for i, g := range groups {
		if _, err := groupStmt.ExecContext(ctx, g.ID, g.Name, g.PreferredRoomName, i); err != nil {
			return fmt.Errorf("inserting group %q: %w", g.ID, err)
		}
	}

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (
			position, id, group_id, group_name, teacher_id, teacher_name,
			course_name, room_name, day, start_hour, length_hours, pinned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing entry statement: %w", err)
	}
	defer func() { _ = entryStmt.Close() }()

	skipped := 0
	for i, e := range view.Entries {
		if err := e.Validate(); err != nil {
			skipped++
			s.logger.Warn("entry left out of snapshot",
				zap.Int("index", i),
				zap.String("id", e.ID),
				zap.String("course", e.CourseName),
				zap.Error(err),
			)
			continue
		}
		_, err := entryStmt.ExecContext(ctx,
			i, e.ID, e.GroupID, e.GroupName, e.TeacherID, e.TeacherName,
			e.CourseName, e.RoomName, e.Day, e.StartHour, e.LengthHours, e.Pinned,
		)
		if err != nil {
			return fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, total_assignments, assigned_count, unassigned_count, fetched_at)
		VALUES (1, ?, ?, ?, ?)
	`, view.TotalAssignments, view.AssignedCount, view.UnassignedCount, fetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing snapshot metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.logger.Debug("snapshot saved",
		zap.Int("entries", len(view.Entries)-skipped),
		zap.Int("skipped", skipped),
		zap.Int("groups", len(groups)),
	)
	return nil
}

// Snapshot returns metadata about the stored schedule.
// Returns ErrNoSnapshot if nothing has been saved yet.
func (s *SQLite) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap      Snapshot
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshot_meta WHERE id = 1`).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("querying snapshot metadata: %w", err)
	}

	snap.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parsing fetched at: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&snap.Entries); err != nil {
		return Snapshot{}, fmt.Errorf("counting entries: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&snap.Groups); err != nil {
		return Snapshot{}, fmt.Errorf("counting groups: %w", err)
	}

	return snap, nil
}

// FetchView returns the cached schedule narrowed by scope.
// Unscoped reads return the stored counters. Scoped reads count every row as
// assigned, the way the backend's scoped views do.
func (s *SQLite) FetchView(ctx context.Context, scope schedule.Scope) (schedule.View, error) {
	var view schedule.View
	err := s.db.QueryRowContext(ctx, `
		SELECT total_assignments, assigned_count, unassigned_count
		FROM snapshot_meta WHERE id = 1
	`).Scan(&view.TotalAssignments, &view.AssignedCount, &view.UnassignedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.View{}, ErrNoSnapshot
	}
	if err != nil {
		return schedule.View{}, fmt.Errorf("querying snapshot metadata: %w", err)
	}

	query := `
		SELECT id, group_id, group_name, teacher_id, teacher_name, course_name,
		       room_name, day, start_hour, length_hours, pinned
		FROM entries
	`
	var args []any
	switch scope.Kind {
	case schedule.ScopeGroup:
		query += ` WHERE group_id = ?`
		args = append(args, scope.Value)
	case schedule.ScopeTeacher:
		query += ` WHERE teacher_id = ?`
		args = append(args, scope.Value)
	case schedule.ScopeRoom:
		query += ` WHERE room_name = ?`
		args = append(args, scope.Value)
	}
	query += ` ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return schedule.View{}, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	view.Entries = []schedule.Entry{}
	for rows.Next() {
		var e schedule.Entry
		if err := rows.Scan(
			&e.ID,
			&e.GroupID,
			&e.GroupName,
			&e.TeacherID,
			&e.TeacherName,
			&e.CourseName,
			&e.RoomName,
			&e.Day,
			&e.StartHour,
			&e.LengthHours,
			&e.Pinned,
		); err != nil {
			return schedule.View{}, fmt.Errorf("scanning entry: %w", err)
		}
		view.Entries = append(view.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return schedule.View{}, fmt.Errorf("iterating entries: %w", err)
	}

	if scope.Kind != schedule.ScopeAll {
		view.TotalAssignments = len(view.Entries)
		view.AssignedCount = view.TotalAssignments
		view.UnassignedCount = 0
	}

	return view, nil
}

// FetchGroups returns the cached group catalog in backend order.
func (s *SQLite) FetchGroups(ctx context.Context) ([]schedule.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, preferred_room FROM groups ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	groups := []schedule.Group{}
	for rows.Next() {
		var g schedule.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.PreferredRoomName); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}

	return groups, nil
}
