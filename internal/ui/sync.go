package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/horario/internal/db"
	"github.com/javiermolinar/horario/internal/schedule"
)

// snapshotStore stores a fetched schedule and describes what it holds.
// It is implemented by *db.SQLite.
type snapshotStore interface {
	SaveSnapshot(ctx context.Context, view schedule.View, groups []schedule.Group, fetchedAt time.Time) error
	Snapshot(ctx context.Context) (db.Snapshot, error)
}

// snapshotResult reports what a sync or an import stored.
type snapshotResult struct {
	db.Snapshot
	Read int // entries read from the source
}

// Skipped is the number of entries the cache refused.
func (r snapshotResult) Skipped() int {
	return max(r.Read-r.Entries, 0)
}

func (a *App) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the schedule and save it for offline use",
		Long: `Fetch the whole schedule and the group catalog from the backend and
replace the cached snapshot with them. Later commands read the snapshot
with --offline. Blocks the cache cannot place (no group, bad day or
length) are left out and logged.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.offline {
				return errors.New("sync needs the backend, drop --offline")
			}
			src, err := a.source()
			if err != nil {
				return err
			}
			if err := a.ensureCache(); err != nil {
				return err
			}

			ctx, cancel := a.fetchContext()
			defer cancel()

			res, err := syncSnapshot(ctx, src, a.cache, time.Now())
			if err != nil {
				return err
			}
			a.logger.Info("snapshot saved",
				zap.Int("entries", res.Entries),
				zap.Int("skipped", res.Skipped()),
				zap.Int("groups", res.Groups),
			)

			printSnapshotResult(cmd.OutOrStdout(), "Saved", res, a.config.Cache.DBPath)
			return nil
		},
	}
}

// syncSnapshot copies the full schedule from src into dest.
func syncSnapshot(ctx context.Context, src schedule.Source, dest snapshotStore, now time.Time) (snapshotResult, error) {
	store := schedule.NewStore()
	if err := store.Refresh(ctx, src, schedule.AllScope()); err != nil {
		return snapshotResult{}, fmt.Errorf("fetching schedule: %w", err)
	}
	return saveSnapshot(ctx, dest, store.View(), store.Groups(), now)
}

// saveSnapshot stores view and groups and reads back what was kept.
func saveSnapshot(ctx context.Context, dest snapshotStore, view schedule.View, groups []schedule.Group, now time.Time) (snapshotResult, error) {
	if err := dest.SaveSnapshot(ctx, view, groups, now); err != nil {
		return snapshotResult{}, fmt.Errorf("saving snapshot: %w", err)
	}
	snap, err := dest.Snapshot(ctx)
	if err != nil {
		return snapshotResult{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return snapshotResult{Snapshot: snap, Read: len(view.Entries)}, nil
}
