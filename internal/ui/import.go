package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/schedule"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [view.json]",
		Short: "Load a schedule view file into the cache",
		Long: `Replace the cached snapshot with a schedule view saved as JSON, as
returned by GET /api/schedule/view. Groups are taken from the entries.

Example:
  horario import ./week.json
  horario --offline grid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureCache(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("view file does not exist: %s", path)
				}
				return fmt.Errorf("checking view file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("view file path is a directory: %s", path)
			}

			res, err := importView(context.Background(), a.cache, path, time.Now())
			if err != nil {
				return err
			}

			printSnapshotResult(cmd.OutOrStdout(), "Imported", res, path)
			return nil
		},
	}

	return cmd
}

// importView reads a schedule view file and stores it as the snapshot.
func importView(ctx context.Context, dest snapshotStore, path string, now time.Time) (snapshotResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshotResult{}, fmt.Errorf("reading view file: %w", err)
	}

	var view schedule.View
	if err := json.Unmarshal(data, &view); err != nil {
		return snapshotResult{}, fmt.Errorf("parsing view file: %w", err)
	}
	if view.Entries == nil {
		view.Entries = []schedule.Entry{}
	}

	return saveSnapshot(ctx, dest, view, schedule.GroupsFromEntries(view.Entries), now)
}

// printSnapshotResult reports a stored snapshot, noting any blocks left out.
func printSnapshotResult(w io.Writer, verb string, res snapshotResult, where string) {
	fmt.Fprintf(w, "%s %d blocks and %d groups (%s)\n", verb, res.Entries, res.Groups, where)
	if n := res.Skipped(); n > 0 {
		fmt.Fprintln(w, formatWarning(fmt.Sprintf("%d invalid block(s) left out, see the log for details", n)))
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
