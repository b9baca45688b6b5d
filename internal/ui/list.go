package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/present"
	"github.com/javiermolinar/horario/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var opts viewOptions
	var noColor bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the week's blocks in chronological order",
		Long: `List the filtered blocks day by day, ordered by start hour.

Blocks outside the visible grid are listed too.`,
		Example: `  horario list
  horario list --group 1A
  horario list --scope-teacher t-7 --offline`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			state, err := a.loadState(opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			entries := state.List()
			if len(entries) == 0 {
				fmt.Fprintln(w, "No blocks found for this selection.")
				return nil
			}
			printList(w, entries)
			fmt.Fprintln(w)
			printSummary(w, state)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// printList prints entries grouped by day. Entries must be chronological.
func printList(w io.Writer, entries []schedule.Entry) {
	currentDay := 0
	for _, e := range entries {
		if e.Day != currentDay {
			if currentDay != 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s\n", formatHeader(present.DayName(e.Day)))
			currentDay = e.Day
		}
		printListRow(w, e)
	}
}

func printListRow(w io.Writer, e schedule.Entry) {
	teacher := present.TeacherLabel(e)
	if !e.HasTeacher() {
		teacher = formatUnassigned(teacher)
	}
	room := present.RoomLabel(e)
	if !e.HasRoom() {
		room = formatUnassigned(room)
	}
	pin := "  "
	if e.Pinned {
		pin = formatPinned(present.PinMark)
	}

	fmt.Fprintf(w, "    %s %-20s %-24s %-8s %-18s %s\n",
		pin,
		present.TimeRange(e),
		truncate(e.CourseName, 24),
		truncate(e.GroupName, 8),
		teacher,
		room,
	)
}
