package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/horario/internal/present"
	"github.com/javiermolinar/horario/internal/schedule"
)

const coveredMark = "│"

func (a *App) gridCmd() *cobra.Command {
	var opts viewOptions
	var noColor bool
	var compact bool

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the week as an hour by day grid",
		Long: `Print the filtered week as a grid with one row per hour and one
column per day. Each block is written at its start hour; the hours it
continues into show a vertical bar. With --compact only the hours in which
some block starts are printed.`,
		Example: `  horario grid
  horario grid --group 1A
  horario grid --group 1A --teacher t-7
  horario grid --scope-room Lab --offline
  horario grid --group 1A --compact`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			state, err := a.loadState(opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printGrid(w, state.Grid(), termWidth(), compact)
			printSummary(w, state)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print only the hours in which a block starts")
	return cmd
}

// printGrid renders g as a bordered table fitted to width. A compact grid
// leaves out the hours without starts.
func printGrid(w io.Writer, g *schedule.Grid, width int, compact bool) {
	days := g.Days()

	headers := make([]string, 0, len(days)+1)
	headers = append(headers, "Hour")
	for _, d := range days {
		headers = append(headers, present.DayName(d))
	}

	colWidth := max((width-8-len(days)-1)/max(len(days), 1), 8)
	hours := g.Hours()
	if compact {
		hours = g.Rows()
	}

	rows := make([][]string, 0, len(hours))
	for _, hour := range hours {
		row := []string{present.HourLabel(hour)}
		for _, d := range days {
			cell, _ := g.Cell(d, hour)
			row = append(row, gridCellText(cell, colWidth))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Align(lipgloss.Center)
			}
			if col > 0 {
				style = style.Width(colWidth + 2)
			}
			return style
		})

	fmt.Fprintln(w, t.Render())
}

// gridCellText is the text of one grid cell. Blocks sharing a start hour
// are stacked with a rule between them.
func gridCellText(cell schedule.Cell, width int) string {
	if !cell.Renderable() {
		return coveredMark
	}
	switch cell.Kind() {
	case schedule.CellStart:
		parts := make([]string, 0, len(cell.Starts))
		for _, p := range cell.Starts {
			lines := present.CellLines(p)
			for i, line := range lines {
				lines[i] = truncate(line, width)
			}
			if p.Entry.Pinned {
				lines[0] = formatPinned(lines[0])
			}
			parts = append(parts, strings.Join(lines, "\n"))
		}
		return strings.Join(parts, "\n"+strings.Repeat("─", width)+"\n")
	default:
		return ""
	}
}

// printSummary prints the counters, the active filter and the reconcile note.
func printSummary(w io.Writer, state *schedule.ViewState) {
	v := state.Store().View()
	f := state.Filter()

	fmt.Fprintf(w, "  %s\n", formatStats(present.Totals(v)))
	fmt.Fprintf(w, "  %s\n", formatMuted(fmt.Sprintf("Filter: %s | Showing: %d blocks",
		present.FilterLabel(f, state.Store().GroupName(f.GroupID), state.TeacherName(f.TeacherID)),
		len(state.Filtered()))))
	if note := present.Reconcile(v, state.Grid(), !f.IsEmpty()); note != "" {
		fmt.Fprintf(w, "  %s\n", formatWarning("⚠ "+note))
	}
}
