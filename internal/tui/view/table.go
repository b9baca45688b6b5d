package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds data needed to render the schedule grid or list.
type TableViewState struct {
	InnerW       int
	BodyH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	Offset       int  // first data row shown
	RowBorders   bool // separate rows with a line (grid mode)
	BorderStyle  lipgloss.Style
	Bg           lipgloss.Color
}

// RenderTable renders rows from Offset with a lipgloss table and fills the
// body area. Rows past the body height are cut.
func RenderTable(state TableViewState) string {
	if state.BodyH <= 0 || state.InnerW <= 0 {
		return ""
	}

	rows, styles := state.Content.Rows, state.Content.CellStyles
	if off := min(max(state.Offset, 0), len(rows)); off > 0 {
		rows = rows[off:]
		if off <= len(styles) {
			styles = styles[off:]
		} else {
			styles = nil
		}
	}

	t := table.New().
		Headers(state.Headers...).
		Width(max(state.InnerW-2, 0)).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(state.RowBorders).
		BorderStyle(state.BorderStyle).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleAt(state.HeaderStyles, col)
			}
			if row < 0 || row >= len(styles) {
				return lipgloss.NewStyle()
			}
			return styleAt(styles[row], col)
		})

	return PlaceBox(state.InnerW, state.BodyH, lipgloss.Top, t.Render(), state.Bg)
}

func styleAt(styles []lipgloss.Style, i int) lipgloss.Style {
	if i < 0 || i >= len(styles) {
		return lipgloss.NewStyle()
	}
	return styles[i]
}
