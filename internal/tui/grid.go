package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/horario/internal/present"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/tui/view"
)

const (
	titleHeight   = 1
	footerHeight  = 4
	tableOverhead = 4 // top border, header, header rule, bottom border
	coveredMark   = "│"
)

// bodyHeight is the number of lines available to the table.
func (m Model) bodyHeight() int {
	return max(m.height-titleHeight-m.footerHeight(), 0)
}

func (m Model) footerHeight() int {
	if m.height < 12 {
		return 2
	}
	return footerHeight
}

// rowCount is the number of data rows of the current projection.
func (m Model) rowCount() int {
	if m.projection == ProjectionList {
		return len(m.state.Filtered())
	}
	return m.state.Window().NumHours()
}

// cursorRow is the data row holding the cursor.
func (m Model) cursorRow() int {
	if m.projection == ProjectionList {
		return m.listCursor
	}
	return m.cursor.Hour - m.state.Window().FirstHour
}

// rowHeights returns the line count of every data row.
func (m Model) rowHeights() []int {
	if m.projection == ProjectionList {
		heights := make([]int, m.rowCount())
		for i := range heights {
			heights[i] = 1
		}
		return heights
	}

	grid := m.state.Grid()
	hours := grid.Hours()
	heights := make([]int, len(hours))
	for i, hour := range hours {
		heights[i] = 1
		for _, day := range grid.Days() {
			cell, _ := grid.Cell(day, hour)
			heights[i] = max(heights[i], len(m.cellLines(cell)))
		}
	}
	return heights
}

// fits reports whether rows from..to (inclusive) fit in the body.
func (m Model) fits(heights []int, from, to int) bool {
	avail := m.bodyHeight() - tableOverhead
	used := 0
	for i := from; i <= to && i < len(heights); i++ {
		used += heights[i]
		if i > from && m.projection == ProjectionGrid {
			used++ // row rule
		}
	}
	return used <= avail
}

// visibleRows counts the rows shown from the current offset.
func (m Model) visibleRows() int {
	heights := m.rowHeights()
	n := 0
	for i := m.offset; i < len(heights) && m.fits(heights, m.offset, i); i++ {
		n++
	}
	return n
}

// moveRow moves the cursor by step rows and scrolls to keep it visible.
func (m *Model) moveRow(step int) {
	if m.projection == ProjectionList {
		m.listCursor += step
	} else {
		m.cursor.Hour += step
	}
	m.clampCursor()
}

// clampCursor keeps the cursor inside the window and the list.
func (m *Model) clampCursor() {
	w := m.state.Window()
	m.cursor.DayIdx = min(max(m.cursor.DayIdx, 0), max(len(w.Days)-1, 0))
	m.cursor.Hour = min(max(m.cursor.Hour, w.FirstHour), w.LastHour)
	m.listCursor = min(max(m.listCursor, 0), max(len(m.state.Filtered())-1, 0))
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts the offset so the cursor row is shown.
func (m *Model) ensureCursorVisible() {
	row := m.cursorRow()
	if row < m.offset {
		m.offset = row
		return
	}
	if m.height == 0 {
		return
	}
	heights := m.rowHeights()
	for m.offset < row && !m.fits(heights, m.offset, row) {
		m.offset++
	}
}

// cellLines returns the text lines of a grid cell.
func (m Model) cellLines(cell schedule.Cell) []string {
	switch cell.Kind() {
	case schedule.CellStart:
		var lines []string
		for i, p := range cell.Starts {
			if i > 0 {
				lines = append(lines, strings.Repeat("─", m.colWidth))
			}
			for _, line := range present.CellLines(p) {
				lines = append(lines, view.Truncate(line, m.colWidth))
			}
		}
		return lines
	case schedule.CellCovered:
		return []string{coveredMark}
	default:
		return []string{""}
	}
}

// gridTable builds the rows and styles of the grid projection.
func (m Model) gridTable() ([]string, []lipgloss.Style, view.TableContent) {
	grid := m.state.Grid()
	days := grid.Days()
	cursorDay := 0
	if m.cursor.DayIdx < len(days) {
		cursorDay = days[m.cursor.DayIdx]
	}

	headers, active := view.HeaderLabels(days, cursorDay)
	headerStyles := make([]lipgloss.Style, len(headers))
	headerStyles[0] = m.styles.HourColumnStyle
	for i := 1; i < len(headers); i++ {
		style := m.styles.DayHeaderStyle
		if i == active {
			style = m.styles.DayHeaderActiveStyle
		}
		headerStyles[i] = style.Width(m.colWidth)
	}

	hours := grid.Hours()
	content := view.TableContent{
		Rows:       make([][]string, 0, len(hours)),
		CellStyles: make([][]lipgloss.Style, 0, len(hours)),
	}
	for _, hour := range hours {
		row := make([]string, 0, len(days)+1)
		styles := make([]lipgloss.Style, 0, len(days)+1)

		hourStyle := m.styles.HourColumnStyle
		if hour == m.cursor.Hour {
			hourStyle = m.styles.HourActiveStyle
		}
		row = append(row, present.HourLabel(hour))
		styles = append(styles, hourStyle)

		for di, day := range days {
			cell, _ := grid.Cell(day, hour)
			style := m.cellStyle(grid, cell)
			if di == m.cursor.DayIdx && hour == m.cursor.Hour {
				style = m.styles.CursorStyle
			}
			row = append(row, strings.Join(m.cellLines(cell), "\n"))
			styles = append(styles, style.Width(m.colWidth))
		}

		content.Rows = append(content.Rows, row)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return headers, headerStyles, content
}

// cellStyle picks the style of a cell from the blocks occupying it.
func (m Model) cellStyle(grid *schedule.Grid, cell schedule.Cell) lipgloss.Style {
	switch cell.Kind() {
	case schedule.CellStart:
		assigned := true
		pinned := false
		for _, p := range cell.Starts {
			assigned = assigned && p.Entry.HasTeacher()
			pinned = pinned || p.Entry.Pinned
		}
		style := m.styles.blockStyle(assigned, len(cell.Starts) > 1)
		if pinned {
			style = style.Foreground(m.styles.PinnedForeground)
		}
		return style
	case schedule.CellCovered:
		for _, i := range cell.CoveredBy {
			if p, ok := grid.Placement(i); ok && !p.Entry.HasTeacher() {
				return m.styles.CoveredUnassigned
			}
		}
		return m.styles.CoveredStyle
	default:
		return m.styles.EmptyCellStyle
	}
}

// listTable builds the rows and styles of the list projection.
func (m Model) listTable() ([]string, []lipgloss.Style, view.TableContent) {
	headers := present.ListHeader
	headerStyles := make([]lipgloss.Style, len(headers))
	for i := range headerStyles {
		headerStyles[i] = m.styles.DayHeaderStyle.UnsetWidth().Padding(0, 1)
	}

	entries := m.state.List()
	content := view.TableContent{
		Rows:       make([][]string, 0, len(entries)),
		CellStyles: make([][]lipgloss.Style, 0, len(entries)),
	}
	pinnedCol := len(headers) - 1
	for i, e := range entries {
		row := present.ListRow(e)
		styles := make([]lipgloss.Style, len(row))
		for col := range row {
			switch {
			case i == m.listCursor:
				styles[col] = m.styles.ListSelectedStyle
			case col == pinnedCol && e.Pinned:
				styles[col] = m.styles.ListPinnedStyle
			default:
				styles[col] = m.styles.ListCellStyle
			}
		}
		content.Rows = append(content.Rows, row)
		content.CellStyles = append(content.CellStyles, styles)
	}

	return headers, headerStyles, content
}
