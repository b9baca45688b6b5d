package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/horario/internal/present"
	"github.com/javiermolinar/horario/internal/tui/input"
	"github.com/javiermolinar/horario/internal/tui/view"
)

const helpLine = "g/G group  t/T teacher  c clear  v view  r refresh  y copy  i insight  / cmd  ? help  q quit"

var helpBody = []string{
	"h j k l / arrows   move the cursor",
	"pgup pgdown        scroll a page",
	"g / G              next / previous group (clears the teacher)",
	"t / T              next / previous teacher of the group",
	"c                  clear filters",
	"v                  toggle grid and list",
	"enter              blocks under the cursor",
	"r                  refresh from the source",
	"y                  copy the cell (grid) or the list",
	"i                  LLM review of the visible week",
	"/                  command prompt: /all /group /teacher /room",
	"q                  quit",
}

// View renders the TUI.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	body := view.RenderTable(m.tableViewState())
	footer := view.RenderFooter(m.footerViewState())
	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), body, footer)
	base := view.PadLines(content, m.width, m.height, m.styles.colorBg)

	if m.mode != ModeModal || m.modalType == ModalNone {
		return base
	}
	return view.Overlay(base, m.renderModal(), m.width, m.height, m.styles.colorModalBg)
}

func (m Model) renderTitle() string {
	parts := []string{"horario", m.scope.String()}
	if m.projection == ProjectionList {
		parts = append(parts, "list")
	} else {
		parts = append(parts, "grid")
	}
	if !m.fetchedAt.IsZero() {
		parts = append(parts, "fetched "+m.fetchedAt.Format("15:04"))
	}
	title := view.Truncate(strings.Join(parts, " · "), m.width)
	return m.styles.TitleStyle.Width(m.width).Render(title)
}

func (m Model) tableViewState() view.TableViewState {
	state := view.TableViewState{
		InnerW:      m.width,
		BodyH:       m.bodyHeight(),
		Offset:      m.offset,
		BorderStyle: m.styles.BorderStyle,
		Bg:          m.styles.colorBg,
	}
	if m.projection == ProjectionList {
		state.Headers, state.HeaderStyles, state.Content = m.listTable()
		return state
	}
	state.Headers, state.HeaderStyles, state.Content = m.gridTable()
	state.RowBorders = true
	return state
}

func (m Model) footerViewState() view.FooterViewState {
	state := view.FooterViewState{
		InnerW:      m.width,
		FooterH:     m.footerHeight(),
		TotalsLine:  m.totalsLine(),
		FilterLine:  m.filterLine(),
		StatusLine:  m.statusLine(),
		HelpLine:    helpLine,
		Bg:          m.styles.colorBg,
		LineStyle:   m.styles.FooterLineStyle,
		StatusStyle: m.styles.StatusStyle,
		HelpStyle:   m.styles.HelpStyle,
	}
	if m.err != nil && m.statusMsg == "" {
		state.StatusStyle = m.styles.WarningStyle
	}
	if m.mode == ModePrompt {
		matches := input.PromptMatchingCommands(m.prompt.Value(), input.Commands)
		suggestions := make([]view.PromptSuggestion, 0, len(matches))
		for _, c := range matches {
			suggestions = append(suggestions, view.PromptSuggestion{Name: c.Name, Description: c.Description})
		}
		state.PromptLine = view.PromptLine(m.prompt.Value(), "_", suggestions)
	}
	return state
}

func (m Model) totalsLine() string {
	v := m.state.Store().View()
	line := fmt.Sprintf("%s | Showing: %d", present.Totals(v), len(m.state.Grid().Placed()))
	if note := present.Reconcile(v, m.state.Grid(), !m.state.Filter().IsEmpty()); note != "" {
		line += " | ⚠ " + note
	}
	return line
}

func (m Model) filterLine() string {
	f := m.state.Filter()
	return "Filter: " + present.FilterLabel(f, m.state.Store().GroupName(f.GroupID), m.state.TeacherName(f.TeacherID))
}

func (m Model) statusLine() string {
	switch {
	case m.statusMsg != "":
		return m.statusMsg
	case m.loading:
		return "Loading " + m.scope.String() + "..."
	case m.err != nil:
		return "Error: " + m.err.Error()
	case len(m.state.Filtered()) == 0:
		return "No blocks for this selection"
	default:
		return ""
	}
}

func (m Model) renderModal() string {
	switch m.modalType {
	case ModalHelp:
		return view.RenderModalFrame("Keys", helpBody, "esc close", m.styles.Modal)
	case ModalDetail:
		return view.RenderModalFrame("Blocks", m.detailLines(), "y copy · esc close", m.styles.Modal)
	case ModalInsight:
		width := min(max(m.width-12, 20), 72)
		return view.RenderModalFrame("Week review", view.WrapText(m.insightText, width), "y copy · esc close", m.styles.Modal)
	default:
		return ""
	}
}

// detailLines describes every block occupying the cursor cell.
func (m Model) detailLines() []string {
	var lines []string
	grid := m.state.Grid()
	for i, p := range m.blocksAtCursor() {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, present.DayName(p.Entry.Day)+" "+present.TimeRange(p.Entry))
		for _, line := range present.CellLines(p) {
			lines = append(lines, "  "+line)
		}
		if hours := grid.HoursOf(p.Index); len(hours) > 0 && len(hours) < p.Entry.LengthHours {
			lines = append(lines, "  continues after "+present.HourLabel(hours[len(hours)-1]+1))
		}
	}
	return lines
}
