package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/horario/internal/present"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/tui/commands"
	"github.com/javiermolinar/horario/internal/tui/input"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key pressed", zap.String("key", msg.String()), zap.Int("mode", int(m.mode)))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.DayIdx > 0 {
			m.cursor.DayIdx--
		}
	case "l", "right":
		if m.cursor.DayIdx < len(m.state.Window().Days)-1 {
			m.cursor.DayIdx++
		}
	case "j", "down":
		m.moveRow(1)
	case "k", "up":
		m.moveRow(-1)
	case "pgdown", "ctrl+d":
		m.moveRow(max(m.visibleRows(), 1))
	case "pgup", "ctrl+u":
		m.moveRow(-max(m.visibleRows(), 1))
	case "home":
		m.moveRow(-m.rowCount())

	// Filters
	case "g":
		return m.cycleGroup(1)
	case "G":
		return m.cycleGroup(-1)
	case "t":
		return m.cycleTeacher(1)
	case "T":
		return m.cycleTeacher(-1)
	case "c":
		m.state.ClearFilters()
		m.clampCursor()
		return m, m.setStatus("Filters cleared", statusDuration)

	// Views and actions
	case "v":
		if m.projection == ProjectionGrid {
			m.projection = ProjectionList
		} else {
			m.projection = ProjectionGrid
		}
		m.offset = 0
		m.ensureCursorVisible()
	case "r":
		m.loading = true
		return m, m.refresh()
	case "y":
		return m.copySelection()
	case "i":
		return m.startInsight()
	case "enter":
		if m.projection == ProjectionGrid && len(m.blocksAtCursor()) > 0 {
			m.mode = ModeModal
			m.modalType = ModalDetail
		}
	case "?":
		m.mode = ModeModal
		m.modalType = ModalHelp
	case "/":
		m.mode = ModePrompt
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		m.prompt.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// handlePromptKeys handles keys while the command prompt is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "tab":
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.closePrompt()
		return m.runPrompt(line)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "?":
		m.mode = ModeNormal
		m.modalType = ModalNone
	case "y":
		if m.modalType == ModalInsight {
			return m.copy(m.insightText, "Insight copied")
		}
		if m.modalType == ModalDetail {
			return m.copySelection()
		}
	}
	return m, nil
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// runPrompt executes a submitted prompt line.
func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	parsed, err := input.Parse(line)
	if errors.Is(err, input.ErrEmptyPrompt) {
		return m, nil
	}
	if err != nil {
		return m, m.setStatus(err.Error(), errorDuration)
	}

	switch parsed.Action {
	case input.ActionScopeAll:
		return m.switchScope(schedule.AllScope())
	case input.ActionScopeGroup:
		return m.switchScope(schedule.GroupScope(parsed.Arg))
	case input.ActionScopeTeacher:
		return m.switchScope(schedule.TeacherScope(parsed.Arg))
	case input.ActionScopeRoom:
		return m.switchScope(schedule.RoomScope(parsed.Arg))
	case input.ActionClear:
		m.state.ClearFilters()
		m.clampCursor()
	case input.ActionInsight:
		return m.startInsight()
	case input.ActionHelp:
		m.mode = ModeModal
		m.modalType = ModalHelp
	}
	return m, nil
}

// switchScope fetches a different backend view. Local filters are cleared
// since their options come from the previous view.
func (m Model) switchScope(scope schedule.Scope) (tea.Model, tea.Cmd) {
	m.logger.Debug("scope changed", zap.Stringer("from", m.scope), zap.Stringer("to", scope))
	m.scope = scope
	m.state.ClearFilters()
	m.loading = true
	m.offset = 0
	m.listCursor = 0
	return m, m.refresh()
}

func (m Model) cycleGroup(step int) (tea.Model, tea.Cmd) {
	m.state.CycleGroup(step)
	m.clampCursor()

	f := m.state.Filter()
	label := "all groups"
	if f.GroupID != "" {
		label = m.state.Store().GroupName(f.GroupID)
	}
	return m, m.setStatus("Group: "+label, statusDuration)
}

func (m Model) cycleTeacher(step int) (tea.Model, tea.Cmd) {
	if m.state.Filter().GroupID == "" {
		return m, m.setStatus("Select a group first (g)", statusDuration)
	}
	if len(m.state.Teachers()) == 0 {
		return m, m.setStatus("No teachers in this group", statusDuration)
	}

	m.state.CycleTeacher(step)
	m.clampCursor()

	f := m.state.Filter()
	label := "all teachers"
	if f.TeacherID != "" {
		label = m.state.TeacherName(f.TeacherID)
	}
	return m, m.setStatus("Teacher: "+label, statusDuration)
}

// copySelection copies the blocks under the grid cursor, or the whole list.
func (m Model) copySelection() (tea.Model, tea.Cmd) {
	var lines []string
	if m.projection == ProjectionList {
		for _, e := range m.state.List() {
			lines = append(lines, strings.Join(present.ListRow(e), "\t"))
		}
	} else {
		for _, p := range m.blocksAtCursor() {
			lines = append(lines, present.TimeRange(p.Entry)+" "+present.CellSummary(p))
		}
	}
	if len(lines) == 0 {
		return m, m.setStatus("Nothing to copy", statusDuration)
	}
	return m.copy(strings.Join(lines, "\n"), fmt.Sprintf("Copied %d line(s)", len(lines)))
}

func (m Model) copy(text, status string) (tea.Model, tea.Cmd) {
	if err := m.copyText(text); err != nil {
		return m, m.setStatus(fmt.Sprintf("Copy failed: %v", err), errorDuration)
	}
	return m, m.setStatus(status, statusDuration)
}

// startInsight asks the LLM to review the filtered week.
func (m Model) startInsight() (tea.Model, tea.Cmd) {
	if m.insightBusy {
		return m, nil
	}
	entries := m.state.Filtered()
	if len(entries) == 0 {
		return m, m.setStatus("Nothing to review", statusDuration)
	}

	client, err := m.newLLM()
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("Error: %v", err), errorDuration)
	}

	m.insightBusy = true
	m.statusMsg = "Asking the LLM..."
	return m, commands.Insight(client, entries, m.state.Window())
}

// blocksAtCursor returns the blocks starting in or covering the cursor cell.
func (m Model) blocksAtCursor() []schedule.Placement {
	days := m.state.Window().Days
	if m.cursor.DayIdx < 0 || m.cursor.DayIdx >= len(days) {
		return nil
	}
	return m.state.Grid().BlocksAt(days[m.cursor.DayIdx], m.cursor.Hour)
}
