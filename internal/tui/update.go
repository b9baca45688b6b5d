package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/horario/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.ensureCursorVisible()
		return m, nil

	case commands.LoadedMsg:
		if msg.Scope != m.scope {
			// A newer scope was requested while this one was in flight.
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.fetchedAt = msg.FetchedAt
		m.state.Store().Set(msg.View, msg.Groups)
		m.state.Recompute()
		m.clampCursor()
		m.logger.Info("schedule loaded",
			zap.Stringer("scope", msg.Scope),
			zap.Int("entries", len(msg.View.Entries)),
			zap.Int("groups", len(msg.Groups)),
		)
		return m, m.setStatus(fmt.Sprintf("Loaded %d blocks", len(msg.View.Entries)), statusDuration)

	case commands.LoadFailedMsg:
		if msg.Scope != m.scope {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		m.state.Store().Reset()
		m.state.Recompute()
		m.clampCursor()
		m.logger.Warn("schedule fetch failed", zap.Stringer("scope", msg.Scope), zap.Error(msg.Err))
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), errorDuration)

	case commands.InsightMsg:
		m.insightBusy = false
		m.insightText = msg.Text
		m.mode = ModeModal
		m.modalType = ModalInsight
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.insightBusy = false
		m.err = msg.Err
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), errorDuration)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, statusDuration)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setStatus shows msg until d has passed.
func (m *Model) setStatus(msg string, d time.Duration) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(d)
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

func (m Model) calculateColWidth() int {
	days := len(m.state.Window().Days)
	if days == 0 || m.width <= 0 {
		return defaultColWidth
	}
	// Borders: one per column plus the outer edge.
	avail := m.width - hourColWidth - (days + 2)
	return max(avail/days, 8)
}
