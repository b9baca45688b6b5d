// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/schedule"
)

// LoadedMsg is sent when a schedule view and the group catalog are fetched.
type LoadedMsg struct {
	Scope     schedule.Scope
	View      schedule.View
	Groups    []schedule.Group
	FetchedAt time.Time
}

// LoadFailedMsg is sent when a refresh fails. The view must degrade to empty.
type LoadFailedMsg struct {
	Scope schedule.Scope
	Err   error
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// InsightMsg carries the LLM review of the visible week.
type InsightMsg struct {
	Text string
}

// Refresh fetches the scope from src. A zero timeout means no deadline.
func Refresh(src schedule.Source, scope schedule.Scope, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		store := schedule.NewStore()
		if err := store.Refresh(ctx, src, scope); err != nil {
			return LoadFailedMsg{Scope: scope, Err: err}
		}
		return LoadedMsg{
			Scope:     scope,
			View:      store.View(),
			Groups:    store.Groups(),
			FetchedAt: time.Now(),
		}
	}
}

// Insight asks the LLM to review entries laid out on w.
func Insight(client llm.Client, entries []schedule.Entry, w schedule.Window) tea.Cmd {
	return func() tea.Msg {
		text, err := llm.NewEvaluator(client).EvaluateWeek(context.Background(), entries, w)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("insight: %w", err)}
		}
		return InsightMsg{Text: text}
	}
}

// Status emits a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
