// Package tui provides the terminal user interface for horario.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/horario/internal/config"
	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/tui/commands"
	"github.com/javiermolinar/horario/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

// Projection selects how the filtered entries are shown.
type Projection int

const (
	ProjectionGrid Projection = iota
	ProjectionList
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone    ModalType = iota
	ModalHelp              // Key bindings
	ModalDetail            // Blocks under the cursor
	ModalInsight           // LLM review
)

// Position is the grid cursor.
type Position struct {
	DayIdx int // index into the window days
	Hour   int
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	source    schedule.Source
	config    *config.Config
	logger    *zap.Logger
	newLLM    func() (llm.Client, error)
	copyText  func(string) error
	fetchWait time.Duration

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Schedule state
	state     *schedule.ViewState
	scope     schedule.Scope
	fetchedAt time.Time

	// Interaction
	projection Projection
	cursor     Position
	listCursor int
	offset     int // first visible row of the body table
	mode       Mode
	loading    bool

	// Modal state
	modalType   ModalType
	insightText string
	insightBusy bool

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width    int
	height   int
	colWidth int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger used for fetches, filter changes and key presses.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLLMFactory replaces how the insight client is built.
func WithLLMFactory(fn func() (llm.Client, error)) ModelOption {
	return func(m *Model) { m.newLLM = fn }
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) { m.copyText = fn }
}

// WithScope sets the scope fetched on start.
func WithScope(scope schedule.Scope) ModelOption {
	return func(m *Model) { m.scope = scope }
}

// WithFilter sets the initial group and teacher filters.
func WithFilter(f schedule.FilterContext) ModelOption {
	return func(m *Model) {
		if f.GroupID != "" {
			m.state.SetGroup(f.GroupID)
		}
		if f.TeacherID != "" {
			m.state.SetTeacher(f.TeacherID)
		}
	}
}

// New creates a new TUI model reading schedules from src.
func New(src schedule.Source, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "/group 1A"
	ti.CharLimit = 128

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti.PromptStyle = styles.StatusStyle
	ti.TextStyle = styles.FooterLineStyle
	ti.PlaceholderStyle = styles.HelpStyle

	fetchWait, err := cfg.BackendTimeout()
	if err != nil {
		fetchWait = 0
	}

	m := &Model{
		source:    src,
		config:    cfg,
		logger:    zap.NewNop(),
		copyText:  clipboard.WriteAll,
		fetchWait: fetchWait,
		theme:     t,
		styles:    styles,
		scope:     schedule.AllScope(),
		mode:      ModeNormal,
		prompt:    ti,
		colWidth:  defaultColWidth,
		loading:   true,
	}
	m.newLLM = func() (llm.Client, error) {
		return llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
	}
	m.state = schedule.NewViewState(schedule.NewStore(), cfg.Window())

	for _, opt := range opts {
		opt(m)
	}
	// Options may replace the logger after the state was built.
	m.state = schedule.NewViewState(m.state.Store(), cfg.Window(),
		schedule.WithLogger(m.logger),
		schedule.WithFilter(m.state.Filter()),
	)
	m.cursor.Hour = cfg.Grid.FirstHour

	return m
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	m.logger.Debug("refresh requested", zap.Stringer("scope", m.scope))
	return commands.Refresh(m.source, m.scope, m.fetchWait)
}

// Run starts the TUI.
func Run(src schedule.Source, cfg *config.Config, opts ...ModelOption) error {
	model := New(src, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
