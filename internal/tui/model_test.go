package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/horario/internal/config"
	"github.com/javiermolinar/horario/internal/llm"
	"github.com/javiermolinar/horario/internal/present"
	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/tui/commands"
)

type fakeSource struct {
	view   schedule.View
	groups []schedule.Group
	err    error
	scopes []schedule.Scope
}

func (f *fakeSource) FetchView(ctx context.Context, scope schedule.Scope) (schedule.View, error) {
	f.scopes = append(f.scopes, scope)
	return f.view, f.err
}

func (f *fakeSource) FetchGroups(ctx context.Context) ([]schedule.Group, error) {
	return f.groups, nil
}

type fakeLLM struct {
	reply string
}

func (f fakeLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return f.reply, nil
}

func (f fakeLLM) ChatJSON(ctx context.Context, messages []llm.Message, result any) error {
	return errors.New("not implemented")
}

func testEntries() []schedule.Entry {
	return []schedule.Entry{
		{ID: "1", GroupID: "1A", GroupName: "1A", TeacherID: "ana", TeacherName: "Ana", CourseName: "Math", RoomName: "A-12", Day: 1, StartHour: 8, LengthHours: 2, Pinned: true},
		{ID: "2", GroupID: "1A", GroupName: "1A", TeacherID: "luis", TeacherName: "Luis", CourseName: "History", RoomName: "A-12", Day: 2, StartHour: 9, LengthHours: 1},
		{ID: "3", GroupID: "2B", GroupName: "2B", TeacherID: "ana", TeacherName: "Ana", CourseName: "Physics", RoomName: "Lab", Day: 3, StartHour: 10, LengthHours: 1},
		{ID: "4", GroupID: "2B", GroupName: "2B", CourseName: "Art", Day: 4, StartHour: 11, LengthHours: 1},
	}
}

func testSource() *fakeSource {
	return &fakeSource{
		view: schedule.View{
			Entries:          testEntries(),
			TotalAssignments: 4,
			AssignedCount:    3,
			UnassignedCount:  1,
		},
		groups: []schedule.Group{{ID: "1A", Name: "1A"}, {ID: "2B", Name: "2B"}},
	}
}

// loadedModel returns a sized model fed with the source's first fetch.
func loadedModel(t *testing.T, src *fakeSource, opts ...ModelOption) Model {
	t.Helper()

	m := *New(src, config.Default(), opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 60})
	m = updated.(Model)

	msg := m.Init()()
	updated, _ = m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, c := m.Update(msg)
		m = updated.(Model)
		cmd = c
	}
	return m, cmd
}

func TestInitLoadsSchedule(t *testing.T) {
	m := loadedModel(t, testSource())

	if m.loading {
		t.Error("expected loading to finish")
	}
	if got := len(m.state.Filtered()); got != 4 {
		t.Fatalf("filtered = %d, want 4", got)
	}
	if len(m.state.Grid().Placed()) != 4 {
		t.Errorf("placed = %d, want 4", len(m.state.Grid().Placed()))
	}
}

func TestLoadFailureEmptiesView(t *testing.T) {
	src := testSource()
	m := loadedModel(t, src)

	src.err = errors.New("backend down")
	m, cmd := press(t, m, "r")
	if !m.loading || cmd == nil {
		t.Fatal("expected a refresh command")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if len(m.state.Filtered()) != 0 {
		t.Errorf("expected an empty view after a failed fetch, got %d entries", len(m.state.Filtered()))
	}
	if m.err == nil || !strings.Contains(m.statusLine(), "backend down") {
		t.Errorf("expected the error in the status line, got %q", m.statusLine())
	}
}

func TestStaleScopeIgnored(t *testing.T) {
	m := loadedModel(t, testSource())

	updated, _ := m.Update(commands.LoadedMsg{Scope: schedule.RoomScope("Lab")})
	m = updated.(Model)
	if len(m.state.Filtered()) != 4 {
		t.Errorf("a response for another scope must not replace the view")
	}
}

func TestGroupKeysCascade(t *testing.T) {
	m := loadedModel(t, testSource())

	m, _ = press(t, m, "g", "t")
	f := m.state.Filter()
	if f.GroupID != "1A" || f.TeacherID != "ana" {
		t.Fatalf("filter = %+v, want group 1A teacher ana", f)
	}

	m, _ = press(t, m, "g")
	f = m.state.Filter()
	if f.GroupID != "2B" || f.TeacherID != "" {
		t.Errorf("changing the group must clear the teacher, got %+v", f)
	}
	for _, e := range m.state.Filtered() {
		if e.GroupID != "2B" {
			t.Errorf("entry %s leaked through the group filter", e.ID)
		}
	}

	m, _ = press(t, m, "G", "G")
	if m.state.Filter().GroupID != "" {
		t.Errorf("G should cycle back to all groups, got %q", m.state.Filter().GroupID)
	}
}

func TestTeacherKeyNeedsGroup(t *testing.T) {
	m := loadedModel(t, testSource())

	m, _ = press(t, m, "t")
	if m.state.Filter().TeacherID != "" {
		t.Error("teacher filter should stay empty without a group")
	}
	if !strings.Contains(m.statusMsg, "group first") {
		t.Errorf("unexpected status %q", m.statusMsg)
	}
}

func TestClearFilters(t *testing.T) {
	m := loadedModel(t, testSource())

	m, _ = press(t, m, "g", "t", "c")
	if !m.state.Filter().IsEmpty() {
		t.Errorf("expected empty filter, got %+v", m.state.Filter())
	}
	if len(m.state.Filtered()) != 4 {
		t.Errorf("expected every entry back, got %d", len(m.state.Filtered()))
	}
}

func TestCursorStaysInWindow(t *testing.T) {
	m := loadedModel(t, testSource())
	w := m.state.Window()

	m, _ = press(t, m, "k", "k", "h", "h")
	if m.cursor.Hour != w.FirstHour || m.cursor.DayIdx != 0 {
		t.Errorf("cursor escaped the window: %+v", m.cursor)
	}

	for i := 0; i < 20; i++ {
		m, _ = press(t, m, "j", "l")
	}
	if m.cursor.Hour != w.LastHour || m.cursor.DayIdx != len(w.Days)-1 {
		t.Errorf("cursor escaped the window: %+v", m.cursor)
	}
}

func TestViewRendersGrid(t *testing.T) {
	m := loadedModel(t, testSource())

	out := m.View()
	for _, want := range []string{"Monday", "Math", "A-12", "unassigned", "Total: 4 | Assigned: 3 | Unassigned: 1", "all groups / all teachers"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(out, coveredMark) {
		t.Error("expected a covered cell below the two-hour block")
	}
	if got := strings.Count(out, "\n") + 1; got != 60 {
		t.Errorf("view has %d lines, want 60", got)
	}
}

func TestViewRendersList(t *testing.T) {
	m := loadedModel(t, testSource())
	m, _ = press(t, m, "v")

	out := m.View()
	if !strings.Contains(out, "Course") || !strings.Contains(out, "History") {
		t.Errorf("list view missing header or rows")
	}
	if strings.Index(out, "Math") > strings.Index(out, "Physics") {
		t.Error("list must be chronological")
	}
}

func TestCopyCellUnderCursor(t *testing.T) {
	var copied string
	m := loadedModel(t, testSource(), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	// Monday 9:00 is covered by the Math block that starts at 8:00.
	m, _ = press(t, m, "j", "j", "y")
	if !strings.Contains(copied, "Math") {
		t.Errorf("copied %q, want the Math block", copied)
	}

	copied = ""
	m, _ = press(t, m, "k", "k", "y")
	if copied != "" || m.statusMsg != "Nothing to copy" {
		t.Errorf("empty cell should copy nothing, got %q (%s)", copied, m.statusMsg)
	}
}

func TestCopyList(t *testing.T) {
	var copied string
	m := loadedModel(t, testSource(), WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	m, _ = press(t, m, "v", "y")
	if got := strings.Count(copied, "\n") + 1; got != 4 {
		t.Errorf("copied %d lines, want 4", got)
	}
}

func TestPromptSwitchesScope(t *testing.T) {
	src := testSource()
	m := loadedModel(t, src)
	m, _ = press(t, m, "g")

	m, _ = press(t, m, "/")
	if m.mode != ModePrompt {
		t.Fatal("expected prompt mode")
	}
	m.prompt.SetValue("/room Lab")
	m, cmd := press(t, m, "enter")
	if m.mode != ModeNormal || cmd == nil {
		t.Fatal("expected the prompt to close and a fetch to start")
	}
	if m.scope != schedule.RoomScope("Lab") {
		t.Errorf("scope = %v", m.scope)
	}
	if !m.state.Filter().IsEmpty() {
		t.Error("a new scope should clear the filters")
	}

	cmd()
	if last := src.scopes[len(src.scopes)-1]; last != schedule.RoomScope("Lab") {
		t.Errorf("fetched scope %v", last)
	}
}

func TestPromptInvalidCommand(t *testing.T) {
	m := loadedModel(t, testSource())

	m, _ = press(t, m, "/")
	m.prompt.SetValue("/plan tomorrow")
	m, _ = press(t, m, "enter")
	if !strings.Contains(m.statusMsg, "unknown command") {
		t.Errorf("unexpected status %q", m.statusMsg)
	}
}

func TestInsightModal(t *testing.T) {
	m := loadedModel(t, testSource(), WithLLMFactory(func() (llm.Client, error) {
		return fakeLLM{reply: "LOAD: balanced week"}, nil
	}))

	m, cmd := press(t, m, "i")
	if cmd == nil || !m.insightBusy {
		t.Fatal("expected an insight command")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if m.mode != ModeModal || m.modalType != ModalInsight {
		t.Fatalf("expected the insight modal, mode %d modal %d", m.mode, m.modalType)
	}
	if !strings.Contains(m.View(), "balanced week") {
		t.Error("insight text should be rendered")
	}

	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal {
		t.Error("esc should close the modal")
	}
}

func TestInsightFactoryError(t *testing.T) {
	m := loadedModel(t, testSource(), WithLLMFactory(func() (llm.Client, error) {
		return nil, errors.New("unsupported provider")
	}))

	m, cmd := press(t, m, "i")
	if m.insightBusy {
		t.Error("insight should not start")
	}
	if cmd == nil || !strings.Contains(m.statusMsg, "unsupported provider") {
		t.Errorf("unexpected status %q", m.statusMsg)
	}
}

func TestInitialFilterOption(t *testing.T) {
	m := loadedModel(t, testSource(), WithFilter(schedule.FilterContext{GroupID: "2B"}))

	if m.state.Filter().GroupID != "2B" {
		t.Fatalf("filter = %+v", m.state.Filter())
	}
	if len(m.state.Filtered()) != 2 {
		t.Errorf("filtered = %d, want 2", len(m.state.Filtered()))
	}
}

func TestDetailLinesClippedBlock(t *testing.T) {
	last := schedule.DefaultLastHour

	tests := []struct {
		name      string
		length    int
		continues bool
	}{
		{"fits the window", 1, false},
		{"runs past the last hour", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testSource()
			src.view.Entries = append(src.view.Entries, schedule.Entry{
				ID: "5", GroupID: "1A", GroupName: "1A", CourseName: "Lab",
				Day: 5, StartHour: last, LengthHours: tt.length,
			})
			m := loadedModel(t, src)
			m.cursor = Position{DayIdx: 4, Hour: last}

			text := strings.Join(m.detailLines(), "\n")
			if !strings.Contains(text, "Lab") {
				t.Fatalf("detail is missing the Lab block:\n%s", text)
			}
			want := "continues after " + present.HourLabel(last+1)
			if got := strings.Contains(text, want); got != tt.continues {
				t.Errorf("%q shown = %v, want %v:\n%s", want, got, tt.continues, text)
			}
		})
	}
}
