package schedule

import (
	"go.uber.org/zap"
)

// ViewState is the per-view controller: it owns the store, the filter
// context and the structures derived from them. Every mutation triggers a
// full recomputation; nothing is updated incrementally.
type ViewState struct {
	store  *Store
	filter FilterContext
	window Window
	logger *zap.Logger

	filtered []Entry
	teachers []Teacher
	grid     *Grid
}

// StateOption configures a ViewState.
type StateOption func(*ViewState)

// WithLogger sets the logger used to report data-quality anomalies.
func WithLogger(l *zap.Logger) StateOption {
	return func(s *ViewState) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFilter sets the initial filter context.
func WithFilter(f FilterContext) StateOption {
	return func(s *ViewState) {
		s.filter = f
	}
}

// NewViewState creates a view over store and computes the derived state.
func NewViewState(store *Store, w Window, opts ...StateOption) *ViewState {
	if store == nil {
		store = NewStore()
	}
	s := &ViewState{
		store:  store,
		window: w,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Recompute()
	return s
}

// Recompute rebuilds the filtered entries, the teacher list and the grid.
// It is idempotent: the same store and filter always give the same result.
func (s *ViewState) Recompute() {
	entries := s.store.Entries()
	s.filtered = s.filter.Apply(entries)
	s.teachers = TeachersForGroup(entries, s.filter.GroupID)
	s.grid = Layout(s.filtered, s.window)

	for _, i := range s.grid.Skipped() {
		e := s.filtered[i]
		s.logger.Warn("entry outside visible grid",
			zap.String("id", e.ID),
			zap.String("group", e.GroupID),
			zap.String("course", e.CourseName),
			zap.Int("day", e.Day),
			zap.Int("start_hour", e.StartHour),
			zap.Int("length_hours", e.LengthHours),
		)
	}
	for _, e := range s.filtered {
		if err := e.Validate(); err != nil {
			s.logger.Warn("invalid entry", zap.String("id", e.ID), zap.Error(err))
		}
	}
}

// Store returns the underlying entry store.
func (s *ViewState) Store() *Store {
	return s.store
}

// Window returns the visible window.
func (s *ViewState) Window() Window {
	return s.window
}

// Filter returns the active filter context.
func (s *ViewState) Filter() FilterContext {
	return s.filter
}

// SetGroup selects a group and clears the teacher in the same transition.
func (s *ViewState) SetGroup(groupID string) {
	s.logger.Debug("group filter changed",
		zap.String("from", s.filter.GroupID),
		zap.String("to", groupID),
	)
	s.filter = s.filter.WithGroup(groupID)
	s.Recompute()
}

// SetTeacher selects a teacher, keeping the group.
func (s *ViewState) SetTeacher(teacherID string) {
	s.logger.Debug("teacher filter changed",
		zap.String("from", s.filter.TeacherID),
		zap.String("to", teacherID),
	)
	s.filter = s.filter.WithTeacher(teacherID)
	s.Recompute()
}

// ClearFilters removes both filters.
func (s *ViewState) ClearFilters() {
	s.filter = s.filter.Clear()
	s.Recompute()
}

// CycleGroup steps through "all groups" followed by the group options.
func (s *ViewState) CycleGroup(step int) {
	groups := s.GroupOptions()
	ids := make([]string, 0, len(groups)+1)
	ids = append(ids, "")
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	s.SetGroup(cycle(ids, s.filter.GroupID, step))
}

// CycleTeacher steps through "all teachers" followed by the teachers of the
// selected group. Without a group there is nothing to cycle.
func (s *ViewState) CycleTeacher(step int) {
	if s.filter.GroupID == "" {
		return
	}
	ids := make([]string, 0, len(s.teachers)+1)
	ids = append(ids, "")
	for _, t := range s.teachers {
		ids = append(ids, t.ID)
	}
	s.SetTeacher(cycle(ids, s.filter.TeacherID, step))
}

func cycle(ids []string, current string, step int) string {
	idx := 0
	for i, id := range ids {
		if id == current {
			idx = i
			break
		}
	}
	n := len(ids)
	return ids[((idx+step)%n+n)%n]
}

// GroupOptions returns the groups offered by the group filter: the catalog
// when one was fetched, otherwise the groups found in the entries in order
// of first appearance.
func (s *ViewState) GroupOptions() []Group {
	if groups := s.store.Groups(); len(groups) > 0 {
		return groups
	}
	return GroupsFromEntries(s.store.Entries())
}

// Filtered returns the filtered entries in input order.
func (s *ViewState) Filtered() []Entry {
	return append([]Entry(nil), s.filtered...)
}

// Teachers returns the teachers of the selected group.
func (s *ViewState) Teachers() []Teacher {
	return append([]Teacher(nil), s.teachers...)
}

// TeacherName resolves a teacher id among the current teacher options.
func (s *ViewState) TeacherName(id string) string {
	if i := IndexOfTeacher(s.teachers, id); i >= 0 {
		return s.teachers[i].Name
	}
	return id
}

// Grid returns the placement matrix of the filtered entries.
func (s *ViewState) Grid() *Grid {
	return s.grid
}

// List returns the filtered entries in chronological order.
func (s *ViewState) List() []Entry {
	return Chronological(s.filtered)
}
