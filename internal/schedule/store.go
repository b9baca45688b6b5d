package schedule

import (
	"context"
	"fmt"
)

// ScopeKind selects a server-side pre-filtered variant of the schedule.
type ScopeKind int

const (
	ScopeAll ScopeKind = iota
	ScopeGroup
	ScopeTeacher
	ScopeRoom
)

// Scope narrows a fetch to one group, teacher or room.
type Scope struct {
	Kind  ScopeKind
	Value string
}

// AllScope returns the unscoped fetch.
func AllScope() Scope { return Scope{Kind: ScopeAll} }

// GroupScope fetches a single group's schedule.
func GroupScope(id string) Scope { return Scope{Kind: ScopeGroup, Value: id} }

// TeacherScope fetches a single teacher's schedule.
func TeacherScope(id string) Scope { return Scope{Kind: ScopeTeacher, Value: id} }

// RoomScope fetches a single room's schedule.
func RoomScope(name string) Scope { return Scope{Kind: ScopeRoom, Value: name} }

// String describes the scope for logs and status lines.
func (s Scope) String() string {
	switch s.Kind {
	case ScopeGroup:
		return "group " + s.Value
	case ScopeTeacher:
		return "teacher " + s.Value
	case ScopeRoom:
		return "room " + s.Value
	default:
		return "all"
	}
}

// Source provides schedule data. It is implemented by the backend client and
// by the local snapshot cache.
type Source interface {
	// FetchView returns the schedule, optionally pre-filtered by scope.
	FetchView(ctx context.Context, scope Scope) (View, error)

	// FetchGroups returns the group catalog.
	FetchGroups(ctx context.Context) ([]Group, error)
}

// FetchError reports a failed fetch as a single descriptive value.
type FetchError struct {
	Op  string // "groups" or "view"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Store holds the most recently fetched view and the group catalog.
// It carries no logic beyond replacing its contents on refresh.
type Store struct {
	view   View
	groups []Group
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the store contents. Entries whose group id is unknown to the
// catalog are matched to a catalog group by name.
func (s *Store) Set(view View, groups []Group) {
	s.view = View{
		Entries:          resolveGroupIDs(view.Entries, groups),
		TotalAssignments: view.TotalAssignments,
		AssignedCount:    view.AssignedCount,
		UnassignedCount:  view.UnassignedCount,
	}
	s.groups = append([]Group(nil), groups...)
}

// resolveGroupIDs returns a copy of entries with group ids taken from the
// catalog. Backends that only send group names leave the name in GroupID;
// such entries get the id of the catalog group with that name. Entries that
// match no catalog group keep their id.
func resolveGroupIDs(entries []Entry, groups []Group) []Entry {
	out := append([]Entry(nil), entries...)
	if len(groups) == 0 {
		return out
	}

	known := make(map[string]struct{}, len(groups))
	byName := make(map[string]string, len(groups))
	for _, g := range groups {
		known[g.ID] = struct{}{}
		if _, ok := byName[g.Name]; !ok && g.Name != "" {
			byName[g.Name] = g.ID
		}
	}

	for i, e := range out {
		if _, ok := known[e.GroupID]; ok {
			continue
		}
		name := e.GroupName
		if name == "" {
			name = e.GroupID
		}
		if id, ok := byName[name]; ok {
			out[i].GroupID = id
		}
	}
	return out
}

// GroupsFromEntries lists the groups found in entries, in order of first
// appearance. Entries without a group are ignored.
func GroupsFromEntries(entries []Entry) []Group {
	groups := make([]Group, 0)
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.GroupID == "" {
			continue
		}
		if _, ok := seen[e.GroupID]; ok {
			continue
		}
		seen[e.GroupID] = struct{}{}
		groups = append(groups, Group{ID: e.GroupID, Name: e.GroupName})
	}
	return groups
}

// Reset empties the store.
func (s *Store) Reset() {
	s.view = View{}
	s.groups = nil
}

// Refresh fetches the group catalog and the view from src. On failure the
// store is emptied and a *FetchError is returned, so the derived state
// degrades to an empty schedule instead of a stale one.
func (s *Store) Refresh(ctx context.Context, src Source, scope Scope) error {
	groups, err := src.FetchGroups(ctx)
	if err != nil {
		s.Reset()
		return &FetchError{Op: "groups", Err: err}
	}
	view, err := src.FetchView(ctx, scope)
	if err != nil {
		s.Reset()
		return &FetchError{Op: "view", Err: err}
	}
	s.Set(view, groups)
	return nil
}

// View returns the stored view. Its entry slice is a copy.
func (s *Store) View() View {
	v := s.view
	v.Entries = s.Entries()
	return v
}

// Entries returns a copy of the stored entries.
func (s *Store) Entries() []Entry {
	return append([]Entry(nil), s.view.Entries...)
}

// Groups returns a copy of the group catalog.
func (s *Store) Groups() []Group {
	return append([]Group(nil), s.groups...)
}

// GroupName resolves a group id to its display name, falling back to the
// names carried by the entries and finally to the id itself.
func (s *Store) GroupName(id string) string {
	for _, g := range s.groups {
		if g.ID == id {
			return g.Name
		}
	}
	for _, e := range s.view.Entries {
		if e.GroupID == id && e.GroupName != "" {
			return e.GroupName
		}
	}
	return id
}
