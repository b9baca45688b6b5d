package schedule

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	view      View
	groups    []Group
	viewErr   error
	groupsErr error
	scopes    []Scope
}

func (f *fakeSource) FetchView(_ context.Context, scope Scope) (View, error) {
	f.scopes = append(f.scopes, scope)
	if f.viewErr != nil {
		return View{}, f.viewErr
	}
	return f.view, nil
}

func (f *fakeSource) FetchGroups(_ context.Context) ([]Group, error) {
	if f.groupsErr != nil {
		return nil, f.groupsErr
	}
	return f.groups, nil
}

func TestStoreRefresh(t *testing.T) {
	src := &fakeSource{
		view: View{
			Entries:          sampleEntries(),
			TotalAssignments: 6,
			AssignedCount:    6,
		},
		groups: []Group{{ID: "G1", Name: "1A"}, {ID: "G2", Name: "1B"}},
	}
	s := NewStore()

	if err := s.Refresh(context.Background(), src, GroupScope("G1")); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := len(s.Entries()); got != 6 {
		t.Errorf("entries = %d, want 6", got)
	}
	if got := s.View().TotalAssignments; got != 6 {
		t.Errorf("total = %d, want 6", got)
	}
	if got := s.GroupName("G2"); got != "1B" {
		t.Errorf("GroupName(G2) = %q, want 1B", got)
	}
	if len(src.scopes) != 1 || src.scopes[0] != GroupScope("G1") {
		t.Errorf("scopes = %v, want [group G1]", src.scopes)
	}
}

func TestStoreRefresh_FailureEmptiesStore(t *testing.T) {
	boom := errors.New("connection refused")
	tests := []struct {
		name   string
		src    *fakeSource
		wantOp string
	}{
		{name: "groups", src: &fakeSource{groupsErr: boom}, wantOp: "groups"},
		{name: "view", src: &fakeSource{viewErr: boom}, wantOp: "view"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Set(View{Entries: sampleEntries()}, []Group{{ID: "G1"}})

			err := s.Refresh(context.Background(), tt.src, AllScope())
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error = %v, want *FetchError", err)
			}
			if fetchErr.Op != tt.wantOp {
				t.Errorf("op = %q, want %q", fetchErr.Op, tt.wantOp)
			}
			if !errors.Is(err, boom) {
				t.Error("FetchError should unwrap to the cause")
			}
			if len(s.Entries()) != 0 || len(s.Groups()) != 0 {
				t.Error("store should be empty after a failed refresh")
			}
		})
	}
}

func TestStoreGroupNameFallbacks(t *testing.T) {
	s := NewStore()
	s.Set(View{Entries: []Entry{{GroupID: "g7", GroupName: "2C"}}}, nil)

	if got := s.GroupName("g7"); got != "2C" {
		t.Errorf("GroupName from entries = %q, want 2C", got)
	}
	if got := s.GroupName("missing"); got != "missing" {
		t.Errorf("GroupName fallback = %q, want id", got)
	}
}

func TestStoreEntriesAreCopies(t *testing.T) {
	s := NewStore()
	in := sampleEntries()
	s.Set(View{Entries: in}, nil)

	in[0].CourseName = "changed"
	out := s.Entries()
	if out[0].CourseName == "changed" {
		t.Error("store aliases the slice passed to Set")
	}
	out[1].CourseName = "changed"
	if s.Entries()[1].CourseName == "changed" {
		t.Error("Entries returned the store's own slice")
	}
}

func TestScopeString(t *testing.T) {
	tests := []struct {
		scope Scope
		want  string
	}{
		{AllScope(), "all"},
		{GroupScope("G1"), "group G1"},
		{TeacherScope("t1"), "teacher t1"},
		{RoomScope("Lab 2"), "room Lab 2"},
	}
	for _, tt := range tests {
		if got := tt.scope.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestResolveGroupIDs(t *testing.T) {
	catalog := []Group{{ID: "g_1A", Name: "1A"}, {ID: "g_2B", Name: "2B"}}

	tests := []struct {
		name   string
		entry  Entry
		groups []Group
		wantID string
	}{
		{"name-only entry takes catalog id", Entry{GroupID: "1A", GroupName: "1A"}, catalog, "g_1A"},
		{"known id kept", Entry{GroupID: "g_2B", GroupName: "1A"}, catalog, "g_2B"},
		{"unknown name keeps fallback", Entry{GroupID: "3C", GroupName: "3C"}, catalog, "3C"},
		{"no catalog keeps fallback", Entry{GroupID: "1A", GroupName: "1A"}, nil, "1A"},
		{"missing group stays empty", Entry{}, catalog, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []Entry{tt.entry}
			got := resolveGroupIDs(in, tt.groups)
			if got[0].GroupID != tt.wantID {
				t.Errorf("GroupID = %q, want %q", got[0].GroupID, tt.wantID)
			}
			if in[0].GroupID != tt.entry.GroupID {
				t.Error("input entries must not be modified")
			}
		})
	}
}

func TestGroupsFromEntries(t *testing.T) {
	entries := []Entry{
		{GroupID: "G2", GroupName: "2B"},
		{GroupID: ""},
		{GroupID: "G1", GroupName: "1A"},
		{GroupID: "G2", GroupName: "2B"},
	}
	groups := GroupsFromEntries(entries)
	if len(groups) != 2 || groups[0].ID != "G2" || groups[1].ID != "G1" || groups[1].Name != "1A" {
		t.Errorf("groups = %+v, want G2 then G1", groups)
	}
	if got := GroupsFromEntries(nil); got == nil || len(got) != 0 {
		t.Errorf("GroupsFromEntries(nil) = %#v, want an empty slice", got)
	}
}
