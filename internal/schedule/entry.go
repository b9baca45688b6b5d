// Package schedule defines the schedule domain types and the grid layout and
// filtering engine for horario.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrMissingGroup  = errors.New("entry has no group id")
	ErrInvalidLength = errors.New("entry length must be at least one hour")
	ErrInvalidDay    = errors.New("entry day must be between 1 and 7")
)

// Entry is one scheduled block: a course for one group, on one day,
// covering one or more contiguous hours.
type Entry struct {
	ID          string `json:"id,omitempty"`
	GroupID     string `json:"groupId"`
	GroupName   string `json:"groupName"`
	TeacherID   string `json:"teacherId,omitempty"`   // empty means unassigned
	TeacherName string `json:"teacherName,omitempty"` // empty means unassigned
	CourseName  string `json:"courseName"`
	RoomName    string `json:"roomName,omitempty"` // empty means unassigned
	Day         int    `json:"dayOfWeek"`          // 1=Monday .. 5=Friday
	StartHour   int    `json:"startHour"`
	LengthHours int    `json:"lengthHours"`
	Pinned      bool   `json:"pinned"`
}

// EndHour returns the hour at which the block ends (exclusive).
func (e Entry) EndHour() int {
	return e.StartHour + e.LengthHours
}

// HasTeacher reports whether a teacher is assigned.
func (e Entry) HasTeacher() bool {
	return e.TeacherID != ""
}

// HasRoom reports whether a room is assigned.
func (e Entry) HasRoom() bool {
	return e.RoomName != ""
}

// Validate checks the fields the layout relies on.
// It never runs inside Layout; callers use it to report data-quality issues.
func (e Entry) Validate() error {
	if e.GroupID == "" {
		return ErrMissingGroup
	}
	if e.LengthHours < 1 {
		return ErrInvalidLength
	}
	if e.Day < 1 || e.Day > 7 {
		return ErrInvalidDay
	}
	return nil
}

// UnmarshalJSON decodes an entry, tolerating the backend revisions that
// only send names. A missing id falls back to the matching name; Store.Set
// later swaps a group name for the catalog id.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type rawEntry Entry
	var raw struct {
		rawEntry
		TeacherName *string `json:"teacherName"`
		RoomName    *string `json:"roomName"`
		Pinned      *bool   `json:"pinned"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Entry(raw.rawEntry)
	if raw.TeacherName != nil {
		e.TeacherName = *raw.TeacherName
	}
	if raw.RoomName != nil {
		e.RoomName = *raw.RoomName
	}
	if raw.Pinned != nil {
		e.Pinned = *raw.Pinned
	}
	if e.GroupID == "" {
		e.GroupID = e.GroupName
	}
	if e.TeacherID == "" {
		e.TeacherID = e.TeacherName
	}
	return nil
}

// View is a fetched schedule: the entries plus counters computed upstream.
type View struct {
	Entries          []Entry `json:"entries"`
	TotalAssignments int     `json:"totalAssignments"`
	AssignedCount    int     `json:"assignedCount"`
	UnassignedCount  int     `json:"unassignedCount"`
}

// Group is an element of the group catalog.
type Group struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	PreferredRoomName string `json:"preferredRoomName,omitempty"`
}

// Teacher is an element of the ordered teacher list.
type Teacher struct {
	ID   string
	Name string
}

// UnmarshalJSON decodes a group, accepting numeric ids.
func (g *Group) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                json.RawMessage `json:"id"`
		Name              string          `json:"name"`
		PreferredRoomName *string         `json:"preferredRoomName"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*g = Group{Name: raw.Name}
	if raw.PreferredRoomName != nil {
		g.PreferredRoomName = *raw.PreferredRoomName
	}
	if len(raw.ID) > 0 && string(raw.ID) != "null" {
		var id string
		if err := json.Unmarshal(raw.ID, &id); err != nil {
			var n json.Number
			if err := json.Unmarshal(raw.ID, &n); err != nil {
				return fmt.Errorf("group id: %w", err)
			}
			id = n.String()
		}
		g.ID = id
	}
	if g.ID == "" {
		g.ID = g.Name
	}
	return nil
}
