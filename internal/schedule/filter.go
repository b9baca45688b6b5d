package schedule

// FilterContext is the active group/teacher selection. Empty values mean no
// constraint on that axis.
//
// A teacher selection is only meaningful relative to a group, so every group
// change goes through WithGroup, which clears the teacher.
type FilterContext struct {
	GroupID   string
	TeacherID string
}

// WithGroup returns a context selecting groupID with the teacher cleared.
// The teacher is cleared even when groupID equals the current group.
func (f FilterContext) WithGroup(groupID string) FilterContext {
	return FilterContext{GroupID: groupID}
}

// WithTeacher returns a context with the teacher replaced and the group kept.
func (f FilterContext) WithTeacher(teacherID string) FilterContext {
	f.TeacherID = teacherID
	return f
}

// Clear returns the empty context.
func (f FilterContext) Clear() FilterContext {
	return FilterContext{}
}

// IsEmpty reports whether no filter is active.
func (f FilterContext) IsEmpty() bool {
	return f.GroupID == "" && f.TeacherID == ""
}

// Apply filters entries with this context.
func (f FilterContext) Apply(entries []Entry) []Entry {
	return Filter(entries, f.GroupID, f.TeacherID)
}

// Filter returns the entries matching groupID and teacherID, in input order.
// An empty value places no constraint on that axis. A teacher that does not
// teach the group simply yields an empty result. The returned slice never
// aliases the input.
func Filter(entries []Entry, groupID, teacherID string) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if groupID != "" && e.GroupID != groupID {
			continue
		}
		if teacherID != "" && e.TeacherID != teacherID {
			continue
		}
		out = append(out, e)
	}
	return out
}
