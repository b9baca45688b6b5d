package schedule

// TeachersForGroup returns the distinct teachers of groupID in order of first
// appearance in entries. The name kept is the one seen first. Entries without
// a teacher are ignored. An empty groupID yields an empty list.
func TeachersForGroup(entries []Entry, groupID string) []Teacher {
	if groupID == "" {
		return []Teacher{}
	}

	teachers := []Teacher{}
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.GroupID != groupID || e.TeacherID == "" {
			continue
		}
		if _, ok := seen[e.TeacherID]; ok {
			continue
		}
		seen[e.TeacherID] = struct{}{}
		teachers = append(teachers, Teacher{ID: e.TeacherID, Name: e.TeacherName})
	}
	return teachers
}

// IndexOfTeacher returns the position of id in teachers, or -1.
func IndexOfTeacher(teachers []Teacher, id string) int {
	for i, t := range teachers {
		if t.ID == id {
			return i
		}
	}
	return -1
}
