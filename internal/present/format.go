// Package present turns schedule entries and grid cells into display strings.
package present

import (
	"fmt"
	"strconv"

	"github.com/javiermolinar/horario/internal/schedule"
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Placeholders for unassigned fields.
const (
	NoTeacher = "unassigned"
	NoRoom    = "no room"
	PinMark   = "📌"
)

// DayName returns the full weekday name for day (1=Monday).
func DayName(day int) string {
	if day < 1 || day > len(dayNames) {
		return "Day " + strconv.Itoa(day)
	}
	return dayNames[day-1]
}

// DayShortName returns a three-letter weekday name for day (1=Monday).
func DayShortName(day int) string {
	if day < 1 || day > len(dayNames) {
		return "D" + strconv.Itoa(day)
	}
	return dayNames[day-1][:3]
}

// HourLabel formats an hour as "9:00".
func HourLabel(hour int) string {
	return strconv.Itoa(hour) + ":00"
}

// TimeRange formats the hours of an entry as "9:00 - 11:00 (2h)".
func TimeRange(e schedule.Entry) string {
	return fmt.Sprintf("%s - %s (%dh)", HourLabel(e.StartHour), HourLabel(e.EndHour()), e.LengthHours)
}

// TeacherLabel returns the teacher name or the unassigned placeholder.
func TeacherLabel(e schedule.Entry) string {
	if e.TeacherName != "" {
		return e.TeacherName
	}
	if e.TeacherID != "" {
		return e.TeacherID
	}
	return NoTeacher
}

// RoomLabel returns the room name or the unassigned placeholder.
func RoomLabel(e schedule.Entry) string {
	if e.RoomName == "" {
		return NoRoom
	}
	return e.RoomName
}

// CellLines returns the lines shown for a block at its start cell.
func CellLines(p schedule.Placement) []string {
	e := p.Entry
	lines := []string{e.CourseName, e.GroupName, TeacherLabel(e), RoomLabel(e)}
	if e.Pinned {
		lines = append(lines, PinMark+" PINNED")
	}
	return lines
}

// CellSummary returns a one-line description of a block.
func CellSummary(p schedule.Placement) string {
	e := p.Entry
	s := fmt.Sprintf("%s · %s · %s · %s", e.CourseName, e.GroupName, TeacherLabel(e), RoomLabel(e))
	if e.Pinned {
		s += " " + PinMark
	}
	return s
}

// ListHeader holds the column titles of the list projection.
var ListHeader = []string{"Day", "Time", "Course", "Group", "Teacher", "Room", "Pinned"}

// ListRow returns the columns of an entry in the list projection.
func ListRow(e schedule.Entry) []string {
	pinned := ""
	if e.Pinned {
		pinned = PinMark
	}
	return []string{
		DayName(e.Day),
		TimeRange(e),
		e.CourseName,
		e.GroupName,
		TeacherLabel(e),
		RoomLabel(e),
		pinned,
	}
}

// Totals formats the upstream counters of a view.
func Totals(v schedule.View) string {
	return fmt.Sprintf("Total: %d | Assigned: %d | Unassigned: %d",
		v.TotalAssignments, v.AssignedCount, v.UnassignedCount)
}

// Reconcile compares the number of placed blocks with the upstream total.
// It returns an empty string when they agree or when the view is filtered,
// since a filtered grid cannot be compared with the global total.
func Reconcile(v schedule.View, g *schedule.Grid, filtered bool) string {
	if g == nil || filtered {
		return ""
	}
	placed := len(g.Placed())
	skipped := len(g.Skipped())
	switch {
	case skipped > 0:
		return fmt.Sprintf("%d of %d blocks outside the visible grid", skipped, placed+skipped)
	case v.TotalAssignments > 0 && placed != v.TotalAssignments:
		return fmt.Sprintf("showing %d blocks, backend reports %d", placed, v.TotalAssignments)
	default:
		return ""
	}
}

// FilterLabel describes the active filter, resolving ids to names.
func FilterLabel(f schedule.FilterContext, groupName, teacherName string) string {
	group := "all groups"
	if f.GroupID != "" {
		group = groupName
	}
	teacher := "all teachers"
	if f.TeacherID != "" {
		teacher = teacherName
	}
	return group + " / " + teacher
}
