package schedule

import "fmt"

// Default visible window: Monday to Friday, 7:00 to 14:00.
const (
	DefaultFirstHour = 7
	DefaultLastHour  = 14
)

// Window is the visible part of the week: an ordered set of days and an
// inclusive hour range.
type Window struct {
	Days      []int
	FirstHour int
	LastHour  int
}

// DefaultWindow returns the Monday..Friday, 7..14 window.
func DefaultWindow() Window {
	return Window{
		Days:      []int{1, 2, 3, 4, 5},
		FirstHour: DefaultFirstHour,
		LastHour:  DefaultLastHour,
	}
}

// NewWindow builds a window, rejecting an empty day set or an inverted range.
func NewWindow(days []int, firstHour, lastHour int) (Window, error) {
	if len(days) == 0 {
		return Window{}, fmt.Errorf("window needs at least one day")
	}
	if firstHour > lastHour {
		return Window{}, fmt.Errorf("first hour %d is after last hour %d", firstHour, lastHour)
	}
	d := make([]int, len(days))
	copy(d, days)
	return Window{Days: d, FirstHour: firstHour, LastHour: lastHour}, nil
}

// Hours returns the visible hours in ascending order.
func (w Window) Hours() []int {
	if w.LastHour < w.FirstHour {
		return nil
	}
	hours := make([]int, 0, w.LastHour-w.FirstHour+1)
	for h := w.FirstHour; h <= w.LastHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// NumHours returns the number of visible hour rows.
func (w Window) NumHours() int {
	if w.LastHour < w.FirstHour {
		return 0
	}
	return w.LastHour - w.FirstHour + 1
}

// ContainsDay reports whether day is one of the visible days.
func (w Window) ContainsDay(day int) bool {
	return w.dayIndex(day) >= 0
}

// ContainsHour reports whether hour lies in the visible range.
func (w Window) ContainsHour(hour int) bool {
	return hour >= w.FirstHour && hour <= w.LastHour
}

func (w Window) dayIndex(day int) int {
	for i, d := range w.Days {
		if d == day {
			return i
		}
	}
	return -1
}
