package view

import (
	"github.com/javiermolinar/horario/internal/present"
)

// HourColumnLabel is the title of the first grid column.
const HourColumnLabel = "Hour"

// HeaderLabels builds the grid column labels and marks the cursor's column
// with an index into the returned slice.
func HeaderLabels(days []int, cursorDay int) ([]string, int) {
	labels := make([]string, 0, len(days)+1)
	labels = append(labels, HourColumnLabel)

	active := -1
	for i, day := range days {
		label := present.DayName(day)
		if day == cursorDay {
			label = "*" + label + "*"
			active = i + 1
		}
		labels = append(labels, label)
	}
	return labels, active
}
