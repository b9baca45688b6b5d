package schedule

import "sort"

// Chronological returns entries ordered by day, then start hour. Entries at
// the same time keep their input order. The input is not modified.
func Chronological(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].StartHour < out[j].StartHour
	})
	return out
}
