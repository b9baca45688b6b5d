package schedule

import "testing"

func TestChronological(t *testing.T) {
	entries := []Entry{
		block("A", "", 2, 9, 1),
		block("B", "", 1, 10, 1),
		block("C", "", 1, 8, 2),
		block("D", "", 1, 10, 1),
	}

	got := Chronological(entries)
	want := []string{"C", "B", "D", "A"}
	for i, g := range want {
		if got[i].GroupID != g {
			t.Errorf("position %d = %s, want %s", i, got[i].GroupID, g)
		}
	}
	if entries[0].GroupID != "A" {
		t.Error("Chronological modified its input")
	}
}
