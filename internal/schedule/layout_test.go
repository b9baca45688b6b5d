package schedule

import (
	"testing"
)

func block(group, teacher string, day, start, length int) Entry {
	e := Entry{
		GroupID:     group,
		GroupName:   group,
		CourseName:  "Course " + group,
		Day:         day,
		StartHour:   start,
		LengthHours: length,
	}
	if teacher != "" {
		e.TeacherID = teacher + "-id"
		e.TeacherName = teacher
	}
	return e
}

func mustCell(t *testing.T, g *Grid, day, hour int) Cell {
	t.Helper()
	c, ok := g.Cell(day, hour)
	if !ok {
		t.Fatalf("no cell at day %d hour %d", day, hour)
	}
	return c
}

func TestLayout_MultiHourBlock(t *testing.T) {
	g := Layout([]Entry{block("G1", "T1", 1, 9, 2)}, DefaultWindow())

	start := mustCell(t, g, 1, 9)
	if start.Kind() != CellStart {
		t.Fatalf("kind at 9 = %v, want start", start.Kind())
	}
	if len(start.Starts) != 1 || start.Starts[0].Span != 2 {
		t.Fatalf("starts at 9 = %+v, want one block with span 2", start.Starts)
	}

	covered := mustCell(t, g, 1, 10)
	if covered.Kind() != CellCovered {
		t.Errorf("kind at 10 = %v, want covered", covered.Kind())
	}
	if covered.Renderable() {
		t.Error("covered cell should not render")
	}

	empty := mustCell(t, g, 1, 11)
	if empty.Kind() != CellEmpty {
		t.Errorf("kind at 11 = %v, want empty", empty.Kind())
	}
}

func TestLayout_SharedStartCell(t *testing.T) {
	entries := []Entry{
		block("G1", "", 2, 8, 1),
		block("G2", "", 2, 8, 1),
	}
	g := Layout(entries, DefaultWindow())

	c := mustCell(t, g, 2, 8)
	if len(c.Starts) != 2 {
		t.Fatalf("starts = %d, want 2", len(c.Starts))
	}
	if c.Starts[0].Entry.GroupID != "G1" || c.Starts[1].Entry.GroupID != "G2" {
		t.Errorf("start order = %s,%s, want G1,G2", c.Starts[0].Entry.GroupID, c.Starts[1].Entry.GroupID)
	}
	if c.Covered {
		t.Error("independent starts must not cover each other")
	}
	next := mustCell(t, g, 2, 9)
	if next.Kind() != CellEmpty {
		t.Errorf("kind at 9 = %v, want empty", next.Kind())
	}
}

func TestLayout_ClipsAtLastHour(t *testing.T) {
	g := Layout([]Entry{block("G1", "", 3, 14, 2)}, DefaultWindow())

	c := mustCell(t, g, 3, 14)
	if len(c.Starts) != 1 {
		t.Fatalf("starts = %d, want 1", len(c.Starts))
	}
	if c.Starts[0].Span != 1 {
		t.Errorf("span = %d, want 1", c.Starts[0].Span)
	}
	if _, ok := g.Cell(3, 15); ok {
		t.Error("expected no cell beyond the last hour")
	}
	if got := g.Placed(); len(got) != 1 {
		t.Errorf("placed = %v, want one entry", got)
	}
}

func TestLayout_StartInsideCoveredCell(t *testing.T) {
	entries := []Entry{
		block("G1", "", 1, 8, 3), // covers 9 and 10
		block("G2", "", 1, 9, 1),
	}
	g := Layout(entries, DefaultWindow())

	c := mustCell(t, g, 1, 9)
	if !c.Covered {
		t.Error("expected hour 9 to be covered by G1")
	}
	if c.Kind() != CellStart {
		t.Errorf("kind = %v, want start to take precedence", c.Kind())
	}
	if len(c.Starts) != 1 || c.Starts[0].Entry.GroupID != "G2" {
		t.Errorf("starts = %+v, want G2", c.Starts)
	}
	if !c.Renderable() {
		t.Error("a start cell must render even when covered")
	}

	blocks := g.BlocksAt(1, 9)
	if len(blocks) != 2 || blocks[0].Entry.GroupID != "G1" || blocks[1].Entry.GroupID != "G2" {
		t.Errorf("BlocksAt = %+v, want G1 then G2", blocks)
	}
}

func TestLayout_SkipsOutOfRange(t *testing.T) {
	entries := []Entry{
		block("G1", "", 6, 9, 1),  // Saturday, not visible
		block("G1", "", 1, 6, 2),  // starts before the window
		block("G1", "", 1, 15, 1), // starts after the window
		block("G1", "", 1, 9, 0),  // zero length
		block("G1", "", 0, 9, 1),  // invalid day
		block("G1", "", 1, 9, 1),
	}
	g := Layout(entries, DefaultWindow())

	if got, want := g.Skipped(), []int{0, 1, 2, 3, 4}; !equalInts(got, want) {
		t.Errorf("skipped = %v, want %v", got, want)
	}
	if got, want := g.Placed(), []int{5}; !equalInts(got, want) {
		t.Errorf("placed = %v, want %v", got, want)
	}
	if c := mustCell(t, g, 1, 7); c.Kind() != CellEmpty {
		t.Errorf("an entry starting before the window must not cover it, got %v", c.Kind())
	}
}

func TestLayout_CoverageCompleteness(t *testing.T) {
	entries := []Entry{
		block("G1", "", 1, 7, 3),
		block("G2", "", 1, 8, 2),
		block("G3", "", 2, 13, 4),
		block("G4", "", 2, 12, 1),
		block("G5", "", 5, 10, 5),
		block("G6", "", 5, 14, 1),
	}
	w := DefaultWindow()
	g := Layout(entries, w)

	for _, i := range g.Placed() {
		p, ok := g.Placement(i)
		if !ok {
			t.Fatalf("missing placement for %d", i)
		}
		e := entries[i]
		wantSpan := min(e.LengthHours, w.LastHour-e.StartHour+1)
		if p.Span != wantSpan {
			t.Errorf("entry %d span = %d, want %d", i, p.Span, wantSpan)
		}

		for _, d := range w.Days {
			for _, h := range w.Hours() {
				c := mustCell(t, g, d, h)
				starts := containsPlacement(c.Starts, i)
				covers := containsInt(c.CoveredBy, i)
				inRange := d == e.Day && h >= e.StartHour && h < e.StartHour+p.Span

				switch {
				case inRange && h == e.StartHour && !starts:
					t.Errorf("entry %d missing start at day %d hour %d", i, d, h)
				case inRange && h > e.StartHour && !covers:
					t.Errorf("entry %d missing coverage at day %d hour %d", i, d, h)
				case !inRange && (starts || covers):
					t.Errorf("entry %d attributed outside its range at day %d hour %d", i, d, h)
				case h == e.StartHour && covers:
					t.Errorf("entry %d covers its own start cell", i)
				}
			}
		}

		if got := g.HoursOf(i); len(got) != p.Span {
			t.Errorf("HoursOf(%d) = %v, want %d hours", i, got, p.Span)
		}
	}
}

func TestLayout_Rows(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []int
	}{
		{"empty", nil, nil},
		{
			name: "spans leave covered rows out",
			entries: []Entry{
				block("G1", "", 1, 8, 3),
				block("G2", "", 3, 12, 1),
			},
			want: []int{8, 12},
		},
		{
			name: "starts on several days share a row",
			entries: []Entry{
				block("G1", "", 2, 9, 1),
				block("G2", "", 4, 9, 2),
				block("G3", "", 5, 7, 1),
			},
			want: []int{7, 9},
		},
		{
			name: "skipped entries add no rows",
			entries: []Entry{
				block("G1", "", 6, 9, 1),
				block("G2", "", 1, 20, 1),
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Layout(tt.entries, DefaultWindow())
			got := g.Rows()
			if !equalInts(got, tt.want) {
				t.Fatalf("Rows() = %v, want %v", got, tt.want)
			}
			for _, h := range got {
				found := false
				for _, d := range g.Days() {
					if c := mustCell(t, g, d, h); c.Kind() == CellStart {
						found = true
					}
				}
				if !found {
					t.Errorf("row %d holds no start", h)
				}
			}
		})
	}
}

func TestLayout_Idempotent(t *testing.T) {
	entries := []Entry{
		block("G1", "T1", 1, 9, 2),
		block("G1", "T2", 1, 9, 1),
		block("G2", "T1", 3, 13, 3),
		block("G2", "", 4, 7, 1),
	}
	w := DefaultWindow()

	a := Layout(Filter(entries, "G1", ""), w)
	b := Layout(Filter(entries, "G1", ""), w)
	if !a.Equal(b) {
		t.Error("layout of identical input differs")
	}

	c := Layout(Filter(entries, "G2", ""), w)
	if a.Equal(c) {
		t.Error("layouts of different input should differ")
	}
}

func TestLayout_DoesNotAliasInput(t *testing.T) {
	entries := []Entry{block("G1", "T1", 1, 9, 1)}
	g := Layout(entries, DefaultWindow())

	entries[0].CourseName = "changed"
	c := mustCell(t, g, 1, 9)
	if c.Starts[0].Entry.CourseName == "changed" {
		t.Error("grid shares entry storage with its input")
	}

	c.Starts[0].Span = 99
	again := mustCell(t, g, 1, 9)
	if again.Starts[0].Span == 99 {
		t.Error("Cell returned a mutable view of the grid")
	}
}

func TestLayout_CustomWindow(t *testing.T) {
	w, err := NewWindow([]int{3, 1}, 8, 10)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	g := Layout([]Entry{block("G1", "", 3, 9, 4), block("G1", "", 2, 9, 1)}, w)

	if got := g.Days(); !equalInts(got, []int{3, 1}) {
		t.Errorf("days = %v, want [3 1]", got)
	}
	c := mustCell(t, g, 3, 9)
	if c.Starts[0].Span != 2 {
		t.Errorf("span = %d, want 2", c.Starts[0].Span)
	}
	if got := g.Skipped(); !equalInts(got, []int{1}) {
		t.Errorf("skipped = %v, want [1]", got)
	}
}

func TestCellKindString(t *testing.T) {
	tests := []struct {
		kind CellKind
		want string
	}{
		{CellEmpty, "empty"},
		{CellStart, "start"},
		{CellCovered, "covered"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func containsPlacement(ps []Placement, index int) bool {
	for _, p := range ps {
		if p.Index == index {
			return true
		}
	}
	return false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
