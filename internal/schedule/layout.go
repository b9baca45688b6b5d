package schedule

import "reflect"

// CellKind classifies a grid cell for rendering.
type CellKind int

const (
	CellEmpty   CellKind = iota
	CellStart            // one or more blocks begin here
	CellCovered          // absorbed by a block that began earlier the same day
)

// String returns a short name for the kind.
func (k CellKind) String() string {
	switch k {
	case CellStart:
		return "start"
	case CellCovered:
		return "covered"
	default:
		return "empty"
	}
}

// Placement is a block rendered at its start cell.
type Placement struct {
	Entry Entry
	Index int // position of the entry in the layout input
	Span  int // rows absorbed, clipped to the window
}

// Cell is the content of one (day, hour) position.
// Starts and Covered can both be set: a block may begin in an hour that an
// earlier block still covers. Starts win for rendering.
type Cell struct {
	Day       int
	Hour      int
	Starts    []Placement
	Covered   bool
	CoveredBy []int // input indexes of the covering blocks
}

// Kind returns how the cell renders.
func (c Cell) Kind() CellKind {
	switch {
	case len(c.Starts) > 0:
		return CellStart
	case c.Covered:
		return CellCovered
	default:
		return CellEmpty
	}
}

// Renderable reports whether the cell is emitted as its own grid cell in a
// row-spanning layout. Covered cells are absorbed by the block above them.
func (c Cell) Renderable() bool {
	return c.Kind() != CellCovered
}

// Grid is the day × hour placement matrix produced by Layout.
// It is rebuilt on every pass and never mutated afterwards.
type Grid struct {
	window  Window
	cells   []Cell // len = len(window.Days) * window.NumHours(), day-major
	placed  []int
	skipped []int
	byIndex map[int]Placement
}

// Layout places entries onto the window.
//
// Each entry renders once, at its (day, startHour) cell, with a span clipped
// to the last visible hour. The following hours of the span are recorded in a
// coverage set. Entries whose day is not visible, whose start hour is outside
// the window, or whose length is below one hour are skipped and reported by
// Skipped. Entries sharing a start cell are all kept, in input order.
func Layout(entries []Entry, w Window) *Grid {
	g := newGrid(w)
	for i, e := range entries {
		dayIdx := w.dayIndex(e.Day)
		if dayIdx < 0 || !w.ContainsHour(e.StartHour) || e.LengthHours < 1 {
			g.skipped = append(g.skipped, i)
			continue
		}

		span := min(e.LengthHours, w.LastHour-e.StartHour+1)
		p := Placement{Entry: e, Index: i, Span: span}

		start := g.cellIndex(dayIdx, e.StartHour)
		g.cells[start].Starts = append(g.cells[start].Starts, p)
		for h := e.StartHour + 1; h < e.StartHour+span; h++ {
			c := &g.cells[g.cellIndex(dayIdx, h)]
			c.Covered = true
			c.CoveredBy = append(c.CoveredBy, i)
		}

		g.placed = append(g.placed, i)
		g.byIndex[i] = p
	}
	return g
}

func newGrid(w Window) *Grid {
	days := make([]int, len(w.Days))
	copy(days, w.Days)
	w.Days = days

	g := &Grid{
		window:  w,
		cells:   make([]Cell, len(w.Days)*w.NumHours()),
		byIndex: make(map[int]Placement),
	}
	for di, d := range w.Days {
		for h := w.FirstHour; h <= w.LastHour; h++ {
			c := &g.cells[g.cellIndex(di, h)]
			c.Day = d
			c.Hour = h
		}
	}
	return g
}

// cellIndex calculates the flat index for a day position and an hour.
func (g *Grid) cellIndex(dayIdx, hour int) int {
	return dayIdx*g.window.NumHours() + (hour - g.window.FirstHour)
}

// Window returns the window the grid was laid out on.
func (g *Grid) Window() Window {
	return g.window
}

// Days returns the visible days in order.
func (g *Grid) Days() []int {
	days := make([]int, len(g.window.Days))
	copy(days, g.window.Days)
	return days
}

// Hours returns the visible hours in order.
func (g *Grid) Hours() []int {
	return g.window.Hours()
}

// Cell returns the cell at (day, hour). The boolean is false outside the
// window, where no cell exists.
func (g *Grid) Cell(day, hour int) (Cell, bool) {
	dayIdx := g.window.dayIndex(day)
	if dayIdx < 0 || !g.window.ContainsHour(hour) {
		return Cell{}, false
	}
	c := g.cells[g.cellIndex(dayIdx, hour)]
	c.Starts = append([]Placement(nil), c.Starts...)
	c.CoveredBy = append([]int(nil), c.CoveredBy...)
	return c, true
}

// Rows returns the visible hours in which at least one block starts on some
// day. Renderers that let spans run across rows use it to drop dead rows.
func (g *Grid) Rows() []int {
	var rows []int
	for _, h := range g.window.Hours() {
		for di := range g.window.Days {
			if len(g.cells[g.cellIndex(di, h)].Starts) > 0 {
				rows = append(rows, h)
				break
			}
		}
	}
	return rows
}

// Placed returns the input indexes of the entries placed on the grid.
func (g *Grid) Placed() []int {
	return append([]int(nil), g.placed...)
}

// Skipped returns the input indexes of the entries left out of the grid.
func (g *Grid) Skipped() []int {
	return append([]int(nil), g.skipped...)
}

// Placement returns the placement of the entry at input index i.
func (g *Grid) Placement(i int) (Placement, bool) {
	p, ok := g.byIndex[i]
	return p, ok
}

// HoursOf returns the hours attributed to the entry at input index i: its
// start hour followed by the hours it covers.
func (g *Grid) HoursOf(i int) []int {
	p, ok := g.byIndex[i]
	if !ok {
		return nil
	}
	hours := make([]int, 0, p.Span)
	for h := p.Entry.StartHour; h < p.Entry.StartHour+p.Span; h++ {
		hours = append(hours, h)
	}
	return hours
}

// BlocksAt returns every block occupying (day, hour): the blocks covering it
// from earlier hours first, then the blocks starting there.
func (g *Grid) BlocksAt(day, hour int) []Placement {
	c, ok := g.Cell(day, hour)
	if !ok {
		return nil
	}
	blocks := make([]Placement, 0, len(c.CoveredBy)+len(c.Starts))
	for _, i := range c.CoveredBy {
		blocks = append(blocks, g.byIndex[i])
	}
	return append(blocks, c.Starts...)
}

// Equal reports whether two grids hold the same placement.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	return reflect.DeepEqual(g.window, other.window) &&
		reflect.DeepEqual(g.cells, other.cells) &&
		reflect.DeepEqual(g.placed, other.placed) &&
		reflect.DeepEqual(g.skipped, other.skipped)
}
