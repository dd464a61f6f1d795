package vm

import (
	"fmt"
	"math/rand"
)

// ---------------------------------------------------------------------------
// plane: shared toroidal 2D cell storage
// ---------------------------------------------------------------------------

// plane is a fixed-size 2D array of cells with toroidal addressing on both
// axes. Grid and Tape are both planes; they differ only in extent, lifetime,
// and sharing.
type plane struct {
	height, width int
	cells         []Cell // row-major
}

func newPlane(height, width int) plane {
	return plane{
		height: height,
		width:  width,
		cells:  make([]Cell, height*width),
	}
}

// wrapMod reduces v into [0, n). Unlike the % operator it is well-defined
// for negative v.
func wrapMod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func (p *plane) wrap(pos Position) Position {
	return Position{
		Row: wrapMod(pos.Row, p.height),
		Col: wrapMod(pos.Col, p.width),
	}
}

func (p *plane) index(pos Position) int {
	pos = p.wrap(pos)
	return pos.Row*p.width + pos.Col
}

// Height returns the number of rows.
func (p *plane) Height() int { return p.height }

// Width returns the number of columns.
func (p *plane) Width() int { return p.width }

// At reads the cell at pos. Any coordinate is legal; it is wrapped into
// bounds first.
func (p *plane) At(pos Position) Cell {
	return p.cells[p.index(pos)]
}

// Set writes the cell at pos, wrapping the coordinate into bounds.
func (p *plane) Set(pos Position, v Cell) {
	p.cells[p.index(pos)] = v
}

// Step returns the position one unit from pos in direction d, wrapped.
func (p *plane) Step(pos Position, d Direction) Position {
	dr, dc := d.Delta()
	return p.wrap(Position{Row: pos.Row + dr, Col: pos.Col + dc})
}

// ---------------------------------------------------------------------------
// Grid: the shared world
// ---------------------------------------------------------------------------

// Default data range for noise fill and mutation: values are drawn from
// [DefaultDataMin, DefaultDataMax).
const (
	DefaultDataMin = -16
	DefaultDataMax = 16
)

// Grid is the shared, process-lifetime 2D cell array that holds every
// organism's program text and is mutated in place by their copy
// instructions. It is not safe for concurrent use; the driver issues runs
// sequentially.
type Grid struct {
	plane
	dataMin int // inclusive
	dataMax int // exclusive
}

// NewGrid creates a zeroed height x width grid. It panics if either extent
// is not positive.
func NewGrid(height, width int) *Grid {
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("vm: invalid grid size %dx%d", height, width))
	}
	return &Grid{
		plane:   newPlane(height, width),
		dataMin: DefaultDataMin,
		dataMax: DefaultDataMax,
	}
}

// NewNoiseGrid creates a grid filled with uniform draws from the data range,
// the primordial-soup initial state of a fresh pond.
func NewNoiseGrid(height, width int, rng *rand.Rand) *Grid {
	g := NewGrid(height, width)
	for i := range g.cells {
		g.cells[i] = g.randomData(rng)
	}
	return g
}

// NewGridFromCells rebuilds a grid from a row-major cell dump, as produced
// by Snapshot or a deserialized image.
func NewGridFromCells(height, width int, cells []Cell) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("vm: invalid grid size %dx%d", height, width)
	}
	if len(cells) != height*width {
		return nil, fmt.Errorf("vm: cell count %d does not match %dx%d grid", len(cells), height, width)
	}
	g := NewGrid(height, width)
	copy(g.cells, cells)
	return g, nil
}

// SetDataRange configures the half-open value range used by NewNoiseGrid and
// Mutate. It panics on an empty range.
func (g *Grid) SetDataRange(min, max int) {
	if min >= max || min < -128 || max > 128 {
		panic(fmt.Sprintf("vm: invalid data range [%d, %d)", min, max))
	}
	g.dataMin = min
	g.dataMax = max
}

func (g *Grid) randomData(rng *rand.Rand) Cell {
	return Cell(g.dataMin + rng.Intn(g.dataMax-g.dataMin))
}

// FindAll returns the positions of every cell holding v, in row-major
// order. The driver uses it with EntryCell to discover runnable organisms.
func (g *Grid) FindAll(v Cell) []Position {
	var found []Position
	for i, c := range g.cells {
		if c == v {
			found = append(found, Position{Row: i / g.width, Col: i % g.width})
		}
	}
	return found
}

// Seed writes a block of pattern rows into the grid starting at origin,
// wrapping rows and columns independently. Characters resolve through the
// symbol table, with decimal digits as literal data values. The whole
// pattern is validated before the first write: on InvalidSymbolError the
// grid is untouched.
func (g *Grid) Seed(rows []string, origin Position) error {
	resolved := make([][]Cell, len(rows))
	for i, row := range rows {
		line := make([]Cell, 0, len(row))
		for j, ch := range row {
			cell, ok := resolveSymbol(ch)
			if !ok {
				return &InvalidSymbolError{Char: ch, Row: i, Col: j}
			}
			line = append(line, cell)
		}
		resolved[i] = line
	}

	for i, line := range resolved {
		for j, cell := range line {
			g.Set(Position{Row: origin.Row + i, Col: origin.Col + j}, cell)
		}
	}
	return nil
}

// Mutate overwrites a pseudo-random selection of cells with uniform draws
// from the data range, the background noise that drives evolution. The
// count is fraction of the grid area, truncated, and never less than one.
// Position and value draws are independent; colliding positions keep the
// last value drawn.
func (g *Grid) Mutate(fraction float64, rng *rand.Rand) {
	count := int(fraction * float64(g.height*g.width))
	if count < 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		pos := Position{Row: rng.Intn(g.height), Col: rng.Intn(g.width)}
		g.Set(pos, g.randomData(rng))
	}
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

// GridSnapshot is a read-only copy of a grid's cells, decoupled from further
// mutation, for rendering and serialization.
type GridSnapshot struct {
	Height, Width int
	Cells         []Cell // row-major
}

// Snapshot copies the grid's current contents.
func (g *Grid) Snapshot() *GridSnapshot {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &GridSnapshot{Height: g.height, Width: g.width, Cells: cells}
}

// At reads a snapshot cell, wrapping the coordinate like the live grid.
func (s *GridSnapshot) At(pos Position) Cell {
	return s.Cells[wrapMod(pos.Row, s.Height)*s.Width+wrapMod(pos.Col, s.Width)]
}
