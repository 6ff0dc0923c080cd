// This defines a library for generating perfect 2D mazes using randomized
// depth-first carving, and for rendering them as ASCII maps or raster images.
package dfsmaze

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInvalidDimension is returned when a grid width or height is zero,
	// negative, unparseable or too big.
	ErrInvalidDimension = errors.New("dfsmaze: invalid maze dimension")
	// ErrNilGrid is returned when an operation is given a nil *Grid.
	ErrNilGrid = errors.New("dfsmaze: grid is nil")
)

// MaxCells limits the number of cells in a single grid. The carving stack and
// the rendered image both scale with it.
const MaxCells = 1 << 28

// Direction is one of the four connection directions. The values double as
// the bit masks stored in a Cell.
type Direction uint8

const (
	North Direction = 0x01
	South Direction = 0x02
	East  Direction = 0x04
	West  Direction = 0x08
)

// Directions lists the four directions in mask order. The generator samples
// from this array, so its order matters for seeded reproducibility.
var Directions = [4]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("Unknown direction: %d", uint8(d))
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return 0
}

// Offset returns the change in x and y produced by stepping once in d. North
// is towards y = 0.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Holds the visited flag, above the four connection bits.
const visitedFlag = 0x10

// Cell holds one grid position's four connection flags and its visited flag,
// packed into a single byte.
type Cell uint8

// Connected returns true if the cell has a passage in the given direction.
func (c Cell) Connected(d Direction) bool {
	return uint8(c)&uint8(d) != 0
}

// Visited returns true once the generator has reached the cell.
func (c Cell) Visited() bool {
	return c&visitedFlag != 0
}

// Connections returns the number of passages leading out of the cell.
func (c Cell) Connections() int {
	count := 0
	for _, d := range Directions {
		if c.Connected(d) {
			count++
		}
	}
	return count
}

func (c *Cell) connect(d Direction) {
	*c |= Cell(d)
}

func (c *Cell) markVisited() {
	*c |= visitedFlag
}

// Point is a cell coordinate within a grid.
type Point struct {
	X, Y int
}

// Grid is a rectangular array of cells. Its shape is fixed at construction.
// Create one using NewGrid.
type Grid struct {
	width  int
	height int
	// Row-major: the cell at (x, y) is at index y*width + x.
	cells []Cell
}

// NewGrid allocates a width x height grid with every flag cleared. Returns
// ErrInvalidDimension if either dimension is less than 1 or if the grid would
// hold more than MaxCells cells.
func NewGrid(width, height int) (*Grid, error) {
	if (width < 1) || (height < 1) {
		return nil, fmt.Errorf("%w: %dx%d (width and height must be at "+
			"least 1)", ErrInvalidDimension, width, height)
	}
	cellCount := width * height
	// Check for overflow.
	if (cellCount/width != height) || (cellCount > MaxCells) {
		return nil, fmt.Errorf("%w: %dx%d is too big", ErrInvalidDimension,
			width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, cellCount),
	}, nil
}

// ParseDimension converts a width or height given as text into an int.
// Anything that isn't a positive decimal integer small enough to fit in a
// grid yields ErrInvalidDimension.
func ParseDimension(s string) (int, error) {
	v, e := strconv.ParseUint(s, 10, 32)
	if e != nil {
		return 0, fmt.Errorf("%w: %q: %s", ErrInvalidDimension, s, e)
	}
	if (v == 0) || (v > MaxCells) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidDimension, s)
	}
	return int(v), nil
}

// Width returns the number of cells in each row.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// CellCount returns width * height.
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return (x >= 0) && (x < g.width) && (y >= 0) && (y < g.height)
}

// CellAt returns the cell at (x, y), or nil if the coordinate is off the
// grid. Off-grid lookups are normal during boundary checks, so they are not
// treated as errors.
func (g *Grid) CellAt(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &(g.cells[y*g.width+x])
}

// Neighbor returns the cell one step from (x, y) in direction d, or nil if
// that step leaves the grid.
func (g *Grid) Neighbor(x, y int, d Direction) *Cell {
	dx, dy := d.Offset()
	if (dx == 0) && (dy == 0) {
		return nil
	}
	return g.CellAt(x+dx, y+dy)
}

// Records a passage between (x, y) and its neighbor in direction d on both
// cells. Returns the neighbor's coordinate. The caller must have checked
// that the neighbor exists.
func (g *Grid) carve(x, y int, d Direction) Point {
	dx, dy := d.Offset()
	target := Point{X: x + dx, Y: y + dy}
	g.CellAt(x, y).connect(d)
	g.CellAt(target.X, target.Y).connect(d.Opposite())
	return target
}

// ConnectionCount returns the number of undirected passages in the grid.
// Only east and south flags are counted, so each passage counts once.
func (g *Grid) ConnectionCount() int {
	count := 0
	for _, c := range g.cells {
		if c.Connected(East) {
			count++
		}
		if c.Connected(South) {
			count++
		}
	}
	return count
}

// Returns true if any cell has been visited, meaning the grid has already
// been handed to a generator.
func (g *Grid) anyVisited() bool {
	for _, c := range g.cells {
		if c.Visited() {
			return true
		}
	}
	return false
}
