package dfsmaze

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

var (
	// ErrAlreadyGenerated is returned when Generate is given a grid that a
	// generator has already carved. Build a new grid to get a new maze.
	ErrAlreadyGenerated = errors.New("dfsmaze: grid has already been " +
		"generated")
	// ErrInternalInvariant indicates a logic defect, such as the carving
	// stack growing past the number of cells. It is never a user error.
	ErrInternalInvariant = errors.New("dfsmaze: internal invariant violated")
)

// Stats describes the most recent call to Generate.
type Stats struct {
	// The number of cells pushed onto the carving stack, including the start
	// cell. Equal to the cell count after a successful run.
	Pushes int
	// The number of times a cell was popped because it had no unvisited
	// neighbors.
	Backtracks int
	// The number of random direction draws that were rejected because they
	// led off the grid or to a visited cell.
	RejectedDraws int
	// The deepest the carving stack got.
	MaxStackDepth int
	Duration      time.Duration
}

// Generator carves perfect mazes into grids using randomized depth-first
// search with an explicit stack. A Generator is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	seed  int64
	stats Stats
	// The dimensions of the last grid generated, for Info().
	lastWidth, lastHeight int
}

// NewGenerator returns a Generator whose random directions are fully
// determined by seed. Two generators with the same seed carve identical
// mazes into grids of the same size.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewRandomGenerator returns a Generator seeded from the operating system's
// entropy source.
func NewRandomGenerator() (*Generator, error) {
	var buf [8]byte
	if _, e := crand.Read(buf[:]); e != nil {
		return nil, fmt.Errorf("Error reading random seed: %w", e)
	}
	return NewGenerator(int64(binary.LittleEndian.Uint64(buf[:]))), nil
}

// Seed returns the seed the generator was created with.
func (m *Generator) Seed() int64 {
	return m.seed
}

// Stats returns counters from the most recent Generate call.
func (m *Generator) Stats() Stats {
	return m.stats
}

// Info returns a human-readable summary of the last generation, for debug
// output.
func (m *Generator) Info() string {
	return fmt.Sprintf("%dx%d DFS maze with random seed %d, generated in "+
		"%.03f seconds (max stack depth %d, %d backtracks, %d rejected draws)",
		m.lastWidth, m.lastHeight, m.seed, m.stats.Duration.Seconds(),
		m.stats.MaxStackDepth, m.stats.Backtracks, m.stats.RejectedDraws)
}

// Returns true if the cell exists and hasn't been visited yet.
func validTarget(c *Cell) bool {
	return (c != nil) && !c.Visited()
}

// Returns true if any of the four neighbors of p is a valid target.
func (m *Generator) hasValidTarget(g *Grid, p Point) bool {
	for _, d := range Directions {
		if validTarget(g.Neighbor(p.X, p.Y, d)) {
			return true
		}
	}
	return false
}

// Draws directions uniformly from all four until one leads to a valid
// target. Must only be called when hasValidTarget is true for p.
func (m *Generator) pickDirection(g *Grid, p Point) Direction {
	for {
		d := Directions[m.rng.Intn(len(Directions))]
		if validTarget(g.Neighbor(p.X, p.Y, d)) {
			return d
		}
		m.stats.RejectedDraws++
	}
}

// Generate carves a perfect maze into g, starting at (0, 0). The grid must
// be freshly created; a grid that has already been generated is rejected
// with ErrAlreadyGenerated. On success every cell is visited and the
// connections form a spanning tree.
func (m *Generator) Generate(g *Grid) error {
	if g == nil {
		return ErrNilGrid
	}
	if g.anyVisited() {
		return ErrAlreadyGenerated
	}
	m.stats = Stats{}
	m.lastWidth = g.Width()
	m.lastHeight = g.Height()
	maxDepth := g.CellCount()
	startTime := time.Now()

	// Every cell is pushed at most once, so the stack never needs to grow.
	stack := make([]Point, 0, maxDepth)
	stack = append(stack, Point{0, 0})
	m.stats.Pushes = 1

	for len(stack) != 0 {
		if len(stack) > maxDepth {
			return invariantViolation("carving stack depth %d exceeds %d "+
				"cells", len(stack), maxDepth)
		}
		if len(stack) > m.stats.MaxStackDepth {
			m.stats.MaxStackDepth = len(stack)
		}

		// Peek at the top of the stack.
		current := stack[len(stack)-1]
		g.CellAt(current.X, current.Y).markVisited()

		if !m.hasValidTarget(g, current) {
			stack = stack[:len(stack)-1]
			m.stats.Backtracks++
			continue
		}

		d := m.pickDirection(g, current)
		stack = append(stack, g.carve(current.X, current.Y, d))
		m.stats.Pushes++
	}

	m.stats.Duration = time.Since(startTime)
	Logger().Debug("maze generated",
		slog.Int("width", g.Width()),
		slog.Int("height", g.Height()),
		slog.Int64("seed", m.seed),
		slog.Int("max_stack_depth", m.stats.MaxStackDepth),
		slog.Int("rejected_draws", m.stats.RejectedDraws),
		slog.Duration("duration", m.stats.Duration))
	return nil
}
