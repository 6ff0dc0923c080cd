package dfsmaze

import (
	"errors"
	"fmt"
)

// ErrNotPerfect is returned by Verify when a grid's connections do not form
// a spanning tree.
var ErrNotPerfect = errors.New("dfsmaze: grid is not a perfect maze")

// Verify checks that g holds a perfect maze: every cell visited, every
// connection recorded on both cells, no connection leading off the grid,
// exactly CellCount()-1 connections, and every cell reachable from (0, 0).
// A connected graph with one fewer edge than vertices has no cycles, so
// this is enough to prove the connections form a spanning tree.
//
// Time: O(W*H). Memory: O(W*H) for the reachability flags and queue.
func Verify(g *Grid) error {
	if g == nil {
		return ErrNilGrid
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.CellAt(x, y)
			if !c.Visited() {
				return fmt.Errorf("%w: cell (%d, %d) was never visited",
					ErrNotPerfect, x, y)
			}
			for _, d := range Directions {
				if !c.Connected(d) {
					continue
				}
				n := g.Neighbor(x, y, d)
				if n == nil {
					return fmt.Errorf("%w: cell (%d, %d) connects %s off "+
						"the grid", ErrNotPerfect, x, y, d)
				}
				if !n.Connected(d.Opposite()) {
					return fmt.Errorf("%w: cell (%d, %d) connects %s, but "+
						"its neighbor doesn't connect back", ErrNotPerfect, x,
						y, d)
				}
			}
		}
	}

	expected := g.CellCount() - 1
	if count := g.ConnectionCount(); count != expected {
		return fmt.Errorf("%w: %d connections, expected %d", ErrNotPerfect,
			count, expected)
	}

	// BFS from the top-left cell over the carved passages.
	seen := make([]bool, g.CellCount())
	queue := make([]Point, 0, g.CellCount())
	queue = append(queue, Point{0, 0})
	seen[0] = true
	for qi := 0; qi < len(queue); qi++ {
		p := queue[qi]
		c := g.CellAt(p.X, p.Y)
		for _, d := range Directions {
			if !c.Connected(d) {
				continue
			}
			dx, dy := d.Offset()
			next := Point{p.X + dx, p.Y + dy}
			i := next.Y*g.Width() + next.X
			if seen[i] {
				continue
			}
			seen[i] = true
			queue = append(queue, next)
		}
	}
	if len(queue) != g.CellCount() {
		return fmt.Errorf("%w: only %d of %d cells are reachable from (0, 0)",
			ErrNotPerfect, len(queue), g.CellCount())
	}
	return nil
}
