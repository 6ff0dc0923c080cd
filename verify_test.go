package dfsmaze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Returns a grid with every cell visited and no connections.
func visitedGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	for i := range g.cells {
		g.cells[i].markVisited()
	}
	return g
}

func TestVerifyAcceptsHandBuiltTree(t *testing.T) {
	// A comb: the top row is a corridor, and each column hangs from it.
	g := visitedGrid(t, 3, 3)
	g.carve(0, 0, East)
	g.carve(1, 0, East)
	for x := 0; x < 3; x++ {
		g.carve(x, 0, South)
		g.carve(x, 1, South)
	}
	assert.NoError(t, Verify(g))
}

func TestVerifyRejects(t *testing.T) {
	t.Run("Unvisited", func(t *testing.T) {
		g, err := NewGrid(2, 1)
		require.NoError(t, err)
		g.carve(0, 0, East)
		assert.ErrorIs(t, Verify(g), ErrNotPerfect)
	})
	t.Run("Asymmetric", func(t *testing.T) {
		g := visitedGrid(t, 2, 1)
		g.CellAt(0, 0).connect(East)
		assert.ErrorIs(t, Verify(g), ErrNotPerfect)
	})
	t.Run("OffGrid", func(t *testing.T) {
		g := visitedGrid(t, 1, 1)
		g.CellAt(0, 0).connect(North)
		assert.ErrorIs(t, Verify(g), ErrNotPerfect)
	})
	t.Run("TooFewConnections", func(t *testing.T) {
		g := visitedGrid(t, 3, 1)
		g.carve(0, 0, East)
		assert.ErrorIs(t, Verify(g), ErrNotPerfect)
	})
	t.Run("Cycle", func(t *testing.T) {
		// All four edges of a 2x2 grid: one too many.
		g := visitedGrid(t, 2, 2)
		g.carve(0, 0, East)
		g.carve(1, 0, South)
		g.carve(1, 1, West)
		g.carve(0, 1, North)
		assert.ErrorIs(t, Verify(g), ErrNotPerfect)
	})
	t.Run("CycleWithRightEdgeCount", func(t *testing.T) {
		// A 3x2 grid has 6 cells, so 5 edges. Use them on a 4-cycle plus
		// one spur, leaving one cell disconnected.
		g := visitedGrid(t, 3, 2)
		g.carve(0, 0, East)
		g.carve(1, 0, South)
		g.carve(1, 1, West)
		g.carve(0, 1, North)
		g.carve(1, 0, East)
		assert.Equal(t, 5, g.ConnectionCount())
		assert.ErrorIs(t, Verify(g), ErrNotPerfect)
	})
	t.Run("Nil", func(t *testing.T) {
		assert.ErrorIs(t, Verify(nil), ErrNilGrid)
	})
}
