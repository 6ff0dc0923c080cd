package dfsmaze

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedASCII is returned by ParseASCII for maps that could not have
// been produced by ASCIILines.
var ErrMalformedASCII = errors.New("dfsmaze: malformed ASCII maze map")

const (
	asciiWall    = '#'
	asciiPassage = ' '
)

// ASCIILines renders the grid as 2*height+1 lines of 2*width+1 characters.
// Cell (x, y) sits at character (2x+1, 2y+1) and is always a passage. The
// characters between neighboring cells are passages only if the cells are
// connected; everything else is wall. A nil grid has no lines.
func ASCIILines(g *Grid) []string {
	if g == nil {
		return nil
	}
	mapWidth := 2*g.Width() + 1
	mapHeight := 2*g.Height() + 1
	rows := make([][]byte, mapHeight)
	for i := range rows {
		rows[i] = []byte(strings.Repeat(string(asciiWall), mapWidth))
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.CellAt(x, y)
			mapX := 2*x + 1
			mapY := 2*y + 1
			rows[mapY][mapX] = asciiPassage
			for _, d := range Directions {
				if !c.Connected(d) {
					continue
				}
				dx, dy := d.Offset()
				rows[mapY+dy][mapX+dx] = asciiPassage
			}
		}
	}

	lines := make([]string, mapHeight)
	for i, row := range rows {
		lines[i] = string(row)
	}
	return lines
}

// ASCII returns ASCIILines joined with newlines, without a trailing newline.
func ASCII(g *Grid) string {
	return strings.Join(ASCIILines(g), "\n")
}

// ParseASCII rebuilds a grid from the output of ASCIILines. Connections are
// taken from the passages between cell positions, and every cell is marked
// visited. Returns ErrMalformedASCII if the map has the wrong shape, uses
// characters other than '#' and ' ', has a wall at a cell position, has an
// open border, or has a passage where no connection can exist.
func ParseASCII(lines []string) (*Grid, error) {
	mapHeight := len(lines)
	if (mapHeight < 3) || (mapHeight%2 == 0) {
		return nil, fmt.Errorf("%w: %d lines", ErrMalformedASCII, mapHeight)
	}
	mapWidth := len(lines[0])
	if (mapWidth < 3) || (mapWidth%2 == 0) {
		return nil, fmt.Errorf("%w: line width %d", ErrMalformedASCII,
			mapWidth)
	}
	for i, line := range lines {
		if len(line) != mapWidth {
			return nil, fmt.Errorf("%w: line %d has width %d, expected %d",
				ErrMalformedASCII, i, len(line), mapWidth)
		}
		if strings.Trim(line, "# ") != "" {
			return nil, fmt.Errorf("%w: line %d contains characters other "+
				"than '#' and ' '", ErrMalformedASCII, i)
		}
	}

	g, e := NewGrid(mapWidth/2, mapHeight/2)
	if e != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedASCII, e)
	}
	for mapY := 0; mapY < mapHeight; mapY++ {
		for mapX := 0; mapX < mapWidth; mapX++ {
			open := lines[mapY][mapX] == asciiPassage
			oddX := mapX%2 == 1
			oddY := mapY%2 == 1
			switch {
			case oddX && oddY:
				// A cell position.
				if !open {
					return nil, fmt.Errorf("%w: wall at cell position "+
						"(%d, %d)", ErrMalformedASCII, mapX, mapY)
				}
				g.CellAt(mapX/2, mapY/2).markVisited()
			case !open:
				continue
			case (mapX == 0) || (mapY == 0) || (mapX == mapWidth-1) ||
				(mapY == mapHeight-1):
				return nil, fmt.Errorf("%w: opening in the outer wall at "+
					"(%d, %d)", ErrMalformedASCII, mapX, mapY)
			case oddY:
				// Between (mapX/2 - 1, y) and (mapX/2, y).
				g.carve(mapX/2-1, mapY/2, East)
			case oddX:
				// Between (x, mapY/2 - 1) and (x, mapY/2).
				g.carve(mapX/2, mapY/2-1, South)
			default:
				return nil, fmt.Errorf("%w: passage at wall corner (%d, %d)",
					ErrMalformedASCII, mapX, mapY)
			}
		}
	}
	return g, nil
}
