package dfsmaze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIISingleCell(t *testing.T) {
	g := generateSeeded(t, 1, 1, 1)
	assert.Equal(t, []string{
		"###",
		"# #",
		"###",
	}, ASCIILines(g))
}

func TestASCIIHorizontalCorridor(t *testing.T) {
	g := generateSeeded(t, 2, 1, 1)
	assert.Equal(t, "#####\n#   #\n#####", ASCII(g))
}

func TestASCIINilGrid(t *testing.T) {
	assert.Nil(t, ASCIILines(nil))
	assert.Equal(t, "", ASCII(nil))
}

func TestASCIIShape(t *testing.T) {
	g := generateSeeded(t, 7, 4, 11)
	lines := ASCIILines(g)
	require.Len(t, lines, 9)
	for _, line := range lines {
		assert.Len(t, line, 15)
	}
	// The outer wall is always solid.
	assert.Equal(t, strings.Repeat("#", 15), lines[0])
	assert.Equal(t, strings.Repeat("#", 15), lines[8])
	for _, line := range lines {
		assert.Equal(t, byte('#'), line[0])
		assert.Equal(t, byte('#'), line[14])
	}
	// A perfect maze on a W x H grid opens W*H cells and W*H-1 walls.
	open := 0
	for _, line := range lines {
		open += strings.Count(line, " ")
	}
	assert.Equal(t, 2*7*4-1, open)
}

func TestASCIIRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		g := generateSeeded(t, 13, 6, seed)
		parsed, err := ParseASCII(ASCIILines(g))
		require.NoError(t, err)
		assert.Equal(t, g.cells, parsed.cells, "seed %d", seed)
		assert.NoError(t, Verify(parsed))
	}
}

func TestParseASCIIErrors(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
	}{
		{"Empty", nil},
		{"EvenHeight", []string{"###", "# #"}},
		{"EvenWidth", []string{"####", "#  #", "####"}},
		{"Ragged", []string{"#####", "#   #", "####"}},
		{"BadCharacter", []string{"###", "#.#", "###"}},
		{"WallAtCell", []string{"#####", "# ###", "#####"}},
		{"OpenBorder", []string{"#####", "    #", "#####"}},
		{"OpenCorner", []string{
			"#####",
			"#   #",
			"## ##",
			"#   #",
			"#####",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseASCII(tc.lines)
			assert.ErrorIs(t, err, ErrMalformedASCII)
			assert.Nil(t, g)
		})
	}
}
