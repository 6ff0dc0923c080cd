package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs the command with an env file that doesn't exist, so the developer's
// own .env can't affect the result.
func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	noEnv := filepath.Join(t.TempDir(), "none.env")
	code := run(append([]string{"-env", noEnv}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCommand(t, "out.png", "4")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage:")
}

func TestRunInvalidDimension(t *testing.T) {
	for _, dims := range [][2]string{{"0", "4"}, {"4", "0"}, {"x", "4"},
		{"4", "-1"}} {
		path := filepath.Join(t.TempDir(), "maze.png")
		code, _, stderr := runCommand(t, path, dims[0], dims[1])
		assert.Equal(t, exitUsage, code, "%v", dims)
		assert.Contains(t, stderr, "Invalid maze size")
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "%v wrote a file", dims)
	}
}

func TestRunWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.png")
	code, stdout, stderr := runCommand(t, "-random_seed", "5", "-scale",
		"3", "-verify", "-ascii", path, "6", "4")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "generating maze of 6 by 4 cells... took")
	assert.Contains(t, stdout, "maze verified OK")
	assert.Contains(t, stdout, "writing image to")
	assert.Contains(t, stdout, strings.Repeat("#", 13))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	pic, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 13*3, pic.Bounds().Dx())
	assert.Equal(t, 9*3, pic.Bounds().Dy())
}

func TestRunSeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	code, _, _ := runCommand(t, "-random_seed", "77", a, "10", "10")
	require.Equal(t, exitOK, code)
	code, _, _ = runCommand(t, "-random_seed", "77", b, "10", "10")
	require.Equal(t, exitOK, code)

	dataA, err := os.ReadFile(a)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, dataA, dataB)
}

func TestRunWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "maze.png")
	code, stdout, _ := runCommand(t, path, "3", "3")
	assert.Equal(t, exitIOFailed, code)
	assert.Contains(t, stdout, "failed")
}

func TestRunBadFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.png")
	code, _, stderr := runCommand(t, "-back", "blue", path, "3", "3")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Invalid argument")

	code, _, _ = runCommand(t, "-scale", "0", path, "3", "3")
	assert.Equal(t, exitUsage, code)
}

func TestRunWithArrows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.png")
	code, _, stderr := runCommand(t, "-arrows", "-scale", "8", path, "5",
		"5")
	require.Equal(t, exitOK, code, stderr)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	pic, err := png.Decode(f)
	require.NoError(t, err)
	// The arrows sit outside the maze, so the image can only grow.
	assert.GreaterOrEqual(t, pic.Bounds().Dx(), 11*8)
	assert.GreaterOrEqual(t, pic.Bounds().Dy(), 11*8)
}

func TestRunRenderFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.png")
	// Large enough that the image side overflows an int.
	code, stdout, stderr := runCommand(t, "-scale",
		"4611686018427387904", path, "1", "1")
	assert.Equal(t, exitMazeFailed, code)
	assert.Contains(t, stdout, "generating image... failed")
	assert.Contains(t, stderr, "Failed rendering maze")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRunLogsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "maze.env")
	require.NoError(t, os.WriteFile(envPath, []byte("MAZE_SCALE=1\n"), 0644))
	t.Setenv("MAZE_SCALE", "")
	os.Unsetenv("MAZE_SCALE")

	var stdout, stderr bytes.Buffer
	path := filepath.Join(dir, "maze.png")
	code := run([]string{"-env", envPath, "-log_level", "debug", path, "2",
		"2"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stderr.String(), "loaded env files")
	assert.Contains(t, stderr.String(), "run=")

	code, _, logs := runCommand(t, "-log_level", "debug", path, "2", "2")
	require.Equal(t, exitOK, code)
	assert.Contains(t, logs, "env file not found")
}
