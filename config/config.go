// Package config loads default settings for the maze tools from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yalue/dfsmaze"
)

// Environment variable names.
const (
	EnvScale      = "MAZE_SCALE"
	EnvBackColour = "MAZE_BACK_COLOUR"
	EnvForeColour = "MAZE_FORE_COLOUR"
	EnvSeed       = "MAZE_SEED"
	EnvLogLevel   = "MAZE_LOG_LEVEL"
)

// Config holds defaults for rendering and logging. Command-line flags take
// precedence over these values.
type Config struct {
	Scale      int        // Pixels per map square
	BackColour uint32     // Packed colour of walls (see dfsmaze.PackRGBA)
	ForeColour uint32     // Packed colour of passages
	Seed       int64      // Random seed; zero or negative means random
	LogLevel   slog.Level // Minimum level for log output
	// The .env files Load found and read, in order. Files that don't exist
	// are left out.
	EnvFiles []string
}

// Default returns the settings used when nothing is configured: scale 2 with
// white passages on a black background.
func Default() Config {
	return Config{
		Scale:      2,
		BackColour: dfsmaze.Black,
		ForeColour: dfsmaze.White,
		Seed:       -1,
		LogLevel:   slog.LevelWarn,
	}
}

// Load reads the given .env files (or ".env" if none are given) into the
// process environment, then builds a Config from it. Missing files are not
// an error; malformed ones and malformed values are. The returned Config's
// EnvFiles lists the files that were actually read.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var loaded []string
	for _, name := range files {
		e := godotenv.Load(name)
		if e == nil {
			loaded = append(loaded, name)
			continue
		}
		if errors.Is(e, fs.ErrNotExist) {
			continue
		}
		return Config{}, fmt.Errorf("Error loading %s: %w", name, e)
	}
	c, e := FromEnv()
	if e != nil {
		return Config{}, e
	}
	c.EnvFiles = loaded
	return c, nil
}

// FromEnv builds a Config from the current environment, falling back to
// Default() for unset variables.
func FromEnv() (Config, error) {
	c := Default()
	var e error
	if v, ok := os.LookupEnv(EnvScale); ok {
		c.Scale, e = strconv.Atoi(v)
		if (e != nil) || (c.Scale < 1) {
			return Config{}, fmt.Errorf("%s must be a positive integer, got "+
				"%q", EnvScale, v)
		}
	}
	if v, ok := os.LookupEnv(EnvBackColour); ok {
		c.BackColour, e = ParseColour(v)
		if e != nil {
			return Config{}, fmt.Errorf("Invalid %s: %w", EnvBackColour, e)
		}
	}
	if v, ok := os.LookupEnv(EnvForeColour); ok {
		c.ForeColour, e = ParseColour(v)
		if e != nil {
			return Config{}, fmt.Errorf("Invalid %s: %w", EnvForeColour, e)
		}
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		c.Seed, e = strconv.ParseInt(v, 10, 64)
		if e != nil {
			return Config{}, fmt.Errorf("%s must be an integer: %w", EnvSeed,
				e)
		}
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		if e = c.LogLevel.UnmarshalText([]byte(v)); e != nil {
			return Config{}, fmt.Errorf("Invalid %s: %w", EnvLogLevel, e)
		}
	}
	return c, nil
}

// ParseColour parses an HTML-style hex colour: "#rrggbb" or "#rrggbbaa",
// with the '#' optional. Colours without an alpha component are opaque.
// Returns the colour packed with dfsmaze.PackRGBA.
func ParseColour(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if (len(hex) != 6) && (len(hex) != 8) {
		return 0, fmt.Errorf("colour %q must have 6 or 8 hex digits", s)
	}
	v, e := strconv.ParseUint(hex, 16, 32)
	if e != nil {
		return 0, fmt.Errorf("colour %q is not hexadecimal: %w", s, e)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return dfsmaze.PackRGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8),
		uint8(v)), nil
}
