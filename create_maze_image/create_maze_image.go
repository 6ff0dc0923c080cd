// This defines a basic executable for generating an image of a maze.
//
// Usage:
//
//	create_maze_image [flags] <output path> <width in cells> <height in cells>
//
// The image format follows the output path's extension: .bmp, .tif or .tiff,
// otherwise PNG. Defaults for the rendering flags can be given in a .env file
// or in the environment; see the config package.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/yalue/dfsmaze"
	"github.com/yalue/dfsmaze/config"
	"github.com/yalue/image_utils"
)

// Exit codes.
const (
	exitOK       = 0
	exitUsage    = 1
	exitIOFailed = 2
	// Generating, verifying or rendering the maze failed.
	exitMazeFailed = 3
)

const arrowLength = 16

// Returns a right-pointing arrow in the given colour with a white center.
func getOutlinedArrow(arrowColor color.Color) image.Image {
	outerArrow := image_utils.ResizeImage(image_utils.RightArrow(arrowColor),
		arrowLength, arrowLength)
	innerArrow := image_utils.ResizeImage(image_utils.RightArrow(color.White),
		arrowLength/2, arrowLength/2)
	toReturn := image_utils.NewCompositeImage()
	toReturn.AddImage(outerArrow, image.Pt(0, 0))
	toReturn.AddImage(innerArrow, image.Pt(arrowLength/4, arrowLength/4))
	return image_utils.ToRGBA(toReturn)
}

// Adds an entrance arrow pointing at the top-left cell from outside the
// left edge, and an exit arrow leading away from the bottom-right cell past
// the right edge. Rasterizes the result to an image.RGBA.
func drawMazeDecorations(pic *dfsmaze.PixelBuffer, g *dfsmaze.Grid,
	scale int) (*image.RGBA, error) {
	decorated := image_utils.NewCompositeImage()
	e := decorated.AddImage(pic.RGBA(), image.Pt(0, 0))
	if e != nil {
		return nil, fmt.Errorf("Error setting base maze image: %w", e)
	}
	blueColor := color.RGBA{100, 120, 255, 255}
	greenColor := color.RGBA{40, 180, 70, 255}
	halfLength := arrowLength / 2

	// The tip of the start arrow touches the left edge, level with the
	// middle of the first row of cells.
	startY := scale + scale/2
	e = decorated.AddImage(getOutlinedArrow(greenColor),
		image.Pt(-arrowLength-1, startY-halfLength))
	if e != nil {
		return nil, fmt.Errorf("Error adding start arrow: %w", e)
	}

	// The tail of the end arrow touches the right edge, level with the
	// middle of the last row of cells.
	endY := (2*g.Height()-1)*scale + scale/2
	e = decorated.AddImage(getOutlinedArrow(blueColor),
		image.Pt(pic.Width+1, endY-halfLength))
	if e != nil {
		return nil, fmt.Errorf("Error adding end arrow: %w", e)
	}
	return image_utils.ToRGBA(decorated), nil
}

// Settings gathered from the config package and the command line.
type options struct {
	envFile    string
	scale      int
	seed       int64
	backColour string
	foreColour string
	logLevel   string
	showASCII  bool
	verify     bool
	arrows     bool
}

// Overrides cfg with any flags that were explicitly set on the command line.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) error {
	var e error
	fs.Visit(func(f *flag.Flag) {
		if e != nil {
			return
		}
		switch f.Name {
		case "scale":
			cfg.Scale = opts.scale
		case "random_seed":
			cfg.Seed = opts.seed
		case "back":
			cfg.BackColour, e = config.ParseColour(opts.backColour)
		case "fore":
			cfg.ForeColour, e = config.ParseColour(opts.foreColour)
		case "log_level":
			e = cfg.LogLevel.UnmarshalText([]byte(opts.logLevel))
		}
	})
	if (e == nil) && (cfg.Scale < 1) {
		e = fmt.Errorf("scale must be at least 1, got %d", cfg.Scale)
	}
	return e
}

// Prints the time since start to w in seconds.
func reportElapsed(w io.Writer, start time.Time) {
	fmt.Fprintf(w, "took %f seconds\n", time.Since(start).Seconds())
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("create_maze_image", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.envFile, "env", ".env",
		"An optional file of environment variables holding defaults.")
	fs.IntVar(&opts.scale, "scale", 2,
		"The size, in pixels, of each cell and wall segment.")
	fs.Int64Var(&opts.seed, "random_seed", -1,
		"If positive, specifies the random seed to use.")
	fs.StringVar(&opts.backColour, "back", "#000000",
		"The wall colour, as #rrggbb or #rrggbbaa.")
	fs.StringVar(&opts.foreColour, "fore", "#ffffff",
		"The passage colour, as #rrggbb or #rrggbbaa.")
	fs.StringVar(&opts.logLevel, "log_level", "warn",
		"The minimum level of log messages written to stderr.")
	fs.BoolVar(&opts.showASCII, "ascii", false,
		"If set, also prints the maze as text.")
	fs.BoolVar(&opts.verify, "verify", false,
		"If set, checks that the generated maze is a spanning tree.")
	fs.BoolVar(&opts.arrows, "arrows", false,
		"If set, draws entrance and exit arrows beside the maze.")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <output path> "+
			"<width in cells> <height in cells>\n", fs.Name())
		fs.PrintDefaults()
	}
	if e := fs.Parse(args); e != nil {
		return exitUsage
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return exitUsage
	}
	outputPath := fs.Arg(0)

	cfg, e := config.Load(opts.envFile)
	if e != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %s\n", e)
		return exitUsage
	}
	if e = applyFlags(fs, &opts, &cfg); e != nil {
		fmt.Fprintf(stderr, "Invalid argument: %s\n", e)
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})).With(slog.String("run", uuid.NewString()))
	dfsmaze.SetLogger(logger)
	defer dfsmaze.SetLogger(nil)
	if len(cfg.EnvFiles) == 0 {
		logger.Debug("env file not found", slog.String("file", opts.envFile))
	} else {
		logger.Debug("loaded env files", slog.Any("files", cfg.EnvFiles))
	}

	width, e := dfsmaze.ParseDimension(fs.Arg(1))
	if e == nil {
		var height int
		height, e = dfsmaze.ParseDimension(fs.Arg(2))
		if e == nil {
			return generate(outputPath, width, height, cfg, opts, stdout,
				stderr)
		}
	}
	fmt.Fprintf(stderr, "Invalid maze size: %s\n", e)
	fs.Usage()
	return exitUsage
}

// Runs the generate, render and write phases, printing timings to stdout.
func generate(outputPath string, width, height int, cfg config.Config,
	opts options, stdout, stderr io.Writer) int {
	g, e := dfsmaze.NewGrid(width, height)
	if e != nil {
		fmt.Fprintf(stderr, "Failed creating maze: %s\n", e)
		return exitUsage
	}
	var generator *dfsmaze.Generator
	if cfg.Seed > 0 {
		generator = dfsmaze.NewGenerator(cfg.Seed)
	} else {
		generator, e = dfsmaze.NewRandomGenerator()
		if e != nil {
			fmt.Fprintf(stderr, "Failed seeding generator: %s\n", e)
			return exitMazeFailed
		}
	}

	fmt.Fprintf(stdout, "generating maze of %d by %d cells... ", width,
		height)
	mark := time.Now()
	e = generator.Generate(g)
	if e != nil {
		fmt.Fprintf(stdout, "failed\n")
		fmt.Fprintf(stderr, "Failed generating maze: %s\n", e)
		return exitMazeFailed
	}
	reportElapsed(stdout, mark)
	dfsmaze.Logger().Debug(generator.Info())

	if opts.verify {
		if e = dfsmaze.Verify(g); e != nil {
			fmt.Fprintf(stderr, "Maze verification failed: %s\n", e)
			return exitMazeFailed
		}
		fmt.Fprintf(stdout, "maze verified OK\n")
	}
	if opts.showASCII {
		fmt.Fprintln(stdout, dfsmaze.ASCII(g))
	}

	fmt.Fprintf(stdout, "generating image... ")
	mark = time.Now()
	pic, e := dfsmaze.RenderImage(g, dfsmaze.ImageOptions{
		Scale:      cfg.Scale,
		BackColour: cfg.BackColour,
		ForeColour: cfg.ForeColour,
	})
	if e != nil {
		fmt.Fprintf(stdout, "failed\n")
		fmt.Fprintf(stderr, "Failed rendering maze: %s\n", e)
		return exitMazeFailed
	}
	defer pic.Release()
	var finalPic image.Image = pic.RGBA()
	if opts.arrows {
		finalPic, e = drawMazeDecorations(pic, g, cfg.Scale)
		if e != nil {
			fmt.Fprintf(stdout, "failed\n")
			fmt.Fprintf(stderr, "Error adding maze decorations: %s\n", e)
			return exitMazeFailed
		}
	}
	reportElapsed(stdout, mark)

	fmt.Fprintf(stdout, "writing image to \"%s\"... ", outputPath)
	mark = time.Now()
	e = dfsmaze.WriteImageFile(finalPic, outputPath)
	if e != nil {
		fmt.Fprintf(stdout, "failed\n")
		fmt.Fprintf(stderr, "%s\n", e)
		if errors.Is(e, dfsmaze.ErrIOFailure) {
			return exitIOFailed
		}
		return exitMazeFailed
	}
	reportElapsed(stdout, mark)
	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
