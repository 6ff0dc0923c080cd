package dfsmaze

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"
)

var (
	// ErrInvalidScale is returned when ImageOptions.Scale is less than 1.
	ErrInvalidScale = errors.New("dfsmaze: image scale must be at least 1")
	// ErrImageTooLarge is returned when the rendered image's size in bytes
	// would overflow an int.
	ErrImageTooLarge = errors.New("dfsmaze: rendered image is too large")
	// ErrReleased is returned when a PixelBuffer is released more than once.
	ErrReleased = errors.New("dfsmaze: pixel buffer already released")
)

// PackRGBA packs a colour into the 32-bit form used by PixelBuffer. Red is
// in the low byte, so the bytes land in memory as R, G, B, A.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA is the inverse of PackRGBA.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

var (
	// White is opaque white.
	White = PackRGBA(0xff, 0xff, 0xff, 0xff)
	// Black is opaque black.
	Black = PackRGBA(0, 0, 0, 0xff)
)

// ImageOptions controls RenderImage.
type ImageOptions struct {
	// The side length, in pixels, of each square of the ASCII-style map.
	Scale int
	// The colour of walls between unconnected cells and of the border.
	BackColour uint32
	// The colour of cells and of the passages between connected cells.
	ForeColour uint32
}

// DefaultImageOptions returns a scale of 4 with black passages on a white
// background.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Scale:      4,
		BackColour: White,
		ForeColour: Black,
	}
}

// PixelBuffer holds a rendered maze: 4 bytes per pixel, row-major, with each
// pixel's bytes in R, G, B, A order.
type PixelBuffer struct {
	Width    int
	Height   int
	Stride   int
	Channels int
	Pix      []byte
}

const pixelBufferChannels = 4

// Release drops the buffer's pixel memory. The buffer must not be used
// afterwards. Releasing twice returns ErrReleased.
func (b *PixelBuffer) Release() error {
	if b.Pix == nil {
		return ErrReleased
	}
	b.Pix = nil
	return nil
}

// Released returns true once Release has been called.
func (b *PixelBuffer) Released() bool {
	return b.Pix == nil
}

// PixelAt returns the packed colour of the pixel at (x, y). Out-of-bounds
// coordinates, or a released buffer, return 0.
func (b *PixelBuffer) PixelAt(x, y int) uint32 {
	if (b.Pix == nil) || (x < 0) || (y < 0) || (x >= b.Width) ||
		(y >= b.Height) {
		return 0
	}
	i := y*b.Stride + x*b.Channels
	return binary.LittleEndian.Uint32(b.Pix[i : i+4])
}

// RGBA returns an *image.RGBA sharing the buffer's memory, suitable for the
// standard image encoders. Returns nil if the buffer has been released.
func (b *PixelBuffer) RGBA() *image.RGBA {
	if b.Pix == nil {
		return nil
	}
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Stride,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Colours the size x size block whose top-left pixel is (left, top). Any
// part of the block outside the buffer is skipped.
func fillBlock(b *PixelBuffer, left, top, size int, colour uint32) {
	x0, y0 := max(left, 0), max(top, 0)
	x1, y1 := min(left+size, b.Width), min(top+size, b.Height)
	if (x0 >= x1) || (y0 >= y1) {
		return
	}
	for y := y0; y < y1; y++ {
		row := b.Pix[y*b.Stride : y*b.Stride+b.Width*b.Channels]
		for x := x0; x < x1; x++ {
			binary.LittleEndian.PutUint32(row[x*b.Channels:], colour)
		}
	}
}

// Returns the number of pixels along one side of the image for a grid side
// of n cells, or an error on overflow.
func imageSide(n, scale int) (int, error) {
	mapSide := 2*n + 1
	side := mapSide * scale
	if side/scale != mapSide {
		return 0, ErrImageTooLarge
	}
	return side, nil
}

// RenderImage draws the grid into a new PixelBuffer of (2*width+1)*scale by
// (2*height+1)*scale pixels. The caller owns the returned buffer and should
// Release it once it has been written out.
func RenderImage(g *Grid, opts ImageOptions) (*PixelBuffer, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if opts.Scale < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidScale, opts.Scale)
	}
	width, e := imageSide(g.Width(), opts.Scale)
	if e != nil {
		return nil, e
	}
	height, e := imageSide(g.Height(), opts.Scale)
	if e != nil {
		return nil, e
	}
	stride := width * pixelBufferChannels
	size := stride * height
	if (stride/pixelBufferChannels != width) || (size/height != stride) {
		return nil, ErrImageTooLarge
	}
	startTime := time.Now()
	b := &PixelBuffer{
		Width:    width,
		Height:   height,
		Stride:   stride,
		Channels: pixelBufferChannels,
		Pix:      make([]byte, size),
	}

	// Clear to the background colour.
	for i := 0; i < size; i += pixelBufferChannels {
		binary.LittleEndian.PutUint32(b.Pix[i:], opts.BackColour)
	}

	scale := opts.Scale
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.CellAt(x, y)
			mapX := 2*x + 1
			mapY := 2*y + 1
			fillBlock(b, mapX*scale, mapY*scale, scale, opts.ForeColour)
			for _, d := range Directions {
				if !c.Connected(d) {
					continue
				}
				dx, dy := d.Offset()
				left := (mapX + dx) * scale
				top := (mapY + dy) * scale
				// The neighbor on the other side may have drawn it already.
				if b.PixelAt(left, top) != opts.BackColour {
					continue
				}
				fillBlock(b, left, top, scale, opts.ForeColour)
			}
		}
	}

	Logger().Debug("maze image rendered",
		slog.Int("width_px", width),
		slog.Int("height_px", height),
		slog.Int("scale", scale),
		slog.Duration("duration", time.Since(startTime)))
	return b, nil
}
