package dfsmaze

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	// ErrIOFailure wraps any error encountered while writing an image file.
	ErrIOFailure = errors.New("dfsmaze: failed writing image")
	// ErrUnsupportedFormat is returned for an unknown image format name.
	ErrUnsupportedFormat = errors.New("dfsmaze: unsupported image format")
)

// ImageFormat names a supported output encoding.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
)

// FormatForPath picks an image format from a file name's extension. Paths
// without a recognized extension get PNG.
func FormatForPath(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	}
	return FormatPNG
}

// EncodeImage writes pic to w in the given format.
func EncodeImage(w io.Writer, pic image.Image, format ImageFormat) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, pic)
	case FormatBMP:
		return bmp.Encode(w, pic)
	case FormatTIFF:
		return tiff.Encode(w, pic, &tiff.Options{
			Compression: tiff.Deflate,
			Predictor:   true,
		})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteImageFile encodes pic to path, choosing the format from the path's
// extension. The image is written to a temporary file in the same directory
// and renamed into place, so a failure never leaves a partial file at path.
// All errors wrap ErrIOFailure.
func WriteImageFile(pic image.Image, path string) error {
	if pic == nil {
		return fmt.Errorf("%w: no image to write", ErrIOFailure)
	}
	format := FormatForPath(path)
	f, e := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if e != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, e)
	}
	tmpName := f.Name()
	// CreateTemp uses 0600, which is too strict for an output image.
	e = f.Chmod(0644)
	if e == nil {
		e = EncodeImage(f, pic, format)
	}
	if closeErr := f.Close(); e == nil {
		e = closeErr
	}
	if e == nil {
		e = os.Rename(tmpName, path)
	}
	if e != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %w", ErrIOFailure, path, e)
	}
	Logger().Info("maze image written", slog.String("path", path),
		slog.String("format", string(format)))
	return nil
}

// WritePixelBuffer writes a rendered maze to path. See WriteImageFile.
func WritePixelBuffer(b *PixelBuffer, path string) error {
	if (b == nil) || b.Released() {
		return fmt.Errorf("%w: pixel buffer is nil or released", ErrIOFailure)
	}
	return WriteImageFile(b.RGBA(), path)
}
