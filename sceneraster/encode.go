package sceneraster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image file format.
type Format uint8

const (
	PNG Format = iota
	BMP
	TIFF
)

// ErrUnknownFormat is returned for file extensions not mapped to a Format.
var ErrUnknownFormat = errors.New("sceneraster: unknown image format")

var extensions = map[string]Format{
	"":      PNG,
	".png":  PNG,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return fmt.Sprintf("<format %d>", f)
	}
}

// FormatOf returns the format matching the extension of `path`,
// compared case insensitively. A path without extension is a PNG file.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return f, nil
}

func (f Format) encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

// writeFile creates `path` and fills it with `write`.
// The file is removed if writing fails.
func writeFile(path string, write func(w io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
