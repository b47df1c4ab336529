// Provides parsing and rendering of scene files.
// A scene is a small text format describing a raster image
// as a background color plus an ordered list of pixel and
// rectangle drawing commands:
//
//	width 4
//	height 4
//	background [0,0,0]
//	pixel (0,0) [255,255,255]
//	rect (1,1) (2,2) [255,0,0,128]
//
// Scene files are parsed into a Document,
// which can then be drawn on a pixel buffer provided by a Driver.
// See for example pixscene/sceneraster or pixscene/scenepdf .
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Command is either a DrawPixel or a DrawRect.
type Command interface {
	// outside returns the first point of the command which does
	// not fit a `width` x `height` canvas.
	outside(width, height uint32) (Coordinate, bool)
	// paint applies the command on a canvas it fits in.
	paint(c Canvas) error
}

// DrawPixel sets one pixel.
type DrawPixel struct {
	Position Coordinate
	Color    Pixel
}

// DrawRect fills the axis-aligned rectangle spanned by the two corners,
// both included. The corners may be given in any order.
type DrawRect struct {
	Corner1, Corner2 Coordinate
	Color            Pixel
}

// Bounds returns the normalized, inclusive span of the rectangle.
func (r DrawRect) Bounds() (lo, hi Coordinate) {
	lo = Coordinate{X: min(r.Corner1.X, r.Corner2.X), Y: min(r.Corner1.Y, r.Corner2.Y)}
	hi = Coordinate{X: max(r.Corner1.X, r.Corner2.X), Y: max(r.Corner1.Y, r.Corner2.Y)}
	return lo, hi
}

// Document holds a validated scene.
// It is only built by Validate (or the helpers calling it), so that
// every number it holds has been range checked.
// A Document is never modified by this package and may be shared.
type Document struct {
	Width, Height uint32
	Background    Pixel
	Commands      []Command // in source order, which matters when commands overlap
}

func (doc *Document) String() string {
	return fmt.Sprintf("Document(width: %d, height: %d, background: %s, commands: %d)",
		doc.Width, doc.Height, doc.Background, len(doc.Commands))
}

// ParseDocument parses and validates `src`.
func ParseDocument(src string) (*Document, error) {
	raw, err := Parse(src)
	if err != nil {
		return nil, err
	}
	doc, err := Validate(raw)
	if err != nil {
		return nil, err
	}
	Logger().Debug("scene: document parsed",
		"width", doc.Width, "height", doc.Height, "commands", len(doc.Commands))
	return doc, nil
}

// byteOrderMark is kept by the UTF-8 decoder and must be skipped.
const byteOrderMark = "\uFEFF"

// decodeSource converts `content` to UTF-8, guessing its encoding
// from a byte order mark, defaulting to UTF-8.
func decodeSource(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}
	r, err := charset.NewReader(bytes.NewReader(content), "text/plain")
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(string(out), byteOrderMark), nil
}

// ReadDocumentStream reads the Document from the given io.Reader.
// The input is decoded to UTF-8 first, honoring a byte order mark.
func ReadDocumentStream(stream io.Reader) (*Document, error) {
	content, err := io.ReadAll(stream)
	if err != nil {
		return nil, newError(KindInput, Position{}, "can't read source", err)
	}
	src, err := decodeSource(content)
	if err != nil {
		return nil, newError(KindInput, Position{}, "can't decode source", err)
	}
	return ParseDocument(src)
}

// ReadDocument reads the Document from the named file.
func ReadDocument(path string) (*Document, error) {
	fin, err := os.Open(path)
	if err != nil {
		msg := "can't open " + path
		if errors.Is(err, fs.ErrNotExist) {
			msg = path + " does not exist"
		}
		return nil, newError(KindInput, Position{}, msg, err)
	}
	defer fin.Close()
	return ReadDocumentStream(fin)
}
