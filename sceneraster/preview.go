package sceneraster

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// MinGridScale is the smallest cell size, in pixels, of a preview
// with a grid. Smaller scales are raised to it, so that grid lines
// never hide a whole cell.
const MinGridScale = 4

// DefaultGridColor is used when Options.GridColor is nil.
var DefaultGridColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xc0}

// Options control how a canvas is saved.
type Options struct {
	// Scale is the size, in image pixels, of a scene pixel.
	// Values below 1 are treated as 1.
	Scale int
	// Grid strokes the boundaries between scene pixels.
	Grid      bool
	GridColor color.Color
}

func (o Options) isPreview() bool { return o.Grid || o.Scale > 1 }

func (o Options) scale() int {
	s := max(o.Scale, 1)
	if o.Grid {
		s = max(s, MinGridScale)
	}
	return s
}

func (o Options) gridColor() color.Color {
	if o.GridColor == nil {
		return DefaultGridColor
	}
	return o.GridColor
}

// Preview returns `img` enlarged by opts.Scale, each pixel becoming
// a square block, with the pixel grid stroked on top when opts.Grid is set.
// It fails with ErrTooLarge if the result would have more than MaxPixels pixels.
func Preview(img image.Image, opts Options) (*image.RGBA, error) {
	scale := opts.scale()
	size := img.Bounds().Size()
	if err := checkSize(uint64(size.X), uint64(size.Y), scale); err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rect(0, 0, size.X*scale, size.Y*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	if opts.Grid {
		strokeGrid(out, scale, opts.gridColor())
	}
	return out, nil
}

// toFixed returns the center of the image pixel (x, y).
func toFixed(x, y int) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x<<6 + 32), Y: fixed.Int26_6(y<<6 + 32)}
}

// strokeGrid draws one pixel wide lines on the first row and
// column of every cell but the ones touching the top and left edges.
func strokeGrid(img *image.RGBA, scale int, c color.Color) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.SetStroke(fixed.I(1), fixed.I(4), rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
	dasher.SetWinding(true) // crossings must stay painted
	dasher.SetColor(c)
	for x := scale; x < w; x += scale {
		dasher.Start(toFixed(x, 0).Sub(fixed.Point26_6{Y: 32}))
		dasher.Line(toFixed(x, h).Sub(fixed.Point26_6{Y: 32}))
		dasher.Stop(false)
	}
	for y := scale; y < h; y += scale {
		dasher.Start(toFixed(0, y).Sub(fixed.Point26_6{X: 32}))
		dasher.Line(toFixed(w, y).Sub(fixed.Point26_6{X: 32}))
		dasher.Stop(false)
	}
	dasher.Draw()
}
