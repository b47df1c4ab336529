// Implements a PDF backend to render scenes,
// by wrapping github.com/jung-kurt/gofpdf.
// Each scene pixel becomes a square of the page; horizontal runs of
// pixels sharing a color are written as one filled rectangle.
package scenepdf

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/benoitkugler/pixscene/scene"
	"github.com/benoitkugler/pixscene/sceneraster"
	"github.com/jung-kurt/gofpdf"
)

// assert interface conformance
var (
	_ scene.Driver     = Driver{}
	_ scene.Canvas     = Canvas{}
	_ scene.RectFiller = Canvas{}
)

// ErrEmptyPage is returned when saving a canvas without pixels,
// which has no valid page size.
var ErrEmptyPage = errors.New("scenepdf: empty page")

// Options control the page layout.
type Options struct {
	// CellSize is the side, in points, of the square drawn for one pixel.
	// Values below or equal to 0 are treated as 1.
	CellSize float64
}

func (o Options) cellSize() float64 {
	if o.CellSize <= 0 {
		return 1
	}
	return o.CellSize
}

// Driver allocates canvas written as one page PDF files.
type Driver struct {
	Options Options
}

// Canvas stores the pixels in memory, and writes the PDF
// document when saved.
type Canvas struct {
	*sceneraster.Canvas
	opts Options
}

// NewCanvas implements scene.Driver.
func (d Driver) NewCanvas(width, height uint32, fill scene.Pixel) (scene.Canvas, error) {
	c, err := sceneraster.NewCanvas(width, height, fill, sceneraster.Options{})
	if err != nil {
		return nil, err
	}
	return Canvas{Canvas: c, opts: d.Options}, nil
}

// run is a horizontal span of pixels with the same color.
type run struct {
	x, y, length int
	color        scene.Pixel
}

// runs returns the spans of `img`, row by row, skipping
// fully transparent pixels.
func runs(img *image.NRGBA) []run {
	var out []run
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; {
			c := scene.PixelFromColor(img.NRGBAAt(x, y))
			end := x + 1
			for end < b.Max.X && scene.PixelFromColor(img.NRGBAAt(end, y)) == c {
				end++
			}
			if c.A != 0 {
				out = append(out, run{x: x - b.Min.X, y: y - b.Min.Y, length: end - x, color: c})
			}
			x = end
		}
	}
	return out
}

// NewPDF returns a one page document showing `img`.
func NewPDF(img *image.NRGBA, opts Options) (*gofpdf.Fpdf, error) {
	size := img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil, ErrEmptyPage
	}
	cell := opts.cellSize()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(size.X) * cell, Ht: float64(size.Y) * cell},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	var current scene.Pixel
	for i, r := range runs(img) {
		if i == 0 || r.color.R != current.R || r.color.G != current.G || r.color.B != current.B {
			pdf.SetFillColor(int(r.color.R), int(r.color.G), int(r.color.B))
		}
		if i == 0 || r.color.A != current.A {
			pdf.SetAlpha(float64(r.color.A)/scene.OpaqueAlpha, "Normal")
		}
		current = r.color
		pdf.Rect(float64(r.x)*cell, float64(r.y)*cell, float64(r.length)*cell, cell, "F")
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("scenepdf: %w", err)
	}
	return pdf, nil
}

// Encode writes the PDF document to `w`.
func (c Canvas) Encode(w io.Writer) error {
	pdf, err := NewPDF(c.Image(), c.opts)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// Save implements scene.Canvas.
func (c Canvas) Save(path string) error {
	pdf, err := NewPDF(c.Image(), c.opts)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}
