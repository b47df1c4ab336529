// Implements a raster backend to render scenes,
// by drawing into an image.NRGBA.
package sceneraster

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/benoitkugler/pixscene/scene"
)

// assert interface conformance
var (
	_ scene.Driver     = Driver{}
	_ scene.Canvas     = (*Canvas)(nil)
	_ scene.RectFiller = (*Canvas)(nil)
)

// MaxPixels is the largest image (width times height) allocated,
// for canvas as well as for their scaled previews.
const MaxPixels = 1 << 28

// ErrTooLarge is returned for images with more than MaxPixels pixels.
var ErrTooLarge = errors.New("sceneraster: canvas too large")

// checkSize fails if a `width` x `height` image, enlarged `scale` times,
// has more than MaxPixels pixels.
func checkSize(width, height uint64, scale int) error {
	if width == 0 || height == 0 {
		return nil
	}
	s := uint64(scale)
	if s > 1<<14 || width*height > MaxPixels/(s*s) {
		return fmt.Errorf("%w: %dx%d scaled %d times", ErrTooLarge, width, height, scale)
	}
	return nil
}

// Driver allocates in-memory canvas.
// The zero value is ready to use and saves images
// at their natural size.
type Driver struct {
	Options Options
}

// Canvas is a pixel buffer stored as a non-premultiplied image,
// so that every written color is kept exactly, including the color
// channels of transparent pixels.
type Canvas struct {
	img  *image.NRGBA
	opts Options
}

// NewCanvas implements scene.Driver.
func (d Driver) NewCanvas(width, height uint32, fill scene.Pixel) (scene.Canvas, error) {
	return NewCanvas(width, height, fill, d.Options)
}

// NewCanvas returns a `width` x `height` canvas filled with `fill`.
func NewCanvas(width, height uint32, fill scene.Pixel, opts Options) (*Canvas, error) {
	if err := checkSize(uint64(width), uint64(height), opts.scale()); err != nil {
		return nil, err
	}
	c := &Canvas{
		img:  image.NewNRGBA(image.Rect(0, 0, int(width), int(height))),
		opts: opts,
	}
	if width != 0 && height != 0 {
		c.fill(0, 0, width-1, height-1, fill)
	}
	return c, nil
}

// Image returns the underlying image, which is shared
// with the canvas.
func (c *Canvas) Image() *image.NRGBA { return c.img }

func (c *Canvas) contains(x, y uint32) bool {
	size := c.img.Rect.Size()
	return uint64(x) < uint64(size.X) && uint64(y) < uint64(size.Y)
}

// SetPixel implements scene.Canvas.
func (c *Canvas) SetPixel(x, y uint32, p scene.Pixel) error {
	if !c.contains(x, y) {
		return fmt.Errorf("%w: (%d,%d)", scene.ErrOutOfBounds, x, y)
	}
	i := c.img.PixOffset(int(x), int(y))
	c.img.Pix[i], c.img.Pix[i+1], c.img.Pix[i+2], c.img.Pix[i+3] = p.R, p.G, p.B, p.A
	return nil
}

// FillRect implements scene.RectFiller.
func (c *Canvas) FillRect(xmin, ymin, xmax, ymax uint32, p scene.Pixel) error {
	if xmin > xmax || ymin > ymax || !c.contains(xmax, ymax) {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d)", scene.ErrOutOfBounds, xmin, ymin, xmax, ymax)
	}
	c.fill(xmin, ymin, xmax, ymax, p)
	return nil
}

// fill writes the first row of the rectangle,
// then copies it to the following rows.
func (c *Canvas) fill(xmin, ymin, xmax, ymax uint32, p scene.Pixel) {
	rowStart := c.img.PixOffset(int(xmin), int(ymin))
	rowEnd := c.img.PixOffset(int(xmax)+1, int(ymin))
	row := c.img.Pix[rowStart:rowEnd]
	for i := 0; i < len(row); i += 4 {
		row[i], row[i+1], row[i+2], row[i+3] = p.R, p.G, p.B, p.A
	}
	for y := int(ymin) + 1; y <= int(ymax); y++ {
		start := c.img.PixOffset(int(xmin), y)
		copy(c.img.Pix[start:start+len(row)], row)
	}
}

// output returns the image to encode, which is a preview
// when the options ask for one.
func (c *Canvas) output() (image.Image, error) {
	if c.opts.isPreview() {
		return Preview(c.img, c.opts)
	}
	return c.img, nil
}

// Encode writes the canvas to `w`, in the given format.
func (c *Canvas) Encode(w io.Writer, format Format) error {
	img, err := c.output()
	if err != nil {
		return err
	}
	return format.encode(w, img)
}

// Save implements scene.Canvas, choosing the image format
// from the extension of `path`.
func (c *Canvas) Save(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error { return c.Encode(w, format) })
}

// RenderToImage reads a scene from `source`, and draws it
// into an image at its natural size.
func RenderToImage(source io.Reader) (*image.NRGBA, error) {
	doc, err := scene.ReadDocumentStream(source)
	if err != nil {
		return nil, err
	}
	c, err := doc.Render(Driver{})
	if err != nil {
		return nil, err
	}
	return c.(*Canvas).Image(), nil
}
