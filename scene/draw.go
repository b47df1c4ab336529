package scene

import "fmt"

// Given a validated Document, implements how to draw it
// on a pixel buffer. The buffer itself is provided by a Driver,
// such as a rasterizer writing .png images or a pdf writer.

// Canvas is a pixel buffer, borrowed by the Document while drawing.
type Canvas interface {
	// SetPixel replaces the pixel at (x, y) by `c`.
	// It must return an error wrapping ErrOutOfBounds if (x, y)
	// is outside the canvas.
	SetPixel(x, y uint32, c Pixel) error

	// Save encodes the canvas and writes it to the named file.
	Save(path string) error
}

// RectFiller may be implemented by canvas able to fill
// a rectangle faster than pixel by pixel.
// The rectangle [xmin, xmax] x [ymin, ymax] (both ends included)
// is always within the canvas when FillRect is called.
type RectFiller interface {
	FillRect(xmin, ymin, xmax, ymax uint32, c Pixel) error
}

// Driver allocates canvas.
type Driver interface {
	// NewCanvas returns a `width` x `height` canvas, with every pixel set to `fill`.
	NewCanvas(width, height uint32, fill Pixel) (Canvas, error)
}

func outOfBounds(index int, name string, p Coordinate, width, height uint32) error {
	return newError(KindDrawing, Position{},
		fmt.Sprintf("command %d (%s): point %s is outside the %dx%d canvas", index+1, name, p, width, height),
		ErrOutOfBounds)
}

func canvasFailure(index int, name string, err error) error {
	return newError(KindDrawing, Position{}, fmt.Sprintf("command %d (%s)", index+1, name), err)
}

func (cmd DrawPixel) outside(width, height uint32) (Coordinate, bool) {
	p := cmd.Position
	return p, p.X >= width || p.Y >= height
}

func (cmd DrawPixel) paint(c Canvas) error {
	return c.SetPixel(cmd.Position.X, cmd.Position.Y, cmd.Color)
}

// outside returns the first point of the rectangle outside the canvas,
// scanning columns from left to right, and each column from top to bottom.
func (cmd DrawRect) outside(width, height uint32) (Coordinate, bool) {
	lo, hi := cmd.Bounds()
	switch {
	case lo.X >= width:
		return lo, true
	case hi.Y >= height:
		return Coordinate{X: lo.X, Y: max(lo.Y, height)}, true
	case hi.X >= width:
		return Coordinate{X: width, Y: lo.Y}, true
	}
	return Coordinate{}, false
}

func (cmd DrawRect) paint(c Canvas) error {
	lo, hi := cmd.Bounds()
	if filler, ok := c.(RectFiller); ok {
		return filler.FillRect(lo.X, lo.Y, hi.X, hi.Y, cmd.Color)
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			if err := c.SetPixel(x, y, cmd.Color); err != nil {
				return err
			}
		}
	}
	return nil
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case DrawPixel:
		return "pixel"
	case DrawRect:
		return "rect"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}

// Draw applies the commands of the document on `c`, in order, so that
// later commands overwrite earlier ones. `c` is expected to be a
// Width x Height canvas already filled with the background.
// Each command is checked against the canvas size before being applied,
// and Draw stops at the first failing command.
func (doc *Document) Draw(c Canvas) error {
	for i, cmd := range doc.Commands {
		if p, ok := cmd.outside(doc.Width, doc.Height); ok {
			return outOfBounds(i, commandName(cmd), p, doc.Width, doc.Height)
		}
		if err := cmd.paint(c); err != nil {
			return canvasFailure(i, commandName(cmd), err)
		}
	}
	return nil
}

// Render allocates a canvas with `d`, fills it with the background
// and draws the document on it.
func (doc *Document) Render(d Driver) (Canvas, error) {
	c, err := d.NewCanvas(doc.Width, doc.Height, doc.Background)
	if err != nil {
		return nil, newError(KindDrawing, Position{}, "can't allocate canvas", err)
	}
	Logger().Debug("scene: canvas allocated", "width", doc.Width, "height", doc.Height)
	if err = doc.Draw(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save renders the document with `d` and writes the result to `path`.
// Nothing is written if drawing fails.
func (doc *Document) Save(d Driver, path string) error {
	c, err := doc.Render(d)
	if err != nil {
		return err
	}
	if err = c.Save(path); err != nil {
		return newError(KindDrawing, Position{}, "can't save "+path, err)
	}
	Logger().Debug("scene: canvas saved", "path", path)
	return nil
}
