package scene

import (
	"fmt"
	"image/color"
)

// OpaqueAlpha is the alpha used for colors written with 3 values.
const OpaqueAlpha = 0xff

// Pixel is a non-premultiplied 8-bit RGBA color.
// It implements color.Color, so it can be handed directly to image/draw.
type Pixel struct {
	R, G, B, A uint8
}

// NewPixel returns the color (r, g, b, a).
func NewPixel(r, g, b, a uint8) Pixel { return Pixel{R: r, G: g, B: b, A: a} }

// NRGBA returns the pixel as a standard library color.
func (p Pixel) NRGBA() color.NRGBA { return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A} }

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) { return p.NRGBA().RGBA() }

func (p Pixel) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", p.R, p.G, p.B, p.A)
}

// PixelFromColor converts any color to a Pixel.
func PixelFromColor(c color.Color) Pixel {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Coordinate is a point of the canvas, (0, 0) being the top left pixel.
type Coordinate struct {
	X, Y uint32
}

func (c Coordinate) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Position locates a token in the source text. Both fields are 1-based.
type Position struct {
	Line, Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }
