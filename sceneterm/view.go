// Package sceneterm shows rendered scenes in a terminal.
// Every terminal cell displays two vertically stacked pixels,
// using the upper half block character with the top pixel as
// foreground color and the bottom pixel as background color.
// Transparent pixels are blended over black.
package sceneterm

import (
	"fmt"
	"image"

	"github.com/benoitkugler/pixscene/scene"
	"github.com/benoitkugler/pixscene/sceneraster"
	"github.com/gdamore/tcell/v2"
)

const upperHalfBlock = '▀'

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)

// Viewer displays an image on a screen, scrolled by the arrow keys.
type Viewer struct {
	screen tcell.Screen
	img    *image.NRGBA
	title  string

	offX, offY int // top left pixel shown
}

// NewViewer returns a viewer for `img`. The screen must be initialized,
// and is not finalized by the viewer.
func NewViewer(screen tcell.Screen, img *image.NRGBA, title string) *Viewer {
	return &Viewer{screen: screen, img: img, title: title}
}

// View renders `doc` and shows it on the terminal until the user quits.
func View(doc *scene.Document, title string) error {
	c, err := doc.Render(sceneraster.Driver{})
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return NewViewer(screen, c.(*sceneraster.Canvas).Image(), title).Run()
}

// blend returns the terminal color of `p`, composited over black.
func blend(p scene.Pixel) tcell.Color {
	a := int32(p.A)
	return tcell.NewRGBColor(int32(p.R)*a/scene.OpaqueAlpha, int32(p.G)*a/scene.OpaqueAlpha, int32(p.B)*a/scene.OpaqueAlpha)
}

// pixel returns the color of the image pixel (x, y),
// or tcell.ColorDefault outside the image.
func (v *Viewer) pixel(x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(v.img.Bounds()) {
		return tcell.ColorDefault
	}
	return blend(scene.PixelFromColor(v.img.NRGBAAt(x, y)))
}

// viewport returns the number of image pixels the screen shows
// horizontally and vertically, the last row being kept for the status line.
func (v *Viewer) viewport() (w, h int) {
	w, h = v.screen.Size()
	return w, 2 * max(h-1, 0)
}

// scroll moves the view, clamped so that it never moves past the image.
func (v *Viewer) scroll(dx, dy int) {
	w, h := v.viewport()
	size := v.img.Bounds().Size()
	v.offX = min(max(v.offX+dx, 0), max(size.X-w, 0))
	v.offY = min(max(v.offY+dy, 0), max(size.Y-h, 0))
}

// Draw paints the visible part of the image and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.viewport()
	origin := v.img.Bounds().Min
	for row := 0; row < h/2; row++ {
		for col := 0; col < w; col++ {
			x, y := origin.X+v.offX+col, origin.Y+v.offY+2*row
			top, bottom := v.pixel(x, y), v.pixel(x, y+1)
			if top == tcell.ColorDefault {
				continue
			}
			v.screen.SetContent(col, row, upperHalfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	if _, screenH := v.screen.Size(); screenH > 0 {
		v.drawStatus(w, screenH-1)
	}
	v.screen.Show()
}

func (v *Viewer) drawStatus(width, row int) {
	size := v.img.Bounds().Size()
	status := fmt.Sprintf(" %s %dx%d at (%d,%d), arrows: scroll, q: quit", v.title, size.X, size.Y, v.offX, v.offY)
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, r, nil, statusStyle)
		col++
	}
	for ; col < width; col++ {
		v.screen.SetContent(col, row, ' ', nil, statusStyle)
	}
}

// handle applies `ev` and reports whether the viewer should keep running.
func (v *Viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.scroll(-1, 0)
		case tcell.KeyRight:
			v.scroll(1, 0)
		case tcell.KeyUp:
			v.scroll(0, -2)
		case tcell.KeyDown:
			v.scroll(0, 2)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventResize:
		v.scroll(0, 0)
		v.screen.Sync()
	}
	return true
}

// Run draws the image and processes events until the user quits
// or the screen is finalized.
func (v *Viewer) Run() error {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !v.handle(ev) {
			return nil
		}
		v.Draw()
	}
}
