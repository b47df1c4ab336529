package scenepdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/pixscene/scene"
	"github.com/google/go-cmp/cmp"
)

func render(t *testing.T, src string, opts Options) Canvas {
	t.Helper()
	doc, err := scene.ParseDocument(src)
	if err != nil {
		t.Fatal(err)
	}
	c, err := doc.Render(Driver{Options: opts})
	if err != nil {
		t.Fatal(err)
	}
	return c.(Canvas)
}

func TestRuns(t *testing.T) {
	c := render(t, `width 4
height 3
background [0,0,0]
rect (1,0) (2,1) [255,0,0]
pixel (3,2) [0,0,0,255]`, Options{})

	black := scene.Pixel{A: 255}
	red := scene.Pixel{R: 255, A: 255}
	want := []run{
		{x: 0, y: 0, length: 1, color: black},
		{x: 1, y: 0, length: 2, color: red},
		{x: 3, y: 0, length: 1, color: black},
		{x: 0, y: 1, length: 1, color: black},
		{x: 1, y: 1, length: 2, color: red},
		{x: 3, y: 1, length: 1, color: black},
		{x: 0, y: 2, length: 3, color: black},
		// (3,2) is transparent
	}
	if diff := cmp.Diff(want, runs(c.Image()), cmp.AllowUnexported(run{})); diff != "" {
		t.Errorf("unexpected runs (-want +got):\n%s", diff)
	}
}

func TestSave(t *testing.T) {
	c := render(t, `width 4
height 4
background [0,0,0]
pixel (0,0) [255,255,255]
rect (1,1) (2,2) [128,255,0,0]`, Options{CellSize: 10})

	path := filepath.Join(t.TempDir(), "canonical.pdf")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Errorf("not a PDF file: %q", content[:min(len(content), 16)])
	}
}

func TestEncode(t *testing.T) {
	c := render(t, "width 2\nheight 1\nbackground [10,20,30]\n", Options{})
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("not a PDF document")
	}
}

func TestPageSize(t *testing.T) {
	c := render(t, "width 3\nheight 2\nbackground [0,0,0]\n", Options{CellSize: 5})
	pdf, err := NewPDF(c.Image(), c.opts)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := pdf.GetPageSize(); w != 15 || h != 10 {
		t.Errorf("expected a 15x10 page, got %gx%g", w, h)
	}

	pdf, err = NewPDF(c.Image(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := pdf.GetPageSize(); w != 3 || h != 2 {
		t.Errorf("expected a 3x2 page, got %gx%g", w, h)
	}
}

func TestEmptyPage(t *testing.T) {
	doc, err := scene.ParseDocument("width 0\nheight 0\nbackground [0,0,0]\n")
	if err != nil {
		t.Fatal(err)
	}
	err = doc.Save(Driver{}, filepath.Join(t.TempDir(), "empty.pdf"))
	if !errors.Is(err, scene.ErrDrawing) || !errors.Is(err, ErrEmptyPage) {
		t.Errorf("expected an empty page error, got %v", err)
	}
}

func TestOutOfBounds(t *testing.T) {
	doc, err := scene.ParseDocument("width 2\nheight 2\nbackground [0,0,0]\nrect (0,0) (2,2) [255,0,0]")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err = doc.Save(Driver{}, path); !errors.Is(err, scene.ErrOutOfBounds) {
		t.Errorf("expected an out of bounds error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("nothing should be written: %v", statErr)
	}
}
