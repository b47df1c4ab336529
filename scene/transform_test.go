package scene

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateCanonical(t *testing.T) {
	doc, err := ParseDocument(header + "pixel (0,0) [255,255,255]\nrect (1,1) (2,2) [255,0,0,128]\n")
	if err != nil {
		t.Fatal(err)
	}
	want := &Document{
		Width:      4,
		Height:     4,
		Background: Pixel{R: 0, G: 0, B: 0, A: 255},
		Commands: []Command{
			DrawPixel{Position: Coordinate{0, 0}, Color: Pixel{R: 255, G: 255, B: 255, A: 255}},
			DrawRect{Corner1: Coordinate{1, 1}, Corner2: Coordinate{2, 2}, Color: Pixel{R: 0, G: 0, B: 128, A: 255}},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("unexpected document (-want +got):\n%s", diff)
	}
}

func TestResolvePixelChannels(t *testing.T) {
	for _, test := range []struct {
		color string
		want  Pixel
	}{
		{"[255,0,0]", Pixel{R: 255, A: 255}},
		{"[1,2,3]", Pixel{R: 1, G: 2, B: 3, A: 255}},
		{"[0,0,0]", Pixel{A: 255}},
		{"[10,20,30,40]", Pixel{R: 20, G: 30, B: 40, A: 10}},
		{"[0,255,0,255]", Pixel{R: 255, G: 0, B: 255, A: 0}},
		{"[255,0,255,0]", Pixel{R: 0, G: 255, B: 0, A: 255}},
	} {
		doc, err := ParseDocument("width 1\nheight 1\nbackground " + test.color)
		if err != nil {
			t.Errorf("%s: %s", test.color, err)
			continue
		}
		if doc.Background != test.want {
			t.Errorf("%s: expected %s, got %s", test.color, test.want, doc.Background)
		}
	}
}

func TestValidateMalformedColor(t *testing.T) {
	for _, color := range []string{"[]", "[1]", "[1,2]", "[1,2,3,4,5]", "[999,999]"} {
		_, err := ParseDocument("width 2\nheight 2\nbackground " + color)
		if !errors.Is(err, ErrMalformedColor) {
			t.Errorf("%s: expected a malformed color error, got %v", color, err)
		}
		if k, _ := KindOf(err); k != KindColor {
			t.Errorf("%s: unexpected kind %s", color, k)
		}
	}
}

func TestValidateNumberRange(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
		text string // the digit run blamed
	}{
		{"huge height", "width 2\nheight 99999999999999\nbackground [0,0,0]\n", "99999999999999"},
		{"32 bit overflow", "width 4294967296\nheight 1\nbackground [0,0,0]\n", "4294967296"},
		{"byte overflow", header + "pixel (0,0) [256,0,0]", "256"},
		{"coordinate overflow", header + "rect (0,0) (1,4294967296) [0,0,0]", "4294967296"},
		{"first failing channel", header + "pixel (0,0) [1,300,2,400]", "300"},
	} {
		t.Run(test.name, func(t *testing.T) {
			doc, err := ParseDocument(test.src)
			if doc != nil {
				t.Error("no document must be returned on failure")
			}
			if !errors.Is(err, ErrNumberRange) {
				t.Fatalf("expected a number range error, got %v", err)
			}
			var numErr *strconv.NumError
			if !errors.As(err, &numErr) {
				t.Fatalf("expected the conversion error to be wrapped, got %v", err)
			}
			if numErr.Num != test.text || numErr.Err != strconv.ErrRange {
				t.Errorf("unexpected conversion error %v", numErr)
			}
		})
	}
}

func TestMaxValuesAreAccepted(t *testing.T) {
	doc, err := ParseDocument("width 4294967295\nheight 0\nbackground [255,255,255,255]\npixel (4294967295,4294967295) [0,0,0]")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Width != 4294967295 {
		t.Errorf("unexpected width %d", doc.Width)
	}
}

func TestValidateOrder(t *testing.T) {
	for _, test := range []struct {
		name string
		src  string
		want error
	}{
		// width is resolved before the background
		{"width first", "width 4294967296\nheight 1\nbackground [1]\n", ErrNumberRange},
		{"background before commands", "width 1\nheight 1\nbackground [1]\npixel (0,0) [256,0,0]", ErrMalformedColor},
		// inside a command, the color is resolved before the coordinates
		{"color before position", header + "pixel (4294967296,0) [1,2]", ErrMalformedColor},
		{"color length before values", header + "pixel (0,0) [256,2]", ErrMalformedColor},
		{"commands in order", header + "pixel (0,0) [1,2]\npixel (0,0) [256,0,0]", ErrMalformedColor},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseDocument(test.src)
			if !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestValidateErrorPosition(t *testing.T) {
	_, err := ParseDocument(header + "pixel (0,0) [1,2,3]\nrect (0,99999999999) (1,1) [1,2,3]")
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected an *Error, got %v", err)
	}
	if e.Line != 5 || e.Column != 9 {
		t.Errorf("expected error at 5:9, got %d:%d", e.Line, e.Column)
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	src := header + "pixel (0,0) [255,255,255]\nrect (1,1) (2,2) [255,0,0,128]\nrect (3,0) (0,3) [9,8,7]"
	first, err := ParseDocument(src)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := ParseDocument(src)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("documents differ (-first +again):\n%s", diff)
		}
	}
}

func TestValidateKeepsCommandOrder(t *testing.T) {
	doc, err := ParseDocument(header + "pixel (0,0) [1,1,1]\nrect (0,0) (1,1) [2,2,2]\npixel (0,0) [3,3,3]")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, cmd := range doc.Commands {
		names = append(names, commandName(cmd))
	}
	if diff := cmp.Diff([]string{"pixel", "rect", "pixel"}, names); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
	if doc.Commands[2].(DrawPixel).Color.R != 3 {
		t.Error("the last command must stay last")
	}
}

func TestValidateNil(t *testing.T) {
	doc, err := Validate(nil)
	if doc != nil || !errors.Is(err, ErrSyntax) {
		t.Errorf("expected a syntax error, got %v, %v", doc, err)
	}
}
