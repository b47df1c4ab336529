package scene

import "fmt"

// resolvePixel checks the number of values of a color before its values,
// which are resolved in the order they are written.
// Four values are read as [alpha, red, green, blue]; three values as
// [red, green, blue] with an opaque alpha.
func resolvePixel(raw RawColor) (Pixel, error) {
	if n := len(raw.Values); n != 3 && n != 4 {
		return Pixel{}, newError(KindColor, raw.Pos,
			fmt.Sprintf("a color must have 3 or 4 values, but got %s with length %d", raw, n), nil)
	}

	var values [4]uint8
	for i, v := range raw.Values {
		b, err := v.resolve()
		if err != nil {
			return Pixel{}, err
		}
		values[i] = b
	}

	if len(raw.Values) == 3 {
		return Pixel{R: values[0], G: values[1], B: values[2], A: OpaqueAlpha}, nil
	}
	return Pixel{A: values[0], R: values[1], G: values[2], B: values[3]}, nil
}

func resolveCoordinate(raw RawCoordinate) (Coordinate, error) {
	x, err := raw.X.resolve()
	if err != nil {
		return Coordinate{}, err
	}
	y, err := raw.Y.resolve()
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{X: x, Y: y}, nil
}

func resolveCommand(raw RawCommand) (Command, error) {
	switch raw := raw.(type) {
	case RawPixel:
		color, err := resolvePixel(raw.Color)
		if err != nil {
			return nil, err
		}
		position, err := resolveCoordinate(raw.Position)
		if err != nil {
			return nil, err
		}
		return DrawPixel{Position: position, Color: color}, nil
	case RawRect:
		color, err := resolvePixel(raw.Color)
		if err != nil {
			return nil, err
		}
		corner1, err := resolveCoordinate(raw.Corner1)
		if err != nil {
			return nil, err
		}
		corner2, err := resolveCoordinate(raw.Corner2)
		if err != nil {
			return nil, err
		}
		return DrawRect{Corner1: corner1, Corner2: corner2, Color: color}, nil
	default:
		return nil, newError(KindSyntax, raw.Pos(), fmt.Sprintf("unsupported command %T", raw), nil)
	}
}

// Validate resolves every deferred number of `raw` and returns the typed
// document, or the first failure in document order: width, height,
// background, then the commands. Coordinates are not checked against
// the canvas size; this is done when drawing.
// A nil document is reported as a syntax error.
func Validate(raw *RawDocument) (*Document, error) {
	if raw == nil {
		return nil, newError(KindSyntax, Position{}, "no document to validate", nil)
	}
	width, err := raw.Width.resolve()
	if err != nil {
		return nil, err
	}
	height, err := raw.Height.resolve()
	if err != nil {
		return nil, err
	}
	background, err := resolvePixel(raw.Background)
	if err != nil {
		return nil, err
	}

	commands := make([]Command, 0, len(raw.Commands))
	for _, rc := range raw.Commands {
		cmd, err := resolveCommand(rc)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}

	return &Document{
		Width:      width,
		Height:     height,
		Background: background,
		Commands:   commands,
	}, nil
}
