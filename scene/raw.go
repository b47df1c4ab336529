package scene

import (
	"strconv"
	"strings"
)

// This file defines the intermediate form produced by the parser:
// the grammar has been matched, but numbers are not range-checked yet.

// Number is a digit run whose conversion to T is deferred:
// Err holds the conversion failure, if any, and Value is meaningful
// only when Err is nil.
type Number[T uint8 | uint32] struct {
	Text  string
	Pos   Position
	Value T
	Err   error // a *strconv.NumError
}

// newNumber converts the digit run `text`, capturing (not returning) the failure.
func newNumber[T uint8 | uint32](text string, pos Position) Number[T] {
	var zero T
	bitSize := 32
	if _, isByte := any(zero).(uint8); isByte {
		bitSize = 8
	}
	v, err := strconv.ParseUint(text, 10, bitSize)
	return Number[T]{Text: text, Pos: pos, Value: T(v), Err: err}
}

// resolve returns the value or a numeric-range error.
func (n Number[T]) resolve() (T, error) {
	if n.Err != nil {
		return n.Value, newError(KindNumber, n.Pos, "invalid number "+strconv.Quote(n.Text), n.Err)
	}
	return n.Value, nil
}

// RawColor is the unchecked content of a `[...]` color array.
type RawColor struct {
	Pos    Position // of the opening bracket
	Values []Number[uint8]
}

func (c RawColor) String() string {
	chunks := make([]string, len(c.Values))
	for i, v := range c.Values {
		chunks[i] = v.Text
	}
	return "[" + strings.Join(chunks, ",") + "]"
}

// RawCoordinate is the unchecked content of a `(x,y)` pair.
type RawCoordinate struct {
	X, Y Number[uint32]
}

// RawCommand is either a RawPixel or a RawRect.
type RawCommand interface {
	// Pos returns the position of the command keyword.
	Pos() Position
	isRawCommand()
}

// RawPixel is an unchecked `pixel` line.
type RawPixel struct {
	At       Position
	Position RawCoordinate
	Color    RawColor
}

// RawRect is an unchecked `rect` line.
type RawRect struct {
	At               Position
	Corner1, Corner2 RawCoordinate
	Color            RawColor
}

func (c RawPixel) Pos() Position { return c.At }
func (c RawRect) Pos() Position  { return c.At }

func (RawPixel) isRawCommand() {}
func (RawRect) isRawCommand()  {}

// RawDocument is the output of Parse and the input of Validate.
type RawDocument struct {
	Width, Height Number[uint32]
	Background    RawColor
	Commands      []RawCommand
}
