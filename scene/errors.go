package scene

import (
	"errors"
	"fmt"
)

// Kind classifies the failures of the parse, validate and render pipeline.
type Kind uint8

const (
	// KindInput reports a missing or unreadable source.
	KindInput Kind = iota
	// KindSyntax reports a grammar mismatch.
	KindSyntax
	// KindNumber reports a digit run that does not fit its target integer.
	KindNumber
	// KindColor reports a color array that has neither 3 nor 4 values.
	KindColor
	// KindDrawing reports an out-of-bounds access or a failing pixel buffer.
	KindDrawing
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindSyntax:
		return "syntax"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	case KindDrawing:
		return "drawing"
	default:
		return "<unknown Kind>"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrFileNotFound   = errors.New("scene: source file not found or unreadable")
	ErrSyntax         = errors.New("scene: syntax error")
	ErrNumberRange    = errors.New("scene: number out of range")
	ErrMalformedColor = errors.New("scene: malformed color")
	ErrDrawing        = errors.New("scene: drawing error")

	// ErrOutOfBounds is wrapped by drawing errors caused by a point outside
	// the canvas. Canvas implementations should wrap it too.
	ErrOutOfBounds = errors.New("point out of bounds")
)

var kindSentinels = [...]error{
	KindInput:   ErrFileNotFound,
	KindSyntax:  ErrSyntax,
	KindNumber:  ErrNumberRange,
	KindColor:   ErrMalformedColor,
	KindDrawing: ErrDrawing,
}

// Error is the error type returned by every operation of this package.
// Line and Column are 1-based and zero when the error has no source position.
type Error struct {
	Kind   Kind
	Line   int
	Column int
	Msg    string
	Err    error // underlying cause, may be nil
}

// sentinel returns the error matched by errors.Is for the kind,
// or nil for unknown kinds.
func (k Kind) sentinel() error {
	if int(k) < len(kindSentinels) {
		return kindSentinels[k]
	}
	return nil
}

func (e *Error) Error() string {
	s := "scene: " + e.Kind.String() + " error"
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		s = sentinel.Error()
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" at line %d, column %d", e.Line, e.Column)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of the error kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && sentinel == target
}

func newError(kind Kind, pos Position, msg string, cause error) *Error {
	return &Error{Kind: kind, Line: pos.Line, Column: pos.Column, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
