package scene

import (
	"strconv"
	"strings"
)

// cursor is used while parsing a scene source.
// It only checks the grammar: numbers are collected as deferred tokens.
type cursor struct {
	src       string
	pos       int // byte offset into src
	line      int // 1-based line of pos
	lineStart int // byte offset of the current line
}

func (c *cursor) position() Position {
	return Position{Line: c.line, Column: c.pos - c.lineStart + 1}
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

// found describes the input at the cursor, for error messages.
func (c *cursor) found() string {
	if c.eof() {
		return "end of input"
	}
	rest := c.src[c.pos:]
	if i := strings.IndexAny(rest, "\r\n"); i == 0 {
		return "end of line"
	} else if i > 0 {
		rest = rest[:i]
	}
	if len(rest) > 16 {
		rest = rest[:16] + "..."
	}
	return strconv.Quote(rest)
}

func (c *cursor) errExpected(what string) error {
	return newError(KindSyntax, c.position(), "expected "+what+", found "+c.found(), nil)
}

// newline consumes one line terminator ("\n" or "\r\n"), if any.
func (c *cursor) newline() bool {
	switch {
	case strings.HasPrefix(c.src[c.pos:], "\n"):
		c.pos++
	case strings.HasPrefix(c.src[c.pos:], "\r\n"):
		c.pos += 2
	default:
		return false
	}
	c.line++
	c.lineStart = c.pos
	return true
}

func (c *cursor) expectNewline() error {
	if !c.newline() {
		return c.errExpected("end of line")
	}
	return nil
}

// skipNewlines consumes any number of line terminators and reports how many.
func (c *cursor) skipNewlines() int {
	n := 0
	for c.newline() {
		n++
	}
	return n
}

func (c *cursor) keyword(kw string) error {
	if !strings.HasPrefix(c.src[c.pos:], kw) {
		return c.errExpected(strconv.Quote(kw))
	}
	c.pos += len(kw)
	return nil
}

func (c *cursor) char(ch byte) error {
	if c.eof() || c.peek() != ch {
		return c.errExpected(strconv.QuoteRune(rune(ch)))
	}
	c.pos++
	return nil
}

func isSpace(ch byte) bool { return ch == ' ' || ch == '\t' }

// spaces consumes one or more blanks.
func (c *cursor) spaces() error {
	if !isSpace(c.peek()) {
		return c.errExpected("space")
	}
	for isSpace(c.peek()) {
		c.pos++
	}
	return nil
}

// skipSeparatorSpace consumes the optional white space allowed around commas,
// line terminators included.
func (c *cursor) skipSeparatorSpace() {
	for {
		if isSpace(c.peek()) {
			c.pos++
		} else if !c.newline() {
			return
		}
	}
}

// separator consumes a comma and the white space around it.
// Nothing is consumed when no comma follows.
func (c *cursor) separator() bool {
	saved := *c
	c.skipSeparatorSpace()
	if c.peek() != ',' {
		*c = saved
		return false
	}
	c.pos++
	c.skipSeparatorSpace()
	return true
}

// digits returns the run of decimal digits at the cursor.
func (c *cursor) digits() (string, Position, error) {
	start, pos := c.pos, c.position()
	for ch := c.peek(); '0' <= ch && ch <= '9'; ch = c.peek() {
		c.pos++
	}
	if c.pos == start {
		return "", pos, c.errExpected("digit")
	}
	return c.src[start:c.pos], pos, nil
}

func (c *cursor) number() (Number[uint32], error) {
	text, pos, err := c.digits()
	if err != nil {
		return Number[uint32]{}, err
	}
	return newNumber[uint32](text, pos), nil
}

// coordinate parses `(x,y)`; white space is allowed around the comma only.
func (c *cursor) coordinate() (out RawCoordinate, err error) {
	if err = c.char('('); err != nil {
		return out, err
	}
	if out.X, err = c.number(); err != nil {
		return out, err
	}
	c.skipSeparatorSpace()
	if err = c.char(','); err != nil {
		return out, err
	}
	c.skipSeparatorSpace()
	if out.Y, err = c.number(); err != nil {
		return out, err
	}
	if err = c.char(')'); err != nil {
		return out, err
	}
	return out, nil
}

// color parses `[v1,v2,...]`. The number of values is not checked here.
func (c *cursor) color() (out RawColor, err error) {
	out.Pos = c.position()
	if err = c.char('['); err != nil {
		return out, err
	}
	if c.peek() == ']' {
		c.pos++
		return out, nil
	}
	for {
		text, pos, err := c.digits()
		if err != nil {
			return out, err
		}
		out.Values = append(out.Values, newNumber[uint8](text, pos))

		if !c.separator() {
			break
		}
	}
	if err = c.char(']'); err != nil {
		return out, err
	}
	return out, nil
}

// header parses `keyword SP uint`.
func (c *cursor) header(kw string) (Number[uint32], error) {
	if err := c.keyword(kw); err != nil {
		return Number[uint32]{}, err
	}
	if err := c.spaces(); err != nil {
		return Number[uint32]{}, err
	}
	return c.number()
}

func (c *cursor) pixel(at Position) (cmd RawPixel, err error) {
	cmd.At = at
	if err = c.spaces(); err != nil {
		return cmd, err
	}
	if cmd.Position, err = c.coordinate(); err != nil {
		return cmd, err
	}
	if err = c.spaces(); err != nil {
		return cmd, err
	}
	cmd.Color, err = c.color()
	return cmd, err
}

func (c *cursor) rect(at Position) (cmd RawRect, err error) {
	cmd.At = at
	if err = c.spaces(); err != nil {
		return cmd, err
	}
	if cmd.Corner1, err = c.coordinate(); err != nil {
		return cmd, err
	}
	if err = c.spaces(); err != nil {
		return cmd, err
	}
	if cmd.Corner2, err = c.coordinate(); err != nil {
		return cmd, err
	}
	if err = c.spaces(); err != nil {
		return cmd, err
	}
	cmd.Color, err = c.color()
	return cmd, err
}

func (c *cursor) command() (RawCommand, error) {
	at := c.position()
	rest := c.src[c.pos:]
	switch {
	case strings.HasPrefix(rest, "pixel"):
		c.pos += len("pixel")
		return c.pixel(at)
	case strings.HasPrefix(rest, "rect"):
		c.pos += len("rect")
		return c.rect(at)
	default:
		return nil, c.errExpected(`"pixel" or "rect"`)
	}
}

// Parse matches `src` against the scene grammar and returns the
// unchecked document. Only syntax errors are reported: numbers which
// do not fit their target type are reported later by Validate.
func Parse(src string) (*RawDocument, error) {
	c := &cursor{src: src, line: 1}
	raw := new(RawDocument)

	var err error
	if raw.Width, err = c.header("width"); err != nil {
		return nil, err
	}
	if err = c.expectNewline(); err != nil {
		return nil, err
	}
	if raw.Height, err = c.header("height"); err != nil {
		return nil, err
	}
	if err = c.expectNewline(); err != nil {
		return nil, err
	}
	if err = c.keyword("background"); err != nil {
		return nil, err
	}
	if err = c.spaces(); err != nil {
		return nil, err
	}
	if raw.Background, err = c.color(); err != nil {
		return nil, err
	}

	// the background may be followed by blank lines, and the command list may be empty
	if c.eof() {
		return raw, nil
	}
	if err = c.expectNewline(); err != nil {
		return nil, err
	}
	c.skipNewlines()

	for !c.eof() {
		cmd, err := c.command()
		if err != nil {
			return nil, err
		}
		raw.Commands = append(raw.Commands, cmd)

		if c.eof() {
			break
		}
		if err = c.expectNewline(); err != nil {
			return nil, err
		}
		// trailing blank lines are fine, blank lines between commands are not
		if c.skipNewlines() > 0 && !c.eof() {
			return nil, c.errExpected("end of input (blank lines are not allowed between commands)")
		}
	}
	return raw, nil
}
