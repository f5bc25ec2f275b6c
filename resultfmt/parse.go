// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// An ErrorKind classifies a SyntaxError. ErrorKinds are themselves
// errors, so callers can test for them with errors.Is.
type ErrorKind uint8

const (
	// MalformedMarker means the input does not begin with "RESULT ".
	MalformedMarker ErrorKind = iota + 1
	// MalformedItem means an item is not of the form name=value,
	// or its name is empty.
	MalformedItem
	// UnterminatedString means a quoted value has no closing quote.
	UnterminatedString
	// InvalidNumericLiteral means a value is neither a quoted string
	// nor a number.
	InvalidNumericLiteral
	// EmptyLine means the marker is followed by no items.
	EmptyLine
	// TrailingText means ParseExact found text after the last item.
	TrailingText
)

var kindNames = [...]string{
	MalformedMarker:       "malformed marker",
	MalformedItem:         "malformed item",
	UnterminatedString:    "unterminated string",
	InvalidNumericLiteral: "invalid numeric literal",
	EmptyLine:             "empty line",
	TrailingText:          "trailing text",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

func (k ErrorKind) Error() string {
	return "resultfmt: " + k.String()
}

// A SyntaxError reports a malformed result line.
type SyntaxError struct {
	// FileName and Line give the position of the line in its input
	// if it was read by a Reader. Otherwise they are "" and 0.
	FileName string
	Line     int

	Kind ErrorKind
	Text string // The line being parsed
	Off  int    // Byte offset of the error in Text
	Msg  string
}

// Pos returns the file name and line number of the malformed line.
func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	if e.FileName != "" || e.Line != 0 {
		return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
	}
	// Translate byte offset to a rune offset.
	pos := 0
	for i, r := range e.Text {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			pos++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Text, pos, "")
}

// Is reports whether target is e's ErrorKind.
func (e *SyntaxError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Parse parses a result line.
//
// It returns the items of the line and the unconsumed remainder of
// the input. Parsing stops at the first token after an item that is
// not itself the start of an item (name followed by '='), so text
// may follow a result line; whitespace after the last item is
// consumed. Callers that require the line to end there should check
// that rest is empty, or use ParseExact.
//
// Once "name=" has been read, the value must be well formed: a
// malformed value fails the whole line rather than ending it.
//
// String values in the returned Line share memory with line.
//
// If line is not a well-formed result line, Parse returns a
// *SyntaxError and no items.
func Parse(line string) (items Line, rest string, err error) {
	p := parser{src: line}
	items, err = p.line(nil)
	if err != nil {
		return nil, "", err
	}
	return items, line[p.pos:], nil
}

// ParseExact is like Parse, but fails with a TrailingText error if
// anything other than whitespace follows the last item.
func ParseExact(line string) (Line, error) {
	items, rest, err := Parse(line)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		off := len(line) - len(rest)
		return nil, &SyntaxError{Kind: TrailingText, Text: line, Off: off, Msg: "unexpected " + strconv.Quote(rest)}
	}
	return items, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) error(kind ErrorKind, off int, msg string) *SyntaxError {
	return &SyntaxError{Kind: kind, Text: p.src, Off: off, Msg: msg}
}

// line parses p.src, appending items to dst.
func (p *parser) line(dst Line) (Line, error) {
	if !strings.HasPrefix(p.src, Marker) {
		return nil, p.error(MalformedMarker, 0, `expected "RESULT "`)
	}
	p.pos = len(Marker)
	if strings.TrimSpace(p.src[p.pos:]) == "" {
		return nil, p.error(EmptyLine, p.pos, "expected at least one name=value")
	}

	// The first item is mandatory.
	it, err := p.item()
	if err != nil {
		return nil, err
	}
	items := append(dst, it)

	for {
		save := p.pos
		if p.skip(isBlank) == 0 || !p.atItem() {
			p.pos = save
			break
		}
		it, err := p.item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	p.skip(isSpace)
	return items, nil
}

// atItem reports whether the input at p.pos begins with a name
// followed by '='.
func (p *parser) atItem() bool {
	n := nameLen(p.src[p.pos:])
	return n > 0 && p.pos+n < len(p.src) && p.src[p.pos+n] == '='
}

func (p *parser) item() (Item, error) {
	start := p.pos
	n := nameLen(p.src[p.pos:])
	if p.pos+n >= len(p.src) || p.src[p.pos+n] != '=' {
		return Item{}, p.error(MalformedItem, start, "expected name=value")
	}
	if n == 0 {
		return Item{}, p.error(MalformedItem, start, "missing name before '='")
	}
	name := p.src[p.pos : p.pos+n]
	p.pos += n + 1 // Skip name and '='

	val, err := p.value()
	if err != nil {
		return Item{}, err
	}
	return Item{name, val}, nil
}

func (p *parser) value() (Value, error) {
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		end := strings.IndexByte(p.src[p.pos+1:], '"')
		if end < 0 {
			return Value{}, p.error(UnterminatedString, start, "missing end quote")
		}
		s := p.src[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return StrValue(s), nil
	}

	// Take the longest real literal, then decide whether that exact
	// text is an integer.
	n := numberLen(p.src[p.pos:])
	if n == 0 {
		return Value{}, p.error(InvalidNumericLiteral, start, "expected quoted string or number")
	}
	lit := p.src[p.pos : p.pos+n]
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		p.pos += n
		return IntValue(i), nil
	}
	if s := strings.TrimLeft(lit, "+-"); strings.EqualFold(s, "nan") {
		// ParseFloat rejects a signed NaN.
		p.pos += n
		return FloatValue(math.NaN()), nil
	}
	// Magnitudes beyond float64 become ±Inf.
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return Value{}, p.error(InvalidNumericLiteral, start, "parsing "+strconv.Quote(lit)+": "+err.Error())
	}
	p.pos += n
	return FloatValue(f), nil
}

// skip consumes bytes matching class and returns how many it
// consumed.
func (p *parser) skip(class func(rune) bool) int {
	start := p.pos
	for p.pos < len(p.src) {
		r, size := rune(p.src[p.pos]), 1
		if r >= utf8.RuneSelf {
			r, size = utf8.DecodeRuneInString(p.src[p.pos:])
		}
		if !class(r) {
			break
		}
		p.pos += size
	}
	return p.pos - start
}

// isBlank reports whether r separates items.
func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

const asciiSpace uint64 = 1<<'\t' | 1<<'\n' | 1<<'\v' | 1<<'\f' | 1<<'\r' | 1<<' '

func isSpace(r rune) bool {
	if r < utf8.RuneSelf {
		return (asciiSpace>>r)&1 != 0
	}
	return unicode.IsSpace(r)
}

// nameLen returns the length of the name at the beginning of s.
// A name is a run of anything but '=' and whitespace.
func nameLen(s string) int {
	for i, r := range s {
		if r == '=' || isSpace(r) {
			return i
		}
	}
	return len(s)
}

// numberLen returns the length of the longest prefix of s that is a
// real number literal:
//
//	[+-]? (digits ('.' digits?)? | '.' digits) ([eE] [+-]? digits)?
//	[+-]? (infinity | inf | nan)
//
// The words are matched without regard to case. It returns 0 if s
// does not begin with a number.
func numberLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if n := specialLen(s[i:]); n > 0 {
		return i + n
	}
	whole := digits(s[i:])
	i += whole
	frac := 0
	if i < len(s) && s[i] == '.' {
		frac = digits(s[i+1:])
		if whole > 0 || frac > 0 {
			i += 1 + frac
		}
	}
	if whole == 0 && frac == 0 {
		return 0
	}
	return i + exponent(s[i:])
}

// exponent returns the length of the exponent at the beginning of s,
// or 0 if there is none. An 'e' without digits is not an exponent.
func exponent(s string) int {
	if len(s) < 2 || (s[0] != 'e' && s[0] != 'E') {
		return 0
	}
	i := 1
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	n := digits(s[i:])
	if n == 0 {
		return 0
	}
	return i + n
}

// specialWords are the non-finite literals, longest first.
var specialWords = [...]string{"infinity", "inf", "nan"}

func specialLen(s string) int {
	for _, w := range specialWords {
		if len(s) >= len(w) && strings.EqualFold(s[:len(w)], w) {
			return len(w)
		}
	}
	return 0
}

func digits(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i
		}
	}
	return len(s)
}
