// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// A Result is a single result line read by a Reader.
type Result struct {
	// Items are the items of the line, in order.
	Items Line

	// Rest is any text that followed the items on the same line.
	Rest string

	// Label identifies the input this Result was read from. Files
	// sets it to the input's label; it is "" for a plain Reader.
	Label string

	// fileName and line record where this Result was read from.
	fileName string
	line     int
}

// Pos returns the file name and line number of a Result that was read
// by a Reader. For Results that were not read from a file, it returns
// "", 0.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of r that shares no state with r.
func (r *Result) Clone() *Result {
	r2 := *r
	r2.Items = append(Line(nil), r.Items...)
	return &r2
}

// A Record is a single record read from an input. It may be a *Result
// or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file. If this record was not
	// read from a file, it returns "", 0.
	Pos() (fileName string, line int)
}

var _ Record = (*Result)(nil)
var _ Record = (*SyntaxError)(nil)

// A Reader scans text for result lines.
//
// Lines that do not begin with the "RESULT" marker are ordinary
// output and are skipped. Lines that begin with the marker but are
// malformed are returned as *SyntaxError records, which are not fatal.
//
// Its API is modeled on bufio.Scanner. A Reader reuses its Result
// between calls to Scan; a caller should Clone anything it needs to
// retain.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	rec    Record
	result Result
	label  string
}

var noResult = &SyntaxError{Msg: "Reader.Scan has not been called"}

// NewReader constructs a reader to scan r for result lines. fileName
// is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.rec = nil
	r.label = ""

	r.result.Items = r.result.Items[:0]
	r.result.Rest = ""
	r.result.Label = ""
	r.result.fileName = fileName
	r.result.line = 0
}

var markerWord = []byte(Marker[:len(Marker)-1])

// isCandidate reports whether line claims to be a result line.
func isCandidate(line []byte) bool {
	if !bytes.HasPrefix(line, markerWord) {
		return false
	}
	rest := line[len(markerWord):]
	return len(rest) == 0 || isSpace(rune(rest[0]))
}

// Scan advances the reader to the next result line and reports
// whether one was read. The caller should use the Result method to
// get the record. If Scan reaches EOF or an I/O error occurs, it
// returns false, in which case the caller should use the Err method
// to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	r.rec = nil

	for r.s.Scan() {
		r.result.line++
		line := r.s.Bytes()
		if !isCandidate(line) {
			// Ordinary output.
			continue
		}
		text := string(line)
		p := parser{src: text}
		items, err := p.line(r.result.Items[:0])
		if err != nil {
			serr := err.(*SyntaxError)
			serr.FileName, serr.Line = r.result.fileName, r.result.line
			r.rec = serr
			return true
		}
		r.result.Items = items
		r.result.Rest = text[p.pos:]
		r.result.Label = r.label
		r.rec = &r.result
		return true
	}

	// We hit EOF. Check for IO errors.
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.result.fileName, r.result.line, err)
	}
	return false
}

// Result returns the record that was just read by Scan. This is either
// a *Result or a *SyntaxError indicating a malformed result line.
//
// Syntax errors are non-fatal, so the caller can continue to call
// Scan.
//
// If this returns a *Result, the caller should not retain the Result,
// as it will be overwritten by the next call to Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		// This should only happen if Scan has never been called.
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
