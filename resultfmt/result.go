// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultfmt reads and writes result lines.
//
// A result line is a single line of text that a program under
// measurement prints alongside its ordinary log output:
//
//	RESULT algo="quicksort" n=1000000 time=0.0815
//
// The line begins with the literal marker "RESULT " followed by
// space-separated name=value items. A value is a double-quoted
// string, an integer, or a floating-point number. Strings may not
// contain '"'; there is no escape mechanism.
//
// Encode and Parse convert between items and text. Reader and Files
// scan arbitrary output for result lines, skipping everything else,
// and Writer writes result lines back out. Fields derives the items of
// a line from a Go struct.
package resultfmt

import (
	"fmt"
	"strconv"
)

// Marker is the literal prefix of every result line.
const Marker = "RESULT "

// A Kind is the type of a Value.
type Kind uint8

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// A Value is a typed result value: a string, a 64-bit signed integer,
// or a 64-bit float. The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
}

// StrValue returns a string Value. s must not contain '"'.
func StrValue(s string) Value { return Value{kind: String, str: s} }

// IntValue returns an integer Value.
func IntValue(n int64) Value { return Value{kind: Int, num: n} }

// FloatValue returns a floating-point Value.
func FloatValue(f float64) Value { return Value{kind: Float, flt: f} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Str returns the payload of a string Value, or "" for other kinds.
func (v Value) Str() string { return v.str }

// Int returns the payload of an integer Value, or 0 for other kinds.
func (v Value) Int() int64 { return v.num }

// Float returns the payload of a floating-point Value, or 0 for other
// kinds.
func (v Value) Float() float64 { return v.flt }

// Number returns v as a float64 and reports whether v is numeric.
// Integers are converted.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case Int:
		return float64(v.num), true
	case Float:
		return v.flt, true
	}
	return 0, false
}

// Equal reports whether v and w have the same kind and payload.
// NaN floats are equal to each other.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case Int:
		return v.num == w.num
	case Float:
		return v.flt == w.flt || (v.flt != v.flt && w.flt != w.flt)
	}
	return v.str == w.str
}

// String returns v as it appears in an encoded result line.
func (v Value) String() string {
	return string(v.append(nil))
}

// Text returns v without string quoting. This is the form used for
// grouping and display.
func (v Value) Text() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.num, 10)
	case Float:
		return string(appendFloat(nil, v.flt))
	}
	return v.str
}

// An Item is a single name=value pair of a result line.
//
// Name must be non-empty and contain neither '=' nor whitespace.
// Encode does not check this; see Fields for validated construction.
type Item struct {
	Name  string
	Value Value
}

// Str returns a string Item.
func Str(name, s string) Item { return Item{name, StrValue(s)} }

// Int64 returns an integer Item.
func Int64(name string, n int64) Item { return Item{name, IntValue(n)} }

// Float64 returns a floating-point Item.
func Float64(name string, f float64) Item { return Item{name, FloatValue(f)} }

func (it Item) String() string {
	return it.Name + "=" + it.Value.String()
}

// A Line is the ordered list of items of one result line.
//
// Order is significant and names need not be unique.
type Line []Item

// Get returns the value of the first item named name.
func (l Line) Get(name string) (Value, bool) {
	for _, it := range l {
		if it.Name == name {
			return it.Value, true
		}
	}
	return Value{}, false
}

// Names returns the item names of l in order, including duplicates.
func (l Line) Names() []string {
	names := make([]string, len(l))
	for i, it := range l {
		names[i] = it.Name
	}
	return names
}

// String returns the encoded form of l.
func (l Line) String() string {
	return Encode(l)
}
