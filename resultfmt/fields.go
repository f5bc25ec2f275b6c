// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// A ResultLiner formats itself as a result line. Marshal uses it in
// preference to reflection.
type ResultLiner interface {
	ResultLine() string
}

// A FieldError reports a struct field that cannot be turned into an
// Item.
type FieldError struct {
	Type  reflect.Type
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("resultfmt: field %s.%s: %v", e.Type, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var (
	errQuote     = errors.New(`string contains '"'`)
	errUintRange = errors.New("unsigned value out of int64 range")
)

// Fields returns the items of v, which must be a struct or a pointer to
// one.
//
// Each exported field becomes one item, in declaration order, named
// after the field. The "result" struct tag controls this:
//
//	Iters int    `result:"-"`       // Field is skipped.
//	N     int    `result:"n_items"` // Item is named "n_items".
//
// A renamed field must start with an ASCII letter or underscore and
// contain only ASCII letters, digits, and underscores.
//
// Fields of string kind become strings, bools become the strings
// "true" and "false", integer kinds become integers, and float kinds
// become floats. Fields of any other kind must implement
// encoding.TextMarshaler or fmt.Stringer and become strings.
//
// Tags are checked once per type. Values are checked on every call:
// strings may not contain '"', floats must be finite, and unsigned
// values must fit in an int64.
func Fields(v any) ([]Item, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("resultfmt: Fields of nil %s", rv.Type())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("resultfmt: Fields of non-struct %v", describe(rv))
	}

	tf := cachedFields(rv.Type())
	if tf.err != nil {
		return nil, tf.err
	}
	items := make([]Item, 0, len(tf.fields))
	for _, f := range tf.fields {
		val, err := f.enc(rv.Field(f.index))
		if err != nil {
			return nil, &FieldError{rv.Type(), rv.Type().Field(f.index).Name, err}
		}
		items = append(items, Item{f.name, val})
	}
	return items, nil
}

// Marshal returns the result line for v. If v implements ResultLiner,
// Marshal returns its ResultLine. Otherwise it encodes Fields(v).
func Marshal(v any) (string, error) {
	if rl, ok := v.(ResultLiner); ok {
		return rl.ResultLine(), nil
	}
	items, err := Fields(v)
	if err != nil {
		return "", err
	}
	return Encode(items), nil
}

func describe(rv reflect.Value) string {
	if !rv.IsValid() {
		return "nil"
	}
	return rv.Type().String()
}

type field struct {
	name  string
	index int
	enc   encoderFunc
}

type encoderFunc func(reflect.Value) (Value, error)

type typeFields struct {
	fields []field
	err    error
}

var fieldCache sync.Map // map[reflect.Type]*typeFields

func cachedFields(t reflect.Type) *typeFields {
	if tf, ok := fieldCache.Load(t); ok {
		return tf.(*typeFields)
	}
	tf, _ := fieldCache.LoadOrStore(t, typeFieldsOf(t))
	return tf.(*typeFields)
}

func typeFieldsOf(t reflect.Type) *typeFields {
	tf := new(typeFields)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("result"); ok {
			if tag == "-" {
				continue
			}
			if err := checkRename(tag); err != nil {
				tf.err = &FieldError{t, sf.Name, err}
				return tf
			}
			name = tag
		}
		enc := encoderFor(sf.Type)
		if enc == nil {
			tf.err = &FieldError{t, sf.Name, fmt.Errorf("unsupported type %s", sf.Type)}
			return tf
		}
		tf.fields = append(tf.fields, field{name, i, enc})
	}
	return tf
}

// checkRename validates a name given in a "result" struct tag.
func checkRename(name string) error {
	if name == "" {
		return errors.New(`result tag: name may not be empty`)
	}
	if c := name[0]; c != '_' && !isASCIILetter(c) {
		return fmt.Errorf("result tag %q: must start with an alphabetic character or underscore", name)
	}
	if strings.ContainsAny(name, " \t\n\v\f\r") {
		return fmt.Errorf("result tag %q: may not contain whitespace", name)
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c != '_' && !isASCIILetter(c) && !('0' <= c && c <= '9') {
			return fmt.Errorf("result tag %q: may only contain ascii alphanumeric characters and underscores", name)
		}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

var (
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

func encoderFor(t reflect.Type) encoderFunc {
	switch t.Kind() {
	case reflect.String:
		return func(v reflect.Value) (Value, error) { return checkStr(v.String()) }
	case reflect.Bool:
		return func(v reflect.Value) (Value, error) { return StrValue(strconv.FormatBool(v.Bool())), nil }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v reflect.Value) (Value, error) { return IntValue(v.Int()), nil }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(v reflect.Value) (Value, error) {
			u := v.Uint()
			if u > math.MaxInt64 {
				return Value{}, errUintRange
			}
			return IntValue(int64(u)), nil
		}
	case reflect.Float32:
		return func(v reflect.Value) (Value, error) {
			// Widen through the shortest float32 text so that
			// float32(0.1) encodes as 0.1.
			f, _ := strconv.ParseFloat(strconv.FormatFloat(v.Float(), 'g', -1, 32), 64)
			return FloatValue(f), nil
		}
	case reflect.Float64:
		return func(v reflect.Value) (Value, error) { return FloatValue(v.Float()), nil }
	}
	switch {
	case t.Implements(textMarshalerType):
		return func(v reflect.Value) (Value, error) {
			if isNil(v) {
				return StrValue(""), nil
			}
			b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return Value{}, err
			}
			return checkStr(string(b))
		}
	case t.Implements(stringerType):
		return func(v reflect.Value) (Value, error) {
			if isNil(v) {
				return StrValue(""), nil
			}
			return checkStr(v.Interface().(fmt.Stringer).String())
		}
	}
	return nil
}

func checkStr(s string) (Value, error) {
	if strings.IndexByte(s, '"') >= 0 {
		return Value{}, errQuote
	}
	return StrValue(s), nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
