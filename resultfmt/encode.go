// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"io"
	"math"
	"strconv"
)

// Encode returns the result line for items, without a trailing
// newline.
//
// Items are written in order and are not filtered or validated. If
// items is empty, Encode returns just the marker "RESULT ".
func Encode(items []Item) string {
	return string(AppendLine(make([]byte, 0, 16*len(items)+len(Marker)), items))
}

// AppendLine appends the result line for items to dst and returns the
// extended buffer.
func AppendLine(dst []byte, items []Item) []byte {
	dst = append(dst, Marker...)
	for i, it := range items {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, it.Name...)
		dst = append(dst, '=')
		dst = it.Value.append(dst)
	}
	return dst
}

// WriteLine writes the result line for items to w, followed by a
// newline.
func WriteLine(w io.Writer, items []Item) error {
	buf := AppendLine(nil, items)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

func (v Value) append(dst []byte) []byte {
	switch v.kind {
	case Int:
		return strconv.AppendInt(dst, v.num, 10)
	case Float:
		return appendFloat(dst, v.flt)
	}
	dst = append(dst, '"')
	dst = append(dst, v.str...)
	return append(dst, '"')
}

// appendFloat formats f in the shortest form that parses back to f.
// Numbers of ordinary magnitude are written in plain decimal, so 5
// is "5" and -5.5 is "-5.5". Very large or small magnitudes use an
// exponent, which the numeric grammar accepts. Non-finite values are
// written "NaN", "+Inf" and "-Inf".
func appendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.AppendFloat(dst, f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	dst = strconv.AppendFloat(dst, f, fmt, -1, 64)
	if fmt == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}
