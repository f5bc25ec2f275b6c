// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	for _, test := range []struct {
		items []Item
		want  string
	}{
		{nil, "RESULT "},
		{[]Item{Str("k", "xyz")}, `RESULT k="xyz"`},
		{[]Item{Str("k", "")}, `RESULT k=""`},
		{[]Item{Str("a", "xyz"), Int64("b", 1), Float64("c", -5.5)}, `RESULT a="xyz" b=1 c=-5.5`},
		{[]Item{Str("s", `back\slash and spaces`)}, `RESULT s="back\slash and spaces"`},
		{[]Item{Int64("min", math.MinInt64), Int64("zero", 0)}, `RESULT min=-9223372036854775808 zero=0`},
		{[]Item{Int64("a", 1), Int64("a", 2)}, `RESULT a=1 a=2`},
	} {
		if got := Encode(test.items); got != test.want {
			t.Errorf("Encode(%v) = %q, want %q", test.items, got, test.want)
		}
	}
}

func TestEncodeFloat(t *testing.T) {
	for _, test := range []struct {
		f    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{1, "1"},
		{-5.5, "-5.5"},
		{0.1, "0.1"},
		{12.1, "12.1"},
		{123456789, "123456789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{math.SmallestNonzeroFloat64, "5e-324"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	} {
		if got := FloatValue(test.f).String(); got != test.want {
			t.Errorf("FloatValue(%v).String() = %q, want %q", test.f, got, test.want)
		}
	}
}

func TestRoundTripInt(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 61, 6124, -5, math.MaxInt64, math.MinInt64, math.MaxInt32 + 1} {
		line := Encode([]Item{Int64("k", n)})
		got, rest, err := Parse(line)
		if err != nil {
			t.Errorf("Parse(%q): %v", line, err)
			continue
		}
		if rest != "" || len(got) != 1 || got[0].Name != "k" || !got[0].Value.Equal(IntValue(n)) {
			t.Errorf("round trip of %d: got %v, rest %q", n, got, rest)
		}
	}
}

func TestRoundTripFloat(t *testing.T) {
	for _, f := range []float64{
		-5.5, 0.1, 12.1, 149.213, 1e21, -1e-7, 1.5e-10, 1.23456e300,
		math.MaxFloat64, math.SmallestNonzeroFloat64, math.Pi,
	} {
		line := Encode([]Item{Float64("k", f)})
		if !strings.ContainsAny(line[len("RESULT k="):], ".e") {
			t.Fatalf("encoding of %v has no '.' or exponent: %q", f, line)
		}
		got, rest, err := Parse(line)
		if err != nil {
			t.Errorf("Parse(%q): %v", line, err)
			continue
		}
		if rest != "" || len(got) != 1 || got[0].Value.Kind() != Float || got[0].Value.Float() != f {
			t.Errorf("round trip of %v: got %v, rest %q", f, got, rest)
		}
	}
}

func TestRoundTripNonFinite(t *testing.T) {
	items := []Item{Float64("nan", math.NaN()), Float64("pos", math.Inf(1)), Float64("neg", math.Inf(-1))}
	line := Encode(items)
	if want := "RESULT nan=NaN pos=+Inf neg=-Inf"; line != want {
		t.Fatalf("Encode = %q, want %q", line, want)
	}
	got, err := ParseExact(line)
	if err != nil {
		t.Fatalf("ParseExact(%q): %v", line, err)
	}
	if len(got) != len(items) {
		t.Fatalf("round trip of %q: got %v", line, got)
	}
	for i := range items {
		if got[i].Value.Kind() != Float || !got[i].Value.Equal(items[i].Value) {
			t.Errorf("round trip of %v: got %v", items[i], got[i])
		}
	}
}

func TestIntegralFloatReadsAsInt(t *testing.T) {
	// Integral floats print without a decimal point, so they come
	// back as integers with the same numeric value.
	line := Encode([]Item{Float64("k", 5)})
	if line != "RESULT k=5" {
		t.Fatalf("got %q", line)
	}
	got, _, err := Parse(line)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := got[0].Value.Number(); !ok || n != 5 || got[0].Value.Kind() != Int {
		t.Errorf("got %v", got[0].Value)
	}
}

func TestRoundTripString(t *testing.T) {
	for _, s := range []string{"", "xyz", "hello there", "a=b c=d", `\n\t`, "☃"} {
		line := Encode([]Item{Str("k", s), Int64("n", 1)})
		got, rest, err := Parse(line)
		if err != nil {
			t.Errorf("Parse(%q): %v", line, err)
			continue
		}
		want := Line{Str("k", s), Int64("n", 1)}
		if rest != "" || len(got) != 2 || !got[0].Value.Equal(want[0].Value) || !got[1].Value.Equal(want[1].Value) {
			t.Errorf("round trip of %q: got %v, rest %q", s, got, rest)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	items := []Item{Str("algo", "qsort"), Int64("n", 100), Float64("t", 0.25)}
	a, b := Encode(items), Encode(append([]Item(nil), items...))
	if a != b {
		t.Errorf("Encode not deterministic: %q != %q", a, b)
	}
	if got := string(AppendLine([]byte("prefix: "), items)); got != "prefix: "+a {
		t.Errorf("AppendLine = %q", got)
	}
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLine(&buf, []Item{Int64("a", 1)}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "RESULT a=1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestValueText(t *testing.T) {
	for _, test := range []struct {
		v          Value
		text, code string
	}{
		{StrValue("x y"), "x y", `"x y"`},
		{IntValue(-3), "-3", "-3"},
		{FloatValue(2.5), "2.5", "2.5"},
	} {
		if got := test.v.Text(); got != test.text {
			t.Errorf("%#v.Text() = %q, want %q", test.v, got, test.text)
		}
		if got := test.v.String(); got != test.code {
			t.Errorf("%#v.String() = %q, want %q", test.v, got, test.code)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	items := []Item{
		Str("algo", "quicksort"), Int64("n", 1000000), Int64("threads", 8),
		Float64("time", 0.081531), Float64("rate", 1.2265e+07), Str("host", "build-17"),
	}
	var buf []byte
	for i := 0; i < b.N; i++ {
		buf = AppendLine(buf[:0], items)
	}
	b.ReportMetric(float64(len(buf)), "bytes/line")
}
