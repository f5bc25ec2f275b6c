// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// parseAll reads every record in data and returns a printed form of
// each.
func parseAll(t *testing.T, data string) []string {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []string
	for r.Scan() {
		out = append(out, printRecord(r.Result()))
	}
	if err := r.Err(); err != nil {
		t.Fatal("reading failed: ", err)
	}
	return out
}

func printRecord(rec Record) string {
	file, line := rec.Pos()
	switch rec := rec.(type) {
	case *Result:
		return fmt.Sprintf("%s:%d: %s | %q", file, line, Encode(rec.Items), rec.Rest)
	case *SyntaxError:
		return fmt.Sprintf("%s:%d: SyntaxError: %s", file, line, rec.Kind.String())
	}
	panic(fmt.Sprintf("unknown record type %T", rec))
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		want        []string
	}
	for _, test := range []testCase{
		{
			"basic",
			`RESULT algo="qsort" n=100 time=0.5
RESULT algo="msort" n=100 time=0.75
`,
			[]string{
				`test:1: RESULT algo="qsort" n=100 time=0.5 | ""`,
				`test:2: RESULT algo="msort" n=100 time=0.75 | ""`,
			},
		},
		{
			"interleaved output",
			`starting run 1
warming up... done
RESULT n=1 trailing words
RESULTS are in
	RESULT indented=1
RESULT	n=2
finished
`,
			[]string{
				`test:3: RESULT n=1 | "trailing words"`,
				`test:6: SyntaxError: malformed marker`,
			},
		},
		{
			"bad lines",
			`RESULT
RESULT 
RESULT n=
RESULT n="open
RESULT n=abc
RESULT =1
RESULT n=1
`,
			[]string{
				`test:1: SyntaxError: malformed marker`,
				`test:2: SyntaxError: empty line`,
				`test:3: SyntaxError: invalid numeric literal`,
				`test:4: SyntaxError: unterminated string`,
				`test:5: SyntaxError: invalid numeric literal`,
				`test:6: SyntaxError: malformed item`,
				`test:7: RESULT n=1 | ""`,
			},
		},
		{
			"crlf",
			"RESULT a=1\r\nRESULT b=\"x\"\r\n",
			[]string{
				`test:1: RESULT a=1 | ""`,
				`test:2: RESULT b="x" | ""`,
			},
		},
		{
			"empty",
			"",
			nil,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := parseAll(t, test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("records (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReaderReuse(t *testing.T) {
	r := NewReader(strings.NewReader("RESULT a=\"one\"\nRESULT a=\"two\"\n"), "test")
	if res := r.Result(); res != noResult {
		t.Fatalf("Result before Scan = %v", res)
	}
	var kept []*Result
	for r.Scan() {
		kept = append(kept, r.Result().(*Result).Clone())
	}
	if len(kept) != 2 {
		t.Fatalf("got %d results, want 2", len(kept))
	}
	for i, want := range []string{"one", "two"} {
		if got := kept[i].Items[0].Value.Str(); got != want {
			t.Errorf("result %d: got %q, want %q", i, got, want)
		}
	}
}

func TestReaderSyntaxErrorPos(t *testing.T) {
	r := NewReader(strings.NewReader("log\nRESULT k=\n"), "run.log")
	if !r.Scan() {
		t.Fatal("no record")
	}
	se, ok := r.Result().(*SyntaxError)
	if !ok {
		t.Fatalf("got %T, want *SyntaxError", r.Result())
	}
	if got, want := se.Error(), "run.log:2: expected quoted string or number"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if se.Text != "RESULT k=" || se.Off != 9 {
		t.Errorf("got Text %q Off %d", se.Text, se.Off)
	}
}
