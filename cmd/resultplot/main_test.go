// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlplot/sqlplot/resultplot"
)

const input = `RESULT algo="qsort" n=10 time=1
RESULT algo="qsort" n=100 time=20
RESULT algo="msort" n=10 time=2
RESULT algo="msort" n=100 time=15
RESULT algo="msort" time=3
RESULT algo="msort" n=1000 time=oops
`

func writeInput(t *testing.T) (dir, path string) {
	dir = t.TempDir()
	path = filepath.Join(dir, "sort.log")
	if err := os.WriteFile(path, []byte(input), 0666); err != nil {
		t.Fatal(err)
	}
	return dir, path
}

func TestPlot(t *testing.T) {
	dir, in := writeInput(t)
	out := filepath.Join(dir, "sort.png")

	var stderr bytes.Buffer
	args := []string{"-x", "n", "-y", "time", "-series", "algo", "-logx", "-width", "3", "-height", "2", "-dpi", "50", "-o", out, in}
	if err := run(&stderr, args); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("%s is not a PNG: %v", out, err)
	}
	if cfg.Width != 150 || cfg.Height != 100 {
		t.Errorf("want 150x100 image, got %dx%d", cfg.Width, cfg.Height)
	}

	want := in + `:6: expected quoted string or number
1 result line(s) without numeric "n" and "time"
`
	if got := stderr.String(); got != want {
		t.Errorf("want stderr:\n%sgot:\n%s", want, got)
	}
}

func TestPlotNoData(t *testing.T) {
	dir, in := writeInput(t)
	out := filepath.Join(dir, "none.png")

	var stderr bytes.Buffer
	err := run(&stderr, []string{"-x", "nosuch", "-y", "time", "-o", out, in})
	if !errors.Is(err, resultplot.ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("failed plot left %s behind", out)
	}
}

func TestUsage(t *testing.T) {
	var stderr bytes.Buffer
	if err := run(&stderr, []string{"-x", "n"}); err != errUsage {
		t.Fatalf("want errUsage, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: resultplot") {
		t.Errorf("want usage on stderr, got:\n%s", stderr.String())
	}
}
