// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultplot

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sqlplot/sqlplot/resultfmt"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func collect(t *testing.T, c *Collection, lines ...string) {
	t.Helper()
	for _, l := range lines {
		items, err := resultfmt.ParseExact(l)
		if err != nil {
			t.Fatal(err)
		}
		c.Add(items)
	}
}

func TestCollection(t *testing.T) {
	c := NewCollection("n", "time", "algo")
	collect(t, c,
		`RESULT algo="q" n=100 time=2.5`,
		`RESULT algo="m" n=10 time=1`,
		`RESULT algo="q" n=10 time=0.5`,
		`RESULT algo="q" time=3`,
		`RESULT algo="m" n="ten" time=1`,
		`RESULT n=1 time=1`,
	)
	if c.Skipped != 2 {
		t.Errorf("want 2 skipped, got %d", c.Skipped)
	}

	want := []*Series{
		{"algo=q", plotter.XYs{{X: 10, Y: 0.5}, {X: 100, Y: 2.5}}},
		{"algo=m", plotter.XYs{{X: 10, Y: 1}}},
		{"algo=", plotter.XYs{{X: 1, Y: 1}}},
	}
	if diff := cmp.Diff(want, c.Series()); diff != "" {
		t.Errorf("series differ (-want +got):\n%s", diff)
	}
}

func TestChart(t *testing.T) {
	c := NewCollection("n", "time")
	collect(t, c,
		`RESULT n=1 time=1`,
		`RESULT n=10 time=4`,
		`RESULT n=100 time=9`,
	)
	var buf bytes.Buffer
	opts := Options{Title: "time", XLabel: "n", YLabel: "s", LogX: true, Width: 4 * vg.Inch, Height: 3 * vg.Inch, DPI: 100}
	if err := Chart(&buf, c.Series(), opts); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("want 400x300 image, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestChartErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, nil, Options{}); !errors.Is(err, ErrNoData) {
		t.Errorf("want ErrNoData, got %v", err)
	}
	if err := Chart(&buf, []*Series{{Name: "empty"}}, Options{}); !errors.Is(err, ErrNoData) {
		t.Errorf("want ErrNoData, got %v", err)
	}

	s := []*Series{{Points: plotter.XYs{{X: 1, Y: 0}}}}
	if err := Chart(&buf, s, Options{LogY: true}); err == nil {
		t.Errorf("want error for zero on log scale")
	}
	if buf.Len() != 0 {
		t.Errorf("failed charts wrote %d bytes", buf.Len())
	}
}
