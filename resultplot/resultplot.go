// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultplot draws line charts of result values.
//
// A Collection extracts (x, y) points from two numeric fields of each
// result line and groups them into series by the values of key
// fields. Chart renders the series as a PNG image.
package resultplot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strings"

	"github.com/sqlplot/sqlplot/resultfmt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// A Series is a named sequence of points.
type Series struct {
	Name   string
	Points plotter.XYs
}

// A Collection groups (X, Y) points into series.
type Collection struct {
	X, Y string   // names of the abscissa and ordinate fields
	By   []string // series key fields

	// Skipped counts lines passed to Add that lacked a numeric X
	// or Y.
	Skipped int

	index  map[string]*Series
	series []*Series
}

// NewCollection returns an empty Collection plotting field y against
// field x, with one series per distinct value of the fields in by.
func NewCollection(x, y string, by ...string) *Collection {
	return &Collection{X: x, Y: y, By: by}
}

// Add adds the point given by line to its series and reports whether
// line had numeric values for both c.X and c.Y.
func (c *Collection) Add(line resultfmt.Line) bool {
	x, okx := number(line, c.X)
	y, oky := number(line, c.Y)
	if !okx || !oky {
		c.Skipped++
		return false
	}

	var name strings.Builder
	for i, k := range c.By {
		if i > 0 {
			name.WriteByte(' ')
		}
		v, _ := line.Get(k)
		fmt.Fprintf(&name, "%s=%s", k, v.Text())
	}
	s := c.index[name.String()]
	if s == nil {
		if c.index == nil {
			c.index = make(map[string]*Series)
		}
		s = &Series{Name: name.String()}
		c.index[s.Name] = s
		c.series = append(c.series, s)
	}
	s.Points = append(s.Points, plotter.XY{X: x, Y: y})
	return true
}

func number(line resultfmt.Line, name string) (float64, bool) {
	v, ok := line.Get(name)
	if !ok {
		return 0, false
	}
	return v.Number()
}

// Series returns the series of c in first-seen order, each sorted by
// X.
func (c *Collection) Series() []*Series {
	for _, s := range c.series {
		sort.SliceStable(s.Points, func(i, j int) bool { return s.Points[i].X < s.Points[j].X })
	}
	return c.series
}

// Options control the appearance of a chart.
type Options struct {
	Title          string
	XLabel, YLabel string
	LogX, LogY     bool

	// Width and Height of the image. Zero means 6x4 inches.
	Width, Height vg.Length
	// DPI of the image. Zero means 96.
	DPI int
}

// ErrNoData is returned by Chart when there are no points to plot.
var ErrNoData = errors.New("resultplot: no data")

// Chart draws series as lines with point markers and writes the image
// to w in PNG format.
func Chart(w io.Writer, series []*Series, opts Options) error {
	pl, err := newPlot(series, opts)
	if err != nil {
		return err
	}

	width, height, dpi := opts.Width, opts.Height, opts.DPI
	if width == 0 {
		width = 6 * vg.Inch
	}
	if height == 0 {
		height = 4 * vg.Inch
	}
	if dpi == 0 {
		dpi = 96
	}
	can := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))
	pl.Draw(draw.New(can))
	_, err = vgimg.PngCanvas{Canvas: can}.WriteTo(w)
	return err
}

func newPlot(series []*Series, opts Options) (*plot.Plot, error) {
	n := 0
	for _, s := range series {
		for _, p := range s.Points {
			if opts.LogX && p.X <= 0 || opts.LogY && p.Y <= 0 {
				return nil, fmt.Errorf("resultplot: series %q: non-positive value (%v, %v) on log scale", s.Name, p.X, p.Y)
			}
		}
		n += len(s.Points)
	}
	if n == 0 {
		return nil, ErrNoData
	}

	pl := plot.New()
	pl.Title.Text = opts.Title
	pl.X.Label.Text = opts.XLabel
	pl.Y.Label.Text = opts.YLabel
	if opts.LogX {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if opts.LogY {
		pl.Y.Scale = plot.LogScale{}
		pl.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	pl.Legend.Top = true
	pl.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(s.Points)
		if err != nil {
			return nil, fmt.Errorf("resultplot: series %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		pl.Add(line, points)
		if s.Name != "" {
			pl.Legend.Add(s.Name, line, points)
		}
	}
	return pl, nil
}
