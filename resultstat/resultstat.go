// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultstat summarizes the numeric values of result lines.
//
// A Collection gathers the values of one numeric field, grouped by
// the values of zero or more key fields:
//
//	c := resultstat.NewCollection("time", "algo")
//	for _, line := range lines {
//		c.Add(line)
//	}
//	c.Table().Format(os.Stdout)
package resultstat

import (
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/sqlplot/sqlplot/resultfmt"
)

// A Collection is a collection of numeric values of one field,
// grouped by key fields.
type Collection struct {
	// Field is the name of the summarized field.
	Field string

	// By lists the key fields. Lines with equal values for all
	// key fields fall in the same Group.
	By []string

	// Skipped counts lines passed to Add that had no numeric
	// value for Field.
	Skipped int

	groups map[string]*Group
	order  []*Group
}

// A Group is the set of values sharing one key.
type Group struct {
	// Key holds the text of each By field, in order. A missing
	// key field is "".
	Key []string

	// Values holds the values of Field, in the order added.
	Values []float64
}

// NewCollection returns an empty Collection summarizing field,
// grouped by the fields in by.
func NewCollection(field string, by ...string) *Collection {
	return &Collection{Field: field, By: by, groups: make(map[string]*Group)}
}

// Add adds the value of c.Field in line to the group selected by the
// key fields. If the field occurs more than once, the first
// occurrence is used. Add reports whether line contributed a value.
func (c *Collection) Add(line resultfmt.Line) bool {
	v, ok := line.Get(c.Field)
	if !ok {
		c.Skipped++
		return false
	}
	x, ok := v.Number()
	if !ok {
		c.Skipped++
		return false
	}

	key := make([]string, len(c.By))
	for i, name := range c.By {
		if kv, ok := line.Get(name); ok {
			key[i] = kv.Text()
		}
	}
	g := c.group(key)
	g.Values = append(g.Values, x)
	return true
}

// group returns the group for key, creating it if needed.
func (c *Collection) group(key []string) *Group {
	if c.groups == nil {
		c.groups = make(map[string]*Group)
	}
	k := strings.Join(key, "\x00")
	if g, ok := c.groups[k]; ok {
		return g
	}
	g := &Group{Key: key}
	c.groups[k] = g
	c.order = append(c.order, g)
	return g
}

// Groups returns the groups of c in the order their keys were first
// seen.
func (c *Collection) Groups() []*Group {
	return c.order
}

// Summary returns the summary statistics of g's values.
func (g *Group) Summary() Summary {
	return Summarize(g.Values)
}

// Summary describes a sample of values.
//
// Quartiles are computed over all values. Min, Max, Mean and StdDev
// are computed after discarding outliers more than 1.5 interquartile
// ranges outside the quartiles.
type Summary struct {
	N        int // total number of values
	Outliers int // number of values discarded as outliers

	Min, Max     float64
	Mean, StdDev float64
	Q1, Median   float64
	Q3           float64
}

// Summarize computes the Summary of xs. The summary of an empty
// sample has N == 0 and NaN statistics.
func Summarize(xs []float64) Summary {
	s := Summary{N: len(xs)}

	// Discard outliers.
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	values := stats.Sample{Xs: sorted, Sorted: true}
	s.Q1, s.Median, s.Q3 = values.Quantile(0.25), values.Quantile(0.5), values.Quantile(0.75)
	lo, hi := s.Q1-1.5*(s.Q3-s.Q1), s.Q3+1.5*(s.Q3-s.Q1)
	kept := make([]float64, 0, len(xs))
	for _, x := range xs {
		if lo <= x && x <= hi {
			kept = append(kept, x)
		}
	}
	s.Outliers = len(xs) - len(kept)

	// Compute statistics of remaining data.
	s.Min, s.Max = stats.Bounds(kept)
	s.Mean = stats.Mean(kept)
	if len(kept) > 1 {
		s.StdDev = stats.StdDev(kept)
	}
	return s
}
