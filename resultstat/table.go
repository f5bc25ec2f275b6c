// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultstat

import (
	"fmt"
	"strconv"

	"github.com/sqlplot/sqlplot/internal/texttab"
)

// Table returns a text table with one row per group: the key fields,
// then the value count and the summary statistics of c.Field.
func (c *Collection) Table() *texttab.Table {
	tab := new(texttab.Table)
	tab.Row()
	for _, name := range c.By {
		tab.Cell(name)
	}
	for _, h := range []string{"n", "min", "median", "mean", "max", "stddev"} {
		tab.Cell(h, texttab.Right)
	}

	for _, g := range c.Groups() {
		s := g.Summary()
		tab.Row()
		for _, k := range g.Key {
			tab.Cell(k)
		}
		n := strconv.Itoa(s.N)
		if s.Outliers > 0 {
			n = fmt.Sprintf("%d-%d", s.N, s.Outliers)
		}
		tab.Cell(n, texttab.Right)
		for _, x := range []float64{s.Min, s.Median, s.Mean, s.Max, s.StdDev} {
			tab.Cell(formatValue(x), texttab.Right)
		}
	}
	return tab
}

func formatValue(x float64) string {
	return strconv.FormatFloat(x, 'g', 4, 64)
}
