// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultstat

import (
	"github.com/aclements/go-gg/table"
	"github.com/sqlplot/sqlplot/resultfmt"
)

// Frame returns lines as a table with one row per line and one column
// per distinct field name, in first-seen order. A column whose cells
// are all integers becomes []int, one whose cells are all numbers
// becomes []float64, and any other column is []string. Cells of
// fields missing from a line are "", which makes the column a string
// column. If a field repeats within a line, its first value is used.
func Frame(lines []resultfmt.Line) *table.Table {
	var cols []string
	index := make(map[string]int)
	for _, l := range lines {
		for _, it := range l {
			if _, ok := index[it.Name]; !ok {
				index[it.Name] = len(cols)
				cols = append(cols, it.Name)
			}
		}
	}

	rows := make([][]string, len(lines))
	for i, l := range lines {
		row := make([]string, len(cols))
		seen := make([]bool, len(cols))
		for _, it := range l {
			j := index[it.Name]
			if !seen[j] {
				row[j], seen[j] = it.Value.Text(), true
			}
		}
		rows[i] = row
	}
	return table.TableFromStrings(cols, rows, true)
}
