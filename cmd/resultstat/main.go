// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// resultstat summarizes a numeric field of result lines.
//
// Usage:
//
//	resultstat -field name [-by keys] [inputs...]
//
// resultstat reads result lines from input files (or stdin), groups
// the values of the -field field by the values of the comma-separated
// -by fields, and prints a table with one row per group giving the
// number of values and their minimum, median, mean, maximum and
// standard deviation. Outliers are excluded from all but the median;
// a count such as "6-1" means one of six values was excluded.
//
// Input labels may be grouped on with the pseudo-field ".label".
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/sqlplot/sqlplot/resultfmt"
	"github.com/sqlplot/sqlplot/resultstat"
)

const usageText = `Usage: resultstat -field name [flags] [inputs...]

resultstat prints summary statistics of a numeric field of result
lines, grouped by key fields. If no inputs are provided, it reads
from stdin.

`

var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("resultstat: ")
	log.SetFlags(0)

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == errUsage {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// labelField names the input label when used as a grouping key.
const labelField = ".label"

func run(stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("resultstat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	flagField := fs.String("field", "", "summarize the numeric field `name`")
	flagBy := fs.String("by", "", "group values by comma-separated `keys`")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *flagField == "" {
		fs.Usage()
		return errUsage
	}

	var by []string
	if *flagBy != "" {
		by = strings.Split(*flagBy, ",")
	}
	useLabel := false
	for _, k := range by {
		if k == labelField {
			useLabel = true
		}
	}

	c := resultstat.NewCollection(*flagField, by...)
	files := resultfmt.Files{Paths: fs.Args(), AllowStdin: true, AllowLabels: true}
	var line resultfmt.Line
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *resultfmt.SyntaxError:
			// Non-fatal result parse error. Warn
			// but keep going.
			fmt.Fprintln(stderr, rec)
		case *resultfmt.Result:
			line = rec.Items
			if useLabel {
				line = append(line[:len(line):len(line)], resultfmt.Str(labelField, rec.Label))
			}
			c.Add(line)
		}
	}
	if err := files.Err(); err != nil {
		return err
	}

	if len(c.Groups()) == 0 {
		return fmt.Errorf("no numeric values for %q", *flagField)
	}
	if c.Skipped > 0 {
		fmt.Fprintf(stderr, "%d result line(s) without numeric %q\n", c.Skipped, *flagField)
	}
	return c.Table().Format(stdout)
}
