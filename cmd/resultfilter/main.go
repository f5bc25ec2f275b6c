// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// resultfilter reads result lines from input files and writes them to
// stdout in canonical form, dropping everything else. If no inputs
// are provided, it reads from stdin.
//
// Usage:
//
//	resultfilter [-keep names] [-format result|table] [inputs...]
//
// With -keep, only the named fields of each line are written, in
// their original order. Lines left with no fields are dropped.
//
// With -format table, the lines are printed as a text table with one
// column per field name instead.
//
// Malformed result lines are reported on stderr and skipped.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/sqlplot/sqlplot/resultfmt"
	"github.com/sqlplot/sqlplot/resultstat"
)

const usageText = `Usage: resultfilter [flags] [inputs...]

resultfilter reads result lines from input files and writes them to
stdout in canonical form. If no inputs are provided, it reads from
stdin.

`

var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("resultfilter: ")
	log.SetFlags(0)

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == errUsage {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("resultfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	flagKeep := fs.String("keep", "", "write only the fields in comma-separated `names`")
	flagFormat := fs.String("format", "result", "output `format`: result or table")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	asTable := false
	switch *flagFormat {
	case "result":
	case "table":
		asTable = true
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", *flagFormat)
		fs.Usage()
		return errUsage
	}

	var keep map[string]bool
	if *flagKeep != "" {
		keep = make(map[string]bool)
		for _, name := range strings.Split(*flagKeep, ",") {
			keep[name] = true
		}
	}

	writer := resultfmt.NewWriter(stdout)
	files := resultfmt.Files{Paths: fs.Args(), AllowStdin: true, AllowLabels: true}
	var items []resultfmt.Item
	var lines []resultfmt.Line
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *resultfmt.SyntaxError:
			// Non-fatal result parse error. Warn
			// but keep going.
			fmt.Fprintln(stderr, rec)
		case *resultfmt.Result:
			items = append(items[:0], rec.Items...)
			if keep != nil {
				items = items[:0]
				for _, it := range rec.Items {
					if keep[it.Name] {
						items = append(items, it)
					}
				}
				if len(items) == 0 {
					continue
				}
			}
			if asTable {
				lines = append(lines, append(resultfmt.Line(nil), items...))
				continue
			}
			if err := writer.WriteItems(items); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	if asTable {
		if err := table.Fprint(stdout, resultstat.Frame(lines)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}
