// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// resultplot draws a line chart of one numeric field of result lines
// against another.
//
// Usage:
//
//	resultplot -x name -y name [-series keys] [-logx] [-logy] [-o file.png] [inputs...]
//
// Each result line with numeric -x and -y fields contributes one
// point. Points are grouped into one line per distinct value of the
// comma-separated -series fields.
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
	"github.com/sqlplot/sqlplot/resultplot"
	"gonum.org/v1/plot/vg"
)

const usageText = `Usage: resultplot -x name -y name [flags] [inputs...]

resultplot plots a numeric field of result lines against another and
writes the chart as a PNG image. If no inputs are provided, it reads
from stdin.

`

var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("resultplot: ")
	log.SetFlags(0)

	if err := run(os.Stderr, os.Args[1:]); err != nil {
		if err == errUsage {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("resultplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	flagX := fs.String("x", "", "numeric field `name` for the X axis")
	flagY := fs.String("y", "", "numeric field `name` for the Y axis")
	flagSeries := fs.String("series", "", "draw one line per value of comma-separated `keys`")
	flagLogX := fs.Bool("logx", false, "use a log scale for the X axis")
	flagLogY := fs.Bool("logy", false, "use a log scale for the Y axis")
	flagTitle := fs.String("title", "", "chart `title`")
	flagOut := fs.String("o", "out.png", "write the chart to `file`")
	flagWidth := fs.Float64("width", 6, "chart width in `inches`")
	flagHeight := fs.Float64("height", 4, "chart height in `inches`")
	flagDPI := fs.Int("dpi", 96, "image resolution in dots per inch")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *flagX == "" || *flagY == "" {
		fs.Usage()
		return errUsage
	}

	var by []string
	if *flagSeries != "" {
		by = strings.Split(*flagSeries, ",")
	}
	c := resultplot.NewCollection(*flagX, *flagY, by...)
	files := resultfmt.Files{Paths: fs.Args(), AllowStdin: true, AllowLabels: true}
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *resultfmt.SyntaxError:
			// Non-fatal result parse error. Warn
			// but keep going.
			fmt.Fprintln(stderr, rec)
		case *resultfmt.Result:
			c.Add(rec.Items)
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	if c.Skipped > 0 {
		fmt.Fprintf(stderr, "%d result line(s) without numeric %q and %q\n", c.Skipped, *flagX, *flagY)
	}

	f, err := os.Create(*flagOut)
	if err != nil {
		return err
	}
	opts := resultplot.Options{
		Title:  *flagTitle,
		XLabel: *flagX,
		YLabel: *flagY,
		LogX:   *flagLogX,
		LogY:   *flagLogY,
		Width:  vg.Length(*flagWidth) * vg.Inch,
		Height: vg.Length(*flagHeight) * vg.Inch,
		DPI:    *flagDPI,
	}
	if err := resultplot.Chart(f, c.Series(), opts); err != nil {
		f.Close()
		os.Remove(*flagOut)
		return err
	}
	return f.Close()
}
