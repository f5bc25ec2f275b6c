// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// resultload stores result lines in a SQL database.
//
// Usage:
//
//	resultload [-driver sqlite3|mysql] -dsn source [-v] [inputs...]
//
// Every well-formed result line in the inputs (or stdin) is stored as
// part of one new upload. On success resultload prints the upload ID.
// If any input cannot be read, nothing is stored.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/sqlplot/sqlplot/resultfmt"
	"github.com/sqlplot/sqlplot/storage/db"
	_ "github.com/sqlplot/sqlplot/storage/db/sqlite3"
)

const usageText = `Usage: resultload -dsn source [flags] [inputs...]

resultload stores the result lines of its inputs in a SQL database as
one upload and prints the upload ID. If no inputs are provided, it
reads from stdin.

`

var errUsage = errors.New("usage error")

func main() {
	log.SetPrefix("resultload: ")
	log.SetFlags(0)

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == errUsage {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("resultload", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	flagDriver := fs.String("driver", "sqlite3", "database `driver`: sqlite3 or mysql")
	flagDSN := fs.String("dsn", "", "database data source `name`")
	verbose := fs.Bool("v", false, "print verbose log messages")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *flagDSN == "" {
		fs.Usage()
		return errUsage
	}

	d, err := db.OpenSQL(*flagDriver, *flagDSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer d.Close()

	u, err := d.NewUpload(ctx)
	if err != nil {
		return err
	}

	n := 0
	files := resultfmt.Files{Paths: fs.Args(), AllowStdin: true, AllowLabels: true}
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *resultfmt.SyntaxError:
			// Non-fatal result parse error. Warn
			// but keep going.
			fmt.Fprintln(stderr, rec)
		case *resultfmt.Result:
			if err := u.InsertLine(rec); err != nil {
				u.Abort()
				return err
			}
			n++
			if *verbose {
				fmt.Fprintf(stderr, "%s: %s\n", rec.Label, rec.Items)
			}
		}
	}
	if err := files.Err(); err != nil {
		u.Abort()
		return err
	}
	if err := u.Commit(); err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintf(stderr, "stored %d result line(s)\n", n)
	}
	fmt.Fprintln(stdout, u.ID)
	return nil
}
