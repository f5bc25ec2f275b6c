// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Localserver runs the result storage server on a local database.
//
// Usage:
//
//	localserver [-addr :8080] [-driver sqlite3|mysql] [-dsn source]
//
// By default results are kept in an in-memory SQLite database and
// are lost when the server exits.
package main

import (
	"flag"
	"log"
	"net/http"

	_ "github.com/go-sql-driver/mysql"

	"github.com/sqlplot/sqlplot/storage/app"
	"github.com/sqlplot/sqlplot/storage/db"
	_ "github.com/sqlplot/sqlplot/storage/db/sqlite3"
)

var (
	addr   = flag.String("addr", ":8080", "serve HTTP on `address`")
	driver = flag.String("driver", "sqlite3", "database `driver`: sqlite3 or mysql")
	dsn    = flag.String("dsn", ":memory:", "database data source `name`")
)

func main() {
	log.SetPrefix("localserver: ")
	log.SetFlags(0)
	flag.Parse()

	db, err := db.OpenSQL(*driver, *dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	app := &app.App{DB: db}
	app.RegisterOnMux(http.DefaultServeMux)

	log.Printf("Listening on %s", *addr)

	log.Fatal(http.ListenAndServe(*addr, nil))
}
