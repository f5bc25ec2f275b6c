// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app implements the result storage server. Combine an App
// with a database to get an HTTP server.
package app

import (
	"log"
	"net/http"

	"github.com/sqlplot/sqlplot/storage/db"
)

// App manages the storage server logic. Construct an App instance
// using a literal with a DB and call RegisterOnMux to connect it with
// an HTTP server.
type App struct {
	DB *db.DB

	// Logf logs request errors. If nil, log.Printf is used.
	Logf func(format string, args ...any)
}

// RegisterOnMux registers the app's URLs on mux.
func (a *App) RegisterOnMux(mux *http.ServeMux) {
	mux.HandleFunc("/upload", a.upload)
	mux.HandleFunc("/lines", a.lines)
	mux.HandleFunc("/values", a.values)
	mux.HandleFunc("/chart", a.chart)
}

func (a *App) errorf(format string, args ...any) {
	if a.Logf != nil {
		a.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// fail logs err and reports it to the client with the given status.
func (a *App) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	a.errorf("%s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, err.Error(), status)
}
