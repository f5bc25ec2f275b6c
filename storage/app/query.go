// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sqlplot/sqlplot/resultfmt"
	"github.com/sqlplot/sqlplot/resultplot"
)

// lines serves the result lines of one upload as text.
func (a *App) lines(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("upload")
	if id == "" {
		http.Error(w, "missing upload parameter", http.StatusBadRequest)
		return
	}

	query := a.DB.Query(r.Context(), id)
	defer query.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	bw := resultfmt.NewWriter(w)
	for query.Next() {
		if err := bw.Write(query.Result()); err != nil {
			a.errorf("%v", err)
			return
		}
	}
	if err := query.Err(); err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
	}
}

// values serves every stored numeric value of one field as a JSON
// array.
func (a *App) values(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "missing name parameter", http.StatusBadRequest)
		return
	}
	vals, err := a.DB.Values(r.Context(), name)
	if err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	if vals == nil {
		vals = []float64{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(vals); err != nil {
		a.errorf("%v", err)
	}
}

// chart serves a PNG chart of field y against field x over the lines
// of one upload. The optional series parameter is a comma-separated
// list of key fields; logx and logy select log scales.
func (a *App) chart(w http.ResponseWriter, r *http.Request) {
	id, x, y := r.FormValue("upload"), r.FormValue("x"), r.FormValue("y")
	if id == "" || x == "" || y == "" {
		http.Error(w, "upload, x and y parameters are required", http.StatusBadRequest)
		return
	}
	var by []string
	if s := r.FormValue("series"); s != "" {
		by = strings.Split(s, ",")
	}

	c := resultplot.NewCollection(x, y, by...)
	query := a.DB.Query(r.Context(), id)
	defer query.Close()
	for query.Next() {
		c.Add(query.Result().Items)
	}
	if err := query.Err(); err != nil {
		a.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	opts := resultplot.Options{
		Title:  id,
		XLabel: x,
		YLabel: y,
		LogX:   r.FormValue("logx") != "",
		LogY:   r.FormValue("logy") != "",
	}
	// Render to a buffer so a failure can still be reported.
	var buf bytes.Buffer
	if err := resultplot.Chart(&buf, c.Series(), opts); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, resultplot.ErrNoData) {
			status = http.StatusNotFound
		}
		a.fail(w, r, status, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}
