// Copyright 2016 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"golang.org/x/net/context"

	"github.com/sqlplot/sqlplot/resultfmt"
)

// upload is the handler for the /upload endpoint. It processes files
// in a multipart/form-data POST request. All files of one request
// form a single upload.
func (a *App) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "/upload must be called as a POST request", http.StatusMethodNotAllowed)
		return
	}

	// We use r.MultipartReader instead of r.ParseForm to avoid
	// storing uploaded data in memory.
	mr, err := r.MultipartReader()
	if err != nil {
		a.fail(w, r, http.StatusBadRequest, err)
		return
	}

	result, err := a.processUpload(r.Context(), mr)
	if err != nil {
		a.fail(w, r, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		a.errorf("%v", err)
	}
}

// uploadStatus is the response to an /upload POST served as JSON.
type uploadStatus struct {
	// UploadID is the upload ID assigned to the upload.
	UploadID string `json:"uploadid"`
	// Lines is the number of result lines stored.
	Lines int `json:"lines"`
	// Errors lists the malformed result lines that were skipped.
	Errors []string `json:"errors,omitempty"`
}

var errNoFiles = errors.New("no files in upload")

// processUpload reads the result lines of every file in mr and
// stores them as one upload. Nothing is stored if any part fails.
func (a *App) processUpload(ctx context.Context, mr *multipart.Reader) (*uploadStatus, error) {
	u, err := a.DB.NewUpload(ctx)
	if err != nil {
		return nil, err
	}
	status := &uploadStatus{UploadID: u.ID}

	files := 0
	var rd resultfmt.Reader
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			u.Abort()
			return nil, err
		}

		if name := p.FormName(); name != "file" {
			u.Abort()
			return nil, fmt.Errorf("unexpected field %q", name)
		}
		files++

		rd.Reset(p, p.FileName())
		for rd.Scan() {
			switch rec := rd.Result().(type) {
			case *resultfmt.SyntaxError:
				status.Errors = append(status.Errors, rec.Error())
			case *resultfmt.Result:
				rec.Label = p.FileName()
				if err := u.InsertLine(rec); err != nil {
					u.Abort()
					return nil, err
				}
				status.Lines++
			}
		}
		if err := rd.Err(); err != nil {
			u.Abort()
			return nil, err
		}
	}

	if files == 0 {
		u.Abort()
		return nil, errNoFiles
	}
	if err := u.Commit(); err != nil {
		return nil, err
	}
	return status, nil
}
