// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Files reads result lines from a sequence of input files, such as
// the logs named on a command line.
//
// Each Result's Label names the input it came from. It is the path as
// given in Paths, except that a path given more than once is labeled
// "path#0", "path#1", and so on. If AllowLabels is true, an entry of
// the form label=path reads path and uses label exactly as given.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowStdin makes the path "-" read standard input, as does
	// an empty Paths.
	AllowStdin bool

	// AllowLabels permits label=path entries in Paths.
	AllowLabels bool

	pending []source // nil until the first Scan
	cur     io.ReadCloser
	reader  Reader
	err     error
}

// A source is one input of a Files.
type source struct {
	name, label string
	open        func() (io.ReadCloser, error)
}

// sources resolves f.Paths into the inputs to read, in order.
func (f *Files) sources() []source {
	paths := f.Paths
	if f.AllowStdin && len(paths) == 0 {
		paths = []string{"-"}
	}

	repeats := make(map[string]int)
	for _, p := range paths {
		if _, _, labeled := f.cutLabel(p); !labeled {
			repeats[p]++
		}
	}
	next := make(map[string]int)
	srcs := make([]source, 0, len(paths))
	for _, p := range paths {
		label, path, labeled := f.cutLabel(p)
		if !labeled && repeats[p] > 1 {
			label = fmt.Sprintf("%s#%d", p, next[p])
			next[p]++
		}
		srcs = append(srcs, source{name: path, label: label, open: f.opener(path)})
	}
	return srcs
}

// cutLabel splits a label=path entry. Entries without a label, or
// any entry when labels are not allowed, label themselves.
func (f *Files) cutLabel(p string) (label, path string, labeled bool) {
	if f.AllowLabels {
		if label, path, ok := strings.Cut(p, "="); ok {
			return label, path, true
		}
	}
	return p, p, false
}

func (f *Files) opener(path string) func() (io.ReadCloser, error) {
	if f.AllowStdin && path == "-" {
		return func() (io.ReadCloser, error) { return io.NopCloser(os.Stdin), nil }
	}
	return func() (io.ReadCloser, error) { return os.Open(path) }
}

// Scan advances to the next record in the sequence of files and
// reports whether there was one. It returns false at the end of the
// last file or on an I/O error, which Err then reports.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.pending == nil {
		f.pending = f.sources()
	}

	for {
		if f.cur == nil {
			if len(f.pending) == 0 {
				return false
			}
			src := f.pending[0]
			f.pending = f.pending[1:]
			if f.cur, f.err = src.open(); f.err != nil {
				f.cur = nil
				return false
			}
			f.reader.Reset(f.cur, src.name)
			f.reader.label = src.label
		}

		if f.reader.Scan() {
			return true
		}
		f.err = f.reader.Err()
		f.cur.Close()
		f.cur = nil
		if f.err != nil {
			return false
		}
	}
}

// Result returns the record that was just read by Scan.
// See Reader.Result.
func (f *Files) Result() Record {
	return f.reader.Result()
}

// Err returns the I/O error that stopped Scan, if any. It is nil if
// every file was read to the end.
func (f *Files) Err() error {
	return f.err
}
