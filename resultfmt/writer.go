// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"fmt"
	"io"
)

// A Writer writes result lines.
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter returns a writer that writes result lines to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes Record rec to w. A *Result is written in canonical form
// followed by a newline; its Rest is dropped. A *SyntaxError is
// ignored.
func (w *Writer) Write(rec Record) error {
	switch rec := rec.(type) {
	case *Result:
		return w.WriteItems(rec.Items)
	case *SyntaxError:
		// Ignore
		return nil
	}
	return fmt.Errorf("unknown Record type %T", rec)
}

// WriteItems writes a result line for items.
func (w *Writer) WriteItems(items []Item) error {
	w.buf = AppendLine(w.buf[:0], items)
	w.buf = append(w.buf, '\n')
	_, err := w.w.Write(w.buf)
	return err
}
