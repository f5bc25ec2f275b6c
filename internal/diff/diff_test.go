// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"os/exec"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	if d := Diff("a\nb\n", "a\nb\n"); d != "" {
		t.Errorf("equal strings: want no diff, got %q", d)
	}
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff command unavailable")
	}
	d := Diff("a\nb\n", "a\nc\n")
	if !strings.Contains(d, "-b") || !strings.Contains(d, "+c") {
		t.Errorf("want unified diff, got:\n%s", d)
	}
}
