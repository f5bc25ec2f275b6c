// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sqlplot/sqlplot/internal/diff"
)

func TestAll(t *testing.T) {
	golden(t, "all", "run.log")
}

func TestKeep(t *testing.T) {
	golden(t, "keep", "-keep", "algo,time", "run.log")
}

func TestTable(t *testing.T) {
	golden(t, "table", "-format", "table", "-keep", "algo,n,time", "run.log")
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, []string{"-nosuchflag"}); err != errUsage {
		t.Fatalf("want errUsage, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: resultfilter") {
		t.Errorf("want usage on stderr, got:\n%s", stderr.String())
	}
}

func TestMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(&stdout, &stderr, []string{"testdata/missing.log"}); !os.IsNotExist(err) {
		t.Fatalf("want not-exist error, got %v", err)
	}
}

func golden(t *testing.T, name string, args ...string) {
	t.Helper()
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir("..")

	var stdout, stderr bytes.Buffer
	t.Logf("resultfilter %s", strings.Join(args, " "))
	if err := run(&stdout, &stderr, args); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	diff.Golden(t, name+".stdout", stdout.Bytes())
	diff.Golden(t, name+".stderr", stderr.Bytes())
}
