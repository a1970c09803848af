// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// TestCLI runs the archives in testdata. The first line of the archive comment holds the
// command line; files under want/ hold the expected stdout, exit code and file contents
// after the run, all other files are written to a temporary working directory.
func TestCLI(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, archive := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(archive), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(archive)
			require.NoError(t, err)

			dir := t.TempDir()
			want := make(map[string]string)

			for _, f := range ar.Files {
				if name, ok := strings.CutPrefix(f.Name, "want/"); ok {
					want[name] = string(f.Data)

					continue
				}

				name := filepath.Join(dir, filepath.FromSlash(f.Name))
				require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
				require.NoError(t, os.WriteFile(name, f.Data, 0o644))
			}

			t.Chdir(dir)

			line, _, _ := strings.Cut(string(ar.Comment), "\n")

			var stdout, stderr bytes.Buffer
			code := run(t.Context(), strings.Fields(line), &stdout, &stderr)

			if w, ok := want["exit"]; ok {
				if got := strconv.Itoa(code); got != strings.TrimSpace(w) {
					t.Errorf("Got exit code %s, want %s\nstderr:\n%s", got, strings.TrimSpace(w), stderr.String())
				}
			}

			if w, ok := want["stdout"]; ok {
				assert.Equal(t, w, stdout.String())
			}

			for name, w := range want {
				file, ok := strings.CutPrefix(name, "files/")
				if !ok {
					continue
				}

				got, err := os.ReadFile(filepath.FromSlash(file))
				require.NoError(t, err)
				assert.Equal(t, w, string(got), file)
			}
		})
	}
}

const worker = `package demo;

class Worker {
  private Object lock = new Object();

  void signal() {
    synchronized (lock) {
      lock.notify();
    }
  }
}
`

func TestDumpRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Worker.java"), []byte(worker), 0o644))

	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	if code := run(t.Context(), []string{"dump", "-o", "Worker.jtree", "Worker.java"}, &stdout, &stderr); code != 0 {
		t.Fatalf("Got exit code %d, want 0: %s", code, stderr.String())
	}

	check := func(file string) string {
		var out bytes.Buffer
		if code := run(t.Context(), []string{"check", "--color=off", file}, &out, &stderr); code != 1 {
			t.Fatalf("Got exit code %d, want 1: %s", code, stderr.String())
		}

		return out.String()
	}

	assert.Equal(t, check("Worker.java"), check("Worker.jtree"))
}

func TestDumpOutline(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Worker.java"), []byte(worker), 0o644))

	t.Chdir(dir)

	var stdout, stderr bytes.Buffer
	if code := run(t.Context(), []string{"dump", "Worker.java"}, &stdout, &stderr); code != 0 {
		t.Fatalf("Got exit code %d, want 0: %s", code, stderr.String())
	}

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "compilation unit 1:1\n"), out)
	assert.Contains(t, out, `"notify"`)
	assert.Contains(t, out, "(lock)")
}

func TestColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		color string
		want  bool
		err   bool
	}{
		{"on", true, false},
		{"off", false, false},
		{"auto", false, false},
		{"sometimes", false, true},
	}

	for _, tt := range tests {
		g := globals{color: tt.color}

		got, err := g.colored(&bytes.Buffer{})
		if (err != nil) != tt.err {
			t.Errorf("%s: Got error %v, want %t", tt.color, err, tt.err)
		}

		if got != tt.want {
			t.Errorf("%s: Got %t, want %t", tt.color, got, tt.want)
		}
	}
}
