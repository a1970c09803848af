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

// Package testsource provides utilities for parsing Java source code in tests.
//
// It is designed to simplify testing of the analyses by handling common
// boilerplate code for parsing and indexing Java source fragments.
package testsource

import (
	"bytes"
	"strings"
	"testing"

	"fillmore-labs.com/syncguard/internal/frontend/javasitter"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// File parses a complete Java compilation unit. Syntax errors fail the test.
func File(tb testing.TB, src string) *tree.Tree {
	tb.Helper()

	t, err := javasitter.ParseStrict(tb.Context(), "Test.java", []byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return t
}

// Parse parses a Java statement fragment.
// The provided source `src` is automatically wrapped in a method body `void m() { ... }`
// within a class `T`. This allows testing statement-level code fragments without
// manually constructing the surrounding class and method scaffolding.
//
// Returns:
//   - *tree.Tree: The parsed tree of the wrapped source.
//   - tree.Cursor: A cursor positioned at the wrapper method's body block.
func Parse(tb testing.TB, src string) (t *tree.Tree, body tree.Cursor) {
	tb.Helper()

	t = File(tb, wrapSource(src).String())

	for m := range t.Root().Preorder(tree.MethodDecl) {
		if b, ok := m.Field(tree.RoleBody); ok {
			return t, b
		}
	}

	tb.Fatal("Can't find method")

	return nil, tree.Cursor{}
}

// Index parses a compilation unit and creates a resolver for it.
func Index(tb testing.TB, src string) (*tree.Tree, *symbol.Index) {
	tb.Helper()

	t := File(tb, src)

	return t, symbol.NewIndex(t)
}

// Find returns the first node of the given kind whose source text is text.
func Find(tb testing.TB, t *tree.Tree, kind tree.Kind, text string) tree.Cursor {
	tb.Helper()

	for c := range t.Root().Preorder(kind) {
		if c.Text() == text {
			return c
		}
	}

	tb.Fatalf("Can't find %s %q", kind, text)

	return tree.Cursor{}
}

// FindPrefix returns the first node of the given kind whose source text starts with prefix.
func FindPrefix(tb testing.TB, t *tree.Tree, kind tree.Kind, prefix string) tree.Cursor {
	tb.Helper()

	for c := range t.Root().Preorder(kind) {
		if strings.HasPrefix(c.Text(), prefix) {
			return c
		}
	}

	tb.Fatalf("Can't find %s starting with %q", kind, prefix)

	return tree.Cursor{}
}

// Nth returns the n-th (zero based) node of the given kind whose source text is text.
func Nth(tb testing.TB, t *tree.Tree, kind tree.Kind, text string, n int) tree.Cursor {
	tb.Helper()

	for c := range t.Root().Preorder(kind) {
		if c.Text() != text {
			continue
		}

		if n == 0 {
			return c
		}

		n--
	}

	tb.Fatalf("Can't find %s %q", kind, text)

	return tree.Cursor{}
}

func wrapSource(src string) *bytes.Buffer {
	const (
		header     = "class T {\n  void m() {\n"
		suffix     = "\n  }\n}\n"
		wrapperLen = len(header) + len(suffix)
	)

	var srcFile bytes.Buffer
	srcFile.Grow(wrapperLen + len(src))

	srcFile.WriteString(header) // ignore error
	srcFile.WriteString(src)    // ignore error
	srcFile.WriteString(suffix) // ignore error

	return &srcFile
}
