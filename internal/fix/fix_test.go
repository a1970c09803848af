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

package fix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/syncguard/internal/finding"
	. "fillmore-labs.com/syncguard/internal/fix"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/testsource"
	"fillmore-labs.com/syncguard/internal/tree"
)

const body = `    synchronized (this) { // lock
      /* a */ foo(); // tail
    }`

// unwrap replaces a statement with a copy of one of its descendants.
type unwrap struct {
	target, keep tree.NodeID
	gapAtKeep    bool
}

func (u unwrap) Title() string { return "Unwrap" }

func (u unwrap) Compute(t *tree.Tree, _ symbol.Resolver) (finding.Edit, error) {
	target, ok := t.At(u.target)
	if !ok {
		return finding.Edit{}, finding.ErrStaleFix
	}

	keep, ok := t.At(u.keep)
	if !ok {
		return finding.Edit{}, finding.ErrStaleFix
	}

	f, err := t.Clone(keep.ID())
	if err != nil {
		return finding.Edit{}, err
	}

	edit := finding.NewEdit(target, f)
	if u.gapAtKeep {
		edit = edit.WithGap(keep.Start())
	}

	return edit, nil
}

func setup(t *testing.T, keepKind tree.Kind, keepText string, gapAtKeep bool) (*tree.Tree, finding.Finding) {
	t.Helper()

	tr, _ := testsource.Parse(t, body)
	sync := testsource.FindPrefix(t, tr, tree.Synchronized, "synchronized")
	keep := testsource.FindPrefix(t, tr, keepKind, keepText)

	f := finding.Finding{
		Anchor: sync.ID(),
		Rule:   "Test",
		Fix:    unwrap{target: sync.ID(), keep: keep.ID(), gapAtKeep: gapAtKeep},
	}

	return tr, f
}

func methodBody(tr *tree.Tree) string {
	s := string(tr.Source())
	s = strings.TrimPrefix(s, "class T {\n  void m() {\n")
	s = strings.TrimSuffix(s, "\n  }\n}\n")

	return s
}

func countComments(tr *tree.Tree) int {
	var n int
	for range tr.Root().Preorder(tree.Comment) {
		n++
	}

	return n
}

func TestApplyPreservesComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keepKind  tree.Kind
		keepText  string
		gapAtKeep bool
		want      string
		moved     int
	}{
		{
			name:     "before",
			keepKind: tree.ExprStmt,
			keepText: "foo();",
			want:     "    // lock\n    /* a */ // tail\n    foo();",
			moved:    3,
		},
		{
			name:      "around",
			keepKind:  tree.ExprStmt,
			keepText:  "foo();",
			gapAtKeep: true,
			want:      "    // lock\n    /* a */ foo(); // tail",
			moved:     3,
		},
		{
			name:     "carried",
			keepKind: tree.Block,
			keepText: "{ // lock",
			want:     "    { // lock\n      /* a */ foo(); // tail\n    }",
			moved:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, f := setup(t, tt.keepKind, tt.keepText, tt.gapAtKeep)
			r := symbol.NewIndex(tr)

			edit, err := Compute(tr, r, f)
			require.NoError(t, err)
			assert.Len(t, edit.Comments, tt.moved)

			preview, err := Preview(tr, edit)
			require.NoError(t, err)

			_, err = Apply(t.Context(), tr, edit)
			require.NoError(t, err)

			if got := methodBody(tr); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}

			assert.Equal(t, strings.TrimLeft(tt.want, " "), preview.NewText)
			assert.Equal(t, 3, countComments(tr))
			assert.NoError(t, tr.Validate())

			for _, c := range []string{"// lock", "/* a */", "// tail"} {
				assert.Equal(t, 1, strings.Count(string(tr.Source()), c), c)
			}
		})
	}
}

func TestStaleFix(t *testing.T) {
	t.Parallel()

	tr, f := setup(t, tree.ExprStmt, "foo();", false)
	r := symbol.NewIndex(tr)

	require.NoError(t, ApplyFix(t.Context(), tr, r, f))

	err := ApplyFix(t.Context(), tr, r, f)
	if !errors.Is(err, finding.ErrStaleFix) {
		t.Errorf("Got %v, want %v", err, finding.ErrStaleFix)
	}
}

func TestDetachedTarget(t *testing.T) {
	t.Parallel()

	tr, f := setup(t, tree.ExprStmt, "foo();", false)
	r := symbol.NewIndex(tr)

	edit, err := Compute(tr, r, f)
	require.NoError(t, err)

	sync := testsource.FindPrefix(t, tr, tree.Synchronized, "synchronized")
	_, err = tr.Replace(sync.ID(), tree.Leaf(tree.ExprStmt, 0, "baz();"))
	require.NoError(t, err)

	before := string(tr.Source())

	_, err = Apply(t.Context(), tr, edit)
	if !errors.Is(err, tree.ErrDetachedNode) {
		t.Errorf("Got %v, want %v", err, tree.ErrDetachedNode)
	}

	assert.Equal(t, before, string(tr.Source()))
}

func TestNoFix(t *testing.T) {
	t.Parallel()

	tr, f := setup(t, tree.ExprStmt, "foo();", false)
	f.Fix = nil

	_, err := Compute(tr, symbol.NewIndex(tr), f)
	if !errors.Is(err, finding.ErrNoFix) || !errors.Is(err, finding.ErrFixNotApplicable) {
		t.Errorf("Got %v, want %v", err, finding.ErrNoFix)
	}
}

func TestApplyAll(t *testing.T) {
	t.Parallel()

	tr, f := setup(t, tree.ExprStmt, "foo();", false)
	r := symbol.NewIndex(tr)

	noFix := f
	noFix.Fix = nil

	rep := ApplyAll(t.Context(), tr, r, []finding.Finding{f, noFix, f})

	assert.Len(t, rep.Applied, 1)
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, 1, rep.Stale())
	assert.Equal(t, 3, countComments(tr))
}
