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

// Package fix implements the two-phase quick-fix protocol.
//
// [Compute] re-derives an edit from a finding's descriptor against the current tree and
// collects the comments inside the edit target that the replacement does not carry over.
// [Apply] re-attaches those comments around the replacement and replaces the target
// atomically: either the whole edit succeeds, or the tree is unchanged.
package fix

import (
	"bytes"
	"context"
	"fmt"
	"runtime/trace"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Compute derives the edit for a finding from the current state of t.
func Compute(t *tree.Tree, r symbol.Resolver, f finding.Finding) (finding.Edit, error) {
	if f.Fix == nil {
		return finding.Edit{}, fmt.Errorf("%s: %w", f.Rule, finding.ErrNoFix)
	}

	if !t.Valid(f.Anchor) {
		return finding.Edit{}, fmt.Errorf("%s at %s: %w", f.Rule, f.Pos, finding.ErrStaleFix)
	}

	edit, err := f.Fix.Compute(t, r)
	if err != nil {
		return finding.Edit{}, fmt.Errorf("%s at %s: %w", f.Rule, f.Pos, err)
	}

	target, ok := t.At(edit.Target)
	if !ok {
		return finding.Edit{}, fmt.Errorf("%s at %s: %w", f.Rule, f.Pos, finding.ErrStaleFix)
	}

	if edit.Replacement == nil {
		return finding.Edit{}, fmt.Errorf("%s at %s: %w", f.Rule, f.Pos, finding.NotApplicable("empty replacement"))
	}

	edit.Comments = edit.Comments[:0]
	for c := range target.Preorder(tree.Comment) {
		if !edit.Replacement.HasOrigin(c.ID()) {
			edit.Comments = append(edit.Comments, c.ID())
		}
	}

	return edit, nil
}

// Apply performs an edit and returns the identity of the replacement.
//
// Apply is not safe for concurrent use with other operations on the same tree.
func Apply(ctx context.Context, t *tree.Tree, edit finding.Edit) (tree.NodeID, error) {
	defer trace.StartRegion(ctx, "fix").End()

	f, err := render(t, edit)
	if err != nil {
		return tree.NodeID{}, err
	}

	id, err := t.Replace(edit.Target, f)
	if err != nil {
		return tree.NodeID{}, fmt.Errorf("apply edit: %w", err)
	}

	return id, nil
}

// ApplyFix computes and applies the fix of a finding.
func ApplyFix(ctx context.Context, t *tree.Tree, r symbol.Resolver, f finding.Finding) error {
	edit, err := Compute(t, r, f)
	if err != nil {
		return err
	}

	_, err = Apply(ctx, t, edit)

	return err
}

// render builds the final replacement: the descriptor's fragment surrounded by the
// preserved comments.
func render(t *tree.Tree, edit finding.Edit) (*tree.Fragment, error) {
	target, ok := t.At(edit.Target)
	if !ok {
		return nil, fmt.Errorf("edit target %v: %w", edit.Target, tree.ErrDetachedNode)
	}

	if edit.Replacement == nil {
		return nil, finding.NotApplicable("empty replacement")
	}

	f := edit.Replacement.Copy()
	if len(edit.Comments) == 0 {
		return f, nil
	}

	gap := min(max(edit.Gap, target.Start()), target.End())
	indent := t.LineIndent(target.Start())

	var before, after []tree.Cursor

	for _, id := range edit.Comments {
		c, ok := t.At(id)
		if !ok || c.Kind() != tree.Comment || !target.Contains(c) {
			return nil, fmt.Errorf("comment %v: %w", id, finding.ErrStaleFix)
		}

		if c.Start() < gap {
			before = append(before, c)
		} else {
			after = append(after, c)
		}
	}

	for i := len(before) - 1; i >= 0; i-- {
		c := before[i]

		cf, err := t.Clone(c.ID())
		if err != nil {
			return nil, err
		}

		if c.Variant() == tree.LineComment {
			f.Prepend(tree.Text("\n" + indent))
		} else {
			f.Prepend(tree.Text(" "))
		}

		f.Prepend(cf)
	}

	for i, c := range after {
		cf, err := t.Clone(c.ID())
		if err != nil {
			return nil, err
		}

		f.Append(tree.Text(" "))
		f.Append(cf)

		if c.Variant() == tree.LineComment && (i < len(after)-1 || codeFollows(t, target.End())) {
			f.Append(tree.Text("\n" + indent))
		}
	}

	return f, nil
}

// codeFollows reports whether the line continues with more than white space after offset.
func codeFollows(t *tree.Tree, offset int) bool {
	rest := t.Source()[offset:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}

	return len(bytes.TrimSpace(rest)) > 0
}
