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

package fix

import (
	"context"
	"errors"
	"runtime/trace"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Skipped is a fix that could not be applied.
type Skipped struct {
	Finding finding.Finding
	Err     error
}

// Report summarizes a batch of fixes.
type Report struct {
	Applied []finding.Finding
	Skipped []Skipped
}

// Stale returns the number of fixes skipped because an earlier edit removed their anchor.
func (r Report) Stale() int {
	var n int

	for _, s := range r.Skipped {
		if errors.Is(s.Err, finding.ErrStaleFix) || errors.Is(s.Err, tree.ErrDetachedNode) {
			n++
		}
	}

	return n
}

// ApplyAll applies the fixes of findings in order. Each fix is computed against the tree
// left by the previous ones, so fixes with overlapping targets are skipped as stale.
// Findings without a fix are ignored.
func ApplyAll(ctx context.Context, t *tree.Tree, r symbol.Resolver, findings []finding.Finding) Report {
	ctx, task := trace.NewTask(ctx, "ApplyAll")
	defer task.End()

	var rep Report

	for _, f := range findings {
		if f.Fix == nil {
			continue
		}

		if err := ApplyFix(ctx, t, r, f); err != nil {
			rep.Skipped = append(rep.Skipped, Skipped{Finding: f, Err: err})

			continue
		}

		rep.Applied = append(rep.Applied, f)
	}

	return rep
}

// TextEdit is an edit expressed in byte offsets of the current source text.
type TextEdit struct {
	Start, End int
	NewText    string
}

// Preview renders an edit, including the preserved comments, without modifying the tree.
func Preview(t *tree.Tree, edit finding.Edit) (TextEdit, error) {
	f, err := render(t, edit)
	if err != nil {
		return TextEdit{}, err
	}

	target, _ := t.At(edit.Target)

	return TextEdit{Start: target.Start(), End: target.End(), NewText: f.Text()}, nil
}
