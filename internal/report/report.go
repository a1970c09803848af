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

// Package report converts findings into diagnostics with suggested fixes and renders them.
package report

import (
	"context"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/fix"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Diagnostic is a finding prepared for output.
//
// Pos and End of the embedded diagnostic are relative to the [tree.Tree.File] of the tree
// the finding was reported on; Posn and EndPosn resolve them.
type Diagnostic struct {
	analysis.Diagnostic

	Posn     token.Position
	EndPosn  token.Position
	Severity finding.Severity
	Edit     *fix.TextEdit // Suggested fix in byte offsets, nil when there is none
}

// Diagnostics converts findings on t into diagnostics, rendering messages with msgs.
//
// Fixes are previewed against the current tree, so the suggested fixes of different
// diagnostics may overlap; apply them one at a time. Fixes that cannot be computed are omitted.
func Diagnostics(ctx context.Context, t *tree.Tree, r symbol.Resolver, msgs *finding.Messages, findings []finding.Finding) []Diagnostic {
	defer trace.StartRegion(ctx, "Report").End()

	file := t.File()

	diagnostics := make([]Diagnostic, 0, len(findings))

	for _, f := range findings {
		message := msgs.Render(f)

		d := Diagnostic{
			Diagnostic: analysis.Diagnostic{
				Pos:      pos(file, f.Pos.Offset),
				End:      pos(file, f.End.Offset),
				Category: f.Rule,
				Message:  message + " (" + f.Rule + ")",
			},
			Posn:     f.Pos,
			EndPosn:  f.End,
			Severity: f.Severity,
		}

		if te, ok := suggestedFix(t, r, f); ok {
			d.Edit = &te
			d.SuggestedFixes = []analysis.SuggestedFix{{
				Message:   f.FixTitle(),
				TextEdits: []analysis.TextEdit{{Pos: pos(file, te.Start), End: pos(file, te.End), NewText: []byte(te.NewText)}},
			}}
		}

		diagnostics = append(diagnostics, d)
	}

	return diagnostics
}

func pos(file *token.File, offset int) token.Pos {
	return file.Pos(min(max(offset, 0), file.Size()))
}

func suggestedFix(t *tree.Tree, r symbol.Resolver, f finding.Finding) (fix.TextEdit, bool) {
	if f.Fix == nil {
		return fix.TextEdit{}, false
	}

	edit, err := fix.Compute(t, r, f)
	if err != nil {
		return fix.TextEdit{}, false
	}

	te, err := fix.Preview(t, edit)
	if err != nil {
		return fix.TextEdit{}, false
	}

	return te, true
}
