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

package rules

import (
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/tree"
)

// topLevelKinds are the declarations counted as top-level types.
var topLevelKinds = []tree.Kind{tree.ClassDecl, tree.InterfaceDecl, tree.EnumDecl, tree.RecordDecl, tree.AnnotationDecl}

// MultipleTopLevel reports every top-level type of a compilation unit declaring more than one.
//
// The rule decides at the compilation unit and stops, so it never descends into the types.
func MultipleTopLevel() *rule.Rule {
	return &rule.Rule{
		ID:    MultipleTopLevelID,
		Doc:   "Multiple top-level classes in a single file",
		Kinds: []tree.Kind{tree.CompilationUnit},
		Messages: map[string]string{
			"multiple": "Multiple top-level classes in file: '%[1]s'",
		},
		Severity: finding.Warning,
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				defer p.StopRule()

				var types []tree.Cursor
				for t := range c.ChildrenOf(topLevelKinds...) {
					types = append(types, t)
				}

				if len(types) < 2 {
					return nil
				}

				for _, t := range types {
					p.Report(nameOrSelf(t), "multiple", nil, t.Name())
				}

				return nil
			}
		},
	}
}
