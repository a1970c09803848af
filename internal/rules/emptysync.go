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

// EmptySync reports synchronized statements without statements. Comments do not count.
func EmptySync() *rule.Rule {
	return &rule.Rule{
		ID:       EmptySyncID,
		Doc:      "Empty 'synchronized' statement",
		Kinds:    []tree.Kind{tree.Synchronized},
		Severity: finding.Warning,
		Messages: map[string]string{
			"empty": "Empty 'synchronized' statement",
		},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				body, ok := c.Field(tree.RoleBody)
				if !ok {
					return nil
				}

				if _, ok := body.Operand(); ok {
					return nil
				}

				p.Report(c, "empty", nil)

				return nil
			}
		},
	}
}
