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

// WaitNotInLoop reports calls to wait() that are not inside a loop of the same member.
// A woken thread has to re-check its condition: wake-ups may be spurious, and the
// condition may have changed again before the monitor was re-acquired.
func WaitNotInLoop() *rule.Rule {
	return &rule.Rule{
		ID:       WaitNotInLoopID,
		Doc:      "Call to 'wait()' not in a loop",
		Kinds:    []tree.Kind{tree.Call},
		Severity: finding.Warning,
		Messages: map[string]string{
			"wait": "Call to 'wait()' is not in a loop",
		},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				if !isMonitorCall(c, "wait", 0, 2) || inLoop(c) {
					return nil
				}

				name, _ := callName(c)
				p.Report(name, "wait", nil)

				return nil
			}
		},
	}
}

// inLoop reports whether a loop encloses c within its member or lambda.
func inLoop(c tree.Cursor) bool {
	for a := range c.Parent().Enclosing() {
		switch k := a.Kind(); {
		case k.IsLoop():
			return true

		case k.IsMember(), k == tree.Lambda, k == tree.ClassBody:
			return false

		default:
		}
	}

	return false
}
