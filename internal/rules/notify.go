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
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// NotifyNotNotifyAll reports calls to notify(). Waking a single thread is only correct when
// every waiting thread waits for the same condition.
func NotifyNotNotifyAll() *rule.Rule {
	return &rule.Rule{
		ID:       NotifyID,
		Doc:      "Call to 'notify()' instead of 'notifyAll()'",
		Kinds:    []tree.Kind{tree.Call},
		Severity: finding.Warning,
		Messages: map[string]string{
			"notify": "'notify()' should probably be replaced with 'notifyAll()'",
		},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				if !isMonitorCall(c, "notify", 0, 0) {
					return nil
				}

				name, _ := callName(c)
				p.Report(name, "notify", renameCall{name: name.ID(), from: "notify", to: "notifyAll"})

				return nil
			}
		},
	}
}

// renameCall replaces the method name of a call.
type renameCall struct {
	name     tree.NodeID
	from, to string
}

func (r renameCall) Title() string { return "Replace with '" + r.to + "()'" }

func (r renameCall) Compute(t *tree.Tree, _ symbol.Resolver) (finding.Edit, error) {
	name, ok := t.At(r.name)
	if !ok {
		return finding.Edit{}, finding.ErrStaleFix
	}

	if name.Text() != r.from {
		return finding.Edit{}, finding.NotApplicable("call renamed to %s", name.Text())
	}

	return finding.NewEdit(name, tree.Leaf(tree.Ident, 0, r.to)), nil
}
