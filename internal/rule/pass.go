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

package rule

import (
	"fmt"
	"log/slog"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Pass is the context of one rule during one run.
type Pass struct {
	Tree     *tree.Tree
	Resolver symbol.Resolver
	Rule     *Rule
	Config   Config
	Logger   *slog.Logger

	// Fixes is false when fix descriptors are not wanted; reported fixes are dropped.
	Fixes bool

	pending []finding.Finding
	skip    bool
	stop    bool
	err     error
}

// NewPass creates the context for a rule run.
func NewPass(t *tree.Tree, r symbol.Resolver, e Entry, logger *slog.Logger, fixes bool) *Pass {
	return &Pass{Tree: t, Resolver: r, Rule: e.Rule, Config: e.Config, Logger: logger, Fixes: fixes}
}

// Report emits a finding anchored at a node of the tree being walked.
func (p *Pass) Report(anchor tree.Cursor, key string, fix finding.FixDescriptor, args ...string) {
	if anchor.Tree() != p.Tree || !anchor.Valid() {
		if p.err == nil {
			p.err = fmt.Errorf("%w: finding %s anchored outside the tree", ErrInvalidRule, key)
		}

		return
	}

	if !p.Fixes {
		fix = nil
	}

	f := finding.Finding{
		Anchor:   anchor.ID(),
		Pos:      anchor.Position(),
		End:      p.Tree.Position(anchor.End()),
		Rule:     p.Rule.ID,
		Key:      key,
		Args:     args,
		Severity: p.Config.Severity,
		Fix:      fix,
	}

	p.pending = append(p.pending, f)
}

// SkipSubtree prevents this rule from visiting the children of the current node.
func (p *Pass) SkipSubtree() { p.skip = true }

// StopRule deregisters this rule for the rest of the walk.
func (p *Pass) StopRule() { p.stop = true }

// Begin resets the per-invocation state before a visit.
func (p *Pass) Begin() {
	p.pending, p.skip, p.err = p.pending[:0], false, nil
}

// End returns the outcome of an invocation: the buffered findings, whether to skip the
// subtree, whether to stop the rule, and a deferred error.
func (p *Pass) End() (findings []finding.Finding, skip, stop bool, err error) {
	return p.pending, p.skip, p.stop, p.err
}

// Discard drops everything the current invocation did.
func (p *Pass) Discard() {
	p.pending, p.skip, p.stop = p.pending[:0], false, false
}
