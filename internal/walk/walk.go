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

// Package walk implements the traversal engine: a pre-order walk that dispatches
// each node to the rules subscribed to its kind.
//
// Rules are isolated from each other. A rule that panics or returns an error contributes
// no findings for that invocation; the failure is logged and the walk continues.
package walk

import (
	"context"
	"errors"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Filter decides whether a finding is dropped, e.g. because of a suppression comment.
type Filter interface {
	Suppressed(rule string, anchor tree.Cursor) bool
}

// Options configure a walk.
type Options struct {
	Logger *slog.Logger
	Filter Filter
	Fixes  bool // Keep fix descriptors
}

// Result is the outcome of a walk.
type Result struct {
	Findings []finding.Finding
	Failures int // Number of failed rule invocations
}

// Walk runs the rules of table over t, in pre-order with children in source order.
//
// Findings are returned in the order the rules fired: by node, then by registration order.
func Walk(ctx context.Context, t *tree.Tree, r symbol.Resolver, table *rule.Table, opts Options) Result {
	defer trace.StartRegion(ctx, "walk").End()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := walker{
		ctx:    ctx,
		table:  table,
		logger: logger,
		filter: opts.Filter,
		rules:  make([]state, table.Len()),
	}

	for i := range w.rules {
		e := table.Entry(i)
		w.rules[i] = state{
			pass:      rule.NewPass(t, r, e, logger, opts.Fixes),
			visit:     e.Rule.New(e.Config.Clone()),
			skipDepth: -1,
		}
	}

	w.live = len(w.rules)
	if w.live > 0 {
		w.walk(t.Root(), 0)
	}

	return Result{Findings: w.findings, Failures: w.failures}
}

type state struct {
	pass      *rule.Pass
	visit     rule.Visitor
	skipDepth int // Depth of the node whose subtree is skipped, or -1
	stopped   bool
}

type walker struct {
	ctx      context.Context
	table    *rule.Table
	logger   *slog.Logger
	filter   Filter
	rules    []state
	live     int
	findings []finding.Finding
	failures int
}

// walk visits c and its subtree. It returns false when every rule has stopped.
func (w *walker) walk(c tree.Cursor, depth int) bool {
	for _, i := range w.table.For(c.Kind()) {
		st := &w.rules[i]
		if st.stopped || st.skipDepth >= 0 {
			continue
		}

		w.invoke(st, c, depth)

		if w.live == 0 {
			return false
		}
	}

	if w.descend() {
		for child := range c.Children() {
			if !w.walk(child, depth+1) {
				return false
			}
		}
	}

	for i := range w.rules {
		if w.rules[i].skipDepth == depth {
			w.rules[i].skipDepth = -1
		}
	}

	return true
}

// descend reports whether any rule still wants to see nodes below the current one.
func (w *walker) descend() bool {
	for i := range w.rules {
		if st := &w.rules[i]; !st.stopped && st.skipDepth < 0 {
			return true
		}
	}

	return false
}

func (w *walker) invoke(st *state, c tree.Cursor, depth int) {
	p := st.pass
	p.Begin()

	if err := w.call(st, c); err != nil {
		p.Discard()
		w.failures++

		var ierr *rule.InternalError
		if !errors.As(err, &ierr) {
			ierr = &rule.InternalError{Rule: p.Rule.ID, Kind: c.Kind(), Pos: c.Position(), Cause: err}
		}

		w.logger.LogAttrs(w.ctx, slog.LevelError, "Rule failed",
			slog.String("rule", ierr.Rule),
			slog.String("kind", ierr.Kind.String()),
			slog.String("pos", ierr.Pos.String()),
			slog.Any("error", ierr.Cause),
		)

		return
	}

	findings, skip, stop, _ := p.End()

	for _, f := range findings {
		if w.filter != nil {
			if anchor, ok := c.Tree().At(f.Anchor); ok && w.filter.Suppressed(f.Rule, anchor) {
				continue
			}
		}

		w.findings = append(w.findings, f)
	}

	if skip {
		st.skipDepth = depth
	}

	if stop && !st.stopped {
		st.stopped = true
		w.live--
	}
}

// call runs a visitor, converting panics into errors.
func (w *walker) call(st *state, c tree.Cursor) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &rule.InternalError{
				Rule:  st.pass.Rule.ID,
				Kind:  c.Kind(),
				Pos:   c.Position(),
				Cause: rule.PanicError{Value: v},
			}
		}
	}()

	if err := st.visit(st.pass, c); err != nil {
		return err
	}

	_, _, _, err = st.pass.End()

	return err
}
