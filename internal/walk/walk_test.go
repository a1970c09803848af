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

package walk_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/testsource"
	"fillmore-labs.com/syncguard/internal/tree"
	. "fillmore-labs.com/syncguard/internal/walk"
)

const src = `class A {
  class B {
    void f() { synchronized (this) { } }
  }
  void g() { synchronized (this) { } }
}
class C { }
`

// reportAll reports every visited node.
func reportAll(id string, kinds ...tree.Kind) *rule.Rule {
	return &rule.Rule{
		ID:    id,
		Kinds: kinds,
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				p.Report(c, "seen", nil, c.Kind().String())

				return nil
			}
		},
	}
}

func run(t *testing.T, logger *slog.Logger, rules ...*rule.Rule) Result {
	t.Helper()

	tr := testsource.File(t, src)

	reg, err := rule.NewRegistry(rules...)
	require.NoError(t, err)

	return Walk(t.Context(), tr, symbol.NewIndex(tr), reg.Table(), Options{Logger: logger})
}

func keys(r Result) []string {
	var s []string
	for _, f := range r.Findings {
		s = append(s, f.Rule+":"+f.Args[0])
	}

	return s
}

func TestOrder(t *testing.T) {
	t.Parallel()

	r := run(t, nil,
		reportAll("Types", tree.ClassDecl),
		reportAll("Sync", tree.Synchronized, tree.ClassDecl),
	)

	assert.Equal(t, []string{
		"Types:class", "Sync:class", // A
		"Types:class", "Sync:class", // B
		"Sync:synchronized",
		"Sync:synchronized",
		"Types:class", "Sync:class", // C
	}, keys(r))
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	rules := func() []*rule.Rule {
		return []*rule.Rule{reportAll("Types", tree.ClassDecl, tree.MethodDecl), reportAll("Sync", tree.Synchronized)}
	}

	first, second := run(t, nil, rules()...), run(t, nil, rules()...)
	assert.Equal(t, first.Findings, second.Findings)
}

func TestSkipSubtree(t *testing.T) {
	t.Parallel()

	topLevel := &rule.Rule{
		ID:    "TopLevel",
		Kinds: []tree.Kind{tree.ClassDecl},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				p.Report(c, "seen", nil, c.Name())
				p.SkipSubtree()

				return nil
			}
		},
	}

	r := run(t, nil, topLevel, reportAll("Sync", tree.Synchronized))

	// B is nested in A and not seen; other rules still see everything.
	assert.Equal(t, []string{"TopLevel:A", "Sync:synchronized", "Sync:synchronized", "TopLevel:C"}, keys(r))
}

func TestStopRule(t *testing.T) {
	t.Parallel()

	once := &rule.Rule{
		ID:    "Once",
		Kinds: []tree.Kind{tree.Synchronized},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				p.Report(c, "seen", nil, "first")
				p.StopRule()

				return nil
			}
		},
	}

	r := run(t, nil, once)

	assert.Equal(t, []string{"Once:first"}, keys(r))
}

func TestIsolation(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	panics := &rule.Rule{
		ID:    "Panics",
		Kinds: []tree.Kind{tree.Synchronized},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				p.Report(c, "lost", nil, "x")
				panic("boom")
			}
		},
	}

	fails := &rule.Rule{
		ID:    "Fails",
		Kinds: []tree.Kind{tree.ClassDecl},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				p.Report(c, "lost", nil, "x")

				return errors.New("broken")
			}
		},
	}

	r := run(t, logger, panics, reportAll("Sync", tree.Synchronized), fails)

	assert.Equal(t, []string{"Sync:synchronized", "Sync:synchronized"}, keys(r))
	assert.Equal(t, 5, r.Failures)

	log := buf.String()
	assert.Contains(t, log, "rule=Panics")
	assert.Contains(t, log, "panic: boom")
	assert.Contains(t, log, "rule=Fails")
	assert.Equal(t, 5, strings.Count(log, "Rule failed"))
}

type suppressAll struct{ rule string }

func (s suppressAll) Suppressed(rule string, _ tree.Cursor) bool { return rule == s.rule }

func TestFilter(t *testing.T) {
	t.Parallel()

	tr := testsource.File(t, src)

	reg, err := rule.NewRegistry(reportAll("Types", tree.ClassDecl), reportAll("Sync", tree.Synchronized))
	require.NoError(t, err)

	r := Walk(t.Context(), tr, symbol.NewIndex(tr), reg.Table(), Options{Filter: suppressAll{"Types"}})

	assert.Equal(t, []string{"Sync:synchronized", "Sync:synchronized"}, keys(r))
}

func TestDisabledRule(t *testing.T) {
	t.Parallel()

	tr := testsource.File(t, src)

	reg, err := rule.NewRegistry(reportAll("Types", tree.ClassDecl), reportAll("Sync", tree.Synchronized))
	require.NoError(t, err)
	require.NoError(t, reg.EnableOnly("Sync"))

	r := Walk(t.Context(), tr, symbol.NewIndex(tr), reg.Table(), Options{})

	for _, f := range r.Findings {
		assert.Equal(t, "Sync", f.Rule)
		assert.Equal(t, finding.Warning, f.Severity)
	}
}
