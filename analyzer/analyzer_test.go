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

package analyzer_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/syncguard/analyzer"
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/rules"
	"fillmore-labs.com/syncguard/internal/testsource"
	"fillmore-labs.com/syncguard/internal/tree"
)

func load(t *testing.T, name string) *tree.Tree {
	t.Helper()

	src, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return testsource.File(t, string(src))
}

func ruleIDs(res *Result) []string {
	ids := make([]string, 0, len(res.Findings))
	for _, f := range res.Findings {
		ids = append(ids, f.Rule)
	}

	return ids
}

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		options Option
		want    []string
	}{
		{
			name: "Default",
			file: "Worker.java",
			want: []string{rules.SyncOnNonFinalFieldID, rules.NotifyID},
		},
		{
			name:    "Only",
			file:    "Worker.java",
			options: WithRules(rules.NotifyID),
			want:    []string{rules.NotifyID},
		},
		{
			name:    "Disabled",
			file:    "Worker.java",
			options: WithRuleEnabled(rules.SyncOnNonFinalFieldID, false),
			want:    []string{rules.NotifyID},
		},
		{
			name: "Queue",
			file: "Queue.java",
			want: []string{rules.WaitNotInLoopID, rules.EmptySyncID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := New(tt.options)
			require.NoError(t, err)

			res := a.Run(t.Context(), load(t, tt.file))

			assert.Equal(t, tt.want, ruleIDs(res))
			assert.Zero(t, res.Failures)
		})
	}
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	a, err := New(WithRules(rules.NotifyID), WithSeverity(rules.NotifyID, finding.Error))
	require.NoError(t, err)

	res := a.Run(t.Context(), load(t, "Worker.java"))
	require.Len(t, res.Findings, 1)

	assert.Equal(t, finding.Error, res.Findings[0].Severity)
	assert.Equal(t, "'notify()' should probably be replaced with 'notifyAll()'", a.Render(res.Findings[0]))
}

func TestInvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options Option
		want    error
	}{
		{"unknown rule", WithRules("NoSuchRule"), rule.ErrUnknownRule},
		{"unknown flag", WithRuleFlag(rules.NotifyID, "loudly", true), rule.ErrUnknownOption},
		{"unknown list", WithRuleList(rules.SerialVersionUIDID, "classes", "A"), rule.ErrUnknownOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.options)
			if !errors.Is(err, tt.want) {
				t.Errorf("Got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApplyFixes(t *testing.T) {
	t.Parallel()

	a, err := New()
	require.NoError(t, err)

	res := a.Run(t.Context(), load(t, "Worker.java"))

	rep := a.ApplyFixes(t.Context(), res)
	assert.Len(t, rep.Applied, 2)
	assert.Empty(t, rep.Skipped)

	want, err := os.ReadFile(filepath.Join("testdata", "Worker.java.golden"))
	require.NoError(t, err)

	assert.Equal(t, string(want), string(res.Tree.Source()))

	if again := a.Run(t.Context(), res.Tree); len(again.Findings) != 0 {
		t.Errorf("Got findings after fixing: %v", ruleIDs(again))
	}
}

func TestApplyFixesFiltered(t *testing.T) {
	t.Parallel()

	a, err := New()
	require.NoError(t, err)

	res := a.Run(t.Context(), load(t, "Worker.java"))

	rep := a.ApplyFixes(t.Context(), res, rules.NotifyID)
	require.Len(t, rep.Applied, 1)

	src := string(res.Tree.Source())
	assert.Contains(t, src, "lock.notifyAll()")
	assert.Contains(t, src, "private Object lock")
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	a, err := New(WithRules(rules.NotifyID))
	require.NoError(t, err)

	res := a.Run(t.Context(), load(t, "Worker.java"))

	ds := a.Diagnostics(t.Context(), res)
	require.Len(t, ds, 1)
	require.Len(t, ds[0].SuggestedFixes, 1)

	assert.Equal(t, "Replace with 'notifyAll()'", ds[0].SuggestedFixes[0].Message)
	assert.Equal(t, 8, ds[0].Posn.Line)
}

func TestRunAll(t *testing.T) {
	t.Parallel()

	a, err := New()
	require.NoError(t, err)

	trees := []*tree.Tree{load(t, "Worker.java"), load(t, "Queue.java"), load(t, "Worker.java")}

	results, err := a.RunAll(t.Context(), trees, 2)
	require.NoError(t, err)
	require.Len(t, results, len(trees))

	for i, res := range results {
		want := a.Run(t.Context(), trees[i])
		assert.Equal(t, ruleIDs(want), ruleIDs(res))
		assert.Same(t, trees[i], res.Tree)
	}
}

func TestRunAllCanceled(t *testing.T) {
	t.Parallel()

	a, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = a.RunAll(ctx, []*tree.Tree{load(t, "Worker.java")}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Got %v, want %v", err, context.Canceled)
	}
}

func TestLogValue(t *testing.T) {
	t.Parallel()

	opts := Options{WithGenerated(true), nil, Options{WithRules(rules.NotifyID)}, WithRuleFlag(rules.SyncOnLocalID, "reportLocalVariables", false)}

	var b strings.Builder

	logger := slog.New(slog.NewTextHandler(&b, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}))
	logger.Info("configured", opts.LogAttr())

	const want = "level=INFO msg=configured options.generated=true options.nil=<nil> options.rules=[NotifyNotNotifyAll]" +
		" options.SynchronizationOnLocalVariableOrMethodParameter.reportLocalVariables=false\n"

	assert.Equal(t, want, b.String())
}
