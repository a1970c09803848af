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

package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	. "fillmore-labs.com/syncguard/internal/report"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/rules"
	"fillmore-labs.com/syncguard/internal/testsource"
	"fillmore-labs.com/syncguard/internal/walk"
)

const src = `class A {
  synchronized void signal() {
    notify();
  }

  void f() {
    synchronized (this) { }
  }
}
`

func diagnostics(t *testing.T) []Diagnostic {
	t.Helper()

	tr, idx := testsource.Index(t, src)

	reg, err := rule.NewRegistry(rules.NotifyNotNotifyAll(), rules.EmptySync())
	require.NoError(t, err)

	msgs, err := rules.Messages(language.English, reg.Rules()...)
	require.NoError(t, err)

	res := walk.Walk(t.Context(), tr, idx, reg.Table(), walk.Options{Fixes: true})
	require.Len(t, res.Findings, 2)

	return Diagnostics(t.Context(), tr, idx, msgs, res.Findings)
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	ds := diagnostics(t)

	d := ds[0]
	assert.Equal(t, rules.NotifyID, d.Category)
	assert.Equal(t, "'notify()' should probably be replaced with 'notifyAll()' (NotifyNotNotifyAll)", d.Message)
	assert.Equal(t, 3, d.Posn.Line)
	assert.Equal(t, 5, d.Posn.Column)

	require.Len(t, d.SuggestedFixes, 1)
	require.NotNil(t, d.Edit)
	assert.Equal(t, "notifyAll", d.Edit.NewText)
	assert.Equal(t, "notify", src[d.Edit.Start:d.Edit.End])

	if got, want := d.SuggestedFixes[0].TextEdits[0].End-d.SuggestedFixes[0].TextEdits[0].Pos, len("notify"); int(got) != want {
		t.Errorf("Got edit length %d, want %d", got, want)
	}

	e := ds[1]
	assert.Equal(t, rules.EmptySyncID, e.Category)
	assert.Nil(t, e.Edit)
	assert.Empty(t, e.SuggestedFixes)
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, false).Print(diagnostics(t)))

	const want = `Test.java:3:5: warning: 'notify()' should probably be replaced with 'notifyAll()' (NotifyNotNotifyAll)
	fix: Replace with 'notifyAll()'
Test.java:7:5: warning: Empty 'synchronized' statement (EmptySynchronizedStatement)
`

	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, diagnostics(t)))

	var entries []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "Test.java", entries[0].File)
	assert.Equal(t, rules.NotifyID, entries[0].Rule)
	assert.Equal(t, "warning", entries[0].Severity)
	require.NotNil(t, entries[0].Fix)
	assert.Equal(t, "notifyAll", entries[0].Fix.NewText)
	assert.Nil(t, entries[1].Fix)
}
