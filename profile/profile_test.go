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

package profile_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/syncguard/analyzer"
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/rules"
	. "fillmore-labs.com/syncguard/profile"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	p, err := Load(filepath.Join("testdata", "strict.toml"))
	require.NoError(t, err)

	require.NotNil(t, p.Behavior.Generated)
	assert.True(t, *p.Behavior.Generated)
	assert.Nil(t, p.Behavior.Suppressions)
	assert.Len(t, p.Rules, 3)

	opts, err := p.Options()
	require.NoError(t, err)

	a, err := analyzer.New(opts...)
	require.NoError(t, err)

	notify, err := a.Config(rules.NotifyID)
	require.NoError(t, err)
	assert.Equal(t, finding.Error, notify.Severity)

	literal, err := a.Config(rules.SyncOnLiteralID)
	require.NoError(t, err)
	assert.False(t, literal.Enabled)

	uid, err := a.Config(rules.SerialVersionUIDID)
	require.NoError(t, err)
	assert.True(t, uid.Flag(rules.IgnoreAnonymousInnerClasses))
	assert.Equal(t, []string{"java.lang.Throwable"}, uid.List(rules.SuperClassList))

	if got := a.Flags().Lookup("fixes").Value.String(); got != "false" {
		t.Errorf("Got fixes %s, want false", got)
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile string
		want    int
	}{
		{"empty", ``, 0},
		{"behavior", "[behavior]\ngenerated = true\nsuppressions = false\nfixes = true\n", 3},
		{"rule", "[rules.NotifyNotNotifyAll]\nenabled = true\nseverity = \"warning\"\n", 2},
		{"options", "[rules.SynchronizationOnLiteralObject.options]\nwarnOnAllPossiblyLiterals = true\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := Decode(strings.NewReader(tt.profile))
			require.NoError(t, err)

			opts, err := p.Options()
			require.NoError(t, err)

			if len(opts) != tt.want {
				t.Errorf("Got %d options: %s, want %d", len(opts), analyzer.Options(opts).LogValue(), tt.want)
			}

			_, err = analyzer.New(opts...)
			require.NoError(t, err)
		})
	}
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile string
		want    error
	}{
		{"unknown section", "[linters]\nall = true\n", ErrUnknownKey},
		{"unknown behavior", "[behavior]\nfast = true\n", ErrUnknownKey},
		{"option type", "[rules.NotifyNotNotifyAll.options]\nlimit = 3\n", ErrInvalidOption},
		{"list type", "[rules.NotifyNotNotifyAll.options]\nnames = [1, 2]\n", ErrInvalidOption},
		{"severity", "[rules.NotifyNotNotifyAll]\nseverity = \"fatal\"\n", finding.ErrUnknownSeverity},
		{"unknown rule option", "[rules.NotifyNotNotifyAll.options]\nloudly = true\n", rule.ErrUnknownOption},
		{"unknown rule", "[rules.NoSuchRule]\nenabled = true\n", rule.ErrUnknownRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := func() error {
				p, err := Decode(strings.NewReader(tt.profile))
				if err != nil {
					return err
				}

				opts, err := p.Options()
				if err != nil {
					return err
				}

				_, err = analyzer.New(opts...)

				return err
			}()

			if !errors.Is(err, tt.want) {
				t.Errorf("Got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnknownRuleField(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("[rules.NotifyNotNotifyAll]\nlevel = \"high\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NotifyNotNotifyAll")
}

func TestRuleOptions(t *testing.T) {
	t.Parallel()

	enabled, severity := true, "error"
	s := RuleSettings{
		Enabled:  &enabled,
		Severity: &severity,
		Options:  map[string]any{rules.SuperClassList: []any{"java.lang.Throwable"}, rules.IgnoreAnonymousInnerClasses: true},
	}

	opts, err := s.RuleOptions(rules.SerialVersionUIDID)
	require.NoError(t, err)

	if got, want := len(opts), 4; got != want {
		t.Errorf("Got %d options: %s, want %d", got, analyzer.Options(opts).LogValue(), want)
	}

	_, err = analyzer.New(opts...)
	require.NoError(t, err)
}
