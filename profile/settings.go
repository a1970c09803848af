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

package profile

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/syncguard/analyzer"
	"fillmore-labs.com/syncguard/internal/finding"
)

// ErrInvalidOption is returned for rule options that are neither booleans nor lists of strings.
var ErrInvalidOption = errors.New("invalid rule option")

// Behavior holds the engine-wide settings of a profile.
type Behavior struct {
	// Generated enables analysis of generated sources.
	Generated *bool `toml:"generated"`
	// Suppressions enables //noinspection comments and @SuppressWarnings.
	Suppressions *bool `toml:"suppressions"`
	// Fixes enables quick fixes.
	Fixes *bool `toml:"fixes"`
}

// Options converts the behavior settings into analyzer options.
func (b Behavior) Options() []analyzer.Option {
	var opts []analyzer.Option

	opts = appendOption(opts, b.Generated, analyzer.WithGenerated)
	opts = appendOption(opts, b.Suppressions, analyzer.WithSuppressions)
	opts = appendOption(opts, b.Fixes, analyzer.WithFixes)

	return opts
}

// RuleSettings holds the settings of one rule.
type RuleSettings struct {
	// Enabled enables or disables the rule.
	Enabled *bool `json:"enabled,omitzero"`
	// Severity overrides the severity, "warning" or "error".
	Severity *string `json:"severity,omitzero"`
	// Options sets rule flags (booleans) and lists (arrays of strings).
	Options map[string]any `json:"options,omitzero"`
}

// RuleOptions converts the settings of rule id into analyzer options.
func (s RuleSettings) RuleOptions(id string) ([]analyzer.Option, error) {
	var opts []analyzer.Option

	if s.Enabled != nil {
		opts = append(opts, analyzer.WithRuleEnabled(id, *s.Enabled))
	}

	if s.Severity != nil {
		sev, err := finding.ParseSeverity(*s.Severity)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", id, err)
		}

		opts = append(opts, analyzer.WithSeverity(id, sev))
	}

	// Sorted for deterministic option order
	for _, name := range slices.Sorted(maps.Keys(s.Options)) {
		opt, err := ruleOption(id, name, s.Options[name])
		if err != nil {
			return nil, err
		}

		opts = append(opts, opt)
	}

	return opts, nil
}

func ruleOption(id, name string, value any) (analyzer.Option, error) {
	switch v := value.(type) {
	case bool:
		return analyzer.WithRuleFlag(id, name, v), nil

	case []any:
		values := make([]string, 0, len(v))

		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s contains %T", ErrInvalidOption, id, name, e)
			}

			values = append(values, s)
		}

		return analyzer.WithRuleList(id, name, values...), nil

	default:
		return nil, fmt.Errorf("%w: %s.%s has type %T", ErrInvalidOption, id, name, value)
	}
}

func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
