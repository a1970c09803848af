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
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/syncguard/internal/tree"
)

var (
	// ErrDuplicateRule is returned when two rules share an ID.
	ErrDuplicateRule = errors.New("duplicate rule")

	// ErrUnknownRule is returned for IDs not in the registry.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrUnknownOption is returned for option names a rule does not declare.
	ErrUnknownOption = errors.New("unknown option")

	// ErrInvalidRule is returned for rules missing an ID, kinds or a visitor factory.
	ErrInvalidRule = errors.New("invalid rule")
)

// Registry is the catalog of rules with their configuration.
//
// A Registry is mutable while being configured. [Registry.Table] takes an immutable
// snapshot for a batch of runs.
type Registry struct {
	rules   []*Rule
	configs []Config
	byID    map[string]int
}

// NewRegistry creates a registry of rules, each with its default configuration.
func NewRegistry(rules ...*Rule) (*Registry, error) {
	r := &Registry{byID: make(map[string]int, len(rules))}

	for _, rl := range rules {
		if err := r.Add(rl); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Add registers a rule with its default configuration.
func (r *Registry) Add(rl *Rule) error {
	switch {
	case rl == nil || rl.ID == "":
		return fmt.Errorf("%w: missing ID", ErrInvalidRule)
	case len(rl.Kinds) == 0 || rl.New == nil:
		return fmt.Errorf("%w: %s has no kinds or visitor", ErrInvalidRule, rl.ID)
	default:
	}

	if _, ok := r.byID[rl.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, rl.ID)
	}

	r.byID[rl.ID] = len(r.rules)
	r.rules = append(r.rules, rl)
	r.configs = append(r.configs, rl.DefaultConfig())

	return nil
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []*Rule { return slices.Clone(r.rules) }

// Lookup returns the rule with the given ID.
func (r *Registry) Lookup(id string) (*Rule, bool) {
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}

	return r.rules[i], true
}

// Config returns a copy of the configuration of a rule.
func (r *Registry) Config(id string) (Config, error) {
	i, ok := r.byID[id]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownRule, id)
	}

	return r.configs[i].Clone(), nil
}

// Configure modifies the configuration of a rule.
func (r *Registry) Configure(id string, fn func(rl *Rule, cfg *Config) error) error {
	i, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, id)
	}

	cfg := r.configs[i].Clone()
	if err := fn(r.rules[i], &cfg); err != nil {
		return err
	}

	r.configs[i] = cfg

	return nil
}

// EnableOnly enables exactly the given rules.
func (r *Registry) EnableOnly(ids ...string) error {
	for _, id := range ids {
		if _, ok := r.byID[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRule, id)
		}
	}

	for i, rl := range r.rules {
		r.configs[i].Enabled = slices.Contains(ids, rl.ID)
	}

	return nil
}

// Table is an immutable dispatch table over the enabled rules of a registry.
type Table struct {
	entries []Entry
	byKind  [tree.NumKinds][]int
}

// Entry is a rule with the configuration it runs with.
type Entry struct {
	Rule   *Rule
	Config Config
}

// Table snapshots the enabled rules and their configuration.
func (r *Registry) Table() *Table {
	t := &Table{}

	for i, rl := range r.rules {
		cfg := r.configs[i]
		if !cfg.Enabled {
			continue
		}

		idx := len(t.entries)
		t.entries = append(t.entries, Entry{Rule: rl, Config: cfg.Clone()})

		for _, k := range rl.Kinds {
			if int(k) < tree.NumKinds && !slices.Contains(t.byKind[k], idx) {
				t.byKind[k] = append(t.byKind[k], idx)
			}
		}
	}

	return t
}

// Len returns the number of enabled rules.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns the i-th enabled rule.
func (t *Table) Entry(i int) Entry { return t.entries[i] }

// For returns the indexes of the rules subscribed to a node kind, in registration order.
func (t *Table) For(k tree.Kind) []int { return t.byKind[k] }
