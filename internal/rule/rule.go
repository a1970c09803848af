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

// Package rule defines detection rules as data records and the flat registry that dispatches them.
//
// A [Rule] names the node kinds it subscribes to and a factory for its per-run visitor.
// Rules carry no state between runs; state a rule accumulates while walking one tree lives
// in the closure returned by [Rule.New].
package rule

import (
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Visitor is called for every node of a subscribed kind. Returning an error, like panicking,
// discards the findings of this invocation; the walk continues.
type Visitor func(p *Pass, c tree.Cursor) error

// Rule is a detection rule.
type Rule struct {
	ID       string
	Doc      string
	Kinds    []tree.Kind
	Severity finding.Severity

	// Messages maps message keys to templates, see [finding.Messages].
	Messages map[string]string

	// Defaults lists the options the rule understands with their default values.
	Defaults Config

	// New creates the visitor for one run.
	New func(cfg Config) Visitor
}

// DefaultConfig returns the configuration a rule starts with.
func (r *Rule) DefaultConfig() Config {
	cfg := r.Defaults.Clone()
	cfg.Enabled = !r.Defaults.Disabled
	cfg.Severity = r.Severity

	return cfg
}

// Config is the configuration record of a rule: named booleans and string lists.
type Config struct {
	Enabled  bool
	Disabled bool // Used in [Rule.Defaults] for rules that are off unless enabled
	Severity finding.Severity
	Flags    map[string]bool
	Lists    map[string][]string
}

// Flag returns the named boolean option.
func (c Config) Flag(name string) bool { return c.Flags[name] }

// List returns the named list option.
func (c Config) List(name string) []string { return c.Lists[name] }

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Flags = maps.Clone(c.Flags)

	if c.Lists != nil {
		lists := make(map[string][]string, len(c.Lists))
		for k, v := range c.Lists {
			lists[k] = slices.Clone(v)
		}

		c.Lists = lists
	}

	return c
}

// SetFlag sets a boolean option, rejecting names the rule does not declare.
func (c *Config) SetFlag(r *Rule, name string, value bool) error {
	if _, ok := r.Defaults.Flags[name]; !ok {
		return fmt.Errorf("%w: %s has no flag %q", ErrUnknownOption, r.ID, name)
	}

	if c.Flags == nil {
		c.Flags = make(map[string]bool)
	}

	c.Flags[name] = value

	return nil
}

// SetList sets a list option, rejecting names the rule does not declare.
func (c *Config) SetList(r *Rule, name string, values []string) error {
	if _, ok := r.Defaults.Lists[name]; !ok {
		return fmt.Errorf("%w: %s has no list %q", ErrUnknownOption, r.ID, name)
	}

	if c.Lists == nil {
		c.Lists = make(map[string][]string)
	}

	c.Lists[name] = slices.Clone(values)

	return nil
}
