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
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golangci/plugin-module-register/register"

	"fillmore-labs.com/syncguard/analyzer"
)

// ErrUnknownKey is returned for profile keys outside the rule tables that are not understood.
var ErrUnknownKey = errors.New("unknown profile key")

// Profile is a decoded rule profile.
type Profile struct {
	Behavior Behavior
	Rules    map[string]RuleSettings
}

type document struct {
	Behavior Behavior       `toml:"behavior"`
	Rules    map[string]any `toml:"rules"`
}

// Decode reads a profile.
func Decode(r io.Reader) (*Profile, error) {
	var doc document

	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, err
	}

	for _, key := range md.Undecoded() {
		// Rule tables are decoded below.
		if len(key) > 0 && key[0] == "rules" {
			continue
		}

		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(key, "."))
	}

	p := &Profile{Behavior: doc.Behavior, Rules: make(map[string]RuleSettings, len(doc.Rules))}

	for id, raw := range doc.Rules {
		s, err := register.DecodeSettings[RuleSettings](raw)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", id, err)
		}

		p.Rules[id] = s
	}

	return p, nil
}

// Load reads the named profile file.
func Load(name string) (*Profile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", name, err)
	}

	return p, nil
}

// Options converts the profile into analyzer options. Rules are configured in ID order.
func (p *Profile) Options() ([]analyzer.Option, error) {
	opts := p.Behavior.Options()

	for _, id := range slices.Sorted(maps.Keys(p.Rules)) {
		ro, err := p.Rules[id].RuleOptions(id)
		if err != nil {
			return nil, err
		}

		opts = append(opts, ro...)
	}

	return opts, nil
}
