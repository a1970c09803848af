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

package tree

import "strings"

// ModSet is a set of declaration modifiers. The low bits use the JVM access flag values.
type ModSet uint32

const (
	ModPublic       ModSet = 0x0001
	ModPrivate      ModSet = 0x0002
	ModProtected    ModSet = 0x0004
	ModStatic       ModSet = 0x0008
	ModFinal        ModSet = 0x0010
	ModSynchronized ModSet = 0x0020
	ModVolatile     ModSet = 0x0040
	ModTransient    ModSet = 0x0080
	ModNative       ModSet = 0x0100
	ModInterface    ModSet = 0x0200
	ModAbstract     ModSet = 0x0400
	ModStrict       ModSet = 0x0800

	// Source-only modifiers without a JVM flag.
	ModDefault   ModSet = 1 << 16
	ModSealed    ModSet = 1 << 17
	ModNonSealed ModSet = 1 << 18
)

// AccessModifiers are the mutually exclusive visibility modifiers.
const AccessModifiers = ModPublic | ModPrivate | ModProtected

// modifierOrder is the customary source order.
var modifierOrder = [...]struct {
	mod  ModSet
	word string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModSealed, "sealed"},
	{ModNonSealed, "non-sealed"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModSynchronized, "synchronized"},
	{ModNative, "native"},
	{ModStrict, "strictfp"},
	{ModDefault, "default"},
}

// ParseModifier returns the modifier denoted by a keyword, or 0.
func ParseModifier(word string) ModSet {
	for _, m := range modifierOrder {
		if m.word == word {
			return m.mod
		}
	}

	return 0
}

// Has reports whether all modifiers in m2 are present.
func (m ModSet) Has(m2 ModSet) bool { return m&m2 == m2 }

// Any reports whether any modifier in m2 is present.
func (m ModSet) Any(m2 ModSet) bool { return m&m2 != 0 }

// String renders the modifiers as keywords in customary order.
func (m ModSet) String() string {
	var words []string

	for _, o := range modifierOrder {
		if m&o.mod != 0 {
			words = append(words, o.word)
		}
	}

	return strings.Join(words, " ")
}
