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

package tree_test

import (
	"testing"

	. "fillmore-labs.com/syncguard/internal/tree"
)

func TestModifiers(t *testing.T) {
	t.Parallel()

	mods := Build(Modifiers, 0,
		Leaf(Annotation, 0, "@Deprecated"),
		Text(" private /* x */ "),
		Text("static final"),
	)
	field := Build(FieldDecl, 0, mods, Text(" "), Leaf(TypeRef, 0, "Object").WithRole(RoleType), Text(" "),
		Build(VariableDeclarator, 0, Leaf(Ident, 0, "lock").WithRole(RoleName)), Text(";"))

	tr, err := FromFragment("test.java", field)
	if err != nil {
		t.Fatalf("FromFragment failed: %v", err)
	}

	root := tr.Root()

	// The comment is plain text here, it is no child node. Only words are parsed.
	got := root.Modifiers()
	if want := ModPrivate | ModStatic | ModFinal; got != want {
		t.Errorf("Got modifiers %q, want %q", got, want)
	}

	decl, _ := root.FirstChild(VariableDeclarator)
	if decl.Modifiers() != got {
		t.Errorf("Declarator modifiers %q differ from declaration %q", decl.Modifiers(), got)
	}

	if typ, ok := decl.DeclaredType(); !ok || typ.Text() != "Object" {
		t.Errorf("Got declared type %q", typ.Text())
	}

	if decl.Name() != "lock" {
		t.Errorf("Got name %q, want %q", decl.Name(), "lock")
	}

	var annotations int
	for range root.Annotations() {
		annotations++
	}

	if annotations != 1 {
		t.Errorf("Got %d annotations, want 1", annotations)
	}
}

func TestStaticInitializerModifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		init *Fragment
		want ModSet
	}{
		{"static", Build(Initializer, StaticInit, Text("static "), Build(Block, 0, Text("{ }")).WithRole(RoleBody)), ModStatic},
		{"instance", Build(Initializer, 0, Build(Block, 0, Text("{ }")).WithRole(RoleBody)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, err := FromFragment("test.java", tt.init)
			if err != nil {
				t.Fatalf("FromFragment failed: %v", err)
			}

			if got := tr.Root().Modifiers(); got != tt.want {
				t.Errorf("Got modifiers %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModSetString(t *testing.T) {
	t.Parallel()

	if got, want := (ModFinal | ModPublic | ModStatic).String(), "public static final"; got != want {
		t.Errorf("Got %q, want %q", got, want)
	}
}
