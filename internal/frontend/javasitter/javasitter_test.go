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

package javasitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/syncguard/internal/frontend/javasitter"
	"fillmore-labs.com/syncguard/internal/tree"
)

const source = `package p;

import java.util.List;

// Demo class.
public class Demo<T extends Comparable<T>> extends Base implements Runnable, java.io.Serializable {
  private final Object lock = new Object();
  static int[] counts;

  static { counts = new int[3]; }

  { /* instance */ }

  public Demo(String... names) { super(); }

  @Override
  public synchronized void run() {
    synchronized (lock) {
      lock.notify(); // wake
    }
    Runnable r = () -> {};
    Object o = new Object() { };
  }

  void each(List<String> xs, int a[]) {
    for (String x : xs) { }
    try (var in = open()) { } catch (RuntimeException | Error e) { }
  }
}
`

func parse(t *testing.T) *tree.Tree {
	t.Helper()

	tr, err := ParseStrict(t.Context(), "Demo.java", []byte(source))
	require.NoError(t, err)

	return tr
}

func first(t *testing.T, tr *tree.Tree, kind tree.Kind) tree.Cursor {
	t.Helper()

	for c := range tr.Root().Preorder(kind) {
		return c
	}

	t.Fatalf("No %s", kind)

	return tree.Cursor{}
}

func TestClassShape(t *testing.T) {
	t.Parallel()

	tr := parse(t)

	class := first(t, tr, tree.ClassDecl)
	assert.Equal(t, "Demo", class.Name())
	assert.Equal(t, tree.ModPublic, class.Modifiers())

	sup, ok := class.Field(tree.RoleSuper)
	require.True(t, ok)
	assert.Equal(t, tree.SuperTypes, sup.Kind())

	ifaces, ok := class.Field(tree.RoleIfaces)
	require.True(t, ok)

	var names []string
	for typ := range ifaces.ChildrenOf(tree.TypeRef) {
		names = append(names, typ.Text())
	}

	assert.Equal(t, []string{"Runnable", "java.io.Serializable"}, names)

	tp := first(t, tr, tree.TypeParameter)
	assert.Equal(t, "T", tp.Name())

	body, ok := class.Field(tree.RoleBody)
	require.True(t, ok)
	assert.Equal(t, tree.ClassBody, body.Kind())

	var kinds []tree.Kind
	for m := range body.Members() {
		kinds = append(kinds, m.Kind())
	}

	assert.Equal(t, []tree.Kind{
		tree.FieldDecl, tree.FieldDecl, tree.Initializer, tree.Initializer,
		tree.ConstructorDecl, tree.MethodDecl, tree.MethodDecl,
	}, kinds)
}

func TestDeclarations(t *testing.T) {
	t.Parallel()

	tr := parse(t)

	field := first(t, tr, tree.FieldDecl)
	assert.Equal(t, tree.ModPrivate|tree.ModFinal, field.Modifiers())

	decl := first(t, tr, tree.VariableDeclarator)
	assert.Equal(t, "lock", decl.Name())

	typ, ok := decl.DeclaredType()
	require.True(t, ok)
	assert.Equal(t, "Object", typ.Text())

	init := first(t, tr, tree.Initializer)
	assert.Equal(t, tree.StaticInit, init.Variant())
	assert.True(t, init.Modifiers().Has(tree.ModStatic))

	ctor := first(t, tr, tree.ConstructorDecl)
	params, ok := ctor.Field(tree.RoleParams)
	require.True(t, ok)

	p, ok := params.FirstChild(tree.Parameter)
	require.True(t, ok)
	assert.Equal(t, tree.VarArgs, p.Variant())
	assert.Equal(t, "names", p.Name())

	for p := range tr.Root().Preorder(tree.Parameter) {
		if p.Name() == "a" {
			assert.Equal(t, 1, p.Dims())
		}
	}

	catch := first(t, tr, tree.Catch)
	cp, ok := catch.FirstChild(tree.Parameter)
	require.True(t, ok)
	assert.Equal(t, "e", cp.Name())

	_, ok = cp.FirstChild(tree.VariableDeclarator)
	assert.False(t, ok, "catch parameter is its own binding")

	each := first(t, tr, tree.ForEach)
	assert.Equal(t, "x", each.Name())

	try := first(t, tr, tree.Try)
	var resources []string
	for d := range try.Preorder(tree.VariableDeclarator) {
		resources = append(resources, d.Name())
	}

	assert.Equal(t, []string{"in"}, resources)
}

func TestStatements(t *testing.T) {
	t.Parallel()

	tr := parse(t)

	sync := first(t, tr, tree.Synchronized)
	lock, ok := sync.Field(tree.RoleLock)
	require.True(t, ok)
	assert.Equal(t, "lock", lock.Unparen().Text())

	var call tree.Cursor
	for c := range tr.Root().Preorder(tree.Call) {
		if c.Name() == "notify" {
			call = c
		}
	}

	require.True(t, call.Valid())

	obj, ok := call.Field(tree.RoleObject)
	require.True(t, ok)
	assert.Equal(t, "lock", obj.Text())

	var comments []string
	for c := range tr.Root().Preorder(tree.Comment) {
		comments = append(comments, c.Text())
	}

	assert.Equal(t, []string{"// Demo class.", "/* instance */", "// wake"}, comments)

	var anon int
	for n := range tr.Root().Preorder(tree.New) {
		if n.Variant() == tree.AnonymousNew {
			anon++
		}
	}

	assert.Equal(t, 1, anon)

	lambda := first(t, tr, tree.Lambda)
	assert.Equal(t, "() -> {}", lambda.Text())
}

func TestSyntaxError(t *testing.T) {
	t.Parallel()

	src := []byte("class X { void m() { int = ; } }")

	_, err := ParseStrict(t.Context(), "X.java", src)
	require.ErrorIs(t, err, ErrSyntax)

	tr, err := Parse(t.Context(), "X.java", src)
	require.NoError(t, err)
	assert.Equal(t, len(src), tr.Root().End())
}
