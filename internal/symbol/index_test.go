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

package symbol_test

import (
	"testing"

	. "fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/testsource"
	"fillmore-labs.com/syncguard/internal/tree"
)

const outer = `package p;

import java.util.List;

public class Outer implements Comparable<Outer>, java.io.Serializable {
  private final Object lock = new Object();
  private Object other;

  class Inner { }

  static class Nested extends Outer { }

  Object self() { return this; }

  @Contract("-> new")
  Object fresh() { return lock; }

  Object field() { return other; }

  public int compareTo(Outer o) { return 0; }

  void m(String s, int[] xs) {
    Object local = lock;
    Runnable r = new Runnable() {
      public void run() { local.notify(); }
    };
    class Local { }
    synchronized (local) { s.intern(); }
    String t = s + xs.length;
    Object u = this.other;
  }
}
`

func TestBinaryName(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, outer)

	tests := []struct {
		name string
		decl tree.Cursor
		want TypeID
	}{
		{"top", testsource.FindPrefix(t, tr, tree.ClassDecl, "public class Outer"), "p.Outer"},
		{"member", testsource.Find(t, tr, tree.ClassDecl, "class Inner { }"), "p.Outer$Inner"},
		{"nested", testsource.FindPrefix(t, tr, tree.ClassDecl, "static class Nested"), "p.Outer$Nested"},
		{"anonymous", testsource.FindPrefix(t, tr, tree.New, "new Runnable()"), "p.Outer$1"},
		{"local", testsource.Find(t, tr, tree.ClassDecl, "class Local { }"), "p.Outer$1Local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, ok := x.BinaryName(tt.decl); !ok || got != tt.want {
				t.Errorf("Got %q (%t), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, outer)

	// "local" inside the anonymous class binds to the local variable of m.
	for ref := range tr.Root().Preorder(tree.Ident) {
		if ref.Text() != "local" || ref.Role() == tree.RoleName {
			continue
		}

		decl, ok := x.Resolve(ref)
		if !ok {
			t.Fatalf("Can't resolve %s at %v", ref.Text(), ref.Position())
		}

		if decl.Kind() != tree.VariableDeclarator || decl.Parent().Kind() != tree.LocalVarDecl {
			t.Errorf("Got %s, want local variable", decl.Kind())
		}
	}

	fa := testsource.Find(t, tr, tree.FieldAccess, "this.other")

	decl, ok := x.Resolve(fa)
	if !ok || decl.Name() != "other" || decl.Parent().Kind() != tree.FieldDecl {
		t.Errorf("Got %s %q, want field other", decl.Kind(), decl.Name())
	}

	unknown := testsource.File(t, "class A { void m() { synchronized (missing) { } } }")
	ux := NewIndex(unknown)

	ref := testsource.Find(t, unknown, tree.Ident, "missing")
	if _, ok := ux.Resolve(ref); ok {
		t.Error("Got resolution for an undeclared name")
	}
}

func TestSubtype(t *testing.T) {
	t.Parallel()

	_, x := testsource.Index(t, outer)

	tests := []struct {
		a, b TypeID
		want bool
	}{
		{"p.Outer", Serializable, true},
		{"p.Outer$Nested", Serializable, true},
		{"p.Outer$Nested", "java.lang.Comparable", true},
		{"p.Outer", "p.Outer$Nested", false},
		{"int", Object, false},
		{"int[]", Cloneable, true},
		{"java.lang.String[]", "java.lang.Object[]", true},
		{"java.util.ArrayList", "java.util.Collection", true},
	}

	for _, tt := range tests {
		if got := x.IsSubtype(tt.a, tt.b); got != tt.want {
			t.Errorf("IsSubtype(%s, %s): Got %t, want %t", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, outer)

	tests := []struct {
		name string
		expr tree.Cursor
		want TypeID
	}{
		{"concat", testsource.Find(t, tr, tree.Binary, "s + xs.length"), String},
		{"length", testsource.Find(t, tr, tree.FieldAccess, "xs.length"), "int"},
		{"intern", testsource.Find(t, tr, tree.Call, "s.intern()"), String},
		{"field", testsource.Find(t, tr, tree.FieldAccess, "this.other"), Object},
		{"this", testsource.Find(t, tr, tree.This, "this"), "p.Outer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, ok := x.TypeOf(tt.expr); !ok || got != tt.want {
				t.Errorf("Got %q (%t), want %q", got, ok, tt.want)
			}
		})
	}
}

func TestMethods(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, outer)

	m := testsource.FindPrefix(t, tr, tree.MethodDecl, "void m(")

	sig, ok := x.MethodOf(m)
	if !ok {
		t.Fatal("No signature")
	}

	if got, want := sig.Descriptor(), "(Ljava/lang/String;[I)V"; got != want {
		t.Errorf("Got descriptor %q, want %q", got, want)
	}

	cmp := testsource.FindPrefix(t, tr, tree.MethodDecl, "public int compareTo")

	supers := x.SuperMethods(cmp)
	if len(supers) != 1 || supers[0].Owner != "java.lang.Comparable" {
		t.Fatalf("Got super methods %v, want Comparable.compareTo", supers)
	}

	if got, want := supers[0].Descriptor(), "(Ljava/lang/Object;)I"; got != want {
		t.Errorf("Got super descriptor %q, want %q", got, want)
	}

	self := testsource.FindPrefix(t, tr, tree.MethodDecl, "Object self()")
	if got := x.OverridingDeclarations(self); len(got) != 0 {
		t.Errorf("Got %d overriding declarations, want none", len(got))
	}
}

func TestOverriding(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, `
class Base { void f(int i) { } private void g() { } }
class Sub extends Base { void f(int i) { } void g() { } }
class Other { void f(int i) { } }
`)

	f := testsource.Find(t, tr, tree.MethodDecl, "void f(int i) { }")

	got := x.OverridingDeclarations(f)
	if len(got) != 1 {
		t.Fatalf("Got %d overriding declarations, want 1", len(got))
	}

	if class, _ := EnclosingClass(got[0]); class.Name() != "Sub" {
		t.Errorf("Got override in %s, want Sub", class.Name())
	}

	g := testsource.Find(t, tr, tree.MethodDecl, "void g() { }")
	if got := x.SuperMethods(g); len(got) != 0 {
		t.Errorf("Got %d super methods for an unrelated method, want none", len(got))
	}
}

func TestContract(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, outer+`
class User {
  void use(Outer o) {
    o.self();
    o.fresh();
    o.field();
    o.getClass();
    new Object().hashCode();
  }
}
`)

	tests := []struct {
		call string
		want Contract
	}{
		{"o.self()", ReturnsExisting},
		{"o.fresh()", ReturnsNew},
		{"o.field()", ReturnsExisting},
		{"o.getClass()", ReturnsExisting},
		{"new Object().hashCode()", ContractUnknown},
	}

	for _, tt := range tests {
		call := testsource.Find(t, tr, tree.Call, tt.call)
		if got := x.Contract(call); got != tt.want {
			t.Errorf("Contract(%s): Got %d, want %d", tt.call, got, tt.want)
		}
	}
}

func TestReindexAfterReplace(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, "class A { Object a; Object b; void m() { synchronized (a) { } } }")

	ref := testsource.Nth(t, tr, tree.Ident, "a", 1)
	if decl, ok := x.Resolve(ref); !ok || decl.Name() != "a" {
		t.Fatalf("Got %q, want a", decl.Name())
	}

	id, err := tr.Replace(ref.ID(), tree.Leaf(tree.Ident, 0, "b"))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	ref, _ = tr.At(id)
	if decl, ok := x.Resolve(ref); !ok || decl.Name() != "b" {
		t.Errorf("Got %q, want b", decl.Name())
	}
}

func TestHeaderTypes(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, `package p;

import java.util.concurrent.Callable;

class Base { }

class A extends Base implements java.io.Serializable, Callable<A>, Runnable, Unknown {
  interface Runnable { }

  Object r = new Thread() { };
}
`)

	tests := []struct {
		name   string
		text   string
		want   TypeID
		wantOK bool
	}{
		{"superclass", "Base", "p.Base", true},
		{"qualified", "java.io.Serializable", Serializable, true},
		{"imported", "Callable<A>", "java.util.concurrent.Callable", true},
		{"shadowed member", "Runnable", "java.lang.Runnable", true},
		{"unknown", "Unknown", "p.Unknown", false},
		{"anonymous", "Thread", "java.lang.Thread", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			typ := testsource.Find(t, tr, tree.TypeRef, tt.text)
			if got, ok := x.ResolveType(typ); got != tt.want || ok != tt.wantOK {
				t.Errorf("Got %s (%t), want %s (%t)", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if !x.IsSubtype("p.A", Serializable) {
		t.Errorf("Got p.A not serializable, want serializable")
	}
}

func TestCyclicDeclarations(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, `package p;

class C extends D { }

class D extends C { }

class G<T extends U, U extends T> {
  T t;
}
`)

	if x.IsSubtype("p.C", "java.lang.Runnable") {
		t.Errorf("Got p.C runnable, want not runnable")
	}

	field := testsource.Find(t, tr, tree.FieldDecl, "T t;")
	if got, ok := x.TypeOf(field); !ok || got != Object {
		t.Errorf("Got %s (%t), want %s", got, ok, Object)
	}
}

func TestCatchParameter(t *testing.T) {
	t.Parallel()

	tr, x := testsource.Index(t, "class A { void m() { try { } catch (RuntimeException e) { synchronized (e) { } } } }")

	name := testsource.Find(t, tr, tree.Ident, "e")
	ref := testsource.Nth(t, tr, tree.Ident, "e", 1)

	decl, ok := x.Resolve(ref)
	if !ok || decl.Kind() != tree.Parameter {
		t.Fatalf("Got %s, want parameter", decl.Kind())
	}

	if own, ok := x.Resolve(name); !ok || own.ID() != decl.ID() {
		t.Errorf("Got name bound to %s, want the parameter", own.Kind())
	}
}
