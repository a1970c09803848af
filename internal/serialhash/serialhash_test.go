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

package serialhash_test

import (
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/syncguard/internal/serialhash"
	"fillmore-labs.com/syncguard/internal/testsource"
	"fillmore-labs.com/syncguard/internal/tree"
)

// digest computes the identifier over ASCII strings and integers, independently of the encoder.
func digest(parts ...any) int64 {
	var buf []byte

	for _, p := range parts {
		switch p := p.(type) {
		case string:
			buf = binary.BigEndian.AppendUint16(buf, uint16(len(p)))
			buf = append(buf, p...)
		case int32:
			buf = binary.BigEndian.AppendUint32(buf, uint32(p))
		}
	}

	sum := sha1.Sum(buf)

	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

func typeNamed(t *testing.T, tr *tree.Tree, name string) tree.Cursor {
	t.Helper()

	for c := range tr.Root().Preorder(tree.ClassDecl, tree.InterfaceDecl, tree.RecordDecl, tree.EnumDecl) {
		if c.Name() == name {
			return c
		}
	}

	t.Fatalf("Can't find type %s", name)

	return tree.Cursor{}
}

func hashOf(t *testing.T, src, name string) int64 {
	t.Helper()

	tr, idx := testsource.Index(t, src)

	h, err := Compute(idx, typeNamed(t, tr, name))
	require.NoError(t, err)

	return h
}

func TestFixedPoint(t *testing.T) {
	t.Parallel()

	const src = `package p;

public class A implements java.io.Serializable {
  public A() { }
}
`

	want := digest("p.A", int32(0x1), "java.io.Serializable", "<init>", int32(0x1), "()V")

	for range 3 {
		if got := hashOf(t, src, "A"); got != want {
			t.Errorf("Got %d, want %d", got, want)
		}
	}
}

func TestDefaultConstructor(t *testing.T) {
	t.Parallel()

	const declared = `package p;
public class A implements java.io.Serializable { public A() { } }
`

	const implicit = `package p;
public class A implements java.io.Serializable { }
`

	assert.Equal(t, hashOf(t, declared, "A"), hashOf(t, implicit, "A"))
}

func TestStability(t *testing.T) {
	t.Parallel()

	const base = `package p;

import java.io.Serializable;

public class B implements Serializable, Comparable<B> {
  int count;
  protected String name;
  public int compareTo(B o) { return 0; }
}
`

	tests := []struct {
		name string
		src  string
		same bool
	}{
		{
			name: "reordered fields",
			src: `package p;

import java.io.Serializable;

public class B implements Comparable<B>, Serializable {
  protected String name;

  // A comment
  int   count;

  public int compareTo(B o) {
    return 1;
  }
}
`,
			same: true,
		},
		{
			name: "private method",
			src: `package p;

import java.io.Serializable;

public class B implements Serializable, Comparable<B> {
  int count;
  protected String name;
  public int compareTo(B o) { return 0; }
  private void helper() { }
}
`,
			same: true,
		},
		{
			name: "private static field",
			src: `package p;

import java.io.Serializable;

public class B implements Serializable, Comparable<B> {
  private static final Object LOCK = new Object();
  int count;
  protected String name;
  public int compareTo(B o) { return 0; }
}
`,
			same: false, // The initializer adds a class initializer.
		},
		{
			name: "public method",
			src: `package p;

import java.io.Serializable;

public class B implements Serializable, Comparable<B> {
  int count;
  protected String name;
  public int compareTo(B o) { return 0; }
  public void helper() { }
}
`,
			same: false,
		},
		{
			name: "private field",
			src: `package p;

import java.io.Serializable;

public class B implements Serializable, Comparable<B> {
  int count;
  protected String name;
  private long extra;
  public int compareTo(B o) { return 0; }
}
`,
			same: false,
		},
	}

	want := hashOf(t, base, "B")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hashOf(t, tt.src, "B")
			if (got == want) != tt.same {
				t.Errorf("Got %d, base %d, want same: %t", got, want, tt.same)
			}
		})
	}
}

func TestCollectInner(t *testing.T) {
	t.Parallel()

	const src = `package p;

public class Outer {
  class Inner implements java.io.Serializable {
    int x;
    private static int hidden;
    private transient int cache;
    void check() { assert x > 0; }
  }
}
`

	tr, idx := testsource.Index(t, src)

	s, err := Collect(idx, typeNamed(t, tr, "Inner"))
	require.NoError(t, err)

	assert.Equal(t, "p.Outer$Inner", s.Name)
	assert.Equal(t, int32(0), s.Modifiers)
	assert.Equal(t, []string{"java.io.Serializable"}, s.Interfaces)
	assert.ElementsMatch(t, []Member{
		{Name: "x", Modifiers: 0, Signature: "I"},
		{Name: "this$0", Modifiers: 0x10, Signature: "Lp/Outer;"},
		{Name: "$assertionsDisabled", Modifiers: 0x18, Signature: "Z"},
	}, s.Fields)
	assert.True(t, s.StaticInit)
	assert.Equal(t, []Member{{Name: "<init>", Modifiers: 0, Signature: "(Lp/Outer;)V"}}, s.Constructors)
	assert.Equal(t, []Member{{Name: "check", Modifiers: 0, Signature: "()V"}}, s.Methods)
}

func TestCollectBridge(t *testing.T) {
	t.Parallel()

	const src = `package p;

public final class Ver implements Comparable<Ver> {
  public int compareTo(Ver o) { return 0; }
}
`

	tr, idx := testsource.Index(t, src)

	s, err := Collect(idx, typeNamed(t, tr, "Ver"))
	require.NoError(t, err)

	assert.Equal(t, int32(0x11), s.Modifiers)
	assert.ElementsMatch(t, []Member{
		{Name: "compareTo", Modifiers: 0x1, Signature: "(Lp/Ver;)I"},
		{Name: "compareTo", Modifiers: 0x1, Signature: "(Ljava/lang/Object;)I"},
	}, s.Methods)
}

func TestInterfaceModifiers(t *testing.T) {
	t.Parallel()

	const src = `package p;

public interface Marker extends java.io.Serializable { int LIMIT = 3; }

interface Service extends java.io.Serializable { void run(); }
`

	tests := []struct {
		name string
		mods int32
	}{
		{"Marker", 0x201},
		{"Service", 0x600},
	}

	tr, idx := testsource.Index(t, src)

	for _, tt := range tests {
		s, err := Collect(idx, typeNamed(t, tr, tt.name))
		require.NoError(t, err)

		if s.Modifiers != tt.mods {
			t.Errorf("Got modifiers %#x for %s, want %#x", s.Modifiers, tt.name, tt.mods)
		}

		assert.False(t, s.StaticInit, "constant field needs no class initializer")
		assert.Empty(t, s.Constructors)
	}
}

func TestNotAType(t *testing.T) {
	t.Parallel()

	tr, idx := testsource.Index(t, "class C { int f; }\n")

	_, err := Compute(idx, testsource.FindPrefix(t, tr, tree.FieldDecl, "int f"))
	if !errors.Is(err, ErrNotAType) {
		t.Errorf("Got %v, want %v", err, ErrNotAType)
	}
}

func TestStringTooLong(t *testing.T) {
	t.Parallel()

	_, err := Shape{Name: strings.Repeat("x", 1<<16)}.Hash()
	if !errors.Is(err, ErrStringTooLong) {
		t.Errorf("Got %v, want %v", err, ErrStringTooLong)
	}
}

func TestCollectLocal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		outer bool
	}{
		{"static method", "static void m() { class L implements java.io.Serializable { } }", false},
		{"static initializer", "static { class L implements java.io.Serializable { } }", false},
		{"instance method", "void m() { class L implements java.io.Serializable { } }", true},
		{"instance initializer", "{ class L implements java.io.Serializable { } }", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr, idx := testsource.Index(t, "package p;\n\nclass O {\n  "+tt.body+"\n}\n")

			s, err := Collect(idx, typeNamed(t, tr, "L"))
			require.NoError(t, err)

			assert.Equal(t, "p.O$1L", s.Name)
			assert.Equal(t, []string{"java.io.Serializable"}, s.Interfaces)

			if !tt.outer {
				assert.Empty(t, s.Fields)
				assert.Equal(t, []Member{{Name: "<init>", Modifiers: 0, Signature: "()V"}}, s.Constructors)

				return
			}

			assert.Equal(t, []Member{{Name: "this$0", Modifiers: 0x10, Signature: "Lp/O;"}}, s.Fields)
			assert.Equal(t, []Member{{Name: "<init>", Modifiers: 0, Signature: "(Lp/O;)V"}}, s.Constructors)
		})
	}
}
