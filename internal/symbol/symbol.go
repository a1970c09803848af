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

// Package symbol answers name-binding and type-hierarchy queries over a [tree.Tree].
//
// The [Resolver] interface is what rules consume. [Index] is a lexical implementation that
// indexes one compilation unit lazily on first use and memoizes results until the tree changes.
package symbol

import (
	"strings"

	"fillmore-labs.com/syncguard/internal/tree"
)

// TypeID identifies a type by its binary name, like "java.lang.String", "p.Outer$Inner" or "int[]".
// Type variables are erased to their bound.
type TypeID string

// Well-known types.
const (
	Object       TypeID = "java.lang.Object"
	String       TypeID = "java.lang.String"
	Class        TypeID = "java.lang.Class"
	Enum         TypeID = "java.lang.Enum"
	Record       TypeID = "java.lang.Record"
	Serializable TypeID = "java.io.Serializable"
	Cloneable    TypeID = "java.lang.Cloneable"
	Void         TypeID = "void"
	Null         TypeID = "null"
)

var primitives = map[TypeID]string{
	"boolean": "Z",
	"byte":    "B",
	"char":    "C",
	"short":   "S",
	"int":     "I",
	"long":    "J",
	"float":   "F",
	"double":  "D",
	"void":    "V",
}

var boxes = map[TypeID]TypeID{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

// IsPrimitive reports whether t is a primitive type or void.
func (t TypeID) IsPrimitive() bool {
	_, ok := primitives[t]

	return ok
}

// IsArray reports whether t is an array type.
func (t TypeID) IsArray() bool { return strings.HasSuffix(string(t), "[]") }

// Elem returns the element type of an array type.
func (t TypeID) Elem() TypeID { return TypeID(strings.TrimSuffix(string(t), "[]")) }

// ArrayOf returns the array type with dims additional dimensions.
func (t TypeID) ArrayOf(dims int) TypeID {
	return t + TypeID(strings.Repeat("[]", dims))
}

// IsBoxed reports whether t is a primitive wrapper type.
func (t TypeID) IsBoxed() bool {
	for _, b := range boxes {
		if b == t {
			return true
		}
	}

	return false
}

// Boxed returns the wrapper type of a primitive, or t itself.
func (t TypeID) Boxed() TypeID {
	if b, ok := boxes[t]; ok {
		return b
	}

	return t
}

// SimpleName returns the name without package and enclosing types.
func (t TypeID) SimpleName() string {
	s := string(t)
	if i := strings.LastIndexAny(s, ".$"); i >= 0 {
		s = s[i+1:]
	}

	return s
}

// Descriptor returns the JVM field descriptor, like "I" or "Ljava/lang/String;".
func (t TypeID) Descriptor() string {
	var b strings.Builder

	for t.IsArray() {
		b.WriteByte('[')
		t = t.Elem()
	}

	if p, ok := primitives[t]; ok {
		b.WriteString(p)

		return b.String()
	}

	b.WriteByte('L')
	b.WriteString(strings.ReplaceAll(string(t), ".", "/"))
	b.WriteByte(';')

	return b.String()
}

// Method describes a method or constructor signature after erasure.
type Method struct {
	Owner  TypeID
	Name   string // "<init>" for constructors
	Params []TypeID
	Result TypeID
	Mods   tree.ModSet

	// Generic marks parameter positions whose declared type is a type variable.
	Generic []bool

	// Decl is the declaration inside the tree, if any.
	Decl tree.Cursor
}

// Descriptor returns the JVM method descriptor, like "(Ljava/lang/Object;)I".
func (m Method) Descriptor() string {
	var b strings.Builder

	b.WriteByte('(')

	for _, p := range m.Params {
		b.WriteString(p.Descriptor())
	}

	b.WriteByte(')')

	result := m.Result
	if result == "" {
		result = Void
	}

	b.WriteString(result.Descriptor())

	return b.String()
}

// Contract is what is known about the identity of a method's result.
type Contract uint8

const (
	// ContractUnknown means nothing is known about the result.
	ContractUnknown Contract = iota

	// ReturnsNew means the result is a freshly constructed instance.
	ReturnsNew

	// ReturnsExisting means the result is an instance that existed before the call.
	ReturnsExisting
)

// Resolver answers binding and hierarchy queries. Implementations must be deterministic
// and free of side effects visible to the caller.
type Resolver interface {
	// Resolve returns the declaration a reference binds to. Declarations resolve to themselves.
	Resolve(ref tree.Cursor) (tree.Cursor, bool)

	// IsSubtype reports whether a is b or a subtype of b.
	IsSubtype(a, b TypeID) bool

	// OverridingDeclarations returns the methods in the tree that override decl.
	OverridingDeclarations(decl tree.Cursor) []tree.Cursor

	// TypeOf returns the static type of an expression or the declared type of a declaration.
	TypeOf(expr tree.Cursor) (TypeID, bool)

	// ResolveType resolves a type reference. When the name cannot be bound, a best-effort
	// identity in the current package is returned together with false.
	ResolveType(typ tree.Cursor) (TypeID, bool)

	// BinaryName returns the identity of a type declaration or anonymous class.
	BinaryName(decl tree.Cursor) (TypeID, bool)

	// Supertypes returns the direct supertypes of t.
	Supertypes(t TypeID) []TypeID

	// Interfaces returns the interfaces a type declaration names directly, each with a flag
	// telling whether the name could be bound.
	Interfaces(decl tree.Cursor) (ids []TypeID, resolved []bool)

	// TypeDecl returns the declaration of a type defined in the tree.
	TypeDecl(t TypeID) (tree.Cursor, bool)

	// MethodOf returns the erased signature of a method or constructor declaration.
	MethodOf(decl tree.Cursor) (Method, bool)

	// SuperMethods returns the supertype methods overridden by a method declaration.
	SuperMethods(decl tree.Cursor) []Method

	// Contract describes the identity of the result of a call.
	Contract(call tree.Cursor) Contract
}

// IsTypeLike reports whether c declares a class, including anonymous classes.
func IsTypeLike(c tree.Cursor) bool {
	switch c.Kind() {
	case tree.New:
		return c.Variant() == tree.AnonymousNew
	case tree.EnumConstant:
		_, ok := c.Field(tree.RoleBody)

		return ok
	default:
		return c.Kind().IsType()
	}
}

// EnclosingClass returns the innermost class strictly enclosing c.
func EnclosingClass(c tree.Cursor) (tree.Cursor, bool) {
	child := c
	for a := c.Parent(); a.Valid(); child, a = a, a.Parent() {
		// An anonymous class only encloses its body, not its constructor arguments.
		if IsTypeLike(a) && (!isAnonymous(a) || child.Kind() == tree.ClassBody) {
			return a, true
		}
	}

	return tree.Cursor{}, false
}

func isAnonymous(c tree.Cursor) bool {
	return c.Kind() == tree.New || c.Kind() == tree.EnumConstant
}

// IsAnonymous reports whether c declares an anonymous class.
func IsAnonymous(c tree.Cursor) bool { return IsTypeLike(c) && isAnonymous(c) }

// IsLocal reports whether the type declaration c is declared inside a code block.
func IsLocal(c tree.Cursor) bool {
	return c.Kind().IsType() && c.Parent().Kind() != tree.ClassBody && c.Parent().Kind() != tree.CompilationUnit
}

// EffectiveModifiers returns the declared modifiers of c together with the implicit ones.
func EffectiveModifiers(c tree.Cursor) tree.ModSet {
	mods := c.Modifiers()

	owner, hasOwner := EnclosingClass(c)
	inInterface := hasOwner && (owner.Kind() == tree.InterfaceDecl || owner.Kind() == tree.AnnotationDecl)

	switch c.Kind() {
	case tree.InterfaceDecl, tree.AnnotationDecl:
		mods |= tree.ModInterface | tree.ModAbstract
		if hasOwner {
			mods |= tree.ModStatic
		}

	case tree.EnumDecl:
		if hasOwner {
			mods |= tree.ModStatic
		}

		if !enumHasConstantBodies(c) {
			mods |= tree.ModFinal
		}

	case tree.RecordDecl:
		mods |= tree.ModFinal
		if hasOwner {
			mods |= tree.ModStatic
		}

	case tree.ClassDecl:
		if inInterface {
			mods |= tree.ModPublic | tree.ModStatic
		}

	case tree.FieldDecl, tree.VariableDeclarator:
		if inInterface && (c.Kind() == tree.FieldDecl || c.Parent().Kind() == tree.FieldDecl) {
			mods |= tree.ModPublic | tree.ModStatic | tree.ModFinal
		}

	case tree.MethodDecl:
		if inInterface && !mods.Has(tree.ModPrivate) {
			mods |= tree.ModPublic
			if _, body := c.Field(tree.RoleBody); !body && !mods.Has(tree.ModStatic) {
				mods |= tree.ModAbstract
			}
		}

		mods &^= tree.ModDefault

	case tree.ConstructorDecl:
		if hasOwner && owner.Kind() == tree.EnumDecl {
			mods = mods&^tree.AccessModifiers | tree.ModPrivate
		}

	default:
	}

	return mods
}

func enumHasConstantBodies(c tree.Cursor) bool {
	body, ok := c.Field(tree.RoleBody)
	if !ok {
		return false
	}

	for e := range body.ChildrenOf(tree.EnumConstant) {
		if _, ok := e.Field(tree.RoleBody); ok {
			return true
		}
	}

	return false
}
