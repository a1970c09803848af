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

package symbol

import (
	"strings"

	"fillmore-labs.com/syncguard/internal/tree"
)

// ResolveType implements [Resolver].
func (x *Index) ResolveType(typ tree.Cursor) (TypeID, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(typ) {
		return "", false
	}

	x.sync()

	return x.resolveType(typ)
}

// resolveType resolves a type reference node, erasing type arguments and type variables.
func (x *Index) resolveType(typ tree.Cursor) (TypeID, bool) {
	text := []byte(typ.Text())
	for child := range typ.Children() {
		if k := child.Kind(); k == tree.Annotation || k == tree.Comment {
			for i := child.Start() - typ.Start(); i < child.End()-typ.Start(); i++ {
				text[i] = ' '
			}
		}
	}

	name, dims := eraseTypeText(string(text))

	switch name {
	case "", "var":
		return "", false
	default:
	}

	if id := TypeID(name); id.IsPrimitive() {
		return id.ArrayOf(dims), true
	}

	id, ok := x.resolveTypeName(name, typ)

	return id.ArrayOf(dims), ok
}

// eraseTypeText strips type arguments, white space and array brackets.
func eraseTypeText(s string) (name string, dims int) {
	var b strings.Builder

	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth > 0:
		case r == '[':
			dims++
		case r == ']', r == ' ', r == '\t', r == '\n', r == '\r':
		default:
			b.WriteRune(r)
		}
	}

	name = b.String()
	if n, ok := strings.CutSuffix(name, "..."); ok {
		name, dims = n, dims+1
	}

	return name, dims
}

// resolveTypeName binds a possibly qualified type name as seen from a node.
func (x *Index) resolveTypeName(name string, from tree.Cursor) (TypeID, bool) {
	first, rest, qualified := strings.Cut(name, ".")

	id, ok := x.resolveSimpleTypeName(first, from)
	if !ok {
		if qualified {
			// A fully qualified name. Nested in-tree types are still found by binary name.
			full := TypeID(name)
			if _, known := x.types[full]; known {
				return full, true
			}

			if pkg, simple := splitPackage(full); pkg != "" {
				if nested := x.nestedByPath(pkg, simple); nested != "" {
					return nested, true
				}
			}

			return full, true
		}

		return id, false
	}

	for seg := range strings.SplitSeq(rest, ".") {
		if seg == "" {
			continue
		}

		id += "$" + TypeID(seg)
	}

	return id, true
}

// nestedByPath maps a dotted source path like "p.Outer.Inner" to a binary name "p.Outer$Inner".
func (x *Index) nestedByPath(pkg, simple string) TypeID {
	for id := range x.types {
		if strings.ReplaceAll(string(id), "$", ".") == pkg+"."+simple {
			return id
		}
	}

	return ""
}

func (x *Index) resolveSimpleTypeName(name string, from tree.Cursor) (TypeID, bool) {
	// Type variables and member, local and enclosing classes, innermost first.
	child := from
	for a := from; a.Valid(); child, a = a, a.Parent() {
		switch {
		case a.Kind() == tree.MethodDecl || a.Kind() == tree.ConstructorDecl:
			if bound, ok := x.typeVariable(a, name); ok {
				return bound, true
			}

		case a.Kind() == tree.Block:
			for i := child.Index(); i >= 0 && a.ID() != child.ID(); i-- {
				if s := a.Child(i); s.Kind().IsType() && s.Name() == name {
					if id, ok := x.names[s.ID()]; ok {
						return id, true
					}
				}
			}

		case IsTypeLike(a):
			if bound, ok := x.typeVariable(a, name); ok {
				return bound, true
			}

			if !isAnonymous(a) && a.Name() == name {
				if id, ok := x.names[a.ID()]; ok {
					return id, true
				}
			}

			if inHeader(a, child) {
				// Member types are only in scope in the class body.
				continue
			}

			if id, ok := x.memberType(a, name, nil); ok {
				return id, true
			}

		default:
		}
	}

	// Other top-level types of this compilation unit.
	top := TypeID(name)
	if x.pkg != "" {
		top = TypeID(x.pkg + "." + name)
	}

	if _, ok := x.types[top]; ok {
		return top, true
	}

	if id, ok := x.imports[name]; ok {
		return id, true
	}

	if id, ok := javaLang[name]; ok {
		return id, true
	}

	for _, pkg := range x.wildcards {
		id := TypeID(pkg + "." + name)
		if _, ok := builtins[id]; ok {
			return id, true
		}
	}

	if x.pkg == "" {
		return TypeID(name), false
	}

	return TypeID(x.pkg + "." + name), false
}

// inHeader reports whether child, a direct child of the type-like node decl, lies outside its body.
func inHeader(decl, child tree.Cursor) bool {
	if child.ID() == decl.ID() {
		return false
	}

	if decl.Kind() == tree.New {
		return child.Role() != tree.RoleBody
	}

	switch child.Role() {
	case tree.RoleSuper, tree.RoleIfaces:
		return true

	default:
		return false
	}
}

// memberType finds a member type of a class or of its in-tree supertypes.
func (x *Index) memberType(class tree.Cursor, name string, seen map[tree.NodeID]bool) (TypeID, bool) {
	if seen == nil {
		seen = make(map[tree.NodeID]bool)
	}

	if seen[class.ID()] {
		return "", false
	}

	seen[class.ID()] = true

	for m := range class.Members() {
		if m.Kind().IsType() && m.Name() == name {
			if id, ok := x.names[m.ID()]; ok {
				return id, true
			}
		}
	}

	for _, s := range x.declaredSupertypes(class) {
		if decl, ok := x.typeDecl(s); ok {
			if id, ok := x.memberType(decl, name, seen); ok {
				return id, true
			}
		}
	}

	return "", false
}

// typeVariable returns the erasure of a type parameter declared by a method or class.
func (x *Index) typeVariable(decl tree.Cursor, name string) (TypeID, bool) {
	for tp := range decl.Preorder(tree.TypeParameter) {
		if tp.Parent().Parent().ID() != decl.ID() && tp.Parent().ID() != decl.ID() {
			continue
		}

		if tp.Name() != name {
			continue
		}

		if x.resolving[tp.ID()] {
			return Object, true
		}

		x.resolving[tp.ID()] = true
		defer delete(x.resolving, tp.ID())

		for bound := range tp.Preorder(tree.TypeRef) {
			if bound.Role() == tree.RoleName || bound.Parent().Kind() == tree.TypeRef {
				continue
			}

			if id, ok := x.resolveType(bound); ok {
				return id, true
			}

			break
		}

		return Object, true
	}

	return "", false
}

// isTypeVariable reports whether the type node names a type parameter.
func (x *Index) isTypeVariable(typ tree.Cursor) bool {
	name, _ := eraseTypeText(typ.Text())

	for a := range typ.Enclosing() {
		if a.Kind() == tree.MethodDecl || a.Kind() == tree.ConstructorDecl || IsTypeLike(a) {
			if _, ok := x.typeVariable(a, name); ok {
				return true
			}
		}
	}

	return false
}

// Supertypes implements [Resolver].
func (x *Index) Supertypes(id TypeID) []TypeID {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.sync()

	return x.supertypes(id)
}

func (x *Index) supertypes(id TypeID) []TypeID {
	if id == Object || id.IsPrimitive() || id == "" {
		return nil
	}

	if id.IsArray() {
		return []TypeID{Object, Cloneable, Serializable}
	}

	if decl, ok := x.typeDecl(id); ok {
		return x.declaredSupertypes(decl)
	}

	if b, ok := builtins[id]; ok {
		if len(b.supers) == 0 && !b.iface {
			return []TypeID{Object}
		}

		return b.supers
	}

	return []TypeID{Object}
}

// declaredSupertypes returns the superclass followed by the interfaces of an in-tree class.
//
// A class whose supertypes are being resolved further up the stack has none.
func (x *Index) declaredSupertypes(decl tree.Cursor) []TypeID {
	if x.resolving[decl.ID()] {
		return nil
	}

	x.resolving[decl.ID()] = true
	defer delete(x.resolving, decl.ID())

	var supers []TypeID

	switch decl.Kind() {
	case tree.New:
		if typ, ok := decl.Field(tree.RoleType); ok {
			id, _ := x.resolveType(typ)
			if x.isInterface(id) {
				supers = append(supers, Object)
			}

			supers = append(supers, id)
		}

		return supers

	case tree.EnumConstant:
		if owner, ok := EnclosingClass(decl); ok {
			return []TypeID{x.names[owner.ID()]}
		}

		return []TypeID{Enum}

	case tree.EnumDecl:
		supers = append(supers, Enum)

	case tree.RecordDecl:
		supers = append(supers, Record)

	case tree.ClassDecl:
		if sc, ok := decl.Field(tree.RoleSuper); ok {
			for typ := range sc.Preorder(tree.TypeRef) {
				id, _ := x.resolveType(typ)
				supers = append(supers, id)

				break
			}
		} else {
			supers = append(supers, Object)
		}

	default:
	}

	if ifaces, ok := decl.Field(tree.RoleIfaces); ok {
		for typ := range ifaces.ChildrenOf(tree.TypeRef) {
			id, _ := x.resolveType(typ)
			supers = append(supers, id)
		}
	}

	return supers
}

// Interfaces implements [Resolver].
func (x *Index) Interfaces(decl tree.Cursor) (ids []TypeID, resolved []bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(decl) {
		return nil, nil
	}

	x.sync()

	return x.interfaceTypes(decl)
}

// interfaceTypes returns the interfaces a class declares directly, with a resolution flag each.
func (x *Index) interfaceTypes(decl tree.Cursor) (ids []TypeID, resolved []bool) {
	if decl.Kind() == tree.New {
		if typ, ok := decl.Field(tree.RoleType); ok {
			if id, ok := x.resolveType(typ); x.isInterface(id) {
				return []TypeID{id}, []bool{ok}
			}
		}

		return nil, nil
	}

	ifaces, ok := decl.Field(tree.RoleIfaces)
	if !ok {
		return nil, nil
	}

	for typ := range ifaces.ChildrenOf(tree.TypeRef) {
		id, ok := x.resolveType(typ)
		ids, resolved = append(ids, id), append(resolved, ok)
	}

	return ids, resolved
}

func (x *Index) isInterface(id TypeID) bool {
	if decl, ok := x.typeDecl(id); ok {
		return decl.Kind() == tree.InterfaceDecl || decl.Kind() == tree.AnnotationDecl
	}

	return builtins[id].iface
}

// IsSubtype implements [Resolver].
func (x *Index) IsSubtype(a, b TypeID) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.sync()

	return x.isSubtype(a, b)
}

func (x *Index) isSubtype(a, b TypeID) bool {
	if a == b {
		return a != ""
	}

	if a == "" || b == "" || a.IsPrimitive() || b.IsPrimitive() {
		return false
	}

	if b == Object {
		return true
	}

	if a.IsArray() && b.IsArray() {
		return x.isSubtype(a.Elem(), b.Elem()) && !a.Elem().IsPrimitive()
	}

	seen := map[TypeID]bool{a: true}
	queue := []TypeID{a}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		for _, s := range x.supertypes(t) {
			if s == b {
				return true
			}

			if !seen[s] {
				seen[s] = true
				queue = append(queue, s)
			}
		}
	}

	return false
}

// TypeOf implements [Resolver].
func (x *Index) TypeOf(expr tree.Cursor) (TypeID, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(expr) {
		return "", false
	}

	x.sync()

	return x.typeOf(expr)
}

func (x *Index) typeOf(expr tree.Cursor) (TypeID, bool) {
	if r, ok := x.typed[expr.ID()]; ok {
		return r.id, r.ok
	}

	x.typed[expr.ID()] = typing{}

	id, ok := x.typeOfUncached(expr)
	x.typed[expr.ID()] = typing{id, ok}

	return id, ok
}

var literalTypes = map[uint8]TypeID{
	tree.LitString:    String,
	tree.LitTextBlock: String,
	tree.LitChar:      "char",
	tree.LitInt:       "int",
	tree.LitLong:      "long",
	tree.LitFloat:     "float",
	tree.LitDouble:    "double",
	tree.LitBool:      "boolean",
}

func (x *Index) typeOfUncached(expr tree.Cursor) (TypeID, bool) {
	switch expr.Kind() {
	case tree.Paren:
		return x.typeOf(expr.Unparen())

	case tree.Literal:
		id, ok := literalTypes[expr.Variant()]

		return id, ok

	case tree.Cast:
		if typ, ok := expr.Field(tree.RoleType); ok {
			return x.resolveType(typ)
		}

	case tree.This:
		if class, ok := x.receiverClass(expr, expr); ok {
			id, ok := x.names[class.ID()]

			return id, ok
		}

	case tree.ClassLiteral:
		return Class, true

	case tree.InstanceOf:
		return "boolean", true

	case tree.New:
		if expr.Variant() == tree.AnonymousNew {
			id, ok := x.names[expr.ID()]

			return id, ok
		}

		if typ, ok := expr.Field(tree.RoleType); ok {
			id, ok := x.resolveType(typ)
			if ok && strings.Contains(expr.Text(), "[") && !strings.Contains(typ.Text(), "[") {
				// Array creation with dimensions after the element type.
				id = id.ArrayOf(strings.Count(expr.Text()[typ.End()-expr.Start():], "["))
			}

			return id, ok
		}

	case tree.Assign:
		if left, ok := expr.Field(tree.RoleLeft); ok {
			return x.typeOf(left)
		}

	case tree.Conditional:
		if then, ok := expr.Field(tree.RoleThen); ok {
			return x.typeOf(then)
		}

	case tree.Binary:
		return x.binaryType(expr)

	case tree.Unary:
		if op, ok := expr.Operand(); ok {
			if strings.HasPrefix(expr.Text(), "!") {
				return "boolean", true
			}

			return x.typeOf(op)
		}

	case tree.ArrayAccess:
		if arr, ok := expr.Operand(); ok {
			if id, ok := x.typeOf(arr); ok && id.IsArray() {
				return id.Elem(), true
			}
		}

	case tree.FieldAccess:
		if expr.Name() == "length" {
			if obj, ok := expr.Field(tree.RoleObject); ok {
				if id, ok := x.typeOf(obj); ok && id.IsArray() {
					return "int", true
				}
			}
		}

		if decl, ok := x.resolve(expr); ok {
			return x.declType(decl)
		}

	case tree.Ident:
		if decl, ok := x.resolve(expr); ok && !decl.Kind().IsType() {
			return x.declType(decl)
		}

	case tree.Call:
		return x.callType(expr)

	case tree.VariableDeclarator, tree.Parameter, tree.ForEach, tree.FieldDecl, tree.LocalVarDecl, tree.MethodDecl:
		return x.declType(expr)

	default:
		if IsTypeLike(expr) {
			id, ok := x.names[expr.ID()]

			return id, ok
		}
	}

	return "", false
}

func (x *Index) binaryType(expr tree.Cursor) (TypeID, bool) {
	left, lok := expr.Field(tree.RoleLeft)
	right, rok := expr.Field(tree.RoleRight)

	if !lok || !rok {
		return "", false
	}

	switch expr.Operator() {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return "boolean", true

	case "+":
		lt, _ := x.typeOf(left)
		if rt, _ := x.typeOf(right); lt == String || rt == String {
			return String, true
		}

	default:
	}

	lt, ok := x.typeOf(left)
	if !ok || !lt.IsPrimitive() {
		return lt, ok
	}

	rt, _ := x.typeOf(right)

	return promote(lt, rt), true
}

// promote applies binary numeric promotion.
func promote(a, b TypeID) TypeID {
	for _, t := range [...]TypeID{"double", "float", "long"} {
		if a == t || b == t {
			return t
		}
	}

	if a == "boolean" {
		return a
	}

	return "int"
}

// declType returns the declared type of a declaration, including array dimensions after the name.
func (x *Index) declType(decl tree.Cursor) (TypeID, bool) {
	switch decl.Kind() {
	case tree.EnumConstant:
		if owner, ok := EnclosingClass(decl); ok {
			id, ok := x.names[owner.ID()]

			return id, ok
		}

		return "", false

	case tree.Ident:
		// Inferred lambda parameter.
		return "", false

	case tree.MethodDecl:
		if typ, ok := decl.Field(tree.RoleType); ok {
			return x.resolveType(typ)
		}

		return "", false

	default:
	}

	typ, ok := decl.DeclaredType()
	if !ok {
		return "", false
	}

	if name, _ := eraseTypeText(typ.Text()); name == "var" {
		if v, ok := decl.Field(tree.RoleValue); ok {
			return x.typeOf(v)
		}

		return "", false
	}

	id, ok := x.resolveType(typ)
	if !ok && id == "" {
		return "", false
	}

	dims := decl.Dims()
	if decl.Kind() == tree.Parameter && decl.Variant() == tree.VarArgs {
		dims++
	}

	return id.ArrayOf(dims), ok
}

func (x *Index) callType(call tree.Cursor) (TypeID, bool) {
	if decl, ok := x.resolve(call); ok && decl.Kind() == tree.MethodDecl {
		return x.declType(decl)
	}

	if m, ok := x.builtinCall(call); ok {
		return m.result, m.result != ""
	}

	return "", false
}

// builtinCall finds a platform method for a call whose receiver is not declared in the tree.
func (x *Index) builtinCall(call tree.Cursor) (builtinMethod, bool) {
	name := call.Name()
	arity := argCount(call)

	var owner TypeID

	if obj, ok := call.Field(tree.RoleObject); ok {
		obj = obj.Unparen()

		id, ok := x.typeOf(obj)
		if !ok && obj.Kind() == tree.Ident || !ok && obj.Kind() == tree.FieldAccess {
			id, ok = x.resolveTypeName(compact(obj.Text()), call)
		}

		if !ok {
			return builtinMethod{}, false
		}

		owner = id
	} else {
		owner = Object
	}

	seen := make(map[TypeID]bool)
	queue := []TypeID{owner}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		for _, m := range builtins[t].methods {
			if m.name == name && len(m.params) == arity {
				return m, true
			}
		}

		for _, s := range x.supertypes(t) {
			if !seen[s] {
				seen[s] = true
				queue = append(queue, s)
			}
		}

		if t != Object && !seen[Object] {
			seen[Object] = true
			queue = append(queue, Object)
		}
	}

	return builtinMethod{}, false
}
