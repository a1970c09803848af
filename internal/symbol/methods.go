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
	"slices"
	"strings"

	"fillmore-labs.com/syncguard/internal/tree"
)

// MethodOf implements [Resolver].
func (x *Index) MethodOf(decl tree.Cursor) (Method, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(decl) {
		return Method{}, false
	}

	x.sync()

	return x.methodOf(decl)
}

func (x *Index) methodOf(decl tree.Cursor) (Method, bool) {
	if decl.Kind() != tree.MethodDecl && decl.Kind() != tree.ConstructorDecl {
		return Method{}, false
	}

	class, ok := EnclosingClass(decl)
	if !ok {
		return Method{}, false
	}

	m := Method{
		Owner:  x.names[class.ID()],
		Name:   decl.Name(),
		Result: Void,
		Mods:   EffectiveModifiers(decl),
		Decl:   decl,
	}

	if decl.Kind() == tree.ConstructorDecl {
		m.Name = "<init>"
	} else if typ, ok := decl.Field(tree.RoleType); ok {
		m.Result, _ = x.resolveType(typ)
		m.Result = m.Result.ArrayOf(decl.Dims())
	}

	for _, p := range params(decl) {
		id, _ := x.declType(p)
		m.Params = append(m.Params, id)

		typ, ok := p.DeclaredType()
		m.Generic = append(m.Generic, ok && x.isTypeVariable(typ))
	}

	return m, true
}

// overrides reports whether a method with signature sub overrides sup, given equal names.
func overrides(sub, sup Method) bool {
	if sub.Name != sup.Name || len(sub.Params) != len(sup.Params) {
		return false
	}

	if sup.Mods.Any(tree.ModPrivate | tree.ModStatic) {
		return false
	}

	for i, p := range sup.Params {
		if p != sub.Params[i] && !sup.Generic[i] {
			return false
		}
	}

	return true
}

// SuperMethods implements [Resolver].
func (x *Index) SuperMethods(decl tree.Cursor) []Method {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(decl) {
		return nil
	}

	x.sync()

	m, ok := x.methodOf(decl)
	if !ok || m.Name == "<init>" || m.Mods.Any(tree.ModPrivate|tree.ModStatic) {
		return nil
	}

	var supers []Method

	seen := map[TypeID]bool{m.Owner: true}
	queue := slices.Clone(x.supertypes(m.Owner))

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		if seen[t] {
			continue
		}

		seen[t] = true

		for _, sup := range x.declaredMethods(t) {
			if overrides(m, sup) {
				supers = append(supers, sup)
			}
		}

		queue = append(queue, x.supertypes(t)...)
	}

	return supers
}

// declaredMethods returns the methods declared directly by a type.
func (x *Index) declaredMethods(id TypeID) []Method {
	if decl, ok := x.typeDecl(id); ok {
		var methods []Method

		if body, ok := decl.Field(tree.RoleBody); ok {
			for md := range body.ChildrenOf(tree.MethodDecl) {
				if m, ok := x.methodOf(md); ok {
					methods = append(methods, m)
				}
			}
		}

		return methods
	}

	b := builtins[id]
	if id != Object && !b.iface && len(b.methods) == 0 {
		return nil
	}

	methods := make([]Method, 0, len(b.methods))
	for _, bm := range b.methods {
		methods = append(methods, builtinMethodOf(id, bm))
	}

	return methods
}

// OverridingDeclarations implements [Resolver].
func (x *Index) OverridingDeclarations(decl tree.Cursor) []tree.Cursor {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(decl) {
		return nil
	}

	x.sync()

	m, ok := x.methodOf(decl)
	if !ok || m.Name == "<init>" || m.Mods.Any(tree.ModPrivate|tree.ModStatic) {
		return nil
	}

	var result []tree.Cursor

	for md := range x.t.Root().Preorder(tree.MethodDecl) {
		if md.ID() == decl.ID() || md.Name() != m.Name {
			continue
		}

		sub, ok := x.methodOf(md)
		if !ok || sub.Owner == m.Owner || !x.isSubtype(sub.Owner, m.Owner) {
			continue
		}

		if overrides(sub, m) {
			result = append(result, md)
		}
	}

	return result
}

// Contract implements [Resolver].
func (x *Index) Contract(call tree.Cursor) Contract {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(call) || call.Kind() != tree.Call {
		return ContractUnknown
	}

	x.sync()

	if decl, ok := x.resolve(call); ok && decl.Kind() == tree.MethodDecl {
		return x.declaredContract(decl)
	}

	if m, ok := x.builtinCall(call); ok {
		return m.contract
	}

	return ContractUnknown
}

// declaredContract reads a @Contract annotation, or infers the contract of trivial accessors.
func (x *Index) declaredContract(decl tree.Cursor) Contract {
	for a := range decl.Annotations() {
		if name := a.Name(); name != "Contract" && !strings.HasSuffix(name, ".Contract") {
			continue
		}

		text := a.Text()

		switch {
		case strings.Contains(text, "-> new"):
			return ReturnsNew
		case strings.Contains(text, "-> this"), strings.Contains(text, "-> param"):
			return ReturnsExisting
		default:
		}
	}

	body, ok := decl.Field(tree.RoleBody)
	if !ok {
		return ContractUnknown
	}

	var stmts []tree.Cursor
	for s := range body.Children() {
		if s.Kind() != tree.Comment {
			stmts = append(stmts, s)
		}
	}

	if len(stmts) != 1 || stmts[0].Kind() != tree.Return {
		return ContractUnknown
	}

	value, ok := stmts[0].Operand()
	if !ok {
		return ContractUnknown
	}

	switch value = value.Unparen(); value.Kind() {
	case tree.This:
		return ReturnsExisting

	case tree.New:
		return ReturnsNew

	case tree.Ident, tree.FieldAccess:
		if d, ok := x.resolve(value); ok && d.Kind() == tree.VariableDeclarator && d.Parent().Kind() == tree.FieldDecl {
			return ReturnsExisting
		}

	default:
	}

	return ContractUnknown
}
