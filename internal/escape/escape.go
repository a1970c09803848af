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

// Package escape decides whether a local binding is stable enough to serve as a lock.
//
// A binding is a block-local variable, a for-each variable, or a method, constructor, lambda or
// catch parameter. Distinct invocations of the declaring member see distinct instances of a
// locally bound object, so synchronizing on it excludes nothing. A binding referenced from a
// lambda or an inner class declared within the same member escapes: the closure may run after
// the declaring invocation completed.
package escape

import (
	"iter"

	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

//go:generate go tool stringer -type Class -linecomment

// Class is the classification of an expression used as a lock.
type Class uint8

const (
	// Unknown means the expression names something that could not be resolved.
	Unknown Class = iota // unknown

	// NotLocal means the expression is not a reference to a local binding.
	NotLocal // not local

	// Stable means the binding is initialized or assigned from an instance that existed before.
	Stable // stable

	// Escaping means the binding is referenced from a closure or inner class.
	Escaping // escaping

	// Parameter means the binding is a parameter of a method, constructor or lambda.
	Parameter // parameter

	// LocallyBound means the binding only ever refers to instances created for this invocation.
	LocallyBound // locally bound
)

// Result is the outcome of [Analyze].
type Result struct {
	Class Class

	// Decl is the binding, when the expression resolved to one.
	Decl tree.Cursor

	// Capture is the first reference from a nested member, for escaping bindings.
	Capture tree.Cursor
}

// boundaries are the nodes delimiting a lexical invocation.
var boundaries = []tree.Kind{tree.MethodDecl, tree.ConstructorDecl, tree.Lambda, tree.Initializer}

// Analyze classifies the expression expr, typically the lock of a synchronized statement.
func Analyze(r symbol.Resolver, expr tree.Cursor) Result {
	expr = expr.Unparen()
	if expr.Kind() != tree.Ident {
		return Result{Class: NotLocal}
	}

	decl, ok := r.Resolve(expr)
	if !ok {
		return Result{Class: Unknown}
	}

	if !IsBinding(decl) {
		return Result{Class: NotLocal, Decl: decl}
	}

	a := analysis{r: r, seen: make(map[tree.NodeID]bool)}

	return a.classify(decl)
}

// Classify classifies a local binding.
func Classify(r symbol.Resolver, decl tree.Cursor) Result {
	if !IsBinding(decl) {
		return Result{Class: NotLocal, Decl: decl}
	}

	a := analysis{r: r, seen: make(map[tree.NodeID]bool)}

	return a.classify(decl)
}

// IsBinding reports whether decl declares a local variable or parameter.
func IsBinding(decl tree.Cursor) bool {
	switch decl.Kind() {
	case tree.VariableDeclarator:
		return decl.Parent().Kind() != tree.FieldDecl

	case tree.Parameter:
		// Record components are fields.
		return decl.Parent().Parent().Kind() != tree.RecordDecl

	case tree.ForEach:
		return true

	case tree.Ident:
		// Lambda parameters without declared types resolve to their own name.
		_, ok := decl.Nearest(tree.Lambda)

		return ok

	default:
		return false
	}
}

// DeclaringScope returns the innermost method, constructor, lambda or initializer declaring decl.
func DeclaringScope(decl tree.Cursor) (tree.Cursor, bool) {
	if decl.Kind() == tree.Ident {
		return decl.Nearest(tree.Lambda)
	}

	return decl.Nearest(boundaries...)
}

type analysis struct {
	r    symbol.Resolver
	seen map[tree.NodeID]bool // Bindings on the current stability path
}

func (a *analysis) classify(decl tree.Cursor) Result {
	scope, ok := DeclaringScope(decl)
	if !ok {
		return Result{Class: Unknown, Decl: decl}
	}

	if a.stable(decl, scope) {
		return Result{Class: Stable, Decl: decl}
	}

	if ref, ok := a.capture(decl, scope); ok {
		return Result{Class: Escaping, Decl: decl, Capture: ref}
	}

	if isParameter(decl) {
		return Result{Class: Parameter, Decl: decl}
	}

	return Result{Class: LocallyBound, Decl: decl}
}

// references iterates over the identifiers in scope bound to decl.
func (a *analysis) references(decl, scope tree.Cursor) iter.Seq[tree.Cursor] {
	name := bindingName(decl)

	return func(yield func(tree.Cursor) bool) {
		for id := range scope.Preorder(tree.Ident) {
			if id.ID() == decl.ID() || id.Text() != name {
				continue
			}

			if d, ok := a.r.Resolve(id); !ok || d.ID() != decl.ID() {
				continue
			}

			if !yield(id) {
				return
			}
		}
	}
}

// capture finds a reference whose own member boundary is nested strictly inside scope.
func (a *analysis) capture(decl, scope tree.Cursor) (tree.Cursor, bool) {
	for ref := range a.references(decl, scope) {
		owner, ok := memberBoundary(ref)
		if ok && owner.ID() != scope.ID() && scope.Contains(owner) {
			return ref, true
		}
	}

	return tree.Cursor{}, false
}

// memberBoundary returns the innermost member or closure containing ref. Field initializers of
// anonymous and local classes count as members of that class.
func memberBoundary(ref tree.Cursor) (tree.Cursor, bool) {
	for a := range ref.Parent().Enclosing() {
		switch a.Kind() {
		case tree.MethodDecl, tree.ConstructorDecl, tree.Lambda, tree.Initializer, tree.ClassBody:
			return a, true

		default:
		}
	}

	return tree.Cursor{}, false
}

// stable reports whether decl is initialized or assigned anywhere from an existing instance.
func (a *analysis) stable(decl, scope tree.Cursor) bool {
	if a.seen[decl.ID()] {
		return false
	}

	a.seen[decl.ID()] = true
	defer delete(a.seen, decl.ID())

	switch decl.Kind() {
	case tree.ForEach:
		// Elements of an iterated collection or array exist before the loop.
		return true

	case tree.VariableDeclarator:
		if v, ok := decl.Field(tree.RoleValue); ok && a.existing(v) {
			return true
		}

	default:
	}

	for ref := range a.references(decl, scope) {
		asg := ref.Parent()
		if asg.Kind() != tree.Assign || ref.Role() != tree.RoleLeft {
			continue
		}

		if v, ok := asg.Field(tree.RoleRight); ok && a.existing(v) {
			return true
		}
	}

	return false
}

// existing reports whether expr evaluates to an instance that is not created by this invocation.
func (a *analysis) existing(expr tree.Cursor) bool {
	expr = expr.Unparen()

	switch expr.Kind() {
	case tree.This, tree.ClassLiteral, tree.Literal, tree.FieldAccess:
		return true

	case tree.Ident:
		decl, ok := a.r.Resolve(expr)
		if !ok {
			return false
		}

		if !IsBinding(decl) {
			switch decl.Kind() {
			case tree.VariableDeclarator, tree.EnumConstant, tree.Parameter:
				return true
			default:
				return false
			}
		}

		if isParameter(decl) {
			return true
		}

		scope, ok := DeclaringScope(decl)

		return ok && a.stable(decl, scope)

	case tree.Call:
		return a.r.Contract(expr) == symbol.ReturnsExisting

	case tree.Cast:
		for c := range expr.Children() {
			if c.Kind() != tree.TypeRef && c.Kind() != tree.Comment {
				return a.existing(c)
			}
		}

		return false

	case tree.Conditional:
		then, tok := expr.Field(tree.RoleThen)
		els, eok := expr.Field(tree.RoleElse)

		return tok && eok && a.existing(then) && a.existing(els)

	case tree.Assign:
		if v, ok := expr.Field(tree.RoleRight); ok {
			return a.existing(v)
		}

		return false

	default:
		return false
	}
}

func isParameter(decl tree.Cursor) bool {
	switch decl.Kind() {
	case tree.Parameter:
		return decl.Parent().Kind() != tree.Catch

	case tree.Ident:
		return true

	default:
		return false
	}
}

func bindingName(decl tree.Cursor) string {
	if decl.Kind() == tree.Ident {
		return decl.Text()
	}

	return decl.Name()
}
