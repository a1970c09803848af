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
	"strconv"
	"strings"
	"sync"

	"fillmore-labs.com/syncguard/internal/tree"
)

// Index is a lexical [Resolver] over one tree.
//
// The index is built on the first query and discarded whenever the tree version changes.
// Results are memoized per node. An Index is safe for concurrent use.
type Index struct {
	t *tree.Tree

	mu      sync.Mutex
	version uint64
	built   bool

	pkg       string
	imports   map[string]TypeID
	wildcards []string
	types     map[TypeID]tree.NodeID
	names     map[tree.NodeID]TypeID
	resolved  map[tree.NodeID]binding
	typed     map[tree.NodeID]typing
	resolving map[tree.NodeID]bool
}

type binding struct {
	decl tree.NodeID
	ok   bool
}

type typing struct {
	id TypeID
	ok bool
}

var _ Resolver = (*Index)(nil)

// NewIndex creates a resolver for t. Indexing is deferred to the first query.
func NewIndex(t *tree.Tree) *Index {
	return &Index{t: t}
}

// sync rebuilds the index when the tree has changed. The caller must hold x.mu.
func (x *Index) sync() {
	if x.built && x.version == x.t.Version() {
		return
	}

	x.version, x.built = x.t.Version(), true
	x.pkg, x.wildcards = "", nil
	x.imports = make(map[string]TypeID)
	x.types = make(map[TypeID]tree.NodeID)
	x.names = make(map[tree.NodeID]TypeID)
	x.resolved = make(map[tree.NodeID]binding)
	x.typed = make(map[tree.NodeID]typing)
	x.resolving = make(map[tree.NodeID]bool)

	root := x.t.Root()

	if p, ok := root.FirstChild(tree.PackageDecl); ok {
		if n, ok := p.FirstChild(tree.Ident, tree.TypeRef, tree.FieldAccess, tree.Expression); ok {
			x.pkg = compact(n.Text())
		}
	}

	for imp := range root.ChildrenOf(tree.ImportDecl) {
		x.addImport(imp)
	}

	for c := range root.ChildrenOf(tree.ClassDecl, tree.InterfaceDecl, tree.EnumDecl, tree.RecordDecl, tree.AnnotationDecl) {
		name := c.Name()
		if x.pkg != "" {
			name = x.pkg + "." + name
		}

		x.addType(c, TypeID(name))
	}
}

func (x *Index) addImport(imp tree.Cursor) {
	text := compact(imp.Text())
	text = strings.TrimSuffix(strings.TrimPrefix(text, "import"), ";")

	if strings.HasPrefix(text, "static") {
		return
	}

	if pkg, ok := strings.CutSuffix(text, ".*"); ok {
		x.wildcards = append(x.wildcards, pkg)

		return
	}

	id := TypeID(text)
	x.imports[id.SimpleName()] = id
}

// addType registers a type declaration and, recursively, its member, local and anonymous classes.
func (x *Index) addType(c tree.Cursor, id TypeID) {
	x.types[id] = c.ID()
	x.names[c.ID()] = id

	local := make(map[string]int)

	var visit func(n tree.Cursor)
	visit = func(n tree.Cursor) {
		for child := range n.Children() {
			switch {
			case child.Kind().IsType() && n.Kind() == tree.ClassBody && n.Parent().ID() == c.ID():
				x.addType(child, id+"$"+TypeID(child.Name()))

				continue

			case IsTypeLike(child):
				name := ""
				if !isAnonymous(child) {
					name = child.Name()
				}

				local[name]++
				x.addType(child, id+"$"+TypeID(strconv.Itoa(local[name])+name))

				if isAnonymous(child) {
					// Constructor arguments belong to the enclosing class.
					for arg := range child.Children() {
						if arg.Kind() != tree.ClassBody {
							visit(arg)
						}
					}
				}

				continue

			default:
			}

			visit(child)
		}
	}

	if isAnonymous(c) {
		if body, ok := c.Field(tree.RoleBody); ok {
			visit(body)
		}

		return
	}

	visit(c)
}

// compact removes white space and comments from a qualified name.
func compact(s string) string {
	for {
		i := strings.Index(s, "/*")
		if i < 0 {
			break
		}

		j := strings.Index(s[i:], "*/")
		if j < 0 {
			break
		}

		s = s[:i] + s[i+j+2:]
	}

	return strings.Join(strings.Fields(s), "")
}

// cursor returns the cursor for a memoized node identity.
func (x *Index) cursor(id tree.NodeID) tree.Cursor {
	c, _ := x.t.At(id)

	return c
}

func (x *Index) owns(c tree.Cursor) bool {
	return c.Valid() && c.Tree() == x.t
}

// Resolve implements [Resolver].
func (x *Index) Resolve(ref tree.Cursor) (tree.Cursor, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(ref) {
		return tree.Cursor{}, false
	}

	x.sync()

	return x.resolve(ref)
}

func (x *Index) resolve(ref tree.Cursor) (tree.Cursor, bool) {
	if b, ok := x.resolved[ref.ID()]; ok {
		return x.cursor(b.decl), b.ok
	}

	// Guard against cycles through recursive type queries.
	x.resolved[ref.ID()] = binding{}

	decl, ok := x.resolveUncached(ref)
	x.resolved[ref.ID()] = binding{decl.ID(), ok}

	return decl, ok
}

func (x *Index) resolveUncached(ref tree.Cursor) (tree.Cursor, bool) {
	switch ref.Kind() {
	case tree.Ident:
		parent := ref.Parent()
		if ref.Role() == tree.RoleName {
			switch parent.Kind() {
			case tree.Call:
				return x.resolveCall(parent)

			case tree.FieldAccess:
				return x.resolveFieldAccess(parent)

			case tree.VariableDeclarator, tree.Parameter, tree.ForEach, tree.MethodDecl, tree.ConstructorDecl,
				tree.ClassDecl, tree.InterfaceDecl, tree.EnumDecl, tree.RecordDecl, tree.AnnotationDecl, tree.EnumConstant:
				return parent, true

			default:
			}
		}

		if isLambdaParam(ref) {
			return ref, true
		}

		if d, ok := x.lookupVar(ref.Text(), ref); ok {
			return d, true
		}

		if id, ok := x.resolveTypeName(ref.Text(), ref); ok {
			return x.typeDecl(id)
		}

		return tree.Cursor{}, false

	case tree.FieldAccess:
		return x.resolveFieldAccess(ref)

	case tree.Call:
		return x.resolveCall(ref)

	case tree.TypeRef:
		if id, ok := x.resolveType(ref); ok {
			return x.typeDecl(id)
		}

		return tree.Cursor{}, false

	case tree.New:
		return x.resolveNew(ref)

	case tree.VariableDeclarator, tree.Parameter, tree.ForEach, tree.MethodDecl, tree.ConstructorDecl, tree.EnumConstant:
		return ref, true

	default:
		if ref.Kind().IsType() {
			return ref, true
		}

		return tree.Cursor{}, false
	}
}

func isLambdaParam(ident tree.Cursor) bool {
	p := ident.Parent()
	if p.Kind() == tree.Lambda {
		return ident.Role() == tree.RoleParams
	}

	return p.Kind() == tree.Other && p.Role() == tree.RoleParams && p.Parent().Kind() == tree.Lambda
}

func (x *Index) typeDecl(id TypeID) (tree.Cursor, bool) {
	nid, ok := x.types[id]
	if !ok {
		return tree.Cursor{}, false
	}

	return x.cursor(nid), true
}

// TypeDecl implements [Resolver].
func (x *Index) TypeDecl(id TypeID) (tree.Cursor, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.sync()

	return x.typeDecl(id)
}

// BinaryName implements [Resolver].
func (x *Index) BinaryName(decl tree.Cursor) (TypeID, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.owns(decl) {
		return "", false
	}

	x.sync()

	id, ok := x.names[decl.ID()]

	return id, ok
}

// lookupVar finds the variable, parameter, field or enum constant named name visible at from.
func (x *Index) lookupVar(name string, from tree.Cursor) (tree.Cursor, bool) {
	child := from
	for a := from.Parent(); a.Valid(); child, a = a, a.Parent() {
		switch a.Kind() {
		case tree.Block:
			for i := child.Index(); i >= 0; i-- {
				s := a.Child(i)
				if s.Kind() != tree.LocalVarDecl {
					continue
				}

				if d, ok := declaratorNamed(s, name, from); ok {
					return d, true
				}
			}

		case tree.LocalVarDecl:
			// Earlier declarators of the same statement.
			if d, ok := declaratorNamed(a, name, from); ok && d.End() <= from.Start() {
				return d, true
			}

		case tree.For:
			if init, ok := a.Field(tree.RoleInit); ok && init.Kind() == tree.LocalVarDecl && child.ID() != init.ID() {
				if d, ok := declaratorNamed(init, name, from); ok {
					return d, true
				}
			}

		case tree.ForEach:
			if child.Role() == tree.RoleBody && a.Name() == name {
				return a, true
			}

		case tree.Catch:
			for p := range a.ChildrenOf(tree.Parameter) {
				if p.Name() == name {
					return p, true
				}
			}

		case tree.Try:
			for d := range a.Preorder(tree.VariableDeclarator) {
				if d.End() > from.Start() {
					break
				}

				if d.Name() == name && d.Parent().Parent().ID() == a.ID() {
					return d, true
				}
			}

		case tree.Lambda:
			if d, ok := lambdaParam(a, name); ok {
				return d, true
			}

		case tree.MethodDecl, tree.ConstructorDecl:
			if params, ok := a.Field(tree.RoleParams); ok {
				for p := range params.ChildrenOf(tree.Parameter) {
					if p.Name() == name {
						return p, true
					}
				}
			}

		default:
			if IsTypeLike(a) && (!isAnonymous(a) || child.Kind() == tree.ClassBody) {
				if d, ok := x.fieldIn(a, name, nil); ok {
					return d, true
				}
			}
		}
	}

	return tree.Cursor{}, false
}

// declaratorNamed returns the declarator of decl named name, ignoring the declarator containing from.
func declaratorNamed(decl tree.Cursor, name string, from tree.Cursor) (tree.Cursor, bool) {
	for d := range decl.ChildrenOf(tree.VariableDeclarator) {
		if d.Name() == name && !d.Contains(from) {
			return d, true
		}
	}

	return tree.Cursor{}, false
}

func lambdaParam(lambda tree.Cursor, name string) (tree.Cursor, bool) {
	params, ok := lambda.Field(tree.RoleParams)
	if !ok {
		return tree.Cursor{}, false
	}

	switch params.Kind() {
	case tree.Ident:
		if params.Text() == name {
			return params, true
		}

	case tree.Parameters:
		for p := range params.ChildrenOf(tree.Parameter) {
			if p.Name() == name {
				return p, true
			}
		}

	default:
		for p := range params.ChildrenOf(tree.Ident) {
			if p.Text() == name {
				return p, true
			}
		}
	}

	return tree.Cursor{}, false
}

// fieldIn finds a field, record component or enum constant named name in a class or its supertypes.
func (x *Index) fieldIn(class tree.Cursor, name string, seen map[tree.NodeID]bool) (tree.Cursor, bool) {
	if seen == nil {
		seen = make(map[tree.NodeID]bool)
	}

	if seen[class.ID()] {
		return tree.Cursor{}, false
	}

	seen[class.ID()] = true

	if body, ok := class.Field(tree.RoleBody); ok {
		for m := range body.Children() {
			switch m.Kind() {
			case tree.FieldDecl:
				if d, ok := declaratorNamed(m, name, tree.Cursor{}); ok {
					return d, true
				}

			case tree.EnumConstant:
				if m.Name() == name {
					return m, true
				}

			default:
			}
		}
	}

	if class.Kind() == tree.RecordDecl {
		if params, ok := class.Field(tree.RoleParams); ok {
			for p := range params.ChildrenOf(tree.Parameter) {
				if p.Name() == name {
					return p, true
				}
			}
		}
	}

	id, ok := x.names[class.ID()]
	if !ok {
		return tree.Cursor{}, false
	}

	for _, s := range x.supertypes(id) {
		if decl, ok := x.typeDecl(s); ok {
			if d, ok := x.fieldIn(decl, name, seen); ok {
				return d, true
			}
		}
	}

	return tree.Cursor{}, false
}

func (x *Index) resolveFieldAccess(fa tree.Cursor) (tree.Cursor, bool) {
	obj, ok := fa.Field(tree.RoleObject)
	if !ok {
		return tree.Cursor{}, false
	}

	name := fa.Name()

	class, ok := x.receiverClass(obj.Unparen(), fa)
	if !ok {
		return tree.Cursor{}, false
	}

	return x.fieldIn(class, name, nil)
}

// receiverClass returns the in-tree class a qualifier expression refers to.
func (x *Index) receiverClass(obj, at tree.Cursor) (tree.Cursor, bool) {
	switch obj.Kind() {
	case tree.This:
		if q, ok := obj.FirstChild(tree.Ident, tree.TypeRef); ok {
			if id, ok := x.resolveTypeName(q.Text(), at); ok {
				return x.typeDecl(id)
			}
		}

		return EnclosingClass(at)

	case tree.Super:
		class, ok := EnclosingClass(at)
		if !ok {
			return tree.Cursor{}, false
		}

		for _, s := range x.supertypes(x.names[class.ID()]) {
			if decl, ok := x.typeDecl(s); ok && !x.isInterface(s) {
				return decl, true
			}
		}

		return tree.Cursor{}, false

	default:
	}

	if id, ok := x.typeOf(obj); ok {
		return x.typeDecl(id)
	}

	if obj.Kind() == tree.Ident {
		if id, ok := x.resolveTypeName(obj.Text(), at); ok {
			return x.typeDecl(id)
		}
	}

	return tree.Cursor{}, false
}

func (x *Index) resolveNew(n tree.Cursor) (tree.Cursor, bool) {
	typ, ok := n.Field(tree.RoleType)
	if !ok {
		return tree.Cursor{}, false
	}

	id, ok := x.resolveType(typ)
	if !ok {
		return tree.Cursor{}, false
	}

	class, ok := x.typeDecl(id)
	if !ok {
		return tree.Cursor{}, false
	}

	arity := argCount(n)
	if body, ok := class.Field(tree.RoleBody); ok {
		for c := range body.ChildrenOf(tree.ConstructorDecl) {
			if accepts(c, arity) {
				return c, true
			}
		}
	}

	return class, true
}

func argCount(call tree.Cursor) int {
	args, ok := call.Field(tree.RoleArgs)
	if !ok {
		return 0
	}

	var n int
	for a := range args.Children() {
		if a.Kind() != tree.Comment {
			n++
		}
	}

	return n
}

func params(decl tree.Cursor) []tree.Cursor {
	ps, ok := decl.Field(tree.RoleParams)
	if !ok {
		return nil
	}

	return slices.Collect(ps.ChildrenOf(tree.Parameter))
}

func accepts(decl tree.Cursor, arity int) bool {
	ps := params(decl)
	if n := len(ps); n > 0 && ps[n-1].Variant() == tree.VarArgs {
		return arity >= n-1
	}

	return len(ps) == arity
}

func (x *Index) resolveCall(call tree.Cursor) (tree.Cursor, bool) {
	nameNode, ok := call.Field(tree.RoleName)
	if !ok {
		return tree.Cursor{}, false
	}

	name, arity := nameNode.Text(), argCount(call)

	if obj, ok := call.Field(tree.RoleObject); ok {
		class, ok := x.receiverClass(obj.Unparen(), call)
		if !ok {
			return tree.Cursor{}, false
		}

		return x.methodIn(class, name, arity, nil)
	}

	for class := range call.Enclosing() {
		if !IsTypeLike(class) || class.ID() == call.ID() {
			continue
		}

		if m, ok := x.methodIn(class, name, arity, nil); ok {
			return m, true
		}
	}

	return tree.Cursor{}, false
}

// methodIn finds a method in a class or its supertypes.
func (x *Index) methodIn(class tree.Cursor, name string, arity int, seen map[tree.NodeID]bool) (tree.Cursor, bool) {
	if seen == nil {
		seen = make(map[tree.NodeID]bool)
	}

	if seen[class.ID()] {
		return tree.Cursor{}, false
	}

	seen[class.ID()] = true

	if body, ok := class.Field(tree.RoleBody); ok {
		for m := range body.ChildrenOf(tree.MethodDecl) {
			if m.Name() == name && accepts(m, arity) {
				return m, true
			}
		}
	}

	for _, s := range x.supertypes(x.names[class.ID()]) {
		if decl, ok := x.typeDecl(s); ok {
			if m, ok := x.methodIn(decl, name, arity, seen); ok {
				return m, true
			}
		}
	}

	return tree.Cursor{}, false
}
