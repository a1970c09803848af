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

import (
	"go/token"
	"iter"
	"slices"
	"strings"
)

// Cursor is a read-only view of one node of a [Tree]. The zero value is invalid.
type Cursor struct {
	t  *Tree
	id NodeID
}

func (c Cursor) n() *node { return &c.t.nodes[c.id.idx] }

// Valid reports whether the cursor points to a node that is still part of its tree.
func (c Cursor) Valid() bool { return c.t != nil && c.t.Valid(c.id) }

// Tree returns the tree this cursor belongs to.
func (c Cursor) Tree() *Tree { return c.t }

// ID returns the identity of the node.
func (c Cursor) ID() NodeID { return c.id }

// Kind returns the kind tag of the node.
func (c Cursor) Kind() Kind {
	if !c.Valid() {
		return Invalid
	}

	return c.n().kind
}

// Role returns the role of the node in its parent.
func (c Cursor) Role() Role { return c.n().role }

// Variant returns the kind-specific variant, like the literal type of a [Literal].
func (c Cursor) Variant() uint8 { return c.n().variant }

// Origin returns the identity this node was cloned from, if any.
func (c Cursor) Origin() NodeID { return c.n().origin }

// Start returns the byte offset of the first character of the node.
func (c Cursor) Start() int { return c.n().start }

// End returns the byte offset immediately after the node.
func (c Cursor) End() int { return c.n().end }

// Text returns the source text of the node.
func (c Cursor) Text() string {
	n := c.n()

	return string(c.t.src[n.start:n.end])
}

// Position returns the source position of the node start.
func (c Cursor) Position() token.Position { return c.t.Position(c.n().start) }

// Parent returns the parent of the node. The result is invalid for the root.
func (c Cursor) Parent() Cursor {
	p := c.n().parent
	if p < 0 {
		return Cursor{}
	}

	return Cursor{c.t, c.t.id(p)}
}

// Children returns an iterator over the direct children in source order.
func (c Cursor) Children() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for _, idx := range c.n().children {
			if !yield(Cursor{c.t, c.t.id(idx)}) {
				return
			}
		}
	}
}

// NumChildren returns the number of direct children.
func (c Cursor) NumChildren() int { return len(c.n().children) }

// Child returns the i-th direct child.
func (c Cursor) Child(i int) Cursor {
	return Cursor{c.t, c.t.id(c.n().children[i])}
}

// Index returns the position of the node among its siblings, or -1 for the root.
func (c Cursor) Index() int {
	p := c.n().parent
	if p < 0 {
		return -1
	}

	return slices.Index(c.t.nodes[p].children, c.id.idx)
}

// PrevSibling returns the preceding sibling that is not a comment.
func (c Cursor) PrevSibling() (Cursor, bool) {
	p := c.Parent()
	if !p.Valid() {
		return Cursor{}, false
	}

	for i := c.Index() - 1; i >= 0; i-- {
		if s := p.Child(i); s.Kind() != Comment {
			return s, true
		}
	}

	return Cursor{}, false
}

// Field returns the first child with the given role.
func (c Cursor) Field(r Role) (Cursor, bool) {
	for _, idx := range c.n().children {
		if c.t.nodes[idx].role == r {
			return Cursor{c.t, c.t.id(idx)}, true
		}
	}

	return Cursor{}, false
}

// FirstChild returns the first direct child of one of the given kinds.
func (c Cursor) FirstChild(kinds ...Kind) (Cursor, bool) {
	for _, idx := range c.n().children {
		if slices.Contains(kinds, c.t.nodes[idx].kind) {
			return Cursor{c.t, c.t.id(idx)}, true
		}
	}

	return Cursor{}, false
}

// ChildrenOf returns an iterator over the direct children of one of the given kinds.
func (c Cursor) ChildrenOf(kinds ...Kind) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for child := range c.Children() {
			if slices.Contains(kinds, child.Kind()) && !yield(child) {
				return
			}
		}
	}
}

// Preorder returns an iterator over the subtree rooted at c in depth-first pre-order, including c.
// When kinds are given, only nodes of those kinds are yielded.
func (c Cursor) Preorder(kinds ...Kind) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		c.preorder(kinds, yield)
	}
}

func (c Cursor) preorder(kinds []Kind, yield func(Cursor) bool) bool {
	if (len(kinds) == 0 || slices.Contains(kinds, c.n().kind)) && !yield(c) {
		return false
	}

	for child := range c.Children() {
		if !child.preorder(kinds, yield) {
			return false
		}
	}

	return true
}

// Inspect calls f in pre-order for every node of the subtree. When f returns false,
// the children of that node are skipped.
func (c Cursor) Inspect(f func(Cursor) bool) {
	if !f(c) {
		return
	}

	for child := range c.Children() {
		child.Inspect(f)
	}
}

// Enclosing returns an iterator over c and its ancestors, innermost first.
// When kinds are given, only nodes of those kinds are yielded.
func (c Cursor) Enclosing(kinds ...Kind) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for a := c; a.Valid(); a = a.Parent() {
			if (len(kinds) == 0 || slices.Contains(kinds, a.n().kind)) && !yield(a) {
				return
			}
		}
	}
}

// Nearest returns the innermost proper ancestor of one of the given kinds.
func (c Cursor) Nearest(kinds ...Kind) (Cursor, bool) {
	for a := range c.Parent().Enclosing(kinds...) {
		return a, true
	}

	return Cursor{}, false
}

// Contains reports whether d is c or a descendant of c.
func (c Cursor) Contains(d Cursor) bool {
	for a := range d.Enclosing() {
		if a.id == c.id {
			return true
		}
	}

	return false
}

// Depth returns the number of ancestors of the node.
func (c Cursor) Depth() int {
	var depth int
	for p := c.n().parent; p >= 0; p = c.t.nodes[p].parent {
		depth++
	}

	return depth
}

// Name returns the declared or referenced name of the node, if it has one.
func (c Cursor) Name() string {
	switch c.Kind() {
	case Ident, TypeRef:
		if c.NumChildren() == 0 {
			return c.Text()
		}

		return c.textWithoutComments()

	case FieldAccess:
		if f, ok := c.Field(RoleName); ok {
			return f.Text()
		}

		return ""

	default:
	}

	if n, ok := c.Field(RoleName); ok {
		return n.Text()
	}

	return ""
}

// DeclaredType returns the type node of a field, variable or parameter declaration,
// or the result type of a method.
func (c Cursor) DeclaredType() (Cursor, bool) {
	if t, ok := c.Field(RoleType); ok {
		return t, true
	}

	switch c.Kind() {
	case VariableDeclarator:
		if p := c.Parent(); p.Kind() == FieldDecl || p.Kind() == LocalVarDecl {
			return p.Field(RoleType)
		}

	case Parameter:
		return c.FirstChild(TypeRef)

	default:
	}

	return Cursor{}, false
}

// Dims returns the number of array dimensions declared after the name of a declarator or parameter.
func (c Cursor) Dims() int {
	if k := c.Kind(); k != VariableDeclarator && k != Parameter {
		return 0
	}

	name, ok := c.Field(RoleName)
	if !ok {
		return 0
	}

	end := c.End()
	if v, ok := c.Field(RoleValue); ok {
		end = v.Start()
	}

	return strings.Count(string(c.t.src[name.End():end]), "[")
}

// ModifierList returns the modifiers child of a declaration. Declarators delegate to their declaration.
func (c Cursor) ModifierList() (Cursor, bool) {
	if m, ok := c.FirstChild(Modifiers); ok {
		return m, true
	}

	if c.Kind() == VariableDeclarator {
		if p := c.Parent(); p.Kind() == FieldDecl || p.Kind() == LocalVarDecl {
			return p.FirstChild(Modifiers)
		}
	}

	return Cursor{}, false
}

// Modifiers returns the explicitly declared modifiers.
func (c Cursor) Modifiers() ModSet {
	var mods ModSet
	if c.Kind() == Initializer && c.Variant() == StaticInit {
		mods |= ModStatic
	}

	m, ok := c.ModifierList()
	if !ok {
		return mods
	}

	text := []byte(m.Text())
	for child := range m.Children() {
		for i := child.Start() - m.Start(); i < child.End()-m.Start(); i++ {
			text[i] = ' '
		}
	}

	for word := range strings.FieldsSeq(string(text)) {
		mods |= ParseModifier(word)
	}

	return mods
}

// Annotations returns an iterator over the annotations in the modifier list.
func (c Cursor) Annotations() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		m, ok := c.ModifierList()
		if !ok {
			return
		}

		for a := range m.ChildrenOf(Annotation) {
			if !yield(a) {
				return
			}
		}
	}
}

// Unparen strips enclosing parentheses.
func (c Cursor) Unparen() Cursor {
	for c.Kind() == Paren {
		inner, ok := c.FirstChild(nonComment...)
		if !ok {
			break
		}

		c = inner
	}

	return c
}

var nonComment = func() []Kind {
	kinds := make([]Kind, 0, NumKinds)
	for k := Invalid + 1; k < numKinds; k++ {
		if k != Comment {
			kinds = append(kinds, k)
		}
	}

	return kinds
}()

// Operand returns the first child that is not a comment.
func (c Cursor) Operand() (Cursor, bool) {
	return c.FirstChild(nonComment...)
}

// Members returns an iterator over the member declarations of a type declaration or class body.
func (c Cursor) Members() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		body := c
		if c.Kind() != ClassBody {
			b, ok := c.Field(RoleBody)
			if !ok {
				return
			}

			body = b
		}

		for m := range body.Children() {
			switch m.Kind() {
			case Comment, EnumConstant:
				continue
			default:
			}

			if !yield(m) {
				return
			}
		}
	}
}

// IsStatement reports whether the node is a statement.
func (c Cursor) IsStatement() bool {
	switch c.Kind() {
	case Block, LocalVarDecl, Synchronized, If, While, DoWhile, For, ForEach, Switch, Try,
		Return, Throw, Assert, ExprStmt, Statement:
		return true
	case ClassDecl, InterfaceDecl, EnumDecl, RecordDecl:
		return c.Parent().Kind() == Block
	default:
		return false
	}
}

// Operator returns the operator token of a binary, unary or assignment expression.
func (c Cursor) Operator() string {
	var begin, end int

	switch c.Kind() {
	case Binary, Assign:
		left, lok := c.Field(RoleLeft)
		right, rok := c.Field(RoleRight)

		if !lok || !rok {
			return ""
		}

		begin, end = left.End(), right.Start()

	case Unary:
		op, ok := c.Operand()
		if !ok {
			return ""
		}

		if op.Start() > c.Start() {
			begin, end = c.Start(), op.Start()
		} else {
			begin, end = op.End(), c.End()
		}

	default:
		return ""
	}

	text := []byte(c.t.src[begin:end])
	for child := range c.ChildrenOf(Comment) {
		if child.Start() >= begin && child.End() <= end {
			for i := child.Start() - begin; i < child.End()-begin; i++ {
				text[i] = ' '
			}
		}
	}

	return strings.TrimSpace(string(text))
}

// textWithoutComments returns the source text with comment children removed and white space trimmed.
func (c Cursor) textWithoutComments() string {
	var b strings.Builder

	pos := c.Start()
	for child := range c.ChildrenOf(Comment) {
		b.Write(c.t.src[pos:child.Start()])
		pos = child.End()
	}

	b.Write(c.t.src[pos:c.End()])

	return strings.TrimSpace(b.String())
}
