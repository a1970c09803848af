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

package serialhash

import (
	"slices"
	"strings"

	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Modifier masks applied to each part of the shape.
const (
	classMask  = tree.ModPublic | tree.ModFinal | tree.ModInterface | tree.ModAbstract
	fieldMask  = tree.ModPublic | tree.ModPrivate | tree.ModProtected | tree.ModStatic | tree.ModFinal | tree.ModVolatile | tree.ModTransient
	methodMask = tree.ModPublic | tree.ModPrivate | tree.ModProtected | tree.ModStatic | tree.ModFinal | tree.ModSynchronized | tree.ModNative | tree.ModAbstract

	staticMod = int32(tree.ModStatic)
)

// Compute returns the default serialization identifier of the class declared by decl.
func Compute(r symbol.Resolver, decl tree.Cursor) (int64, error) {
	s, err := Collect(r, decl)
	if err != nil {
		return 0, err
	}

	return s.Hash()
}

// Collect derives the [Shape] of the class declared by decl, including the members the
// compiler synthesizes.
func Collect(r symbol.Resolver, decl tree.Cursor) (Shape, error) {
	if !symbol.IsTypeLike(decl) {
		return Shape{}, ErrNotAType
	}

	name, ok := r.BinaryName(decl)
	if !ok {
		return Shape{}, ErrNotAType
	}

	c := collector{r: r, decl: decl, name: name}
	c.collect()

	return c.shape, nil
}

// collector accumulates the shape of one declaration; it is discarded after the call.
type collector struct {
	r     symbol.Resolver
	decl  tree.Cursor
	name  symbol.TypeID
	shape Shape

	members  []tree.Cursor
	captured []tree.Cursor // Local bindings of enclosing members referenced from the class body
}

func (c *collector) collect() {
	c.shape.Name = string(c.name)
	c.members = slices.Collect(c.decl.Members())
	c.captured = c.capturedBindings()

	c.modifiers()
	c.interfaces()
	c.fields()
	c.shape.StaticInit = c.hasStaticInit()
	c.constructors()
	c.methods()
}

func (c *collector) modifiers() {
	if symbol.IsAnonymous(c.decl) {
		return
	}

	mods := symbol.EffectiveModifiers(c.decl) & classMask
	if mods.Has(tree.ModInterface) {
		if c.countMethods() > 0 {
			mods |= tree.ModAbstract
		} else {
			mods &^= tree.ModAbstract
		}
	}

	c.shape.Modifiers = int32(mods)
}

func (c *collector) countMethods() int {
	var n int

	for _, m := range c.members {
		if m.Kind() == tree.MethodDecl {
			n++
		}
	}

	return n
}

func (c *collector) interfaces() {
	ids, resolved := c.r.Interfaces(c.decl)

	type iface struct {
		name     string
		resolved bool
	}

	list := make([]iface, 0, len(ids))
	for i, id := range ids {
		list = append(list, iface{string(id), resolved[i]})
	}

	slices.SortStableFunc(list, func(a, b iface) int {
		switch {
		case a.resolved != b.resolved && a.resolved:
			return -1
		case a.resolved != b.resolved:
			return 1
		default:
			return strings.Compare(a.name, b.name)
		}
	})

	for _, i := range list {
		c.shape.Interfaces = append(c.shape.Interfaces, i.name)
	}
}

// typeOf returns the erased type of a declaration, falling back to Object.
func (c *collector) typeOf(decl tree.Cursor) symbol.TypeID {
	if id, _ := c.r.TypeOf(decl); id != "" {
		return id
	}

	return symbol.Object
}

func (c *collector) addField(name string, mods tree.ModSet, typ symbol.TypeID) {
	mods &= fieldMask
	if mods.Has(tree.ModPrivate) && mods.Any(tree.ModStatic|tree.ModTransient) {
		return
	}

	c.shape.Fields = append(c.shape.Fields, Member{Name: name, Modifiers: int32(mods), Signature: typ.Descriptor()})
}

func (c *collector) fields() {
	if c.decl.Kind() == tree.EnumDecl {
		if body, ok := c.decl.Field(tree.RoleBody); ok {
			for e := range body.ChildrenOf(tree.EnumConstant) {
				c.addField(e.Name(), tree.ModPublic|tree.ModStatic|tree.ModFinal, c.name)
			}
		}
	}

	if c.decl.Kind() == tree.RecordDecl {
		for _, p := range c.components() {
			c.addField(p.Name(), tree.ModPrivate|tree.ModFinal, c.typeOf(p))
		}
	}

	for _, m := range c.members {
		if m.Kind() != tree.FieldDecl {
			continue
		}

		for v := range m.ChildrenOf(tree.VariableDeclarator) {
			c.addField(v.Name(), symbol.EffectiveModifiers(v)|symbol.EffectiveModifiers(m), c.typeOf(v))
		}
	}

	if outer, ok := c.outerInstance(); ok {
		c.addField("this$0", tree.ModFinal, outer)
	}

	for _, v := range c.captured {
		c.addField("val$"+bindingName(v), tree.ModFinal, c.typeOf(v))
	}

	if c.hasAssertions() {
		c.addField("$assertionsDisabled", tree.ModStatic|tree.ModFinal, "boolean")
	}
}

func (c *collector) components() []tree.Cursor {
	params, ok := c.decl.Field(tree.RoleParams)
	if !ok {
		return nil
	}

	return slices.Collect(params.ChildrenOf(tree.Parameter))
}

// hasStaticInit reports whether the compiler emits a class initializer.
func (c *collector) hasStaticInit() bool {
	if c.decl.Kind() == tree.EnumDecl || c.hasAssertions() {
		return true
	}

	iface := c.decl.Kind() == tree.InterfaceDecl || c.decl.Kind() == tree.AnnotationDecl

	for _, m := range c.members {
		switch m.Kind() {
		case tree.Initializer:
			if m.Variant() == tree.StaticInit {
				return true
			}

		case tree.FieldDecl:
			mods := m.Modifiers()
			if !iface && !mods.Has(tree.ModStatic) {
				continue
			}

			for v := range m.ChildrenOf(tree.VariableDeclarator) {
				value, ok := v.Field(tree.RoleValue)
				if !ok {
					continue
				}

				if !iface && !mods.Has(tree.ModFinal) || !c.isConstant(v, value, 0) {
					return true
				}
			}

		default:
		}
	}

	return false
}

// isConstant reports whether the initializer of a final field is a constant expression of a
// primitive or String type, which the compiler stores without initialization code.
func (c *collector) isConstant(v, value tree.Cursor, depth int) bool {
	if typ := c.typeOf(v); !typ.IsPrimitive() && typ != symbol.String {
		return false
	}

	return c.constantExpr(value, depth)
}

func (c *collector) constantExpr(e tree.Cursor, depth int) bool {
	if depth > 8 {
		return false
	}

	switch e = e.Unparen(); e.Kind() {
	case tree.Literal:
		return e.Variant() != tree.LitNull

	case tree.Unary, tree.Binary, tree.Conditional:
		for o := range e.Children() {
			if o.Kind() != tree.Comment && !c.constantExpr(o, depth+1) {
				return false
			}
		}

		return true

	case tree.Cast:
		typ, ok := e.FirstChild(tree.TypeRef)
		if !ok {
			return false
		}

		if id, _ := c.r.ResolveType(typ); !id.IsPrimitive() && id != symbol.String {
			return false
		}

		for o := range e.Children() {
			if o.Kind() != tree.TypeRef && o.Kind() != tree.Comment {
				return c.constantExpr(o, depth+1)
			}
		}

		return false

	case tree.Ident, tree.FieldAccess:
		d, ok := c.r.Resolve(e)
		if !ok || d.Kind() != tree.VariableDeclarator || d.Parent().Kind() != tree.FieldDecl {
			return false
		}

		if !symbol.EffectiveModifiers(d.Parent()).Has(tree.ModFinal) {
			return false
		}

		value, ok := d.Field(tree.RoleValue)

		return ok && c.isConstant(d, value, depth+1)

	default:
		return false
	}
}

// hasAssertions reports whether an assert statement belongs to this class.
func (c *collector) hasAssertions() bool {
	for a := range c.decl.Preorder(tree.Assert) {
		if owner, ok := symbol.EnclosingClass(a); ok && owner.ID() == c.decl.ID() {
			return true
		}
	}

	return false
}

// outerInstance returns the type of the enclosing instance of an inner class.
func (c *collector) outerInstance() (symbol.TypeID, bool) {
	switch c.decl.Kind() {
	case tree.ClassDecl, tree.New:
	default:
		return "", false
	}

	if symbol.EffectiveModifiers(c.decl).Has(tree.ModStatic) {
		return "", false
	}

	owner, ok := symbol.EnclosingClass(c.decl)
	if !ok || owner.Kind() == tree.InterfaceDecl || owner.Kind() == tree.AnnotationDecl {
		return "", false
	}

	if p := c.decl.Parent(); p.Kind() != tree.ClassBody {
		// Local and anonymous classes in a static context have no enclosing instance.
		for a := range p.Enclosing() {
			if a.ID() == owner.ID() {
				break
			}

			switch a.Kind() {
			case tree.MethodDecl, tree.ConstructorDecl, tree.FieldDecl, tree.Initializer:
				if symbol.EffectiveModifiers(a).Has(tree.ModStatic) {
					return "", false
				}

			default:
				continue
			}

			break
		}
	}

	outer, ok := c.r.BinaryName(owner)

	return outer, ok
}

// capturedBindings returns the local bindings of enclosing members that a local or anonymous
// class body references, in order of first reference.
func (c *collector) capturedBindings() []tree.Cursor {
	if c.decl.Parent().Kind() == tree.ClassBody || c.decl.Parent().Kind() == tree.CompilationUnit {
		return nil
	}

	body, ok := c.decl.Field(tree.RoleBody)
	if !ok {
		return nil
	}

	var (
		captured []tree.Cursor
		seen     = make(map[tree.NodeID]bool)
	)

	for id := range body.Preorder(tree.Ident) {
		d, ok := c.r.Resolve(id)
		if !ok || seen[d.ID()] || c.decl.Contains(d) || !isLocal(d) {
			continue
		}

		seen[d.ID()] = true
		captured = append(captured, d)
	}

	return captured
}

func isLocal(d tree.Cursor) bool {
	switch d.Kind() {
	case tree.VariableDeclarator:
		return d.Parent().Kind() != tree.FieldDecl

	case tree.Parameter:
		return d.Parent().Parent().Kind() != tree.RecordDecl

	case tree.ForEach:
		return true

	case tree.Ident:
		_, ok := d.Nearest(tree.Lambda)

		return ok

	default:
		return false
	}
}

func bindingName(d tree.Cursor) string {
	if d.Kind() == tree.Ident {
		return d.Text()
	}

	return d.Name()
}

func (c *collector) constructors() {
	switch c.decl.Kind() {
	case tree.InterfaceDecl, tree.AnnotationDecl:
		return
	default:
	}

	var prefix, suffix []symbol.TypeID
	if outer, ok := c.outerInstance(); ok {
		prefix = append(prefix, outer)
	}

	for _, v := range c.captured {
		suffix = append(suffix, c.typeOf(v))
	}

	var declared bool

	for _, m := range c.members {
		if m.Kind() != tree.ConstructorDecl {
			continue
		}

		declared = true

		mods := symbol.EffectiveModifiers(m)
		if mods.Has(tree.ModPrivate) {
			continue
		}

		var params []symbol.TypeID

		if _, ok := m.Field(tree.RoleParams); ok {
			if sig, ok := c.r.MethodOf(m); ok {
				params = sig.Params
			}
		} else {
			// Compact canonical constructor.
			params = c.componentTypes()
		}

		c.addConstructor(mods, slices.Concat(prefix, params, suffix))
	}

	if declared {
		return
	}

	switch c.decl.Kind() {
	case tree.EnumDecl:
		// Implicitly private.

	case tree.New:
		c.addConstructor(0, slices.Concat(prefix, c.superConstructorParams(), suffix))

	case tree.RecordDecl:
		c.addConstructor(symbol.EffectiveModifiers(c.decl)&tree.AccessModifiers, c.componentTypes())

	default:
		c.addConstructor(symbol.EffectiveModifiers(c.decl)&tree.AccessModifiers, slices.Concat(prefix, suffix))
	}
}

func (c *collector) componentTypes() []symbol.TypeID {
	var types []symbol.TypeID
	for _, p := range c.components() {
		types = append(types, c.typeOf(p))
	}

	return types
}

// superConstructorParams returns the parameter types of the superclass constructor an
// anonymous class invokes.
func (c *collector) superConstructorParams() []symbol.TypeID {
	if ctor, ok := c.r.Resolve(c.decl); ok && ctor.Kind() == tree.ConstructorDecl {
		if sig, ok := c.r.MethodOf(ctor); ok {
			return sig.Params
		}
	}

	args, ok := c.decl.Field(tree.RoleArgs)
	if !ok {
		return nil
	}

	var params []symbol.TypeID

	for a := range args.Children() {
		if a.Kind() == tree.Comment {
			continue
		}

		id, _ := c.r.TypeOf(a)
		if id == "" || id == symbol.Null {
			id = symbol.Object
		}

		params = append(params, id)
	}

	return params
}

func (c *collector) addConstructor(mods tree.ModSet, params []symbol.TypeID) {
	sig := symbol.Method{Name: "<init>", Params: params, Result: symbol.Void}
	c.shape.Constructors = append(c.shape.Constructors, Member{
		Name:      "<init>",
		Modifiers: int32(mods & methodMask),
		Signature: sig.Descriptor(),
	})
}

func (c *collector) methods() {
	seen := make(map[string]bool)

	add := func(name string, mods tree.ModSet, sig string) {
		if mods.Has(tree.ModPrivate) || seen[name+sig] {
			return
		}

		seen[name+sig] = true
		c.shape.Methods = append(c.shape.Methods, Member{Name: name, Modifiers: int32(mods & methodMask), Signature: sig})
	}

	var declared []symbol.Method

	for _, m := range c.members {
		if m.Kind() != tree.MethodDecl {
			continue
		}

		sig, ok := c.r.MethodOf(m)
		if !ok {
			continue
		}

		declared = append(declared, sig)
		add(sig.Name, symbol.EffectiveModifiers(m), sig.Descriptor())
	}

	switch c.decl.Kind() {
	case tree.EnumDecl:
		add("values", tree.ModPublic|tree.ModStatic, "()"+c.name.ArrayOf(1).Descriptor())
		add("valueOf", tree.ModPublic|tree.ModStatic, "(Ljava/lang/String;)"+c.name.Descriptor())

	case tree.RecordDecl:
		c.recordMethods(add)

	default:
	}

	// Bridges for overrides whose erased signature differs from the overridden method.
	for _, m := range declared {
		if m.Mods.Any(tree.ModStatic | tree.ModPrivate) {
			continue
		}

		for _, sup := range c.r.SuperMethods(m.Decl) {
			if d := sup.Descriptor(); d != m.Descriptor() {
				add(m.Name, m.Mods&tree.AccessModifiers, d)
			}
		}
	}
}

func (c *collector) recordMethods(add func(name string, mods tree.ModSet, sig string)) {
	for _, p := range c.components() {
		add(p.Name(), tree.ModPublic, "()"+c.typeOf(p).Descriptor())
	}

	add("toString", tree.ModPublic|tree.ModFinal, "()Ljava/lang/String;")
	add("hashCode", tree.ModPublic|tree.ModFinal, "()I")
	add("equals", tree.ModPublic|tree.ModFinal, "(Ljava/lang/Object;)Z")
}
