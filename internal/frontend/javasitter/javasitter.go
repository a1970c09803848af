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

// Package javasitter converts tree-sitter Java syntax trees into [tree.Tree]s.
//
// The conversion keeps every comment and every node with a meaning for the analyses. Type
// references become leaves (with their annotations and comments as children), and grammar
// wrappers without meaning of their own are flattened into their parents.
package javasitter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"fillmore-labs.com/syncguard/internal/tree"
)

// ErrSyntax is returned by [Parse] when the source has syntax errors and partial trees are not allowed.
var ErrSyntax = errors.New("syntax error")

// Parse parses Java source code. Syntax errors are tolerated; the erroneous regions
// become [tree.Other] nodes. Use [ParseStrict] to reject them.
func Parse(ctx context.Context, name string, src []byte) (*tree.Tree, error) {
	t, _, err := parse(ctx, name, src)

	return t, err
}

// ParseStrict is like [Parse], but fails with [ErrSyntax] when the source does not parse cleanly.
func ParseStrict(ctx context.Context, name string, src []byte) (*tree.Tree, error) {
	t, hasError, err := parse(ctx, name, src)
	if err != nil {
		return nil, err
	}

	if hasError {
		return nil, fmt.Errorf("%s: %w", name, ErrSyntax)
	}

	return t, nil
}

func parse(ctx context.Context, name string, src []byte) (*tree.Tree, bool, error) {
	p := sitter.NewParser()
	defer p.Close()

	p.SetLanguage(java.GetLanguage())

	st, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, false, fmt.Errorf("parse %s: %w", name, err)
	}
	defer st.Close()

	root := st.RootNode()

	c := converter{b: tree.NewBuilder(name, src), src: src}
	c.b.Open(tree.CompilationUnit, tree.NoRole, 0, 0)
	c.children(root)
	c.b.Close(len(src))

	t, err := c.b.Tree()
	if err != nil {
		return nil, false, fmt.Errorf("convert %s: %w", name, err)
	}

	return t, root.HasError(), nil
}

type converter struct {
	b   *tree.Builder
	src []byte
}

func (c *converter) open(kind tree.Kind, role tree.Role, variant uint8, n *sitter.Node) {
	c.b.Open(kind, role, variant, int(n.StartByte()))
}

func (c *converter) close(n *sitter.Node) { c.b.Close(int(n.EndByte())) }

func (c *converter) leaf(kind tree.Kind, role tree.Role, variant uint8, n *sitter.Node) {
	c.b.Leaf(kind, role, variant, int(n.StartByte()), int(n.EndByte()))
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

var roles = map[string]tree.Role{
	"name":        tree.RoleName,
	"field":       tree.RoleName,
	"constructor": tree.RoleName,
	"type":        tree.RoleType,
	"body":        tree.RoleBody,
	"value":       tree.RoleValue,
	"object":      tree.RoleObject,
	"arguments":   tree.RoleArgs,
	"parameters":  tree.RoleParams,
	"left":        tree.RoleLeft,
	"right":       tree.RoleRight,
	"condition":   tree.RoleCond,
	"consequence": tree.RoleThen,
	"alternative": tree.RoleElse,
	"superclass":  tree.RoleSuper,
	"interfaces":  tree.RoleIfaces,
	"init":        tree.RoleInit,
	"update":      tree.RoleUpdate,
	"resources":   tree.RoleInit,
}

// children converts the named children of n, in source order.
func (c *converter) children(n *sitter.Node) {
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || child.IsMissing() {
			continue
		}

		c.node(child, roles[n.FieldNameForChild(i)])
	}
}

// kinds maps grammar node types that convert one-to-one.
var kinds = map[string]tree.Kind{
	"package_declaration":         tree.PackageDecl,
	"class_declaration":           tree.ClassDecl,
	"interface_declaration":       tree.InterfaceDecl,
	"enum_declaration":            tree.EnumDecl,
	"record_declaration":          tree.RecordDecl,
	"annotation_type_declaration": tree.AnnotationDecl,
	"class_body":                  tree.ClassBody,
	"interface_body":              tree.ClassBody,
	"enum_body":                   tree.ClassBody,
	"annotation_type_body":        tree.ClassBody,
	"enum_constant":               tree.EnumConstant,

	"field_declaration":                   tree.FieldDecl,
	"constant_declaration":                tree.FieldDecl,
	"variable_declarator":                 tree.VariableDeclarator,
	"method_declaration":                  tree.MethodDecl,
	"annotation_type_element_declaration": tree.MethodDecl,
	"constructor_declaration":             tree.ConstructorDecl,
	"compact_constructor_declaration":     tree.ConstructorDecl,
	"formal_parameters":                   tree.Parameters,
	"type_parameter":                      tree.TypeParameter,
	"modifiers":                           tree.Modifiers,
	"annotation":                          tree.Annotation,
	"marker_annotation":                   tree.Annotation,
	"throws":                              tree.Throws,
	"argument_list":                       tree.Arguments,

	"block":                           tree.Block,
	"constructor_body":                tree.Block,
	"switch_block":                    tree.Block,
	"local_variable_declaration":      tree.LocalVarDecl,
	"synchronized_statement":          tree.Synchronized,
	"if_statement":                    tree.If,
	"while_statement":                 tree.While,
	"do_statement":                    tree.DoWhile,
	"for_statement":                   tree.For,
	"enhanced_for_statement":          tree.ForEach,
	"switch_expression":               tree.Switch,
	"switch_statement":                tree.Switch,
	"try_statement":                   tree.Try,
	"try_with_resources_statement":    tree.Try,
	"catch_clause":                    tree.Catch,
	"return_statement":                tree.Return,
	"throw_statement":                 tree.Throw,
	"assert_statement":                tree.Assert,
	"expression_statement":            tree.ExprStmt,
	"explicit_constructor_invocation": tree.Call,
	"break_statement":                 tree.Statement,
	"continue_statement":              tree.Statement,
	"yield_statement":                 tree.Statement,
	"labeled_statement":               tree.Statement,

	"field_access":               tree.FieldAccess,
	"method_invocation":          tree.Call,
	"object_creation_expression": tree.New,
	"array_creation_expression":  tree.New,
	"lambda_expression":          tree.Lambda,
	"assignment_expression":      tree.Assign,
	"class_literal":              tree.ClassLiteral,
	"parenthesized_expression":   tree.Paren,
	"cast_expression":            tree.Cast,
	"array_access":               tree.ArrayAccess,
	"binary_expression":          tree.Binary,
	"unary_expression":           tree.Unary,
	"update_expression":          tree.Unary,
	"ternary_expression":         tree.Conditional,
	"instanceof_expression":      tree.InstanceOf,
	"method_reference":           tree.Expression,
	"array_initializer":          tree.Expression,
}

// typeNodes lists the grammar node types that denote a type reference.
var typeNodes = map[string]bool{
	"type_identifier":        true,
	"scoped_type_identifier": true,
	"generic_type":           true,
	"array_type":             true,
	"integral_type":          true,
	"floating_point_type":    true,
	"boolean_type":           true,
	"void_type":              true,
	"catch_type":             true,
}

// flattened lists grammar wrappers whose children are converted in place.
var flattened = map[string]bool{
	"enum_body_declarations":       true,
	"local_class_declaration":      true,
	"switch_block_statement_group": true,
	"type_list":                    true,
}

func (c *converter) node(n *sitter.Node, role tree.Role) {
	typ := n.Type()

	switch {
	case flattened[typ]:
		c.children(n)

		return

	case typeNodes[typ]:
		c.typeRef(n, role)

		return

	default:
	}

	switch typ {
	case "line_comment":
		c.leaf(tree.Comment, role, tree.LineComment, n)

	case "block_comment", "comment":
		c.leaf(tree.Comment, role, commentVariant(c.text(n)), n)

	case "identifier", "scoped_identifier":
		c.leaf(tree.Ident, role, 0, n)

	case "this":
		c.leaf(tree.This, role, 0, n)

	case "super":
		c.leaf(tree.Super, role, 0, n)

	case "import_declaration":
		c.leaf(tree.ImportDecl, role, 0, n)

	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		variant := tree.LitInt
		if strings.HasSuffix(strings.ToLower(c.text(n)), "l") {
			variant = tree.LitLong
		}

		c.leaf(tree.Literal, role, variant, n)

	case "decimal_floating_point_literal", "hex_floating_point_literal":
		variant := tree.LitDouble
		if strings.HasSuffix(strings.ToLower(c.text(n)), "f") {
			variant = tree.LitFloat
		}

		c.leaf(tree.Literal, role, variant, n)

	case "true", "false":
		c.leaf(tree.Literal, role, tree.LitBool, n)

	case "null_literal":
		c.leaf(tree.Literal, role, tree.LitNull, n)

	case "character_literal":
		c.leaf(tree.Literal, role, tree.LitChar, n)

	case "string_literal", "text_block":
		variant := tree.LitString
		if strings.HasPrefix(c.text(n), `"""`) {
			variant = tree.LitTextBlock
		}

		c.leaf(tree.Literal, role, variant, n)

	case "formal_parameter", "catch_formal_parameter":
		c.parameter(n, role, 0)

	case "spread_parameter":
		c.parameter(n, role, tree.VarArgs)

	case "resource":
		c.resource(n, role)

	case "static_initializer":
		c.open(tree.Initializer, role, tree.StaticInit, n)
		c.children(n)
		c.close(n)

	case "type_parameters", "type_arguments", "type_bound", "dimensions", "dimensions_expr",
		"switch_label", "switch_rule", "finally_clause", "resource_specification", "inferred_parameters",
		"annotation_argument_list", "element_value_pair", "element_value_array_initializer",
		"superclass", "super_interfaces", "extends_interfaces":
		c.open(wrapperKind(typ), wrapperRole(typ, role), 0, n)
		c.children(n)
		c.close(n)

	default:
		kind, ok := kinds[typ]
		if !ok {
			kind = tree.Other
		}

		c.generic(n, kind, role)
	}
}

func commentVariant(text string) uint8 {
	switch {
	case strings.HasPrefix(text, "//"):
		return tree.LineComment
	case strings.HasPrefix(text, "/**") && text != "/**/":
		return tree.DocComment
	default:
		return tree.BlockComment
	}
}

func wrapperKind(typ string) tree.Kind {
	switch typ {
	case "superclass", "super_interfaces", "extends_interfaces":
		return tree.SuperTypes
	default:
		return tree.Other
	}
}

func wrapperRole(typ string, role tree.Role) tree.Role {
	switch typ {
	case "extends_interfaces":
		return tree.RoleIfaces
	case "superclass":
		return tree.RoleSuper
	default:
		return role
	}
}

// generic converts a node of a mapped or unknown kind, handling the few places where the
// grammar and the tree model disagree.
func (c *converter) generic(n *sitter.Node, kind tree.Kind, role tree.Role) {
	var variant uint8

	switch kind {
	case tree.New:
		for i := range int(n.ChildCount()) {
			if child := n.Child(i); child != nil && child.Type() == "class_body" {
				variant = tree.AnonymousNew
			}
		}

	case tree.Block:
		// An instance initializer is a bare block in a class body.
		if p := n.Parent(); p != nil && (p.Type() == "class_body" || p.Type() == "enum_body_declarations") {
			c.open(tree.Initializer, role, 0, n)
			c.open(tree.Block, tree.RoleBody, 0, n)
			c.children(n)
			c.close(n)
			c.close(n)

			return
		}

	default:
	}

	c.open(kind, role, variant, n)

	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || child.IsMissing() {
			continue
		}

		r := roles[n.FieldNameForChild(i)]

		switch {
		case kind == tree.Synchronized && child.Type() == "parenthesized_expression":
			r = tree.RoleLock

		case kind == tree.New && child.Type() == "class_body":
			r = tree.RoleBody

		case kind == tree.TypeParameter && child.Type() == "type_identifier":
			c.leaf(tree.TypeRef, tree.RoleName, 0, child)

			continue

		default:
		}

		c.node(child, r)
	}

	c.close(n)
}

// typeRef converts a type as a leaf, keeping annotations and comments inside it.
func (c *converter) typeRef(n *sitter.Node, role tree.Role) {
	c.open(tree.TypeRef, role, 0, n)
	c.typeExtras(n)
	c.close(n)
}

func (c *converter) typeExtras(n *sitter.Node) {
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || child.IsMissing() {
			continue
		}

		switch child.Type() {
		case "annotation", "marker_annotation", "line_comment", "block_comment", "comment":
			c.node(child, tree.NoRole)
		default:
			c.typeExtras(child)
		}
	}
}

// parameter converts a formal parameter. The parameter itself is the binding.
func (c *converter) parameter(n *sitter.Node, role tree.Role, variant uint8) {
	c.open(tree.Parameter, role, variant, n)

	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child == nil || !child.IsNamed() || child.IsMissing() {
			continue
		}

		switch field := n.FieldNameForChild(i); {
		case field == "name":
			c.leaf(tree.Ident, tree.RoleName, 0, child)

		case child.Type() == "dimensions":
			// Counted by [tree.Cursor.Dims].

		case typeNodes[child.Type()]:
			c.typeRef(child, tree.RoleType)

		default:
			c.node(child, roles[field])
		}
	}

	c.close(n)
}

// resource converts a try resource. Declared resources become declarators;
// references to existing variables stay expressions.
func (c *converter) resource(n *sitter.Node, role tree.Role) {
	if n.ChildByFieldName("name") == nil {
		c.generic(n, tree.Expression, role)

		return
	}

	c.generic(n, tree.VariableDeclarator, role)
}
