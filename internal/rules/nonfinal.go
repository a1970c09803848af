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

package rules

import (
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// SyncOnNonFinalField reports synchronization on fields that are not final. Threads reading
// the field at different times may synchronize on different objects.
func SyncOnNonFinalField() *rule.Rule {
	return &rule.Rule{
		ID:       SyncOnNonFinalFieldID,
		Doc:      "Synchronization on a non-final field",
		Kinds:    []tree.Kind{tree.Synchronized},
		Severity: finding.Warning,
		Messages: map[string]string{
			"nonFinal": "Synchronization on non-final field '%[1]s'",
		},
		New: func(rule.Config) rule.Visitor {
			return func(p *rule.Pass, c tree.Cursor) error {
				lock, ok := lockOf(c)
				if !ok || lock.Kind() != tree.Ident && lock.Kind() != tree.FieldAccess {
					return nil
				}

				decl, ok := p.Resolver.Resolve(lock)
				if !ok || !isField(decl) || symbol.EffectiveModifiers(decl).Has(tree.ModFinal) {
					return nil
				}

				var fix finding.FixDescriptor
				if canMakeFinal(p.Resolver, decl) {
					fix = makeFinal{field: decl.Parent().ID(), decl: decl.ID(), name: decl.Name()}
				}

				p.Report(lock, "nonFinal", fix, decl.Name())

				return nil
			}
		},
	}
}

func isField(decl tree.Cursor) bool {
	return decl.Kind() == tree.VariableDeclarator && decl.Parent().Kind() == tree.FieldDecl
}

// canMakeFinal reports whether decl is the only, initialized declarator of a non-volatile
// field that is never written after initialization.
func canMakeFinal(r symbol.Resolver, decl tree.Cursor) bool {
	if _, ok := decl.Field(tree.RoleValue); !ok {
		return false
	}

	field := decl.Parent()
	if field.Modifiers().Has(tree.ModVolatile) {
		return false
	}

	var declarators int
	for range field.ChildrenOf(tree.VariableDeclarator) {
		declarators++
	}

	return declarators == 1 && !assigned(r, decl)
}

// assigned reports whether any assignment or increment in the tree writes decl.
func assigned(r symbol.Resolver, decl tree.Cursor) bool {
	for w := range decl.Tree().Root().Preorder(tree.Assign, tree.Unary) {
		var target tree.Cursor

		switch w.Kind() {
		case tree.Assign:
			left, ok := w.Field(tree.RoleLeft)
			if !ok {
				continue
			}

			target = left

		default:
			if op := w.Operator(); op != "++" && op != "--" {
				continue
			}

			operand, ok := w.Operand()
			if !ok {
				continue
			}

			target = operand
		}

		target = target.Unparen()
		if target.Kind() != tree.Ident && target.Kind() != tree.FieldAccess || target.Name() != decl.Name() {
			continue
		}

		if d, ok := r.Resolve(target); ok && d.ID() == decl.ID() {
			return true
		}
	}

	return false
}

// makeFinal adds the final modifier to a field declaration.
type makeFinal struct {
	field, decl tree.NodeID
	name        string
}

func (m makeFinal) Title() string { return "Make '" + m.name + "' final" }

func (m makeFinal) Compute(t *tree.Tree, r symbol.Resolver) (finding.Edit, error) {
	field, fok := t.At(m.field)
	decl, dok := t.At(m.decl)

	if !fok || !dok {
		return finding.Edit{}, finding.ErrStaleFix
	}

	if field.Modifiers().Has(tree.ModFinal) {
		return finding.Edit{}, finding.NotApplicable("'%s' is already final", m.name)
	}

	if !canMakeFinal(r, decl) {
		return finding.Edit{}, finding.NotApplicable("'%s' is written after initialization", m.name)
	}

	if mods, ok := field.ModifierList(); ok {
		f, err := t.Clone(mods.ID())
		if err != nil {
			return finding.Edit{}, err
		}

		f.Append(tree.Text(" final"))

		return finding.NewEdit(mods, f), nil
	}

	f, err := t.Clone(field.ID())
	if err != nil {
		return finding.Edit{}, err
	}

	f.Prepend(tree.Text(" "))
	f.Prepend(tree.Build(tree.Modifiers, 0, tree.Text("final")))

	return finding.NewEdit(field, f), nil
}
