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
	"fmt"
	"strconv"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/serialhash"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Options of [SerialVersionUID].
const (
	IgnoreAnonymousInnerClasses = "ignoreAnonymousInnerClasses"
	SuperClassList              = "superClassList"
)

const serialVersionUID = "serialVersionUID"

// SerialVersionUID reports serializable classes that do not declare a serialVersionUID.
// The fix declares the identifier the platform would compute for the class as it is now.
func SerialVersionUID() *rule.Rule {
	return &rule.Rule{
		ID:       SerialVersionUIDID,
		Doc:      "Serializable class without 'serialVersionUID'",
		Kinds:    []tree.Kind{tree.ClassDecl, tree.New},
		Severity: finding.Warning,
		Messages: map[string]string{
			"missing": "%[1]s does not define a 'serialVersionUID' field",
		},
		Defaults: rule.Config{
			Flags: map[string]bool{IgnoreAnonymousInnerClasses: false},
			Lists: map[string][]string{SuperClassList: nil},
		},
		New: func(cfg rule.Config) rule.Visitor {
			ignoreAnonymous := cfg.Flag(IgnoreAnonymousInnerClasses)

			ignored := make([]symbol.TypeID, 0, len(cfg.List(SuperClassList)))
			for _, s := range cfg.List(SuperClassList) {
				ignored = append(ignored, symbol.TypeID(s))
			}

			return func(p *rule.Pass, c tree.Cursor) error {
				if c.Kind() == tree.New && (c.Variant() != tree.AnonymousNew || ignoreAnonymous) {
					return nil
				}

				id, ok := p.Resolver.BinaryName(c)
				if !ok || !p.Resolver.IsSubtype(id, symbol.Serializable) || declaresSerialVersionUID(c) {
					return nil
				}

				for _, s := range ignored {
					if p.Resolver.IsSubtype(id, s) {
						return nil
					}
				}

				anchor, name := nameOrSelf(c), c.Name()
				if c.Kind() == tree.New {
					if typ, ok := c.Field(tree.RoleType); ok {
						anchor = typ
					}

					name = "Anonymous class derived from " + anchor.Text()
				}

				p.Report(anchor, "missing", addSerialVersionUID{class: c.ID()}, name)

				return nil
			}
		},
	}
}

func declaresSerialVersionUID(class tree.Cursor) bool {
	for m := range class.Members() {
		if m.Kind() != tree.FieldDecl {
			continue
		}

		for d := range m.ChildrenOf(tree.VariableDeclarator) {
			if d.Name() == serialVersionUID {
				return true
			}
		}
	}

	return false
}

// addSerialVersionUID inserts the computed identifier as the first member of a class.
type addSerialVersionUID struct {
	class tree.NodeID
}

func (addSerialVersionUID) Title() string { return "Add 'serialVersionUID' field" }

func (a addSerialVersionUID) Compute(t *tree.Tree, r symbol.Resolver) (finding.Edit, error) {
	class, ok := t.At(a.class)
	if !ok {
		return finding.Edit{}, finding.ErrStaleFix
	}

	if declaresSerialVersionUID(class) {
		return finding.Edit{}, finding.NotApplicable("%s already declared", serialVersionUID)
	}

	body, ok := class.Field(tree.RoleBody)
	if !ok {
		return finding.Edit{}, finding.NotApplicable("class has no body")
	}

	uid, err := serialhash.Compute(r, class)
	if err != nil {
		return finding.Edit{}, fmt.Errorf("compute %s: %w", serialVersionUID, err)
	}

	f, err := t.Clone(body.ID())
	if err != nil {
		return finding.Edit{}, err
	}

	if err := f.InsertAt(1, uidField(uid)); err != nil {
		return finding.Edit{}, err
	}

	if err := f.InsertAt(1, tree.Text("\n"+memberIndent(t, body))); err != nil {
		return finding.Edit{}, err
	}

	return finding.NewEdit(body, f), nil
}

// uidField builds "private static final long serialVersionUID = <uid>L;".
func uidField(uid int64) *tree.Fragment {
	var value *tree.Fragment
	if uid < 0 {
		lit := tree.Leaf(tree.Literal, tree.LitLong, strconv.FormatUint(uint64(-uid), 10)+"L")
		value = tree.Build(tree.Unary, 0, tree.Text("-"), lit)
	} else {
		value = tree.Leaf(tree.Literal, tree.LitLong, strconv.FormatInt(uid, 10)+"L")
	}

	return tree.Build(tree.FieldDecl, 0,
		tree.Build(tree.Modifiers, 0, tree.Text("private static final")),
		tree.Text(" "),
		tree.Leaf(tree.TypeRef, 0, "long").WithRole(tree.RoleType),
		tree.Text(" "),
		tree.Build(tree.VariableDeclarator, 0,
			tree.Leaf(tree.Ident, 0, serialVersionUID).WithRole(tree.RoleName),
			tree.Text(" = "),
			value.WithRole(tree.RoleValue),
		),
		tree.Text(";"),
	)
}

// memberIndent returns the indentation of the first member on its own line, or one level
// deeper than the line opening the body.
func memberIndent(t *tree.Tree, body tree.Cursor) string {
	open := t.Position(body.Start()).Line

	for m := range body.Children() {
		if t.Position(m.Start()).Line != open {
			return t.LineIndent(m.Start())
		}

		break
	}

	return t.LineIndent(body.Start()) + "    "
}
