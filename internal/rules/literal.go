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

// WarnOnAllPossiblyLiterals is the option of [SyncOnLiteral] that reports every lock of
// string or wrapper type not known to be freshly constructed.
const WarnOnAllPossiblyLiterals = "warnOnAllPossiblyLiterals"

// SyncOnLiteral reports synchronization on string and boxed literals. Literals are interned
// and cached, so unrelated code may synchronize on the same instance.
func SyncOnLiteral() *rule.Rule {
	return &rule.Rule{
		ID:       SyncOnLiteralID,
		Doc:      "Synchronization on an object initialized with a literal",
		Kinds:    []tree.Kind{tree.Synchronized},
		Severity: finding.Warning,
		Messages: map[string]string{
			"literal":            "Synchronization on %[1]s literal %[2]s",
			"initializedLiteral": "Synchronization on '%[2]s' initialized with a literal of type %[1]s",
			"possiblyLiteral":    "Synchronization on '%[2]s' which may be a literal of type %[1]s",
		},
		Defaults: rule.Config{Flags: map[string]bool{WarnOnAllPossiblyLiterals: false}},
		New: func(cfg rule.Config) rule.Visitor {
			all := cfg.Flag(WarnOnAllPossiblyLiterals)

			return func(p *rule.Pass, c tree.Cursor) error {
				lock, ok := lockOf(c)
				if !ok {
					return nil
				}

				typ, ok := p.Resolver.TypeOf(lock)
				if !ok || typ != symbol.String && !typ.IsBoxed() {
					return nil
				}

				init, hasInit := initializer(p.Resolver, lock)

				switch {
				case isLiteral(lock):
					p.Report(lock, "literal", nil, typ.SimpleName(), lock.Text())

				case hasInit && isLiteral(init):
					p.Report(lock, "initializedLiteral", nil, typ.SimpleName(), lock.Text())

				case all && !(hasInit && init.Kind() == tree.New):
					p.Report(lock, "possiblyLiteral", nil, typ.SimpleName(), lock.Text())

				default:
				}

				return nil
			}
		},
	}
}

// initializer returns the initializer of the variable or field expr refers to.
func initializer(r symbol.Resolver, expr tree.Cursor) (tree.Cursor, bool) {
	if expr.Kind() != tree.Ident && expr.Kind() != tree.FieldAccess {
		return tree.Cursor{}, false
	}

	decl, ok := r.Resolve(expr)
	if !ok || decl.Kind() != tree.VariableDeclarator {
		return tree.Cursor{}, false
	}

	v, ok := decl.Field(tree.RoleValue)
	if !ok {
		return tree.Cursor{}, false
	}

	return v.Unparen(), true
}

// isLiteral reports whether expr is a literal or a constant expression of literals,
// which evaluate to interned instances.
func isLiteral(expr tree.Cursor) bool {
	expr = expr.Unparen()

	switch expr.Kind() {
	case tree.Literal:
		return expr.Variant() != tree.LitNull

	case tree.Binary:
		left, lok := expr.Field(tree.RoleLeft)
		right, rok := expr.Field(tree.RoleRight)

		return lok && rok && isLiteral(left) && isLiteral(right)

	default:
		return false
	}
}
