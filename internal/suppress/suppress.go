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

// Package suppress decides which findings the source code silences.
//
// A finding is suppressed by a //noinspection comment on the line before an enclosing statement
// or member, or by a @SuppressWarnings annotation on an enclosing declaration:
//
//	//noinspection SynchronizeOnNonFinalField
//	synchronized (lock) { ... }
//
//	@SuppressWarnings({"unchecked", "NotifyNotNotifyAll"})
//	void signal() { ... }
//
// The identifier "all" (or "ALL" in comments) suppresses every rule.
package suppress

import (
	"regexp"
	"slices"
	"strings"

	"fillmore-labs.com/syncguard/internal/tree"
)

// Index answers suppression queries for one tree, caching the identifiers
// declared on each node. An Index is not safe for concurrent use.
type Index struct {
	tree    *tree.Tree
	version uint64
	ids     map[tree.NodeID][]string
}

// New creates a suppression index for t.
func New(t *tree.Tree) *Index {
	return &Index{tree: t, version: t.Version(), ids: make(map[tree.NodeID][]string)}
}

// Suppressed reports whether findings of rule anchored at anchor are silenced.
func (x *Index) Suppressed(rule string, anchor tree.Cursor) bool {
	if anchor.Tree() != x.tree {
		return false
	}

	if v := x.tree.Version(); v != x.version {
		clear(x.ids)
		x.version = v
	}

	for a := range anchor.Enclosing() {
		if matches(x.suppressions(a), rule) {
			return true
		}
	}

	return false
}

func matches(ids []string, rule string) bool {
	return slices.ContainsFunc(ids, func(id string) bool {
		return id == rule || strings.EqualFold(id, all)
	})
}

const all = "all"

// suppressions returns the identifiers suppressed at c, without ancestors.
func (x *Index) suppressions(c tree.Cursor) []string {
	if ids, ok := x.ids[c.ID()]; ok {
		return ids
	}

	var ids []string

	if suppressible(c) {
		ids = append(ids, precedingDirectives(c)...)
		ids = append(ids, annotated(c)...)
	}

	x.ids[c.ID()] = ids

	return ids
}

// suppressible reports whether c is a statement or declaration that suppressions attach to.
func suppressible(c tree.Cursor) bool {
	switch k := c.Kind(); {
	case c.IsStatement(), k.IsMember(), k.IsType():
		return true

	case k == tree.FieldDecl, k == tree.EnumConstant, k == tree.Parameter:
		return true

	default:
		return false
	}
}

// precedingDirectives parses the comments directly preceding c.
func precedingDirectives(c tree.Cursor) []string {
	p := c.Parent()
	if !p.Valid() {
		return nil
	}

	var ids []string

	for i := c.Index() - 1; i >= 0; i-- {
		s := p.Child(i)
		if s.Kind() != tree.Comment {
			break
		}

		if rules, ok := ParseDirective(s.Text()); ok {
			ids = append(ids, rules...)
		}
	}

	return ids
}

var directivePattern = regexp.MustCompile(`^//\s*noinspection\s+([A-Za-z0-9_,\s]+)$`)

// ParseDirective extracts rule identifiers from a //noinspection comment.
func ParseDirective(text string) (rules []string, ok bool) {
	matches := directivePattern.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return nil, false
	}

	for r := range strings.SplitSeq(matches[1], ",") {
		if r = strings.TrimSpace(r); r != "" {
			rules = append(rules, r)
		}
	}

	return rules, len(rules) > 0
}

// annotated returns the identifiers listed in a @SuppressWarnings annotation of c.
func annotated(c tree.Cursor) []string {
	var ids []string

	for a := range c.Annotations() {
		if !isAnnotation(a, "java.lang.SuppressWarnings") {
			continue
		}

		for lit := range a.Preorder(tree.Literal) {
			if lit.Variant() == tree.LitString {
				ids = append(ids, strings.Trim(lit.Text(), `"`))
			}
		}
	}

	return ids
}

// isAnnotation reports whether the annotation a names the type with the qualified name,
// either qualified or simple.
func isAnnotation(a tree.Cursor, qualified string) bool {
	name := strings.TrimPrefix(a.Name(), "@")

	return name == qualified || name == qualified[strings.LastIndexByte(qualified, '.')+1:]
}
