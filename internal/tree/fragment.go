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
	"fmt"
	"slices"
)

// Fragment is a detached subtree with its own source text, used as the replacement in [Tree.Replace].
//
// Offsets inside a fragment are relative to the start of its text.
type Fragment struct {
	text  []byte
	nodes []fragNode // nodes[0] is the root
}

type fragNode struct {
	kind     Kind
	role     Role
	variant  uint8
	start    int
	end      int
	children []int
	origin   NodeID
}

// Part is an element of a fragment under construction: either [Text] or a *[Fragment].
type Part interface {
	appendTo(f *Fragment, children *[]int)
}

// Text is literal source text without syntactic structure, like keywords, punctuation or white space.
type Text string

func (s Text) appendTo(f *Fragment, _ *[]int) {
	f.text = append(f.text, string(s)...)
}

func (g *Fragment) appendTo(f *Fragment, children *[]int) {
	base, off := len(f.text), len(f.nodes)
	f.text = append(f.text, g.text...)

	for _, n := range g.nodes {
		n.start += base
		n.end += base

		cs := make([]int, len(n.children))
		for i, c := range n.children {
			cs[i] = c + off
		}

		n.children = cs
		f.nodes = append(f.nodes, n)
	}

	*children = append(*children, off)
}

// Leaf creates a fragment consisting of a single childless node.
func Leaf(kind Kind, variant uint8, text string) *Fragment {
	return &Fragment{
		text:  []byte(text),
		nodes: []fragNode{{kind: kind, variant: variant, end: len(text)}},
	}
}

// Build creates a fragment with a root of the given kind spanning all parts in order.
func Build(kind Kind, variant uint8, parts ...Part) *Fragment {
	f := &Fragment{nodes: []fragNode{{kind: kind, variant: variant}}}

	var children []int
	for _, p := range parts {
		if p == nil {
			continue
		}

		p.appendTo(f, &children)
	}

	f.nodes[0].end = len(f.text)
	f.nodes[0].children = children

	return f
}

// WithRole sets the role of the fragment root and returns the fragment.
func (g *Fragment) WithRole(r Role) *Fragment {
	g.nodes[0].role = r

	return g
}

// Copy returns a deep copy of the fragment.
func (g *Fragment) Copy() *Fragment {
	c := &Fragment{text: slices.Clone(g.text), nodes: slices.Clone(g.nodes)}
	for i := range c.nodes {
		c.nodes[i].children = slices.Clone(c.nodes[i].children)
	}

	return c
}

// Kind returns the kind of the fragment root.
func (g *Fragment) Kind() Kind { return g.nodes[0].kind }

// Text returns the source text of the fragment.
func (g *Fragment) Text() string { return string(g.text) }

// Len returns the length of the source text of the fragment.
func (g *Fragment) Len() int { return len(g.text) }

// HasOrigin reports whether the fragment contains a copy of the node id, see [Tree.Clone].
func (g *Fragment) HasOrigin(id NodeID) bool {
	return slices.ContainsFunc(g.nodes, func(n fragNode) bool { return n.origin == id })
}

// Count returns the number of nodes of the given kind in the fragment.
func (g *Fragment) Count(kind Kind) int {
	var count int

	for _, n := range g.nodes {
		if n.kind == kind {
			count++
		}
	}

	return count
}

// InsertAt inserts p at the relative offset at, which must not fall inside a child of the root.
// A fragment part becomes a child of the root in source order.
func (g *Fragment) InsertAt(at int, p Part) error {
	root := &g.nodes[0]
	if at < root.start || at > root.end {
		return fmt.Errorf("%w: insert offset %d outside %d-%d", ErrInvalidFragment, at, root.start, root.end)
	}

	pos := len(root.children)
	for i, c := range root.children {
		cn := &g.nodes[c]
		if at > cn.start && at < cn.end {
			return fmt.Errorf("%w: insert offset %d inside %s", ErrInvalidFragment, at, cn.kind)
		}

		if cn.start >= at && pos == len(root.children) {
			pos = i
		}
	}

	// Render p into a scratch fragment to learn its size and nodes.
	var (
		scratch  Fragment
		children []int
	)

	p.appendTo(&scratch, &children)

	delta, off := len(scratch.text), len(g.nodes)

	g.text = slices.Insert(g.text, at, scratch.text...)

	for i := 1; i < len(g.nodes); i++ {
		n := &g.nodes[i]
		if n.start >= at {
			n.start += delta
			n.end += delta
		}
	}

	root = &g.nodes[0]
	root.end += delta

	for _, n := range scratch.nodes {
		n.start += at
		n.end += at

		for j := range n.children {
			n.children[j] += off
		}

		g.nodes = append(g.nodes, n)
	}

	if len(children) > 0 {
		root = &g.nodes[0]
		root.children = slices.Insert(root.children, pos, children[0]+off)
	}

	return nil
}

// Prepend inserts p at the start of the fragment.
func (g *Fragment) Prepend(p Part) {
	_ = g.InsertAt(0, p)
}

// Append inserts p at the end of the fragment.
func (g *Fragment) Append(p Part) {
	_ = g.InsertAt(len(g.text), p)
}

func (g *Fragment) validate() error {
	if g == nil || len(g.nodes) == 0 {
		return fmt.Errorf("%w: empty fragment", ErrInvalidFragment)
	}

	if r := g.nodes[0]; r.start != 0 || r.end != len(g.text) {
		return fmt.Errorf("%w: root range %d-%d does not span text of length %d", ErrInvalidFragment, r.start, r.end, len(g.text))
	}

	seen := make([]bool, len(g.nodes))

	var check func(i int) error
	check = func(i int) error {
		if seen[i] {
			return fmt.Errorf("%w: node %d is shared", ErrInvalidFragment, i)
		}

		seen[i] = true
		n := &g.nodes[i]

		if n.kind == Invalid || n.kind >= numKinds {
			return fmt.Errorf("%w: node %d has invalid kind %d", ErrInvalidFragment, i, n.kind)
		}

		prev := n.start
		for _, c := range n.children {
			if c <= 0 || c >= len(g.nodes) {
				return fmt.Errorf("%w: node %d has invalid child %d", ErrInvalidFragment, i, c)
			}

			cn := &g.nodes[c]
			if cn.start < prev || cn.end < cn.start || cn.end > n.end {
				return fmt.Errorf("%w: %s child %s at %d-%d outside %d-%d", ErrInvalidFragment, n.kind, cn.kind, cn.start, cn.end, prev, n.end)
			}

			if err := check(c); err != nil {
				return err
			}

			prev = cn.end
		}

		return nil
	}

	if err := check(0); err != nil {
		return err
	}

	if i := slices.Index(seen, false); i >= 0 {
		return fmt.Errorf("%w: node %d is unreachable", ErrInvalidFragment, i)
	}

	return nil
}
