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

// Package tree implements an arena-backed syntax tree with generation-tagged node identities.
//
// A [Tree] owns the source text of one compilation unit and a flat arena of nodes. Every node is
// addressed by a [NodeID] that pairs the arena slot with the slot's generation, so identities taken
// before an edit can be recognized as stale afterwards. The only mutation is [Tree.Replace], which
// swaps a subtree for a [Fragment] and splices the source text accordingly.
package tree

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"sync"

	"fortio.org/safecast"
)

var (
	// ErrDetachedNode is returned when an edit target is no longer reachable from the root.
	ErrDetachedNode = errors.New("detached node")

	// ErrInvalidFragment is returned when a replacement fragment or its result is malformed.
	ErrInvalidFragment = errors.New("invalid fragment")
)

// NodeID is a stable identity of a node within one [Tree]. The zero value identifies no node.
type NodeID struct {
	idx int32
	gen uint32
}

// IsZero reports whether the identity refers to no node.
func (id NodeID) IsZero() bool { return id.gen == 0 }

// String returns a diagnostic representation.
func (id NodeID) String() string {
	if id.IsZero() {
		return "#-"
	}

	return fmt.Sprintf("#%d.%d", id.idx, id.gen)
}

type node struct {
	kind     Kind
	role     Role
	variant  uint8
	live     bool
	gen      uint32
	start    int
	end      int
	parent   int32
	children []int32
	origin   NodeID
}

// Tree is a syntax tree over one source text.
//
// A Tree is safe for concurrent reads. [Tree.Replace] requires exclusive access.
type Tree struct {
	name    string
	src     []byte
	nodes   []node
	free    []int32
	root    int32
	version uint64

	mu          sync.Mutex
	file        *token.File
	fileVersion uint64
}

// Name returns the file name the tree was built from.
func (t *Tree) Name() string { return t.name }

// Source returns the current source text. The result must not be modified.
func (t *Tree) Source() []byte { return t.src }

// Version is incremented on every successful replacement.
func (t *Tree) Version() uint64 { return t.version }

// Root returns a cursor at the root node.
func (t *Tree) Root() Cursor {
	return Cursor{t, t.id(t.root)}
}

// Valid reports whether id refers to a node reachable from the root.
func (t *Tree) Valid(id NodeID) bool {
	if id.IsZero() || id.idx < 0 || int(id.idx) >= len(t.nodes) {
		return false
	}

	n := &t.nodes[id.idx]

	return n.live && n.gen == id.gen
}

// At returns a cursor for id, if it is still valid.
func (t *Tree) At(id NodeID) (Cursor, bool) {
	if !t.Valid(id) {
		return Cursor{}, false
	}

	return Cursor{t, id}, true
}

// NumNodes returns the number of live nodes.
func (t *Tree) NumNodes() int {
	return len(t.nodes) - len(t.free)
}

// File returns a [token.File] describing the line structure of the current source text.
func (t *Tree) File() *token.File {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file == nil || t.fileVersion != t.version {
		f := token.NewFileSet().AddFile(t.name, -1, len(t.src))
		f.SetLinesForContent(t.src)
		t.file, t.fileVersion = f, t.version
	}

	return t.file
}

// Position returns the line and column of a byte offset.
func (t *Tree) Position(offset int) token.Position {
	f := t.File()
	offset = min(max(offset, 0), f.Size())

	return f.Position(f.Pos(offset))
}

// LineIndent returns the leading white space of the line containing offset.
func (t *Tree) LineIndent(offset int) string {
	offset = min(max(offset, 0), len(t.src))

	begin := offset
	for begin > 0 && t.src[begin-1] != '\n' {
		begin--
	}

	end := begin
	for end < len(t.src) && (t.src[end] == ' ' || t.src[end] == '\t') {
		end++
	}

	return string(t.src[begin:end])
}

func (t *Tree) id(idx int32) NodeID {
	return NodeID{idx, t.nodes[idx].gen}
}

func (t *Tree) alloc() int32 {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[idx] = node{gen: t.nodes[idx].gen + 1}

		return idx
	}

	t.nodes = append(t.nodes, node{gen: 1})

	slot, err := safecast.Conv[int32](len(t.nodes) - 1)
	if err != nil {
		panic(fmt.Errorf("node arena overflow: %w", err))
	}

	return slot
}

// Clone copies the subtree at id into a detached [Fragment]. Every copied node remembers
// the identity it was cloned from, see [Fragment.HasOrigin].
func (t *Tree) Clone(id NodeID) (*Fragment, error) {
	if !t.Valid(id) {
		return nil, fmt.Errorf("clone %v: %w", id, ErrDetachedNode)
	}

	base := t.nodes[id.idx].start
	f := &Fragment{text: slices.Clone(t.src[base:t.nodes[id.idx].end])}

	var copyNode func(idx int32) int
	copyNode = func(idx int32) int {
		n := &t.nodes[idx]
		i := len(f.nodes)
		f.nodes = append(f.nodes, fragNode{
			kind:    n.kind,
			role:    n.role,
			variant: n.variant,
			start:   n.start - base,
			end:     n.end - base,
			origin:  t.id(idx),
		})

		children := make([]int, 0, len(n.children))
		for _, c := range n.children {
			children = append(children, copyNode(c))
		}

		f.nodes[i].children = children

		return i
	}

	copyNode(id.idx)

	return f, nil
}

type snapshot struct {
	src     []byte
	nodes   []node
	free    []int32
	root    int32
	version uint64
}

func (t *Tree) snapshot() snapshot {
	return snapshot{t.src, slices.Clone(t.nodes), slices.Clone(t.free), t.root, t.version}
}

func (t *Tree) restore(s snapshot) {
	t.src, t.nodes, t.free, t.root, t.version = s.src, s.nodes, s.free, s.root, s.version
}

// Replace substitutes the subtree rooted at target with f and splices the source text.
//
// All identities inside the old subtree become invalid. The replacement root takes over the
// target's role in its parent. Replace is atomic: on error the tree is unchanged.
func (t *Tree) Replace(target NodeID, f *Fragment) (NodeID, error) {
	if !t.Valid(target) {
		return NodeID{}, fmt.Errorf("replace %v: %w", target, ErrDetachedNode)
	}

	if err := f.validate(); err != nil {
		return NodeID{}, fmt.Errorf("replace %v: %w", target, err)
	}

	snap := t.snapshot()

	newRoot := t.replace(target.idx, f)

	if err := t.validateAround(newRoot); err != nil {
		t.restore(snap)

		return NodeID{}, fmt.Errorf("replace %v: %w", target, err)
	}

	return t.id(newRoot), nil
}

func (t *Tree) replace(target int32, f *Fragment) int32 {
	old := t.nodes[target]
	start, end := old.start, old.end
	delta := len(f.text) - (end - start)

	src := make([]byte, 0, len(t.src)+delta)
	src = append(src, t.src[:start]...)
	src = append(src, f.text...)
	src = append(src, t.src[end:]...)

	var after []bool
	if start == end {
		// Nodes at the position of an empty target are ordered by the tree structure only.
		after = t.following(target)
	}

	// Retire the old subtree.
	var kill func(idx int32)
	kill = func(idx int32) {
		n := &t.nodes[idx]
		for _, c := range n.children {
			kill(c)
		}

		n.live, n.children = false, nil
		t.free = append(t.free, idx)
	}
	kill(target)

	// Shift everything after the old range, and widen the ancestors.
	ancestor := make([]bool, len(t.nodes))
	for p := old.parent; p >= 0; p = t.nodes[p].parent {
		ancestor[p] = true
	}

	for i := range t.nodes {
		n := &t.nodes[i]
		if !n.live {
			continue
		}

		if ancestor[i] {
			n.end += delta

			continue
		}

		if n.start > end || n.start == end && (end > start || after[i]) {
			n.start += delta
			n.end += delta
		}
	}

	// Materialize the fragment.
	idx := make([]int32, len(f.nodes))
	for i := range f.nodes {
		idx[i] = t.alloc()
	}

	for i, fn := range f.nodes {
		n := &t.nodes[idx[i]]
		n.kind, n.role, n.variant, n.live = fn.kind, fn.role, fn.variant, true
		n.start, n.end = start+fn.start, start+fn.end
		n.origin = fn.origin
		n.parent = -1

		n.children = make([]int32, len(fn.children))
		for j, c := range fn.children {
			n.children[j] = idx[c]
		}
	}

	for i, fn := range f.nodes {
		for _, c := range fn.children {
			t.nodes[idx[c]].parent = idx[i]
		}
	}

	root := idx[0]
	t.nodes[root].parent = old.parent
	t.nodes[root].role = old.role

	if p := old.parent; p >= 0 {
		children := slices.Clone(t.nodes[p].children)
		if i := slices.Index(children, target); i >= 0 {
			children[i] = root
		}

		t.nodes[p].children = children
	} else {
		t.root = root
	}

	t.src = src
	t.version++

	return root
}

// validateAround checks the replaced node and all of its ancestors.
// following marks the nodes after the subtree of target in document order.
func (t *Tree) following(target int32) []bool {
	after := make([]bool, len(t.nodes))

	var passed bool

	var visit func(idx int32)
	visit = func(idx int32) {
		if idx == target {
			passed = true

			return
		}

		after[idx] = passed
		for _, c := range t.nodes[idx].children {
			visit(c)
		}
	}
	visit(t.root)

	return after
}

func (t *Tree) validateAround(idx int32) error {
	if err := t.validateSubtree(idx); err != nil {
		return err
	}

	for p := t.nodes[idx].parent; p >= 0; p = t.nodes[p].parent {
		if err := t.validateNode(p); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the structural invariants of the whole tree.
func (t *Tree) Validate() error {
	if t.root < 0 || int(t.root) >= len(t.nodes) || !t.nodes[t.root].live {
		return fmt.Errorf("%w: missing root", ErrInvalidFragment)
	}

	if r := t.nodes[t.root]; r.parent != -1 || r.end > len(t.src) {
		return fmt.Errorf("%w: root range %d-%d exceeds source length %d", ErrInvalidFragment, r.start, r.end, len(t.src))
	}

	return t.validateSubtree(t.root)
}

func (t *Tree) validateSubtree(idx int32) error {
	if err := t.validateNode(idx); err != nil {
		return err
	}

	for _, c := range t.nodes[idx].children {
		if err := t.validateSubtree(c); err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) validateNode(idx int32) error {
	n := &t.nodes[idx]
	if !n.live {
		return fmt.Errorf("%w: node %d is not live", ErrInvalidFragment, idx)
	}

	if n.start < 0 || n.start > n.end || n.end > len(t.src) {
		return fmt.Errorf("%w: %s range %d-%d out of bounds", ErrInvalidFragment, n.kind, n.start, n.end)
	}

	prev := n.start
	for _, c := range n.children {
		cn := &t.nodes[c]
		if cn.parent != idx || !cn.live {
			return fmt.Errorf("%w: %s has a stray child %s", ErrInvalidFragment, n.kind, cn.kind)
		}

		if cn.start < prev || cn.end > n.end {
			return fmt.Errorf("%w: %s child %s at %d-%d outside %d-%d", ErrInvalidFragment, n.kind, cn.kind, cn.start, cn.end, prev, n.end)
		}

		prev = cn.end
	}

	return nil
}
