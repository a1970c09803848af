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

import "fmt"

// Builder assembles a [Tree] from a parser's syntax tree. Nodes are opened and closed
// in document order, children strictly inside their parents.
type Builder struct {
	t     *Tree
	stack []int32
	err   error
}

// NewBuilder starts a tree over src.
func NewBuilder(name string, src []byte) *Builder {
	return &Builder{t: &Tree{name: name, src: src, root: -1}}
}

// Open starts a node and makes it the parent of subsequent nodes until [Builder.Close].
func (b *Builder) Open(kind Kind, role Role, variant uint8, start int) {
	idx := b.t.alloc()
	n := &b.t.nodes[idx]
	n.kind, n.role, n.variant, n.live = kind, role, variant, true
	n.start, n.end, n.parent = start, start, -1

	if k := len(b.stack); k > 0 {
		p := b.stack[k-1]
		n.parent = p
		b.t.nodes[p].children = append(b.t.nodes[p].children, idx)
	} else if b.t.root < 0 {
		b.t.root = idx
	} else if b.err == nil {
		b.err = fmt.Errorf("%w: second root %s at %d", ErrInvalidFragment, kind, start)
	}

	b.stack = append(b.stack, idx)
}

// Close ends the innermost open node.
func (b *Builder) Close(end int) {
	k := len(b.stack)
	if k == 0 {
		if b.err == nil {
			b.err = fmt.Errorf("%w: unbalanced close at %d", ErrInvalidFragment, end)
		}

		return
	}

	b.t.nodes[b.stack[k-1]].end = end
	b.stack = b.stack[:k-1]
}

// Leaf adds a childless node.
func (b *Builder) Leaf(kind Kind, role Role, variant uint8, start, end int) {
	b.Open(kind, role, variant, start)
	b.Close(end)
}

// Tree finishes construction and validates the result.
func (b *Builder) Tree() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}

	if len(b.stack) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed nodes", ErrInvalidFragment, len(b.stack))
	}

	if err := b.t.Validate(); err != nil {
		return nil, err
	}

	return b.t, nil
}

// FromFragment creates a tree whose root is the fragment.
func FromFragment(name string, f *Fragment) (*Tree, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	b := NewBuilder(name, f.text)

	var add func(i int)
	add = func(i int) {
		n := &f.nodes[i]
		b.Open(n.kind, n.role, n.variant, n.start)

		for _, c := range n.children {
			add(c)
		}

		b.Close(n.end)
	}
	add(0)

	return b.Tree()
}
