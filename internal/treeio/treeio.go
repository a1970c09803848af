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

// Package treeio reads and writes trees in a compact interchange format, so parsers running
// in another process can supply trees to the engine.
//
// A document holds the source text and the nodes in pre-order, each with the number of its
// direct children. Kinds are stored by name, so documents survive reordering of the kinds.
package treeio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"fillmore-labs.com/syncguard/internal/tree"
)

// Ext is the conventional file name extension of tree documents.
const Ext = ".jtree"

// Current schema version - increment when the document format changes.
const schemaVersion uint16 = 1

var (
	// ErrSchema is returned for documents written with an unsupported schema version.
	ErrSchema = errors.New("unsupported schema version")

	// ErrMalformed is returned for documents that do not describe a tree.
	ErrMalformed = errors.New("malformed tree document")
)

// Document is the serialized form of a tree.
type Document struct {
	Schema uint16
	Name   string
	Source []byte
	Nodes  []Node
}

// Node is a serialized node.
type Node struct {
	_msgpack struct{} `msgpack:",as_array"`

	Kind     string
	Role     uint8
	Variant  uint8
	Start    uint32
	End      uint32
	Children uint32
}

var kindByName = func() map[string]tree.Kind {
	m := make(map[string]tree.Kind, tree.NumKinds)
	for k := range tree.NumKinds {
		m[tree.Kind(k).String()] = tree.Kind(k)
	}

	return m
}()

// NewDocument serializes a tree.
func NewDocument(t *tree.Tree) (*Document, error) {
	doc := &Document{Schema: schemaVersion, Name: t.Name(), Source: t.Source(), Nodes: make([]Node, 0, t.NumNodes())}

	var add func(c tree.Cursor) error
	add = func(c tree.Cursor) error {
		start, err := safecast.Conv[uint32](c.Start())
		if err != nil {
			return err
		}

		end, err := safecast.Conv[uint32](c.End())
		if err != nil {
			return err
		}

		children, err := safecast.Conv[uint32](c.NumChildren())
		if err != nil {
			return err
		}

		doc.Nodes = append(doc.Nodes, Node{
			Kind:     c.Kind().String(),
			Role:     uint8(c.Role()),
			Variant:  c.Variant(),
			Start:    start,
			End:      end,
			Children: children,
		})

		for child := range c.Children() {
			if err := add(child); err != nil {
				return err
			}
		}

		return nil
	}

	if err := add(t.Root()); err != nil {
		return nil, fmt.Errorf("serialize %s: %w", t.Name(), err)
	}

	return doc, nil
}

// Tree reconstructs the tree of a document.
func (d *Document) Tree() (*tree.Tree, error) {
	if d.Schema != schemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchema, d.Schema)
	}

	b := tree.NewBuilder(d.Name, d.Source)

	var (
		pos   int
		build func() error
	)

	build = func() error {
		if pos >= len(d.Nodes) {
			return fmt.Errorf("%w: missing node %d", ErrMalformed, pos)
		}

		n := d.Nodes[pos]
		pos++

		kind, ok := kindByName[n.Kind]
		if !ok {
			return fmt.Errorf("%w: unknown kind %q", ErrMalformed, n.Kind)
		}

		start, err := safecast.Conv[int](n.Start)
		if err != nil {
			return err
		}

		end, err := safecast.Conv[int](n.End)
		if err != nil {
			return err
		}

		b.Open(kind, tree.Role(n.Role), n.Variant, start)

		for range n.Children {
			if err := build(); err != nil {
				return err
			}
		}

		b.Close(end)

		return nil
	}

	if err := build(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.Name, err)
	}

	if pos != len(d.Nodes) {
		return nil, fmt.Errorf("decode %s: %w: %d trailing nodes", d.Name, ErrMalformed, len(d.Nodes)-pos)
	}

	t, err := b.Tree()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", d.Name, ErrMalformed, err)
	}

	return t, nil
}

// Encode writes t to w.
func Encode(w io.Writer, t *tree.Tree) error {
	doc, err := NewDocument(t)
	if err != nil {
		return err
	}

	return msgpack.NewEncoder(w).Encode(doc)
}

// Decode reads a tree from r.
func Decode(r io.Reader) (*tree.Tree, error) {
	var doc Document
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return doc.Tree()
}

// WriteFile writes t to the named file, replacing it atomically.
func WriteFile(name string, t *tree.Tree) (err error) {
	f, err := os.CreateTemp(filepath.Dir(name), ".tmp-*"+Ext)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := Encode(f, t); err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), name)
}

// ReadFile reads a tree from the named file.
func ReadFile(name string) (*tree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
