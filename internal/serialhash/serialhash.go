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

// Package serialhash computes the default serialization identifier of a type declaration.
//
// The identifier is the one the platform derives when a serializable class declares none:
// a SHA-1 digest over the class name, modifiers, interfaces and non-private members, folded
// into 64 bits. Adding it to a class as an explicit constant keeps serialized instances
// compatible across compatible changes of the class.
package serialhash

import (
	"cmp"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"fortio.org/safecast"
)

var (
	// ErrNotAType is returned for declarations that do not declare a class.
	ErrNotAType = errors.New("not a type declaration")

	// ErrStringTooLong is returned when a name or signature exceeds the encodable length.
	ErrStringTooLong = errors.New("string too long")
)

// Member is a field, constructor or method in the form it contributes to the identifier.
type Member struct {
	Name      string
	Modifiers int32
	Signature string
}

// Shape is everything the identifier depends on.
type Shape struct {
	Name         string
	Modifiers    int32
	Interfaces   []string // Sorted, unresolved names last
	Fields       []Member
	StaticInit   bool
	Constructors []Member
	Methods      []Member
}

// Hash computes the identifier of the shape. Member order does not matter.
func (s Shape) Hash() (int64, error) {
	var enc encoder

	enc.writeUTF(s.Name)
	enc.writeInt(s.Modifiers)

	for _, i := range s.Interfaces {
		enc.writeUTF(i)
	}

	for _, f := range sorted(s.Fields, byName) {
		enc.writeUTF(f.Name)
		enc.writeInt(f.Modifiers)
		enc.writeUTF(f.Signature)
	}

	if s.StaticInit {
		enc.writeUTF("<clinit>")
		enc.writeInt(staticMod)
		enc.writeUTF("()V")
	}

	for _, c := range sorted(s.Constructors, bySignature) {
		enc.writeUTF("<init>")
		enc.writeInt(c.Modifiers)
		enc.writeUTF(strings.ReplaceAll(c.Signature, "/", "."))
	}

	for _, m := range sorted(s.Methods, byNameAndSignature) {
		enc.writeUTF(m.Name)
		enc.writeInt(m.Modifiers)
		enc.writeUTF(strings.ReplaceAll(m.Signature, "/", "."))
	}

	if enc.err != nil {
		return 0, enc.err
	}

	sum := sha1.Sum(enc.buf)

	return int64(binary.LittleEndian.Uint64(sum[:8])), nil
}

func byName(a, b Member) int { return cmp.Compare(a.Name, b.Name) }

func bySignature(a, b Member) int { return cmp.Compare(a.Signature, b.Signature) }

func byNameAndSignature(a, b Member) int {
	return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Signature, b.Signature))
}

func sorted(members []Member, order func(a, b Member) int) []Member {
	s := slices.Clone(members)
	slices.SortStableFunc(s, order)

	return s
}

// encoder produces the big-endian, length-prefixed data stream the digest is computed over.
type encoder struct {
	buf []byte
	err error
}

func (e *encoder) writeInt(v int32) {
	e.buf = binary.BigEndian.AppendUint32(e.buf, uint32(v))
}

// writeUTF writes s in modified UTF-8 with a 16-bit length prefix.
func (e *encoder) writeUTF(s string) {
	if e.err != nil {
		return
	}

	enc := appendModifiedUTF8(nil, s)

	n, err := safecast.Conv[uint16](len(enc))
	if err != nil {
		e.err = fmt.Errorf("%w: %d encoded bytes in %.20q...", ErrStringTooLong, len(enc), s)

		return
	}

	e.buf = binary.BigEndian.AppendUint16(e.buf, n)
	e.buf = append(e.buf, enc...)
}

// appendModifiedUTF8 encodes NUL in two bytes and supplementary characters as surrogate pairs.
func appendModifiedUTF8(b []byte, s string) []byte {
	for _, r := range s {
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			b = appendUnit(b, hi)
			b = appendUnit(b, lo)

			continue
		}

		b = appendUnit(b, r)
	}

	return b
}

func appendUnit(b []byte, c rune) []byte {
	switch {
	case c >= 0x01 && c <= 0x7F:
		return append(b, byte(c))

	case c <= 0x7FF:
		return append(b, byte(0xC0|c>>6), byte(0x80|c&0x3F))

	default:
		return append(b, byte(0xE0|c>>12), byte(0x80|c>>6&0x3F), byte(0x80|c&0x3F))
	}
}
