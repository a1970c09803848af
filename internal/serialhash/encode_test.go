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

package serialhash

import (
	"bytes"
	"testing"
)

func TestModifiedUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"ascii", "Ab", []byte{'A', 'b'}},
		{"nul", "\x00", []byte{0xC0, 0x80}},
		{"two bytes", "é", []byte{0xC3, 0xA9}},
		{"three bytes", "€", []byte{0xE2, 0x82, 0xAC}},
		{"supplementary", "😀", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := appendModifiedUTF8(nil, tt.in); !bytes.Equal(got, tt.want) {
				t.Errorf("Got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestWriteUTFPrefix(t *testing.T) {
	t.Parallel()

	var e encoder
	e.writeUTF("é")
	e.writeInt(-1)

	want := []byte{0x00, 0x02, 0xC3, 0xA9, 0xFF, 0xFF, 0xFF, 0xFF}
	if e.err != nil || !bytes.Equal(e.buf, want) {
		t.Errorf("Got % x (%v), want % x", e.buf, e.err, want)
	}
}
