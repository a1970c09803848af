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

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fillmore-labs.com/syncguard/internal/tree"
	"fillmore-labs.com/syncguard/internal/treeio"
)

func newDumpCmd(g *globals) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the syntax tree of a file or write it as a tree document",
		Long:  "Parse a Java file and print its syntax tree, or write it to a " + treeio.Ext + " document with --output.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output != "" {
				return treeio.WriteFile(output, t)
			}

			return dump(g.stdout, t)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write a tree document to this file")

	return cmd
}

const maxExcerpt = 40

// dump writes an indented outline of t, one node per line.
func dump(w io.Writer, t *tree.Tree) error {
	var err error

	t.Root().Inspect(func(c tree.Cursor) bool {
		if err != nil {
			return false
		}

		var b strings.Builder

		b.WriteString(strings.Repeat("  ", c.Depth()))
		b.WriteString(c.Kind().String())

		if c.Role() != tree.NoRole {
			b.WriteString(" (" + c.Role().String() + ")")
		}

		pos := t.Position(c.Start())
		fmt.Fprintf(&b, " %d:%d", pos.Line, pos.Column)

		if c.NumChildren() == 0 {
			b.WriteString(" " + excerpt(c.Text()))
		}

		b.WriteByte('\n')

		_, err = io.WriteString(w, b.String())

		return true
	})

	return err
}

func excerpt(text string) string {
	if len(text) > maxExcerpt {
		text = text[:maxExcerpt] + "..."
	}

	return strconv.Quote(text)
}
