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

	"github.com/spf13/cobra"

	"fillmore-labs.com/syncguard/internal/serialhash"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

func newUIDCmd(g *globals) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "uid <file>",
		Short: "Print the default serialVersionUID of the types in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUID(cmd, g, args[0], typeName)
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "only the type with this simple or binary name")

	return cmd
}

func runUID(cmd *cobra.Command, g *globals, path, typeName string) error {
	t, err := load(cmd.Context(), path)
	if err != nil {
		return err
	}

	r := symbol.NewIndex(t)

	var found bool

	for c := range t.Root().Preorder(tree.ClassDecl, tree.InterfaceDecl, tree.EnumDecl, tree.RecordDecl) {
		name, ok := r.BinaryName(c)
		if !ok || typeName != "" && typeName != string(name) && typeName != c.Name() {
			continue
		}

		found = true

		uid, err := serialhash.Compute(r, c)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		fmt.Fprintf(g.stdout, "%s: %dL\n", name, uid)
	}

	if !found {
		if typeName != "" {
			return fmt.Errorf("%s: no type %q", path, typeName)
		}

		return fmt.Errorf("%s: no types", path)
	}

	return nil
}
