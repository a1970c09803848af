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
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fillmore-labs.com/syncguard/internal/rule"
)

func newRulesCmd(g *globals) *cobra.Command {
	var docs bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules with their effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.analyzer(cmd.Flags())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(g.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RULE\tSEVERITY\tENABLED\tOPTIONS")

			for _, r := range a.Rules() {
				cfg, err := a.Config(r.ID)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", r.ID, cfg.Severity, cfg.Enabled, options(cfg))

				if docs {
					fmt.Fprintf(w, "  %s\t\t\t\n", r.Doc)
				}
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&docs, "docs", "d", false, "include rule descriptions")

	return cmd
}

// options formats the options of a rule configuration in name order.
func options(cfg rule.Config) string {
	var opts []string

	for _, name := range slices.Sorted(maps.Keys(cfg.Flags)) {
		opts = append(opts, name+"="+strconv.FormatBool(cfg.Flags[name]))
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.Lists)) {
		opts = append(opts, name+"=["+strings.Join(cfg.Lists[name], ",")+"]")
	}

	if len(opts) == 0 {
		return "-"
	}

	return strings.Join(opts, " ")
}
