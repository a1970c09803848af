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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fillmore-labs.com/syncguard/analyzer"
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/tree"
)

type fixFlags struct {
	rules  []string
	dryRun bool
}

func newFixCmd(g *globals) *cobra.Command {
	var f fixFlags

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply quick fixes to Java sources",
		Long:  "Analyze the sources and apply the available quick fixes in place. Fixes invalidated by earlier ones are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, g, f, args)
		},
	}

	cmd.Flags().StringSliceVar(&f.rules, "rule", nil, "only apply fixes of these rules")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "print the fixed sources instead of writing them")

	return cmd
}

func runFix(cmd *cobra.Command, g *globals, f fixFlags, args []string) error {
	a, err := g.analyzer(cmd.Flags(), analyzer.WithFixes(true))
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	files, err := discover(args)
	if err != nil {
		return err
	}

	for _, path := range files {
		t, err := load(ctx, path)
		if err != nil {
			return err
		}

		res := a.Run(ctx, t)

		rep := a.ApplyFixes(ctx, res, f.rules...)
		if len(rep.Applied) == 0 && len(rep.Skipped) == 0 {
			continue
		}

		fmt.Fprintf(g.stderr, "%s: applied %d, skipped %d\n", path, len(rep.Applied), len(rep.Skipped))

		for _, s := range rep.Skipped {
			reason := "not applicable"
			if errors.Is(s.Err, finding.ErrStaleFix) || errors.Is(s.Err, tree.ErrDetachedNode) {
				reason = "stale"
			}

			fmt.Fprintf(g.stderr, "  %s: %s (%s)\n", s.Finding.Pos, s.Finding.FixTitle(), reason)
		}

		if len(rep.Applied) == 0 {
			continue
		}

		if f.dryRun {
			fmt.Fprintf(g.stdout, "--- %s\n%s", path, t.Source())

			continue
		}

		if err := save(path, t); err != nil {
			return err
		}
	}

	return nil
}
