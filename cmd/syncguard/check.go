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

	"fillmore-labs.com/syncguard/internal/report"
)

type checkFlags struct {
	format string
	jobs   int
}

func newCheckCmd(g *globals) *cobra.Command {
	var f checkFlags

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report findings in Java sources",
		Long:  "Analyze .java files and tree documents, recursively for directories, and report findings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, g, f, args)
		},
	}

	cmd.Flags().StringVar(&f.format, "format", "text", "output format (text|json)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "number of files analyzed in parallel (0: unlimited)")

	return cmd
}

func runCheck(cmd *cobra.Command, g *globals, f checkFlags, args []string) error {
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("invalid --format value %q (text|json)", f.format)
	}

	colored, err := g.colored(g.stdout)
	if err != nil {
		return err
	}

	a, err := g.analyzer(cmd.Flags())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	files, err := discover(args)
	if err != nil {
		return err
	}

	trees, err := loadAll(ctx, files)
	if err != nil {
		return err
	}

	results, err := a.RunAll(ctx, trees, f.jobs)
	if err != nil {
		return err
	}

	var diagnostics []report.Diagnostic
	for _, res := range results {
		diagnostics = append(diagnostics, a.Diagnostics(ctx, res)...)
	}

	switch f.format {
	case "json":
		err = report.WriteJSON(g.stdout, diagnostics)
	default:
		err = report.NewPrinter(g.stdout, colored).Print(diagnostics)
	}

	if err != nil {
		return err
	}

	if len(diagnostics) > 0 {
		return errFindings
	}

	return nil
}
