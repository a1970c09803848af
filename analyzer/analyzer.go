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

package analyzer

import (
	"context"
	"log/slog"
	"slices"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"fillmore-labs.com/syncguard/internal/config"
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/fix"
	"fillmore-labs.com/syncguard/internal/report"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/rules"
	"fillmore-labs.com/syncguard/internal/run"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Public API constants for the syncguard analyzer.
const (
	Name = "syncguard"
	Doc  = `syncguard detects monitor and serialization pitfalls in Java sources`
	URL  = "https://pkg.go.dev/fillmore-labs.com/syncguard"
)

type (
	// Result is the outcome of analyzing one tree.
	Result = run.Result

	// FixReport summarizes a batch of applied fixes.
	FixReport = fix.Report

	// Diagnostic is a finding prepared for output.
	Diagnostic = report.Diagnostic
)

// Analyzer runs the rule library over trees.
type Analyzer struct {
	settings
	messages *finding.Messages
	flags    *pflag.FlagSet
}

type settings struct {
	registry *rule.Registry
	behavior config.BitMask[config.Behavior]
	logger   *slog.Logger
	language language.Tag
}

// New creates a new instance of the syncguard analyzer with all rules in their default configuration,
// modified by opts.
func New(opts ...Option) (*Analyzer, error) {
	registry, err := rules.NewRegistry()
	if err != nil {
		return nil, err
	}

	a := &Analyzer{settings: settings{
		registry: registry,
		behavior: config.NewBitMask(config.DefaultBehavior),
		logger:   slog.Default(),
		language: language.English,
	}}

	if err := Options(opts).apply(&a.settings); err != nil {
		return nil, err
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	if a.messages, err = rules.Messages(a.language, a.registry.Rules()...); err != nil {
		return nil, err
	}

	a.flags = pflag.NewFlagSet(Name, pflag.ContinueOnError)
	registerFlags(a.flags, &a.behavior)

	return a, nil
}

// Flags returns the behavior flags of the analyzer. Flags must be parsed before the first run.
func (a *Analyzer) Flags() *pflag.FlagSet { return a.flags }

// Rules returns the rules known to the analyzer in registration order.
func (a *Analyzer) Rules() []*rule.Rule { return a.registry.Rules() }

// Config returns the configuration of a rule.
func (a *Analyzer) Config(id string) (rule.Config, error) { return a.registry.Config(id) }

// Run analyzes one tree.
func (a *Analyzer) Run(ctx context.Context, t *tree.Tree) *Result {
	return a.options().Run(ctx, t)
}

// RunAll analyzes trees concurrently with at most jobs goroutines (unlimited when jobs <= 0).
//
// Results are returned in the order of trees. RunAll returns early with the context error
// when ctx is canceled.
func (a *Analyzer) RunAll(ctx context.Context, trees []*tree.Tree, jobs int) ([]*Result, error) {
	o := a.options()
	results := make([]*Result, len(trees))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, t := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = o.Run(ctx, t)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (a *Analyzer) options() *run.Options {
	return &run.Options{Table: a.registry.Table(), Behavior: a.behavior, Logger: a.logger}
}

// Render renders the message of a finding.
func (a *Analyzer) Render(f finding.Finding) string { return a.messages.Render(f) }

// Diagnostics converts the findings of a result into diagnostics with suggested fixes.
func (a *Analyzer) Diagnostics(ctx context.Context, res *Result) []Diagnostic {
	return report.Diagnostics(ctx, res.Tree, res.Resolver, a.messages, res.Findings)
}

// ApplyFix applies the fix of a single finding to the tree of res.
func (a *Analyzer) ApplyFix(ctx context.Context, res *Result, f finding.Finding) error {
	return fix.ApplyFix(ctx, res.Tree, res.Resolver, f)
}

// ApplyFixes applies the fixes of the findings of res in order, restricted to the given rules
// when ids is not empty. Fixes invalidated by earlier ones are skipped.
func (a *Analyzer) ApplyFixes(ctx context.Context, res *Result, ids ...string) FixReport {
	findings := res.Findings
	if len(ids) > 0 {
		findings = slices.DeleteFunc(slices.Clone(findings), func(f finding.Finding) bool {
			return !slices.Contains(ids, f.Rule)
		})
	}

	return fix.ApplyAll(ctx, res.Tree, res.Resolver, findings)
}
