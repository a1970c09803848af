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

// Package run implements the per-tree analysis pipeline.
package run

import (
	"context"
	"log/slog"
	"runtime/trace"

	"fillmore-labs.com/syncguard/internal/config"
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/suppress"
	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
	"fillmore-labs.com/syncguard/internal/walk"
)

// Options represent the configuration of a batch of runs.
type Options struct {
	// Table holds the enabled rules with their configuration.
	Table *rule.Table

	// Behavior holds engine-wide behavioral options.
	Behavior config.BitMask[config.Behavior]

	// Logger receives rule failures.
	Logger *slog.Logger
}

// Result is the outcome of analyzing one tree.
type Result struct {
	Tree     *tree.Tree
	Resolver *symbol.Index
	Findings []finding.Finding
	Failures int  // Number of failed rule invocations
	Skipped  bool // Generated source, not analyzed
}

// Run analyzes one tree.
//
// The tree must not be modified by other goroutines while the run is in progress.
func (o *Options) Run(ctx context.Context, t *tree.Tree) *Result {
	ctx, task := trace.NewTask(ctx, "SyncGuard")
	defer task.End()

	trace.Log(ctx, "file", t.Name())

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	res := &Result{Tree: t, Resolver: symbol.NewIndex(t)}

	// Skip generated sources
	if !o.Behavior.Enabled(config.IncludeGenerated) && suppress.IsGenerated(t) {
		logger.LogAttrs(ctx, slog.LevelDebug, "Skipping generated source", slog.String("file", t.Name()))
		res.Skipped = true

		return res
	}

	var filter walk.Filter
	if o.Behavior.Enabled(config.HonorSuppressions) {
		filter = suppress.New(t)
	}

	r := walk.Walk(ctx, t, res.Resolver, o.Table, walk.Options{
		Logger: logger,
		Filter: filter,
		Fixes:  o.Behavior.Enabled(config.ComputeFixes),
	})

	res.Findings, res.Failures = r.Findings, r.Failures

	return res
}
