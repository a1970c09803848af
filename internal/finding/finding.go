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

// Package finding defines what rules report and how quick fixes are described.
//
// A [Finding] anchors a parameterized message to a node. Its optional [FixDescriptor]
// captures node identities and strings only, so it can be evaluated long after the
// traversal that produced it, against whatever the tree looks like by then.
package finding

import (
	"errors"
	"fmt"
	"go/token"

	"fillmore-labs.com/syncguard/internal/symbol"
	"fillmore-labs.com/syncguard/internal/tree"
)

//go:generate go tool stringer -type Severity -linecomment

// Severity is the severity of a finding.
type Severity uint8

const (
	Warning Severity = iota // warning
	Error                   // error
)

// ParseSeverity parses "warning" or "error".
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	default:
		return Warning, fmt.Errorf("%w: %q", ErrUnknownSeverity, s)
	}
}

var (
	// ErrStaleFix is returned when the anchor of a fix was replaced by an earlier edit.
	ErrStaleFix = errors.New("stale fix")

	// ErrFixNotApplicable is returned when the preconditions of a fix no longer hold.
	ErrFixNotApplicable = errors.New("fix not applicable")

	// ErrNoFix is returned when a finding carries no fix.
	ErrNoFix = fmt.Errorf("%w: finding has no fix", ErrFixNotApplicable)

	// ErrUnknownSeverity is returned by [ParseSeverity].
	ErrUnknownSeverity = errors.New("unknown severity")
)

// NotApplicable returns an error wrapping [ErrFixNotApplicable].
func NotApplicable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFixNotApplicable, fmt.Sprintf(format, args...))
}

// Finding is a reported issue.
type Finding struct {
	Anchor   tree.NodeID
	Pos      token.Position // Position of the anchor at the time of reporting
	End      token.Position
	Rule     string
	Key      string
	Args     []string
	Severity Severity
	Fix      FixDescriptor
}

// FixTitle returns the title of the fix, or "" when there is none.
func (f Finding) FixTitle() string {
	if f.Fix == nil {
		return ""
	}

	return f.Fix.Title()
}

// FixDescriptor is a deferred, re-derivable recipe for a tree edit.
//
// Implementations hold node identities and strings, never cursors, and recompute the
// edit from the current state of the tree. Compute returns [ErrStaleFix] when a captured
// node is gone and [ErrFixNotApplicable] when its preconditions no longer hold.
type FixDescriptor interface {
	Title() string
	Compute(t *tree.Tree, r symbol.Resolver) (Edit, error)
}

// Edit replaces the subtree at Target with Replacement.
//
// Comments found inside the target that are not carried over by the replacement are
// re-attached around it: those starting before Gap immediately before the replacement,
// the others immediately after it.
type Edit struct {
	Target      tree.NodeID
	Replacement *tree.Fragment
	Gap         int // Absolute source offset

	// Comments are filled in by the fix engine.
	Comments []tree.NodeID
}

// NewEdit creates an edit replacing target, with the semantic gap at the end of the target.
func NewEdit(target tree.Cursor, replacement *tree.Fragment) Edit {
	return Edit{Target: target.ID(), Replacement: replacement, Gap: target.End()}
}

// WithGap sets the semantic gap and returns the edit.
func (e Edit) WithGap(gap int) Edit {
	e.Gap = gap

	return e
}
