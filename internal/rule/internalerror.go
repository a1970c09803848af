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

package rule

import (
	"fmt"
	"go/token"

	"fillmore-labs.com/syncguard/internal/tree"
)

// InternalError describes a rule that failed on a node.
// These errors indicate bugs in the rule rather than issues in the analyzed code.
type InternalError struct {
	Rule  string
	Kind  tree.Kind
	Pos   token.Position
	Cause error
}

func (e *InternalError) Error() string {
	msg := []byte("Internal Error: ")
	msg = fmt.Appendf(msg, "rule %s failed on %s at %s: %v", e.Rule, e.Kind, e.Pos, e.Cause)

	return string(msg)
}

func (e *InternalError) Unwrap() error { return e.Cause }

// PanicError is the cause of an [InternalError] raised by a panicking rule.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }
