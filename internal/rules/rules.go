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

// Package rules contains the rule library.
//
// Every constructor returns a fresh record, so registries built from [All] do not share
// configuration or state.
package rules

import (
	"golang.org/x/text/language"

	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Rule IDs.
const (
	SyncOnLocalID         = "SynchronizationOnLocalVariableOrMethodParameter"
	SerialVersionUIDID    = "SerializableClassWithoutSerialVersionUID"
	NotifyID              = "NotifyNotNotifyAll"
	WaitNotInLoopID       = "WaitNotInLoop"
	SyncOnLiteralID       = "SynchronizationOnLiteralObject"
	SyncOnNonFinalFieldID = "SynchronizeOnNonFinalField"
	EmptySyncID           = "EmptySynchronizedStatement"
	MultipleTopLevelID    = "MultipleTopLevelClassesInFile"
)

// All returns the records of all rules in registration order.
func All() []*rule.Rule {
	return []*rule.Rule{
		SyncOnLocal(),
		SerialVersionUID(),
		NotifyNotNotifyAll(),
		WaitNotInLoop(),
		SyncOnLiteral(),
		SyncOnNonFinalField(),
		EmptySync(),
		MultipleTopLevel(),
	}
}

// NewRegistry creates a registry of all rules with their default configuration.
func NewRegistry() (*rule.Registry, error) {
	return rule.NewRegistry(All()...)
}

// Messages creates a message catalog with the templates of rules.
func Messages(tag language.Tag, rules ...*rule.Rule) (*finding.Messages, error) {
	m := finding.NewMessages(tag)

	for _, r := range rules {
		if err := m.Add(r.ID, r.Messages); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// lockOf returns the lock expression of a synchronized statement, without parentheses.
func lockOf(sync tree.Cursor) (tree.Cursor, bool) {
	lock, ok := sync.Field(tree.RoleLock)
	if !ok {
		return tree.Cursor{}, false
	}

	return lock.Unparen(), true
}

// callName returns the name node of a method call.
func callName(call tree.Cursor) (tree.Cursor, bool) {
	name, ok := call.Field(tree.RoleName)
	if !ok || name.Kind() != tree.Ident {
		return tree.Cursor{}, false
	}

	return name, true
}

func argCount(call tree.Cursor) int {
	args, ok := call.Field(tree.RoleArgs)
	if !ok {
		return 0
	}

	var n int
	for a := range args.Children() {
		if a.Kind() != tree.Comment {
			n++
		}
	}

	return n
}

// isMonitorCall reports whether call invokes the named method of the object monitor
// with an argument count in [minArgs, maxArgs].
func isMonitorCall(call tree.Cursor, name string, minArgs, maxArgs int) bool {
	n, ok := callName(call)
	if !ok || n.Text() != name {
		return false
	}

	args := argCount(call)

	return args >= minArgs && args <= maxArgs
}

// nameOrSelf returns the name node of a declaration for anchoring, or the node itself.
func nameOrSelf(c tree.Cursor) tree.Cursor {
	if n, ok := c.Field(tree.RoleName); ok {
		return n
	}

	return c
}
