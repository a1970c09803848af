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

package rules

import (
	"fillmore-labs.com/syncguard/internal/escape"
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
	"fillmore-labs.com/syncguard/internal/tree"
)

// Options of [SyncOnLocal].
const (
	ReportLocalVariables   = "reportLocalVariables"
	ReportMethodParameters = "reportMethodParameters"
)

// SyncOnLocal reports synchronization on locally bound variables and parameters.
// Each invocation sees its own instance, so the lock excludes no other thread.
func SyncOnLocal() *rule.Rule {
	return &rule.Rule{
		ID:       SyncOnLocalID,
		Doc:      "Synchronization on a local variable or method parameter",
		Kinds:    []tree.Kind{tree.Synchronized},
		Severity: finding.Warning,
		Messages: map[string]string{
			"local":     "Synchronization on local variable '%[1]s'",
			"parameter": "Synchronization on method parameter '%[1]s'",
		},
		Defaults: rule.Config{Flags: map[string]bool{
			ReportLocalVariables:   true,
			ReportMethodParameters: true,
		}},
		New: func(cfg rule.Config) rule.Visitor {
			locals, params := cfg.Flag(ReportLocalVariables), cfg.Flag(ReportMethodParameters)

			return func(p *rule.Pass, c tree.Cursor) error {
				lock, ok := lockOf(c)
				if !ok {
					return nil
				}

				switch escape.Analyze(p.Resolver, lock).Class {
				case escape.LocallyBound:
					if locals {
						p.Report(lock, "local", nil, lock.Text())
					}

				case escape.Parameter:
					if params {
						p.Report(lock, "parameter", nil, lock.Text())
					}

				default:
				}

				return nil
			}
		},
	}
}
