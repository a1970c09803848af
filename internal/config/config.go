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

package config

// Behavior represents engine-wide behavioral options.
type Behavior uint8

const (
	// HonorSuppressions drops findings suppressed by //noinspection comments or @SuppressWarnings annotations.
	HonorSuppressions Behavior = 1 << iota

	// IncludeGenerated specifies whether to include analysis of generated sources.
	IncludeGenerated

	// ComputeFixes attaches quick-fix descriptors to findings.
	ComputeFixes
)

// DefaultBehavior is the behavior of a freshly configured engine.
const DefaultBehavior = HonorSuppressions | ComputeFixes
