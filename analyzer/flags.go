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
	"github.com/spf13/pflag"

	"fillmore-labs.com/syncguard/internal/config"
)

// registerFlags binds the behavior bits to command line flags.
func registerFlags(flags *pflag.FlagSet, b *config.BitMask[config.Behavior]) {
	flags.Var(newBehaviorValue(b, config.IncludeGenerated), "generated", "check generated sources")
	flags.Var(newBehaviorValue(b, config.HonorSuppressions), "suppressions", "honor //noinspection comments and @SuppressWarnings")
	flags.Var(newBehaviorValue(b, config.ComputeFixes), "fixes", "compute quick fixes")

	for _, name := range []string{"generated", "suppressions", "fixes"} {
		flags.Lookup(name).NoOptDefVal = "true"
	}
}
