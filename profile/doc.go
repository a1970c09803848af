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

/*
Package profile loads rule profiles for the [syncguard] analyzer.

# Format

A profile is a TOML file with an optional [behavior] table and one table per configured rule:

	[behavior]
	generated = false
	suppressions = true

	[rules.NotifyNotNotifyAll]
	severity = "error"

	[rules.SerializableClassWithoutSerialVersionUID]
	enabled = true

	[rules.SerializableClassWithoutSerialVersionUID.options]
	ignoreAnonymousInnerClasses = true
	superClassList = ["java.lang.Throwable"]

Boolean options set rule flags, arrays of strings set rule lists. Unknown keys are rejected.

[syncguard]: https://pkg.go.dev/fillmore-labs.com/syncguard/analyzer
*/
package profile
