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

package suppress

import (
	"regexp"
	"strings"

	"fillmore-labs.com/syncguard/internal/tree"
)

// generatedAnnotations are the annotations marking generated types.
var generatedAnnotations = []string{
	"javax.annotation.Generated",
	"javax.annotation.processing.Generated",
	"jakarta.annotation.Generated",
}

var generatedHeader = regexp.MustCompile(`^(Code generated .* DO NOT EDIT\.|Generated\b)`)

// IsGenerated reports whether t is generated code: it starts with a generated-code header comment,
// or a top-level type carries a @Generated annotation.
func IsGenerated(t *tree.Tree) bool {
	header := true

	for c := range t.Root().Children() {
		if c.Kind() == tree.Comment {
			if header && generatedHeader.MatchString(commentText(c)) {
				return true
			}

			continue
		}

		header = false

		if !c.Kind().IsType() {
			continue
		}

		for a := range c.Annotations() {
			for _, g := range generatedAnnotations {
				if isAnnotation(a, g) {
					return true
				}
			}
		}
	}

	return false
}

// commentText strips the comment markers and leading decoration.
func commentText(c tree.Cursor) string {
	text := c.Text()

	switch c.Variant() {
	case tree.LineComment:
		text = strings.TrimPrefix(text, "//")
	default:
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	}

	return strings.TrimLeft(text, " \t\r\n*")
}
