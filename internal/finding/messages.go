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

package finding

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Messages renders finding messages from per-rule message templates.
//
// Templates use fmt verbs with explicit argument indexes, like "Call to %[1]s() outside a loop".
// Missing templates render as the message key followed by the arguments. A Messages
// is safe for concurrent use.
type Messages struct {
	mu      sync.Mutex
	builder *catalog.Builder
	printer *message.Printer
	keys    map[string]bool
}

// NewMessages creates an empty message catalog for the given language.
func NewMessages(tag language.Tag) *Messages {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	return &Messages{builder: b, printer: message.NewPrinter(tag, message.Catalog(b)), keys: make(map[string]bool)}
}

// Add registers the message templates of a rule, keyed by message key.
func (m *Messages) Add(rule string, templates map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, tmpl := range templates {
		ck := catalogKey(rule, key)
		if err := m.builder.SetString(language.English, ck, tmpl); err != nil {
			return fmt.Errorf("message %s: %w", ck, err)
		}

		m.keys[ck] = true
	}

	return nil
}

// Render formats the message of a finding.
func (m *Messages) Render(f Finding) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := catalogKey(f.Rule, f.Key)
	if !m.keys[key] {
		if len(f.Args) == 0 {
			return f.Key
		}

		return f.Key + ": " + strings.Join(f.Args, ", ")
	}

	args := make([]any, len(f.Args))
	for i, a := range f.Args {
		args[i] = a
	}

	return m.printer.Sprintf(key, args...)
}

func catalogKey(rule, key string) string { return rule + "/" + key }
