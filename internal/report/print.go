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

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"fillmore-labs.com/syncguard/internal/finding"
)

// Printer writes diagnostics in a human-readable form.
type Printer struct {
	w       io.Writer
	warning *color.Color
	err     *color.Color
	pos     *color.Color
	fix     *color.Color
}

// NewPrinter creates a [Printer] writing to w, with colors if colored is set.
func NewPrinter(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:       w,
		warning: color.New(color.FgYellow, color.Bold),
		err:     color.New(color.FgRed, color.Bold),
		pos:     color.New(color.Bold),
		fix:     color.New(color.FgCyan),
	}

	for _, c := range []*color.Color{p.warning, p.err, p.pos, p.fix} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Print writes one line per diagnostic, followed by the title of its fix, if any.
func (p *Printer) Print(diagnostics []Diagnostic) error {
	for _, d := range diagnostics {
		sev := p.warning
		if d.Severity == finding.Error {
			sev = p.err
		}

		if _, err := fmt.Fprintf(p.w, "%s: %s: %s\n", p.pos.Sprint(d.Posn), sev.Sprint(d.Severity), d.Message); err != nil {
			return err
		}

		for _, f := range d.SuggestedFixes {
			if _, err := fmt.Fprintf(p.w, "\t%s\n", p.fix.Sprint("fix: "+f.Message)); err != nil {
				return err
			}
		}
	}

	return nil
}

// Entry is the JSON form of a diagnostic.
type Entry struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	EndLine  int    `json:"endLine"`
	EndCol   int    `json:"endColumn"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Fix      *Fix   `json:"fix,omitempty"`
}

// Fix is the JSON form of a suggested fix.
type Fix struct {
	Title   string `json:"title"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	NewText string `json:"newText"`
}

// WriteJSON writes diagnostics as an indented JSON array.
func WriteJSON(w io.Writer, diagnostics []Diagnostic) error {
	entries := make([]Entry, 0, len(diagnostics))

	for _, d := range diagnostics {
		e := Entry{
			File:     d.Posn.Filename,
			Line:     d.Posn.Line,
			Column:   d.Posn.Column,
			EndLine:  d.EndPosn.Line,
			EndCol:   d.EndPosn.Column,
			Rule:     d.Category,
			Severity: d.Severity.String(),
			Message:  d.Message,
		}

		if d.Edit != nil && len(d.SuggestedFixes) > 0 {
			e.Fix = &Fix{Title: d.SuggestedFixes[0].Message, Start: d.Edit.Start, End: d.Edit.End, NewText: d.Edit.NewText}
		}

		entries = append(entries, e)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	return enc.Encode(entries)
}
