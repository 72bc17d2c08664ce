// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package fix synthesizes source edits for the diagnostics of the convention rules and
// applies them.
//
// A synthesizer reads the properties of a diagnostic and the syntax at its span. Diagnostics
// lacking the properties a synthesizer needs produce no fix. Applying a fix yields source
// the rule no longer reports, so applying the fixes of a re-analysis is a no-op.
package fix

import (
	"context"
	"errors"
	"fmt"
	"go/token"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// ErrSynthesis is returned when a synthesizer fails on an unexpected syntax shape.
var ErrSynthesis = errors.New("fix synthesis failed")

// Fix is a set of edits resolving one diagnostic.
type Fix struct {
	Title     string
	IDs       []string // rule ids the fix applies to
	TextEdits []analysis.TextEdit

	// Rename is a request to rename a symbol at all its uses, resolved by a [Renamer].
	Rename *Rename
}

// Rename requests renaming Symbol to To.
type Rename struct {
	Symbol semantic.Symbol
	To     string
}

// SuggestedFix converts f into the analysis framework's shape.
func (f Fix) SuggestedFix() analysis.SuggestedFix {
	return analysis.SuggestedFix{Message: f.Title, TextEdits: f.TextEdits}
}

// site is the diagnostic being fixed together with the syntax at its span.
type site struct {
	ctx   context.Context
	comp  *semantic.Compilation
	known *known.Symbols
	diag  report.Diagnostic
	file  *syntax.File
	node  syntax.Node // nil when the span is not a syntax node, like a doc comment
}

type synthesizer func(s *site) []Fix

var synthesizers = map[string]synthesizer{
	report.WPF0001.ID: renameFix,
	report.WPF0002.ID: renameFix,
	report.WPF0003.ID: renameFix,
	report.WPF0004.ID: renameFix,
	report.WPF0005.ID: renameFix,
	report.WPF0006.ID: renameFix,
	report.WPF0007.ID: renameFix,
	report.WPF0011.ID: typeFix,
	report.WPF0012.ID: propertyTypeFix,
	report.WPF0013.ID: methodTypeFix,
	report.WPF0015.ID: replacementFix,
	report.WPF0019.ID: typeFix,
	report.WPF0020.ID: typeFix,
	report.WPF0023.ID: lambdaFix,
	report.WPF0030.ID: modifiersFix,
	report.WPF0031.ID: moveKeyFix,
	report.WPF0033.ID: browsableFix,
	report.WPF0034.ID: typeFix,
	report.WPF0035.ID: replacementFix,
	report.WPF0040.ID: handleFix,
	report.WPF0041.ID: replacementFix,
	report.WPF0043.ID: replacementFix,
	report.WPF0060.ID: summaryFix,
	report.WPF0061.ID: docFix,
	report.WPF0062.ID: summaryFix,
	report.WPF0150.ID: replacementFix,
}

// Fixable reports whether fixes exist for the rule id.
func Fixable(id string) bool {
	_, ok := synthesizers[id]

	return ok
}

// Synthesize returns the fixes for d. A panic in a synthesizer is recovered and returned as
// [ErrSynthesis].
func Synthesize(ctx context.Context, c *semantic.Compilation, k *known.Symbols, d report.Diagnostic) (fixes []Fix, err error) {
	synth, ok := synthesizers[d.ID]
	if !ok {
		return nil, nil
	}

	file := fileAt(c.Files, d.Pos)
	if file == nil {
		return nil, nil
	}

	defer func() {
		if v := recover(); v != nil {
			fixes, err = nil, fmt.Errorf("%w for %s: %v", ErrSynthesis, d.ID, v)
		}
	}()

	s := &site{ctx: ctx, comp: c, known: k, diag: d, file: file, node: syntax.NodeAt(file, d.Pos, d.End)}

	fixes = synth(s)
	for i := range fixes {
		fixes[i].IDs = []string{d.ID}
	}

	return fixes, nil
}

// fileAt returns the file containing pos.
func fileAt(files []*syntax.File, pos token.Pos) *syntax.File {
	for _, f := range files {
		if f.Pos() <= pos && pos <= f.End() {
			return f
		}
	}

	return nil
}

func (s *site) property(key string) (string, bool) { return s.diag.Property(key) }

func (s *site) text(n syntax.Span) string { return s.file.Text(n) }

func replace(n syntax.Span, text string) analysis.TextEdit {
	return analysis.TextEdit{Pos: n.Pos(), End: n.End(), NewText: []byte(text)}
}

func insert(pos token.Pos, text string) analysis.TextEdit {
	return analysis.TextEdit{Pos: pos, End: pos, NewText: []byte(text)}
}

func single(title string, edits ...analysis.TextEdit) []Fix {
	return []Fix{{Title: title, TextEdits: edits}}
}
