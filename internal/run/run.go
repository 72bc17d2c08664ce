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

// Package run implements the dpguard pipeline: binding, rule dispatch, suppression and fix
// synthesis.
package run

import (
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/dpguard/internal/astutil"
	"fillmore-labs.com/dpguard/internal/config"
	"fillmore-labs.com/dpguard/internal/dispatch"
	"fillmore-labs.com/dpguard/internal/fix"
	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// Finding is a reported diagnostic with its fixes.
type Finding struct {
	report.Diagnostic

	Fixes []fix.Fix
}

// Analysis converts the finding into the analysis framework's diagnostic shape. Fixes
// without edits are omitted.
func (f Finding) Analysis() analysis.Diagnostic {
	var fixes []analysis.SuggestedFix

	for _, fx := range f.Fixes {
		if len(fx.TextEdits) > 0 {
			fixes = append(fixes, analysis.SuggestedFix{Message: fx.Title, TextEdits: fx.TextEdits})
		}
	}

	return f.Diagnostic.Analysis(fixes...)
}

// Result is the outcome of a run.
type Result struct {
	Compilation *semantic.Compilation
	Findings    []Finding
}

// Run executes the dpguard pipeline on files.
func (r *Options) Run(ctx context.Context, fset *token.FileSet, files []*syntax.File) (*Result, error) {
	ctx, task := trace.NewTask(ctx, "DPGuard")
	defer task.End()

	trace.Logf(ctx, "files", "%d", len(files))

	// Stage 1: bind all files together with the reference declarations
	c, err := semantic.Check(ctx, fset, files)
	if err != nil {
		return nil, fmt.Errorf("dpguard: %w", err)
	}

	k := known.NewTable(c).Symbols()

	// Remember per file information for skipping and suppression
	current := make(map[*syntax.File]astutil.CurrentFile, len(files))

	var internal []report.Diagnostic

	for _, f := range files {
		cf := astutil.NewCurrentFile(fset, f)
		if !cf.Valid() {
			internal = append(internal, astutil.InternalError(f, f.Name, "file without valid info"))

			continue
		}

		current[f] = cf
	}

	skip := func(f *syntax.File) bool {
		cf, ok := current[f]

		return !ok || cf.Generated() && !r.Behavior.Enabled(config.IncludeGenerated)
	}

	// Stage 2: evaluate the enabled rules
	reg := dispatch.NewRegistry(r.Rules()...)

	diags, err := reg.Run(ctx, c, k, dispatch.Options{Workers: r.Workers, Skip: skip})
	if err != nil {
		return nil, err
	}

	diags = append(internal, diags...)
	report.Sort(diags)

	// Stage 3: drop suppressed diagnostics and synthesize fixes
	result := &Result{Compilation: c, Findings: make([]Finding, 0, len(diags))}

	var renamer *fix.Renamer
	if r.Behavior.Enabled(config.RenameSymbols) {
		renamer = fix.NewRenamer(c)
	}

	for _, d := range diags {
		f := fileOf(c, d.Pos)
		if cf, ok := current[f]; ok && cf.Suppressed(d.ID, d.Pos) {
			continue
		}

		if sev, ok := r.Severities[d.ID]; ok {
			d.Severity = sev
		}

		finding := Finding{Diagnostic: d}

		if r.Behavior.Enabled(config.SuggestFixes) {
			finding.Fixes = r.fixes(ctx, c, k, renamer, d)
		}

		result.Findings = append(result.Findings, finding)
	}

	slog.DebugContext(ctx, "analysis complete",
		slog.Int("files", len(files)),
		slog.Int("rules", reg.Len()),
		slog.Any("families", r.Families.Value()),
		slog.Any("behavior", r.Behavior.Value()),
		slog.Int("findings", len(result.Findings)))

	return result, nil
}

// fixes synthesizes the fixes for d, resolving renames when renamer is not nil. Failures are
// logged and drop the fix.
func (r *Options) fixes(ctx context.Context, c *semantic.Compilation, k *known.Symbols, renamer *fix.Renamer, d report.Diagnostic) []fix.Fix {
	fixes, err := fix.Synthesize(ctx, c, k, d)
	if err != nil {
		slog.WarnContext(ctx, "fix synthesis failed", slog.String("rule", d.ID), slog.Any("error", err))

		return nil
	}

	if renamer == nil {
		return fixes
	}

	resolved := fixes[:0]

	for _, f := range fixes {
		f, err := renamer.Resolve(f)
		if err != nil {
			slog.DebugContext(ctx, "rename skipped", slog.String("rule", d.ID), slog.Any("error", err))

			continue
		}

		resolved = append(resolved, f)
	}

	return resolved
}

func fileOf(c *semantic.Compilation, pos token.Pos) *syntax.File {
	for _, f := range c.Files {
		if f.Pos() <= pos && pos <= f.End() {
			return f
		}
	}

	return nil
}
