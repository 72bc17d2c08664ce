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

package analyzer

import (
	"context"
	"go/token"

	"fillmore-labs.com/dpguard/internal/fix"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/run"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// Public API constants for the dpguard analyzer.
const (
	Name = "dpguard"
	Doc  = `dpguard checks WPF dependency property declarations and usages in C# sources`
	URL  = "https://pkg.go.dev/fillmore-labs.com/dpguard"
)

type (
	// File is a parsed C# source file.
	File = syntax.File

	// Descriptor describes a rule.
	Descriptor = report.Descriptor

	// Severity is the reporting level of a diagnostic.
	Severity = report.Severity

	// Finding is a diagnostic with its suggested fixes.
	Finding = run.Finding

	// Result holds the findings of one compilation.
	Result = run.Result

	// FixResult is the outcome of applying fixes.
	FixResult = fix.Result
)

// Severities.
const (
	SeverityHidden  = report.Hidden
	SeverityInfo    = report.Info
	SeverityWarning = report.Warning
	SeverityError   = report.Error
)

// ErrUnknownSeverity is returned by [ParseSeverity] for unrecognized names.
var ErrUnknownSeverity = report.ErrUnknownSeverity

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(s string) (Severity, error) { return report.ParseSeverity(s) }

// Catalogue returns the descriptors of all rules ordered by id.
func Catalogue() []*Descriptor { return report.Catalogue() }

// Lookup returns the descriptor of the rule id, ignoring case.
func Lookup(id string) (*Descriptor, bool) { return report.Lookup(id) }

// Analyzer checks C# sources for violations of the dependency property conventions.
type Analyzer struct {
	opts *run.Options
}

// New creates a new instance of the dpguard analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools.
func New(opts ...Option) *Analyzer {
	return &Analyzer{opts: makeRunOptions(opts)}
}

// Check analyzes files as one compilation.
func (a *Analyzer) Check(ctx context.Context, fset *token.FileSet, files []*File) (*Result, error) {
	return a.opts.Run(ctx, fset, files)
}

// CheckSources analyzes loaded sources.
func (a *Analyzer) CheckSources(ctx context.Context, s *Sources) (*Result, error) {
	return a.Check(ctx, s.Fset, s.Files)
}

// Rules returns the descriptors of the enabled rules.
func (a *Analyzer) Rules() []*Descriptor {
	rules := a.opts.Rules()

	ds := make([]*Descriptor, 0, len(rules))
	for _, r := range rules {
		ds = append(ds, r.Descriptor)
	}

	return ds
}

// Fix applies the non-conflicting fixes of all findings in result.
func Fix(result *Result) (*FixResult, error) {
	var fixes []fix.Fix
	for _, f := range result.Findings {
		fixes = append(fixes, f.Fixes...)
	}

	return fix.Apply(result.Compilation.Files, fixes)
}

// Diff renders the fixes applied to f as a unified diff.
func Diff(f *File, fixed *FixResult) ([]byte, error) {
	return fix.UnifiedDiff(f, fixed.Edits[f], fixed.Files[f])
}
