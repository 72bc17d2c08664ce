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

package run_test

import (
	"slices"
	"testing"

	"fillmore-labs.com/dpguard/internal/config"
	"fillmore-labs.com/dpguard/internal/report"
	. "fillmore-labs.com/dpguard/internal/run"
	"fillmore-labs.com/dpguard/internal/testsource"
)

// members registers Bar under a backing field named Error.
const members = `        public static readonly DependencyProperty Error = DependencyProperty.Register(
            nameof(Bar), typeof(int), typeof(FooControl), new PropertyMetadata(default(int)));

        public int Bar
        {
            get => (int)this.GetValue(Error);
            set => this.SetValue(Error, value);
        }`

func ids(r *Result) []string {
	ids := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		ids = append(ids, f.ID)
	}

	return ids
}

func TestRun(t *testing.T) {
	t.Parallel()

	fset, files := testsource.Parse(t, testsource.Wrap(members))

	result, err := DefaultOptions().Run(t.Context(), fset, files)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := ids(result); !slices.Equal(got, []string{"WPF0001"}) {
		t.Fatalf("Expected [WPF0001], got %v", got)
	}

	f := result.Findings[0]
	if len(f.Fixes) != 1 || f.Fixes[0].Rename == nil {
		t.Fatalf("Expected a rename fix, got %+v", f.Fixes)
	}

	if d := f.Analysis(); len(d.SuggestedFixes) != 0 {
		t.Errorf("Expected unresolved rename to be omitted, got %d fixes", len(d.SuggestedFixes))
	}

	if len(f.Fixes[0].TextEdits) != 0 {
		t.Errorf("Expected unresolved rename without RenameSymbols, got %d edits", len(f.Fixes[0].TextEdits))
	}
}

func TestRunOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		modify func(o *Options)
		want   []string
	}{
		{"default", testsource.Wrap(members), func(*Options) {}, []string{"WPF0001"}},
		{"family disabled", testsource.Wrap(members), func(o *Options) { o.Families.Disable(config.NamingRules) }, []string{}},
		{"rule disabled", testsource.Wrap(members), func(o *Options) { o.Disabled = map[string]bool{"WPF0001": true} }, []string{}},
		{"suppressed", testsource.Wrap("#pragma warning disable WPF0001\n" + members), func(*Options) {}, []string{}},
		{"suppressed other", testsource.Wrap("#pragma warning disable WPF0002\n" + members), func(*Options) {}, []string{"WPF0001"}},
		{"generated", "// <auto-generated/>\n" + testsource.Wrap(members), func(*Options) {}, []string{}},
		{"generated included", "// <auto-generated/>\n" + testsource.Wrap(members), func(o *Options) { o.Behavior.Enable(config.IncludeGenerated) }, []string{"WPF0001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, files := testsource.Parse(t, tt.src)

			o := DefaultOptions()
			tt.modify(o)

			result, err := o.Run(t.Context(), fset, files)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got := ids(result); !slices.Equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRunSeverity(t *testing.T) {
	t.Parallel()

	fset, files := testsource.Parse(t, testsource.Wrap(members))

	o := DefaultOptions()
	o.Severities = map[string]report.Severity{"WPF0001": report.Error}

	result, err := o.Run(t.Context(), fset, files)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(result.Findings))
	}

	if got := result.Findings[0].Severity; got != report.Error {
		t.Errorf("Expected severity %v, got %v", report.Error, got)
	}
}

func TestRunRename(t *testing.T) {
	t.Parallel()

	fset, files := testsource.Parse(t, testsource.Wrap(members))

	o := DefaultOptions()
	o.Behavior.Enable(config.RenameSymbols)

	result, err := o.Run(t.Context(), fset, files)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Findings) != 1 || len(result.Findings[0].Fixes) != 1 {
		t.Fatalf("Expected 1 finding with a fix, got %+v", result.Findings)
	}

	// declaration, getter and setter
	if got := len(result.Findings[0].Fixes[0].TextEdits); got != 3 {
		t.Errorf("Expected 3 edits, got %d", got)
	}

	d := result.Findings[0].Analysis()
	if d.Category != "WPF0001" || len(d.SuggestedFixes) != 1 || len(d.SuggestedFixes[0].TextEdits) != 3 {
		t.Errorf("Expected WPF0001 analysis diagnostic with 3 edits, got %+v", d)
	}
}

func TestRunNoFixes(t *testing.T) {
	t.Parallel()

	fset, files := testsource.Parse(t, testsource.Wrap(members))

	o := DefaultOptions()
	o.Behavior.Disable(config.SuggestFixes)

	result, err := o.Run(t.Context(), fset, files)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, f := range result.Findings {
		if f.Fixes != nil {
			t.Errorf("Expected no fixes for %s", f.ID)
		}
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.Families = config.NewBitMask(config.DocumentationRules)

	for _, r := range o.Rules() {
		if r.Descriptor.Family != config.DocumentationRules {
			t.Errorf("Expected only documentation rules, got %s", r.Descriptor.ID)
		}
	}

	if got := len(o.Rules()); got != 3 {
		t.Errorf("Expected 3 documentation rules, got %d", got)
	}
}
