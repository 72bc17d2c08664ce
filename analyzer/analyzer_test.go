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

package analyzer_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/dpguard/analyzer"
	"fillmore-labs.com/dpguard/analyzer/level"
)

const testdata = "testdata"

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options Option
		want    []string
	}{
		{
			name: "Default",
			want: []string{"WPF0001", "WPF0150"},
		},
		{
			name:    "Generated",
			options: WithGenerated(true),
			want:    []string{"WPF0001", "WPF0001", "WPF0150"},
		},
		{
			name:    "NoNaming",
			options: WithNaming(false),
			want:    []string{"WPF0150"},
		},
		{
			name:    "Disabled",
			options: Options{WithDisabled("WPF0150"), WithGenerated(false)},
			want:    []string{"WPF0001"},
		},
		{
			name:    "Reenabled",
			options: Options{WithDisabled("WPF0001", "WPF0150"), WithEnabled("wpf0150")},
			want:    []string{"WPF0150"},
		},
		{
			name:    "Nil",
			options: Options{nil, WithWorkers(1)},
			want:    []string{"WPF0001", "WPF0150"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Load(t.Context(), testdata)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			result, err := New(tt.options).CheckSources(t.Context(), src)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}

			got := make([]string, 0, len(result.Findings))
			for _, f := range result.Findings {
				got = append(got, f.ID)
			}

			slices.Sort(got)

			if !slices.Equal(got, tt.want) {
				t.Errorf("Expected findings %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSeverity(t *testing.T) {
	t.Parallel()

	src, err := Load(t.Context(), testdata)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	result, err := New(WithSeverity("WPF0150", SeverityError)).CheckSources(t.Context(), src)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	for _, f := range result.Findings {
		if f.ID == "WPF0150" && f.Severity != SeverityError {
			t.Errorf("Expected severity %v, got %v", SeverityError, f.Severity)
		}
	}
}

func TestFix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fixes   level.Fixes
		applied int
		want    []string
		notWant []string
	}{
		{
			name:    "Suggest",
			fixes:   level.FixesSuggest,
			applied: 1,
			want:    []string{"nameof(Baz)", "DependencyProperty Error ="},
		},
		{
			name:    "Rename",
			fixes:   level.FixesRename,
			applied: 2,
			want:    []string{"nameof(Baz)", "DependencyProperty BarProperty =", "this.GetValue(BarProperty)"},
			notWant: []string{"Error"},
		},
		{
			name:    "Off",
			fixes:   level.FixesOff,
			applied: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Load(t.Context(), filepath.Join(testdata, "controls", "FooControl.cs"))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			result, err := New(WithFixes(tt.fixes)).CheckSources(t.Context(), src)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}

			fixed, err := Fix(result)
			if err != nil {
				t.Fatalf("Fix failed: %v", err)
			}

			if got := len(fixed.Applied); got != tt.applied {
				t.Errorf("Expected %d applied fixes, got %d", tt.applied, got)
			}

			out := string(fixed.Files[src.Files[0]])
			if tt.applied == 0 {
				if out != "" {
					t.Errorf("Expected unchanged file, got %q", out)
				}

				return
			}

			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("Expected fixed source to contain %q", w)
				}
			}

			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("Expected fixed source not to contain %q", w)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	src, err := Load(t.Context(), testdata, filepath.Join(testdata, "controls", "FooControl.cs"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var got []string
	for _, f := range src.Files {
		got = append(got, filepath.Base(f.Name))
	}

	if want := []string{"FooControl.cs", "GenControl.g.cs"}; !slices.Equal(got, want) {
		t.Errorf("Expected files %v, got %v", want, got)
	}

	if len(src.Errors) != 0 {
		t.Errorf("Expected no syntax errors, got %v", src.Errors)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Load(t.Context(), dir); !errors.Is(err, ErrNoSources) {
		t.Errorf("Expected %v, got %v", ErrNoSources, err)
	}

	if _, err := Load(t.Context(), filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected %v, got %v", os.ErrNotExist, err)
	}

	name := filepath.Join(dir, "Broken.cs")
	if err := os.WriteFile(name, []byte("class Broken {"), 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := Load(t.Context(), dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(src.Files) != 1 || len(src.Errors) != 1 {
		t.Errorf("Expected one file with syntax errors, got %d files and %v", len(src.Files), src.Errors)
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	all := New().Rules()
	if got, want := len(all), len(Catalogue()); got != want {
		t.Errorf("Expected %d rules, got %d", want, got)
	}

	docs := New(WithNaming(false), WithTypes(false), WithDeclarations(false), WithUsage(false)).Rules()
	for _, d := range docs {
		if !strings.HasPrefix(d.ID, "WPF006") {
			t.Errorf("Expected documentation rule, got %s", d.ID)
		}
	}

	if d, ok := Lookup("wpf0001"); !ok || d.ID != "WPF0001" {
		t.Errorf("Expected WPF0001, got %v", d)
	}
}
