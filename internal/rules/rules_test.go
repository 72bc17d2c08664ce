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

package rules_test

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"fillmore-labs.com/dpguard/internal/csharptest"
	"fillmore-labs.com/dpguard/internal/report"
	. "fillmore-labs.com/dpguard/internal/rules"
)

func TestRules(t *testing.T) {
	t.Parallel()

	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatalf("Failed to list test archives: %v", err)
	}

	if len(paths) == 0 {
		t.Fatal("No test archives found")
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			csharptest.Run(t, path, nil)
		})
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	rules := All()

	catalogue := report.Catalogue()
	if len(rules) != len(catalogue) {
		t.Fatalf("Expected %d rules, got %d", len(catalogue), len(rules))
	}

	for i, r := range rules {
		if r.Descriptor != catalogue[i] {
			t.Errorf("Expected rule %d to be %s, got %s", i, catalogue[i].ID, r.Descriptor.ID)
		}

		if len(r.Kinds) == 0 {
			t.Errorf("Expected rule %s to register node kinds", r.Descriptor.ID)
		}

		if r.Check == nil {
			t.Errorf("Expected rule %s to have a check", r.Descriptor.ID)
		}
	}

	if !slices.IsSortedFunc(rules, func(a, b Rule) int { return strings.Compare(a.Descriptor.ID, b.Descriptor.ID) }) {
		t.Error("Expected rules ordered by id")
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"single line", "<summary>Identifies the Bar property.</summary>", "Identifies the Bar property.", true},
		{"multiline", "<summary>\n  Identifies the\n  Bar property.\n</summary>", "Identifies the Bar property.", true},
		{"missing", "<remarks>Bar</remarks>", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Summary(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Expected %q, %t, got %q, %t", tt.want, tt.ok, got, ok)
			}
		})
	}
}

