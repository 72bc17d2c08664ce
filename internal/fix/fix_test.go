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

package fix_test

import (
	"errors"
	"testing"

	. "fillmore-labs.com/dpguard/internal/fix"
	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
	"fillmore-labs.com/dpguard/internal/testsource"
)

const members = `        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            nameof(Bar), typeof(int), typeof(FooControl), new PropertyMetadata(default(int)));

        public static readonly DependencyProperty Error = DependencyProperty.Register(
            nameof(Baz), typeof(int), typeof(FooControl), new PropertyMetadata(default(int)));

        public int Bar
        {
            get => (int)this.GetValue(BarProperty);
            set => this.SetValue(BarProperty, value);
        }

        public int Baz
        {
            get => (int)this.GetValue(Error);
            set => this.SetValue(Error, value);
        }`

func declarator(t *testing.T, c *semantic.Compilation, name string) *syntax.VarDeclarator {
	t.Helper()

	return testsource.Find(t, c.Files[0], testsource.Named[*syntax.VarDeclarator](name))
}

func TestRenamer(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	sym := c.SymbolOf(declarator(t, c, "Error"))

	r := NewRenamer(c)

	f, err := r.Resolve(Fix{Title: "Rename", Rename: &Rename{Symbol: sym, To: "BazProperty"}})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// declaration, getter and setter
	if len(f.TextEdits) != 3 {
		t.Errorf("Expected 3 edits, got %d", len(f.TextEdits))
	}

	for _, e := range f.TextEdits {
		if string(e.NewText) != "BazProperty" {
			t.Errorf("Expected edit to BazProperty, got %q", e.NewText)
		}
	}

	again, err := r.Resolve(Fix{Title: "Rename", Rename: &Rename{Symbol: sym, To: "BazProperty"}})
	if err != nil {
		t.Fatalf("Second resolve failed: %v", err)
	}

	if again.TextEdits != nil {
		t.Errorf("Expected no edits for a renamed symbol, got %d", len(again.TextEdits))
	}
}

func TestRenamerConflict(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	sym := c.SymbolOf(declarator(t, c, "Error"))

	tests := []struct {
		name string
		to   string
	}{
		{"existing member", "BarProperty"},
		{"inherited member", "DataContextProperty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRenamer(c).Resolve(Fix{Rename: &Rename{Symbol: sym, To: tt.to}})
			if !errors.Is(err, ErrRenameConflict) {
				t.Errorf("Expected %v, got %v", ErrRenameConflict, err)
			}
		})
	}
}

func TestRenamerTaken(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	r := NewRenamer(c)

	if _, err := r.Resolve(Fix{Rename: &Rename{Symbol: c.SymbolOf(declarator(t, c, "Error")), To: "QuxProperty"}}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	_, err := r.Resolve(Fix{Rename: &Rename{Symbol: c.SymbolOf(declarator(t, c, "BarProperty")), To: "QuxProperty"}})
	if !errors.Is(err, ErrRenameConflict) {
		t.Errorf("Expected %v, got %v", ErrRenameConflict, err)
	}
}

func TestRenamerNotRenamable(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))

	call := testsource.Find[*syntax.InvocationExpr](t, c.Files[0], nil)

	_, err := NewRenamer(c).Resolve(Fix{Rename: &Rename{Symbol: c.SymbolOf(call), To: "Enroll"}})
	if !errors.Is(err, ErrNotRenamable) {
		t.Errorf("Expected %v, got %v", ErrNotRenamable, err)
	}
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	k := known.NewTable(c).Symbols()
	d := declarator(t, c, "Error")

	tests := []struct {
		name string
		diag report.Diagnostic
		want int
	}{
		{"rename", report.New(report.WPF0001, d.Name, "Error", "Baz", "BazProperty").With(report.ExpectedName, "BazProperty"), 1},
		{"missing property", report.New(report.WPF0001, d.Name, "Error", "Baz", "BazProperty"), 0},
		{"same name", report.New(report.WPF0001, d.Name, "Error", "Baz", "Error").With(report.ExpectedName, "Error"), 0},
		{"not fixable", report.New(report.WPF0032, d.Name, "Error"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fixes, err := Synthesize(t.Context(), c, k, tt.diag)
			if err != nil {
				t.Fatalf("Synthesize failed: %v", err)
			}

			if len(fixes) != tt.want {
				t.Fatalf("Expected %d fixes, got %d", tt.want, len(fixes))
			}

			for _, f := range fixes {
				if len(f.IDs) != 1 || f.IDs[0] != tt.diag.ID {
					t.Errorf("Expected fix ids [%s], got %v", tt.diag.ID, f.IDs)
				}

				if f.Rename == nil || f.Rename.To != "BazProperty" {
					t.Errorf("Expected rename to BazProperty, got %+v", f.Rename)
				}
			}
		})
	}
}

func TestFixable(t *testing.T) {
	t.Parallel()

	for _, d := range report.Catalogue() {
		switch d.ID {
		case "WPF0010", "WPF0014", "WPF0016", "WPF0032", "WPF0036":
			if Fixable(d.ID) {
				t.Errorf("Expected %s not to be fixable", d.ID)
			}

		default:
			if !Fixable(d.ID) {
				t.Errorf("Expected %s to be fixable", d.ID)
			}
		}
	}
}
