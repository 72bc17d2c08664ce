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

package astutil_test

import (
	"go/token"
	"strings"
	"testing"

	. "fillmore-labs.com/dpguard/internal/astutil"
	"fillmore-labs.com/dpguard/internal/syntax"
	"fillmore-labs.com/dpguard/internal/testsource"
)

func parse(t *testing.T, name, src string) (*token.FileSet, *syntax.File) {
	t.Helper()

	fset := token.NewFileSet()

	f, err := syntax.Parse(fset, name, []byte(src))
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", name, err)
	}

	return fset, f
}

func TestGenerated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		src      string
		want     bool
	}{
		{"plain", "a.cs", testsource.Wrap(""), false},
		{"designer", "Form1.Designer.cs", testsource.Wrap(""), true},
		{"xaml", "MainWindow.g.i.cs", testsource.Wrap(""), true},
		{"header", "a.cs", "// <auto-generated>\n//   by a tool\n// </auto-generated>\n" + testsource.Wrap(""), true},
		{"late marker", "a.cs", testsource.Wrap("// <auto-generated/>"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fset, f := parse(t, tt.filename, tt.src)

			c := NewCurrentFile(fset, f)
			if !c.Valid() {
				t.Fatal("Expected a valid file")
			}

			if got := c.Generated(); got != tt.want {
				t.Errorf("Expected generated %t, got %t", tt.want, got)
			}
		})
	}
}

func TestSuppressed(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
#pragma warning disable WPF0001, WPF0030 // legacy names
        public static DependencyProperty First = DependencyProperty.Register("Bar", typeof(int), typeof(FooControl));
#pragma warning restore WPF0001
        public static DependencyProperty Second = DependencyProperty.Register("Baz", typeof(int), typeof(FooControl));
#pragma warning disable
        public static DependencyProperty Third = DependencyProperty.Register("Qux", typeof(int), typeof(FooControl));`)

	fset, f := parse(t, "a.cs", src)
	c := NewCurrentFile(fset, f)

	pos := func(name string) token.Pos {
		return f.Pos() + token.Pos(strings.Index(src, name))
	}

	tests := []struct {
		id, member string
		want       bool
	}{
		{"WPF0001", "First", true},
		{"wpf0030", "First", true},
		{"WPF0002", "First", false},
		{"WPF0001", "Second", false},
		{"WPF0030", "Second", true},
		{"WPF0002", "Third", true},
	}

	for _, tt := range tests {
		if got := c.Suppressed(tt.id, pos(tt.member)); got != tt.want {
			t.Errorf("Expected %s suppressed at %s to be %t, got %t", tt.id, tt.member, tt.want, got)
		}
	}
}

func TestPragmas(t *testing.T) {
	t.Parallel()

	_, f := parse(t, "a.cs", "#pragma warning disable CS0168, WPF0041\n#region r\n#pragma warning restore\n#endregion\n"+testsource.Wrap(""))

	var got []Pragma
	for p := range Pragmas(f) {
		got = append(got, p)
	}

	if len(got) != 2 {
		t.Fatalf("Expected 2 pragmas, got %d", len(got))
	}

	if !got[0].Disable || len(got[0].IDs) != 2 || got[0].IDs[1] != "WPF0041" {
		t.Errorf("Expected disable of CS0168 and WPF0041, got %+v", got[0])
	}

	if got[1].Disable || len(got[1].IDs) != 0 || !got[1].Applies("WPF0001") {
		t.Errorf("Expected restore of all rules, got %+v", got[1])
	}
}
