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
	"go/token"
	"testing"

	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/dpguard/internal/fix"
	"fillmore-labs.com/dpguard/internal/syntax"
	"fillmore-labs.com/dpguard/internal/testsource"
)

func edit(f *syntax.File, from, to int, text string) analysis.TextEdit {
	return analysis.TextEdit{Pos: f.Pos() + token.Pos(from), End: f.Pos() + token.Pos(to), NewText: []byte(text)}
}

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	_, files := testsource.Parse(t, "class A { }\n")
	f := files[0]

	tests := []struct {
		name  string
		edits []analysis.TextEdit
		want  string
	}{
		{"replace", []analysis.TextEdit{edit(f, 6, 7, "B")}, "class B { }\n"},
		{"insert", []analysis.TextEdit{edit(f, 0, 0, "public ")}, "public class A { }\n"},
		{"delete", []analysis.TextEdit{edit(f, 8, 10, "")}, "class A }\n"},
		{"unordered", []analysis.TextEdit{edit(f, 6, 7, "B"), edit(f, 0, 0, "sealed ")}, "sealed class B { }\n"},
		{"insert before replace", []analysis.TextEdit{edit(f, 6, 7, "B"), edit(f, 6, 6, "C")}, "class CB { }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ApplyEdits(f, tt.edits)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	_, files := testsource.Parse(t, "class A { int x; }\n")
	f := files[0]

	rename := Fix{Title: "rename", TextEdits: []analysis.TextEdit{edit(f, 6, 7, "B")}}
	overlapping := Fix{Title: "overlap", TextEdits: []analysis.TextEdit{edit(f, 0, 7, "struct C")}}
	inner := Fix{Title: "inner", TextEdits: []analysis.TextEdit{edit(f, 10, 13, "long")}}
	duplicate := Fix{Title: "duplicate", TextEdits: []analysis.TextEdit{edit(f, 10, 13, "long"), edit(f, 10, 13, "long")}}
	empty := Fix{Title: "empty"}
	outside := Fix{Title: "outside", TextEdits: []analysis.TextEdit{{Pos: f.End() + 10, End: f.End() + 12}}}
	self := Fix{Title: "self", TextEdits: []analysis.TextEdit{edit(f, 14, 15, "y"), edit(f, 14, 16, "z;")}}

	result, err := Apply(files, []Fix{rename, overlapping, inner, duplicate, empty, outside, self})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if got, want := string(result.Files[f]), "class B { long x; }\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if len(result.Applied) != 3 {
		t.Errorf("Expected 3 applied fixes, got %d", len(result.Applied))
	}

	if edits := result.Edits[f]; len(edits) != 2 || edits[0].Pos > edits[1].Pos {
		t.Errorf("Expected 2 ordered edits, got %v", edits)
	}

	skipped := make(map[string]string)
	for _, s := range result.Skipped {
		skipped[s.Fix.Title] = s.Reason
	}

	for _, title := range []string{"overlap", "empty", "outside", "self"} {
		if _, ok := skipped[title]; !ok {
			t.Errorf("Expected fix %q to be skipped", title)
		}
	}

	if got, want := skipped["self"], "fix has overlapping edits"; got != want {
		t.Errorf("Expected reason %q, got %q", want, got)
	}
}

func TestApplyUnchanged(t *testing.T) {
	t.Parallel()

	_, files := testsource.Parse(t, "class A { }\n")
	f := files[0]

	result, err := Apply(files, []Fix{{Title: "same", TextEdits: []analysis.TextEdit{edit(f, 6, 7, "A")}}})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if _, ok := result.Files[f]; ok {
		t.Error("Expected unchanged file to be omitted")
	}
}
