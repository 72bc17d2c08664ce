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
	"fmt"
	"go/token"
	"strings"
	"testing"

	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/dpguard/internal/fix"
	"fillmore-labs.com/dpguard/internal/testsource"
)

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	const src = "class A\n{\n    int x;\n}\n"

	_, files := testsource.Parse(t, src)
	f := files[0]

	edits := []analysis.TextEdit{{Pos: f.Pos() + token.Pos(14), End: f.Pos() + token.Pos(17), NewText: []byte("long")}}

	got, err := UnifiedDiff(f, edits, []byte("class A\n{\n    long x;\n}\n"))
	if err != nil {
		t.Fatalf("UnifiedDiff failed: %v", err)
	}

	for _, w := range []string{"--- a/a.cs\n", "+++ b/a.cs\n", "@@ -1,4 +1,4 @@", " {\n-    int x;\n+    long x;\n }\n"} {
		if !strings.Contains(string(got), w) {
			t.Errorf("Expected diff to contain %q, got %q", w, got)
		}
	}
}

func TestUnifiedDiffHunks(t *testing.T) {
	t.Parallel()

	var b strings.Builder

	b.WriteString("class A\n{\n")

	for i := 3; i < 20; i++ {
		fmt.Fprintf(&b, "    int f%d;\n", i)
	}

	b.WriteString("}\n")

	src := b.String()

	_, files := testsource.Parse(t, src)
	f := files[0]

	at := func(line string) token.Pos { return f.Pos() + token.Pos(strings.Index(src, line)) }

	edits := []analysis.TextEdit{
		{Pos: at("    int f4;\n"), End: at("    int f5;\n"), NewText: []byte("    int f4a;\n    int f4b;\n")},
		{Pos: at("    int f18;\n"), End: at("    int f18;\n"), NewText: []byte("    int g;\n")},
	}

	fixed := strings.Replace(src, "    int f4;\n", "    int f4a;\n    int f4b;\n", 1)
	fixed = strings.Replace(fixed, "    int f18;\n", "    int g;\n    int f18;\n", 1)

	got, err := UnifiedDiff(f, edits, []byte(fixed))
	if err != nil {
		t.Fatalf("UnifiedDiff failed: %v", err)
	}

	for _, w := range []string{
		"@@ -1,7 +1,8 @@",
		"     int f3;\n-    int f4;\n+    int f4a;\n+    int f4b;\n     int f5;\n",
		"@@ -15,6 +16,7 @@",
		"     int f17;\n+    int g;\n     int f18;\n",
	} {
		if !strings.Contains(string(got), w) {
			t.Errorf("Expected diff to contain %q, got %q", w, got)
		}
	}
}
