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

// Package csharptest runs dpguard on C# test archives and checks the reported diagnostics and
// fixes against expectations written into the sources.
//
// An archive is a [txtar] file. Each file ending in ".cs" is analyzed. A comment
//
//	// want "WPF0001" "WPF0030: Field 'Bar'"
//
// expects one diagnostic per pattern on its line, each pattern a regular expression matched
// against the id and message. A want comment on a line of its own applies to the next line.
//
// A file "x.cs.golden" holds the expected source of "x.cs" after applying all fixes. Fixed
// sources are analyzed again, their fixes must not change anything.
package csharptest

import (
	"fmt"
	"go/token"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"fillmore-labs.com/dpguard/internal/config"
	"fillmore-labs.com/dpguard/internal/fix"
	"fillmore-labs.com/dpguard/internal/run"
	"fillmore-labs.com/dpguard/internal/syntax"
)

const goldenSuffix = ".golden"

// DefaultOptions returns run options with all rules, fixes and renames enabled.
func DefaultOptions() *run.Options {
	opts := run.DefaultOptions()
	opts.Behavior.Enable(config.RenameSymbols)

	return opts
}

// Run analyzes the archive at path. A nil opts uses [DefaultOptions].
func Run(t *testing.T, path string, opts *run.Options) *run.Result {
	t.Helper()

	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("Can't read archive: %v", err)
	}

	return RunArchive(t, ar, opts)
}

// RunArchive analyzes the sources of ar. A nil opts uses [DefaultOptions].
func RunArchive(t *testing.T, ar *txtar.Archive, opts *run.Options) *run.Result {
	t.Helper()

	if opts == nil {
		opts = DefaultOptions()
	}

	sources := make(map[string][]byte)
	golden := make(map[string][]byte)

	var names []string

	for _, f := range ar.Files {
		switch {
		case strings.HasSuffix(f.Name, goldenSuffix):
			golden[strings.TrimSuffix(f.Name, goldenSuffix)] = f.Data

		case strings.HasSuffix(f.Name, ".cs"):
			sources[f.Name] = f.Data
			names = append(names, f.Name)
		}
	}

	if len(names) == 0 {
		t.Fatal("Archive without C# sources")
	}

	fset, files := parse(t, names, sources)

	result, err := opts.Run(t.Context(), fset, files)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	checkExpectations(t, fset, files, result)

	if len(golden) > 0 {
		checkFixes(t, opts, names, files, result, golden)
	}

	return result
}

func parse(t *testing.T, names []string, sources map[string][]byte) (*token.FileSet, []*syntax.File) {
	t.Helper()

	fset := token.NewFileSet()
	files := make([]*syntax.File, 0, len(names))

	for _, name := range names {
		f, err := syntax.Parse(fset, name, sources[name])
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", name, err)
		}

		files = append(files, f)
	}

	return fset, files
}

type key struct {
	file string
	line int
}

type expectation struct {
	pattern *regexp.Regexp
	matched bool
}

func checkExpectations(t *testing.T, fset *token.FileSet, files []*syntax.File, result *run.Result) {
	t.Helper()

	want := make(map[key][]*expectation)

	for _, f := range files {
		for _, c := range f.Comments {
			patterns, ok := wantPatterns(t, c.Text)
			if !ok {
				continue
			}

			pos := fset.Position(c.Pos())

			line := pos.Line
			if strings.TrimSpace(string(f.Src[f.Offset(f.LineStart(c.Pos())):f.Offset(c.Pos())])) == "" {
				line++ // standalone comment
			}

			k := key{f.Name, line}
			for _, p := range patterns {
				want[k] = append(want[k], &expectation{pattern: p})
			}
		}
	}

	for _, d := range result.Findings {
		pos := fset.Position(d.Pos)
		k := key{pos.Filename, pos.Line}

		i := slices.IndexFunc(want[k], func(e *expectation) bool {
			return !e.matched && e.pattern.MatchString(d.String())
		})
		if i < 0 {
			t.Errorf("%s: unexpected diagnostic: %s", pos, d)

			continue
		}

		want[k][i].matched = true
	}

	for k, es := range want {
		for _, e := range es {
			if !e.matched {
				t.Errorf("%s:%d: no diagnostic was reported matching %q", k.file, k.line, e.pattern)
			}
		}
	}
}

var wantComment = regexp.MustCompile(`^//\s*want\s+`)

// wantPatterns parses the quoted patterns of a want comment.
func wantPatterns(t *testing.T, text string) ([]*regexp.Regexp, bool) {
	t.Helper()

	loc := wantComment.FindStringIndex(text)
	if loc == nil {
		return nil, false
	}

	var patterns []*regexp.Regexp

	for rest := strings.TrimSpace(text[loc[1]:]); rest != ""; rest = strings.TrimSpace(rest) {
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			t.Fatalf("Malformed want comment %q: %v", text, err)
		}

		rest = rest[len(quoted):]

		s, _ := strconv.Unquote(quoted)

		p, err := regexp.Compile(s)
		if err != nil {
			t.Fatalf("Invalid want pattern %q: %v", s, err)
		}

		patterns = append(patterns, p)
	}

	return patterns, true
}

// checkFixes applies all fixes, compares with the golden sources and verifies that fixing the
// result again changes nothing.
func checkFixes(t *testing.T, opts *run.Options, names []string, files []*syntax.File, result *run.Result, golden map[string][]byte) {
	t.Helper()

	fixed := applyAll(t, files, result)

	for _, name := range names {
		want, ok := golden[name]
		if !ok {
			if !slices.Equal(fixed[name], sourceOf(files, name)) {
				t.Errorf("%s: unexpected fixes without golden file", name)
			}

			continue
		}

		if got := fixed[name]; string(got) != string(want) {
			t.Errorf("%s: fixed source differs from golden file:\n%s", name, diff(string(want), string(got)))
		}
	}

	fset, again := parse(t, names, fixed)

	second, err := opts.Run(t.Context(), fset, again)
	if err != nil {
		t.Fatalf("Rerun failed: %v", err)
	}

	for name, src := range applyAll(t, again, second) {
		if string(src) != string(fixed[name]) {
			t.Errorf("%s: fixes are not idempotent:\n%s", name, diff(string(fixed[name]), string(src)))
		}
	}
}

func applyAll(t *testing.T, files []*syntax.File, result *run.Result) map[string][]byte {
	t.Helper()

	var fixes []fix.Fix
	for _, d := range result.Findings {
		fixes = append(fixes, d.Fixes...)
	}

	applied, err := fix.Apply(files, fixes)
	if err != nil {
		t.Fatalf("Can't apply fixes: %v", err)
	}

	for _, s := range applied.Skipped {
		if len(s.Fix.TextEdits) > 0 {
			t.Errorf("Fix %q for %v skipped: %s", s.Fix.Title, s.Fix.IDs, s.Reason)
		}
	}

	sources := make(map[string][]byte, len(files))
	for _, f := range files {
		src, ok := applied.Files[f]
		if !ok {
			src = f.Src
		}

		sources[f.Name] = src
	}

	return sources
}

func sourceOf(files []*syntax.File, name string) []byte {
	for _, f := range files {
		if f.Name == name {
			return f.Src
		}
	}

	return nil
}

// diff renders the differing lines of want and got.
func diff(want, got string) string {
	wl, gl := strings.Split(want, "\n"), strings.Split(got, "\n")

	var b strings.Builder

	for i := range max(len(wl), len(gl)) {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}

		if i < len(gl) {
			g = gl[i]
		}

		if w != g {
			fmt.Fprintf(&b, "%d:\n-\t%s\n+\t%s\n", i+1, w, g)
		}
	}

	return b.String()
}
