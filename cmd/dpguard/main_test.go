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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

)

const source = "testdata/FooControl.cs"

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(t.Context(), append(args, "--color=never"), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		code    int
		want    []string
		notWant []string
	}{
		{
			name: "default",
			args: []string{"check", source},
			code: 1,
			want: []string{"FooControl.cs:8:51: warning WPF0001:", "WPF0150", "2 findings"},
		},
		{
			name:    "disabled",
			args:    []string{"check", "--disable=WPF0001,WPF0150", source},
			code:    0,
			notWant: []string{"WPF"},
		},
		{
			name:    "family",
			args:    []string{"check", "--usage=false", source},
			code:    1,
			want:    []string{"WPF0001", "1 finding\n"},
			notWant: []string{"WPF0150"},
		},
		{
			name:    "config",
			args:    []string{"check", "--config", "testdata/usage.yaml", source},
			code:    1,
			want:    []string{"WPF0001"},
			notWant: []string{"WPF0150"},
		},
		{
			name: "flags override config",
			args: []string{"check", "--config", "testdata/usage.yaml", "--usage", source},
			code: 1,
			want: []string{"WPF0001", "WPF0150"},
		},
		{
			name: "unknown rule",
			args: []string{"check", "--disable=WPF4711", source},
			code: 2,
		},
		{
			name: "format",
			args: []string{"check", "--format=xml", source},
			code: 2,
		},
		{
			name: "missing",
			args: []string{"check", "testdata/Missing.cs"},
			code: 2,
		},
		{
			name: "rules",
			args: []string{"rules"},
			code: 0,
			want: []string{"WPF0001\t", "WPF0150\t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := execute(t, tt.args...)
			if code != tt.code {
				t.Fatalf("Expected exit code %d, got %d: %s", tt.code, code, stderr)
			}

			for _, w := range tt.want {
				if !strings.Contains(stdout, w) {
					t.Errorf("Expected output to contain %q, got %q", w, stdout)
				}
			}

			for _, w := range tt.notWant {
				if strings.Contains(stdout, w) {
					t.Errorf("Expected output not to contain %q, got %q", w, stdout)
				}
			}
		})
	}
}

func TestCheckJSON(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := execute(t, "check", "--format=json", "--fixes=rename", source)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d: %s", code, stderr)
	}

	var findings []jsonFinding
	if err := json.Unmarshal([]byte(stdout), &findings); err != nil {
		t.Fatalf("Can't decode output: %v", err)
	}

	if len(findings) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(findings))
	}

	if got := findings[0]; got.ID != "WPF0001" || got.Start.Line != 8 || len(got.Fixes) != 1 || len(got.Fixes[0].Edits) != 3 {
		t.Errorf("Expected WPF0001 on line 8 with a rename fix, got %+v", got)
	}

	if got := findings[1].Fixes; len(got) != 1 || got[0].Edits[0].NewText != "nameof(Baz)" {
		t.Errorf("Expected nameof fix, got %+v", got)
	}
}

func TestFixDiff(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := execute(t, "fix", "--diff", source)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}

	for _, w := range []string{
		"--- a/" + source + "\n",
		"+++ b/" + source + "\n",
		"-        public static readonly DependencyProperty Error = ",
		"+        public static readonly DependencyProperty BarProperty = ",
		"+            nameof(Baz), typeof(string)",
		"+            get => (int)this.GetValue(BarProperty);",
	} {
		if !strings.Contains(stdout, w) {
			t.Errorf("Expected diff to contain %q, got %q", w, stdout)
		}
	}

	if !strings.Contains(stderr, "2 fixes in 1 file") {
		t.Errorf("Expected summary, got %q", stderr)
	}
}

func TestFixWrite(t *testing.T) {
	t.Parallel()

	src, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}

	name := filepath.Join(t.TempDir(), "FooControl.cs")
	if err := os.WriteFile(name, src, 0o600); err != nil {
		t.Fatal(err)
	}

	if code, _, stderr := execute(t, "fix", name); code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, stderr)
	}

	fixed, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(fixed, []byte("nameof(Baz)")) || bytes.Contains(fixed, []byte("Error")) {
		t.Errorf("Expected fixed source, got %s", fixed)
	}

	if code, stdout, _ := execute(t, "check", name); code != 0 {
		t.Errorf("Expected no findings after fix, got %s", stdout)
	}
}
