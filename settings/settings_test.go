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

package settings_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fillmore-labs.com/dpguard/analyzer"
	. "fillmore-labs.com/dpguard/settings"
)

const allSettings = `{
	"naming": true,
	"types": true,
	"declarations": false,
	"usage": true,
	"documentation": false,
	"generated": true,
	"fixes": "rename",
	"jobs": 4,
	"disable": ["WPF0150", "wpf0023"],
	"severity": {"WPF0001": "error"}
}`

func TestSettings(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
		want     int
	}{
		{"all", allSettings, reflect.TypeFor[Settings]().NumField()},
		{"none", `{}`, 0},
		{"severities", `{"severity": {"WPF0001": "hidden", "WPF0060": "info"}}`, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dec := json.NewDecoder(strings.NewReader(tc.settings))
			dec.DisallowUnknownFields()

			var s Settings
			if err := dec.Decode(&s); err != nil {
				t.Fatalf("Can't decode settings: %v", err)
			}

			got, err := s.Options()
			if err != nil {
				t.Fatalf("Options failed: %v", err)
			}

			if len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), analyzer.Options(got).LogValue(), tc.want)
			}
		})
	}
}

func TestSettingsErrors(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings Settings
		err      error
	}{
		{"disable", Settings{Disable: []string{"WPF0001", "WPF4711"}}, ErrUnknownRule},
		{"severity id", Settings{Severity: map[string]string{"WPF4711": "error"}}, ErrUnknownRule},
		{"severity level", Settings{Severity: map[string]string{"WPF0001": "fatal"}}, analyzer.ErrUnknownSeverity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tc.settings.Options(); !errors.Is(err, tc.err) {
				t.Errorf("Expected error %v, got %v", tc.err, err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name    string
		ext     string
		data    string
		options int
		wantErr bool
	}{
		{
			name:    "yaml",
			ext:     ".yaml",
			data:    "naming: false\nfixes: rename\ndisable:\n  - WPF0150\nseverity:\n  WPF0001: error\n",
			options: 4,
		},
		{
			name:    "toml",
			ext:     ".toml",
			data:    "generated = true\njobs = 2\ndisable = [\"WPF0150\"]\n\n[severity]\nWPF0001 = \"warning\"\n",
			options: 4,
		},
		{
			name: "empty yaml",
			ext:  ".yml",
		},
		{
			name:    "unknown yaml field",
			ext:     ".yaml",
			data:    "nameing: false\n",
			wantErr: true,
		},
		{
			name:    "unknown toml field",
			ext:     ".toml",
			data:    "nameing = false\n",
			wantErr: true,
		},
		{
			name:    "bad fixes",
			ext:     ".yaml",
			data:    "fixes: sometimes\n",
			wantErr: true,
		},
		{
			name:    "format",
			ext:     ".ini",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := Decode(tc.ext, []byte(tc.data))
			if (err != nil) != tc.wantErr {
				t.Fatalf("Expected error %t, got %v", tc.wantErr, err)
			}

			if err != nil {
				return
			}

			opts, err := s.Options()
			if err != nil {
				t.Fatalf("Options failed: %v", err)
			}

			if len(opts) != tc.options {
				t.Errorf("Got %d options: %s, want %d", len(opts), analyzer.Options(opts).LogValue(), tc.options)
			}
		})
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	sub := filepath.Join(root, "src", "controls")

	if err := os.MkdirAll(sub, 0o700); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(root, ".dpguard.toml")
	if err := os.WriteFile(path, []byte("usage = false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Find(sub)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if got != path {
		t.Errorf("Expected %q, got %q", path, got)
	}

	s, err := Load(got)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Usage == nil || *s.Usage {
		t.Errorf("Expected usage disabled, got %v", s.Usage)
	}
}
