// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
	"flag"
	"slices"
	"strings"
	"testing"

	. "fillmore-labs.com/dpguard/analyzer"
	"fillmore-labs.com/dpguard/analyzer/level"
	"fillmore-labs.com/dpguard/internal/config"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial config.Family
		args    []string
		want    bool
	}{
		{
			name:    "Enable",
			initial: config.TypeRules,
			args:    []string{"-naming"},
			want:    true,
		},
		{
			name:    "Disable",
			initial: config.NamingRules,
			args:    []string{"-naming=false"},
			want:    false,
		},
		{
			name:    "Off",
			initial: config.AllFamilies,
			args:    []string{"-naming=off"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags := config.NewBitMask(tt.initial)

			fs := flag.NewFlagSet("test", flag.ContinueOnError)

			const value = config.NamingRules
			fv := NewBoolValue(&flags, value)
			fs.Var(fv, "naming", "check naming rules")

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if fv.Get() != tt.want {
				t.Errorf("Expected flag value %v, got %v", tt.want, fv.Get())
			}

			if flags.Enabled(value) != tt.want {
				t.Errorf("Expected naming rules enabled %v, got %v", tt.want, flags.Enabled(value))
			}
		})
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	flags := config.NewBitMask(config.NamingRules)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)

	fv := NewBoolValue(&flags, config.NamingRules)
	fs.Var(fv, "naming", "check naming rules")

	const expectedUsage = `
  -naming
    	check naming rules (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}

func TestRegisterFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		rules []string
		fixes level.Fixes
	}{
		{
			name:  "default",
			rules: nil,
			fixes: level.FixesSuggest,
		},
		{
			name:  "families",
			args:  []string{"-naming=false", "-types=false", "-declarations=false", "-usage=false"},
			rules: []string{"WPF0060", "WPF0061", "WPF0062"},
			fixes: level.FixesSuggest,
		},
		{
			name:  "disable",
			args:  []string{"-usage=false", "-naming=false", "-types=false", "-declarations=false", "-disable", "wpf0060, WPF0062"},
			rules: []string{"WPF0061"},
			fixes: level.FixesSuggest,
		},
		{
			name:  "enable",
			args:  []string{"-usage=false", "-naming=false", "-types=false", "-declarations=false", "-disable=WPF0060,WPF0061", "-enable=WPF0060", "-fixes=rename"},
			rules: []string{"WPF0060", "WPF0062"},
			fixes: level.FixesRename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New()

			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			a.RegisterFlags(fs)

			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if tt.rules != nil {
				var got []string
				for _, d := range a.Rules() {
					got = append(got, d.ID)
				}

				if !slices.Equal(got, tt.rules) {
					t.Errorf("Expected rules %v, got %v", tt.rules, got)
				}
			} else if got, want := len(a.Rules()), len(Catalogue()); got != want {
				t.Errorf("Expected %d rules, got %d", want, got)
			}

			if got := fs.Lookup("fixes").Value.(flag.Getter).Get(); got != tt.fixes {
				t.Errorf("Expected fixes %v, got %v", tt.fixes, got)
			}
		})
	}
}

func TestRegisterFlagsUnknownRule(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(&strings.Builder{})
	New().RegisterFlags(fs)

	// flag.FlagSet.Parse formats value errors, so only the message survives
	if err := fs.Parse([]string{"-disable", "WPF0001,WPF4711"}); err == nil || !strings.Contains(err.Error(), `unknown rule "WPF4711"`) {
		t.Errorf("Expected unknown rule WPF4711, got %v", err)
	}

	if err := fs.Lookup("enable").Value.Set("WPF4711"); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("Expected %v, got %v", ErrUnknownRule, err)
	}
}
