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

package dispatch_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	. "fillmore-labs.com/dpguard/internal/dispatch"
	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/rules"
	"fillmore-labs.com/dpguard/internal/syntax"
	"fillmore-labs.com/dpguard/internal/testsource"
)

const members = `
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            "Bar", typeof(int), typeof(FooControl), new PropertyMetadata(1.0));

        public static DependencyProperty ErrorProperty = DependencyProperty.Register(
            "Baz", typeof(string), typeof(FooControl));

        public int Bar
        {
            get => (int)GetValue(BarProperty);
            set => SetValue(BarProperty, value);
        }`

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry(rules.All()...)

	if got, want := r.Len(), len(rules.All()); got != want {
		t.Errorf("Expected %d rules, got %d", want, got)
	}

	ids := make([]string, 0)
	for _, rule := range r.Rules(syntax.KindAssignExpr) {
		ids = append(ids, rule.Descriptor.ID)
	}

	if !slices.Equal(ids, []string{"WPF0041"}) {
		t.Errorf("Expected only WPF0041 on assignments, got %v", ids)
	}
}

func TestRunOrderInvariance(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	k := known.NewTable(c).Symbols()
	r := NewRegistry(rules.All()...)

	serial, err := r.Run(t.Context(), c, k, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(serial) == 0 {
		t.Fatal("Expected diagnostics")
	}

	for range 5 {
		parallel, err := r.Run(t.Context(), c, k, Options{Workers: 8})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if !slices.EqualFunc(serial, parallel, func(a, b report.Diagnostic) bool {
			return a.ID == b.ID && a.Pos == b.Pos && a.End == b.End && a.Message == b.Message
		}) {
			t.Fatalf("Expected %v, got %v", serial, parallel)
		}
	}

	var found []string
	for _, d := range serial {
		found = append(found, d.ID)
	}

	for _, id := range []string{"WPF0001", "WPF0010", "WPF0030"} {
		if !slices.Contains(found, id) {
			t.Errorf("Expected %s in %v", id, found)
		}
	}
}

func TestRunIsolatesPanics(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	k := known.NewTable(c).Symbols()

	boom := rules.Rule{
		Descriptor: report.WPF0036,
		Kinds:      []syntax.Kind{syntax.KindPropertyDecl},
		Check:      func(*rules.Pass, syntax.Node) []report.Diagnostic { panic("boom") },
	}

	var backing rules.Rule

	for _, rule := range rules.All() {
		if rule.Descriptor == report.WPF0001 {
			backing = rule
		}
	}

	diags, err := NewRegistry(boom, backing).Run(t.Context(), c, k, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var internal, named int

	for _, d := range diags {
		switch d.ID {
		case report.InternalError.ID:
			internal++
		case report.WPF0001.ID:
			named++
		}
	}

	if internal == 0 {
		t.Error("Expected an internal error diagnostic")
	}

	if named != 1 {
		t.Errorf("Expected 1 WPF0001 diagnostic, got %d", named)
	}
}

func TestRunSkip(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	k := known.NewTable(c).Symbols()

	diags, err := NewRegistry(rules.All()...).Run(t.Context(), c, k, Options{Skip: func(*syntax.File) bool { return true }})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics for skipped files, got %v", diags)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(members))
	k := known.NewTable(c).Symbols()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := NewRegistry(rules.All()...).Run(ctx, c, k, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected %v, got %v", context.Canceled, err)
	}
}
