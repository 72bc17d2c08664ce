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

package report_test

import (
	"errors"
	"go/token"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"testing"

	. "fillmore-labs.com/dpguard/internal/report"
)

type span struct{ pos, end token.Pos }

func (s span) Pos() token.Pos { return s.pos }
func (s span) End() token.Pos { return s.end }

func TestCatalogue(t *testing.T) {
	t.Parallel()

	cat := Catalogue()

	if !slices.IsSortedFunc(cat, func(a, b *Descriptor) int { return strings.Compare(a.ID, b.ID) }) {
		t.Error("Expected catalogue ordered by id")
	}

	for _, d := range cat {
		if d.Family == 0 {
			t.Errorf("Expected %s to belong to a family", d)
		}

		if got, ok := Lookup(strings.ToLower(d.ID)); !ok || got != d {
			t.Errorf("Expected lookup of %s to succeed", d)
		}
	}

	if _, ok := Lookup("WPF0000"); ok {
		t.Error("Expected unknown id not to be found")
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Severity
		err  error
	}{
		{"hidden", Hidden, nil},
		{"Warning", Warning, nil},
		{"ERROR", Error, nil},
		{"fatal", Hidden, ErrUnknownSeverity},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSeverity(tt.in)
			if !errors.Is(err, tt.err) || got != tt.want {
				t.Errorf("ParseSeverity(%q) = %v, %v; want %v, %v", tt.in, got, err, tt.want, tt.err)
			}
		})
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	d := New(WPF0001, span{1, 5}, "BarProperty", "Foo", "FooProperty").
		With(ExpectedName, "X").
		With(Owner, "FooControl").
		With(ExpectedName, "FooProperty")

	if got, ok := d.Property(ExpectedName); !ok || got != "FooProperty" {
		t.Errorf("Expected FooProperty, got %q", got)
	}

	if len(d.Properties) != 2 || d.Properties[1].Key != ExpectedName {
		t.Errorf("Expected replaced property last, got %v", d.Properties)
	}

	if !strings.Contains(d.Message, "'BarProperty'") {
		t.Errorf("Unexpected message %q", d.Message)
	}
}

func TestBagOrderInvariant(t *testing.T) {
	t.Parallel()

	var ds []Diagnostic
	for i := range 20 {
		ds = append(ds,
			New(WPF0001, span{token.Pos(i%7 + 1), token.Pos(i%7 + 5)}, "a", "b", "c"),
			New(WPF0036, span{token.Pos(i%5 + 1), token.Pos(i%5 + 9)}),
		)
	}

	var want []Diagnostic

	for round := range 5 {
		shuffled := slices.Clone(ds)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		var (
			bag Bag
			wg  sync.WaitGroup
		)

		for _, d := range shuffled {
			wg.Add(1)

			go func() {
				defer wg.Done()

				bag.Add(d)
			}()
		}

		wg.Wait()

		got := bag.Result()
		if len(got) != 12 {
			t.Fatalf("Expected 12 unique diagnostics, got %d", len(got))
		}

		if round == 0 {
			want = got

			continue
		}

		if !slices.EqualFunc(got, want, func(a, b Diagnostic) bool {
			return a.ID == b.ID && a.Pos == b.Pos && a.End == b.End
		}) {
			t.Errorf("Round %d: result depends on insertion order", round)
		}
	}
}
