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

package known_test

import (
	"sync"
	"testing"

	. "fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/testsource"
)

func TestTableResolvesOnce(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(""))
	table := NewTable(c)

	var (
		wg   sync.WaitGroup
		syms [8]*Symbols
	)

	for i := range syms {
		wg.Add(1)

		go func() {
			defer wg.Done()

			syms[i] = table.Symbols()
		}()
	}

	wg.Wait()

	for i, s := range syms {
		if s != syms[0] {
			t.Errorf("Expected the same table from goroutine %d", i)
		}
	}

	s := syms[0]
	for name, n := range map[string]*semantic.Named{
		"DependencyObject":      s.DependencyObject,
		"DependencyProperty":    s.DependencyProperty,
		"DependencyPropertyKey": s.DependencyPropertyKey,
		"PropertyMetadata":      s.PropertyMetadata,
		"FrameworkElement":      s.FrameworkElement,
		"BrowsableForType":      s.BrowsableForType,
	} {
		if n == nil {
			t.Errorf("Expected %s to resolve", name)
		}
	}
}

func TestNilTable(t *testing.T) {
	t.Parallel()

	s := NewTable(nil).Symbols()
	if s == nil || s.DependencyProperty != nil {
		t.Fatalf("Expected empty symbols, got %+v", s)
	}

	if s.IsHandle(nil) {
		t.Error("Expected nil type not to be a handle")
	}
}

func TestIsMethod(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, testsource.Wrap(""))
	s := NewTable(c).Symbols()

	members := c.LookupMember(s.DependencyProperty, "Register")
	if len(members) == 0 {
		t.Fatal("Expected Register overloads")
	}

	tests := []struct {
		name  string
		owner *semantic.Named
		names []string
		want  bool
	}{
		{"any", s.DependencyProperty, nil, true},
		{"match", s.DependencyProperty, []string{"AddOwner", "Register"}, true},
		{"other name", s.DependencyProperty, []string{"AddOwner"}, false},
		{"other owner", s.DependencyObject, []string{"Register"}, false},
		{"nil owner", nil, []string{"Register"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsMethod(members[0], tt.owner, tt.names...); got != tt.want {
				t.Errorf("Expected %t, got %t", tt.want, got)
			}
		})
	}

	if !IsMember(members[0], s.DependencyProperty, "Register") {
		t.Error("Expected Register to be a member of DependencyProperty")
	}
}
