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

package report

import (
	"cmp"
	"slices"
	"sync"
)

// Bag collects diagnostics from concurrent rule invocations.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Add appends diagnostics. It is safe for concurrent use.
func (b *Bag) Add(ds ...Diagnostic) {
	if len(ds) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, ds...)
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}

// Result returns the collected diagnostics sorted and with duplicates removed. The order
// does not depend on the order of [Bag.Add] calls.
func (b *Bag) Result() []Diagnostic {
	b.mu.Lock()
	items := slices.Clone(b.items)
	b.mu.Unlock()

	Sort(items)

	return Dedup(items)
}

// Sort orders diagnostics by position (file, start, end), then by severity (descending), id
// and message.
func Sort(ds []Diagnostic) {
	slices.SortStableFunc(ds, compare)
}

func compare(a, b Diagnostic) int {
	if c := cmp.Compare(a.Pos, b.Pos); c != 0 {
		return c
	}

	if c := cmp.Compare(a.End, b.End); c != 0 {
		return c
	}

	if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
		return c
	}

	if c := cmp.Compare(a.ID, b.ID); c != 0 {
		return c
	}

	return cmp.Compare(a.Message, b.Message)
}

// Dedup removes diagnostics with the same id and span as their predecessor in a sorted slice.
func Dedup(ds []Diagnostic) []Diagnostic {
	return slices.CompactFunc(ds, func(a, b Diagnostic) bool {
		return a.ID == b.ID && a.Pos == b.Pos && a.End == b.End
	})
}
