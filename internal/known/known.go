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

// Package known resolves the well-known library types and members the recognizers compare
// symbols against.
package known

import (
	"sync"

	"fillmore-labs.com/dpguard/internal/semantic"
)

// Symbols holds the well-known types of one compilation. Any field may be nil when the
// reference declarations lack the type; comparisons against nil never match.
type Symbols struct {
	Object     *semantic.Named
	SystemType *semantic.Named

	DependencyObject                   *semantic.Named
	DependencyProperty                 *semantic.Named
	DependencyPropertyKey              *semantic.Named
	DependencyPropertyChangedEventArgs *semantic.Named
	PropertyMetadata                   *semantic.Named
	PropertyChangedCallback            *semantic.Named
	CoerceValueCallback                *semantic.Named
	ValidateValueCallback              *semantic.Named
	FrameworkElement                   *semantic.Named
	Freezable                          *semantic.Named
	BrowsableForType                   *semantic.Named
}

// Table builds the [Symbols] of a compilation once, on first use. It is safe for concurrent use.
type Table struct {
	once sync.Once
	c    *semantic.Compilation
	syms *Symbols
}

// NewTable returns a table for c.
func NewTable(c *semantic.Compilation) *Table {
	return &Table{c: c}
}

// Symbols returns the well-known symbols, resolving them on the first call.
func (t *Table) Symbols() *Symbols {
	t.once.Do(func() { t.syms = resolve(t.c) })

	return t.syms
}

func resolve(c *semantic.Compilation) *Symbols {
	if c == nil {
		return &Symbols{}
	}

	const windows = "System.Windows."

	return &Symbols{
		Object:     c.Special(semantic.Object),
		SystemType: c.Special(semantic.SystemType),

		DependencyObject:                   c.Lookup(windows + "DependencyObject"),
		DependencyProperty:                 c.Lookup(windows + "DependencyProperty"),
		DependencyPropertyKey:              c.Lookup(windows + "DependencyPropertyKey"),
		DependencyPropertyChangedEventArgs: c.Lookup(windows + "DependencyPropertyChangedEventArgs"),
		PropertyMetadata:                   c.Lookup(windows + "PropertyMetadata"),
		PropertyChangedCallback:            c.Lookup(windows + "PropertyChangedCallback"),
		CoerceValueCallback:                c.Lookup(windows + "CoerceValueCallback"),
		ValidateValueCallback:              c.Lookup(windows + "ValidateValueCallback"),
		FrameworkElement:                   c.Lookup(windows + "FrameworkElement"),
		Freezable:                          c.Lookup(windows + "Freezable"),
		BrowsableForType:                   c.Lookup(windows + "AttachedPropertyBrowsableForTypeAttribute"),
	}
}

// Is reports whether t is exactly the well-known type k.
func Is(t semantic.Type, k *semantic.Named) bool {
	n := semantic.AsNamed(t)

	return n != nil && k != nil && n.Origin() == k.Origin()
}

// IsHandle reports whether t is exactly DependencyProperty or DependencyPropertyKey.
func (s *Symbols) IsHandle(t semantic.Type) bool {
	return Is(t, s.DependencyProperty) || Is(t, s.DependencyPropertyKey)
}

// IsMethod reports whether sym is a method named one of names declared in the well-known type
// owner.
func IsMethod(sym semantic.Symbol, owner *semantic.Named, names ...string) bool {
	m, ok := sym.(*semantic.Method)
	if !ok || owner == nil || m.Owner() == nil || m.Owner().Origin() != owner.Origin() {
		return false
	}

	if len(names) == 0 {
		return true
	}

	for _, name := range names {
		if m.Name() == name {
			return true
		}
	}

	return false
}

// IsMember reports whether sym is the member named name of the well-known type owner.
func IsMember(sym semantic.Symbol, owner *semantic.Named, name string) bool {
	return sym != nil && owner != nil && sym.Name() == name &&
		sym.Owner() != nil && sym.Owner().Origin() == owner.Origin()
}
