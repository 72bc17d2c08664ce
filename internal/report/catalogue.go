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
	"slices"
	"strings"

	"fillmore-labs.com/dpguard/internal/config"
)

// Rule descriptors. The ids are stable: suppressions and settings refer to them.
var (
	WPF0001 = &Descriptor{
		ID:       "WPF0001",
		Title:    "Backing field for a DependencyProperty should match registered name",
		Format:   "Field '%s' that is backing field for the DependencyProperty registered as '%s' must be named '%s'",
		Family:   config.NamingRules,
		Severity: Warning,
	}
	WPF0002 = &Descriptor{
		ID:       "WPF0002",
		Title:    "Backing field for a DependencyPropertyKey should match registered name",
		Format:   "Field '%s' that is backing field for the DependencyPropertyKey registered as '%s' must be named '%s'",
		Family:   config.NamingRules,
		Severity: Warning,
	}
	WPF0003 = &Descriptor{
		ID:       "WPF0003",
		Title:    "CLR property for a DependencyProperty should match registered name",
		Format:   "Property '%s' must be named '%s'",
		Family:   config.NamingRules,
		Severity: Warning,
	}
	WPF0004 = &Descriptor{
		ID:       "WPF0004",
		Title:    "CLR method for a DependencyProperty must match registered name",
		Format:   "Method '%s' must be named '%s'",
		Family:   config.NamingRules,
		Severity: Warning,
	}
	WPF0005 = &Descriptor{
		ID:       "WPF0005",
		Title:    "Name of PropertyChangedCallback should match registered name",
		Format:   "Method '%s' should be named '%s'",
		Family:   config.NamingRules,
		Severity: Info,
	}
	WPF0006 = &Descriptor{
		ID:       "WPF0006",
		Title:    "Name of CoerceValueCallback should match registered name",
		Format:   "Method '%s' should be named '%s'",
		Family:   config.NamingRules,
		Severity: Info,
	}
	WPF0007 = &Descriptor{
		ID:       "WPF0007",
		Title:    "Name of ValidateValueCallback should match registered name",
		Format:   "Method '%s' should be named '%s'",
		Family:   config.NamingRules,
		Severity: Info,
	}
	WPF0010 = &Descriptor{
		ID:       "WPF0010",
		Title:    "Default value type must match registered type",
		Format:   "Default value for '%s' must be of type %s",
		Family:   config.TypeRules,
		Severity: Error,
	}
	WPF0011 = &Descriptor{
		ID:       "WPF0011",
		Title:    "Containing type should be used as registered owner",
		Format:   "Register containing type: '%s' as owner",
		Family:   config.TypeRules,
		Severity: Warning,
	}
	WPF0012 = &Descriptor{
		ID:       "WPF0012",
		Title:    "CLR property type should match registered type",
		Format:   "Property '%s' must be of type %s",
		Family:   config.TypeRules,
		Severity: Warning,
	}
	WPF0013 = &Descriptor{
		ID:       "WPF0013",
		Title:    "CLR accessor for attached property must match registered type",
		Format:   "Value type must match registered type %s",
		Family:   config.TypeRules,
		Severity: Warning,
	}
	WPF0014 = &Descriptor{
		ID:       "WPF0014",
		Title:    "SetValue must use registered type",
		Format:   "%s must use registered type %s",
		Family:   config.TypeRules,
		Severity: Error,
	}
	WPF0015 = &Descriptor{
		ID:       "WPF0015",
		Title:    "Registered owner type must inherit DependencyObject",
		Format:   "Maybe you intended to use 'RegisterAttached'?",
		Family:   config.TypeRules,
		Severity: Warning,
	}
	WPF0016 = &Descriptor{
		ID:       "WPF0016",
		Title:    "Default value is shared reference type",
		Format:   "Default value for '%s' is a reference type that will be shared among all instances",
		Family:   config.TypeRules,
		Severity: Warning,
	}
	WPF0019 = &Descriptor{
		ID:       "WPF0019",
		Title:    "Cast sender to correct type",
		Format:   "Sender is of type %s",
		Family:   config.TypeRules,
		Severity: Warning,
	}
	WPF0020 = &Descriptor{
		ID:       "WPF0020",
		Title:    "Cast value to correct type",
		Format:   "Value is of type %s",
		Family:   config.TypeRules,
		Severity: Warning,
	}
	WPF0023 = &Descriptor{
		ID:       "WPF0023",
		Title:    "The callback is trivial, convert to lambda",
		Format:   "Convert to lambda",
		Family:   config.DeclarationRules,
		Severity: Info,
	}
	WPF0030 = &Descriptor{
		ID:       "WPF0030",
		Title:    "Backing field for a DependencyProperty should be static and readonly",
		Format:   "Field '%s' is backing field for a DependencyProperty and should be static and readonly",
		Family:   config.DeclarationRules,
		Severity: Warning,
	}
	WPF0031 = &Descriptor{
		ID:       "WPF0031",
		Title:    "DependencyPropertyKey member must be declared before DependencyProperty member",
		Format:   "DependencyPropertyKey member '%s' must be declared before '%s'",
		Family:   config.DeclarationRules,
		Severity: Error,
	}
	WPF0032 = &Descriptor{
		ID:       "WPF0032",
		Title:    "Use same dependency property in get and set",
		Format:   "Property '%s' must access same dependency property in getter and setter",
		Family:   config.DeclarationRules,
		Severity: Error,
	}
	WPF0033 = &Descriptor{
		ID:       "WPF0033",
		Title:    "Add [AttachedPropertyBrowsableForType]",
		Format:   "Add [AttachedPropertyBrowsableForType(typeof(%s))]",
		Family:   config.DeclarationRules,
		Severity: Info,
	}
	WPF0034 = &Descriptor{
		ID:       "WPF0034",
		Title:    "Use correct argument for [AttachedPropertyBrowsableForType]",
		Format:   "Use [AttachedPropertyBrowsableForType(typeof(%s))]",
		Family:   config.DeclarationRules,
		Severity: Info,
	}
	WPF0035 = &Descriptor{
		ID:       "WPF0035",
		Title:    "Use SetValue in setter",
		Format:   "Use SetValue in setter",
		Family:   config.DeclarationRules,
		Severity: Error,
	}
	WPF0036 = &Descriptor{
		ID:       "WPF0036",
		Title:    "Avoid side effects in CLR accessors",
		Format:   "Avoid side effects in CLR accessors",
		Family:   config.DeclarationRules,
		Severity: Warning,
	}
	WPF0040 = &Descriptor{
		ID:       "WPF0040",
		Title:    "A readonly DependencyProperty must be set with DependencyPropertyKey",
		Format:   "Set '%s' using '%s'",
		Family:   config.UsageRules,
		Severity: Error,
	}
	WPF0041 = &Descriptor{
		ID:       "WPF0041",
		Title:    "Set mutable dependency properties using SetCurrentValue",
		Format:   "Use SetCurrentValue(%s, %s)",
		Family:   config.UsageRules,
		Severity: Warning,
	}
	WPF0043 = &Descriptor{
		ID:       "WPF0043",
		Title:    "Don't set DataContext and Style using SetCurrentValue",
		Format:   "Use SetValue(%s, %s)",
		Family:   config.UsageRules,
		Severity: Warning,
	}
	WPF0060 = &Descriptor{
		ID:       "WPF0060",
		Title:    "Backing member for DependencyProperty should have standard documentation text",
		Format:   "Backing member for DependencyProperty should have standard documentation text",
		Family:   config.DocumentationRules,
		Severity: Info,
	}
	WPF0061 = &Descriptor{
		ID:       "WPF0061",
		Title:    "Accessor method should have standard documentation text",
		Format:   "Accessor method should have standard documentation text",
		Family:   config.DocumentationRules,
		Severity: Info,
	}
	WPF0062 = &Descriptor{
		ID:       "WPF0062",
		Title:    "Property changed callback should have standard documentation text",
		Format:   "Property changed callback should have standard documentation text",
		Family:   config.DocumentationRules,
		Severity: Info,
	}
	WPF0150 = &Descriptor{
		ID:       "WPF0150",
		Title:    "Use nameof() instead of literal",
		Format:   "Use nameof(%s)",
		Family:   config.UsageRules,
		Severity: Info,
	}
)

// InternalError describes failures inside a rule, reported instead of aborting the run.
var InternalError = &Descriptor{
	ID:       "WPF9999",
	Title:    "Internal error",
	Format:   "Internal error in %s: %v",
	Severity: Error,
}

var catalogue = []*Descriptor{
	WPF0001, WPF0002, WPF0003, WPF0004, WPF0005, WPF0006, WPF0007,
	WPF0010, WPF0011, WPF0012, WPF0013, WPF0014, WPF0015, WPF0016, WPF0019, WPF0020,
	WPF0023, WPF0030, WPF0031, WPF0032, WPF0033, WPF0034, WPF0035, WPF0036,
	WPF0040, WPF0041, WPF0043,
	WPF0060, WPF0061, WPF0062,
	WPF0150,
}

// Catalogue returns all rule descriptors ordered by id.
func Catalogue() []*Descriptor { return slices.Clone(catalogue) }

// Lookup returns the descriptor with the given id, ignoring case.
func Lookup(id string) (*Descriptor, bool) {
	for _, d := range catalogue {
		if strings.EqualFold(d.ID, id) {
			return d, true
		}
	}

	if strings.EqualFold(InternalError.ID, id) {
		return InternalError, true
	}

	return nil, false
}
