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

package config

// Family groups related rules so they can be enabled and disabled together.
type Family uint8

const (
	// NamingRules check member names against the registered name (WPF0001-WPF0007).
	NamingRules Family = 1 << iota

	// TypeRules check types and owners against the registration (WPF0010-WPF0020).
	TypeRules

	// DeclarationRules check the shape of backing members and CLR accessors (WPF0023-WPF0036).
	DeclarationRules

	// UsageRules check how properties are set (WPF0040-WPF0043, WPF0150).
	UsageRules

	// DocumentationRules check standard documentation texts (WPF0060-WPF0062).
	DocumentationRules

	// AllFamilies enables every rule family.
	AllFamilies = NamingRules | TypeRules | DeclarationRules | UsageRules | DocumentationRules
)

// Behavior represents configuration options for the analysis run.
type Behavior uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Behavior = 1 << iota

	// SuggestFixes attaches suggested fixes to diagnostics.
	SuggestFixes

	// RenameSymbols allows fixes that rename a symbol at all its uses in the compilation.
	RenameSymbols
)
