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

// Package analyzer implements the dpguard checks for WPF dependency properties.
//
// # Overview
//
// dpguard reads C# sources, recognizes dependency property registrations and the members
// around them, and reports declarations and usages that deviate from the WPF conventions.
//
// # Example
//
// Before:
//
//	public static readonly DependencyProperty Error = DependencyProperty.Register(
//	    "Bar", typeof(int), typeof(FooControl), new PropertyMetadata(default(int)));
//
// After applying dpguard's suggested fixes:
//
//	public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
//	    nameof(Bar), typeof(int), typeof(FooControl), new PropertyMetadata(default(int)));
//
// # Rule Families
//
//   - Naming: backing members, keys, accessors and callbacks match the registered name
//   - Types: CLR types, owners, defaults and casts match the registration
//   - Declarations: backing members are static readonly, accessors only forward
//   - Usage: read-only keys, SetCurrentValue and nameof
//   - Documentation: standard texts for backing members, accessors and callbacks
package analyzer
