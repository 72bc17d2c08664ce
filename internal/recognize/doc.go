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

// Package recognize recovers dependency property facts from bound syntax.
//
// Recognizers are pure functions of a node, the semantic model and the well-known symbols of
// a compilation. They never fail: a node that does not have the expected shape, refers to
// unresolved symbols or is cut short by cancellation is simply not recognized. Facts that
// depend on absent arguments are left empty while the remaining facts are still reported.
//
// Alias chains between backing members (key projections, AddOwner calls and plain aliases)
// are followed up to [MaxDepth] steps, guarded by a visited set; longer or cyclic chains are
// not resolved.
package recognize
