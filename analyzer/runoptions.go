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

package analyzer

import (
	"fillmore-labs.com/dpguard/internal/config"
	"fillmore-labs.com/dpguard/internal/run"
)

// families names the rule families for options, flags and settings.
var families = [...]struct {
	family      config.Family
	name, usage string
}{
	{config.NamingRules, "naming", "member names against registered names"},
	{config.TypeRules, "types", "types and owners against registrations"},
	{config.DeclarationRules, "declarations", "backing member and accessor declarations"},
	{config.UsageRules, "usage", "how dependency properties are set"},
	{config.DocumentationRules, "documentation", "standard documentation texts"},
}

// makeRunOptions returns [run.Options] with overriding [Options] applied.
func makeRunOptions(opts Options) *run.Options {
	r := run.DefaultOptions()
	opts.apply(r)

	return r
}
