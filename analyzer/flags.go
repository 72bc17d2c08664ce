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
	"flag"

	"fillmore-labs.com/dpguard/internal/config"
	"fillmore-labs.com/dpguard/internal/run"
)

// RegisterFlags binds the analyzer options to command line flag values.
// A nil flag set value defaults to the program's command line.
func (a *Analyzer) RegisterFlags(flags *flag.FlagSet) { registerFlags(a.opts, flags) }

func registerFlags(o *run.Options, flags *flag.FlagSet) {
	if flags == nil {
		flags = flag.CommandLine
	}

	for _, f := range families {
		flags.Var(boolValue[config.Family, *config.BitMask[config.Family]]{&o.Families, f.family}, f.name, "check "+f.usage)
	}

	flags.Var(boolValue[config.Behavior, *config.BitMask[config.Behavior]]{&o.Behavior, config.IncludeGenerated}, "generated", "check generated files")
	flags.Var(fixesValue{o}, "fixes", "suggested fixes: off, suggest or rename")
	flags.Var(idsValue{o, true}, "disable", "comma separated list of rule ids to disable")
	flags.Var(idsValue{o, false}, "enable", "comma separated list of rule ids to enable")
	flags.IntVar(&o.Workers, "jobs", o.Workers, "maximum number of concurrent rule tasks")
}
