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

package run

import (
	"runtime"

	"fillmore-labs.com/dpguard/internal/config"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/rules"
)

// Options represent the configuration of a dpguard run.
type Options struct {
	// Families represent the rule families to be enabled.
	Families config.BitMask[config.Family]

	// Behavior holds file selection and fix options.
	Behavior config.BitMask[config.Behavior]

	// Disabled holds the ids of individually disabled rules.
	Disabled map[string]bool

	// Severities overrides the default severity per rule id.
	Severities map[string]report.Severity

	// Workers limits the number of concurrently evaluated rule tasks.
	Workers int
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Families: config.NewBitMask(config.AllFamilies),
		Behavior: config.NewBitMask(config.SuggestFixes),
		Workers:  runtime.GOMAXPROCS(0),
	}
}

// Enabled reports whether the rule described by d runs.
func (r *Options) Enabled(d *report.Descriptor) bool {
	return r.Families.Enabled(d.Family) && !r.Disabled[d.ID]
}

// Rules returns the enabled rules.
func (r *Options) Rules() []rules.Rule {
	all := rules.All()

	enabled := all[:0]
	for _, rule := range all {
		if r.Enabled(rule.Descriptor) {
			enabled = append(enabled, rule)
		}
	}

	return enabled
}
