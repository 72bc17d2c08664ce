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

package main

import (
	"flag"

	"fillmore-labs.com/dpguard/analyzer"
)

// recordedFlags registers the analyzer flags and records their values in command line
// order, so they can be applied on top of the configuration file settings.
type recordedFlags struct {
	template *flag.FlagSet
	sets     []recordedSet
}

type recordedSet struct{ name, value string }

func newRecordedFlags() *recordedFlags {
	template := newFlagSet()
	analyzer.New().RegisterFlags(template)

	return &recordedFlags{template: template}
}

func newFlagSet() *flag.FlagSet { return flag.NewFlagSet(analyzer.Name, flag.ContinueOnError) }

// flagSet returns a flag set with recording values for all analyzer flags.
func (r *recordedFlags) flagSet() *flag.FlagSet {
	flags := newFlagSet()
	r.template.VisitAll(func(f *flag.Flag) {
		flags.Var(recorder{r, f}, f.Name, f.Usage)
	})

	return flags
}

// apply replays the recorded values on flags.
func (r *recordedFlags) apply(flags *flag.FlagSet) error {
	for _, s := range r.sets {
		if err := flags.Set(s.name, s.value); err != nil {
			return err
		}
	}

	return nil
}

type recorder struct {
	r *recordedFlags
	f *flag.Flag
}

// Set implements [flag.Value].
func (v recorder) Set(s string) error {
	if err := v.f.Value.Set(s); err != nil {
		return err
	}

	v.r.sets = append(v.r.sets, recordedSet{v.f.Name, s})

	return nil
}

// String implements [flag.Value].
func (v recorder) String() string {
	if v.f == nil {
		return ""
	}

	return v.f.Value.String()
}

// IsBoolFlag forwards the boolean property of the recorded flag.
func (v recorder) IsBoolFlag() bool {
	if v.f == nil {
		return false
	}

	b, ok := v.f.Value.(interface{ IsBoolFlag() bool })

	return ok && b.IsBoolFlag()
}
