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

package settings

import (
	"fmt"
	"maps"
	"slices"

	"fillmore-labs.com/dpguard/analyzer"
	"fillmore-labs.com/dpguard/analyzer/level"
)

// ErrUnknownRule is returned for rule ids missing from the rule catalogue.
var ErrUnknownRule = analyzer.ErrUnknownRule

// Settings represents the configuration options of a dpguard run.
type Settings struct {
	// Naming enables naming rules.
	Naming *bool `json:"naming,omitzero" toml:"naming,omitempty" yaml:"naming,omitempty"`
	// Types enables type rules.
	Types *bool `json:"types,omitzero" toml:"types,omitempty" yaml:"types,omitempty"`
	// Declarations enables declaration rules.
	Declarations *bool `json:"declarations,omitzero" toml:"declarations,omitempty" yaml:"declarations,omitempty"`
	// Usage enables usage rules.
	Usage *bool `json:"usage,omitzero" toml:"usage,omitempty" yaml:"usage,omitempty"`
	// Documentation enables documentation rules.
	Documentation *bool `json:"documentation,omitzero" toml:"documentation,omitempty" yaml:"documentation,omitempty"`
	// Generated enables diagnostics in generated files.
	Generated *bool `json:"generated,omitzero" toml:"generated,omitempty" yaml:"generated,omitempty"`
	// Fixes selects the suggested fixes.
	Fixes *level.Fixes `json:"fixes,omitzero" toml:"fixes,omitempty" yaml:"fixes,omitempty"`
	// Jobs limits the number of concurrent rule tasks.
	Jobs *int `json:"jobs,omitzero" toml:"jobs,omitempty" yaml:"jobs,omitempty"`
	// Disable lists rule ids to disable.
	Disable []string `json:"disable,omitempty" toml:"disable,omitempty" yaml:"disable,omitempty"`
	// Severity overrides the severity per rule id.
	Severity map[string]string `json:"severity,omitempty" toml:"severity,omitempty" yaml:"severity,omitempty"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the dpguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() ([]analyzer.Option, error) {
	var opts []analyzer.Option

	opts = appendOption(opts, s.Naming, analyzer.WithNaming)
	opts = appendOption(opts, s.Types, analyzer.WithTypes)
	opts = appendOption(opts, s.Declarations, analyzer.WithDeclarations)
	opts = appendOption(opts, s.Usage, analyzer.WithUsage)
	opts = appendOption(opts, s.Documentation, analyzer.WithDocumentation)
	opts = appendOption(opts, s.Generated, analyzer.WithGenerated)
	opts = appendOption(opts, s.Fixes, analyzer.WithFixes)
	opts = appendOption(opts, s.Jobs, analyzer.WithWorkers)

	if len(s.Disable) > 0 {
		for _, id := range s.Disable {
			if _, ok := analyzer.Lookup(id); !ok {
				return nil, fmt.Errorf("disable: %w %q", ErrUnknownRule, id)
			}
		}

		opts = append(opts, analyzer.WithDisabled(s.Disable...))
	}

	for _, id := range slices.Sorted(maps.Keys(s.Severity)) {
		if _, ok := analyzer.Lookup(id); !ok {
			return nil, fmt.Errorf("severity: %w %q", ErrUnknownRule, id)
		}

		sev, err := analyzer.ParseSeverity(s.Severity[id])
		if err != nil {
			return nil, fmt.Errorf("severity of %s: %w", id, err)
		}

		opts = append(opts, analyzer.WithSeverity(id, sev))
	}

	return opts, nil
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
