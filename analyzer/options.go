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
	"log/slog"
	"strings"

	"fillmore-labs.com/dpguard/analyzer/level"
	"fillmore-labs.com/dpguard/internal/config"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/run"
)

// Option configures specific behavior of a [New] dpguard analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithNaming is an [Option] to configure whether naming rules are enabled.
func WithNaming(naming bool) Option { return familyOption{family: config.NamingRules, enabled: naming} }

// WithTypes is an [Option] to configure whether type rules are enabled.
func WithTypes(types bool) Option { return familyOption{family: config.TypeRules, enabled: types} }

// WithDeclarations is an [Option] to configure whether declaration rules are enabled.
func WithDeclarations(declarations bool) Option {
	return familyOption{family: config.DeclarationRules, enabled: declarations}
}

// WithUsage is an [Option] to configure whether usage rules are enabled.
func WithUsage(usage bool) Option { return familyOption{family: config.UsageRules, enabled: usage} }

// WithDocumentation is an [Option] to configure whether documentation rules are enabled.
func WithDocumentation(documentation bool) Option {
	return familyOption{family: config.DocumentationRules, enabled: documentation}
}

type familyOption struct {
	family  config.Family
	enabled bool
}

func (o familyOption) apply(r *run.Options) {
	r.Families.Set(o.family, o.enabled)
}

func (o familyOption) LogAttr() slog.Attr {
	for _, f := range families {
		if f.family == o.family {
			return slog.Bool(f.name, o.enabled)
		}
	}

	return slog.Bool("family", o.enabled)
}

// WithDisabled is an [Option] to disable individual rules by id. Unknown ids are ignored.
func WithDisabled(ids ...string) Option { return rulesOption{ids: ids, disabled: true} }

// WithEnabled is an [Option] to enable individual rules previously disabled. Rules of
// disabled families stay off.
func WithEnabled(ids ...string) Option { return rulesOption{ids: ids} }

type rulesOption struct {
	ids      []string
	disabled bool
}

func (o rulesOption) apply(r *run.Options) {
	for _, id := range o.ids {
		d, ok := report.Lookup(id)
		if !ok {
			continue
		}

		if !o.disabled {
			delete(r.Disabled, d.ID)

			continue
		}

		if r.Disabled == nil {
			r.Disabled = make(map[string]bool)
		}

		r.Disabled[d.ID] = true
	}
}

func (o rulesOption) LogAttr() slog.Attr {
	key := "enable"
	if o.disabled {
		key = "disable"
	}

	return slog.String(key, strings.Join(o.ids, ","))
}

// WithSeverity is an [Option] to override the severity diagnostics of rule id are reported with.
func WithSeverity(id string, severity Severity) Option {
	return severityOption{id: id, severity: severity}
}

type severityOption struct {
	id       string
	severity Severity
}

func (o severityOption) apply(r *run.Options) {
	d, ok := report.Lookup(o.id)
	if !ok {
		return
	}

	if r.Severities == nil {
		r.Severities = make(map[string]report.Severity)
	}

	r.Severities[d.ID] = o.severity
}

func (o severityOption) LogAttr() slog.Attr {
	return slog.String("severity", o.id+"="+o.severity.String())
}

// WithFixes is an [Option] to configure which fixes are suggested.
func WithFixes(fixes level.Fixes) Option { return fixesOption{fixes: fixes} }

type fixesOption struct{ fixes level.Fixes }

func (o fixesOption) apply(r *run.Options) {
	setFixes(r, o.fixes)
}

func (o fixesOption) LogAttr() slog.Attr {
	return slog.String("fixes", o.fixes.String())
}

func setFixes(r *run.Options, fixes level.Fixes) {
	r.Behavior.Set(config.SuggestFixes, fixes != level.FixesOff)
	r.Behavior.Set(config.RenameSymbols, fixes == level.FixesRename)
}

func fixesOf(r *run.Options) level.Fixes {
	switch {
	case !r.Behavior.Enabled(config.SuggestFixes):
		return level.FixesOff
	case r.Behavior.Enabled(config.RenameSymbols):
		return level.FixesRename
	default:
		return level.FixesSuggest
	}
}

// WithWorkers is an [Option] to limit the number of concurrently evaluated rule tasks.
// Values below one keep the default.
func WithWorkers(workers int) Option { return workersOption{workers: workers} }

type workersOption struct{ workers int }

func (o workersOption) apply(r *run.Options) {
	if o.workers > 0 {
		r.Workers = o.workers
	}
}

func (o workersOption) LogAttr() slog.Attr {
	return slog.Int("workers", o.workers)
}
