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

// Package dispatch runs the convention rules over a compilation.
//
// Every syntax node is visited once. Each rule registered for the node's kind is evaluated as
// an independent task: a panicking rule yields an internal error diagnostic for its node and
// does not affect the other tasks.
package dispatch

import (
	"context"
	"fmt"
	"runtime/trace"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/dpguard/internal/astutil"
	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/rules"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// Registry maps syntax kinds to the rules evaluated on nodes of that kind.
type Registry struct {
	byKind map[syntax.Kind][]rules.Rule
	count  int
}

// NewRegistry registers rs for the kinds each rule names.
func NewRegistry(rs ...rules.Rule) *Registry {
	r := &Registry{byKind: make(map[syntax.Kind][]rules.Rule)}

	for _, rule := range rs {
		for _, k := range rule.Kinds {
			r.byKind[k] = append(r.byKind[k], rule)
		}

		r.count++
	}

	return r
}

// Rules returns the rules registered for kind.
func (r *Registry) Rules(kind syntax.Kind) []rules.Rule { return r.byKind[kind] }

// Len returns the number of registered rules.
func (r *Registry) Len() int { return r.count }

// Options configures a [Registry.Run].
type Options struct {
	// Workers limits the number of concurrently evaluated tasks, unlimited when not positive.
	Workers int

	// Skip excludes files from the walk.
	Skip func(f *syntax.File) bool
}

// Run evaluates the registered rules on every node of the analyzed files of c and returns
// the sorted, de-duplicated diagnostics. The result does not depend on task scheduling.
//
// A cancelled context stops scheduling new tasks, Run then returns the context error.
func (r *Registry) Run(ctx context.Context, c *semantic.Compilation, k *known.Symbols, opts Options) ([]report.Diagnostic, error) {
	defer trace.StartRegion(ctx, "dispatch.Run").End()

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	pass := rules.NewPass(gctx, c, k)

	var bag report.Bag

walk:
	for _, f := range c.Files {
		if opts.Skip != nil && opts.Skip(f) {
			continue
		}

		for n := range syntax.Preorder(f) {
			if gctx.Err() != nil {
				break walk
			}

			for _, rule := range r.byKind[n.Kind()] {
				g.Go(func() error {
					bag.Add(evaluate(pass, rule, n)...)

					return nil
				})
			}
		}
	}

	_ = g.Wait() // tasks never fail

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}

	return bag.Result(), nil
}

// evaluate runs a single rule on n, converting a panic into an internal error diagnostic.
func evaluate(p *rules.Pass, rule rules.Rule, n syntax.Node) (diags []report.Diagnostic) {
	defer func() {
		if v := recover(); v != nil {
			diags = []report.Diagnostic{astutil.InternalError(n, rule.Descriptor.ID, v)}
		}
	}()

	return rule.Check(p, n)
}
