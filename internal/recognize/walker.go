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

package recognize

import (
	"context"
	"sync"

	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// References finds identifiers bound to a symbol in a subtree. Instances are pooled; acquire
// one with [WithReferences].
type References struct {
	ctx  context.Context
	m    semantic.Model
	root syntax.Node
	refs []*syntax.Ident
}

var referencesPool = sync.Pool{New: func() any { return new(References) }}

// WithReferences runs f with a pooled [References] walker over root. The walker is reset and
// released when f returns or panics, and must not be retained.
func WithReferences[T any](ctx context.Context, root syntax.Node, m semantic.Model, f func(r *References) T) T {
	r := referencesPool.Get().(*References)
	r.ctx, r.m, r.root = ctx, m, root

	defer func() {
		r.reset()
		referencesPool.Put(r)
	}()

	return f(r)
}

func (r *References) reset() {
	clear(r.refs)
	r.refs = r.refs[:0]
	r.ctx, r.m, r.root = nil, nil, nil
}

// Of returns the identifiers below the root bound to sym, in source order. The result is only
// valid until the next call. It returns nil when the context is cancelled.
func (r *References) Of(sym semantic.Symbol) []*syntax.Ident {
	clear(r.refs)
	r.refs = r.refs[:0]

	if sym == nil || r.root == nil {
		return nil
	}

	cancelled := false

	syntax.Inspect(r.root, func(n syntax.Node) bool {
		if cancelled {
			return false
		}

		id, ok := n.(*syntax.Ident)
		if !ok {
			return n != nil
		}

		if r.ctx.Err() != nil {
			cancelled = true

			return false
		}

		if sameSymbol(r.m.SymbolOf(id), sym) {
			r.refs = append(r.refs, id)
		}

		return false
	})

	if cancelled {
		return nil
	}

	return r.refs
}

// Count returns the number of references to sym below the root, or -1 when cancelled.
func (r *References) Count(sym semantic.Symbol) int {
	refs := r.Of(sym)
	if refs == nil && r.ctx.Err() != nil {
		return -1
	}

	return len(refs)
}

// visitedSet guards alias chains against cycles.
type visitedSet map[semantic.Symbol]struct{}

var visitedPool = sync.Pool{New: func() any { return make(visitedSet) }}

func acquireVisited() visitedSet { return visitedPool.Get().(visitedSet) }

func (v visitedSet) release() {
	clear(v)
	visitedPool.Put(v)
}

// add records sym and reports whether it was not yet visited.
func (v visitedSet) add(sym semantic.Symbol) bool {
	if _, ok := v[sym]; ok {
		return false
	}

	v[sym] = struct{}{}

	return true
}

func sameSymbol(a, b semantic.Symbol) bool {
	if a == nil || b == nil {
		return false
	}

	if a == b {
		return true
	}

	an, ok1 := a.(*semantic.Named)
	bn, ok2 := b.(*semantic.Named)

	return ok1 && ok2 && an.Origin() == bn.Origin()
}
