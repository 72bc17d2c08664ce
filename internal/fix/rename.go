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

package fix

import (
	"errors"
	"fmt"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

var (
	// ErrRenameConflict is returned when the new name is already taken in the owner.
	ErrRenameConflict = errors.New("name already in use")

	// ErrNotRenamable is returned for symbols without a declaration in the analyzed files.
	ErrNotRenamable = errors.New("symbol not declared in source")
)

// Renamer resolves [Rename] requests within one compilation.
//
// It renames each symbol at most once and refuses names used by another member of the owner
// or by an earlier rename.
//
// The Renamer uses lazy initialization for its internal maps, only allocating memory
// when the first symbol is renamed.
type Renamer struct {
	comp *semantic.Compilation

	// renamed tracks symbols that have already been processed to prevent duplicate renaming.
	renamed map[semantic.Symbol]struct{}

	// taken tracks the names introduced per owner by earlier renames.
	taken map[*semantic.Named]map[string]struct{}
}

// NewRenamer creates a new Renamer for c.
// The actual initialization of internal maps is deferred until the first call to [Renamer.Resolve].
func NewRenamer(c *semantic.Compilation) *Renamer {
	return &Renamer{comp: c}
}

// Resolve returns f with the text edits of its rename request. Fixes without a request are
// returned unchanged, a symbol renamed before yields a fix without edits.
func (r *Renamer) Resolve(f Fix) (Fix, error) {
	if r == nil || f.Rename == nil {
		return f, nil
	}

	sym, to := f.Rename.Symbol, f.Rename.To

	// Has this symbol already been renamed?
	if _, ok := r.renamed[sym]; ok {
		f.TextEdits = nil

		return f, nil
	}

	if sym == nil {
		return f, fmt.Errorf("rename to %s: %w", to, ErrNotRenamable)
	}

	decl := declaringIdent(sym)
	if decl == nil || !r.comp.IsSource(decl) {
		return f, fmt.Errorf("rename %s: %w", sym.Name(), ErrNotRenamable)
	}

	if r.conflicts(sym, to) {
		return f, fmt.Errorf("rename %s to %s: %w", sym.Name(), to, ErrRenameConflict)
	}

	// Find all occurrences of this symbol (declaration and uses)
	edits := []analysis.TextEdit{replace(decl, to)}
	for _, id := range r.comp.Uses(sym) {
		edits = append(edits, replace(id, to))
	}

	// Mark this symbol as renamed to prevent duplicate processing
	if r.renamed == nil {
		r.renamed = make(map[semantic.Symbol]struct{})
	}

	r.renamed[sym] = struct{}{}

	if owner := sym.Owner(); owner != nil {
		if r.taken == nil {
			r.taken = make(map[*semantic.Named]map[string]struct{})
		}

		if r.taken[owner] == nil {
			r.taken[owner] = make(map[string]struct{})
		}

		r.taken[owner][to] = struct{}{}
	}

	f.TextEdits = edits

	return f, nil
}

// conflicts checks whether to names another member visible in the owner of sym, including
// names introduced by earlier renames.
func (r *Renamer) conflicts(sym semantic.Symbol, to string) bool {
	owner := sym.Owner()
	if owner == nil {
		return false
	}

	if _, ok := r.taken[owner][to]; ok {
		return true
	}

	for _, other := range r.comp.LookupMember(owner, to) {
		if other != sym {
			return true
		}
	}

	return false
}

// declaringIdent returns the name in the declaration of sym.
func declaringIdent(sym semantic.Symbol) *syntax.Ident {
	switch d := sym.Decl().(type) {
	case *syntax.VarDeclarator:
		return d.Name
	case *syntax.PropertyDecl:
		return d.Name
	case *syntax.MethodDecl:
		return d.Name
	}

	return nil
}
