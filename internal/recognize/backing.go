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
	"go/token"

	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// BackingMember is a static field or property typed exactly DependencyProperty or
// DependencyPropertyKey.
type BackingMember struct {
	Symbol semantic.Symbol // *semantic.Field or *semantic.Property
	Name   string
	Ident  *syntax.Ident   // declaring identifier, nil for reference declarations
	Owner  *semantic.Named // containing type
	Key    bool            // typed DependencyPropertyKey

	Static   bool
	ReadOnly bool // readonly field or get-only property

	Decl  syntax.Decl // *syntax.FieldDecl or *syntax.PropertyDecl, nil for reference declarations
	Pos   token.Pos   // start of the declaring member
	Value syntax.Expr // initializer or static constructor assignment, nil when absent
}

// TryBackingMember recognizes a field declarator or property declaration as a backing member.
func TryBackingMember(ctx context.Context, node syntax.Node, m semantic.Model, k *known.Symbols) (BackingMember, bool) {
	switch n := node.(type) {
	case *syntax.VarDeclarator:
		if _, ok := n.Parent().(*syntax.FieldDecl); !ok {
			return BackingMember{}, false
		}

	case *syntax.PropertyDecl:
		if n.Indexer {
			return BackingMember{}, false
		}

	default:
		return BackingMember{}, false
	}

	return BackingMemberOf(ctx, m.SymbolOf(node), m, k)
}

// BackingMemberOf recognizes the field or property sym as a backing member.
func BackingMemberOf(ctx context.Context, sym semantic.Symbol, m semantic.Model, k *known.Symbols) (BackingMember, bool) {
	if ctx.Err() != nil {
		return BackingMember{}, false
	}

	var b BackingMember

	switch s := sym.(type) {
	case *semantic.Field:
		if s.IsConst() || !k.IsHandle(s.Type()) {
			return BackingMember{}, false
		}

		b = BackingMember{
			Symbol:   s,
			Name:     s.Name(),
			Owner:    s.Owner(),
			Key:      known.Is(s.Type(), k.DependencyPropertyKey),
			Static:   s.Static(),
			ReadOnly: s.ReadOnly(),
			Value:    s.Initializer(),
		}

		if d, ok := s.Decl().(*syntax.VarDeclarator); ok {
			b.Ident = d.Name
			b.Pos = d.Pos()
		}

		if fd := s.Declaration(); fd != nil {
			b.Decl = fd
			b.Pos = fd.Pos()
		}

	case *semantic.Property:
		if len(s.Params()) > 0 || !k.IsHandle(s.Type()) {
			return BackingMember{}, false
		}

		b = BackingMember{
			Symbol:   s,
			Name:     s.Name(),
			Owner:    s.Owner(),
			Key:      known.Is(s.Type(), k.DependencyPropertyKey),
			Static:   s.Static(),
			ReadOnly: !s.HasSetter(),
		}

		if d := s.Declaration(); d != nil {
			b.Ident = d.Name
			b.Decl = d
			b.Pos = d.Pos()
			b.Value = propertyValue(d)
		}

	default:
		return BackingMember{}, false
	}

	if b.Value == nil && b.Static {
		b.Value = staticAssignment(ctx, m, b.Owner, b.Symbol)
	}

	return b, true
}

// propertyValue returns the initializer, expression body or single returned expression of a
// property declaration.
func propertyValue(d *syntax.PropertyDecl) syntax.Expr {
	switch {
	case d.Init != nil:
		return d.Init
	case d.ExprBody != nil:
		return d.ExprBody
	}

	get := d.Getter()
	if get == nil {
		return nil
	}

	if get.ExprBody != nil {
		return get.ExprBody
	}

	if get.Body != nil && len(get.Body.Stmts) == 1 {
		if r, ok := get.Body.Stmts[0].(*syntax.ReturnStmt); ok {
			return r.X
		}
	}

	return nil
}

// staticAssignment finds `sym = value;` in a static constructor of owner.
func staticAssignment(ctx context.Context, m semantic.Model, owner *semantic.Named, sym semantic.Symbol) syntax.Expr {
	if owner == nil {
		return nil
	}

	for _, d := range owner.Decls() {
		td, ok := d.(*syntax.TypeDecl)
		if !ok {
			continue
		}

		for _, member := range td.Members {
			md, ok := member.(*syntax.MethodDecl)
			if !ok || md.MethodKind != syntax.Constructor || !md.Mods.Has(syntax.STATIC) || md.Body == nil {
				continue
			}

			for _, s := range md.Body.Stmts {
				if ctx.Err() != nil {
					return nil
				}

				es, ok := s.(*syntax.ExprStmt)
				if !ok {
					continue
				}

				as, ok := es.X.(*syntax.AssignExpr)
				if ok && as.Op == syntax.ASSIGN && sameSymbol(m.SymbolOf(as.Lhs), sym) {
					return as.Rhs
				}
			}
		}
	}

	return nil
}
