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

package semantic

import (
	"go/constant"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// Model is the read-only view of bound source that pattern recognizers and rules query.
type Model interface {
	// SymbolOf returns the symbol declared by a declaration node or referenced by an
	// expression, or nil.
	SymbolOf(n syntax.Node) Symbol

	// TypeOf returns the type of an expression or type syntax, or nil when unknown.
	TypeOf(x syntax.Expr) Type

	// ConstantOf returns the compile-time value of x, or nil.
	ConstantOf(x syntax.Expr) constant.Value

	// ClassifyConversion classifies the conversion of x to type to.
	ClassifyConversion(x syntax.Expr, to Type) Conversion

	// IsAssignable reports whether from converts implicitly to to.
	IsAssignable(from, to Type) bool

	// DeclarationOf returns the declaring node of a symbol declared in source.
	DeclarationOf(s Symbol) syntax.Node

	// ParameterOf returns the parameter an argument is bound to, or nil.
	ParameterOf(a *syntax.Argument) *Param
}

var _ Model = (*Compilation)(nil)

// Compilation is the result of [Check]: the analyzed files together with everything bound in
// them. It is safe for concurrent use.
type Compilation struct {
	Fset  *token.FileSet
	Files []*syntax.File

	refs     []*syntax.File
	global   *Namespace
	specials map[Special]*Named

	types   map[syntax.Expr]Type
	symbols map[syntax.Node]Symbol
	consts  map[syntax.Expr]constant.Value
	params  map[*syntax.Argument]*Param
	uses    map[*syntax.Ident]Symbol

	nsScopes map[syntax.Node]*nsScope // by *syntax.File and *syntax.NamespaceDecl
}

// SymbolOf implements [Model].
func (c *Compilation) SymbolOf(n syntax.Node) Symbol {
	if n == nil {
		return nil
	}

	if x, ok := n.(syntax.Expr); ok {
		n = unparen(x)
	}

	return c.symbols[n]
}

// TypeOf implements [Model].
func (c *Compilation) TypeOf(x syntax.Expr) Type {
	if x == nil {
		return nil
	}

	return c.types[x]
}

// ConstantOf implements [Model].
func (c *Compilation) ConstantOf(x syntax.Expr) constant.Value {
	if x == nil {
		return nil
	}

	return c.consts[x]
}

// ParameterOf implements [Model].
func (c *Compilation) ParameterOf(a *syntax.Argument) *Param { return c.params[a] }

// DeclarationOf implements [Model]. It returns nil for symbols declared in the reference
// declarations.
func (c *Compilation) DeclarationOf(s Symbol) syntax.Node {
	if s == nil {
		return nil
	}

	d := s.Decl()
	if d == nil || !c.IsSource(d) {
		return nil
	}

	return d
}

// IsSource reports whether n belongs to one of the analyzed files.
func (c *Compilation) IsSource(n syntax.Node) bool { return c.FileOf(n) != nil }

// FileOf returns the analyzed file containing n, or nil.
func (c *Compilation) FileOf(n syntax.Node) *syntax.File {
	if n == nil {
		return nil
	}

	pos := n.Pos()
	for _, f := range c.Files {
		if f.Pos() <= pos && pos <= f.End() {
			return f
		}
	}

	return nil
}

// Special returns the predefined type, or nil when the reference declarations lack it.
func (c *Compilation) Special(s Special) *Named { return c.specials[s] }

// Lookup finds a type by namespace-qualified name. Nested types are separated by '+', and
// generic arity is given with a backtick suffix, as in "System.Nullable`1".
func (c *Compilation) Lookup(fullName string) *Named {
	typePath := strings.Split(fullName, "+")
	parts := strings.Split(typePath[0], ".")

	ns := c.global
	for _, p := range parts[:len(parts)-1] {
		child, ok := ns.children[p]
		if !ok {
			return nil
		}

		ns = child
	}

	t := ns.Type(splitArity(parts[len(parts)-1]))

	for _, nested := range typePath[1:] {
		if t == nil {
			return nil
		}

		name, arity := splitArity(nested)
		t = nestedType(t, name, arity)
	}

	return t
}

func splitArity(name string) (string, int) {
	base, arity, ok := strings.Cut(name, "`")
	if !ok {
		return name, 0
	}

	n, err := strconv.Atoi(arity)
	if err != nil {
		return name, 0
	}

	return base, n
}

// Uses returns the identifiers in the analyzed files that refer to s, in source order.
// Declaring identifiers are not included.
func (c *Compilation) Uses(s Symbol) []*syntax.Ident {
	var list []*syntax.Ident

	for id, sym := range c.uses {
		if sameSymbol(sym, s) && c.IsSource(id) {
			list = append(list, id)
		}
	}

	slices.SortFunc(list, func(a, b *syntax.Ident) int { return int(a.Pos()) - int(b.Pos()) })

	return list
}

func sameSymbol(a, b Symbol) bool {
	if a == b {
		return true
	}

	an, ok1 := a.(*Named)
	bn, ok2 := b.(*Named)

	return ok1 && ok2 && an.Origin() == bn.Origin()
}

// EnclosingType returns the innermost type declaration containing n.
func (c *Compilation) EnclosingType(n syntax.Node) *Named {
	for p := n; p != nil; p = p.Parent() {
		switch p.(type) {
		case *syntax.TypeDecl, *syntax.EnumDecl, *syntax.DelegateDecl:
			if t, ok := c.symbols[p].(*Named); ok {
				return t
			}
		}
	}

	return nil
}

// EnclosingMember returns the symbol of the innermost member declaration containing n: a
// field, property, event, method or constructor.
func (c *Compilation) EnclosingMember(n syntax.Node) Symbol {
	for p := n; p != nil; p = p.Parent() {
		switch p.(type) {
		case *syntax.VarDeclarator:
			if _, local := c.symbols[p].(*Local); !local {
				return c.symbols[p]
			}

		case *syntax.PropertyDecl, *syntax.EventDecl, *syntax.EnumMember:
			return c.symbols[p]

		case *syntax.MethodDecl:
			if m, ok := c.symbols[p].(*Method); ok && m.mkind != LocalFunction {
				return m
			}

		case *syntax.TypeDecl:
			return nil
		}
	}

	return nil
}

func unparen(x syntax.Expr) syntax.Node {
	for {
		p, ok := x.(*syntax.ParenExpr)
		if !ok {
			return x
		}

		x = p.X
	}
}
