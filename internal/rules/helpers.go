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

package rules

import (
	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/recognize"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// handle traces the backing member sym to its registration.
func (p *Pass) handle(sym semantic.Symbol) (recognize.Handle, bool) {
	if sym == nil {
		return recognize.Handle{}, false
	}

	return recognize.ResolveHandle(p.Context, sym, p.Comp, p.Known)
}

// backing recognizes a backing member declared in source and traces it.
func (p *Pass) backing(n syntax.Node) (recognize.BackingMember, recognize.Handle, bool) {
	b, ok := recognize.TryBackingMember(p.Context, n, p.Comp, p.Known)
	if !ok || b.Ident == nil {
		return recognize.BackingMember{}, recognize.Handle{}, false
	}

	h, ok := p.handle(b.Symbol)

	return b, h, ok
}

// text returns the source text of n.
func text(n syntax.Node) string {
	if f := syntax.FileOf(n); f != nil {
		return f.Text(n)
	}

	return ""
}

// qualified returns the name of member sym as written at n.
func (p *Pass) qualified(sym semantic.Symbol, n syntax.Node) string {
	owner := sym.Owner()
	if owner == nil {
		return sym.Name()
	}

	if from := p.Comp.EnclosingType(n); from != nil && (owner.Origin() == from.Origin() || semantic.IsDerivedFrom(from, owner)) {
		return sym.Name()
	}

	return p.Comp.TypeName(owner, n) + "." + sym.Name()
}

// lenient reports whether t is an interface or object, types that only conflict with another
// type when neither converts to the other.
func lenient(t semantic.Type) bool { return semantic.IsInterface(t) || semantic.IsObject(t) }

// typeMismatch reports whether a declared type conflicts with the registered type.
func typeMismatch(c *semantic.Compilation, got, want semantic.Type) bool {
	if got == nil || want == nil || semantic.Identical(got, want) {
		return false
	}

	if lenient(got) || lenient(want) {
		return !c.IsAssignable(got, want) && !c.IsAssignable(want, got)
	}

	return true
}

// castRelated reports whether a cast from a value of type have to t can succeed: the types are
// identical, differ by nullability, or are related by reference or boxing conversions.
func castRelated(c *semantic.Compilation, t, have semantic.Type) bool {
	if semantic.Identical(t, have) {
		return true
	}

	if e := semantic.NullableElem(t); e != nil && semantic.Identical(e, have) {
		return true
	}

	if e := semantic.NullableElem(have); e != nil && semantic.Identical(e, t) {
		return true
	}

	for _, k := range [...]semantic.Conversion{c.Classify(have, t), c.Classify(t, have)} {
		switch k {
		case semantic.ImplicitReference, semantic.ExplicitReference, semantic.Boxing, semantic.Unboxing:
			return true
		}
	}

	return false
}

// inConstructor reports whether n is inside an instance or static constructor.
func inConstructor(p *Pass, n syntax.Node) bool {
	m, ok := p.Comp.EnclosingMember(n).(*semantic.Method)

	return ok && (m.MethodKind() == semantic.Constructor || m.MethodKind() == semantic.StaticConstructor)
}

// freshLocal reports whether x names a local initialized with an object creation.
func freshLocal(p *Pass, x syntax.Expr) bool {
	x = syntax.Unparen(x)
	if _, ok := x.(*syntax.ObjectCreation); ok {
		return true
	}

	l, ok := p.Comp.SymbolOf(x).(*semantic.Local)
	if !ok {
		return false
	}

	d, ok := l.Decl().(*syntax.VarDeclarator)
	if !ok || d.Init == nil {
		return false
	}

	_, ok = syntax.Unparen(d.Init).(*syntax.ObjectCreation)

	return ok
}

// isDataContextOrStyle reports whether sym is FrameworkElement.DataContextProperty or
// FrameworkElement.StyleProperty.
func isDataContextOrStyle(sym semantic.Symbol, k *known.Symbols) bool {
	return known.IsMember(sym, k.FrameworkElement, "DataContextProperty") ||
		known.IsMember(sym, k.FrameworkElement, "StyleProperty")
}

// callName returns the name of the method called by a forwarding call.
func callName(f recognize.Forward) string {
	if f.Method == nil {
		return ""
	}

	return f.Method.Name()
}
