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
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// checkSetWithKey flags SetValue and ClearValue calls passing the plain handle of a read-only
// property.
func checkSetWithKey(p *Pass, n syntax.Node) []report.Diagnostic {
	f, ok := recognize.TryValueCall(p.Context, n, p.Comp, p.Known)
	if !ok || f.HandleArg == nil {
		return nil
	}

	if name := callName(f); name != "SetValue" && name != "ClearValue" {
		return nil
	}

	h, ok := p.handle(f.Handle)
	if !ok || h.Member.Key || !h.ReadOnly() || h.Key == nil {
		return nil
	}

	key := p.qualified(h.Key, f.Call)

	return one(report.New(report.WPF0040, f.HandleArg.Value, syntax.ExprString(f.HandleArg.Value), key).
		With(report.ExpectedName, key))
}

// checkSetCurrentValue flags SetValue calls and CLR property assignments that overwrite the
// value of a mutable property instead of setting its current value.
func checkSetCurrentValue(p *Pass, n syntax.Node) []report.Diagnostic {
	switch n := n.(type) {
	case *syntax.InvocationExpr:
		return setValueCall(p, n)
	case *syntax.AssignExpr:
		return propertyAssignment(p, n)
	}

	return nil
}

func setValueCall(p *Pass, call *syntax.InvocationExpr) []report.Diagnostic {
	f, ok := recognize.TryValueCall(p.Context, call, p.Comp, p.Known)
	if !ok || callName(f) != "SetValue" || f.HandleArg == nil || f.ValueArg == nil {
		return nil
	}

	if isDataContextOrStyle(f.Handle, p.Known) || inConstructor(p, call) ||
		f.Receiver != nil && freshLocal(p, f.Receiver) || forwardsAccessor(p, call) {
		return nil
	}

	h, ok := p.handle(f.Handle)
	if !ok || h.Member.Key || h.ReadOnly() {
		return nil
	}

	return one(report.New(report.WPF0041, call, syntax.ExprString(f.HandleArg.Value), syntax.ExprString(f.ValueArg.Value)).
		With(report.Replacement, "SetCurrentValue"))
}

// forwardsAccessor reports whether call is the forwarding call of the CLR property or
// attached setter it is declared in.
func forwardsAccessor(p *Pass, call *syntax.InvocationExpr) bool {
	return forwardedValue(p, call) != nil
}

// forwardedValue returns the value parameter of the CLR property setter or attached setter
// that call forwards, nil when call is not such a forwarding call.
func forwardedValue(p *Pass, call *syntax.InvocationExpr) semantic.Symbol {
	for a := range syntax.Ancestors(call) {
		switch d := a.(type) {
		case *syntax.PropertyDecl:
			c, ok := recognize.TryClrProperty(p.Context, d, p.Comp, p.Known)
			if !ok || c.Set == nil || c.Set.Call != call {
				return nil
			}

			return p.Comp.SymbolOf(c.Setter)

		case *syntax.MethodDecl:
			if d.MethodKind == syntax.LocalFunction {
				continue
			}

			c, ok := recognize.TryClrMethod(p.Context, d, p.Comp, p.Known)
			if !ok || c.Getter || c.Forward.Call != call {
				return nil
			}

			return c.Symbol.Params()[1]

		case *syntax.TypeDecl:
			return nil
		}
	}

	return nil
}

// propertyAssignment rewrites `x.Bar = value` to `x.SetCurrentValue(BarProperty, value)`.
func propertyAssignment(p *Pass, as *syntax.AssignExpr) []report.Diagnostic {
	if as.Op != syntax.ASSIGN || p.Known.DependencyObject == nil {
		return nil
	}

	if _, ok := as.Parent().(*syntax.InitializerExpr); ok {
		return nil
	}

	prop, ok := p.Comp.SymbolOf(as.Lhs).(*semantic.Property)
	if !ok || prop.Static() || !prop.HasSetter() || len(prop.Params()) > 0 ||
		!semantic.IsDerivedFrom(prop.Owner(), p.Known.DependencyObject) {
		return nil
	}

	var recv syntax.Expr
	if ma, ok := syntax.Unparen(as.Lhs).(*syntax.MemberAccess); ok {
		if ma.Conditional {
			return nil
		}

		recv = ma.X
	}

	if inConstructor(p, as) || recv != nil && freshLocal(p, recv) {
		return nil
	}

	handle := p.propertyHandle(prop)
	if handle == nil || isDataContextOrStyle(handle, p.Known) {
		return nil
	}

	handleText := p.qualified(handle, as)
	value := text(as.Rhs)

	if t := p.Comp.TypeOf(as.Rhs); t != nil && !semantic.Identical(t, prop.Type()) {
		value = "(" + p.Comp.TypeName(prop.Type(), as) + ")" + parenthesized(as.Rhs, value)
	}

	call := "SetCurrentValue(" + handleText + ", " + value + ")"
	if recv != nil {
		call = text(recv) + "." + call
	}

	return one(report.New(report.WPF0041, as, handleText, text(as.Rhs)).With(report.Replacement, call))
}

// parenthesized wraps the source of x in parentheses unless x is a primary expression.
func parenthesized(x syntax.Expr, src string) string {
	switch syntax.Unparen(x).(type) {
	case *syntax.Ident, *syntax.BasicLit, *syntax.MemberAccess, *syntax.InvocationExpr,
		*syntax.ParenExpr, *syntax.ThisExpr, *syntax.ObjectCreation, *syntax.ElementAccess:
		return src
	}

	return "(" + src + ")"
}

// propertyHandle returns the mutable handle a CLR property forwards to: the getter handle of
// a source declaration, the conventionally named static field otherwise.
func (p *Pass) propertyHandle(prop *semantic.Property) semantic.Symbol {
	if d := prop.Declaration(); d != nil && p.Comp.IsSource(d) {
		c, ok := recognize.TryClrProperty(p.Context, d, p.Comp, p.Known)
		if !ok {
			return nil
		}

		h, ok := p.handle(c.Get.Handle)
		if !ok || h.Member.Key || h.ReadOnly() {
			return nil
		}

		return c.Get.Handle
	}

	for _, sym := range p.Comp.LookupMember(prop.Owner(), prop.Name()+"Property") {
		if f, ok := sym.(*semantic.Field); ok && f.Static() && known.Is(f.Type(), p.Known.DependencyProperty) {
			return f
		}
	}

	return nil
}

// checkSetCurrentValueDataContext flags SetCurrentValue on DataContext and Style, whose
// current value does not survive template and style changes.
func checkSetCurrentValueDataContext(p *Pass, n syntax.Node) []report.Diagnostic {
	f, ok := recognize.TryValueCall(p.Context, n, p.Comp, p.Known)
	if !ok || callName(f) != "SetCurrentValue" || f.HandleArg == nil || f.ValueArg == nil ||
		!isDataContextOrStyle(f.Handle, p.Known) {
		return nil
	}

	name := recognize.InvokedName(f.Call)
	if name == nil {
		return nil
	}

	return one(report.New(report.WPF0043, name, syntax.ExprString(f.HandleArg.Value), syntax.ExprString(f.ValueArg.Value)).
		With(report.Replacement, "SetValue"))
}

// checkNameof suggests nameof for registered names spelled as literals of an existing member.
func checkNameof(p *Pass, n syntax.Node) []report.Diagnostic {
	reg, ok := recognize.TryRegistration(p.Context, n, p.Comp, p.Known)
	if !ok || !reg.Kind.Creates() || reg.NameArg == nil || !reg.NameKnown {
		return nil
	}

	lit, ok := syntax.Unparen(reg.NameArg.Value).(*syntax.BasicLit)
	if !ok || lit.Tok != syntax.STRING {
		return nil
	}

	containing := p.Comp.EnclosingType(reg.Call)
	if containing == nil {
		return nil
	}

	for _, sym := range p.Comp.LookupMember(containing, reg.Name) {
		if _, ok := sym.(*semantic.Property); ok {
			return one(report.New(report.WPF0150, lit, reg.Name).With(report.Replacement, "nameof("+reg.Name+")"))
		}
	}

	return nil
}
