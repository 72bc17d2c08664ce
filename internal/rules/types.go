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
	"fillmore-labs.com/dpguard/internal/recognize"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// checkDefaultValueType verifies that the metadata default value converts implicitly to the
// registered type.
func checkDefaultValueType(p *Pass, n syntax.Node) []report.Diagnostic {
	md, reg, ok := metadataRegistration(p, n)
	if !ok || md.DefaultArg == nil || reg.Type == nil || semantic.ContainsTypeParam(reg.Type) {
		return nil
	}

	v := md.DefaultArg.Value
	if p.Comp.TypeOf(v) == nil || p.Comp.ClassifyConversion(v, reg.Type).IsImplicit() {
		return nil
	}

	want := p.Comp.TypeName(reg.Type, v)

	return one(report.New(report.WPF0010, v, registeredMember(p, reg), want).With(report.ExpectedType, want))
}

// checkSharedDefault flags default values creating a mutable reference shared by all
// instances.
func checkSharedDefault(p *Pass, n syntax.Node) []report.Diagnostic {
	md, reg, ok := metadataRegistration(p, n)
	if !ok || md.DefaultArg == nil {
		return nil
	}

	v := syntax.Unparen(md.DefaultArg.Value)

	switch v.(type) {
	case *syntax.ObjectCreation, *syntax.ArrayCreation:
	default:
		return nil
	}

	t := p.Comp.TypeOf(v)
	if !semantic.IsReferenceType(t) || semantic.IsDelegate(t) || semantic.SpecialOf(t) == semantic.String {
		return nil
	}

	if f := p.Known.Freezable; f != nil && semantic.IsDerivedFrom(t, f) {
		return nil
	}

	return one(report.New(report.WPF0016, v, registeredMember(p, reg)))
}

func metadataRegistration(p *Pass, n syntax.Node) (recognize.Metadata, recognize.Registration, bool) {
	md, ok := recognize.TryMetadata(p.Context, n, p.Comp, p.Known)
	if !ok {
		return recognize.Metadata{}, recognize.Registration{}, false
	}

	reg, ok := md.RegistrationOf(p.Context, p.Comp, p.Known)

	return md, reg, ok
}

// registeredMember names the member a registration initializes, falling back to the
// registered name.
func registeredMember(p *Pass, reg recognize.Registration) string {
	if sym := p.Comp.EnclosingMember(reg.Call); sym != nil {
		if _, ok := recognize.BackingMemberOf(p.Context, sym, p.Comp, p.Known); ok {
			return sym.Name()
		}
	}

	return reg.Name
}

// checkOwner verifies that registrations made while initializing a type name that type as
// owner.
func checkOwner(p *Pass, n syntax.Node) []report.Diagnostic {
	reg, ok := recognize.TryRegistration(p.Context, n, p.Comp, p.Known)
	if !ok || reg.OwnerArg == nil {
		return nil
	}

	owner, tx := recognize.TypeofOperand(p.Comp, reg.OwnerArg.Value)
	if owner == nil {
		return nil
	}

	containing := p.Comp.EnclosingType(reg.Call)
	if containing == nil || !initializes(p, reg.Call) {
		return nil
	}

	if o := semantic.AsNamed(owner); o != nil && o.Origin() == containing.Origin() {
		return nil
	}

	want := p.Comp.TypeName(containing, tx.Type)

	return one(report.New(report.WPF0011, tx.Type, want).With(report.ExpectedType, want))
}

// initializes reports whether n is evaluated while initializing its containing type: in a
// backing member or a static constructor.
func initializes(p *Pass, n syntax.Node) bool {
	switch m := p.Comp.EnclosingMember(n).(type) {
	case *semantic.Field, *semantic.Property:
		_, ok := recognize.BackingMemberOf(p.Context, m, p.Comp, p.Known)

		return ok

	case *semantic.Method:
		return m.MethodKind() == semantic.StaticConstructor
	}

	return false
}

func checkOwnerIsDependencyObject(p *Pass, n syntax.Node) []report.Diagnostic {
	reg, ok := recognize.TryRegistration(p.Context, n, p.Comp, p.Known)
	if !ok || reg.Kind != recognize.Register && reg.Kind != recognize.RegisterReadOnly || p.Known.DependencyObject == nil {
		return nil
	}

	owner := semantic.AsNamed(reg.Owner)
	if owner == nil || semantic.IsDerivedFrom(owner, p.Known.DependencyObject) {
		return nil
	}

	name := recognize.InvokedName(reg.Call)
	if name == nil {
		return nil
	}

	replacement := recognize.RegisterAttached.String()
	if reg.Kind == recognize.RegisterReadOnly {
		replacement = recognize.RegisterAttachedReadOnly.String()
	}

	return one(report.New(report.WPF0015, name).With(report.Replacement, replacement))
}

// checkClrPropertyType verifies that a CLR property is declared with the registered type.
func checkClrPropertyType(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrProperty(p.Context, n, p.Comp, p.Known)
	if !ok || c.Decl.Type == nil {
		return nil
	}

	h, ok := p.handle(c.Get.Handle)
	if !ok || h.Registration.Type == nil {
		return nil
	}

	want := semantic.SubstituteVia(c.Symbol.Owner(), h.Member.Owner, h.Registration.Type)
	if !typeMismatch(p.Comp, c.Type, want) {
		return nil
	}

	return one(report.New(report.WPF0012, c.Decl.Type, c.Name, want).With(report.ExpectedType, p.Comp.TypeName(want, c.Decl.Type)))
}

// checkClrMethodType verifies that attached accessors use the registered type.
func checkClrMethodType(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrMethod(p.Context, n, p.Comp, p.Known)
	if !ok || c.TypeExpr == nil {
		return nil
	}

	h, ok := p.handle(c.Forward.Handle)
	if !ok || h.Registration.Type == nil {
		return nil
	}

	want := semantic.SubstituteVia(c.Symbol.Owner(), h.Member.Owner, h.Registration.Type)
	if !typeMismatch(p.Comp, c.Type, want) {
		return nil
	}

	return one(report.New(report.WPF0013, c.TypeExpr, want).With(report.ExpectedType, p.Comp.TypeName(want, c.TypeExpr)))
}

// checkSetValueType verifies the value passed to SetValue and SetCurrentValue. Values are
// boxed, so numeric conversions that compile still fail the runtime type check. The value
// parameter forwarded by a wrapper setter is left to WPF0012 and WPF0013.
func checkSetValueType(p *Pass, n syntax.Node) []report.Diagnostic {
	f, ok := recognize.TryValueCall(p.Context, n, p.Comp, p.Known)
	if !ok || f.ValueArg == nil {
		return nil
	}

	h, ok := p.handle(f.Handle)
	if !ok || h.Registration.Type == nil || semantic.ContainsTypeParam(h.Registration.Type) {
		return nil
	}

	want := h.Registration.Type
	v := f.ValueArg.Value

	if val := forwardedValue(p, f.Call); val != nil && p.Comp.SymbolOf(v) == val {
		return nil
	}

	got := p.Comp.TypeOf(v)
	if got == nil {
		return nil
	}

	switch p.Comp.ClassifyConversion(v, want) {
	case semantic.Identity, semantic.ImplicitReference, semantic.NullLiteral, semantic.ImplicitNullable:
		return nil

	case semantic.Boxing:
		if lenient(want) {
			return nil
		}
	}

	if (lenient(got) || lenient(want)) && (p.Comp.IsAssignable(got, want) || p.Comp.IsAssignable(want, got)) {
		return nil
	}

	return one(report.New(report.WPF0014, v, callName(f), want).With(report.ExpectedType, p.Comp.TypeName(want, v)))
}

// checkSenderCast flags casts of the callback sender to types unrelated to the owner.
func checkSenderCast(p *Pass, n syntax.Node) []report.Diagnostic {
	cb, fn, ok := callbackFunction(p, n)
	if !ok || cb.Kind == recognize.Validate || cb.Registration.Kind.Attached() || len(fn.Params()) == 0 {
		return nil
	}

	owner := semantic.AsNamed(cb.Registration.Owner)
	if owner == nil {
		return nil
	}

	sender := fn.Params()[0]

	return castDiagnostics(p, report.WPF0019, cb.Body(), owner, func(x syntax.Expr) bool {
		return p.Comp.SymbolOf(x) == sender
	})
}

// checkValueCast flags casts of the new, old or base value to types unrelated to the
// registered type.
func checkValueCast(p *Pass, n syntax.Node) []report.Diagnostic {
	cb, fn, ok := callbackFunction(p, n)
	if !ok {
		return nil
	}

	want := cb.Registration.Type
	if want == nil || semantic.ContainsTypeParam(want) {
		return nil
	}

	var match func(x syntax.Expr) bool

	params := fn.Params()

	switch cb.Kind {
	case recognize.Changed:
		if len(params) < 2 {
			return nil
		}

		match = func(x syntax.Expr) bool {
			ma, ok := x.(*syntax.MemberAccess)

			return ok && (ma.Name.Name == "NewValue" || ma.Name.Name == "OldValue") &&
				p.Comp.SymbolOf(ma.X) == params[1]
		}

	case recognize.Coerce:
		if len(params) < 2 {
			return nil
		}

		match = func(x syntax.Expr) bool { return p.Comp.SymbolOf(x) == params[1] }

	case recognize.Validate:
		if len(params) < 1 {
			return nil
		}

		match = func(x syntax.Expr) bool { return p.Comp.SymbolOf(x) == params[0] }

	default:
		return nil
	}

	return castDiagnostics(p, report.WPF0020, cb.Body(), want, match)
}

// callbackFunction recognizes a callback and the function receiving its arguments. Method
// groups shared by several registrations are skipped.
func callbackFunction(p *Pass, n syntax.Node) (recognize.Callback, *semantic.Method, bool) {
	cb, ok := recognize.TryCallback(p.Context, n, p.Comp, p.Known)
	if !ok || cb.Body() == nil {
		return recognize.Callback{}, nil, false
	}

	if cb.Lambda == nil && len(p.Comp.Uses(cb.Target)) > 1 {
		return recognize.Callback{}, nil, false
	}

	fn := cb.Function(p.Comp)
	if fn == nil {
		return recognize.Callback{}, nil, false
	}

	return cb, fn, true
}

// castDiagnostics reports every cast, as or is type test of an expression accepted by match
// in root whose type cannot hold a value of type have.
func castDiagnostics(p *Pass, d *report.Descriptor, root syntax.Node, have semantic.Type, match func(syntax.Expr) bool) []report.Diagnostic {
	var diags []report.Diagnostic

	syntax.Inspect(root, func(n syntax.Node) bool {
		if n == nil || p.Context.Err() != nil {
			return false
		}

		var x, tx syntax.Expr

		switch c := n.(type) {
		case *syntax.CastExpr:
			x, tx = c.X, c.Type
		case *syntax.AsExpr:
			x, tx = c.X, c.Type
		case *syntax.IsExpr:
			x, tx = c.X, c.Type
		default:
			return true
		}

		if tx == nil || x == nil || !match(syntax.Unparen(x)) {
			return true
		}

		t := p.Comp.TypeOf(tx)
		if t == nil || castRelated(p.Comp, t, have) {
			return true
		}

		diags = append(diags, report.New(d, tx, have).With(report.ExpectedType, p.Comp.TypeName(have, tx)))

		return true
	})

	if p.Context.Err() != nil {
		return nil
	}

	return diags
}
