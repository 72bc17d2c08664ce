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
	"strings"

	"fillmore-labs.com/dpguard/internal/recognize"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// checkTrivialCallback suggests inlining private static single-expression callbacks used
// exactly once.
func checkTrivialCallback(p *Pass, n syntax.Node) []report.Diagnostic {
	cb, ok := recognize.TryCallback(p.Context, n, p.Comp, p.Known)
	if !ok || cb.Lambda != nil || !cb.SingleExpression || !cb.Target.Static() {
		return nil
	}

	decl := cb.Target.Declaration()
	if decl == nil || !p.Comp.IsSource(decl) || !private(decl.Mods) || len(p.Comp.Uses(cb.Target)) != 1 {
		return nil
	}

	return one(report.New(report.WPF0023, cb.Arg.Value))
}

// private reports whether mods declare private accessibility, explicitly or by default.
func private(mods syntax.Modifiers) bool {
	if mods.Has(syntax.PRIVATE) {
		return !mods.Has(syntax.PROTECTED)
	}

	return !mods.Has(syntax.PUBLIC) && !mods.Has(syntax.PROTECTED) && !mods.Has(syntax.INTERNAL)
}

func checkStaticReadOnly(p *Pass, n syntax.Node) []report.Diagnostic {
	b, _, ok := p.backing(n)
	if !ok || b.Static && b.ReadOnly {
		return nil
	}

	d := report.New(report.WPF0030, b.Ident, b.Name)

	if _, field := b.Symbol.(*semantic.Field); field {
		var missing []string
		if !b.Static {
			missing = append(missing, "static")
		}

		if !b.ReadOnly {
			missing = append(missing, "readonly")
		}

		d = d.With(report.Replacement, strings.Join(missing, " "))
	}

	return one(d)
}

// checkKeyOrder flags plain handles initialized from a key declared later in the same file.
// Initializers run in declaration order, the key would still be null.
func checkKeyOrder(p *Pass, n syntax.Node) []report.Diagnostic {
	b, h, ok := p.backing(n)
	if !ok || b.Key || h.Key == nil || !inlineInitializer(b) {
		return nil
	}

	ma, ok := syntax.Unparen(b.Value).(*syntax.MemberAccess)
	if !ok || p.Comp.SymbolOf(ma.X) != h.Key {
		return nil
	}

	key, ok := recognize.BackingMemberOf(p.Context, h.Key, p.Comp, p.Known)
	if !ok || key.Decl == nil || !inlineInitializer(key) {
		return nil
	}

	if syntax.FileOf(key.Decl) != syntax.FileOf(b.Decl) || key.Pos < b.Pos {
		return nil
	}

	return one(report.New(report.WPF0031, ma, key.Name, b.Name))
}

// inlineInitializer reports whether the member value is a declaration initializer.
func inlineInitializer(b recognize.BackingMember) bool {
	if b.Value == nil {
		return false
	}

	switch d := b.Decl.(type) {
	case *syntax.FieldDecl:
		_, ok := b.Value.Parent().(*syntax.VarDeclarator)

		return ok

	case *syntax.PropertyDecl:
		return d.Init != nil && d.Init == b.Value
	}

	return false
}

func checkSameHandle(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrProperty(p.Context, n, p.Comp, p.Known)
	if !ok || c.Set == nil {
		return nil
	}

	get, ok := p.handle(c.Get.Handle)
	if !ok {
		return nil
	}

	set, ok := p.handle(c.Set.Handle)
	if !ok || recognize.SameProperty(get, set) {
		return nil
	}

	return one(report.New(report.WPF0032, c.Decl.Name, c.Name))
}

// checkBrowsableMissing suggests [AttachedPropertyBrowsableForType] on attached getters.
func checkBrowsableMissing(p *Pass, n syntax.Node) []report.Diagnostic {
	if p.Known.BrowsableForType == nil {
		return nil
	}

	c, ok := recognize.TryClrMethod(p.Context, n, p.Comp, p.Known)
	if !ok || !c.Getter {
		return nil
	}

	h, ok := p.handle(c.Forward.Handle)
	if !ok || !h.Registration.Kind.Attached() {
		return nil
	}

	for _, list := range c.Decl.Attrs {
		for _, a := range list.Attrs {
			if p.isBrowsableForType(a) {
				return nil
			}
		}
	}

	elem := p.Comp.TypeName(c.Element.Type(), c.Decl)

	return one(report.New(report.WPF0033, c.Decl.Name, elem).With(report.ExpectedType, elem))
}

// checkBrowsableArgument verifies that [AttachedPropertyBrowsableForType] names the element
// parameter type of the getter it decorates.
func checkBrowsableArgument(p *Pass, n syntax.Node) []report.Diagnostic {
	a, ok := n.(*syntax.Attribute)
	if !ok || len(a.Args) != 1 || !p.isBrowsableForType(a) {
		return nil
	}

	list, ok := a.Parent().(*syntax.AttributeList)
	if !ok || list.Target != nil {
		return nil
	}

	c, ok := recognize.TryClrMethod(p.Context, list.Parent(), p.Comp, p.Known)
	if !ok || !c.Getter {
		return nil
	}

	t, tx := recognize.TypeofOperand(p.Comp, a.Args[0].Value)
	if t == nil || semantic.Identical(t, c.Element.Type()) {
		return nil
	}

	elem := p.Comp.TypeName(c.Element.Type(), tx.Type)

	return one(report.New(report.WPF0034, tx.Type, elem).With(report.ExpectedType, elem))
}

func (p *Pass) isBrowsableForType(a *syntax.Attribute) bool {
	t := semantic.AsNamed(p.Comp.TypeOf(a.Name))

	return t != nil && p.Known.BrowsableForType != nil && t.Origin() == p.Known.BrowsableForType.Origin()
}

func checkSetterUsesSetValue(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrProperty(p.Context, n, p.Comp, p.Known)
	if !ok || !c.Set.IsSetCurrentValue() {
		return nil
	}

	name := recognize.InvokedName(c.Set.Call)
	if name == nil {
		return nil
	}

	return one(report.New(report.WPF0035, name).With(report.Replacement, "SetValue"))
}

// checkSideEffects reports the first statement of each CLR accessor block that is not the
// forwarding call.
func checkSideEffects(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrProperty(p.Context, n, p.Comp, p.Known)
	if !ok {
		return nil
	}

	var diags []report.Diagnostic

	if s := extraStatement(&c.Get); s != nil {
		diags = append(diags, report.New(report.WPF0036, s))
	}

	if s := extraStatement(c.Set); s != nil {
		diags = append(diags, report.New(report.WPF0036, s))
	}

	return diags
}

func extraStatement(f *recognize.Forward) syntax.Stmt {
	if f == nil || f.Body == nil || f.Stmt == nil {
		return nil
	}

	for _, s := range f.Body.Stmts {
		if s != f.Stmt {
			return s
		}
	}

	return nil
}
