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

	"fillmore-labs.com/dpguard/internal/syntax"
)

// Constant evaluation states of fields.
const (
	constPending uint8 = iota
	constBusy
	constDone
)

// bindFile binds attributes, initializers and bodies of all declarations in f.
func (c *checker) bindFile(f *syntax.File) {
	if sc, ok := c.fileScopes[f]; ok {
		c.bindAttrs(typeScope{scope: sc}, f.Attributes)
	}

	c.bindNamespaceMembers(f.Members)
}

func (c *checker) bindNamespaceMembers(members []syntax.Decl) {
	for _, d := range members {
		switch d := d.(type) {
		case *syntax.NamespaceDecl:
			c.bindNamespaceMembers(d.Members)

		case *syntax.TypeDecl, *syntax.EnumDecl, *syntax.DelegateDecl:
			if t, ok := c.symbols[d].(*Named); ok {
				if ts, ok := partScope(t, d); ok {
					c.bindType(ts, t, d)
				}
			}
		}
	}
}

// partScope returns the type scope of the declaration d of t.
func partScope(t *Named, d syntax.Decl) (typeScope, bool) {
	for _, p := range t.parts {
		if p.decl == d {
			return typeScope{scope: p.env.scope, typ: t}, true
		}
	}

	return typeScope{}, false
}

func (c *checker) bindType(ts typeScope, t *Named, d syntax.Decl) {
	switch d := d.(type) {
	case *syntax.TypeDecl:
		c.bindAttrs(ts, d.Attrs)
		c.bindParamDecls(ts, d.Params)

		for _, m := range d.Members {
			c.bindMember(ts, t, m)
		}

	case *syntax.EnumDecl:
		c.bindAttrs(ts, d.Attrs)

		for _, m := range d.Members {
			c.bindAttrs(ts, m.Attrs)

			if f, ok := c.symbols[m].(*Field); ok {
				c.fieldConstant(f)
			}
		}

	case *syntax.DelegateDecl:
		c.bindAttrs(ts, d.Attrs)
		c.bindParamDecls(ts, d.Params)
	}
}

// bindParamDecls binds parameter attributes and default values.
func (c *checker) bindParamDecls(ts typeScope, params []*syntax.Param) {
	for _, d := range params {
		c.bindAttrs(ts, d.Attrs)

		if d.Default != nil {
			var t Type
			if p, ok := c.symbols[d].(*Param); ok {
				t = p.typ
			}

			c.newBinder(ts, nil).expr(d.Default, t)
		}
	}
}

func (c *checker) bindMember(ts typeScope, t *Named, m syntax.Decl) {
	switch d := m.(type) {
	case *syntax.TypeDecl, *syntax.EnumDecl, *syntax.DelegateDecl:
		if nt, ok := c.symbols[d].(*Named); ok {
			c.bindType(typeScope{scope: ts.scope, typ: nt}, nt, d)
		}

	case *syntax.FieldDecl:
		c.bindAttrs(ts, d.Attrs)

		for _, v := range d.Vars {
			switch sym := c.symbols[v].(type) {
			case *Field:
				if sym.isConst {
					c.fieldConstant(sym)

					continue
				}

				c.newBinder(ts, sym).expr(v.Init, sym.typ)

			case *Event:
				c.newBinder(ts, sym).expr(v.Init, sym.typ)
			}
		}

	case *syntax.PropertyDecl:
		c.bindAttrs(ts, d.Attrs)

		p, ok := c.symbols[d].(*Property)
		if !ok {
			return
		}

		c.bindParamDecls(ts, d.Params)

		b := c.newBinder(ts, p)
		for _, ip := range p.params {
			b.declare(ip.name, ip)
		}

		b.result = p.typ
		b.body(nil, d.ExprBody)
		b.expr(d.Init, p.typ)

		c.bindAccessors(b, p, p.typ, d.Accessors)

	case *syntax.EventDecl:
		c.bindAttrs(ts, d.Attrs)

		if ev, ok := c.symbols[d].(*Event); ok {
			c.bindAccessors(c.newBinder(ts, ev), ev, ev.typ, d.Accessors)
		}

	case *syntax.MethodDecl:
		c.bindAttrs(ts, d.Attrs)

		meth, ok := c.symbols[d].(*Method)
		if !ok {
			return
		}

		mts := typeScope{scope: ts.scope, typ: t, method: meth}
		c.bindParamDecls(mts, d.Params)

		b := c.newBinder(mts, meth)
		for _, p := range meth.params {
			b.declare(p.name, p)
		}

		b.result = meth.result

		if d.Initializer != nil {
			b.ctorInitializer(t, d.Initializer)
		}

		b.body(d.Body, d.ExprBody)
	}
}

// bindAccessors binds get, set, init, add and remove accessors. Writing accessors see the
// implicit `value` parameter.
func (c *checker) bindAccessors(b *binder, owner Symbol, t Type, accessors []*syntax.Accessor) {
	for _, a := range accessors {
		c.bindAttrs(b.ts, a.Attrs)

		b.push()

		switch a.Keyword.Name {
		case "get":
			b.result = t

		default:
			b.result = b.special(Void)

			v := &Param{name: "value", typ: t, owner: owner, ref: syntax.ILLEGAL}
			b.symbols[a] = v
			b.declare(v.name, v)
		}

		b.body(a.Body, a.ExprBody)
		b.pop()
	}
}

// ctorInitializer binds a `base(...)` or `this(...)` constructor call.
func (b *binder) ctorInitializer(t *Named, init *syntax.ConstructorInitializer) {
	target := Type(b.selfType())
	if init.Keyword == syntax.BASE {
		target = b.selfType().Base()
	}

	args := b.bindArgs(init.Args)

	n := AsNamed(target)
	if n == nil {
		b.finishArgs(args, nil)

		return
	}

	var ctors []memberRef
	for _, m := range n.DeclaredMembers(ctorName) {
		ctors = append(ctors, memberRef{sym: m, via: n})
	}

	cand := b.overload(ctors, nil, args)
	b.finishArgs(args, cand)

	if cand != nil {
		b.symbols[init] = cand.method
	}
}

// ----------------------------------------------------------------------------
// Attributes

func (c *checker) bindAttrs(ts typeScope, lists []*syntax.AttributeList) {
	for _, l := range lists {
		for _, a := range l.Attrs {
			c.bindAttr(ts, a)
		}
	}
}

func (c *checker) bindAttr(ts typeScope, a *syntax.Attribute) {
	b := c.newBinder(ts, nil)

	t := c.attributeType(ts, a.Name)

	var positional, named []*syntax.Argument

	for _, arg := range a.Args {
		if arg.Name != nil && t != nil && len(c.lookupMembers(t, arg.Name.Name)) > 0 {
			named = append(named, arg)
		} else {
			positional = append(positional, arg)
		}
	}

	args := b.bindArgs(positional)

	if t != nil {
		c.types[a.Name] = t

		var ctors []memberRef
		for _, m := range t.DeclaredMembers(ctorName) {
			ctors = append(ctors, memberRef{sym: m, via: t})
		}

		cand := b.overload(ctors, nil, args)
		b.finishArgs(args, cand)

		if cand != nil {
			c.symbols[a] = cand.method
		}
	} else {
		b.finishArgs(args, nil)
	}

	for _, arg := range named {
		ref := c.lookupMembers(t, arg.Name.Name)[0]
		c.use(arg.Name, ref.sym)
		b.expr(arg.Value, ref.typ())
	}
}

// attributeType resolves an attribute name, trying the `Attribute` suffix first.
func (c *checker) attributeType(ts typeScope, x syntax.Expr) *Named {
	switch x := x.(type) {
	case *syntax.Ident:
		for _, name := range []string{x.Name + "Attribute", x.Name} {
			if t, ok := c.lookupTypeName(ts, name, 0).(*Named); ok {
				c.use(x, t)

				return t
			}
		}

	case *syntax.MemberAccess:
		var left any
		if x.Alias {
			left = c.global
		} else {
			left = c.resolveTypeOrNamespace(ts, x.X)
		}

		for _, name := range []string{x.Name.Name + "Attribute", x.Name.Name} {
			var t *Named

			switch left := left.(type) {
			case *Namespace:
				t = left.Type(name, 0)
			case *Named:
				t = nestedType(left, name, 0)
			}

			if t != nil {
				c.use(x.Name, t)

				return t
			}
		}
	}

	return nil
}

// ----------------------------------------------------------------------------
// Constants

// fieldConstant evaluates a constant field or enum member on first use. Cycles evaluate to
// nil.
func (c *checker) fieldConstant(f *Field) constant.Value {
	switch f.cstate {
	case constDone:
		return f.cval
	case constBusy:
		return nil
	}

	f.cstate = constBusy
	defer func() { f.cstate = constDone }()

	ts, ok := c.fieldScopes[f]
	if !ok {
		return nil
	}

	b := c.newBinder(ts, f)

	switch d := f.decl.(type) {
	case *syntax.VarDeclarator:
		op := b.expr(d.Init, f.typ)
		f.cval = b.castConstant(op.val, f.typ)

	case *syntax.EnumMember:
		if d.Value != nil {
			op := b.expr(d.Value, f.typ)
			f.cval = b.castConstant(op.val, f.typ)

			break
		}

		prev := previousMember(d)
		if prev == nil {
			f.cval = constant.MakeInt64(0)

			break
		}

		if pf, ok := c.symbols[prev].(*Field); ok {
			if v := c.fieldConstant(pf); v != nil && v.Kind() == constant.Int {
				f.cval = b.castConstant(constant.BinaryOp(v, token.ADD, constant.MakeInt64(1)), f.typ)
			}
		}
	}

	return f.cval
}

func previousMember(m *syntax.EnumMember) *syntax.EnumMember {
	d, ok := m.Parent().(*syntax.EnumDecl)
	if !ok {
		return nil
	}

	for i, e := range d.Members {
		if e == m && i > 0 {
			return d.Members[i-1]
		}
	}

	return nil
}
