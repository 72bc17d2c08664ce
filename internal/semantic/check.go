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
	"context"
	"embed"
	"errors"
	"fmt"
	"go/constant"
	"go/token"
	"io/fs"
	"path"
	"runtime/trace"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// ErrNoFiles is returned when [Check] is called without source files.
var ErrNoFiles = errors.New("no source files")

//go:embed reference/*.cs
var reference embed.FS

// Option configures [Check].
type Option func(*options)

type options struct {
	extra []source
}

type source struct {
	name string
	src  []byte
}

// WithReferenceSource adds declarations that are bound like the built-in reference
// declarations: visible to the checked files, but not part of [Compilation.Files].
func WithReferenceSource(name string, src []byte) Option {
	return func(o *options) { o.extra = append(o.extra, source{name: name, src: src}) }
}

// Check binds files together with the reference declarations and returns the resulting
// read-only compilation. Unresolvable constructs are recorded as unknown, never as errors.
func Check(ctx context.Context, fset *token.FileSet, files []*syntax.File, opts ...Option) (*Compilation, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	defer trace.StartRegion(ctx, "semantic.Check").End()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	refs, err := parseReference(fset, o.extra)
	if err != nil {
		return nil, err
	}

	c := &checker{
		Compilation: &Compilation{
			Fset:    fset,
			Files:   files,
			refs:    refs,
			global:  newNamespace("", nil),
			types:   make(map[syntax.Expr]Type),
			symbols: make(map[syntax.Node]Symbol),
			consts:  make(map[syntax.Expr]constant.Value),
			params:  make(map[*syntax.Argument]*Param),
			uses:    make(map[*syntax.Ident]Symbol),

			nsScopes: make(map[syntax.Node]*nsScope),

			specials: make(map[Special]*Named),
		},
		fileScopes:  make(map[*syntax.File]*nsScope),
		fieldScopes: make(map[*Field]typeScope),
	}

	all := append(append([]*syntax.File(nil), refs...), files...)

	for _, f := range all {
		c.declareFile(f)
	}

	c.identifySpecials()
	c.resolveUsings()

	for _, t := range c.all {
		c.resolveHeader(t)
	}

	for _, t := range c.all {
		c.declareMembers(t)
	}

	for _, f := range all {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("binding %s: %w", f.Name, err)
		}

		c.bindFile(f)
	}

	return c.Compilation, nil
}

func parseReference(fset *token.FileSet, extra []source) ([]*syntax.File, error) {
	names, err := fs.Glob(reference, "reference/*.cs")
	if err != nil {
		return nil, err
	}

	srcs := make([]source, 0, len(names)+len(extra))

	for _, name := range names {
		src, err := reference.ReadFile(name)
		if err != nil {
			return nil, err
		}

		srcs = append(srcs, source{name: path.Join("$reference", path.Base(name)), src: src})
	}

	srcs = append(srcs, extra...)

	files := make([]*syntax.File, 0, len(srcs))

	for _, s := range srcs {
		f, err := syntax.Parse(fset, s.name, s.src)
		if err != nil {
			return nil, fmt.Errorf("reference declarations %s: %w", s.name, err)
		}

		files = append(files, f)
	}

	return files, nil
}

// checker holds the state needed while binding. Once [Check] returns only the embedded
// [Compilation] survives.
type checker struct {
	*Compilation

	scopes       []*nsScope
	fileScopes   map[*syntax.File]*nsScope
	globalUsings []*syntax.UsingDirective
	all          []*Named
	fieldScopes  map[*Field]typeScope
}

// ----------------------------------------------------------------------------
// Declarations

func (c *checker) declareFile(f *syntax.File) {
	root := &nsScope{ns: c.global, usings: nil, global: true}

	for _, u := range f.Usings {
		if u.Global {
			c.globalUsings = append(c.globalUsings, u)
		} else {
			root.usings = append(root.usings, u)
		}
	}

	c.scopes = append(c.scopes, root)
	c.fileScopes[f] = root
	c.nsScopes[f] = root
	c.declareNamespaceMembers(f, f.Members, root)
}

func (c *checker) declareNamespaceMembers(f *syntax.File, members []syntax.Decl, sc *nsScope) {
	for _, d := range members {
		switch d := d.(type) {
		case *syntax.NamespaceDecl:
			inner := sc
			for _, part := range qualifiedName(d.Name) {
				inner = &nsScope{parent: inner, ns: inner.ns.child(part)}
			}

			inner.usings = d.Usings
			c.scopes = append(c.scopes, inner)
			c.nsScopes[d] = inner
			c.declareNamespaceMembers(f, d.Members, inner)

		case *syntax.TypeDecl, *syntax.EnumDecl, *syntax.DelegateDecl:
			c.declareType(d, &env{scope: sc, file: f}, nil)
		}
	}
}

func typeHeader(d syntax.Decl) (name *syntax.Ident, mods syntax.Modifiers, kind TypeKind, tparams []*syntax.Ident) {
	switch d := d.(type) {
	case *syntax.TypeDecl:
		switch d.Keyword {
		case syntax.STRUCT:
			kind = Struct
		case syntax.INTERFACE:
			kind = Interface
		default:
			kind = Class
		}

		return d.Name, d.Mods, kind, d.TypeParams

	case *syntax.EnumDecl:
		return d.Name, d.Mods, Enum, nil

	case *syntax.DelegateDecl:
		return d.Name, d.Mods, Delegate, d.TypeParams
	}

	return nil, nil, InvalidType, nil
}

func (c *checker) declareType(d syntax.Decl, e *env, outer *Named) {
	name, mods, kind, tparams := typeHeader(d)
	if name == nil || name.Missing {
		return
	}

	var siblings []*Named

	if outer != nil {
		for _, m := range outer.byName[name.Name] {
			if t, ok := m.(*Named); ok {
				siblings = append(siblings, t)
			}
		}
	} else {
		siblings = e.scope.ns.types[name.Name]
	}

	var t *Named

	for _, s := range siblings {
		if len(s.tparams) == len(tparams) && s.kind == kind && mods.HasName("partial") {
			t = s
		}
	}

	if t == nil {
		t = &Named{name: name.Name, ns: e.scope.ns, outer: outer, kind: kind, byName: make(map[string][]Symbol)}

		for i, id := range tparams {
			t.tparams = append(t.tparams, &TypeParam{name: id.Name, index: i, owner: t})
		}

		if outer != nil {
			outer.addMember(name.Name, t)
		} else {
			e.scope.ns.types[name.Name] = append(e.scope.ns.types[name.Name], t)
		}

		c.all = append(c.all, t)
	}

	t.parts = append(t.parts, typePart{decl: d, env: e})
	t.mods = append(t.mods, mods...)
	c.symbols[d] = t

	if td, ok := d.(*syntax.TypeDecl); ok {
		for _, m := range td.Members {
			switch m.(type) {
			case *syntax.TypeDecl, *syntax.EnumDecl, *syntax.DelegateDecl:
				c.declareType(m, e, t)
			}
		}
	}
}

func (t *Named) addMember(name string, s Symbol) {
	t.members = append(t.members, s)
	t.byName[name] = append(t.byName[name], s)
}

var specialNames = map[string]Special{
	"Object":            Object,
	"String":            String,
	"Boolean":           Bool,
	"Char":              Char,
	"SByte":             SByte,
	"Byte":              Byte,
	"Int16":             Int16,
	"UInt16":            UInt16,
	"Int32":             Int32,
	"UInt32":            UInt32,
	"Int64":             Int64,
	"UInt64":            UInt64,
	"Single":            Single,
	"Double":            Double,
	"Decimal":           Decimal,
	"Void":              Void,
	"ValueType":         ValueType,
	"Enum":              EnumBase,
	"Delegate":          DelegateBase,
	"MulticastDelegate": MulticastDelegate,
	"Array":             ArrayBase,
	"Nullable":          Nullable,
	"Type":              SystemType,
}

func (c *checker) identifySpecials() {
	sys, ok := c.global.children["System"]
	if !ok {
		return
	}

	for name, s := range specialNames {
		arity := 0
		if s == Nullable {
			arity = 1
		}

		if t := sys.Type(name, arity); t != nil {
			t.special = s
			c.specials[s] = t
		}
	}
}

// ----------------------------------------------------------------------------
// Type headers

func (c *checker) resolveHeader(t *Named) {
	for _, part := range t.parts {
		ts := typeScope{scope: part.env.scope, typ: t.outer}

		switch d := part.decl.(type) {
		case *syntax.TypeDecl:
			// type parameters of t are visible in its base list
			inner := typeScope{scope: ts.scope, typ: t.outer, method: &Method{tparams: t.tparams}}

			for i, b := range d.Bases {
				bt := c.resolveType(inner, b)

				switch {
				case bt == nil:
				case i == 0 && t.kind == Class && !IsInterface(bt) && t.base == nil:
					t.base = bt
				default:
					t.ifaces = append(t.ifaces, bt)
				}
			}

		case *syntax.EnumDecl:
			t.under = c.special(Int32)
			if d.Base != nil {
				if u := c.resolveType(ts, d.Base); u != nil {
					t.under = u
				}
			}

		case *syntax.DelegateDecl:
			m := &Method{name: "Invoke", owner: t, mkind: Invoke, decl: d}
			ms := typeScope{scope: ts.scope, typ: t}
			m.result = c.resolveType(ms, d.Result)
			m.params = c.declareParams(ms, m, d.Params)
			t.invoke = m
			t.addMember("Invoke", m)
		}
	}

	if t.base != nil {
		return
	}

	switch t.kind {
	case Class:
		if t.special != Object {
			t.base = c.special(Object)
		}
	case Struct:
		t.base = c.special(ValueType)
	case Enum:
		t.base = c.special(EnumBase)
	case Delegate:
		t.base = c.special(MulticastDelegate)
	}
}

func (c *checker) special(s Special) Type {
	if t := c.specials[s]; t != nil {
		return t
	}

	return nil
}

// ----------------------------------------------------------------------------
// Members

func (c *checker) declareMembers(t *Named) {
	hasCtor := false

	for _, part := range t.parts {
		ts := typeScope{scope: part.env.scope, typ: t}

		switch d := part.decl.(type) {
		case *syntax.TypeDecl:
			if d.Params != nil {
				hasCtor = true

				c.declareRecordParams(ts, t, d)
			}

			for _, m := range d.Members {
				if c.declareMember(ts, t, m) {
					hasCtor = true
				}
			}

		case *syntax.EnumDecl:
			for _, m := range d.Members {
				if m.Name.Missing {
					continue
				}

				f := &Field{name: m.Name.Name, owner: t, typ: t, decl: m, static: true, readonly: true, isConst: true}
				t.addMember(f.name, f)
				c.symbols[m] = f
				c.fieldScopes[f] = ts
			}
		}
	}

	if !hasCtor && (t.kind == Class && !t.mods.Has(syntax.STATIC) || t.kind == Struct) {
		ctor := &Method{name: t.name, owner: t, mkind: Constructor, result: c.special(Void)}
		t.addMember(ctorName, ctor)
	}
}

// ctorName is the member name instance constructors are recorded under.
const ctorName = ".ctor"

func (c *checker) declareRecordParams(ts typeScope, t *Named, d *syntax.TypeDecl) {
	ctor := &Method{name: t.name, owner: t, mkind: Constructor, decl: d, result: c.special(Void)}
	ctor.params = c.declareParams(ts, ctor, d.Params)
	t.addMember(ctorName, ctor)

	for _, p := range ctor.params {
		prop := &Property{name: p.name, owner: t, typ: p.typ, get: true, set: true}
		t.addMember(prop.name, prop)
	}
}

// declareMember declares one member and reports whether it is an instance constructor.
func (c *checker) declareMember(ts typeScope, t *Named, m syntax.Decl) bool {
	static := func(mods syntax.Modifiers) bool {
		return mods.Has(syntax.STATIC) || mods.Has(syntax.CONST)
	}

	switch d := m.(type) {
	case *syntax.FieldDecl:
		typ := c.resolveType(ts, d.Type)

		for _, v := range d.Vars {
			if v.Name.Missing {
				continue
			}

			if d.Event {
				ev := &Event{name: v.Name.Name, owner: t, typ: typ, decl: v, static: static(d.Mods)}
				t.addMember(ev.name, ev)
				c.symbols[v] = ev

				continue
			}

			f := &Field{
				name: v.Name.Name, owner: t, typ: typ, decl: v, field: d,
				static:   static(d.Mods),
				readonly: d.Mods.Has(syntax.READONLY),
				isConst:  d.Mods.Has(syntax.CONST),
			}
			t.addMember(f.name, f)
			c.symbols[v] = f
			c.fieldScopes[f] = ts
		}

	case *syntax.PropertyDecl:
		if !d.Indexer && (d.Name == nil || d.Name.Missing) {
			return false
		}

		p := &Property{name: "this", owner: t, typ: c.resolveType(ts, d.Type), decl: d, static: static(d.Mods)}
		if d.Indexer {
			p.params = c.declareParams(ts, p, d.Params)
		} else {
			p.name = d.Name.Name
		}

		if d.ExprBody != nil {
			p.get = true
		}

		for _, a := range d.Accessors {
			switch a.Keyword.Name {
			case "get":
				p.get = true
			case "set", "init":
				p.set = true
			}
		}

		t.addMember(p.name, p)
		c.symbols[d] = p

	case *syntax.EventDecl:
		if d.Name == nil || d.Name.Missing {
			return false
		}

		ev := &Event{name: d.Name.Name, owner: t, typ: c.resolveType(ts, d.Type), decl: d, static: static(d.Mods)}
		t.addMember(ev.name, ev)
		c.symbols[d] = ev

	case *syntax.MethodDecl:
		meth := &Method{owner: t, decl: d, mods: d.Mods, static: static(d.Mods)}

		key := ""

		switch d.MethodKind {
		case syntax.Constructor:
			meth.name = t.name
			meth.result = c.special(Void)

			meth.mkind = Constructor
			key = ctorName

			if meth.static {
				meth.mkind = StaticConstructor
				key = ".cctor"
			}

		case syntax.Destructor:
			meth.name = "~" + t.name
			meth.result = c.special(Void)
			key = meth.name

		case syntax.Operator:
			meth.mkind = Operator
			meth.name = d.Name.Name
			key = meth.name

		default:
			if d.Name == nil || d.Name.Missing {
				return false
			}

			meth.name = d.Name.Name
			key = meth.name
		}

		for i, id := range d.TypeParams {
			meth.tparams = append(meth.tparams, &TypeParam{name: id.Name, index: i, owner: meth})
		}

		ms := typeScope{scope: ts.scope, typ: t, method: meth}
		if meth.result == nil && d.Result != nil {
			meth.result = c.resolveType(ms, d.Result)
		}

		meth.params = c.declareParams(ms, meth, d.Params)
		meth.ext = meth.static && len(d.Params) > 0 && d.Params[0].Mods.Has(syntax.THIS)

		t.addMember(key, meth)
		c.symbols[d] = meth

		return meth.mkind == Constructor
	}

	return false
}

func (c *checker) declareParams(ts typeScope, owner Symbol, list []*syntax.Param) []*Param {
	params := make([]*Param, 0, len(list))

	for i, d := range list {
		p := &Param{index: i, owner: owner, decl: d, ref: syntax.ILLEGAL, optional: d.Default != nil}
		if d.Name != nil {
			p.name = d.Name.Name
		}

		if d.Type != nil {
			p.typ = c.resolveType(ts, d.Type)
		}

		for _, m := range d.Mods {
			switch m.Tok {
			case syntax.REF, syntax.OUT, syntax.IN:
				p.ref = m.Tok
			case syntax.PARAMS:
				p.variadic = true
			}
		}

		params = append(params, p)
		c.symbols[d] = p
	}

	return params
}
