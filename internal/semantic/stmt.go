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

import "fillmore-labs.com/dpguard/internal/syntax"

func (b *binder) block(x *syntax.Block) {
	if x == nil {
		return
	}

	b.push()
	defer b.pop()

	b.declareLocalFuncs(x.Stmts)

	for _, s := range x.Stmts {
		b.stmt(s)
	}
}

// declareLocalFuncs declares the local functions of a block up front; they are visible in
// the whole block.
func (b *binder) declareLocalFuncs(list []syntax.Stmt) {
	for _, s := range list {
		lf, ok := s.(*syntax.LocalFuncStmt)
		if !ok || lf.Func == nil || lf.Func.Name == nil {
			continue
		}

		d := lf.Func
		m := &Method{name: d.Name.Name, owner: b.ts.typ, mkind: LocalFunction, decl: d, mods: d.Mods, static: d.Mods.Has(syntax.STATIC)}

		for i, id := range d.TypeParams {
			m.tparams = append(m.tparams, &TypeParam{name: id.Name, index: i, owner: m})
		}

		ts := typeScope{scope: b.ts.scope, typ: b.ts.typ, method: m}
		m.result = b.resolveType(ts, d.Result)
		m.params = b.declareParams(ts, m, d.Params)

		b.symbols[d] = m
		b.declare(m.name, m)
	}
}

func (b *binder) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.Block:
		b.block(s)

	case *syntax.LocalDeclStmt:
		b.localDecl(s)

	case *syntax.LocalFuncStmt:
		if m, ok := b.symbols[s.Func].(*Method); ok {
			b.localFunc(m, s.Func)
		}

	case *syntax.ExprStmt:
		b.expr(s.X, nil)

	case *syntax.ReturnStmt:
		res := b.result
		if SpecialOf(res) == Void {
			res = nil
		}

		b.expr(s.X, res)

	case *syntax.IfStmt:
		b.expr(s.Cond, b.special(Bool))
		b.scoped(s.Then)
		b.scoped(s.Else)

	case *syntax.WhileStmt:
		b.expr(s.Cond, b.special(Bool))
		b.scoped(s.Body)

	case *syntax.DoStmt:
		b.scoped(s.Body)
		b.expr(s.Cond, b.special(Bool))

	case *syntax.ForStmt:
		b.push()

		for _, i := range s.Init {
			b.stmt(i)
		}

		b.expr(s.Cond, b.special(Bool))

		for _, p := range s.Post {
			b.expr(p, nil)
		}

		b.scoped(s.Body)
		b.pop()

	case *syntax.ForeachStmt:
		coll := b.value(s.X, nil)

		var t Type
		if id, ok := s.Type.(*syntax.Ident); ok && id.Name == "var" {
			t = b.elementType(coll)
		} else {
			t = b.resolveType(b.ts, s.Type)
		}

		b.push()

		if s.Name != nil && !s.Name.Missing {
			l := &Local{name: s.Name.Name, typ: t, decl: s}
			b.symbols[s.Name] = l
			b.declare(l.name, l)
		}

		b.scoped(s.Body)
		b.pop()

	case *syntax.SwitchStmt:
		tag := b.value(s.Tag, nil)

		for _, sec := range s.Sections {
			b.push()

			for _, l := range sec.Labels {
				b.expr(l.X, tag)
				b.expr(l.Guard, b.special(Bool))
			}

			b.declareLocalFuncs(sec.Stmts)

			for _, st := range sec.Stmts {
				b.stmt(st)
			}

			b.pop()
		}

	case *syntax.TryStmt:
		b.block(s.Body)

		for _, cc := range s.Catches {
			b.push()

			t := b.resolveType(b.ts, cc.Type)
			if cc.Name != nil && !cc.Name.Missing {
				l := &Local{name: cc.Name.Name, typ: t, decl: cc}
				b.symbols[cc.Name] = l
				b.declare(l.name, l)
			}

			b.expr(cc.Filter, b.special(Bool))
			b.block(cc.Body)
			b.pop()
		}

		b.block(s.Finally)

	case *syntax.ThrowStmt:
		b.expr(s.X, nil)

	case *syntax.UsingStmt:
		b.push()

		if s.Decl != nil {
			b.localDecl(s.Decl)
		}

		b.expr(s.X, nil)
		b.scoped(s.Body)
		b.pop()

	case *syntax.LockStmt:
		b.expr(s.X, nil)
		b.scoped(s.Body)

	case *syntax.YieldStmt:
		b.expr(s.X, nil)
	}
}

// scoped binds an embedded statement in its own scope.
func (b *binder) scoped(s syntax.Stmt) {
	if s == nil {
		return
	}

	b.push()
	b.stmt(s)
	b.pop()
}

func (b *binder) localDecl(s *syntax.LocalDeclStmt) {
	implicit := false
	if id, ok := s.Type.(*syntax.Ident); ok && id.Name == "var" {
		implicit = true
	}

	var t Type
	if !implicit {
		t = b.resolveType(b.ts, s.Type)
	}

	isConst := s.Mods.Has(syntax.CONST)

	for _, v := range s.Vars {
		if v.Name == nil || v.Name.Missing {
			continue
		}

		l := &Local{name: v.Name.Name, typ: t, decl: v, isCons: isConst}

		if v.Init != nil {
			op := b.expr(v.Init, t)

			if implicit {
				if _, null := op.typ.(NullType); !null {
					l.typ = op.typ
				}
			}

			if isConst {
				l.cval = b.castConstant(op.val, l.typ)
			}
		}

		b.symbols[v] = l
		b.declare(l.name, l)
	}
}

func (b *binder) localFunc(m *Method, d *syntax.MethodDecl) {
	saved, savedTS := b.result, b.ts
	b.result = m.result
	b.ts = typeScope{scope: b.ts.scope, typ: b.ts.typ, method: m}

	b.push()
	defer func() {
		b.pop()
		b.result, b.ts = saved, savedTS
	}()

	for _, p := range m.params {
		b.declare(p.name, p)
	}

	b.body(d.Body, d.ExprBody)
}

// body binds a block or expression body.
func (b *binder) body(block *syntax.Block, x syntax.Expr) {
	if block != nil {
		b.block(block)
	}

	if x != nil {
		res := b.result
		if SpecialOf(res) == Void {
			res = nil
		}

		b.expr(x, res)
	}
}

// elementType returns the iteration variable type of a foreach over t.
func (b *binder) elementType(t Type) Type {
	if a, ok := t.(*Array); ok {
		return a.elem
	}

	if SpecialOf(t) == String {
		return b.special(Char)
	}

	if e := b.collectionElem(t); e != nil {
		return e
	}

	return b.special(Object)
}
