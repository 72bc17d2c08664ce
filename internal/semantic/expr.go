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

	"fillmore-labs.com/dpguard/internal/syntax"
)

type mode uint8

const (
	invalid mode = iota
	value
	typexpr
	nsexpr
	methodGroup
	lambdaExpr
	throwExpr
)

// operand is the result of binding an expression.
type operand struct {
	mode mode
	typ  Type
	sym  Symbol
	val  constant.Value
	ns   *Namespace

	group []memberRef // method group candidates
	targs []Type      // explicit method type arguments
}

// locals is a block scope of local variables, parameters and local functions.
type locals struct {
	parent *locals
	names  map[string]Symbol
}

func (l *locals) lookup(name string) Symbol {
	for s := l; s != nil; s = s.parent {
		if sym, ok := s.names[name]; ok {
			return sym
		}
	}

	return nil
}

// binder binds the expressions and statements of one member body.
type binder struct {
	*checker

	ts     typeScope
	member Symbol
	scope  *locals
	result Type // return type of the innermost method or lambda
}

func (c *checker) newBinder(ts typeScope, member Symbol) *binder {
	return &binder{checker: c, ts: ts, member: member, scope: &locals{}}
}

func (b *binder) push() {
	b.scope = &locals{parent: b.scope}
}

func (b *binder) pop() {
	b.scope = b.scope.parent
}

func (b *binder) declare(name string, sym Symbol) {
	if name == "" || name == "_" {
		return
	}

	if b.scope.names == nil {
		b.scope.names = make(map[string]Symbol)
	}

	b.scope.names[name] = sym
}

// record stores the binding result of x.
func (b *binder) record(x syntax.Expr, op operand) operand {
	switch op.mode {
	case value, typexpr:
		if op.typ != nil {
			b.types[x] = op.typ
		}

		if op.val != nil {
			b.consts[x] = op.val
		}
	}

	if op.sym != nil {
		b.symbols[x] = op.sym
	}

	return op
}

// valueOf returns a value operand for a symbol found through via.
func (b *binder) valueOf(ref memberRef) operand {
	op := operand{mode: value, sym: ref.sym, typ: ref.typ()}

	if f, ok := ref.sym.(*Field); ok && f.isConst {
		op.val = b.fieldConstant(f)
	}

	return op
}

// expr binds x. target is the type the context converts x to, if known; it types lambdas,
// method groups and target-typed expressions.
func (b *binder) expr(x syntax.Expr, target Type) operand {
	if x == nil {
		return operand{}
	}

	op := b.expr0(x, target)

	return b.record(x, op)
}

// value binds x and returns its type.
func (b *binder) value(x syntax.Expr, target Type) Type {
	return b.expr(x, target).typ
}

func (b *binder) expr0(x syntax.Expr, target Type) operand {
	switch x := x.(type) {
	case *syntax.BasicLit:
		if x.Tok == syntax.NULL {
			return operand{mode: value, typ: NullType{}}
		}

		v, s := literal(x)

		return operand{mode: value, typ: b.special(s), val: v}

	case *syntax.Ident:
		if x.Missing {
			return operand{}
		}

		return b.ident(x, target)

	case *syntax.GenericName:
		return b.genericName(x, target)

	case *syntax.MemberAccess:
		return b.memberAccess(x, target)

	case *syntax.PredefinedType, *syntax.ArrayType, *syntax.NullableType:
		if t := b.resolveType(b.ts, x); t != nil {
			return operand{mode: typexpr, typ: t}
		}

	case *syntax.ParenExpr:
		op := b.expr(x.X, target)
		op.sym = nil

		return op

	case *syntax.ThisExpr:
		if b.ts.typ != nil {
			return operand{mode: value, typ: b.selfType()}
		}

	case *syntax.BaseExpr:
		if b.ts.typ != nil {
			return operand{mode: value, typ: b.selfType().Base()}
		}

	case *syntax.InvocationExpr:
		return b.invocation(x, target)

	case *syntax.ElementAccess:
		return b.elementAccess(x)

	case *syntax.ObjectCreation:
		return b.objectCreation(x, target)

	case *syntax.ArrayCreation:
		return b.arrayCreation(x, target)

	case *syntax.InitializerExpr:
		elem := Type(nil)
		if a, ok := target.(*Array); ok {
			elem = a.elem
		}

		for _, e := range x.Elems {
			b.expr(e, elem)
		}

		if _, ok := target.(*Array); ok {
			return operand{mode: value, typ: target}
		}

	case *syntax.TypeofExpr:
		b.resolveType(b.ts, x.Type)

		return operand{mode: value, typ: b.special(SystemType)}

	case *syntax.DefaultExpr:
		t := target
		if x.Type != nil {
			t = b.resolveType(b.ts, x.Type)
		}

		return operand{mode: value, typ: t, val: zeroValue(t)}

	case *syntax.CastExpr:
		t := b.resolveType(b.ts, x.Type)
		op := b.expr(x.X, t)

		return operand{mode: value, typ: t, val: b.castConstant(op.val, t)}

	case *syntax.AsExpr:
		b.value(x.X, nil)

		return operand{mode: value, typ: b.resolveType(b.ts, x.Type)}

	case *syntax.IsExpr:
		b.isExpr(x)

		return operand{mode: value, typ: b.special(Bool)}

	case *syntax.UnaryExpr:
		return b.unary(x)

	case *syntax.PostfixExpr:
		op := b.expr(x.X, target)
		op.sym = nil

		if x.Op == syntax.NOT {
			return op
		}

		return operand{mode: value, typ: op.typ}

	case *syntax.AwaitExpr:
		b.value(x.X, nil)

	case *syntax.BinaryExpr:
		return b.binary(x, target)

	case *syntax.ConditionalExpr:
		return b.conditional(x, target)

	case *syntax.AssignExpr:
		return b.assign(x)

	case *syntax.LambdaExpr:
		b.lambda(x, target)

		return operand{mode: lambdaExpr, typ: delegateOrNil(target)}

	case *syntax.ThrowExpr:
		b.value(x.X, nil)

		return operand{mode: throwExpr}
	}

	return operand{}
}

func delegateOrNil(t Type) Type {
	if IsDelegate(t) {
		return t
	}

	return nil
}

// selfType returns the enclosing type as seen from inside its declaration.
func (b *binder) selfType() *Named {
	t := b.ts.typ
	if len(t.tparams) == 0 {
		return t
	}

	args := make([]Type, len(t.tparams))
	for i, p := range t.tparams {
		args[i] = p
	}

	return instantiate(t, args)
}

func zeroValue(t Type) constant.Value {
	switch s := SpecialOf(t); {
	case s.IsIntegral() || IsEnum(t):
		return constant.MakeInt64(0)
	case s == Single || s == Double || s == Decimal:
		return constant.MakeFloat64(0)
	case s == Bool:
		return constant.MakeBool(false)
	}

	return nil
}

func (b *binder) castConstant(v constant.Value, t Type) constant.Value {
	if v == nil || t == nil {
		return nil
	}

	if IsEnum(t) {
		t = AsNamed(t).EnumUnderlying()
	}

	return convertConstant(v, SpecialOf(t))
}

// ----------------------------------------------------------------------------
// Names

// ident binds a simple name: locals, type parameters, members of enclosing types, namespace
// scopes and `using static` imports, in that order.
func (b *binder) ident(id *syntax.Ident, target Type) operand {
	if sym := b.scope.lookup(id.Name); sym != nil {
		b.use(id, sym)

		switch sym := sym.(type) {
		case *Method:
			return operand{mode: methodGroup, group: []memberRef{{sym: sym}}}
		case *Local:
			return operand{mode: value, sym: sym, typ: sym.typ, val: sym.cval}
		}

		return operand{mode: value, sym: sym, typ: TypeOfSymbol(sym)}
	}

	if m := b.ts.method; m != nil {
		for _, p := range m.tparams {
			if p.name == id.Name {
				return operand{mode: typexpr, typ: p}
			}
		}
	}

	for t := b.ts.typ; t != nil; t = t.outer {
		for _, p := range t.tparams {
			if p.name == id.Name {
				return operand{mode: typexpr, typ: p}
			}
		}

		self := t
		if t == b.ts.typ {
			self = b.selfType()
		}

		if refs := b.lookupMembers(self, id.Name); len(refs) > 0 {
			return b.members(id, refs, nil, target)
		}
	}

	switch found := b.lookupScopeType(b.ts.scope, id.Name, 0).(type) {
	case *Named:
		b.use(id, found)

		return operand{mode: typexpr, typ: found}

	case *Namespace:
		b.use(id, found)

		return operand{mode: nsexpr, ns: found}
	}

	for s := b.ts.scope; s != nil; s = s.parent {
		for _, st := range s.statics {
			if refs := b.lookupMembers(st, id.Name); len(refs) > 0 {
				return b.members(id, refs, nil, target)
			}
		}
	}

	return operand{}
}

// members turns a member lookup result into an operand and records the reference.
func (b *binder) members(id *syntax.Ident, refs []memberRef, targs []Type, target Type) operand {
	if _, ok := refs[0].sym.(*Method); ok {
		op := operand{mode: methodGroup, group: refs, targs: targs}

		if target != nil {
			if m := b.resolveGroup(refs, targs, target); m != nil {
				b.use(id, m)
				op.sym = m
			}
		} else if len(refs) == 1 {
			b.use(id, refs[0].sym)
		}

		return op
	}

	ref := refs[0]
	b.use(id, ref.sym)

	if t, ok := ref.sym.(*Named); ok {
		if len(targs) > 0 {
			return operand{mode: typexpr, typ: instantiate(t, targs), sym: t}
		}

		return operand{mode: typexpr, typ: t, sym: t}
	}

	return b.valueOf(ref)
}

func (b *binder) genericName(x *syntax.GenericName, target Type) operand {
	targs := make([]Type, len(x.TypeArgs))
	for i, a := range x.TypeArgs {
		targs[i] = b.resolveType(b.ts, a)
	}

	for t := b.ts.typ; t != nil; t = t.outer {
		refs := b.lookupMembers(t, x.Name.Name)
		if len(refs) == 0 {
			continue
		}

		if _, ok := refs[0].sym.(*Method); ok {
			return b.members(x.Name, genericMethods(refs, len(targs)), targs, target)
		}
	}

	if t, ok := b.resolveTypeOrNamespace(b.ts, x).(Type); ok {
		return operand{mode: typexpr, typ: t}
	}

	return operand{}
}

func genericMethods(refs []memberRef, arity int) []memberRef {
	var list []memberRef

	for _, r := range refs {
		if m, ok := r.sym.(*Method); ok && len(m.tparams) == arity {
			list = append(list, r)
		}
	}

	if len(list) == 0 {
		return refs
	}

	return list
}

func (b *binder) memberAccess(x *syntax.MemberAccess, target Type) operand {
	if x.Alias {
		if t, ok := b.resolveTypeOrNamespace(b.ts, x).(Type); ok {
			return operand{mode: typexpr, typ: t}
		}

		if ns, ok := b.resolveTypeOrNamespace(b.ts, x).(*Namespace); ok {
			return operand{mode: nsexpr, ns: ns}
		}

		return operand{}
	}

	left := b.expr(x.X, nil)
	name := x.Name.Name

	var targs []Type
	if len(x.TypeArgs) > 0 {
		targs = make([]Type, len(x.TypeArgs))
		for i, a := range x.TypeArgs {
			targs[i] = b.resolveType(b.ts, a)
		}
	}

	switch left.mode {
	case nsexpr:
		if t := left.ns.Type(name, len(targs)); t != nil {
			b.use(x.Name, t)

			if len(targs) > 0 {
				return operand{mode: typexpr, typ: instantiate(t, targs), sym: t}
			}

			return operand{mode: typexpr, typ: t, sym: t}
		}

		if ns, ok := left.ns.children[name]; ok {
			b.use(x.Name, ns)

			return operand{mode: nsexpr, ns: ns, sym: ns}
		}

	case typexpr:
		if refs := b.lookupMembers(left.typ, name); len(refs) > 0 {
			if _, ok := refs[0].sym.(*Method); ok && len(targs) > 0 {
				refs = genericMethods(refs, len(targs))
			}

			return b.members(x.Name, refs, targs, target)
		}

	case value:
		if left.typ == nil {
			return operand{}
		}

		refs := b.lookupMembers(left.typ, name)
		if len(refs) == 0 {
			return operand{}
		}

		if _, ok := refs[0].sym.(*Method); ok && len(targs) > 0 {
			refs = genericMethods(refs, len(targs))
		}

		if refs[0].sym.Static() {
			b.colorColor(x.X, left)
		}

		op := b.members(x.Name, refs, targs, target)
		if x.Conditional && op.mode == value {
			op.typ = b.nullableOf(op.typ)
		}

		return op
	}

	return operand{}
}

// colorColor rebinds a simple name that denotes both a value and its type of the same name,
// like `Visibility.Visible` inside a type with a `Visibility` property.
func (b *binder) colorColor(x syntax.Expr, left operand) {
	id, ok := x.(*syntax.Ident)
	if !ok {
		return
	}

	t := AsNamed(left.typ)
	if t == nil || t.Name() != id.Name {
		return
	}

	b.use(id, t.Origin())
	b.symbols[x] = t.Origin()
	b.types[x] = left.typ
}

func (b *binder) elementAccess(x *syntax.ElementAccess) operand {
	op := b.expr(x.X, nil)

	if a, ok := op.typ.(*Array); ok {
		for _, arg := range x.Args {
			b.value(arg.Value, nil)
		}

		return operand{mode: value, typ: a.elem}
	}

	if op.mode != value || op.typ == nil {
		b.bindArgs(x.Args)

		return operand{}
	}

	var (
		indexers []memberRef
		elem     Type
	)

	for _, r := range b.lookupMembers(op.typ, "this") {
		if _, ok := r.sym.(*Property); ok {
			indexers = append(indexers, r)
		}
	}

	if len(indexers) > 0 {
		if p, _ := b.resolveIndexer(indexers, x.Args); p != nil {
			b.symbols[x] = p.sym
			elem = p.typ()
		}
	} else {
		b.bindArgs(x.Args)
	}

	if x.Conditional {
		elem = b.nullableOf(elem)
	}

	return operand{mode: value, typ: elem}
}

// ----------------------------------------------------------------------------
// Operators

func (b *binder) isExpr(x *syntax.IsExpr) {
	b.value(x.X, nil)

	var t Type
	if x.Type != nil {
		t = b.resolveType(b.ts, x.Type)
	}

	if x.Pattern != nil {
		b.expr(x.Pattern, nil)
	}

	if x.Name != nil && !x.Name.Missing {
		l := &Local{name: x.Name.Name, typ: t, decl: x.Name}
		b.declare(l.name, l)
		b.symbols[x.Name] = l
	}
}

func (b *binder) unary(x *syntax.UnaryExpr) operand {
	op := b.expr(x.X, nil)

	switch x.Op {
	case syntax.NOT:
		return operand{mode: value, typ: b.special(Bool), val: foldUnary(x.Op, op.val, Bool)}

	case syntax.INC, syntax.DEC:
		return operand{mode: value, typ: op.typ}

	case syntax.ADD, syntax.SUB, syntax.TILDE:
		if IsEnum(op.typ) && x.Op == syntax.TILDE {
			return operand{mode: value, typ: op.typ, val: foldUnary(x.Op, op.val, SpecialOf(AsNamed(op.typ).EnumUnderlying()))}
		}

		s := unaryPromotion(SpecialOf(op.typ), x.Op)
		if s == NotSpecial {
			return operand{mode: value}
		}

		return operand{mode: value, typ: b.special(s), val: foldUnary(x.Op, op.val, s)}
	}

	return operand{mode: value}
}

func unaryPromotion(s Special, op syntax.Token) Special {
	switch s {
	case SByte, Byte, Int16, UInt16, Char, Int32:
		return Int32
	case UInt32:
		if op == syntax.SUB {
			return Int64
		}

		return UInt32
	case Int64, Single, Double, Decimal:
		return s
	case UInt64:
		if op == syntax.SUB {
			return NotSpecial
		}

		return UInt64
	}

	return NotSpecial
}

// binaryPromotion returns the operand type of a binary numeric operation.
func binaryPromotion(x, y Special) Special {
	if !x.IsNumeric() || !y.IsNumeric() {
		return NotSpecial
	}

	switch {
	case x == Decimal || y == Decimal:
		return Decimal
	case x == Double || y == Double:
		return Double
	case x == Single || y == Single:
		return Single
	case x == UInt64 || y == UInt64:
		return UInt64
	case x == Int64 || y == Int64:
		return Int64
	case x == UInt32 && isSigned(y) || y == UInt32 && isSigned(x):
		return Int64
	case x == UInt32 || y == UInt32:
		return UInt32
	}

	return Int32
}

func isSigned(s Special) bool {
	switch s {
	case SByte, Int16, Int32, Int64:
		return true
	}

	return false
}

func (b *binder) binary(x *syntax.BinaryExpr, target Type) operand {
	if x.Op == syntax.COALESCE {
		l := b.expr(x.X, target)
		lt := l.typ
		if e := NullableElem(lt); e != nil {
			lt = e
		}

		r := b.expr(x.Y, lt)

		t := lt
		if t == nil || r.typ != nil && !b.IsAssignable(r.typ, t) && b.IsAssignable(lt, r.typ) {
			t = r.typ
		}

		return operand{mode: value, typ: t}
	}

	l := b.expr(x.X, nil)
	r := b.expr(x.Y, nil)

	switch x.Op {
	case syntax.LAND, syntax.LOR:
		return operand{mode: value, typ: b.special(Bool), val: foldBinary(x.Op, l.val, r.val, Bool)}

	case syntax.EQL, syntax.NEQ, syntax.LSS, syntax.GTR, syntax.LEQ, syntax.GEQ:
		return operand{mode: value, typ: b.special(Bool), val: foldBinary(x.Op, l.val, r.val, Bool)}
	}

	ls, rs := SpecialOf(l.typ), SpecialOf(r.typ)

	if x.Op == syntax.ADD && (ls == String || rs == String) {
		return operand{mode: value, typ: b.special(String), val: foldBinary(x.Op, l.val, r.val, String)}
	}

	// enum operators
	switch le, re := IsEnum(l.typ), IsEnum(r.typ); {
	case le && re && x.Op == syntax.SUB:
		u := AsNamed(l.typ).EnumUnderlying()

		return operand{mode: value, typ: u, val: foldBinary(x.Op, l.val, r.val, SpecialOf(u))}

	case le || re:
		t := l.typ
		if !le {
			t = r.typ
		}

		switch x.Op {
		case syntax.AND, syntax.OR, syntax.XOR, syntax.ADD, syntax.SUB:
			return operand{mode: value, typ: t, val: foldBinary(x.Op, l.val, r.val, SpecialOf(AsNamed(t).EnumUnderlying()))}
		}

		return operand{mode: value}
	}

	if ls == Bool && rs == Bool {
		switch x.Op {
		case syntax.AND, syntax.OR, syntax.XOR:
			return operand{mode: value, typ: l.typ, val: foldBinary(x.Op, l.val, r.val, Bool)}
		}
	}

	if x.Op == syntax.SHL || x.Op == syntax.SHR {
		s := unaryPromotion(ls, syntax.ADD)
		if s == NotSpecial || !s.IsIntegral() {
			return operand{mode: value}
		}

		return operand{mode: value, typ: b.special(s), val: foldBinary(x.Op, l.val, r.val, s)}
	}

	s := binaryPromotion(ls, rs)
	if s == NotSpecial {
		return operand{mode: value}
	}

	return operand{mode: value, typ: b.special(s), val: foldBinary(x.Op, l.val, r.val, s)}
}

func (b *binder) conditional(x *syntax.ConditionalExpr, target Type) operand {
	cond := b.expr(x.Cond, b.special(Bool))
	th := b.expr(x.Then, target)
	el := b.expr(x.Else, target)

	var t Type

	switch {
	case th.typ == nil || th.mode == throwExpr:
		t = el.typ
	case el.typ == nil || el.mode == throwExpr:
		t = th.typ
	case b.ClassifyConversion(x.Else, th.typ).IsImplicit():
		t = th.typ
	case b.ClassifyConversion(x.Then, el.typ).IsImplicit():
		t = el.typ
	}

	if _, null := t.(NullType); null || t == nil {
		t = target
	}

	var v constant.Value

	if cond.val != nil && cond.val.Kind() == constant.Bool {
		if constant.BoolVal(cond.val) {
			v = th.val
		} else {
			v = el.val
		}
	}

	return operand{mode: value, typ: t, val: v}
}

func (b *binder) assign(x *syntax.AssignExpr) operand {
	l := b.expr(x.Lhs, nil)

	target := l.typ
	if ev, ok := l.sym.(*Event); ok {
		target = ev.typ
	}

	b.expr(x.Rhs, target)

	return operand{mode: value, typ: l.typ}
}

// ----------------------------------------------------------------------------
// Lambdas

// lambda binds a lambda or anonymous method against the delegate type target, or with
// unknown parameter types when target is not a delegate.
func (b *binder) lambda(x *syntax.LambdaExpr, target Type) {
	sig := delegateSignature(target)

	m := &Method{name: "lambda", owner: b.ts.typ, mkind: Lambda, decl: x, static: x.Static}

	if sig != nil {
		m.result = sig.Result
	}

	b.symbols[x] = m

	saved := b.result
	b.result = m.result

	b.push()
	defer func() {
		b.pop()
		b.result = saved
	}()

	for i, d := range x.Params {
		p := &Param{index: i, owner: m, decl: d, ref: syntax.ILLEGAL}
		if d.Name != nil {
			p.name = d.Name.Name
		}

		switch {
		case d.Type != nil:
			p.typ = b.resolveType(b.ts, d.Type)
		case sig != nil && i < len(sig.Params):
			p.typ = sig.Params[i]
		}

		m.params = append(m.params, p)
		b.symbols[d] = p
		b.declare(p.name, p)
	}

	switch body := x.Body.(type) {
	case *syntax.Block:
		b.block(body)

	case syntax.Expr:
		res := m.result
		if SpecialOf(res) == Void {
			res = nil
		}

		b.expr(body, res)
	}
}
