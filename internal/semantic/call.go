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

// argument is a bound call argument. Lambdas and method groups are bound after overload
// resolution, against the chosen parameter type.
type argument struct {
	arg *syntax.Argument
	op  operand
}

func (b *binder) bindArgs(args []*syntax.Argument) []argument {
	list := make([]argument, len(args))

	for i, a := range args {
		list[i].arg = a

		switch syntax.Unparen(a.Value).(type) {
		case *syntax.LambdaExpr:
			list[i].op = operand{mode: lambdaExpr}

		default:
			list[i].op = b.expr(a.Value, nil)
		}
	}

	return list
}

// finishArgs binds deferred arguments against the chosen parameters and records the
// argument to parameter mapping.
func (b *binder) finishArgs(args []argument, c *candidate) {
	for i, a := range args {
		var pt Type

		if c != nil {
			p := c.params[i]
			pt = paramType(c.sig, p, c.expanded)
			b.params[a.arg] = p
		}

		switch a.op.mode {
		case lambdaExpr:
			b.expr(a.arg.Value, pt)

		case methodGroup:
			if pt != nil {
				b.bindGroup(a.arg.Value, a.op, pt)
			}
		}
	}
}

// paramType returns the substituted type of p, the element type for expanded params arrays.
func paramType(sig *Signature, p *Param, expanded bool) Type {
	if sig == nil || p.index >= len(sig.Params) {
		return nil
	}

	t := sig.Params[p.index]
	if p.variadic && expanded {
		if arr, ok := t.(*Array); ok {
			return arr.elem
		}
	}

	return t
}

// bindGroup resolves the method group x against delegate type target and records the
// chosen method on x and its name.
func (b *binder) bindGroup(x syntax.Expr, op operand, target Type) *Method {
	m := b.resolveGroup(op.group, op.targs, target)
	if m == nil {
		return nil
	}

	b.symbols[x] = m

	switch y := syntax.Unparen(x).(type) {
	case *syntax.Ident:
		b.use(y, m)
		b.symbols[y] = m
	case *syntax.MemberAccess:
		b.use(y.Name, m)
		b.symbols[y] = m
	case *syntax.GenericName:
		b.use(y.Name, m)
		b.symbols[y] = m
	}

	return m
}

// resolveGroup selects the method of a group compatible with delegate type target.
func (b *binder) resolveGroup(group []memberRef, targs []Type, target Type) *Method {
	sig := delegateSignature(target)
	if sig == nil {
		return nil
	}

	var found *Method

	for _, r := range group {
		m, ok := r.sym.(*Method)
		if !ok || len(m.params) != len(sig.Params) || len(targs) > 0 && len(targs) != len(m.tparams) {
			continue
		}

		msig := signatureOf(m, r.via.subst())
		if !b.groupCompatible(msig, sig) {
			continue
		}

		if found != nil {
			return nil // ambiguous
		}

		found = m
	}

	return found
}

func (b *binder) groupCompatible(m, d *Signature) bool {
	for i, pt := range m.Params {
		if pt == nil || d.Params[i] == nil || ContainsTypeParam(pt) {
			continue
		}

		// parameters are contravariant
		if k := b.Classify(d.Params[i], pt); k != Identity && k != ImplicitReference {
			return false
		}
	}

	return true
}

// ----------------------------------------------------------------------------
// Invocations

func (b *binder) invocation(x *syntax.InvocationExpr, target Type) operand {
	if id, ok := x.Fun.(*syntax.Ident); ok && id.Name == "nameof" && b.scope.lookup("nameof") == nil {
		if op, ok := b.nameof(x); ok {
			return op
		}
	}

	fun := b.expr(x.Fun, nil)

	switch fun.mode {
	case methodGroup:
		args := b.bindArgs(x.Args)

		c := b.overload(fun.group, fun.targs, args)
		if c == nil {
			b.finishArgs(args, nil)

			return operand{mode: value}
		}

		b.finishArgs(args, c)
		b.symbols[x] = c.method
		b.recordCallee(x.Fun, c.method)

		return operand{mode: value, typ: c.sig.Result}

	case value:
		if sig := delegateSignature(fun.typ); sig != nil {
			args := b.bindArgs(x.Args)

			c := b.applicable(memberRef{sym: sig.Method, via: AsNamed(fun.typ)}, nil, args)
			b.finishArgs(args, c)

			b.symbols[x] = sig.Method

			return operand{mode: value, typ: sig.Result}
		}
	}

	b.finishArgs(b.bindArgs(x.Args), nil)

	return operand{mode: value}
}

// recordCallee records the chosen method on the invoked expression and its name.
func (b *binder) recordCallee(fun syntax.Expr, m *Method) {
	b.symbols[fun] = m

	switch f := fun.(type) {
	case *syntax.Ident:
		b.use(f, m)
	case *syntax.GenericName:
		b.use(f.Name, m)
		b.symbols[f.Name] = m
	case *syntax.MemberAccess:
		b.use(f.Name, m)
	}
}

// nameof binds `nameof(x)`: the argument is bound for its symbol, the value is its last name.
func (b *binder) nameof(x *syntax.InvocationExpr) (operand, bool) {
	if len(x.Args) != 1 {
		return operand{}, false
	}

	arg := x.Args[0].Value

	var name string

	switch a := syntax.Unparen(arg).(type) {
	case *syntax.Ident:
		name = a.Name
	case *syntax.MemberAccess:
		name = a.Name.Name
	case *syntax.GenericName:
		name = a.Name.Name
	default:
		return operand{}, false
	}

	op := b.expr(arg, nil)

	switch {
	case op.mode == methodGroup && len(op.group) > 0:
		b.symbols[arg] = op.group[0].sym
		b.recordCallee(arg, op.group[0].sym.(*Method))

	case op.mode == typexpr:
		if n := AsNamed(op.typ); n != nil {
			b.symbols[arg] = n.Origin()
		}

	case op.mode == nsexpr:
		b.symbols[arg] = op.ns
	}

	return operand{mode: value, typ: b.special(String), val: constant.MakeString(name)}, true
}

// ----------------------------------------------------------------------------
// Overload resolution

// candidate is an applicable method with its argument to parameter mapping.
type candidate struct {
	method   *Method
	sig      *Signature
	params   []*Param // parameter per argument
	expanded bool
}

// overload selects the best applicable method of a group, or nil when none applies or the
// choice is ambiguous.
func (b *binder) overload(group []memberRef, targs []Type, args []argument) *candidate {
	var list []*candidate

	for _, r := range group {
		if c := b.applicable(r, targs, args); c != nil {
			list = append(list, c)
		}
	}

	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}

	var best *candidate

	for _, c := range list {
		dominates := true

		for _, o := range list {
			if o != c && !b.better(c, o, args) {
				dominates = false

				break
			}
		}

		if dominates {
			if best != nil {
				return nil
			}

			best = c
		}
	}

	return best
}

// applicable maps args to the parameters of r and checks that each argument converts.
func (b *binder) applicable(r memberRef, targs []Type, args []argument) *candidate {
	m, ok := r.sym.(*Method)
	if !ok {
		return nil
	}

	if len(targs) > 0 && len(targs) != len(m.tparams) {
		return nil
	}

	params, expanded, ok := mapArgs(m.params, args)
	if !ok {
		return nil
	}

	s := r.via.subst()
	if s == nil {
		s = make(substitution)
	}

	if len(m.tparams) > 0 {
		inner := make(substitution, len(s)+len(m.tparams))
		for k, v := range s {
			inner[k] = v
		}

		switch {
		case len(targs) > 0:
			for i, p := range m.tparams {
				inner[p] = targs[i]
			}

		default:
			for i, a := range args {
				if a.op.mode == value && a.op.typ != nil {
					unify(inner, paramType(signatureOf(m, s), params[i], expanded), a.op.typ)
				}
			}
		}

		s = inner
	}

	c := &candidate{method: m, sig: signatureOf(m, s), params: params, expanded: expanded}

	for i, a := range args {
		if !b.argConverts(a, paramType(c.sig, params[i], expanded)) {
			return nil
		}
	}

	return c
}

// mapArgs assigns arguments to parameters: positional first, then by name, expanding a
// trailing params array when needed. Missing parameters must be optional.
func mapArgs(params []*Param, args []argument) ([]*Param, bool, bool) {
	mapped := make([]*Param, len(args))
	used := make([]bool, len(params))
	expanded := false

	for i, a := range args {
		if a.arg.Name != nil {
			found := false

			for j, p := range params {
				if p.name == a.arg.Name.Name && !used[j] {
					mapped[i], used[j], found = p, true, true

					break
				}
			}

			if !found {
				return nil, false, false
			}

			continue
		}

		switch {
		case i < len(params) && !(params[i].variadic && i == len(params)-1 && len(args) > len(params)):
			if used[i] {
				return nil, false, false
			}

			mapped[i], used[i] = params[i], true

			if params[i].variadic && !isArrayArg(a) {
				expanded = true
			}

		case len(params) > 0 && params[len(params)-1].variadic:
			mapped[i] = params[len(params)-1]
			used[len(params)-1] = true
			expanded = true

		default:
			return nil, false, false
		}
	}

	for j, p := range params {
		if !used[j] && !p.optional && !p.variadic {
			return nil, false, false
		}
	}

	return mapped, expanded, true
}

func isArrayArg(a argument) bool {
	if a.op.typ == nil {
		return true
	}

	_, ok := a.op.typ.(*Array)
	if !ok {
		_, ok = a.op.typ.(NullType)
	}

	return ok
}

// argConverts reports whether an argument converts implicitly to pt. Unknown types are
// given the benefit of the doubt.
func (b *binder) argConverts(a argument, pt Type) bool {
	if pt == nil || ContainsTypeParam(pt) {
		return true
	}

	switch a.op.mode {
	case lambdaExpr:
		sig := delegateSignature(pt)
		if sig == nil {
			return false
		}

		l, ok := syntax.Unparen(a.arg.Value).(*syntax.LambdaExpr)

		return ok && (l.Delegate && l.Params == nil || len(l.Params) == len(sig.Params))

	case methodGroup:
		return b.resolveGroup(a.op.group, a.op.targs, pt) != nil

	case throwExpr:
		return true

	case value:
		if a.op.typ == nil {
			return true
		}

		return b.ClassifyConversion(a.arg.Value, pt).IsImplicit()
	}

	return false
}

// better reports whether c is at least as good as o for every argument.
func (b *binder) better(c, o *candidate, args []argument) bool {
	strictly := false

	for i, a := range args {
		ct := paramType(c.sig, c.params[i], c.expanded)
		ot := paramType(o.sig, o.params[i], o.expanded)

		switch b.betterTarget(a, ct, ot) {
		case 1:
			strictly = true
		case -1:
			return false
		}
	}

	if strictly {
		return true
	}

	// tie breakers
	switch {
	case !c.expanded && o.expanded:
		return true
	case len(c.method.tparams) == 0 && len(o.method.tparams) > 0:
		return true
	case len(c.method.params) < len(o.method.params):
		return true
	}

	return false
}

// betterTarget compares two parameter types for an argument: 1 if t1 is better, -1 if t2 is
// better, 0 otherwise.
func (b *binder) betterTarget(a argument, t1, t2 Type) int {
	if t1 == nil || t2 == nil || Identical(t1, t2) {
		return 0
	}

	if a.op.mode == value && a.op.typ != nil {
		switch {
		case Identical(a.op.typ, t1):
			return 1
		case Identical(a.op.typ, t2):
			return -1
		}
	}

	if a.op.mode == methodGroup || a.op.mode == lambdaExpr {
		d1, d2 := IsDelegate(t1), IsDelegate(t2)

		switch {
		case d1 && !d2:
			return 1
		case d2 && !d1:
			return -1
		}

		return 0
	}

	c12, c21 := b.IsAssignable(t1, t2), b.IsAssignable(t2, t1)

	switch {
	case c12 && !c21:
		return 1
	case c21 && !c12:
		return -1
	}

	s1, s2 := SpecialOf(t1), SpecialOf(t2)

	switch {
	case isSigned(s1) && isUnsigned(s2):
		return 1
	case isSigned(s2) && isUnsigned(s1):
		return -1
	}

	return 0
}

func isUnsigned(s Special) bool {
	switch s {
	case Byte, UInt16, UInt32, UInt64:
		return true
	}

	return false
}

// resolveIndexer chooses an indexer for element access arguments.
func (b *binder) resolveIndexer(indexers []memberRef, list []*syntax.Argument) (*memberRef, *candidate) {
	args := b.bindArgs(list)

	var (
		found *memberRef
		cand  *candidate
	)

	for i, r := range indexers {
		p := r.sym.(*Property)
		m := &Method{name: "this", owner: p.owner, params: p.params, result: p.typ}

		c := b.applicable(memberRef{sym: m, via: r.via}, nil, args)
		if c == nil {
			continue
		}

		if found != nil {
			b.finishArgs(args, nil)

			return nil, nil
		}

		found, cand = &indexers[i], c
	}

	if found == nil {
		b.finishArgs(args, nil)

		return nil, nil
	}

	b.finishArgs(args, cand)

	return found, cand
}

// ----------------------------------------------------------------------------
// Creation

func (b *binder) objectCreation(x *syntax.ObjectCreation, target Type) operand {
	var t Type

	switch {
	case x.Type != nil:
		t = b.resolveType(b.ts, x.Type)
	case x.Init == nil || x.Args != nil:
		t = target // target-typed new()
	}

	if IsDelegate(t) && len(x.Args) == 1 {
		a := x.Args[0]

		if op := b.expr(a.Value, t); op.mode == methodGroup && op.sym == nil {
			b.bindGroup(a.Value, op, t)
		}

		return operand{mode: value, typ: t}
	}

	args := b.bindArgs(x.Args)

	n := AsNamed(t)
	if n == nil || n.TypeKind() == Interface && len(x.Args) > 0 {
		b.finishArgs(args, nil)
		b.initializer(x.Init, t)

		return operand{mode: value, typ: t}
	}

	var ctors []memberRef
	for _, m := range n.DeclaredMembers(ctorName) {
		ctors = append(ctors, memberRef{sym: m, via: n})
	}

	c := b.overload(ctors, nil, args)
	if c != nil {
		b.finishArgs(args, c)
		b.symbols[x] = c.method
	} else {
		b.finishArgs(args, nil)
	}

	b.initializer(x.Init, t)

	return operand{mode: value, typ: t}
}

// initializer binds object and collection initializers of a creation of type t.
func (b *binder) initializer(init *syntax.InitializerExpr, t Type) {
	if init == nil {
		return
	}

	for _, e := range init.Elems {
		switch e := e.(type) {
		case *syntax.AssignExpr:
			id, ok := e.Lhs.(*syntax.Ident)
			if !ok {
				b.expr(e, nil)

				continue
			}

			var mt Type

			if refs := b.lookupMembers(t, id.Name); t != nil && len(refs) > 0 {
				b.use(id, refs[0].sym)
				mt = refs[0].typ()
				b.record(id, operand{mode: value, sym: refs[0].sym, typ: mt})
			}

			if nested, ok := e.Rhs.(*syntax.InitializerExpr); ok {
				b.initializer(nested, mt)

				continue
			}

			b.expr(e.Rhs, mt)

		case *syntax.InitializerExpr:
			for _, v := range e.Elems {
				b.expr(v, nil)
			}

		default:
			b.expr(e, b.collectionElem(t))
		}
	}
}

// collectionElem returns T for types implementing IEnumerable<T>.
func (b *binder) collectionElem(t Type) Type {
	for _, s := range supertypes(t) {
		n := AsNamed(s)
		if n != nil && n.Name() == "IEnumerable" && len(n.targs) == 1 {
			return n.targs[0]
		}
	}

	return nil
}

func (b *binder) arrayCreation(x *syntax.ArrayCreation, target Type) operand {
	for _, s := range x.Sizes {
		b.expr(s, b.special(Int32))
	}

	var t Type

	rank := max(x.Rank, 1)

	if x.Elem != nil {
		if et := b.resolveType(b.ts, x.Elem); et != nil {
			t = NewArray(et, rank)
		}
	} else if a, ok := target.(*Array); ok {
		t = a
	}

	var elem Type
	if a, ok := t.(*Array); ok {
		elem = a.elem
	}

	if x.Init != nil {
		for _, e := range x.Init.Elems {
			et := b.value(e, elem)
			if t == nil && et != nil {
				if _, null := et.(NullType); !null {
					t, elem = NewArray(et, rank), et
				}
			}
		}
	}

	return operand{mode: value, typ: t}
}
