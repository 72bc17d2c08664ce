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

package recognize

import (
	"go/constant"

	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// argument returns the argument bound to a parameter matching match. When no argument of the
// call is bound, it falls back to a named argument called name, then to position pos.
func argument(m semantic.Model, args []*syntax.Argument, name string, pos int, match func(p *semantic.Param) bool) *syntax.Argument {
	bound := false

	for _, a := range args {
		p := m.ParameterOf(a)
		if p == nil {
			continue
		}

		bound = true

		if match(p) {
			return a
		}
	}

	if bound {
		return nil
	}

	for _, a := range args {
		if a.Name != nil && a.Name.Name == name {
			return a
		}
	}

	if pos >= 0 && pos < len(args) && args[pos].Name == nil && !missing(args[pos].Value) {
		return args[pos]
	}

	return nil
}

// named matches parameters by name.
func named(name string) func(p *semantic.Param) bool {
	return func(p *semantic.Param) bool { return p.Name() == name }
}

// typed matches parameters by exact type.
func typed(t *semantic.Named) func(p *semantic.Param) bool {
	return func(p *semantic.Param) bool {
		n := semantic.AsNamed(p.Type())

		return n != nil && t != nil && n.Origin() == t.Origin()
	}
}

// derived matches parameters whose type derives from t.
func derived(t *semantic.Named) func(p *semantic.Param) bool {
	return func(p *semantic.Param) bool { return t != nil && semantic.IsDerivedFrom(p.Type(), t) }
}

// missing reports whether x stands for absent source.
func missing(x syntax.Expr) bool {
	switch x := x.(type) {
	case nil, *syntax.BadExpr:
		return true
	case *syntax.Ident:
		return x.Missing
	}

	return false
}

// StringConstant returns the compile-time string value of x.
func StringConstant(m semantic.Model, x syntax.Expr) (string, bool) {
	if missing(x) {
		return "", false
	}

	v := m.ConstantOf(x)
	if v == nil || v.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(v), true
}

// TypeofOperand returns the type named by a `typeof(T)` expression, or nil.
func TypeofOperand(m semantic.Model, x syntax.Expr) (semantic.Type, *syntax.TypeofExpr) {
	if missing(x) {
		return nil, nil
	}

	t, ok := syntax.Unparen(x).(*syntax.TypeofExpr)
	if !ok || missing(t.Type) {
		return nil, nil
	}

	return m.TypeOf(t.Type), t
}

// InvokedName returns the identifier naming the method of a call, or nil.
func InvokedName(call *syntax.InvocationExpr) *syntax.Ident {
	if call == nil {
		return nil
	}

	switch f := call.Fun.(type) {
	case *syntax.Ident:
		return f
	case *syntax.GenericName:
		return f.Name
	case *syntax.MemberAccess:
		return f.Name
	}

	return nil
}

// receiver returns the explicit receiver of a call, nil for simple names.
func receiver(call *syntax.InvocationExpr) syntax.Expr {
	if ma, ok := call.Fun.(*syntax.MemberAccess); ok {
		return ma.X
	}

	return nil
}

// isThis reports whether x is absent (an implicit `this`) or an explicit `this`.
func isThis(x syntax.Expr) bool {
	if x == nil {
		return true
	}

	_, ok := syntax.Unparen(x).(*syntax.ThisExpr)

	return ok
}
