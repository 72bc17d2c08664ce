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
	"context"

	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// Forward is a call to GetValue, SetValue or SetCurrentValue forwarding a CLR accessor to a
// dependency property.
type Forward struct {
	Call     *syntax.InvocationExpr
	Method   *semantic.Method
	Receiver syntax.Expr // explicit receiver, nil for implicit this

	HandleArg *syntax.Argument
	Handle    semantic.Symbol // nil when unresolved
	ValueArg  *syntax.Argument

	// Cast is the *syntax.CastExpr or *syntax.AsExpr around a GetValue call, nil otherwise.
	Cast     syntax.Expr
	CastType syntax.Expr

	// Stmt is the statement of a block body containing the call, nil for expression bodies.
	Stmt syntax.Stmt
	Body *syntax.Block
}

// IsSetCurrentValue reports whether the forwarding call uses SetCurrentValue.
func (f *Forward) IsSetCurrentValue() bool {
	return f != nil && f.Method != nil && f.Method.Name() == "SetCurrentValue"
}

// ClrProperty is an instance property forwarding to a dependency property.
type ClrProperty struct {
	Decl   *syntax.PropertyDecl
	Symbol *semantic.Property
	Name   string
	Type   semantic.Type

	Getter *syntax.Accessor
	Setter *syntax.Accessor // nil for get-only properties

	Get Forward
	Set *Forward // nil when the setter does not forward
}

// TryClrProperty recognizes a property whose getter returns GetValue on this instance.
func TryClrProperty(ctx context.Context, node syntax.Node, m semantic.Model, k *known.Symbols) (ClrProperty, bool) {
	d, ok := node.(*syntax.PropertyDecl)
	if !ok || d.Indexer || d.Mods.Has(syntax.STATIC) || ctx.Err() != nil || k.DependencyObject == nil {
		return ClrProperty{}, false
	}

	sym, ok := m.SymbolOf(d).(*semantic.Property)
	if !ok {
		return ClrProperty{}, false
	}

	p := ClrProperty{Decl: d, Symbol: sym, Name: sym.Name(), Type: sym.Type(), Getter: d.Getter(), Setter: d.Setter()}

	var get *Forward

	switch {
	case d.ExprBody != nil:
		get = findForward(ctx, m, k, nil, d.ExprBody, isThis, "GetValue")
	case p.Getter != nil:
		get = findForward(ctx, m, k, p.Getter.Body, p.Getter.ExprBody, isThis, "GetValue")
	}

	if get == nil {
		return ClrProperty{}, false
	}

	p.Get = *get

	if p.Setter != nil {
		p.Set = findForward(ctx, m, k, p.Setter.Body, p.Setter.ExprBody, isThis, "SetValue", "SetCurrentValue")
	}

	return p, true
}

// ClrMethod is a static Get or Set accessor method of an attached property.
type ClrMethod struct {
	Decl   *syntax.MethodDecl
	Symbol *semantic.Method
	Name   string
	Getter bool

	// Element is the target instance parameter.
	Element *semantic.Param

	// Type is the value type: the result of a getter, the value parameter of a setter.
	Type     semantic.Type
	TypeExpr syntax.Expr

	Forward Forward
}

// TryClrMethod recognizes `static T GetX(E element) => (T)element.GetValue(XProperty)` and
// `static void SetX(E element, T value) => element.SetValue(XProperty, value)`.
func TryClrMethod(ctx context.Context, node syntax.Node, m semantic.Model, k *known.Symbols) (ClrMethod, bool) {
	d, ok := node.(*syntax.MethodDecl)
	if !ok || d.MethodKind != syntax.OrdinaryMethod || !d.Mods.Has(syntax.STATIC) || ctx.Err() != nil ||
		k.DependencyObject == nil {
		return ClrMethod{}, false
	}

	sym, ok := m.SymbolOf(d).(*semantic.Method)
	if !ok || len(sym.Params()) == 0 || len(d.Params) != len(sym.Params()) {
		return ClrMethod{}, false
	}

	elem := sym.Params()[0]
	if !semantic.IsDerivedFrom(elem.Type(), k.DependencyObject) && !semantic.IsInterface(elem.Type()) {
		return ClrMethod{}, false
	}

	onElement := func(x syntax.Expr) bool { return x != nil && sameSymbol(m.SymbolOf(x), elem) }

	c := ClrMethod{Decl: d, Symbol: sym, Name: sym.Name(), Element: elem}

	switch len(sym.Params()) {
	case 1:
		if semantic.SpecialOf(sym.Result()) == semantic.Void {
			return ClrMethod{}, false
		}

		f := findForward(ctx, m, k, d.Body, d.ExprBody, onElement, "GetValue")
		if f == nil {
			return ClrMethod{}, false
		}

		c.Getter, c.Type, c.TypeExpr, c.Forward = true, sym.Result(), d.Result, *f

	case 2:
		if semantic.SpecialOf(sym.Result()) != semantic.Void {
			return ClrMethod{}, false
		}

		f := findForward(ctx, m, k, d.Body, d.ExprBody, onElement, "SetValue", "SetCurrentValue")
		if f == nil {
			return ClrMethod{}, false
		}

		c.Type, c.TypeExpr, c.Forward = sym.Params()[1].Type(), d.Params[1].Type, *f

	default:
		return ClrMethod{}, false
	}

	return c, true
}

// findForward finds the first call on a receiver accepted by recv to one of the
// DependencyObject methods names in a body.
func findForward(ctx context.Context, m semantic.Model, k *known.Symbols, body *syntax.Block, expr syntax.Expr,
	recv func(syntax.Expr) bool, names ...string,
) *Forward {
	var root syntax.Node

	switch {
	case expr != nil:
		root = expr
	case body != nil:
		root = body
	default:
		return nil
	}

	var found *syntax.InvocationExpr

	syntax.Inspect(root, func(n syntax.Node) bool {
		if found != nil || n == nil || ctx.Err() != nil {
			return false
		}

		switch n := n.(type) {
		case *syntax.LambdaExpr:
			return false

		case *syntax.InvocationExpr:
			if known.IsMethod(m.SymbolOf(n), k.DependencyObject, names...) && recv(receiver(n)) {
				found = n

				return false
			}
		}

		return true
	})

	if found == nil || ctx.Err() != nil {
		return nil
	}

	return forwardOf(m, k, found, body)
}

// TryValueCall recognizes a call to GetValue, SetValue, SetCurrentValue or ClearValue on any
// DependencyObject receiver.
func TryValueCall(ctx context.Context, node syntax.Node, m semantic.Model, k *known.Symbols) (Forward, bool) {
	call, ok := node.(*syntax.InvocationExpr)
	if !ok || ctx.Err() != nil ||
		!known.IsMethod(m.SymbolOf(call), k.DependencyObject, "GetValue", "SetValue", "SetCurrentValue", "ClearValue") {
		return Forward{}, false
	}

	return *forwardOf(m, k, call, nil), true
}

func forwardOf(m semantic.Model, k *known.Symbols, call *syntax.InvocationExpr, body *syntax.Block) *Forward {
	method, _ := m.SymbolOf(call).(*semantic.Method)
	f := &Forward{Call: call, Method: method, Receiver: receiver(call), Body: body}

	f.HandleArg = argument(m, call.Args, "dp", 0, derived(k.DependencyProperty))
	if f.HandleArg == nil {
		f.HandleArg = argument(m, call.Args, "key", 0, typed(k.DependencyPropertyKey))
	}

	if f.HandleArg != nil {
		f.Handle = m.SymbolOf(f.HandleArg.Value)
	}

	switch {
	case method == nil:
	case method.Name() == "GetValue":
		f.Cast, f.CastType = castOf(call)
	case method.Name() != "ClearValue":
		f.ValueArg = argument(m, call.Args, "value", 1, named("value"))
	}

	if body != nil {
		f.Stmt = statementOf(body, call)
	}

	return f
}

// castOf returns the cast or as expression converting x, if any.
func castOf(x syntax.Expr) (syntax.Expr, syntax.Expr) {
	var p syntax.Node = x

	for {
		p = p.Parent()
		if _, ok := p.(*syntax.ParenExpr); !ok {
			break
		}
	}

	switch c := p.(type) {
	case *syntax.CastExpr:
		return c, c.Type
	case *syntax.AsExpr:
		return c, c.Type
	}

	return nil, nil
}

// statementOf returns the statement of body containing n.
func statementOf(body *syntax.Block, n syntax.Node) syntax.Stmt {
	for _, s := range body.Stmts {
		if s.Pos() <= n.Pos() && n.End() <= s.End() {
			return s
		}
	}

	return nil
}

// Accessors returns the name-based accessor pair of an attached property registered as name.
func Accessors(name string) (get, set string) { return "Get" + name, "Set" + name }
