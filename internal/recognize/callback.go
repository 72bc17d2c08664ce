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
	"fmt"

	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// CallbackKind distinguishes property callbacks.
type CallbackKind uint8

//go:generate go tool stringer -type CallbackKind -linecomment

// Callback kinds.
const (
	InvalidCallback CallbackKind = iota // invalid
	Changed                             // PropertyChangedCallback
	Coerce                              // CoerceValueCallback
	Validate                            // ValidateValueCallback
)

// ExpectedName returns the conventional callback method name for the property registered as
// name.
func ExpectedName(kind CallbackKind, name string) string {
	switch kind {
	case Changed:
		return fmt.Sprintf("On%sChanged", name)
	case Coerce:
		return "Coerce" + name
	case Validate:
		return name + "ValidateValue"
	}

	return ""
}

// Callback is a change, coerce or validate callback argument, normalized to its target method.
type Callback struct {
	Kind CallbackKind
	Arg  *syntax.Argument

	// Target is the method the callback ends up calling: the method group, or the single
	// method invoked by a lambda.
	Target *semantic.Method

	// Ref is the identifier naming the target at the callback site: the method group, or the
	// method invoked by the lambda.
	Ref *syntax.Ident

	// Lambda is the lambda passed as callback, nil for method groups.
	Lambda *syntax.LambdaExpr

	// Creation is the explicit `new XCallback(...)` wrapper, nil when absent.
	Creation *syntax.ObjectCreation

	// SingleExpression reports that the target method body consists of one expression.
	SingleExpression bool

	Registration Registration
}

// Function returns the bound function whose parameters receive the callback arguments: the
// lambda when present, the target method otherwise.
func (c Callback) Function(m semantic.Model) *semantic.Method {
	if c.Lambda != nil {
		if f, ok := m.SymbolOf(c.Lambda).(*semantic.Method); ok {
			return f
		}

		return nil
	}

	return c.Target
}

// Body returns the syntax of the function receiving the callback arguments.
func (c Callback) Body() syntax.Node {
	if c.Lambda != nil {
		return c.Lambda
	}

	if d := c.Target.Declaration(); d != nil {
		return d
	}

	return nil
}

// TryCallback recognizes a callback argument of a metadata creation or a registration call.
func TryCallback(ctx context.Context, node syntax.Node, m semantic.Model, k *known.Symbols) (Callback, bool) {
	arg, ok := node.(*syntax.Argument)
	if !ok || ctx.Err() != nil || missing(arg.Value) {
		return Callback{}, false
	}

	cb := Callback{Arg: arg}

	switch p := arg.Parent().(type) {
	case *syntax.ObjectCreation:
		md, ok := TryMetadata(ctx, p, m, k)
		if !ok {
			return Callback{}, false
		}

		switch arg {
		case md.ChangedArg:
			cb.Kind = Changed
		case md.CoerceArg:
			cb.Kind = Coerce
		default:
			return Callback{}, false
		}

		reg, ok := md.RegistrationOf(ctx, m, k)
		if !ok {
			return Callback{}, false
		}

		cb.Registration = reg

	case *syntax.InvocationExpr:
		reg, ok := TryRegistration(ctx, p, m, k)
		if !ok || reg.ValidateArg != arg {
			return Callback{}, false
		}

		cb.Kind = Validate
		cb.Registration = reg

	default:
		return Callback{}, false
	}

	if !cb.target(m, k) {
		return Callback{}, false
	}

	return cb, true
}

// target normalizes the argument value to the target method.
func (c *Callback) target(m semantic.Model, k *known.Symbols) bool {
	x := syntax.Unparen(c.Arg.Value)

	if oc, ok := x.(*syntax.ObjectCreation); ok {
		if len(oc.Args) != 1 || !isCallbackDelegate(m.TypeOf(oc), k) {
			return false
		}

		c.Creation = oc
		x = syntax.Unparen(oc.Args[0].Value)
	}

	switch x := x.(type) {
	case *syntax.LambdaExpr:
		call := singleInvocation(x)
		if call == nil {
			return false
		}

		t, ok := m.SymbolOf(call).(*semantic.Method)
		if !ok {
			return false
		}

		c.Lambda, c.Target, c.Ref = x, t, InvokedName(call)

	case *syntax.Ident, *syntax.MemberAccess:
		t, ok := m.SymbolOf(x).(*semantic.Method)
		if !ok || t.MethodKind() != semantic.Ordinary {
			return false
		}

		c.Target = t

		if ma, ok := x.(*syntax.MemberAccess); ok {
			c.Ref = ma.Name
		} else {
			c.Ref = x.(*syntax.Ident)
		}

	default:
		return false
	}

	c.SingleExpression = singleExpressionBody(c.Target.Declaration())

	return true
}

func isCallbackDelegate(t semantic.Type, k *known.Symbols) bool {
	return known.Is(t, k.PropertyChangedCallback) || known.Is(t, k.CoerceValueCallback) ||
		known.Is(t, k.ValidateValueCallback)
}

// singleInvocation returns the invocation forming the entire body of l, or nil.
func singleInvocation(l *syntax.LambdaExpr) *syntax.InvocationExpr {
	var x syntax.Expr

	if body := l.BlockBody(); body != nil {
		if len(body.Stmts) != 1 {
			return nil
		}

		switch s := body.Stmts[0].(type) {
		case *syntax.ExprStmt:
			x = s.X
		case *syntax.ReturnStmt:
			x = s.X
		}
	} else {
		x = l.ExprBody()
	}

	call, _ := syntax.Unparen(x).(*syntax.InvocationExpr)

	return call
}

// singleExpressionBody reports whether d has an expression body, or a block with a single
// expression or return statement.
func singleExpressionBody(d *syntax.MethodDecl) bool {
	if d == nil {
		return false
	}

	if d.ExprBody != nil {
		return true
	}

	if d.Body == nil || len(d.Body.Stmts) != 1 {
		return false
	}

	switch s := d.Body.Stmts[0].(type) {
	case *syntax.ExprStmt:
		return true
	case *syntax.ReturnStmt:
		return s.X != nil
	}

	return false
}

// SingleBodyExpression returns the expression of a single-expression method body, or nil.
func SingleBodyExpression(d *syntax.MethodDecl) syntax.Expr {
	if !singleExpressionBody(d) {
		return nil
	}

	if d.ExprBody != nil {
		return d.ExprBody
	}

	switch s := d.Body.Stmts[0].(type) {
	case *syntax.ExprStmt:
		return s.X
	case *syntax.ReturnStmt:
		return s.X
	}

	return nil
}
