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

package syntax

import (
	"go/token"
	"iter"
)

// Visitor is called for each node encountered by [Walk]. If the result visitor w is not nil,
// Walk visits each of the children of node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a syntax tree in depth-first order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	eachChild(node, func(c Node) { Walk(v, c) })

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}

	return nil
}

// Inspect traverses a syntax tree in depth-first order, calling f(node) for each node and
// f(nil) after its children. Children are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Preorder returns an iterator over all nodes of the tree rooted at root, in depth-first
// preorder. Breaking out of the loop stops the traversal.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stop := false

		var visit func(n Node)
		visit = func(n Node) {
			if stop {
				return
			}

			if !yield(n) {
				stop = true

				return
			}

			eachChild(n, visit)
		}

		visit(root)
	}
}

// Ancestors returns an iterator over the parents of n, innermost first.
func Ancestors(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for p := n.Parent(); p != nil; p = p.Parent() {
			if !yield(p) {
				return
			}
		}
	}
}

// Enclosing returns the innermost ancestor of n with type T.
func Enclosing[T Node](n Node) (T, bool) {
	for p := range Ancestors(n) {
		if t, ok := p.(T); ok {
			return t, true
		}
	}

	var zero T

	return zero, false
}

// NodeAt returns the innermost node below root spanning exactly [pos, end), or nil.
func NodeAt(root Node, pos, end token.Pos) Node {
	var found Node

	Inspect(root, func(n Node) bool {
		if n == nil || n.Pos() > pos || n.End() < end {
			return false
		}

		if n.Pos() == pos && n.End() == end {
			found = n
		}

		return true
	})

	return found
}

// link sets the parent pointers of all nodes below root.
func link(root Node) {
	var visit func(parent Node)
	visit = func(parent Node) {
		eachChild(parent, func(c Node) {
			c.setParent(parent)
			visit(c)
		})
	}

	visit(root)
}

func eachChild(n Node, f func(Node)) {
	expr := func(e Expr) {
		if e != nil {
			f(e)
		}
	}

	stmt := func(s Stmt) {
		if s != nil {
			f(s)
		}
	}

	ident := func(id *Ident) {
		if id != nil {
			f(id)
		}
	}

	block := func(b *Block) {
		if b != nil {
			f(b)
		}
	}

	attrs := func(list []*AttributeList) {
		for _, a := range list {
			f(a)
		}
	}

	params := func(list []*Param) {
		for _, p := range list {
			f(p)
		}
	}

	args := func(list []*Argument) {
		for _, a := range list {
			f(a)
		}
	}

	exprs := func(list []Expr) {
		for _, e := range list {
			expr(e)
		}
	}

	idents := func(list []*Ident) {
		for _, id := range list {
			f(id)
		}
	}

	switch n := n.(type) {
	case *File:
		for _, u := range n.Usings {
			f(u)
		}

		attrs(n.Attributes)

		for _, d := range n.Members {
			f(d)
		}

	case *UsingDirective:
		ident(n.Alias)
		expr(n.Name)

	case *NamespaceDecl:
		expr(n.Name)

		for _, u := range n.Usings {
			f(u)
		}

		for _, d := range n.Members {
			f(d)
		}

	case *TypeDecl:
		attrs(n.Attrs)
		ident(n.Name)
		idents(n.TypeParams)
		params(n.Params)
		exprs(n.Bases)

		for _, d := range n.Members {
			f(d)
		}

	case *EnumDecl:
		attrs(n.Attrs)
		ident(n.Name)
		expr(n.Base)

		for _, m := range n.Members {
			f(m)
		}

	case *EnumMember:
		attrs(n.Attrs)
		ident(n.Name)
		expr(n.Value)

	case *DelegateDecl:
		attrs(n.Attrs)
		expr(n.Result)
		ident(n.Name)
		idents(n.TypeParams)
		params(n.Params)

	case *FieldDecl:
		attrs(n.Attrs)
		expr(n.Type)

		for _, v := range n.Vars {
			f(v)
		}

	case *VarDeclarator:
		ident(n.Name)
		expr(n.Init)

	case *PropertyDecl:
		attrs(n.Attrs)
		expr(n.Type)
		expr(n.Interface)
		ident(n.Name)
		params(n.Params)

		for _, a := range n.Accessors {
			f(a)
		}

		expr(n.ExprBody)
		expr(n.Init)

	case *Accessor:
		attrs(n.Attrs)
		ident(n.Keyword)
		block(n.Body)
		expr(n.ExprBody)

	case *EventDecl:
		attrs(n.Attrs)
		expr(n.Type)
		ident(n.Name)

		for _, a := range n.Accessors {
			f(a)
		}

	case *MethodDecl:
		attrs(n.Attrs)
		expr(n.Result)
		expr(n.Interface)
		ident(n.Name)
		idents(n.TypeParams)
		params(n.Params)

		if n.Initializer != nil {
			f(n.Initializer)
		}

		block(n.Body)
		expr(n.ExprBody)

	case *ConstructorInitializer:
		args(n.Args)

	case *Param:
		attrs(n.Attrs)
		expr(n.Type)
		ident(n.Name)
		expr(n.Default)

	case *AttributeList:
		ident(n.Target)

		for _, a := range n.Attrs {
			f(a)
		}

	case *Attribute:
		expr(n.Name)
		args(n.Args)

	case *Argument:
		ident(n.Name)
		expr(n.Value)

	case *Block:
		for _, s := range n.Stmts {
			f(s)
		}

	case *LocalDeclStmt:
		expr(n.Type)

		for _, v := range n.Vars {
			f(v)
		}

	case *LocalFuncStmt:
		f(n.Func)

	case *ExprStmt:
		expr(n.X)

	case *ReturnStmt:
		expr(n.X)

	case *IfStmt:
		expr(n.Cond)
		stmt(n.Then)
		stmt(n.Else)

	case *WhileStmt:
		expr(n.Cond)
		stmt(n.Body)

	case *DoStmt:
		stmt(n.Body)
		expr(n.Cond)

	case *ForStmt:
		for _, s := range n.Init {
			stmt(s)
		}

		expr(n.Cond)
		exprs(n.Post)
		stmt(n.Body)

	case *ForeachStmt:
		expr(n.Type)
		ident(n.Name)
		expr(n.X)
		stmt(n.Body)

	case *SwitchStmt:
		expr(n.Tag)

		for _, s := range n.Sections {
			f(s)
		}

	case *SwitchSection:
		for _, l := range n.Labels {
			expr(l.X)
			expr(l.Guard)
		}

		for _, s := range n.Stmts {
			f(s)
		}

	case *TryStmt:
		block(n.Body)

		for _, c := range n.Catches {
			f(c)
		}

		block(n.Finally)

	case *CatchClause:
		expr(n.Type)
		ident(n.Name)
		expr(n.Filter)
		block(n.Body)

	case *ThrowStmt:
		expr(n.X)

	case *BranchStmt:
		ident(n.Label)

	case *UsingStmt:
		if n.Decl != nil {
			f(n.Decl)
		}

		expr(n.X)
		stmt(n.Body)

	case *LockStmt:
		expr(n.X)
		stmt(n.Body)

	case *YieldStmt:
		expr(n.X)

	case *GenericName:
		ident(n.Name)
		exprs(n.TypeArgs)

	case *MemberAccess:
		expr(n.X)
		ident(n.Name)
		exprs(n.TypeArgs)

	case *ArrayType:
		expr(n.Elem)

	case *NullableType:
		expr(n.Elem)

	case *ParenExpr:
		expr(n.X)

	case *InvocationExpr:
		expr(n.Fun)
		args(n.Args)

	case *ElementAccess:
		expr(n.X)
		args(n.Args)

	case *ObjectCreation:
		expr(n.Type)
		args(n.Args)

		if n.Init != nil {
			f(n.Init)
		}

	case *ArrayCreation:
		expr(n.Elem)
		exprs(n.Sizes)

		if n.Init != nil {
			f(n.Init)
		}

	case *InitializerExpr:
		exprs(n.Elems)

	case *TypeofExpr:
		expr(n.Type)

	case *DefaultExpr:
		expr(n.Type)

	case *CastExpr:
		expr(n.Type)
		expr(n.X)

	case *AsExpr:
		expr(n.X)
		expr(n.Type)

	case *IsExpr:
		expr(n.X)
		expr(n.Type)
		ident(n.Name)
		expr(n.Pattern)

	case *UnaryExpr:
		expr(n.X)

	case *PostfixExpr:
		expr(n.X)

	case *AwaitExpr:
		expr(n.X)

	case *BinaryExpr:
		expr(n.X)
		expr(n.Y)

	case *ConditionalExpr:
		expr(n.Cond)
		expr(n.Then)
		expr(n.Else)

	case *AssignExpr:
		expr(n.Lhs)
		expr(n.Rhs)

	case *LambdaExpr:
		params(n.Params)

		if n.Body != nil {
			f(n.Body)
		}

	case *ThrowExpr:
		expr(n.X)
	}
}
