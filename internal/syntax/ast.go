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
	"go/scanner"
	"go/token"
	"strings"
)

// Node is a syntax tree node. Trees are immutable once [Parse] returns; parent links are set
// during parsing.
type Node interface {
	Pos() token.Pos
	End() token.Pos
	Kind() Kind
	Parent() Node
	setParent(p Node)
}

// Expr is an expression or type syntax node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a namespace member or type member declaration.
type Decl interface {
	Node
	declNode()
}

type node struct {
	parent   Node
	from, to token.Pos
}

func (n *node) Pos() token.Pos    { return n.from }
func (n *node) End() token.Pos    { return n.to }
func (n *node) Parent() Node      { return n.parent }
func (n *node) setParent(p Node)  { n.parent = p }
func (n *node) setSpan(from, to token.Pos) {
	n.from, n.to = from, to
}

// CommentGroup is a sequence of adjacent `///` documentation comments.
type CommentGroup struct {
	List []*Comment
}

// Pos returns the start of the first comment.
func (g *CommentGroup) Pos() token.Pos { return g.List[0].Pos() }

// End returns the end of the last comment.
func (g *CommentGroup) End() token.Pos { return g.List[len(g.List)-1].End() }

// Text returns the documentation text with the `///` markers and one following blank removed,
// lines joined by newlines.
func (g *CommentGroup) Text() string {
	if g == nil {
		return ""
	}

	lines := make([]string, 0, len(g.List))
	for _, c := range g.List {
		line := strings.TrimPrefix(c.Text, "///")
		line = strings.TrimPrefix(line, " ")
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// Modifier is a single declaration modifier keyword.
type Modifier struct {
	Tok  Token // keyword, or IDENT for contextual modifiers like partial and async
	Name string
	Pos  token.Pos
}

// End returns the position after the modifier.
func (m Modifier) End() token.Pos { return m.Pos + token.Pos(len(m.Name)) }

// Modifiers is the modifier list of a declaration in source order.
type Modifiers []Modifier

// Has reports whether the modifier keyword is present.
func (m Modifiers) Has(tok Token) bool {
	for _, mod := range m {
		if mod.Tok == tok {
			return true
		}
	}

	return false
}

// HasName reports whether the (possibly contextual) modifier is present.
func (m Modifiers) HasName(name string) bool {
	for _, mod := range m {
		if mod.Name == name {
			return true
		}
	}

	return false
}

// ----------------------------------------------------------------------------
// Files and declarations

// File is a parsed C# compilation unit.
type File struct {
	node

	Name       string
	Src        []byte
	Usings     []*UsingDirective
	Attributes []*AttributeList
	Members    []Decl

	Comments   []*Comment
	Directives []Directive
	Errors     scanner.ErrorList
}

// UsingDirective is `using N;`, `using A = N;` or `using static N;`.
type UsingDirective struct {
	node

	Global bool
	Static bool
	Alias  *Ident
	Name   Expr
}

// NamespaceDecl is a block or file-scoped namespace.
type NamespaceDecl struct {
	node

	Name       Expr
	FileScoped bool
	Usings     []*UsingDirective
	Members    []Decl
}

// TypeDecl is a class, struct, interface or record declaration.
type TypeDecl struct {
	node

	Doc        *CommentGroup
	Attrs      []*AttributeList
	Mods       Modifiers
	Keyword    Token // CLASS, STRUCT, INTERFACE, or IDENT for record
	Name       *Ident
	TypeParams []*Ident
	Params     []*Param // record primary constructor
	Bases      []Expr
	Members    []Decl
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	node

	Doc     *CommentGroup
	Attrs   []*AttributeList
	Mods    Modifiers
	Name    *Ident
	Base    Expr
	Members []*EnumMember
}

// EnumMember is a single enum constant.
type EnumMember struct {
	node

	Doc   *CommentGroup
	Attrs []*AttributeList
	Name  *Ident
	Value Expr
}

// DelegateDecl declares a delegate type.
type DelegateDecl struct {
	node

	Doc        *CommentGroup
	Attrs      []*AttributeList
	Mods       Modifiers
	Result     Expr
	Name       *Ident
	TypeParams []*Ident
	Params     []*Param
}

// FieldDecl declares one or more fields, constants or field-like events.
type FieldDecl struct {
	node

	Doc   *CommentGroup
	Attrs []*AttributeList
	Mods  Modifiers
	Event bool
	Type  Expr
	Vars  []*VarDeclarator
}

// VarDeclarator is `name` or `name = init` in a field or local declaration.
type VarDeclarator struct {
	node

	Name *Ident
	Init Expr
}

// PropertyDecl is a property or an indexer.
type PropertyDecl struct {
	node

	Doc       *CommentGroup
	Attrs     []*AttributeList
	Mods      Modifiers
	Type      Expr
	Interface Expr // explicit interface implementation
	Name      *Ident
	Params    []*Param // indexer parameters
	Indexer   bool
	Accessors []*Accessor
	ExprBody  Expr
	Init      Expr
}

// Accessor returns the first accessor with the given keyword (get, set, init, add, remove).
func (d *PropertyDecl) Accessor(keyword string) *Accessor {
	for _, a := range d.Accessors {
		if a.Keyword.Name == keyword {
			return a
		}
	}

	return nil
}

// Getter returns the get accessor, or nil.
func (d *PropertyDecl) Getter() *Accessor { return d.Accessor("get") }

// Setter returns the set or init accessor, or nil.
func (d *PropertyDecl) Setter() *Accessor {
	if a := d.Accessor("set"); a != nil {
		return a
	}

	return d.Accessor("init")
}

// Accessor is a get, set, init, add or remove accessor.
type Accessor struct {
	node

	Attrs    []*AttributeList
	Mods     Modifiers
	Keyword  *Ident
	Body     *Block
	ExprBody Expr
}

// EventDecl is an event with explicit add and remove accessors.
type EventDecl struct {
	node

	Doc       *CommentGroup
	Attrs     []*AttributeList
	Mods      Modifiers
	Type      Expr
	Name      *Ident
	Accessors []*Accessor
}

// MethodKind distinguishes method-like declarations.
type MethodKind uint8

// Method kinds.
const (
	OrdinaryMethod MethodKind = iota
	Constructor
	Destructor
	Operator
	LocalFunction
)

// MethodDecl is a method, constructor, destructor or operator.
type MethodDecl struct {
	node

	Doc         *CommentGroup
	Attrs       []*AttributeList
	Mods        Modifiers
	MethodKind  MethodKind
	Result      Expr // nil for constructors and destructors
	Interface   Expr
	Name        *Ident
	TypeParams  []*Ident
	Params      []*Param
	Initializer *ConstructorInitializer
	Body        *Block
	ExprBody    Expr
}

// ConstructorInitializer is `: base(...)` or `: this(...)`.
type ConstructorInitializer struct {
	node

	Keyword Token
	Args    []*Argument
}

// Param is a method, delegate, indexer or lambda parameter.
type Param struct {
	node

	Attrs   []*AttributeList
	Mods    Modifiers
	Type    Expr // nil for implicitly typed lambda parameters
	Name    *Ident
	Default Expr
}

// AttributeList is `[target: A, B(...)]`.
type AttributeList struct {
	node

	Target *Ident
	Attrs  []*Attribute
}

// Attribute is a single attribute application.
type Attribute struct {
	node

	Name Expr
	Args []*Argument
}

// Argument is an invocation, creation or attribute argument.
type Argument struct {
	node

	Name    *Ident // `name:` or, in attributes, `Name =`
	RefKind Token  // REF, OUT, IN or ILLEGAL
	Value   Expr
}

// BadDecl is a placeholder for a member that could not be parsed.
type BadDecl struct {
	node
}

// ----------------------------------------------------------------------------
// Statements

// Block is `{ ... }`.
type Block struct {
	node

	Stmts []Stmt
}

// LocalDeclStmt declares local variables or constants.
type LocalDeclStmt struct {
	node

	Mods Modifiers // const, using
	Type Expr      // Ident "var" for implicitly typed locals
	Vars []*VarDeclarator
}

// LocalFuncStmt is a local function declaration.
type LocalFuncStmt struct {
	node

	Func *MethodDecl
}

// ExprStmt is an expression statement.
type ExprStmt struct {
	node

	X Expr
}

// ReturnStmt is `return;` or `return x;`.
type ReturnStmt struct {
	node

	X Expr
}

// IfStmt is an if statement.
type IfStmt struct {
	node

	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is a while loop.
type WhileStmt struct {
	node

	Cond Expr
	Body Stmt
}

// DoStmt is a do-while loop.
type DoStmt struct {
	node

	Body Stmt
	Cond Expr
}

// ForStmt is a for loop.
type ForStmt struct {
	node

	Init []Stmt
	Cond Expr
	Post []Expr
	Body Stmt
}

// ForeachStmt is a foreach loop.
type ForeachStmt struct {
	node

	Type Expr
	Name *Ident
	X    Expr
	Body Stmt
}

// SwitchStmt is a switch statement.
type SwitchStmt struct {
	node

	Tag      Expr
	Sections []*SwitchSection
}

// SwitchLabel is `case X:`, `case T t when G:` or `default:`.
type SwitchLabel struct {
	Default bool
	X       Expr
	Guard   Expr
}

// SwitchSection is a group of labels followed by statements.
type SwitchSection struct {
	node

	Labels []SwitchLabel
	Stmts  []Stmt
}

// TryStmt is try/catch/finally.
type TryStmt struct {
	node

	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

// CatchClause is a single catch block.
type CatchClause struct {
	node

	Type   Expr
	Name   *Ident
	Filter Expr
	Body   *Block
}

// ThrowStmt is `throw;` or `throw x;`.
type ThrowStmt struct {
	node

	X Expr
}

// BranchStmt is break, continue or goto.
type BranchStmt struct {
	node

	Tok   Token
	Label *Ident
}

// UsingStmt is `using (...) body`.
type UsingStmt struct {
	node

	Decl *LocalDeclStmt
	X    Expr
	Body Stmt
}

// LockStmt is `lock (x) body`.
type LockStmt struct {
	node

	X    Expr
	Body Stmt
}

// YieldStmt is `yield return x;` or `yield break;`.
type YieldStmt struct {
	node

	Return bool
	X      Expr
}

// EmptyStmt is `;`.
type EmptyStmt struct {
	node
}

// BadStmt is a placeholder for a statement that could not be parsed.
type BadStmt struct {
	node
}

// ----------------------------------------------------------------------------
// Expressions and types

// Ident is an identifier. Missing identifiers are inserted by error recovery.
type Ident struct {
	node

	Name    string
	Missing bool
}

// GenericName is `Name<T1, T2>`.
type GenericName struct {
	node

	Name     *Ident
	TypeArgs []Expr
}

// MemberAccess is `X.Name`, `X?.Name`, `alias::Name` or `X.Name<T>`.
type MemberAccess struct {
	node

	X           Expr
	Name        *Ident
	TypeArgs    []Expr
	Conditional bool
	Alias       bool
}

// PredefinedType is a built-in type keyword such as int or string.
type PredefinedType struct {
	node

	Tok Token
}

// ArrayType is `Elem[]` or `Elem[,]`.
type ArrayType struct {
	node

	Elem Expr
	Rank int
}

// NullableType is `Elem?`.
type NullableType struct {
	node

	Elem Expr
}

// BasicLit is a literal of kind INT, REAL, CHAR, STRING, INTERPOLATED, TRUE, FALSE or NULL.
type BasicLit struct {
	node

	Tok   Token
	Value string
}

// ThisExpr is `this`.
type ThisExpr struct {
	node
}

// BaseExpr is `base`.
type BaseExpr struct {
	node
}

// ParenExpr is `(X)`.
type ParenExpr struct {
	node

	X Expr
}

// InvocationExpr is `Fun(args)`.
type InvocationExpr struct {
	node

	Fun    Expr
	Args   []*Argument
	Lparen token.Pos
}

// ElementAccess is `X[args]`.
type ElementAccess struct {
	node

	X           Expr
	Args        []*Argument
	Conditional bool
}

// ObjectCreation is `new T(args) { init }` or target-typed `new(args)`.
type ObjectCreation struct {
	node

	Type Expr // nil for target-typed and anonymous creation
	Args []*Argument
	Init *InitializerExpr
}

// ArrayCreation is `new T[n] { ... }` or `new[] { ... }`.
type ArrayCreation struct {
	node

	Elem  Expr // element type, nil for implicitly typed arrays
	Rank  int
	Sizes []Expr
	Init  *InitializerExpr
}

// InitializerExpr is an object, collection or array initializer.
type InitializerExpr struct {
	node

	Elems []Expr
}

// TypeofExpr is `typeof(T)`.
type TypeofExpr struct {
	node

	Type Expr
}

// DefaultExpr is `default(T)` or the `default` literal.
type DefaultExpr struct {
	node

	Type Expr
}

// CastExpr is `(T)X`.
type CastExpr struct {
	node

	Type Expr
	X    Expr
}

// AsExpr is `X as T`.
type AsExpr struct {
	node

	X    Expr
	Type Expr
}

// IsExpr is `X is T`, `X is T name`, `X is not null` or `X is constant`.
type IsExpr struct {
	node

	X       Expr
	Not     bool
	Type    Expr
	Name    *Ident
	Pattern Expr
}

// UnaryExpr is a prefix operator application.
type UnaryExpr struct {
	node

	Op Token
	X  Expr
}

// PostfixExpr is `X++`, `X--` or the null-forgiving `X!`.
type PostfixExpr struct {
	node

	Op Token
	X  Expr
}

// AwaitExpr is `await X`.
type AwaitExpr struct {
	node

	X Expr
}

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	node

	Op Token
	X  Expr
	Y  Expr
}

// ConditionalExpr is `Cond ? Then : Else`.
type ConditionalExpr struct {
	node

	Cond Expr
	Then Expr
	Else Expr
}

// AssignExpr is a simple or compound assignment.
type AssignExpr struct {
	node

	Op  Token
	Lhs Expr
	Rhs Expr
}

// LambdaExpr is a lambda or an anonymous method.
type LambdaExpr struct {
	node

	Async    bool
	Static   bool
	Delegate bool // anonymous method syntax
	Params   []*Param
	Body     Node // Expr or *Block
}

// ExprBody returns the body expression of an expression lambda.
func (l *LambdaExpr) ExprBody() Expr {
	e, _ := l.Body.(Expr)

	return e
}

// BlockBody returns the body of a block lambda.
func (l *LambdaExpr) BlockBody() *Block {
	b, _ := l.Body.(*Block)

	return b
}

// ThrowExpr is a throw expression.
type ThrowExpr struct {
	node

	X Expr
}

// BadExpr is a placeholder for an expression that could not be parsed.
type BadExpr struct {
	node
}

func (*File) Kind() Kind                   { return KindFile }
func (*UsingDirective) Kind() Kind         { return KindUsingDirective }
func (*NamespaceDecl) Kind() Kind          { return KindNamespaceDecl }
func (*TypeDecl) Kind() Kind               { return KindTypeDecl }
func (*EnumDecl) Kind() Kind               { return KindEnumDecl }
func (*EnumMember) Kind() Kind             { return KindEnumMember }
func (*DelegateDecl) Kind() Kind           { return KindDelegateDecl }
func (*FieldDecl) Kind() Kind              { return KindFieldDecl }
func (*VarDeclarator) Kind() Kind          { return KindVarDeclarator }
func (*PropertyDecl) Kind() Kind           { return KindPropertyDecl }
func (*Accessor) Kind() Kind               { return KindAccessor }
func (*EventDecl) Kind() Kind              { return KindEventDecl }
func (*MethodDecl) Kind() Kind             { return KindMethodDecl }
func (*ConstructorInitializer) Kind() Kind { return KindConstructorInitializer }
func (*Param) Kind() Kind                  { return KindParam }
func (*AttributeList) Kind() Kind          { return KindAttributeList }
func (*Attribute) Kind() Kind              { return KindAttribute }
func (*Argument) Kind() Kind               { return KindArgument }
func (*BadDecl) Kind() Kind                { return KindBadDecl }
func (*Block) Kind() Kind                  { return KindBlock }
func (*LocalDeclStmt) Kind() Kind          { return KindLocalDeclStmt }
func (*LocalFuncStmt) Kind() Kind          { return KindLocalFuncStmt }
func (*ExprStmt) Kind() Kind               { return KindExprStmt }
func (*ReturnStmt) Kind() Kind             { return KindReturnStmt }
func (*IfStmt) Kind() Kind                 { return KindIfStmt }
func (*WhileStmt) Kind() Kind              { return KindWhileStmt }
func (*DoStmt) Kind() Kind                 { return KindDoStmt }
func (*ForStmt) Kind() Kind                { return KindForStmt }
func (*ForeachStmt) Kind() Kind            { return KindForeachStmt }
func (*SwitchStmt) Kind() Kind             { return KindSwitchStmt }
func (*SwitchSection) Kind() Kind          { return KindSwitchSection }
func (*TryStmt) Kind() Kind                { return KindTryStmt }
func (*CatchClause) Kind() Kind            { return KindCatchClause }
func (*ThrowStmt) Kind() Kind              { return KindThrowStmt }
func (*BranchStmt) Kind() Kind             { return KindBranchStmt }
func (*UsingStmt) Kind() Kind              { return KindUsingStmt }
func (*LockStmt) Kind() Kind               { return KindLockStmt }
func (*YieldStmt) Kind() Kind              { return KindYieldStmt }
func (*EmptyStmt) Kind() Kind              { return KindEmptyStmt }
func (*BadStmt) Kind() Kind                { return KindBadStmt }
func (*Ident) Kind() Kind                  { return KindIdent }
func (*GenericName) Kind() Kind            { return KindGenericName }
func (*MemberAccess) Kind() Kind           { return KindMemberAccess }
func (*PredefinedType) Kind() Kind         { return KindPredefinedType }
func (*ArrayType) Kind() Kind              { return KindArrayType }
func (*NullableType) Kind() Kind           { return KindNullableType }
func (*BasicLit) Kind() Kind               { return KindBasicLit }
func (*ThisExpr) Kind() Kind               { return KindThisExpr }
func (*BaseExpr) Kind() Kind               { return KindBaseExpr }
func (*ParenExpr) Kind() Kind              { return KindParenExpr }
func (*InvocationExpr) Kind() Kind         { return KindInvocationExpr }
func (*ElementAccess) Kind() Kind          { return KindElementAccess }
func (*ObjectCreation) Kind() Kind         { return KindObjectCreation }
func (*ArrayCreation) Kind() Kind          { return KindArrayCreation }
func (*InitializerExpr) Kind() Kind        { return KindInitializerExpr }
func (*TypeofExpr) Kind() Kind             { return KindTypeofExpr }
func (*DefaultExpr) Kind() Kind            { return KindDefaultExpr }
func (*CastExpr) Kind() Kind               { return KindCastExpr }
func (*AsExpr) Kind() Kind                 { return KindAsExpr }
func (*IsExpr) Kind() Kind                 { return KindIsExpr }
func (*UnaryExpr) Kind() Kind              { return KindUnaryExpr }
func (*PostfixExpr) Kind() Kind            { return KindPostfixExpr }
func (*AwaitExpr) Kind() Kind              { return KindAwaitExpr }
func (*BinaryExpr) Kind() Kind             { return KindBinaryExpr }
func (*ConditionalExpr) Kind() Kind        { return KindConditionalExpr }
func (*AssignExpr) Kind() Kind             { return KindAssignExpr }
func (*LambdaExpr) Kind() Kind             { return KindLambdaExpr }
func (*ThrowExpr) Kind() Kind              { return KindThrowExpr }
func (*BadExpr) Kind() Kind                { return KindBadExpr }

func (*NamespaceDecl) declNode() {}
func (*TypeDecl) declNode()      {}
func (*EnumDecl) declNode()      {}
func (*DelegateDecl) declNode()  {}
func (*FieldDecl) declNode()     {}
func (*PropertyDecl) declNode()  {}
func (*EventDecl) declNode()     {}
func (*MethodDecl) declNode()    {}
func (*BadDecl) declNode()       {}

func (*Block) stmtNode()         {}
func (*LocalDeclStmt) stmtNode() {}
func (*LocalFuncStmt) stmtNode() {}
func (*ExprStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()    {}
func (*IfStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()     {}
func (*DoStmt) stmtNode()        {}
func (*ForStmt) stmtNode()       {}
func (*ForeachStmt) stmtNode()   {}
func (*SwitchStmt) stmtNode()    {}
func (*TryStmt) stmtNode()       {}
func (*ThrowStmt) stmtNode()     {}
func (*BranchStmt) stmtNode()    {}
func (*UsingStmt) stmtNode()     {}
func (*LockStmt) stmtNode()      {}
func (*YieldStmt) stmtNode()     {}
func (*EmptyStmt) stmtNode()     {}
func (*BadStmt) stmtNode()       {}

func (*Ident) exprNode()           {}
func (*GenericName) exprNode()     {}
func (*MemberAccess) exprNode()    {}
func (*PredefinedType) exprNode()  {}
func (*ArrayType) exprNode()       {}
func (*NullableType) exprNode()    {}
func (*BasicLit) exprNode()        {}
func (*ThisExpr) exprNode()        {}
func (*BaseExpr) exprNode()        {}
func (*ParenExpr) exprNode()       {}
func (*InvocationExpr) exprNode()  {}
func (*ElementAccess) exprNode()   {}
func (*ObjectCreation) exprNode()  {}
func (*ArrayCreation) exprNode()   {}
func (*InitializerExpr) exprNode() {}
func (*TypeofExpr) exprNode()      {}
func (*DefaultExpr) exprNode()     {}
func (*CastExpr) exprNode()        {}
func (*AsExpr) exprNode()          {}
func (*IsExpr) exprNode()          {}
func (*UnaryExpr) exprNode()       {}
func (*PostfixExpr) exprNode()     {}
func (*AwaitExpr) exprNode()       {}
func (*BinaryExpr) exprNode()      {}
func (*ConditionalExpr) exprNode() {}
func (*AssignExpr) exprNode()      {}
func (*LambdaExpr) exprNode()      {}
func (*ThrowExpr) exprNode()       {}
func (*BadExpr) exprNode()         {}
