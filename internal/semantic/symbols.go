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
	"strings"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// SymbolKind classifies symbols.
type SymbolKind uint8

//go:generate go tool stringer -type SymbolKind -linecomment

// Symbol kinds.
const (
	InvalidSymbol   SymbolKind = iota // invalid
	NamespaceSymbol                   // namespace
	TypeSymbol                        // type
	FieldSymbol                       // field
	PropertySymbol                    // property
	MethodSymbol                      // method
	ParamSymbol                       // parameter
	LocalSymbol                       // local
	EventSymbol                       // event
)

// Symbol is a named entity declared in source or in the reference declarations.
type Symbol interface {
	Name() string
	Kind() SymbolKind
	Decl() syntax.Node // declaring node, nil for synthesized symbols
	Owner() *Named     // containing type, nil for namespaces, locals and parameters
	Static() bool
}

// Namespace is a (possibly nested) namespace. Namespaces merge across files.
type Namespace struct {
	name     string
	parent   *Namespace
	children map[string]*Namespace
	types    map[string][]*Named
}

func newNamespace(name string, parent *Namespace) *Namespace {
	return &Namespace{
		name:     name,
		parent:   parent,
		children: make(map[string]*Namespace),
		types:    make(map[string][]*Named),
	}
}

func (n *Namespace) child(name string) *Namespace {
	c, ok := n.children[name]
	if !ok {
		c = newNamespace(name, n)
		n.children[name] = c
	}

	return c
}

// Name returns the last component of the namespace name.
func (n *Namespace) Name() string { return n.name }

// Kind implements [Symbol].
func (*Namespace) Kind() SymbolKind { return NamespaceSymbol }

// Decl implements [Symbol]; namespaces have no single declaration.
func (*Namespace) Decl() syntax.Node { return nil }

// Owner implements [Symbol].
func (*Namespace) Owner() *Named { return nil }

// Static implements [Symbol].
func (*Namespace) Static() bool { return true }

// FullName returns the dotted namespace name; empty for the global namespace.
func (n *Namespace) FullName() string {
	if n.parent == nil {
		return ""
	}

	if p := n.parent.FullName(); p != "" {
		return p + "." + n.name
	}

	return n.name
}

// Type returns the type with the given name and number of type parameters.
func (n *Namespace) Type(name string, arity int) *Named {
	for _, t := range n.types[name] {
		if len(t.tparams) == arity {
			return t
		}
	}

	return nil
}

// Field is a field, constant or enum member.
type Field struct {
	name     string
	owner    *Named
	typ      Type
	decl     syntax.Node // *syntax.VarDeclarator or *syntax.EnumMember
	field    *syntax.FieldDecl
	static   bool
	readonly bool
	isConst  bool

	cval   constant.Value
	cstate uint8
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Kind implements [Symbol].
func (*Field) Kind() SymbolKind { return FieldSymbol }

// Decl returns the declarator or enum member.
func (f *Field) Decl() syntax.Node { return f.decl }

// Owner returns the declaring type.
func (f *Field) Owner() *Named { return f.owner }

// Static reports whether the field is static; constants are static.
func (f *Field) Static() bool { return f.static }

// Type returns the declared type.
func (f *Field) Type() Type { return f.typ }

// ReadOnly reports whether the field is readonly or constant.
func (f *Field) ReadOnly() bool { return f.readonly || f.isConst }

// IsConst reports whether the field is a constant or enum member.
func (f *Field) IsConst() bool { return f.isConst }

// Declaration returns the field declaration containing the declarator, nil for enum members.
func (f *Field) Declaration() *syntax.FieldDecl { return f.field }

// Initializer returns the initializer expression, or nil.
func (f *Field) Initializer() syntax.Expr {
	switch d := f.decl.(type) {
	case *syntax.VarDeclarator:
		return d.Init
	case *syntax.EnumMember:
		return d.Value
	}

	return nil
}

// Property is a property or indexer.
type Property struct {
	name   string
	owner  *Named
	typ    Type
	decl   *syntax.PropertyDecl
	static bool
	params []*Param
	get    bool
	set    bool
}

// Name returns the property name, "this" for indexers.
func (p *Property) Name() string { return p.name }

// Kind implements [Symbol].
func (*Property) Kind() SymbolKind { return PropertySymbol }

// Decl returns the property declaration.
func (p *Property) Decl() syntax.Node {
	if p.decl == nil {
		return nil
	}

	return p.decl
}

// Owner returns the declaring type.
func (p *Property) Owner() *Named { return p.owner }

// Static reports whether the property is static.
func (p *Property) Static() bool { return p.static }

// Type returns the declared type.
func (p *Property) Type() Type { return p.typ }

// Params returns indexer parameters.
func (p *Property) Params() []*Param { return p.params }

// HasGetter reports whether the property can be read.
func (p *Property) HasGetter() bool { return p.get }

// HasSetter reports whether the property can be written.
func (p *Property) HasSetter() bool { return p.set }

// Declaration returns the property declaration.
func (p *Property) Declaration() *syntax.PropertyDecl { return p.decl }

// Initializer returns the property initializer, or nil.
func (p *Property) Initializer() syntax.Expr {
	if p.decl == nil {
		return nil
	}

	return p.decl.Init
}

// MethodKind classifies methods.
type MethodKind uint8

// Method kinds.
const (
	Ordinary MethodKind = iota
	Constructor
	StaticConstructor
	Operator
	LocalFunction
	Lambda
	Invoke // delegate signature
)

// Method is a method, constructor, local function, lambda or delegate signature.
type Method struct {
	name    string
	owner   *Named
	mkind   MethodKind
	decl    syntax.Node // *syntax.MethodDecl, *syntax.LambdaExpr or *syntax.DelegateDecl
	mods    syntax.Modifiers
	tparams []*TypeParam
	params  []*Param
	result  Type
	static  bool
	ext     bool
}

// Name returns the method name; constructors are named after their type.
func (m *Method) Name() string { return m.name }

// Kind implements [Symbol].
func (*Method) Kind() SymbolKind { return MethodSymbol }

// Decl returns the declaring node.
func (m *Method) Decl() syntax.Node { return m.decl }

// Owner returns the declaring type.
func (m *Method) Owner() *Named { return m.owner }

// Static reports whether the method is static.
func (m *Method) Static() bool { return m.static }

// MethodKind returns the kind of the method.
func (m *Method) MethodKind() MethodKind { return m.mkind }

// Params returns the parameters.
func (m *Method) Params() []*Param { return m.params }

// Result returns the return type; void for procedures, nil when unknown.
func (m *Method) Result() Type { return m.result }

// TypeParams returns the method type parameters.
func (m *Method) TypeParams() []*TypeParam { return m.tparams }

// Modifiers returns the declared modifiers.
func (m *Method) Modifiers() syntax.Modifiers { return m.mods }

// Declaration returns the method declaration, or nil for lambdas and synthesized methods.
func (m *Method) Declaration() *syntax.MethodDecl {
	d, _ := m.decl.(*syntax.MethodDecl)

	return d
}

// String returns a signature like `Owner.Name(T1, T2)`.
func (m *Method) String() string {
	var b strings.Builder

	if m.owner != nil {
		b.WriteString(m.owner.String())
		b.WriteByte('.')
	}

	b.WriteString(m.name)
	b.WriteByte('(')

	for i, p := range m.params {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(typeString(p.typ))
	}

	b.WriteByte(')')

	return b.String()
}

// Param is a method, lambda or indexer parameter, or the implicit `value` of a setter.
type Param struct {
	name     string
	typ      Type
	index    int
	owner    Symbol
	decl     *syntax.Param
	ref      syntax.Token
	variadic bool
	optional bool
}

// Name returns the parameter name.
func (p *Param) Name() string { return p.name }

// Kind implements [Symbol].
func (*Param) Kind() SymbolKind { return ParamSymbol }

// Decl returns the parameter declaration, nil for implicit parameters.
func (p *Param) Decl() syntax.Node {
	if p.decl == nil {
		return nil
	}

	return p.decl
}

// Owner implements [Symbol].
func (*Param) Owner() *Named { return nil }

// Static implements [Symbol].
func (*Param) Static() bool { return false }

// Type returns the parameter type.
func (p *Param) Type() Type { return p.typ }

// Index returns the parameter position.
func (p *Param) Index() int { return p.index }

// Container returns the method, lambda or property declaring the parameter.
func (p *Param) Container() Symbol { return p.owner }

// Implicit reports whether this is the implicit `value` parameter of an accessor.
func (p *Param) Implicit() bool { return p.decl == nil }

// Local is a local variable, pattern variable, foreach or catch variable.
type Local struct {
	name   string
	typ    Type
	decl   syntax.Node
	isCons bool
	cval   constant.Value
}

// Name returns the variable name.
func (l *Local) Name() string { return l.name }

// Kind implements [Symbol].
func (*Local) Kind() SymbolKind { return LocalSymbol }

// Decl returns the declaring node.
func (l *Local) Decl() syntax.Node { return l.decl }

// Owner implements [Symbol].
func (*Local) Owner() *Named { return nil }

// Static implements [Symbol].
func (*Local) Static() bool { return false }

// Type returns the variable type.
func (l *Local) Type() Type { return l.typ }

// Event is an event declaration.
type Event struct {
	name   string
	owner  *Named
	typ    Type
	decl   syntax.Node
	static bool
}

// Name returns the event name.
func (e *Event) Name() string { return e.name }

// Kind implements [Symbol].
func (*Event) Kind() SymbolKind { return EventSymbol }

// Decl returns the declaring node.
func (e *Event) Decl() syntax.Node { return e.decl }

// Owner returns the declaring type.
func (e *Event) Owner() *Named { return e.owner }

// Static reports whether the event is static.
func (e *Event) Static() bool { return e.static }

// Type returns the delegate type.
func (e *Event) Type() Type { return e.typ }

// TypeOfSymbol returns the value type of a field, property, parameter, local or event.
func TypeOfSymbol(s Symbol) Type {
	switch s := s.(type) {
	case *Field:
		return s.typ
	case *Property:
		return s.typ
	case *Param:
		return s.typ
	case *Local:
		return s.typ
	case *Event:
		return s.typ
	}

	return nil
}

// Signature is a method signature after type substitution.
type Signature struct {
	Method *Method
	Params []Type
	Result Type
}

func signatureOf(m *Method, s substitution) *Signature {
	sig := &Signature{Method: m, Params: make([]Type, len(m.params)), Result: s.apply(m.result)}
	for i, p := range m.params {
		sig.Params[i] = s.apply(p.typ)
	}

	return sig
}
