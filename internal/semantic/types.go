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
	"strings"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// Type is a resolved C# type. A nil Type means "unknown".
type Type interface {
	String() string
	typ()
}

// TypeKind classifies named types.
type TypeKind uint8

//go:generate go tool stringer -type TypeKind,Special -linecomment

// Named type kinds.
const (
	InvalidType TypeKind = iota // invalid
	Class                       // class
	Struct                      // struct
	Interface                   // interface
	Enum                        // enum
	Delegate                    // delegate
)

// Special identifies the predefined types with language-level behavior.
type Special uint8

// Predefined types.
const (
	NotSpecial Special = iota // none
	Object                    // object
	String                    // string
	Bool                      // bool
	Char                      // char
	SByte                     // sbyte
	Byte                      // byte
	Int16                     // short
	UInt16                    // ushort
	Int32                     // int
	UInt32                    // uint
	Int64                     // long
	UInt64                    // ulong
	Single                    // float
	Double                    // double
	Decimal                   // decimal
	Void                      // void
	ValueType                 // System.ValueType
	EnumBase                  // System.Enum
	DelegateBase              // System.Delegate
	MulticastDelegate         // System.MulticastDelegate
	ArrayBase                 // System.Array
	Nullable                  // System.Nullable<T>
	SystemType                // System.Type
)

// IsNumeric reports whether s is one of the numeric types, char included.
func (s Special) IsNumeric() bool { return Char <= s && s <= Decimal }

// IsIntegral reports whether s is an integral type, char included.
func (s Special) IsIntegral() bool { return Char <= s && s <= UInt64 }

// Named is a class, struct, interface, enum or delegate type, or an instantiation of a generic
// one. Instantiations share members with their origin; member types are substituted on access.
type Named struct {
	name    string
	ns      *Namespace
	outer   *Named
	kind    TypeKind
	special Special
	parts   []typePart // *syntax.TypeDecl, *syntax.EnumDecl or *syntax.DelegateDecl per declaration
	mods    syntax.Modifiers

	tparams []*TypeParam
	base    Type
	ifaces  []Type

	members []Symbol
	byName  map[string][]Symbol
	invoke  *Method // delegate signature
	under   Type    // enum underlying type

	origin *Named
	targs  []Type
}

func (*Named) typ() {}

// Name returns the simple name of the type.
func (t *Named) Name() string { return t.name }

// Kind implements [Symbol].
func (t *Named) Kind() SymbolKind { return TypeSymbol }

// Decl returns the first declaring syntax node, or nil for instantiations.
func (t *Named) Decl() syntax.Node {
	if t.origin != nil || len(t.parts) == 0 {
		return nil
	}

	return t.parts[0].decl
}

// Decls returns all declarations of a partial type.
func (t *Named) Decls() []syntax.Decl {
	o := t.Origin()

	list := make([]syntax.Decl, len(o.parts))
	for i, p := range o.parts {
		list[i] = p.decl
	}

	return list
}

// Owner returns the enclosing type of a nested type.
func (t *Named) Owner() *Named { return t.outer }

// Static reports whether the type is a static class.
func (t *Named) Static() bool { return t.Origin().mods.Has(syntax.STATIC) }

// Namespace returns the namespace the type is declared in.
func (t *Named) Namespace() *Namespace { return t.Origin().ns }

// TypeKind returns the kind of the type.
func (t *Named) TypeKind() TypeKind { return t.Origin().kind }

// Special returns the predefined type identity, if any.
func (t *Named) Special() Special { return t.Origin().special }

// Origin returns the generic definition for an instantiation, t otherwise.
func (t *Named) Origin() *Named {
	if t.origin != nil {
		return t.origin
	}

	return t
}

// TypeParams returns the type parameters of the generic definition.
func (t *Named) TypeParams() []*TypeParam { return t.Origin().tparams }

// TypeArgs returns the type arguments of an instantiation.
func (t *Named) TypeArgs() []Type { return t.targs }

// Sealed reports whether the type cannot be derived from.
func (t *Named) Sealed() bool {
	o := t.Origin()

	return o.kind != Class && o.kind != Interface || o.mods.Has(syntax.SEALED) || o.mods.Has(syntax.STATIC)
}

// Abstract reports whether the type is abstract or an interface.
func (t *Named) Abstract() bool {
	o := t.Origin()

	return o.kind == Interface || o.mods.Has(syntax.ABSTRACT)
}

// Base returns the direct base class, nil for object, interfaces and unresolved bases.
func (t *Named) Base() Type {
	o := t.Origin()
	if t.origin == nil {
		return o.base
	}

	return t.subst().apply(o.base)
}

// Interfaces returns the directly implemented interfaces.
func (t *Named) Interfaces() []Type {
	o := t.Origin()
	if t.origin == nil {
		return o.ifaces
	}

	s := t.subst()

	list := make([]Type, len(o.ifaces))
	for i, it := range o.ifaces {
		list[i] = s.apply(it)
	}

	return list
}

// Members returns the declared members in declaration order.
func (t *Named) Members() []Symbol { return t.Origin().members }

// DeclaredMembers returns the declared members with the given name.
func (t *Named) DeclaredMembers(name string) []Symbol { return t.Origin().byName[name] }

// EnumUnderlying returns the underlying integral type of an enum.
func (t *Named) EnumUnderlying() Type { return t.Origin().under }

// DelegateInvoke returns the signature method of a delegate type, substituted for
// instantiations.
func (t *Named) DelegateInvoke() *Signature {
	o := t.Origin()
	if o.invoke == nil {
		return nil
	}

	return signatureOf(o.invoke, t.subst())
}

// FullName returns the namespace-qualified name, with type arguments.
func (t *Named) FullName() string {
	var b strings.Builder

	o := t.Origin()
	switch {
	case o.outer != nil:
		b.WriteString(o.outer.FullName())
		b.WriteByte('.')
	case o.ns != nil && o.ns.FullName() != "":
		b.WriteString(o.ns.FullName())
		b.WriteByte('.')
	}

	b.WriteString(o.name)
	t.writeArgs(&b)

	return b.String()
}

// String returns the C# spelling of the type: keywords for predefined types, simple names
// otherwise.
func (t *Named) String() string {
	if s := t.Special(); s != NotSpecial && s <= Void {
		return s.String()
	}

	if t.Special() == Nullable && len(t.targs) == 1 {
		return typeString(t.targs[0]) + "?"
	}

	var b strings.Builder

	if o := t.Origin(); o.outer != nil {
		b.WriteString(o.outer.String())
		b.WriteByte('.')
	}

	b.WriteString(t.name)
	t.writeArgs(&b)

	return b.String()
}

func (t *Named) writeArgs(b *strings.Builder) {
	var list []string

	switch {
	case t.targs != nil:
		for _, a := range t.targs {
			list = append(list, typeString(a))
		}

	case t.origin == nil && len(t.tparams) > 0:
		for _, p := range t.tparams {
			list = append(list, p.name)
		}

	default:
		return
	}

	b.WriteByte('<')
	b.WriteString(strings.Join(list, ", "))
	b.WriteByte('>')
}

func (t *Named) subst() substitution {
	if t == nil || t.origin == nil {
		return nil
	}

	s := make(substitution, len(t.targs))
	for i, p := range t.origin.tparams {
		if i < len(t.targs) {
			s[p] = t.targs[i]
		}
	}

	return s
}

// TypeParam is a generic type parameter of a type or method.
type TypeParam struct {
	name  string
	index int
	owner Symbol
}

func (*TypeParam) typ() {}

// String returns the parameter name.
func (p *TypeParam) String() string { return p.name }

// Name returns the parameter name.
func (p *TypeParam) Name() string { return p.name }

// Owner returns the declaring type or method.
func (p *TypeParam) Owner() Symbol { return p.owner }

// Array is a single- or multi-dimensional array type.
type Array struct {
	elem Type
	rank int
}

// NewArray returns the array type with the given element type and rank.
func NewArray(elem Type, rank int) *Array { return &Array{elem: elem, rank: rank} }

func (*Array) typ() {}

// Elem returns the element type.
func (a *Array) Elem() Type { return a.elem }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return a.rank }

// String returns the C# spelling.
func (a *Array) String() string {
	return typeString(a.elem) + "[" + strings.Repeat(",", a.rank-1) + "]"
}

// NullType is the type of the null literal.
type NullType struct{}

func (NullType) typ() {}

// String returns "null".
func (NullType) String() string { return "null" }

func typeString(t Type) string {
	if t == nil {
		return "?"
	}

	return t.String()
}

// AsNamed returns t as a named type, or nil.
func AsNamed(t Type) *Named {
	n, _ := t.(*Named)

	return n
}

// SpecialOf returns the predefined type identity of t.
func SpecialOf(t Type) Special {
	if n, ok := t.(*Named); ok {
		return n.Special()
	}

	return NotSpecial
}

// Identical reports whether t and u denote the same type. Unknown types are never identical.
func Identical(t, u Type) bool {
	if t == nil || u == nil {
		return false
	}

	if t == u {
		return true
	}

	switch t := t.(type) {
	case *Named:
		u, ok := u.(*Named)
		if !ok || t.Origin() != u.Origin() || len(t.targs) != len(u.targs) {
			return false
		}

		for i := range t.targs {
			if !Identical(t.targs[i], u.targs[i]) {
				return false
			}
		}

		return true

	case *Array:
		u, ok := u.(*Array)

		return ok && t.rank == u.rank && Identical(t.elem, u.elem)

	case NullType:
		_, ok := u.(NullType)

		return ok
	}

	return false
}

// IsReferenceType reports whether t is known to be a reference type.
func IsReferenceType(t Type) bool {
	switch t := t.(type) {
	case *Named:
		switch t.TypeKind() {
		case Class, Interface, Delegate:
			return true
		}

	case *Array:
		return true
	}

	return false
}

// IsValueType reports whether t is known to be a value type.
func IsValueType(t Type) bool {
	if t, ok := t.(*Named); ok {
		k := t.TypeKind()

		return k == Struct || k == Enum
	}

	return false
}

// IsInterface reports whether t is an interface type.
func IsInterface(t Type) bool {
	n, ok := t.(*Named)

	return ok && n.TypeKind() == Interface
}

// IsObject reports whether t is System.Object.
func IsObject(t Type) bool { return SpecialOf(t) == Object }

// IsEnum reports whether t is an enum type.
func IsEnum(t Type) bool {
	n, ok := t.(*Named)

	return ok && n.TypeKind() == Enum
}

// IsDelegate reports whether t is a delegate type.
func IsDelegate(t Type) bool {
	n, ok := t.(*Named)

	return ok && n.TypeKind() == Delegate
}

// NullableElem returns T for Nullable<T>, or nil.
func NullableElem(t Type) Type {
	if n, ok := t.(*Named); ok && n.Special() == Nullable && len(n.targs) == 1 {
		return n.targs[0]
	}

	return nil
}

// ContainsTypeParam reports whether t mentions a type parameter.
func ContainsTypeParam(t Type) bool {
	switch t := t.(type) {
	case *TypeParam:
		return true

	case *Array:
		return ContainsTypeParam(t.elem)

	case *Named:
		for _, a := range t.targs {
			if ContainsTypeParam(a) {
				return true
			}
		}
	}

	return false
}

// IsDerivedFrom reports whether t is base or derives from it through the base class chain.
func IsDerivedFrom(t Type, base *Named) bool {
	for n, depth := AsNamed(t), 0; n != nil && depth < maxDepth; n, depth = AsNamed(n.Base()), depth+1 {
		if n.Origin() == base.Origin() {
			return true
		}
	}

	return false
}

// maxDepth bounds walks over base chains and alias chains in malformed input.
const maxDepth = 64
