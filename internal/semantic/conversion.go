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
	"go/token"
	"math"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// Conversion classifies the conversion from an expression or type to a target type.
type Conversion uint8

//go:generate go tool stringer -type Conversion -linecomment

// Conversions.
const (
	NoConversion      Conversion = iota // none
	Identity                            // identity
	ImplicitNumeric                     // implicit numeric
	ImplicitConstant                    // implicit constant
	ImplicitReference                   // implicit reference
	Boxing                              // boxing
	ImplicitNullable                    // implicit nullable
	NullLiteral                         // null literal
	MethodGroup                         // method group
	AnonymousFunction                   // anonymous function
	ExplicitNumeric                     // explicit numeric
	ExplicitReference                   // explicit reference
	Unboxing                            // unboxing
	ExplicitNullable                    // explicit nullable
)

// IsImplicit reports whether the conversion exists implicitly.
func (k Conversion) IsImplicit() bool { return Identity <= k && k <= AnonymousFunction }

// Exists reports whether there is any conversion, implicit or explicit.
func (k Conversion) Exists() bool { return k != NoConversion }

// IsRepresentationPreserving reports whether the conversion keeps the value unchanged:
// identity, reference conversions and boxing.
func (k Conversion) IsRepresentationPreserving() bool {
	switch k {
	case Identity, ImplicitReference, Boxing, NullLiteral:
		return true
	}

	return false
}

// implicitNumeric lists the implicit numeric conversions per source type.
var implicitNumeric = map[Special][]Special{
	SByte:  {Int16, Int32, Int64, Single, Double, Decimal},
	Byte:   {Int16, UInt16, Int32, UInt32, Int64, UInt64, Single, Double, Decimal},
	Int16:  {Int32, Int64, Single, Double, Decimal},
	UInt16: {Int32, UInt32, Int64, UInt64, Single, Double, Decimal},
	Int32:  {Int64, Single, Double, Decimal},
	UInt32: {Int64, UInt64, Single, Double, Decimal},
	Int64:  {Single, Double, Decimal},
	UInt64: {Single, Double, Decimal},
	Char:   {UInt16, Int32, UInt32, Int64, UInt64, Single, Double, Decimal},
	Single: {Double},
}

func hasImplicitNumeric(from, to Special) bool {
	for _, s := range implicitNumeric[from] {
		if s == to {
			return true
		}
	}

	return false
}

// integralRange holds the value range of the integral types.
var integralRange = map[Special][2]constant.Value{
	SByte:  {constant.MakeInt64(math.MinInt8), constant.MakeInt64(math.MaxInt8)},
	Byte:   {constant.MakeInt64(0), constant.MakeInt64(math.MaxUint8)},
	Int16:  {constant.MakeInt64(math.MinInt16), constant.MakeInt64(math.MaxInt16)},
	UInt16: {constant.MakeInt64(0), constant.MakeInt64(math.MaxUint16)},
	Char:   {constant.MakeInt64(0), constant.MakeInt64(math.MaxUint16)},
	Int32:  {constant.MakeInt64(math.MinInt32), constant.MakeInt64(math.MaxInt32)},
	UInt32: {constant.MakeInt64(0), constant.MakeInt64(math.MaxUint32)},
	Int64:  {constant.MakeInt64(math.MinInt64), constant.MakeInt64(math.MaxInt64)},
	UInt64: {constant.MakeInt64(0), constant.MakeUint64(math.MaxUint64)},
}

// representable reports whether the integer constant v fits into the integral type s.
func representable(v constant.Value, s Special) bool {
	r, ok := integralRange[s]
	if !ok || v == nil || v.Kind() != constant.Int {
		return false
	}

	return constant.Compare(v, token.GEQ, r[0]) && constant.Compare(v, token.LEQ, r[1])
}

// ClassifyConversion classifies the conversion of expression x to type to. It accounts for
// constant, null literal, lambda and method group conversions that the type alone does not
// determine.
func (c *Compilation) ClassifyConversion(x syntax.Expr, to Type) Conversion {
	if to == nil {
		return NoConversion
	}

	switch y := syntax.Unparen(x).(type) {
	case *syntax.LambdaExpr:
		if sig := delegateSignature(to); sig != nil && (y.Delegate && y.Params == nil || len(y.Params) == len(sig.Params)) {
			return AnonymousFunction
		}

		return NoConversion

	case *syntax.Ident, *syntax.MemberAccess, *syntax.GenericName:
		if m, ok := c.symbols[y].(*Method); ok && c.types[y] == nil {
			if sig := delegateSignature(to); sig != nil && len(m.params) == len(sig.Params) {
				return MethodGroup
			}

			return NoConversion
		}
	}

	from := c.types[x]

	if v := c.consts[x]; v != nil && v.Kind() == constant.Int {
		switch fs, ts := SpecialOf(from), SpecialOf(to); {
		case IsEnum(to) && constant.Sign(v) == 0 && fs.IsIntegral():
			return ImplicitConstant
		case fs == Int32 && ts.IsIntegral() && ts != Char && representable(v, ts):
			return c.constantOrWider(from, to)
		case fs == Int64 && ts == UInt64 && constant.Sign(v) >= 0:
			return ImplicitConstant
		}
	}

	return c.Classify(from, to)
}

func (c *Compilation) constantOrWider(from, to Type) Conversion {
	if k := c.Classify(from, to); k.IsImplicit() {
		return k
	}

	return ImplicitConstant
}

func delegateSignature(t Type) *Signature {
	if n, ok := t.(*Named); ok && n.TypeKind() == Delegate {
		return n.DelegateInvoke()
	}

	return nil
}

// Classify classifies the conversion between two types. Unknown types have no conversion.
func (c *Compilation) Classify(from, to Type) Conversion {
	if from == nil || to == nil {
		return NoConversion
	}

	if Identical(from, to) {
		return Identity
	}

	if _, ok := from.(NullType); ok {
		if IsReferenceType(to) || NullableElem(to) != nil || isTypeParam(to) {
			return NullLiteral
		}

		return NoConversion
	}

	fs, ts := SpecialOf(from), SpecialOf(to)

	if fs.IsNumeric() && ts.IsNumeric() {
		if hasImplicitNumeric(fs, ts) {
			return ImplicitNumeric
		}

		return ExplicitNumeric
	}

	if te := NullableElem(to); te != nil {
		if fe := NullableElem(from); fe != nil {
			if c.Classify(fe, te).IsImplicit() {
				return ImplicitNullable
			}

			return ExplicitNullable
		}

		switch k := c.Classify(from, te); {
		case k == Identity || k == ImplicitNumeric:
			return ImplicitNullable
		case k.Exists():
			return ExplicitNullable
		}

		return NoConversion
	}

	if fe := NullableElem(from); fe != nil {
		if IsReferenceType(to) && c.Classify(fe, to) == Boxing {
			return Boxing
		}

		if c.Classify(fe, to).Exists() {
			return ExplicitNullable
		}

		return NoConversion
	}

	if IsEnum(from) && ts.IsNumeric() || fs.IsNumeric() && IsEnum(to) || IsEnum(from) && IsEnum(to) {
		return ExplicitNumeric
	}

	if isTypeParam(from) {
		if IsObject(to) {
			return Boxing
		}

		return ExplicitReference
	}

	if isTypeParam(to) {
		if IsObject(from) || IsInterface(from) {
			return Unboxing
		}

		return NoConversion
	}

	if IsValueType(from) {
		if isSupertype(from, to) {
			return Boxing
		}

		return NoConversion
	}

	if IsValueType(to) {
		if isSupertype(to, from) {
			return Unboxing
		}

		return NoConversion
	}

	if fa, ok := from.(*Array); ok {
		return c.classifyArray(fa, to)
	}

	if isSupertype(from, to) || IsObject(to) && IsReferenceType(from) {
		return ImplicitReference
	}

	if isSupertype(to, from) {
		return ExplicitReference
	}

	// interfaces convert explicitly to and from every non-sealed class
	if IsInterface(to) && !sealed(from) || IsInterface(from) && !sealed(to) {
		return ExplicitReference
	}

	return NoConversion
}

func (c *Compilation) classifyArray(from *Array, to Type) Conversion {
	if ta, ok := to.(*Array); ok {
		if ta.rank != from.rank || !IsReferenceType(from.elem) || !IsReferenceType(ta.elem) {
			return NoConversion
		}

		switch k := c.Classify(from.elem, ta.elem); {
		case k == ImplicitReference:
			return ImplicitReference
		case k == ExplicitReference:
			return ExplicitReference
		}

		return NoConversion
	}

	switch SpecialOf(to) {
	case Object, ArrayBase:
		return ImplicitReference
	}

	if IsInterface(to) {
		return ExplicitReference
	}

	return NoConversion
}

// IsAssignable reports whether a value of type from converts implicitly to type to.
func (c *Compilation) IsAssignable(from, to Type) bool { return c.Classify(from, to).IsImplicit() }

func isTypeParam(t Type) bool {
	_, ok := t.(*TypeParam)

	return ok
}

func sealed(t Type) bool {
	if n, ok := t.(*Named); ok {
		return n.Sealed()
	}

	return true
}

// isSupertype reports whether super is t, one of its base classes or implemented interfaces.
func isSupertype(t, super Type) bool {
	for _, s := range supertypes(t) {
		if Identical(s, super) {
			return true
		}
	}

	return false
}
