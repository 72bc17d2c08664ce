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

import "fillmore-labs.com/dpguard/internal/syntax"

var predefined = map[syntax.Token]Special{
	syntax.BOOL:     Bool,
	syntax.BYTE:     Byte,
	syntax.CHARKW:   Char,
	syntax.DECIMAL:  Decimal,
	syntax.DOUBLE:   Double,
	syntax.FLOAT:    Single,
	syntax.INTKW:    Int32,
	syntax.LONG:     Int64,
	syntax.OBJECT:   Object,
	syntax.SBYTE:    SByte,
	syntax.SHORT:    Int16,
	syntax.STRINGKW: String,
	syntax.UINT:     UInt32,
	syntax.ULONG:    UInt64,
	syntax.USHORT:   UInt16,
	syntax.VOID:     Void,
}

// resolveType resolves type syntax and records the result. It returns nil for anything that
// does not denote a type.
func (c *checker) resolveType(ts typeScope, x syntax.Expr) Type {
	if x == nil {
		return nil
	}

	t, _ := c.resolveTypeOrNamespace(ts, x).(Type)
	if t != nil {
		c.types[x] = t
	}

	return t
}

// resolveTypeOrNamespace resolves x to a Type or a *Namespace, or nil.
func (c *checker) resolveTypeOrNamespace(ts typeScope, x syntax.Expr) any {
	switch x := x.(type) {
	case *syntax.PredefinedType:
		return c.special(predefined[x.Tok])

	case *syntax.Ident:
		if x.Missing {
			return nil
		}

		if x.Name == "dynamic" {
			return c.special(Object)
		}

		return c.recordName(x, c.lookupTypeName(ts, x.Name, 0))

	case *syntax.GenericName:
		def, ok := c.recordName(x.Name, c.lookupTypeName(ts, x.Name.Name, len(x.TypeArgs))).(*Named)
		if !ok {
			return nil
		}

		return c.instantiateSyntax(ts, def, x.TypeArgs)

	case *syntax.MemberAccess:
		var left any
		if x.Alias {
			left = c.global
			if id, ok := x.X.(*syntax.Ident); ok && id.Name != "global" {
				left = c.lookupScopeType(ts.scope, id.Name, 0)
			}
		} else {
			left = c.resolveTypeOrNamespace(ts, x.X)
		}

		arity := len(x.TypeArgs)

		var found any

		switch left := left.(type) {
		case *Namespace:
			if t := left.Type(x.Name.Name, arity); t != nil {
				found = t
			} else if ns, ok := left.children[x.Name.Name]; ok && arity == 0 {
				found = ns
			}

		case *Named:
			if t := nestedType(left, x.Name.Name, arity); t != nil {
				found = t
			}
		}

		found = c.recordName(x.Name, found)
		if def, ok := found.(*Named); ok && arity > 0 {
			return c.instantiateSyntax(ts, def, x.TypeArgs)
		}

		return found

	case *syntax.ArrayType:
		elem := c.resolveType(ts, x.Elem)
		if elem == nil {
			return nil
		}

		return NewArray(elem, x.Rank)

	case *syntax.NullableType:
		elem := c.resolveType(ts, x.Elem)
		if elem == nil {
			return nil
		}

		return c.nullableOf(elem)
	}

	return nil
}

// nullableOf returns Nullable<T> for value types; nullable reference annotations are ignored.
func (c *checker) nullableOf(t Type) Type {
	if !IsValueType(t) || NullableElem(t) != nil {
		return t
	}

	def := c.specials[Nullable]
	if def == nil {
		return t
	}

	return instantiate(def, []Type{t})
}

func (c *checker) instantiateSyntax(ts typeScope, def *Named, args []syntax.Expr) Type {
	targs := make([]Type, len(args))
	for i, a := range args {
		targs[i] = c.resolveType(ts, a)
	}

	return instantiate(def, targs)
}

// recordName records the symbol a name resolved to and returns the lookup result unchanged.
func (c *checker) recordName(id *syntax.Ident, found any) any {
	switch s := found.(type) {
	case *Named:
		c.use(id, s)
	case *Namespace:
		c.use(id, s)
	}

	return found
}

// use records a resolved reference.
func (c *checker) use(id *syntax.Ident, s Symbol) {
	if id == nil || s == nil {
		return
	}

	c.symbols[id] = s
	c.uses[id] = s
}
