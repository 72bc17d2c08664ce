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

// memberRef is a member found through a (possibly instantiated) supertype; member types are
// substituted through via.
type memberRef struct {
	sym Symbol
	via *Named
}

func (r memberRef) typ() Type {
	t := TypeOfSymbol(r.sym)
	if r.via == nil {
		return t
	}

	return r.via.subst().apply(t)
}

// lookupMembers finds the members named name in t and its supertypes. A non-method member
// hides everything further up; methods accumulate as overloads, skipping overridden ones.
func (c *Compilation) lookupMembers(t Type, name string) []memberRef {
	var (
		found   []memberRef
		methods bool
	)

	for _, s := range c.memberSources(t) {
		n, ok := s.(*Named)
		if !ok {
			continue
		}

		for _, m := range n.DeclaredMembers(name) {
			meth, isMethod := m.(*Method)

			switch {
			case !isMethod && !methods:
				return []memberRef{{sym: m, via: n}}

			case isMethod && !overridden(found, meth, n):
				found = append(found, memberRef{sym: m, via: n})
				methods = true
			}
		}
	}

	return found
}

// memberSources returns the types whose members are visible on t.
func (c *Compilation) memberSources(t Type) []Type {
	switch t := t.(type) {
	case *Array:
		if a := c.specials[ArrayBase]; a != nil {
			return supertypes(a)
		}

		return nil

	case *TypeParam:
		if o := c.specials[Object]; o != nil {
			return []Type{o}
		}

		return nil

	case *Named:
		list := supertypes(t)
		if t.TypeKind() == Interface {
			if o := c.specials[Object]; o != nil {
				list = append(list, o)
			}
		}

		return list
	}

	return nil
}

// overridden reports whether a method with the same parameter types is already in found.
func overridden(found []memberRef, m *Method, via *Named) bool {
	sig := signatureOf(m, via.subst())

outer:
	for _, f := range found {
		fm, ok := f.sym.(*Method)
		if !ok || len(fm.params) != len(m.params) || len(fm.tparams) != len(m.tparams) {
			continue
		}

		fsig := signatureOf(fm, f.via.subst())
		for i := range sig.Params {
			if !Identical(sig.Params[i], fsig.Params[i]) && !(isTypeParam(sig.Params[i]) && isTypeParam(fsig.Params[i])) {
				continue outer
			}
		}

		return true
	}

	return false
}

// LookupMember returns the members named name visible on t, nearest declaration first.
func (c *Compilation) LookupMember(t Type, name string) []Symbol {
	refs := c.lookupMembers(t, name)

	list := make([]Symbol, len(refs))
	for i, r := range refs {
		list[i] = r.sym
	}

	return list
}

// MemberType returns the type of member sym as seen on receiver type t, with type arguments
// of generic supertypes substituted.
func (c *Compilation) MemberType(t Type, sym Symbol) Type {
	if owner := sym.Owner(); owner != nil {
		for _, s := range c.memberSources(t) {
			if n, ok := s.(*Named); ok && n.Origin() == owner.Origin() {
				return memberRef{sym: sym, via: n}.typ()
			}
		}
	}

	return TypeOfSymbol(sym)
}

// SubstituteVia returns t, as declared in a member of owner, seen through the receiver type
// recv: type parameters of owner are replaced by the type arguments recv supplies for it.
func SubstituteVia(recv Type, owner *Named, t Type) Type {
	if owner == nil {
		return t
	}

	for _, s := range supertypes(recv) {
		if n, ok := s.(*Named); ok && n.Origin() == owner.Origin() {
			return n.subst().apply(t)
		}
	}

	return t
}
