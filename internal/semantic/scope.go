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

// nsScope is a namespace declaration scope: the namespace and the using directives declared
// with it. Scopes chain outward to the compilation unit.
type nsScope struct {
	parent *nsScope
	ns     *Namespace
	usings []*syntax.UsingDirective
	global bool // compilation unit scope, sees `global using` directives

	imports []*Namespace
	statics []*Named
	aliases map[string]Symbol
}

// env is the declaration context of a type part: its namespace scope chain.
type env struct {
	scope *nsScope
	file  *syntax.File
}

// typePart is one declaration of a (possibly partial) type.
type typePart struct {
	decl syntax.Decl
	env  *env
}

// typeScope is the context for resolving type syntax: namespace scopes, the enclosing type
// and an enclosing generic method.
type typeScope struct {
	scope  *nsScope
	typ    *Named
	method *Method
}

// qualifiedName flattens a dotted name expression.
func qualifiedName(x syntax.Expr) []string {
	switch x := x.(type) {
	case *syntax.Ident:
		return []string{x.Name}
	case *syntax.MemberAccess:
		if x.Alias {
			return qualifiedName(x.Name)
		}

		return append(qualifiedName(x.X), x.Name.Name)
	}

	return nil
}

// resolveUsings binds the using directives of every scope. Namespaces and types must be
// declared before.
func (c *checker) resolveUsings() {
	for _, sc := range c.scopes {
		sc.aliases = make(map[string]Symbol)

		usings := sc.usings
		if sc.global {
			usings = append(append([]*syntax.UsingDirective(nil), c.globalUsings...), usings...)
		}

		for _, u := range usings {
			target := c.resolveUsingTarget(u.Name, sc)

			switch {
			case u.Alias != nil:
				if target != nil {
					sc.aliases[u.Alias.Name] = target
				}

			case u.Static:
				if t, ok := target.(*Named); ok {
					sc.statics = append(sc.statics, t)
				}

			default:
				if ns, ok := target.(*Namespace); ok {
					sc.imports = append(sc.imports, ns)
				}
			}
		}
	}
}

// resolveUsingTarget resolves the name of a using directive, first from the global namespace,
// then relative to the enclosing namespaces.
func (c *checker) resolveUsingTarget(x syntax.Expr, sc *nsScope) Symbol {
	for s := sc; s != nil; s = s.parent {
		if sym := c.namespaceOrType(s.ns, x); sym != nil {
			return sym
		}
	}

	return c.namespaceOrType(c.global, x)
}

func (c *checker) namespaceOrType(from *Namespace, x syntax.Expr) Symbol {
	switch x := x.(type) {
	case *syntax.Ident:
		if ns, ok := from.children[x.Name]; ok {
			return ns
		}

		if t := from.Type(x.Name, 0); t != nil {
			return t
		}

	case *syntax.GenericName:
		if t := from.Type(x.Name.Name, len(x.TypeArgs)); t != nil {
			return t
		}

	case *syntax.MemberAccess:
		if x.Alias {
			return c.namespaceOrType(c.global, x.Name)
		}

		switch left := c.namespaceOrType(from, x.X).(type) {
		case *Namespace:
			if ns, ok := left.children[x.Name.Name]; ok {
				return ns
			}

			if t := left.Type(x.Name.Name, len(x.TypeArgs)); t != nil {
				return t
			}

		case *Named:
			for _, m := range left.DeclaredMembers(x.Name.Name) {
				if t, ok := m.(*Named); ok {
					return t
				}
			}
		}
	}

	return nil
}

// lookupTypeName resolves a simple type name with the given arity in a type context.
// It returns a *Named, *TypeParam or *Namespace, or nil.
func (c *Compilation) lookupTypeName(ts typeScope, name string, arity int) any {
	if arity == 0 && ts.method != nil {
		for _, p := range ts.method.tparams {
			if p.name == name {
				return p
			}
		}
	}

	for t := ts.typ; t != nil; t = t.Origin().outer {
		if arity == 0 {
			for _, p := range t.Origin().tparams {
				if p.name == name {
					return p
				}
			}
		}

		if n := nestedType(t, name, arity); n != nil {
			return n
		}
	}

	return c.lookupScopeType(ts.scope, name, arity)
}

// nestedType finds a nested type declared in t or its base classes.
func nestedType(t *Named, name string, arity int) *Named {
	for n, depth := t, 0; n != nil && depth < maxDepth; n, depth = AsNamed(n.Base()), depth+1 {
		for _, m := range n.DeclaredMembers(name) {
			if nt, ok := m.(*Named); ok && len(nt.tparams) == arity {
				return nt
			}
		}
	}

	return nil
}

// lookupScopeType searches namespace scopes from the innermost outward.
func (c *Compilation) lookupScopeType(sc *nsScope, name string, arity int) any {
	for s := sc; s != nil; s = s.parent {
		if t := s.ns.Type(name, arity); t != nil {
			return t
		}

		if arity == 0 {
			if ns, ok := s.ns.children[name]; ok {
				return ns
			}

			if a, ok := s.aliases[name]; ok {
				return a
			}
		}

		var found *Named

		for _, imp := range s.imports {
			if t := imp.Type(name, arity); t != nil {
				if found != nil && found != t {
					return nil // ambiguous
				}

				found = t
			}
		}

		if found != nil {
			return found
		}
	}

	return nil
}
