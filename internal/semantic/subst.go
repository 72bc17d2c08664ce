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

// substitution maps type parameters to type arguments.
type substitution map[*TypeParam]Type

func (s substitution) apply(t Type) Type {
	if len(s) == 0 || t == nil {
		return t
	}

	switch t := t.(type) {
	case *TypeParam:
		if u, ok := s[t]; ok {
			return u
		}

	case *Array:
		if e := s.apply(t.elem); e != t.elem {
			return &Array{elem: e, rank: t.rank}
		}

	case *Named:
		if t.targs == nil {
			return t
		}

		changed := false

		args := make([]Type, len(t.targs))
		for i, a := range t.targs {
			args[i] = s.apply(a)
			changed = changed || args[i] != a
		}

		if changed {
			return instantiate(t.origin, args)
		}
	}

	return t
}

// instantiate returns the generic type def applied to args. Instantiations are not cached, so
// they are compared with [Identical], never by pointer.
func instantiate(def *Named, args []Type) *Named {
	def = def.Origin()
	if len(args) != len(def.tparams) || len(args) == 0 {
		return def
	}

	return &Named{name: def.name, origin: def, targs: args}
}

// unify infers method type arguments by matching a parameter type against an argument type.
func unify(s substitution, param, arg Type) {
	if arg == nil {
		return
	}

	switch p := param.(type) {
	case *TypeParam:
		if _, ok := s[p]; !ok {
			if _, null := arg.(NullType); !null {
				s[p] = arg
			}
		}

	case *Array:
		if a, ok := arg.(*Array); ok && a.rank == p.rank {
			unify(s, p.elem, a.elem)
		}

	case *Named:
		if p.targs == nil {
			return
		}

		for _, a := range supertypes(arg) {
			if an, ok := a.(*Named); ok && an.Origin() == p.Origin() && len(an.targs) == len(p.targs) {
				for i := range p.targs {
					unify(s, p.targs[i], an.targs[i])
				}

				return
			}
		}
	}
}

// supertypes returns t, its base classes and all implemented interfaces, nearest first.
func supertypes(t Type) []Type {
	var (
		list []Type
		seen = make(map[*Named]bool)
	)

	var add func(t Type, depth int)
	add = func(t Type, depth int) {
		n, ok := t.(*Named)
		if !ok || depth > maxDepth || seen[n] {
			return
		}

		seen[n] = true
		list = append(list, n)

		add(n.Base(), depth+1)

		for _, it := range n.Interfaces() {
			add(it, depth+1)
		}
	}

	if a, ok := t.(*Array); ok {
		list = append(list, a)

		return list
	}

	add(t, 0)

	return list
}
