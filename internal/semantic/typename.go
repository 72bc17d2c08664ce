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

// TypeName returns a spelling of t that denotes t when written at n: keywords for predefined
// types, the simple name when enclosing types, namespaces, using directives and aliases
// resolve it to t, a qualified name otherwise.
func (c *Compilation) TypeName(t Type, n syntax.Node) string {
	if t == nil || n == nil {
		return typeString(t)
	}

	ts := typeScope{scope: c.scopeAt(n), typ: c.EnclosingType(n)}
	if m, ok := c.EnclosingMember(n).(*Method); ok {
		ts.method = m
	}

	return c.typeName(ts, t)
}

// scopeAt returns the innermost namespace scope containing n.
func (c *Compilation) scopeAt(n syntax.Node) *nsScope {
	for p := n; p != nil; p = p.Parent() {
		if sc, ok := c.nsScopes[p]; ok {
			return sc
		}
	}

	return nil
}

func (c *Compilation) typeName(ts typeScope, t Type) string {
	switch t := t.(type) {
	case *Named:
		switch s := t.Special(); {
		case s != NotSpecial && s <= Void:
			return s.String()

		case s == Nullable && len(t.targs) == 1:
			return c.typeName(ts, t.targs[0]) + "?"
		}

		return c.namedName(ts, t)

	case *Array:
		return c.typeName(ts, t.elem) + "[" + strings.Repeat(",", t.rank-1) + "]"
	}

	return typeString(t)
}

func (c *Compilation) namedName(ts typeScope, t *Named) string {
	o := t.Origin()
	simple := o.name + c.typeArgs(ts, t)

	if found, ok := c.lookupTypeName(ts, o.name, len(o.tparams)).(*Named); ok && found.Origin() == o {
		return simple
	}

	if o.outer != nil {
		return c.namedName(ts, o.outer) + "." + simple
	}

	ns := ""
	if o.ns != nil {
		ns = o.ns.FullName()
	}

	if ns == "" {
		return "global::" + simple
	}

	// A type or alias named like the outermost namespace hides it
	first, _, _ := strings.Cut(ns, ".")
	if root, ok := c.lookupTypeName(ts, first, 0).(*Namespace); !ok || root != c.global.children[first] {
		return "global::" + ns + "." + simple
	}

	return ns + "." + simple
}

func (c *Compilation) typeArgs(ts typeScope, t *Named) string {
	var list []string

	switch {
	case t.targs != nil:
		for _, a := range t.targs {
			list = append(list, c.typeName(ts, a))
		}

	case t.origin == nil && len(t.tparams) > 0:
		for _, p := range t.tparams {
			list = append(list, p.name)
		}

	default:
		return ""
	}

	return "<" + strings.Join(list, ", ") + ">"
}
