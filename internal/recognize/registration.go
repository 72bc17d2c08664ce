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

package recognize

import (
	"context"

	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// RegistrationKind classifies calls creating or extending a dependency property.
type RegistrationKind uint8

//go:generate go tool stringer -type RegistrationKind -linecomment

// Registration kinds.
const (
	InvalidRegistration      RegistrationKind = iota // invalid
	Register                                         // Register
	RegisterReadOnly                                 // RegisterReadOnly
	RegisterAttached                                 // RegisterAttached
	RegisterAttachedReadOnly                         // RegisterAttachedReadOnly
	AddOwner                                         // AddOwner
	OverrideMetadata                                 // OverrideMetadata
)

// Creates reports whether the call creates a new property.
func (k RegistrationKind) Creates() bool { return Register <= k && k <= RegisterAttachedReadOnly }

// ReadOnly reports whether the call registers a read-only property, returning its key.
func (k RegistrationKind) ReadOnly() bool { return k == RegisterReadOnly || k == RegisterAttachedReadOnly }

// Attached reports whether the call registers an attached property.
func (k RegistrationKind) Attached() bool {
	return k == RegisterAttached || k == RegisterAttachedReadOnly
}

// MaxDepth is the maximum number of alias steps followed when tracing a backing member to
// its registration.
const MaxDepth = 16

// Registration is a call creating a dependency property (the Register family), or extending
// one (AddOwner and OverrideMetadata on an existing handle). For the latter, the registered
// name and type are those of the traced source handle.
type Registration struct {
	Call   *syntax.InvocationExpr
	Method *semantic.Method
	Kind   RegistrationKind

	NameArg   *syntax.Argument
	Name      string
	NameKnown bool // the registered name is a compile-time constant

	TypeArg *syntax.Argument
	Type    semantic.Type // registered type, nil when unknown

	OwnerArg *syntax.Argument
	Owner    semantic.Type // owner or target type, nil when unknown

	MetadataArg *syntax.Argument
	ValidateArg *syntax.Argument

	Source *Handle // traced receiver of AddOwner and OverrideMetadata, nil otherwise
}

// TryRegistration recognizes a call to one of the DependencyProperty registration methods,
// AddOwner or OverrideMetadata.
func TryRegistration(ctx context.Context, node syntax.Node, m semantic.Model, k *known.Symbols) (Registration, bool) {
	call, ok := node.(*syntax.InvocationExpr)
	if !ok || ctx.Err() != nil {
		return Registration{}, false
	}

	r := resolver{ctx: ctx, m: m, k: k, visited: acquireVisited()}
	defer r.visited.release()

	return r.registration(call, 0)
}

// Handle is a backing member traced through its alias chain to the registration creating it.
type Handle struct {
	Member       BackingMember
	Registration Registration // the creating Register call

	// Key is the key member a plain handle is projected from with `Key.DependencyProperty`,
	// nil otherwise.
	Key semantic.Symbol

	// AddOwner is the AddOwner call producing the handle, nil otherwise.
	AddOwner *syntax.InvocationExpr
}

// ReadOnly reports whether the handle belongs to a property registered read-only.
func (h Handle) ReadOnly() bool { return h.Registration.Kind.ReadOnly() }

// Name returns the registered name and whether it is statically known.
func (h Handle) Name() (string, bool) { return h.Registration.Name, h.Registration.NameKnown }

// ResolveHandle traces the backing member sym to its registration.
func ResolveHandle(ctx context.Context, sym semantic.Symbol, m semantic.Model, k *known.Symbols) (Handle, bool) {
	r := resolver{ctx: ctx, m: m, k: k, visited: acquireVisited()}
	defer r.visited.release()

	return r.handle(sym, 0)
}

// ResolveHandleExpr traces the handle referenced by expression x.
func ResolveHandleExpr(ctx context.Context, x syntax.Expr, m semantic.Model, k *known.Symbols) (Handle, bool) {
	if missing(x) {
		return Handle{}, false
	}

	return ResolveHandle(ctx, m.SymbolOf(x), m, k)
}

// SameProperty reports whether a and b denote the same registered property: the same member,
// or a plain handle and the key it is projected from.
func SameProperty(a, b Handle) bool {
	switch {
	case sameSymbol(a.Member.Symbol, b.Member.Symbol):
		return true
	case a.Key != nil && sameSymbol(a.Key, b.Member.Symbol):
		return true
	case b.Key != nil && sameSymbol(b.Key, a.Member.Symbol):
		return true
	}

	return false
}

type resolver struct {
	ctx     context.Context
	m       semantic.Model
	k       *known.Symbols
	visited visitedSet
}

func (r *resolver) handle(sym semantic.Symbol, depth int) (Handle, bool) {
	if depth > MaxDepth || r.ctx.Err() != nil || sym == nil || !r.visited.add(sym) {
		return Handle{}, false
	}

	b, ok := BackingMemberOf(r.ctx, sym, r.m, r.k)
	if !ok || b.Value == nil {
		return Handle{}, false
	}

	switch x := syntax.Unparen(b.Value).(type) {
	case *syntax.InvocationExpr:
		reg, ok := r.registration(x, depth+1)
		if !ok {
			return Handle{}, false
		}

		switch {
		case reg.Kind.Creates():
			if reg.Kind.ReadOnly() != b.Key {
				return Handle{}, false
			}

			return Handle{Member: b, Registration: reg}, true

		case reg.Kind == AddOwner && reg.Source != nil:
			return Handle{Member: b, Registration: reg.Source.Registration, Key: reg.Source.Key, AddOwner: x}, true
		}

	case *syntax.MemberAccess:
		// Key.DependencyProperty
		if !b.Key && x.Name.Name == "DependencyProperty" && known.Is(r.m.TypeOf(x.X), r.k.DependencyPropertyKey) {
			keySym := r.m.SymbolOf(x.X)

			key, ok := r.handle(keySym, depth+1)
			if !ok || !key.Member.Key {
				return Handle{}, false
			}

			return Handle{Member: b, Registration: key.Registration, Key: key.Member.Symbol}, true
		}

		return r.alias(b, x, depth)

	case *syntax.Ident:
		return r.alias(b, x, depth)
	}

	return Handle{}, false
}

// alias follows `= Other.XProperty`.
func (r *resolver) alias(b BackingMember, x syntax.Expr, depth int) (Handle, bool) {
	src, ok := r.handle(r.m.SymbolOf(x), depth+1)
	if !ok || src.Member.Key != b.Key {
		return Handle{}, false
	}

	src.Member = b

	return src, true
}

func (r *resolver) registration(call *syntax.InvocationExpr, depth int) (Registration, bool) {
	m, ok := r.m.SymbolOf(call).(*semantic.Method)
	if !ok {
		return Registration{}, false
	}

	reg := Registration{Call: call, Method: m}

	switch {
	case known.IsMethod(m, r.k.DependencyProperty, "Register", "RegisterReadOnly", "RegisterAttached", "RegisterAttachedReadOnly") && m.Static():
		switch m.Name() {
		case "Register":
			reg.Kind = Register
		case "RegisterReadOnly":
			reg.Kind = RegisterReadOnly
		case "RegisterAttached":
			reg.Kind = RegisterAttached
		default:
			reg.Kind = RegisterAttachedReadOnly
		}

		reg.NameArg = argument(r.m, call.Args, "name", 0, named("name"))
		if reg.NameArg != nil {
			reg.Name, reg.NameKnown = StringConstant(r.m, reg.NameArg.Value)
		}

		reg.TypeArg = argument(r.m, call.Args, "propertyType", 1, named("propertyType"))
		if reg.TypeArg != nil {
			reg.Type, _ = TypeofOperand(r.m, reg.TypeArg.Value)
		}

		reg.OwnerArg = argument(r.m, call.Args, "ownerType", 2, named("ownerType"))
		reg.MetadataArg = argument(r.m, call.Args, "typeMetadata", 3, derived(r.k.PropertyMetadata))
		reg.ValidateArg = argument(r.m, call.Args, "validateValueCallback", 4, typed(r.k.ValidateValueCallback))

	case known.IsMethod(m, r.k.DependencyProperty, "AddOwner") && !m.Static():
		reg.Kind = AddOwner
		reg.OwnerArg = argument(r.m, call.Args, "ownerType", 0, named("ownerType"))
		reg.MetadataArg = argument(r.m, call.Args, "typeMetadata", 1, derived(r.k.PropertyMetadata))

	case (known.IsMethod(m, r.k.DependencyProperty, "OverrideMetadata") ||
		known.IsMethod(m, r.k.DependencyPropertyKey, "OverrideMetadata")) && !m.Static():
		reg.Kind = OverrideMetadata
		reg.OwnerArg = argument(r.m, call.Args, "forType", 0, named("forType"))
		reg.MetadataArg = argument(r.m, call.Args, "typeMetadata", 1, derived(r.k.PropertyMetadata))

	default:
		return Registration{}, false
	}

	if reg.OwnerArg != nil {
		reg.Owner, _ = TypeofOperand(r.m, reg.OwnerArg.Value)
	}

	if !reg.Kind.Creates() {
		if recv := receiver(call); recv != nil {
			if src, ok := r.handle(r.m.SymbolOf(recv), depth+1); ok {
				reg.Source = &src
				reg.Name, reg.NameKnown = src.Registration.Name, src.Registration.NameKnown
				reg.Type = src.Registration.Type
			}
		}
	}

	return reg, true
}
