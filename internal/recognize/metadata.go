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

// Metadata is an object creation of PropertyMetadata or a derived type.
type Metadata struct {
	Creation *syntax.ObjectCreation
	Type     *semantic.Named

	DefaultArg *syntax.Argument // defaultValue, nil when absent
	ChangedArg *syntax.Argument // PropertyChangedCallback, nil when absent
	CoerceArg  *syntax.Argument // CoerceValueCallback, nil when absent
}

// TryMetadata recognizes `new PropertyMetadata(...)` and creations of derived metadata types.
func TryMetadata(ctx context.Context, node syntax.Node, m semantic.Model, k *known.Symbols) (Metadata, bool) {
	oc, ok := node.(*syntax.ObjectCreation)
	if !ok || ctx.Err() != nil || k.PropertyMetadata == nil {
		return Metadata{}, false
	}

	t := semantic.AsNamed(m.TypeOf(oc))
	if t == nil || !semantic.IsDerivedFrom(t, k.PropertyMetadata) {
		return Metadata{}, false
	}

	md := Metadata{Creation: oc, Type: t}

	// Untyped fallbacks follow the common (defaultValue, changed, coerce) parameter order.
	md.DefaultArg = argument(m, oc.Args, "defaultValue", 0, named("defaultValue"))
	if md.DefaultArg != nil && isDelegateValue(m, md.DefaultArg.Value, k) {
		md.DefaultArg = nil
	}

	md.ChangedArg = argument(m, oc.Args, "propertyChangedCallback", -1, typed(k.PropertyChangedCallback))
	md.CoerceArg = argument(m, oc.Args, "coerceValueCallback", -1, typed(k.CoerceValueCallback))

	return md, true
}

// isDelegateValue reports whether x converts to one of the metadata callback delegates, as
// in `new PropertyMetadata(OnChanged)`.
func isDelegateValue(m semantic.Model, x syntax.Expr, k *known.Symbols) bool {
	if _, ok := syntax.Unparen(x).(*syntax.LambdaExpr); ok {
		return true
	}

	t := m.TypeOf(x)

	return known.Is(t, k.PropertyChangedCallback) || known.Is(t, k.CoerceValueCallback)
}

// RegistrationOf returns the registration call the metadata creation is passed to.
func (md Metadata) RegistrationOf(ctx context.Context, m semantic.Model, k *known.Symbols) (Registration, bool) {
	arg, ok := md.Creation.Parent().(*syntax.Argument)
	if !ok {
		return Registration{}, false
	}

	call, ok := arg.Parent().(*syntax.InvocationExpr)
	if !ok {
		return Registration{}, false
	}

	reg, ok := TryRegistration(ctx, call, m, k)
	if !ok || reg.MetadataArg != arg {
		return Registration{}, false
	}

	return reg, true
}
