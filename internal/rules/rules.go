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

// Package rules implements the dependency property convention rules.
//
// Every rule is a pure function of a syntax node and the bound compilation. Rules share no
// mutable state and may run concurrently for any number of nodes.
package rules

import (
	"context"

	"fillmore-labs.com/dpguard/internal/known"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// Pass is the read-only context a rule evaluates a node in.
type Pass struct {
	Context context.Context
	Comp    *semantic.Compilation
	Known   *known.Symbols
}

// NewPass returns a pass over c.
func NewPass(ctx context.Context, c *semantic.Compilation, k *known.Symbols) *Pass {
	return &Pass{Context: ctx, Comp: c, Known: k}
}

// Rule checks one convention on the nodes of the registered kinds.
type Rule struct {
	Descriptor *report.Descriptor
	Kinds      []syntax.Kind
	Check      func(p *Pass, n syntax.Node) []report.Diagnostic
}

var (
	backingKinds  = []syntax.Kind{syntax.KindVarDeclarator, syntax.KindPropertyDecl}
	propertyKinds = []syntax.Kind{syntax.KindPropertyDecl}
	methodKinds   = []syntax.Kind{syntax.KindMethodDecl}
	argumentKinds = []syntax.Kind{syntax.KindArgument}
	callKinds     = []syntax.Kind{syntax.KindInvocationExpr}
	creationKinds = []syntax.Kind{syntax.KindObjectCreation}
)

// All returns every rule, ordered by descriptor id.
func All() []Rule {
	return []Rule{
		{report.WPF0001, backingKinds, checkBackingName},
		{report.WPF0002, backingKinds, checkBackingKeyName},
		{report.WPF0003, propertyKinds, checkClrPropertyName},
		{report.WPF0004, methodKinds, checkClrMethodName},
		{report.WPF0005, argumentKinds, checkCallbackName(report.WPF0005)},
		{report.WPF0006, argumentKinds, checkCallbackName(report.WPF0006)},
		{report.WPF0007, argumentKinds, checkCallbackName(report.WPF0007)},
		{report.WPF0010, creationKinds, checkDefaultValueType},
		{report.WPF0011, callKinds, checkOwner},
		{report.WPF0012, propertyKinds, checkClrPropertyType},
		{report.WPF0013, methodKinds, checkClrMethodType},
		{report.WPF0014, callKinds, checkSetValueType},
		{report.WPF0015, callKinds, checkOwnerIsDependencyObject},
		{report.WPF0016, creationKinds, checkSharedDefault},
		{report.WPF0019, argumentKinds, checkSenderCast},
		{report.WPF0020, argumentKinds, checkValueCast},
		{report.WPF0023, argumentKinds, checkTrivialCallback},
		{report.WPF0030, backingKinds, checkStaticReadOnly},
		{report.WPF0031, backingKinds, checkKeyOrder},
		{report.WPF0032, propertyKinds, checkSameHandle},
		{report.WPF0033, methodKinds, checkBrowsableMissing},
		{report.WPF0034, []syntax.Kind{syntax.KindAttribute}, checkBrowsableArgument},
		{report.WPF0035, propertyKinds, checkSetterUsesSetValue},
		{report.WPF0036, propertyKinds, checkSideEffects},
		{report.WPF0040, callKinds, checkSetWithKey},
		{report.WPF0041, []syntax.Kind{syntax.KindInvocationExpr, syntax.KindAssignExpr}, checkSetCurrentValue},
		{report.WPF0043, callKinds, checkSetCurrentValueDataContext},
		{report.WPF0060, backingKinds, checkBackingDoc},
		{report.WPF0061, methodKinds, checkAccessorDoc},
		{report.WPF0062, methodKinds, checkCallbackDoc},
		{report.WPF0150, callKinds, checkNameof},
	}
}

// one wraps a single diagnostic.
func one(d report.Diagnostic) []report.Diagnostic { return []report.Diagnostic{d} }
