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

// Package testsource provides utilities for parsing and binding C# source code in tests.
//
// It is designed to simplify testing of the dpguard recognizers and rules by handling common
// boilerplate code for parsing and binding source fragments.
package testsource

import (
	"context"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// Prelude is prepended by [Wrap]: the namespaces dependency property code usually imports.
const Prelude = "using System;\nusing System.Windows;\nusing System.Windows.Controls;\n\n"

// Wrap places class members in `namespace N { public class FooControl : Control { ... } }`,
// preceded by [Prelude]. This allows testing member-level code fragments without manually
// constructing the surrounding scaffolding.
func Wrap(members string) string {
	const (
		header = Prelude + "namespace N\n{\n    public class FooControl : Control\n    {\n"
		suffix = "\n    }\n}\n"
	)

	var b strings.Builder
	b.Grow(len(header) + len(members) + len(suffix))

	b.WriteString(header)  // ignore error
	b.WriteString(members) // ignore error
	b.WriteString(suffix)  // ignore error

	return b.String()
}

// Parse parses C# source files named a.cs, b.cs, ... into syntax trees sharing one file set.
func Parse(tb testing.TB, srcs ...string) (*token.FileSet, []*syntax.File) {
	tb.Helper()

	fset := token.NewFileSet()
	files := make([]*syntax.File, 0, len(srcs))

	for i, src := range srcs {
		name := string(rune('a'+i)) + ".cs"
		if i >= 26 {
			name = "f" + strconv.Itoa(i) + ".cs"
		}

		f, err := syntax.Parse(fset, name, []byte(src))
		if err != nil {
			tb.Fatalf("Failed to parse source %s: %v", name, err)
		}

		files = append(files, f)
	}

	return fset, files
}

// Check parses and binds the source files.
// Use this helper when testing components that require symbol and type information.
func Check(tb testing.TB, srcs ...string) *semantic.Compilation {
	tb.Helper()

	fset, files := Parse(tb, srcs...)

	c, err := semantic.Check(context.Background(), fset, files)
	if err != nil {
		tb.Fatalf("Failed to bind source: %v", err)
	}

	return c
}

// Find returns the first node of type T below root in preorder that satisfies match.
func Find[T syntax.Node](tb testing.TB, root syntax.Node, match func(T) bool) T {
	tb.Helper()

	for n := range syntax.Preorder(root) {
		if x, ok := n.(T); ok && (match == nil || match(x)) {
			return x
		}
	}

	var zero T
	tb.Fatalf("No matching %T found", zero)

	return zero
}

// Ident returns the first identifier below root with the given name.
func Ident(tb testing.TB, root syntax.Node, name string) *syntax.Ident {
	tb.Helper()

	return Find(tb, root, func(id *syntax.Ident) bool { return id.Name == name })
}

// Named returns a matcher for declarations or declarators named name.
func Named[T syntax.Node](name string) func(T) bool {
	return func(n T) bool {
		switch d := any(n).(type) {
		case *syntax.VarDeclarator:
			return d.Name != nil && d.Name.Name == name
		case *syntax.PropertyDecl:
			return d.Name != nil && d.Name.Name == name
		case *syntax.MethodDecl:
			return d.Name != nil && d.Name.Name == name
		case *syntax.TypeDecl:
			return d.Name != nil && d.Name.Name == name
		}

		return false
	}
}
