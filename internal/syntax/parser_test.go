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

package syntax_test

import (
	"go/token"
	"testing"

	. "fillmore-labs.com/dpguard/internal/syntax"
)

func parse(t *testing.T, src string) *File {
	t.Helper()

	f, err := Parse(token.NewFileSet(), "test.cs", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	return f
}

func firstOf[T Node](t *testing.T, root Node) T {
	t.Helper()

	for n := range Preorder(root) {
		if x, ok := n.(T); ok {
			return x
		}
	}

	var zero T
	t.Fatalf("no %T found", zero)

	return zero
}

const fooControl = `
using System.Windows;

namespace N
{
    public class FooControl : FrameworkElement
    {
        /// <summary>Identifies the <see cref="Bar"/> dependency property.</summary>
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            nameof(Bar),
            typeof(int),
            typeof(FooControl),
            new PropertyMetadata(default(int), OnBarChanged));

        public int Bar
        {
            get => (int)this.GetValue(BarProperty);
            set => this.SetValue(BarProperty, value);
        }

        private static void OnBarChanged(DependencyObject d, DependencyPropertyChangedEventArgs e)
        {
            if (d is FooControl control && e.NewValue is int n)
            {
                control.Baz = n > 0 ? n : -n;
            }
        }
    }
}
`

func TestParseDeclarations(t *testing.T) {
	t.Parallel()

	f := parse(t, fooControl)

	ns := firstOf[*NamespaceDecl](t, f)
	if got := ExprString(ns.Name); got != "N" {
		t.Errorf("namespace = %q, want %q", got, "N")
	}

	td := firstOf[*TypeDecl](t, f)
	if td.Name.Name != "FooControl" || len(td.Bases) != 1 || len(td.Members) != 3 {
		t.Fatalf("unexpected type declaration %s with %d members", td.Name.Name, len(td.Members))
	}

	field, ok := td.Members[0].(*FieldDecl)
	if !ok {
		t.Fatalf("member 0 is %T, want *FieldDecl", td.Members[0])
	}

	if !field.Mods.Has(STATIC) || !field.Mods.Has(READONLY) {
		t.Errorf("field modifiers = %v, want static readonly", field.Mods)
	}

	if got, want := field.Doc.Text(), `<summary>Identifies the <see cref="Bar"/> dependency property.</summary>`; got != want {
		t.Errorf("doc = %q, want %q", got, want)
	}

	inv, ok := field.Vars[0].Init.(*InvocationExpr)
	if !ok {
		t.Fatalf("initializer is %T, want *InvocationExpr", field.Vars[0].Init)
	}

	if got := ExprString(inv.Fun); got != "DependencyProperty.Register" {
		t.Errorf("callee = %q", got)
	}

	if len(inv.Args) != 4 {
		t.Fatalf("got %d arguments, want 4", len(inv.Args))
	}

	if _, ok := inv.Args[1].Value.(*TypeofExpr); !ok {
		t.Errorf("argument 1 is %T, want *TypeofExpr", inv.Args[1].Value)
	}

	prop, ok := td.Members[1].(*PropertyDecl)
	if !ok {
		t.Fatalf("member 1 is %T, want *PropertyDecl", td.Members[1])
	}

	get := prop.Getter()
	if get == nil || get.ExprBody == nil {
		t.Fatal("missing expression-bodied getter")
	}

	cast, ok := get.ExprBody.(*CastExpr)
	if !ok {
		t.Fatalf("getter body is %T, want *CastExpr", get.ExprBody)
	}

	if got := ExprString(cast.Type); got != "int" {
		t.Errorf("cast type = %q, want int", got)
	}

	if prop.Setter() == nil {
		t.Error("missing setter")
	}

	m, ok := td.Members[2].(*MethodDecl)
	if !ok || m.Name.Name != "OnBarChanged" || len(m.Params) != 2 {
		t.Fatalf("unexpected member 2 %T", td.Members[2])
	}

	is := firstOf[*IsExpr](t, m)
	if is.Name == nil || is.Name.Name != "control" {
		t.Errorf("declaration pattern name = %v", is.Name)
	}

	if p, ok := Enclosing[*MethodDecl](is); !ok || p != m {
		t.Error("parent links not set")
	}
}

func TestParseExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		kind Kind
		want string
	}{
		{"Cast", "(double)x", KindCastExpr, "(double)x"},
		{"ParenNotCast", "(a) - b", KindBinaryExpr, "(a) - b"},
		{"IdentCast", "(FooControl)d", KindCastExpr, "(FooControl)d"},
		{"Generic", "List<int>.Empty", KindMemberAccess, "List<int>.Empty"},
		{"LessThan", "a < b", KindBinaryExpr, "a < b"},
		{"Shift", "a >> 2", KindBinaryExpr, "a >> 2"},
		{"Nullable", "x as int?", KindAsExpr, ""},
		{"Conditional", "a ? b : c", KindConditionalExpr, ""},
		{"Coalesce", "a ?? b", KindBinaryExpr, "a ?? b"},
		{"Lambda", "(d, e) => Foo(d)", KindLambdaExpr, ""},
		{"SimpleLambda", "x => x + 1", KindLambdaExpr, ""},
		{"Anonymous", "delegate (object o) { }", KindLambdaExpr, ""},
		{"New", "new PropertyMetadata(1.0)", KindObjectCreation, "new PropertyMetadata(…)"},
		{"NullForgiving", "x!.Y", KindMemberAccess, "x!.Y"},
		{"Nameof", "nameof(Bar)", KindInvocationExpr, "nameof(…)"},
		{"Assign", "x = y", KindAssignExpr, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := parse(t, "class C { void M() { var _ = "+tt.expr+"; } }")

			decl := firstOf[*VarDeclarator](t, f)
			if decl.Init == nil {
				t.Fatal("missing initializer")
			}

			if got := decl.Init.Kind(); got != tt.kind {
				t.Errorf("kind = %v, want %v", got, tt.kind)
			}

			if tt.want == "" {
				return
			}

			if got := ExprString(decl.Init); got != tt.want {
				t.Errorf("ExprString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	t.Parallel()

	const src = `
class C
{
    void M()
    {
        int a = 1, b;
        await Foo();
        Local(2);
        void Local(int x) => Bar(x);
        foreach (var item in items) { }
        switch (a) { case 1: break; case string s: return; default: break; }
        using (var r = Open()) { }
        try { } catch (Exception ex) when (ex != null) { } finally { }
    }
}`

	f := parse(t, src)
	m := firstOf[*MethodDecl](t, f)

	want := []Kind{
		KindLocalDeclStmt, KindExprStmt, KindExprStmt, KindLocalFuncStmt,
		KindForeachStmt, KindSwitchStmt, KindUsingStmt, KindTryStmt,
	}

	if len(m.Body.Stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(m.Body.Stmts), len(want))
	}

	for i, s := range m.Body.Stmts {
		if s.Kind() != want[i] {
			t.Errorf("statement %d is %v, want %v", i, s.Kind(), want[i])
		}
	}

	if d := m.Body.Stmts[0].(*LocalDeclStmt); len(d.Vars) != 2 {
		t.Errorf("got %d declarators, want 2", len(d.Vars))
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	f, err := Parse(token.NewFileSet(), "bad.cs", []byte("class C { int X { get; } void M( { } }"))
	if err == nil {
		t.Fatal("expected syntax error")
	}

	if f == nil || len(f.Errors) == 0 {
		t.Fatal("errors not recorded on file")
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	f := parse(t, fooControl)

	prop := firstOf[*PropertyDecl](t, f)
	if got := f.Text(prop.Type); got != "int" {
		t.Errorf("Text = %q, want %q", got, "int")
	}

	if got := f.Indent(prop.Pos()); got != "        " {
		t.Errorf("Indent = %q", got)
	}

	if FileOf(prop) != f {
		t.Error("FileOf did not find the file")
	}
}
