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

package semantic_test

import (
	"context"
	"errors"
	"go/constant"
	"go/token"
	"testing"

	. "fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
	"fillmore-labs.com/dpguard/internal/testsource"
)

const barControl = `
using System.Windows;

namespace N
{
    public class BarControl : FrameworkElement
    {
        private const string Prefix = "Ba";

        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            nameof(Bar),
            typeof(int),
            typeof(BarControl),
            new PropertyMetadata(1, OnBarChanged));

        public int Bar
        {
            get => (int)this.GetValue(BarProperty);
            set => this.SetValue(BarProperty, value);
        }

        public string Name2 => Prefix + "r";

        private static void OnBarChanged(DependencyObject d, DependencyPropertyChangedEventArgs e)
        {
            var control = (BarControl)d;
            control.Bar = (int)e.NewValue;
        }
    }
}
`

func TestCheckNoFiles(t *testing.T) {
	t.Parallel()

	_, err := Check(context.Background(), token.NewFileSet(), nil)
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("Expected %v, got %v", ErrNoFiles, err)
	}
}

func TestCheckCancelled(t *testing.T) {
	t.Parallel()

	fset, files := testsource.Parse(t, barControl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Check(ctx, fset, files); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected %v, got %v", context.Canceled, err)
	}
}

func TestRegistrationArguments(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, barControl)
	f := c.Files[0]

	call := testsource.Find(t, f, func(x *syntax.InvocationExpr) bool {
		ma, ok := x.Fun.(*syntax.MemberAccess)
		return ok && ma.Name.Name == "Register"
	})

	m, ok := c.SymbolOf(call).(*Method)
	if !ok {
		t.Fatalf("Register call bound to %v", c.SymbolOf(call))
	}

	if got, want := m.Owner().Name(), "DependencyProperty"; got != want {
		t.Errorf("Register owner = %q, want %q", got, want)
	}

	if got, want := len(m.Params()), 4; got != want {
		t.Errorf("Register overload has %d parameters, want %d", got, want)
	}

	names := []string{"name", "propertyType", "ownerType", "typeMetadata"}
	for i, arg := range call.Args {
		p := c.ParameterOf(arg)
		if p == nil || p.Name() != names[i] {
			t.Errorf("Argument %d bound to %v, want %s", i, p, names[i])
		}
	}

	if v := c.ConstantOf(call.Args[0].Value); v == nil || constant.StringVal(v) != "Bar" {
		t.Errorf("nameof(Bar) = %v, want \"Bar\"", v)
	}

	if p, ok := c.SymbolOf(call.Args[0].Value.(*syntax.InvocationExpr).Args[0].Value).(*Property); !ok || p.Name() != "Bar" {
		t.Errorf("nameof argument not bound to property Bar")
	}

	typeOf := call.Args[1].Value.(*syntax.TypeofExpr)
	if got := c.TypeOf(typeOf.Type); SpecialOf(got) != Int32 {
		t.Errorf("typeof(int) operand = %v, want int", got)
	}

	if got := c.TypeOf(typeOf); SpecialOf(got) != SystemType {
		t.Errorf("typeof(int) = %v, want System.Type", got)
	}

	md := call.Args[3].Value.(*syntax.ObjectCreation)
	if ctor, ok := c.SymbolOf(md).(*Method); !ok || len(ctor.Params()) != 2 {
		t.Errorf("PropertyMetadata constructor = %v, want 2 parameters", c.SymbolOf(md))
	}

	cb := md.Args[1]
	if target, ok := c.SymbolOf(cb.Value).(*Method); !ok || target.Name() != "OnBarChanged" {
		t.Errorf("Callback bound to %v, want OnBarChanged", c.SymbolOf(cb.Value))
	}

	if got := c.ClassifyConversion(cb.Value, c.ParameterOf(cb).Type()); got != MethodGroup {
		t.Errorf("Callback conversion = %v, want %v", got, MethodGroup)
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, barControl)
	f := c.Files[0]

	prop := testsource.Find(t, f, testsource.Named[*syntax.PropertyDecl]("Bar"))

	sym, ok := c.SymbolOf(prop).(*Property)
	if !ok || SpecialOf(sym.Type()) != Int32 {
		t.Fatalf("Property Bar bound to %v", c.SymbolOf(prop))
	}

	if c.DeclarationOf(sym) != prop {
		t.Errorf("DeclarationOf(Bar) does not return its declaration")
	}

	get := testsource.Find(t, prop, func(x *syntax.InvocationExpr) bool { return true })
	if m, ok := c.SymbolOf(get).(*Method); !ok || m.Name() != "GetValue" || m.Owner().Name() != "DependencyObject" {
		t.Errorf("Getter call bound to %v", c.SymbolOf(get))
	}

	handle := get.Args[0].Value
	if fld, ok := c.SymbolOf(handle).(*Field); !ok || fld.Name() != "BarProperty" || !fld.Static() || !fld.ReadOnly() {
		t.Errorf("Handle bound to %v", c.SymbolOf(handle))
	}

	setter := prop.Setter()
	value := testsource.Ident(t, setter, "value")

	p, ok := c.SymbolOf(value).(*Param)
	if !ok || !p.Implicit() || SpecialOf(p.Type()) != Int32 {
		t.Errorf("Setter value bound to %v", c.SymbolOf(value))
	}

	if uses := c.Uses(c.SymbolOf(testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator]("BarProperty")))); len(uses) != 2 {
		t.Errorf("BarProperty has %d uses, want 2", len(uses))
	}
}

func TestConstants(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, barControl)

	prop := testsource.Find(t, c.Files[0], testsource.Named[*syntax.PropertyDecl]("Name2"))

	v := c.ConstantOf(prop.ExprBody)
	if v == nil || constant.StringVal(v) != "Bar" {
		t.Errorf("Prefix + \"r\" = %v, want \"Bar\"", v)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, barControl)

	tests := [...]struct {
		name string
		want string
	}{
		{"System.Windows.DependencyProperty", "DependencyProperty"},
		{"System.Nullable`1", "Nullable"},
		{"N.BarControl", "BarControl"},
		{"System.Windows.Nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Lookup(tt.name)

			switch {
			case tt.want == "" && got != nil:
				t.Errorf("Lookup(%q) = %v, want nil", tt.name, got)
			case tt.want != "" && (got == nil || got.Name() != tt.want):
				t.Errorf("Lookup(%q) = %v, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := testsource.Check(t, barControl)

	var (
		intT    = c.Special(Int32)
		doubleT = c.Special(Double)
		objectT = c.Special(Object)
		stringT = c.Special(String)
		dp      = c.Lookup("System.Windows.DependencyObject")
		fe      = c.Lookup("System.Windows.FrameworkElement")
	)

	tests := [...]struct {
		name     string
		from, to Type
		want     Conversion
	}{
		{"identity", intT, intT, Identity},
		{"widening", intT, doubleT, ImplicitNumeric},
		{"narrowing", doubleT, intT, ExplicitNumeric},
		{"boxing", intT, objectT, Boxing},
		{"unboxing", objectT, intT, Unboxing},
		{"upcast", fe, dp, ImplicitReference},
		{"downcast", dp, fe, ExplicitReference},
		{"unrelated", stringT, dp, NoConversion},
		{"unknown", nil, intT, NoConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := c.Classify(tt.from, tt.to); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestGenericSubstitution(t *testing.T) {
	t.Parallel()

	const src = `
using System.Windows;

namespace N
{
    public class Base<T> : FrameworkElement
    {
        public static readonly DependencyProperty ValueProperty = DependencyProperty.Register(
            nameof(Value), typeof(T), typeof(Base<T>));

        public T Value
        {
            get => (T)this.GetValue(ValueProperty);
            set => this.SetValue(ValueProperty, value);
        }
    }

    public class Derived : Base<string>
    {
        public int Length => this.Value.Length;
    }
}
`

	c := testsource.Check(t, src)

	typeOf := testsource.Find(t, c.Files[0], func(x *syntax.TypeofExpr) bool { return syntax.ExprString(x.Type) == "T" })

	tp, ok := c.TypeOf(typeOf.Type).(*TypeParam)
	if !ok {
		t.Fatalf("typeof(T) operand = %v, want type parameter", c.TypeOf(typeOf.Type))
	}

	derived := c.Lookup("N.Derived")
	base := c.Lookup("N.Base`1")

	if got := SubstituteVia(derived, base, tp); SpecialOf(got) != String {
		t.Errorf("T seen from Derived = %v, want string", got)
	}

	length := testsource.Find(t, c.Files[0], testsource.Named[*syntax.PropertyDecl]("Length"))
	if got := c.TypeOf(length.ExprBody); SpecialOf(got) != Int32 {
		t.Errorf("this.Value.Length = %v, want int", got)
	}
}

func TestColorColor(t *testing.T) {
	t.Parallel()

	const src = `
using System.Windows;

namespace N
{
    public class Owner : FrameworkElement
    {
        public Visibility Visibility2 { get; set; }

        public Visibility Visibility { get; set; }

        public void M()
        {
            this.Visibility2 = Visibility.Hidden;
            var v = Visibility;
        }
    }
}
`

	c := testsource.Check(t, src)
	f := c.Files[0]

	hidden := testsource.Find(t, f, func(x *syntax.MemberAccess) bool { return x.Name.Name == "Hidden" })
	if fld, ok := c.SymbolOf(hidden).(*Field); !ok || fld.Owner().Name() != "Visibility" {
		t.Errorf("Visibility.Hidden bound to %v, want enum member", c.SymbolOf(hidden))
	}

	local := testsource.Find(t, f, func(x *syntax.VarDeclarator) bool { return x.Name.Name == "v" })
	if _, ok := c.SymbolOf(local.Init).(*Property); !ok {
		t.Errorf("Visibility bound to %v, want property", c.SymbolOf(local.Init))
	}
}

func TestMalformedInput(t *testing.T) {
	t.Parallel()

	const src = `
using System.Windows;

public class Broken : FrameworkElement
{
    public static readonly DependencyProperty BrokenProperty = DependencyProperty.Register(
        nameof(Missing), typeof(Unknown), );

    public int Value { get => (int)this.GetValue(; }
}
`

	fset := token.NewFileSet()

	f, _ := syntax.Parse(fset, "broken.cs", []byte(src))

	c, err := Check(context.Background(), fset, []*syntax.File{f})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	typeOf := testsource.Find(t, f, func(x *syntax.TypeofExpr) bool { return true })
	if got := c.TypeOf(typeOf.Type); got != nil {
		t.Errorf("typeof(Unknown) operand = %v, want unknown", got)
	}
}
