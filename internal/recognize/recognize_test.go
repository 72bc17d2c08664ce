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

package recognize_test

import (
	"context"
	"testing"

	"fillmore-labs.com/dpguard/internal/known"
	. "fillmore-labs.com/dpguard/internal/recognize"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
	"fillmore-labs.com/dpguard/internal/testsource"
)

func setup(t *testing.T, src string) (*semantic.Compilation, *known.Symbols) {
	t.Helper()

	c := testsource.Check(t, src)

	return c, known.NewTable(c).Symbols()
}

func TestResolveHandle(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            nameof(Bar), typeof(int), typeof(FooControl), new PropertyMetadata(default(int)));

        private static readonly DependencyPropertyKey ReadOnlyPropertyKey = DependencyProperty.RegisterReadOnly(
            "ReadOnly", typeof(string), typeof(FooControl), new PropertyMetadata(null));

        public static readonly DependencyProperty ReadOnlyProperty = ReadOnlyPropertyKey.DependencyProperty;

        public static readonly DependencyProperty AliasProperty = BarProperty;

        public static readonly DependencyProperty TagProperty = FrameworkElement.TagProperty.AddOwner(typeof(FooControl));

        public static readonly DependencyProperty LateProperty;

        static FooControl()
        {
            LateProperty = DependencyProperty.Register("Late", typeof(double), typeof(FooControl));
        }

        private static readonly string Dynamic = "Dyn";

        public static readonly DependencyProperty DynProperty = DependencyProperty.Register(
            Dynamic, typeof(bool), typeof(FooControl));

        public static readonly DependencyProperty CycleAProperty = CycleBProperty;
        public static readonly DependencyProperty CycleBProperty = CycleAProperty;

        public int Bar
        {
            get => (int)this.GetValue(BarProperty);
            set => this.SetValue(BarProperty, value);
        }`)

	c, k := setup(t, src)
	f := c.Files[0]
	ctx := context.Background()

	tests := []struct {
		member    string
		ok        bool
		name      string
		nameKnown bool
		typ       string
		key       bool
		addOwner  bool
	}{
		{"BarProperty", true, "Bar", true, "int", false, false},
		{"ReadOnlyPropertyKey", true, "ReadOnly", true, "string", false, false},
		{"ReadOnlyProperty", true, "ReadOnly", true, "string", true, false},
		{"AliasProperty", true, "Bar", true, "int", false, false},
		{"TagProperty", true, "Tag", true, "object", false, true},
		{"LateProperty", true, "Late", true, "double", false, false},
		{"DynProperty", true, "", false, "bool", false, false},
		{"CycleAProperty", false, "", false, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			t.Parallel()

			decl := testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator](tt.member))

			b, ok := TryBackingMember(ctx, decl, c, k)
			if !ok {
				t.Fatalf("Expected %s to be a backing member", tt.member)
			}

			h, ok := ResolveHandle(ctx, b.Symbol, c, k)
			if ok != tt.ok {
				t.Fatalf("Expected resolution %t, got %t", tt.ok, ok)
			}

			if !ok {
				return
			}

			if name, known := h.Name(); name != tt.name || known != tt.nameKnown {
				t.Errorf("Expected name %q (%t), got %q (%t)", tt.name, tt.nameKnown, name, known)
			}

			if got := typeString(h.Registration.Type); got != tt.typ {
				t.Errorf("Expected registered type %s, got %s", tt.typ, got)
			}

			if (h.Key != nil) != tt.key {
				t.Errorf("Expected key projection %t, got %v", tt.key, h.Key)
			}

			if (h.AddOwner != nil) != tt.addOwner {
				t.Errorf("Expected AddOwner %t, got %v", tt.addOwner, h.AddOwner)
			}
		})
	}
}

func typeString(t semantic.Type) string {
	if t == nil {
		return ""
	}

	return t.String()
}

func TestBackingMemberRejectsOtherTypes(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly object BarProperty = new object();
        public DependencyProperty Instance { get; }`)

	c, k := setup(t, src)
	f := c.Files[0]

	if _, ok := TryBackingMember(context.Background(), testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator]("BarProperty")), c, k); ok {
		t.Error("Expected object field not to be a backing member")
	}

	b, ok := TryBackingMember(context.Background(), testsource.Find(t, f, testsource.Named[*syntax.PropertyDecl]("Instance")), c, k)
	if !ok || b.Static || !b.ReadOnly {
		t.Errorf("Expected non-static get-only backing property, got %+v (%t)", b, ok)
	}
}

func TestRegistrationPartialFacts(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            "Bar", typeof(int), typeof(FooControl));

        public static readonly DependencyProperty BazProperty = DependencyProperty.Register(
            "Baz", Type.GetType("System.Int32"), typeof(FooControl));`)

	c, k := setup(t, src)
	f := c.Files[0]
	ctx := context.Background()

	bar, ok := TryBackingMember(ctx, testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator]("BarProperty")), c, k)
	if !ok {
		t.Fatal("Expected backing member")
	}

	h, ok := ResolveHandle(ctx, bar.Symbol, c, k)
	if !ok {
		t.Fatal("Expected resolved handle")
	}

	if h.Registration.MetadataArg != nil || h.Registration.ValidateArg != nil {
		t.Errorf("Expected absent metadata and validation, got %v, %v", h.Registration.MetadataArg, h.Registration.ValidateArg)
	}

	if h.Registration.Owner == nil || h.Registration.Owner.String() != "FooControl" {
		t.Errorf("Expected owner FooControl, got %v", h.Registration.Owner)
	}

	baz, ok := TryBackingMember(ctx, testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator]("BazProperty")), c, k)
	if !ok {
		t.Fatal("Expected backing member")
	}

	h, ok = ResolveHandle(ctx, baz.Symbol, c, k)
	if !ok {
		t.Fatal("Expected resolved handle")
	}

	if name, known := h.Name(); name != "Baz" || !known || h.Registration.Type != nil {
		t.Errorf("Expected name Baz with unknown type, got %q %t %v", name, known, h.Registration.Type)
	}
}

func TestRegistrationCancelled(t *testing.T) {
	t.Parallel()

	c, k := setup(t, testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            "Bar", typeof(int), typeof(FooControl));`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	call := testsource.Find[*syntax.InvocationExpr](t, c.Files[0], nil)
	if _, ok := TryRegistration(ctx, call, c, k); ok {
		t.Error("Expected no registration after cancellation")
	}
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            nameof(Bar), typeof(int), typeof(FooControl),
            new FrameworkPropertyMetadata(1, OnBarChanged, CoerceBar));

        public static readonly DependencyProperty BazProperty = DependencyProperty.Register(
            "Baz", typeof(int), typeof(FooControl),
            new PropertyMetadata(OnBarChanged));

        public int Bar { get => (int)GetValue(BarProperty); set => SetValue(BarProperty, value); }

        private static void OnBarChanged(DependencyObject d, DependencyPropertyChangedEventArgs e) { }

        private static object CoerceBar(DependencyObject d, object baseValue) => baseValue;`)

	c, k := setup(t, src)
	f := c.Files[0]
	ctx := context.Background()

	tests := []struct {
		name    string
		dflt    bool
		changed bool
		coerce  bool
		reg     string
	}{
		{"FrameworkPropertyMetadata", true, true, true, "Bar"},
		{"PropertyMetadata", false, true, false, "Baz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			oc := testsource.Find(t, f, func(x *syntax.ObjectCreation) bool {
				id, ok := x.Type.(*syntax.Ident)
				return ok && id.Name == tt.name
			})

			md, ok := TryMetadata(ctx, oc, c, k)
			if !ok {
				t.Fatal("Expected metadata")
			}

			if (md.DefaultArg != nil) != tt.dflt || (md.ChangedArg != nil) != tt.changed || (md.CoerceArg != nil) != tt.coerce {
				t.Errorf("Unexpected arguments default=%v changed=%v coerce=%v", md.DefaultArg, md.ChangedArg, md.CoerceArg)
			}

			reg, ok := md.RegistrationOf(ctx, c, k)
			if !ok || reg.Name != tt.reg {
				t.Errorf("Expected registration %q, got %q (%t)", tt.reg, reg.Name, ok)
			}
		})
	}
}

func TestCallbackForms(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty AProperty = DependencyProperty.Register(
            "A", typeof(int), typeof(FooControl), new PropertyMetadata(0, OnAChanged));

        public static readonly DependencyProperty BProperty = DependencyProperty.Register(
            "B", typeof(int), typeof(FooControl), new PropertyMetadata(0, new PropertyChangedCallback(OnAChanged)));

        public static readonly DependencyProperty CProperty = DependencyProperty.Register(
            "C", typeof(int), typeof(FooControl), new PropertyMetadata(0, (d, e) => OnAChanged(d, e)));

        public static readonly DependencyProperty DProperty = DependencyProperty.Register(
            "D", typeof(int), typeof(FooControl), new PropertyMetadata(0), ValidateD);

        public static readonly DependencyProperty EProperty = DependencyProperty.Register(
            "E", typeof(int), typeof(FooControl), new PropertyMetadata(0, null, CoerceE));

        private static void OnAChanged(DependencyObject d, DependencyPropertyChangedEventArgs e)
        {
            ((FooControl)d).InvalidateVisual();
        }

        private static bool ValidateD(object value)
        {
            var i = (int)value;
            return i >= 0;
        }

        private static object CoerceE(DependencyObject d, object value) => value;`)

	c, k := setup(t, src)
	f := c.Files[0]
	ctx := context.Background()

	tests := []struct {
		registered string
		kind       CallbackKind
		target     string
		lambda     bool
		creation   bool
		single     bool
		expected   string
	}{
		{"A", Changed, "OnAChanged", false, false, true, "OnAChanged"},
		{"B", Changed, "OnAChanged", false, true, true, "OnBChanged"},
		{"C", Changed, "OnAChanged", true, false, true, "OnCChanged"},
		{"D", Validate, "ValidateD", false, false, false, "DValidateValue"},
		{"E", Coerce, "CoerceE", false, false, true, "CoerceE"},
	}

	for _, tt := range tests {
		t.Run(tt.registered, func(t *testing.T) {
			t.Parallel()

			decl := testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator](tt.registered+"Property"))

			var cb Callback

			found := false

			for n := range syntax.Preorder(decl) {
				if cb, found = TryCallback(ctx, n, c, k); found {
					break
				}
			}

			if !found {
				t.Fatal("Expected a callback")
			}

			if cb.Kind != tt.kind {
				t.Errorf("Expected kind %v, got %v", tt.kind, cb.Kind)
			}

			if cb.Target.Name() != tt.target {
				t.Errorf("Expected target %s, got %s", tt.target, cb.Target.Name())
			}

			if (cb.Lambda != nil) != tt.lambda || (cb.Creation != nil) != tt.creation {
				t.Errorf("Unexpected shape lambda=%v creation=%v", cb.Lambda, cb.Creation)
			}

			if cb.SingleExpression != tt.single {
				t.Errorf("Expected single expression %t, got %t", tt.single, cb.SingleExpression)
			}

			if got := ExpectedName(cb.Kind, cb.Registration.Name); got != tt.expected {
				t.Errorf("Expected name %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestClrProperty(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            nameof(Bar), typeof(int), typeof(FooControl));

        private static readonly DependencyPropertyKey ReadOnlyPropertyKey = DependencyProperty.RegisterReadOnly(
            nameof(ReadOnly), typeof(string), typeof(FooControl), new PropertyMetadata(null));

        public static readonly DependencyProperty ReadOnlyProperty = ReadOnlyPropertyKey.DependencyProperty;

        public int Bar
        {
            get { return (int)GetValue(BarProperty); }
            set
            {
                SetCurrentValue(BarProperty, value);
                InvalidateVisual();
            }
        }

        public string ReadOnly
        {
            get => this.GetValue(ReadOnlyProperty) as string;
            private set => this.SetValue(ReadOnlyPropertyKey, value);
        }

        public int Plain { get; set; }`)

	c, k := setup(t, src)
	f := c.Files[0]
	ctx := context.Background()

	bar, ok := TryClrProperty(ctx, testsource.Find(t, f, testsource.Named[*syntax.PropertyDecl]("Bar")), c, k)
	if !ok {
		t.Fatal("Expected Bar to be a CLR property")
	}

	if bar.Get.CastType == nil || bar.Get.Stmt == nil {
		t.Errorf("Expected cast and statement for getter, got %+v", bar.Get)
	}

	if !bar.Set.IsSetCurrentValue() || bar.Set.Stmt != bar.Setter.Body.Stmts[0] {
		t.Errorf("Expected SetCurrentValue as first setter statement")
	}

	ro, ok := TryClrProperty(ctx, testsource.Find(t, f, testsource.Named[*syntax.PropertyDecl]("ReadOnly")), c, k)
	if !ok || ro.Set == nil {
		t.Fatal("Expected ReadOnly to be a CLR property with setter")
	}

	get, ok1 := ResolveHandle(ctx, ro.Get.Handle, c, k)
	set, ok2 := ResolveHandle(ctx, ro.Set.Handle, c, k)

	if !ok1 || !ok2 || !SameProperty(get, set) {
		t.Errorf("Expected getter and setter handles to denote the same property")
	}

	if _, ok := TryClrProperty(ctx, testsource.Find(t, f, testsource.Named[*syntax.PropertyDecl]("Plain")), c, k); ok {
		t.Error("Expected auto-property not to be a CLR property")
	}
}

func TestClrMethod(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.RegisterAttached(
            "Bar", typeof(int), typeof(FooControl));

        public static void SetBar(DependencyObject element, int value) => element.SetValue(BarProperty, value);

        public static int GetBar(DependencyObject element)
        {
            return (int)element.GetValue(BarProperty);
        }

        public static int Other(DependencyObject element) => 1;`)

	c, k := setup(t, src)
	f := c.Files[0]
	ctx := context.Background()

	tests := []struct {
		name   string
		ok     bool
		getter bool
	}{
		{"SetBar", true, false},
		{"GetBar", true, true},
		{"Other", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, ok := TryClrMethod(ctx, testsource.Find(t, f, testsource.Named[*syntax.MethodDecl](tt.name)), c, k)
			if ok != tt.ok {
				t.Fatalf("Expected %t, got %t", tt.ok, ok)
			}

			if !ok {
				return
			}

			if m.Getter != tt.getter || semantic.SpecialOf(m.Type) != semantic.Int32 {
				t.Errorf("Unexpected accessor %+v", m)
			}

			if m.Element.Name() != "element" {
				t.Errorf("Expected element parameter, got %s", m.Element.Name())
			}
		})
	}
}

func TestReferences(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            "Bar", typeof(int), typeof(FooControl), new PropertyMetadata(0, OnBarChanged));

        private static void OnBarChanged(DependencyObject d, DependencyPropertyChangedEventArgs e) { }

        public void M()
        {
            PropertyChangedCallback cb = OnBarChanged;
        }`)

	c, _ := setup(t, src)
	f := c.Files[0]

	decl := testsource.Find(t, f, testsource.Named[*syntax.MethodDecl]("OnBarChanged"))
	sym := c.SymbolOf(decl)

	td := testsource.Find(t, f, testsource.Named[*syntax.TypeDecl]("FooControl"))

	if got := WithReferences(context.Background(), td, c, func(r *References) int { return r.Count(sym) }); got != 2 {
		t.Errorf("Expected 2 references, got %d", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := WithReferences(ctx, td, c, func(r *References) int { return r.Count(sym) }); got != -1 {
		t.Errorf("Expected -1 after cancellation, got %d", got)
	}
}

func TestValueCall(t *testing.T) {
	t.Parallel()

	src := testsource.Wrap(`
        public static readonly DependencyProperty BarProperty = DependencyProperty.Register(
            nameof(Bar), typeof(int), typeof(FooControl), new PropertyMetadata(default(int)));

        public int Bar
        {
            get => (int)this.GetValue(BarProperty);
            set => this.SetValue(BarProperty, value);
        }

        public void Update(FooControl other)
        {
            other.SetCurrentValue(BarProperty, 2);
            this.ClearValue(BarProperty);
            this.Focus();
        }

        private void Focus()
        {
        }`)

	c, k := setup(t, src)
	f := c.Files[0]

	bar := c.SymbolOf(testsource.Find(t, f, testsource.Named[*syntax.VarDeclarator]("BarProperty")))

	tests := []struct {
		name   string
		method string
		ok     bool
		value  bool
		cast   bool
	}{
		{"get", "GetValue", true, false, true},
		{"set", "SetValue", true, true, false},
		{"set current", "SetCurrentValue", true, true, false},
		{"clear", "ClearValue", true, false, false},
		{"other", "Focus", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			call := testsource.Find(t, f, func(call *syntax.InvocationExpr) bool {
				name := InvokedName(call)

				return name != nil && name.Name == tt.method
			})

			fw, ok := TryValueCall(t.Context(), call, c, k)
			if ok != tt.ok {
				t.Fatalf("Expected ok %t, got %t", tt.ok, ok)
			}

			if !ok {
				return
			}

			if fw.Handle != bar {
				t.Errorf("Expected handle BarProperty, got %v", fw.Handle)
			}

			if got := fw.ValueArg != nil; got != tt.value {
				t.Errorf("Expected value argument %t, got %t", tt.value, got)
			}

			if got := fw.Cast != nil; got != tt.cast {
				t.Errorf("Expected cast %t, got %t", tt.cast, got)
			}

			if fw.Receiver == nil {
				t.Error("Expected explicit receiver")
			}
		})
	}
}
