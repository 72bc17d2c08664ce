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

package rules

import (
	"fillmore-labs.com/dpguard/internal/recognize"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// checkBackingName verifies that a plain backing member is named {Name}Property.
func checkBackingName(p *Pass, n syntax.Node) []report.Diagnostic {
	b, h, ok := p.backing(n)
	if !ok || b.Key {
		return nil
	}

	return backingName(report.WPF0001, b, h, "Property")
}

// checkBackingKeyName verifies that a key backing member is named {Name}PropertyKey.
func checkBackingKeyName(p *Pass, n syntax.Node) []report.Diagnostic {
	b, h, ok := p.backing(n)
	if !ok || !b.Key {
		return nil
	}

	return backingName(report.WPF0002, b, h, "PropertyKey")
}

func backingName(d *report.Descriptor, b recognize.BackingMember, h recognize.Handle, suffix string) []report.Diagnostic {
	name, ok := h.Name()
	if !ok {
		return nil
	}

	want := name + suffix
	if b.Name == want {
		return nil
	}

	return one(report.New(d, b.Ident, b.Name, name, want).With(report.ExpectedName, want))
}

func checkClrPropertyName(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrProperty(p.Context, n, p.Comp, p.Known)
	if !ok {
		return nil
	}

	h, ok := p.handle(c.Get.Handle)
	if !ok {
		return nil
	}

	name, ok := h.Name()
	if !ok || c.Name == name || h.Registration.Kind.Attached() {
		return nil
	}

	return one(report.New(report.WPF0003, c.Decl.Name, c.Name, name).With(report.ExpectedName, name))
}

func checkClrMethodName(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrMethod(p.Context, n, p.Comp, p.Known)
	if !ok {
		return nil
	}

	h, ok := p.handle(c.Forward.Handle)
	if !ok {
		return nil
	}

	name, ok := h.Name()
	if !ok {
		return nil
	}

	want, set := recognize.Accessors(name)
	if !c.Getter {
		want = set
	}

	if c.Name == want {
		return nil
	}

	return one(report.New(report.WPF0004, c.Decl.Name, c.Name, want).With(report.ExpectedName, want))
}

var callbackKinds = map[*report.Descriptor]recognize.CallbackKind{
	report.WPF0005: recognize.Changed,
	report.WPF0006: recognize.Coerce,
	report.WPF0007: recognize.Validate,
}

// checkCallbackName returns the naming check for the callback kind of d. Targets referenced
// from more than one place are left alone, a rename would break the other registrations.
func checkCallbackName(d *report.Descriptor) func(p *Pass, n syntax.Node) []report.Diagnostic {
	kind := callbackKinds[d]

	return func(p *Pass, n syntax.Node) []report.Diagnostic {
		cb, ok := recognize.TryCallback(p.Context, n, p.Comp, p.Known)
		if !ok || cb.Kind != kind || cb.Ref == nil || !cb.Registration.NameKnown {
			return nil
		}

		decl := cb.Target.Declaration()
		if decl == nil || !p.Comp.IsSource(decl) || len(p.Comp.Uses(cb.Target)) > 1 {
			return nil
		}

		want := recognize.ExpectedName(cb.Kind, cb.Registration.Name)
		if cb.Target.Name() == want {
			return nil
		}

		return one(report.New(d, cb.Ref, cb.Target.Name(), want).With(report.ExpectedName, want))
	}
}
