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
	"fmt"
	"regexp"
	"strings"

	"fillmore-labs.com/dpguard/internal/recognize"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// checkBackingDoc verifies the summary of documented plain backing members.
func checkBackingDoc(p *Pass, n syntax.Node) []report.Diagnostic {
	b, h, ok := p.backing(n)
	if !ok || b.Key || h.Registration.Kind.Attached() {
		return nil
	}

	name, ok := h.Name()
	if !ok {
		return nil
	}

	var doc *syntax.CommentGroup

	switch d := b.Decl.(type) {
	case *syntax.FieldDecl:
		if len(d.Vars) == 1 {
			doc = d.Doc
		}

	case *syntax.PropertyDecl:
		doc = d.Doc
	}

	summary := fmt.Sprintf(`Identifies the <see cref="%s"/> dependency property.`, name)

	return docDiagnostic(report.WPF0060, doc, summary, nil)
}

// checkAccessorDoc verifies the documentation of attached property accessor methods.
func checkAccessorDoc(p *Pass, n syntax.Node) []report.Diagnostic {
	c, ok := recognize.TryClrMethod(p.Context, n, p.Comp, p.Known)
	if !ok || c.Decl.Doc == nil {
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

	handle := h.Member.Name
	if h.Member.Key {
		handle = name + "Property"
	}

	elem := c.Element.Name()
	elemType := p.Comp.TypeName(c.Element.Type(), c.Decl)

	var summary string

	extra := make([]string, 0, 2)

	if c.Getter {
		summary = fmt.Sprintf(`Helper for getting <see cref="%s"/> from <paramref name="%s"/>.`, handle, elem)
		extra = append(extra,
			fmt.Sprintf(`<param name="%s"><see cref="%s"/> to read <see cref="%s"/> from.</param>`, elem, elemType, handle),
			fmt.Sprintf(`<returns>%s property value.</returns>`, name))
	} else {
		value := c.Symbol.Params()[1].Name()
		summary = fmt.Sprintf(`Helper for setting <see cref="%s"/> on <paramref name="%s"/>.`, handle, elem)
		extra = append(extra,
			fmt.Sprintf(`<param name="%s"><see cref="%s"/> to set <see cref="%s"/> on.</param>`, elem, elemType, handle),
			fmt.Sprintf(`<param name="%s">%s property value.</param>`, value, name))
	}

	return docDiagnostic(report.WPF0061, c.Decl.Doc, summary, extra)
}

// checkCallbackDoc verifies the summary of documented change callbacks used by exactly one
// registration.
func checkCallbackDoc(p *Pass, n syntax.Node) []report.Diagnostic {
	d, ok := n.(*syntax.MethodDecl)
	if !ok || d.Doc == nil || d.MethodKind != syntax.OrdinaryMethod {
		return nil
	}

	m, ok := p.Comp.SymbolOf(d).(*semantic.Method)
	if !ok {
		return nil
	}

	uses := p.Comp.Uses(m)
	if len(uses) != 1 {
		return nil
	}

	cb, ok := p.callbackAt(uses[0], m)
	if !ok || cb.Kind != recognize.Changed || !cb.Registration.NameKnown {
		return nil
	}

	handle := cb.Registration.Name + "Property"
	if sym := p.Comp.EnclosingMember(cb.Registration.Call); sym != nil {
		if b, ok := recognize.BackingMemberOf(p.Context, sym, p.Comp, p.Known); ok && !b.Key {
			handle = b.Name
		}
	}

	summary := fmt.Sprintf(`This method is invoked when the <see cref="%s"/> changes.`, handle)

	return docDiagnostic(report.WPF0062, d.Doc, summary, nil)
}

// callbackAt finds the callback argument containing the reference id to m.
func (p *Pass) callbackAt(id *syntax.Ident, m *semantic.Method) (recognize.Callback, bool) {
	for a := range syntax.Ancestors(id) {
		switch a := a.(type) {
		case *syntax.Argument:
			cb, ok := recognize.TryCallback(p.Context, a, p.Comp, p.Known)
			if ok {
				return cb, cb.Target == m
			}

		case syntax.Decl:
			return recognize.Callback{}, false
		}
	}

	return recognize.Callback{}, false
}

// docDiagnostic reports doc when its summary differs from summary. The expected text carries
// the summary line followed by the extra lines of the standard documentation.
func docDiagnostic(d *report.Descriptor, doc *syntax.CommentGroup, summary string, extra []string) []report.Diagnostic {
	if doc == nil {
		return nil
	}

	text := doc.Text()
	if strings.Contains(text, "<inheritdoc") {
		return nil
	}

	if got, ok := Summary(text); ok && got == summary && hasLines(text, extra) {
		return nil
	}

	lines := append([]string{"<summary>" + summary + "</summary>"}, extra...)

	return one(report.New(d, doc).With(report.ExpectedText, strings.Join(lines, "\n")))
}

var (
	summaryPattern = regexp.MustCompile(`(?s)<summary>(.*?)</summary>`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Summary returns the whitespace-normalized content of the <summary> element of doc text.
func Summary(text string) (string, bool) {
	m := summaryPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	return strings.TrimSpace(spacePattern.ReplaceAllString(m[1], " ")), true
}

// hasLines reports whether every line appears in text, ignoring white space differences.
func hasLines(text string, lines []string) bool {
	norm := spacePattern.ReplaceAllString(text, " ")
	for _, l := range lines {
		if !strings.Contains(norm, l) {
			return false
		}
	}

	return true
}
