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

package fix

import (
	"go/token"
	"regexp"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/dpguard/internal/recognize"
	"fillmore-labs.com/dpguard/internal/report"
	"fillmore-labs.com/dpguard/internal/semantic"
	"fillmore-labs.com/dpguard/internal/syntax"
)

// renameFix requests renaming the declared or referenced symbol to the expected name.
func renameFix(s *site) []Fix {
	want, ok := s.property(report.ExpectedName)
	if !ok {
		return nil
	}

	id, ok := s.node.(*syntax.Ident)
	if !ok {
		return nil
	}

	sym := symbolAt(s.comp, id)
	if sym == nil || sym.Name() == want {
		return nil
	}

	return []Fix{{Title: "Rename " + sym.Name() + " to " + want, Rename: &Rename{Symbol: sym, To: want}}}
}

// symbolAt returns the symbol declared by or referenced through id.
func symbolAt(c *semantic.Compilation, id *syntax.Ident) semantic.Symbol {
	switch p := id.Parent().(type) {
	case *syntax.VarDeclarator:
		if p.Name == id {
			return c.SymbolOf(p)
		}

	case *syntax.PropertyDecl:
		if p.Name == id {
			return c.SymbolOf(p)
		}

	case *syntax.MethodDecl:
		if p.Name == id {
			return c.SymbolOf(p)
		}
	}

	return c.SymbolOf(id)
}

// typeFix replaces the reported type syntax with the expected type.
func typeFix(s *site) []Fix {
	want, ok := s.property(report.ExpectedType)
	if !ok || s.node == nil {
		return nil
	}

	return single("Use "+want, replace(s.node, want))
}

// propertyTypeFix changes the CLR property type and the cast of its getter.
func propertyTypeFix(s *site) []Fix {
	want, ok := s.property(report.ExpectedType)
	if !ok || s.node == nil {
		return nil
	}

	d, ok := s.node.Parent().(*syntax.PropertyDecl)
	if !ok || d.Type != s.node {
		return nil
	}

	edits := []analysis.TextEdit{replace(s.node, want)}

	if c, ok := recognize.TryClrProperty(s.ctx, d, s.comp, s.known); ok {
		edits = append(edits, s.castEdit(&c.Get, want)...)
	}

	return single("Change type to "+want, edits...)
}

// methodTypeFix changes the value type of an attached accessor and the cast of a getter.
func methodTypeFix(s *site) []Fix {
	want, ok := s.property(report.ExpectedType)
	if !ok || s.node == nil {
		return nil
	}

	d, ok := syntax.Enclosing[*syntax.MethodDecl](s.node)
	if !ok {
		return nil
	}

	edits := []analysis.TextEdit{replace(s.node, want)}

	if c, ok := recognize.TryClrMethod(s.ctx, d, s.comp, s.known); ok && c.Getter {
		edits = append(edits, s.castEdit(&c.Forward, want)...)
	}

	return single("Change type to "+want, edits...)
}

// castEdit rewrites the cast around a GetValue call to want.
func (s *site) castEdit(f *recognize.Forward, want string) []analysis.TextEdit {
	switch c := f.Cast.(type) {
	case *syntax.CastExpr:
		if s.text(c.Type) == want {
			return nil
		}

		return []analysis.TextEdit{replace(c.Type, want)}

	case *syntax.AsExpr:
		// `as` does not accept value types
		return []analysis.TextEdit{replace(c, "("+want+")"+s.text(c.X))}
	}

	return nil
}

// replacementFix replaces the invoked name of a call, or the reported syntax, with the
// replacement text.
func replacementFix(s *site) []Fix {
	repl, ok := s.property(report.Replacement)
	if !ok || s.node == nil {
		return nil
	}

	var target syntax.Node = s.node
	if call, ok := s.node.(*syntax.InvocationExpr); ok {
		if name := recognize.InvokedName(call); name != nil {
			target = name
		}
	}

	return single("Use "+summarize(repl), replace(target, repl))
}

// summarize shortens replacement text for fix titles.
func summarize(repl string) string {
	if name, _, ok := strings.Cut(repl, "("); ok && name != "" {
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}

		return name
	}

	return repl
}

// handleFix passes the expected handle instead of the reported one.
func handleFix(s *site) []Fix {
	want, ok := s.property(report.ExpectedName)
	if !ok || s.node == nil {
		return nil
	}

	return single("Use "+want, replace(s.node, want))
}

// modifiersFix adds the missing static and readonly modifiers to a backing field.
func modifiersFix(s *site) []Fix {
	missing, ok := s.property(report.Replacement)
	if !ok || s.node == nil {
		return nil
	}

	d, ok := syntax.Enclosing[*syntax.FieldDecl](s.node)
	if !ok || d.Type == nil {
		return nil
	}

	pos := d.Type.Pos()

	if missing == "static" {
		for _, m := range d.Mods {
			if m.Tok == syntax.READONLY {
				pos = m.Pos

				break
			}
		}
	}

	return single("Make "+missing, insert(pos, missing+" "))
}

// moveKeyFix moves the key member declaration in front of the handle member initialized
// from it.
func moveKeyFix(s *site) []Fix {
	ma, ok := s.node.(*syntax.MemberAccess)
	if !ok {
		return nil
	}

	handle := memberDecl(ma)
	key := declarationOf(s.comp.SymbolOf(ma.X))

	if handle == nil || key == nil || syntax.FileOf(key) != s.file || key.Pos() < handle.Pos() {
		return nil
	}

	from := s.file.LineStart(declStart(key))
	to := s.file.NextLine(key.End())

	if next := s.file.NextLine(to); blank(s.file, to, next) {
		to = next
	}

	cut := s.file.Src[s.file.Offset(from):s.file.Offset(to)]

	return single("Move key declaration before handle",
		insert(s.file.LineStart(declStart(handle)), string(cut)),
		analysis.TextEdit{Pos: from, End: to})
}

// memberDecl returns the member declaration containing n.
func memberDecl(n syntax.Node) syntax.Decl {
	for a := range syntax.Ancestors(n) {
		switch d := a.(type) {
		case *syntax.FieldDecl:
			if len(d.Vars) != 1 {
				return nil
			}

			return d

		case *syntax.PropertyDecl:
			return d

		case syntax.Decl:
			return nil
		}
	}

	return nil
}

// declarationOf returns the single member declaration of a field or property.
func declarationOf(sym semantic.Symbol) syntax.Decl {
	switch sym := sym.(type) {
	case *semantic.Field:
		if d := sym.Declaration(); d != nil && len(d.Vars) == 1 {
			return d
		}

	case *semantic.Property:
		if d := sym.Declaration(); d != nil {
			return d
		}
	}

	return nil
}

// declStart is the start of a member declaration including its documentation.
func declStart(d syntax.Decl) token.Pos {
	var doc *syntax.CommentGroup

	switch d := d.(type) {
	case *syntax.FieldDecl:
		doc = d.Doc
	case *syntax.PropertyDecl:
		doc = d.Doc
	case *syntax.MethodDecl:
		doc = d.Doc
	}

	if doc != nil && doc.Pos() < d.Pos() {
		return doc.Pos()
	}

	return d.Pos()
}

// blank reports whether the source in [from, to) is white space.
func blank(f *syntax.File, from, to token.Pos) bool {
	if from >= to {
		return false
	}

	return strings.TrimSpace(string(f.Src[f.Offset(from):f.Offset(to)])) == ""
}

// browsableFix adds [AttachedPropertyBrowsableForType] to an attached getter.
func browsableFix(s *site) []Fix {
	elem, ok := s.property(report.ExpectedType)
	if !ok || s.node == nil {
		return nil
	}

	d, ok := s.node.Parent().(*syntax.MethodDecl)
	if !ok {
		return nil
	}

	anchor := d.Name.Pos()

	switch {
	case len(d.Attrs) > 0:
		anchor = d.Attrs[0].Pos()
	case len(d.Mods) > 0:
		anchor = d.Mods[0].Pos
	case d.Result != nil:
		anchor = d.Result.Pos()
	}

	attr := s.file.Indent(anchor) + "[AttachedPropertyBrowsableForType(typeof(" + elem + "))]\n"

	return single("Add [AttachedPropertyBrowsableForType]", insert(s.file.LineStart(anchor), attr))
}

// lambdaFix replaces a method group callback with a lambda of its single expression and
// removes the method.
func lambdaFix(s *site) []Fix {
	x, ok := s.node.(syntax.Expr)
	if !ok {
		return nil
	}

	group := x
	if c, ok := syntax.Unparen(x).(*syntax.ObjectCreation); ok && len(c.Args) == 1 {
		group = c.Args[0].Value // new PropertyChangedCallback(OnBarChanged)
	}

	m, ok := s.comp.SymbolOf(group).(*semantic.Method)
	if !ok {
		return nil
	}

	d := m.Declaration()
	if d == nil || !s.comp.IsSource(d) {
		return nil
	}

	body := recognize.SingleBodyExpression(d)
	if body == nil {
		return nil
	}

	df := s.comp.FileOf(d)

	names := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		names = append(names, p.Name.Name)
	}

	params := strings.Join(names, ", ")
	if len(names) != 1 {
		params = "(" + params + ")"
	}

	from := df.LineStart(declStart(d))
	to := df.NextLine(d.End())

	// remove the separating blank line too
	if from > df.Pos() {
		if prev := df.LineStart(from - 1); blank(df, prev, from) {
			from = prev
		}
	}

	return single("Use lambda",
		replace(x, params+" => "+df.Text(body)),
		analysis.TextEdit{Pos: from, End: to})
}

var summaryElement = regexp.MustCompile(`(?s)<summary>.*?</summary>`)

// summaryFix replaces the summary element of a documentation comment.
func summaryFix(s *site) []Fix {
	lines, ok := s.expectedDoc()
	if !ok {
		return nil
	}

	group := s.file.Src[s.file.Offset(s.diag.Pos):s.file.Offset(s.diag.End)]

	loc := summaryElement.FindIndex(group)
	if loc == nil {
		return docFix(s)
	}

	multiline := strings.Contains(string(group[loc[0]:loc[1]]), "\n")
	pos := s.diag.Pos + token.Pos(loc[0])
	edit := analysis.TextEdit{Pos: pos, End: s.diag.Pos + token.Pos(loc[1]), NewText: []byte(s.summary(lines[0], multiline))}

	return single("Use standard summary", edit)
}

// docFix replaces a documentation comment with the standard text.
func docFix(s *site) []Fix {
	lines, ok := s.expectedDoc()
	if !ok {
		return nil
	}

	indent := s.file.Indent(s.diag.Pos)

	var b strings.Builder
	b.WriteString(s.summary(lines[0], true))

	for _, l := range lines[1:] {
		b.WriteString("\n" + indent + "/// " + l)
	}

	return single("Use standard documentation",
		analysis.TextEdit{Pos: s.diag.Pos, End: s.diag.End, NewText: []byte("/// " + b.String())})
}

// expectedDoc returns the lines of the expected documentation text. The first line is the
// summary element.
func (s *site) expectedDoc() ([]string, bool) {
	text, ok := s.property(report.ExpectedText)
	if !ok {
		return nil, false
	}

	lines := strings.Split(text, "\n")
	if !strings.HasPrefix(lines[0], "<summary>") || !strings.HasSuffix(lines[0], "</summary>") {
		return nil, false
	}

	return lines, true
}

// summary renders a summary element, spread over three comment lines when multiline.
func (s *site) summary(element string, multiline bool) string {
	if !multiline {
		return element
	}

	text := strings.TrimSuffix(strings.TrimPrefix(element, "<summary>"), "</summary>")
	prefix := "\n" + s.file.Indent(s.diag.Pos) + "/// "

	return "<summary>" + prefix + text + prefix + "</summary>"
}
