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

package syntax

import "go/token"

func (p *parser) parseFile() *File {
	f := &File{}

	f.Usings = p.parseUsings()

	for p.tok() != EOF {
		if p.tok() == LBRACK && (p.peekWord(1, "assembly") || p.peekWord(1, "module")) {
			f.Attributes = append(f.Attributes, p.parseAttributeList())

			continue
		}

		start := p.p
		if d := p.parseNamespaceMember(); d != nil {
			f.Members = append(f.Members, d)
		}

		if p.p == start {
			p.next()
		}
	}

	return f
}

func (p *parser) parseUsings() []*UsingDirective {
	var list []*UsingDirective

	for {
		pos := p.pos()

		global := false
		if p.isWord("global") && p.peek(1).Tok == USING {
			global = true

			p.next()
		}

		if p.tok() != USING || p.peek(1).Tok == LPAREN {
			return list
		}

		// `using var x = ...` is a statement, not valid here.
		p.next()

		u := &UsingDirective{Global: global}
		if p.got(STATIC) {
			u.Static = true
		}

		if p.tok() == IDENT && p.peek(1).Tok == ASSIGN {
			u.Alias = p.ident()
			p.next()
		}

		u.Name = p.parseType(false)
		p.expect(SEMICOLON)

		list = append(list, finish(p, u, pos))
	}
}

func (p *parser) parseNamespaceMember() Decl {
	if p.tok() != NAMESPACE {
		return p.parseMember("")
	}

	pos := p.pos()
	p.next()

	ns := &NamespaceDecl{Name: p.parseType(false)}

	if p.got(SEMICOLON) {
		ns.FileScoped = true
		ns.Usings = p.parseUsings()

		for p.tok() != EOF {
			start := p.p
			if d := p.parseNamespaceMember(); d != nil {
				ns.Members = append(ns.Members, d)
			}

			if p.p == start {
				p.next()
			}
		}

		return finish(p, ns, pos)
	}

	p.expect(LBRACE)

	ns.Usings = p.parseUsings()
	for p.tok() != RBRACE && p.tok() != EOF {
		start := p.p
		if d := p.parseNamespaceMember(); d != nil {
			ns.Members = append(ns.Members, d)
		}

		if p.p == start {
			p.next()
		}
	}

	p.expect(RBRACE)
	p.got(SEMICOLON)

	return finish(p, ns, pos)
}

func (p *parser) parseAttributeLists() []*AttributeList {
	var lists []*AttributeList
	for p.tok() == LBRACK {
		lists = append(lists, p.parseAttributeList())
	}

	return lists
}

func (p *parser) parseAttributeList() *AttributeList {
	pos := p.expect(LBRACK)

	al := &AttributeList{}
	if (p.tok() == IDENT || p.tok() == RETURN) && p.peek(1).Tok == COLON {
		c := p.cur()
		p.next()

		id := &Ident{Name: c.Tok.String()}
		if c.Tok == IDENT {
			id.Name = c.Lit
		}

		id.setSpan(c.Pos, c.End)
		al.Target = id

		p.next()
	}

	for p.tok() != RBRACK && p.tok() != EOF {
		apos := p.pos()
		a := &Attribute{Name: p.parseType(false)}

		if p.tok() == LPAREN {
			a.Args = p.parseArguments(RPAREN, true)
		}

		al.Attrs = append(al.Attrs, finish(p, a, apos))

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(RBRACK)

	return finish(p, al, pos)
}

var contextualModifiers = map[string]bool{
	"partial":  true,
	"async":    true,
	"required": true,
	"file":     true,
}

func (p *parser) parseModifiers() Modifiers {
	var mods Modifiers

	for {
		c := p.cur()

		switch {
		case c.Tok.IsModifier() && c.Tok != REF:
			mods = append(mods, Modifier{Tok: c.Tok, Name: c.Tok.String(), Pos: c.Pos})
			p.next()

		case c.Tok == IDENT && contextualModifiers[c.Lit] && p.startsDeclaration(1):
			mods = append(mods, Modifier{Tok: IDENT, Name: c.Lit, Pos: c.Pos})
			p.next()

		default:
			return mods
		}
	}
}

// startsDeclaration reports whether the token at offset n can continue a declaration
// after a contextual modifier.
func (p *parser) startsDeclaration(n int) bool {
	c := p.peek(n)

	return c.Tok == IDENT || c.Tok.IsKeyword()
}

// parseMember parses a type member or namespace member. typeName is the simple name of the
// enclosing type, used to recognize constructors.
func (p *parser) parseMember(typeName string) Decl {
	doc := p.leadingDoc()
	pos := p.pos()
	attrs := p.parseAttributeLists()
	mods := p.parseModifiers()

	switch c := p.cur(); {
	case c.Tok == CLASS || c.Tok == STRUCT || c.Tok == INTERFACE:
		return p.parseTypeDecl(doc, pos, attrs, mods)

	case c.Tok == IDENT && c.Lit == "record" && (p.peek(1).Tok == IDENT || p.peek(1).Tok == CLASS || p.peek(1).Tok == STRUCT):
		return p.parseTypeDecl(doc, pos, attrs, mods)

	case c.Tok == ENUM:
		return p.parseEnumDecl(doc, pos, attrs, mods)

	case c.Tok == DELEGATE:
		return p.parseDelegateDecl(doc, pos, attrs, mods)

	case c.Tok == EVENT:
		return p.parseEventDecl(doc, pos, attrs, mods)

	case c.Tok == TILDE:
		p.next()

		m := &MethodDecl{Doc: doc, Attrs: attrs, Mods: mods, MethodKind: Destructor, Name: p.ident()}

		return p.parseMethodRest(m, pos)

	case c.Tok == IDENT && c.Lit == typeName && p.peek(1).Tok == LPAREN:
		m := &MethodDecl{Doc: doc, Attrs: attrs, Mods: mods, MethodKind: Constructor, Name: p.ident()}

		return p.parseMethodRest(m, pos)

	case c.Tok == IMPLICIT || c.Tok == EXPLICIT:
		p.next()
		p.expect(OPERATOR)

		m := &MethodDecl{Doc: doc, Attrs: attrs, Mods: mods, MethodKind: Operator, Result: p.parseType(false)}
		m.Name = &Ident{Name: "op_" + c.Tok.String()}
		m.Name.setSpan(c.Pos, c.End)

		return p.parseMethodRest(m, pos)

	case c.Tok == IDENT || c.Tok.IsPredefinedType() || c.Tok == LPAREN:
		return p.parseTypedMember(doc, pos, attrs, mods)
	}

	p.errorExpected("declaration")
	p.skipTo(SEMICOLON, RBRACE, LBRACE)

	if p.tok() == LBRACE {
		p.skipBalanced()
	} else {
		p.got(SEMICOLON)
	}

	return finish(p, &BadDecl{}, pos)
}

func (p *parser) parseTypedMember(doc *CommentGroup, pos token.Pos, attrs []*AttributeList, mods Modifiers) Decl {
	typ := p.parseType(false)

	if p.tok() == OPERATOR {
		opPos := p.pos()
		p.next()

		op := p.cur()
		p.next()

		if op.Tok == GTR && p.tok() == GTR {
			p.next()
		}

		m := &MethodDecl{Doc: doc, Attrs: attrs, Mods: mods, MethodKind: Operator, Result: typ}
		m.Name = &Ident{Name: "op_" + op.Tok.String()}
		m.Name.setSpan(opPos, op.End)

		return p.parseMethodRest(m, pos)
	}

	if p.tok() == THIS {
		return p.parseIndexer(doc, pos, attrs, mods, typ, nil)
	}

	iface, name := p.parseMemberName()

	if iface != nil && p.tok() == THIS {
		return p.parseIndexer(doc, pos, attrs, mods, typ, iface)
	}

	switch p.tok() {
	case LPAREN, LSS:
		m := &MethodDecl{Doc: doc, Attrs: attrs, Mods: mods, Result: typ, Interface: iface, Name: name}

		return p.parseMethodRest(m, pos)

	case LBRACE:
		prop := &PropertyDecl{Doc: doc, Attrs: attrs, Mods: mods, Type: typ, Interface: iface, Name: name}
		prop.Accessors = p.parseAccessors()

		if p.got(ASSIGN) {
			prop.Init = p.parseExpr()
			p.expect(SEMICOLON)
		}

		return finish(p, prop, pos)

	case ARROW:
		p.next()

		prop := &PropertyDecl{Doc: doc, Attrs: attrs, Mods: mods, Type: typ, Interface: iface, Name: name}
		prop.ExprBody = p.parseExpr()
		p.expect(SEMICOLON)

		return finish(p, prop, pos)
	}

	fd := &FieldDecl{Doc: doc, Attrs: attrs, Mods: mods, Type: typ}
	fd.Vars = p.parseDeclarators(name)
	p.expect(SEMICOLON)

	return finish(p, fd, pos)
}

// parseMemberName parses `Name` or `IFace<T>.Name`, returning the interface part separately.
func (p *parser) parseMemberName() (Expr, *Ident) {
	var (
		qual Expr
		qpos token.Pos
	)

	for p.tok() == IDENT && (p.peek(1).Tok == PERIOD || p.peek(1).Tok == LSS && p.interfacePrefix()) {
		if qual == nil {
			qpos = p.pos()
		}

		name := p.parseNamePart()

		if qual == nil {
			qual = name
		} else {
			ma := &MemberAccess{X: qual}
			switch n := name.(type) {
			case *Ident:
				ma.Name = n
			case *GenericName:
				ma.Name, ma.TypeArgs = n.Name, n.TypeArgs
			}

			qual = finish(p, ma, qpos)
		}

		if !p.got(PERIOD) {
			break
		}
	}

	if qual != nil && p.tok() == THIS {
		return qual, nil
	}

	return qual, p.ident()
}

// interfacePrefix reports whether `Name<...>` at the current token is followed by a period.
func (p *parser) interfacePrefix() bool {
	mark := p.p
	defer func() { p.p = mark }()

	p.next()

	return p.try(func() bool {
		p.parseTypeArgs()

		return p.tok() == PERIOD
	})
}

func (p *parser) parseNamePart() Expr {
	pos := p.pos()
	id := p.ident()

	if p.tok() != LSS {
		return id
	}

	g := &GenericName{Name: id, TypeArgs: p.parseTypeArgs()}

	return finish(p, g, pos)
}

func (p *parser) parseIndexer(doc *CommentGroup, pos token.Pos, attrs []*AttributeList, mods Modifiers, typ, iface Expr) Decl {
	thisPos := p.pos()
	p.expect(THIS)

	name := &Ident{Name: "this"}
	name.setSpan(thisPos, p.prevEnd())

	prop := &PropertyDecl{Doc: doc, Attrs: attrs, Mods: mods, Type: typ, Interface: iface, Name: name, Indexer: true}
	prop.Params = p.parseParams(LBRACK, RBRACK)

	if p.got(ARROW) {
		prop.ExprBody = p.parseExpr()
		p.expect(SEMICOLON)
	} else {
		prop.Accessors = p.parseAccessors()
	}

	return finish(p, prop, pos)
}

func (p *parser) parseAccessors() []*Accessor {
	p.expect(LBRACE)

	var list []*Accessor

	for p.tok() != RBRACE && p.tok() != EOF {
		pos := p.pos()
		attrs := p.parseAttributeLists()
		mods := p.parseModifiers()

		if p.tok() != IDENT {
			p.errorExpected("accessor")
			p.skipTo(RBRACE)

			break
		}

		a := &Accessor{Attrs: attrs, Mods: mods, Keyword: p.ident()}

		switch p.tok() {
		case LBRACE:
			a.Body = p.parseBlock()
		case ARROW:
			p.next()

			a.ExprBody = p.parseExpr()
			p.expect(SEMICOLON)
		default:
			p.expect(SEMICOLON)
		}

		list = append(list, finish(p, a, pos))
	}

	p.expect(RBRACE)

	return list
}

func (p *parser) parseDeclarators(first *Ident) []*VarDeclarator {
	var vars []*VarDeclarator

	name := first
	for {
		v := &VarDeclarator{Name: name}
		if p.got(ASSIGN) {
			v.Init = p.parseVarInit()
		}

		vars = append(vars, finish(p, v, name.Pos()))

		if !p.got(COMMA) {
			return vars
		}

		name = p.ident()
	}
}

func (p *parser) parseVarInit() Expr {
	if p.tok() == LBRACE {
		return p.parseInitializer()
	}

	return p.parseExpr()
}

func (p *parser) parseTypeParams() []*Ident {
	if !p.got(LSS) {
		return nil
	}

	var list []*Ident

	for p.tok() != GTR && p.tok() != EOF {
		p.parseAttributeLists()

		if p.tok() == IN || p.tok() == OUT {
			p.next()
		}

		list = append(list, p.ident())

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(GTR)

	return list
}

// skipConstraints skips `where T : ...` clauses.
func (p *parser) skipConstraints() {
	if p.isWord("where") {
		p.skipTo(LBRACE, SEMICOLON, ARROW)
	}
}

func (p *parser) parseParams(open, closing Token) []*Param {
	p.expect(open)

	var list []*Param

	for p.tok() != closing && p.tok() != EOF {
		pos := p.pos()
		prm := &Param{Attrs: p.parseAttributeLists()}

		for {
			c := p.cur()
			if c.Tok == REF || c.Tok == OUT || c.Tok == IN || c.Tok == PARAMS || c.Tok == THIS ||
				c.Tok == READONLY || c.Tok == IDENT && c.Lit == "scoped" && p.peek(1).Tok == IDENT {
				prm.Mods = append(prm.Mods, Modifier{Tok: c.Tok, Name: c.Tok.String(), Pos: c.Pos})
				p.next()

				continue
			}

			break
		}

		prm.Type = p.parseType(false)
		prm.Name = p.ident()

		if p.got(ASSIGN) {
			prm.Default = p.parseExpr()
		}

		list = append(list, finish(p, prm, pos))

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(closing)

	return list
}

func (p *parser) parseMethodRest(m *MethodDecl, pos token.Pos) *MethodDecl {
	m.TypeParams = p.parseTypeParams()
	m.Params = p.parseParams(LPAREN, RPAREN)

	if m.MethodKind == Constructor && p.got(COLON) {
		ipos := p.pos()

		init := &ConstructorInitializer{Keyword: p.tok()}
		if p.tok() == BASE || p.tok() == THIS {
			p.next()
		} else {
			p.errorExpected("'base' or 'this'")
		}

		init.Args = p.parseArguments(RPAREN, false)
		m.Initializer = finish(p, init, ipos)
	}

	p.skipConstraints()
	p.parseBody(&m.Body, &m.ExprBody)

	return finish(p, m, pos)
}

func (p *parser) parseBody(body **Block, expr *Expr) {
	switch p.tok() {
	case LBRACE:
		*body = p.parseBlock()

	case ARROW:
		p.next()

		*expr = p.parseExpr()
		p.expect(SEMICOLON)

	default:
		p.expect(SEMICOLON)
	}
}

func (p *parser) parseTypeDecl(doc *CommentGroup, pos token.Pos, attrs []*AttributeList, mods Modifiers) *TypeDecl {
	td := &TypeDecl{Doc: doc, Attrs: attrs, Mods: mods, Keyword: p.tok()}

	if p.isWord("record") {
		td.Keyword = IDENT
		p.next()

		if p.tok() == CLASS || p.tok() == STRUCT {
			p.next()
		}
	} else {
		p.next()
	}

	td.Name = p.ident()
	td.TypeParams = p.parseTypeParams()

	if p.tok() == LPAREN {
		td.Params = p.parseParams(LPAREN, RPAREN)
	}

	if p.got(COLON) {
		for {
			td.Bases = append(td.Bases, p.parseType(false))

			if p.tok() == LPAREN {
				p.skipBalanced()
			}

			if !p.got(COMMA) {
				break
			}
		}
	}

	p.skipConstraints()

	if p.got(SEMICOLON) {
		return finish(p, td, pos)
	}

	p.expect(LBRACE)

	for p.tok() != RBRACE && p.tok() != EOF {
		start := p.p
		td.Members = append(td.Members, p.parseMember(td.Name.Name))

		if p.p == start {
			p.next()
		}
	}

	p.expect(RBRACE)
	p.got(SEMICOLON)

	return finish(p, td, pos)
}

func (p *parser) parseEnumDecl(doc *CommentGroup, pos token.Pos, attrs []*AttributeList, mods Modifiers) *EnumDecl {
	p.expect(ENUM)

	ed := &EnumDecl{Doc: doc, Attrs: attrs, Mods: mods, Name: p.ident()}
	if p.got(COLON) {
		ed.Base = p.parseType(false)
	}

	p.expect(LBRACE)

	for p.tok() != RBRACE && p.tok() != EOF {
		mdoc := p.leadingDoc()
		mpos := p.pos()

		m := &EnumMember{Doc: mdoc, Attrs: p.parseAttributeLists(), Name: p.ident()}
		if p.got(ASSIGN) {
			m.Value = p.parseExpr()
		}

		ed.Members = append(ed.Members, finish(p, m, mpos))

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(RBRACE)
	p.got(SEMICOLON)

	return finish(p, ed, pos)
}

func (p *parser) parseDelegateDecl(doc *CommentGroup, pos token.Pos, attrs []*AttributeList, mods Modifiers) *DelegateDecl {
	p.expect(DELEGATE)

	dd := &DelegateDecl{Doc: doc, Attrs: attrs, Mods: mods, Result: p.parseType(false)}
	dd.Name = p.ident()
	dd.TypeParams = p.parseTypeParams()
	dd.Params = p.parseParams(LPAREN, RPAREN)
	p.skipConstraints()
	p.expect(SEMICOLON)

	return finish(p, dd, pos)
}

func (p *parser) parseEventDecl(doc *CommentGroup, pos token.Pos, attrs []*AttributeList, mods Modifiers) Decl {
	p.expect(EVENT)

	typ := p.parseType(false)
	_, name := p.parseMemberName()

	if p.tok() == LBRACE {
		ev := &EventDecl{Doc: doc, Attrs: attrs, Mods: mods, Type: typ, Name: name}
		ev.Accessors = p.parseAccessors()

		return finish(p, ev, pos)
	}

	fd := &FieldDecl{Doc: doc, Attrs: attrs, Mods: mods, Event: true, Type: typ}
	fd.Vars = p.parseDeclarators(name)
	p.expect(SEMICOLON)

	return finish(p, fd, pos)
}
