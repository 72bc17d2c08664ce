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

func (p *parser) parseBlock() *Block {
	pos := p.expect(LBRACE)

	b := &Block{}
	for p.tok() != RBRACE && p.tok() != EOF {
		start := p.p
		b.Stmts = append(b.Stmts, p.parseStmt())

		if p.p == start {
			p.next()
		}
	}

	p.expect(RBRACE)

	return finish(p, b, pos)
}

func (p *parser) parseStmt() Stmt {
	pos := p.pos()

	switch p.tok() {
	case LBRACE:
		return p.parseBlock()

	case SEMICOLON:
		p.next()

		return finish(p, &EmptyStmt{}, pos)

	case IF:
		p.next()
		p.expect(LPAREN)

		s := &IfStmt{Cond: p.parseExpr()}
		p.expect(RPAREN)
		s.Then = p.parseEmbeddedStmt()

		if p.got(ELSE) {
			s.Else = p.parseEmbeddedStmt()
		}

		return finish(p, s, pos)

	case WHILE:
		p.next()
		p.expect(LPAREN)

		s := &WhileStmt{Cond: p.parseExpr()}
		p.expect(RPAREN)
		s.Body = p.parseEmbeddedStmt()

		return finish(p, s, pos)

	case DO:
		p.next()

		s := &DoStmt{Body: p.parseEmbeddedStmt()}
		p.expect(WHILE)
		p.expect(LPAREN)
		s.Cond = p.parseExpr()
		p.expect(RPAREN)
		p.expect(SEMICOLON)

		return finish(p, s, pos)

	case FOR:
		return p.parseFor(pos)

	case FOREACH:
		return p.parseForeach(pos)

	case SWITCH:
		return p.parseSwitch(pos)

	case TRY:
		return p.parseTry(pos)

	case RETURN:
		p.next()

		s := &ReturnStmt{}
		if p.tok() != SEMICOLON {
			s.X = p.parseExpr()
		}

		p.expect(SEMICOLON)

		return finish(p, s, pos)

	case THROW:
		p.next()

		s := &ThrowStmt{}
		if p.tok() != SEMICOLON {
			s.X = p.parseExpr()
		}

		p.expect(SEMICOLON)

		return finish(p, s, pos)

	case BREAK, CONTINUE:
		s := &BranchStmt{Tok: p.tok()}
		p.next()
		p.expect(SEMICOLON)

		return finish(p, s, pos)

	case GOTO:
		p.next()

		s := &BranchStmt{Tok: GOTO}
		if p.tok() == IDENT {
			s.Label = p.ident()
		} else {
			p.skipTo(SEMICOLON)
		}

		p.expect(SEMICOLON)

		return finish(p, s, pos)

	case LOCK:
		p.next()
		p.expect(LPAREN)

		s := &LockStmt{X: p.parseExpr()}
		p.expect(RPAREN)
		s.Body = p.parseEmbeddedStmt()

		return finish(p, s, pos)

	case USING:
		return p.parseUsingStmt(pos)

	case CHECKED, UNCHECKED, UNSAFE:
		if p.peek(1).Tok == LBRACE {
			p.next()

			return p.parseBlock()
		}

	case FIXED:
		p.next()
		p.skipBalanced()

		return p.parseEmbeddedStmt()

	case CONST:
		p.next()

		s := &LocalDeclStmt{Mods: Modifiers{{Tok: CONST, Name: "const", Pos: pos}}}
		s.Type = p.parseType(false)
		s.Vars = p.parseDeclarators(p.ident())
		p.expect(SEMICOLON)

		return finish(p, s, pos)

	case IDENT:
		c := p.cur()

		switch {
		case c.Lit == "yield" && (p.peek(1).Tok == RETURN || p.peek(1).Tok == BREAK):
			p.next()

			s := &YieldStmt{Return: p.tok() == RETURN}
			p.next()

			if s.Return {
				s.X = p.parseExpr()
			}

			p.expect(SEMICOLON)

			return finish(p, s, pos)

		case p.peek(1).Tok == COLON:
			// labeled statement, the label is not kept
			p.next()
			p.next()

			return p.parseStmt()
		}
	}

	if s := p.tryLocalDeclaration(pos); s != nil {
		return s
	}

	x := p.parseExpr()
	if _, bad := x.(*BadExpr); bad {
		p.skipTo(SEMICOLON, RBRACE)
		p.got(SEMICOLON)

		return finish(p, &BadStmt{}, pos)
	}

	p.expect(SEMICOLON)

	return finish(p, &ExprStmt{X: x}, pos)
}

// parseEmbeddedStmt parses the body of a control statement.
func (p *parser) parseEmbeddedStmt() Stmt {
	return p.parseStmt()
}

// tryLocalDeclaration parses a local variable declaration or local function if one starts at
// the current token.
func (p *parser) tryLocalDeclaration(pos token.Pos) Stmt {
	var (
		mods Modifiers
		typ  Expr
		fn   bool
	)

	ok := p.try(func() bool {
		mods = p.parseLocalModifiers()
		if p.tok() != IDENT && !p.tok().IsPredefinedType() && p.tok() != LPAREN {
			return false
		}

		typ = p.parseType(false)
		if p.failed || p.tok() != IDENT {
			return false
		}

		switch p.peek(1).Tok {
		case ASSIGN, SEMICOLON, COMMA:
			return true

		case LSS:
			fn = true

			return true

		case LPAREN:
			end := p.matching(p.p + 1)
			if end < 0 {
				return false
			}

			switch p.items[end+1].Tok {
			case LBRACE, ARROW:
				fn = true

				return true
			}
		}

		return false
	})

	if !ok {
		return nil
	}

	if fn {
		m := &MethodDecl{Mods: mods, MethodKind: LocalFunction, Result: typ, Name: p.ident()}
		p.parseMethodRest(m, pos)

		return finish(p, &LocalFuncStmt{Func: m}, pos)
	}

	s := &LocalDeclStmt{Mods: mods, Type: typ}
	s.Vars = p.parseDeclarators(p.ident())
	p.expect(SEMICOLON)

	return finish(p, s, pos)
}

func (p *parser) parseLocalModifiers() Modifiers {
	var mods Modifiers

	for {
		c := p.cur()

		switch {
		case c.Tok == STATIC || c.Tok == UNSAFE || c.Tok == USING || c.Tok == EXTERN:
			mods = append(mods, Modifier{Tok: c.Tok, Name: c.Tok.String(), Pos: c.Pos})
		case c.Tok == IDENT && (c.Lit == "async" || c.Lit == "scoped") && p.startsDeclaration(1):
			mods = append(mods, Modifier{Tok: IDENT, Name: c.Lit, Pos: c.Pos})
		default:
			return mods
		}

		p.next()
	}
}

func (p *parser) parseFor(pos token.Pos) Stmt {
	p.expect(FOR)
	p.expect(LPAREN)

	s := &ForStmt{}

	if p.tok() != SEMICOLON {
		ipos := p.pos()
		if d := p.tryLocalDeclaration(ipos); d != nil {
			s.Init = append(s.Init, d)
		} else {
			for {
				epos := p.pos()
				s.Init = append(s.Init, finish(p, &ExprStmt{X: p.parseExpr()}, epos))

				if !p.got(COMMA) {
					break
				}
			}

			p.expect(SEMICOLON)
		}
	} else {
		p.next()
	}

	if p.tok() != SEMICOLON {
		s.Cond = p.parseExpr()
	}

	p.expect(SEMICOLON)

	for p.tok() != RPAREN && p.tok() != EOF {
		s.Post = append(s.Post, p.parseExpr())

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(RPAREN)
	s.Body = p.parseEmbeddedStmt()

	return finish(p, s, pos)
}

func (p *parser) parseForeach(pos token.Pos) Stmt {
	p.expect(FOREACH)
	p.expect(LPAREN)

	s := &ForeachStmt{Type: p.parseType(false)}
	s.Name = p.ident()
	p.expect(IN)
	s.X = p.parseExpr()
	p.expect(RPAREN)
	s.Body = p.parseEmbeddedStmt()

	return finish(p, s, pos)
}

func (p *parser) parseSwitch(pos token.Pos) Stmt {
	p.expect(SWITCH)

	s := &SwitchStmt{}
	if p.tok() == LPAREN {
		p.next()
		s.Tag = p.parseExpr()
		p.expect(RPAREN)
	} else {
		s.Tag = p.parseExpr()
	}

	p.expect(LBRACE)

	for p.tok() == CASE || p.tok() == DEFAULT {
		spos := p.pos()
		sec := &SwitchSection{}

		for p.tok() == CASE || p.tok() == DEFAULT {
			if p.got(DEFAULT) {
				sec.Labels = append(sec.Labels, SwitchLabel{Default: true})
				p.expect(COLON)

				continue
			}

			p.next()

			label := SwitchLabel{X: p.parsePattern()}
			if p.isWord("when") {
				p.next()

				label.Guard = p.parseExpr()
			}

			sec.Labels = append(sec.Labels, label)
			p.expect(COLON)
		}

		for p.tok() != CASE && p.tok() != DEFAULT && p.tok() != RBRACE && p.tok() != EOF {
			start := p.p
			sec.Stmts = append(sec.Stmts, p.parseStmt())

			if p.p == start {
				p.next()
			}
		}

		s.Sections = append(s.Sections, finish(p, sec, spos))
	}

	p.expect(RBRACE)

	return finish(p, s, pos)
}

// parsePattern parses a case pattern: a constant, `T name`, `T` or `null`.
func (p *parser) parsePattern() Expr {
	pos := p.pos()

	var (
		typ  Expr
		name *Ident
	)

	if p.try(func() bool {
		typ = p.parseType(true)
		if p.tok() != IDENT || p.isWord("when") {
			return false
		}

		name = p.ident()

		return true
	}) {
		return finish(p, &IsExpr{Type: typ, Name: name}, pos)
	}

	return p.parseConditional()
}

func (p *parser) parseTry(pos token.Pos) Stmt {
	p.expect(TRY)

	s := &TryStmt{Body: p.parseBlock()}

	for p.tok() == CATCH {
		cpos := p.pos()
		p.next()

		c := &CatchClause{}
		if p.got(LPAREN) {
			c.Type = p.parseType(false)
			if p.tok() == IDENT {
				c.Name = p.ident()
			}

			p.expect(RPAREN)
		}

		if p.isWord("when") {
			p.next()
			p.expect(LPAREN)
			c.Filter = p.parseExpr()
			p.expect(RPAREN)
		}

		c.Body = p.parseBlock()
		s.Catches = append(s.Catches, finish(p, c, cpos))
	}

	if p.got(FINALLY) {
		s.Finally = p.parseBlock()
	}

	return finish(p, s, pos)
}

func (p *parser) parseUsingStmt(pos token.Pos) Stmt {
	if p.peek(1).Tok != LPAREN {
		// using declaration: `using var x = ...;`
		if s := p.tryLocalDeclaration(pos); s != nil {
			return s
		}
	}

	p.expect(USING)
	p.expect(LPAREN)

	s := &UsingStmt{}

	dpos := p.pos()
	if d := p.tryUsingDecl(dpos); d != nil {
		s.Decl = d
	} else {
		s.X = p.parseExpr()
	}

	p.expect(RPAREN)
	s.Body = p.parseEmbeddedStmt()

	return finish(p, s, pos)
}

func (p *parser) tryUsingDecl(pos token.Pos) *LocalDeclStmt {
	var typ Expr

	if !p.try(func() bool {
		typ = p.parseType(false)

		return p.tok() == IDENT && p.peek(1).Tok == ASSIGN
	}) {
		return nil
	}

	d := &LocalDeclStmt{Type: typ}
	d.Vars = p.parseDeclarators(p.ident())

	return finish(p, d, pos)
}
