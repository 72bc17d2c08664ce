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

// ----------------------------------------------------------------------------
// Types

// parseType parses a type. In pattern context a trailing '?' is only taken as nullable when
// it cannot start a conditional expression.
func (p *parser) parseType(pattern bool) Expr {
	pos := p.pos()

	var t Expr

	switch c := p.cur(); {
	case c.Tok.IsPredefinedType():
		p.next()

		t = finish(p, &PredefinedType{Tok: c.Tok}, pos)

	case c.Tok == IDENT:
		t = p.parseTypeName()

	case c.Tok == LPAREN:
		// tuple types are not modeled
		p.skipBalanced()

		t = finish(p, &BadExpr{}, pos)

	default:
		p.errorExpected("type")

		return finish(p, &BadExpr{}, pos)
	}

	for {
		switch p.tok() {
		case QUESTION:
			if pattern && !p.nullableInPattern() {
				return t
			}

			p.next()

			t = finish(p, &NullableType{Elem: t}, pos)

		case LBRACK:
			rank, ok := p.rankSpecifier()
			if !ok {
				return t
			}

			t = finish(p, &ArrayType{Elem: t, Rank: rank}, pos)

		case MUL:
			// pointer types are not modeled
			if !p.pointerSuffix() {
				return t
			}

			p.next()

			t = finish(p, &BadExpr{}, pos)

		default:
			return t
		}
	}
}

func (p *parser) nullableInPattern() bool {
	switch p.peek(1).Tok {
	case RPAREN, COMMA, SEMICOLON, RBRACK, RBRACE, EOF, COALESCE, LAND, LOR, EQL, NEQ, COLON:
		return true
	}

	return false
}

func (p *parser) pointerSuffix() bool {
	switch p.peek(1).Tok {
	case IDENT, RPAREN, COMMA, GTR, LBRACK:
		return true
	}

	return false
}

// rankSpecifier consumes `[]` or `[,,]` and returns the rank.
func (p *parser) rankSpecifier() (int, bool) {
	i := p.p + 1
	rank := 1

	for p.items[i].Tok == COMMA {
		rank++
		i++
	}

	if p.items[i].Tok != RBRACK {
		return 0, false
	}

	p.p = i
	p.next()

	return rank, true
}

// parseTypeName parses a possibly qualified and generic type name.
func (p *parser) parseTypeName() Expr {
	pos := p.pos()

	var t Expr = p.ident()

	if p.tok() == DCOLON {
		p.next()

		ma := &MemberAccess{X: t, Name: p.ident(), Alias: true}
		t = finish(p, ma, pos)
	}

	if p.tok() == LSS {
		if id, ok := t.(*Ident); ok {
			t = finish(p, &GenericName{Name: id, TypeArgs: p.parseTypeArgs()}, pos)
		} else if ma, ok := t.(*MemberAccess); ok {
			ma.TypeArgs = p.parseTypeArgs()
			ma.setSpan(pos, p.prevEnd())
		}
	}

	for p.tok() == PERIOD && p.peek(1).Tok == IDENT {
		p.next()

		ma := &MemberAccess{X: t, Name: p.ident()}
		if p.tok() == LSS {
			ma.TypeArgs = p.parseTypeArgs()
		}

		t = finish(p, ma, pos)
	}

	return t
}

func (p *parser) parseTypeArgs() []Expr {
	p.expect(LSS)

	var args []Expr

	for p.tok() != GTR && p.tok() != EOF {
		if p.tok() == COMMA {
			// unbound generic `Dictionary<,>`
			args = append(args, nil)
			p.next()

			continue
		}

		args = append(args, p.parseType(false))

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(GTR)

	return args
}

// tryTypeArgs speculatively parses a type argument list in expression context.
func (p *parser) tryTypeArgs() ([]Expr, bool) {
	var args []Expr

	ok := p.try(func() bool {
		args = p.parseTypeArgs()

		switch p.tok() {
		case LPAREN, RPAREN, RBRACK, RBRACE, COLON, SEMICOLON, COMMA, PERIOD, QUESTION,
			EQL, NEQ, OR, XOR, LAND, LOR, CONDDOT, EOF, GTR, ARROW:
			return true
		}

		return false
	})

	return args, ok
}

// ----------------------------------------------------------------------------
// Expressions

func (p *parser) parseExpr() Expr {
	return p.parseAssignment()
}

func (p *parser) assignOp() (Token, int) {
	c := p.cur()
	if c.Tok.IsAssignOp() {
		return c.Tok, 1
	}

	// `>>=` is lexed as '>' '>='.
	if c.Tok == GTR {
		if n := p.peek(1); n.Tok == GEQ && n.Pos == c.End {
			return SHRASSIGN, 2
		}
	}

	return ILLEGAL, 0
}

func (p *parser) parseAssignment() Expr {
	if p.isLambdaStart() {
		return p.parseLambda()
	}

	pos := p.pos()
	x := p.parseConditional()

	if op, n := p.assignOp(); n > 0 {
		for range n {
			p.next()
		}

		var rhs Expr
		if p.tok() == LBRACE && op == ASSIGN {
			rhs = p.parseInitializer()
		} else {
			rhs = p.parseAssignment()
		}

		return finish(p, &AssignExpr{Op: op, Lhs: x, Rhs: rhs}, pos)
	}

	return x
}

func (p *parser) parseConditional() Expr {
	pos := p.pos()
	x := p.parseCoalesce()

	if p.tok() != QUESTION {
		return x
	}

	p.next()

	c := &ConditionalExpr{Cond: x, Then: p.parseExpr()}
	p.expect(COLON)
	c.Else = p.parseExpr()

	return finish(p, c, pos)
}

func (p *parser) parseCoalesce() Expr {
	pos := p.pos()
	x := p.parseBinary(1)

	if !p.got(COALESCE) {
		return x
	}

	var y Expr
	if p.tok() == THROW {
		y = p.parseUnary()
	} else {
		y = p.parseCoalesce()
	}

	return finish(p, &BinaryExpr{Op: COALESCE, X: x, Y: y}, pos)
}

// binaryOp returns the operator at the current token, its precedence and token count.
func (p *parser) binaryOp() (Token, int, int) {
	c := p.cur()

	switch c.Tok {
	case LOR:
		return c.Tok, 1, 1
	case LAND:
		return c.Tok, 2, 1
	case OR:
		return c.Tok, 3, 1
	case XOR:
		return c.Tok, 4, 1
	case AND:
		return c.Tok, 5, 1
	case EQL, NEQ:
		return c.Tok, 6, 1
	case LSS, LEQ, GEQ, IS, AS:
		return c.Tok, 7, 1
	case GTR:
		if n := p.peek(1); n.Pos == c.End {
			switch n.Tok {
			case GTR:
				if nn := p.peek(2); nn.Tok == GTR || nn.Pos == n.End && nn.Tok == ASSIGN {
					return ILLEGAL, 0, 0
				}

				return SHR, 8, 2
			case GEQ:
				return ILLEGAL, 0, 0
			}
		}

		return c.Tok, 7, 1
	case SHL:
		return c.Tok, 8, 1
	case ADD, SUB:
		return c.Tok, 9, 1
	case MUL, QUO, REM:
		return c.Tok, 10, 1
	}

	return ILLEGAL, 0, 0
}

func (p *parser) parseBinary(prec int) Expr {
	pos := p.pos()
	x := p.parseUnary()

	for {
		op, oprec, n := p.binaryOp()
		if oprec < prec {
			return x
		}

		for range n {
			p.next()
		}

		switch op {
		case IS:
			x = p.parseIsRest(x, pos)

		case AS:
			x = finish(p, &AsExpr{X: x, Type: p.parseType(true)}, pos)

		default:
			y := p.parseBinary(oprec + 1)
			x = finish(p, &BinaryExpr{Op: op, X: x, Y: y}, pos)
		}
	}
}

func (p *parser) parseIsRest(x Expr, pos token.Pos) Expr {
	is := &IsExpr{X: x}

	if p.isWord("not") {
		is.Not = true

		p.next()
	}

	switch tok := p.tok(); {
	case tok == NULL || tok.IsLiteral() && tok != IDENT || tok == TRUE || tok == FALSE || tok == SUB:
		is.Pattern = p.parseUnary()

	case tok == LBRACE:
		// property patterns are not modeled
		p.skipBalanced()

		is.Pattern = finish(p, &BadExpr{}, p.prevEnd())

	default:
		is.Type = p.parseType(true)

		if p.tok() == IDENT && !p.isWord("and") && !p.isWord("or") && !p.isWord("when") {
			is.Name = p.ident()
		}
	}

	return finish(p, is, pos)
}

func (p *parser) parseUnary() Expr {
	pos := p.pos()

	switch c := p.cur(); c.Tok {
	case ADD, SUB, NOT, TILDE, INC, DEC, AND, MUL:
		p.next()

		x := p.parseUnary()

		return finish(p, &UnaryExpr{Op: c.Tok, X: x}, pos)

	case THROW:
		p.next()

		return finish(p, &ThrowExpr{X: p.parseExpr()}, pos)

	case LPAREN:
		if x, ok := p.tryCast(pos); ok {
			return x
		}

	case IDENT:
		if c.Lit == "await" && p.startsOperand(1) {
			p.next()

			return finish(p, &AwaitExpr{X: p.parseUnary()}, pos)
		}
	}

	return p.parsePostfix(p.parsePrimary())
}

// startsOperand reports whether the token at offset n can begin a unary expression.
func (p *parser) startsOperand(n int) bool {
	switch c := p.peek(n); c.Tok {
	case IDENT, INT, REAL, CHAR, STRING, INTERPOLATED, TRUE, FALSE, NULL, LPAREN, THIS, BASE,
		NEW, TYPEOF, DEFAULT, NOT, TILDE, CHECKED, UNCHECKED, SIZEOF, DELEGATE:
		return true
	default:
		return c.Tok.IsPredefinedType()
	}
}

func (p *parser) tryCast(pos token.Pos) (Expr, bool) {
	var typ Expr

	if !p.try(func() bool {
		p.next()

		typ = p.parseType(false)
		if !p.got(RPAREN) {
			return false
		}

		switch typ.(type) {
		case *PredefinedType, *ArrayType, *NullableType, *GenericName:
			return p.startsOperand(0) || p.tok() == ADD || p.tok() == SUB || p.tok() == INC || p.tok() == DEC
		case *Ident, *MemberAccess:
			return p.startsOperand(0)
		}

		return false
	}) {
		return nil, false
	}

	x := p.parseUnary()

	return finish(p, &CastExpr{Type: typ, X: x}, pos), true
}

func (p *parser) parsePrimary() Expr {
	pos := p.pos()

	switch c := p.cur(); c.Tok {
	case INT, REAL, CHAR, STRING, INTERPOLATED, TRUE, FALSE, NULL:
		p.next()

		return finish(p, &BasicLit{Tok: c.Tok, Value: c.Lit}, pos)

	case THIS:
		p.next()

		return finish(p, &ThisExpr{}, pos)

	case BASE:
		p.next()

		return finish(p, &BaseExpr{}, pos)

	case IDENT:
		id := p.ident()

		if p.tok() == DCOLON {
			p.next()

			return finish(p, &MemberAccess{X: id, Name: p.ident(), Alias: true}, pos)
		}

		if p.tok() == LSS {
			if args, ok := p.tryTypeArgs(); ok {
				return finish(p, &GenericName{Name: id, TypeArgs: args}, pos)
			}
		}

		return id

	case LPAREN:
		p.next()

		x := p.parseExpr()
		if p.tok() == COMMA {
			// tuple literals are not modeled
			p.skipTo(RPAREN)
			p.next()

			return finish(p, &BadExpr{}, pos)
		}

		p.expect(RPAREN)

		return finish(p, &ParenExpr{X: x}, pos)

	case NEW:
		return p.parseNew()

	case TYPEOF:
		p.next()
		p.expect(LPAREN)

		t := &TypeofExpr{Type: p.parseType(false)}
		p.expect(RPAREN)

		return finish(p, t, pos)

	case DEFAULT:
		p.next()

		d := &DefaultExpr{}
		if p.got(LPAREN) {
			d.Type = p.parseType(false)
			p.expect(RPAREN)
		}

		return finish(p, d, pos)

	case CHECKED, UNCHECKED:
		p.next()
		p.expect(LPAREN)

		x := p.parseExpr()
		p.expect(RPAREN)

		return finish(p, &ParenExpr{X: x}, pos)

	case SIZEOF, STACKALLOC:
		p.next()
		p.skipTo(SEMICOLON, RPAREN, COMMA)

		return finish(p, &BadExpr{}, pos)

	case LBRACK:
		// collection expressions are not modeled
		p.skipBalanced()

		return finish(p, &BadExpr{}, pos)
	}

	if c := p.cur(); c.Tok.IsPredefinedType() {
		p.next()

		return finish(p, &PredefinedType{Tok: c.Tok}, pos)
	}

	p.errorExpected("expression")

	return finish(p, &BadExpr{}, pos)
}

func (p *parser) parsePostfix(x Expr) Expr {
	pos := x.Pos()

	for {
		switch c := p.cur(); c.Tok {
		case PERIOD, CONDDOT:
			p.next()

			ma := &MemberAccess{X: x, Name: p.ident(), Conditional: c.Tok == CONDDOT}
			if p.tok() == LSS {
				if args, ok := p.tryTypeArgs(); ok {
					ma.TypeArgs = args
				}
			}

			x = finish(p, ma, pos)

		case LPAREN:
			inv := &InvocationExpr{Fun: x, Lparen: c.Pos}
			inv.Args = p.parseArguments(RPAREN, false)
			x = finish(p, inv, pos)

		case LBRACK:
			ea := &ElementAccess{X: x}
			ea.Args = p.parseArguments(RBRACK, false)
			x = finish(p, ea, pos)

		case QUESTION:
			if n := p.peek(1); n.Tok != LBRACK || n.Pos != c.End {
				return x
			}

			p.next()

			ea := &ElementAccess{X: x, Conditional: true}
			ea.Args = p.parseArguments(RBRACK, false)
			x = finish(p, ea, pos)

		case INC, DEC:
			p.next()

			x = finish(p, &PostfixExpr{Op: c.Tok, X: x}, pos)

		case NOT:
			switch p.peek(1).Tok {
			case PERIOD, CONDDOT, RPAREN, SEMICOLON, COMMA, RBRACK, RBRACE, LBRACK, COALESCE, COLON:
			default:
				return x
			}

			p.next()

			x = finish(p, &PostfixExpr{Op: NOT, X: x}, pos)

		case SWITCH:
			// switch expressions are not modeled
			p.next()
			p.skipBalanced()

			x = finish(p, &BadExpr{}, pos)

		case PTRARROW:
			p.next()
			p.ident()

			x = finish(p, &BadExpr{}, pos)

		default:
			if p.isWord("with") && p.peek(1).Tok == LBRACE {
				p.next()
				p.skipBalanced()

				x = finish(p, &BadExpr{}, pos)

				continue
			}

			return x
		}
	}
}

// parseArguments parses a parenthesized or bracketed argument list. In attribute context
// `Name = value` denotes a named property argument.
func (p *parser) parseArguments(closing Token, attribute bool) []*Argument {
	open := LPAREN
	if closing == RBRACK {
		open = LBRACK
	}

	p.expect(open)

	var args []*Argument

	for p.tok() != closing && p.tok() != EOF {
		pos := p.pos()
		a := &Argument{}

		if p.tok() == IDENT && (p.peek(1).Tok == COLON || attribute && p.peek(1).Tok == ASSIGN) {
			a.Name = p.ident()
			p.next()
		}

		switch p.tok() {
		case REF, OUT, IN:
			a.RefKind = p.tok()
			p.next()
		}

		if a.RefKind == OUT && p.outDeclaration() {
			// out variable declarations are not modeled
			p.parseType(false)
			p.ident()

			a.Value = finish(p, &BadExpr{}, pos)
		} else {
			a.Value = p.parseExpr()
		}

		args = append(args, finish(p, a, pos))

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(closing)

	return args
}

func (p *parser) outDeclaration() bool {
	mark := p.p
	defer func() { p.p = mark }()

	return p.try(func() bool {
		p.parseType(false)

		return p.tok() == IDENT && (p.peek(1).Tok == RPAREN || p.peek(1).Tok == COMMA)
	})
}

func (p *parser) parseNew() Expr {
	pos := p.expect(NEW)

	switch p.tok() {
	case LPAREN:
		// target-typed
		oc := &ObjectCreation{Args: p.parseArguments(RPAREN, false)}
		if p.tok() == LBRACE {
			oc.Init = p.parseInitializer()
		}

		return finish(p, oc, pos)

	case LBRACE:
		// anonymous type
		return finish(p, &ObjectCreation{Init: p.parseInitializer()}, pos)

	case LBRACK:
		ac := &ArrayCreation{}
		if rank, ok := p.rankSpecifier(); ok {
			ac.Rank = rank
		} else {
			p.skipBalanced()
		}

		if p.tok() == LBRACE {
			ac.Init = p.parseInitializer()
		}

		return finish(p, ac, pos)
	}

	tpos := p.pos()

	var typ Expr

	switch c := p.cur(); {
	case c.Tok.IsPredefinedType():
		p.next()

		typ = finish(p, &PredefinedType{Tok: c.Tok}, tpos)

	default:
		typ = p.parseTypeName()
	}

	if p.tok() == QUESTION {
		p.next()

		typ = finish(p, &NullableType{Elem: typ}, tpos)
	}

	if p.tok() == LBRACK {
		ac := &ArrayCreation{Elem: typ}

		if rank, ok := p.rankSpecifier(); ok {
			ac.Rank = rank
		} else {
			p.next()

			for p.tok() != RBRACK && p.tok() != EOF {
				ac.Sizes = append(ac.Sizes, p.parseExpr())

				if !p.got(COMMA) {
					break
				}
			}

			p.expect(RBRACK)

			ac.Rank = max(len(ac.Sizes), 1)
		}

		for p.tok() == LBRACK {
			if _, ok := p.rankSpecifier(); !ok {
				break
			}
		}

		if p.tok() == LBRACE {
			ac.Init = p.parseInitializer()
		}

		return finish(p, ac, pos)
	}

	oc := &ObjectCreation{Type: typ}
	if p.tok() == LPAREN {
		oc.Args = p.parseArguments(RPAREN, false)
	}

	if p.tok() == LBRACE {
		oc.Init = p.parseInitializer()
	}

	return finish(p, oc, pos)
}

func (p *parser) parseInitializer() *InitializerExpr {
	pos := p.expect(LBRACE)

	init := &InitializerExpr{}

	for p.tok() != RBRACE && p.tok() != EOF {
		switch p.tok() {
		case LBRACE:
			init.Elems = append(init.Elems, p.parseInitializer())

		case LBRACK:
			// index initializers are not modeled
			epos := p.pos()
			p.skipTo(COMMA, RBRACE)
			init.Elems = append(init.Elems, finish(p, &BadExpr{}, epos))

		default:
			init.Elems = append(init.Elems, p.parseExpr())
		}

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(RBRACE)

	return finish(p, init, pos)
}

// isLambdaStart reports whether a lambda or anonymous method starts at the current token.
func (p *parser) isLambdaStart() bool {
	i := 0

	for {
		c := p.peek(i)
		if c.Tok == STATIC || c.Tok == IDENT && c.Lit == "async" && p.peek(i+1).Tok != ARROW && p.peek(i+1).Tok != PERIOD {
			i++

			continue
		}

		break
	}

	switch c := p.peek(i); c.Tok {
	case IDENT:
		return p.peek(i+1).Tok == ARROW

	case LPAREN:
		end := p.matching(p.p + i)

		return end >= 0 && p.items[end+1].Tok == ARROW

	case DELEGATE:
		n := p.peek(i + 1).Tok

		return n == LPAREN || n == LBRACE
	}

	return false
}

func (p *parser) parseLambda() Expr {
	pos := p.pos()
	l := &LambdaExpr{}

	for {
		if p.got(STATIC) {
			l.Static = true

			continue
		}

		if p.isWord("async") && p.peek(1).Tok != ARROW {
			l.Async = true

			p.next()

			continue
		}

		break
	}

	switch p.tok() {
	case DELEGATE:
		p.next()

		l.Delegate = true
		if p.tok() == LPAREN {
			l.Params = p.parseParams(LPAREN, RPAREN)
		}

		l.Body = p.parseBlock()

		return finish(p, l, pos)

	case IDENT:
		ppos := p.pos()
		prm := &Param{Name: p.ident()}
		l.Params = []*Param{finish(p, prm, ppos)}

	default:
		l.Params = p.parseLambdaParams()
	}

	p.expect(ARROW)

	if p.tok() == LBRACE {
		l.Body = p.parseBlock()
	} else {
		l.Body = p.parseExpr()
	}

	return finish(p, l, pos)
}

func (p *parser) parseLambdaParams() []*Param {
	p.expect(LPAREN)

	var list []*Param

	for p.tok() != RPAREN && p.tok() != EOF {
		pos := p.pos()
		prm := &Param{Attrs: p.parseAttributeLists()}

		for p.tok() == REF || p.tok() == OUT || p.tok() == IN || p.tok() == PARAMS {
			c := p.cur()
			prm.Mods = append(prm.Mods, Modifier{Tok: c.Tok, Name: c.Tok.String(), Pos: c.Pos})
			p.next()
		}

		if p.tok() == IDENT && (p.peek(1).Tok == COMMA || p.peek(1).Tok == RPAREN) {
			prm.Name = p.ident()
		} else {
			prm.Type = p.parseType(false)
			prm.Name = p.ident()
		}

		list = append(list, finish(p, prm, pos))

		if !p.got(COMMA) {
			break
		}
	}

	p.expect(RPAREN)

	return list
}
