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

import (
	"go/scanner"
	"go/token"
)

// Parse parses the C# source of a single file. The returned file is never nil; syntax errors
// are recorded in [File.Errors] and returned as a [scanner.ErrorList].
func Parse(fset *token.FileSet, filename string, src []byte) (*File, error) {
	tf := fset.AddFile(filename, -1, len(src))
	tf.SetLinesForContent(src)

	var l lexer
	l.init(tf, src)
	l.run()

	p := &parser{file: tf, items: l.items, errors: l.errors}
	f := p.parseFile()
	f.Name = filename
	f.Src = src
	f.Comments = l.comments
	f.Directives = l.directives
	f.setSpan(tf.Pos(0), tf.Pos(len(src)))

	link(f)

	p.errors.Sort()
	f.Errors = p.errors

	return f, p.errors.Err()
}

type parser struct {
	file   *token.File
	items  []Item
	p      int
	errors scanner.ErrorList

	speculating int
	failed      bool
}

type spanner interface {
	setSpan(from, to token.Pos)
}

// finish sets the span of n from pos to the end of the last consumed token.
func finish[N spanner](p *parser, n N, pos token.Pos) N {
	n.setSpan(pos, p.prevEnd())

	return n
}

func (p *parser) cur() Item { return p.items[p.p] }

func (p *parser) tok() Token { return p.items[p.p].Tok }

func (p *parser) pos() token.Pos { return p.items[p.p].Pos }

func (p *parser) peek(n int) Item {
	if i := p.p + n; i < len(p.items) {
		return p.items[i]
	}

	return p.items[len(p.items)-1]
}

func (p *parser) prevEnd() token.Pos {
	if p.p == 0 {
		return p.items[0].Pos
	}

	return p.items[p.p-1].End
}

func (p *parser) next() {
	if p.p < len(p.items)-1 {
		p.p++
	}
}

func (p *parser) got(tok Token) bool {
	if p.tok() == tok {
		p.next()

		return true
	}

	return false
}

// isWord reports whether the current token is the contextual keyword name.
func (p *parser) isWord(name string) bool {
	c := p.cur()

	return c.Tok == IDENT && c.Lit == name
}

func (p *parser) peekWord(n int, name string) bool {
	c := p.peek(n)

	return c.Tok == IDENT && c.Lit == name
}

func (p *parser) errorf(pos token.Pos, msg string) {
	if p.speculating > 0 {
		p.failed = true

		return
	}

	// Report at most one error per position.
	position := p.file.Position(pos)
	if n := len(p.errors); n > 0 && p.errors[n-1].Pos == position {
		return
	}

	p.errors.Add(position, msg)
}

func (p *parser) errorExpected(what string) {
	c := p.cur()

	found := c.Tok.String()
	if c.Tok.IsLiteral() {
		found = c.Lit
	}

	p.errorf(c.Pos, "expected "+what+", found '"+found+"'")
}

func (p *parser) expect(tok Token) token.Pos {
	pos := p.pos()
	if !p.got(tok) {
		p.errorExpected("'" + tok.String() + "'")
	}

	return pos
}

// try runs f speculatively. On failure the parser state is restored.
func (p *parser) try(f func() bool) bool {
	mark, failed := p.p, p.failed
	p.speculating++
	p.failed = false

	ok := f() && !p.failed

	p.speculating--

	if !ok {
		p.p = mark
	}

	p.failed = failed

	return ok
}

// matching returns the index of the token closing the bracket at index i, or -1.
func (p *parser) matching(i int) int {
	open := p.items[i].Tok

	var closing Token

	switch open {
	case LPAREN:
		closing = RPAREN
	case LBRACK:
		closing = RBRACK
	case LBRACE:
		closing = RBRACE
	default:
		return -1
	}

	depth := 0
	for j := i; j < len(p.items); j++ {
		switch p.items[j].Tok {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return j
			}
		case EOF:
			return -1
		}
	}

	return -1
}

// skipBalanced skips a bracketed token sequence starting at the current token.
func (p *parser) skipBalanced() {
	if end := p.matching(p.p); end >= 0 {
		p.p = end
		p.next()

		return
	}

	p.next()
}

// skipTo advances to the first token in stops at bracket depth zero.
func (p *parser) skipTo(stops ...Token) {
	for {
		tok := p.tok()
		if tok == EOF {
			return
		}

		for _, s := range stops {
			if tok == s {
				return
			}
		}

		switch tok {
		case LPAREN, LBRACK, LBRACE:
			p.skipBalanced()
		default:
			p.next()
		}
	}
}

func (p *parser) ident() *Ident {
	c := p.cur()
	if c.Tok != IDENT {
		p.errorExpected("identifier")

		id := &Ident{Missing: true}
		id.setSpan(c.Pos, c.Pos)

		return id
	}

	p.next()

	id := &Ident{Name: c.Lit}
	id.setSpan(c.Pos, c.End)

	return id
}

// leadingDoc returns the trailing run of `///` comments before the current token.
func (p *parser) leadingDoc() *CommentGroup {
	leading := p.cur().Leading

	i := len(leading)
	for i > 0 && leading[i-1].IsDoc() {
		i--
	}

	if i == len(leading) {
		return nil
	}

	return &CommentGroup{List: leading[i:]}
}
