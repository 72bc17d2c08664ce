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
	"strings"
	"unicode"
	"unicode/utf8"
)

// Comment is a single `//`, `///` or `/* */` comment.
type Comment struct {
	Slash token.Pos // position of the leading '/'
	Text  string    // comment text including the comment markers
}

// Pos returns the position of the comment start.
func (c *Comment) Pos() token.Pos { return c.Slash }

// End returns the position immediately after the comment.
func (c *Comment) End() token.Pos { return c.Slash + token.Pos(len(c.Text)) }

// IsDoc reports whether this is an XML documentation comment.
func (c *Comment) IsDoc() bool {
	return strings.HasPrefix(c.Text, "///") && !strings.HasPrefix(c.Text, "////")
}

// Directive is a preprocessor line such as `#pragma warning disable WPF0001`.
type Directive struct {
	Hash token.Pos
	Text string
}

// lexer turns source bytes into a token slice. The parser backtracks over the slice, so the
// whole file is tokenized up front.
type lexer struct {
	file *token.File
	src  []byte

	offset   int
	ch       rune
	rdOffset int

	lineStart bool
	pending   []*Comment

	items      []Item
	comments   []*Comment
	directives []Directive
	errors     scanner.ErrorList
}

func (l *lexer) init(file *token.File, src []byte) {
	l.file = file
	l.src = src
	l.offset, l.rdOffset = 0, 0
	l.lineStart = true
	l.next()

	if l.ch == '\uFEFF' {
		l.next()
	}
}

func (l *lexer) pos(offset int) token.Pos { return l.file.Pos(offset) }

func (l *lexer) error(offset int, msg string) {
	l.errors.Add(l.file.Position(l.pos(offset)), msg)
}

func (l *lexer) next() {
	if l.rdOffset >= len(l.src) {
		l.offset = len(l.src)
		l.ch = -1

		return
	}

	l.offset = l.rdOffset
	r, w := rune(l.src[l.rdOffset]), 1

	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(l.src[l.rdOffset:])
		if r == utf8.RuneError && w == 1 {
			l.error(l.offset, "illegal UTF-8 encoding")
		}
	}

	l.rdOffset += w
	l.ch = r
}

func (l *lexer) peek() byte {
	if l.rdOffset < len(l.src) {
		return l.src[l.rdOffset]
	}

	return 0
}

func (l *lexer) peekAt(n int) byte {
	if i := l.rdOffset + n; i < len(l.src) {
		return l.src[i]
	}

	return 0
}

func (l *lexer) run() {
	for {
		l.skipTrivia()

		if l.ch < 0 {
			l.emit(EOF, l.offset, l.offset, "")

			return
		}

		l.scanToken()
	}
}

func (l *lexer) emit(tok Token, start, end int, lit string) {
	l.items = append(l.items, Item{
		Tok:     tok,
		Pos:     l.pos(start),
		End:     l.pos(end),
		Lit:     lit,
		Leading: l.pending,
	})
	l.pending = nil
	l.lineStart = false
}

func (l *lexer) skipTrivia() {
	for {
		switch l.ch {
		case '\n':
			l.lineStart = true
			l.next()

		case ' ', '\t', '\r', '\f', '\v':
			l.next()

		case '#':
			if !l.lineStart {
				return
			}

			l.scanDirective()

		case '/':
			switch l.peek() {
			case '/':
				l.scanLineComment()
			case '*':
				l.scanBlockComment()
			default:
				return
			}

		default:
			if l.ch > utf8.RuneSelf && unicode.IsSpace(l.ch) {
				l.next()

				continue
			}

			return
		}
	}
}

func (l *lexer) scanDirective() {
	start := l.offset
	for l.ch >= 0 && l.ch != '\n' {
		l.next()
	}

	text := strings.TrimRight(string(l.src[start:l.offset]), "\r")
	l.directives = append(l.directives, Directive{Hash: l.pos(start), Text: text})
}

func (l *lexer) scanLineComment() {
	start := l.offset
	for l.ch >= 0 && l.ch != '\n' {
		l.next()
	}

	text := strings.TrimRight(string(l.src[start:l.offset]), "\r")
	l.addComment(start, text)
}

func (l *lexer) scanBlockComment() {
	start := l.offset
	l.next() // '/'
	l.next() // '*'

	for {
		if l.ch < 0 {
			l.error(start, "comment not terminated")

			break
		}

		if l.ch == '*' && l.peek() == '/' {
			l.next()
			l.next()

			break
		}

		l.next()
	}

	l.addComment(start, string(l.src[start:l.offset]))
}

func (l *lexer) addComment(start int, text string) {
	c := &Comment{Slash: l.pos(start), Text: text}
	l.comments = append(l.comments, c)
	l.pending = append(l.pending, c)
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' ||
		ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || ch >= utf8.RuneSelf && unicode.IsDigit(ch)
}

func (l *lexer) scanToken() {
	start := l.offset

	switch ch := l.ch; {
	case isLetter(ch):
		l.scanIdentifier(start, false)

	case '0' <= ch && ch <= '9', ch == '.' && '0' <= l.peek() && l.peek() <= '9':
		l.scanNumber(start)

	case ch == '@':
		switch l.peek() {
		case '"':
			l.next()
			l.scanVerbatimString(start)
		case '$':
			l.next()
			l.next()
			l.scanInterpolated(start, true)
		default:
			l.next()
			l.scanIdentifier(start, true)
		}

	case ch == '$':
		l.next()

		verbatim := false
		if l.ch == '@' {
			verbatim = true
			l.next()
		}

		for l.ch == '$' {
			l.next()
		}

		l.scanInterpolated(start, verbatim)

	case ch == '"':
		if l.peek() == '"' && l.peekAt(1) == '"' {
			l.scanRawString(start)
		} else {
			l.scanString(start)
		}

	case ch == '\'':
		l.scanChar(start)

	default:
		l.scanOperator(start)
	}
}

func (l *lexer) scanIdentifier(start int, verbatim bool) {
	nameStart := l.offset
	for isLetter(l.ch) || isDigit(l.ch) {
		l.next()
	}

	name := string(l.src[nameStart:l.offset])
	if name == "" {
		l.error(start, "identifier expected after '@'")
		l.emit(ILLEGAL, start, l.offset, "@")

		return
	}

	tok := IDENT
	if !verbatim {
		tok = Lookup(name)
	}

	l.emit(tok, start, l.offset, name)
}

func isHex(ch rune) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func (l *lexer) scanNumber(start int) {
	tok := INT

	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X' || l.peek() == 'b' || l.peek() == 'B') {
		l.next()
		l.next()

		for isHex(l.ch) || l.ch == '_' {
			l.next()
		}
	} else {
		for isDigit(l.ch) || l.ch == '_' {
			l.next()
		}

		if l.ch == '.' && '0' <= l.peek() && l.peek() <= '9' {
			tok = REAL

			l.next()

			for isDigit(l.ch) || l.ch == '_' {
				l.next()
			}
		}

		if l.ch == 'e' || l.ch == 'E' {
			tok = REAL

			l.next()

			if l.ch == '+' || l.ch == '-' {
				l.next()
			}

			for isDigit(l.ch) {
				l.next()
			}
		}
	}

	for {
		switch l.ch {
		case 'u', 'U', 'l', 'L':
			l.next()

			continue

		case 'f', 'F', 'd', 'D', 'm', 'M':
			tok = REAL

			l.next()

			continue
		}

		break
	}

	l.emit(tok, start, l.offset, string(l.src[start:l.offset]))
}

func (l *lexer) scanEscape() {
	l.next() // '\\'

	if l.ch >= 0 && l.ch != '\n' {
		l.next()
	}
}

func (l *lexer) scanString(start int) {
	l.next() // '"'

	for l.ch != '"' {
		if l.ch < 0 || l.ch == '\n' {
			l.error(start, "string literal not terminated")
			l.emit(STRING, start, l.offset, string(l.src[start:l.offset]))

			return
		}

		if l.ch == '\\' {
			l.scanEscape()

			continue
		}

		l.next()
	}

	l.next()
	l.emit(STRING, start, l.offset, string(l.src[start:l.offset]))
}

func (l *lexer) scanVerbatimString(start int) {
	l.next() // '"'

	for {
		if l.ch < 0 {
			l.error(start, "string literal not terminated")

			break
		}

		if l.ch == '"' {
			l.next()

			if l.ch != '"' {
				break
			}
		}

		l.next()
	}

	l.emit(STRING, start, l.offset, string(l.src[start:l.offset]))
}

func (l *lexer) scanRawString(start int) {
	quotes := 0
	for l.ch == '"' {
		quotes++
		l.next()
	}

	for l.ch >= 0 {
		if l.ch != '"' {
			l.next()

			continue
		}

		n := 0
		for l.ch == '"' {
			n++
			l.next()
		}

		if n >= quotes {
			l.emit(STRING, start, l.offset, string(l.src[start:l.offset]))

			return
		}
	}

	l.error(start, "raw string literal not terminated")
	l.emit(STRING, start, l.offset, string(l.src[start:l.offset]))
}

// scanInterpolated scans an interpolated string; holes are kept as raw text.
func (l *lexer) scanInterpolated(start int, verbatim bool) {
	if l.ch != '"' {
		l.error(start, "string expected after '$'")
		l.emit(ILLEGAL, start, l.offset, string(l.src[start:l.offset]))

		return
	}

	l.next()

	depth := 0

	for {
		switch {
		case l.ch < 0:
			l.error(start, "interpolated string not terminated")
			l.emit(INTERPOLATED, start, l.offset, string(l.src[start:l.offset]))

			return

		case l.ch == '{':
			if depth == 0 && l.peek() == '{' {
				l.next()
			} else {
				depth++
			}

		case l.ch == '}' && depth > 0:
			depth--

		case l.ch == '\\' && !verbatim && depth == 0:
			l.scanEscape()

			continue

		case l.ch == '"' && depth > 0:
			l.scanString(l.offset)
			l.items = l.items[:len(l.items)-1]

			continue

		case l.ch == '"':
			l.next()

			if verbatim && l.ch == '"' {
				break
			}

			l.emit(INTERPOLATED, start, l.offset, string(l.src[start:l.offset]))

			return
		}

		l.next()
	}
}

func (l *lexer) scanChar(start int) {
	l.next() // '\''

	for l.ch != '\'' {
		if l.ch < 0 || l.ch == '\n' {
			l.error(start, "character literal not terminated")

			break
		}

		if l.ch == '\\' {
			l.scanEscape()

			continue
		}

		l.next()
	}

	if l.ch == '\'' {
		l.next()
	}

	l.emit(CHAR, start, l.offset, string(l.src[start:l.offset]))
}

// operators maps operator spellings to tokens, longest first per leading byte.
var operators = [...]struct {
	text string
	tok  Token
}{
	{"<<=", SHLASSIGN}, {"??=", COALASSIGN},
	{"<<", SHL}, {"<=", LEQ}, {">=", GEQ}, {"==", EQL}, {"!=", NEQ}, {"&&", LAND}, {"||", LOR},
	{"++", INC}, {"--", DEC}, {"+=", ADDASSIGN}, {"-=", SUBASSIGN}, {"*=", MULASSIGN},
	{"/=", QUOASSIGN}, {"%=", REMASSIGN}, {"&=", ANDASSIGN}, {"|=", ORASSIGN}, {"^=", XORASSIGN},
	{"??", COALESCE}, {"?.", CONDDOT}, {"=>", ARROW}, {"->", PTRARROW}, {"::", DCOLON}, {"..", RANGE},
	{"+", ADD}, {"-", SUB}, {"*", MUL}, {"/", QUO}, {"%", REM}, {"&", AND}, {"|", OR}, {"^", XOR},
	{"!", NOT}, {"~", TILDE}, {"<", LSS}, {">", GTR}, {"=", ASSIGN}, {"?", QUESTION},
	{"(", LPAREN}, {")", RPAREN}, {"[", LBRACK}, {"]", RBRACK}, {"{", LBRACE}, {"}", RBRACE},
	{",", COMMA}, {".", PERIOD}, {";", SEMICOLON}, {":", COLON},
}

func (l *lexer) scanOperator(start int) {
	rest := l.src[start:]

	for _, op := range operators {
		if len(rest) < len(op.text) || string(rest[:len(op.text)]) != op.text {
			continue
		}

		// "?." followed by a digit is a conditional with a real literal.
		if op.tok == CONDDOT && len(rest) > 2 && '0' <= rest[2] && rest[2] <= '9' {
			continue
		}

		for range len(op.text) {
			l.next()
		}

		l.emit(op.tok, start, l.offset, op.text)

		return
	}

	l.error(start, "illegal character "+string(l.ch))
	l.next()
	l.emit(ILLEGAL, start, l.offset, string(l.src[start:l.offset]))
}
