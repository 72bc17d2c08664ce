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

package semantic

import (
	"go/constant"
	"go/token"
	"strconv"
	"strings"
	"unicode/utf8"

	"fillmore-labs.com/dpguard/internal/syntax"
)

// literal returns the value and type of a literal token. The value is nil for literals that
// are not constants, like interpolated strings with holes.
func literal(lit *syntax.BasicLit) (constant.Value, Special) {
	switch lit.Tok {
	case syntax.TRUE:
		return constant.MakeBool(true), Bool

	case syntax.FALSE:
		return constant.MakeBool(false), Bool

	case syntax.INT:
		return intLiteral(lit.Value)

	case syntax.REAL:
		return realLiteral(lit.Value)

	case syntax.CHAR:
		s, ok := unquoteChar(lit.Value)
		if !ok {
			return nil, Char
		}

		r, _ := utf8.DecodeRuneInString(s)

		return constant.MakeInt64(int64(r)), Char

	case syntax.STRING:
		s, ok := UnquoteString(lit.Value)
		if !ok {
			return nil, String
		}

		return constant.MakeString(s), String

	case syntax.INTERPOLATED:
		return nil, String
	}

	return nil, NotSpecial
}

func intLiteral(text string) (constant.Value, Special) {
	text = strings.ReplaceAll(text, "_", "")

	lower := strings.ToLower(text)
	end := len(lower)

	for end > 0 && (lower[end-1] == 'u' || lower[end-1] == 'l') {
		end--
	}

	suffix := lower[end:]
	digits := lower[:end]

	var v constant.Value

	switch {
	case strings.HasPrefix(digits, "0b"):
		n, err := strconv.ParseUint(digits[2:], 2, 64)
		if err != nil {
			return nil, Int32
		}

		v = constant.MakeUint64(n)

	default:
		v = constant.MakeFromLiteral(digits, token.INT, 0)
	}

	if v.Kind() != constant.Int {
		return nil, Int32
	}

	var candidates []Special

	switch suffix {
	case "":
		candidates = []Special{Int32, UInt32, Int64, UInt64}
	case "u":
		candidates = []Special{UInt32, UInt64}
	case "l":
		candidates = []Special{Int64, UInt64}
	default:
		candidates = []Special{UInt64}
	}

	for _, s := range candidates {
		if representable(v, s) {
			return v, s
		}
	}

	return nil, candidates[len(candidates)-1]
}

func realLiteral(text string) (constant.Value, Special) {
	text = strings.ReplaceAll(text, "_", "")

	s := Double

	switch text[len(text)-1] {
	case 'f', 'F':
		s = Single
		text = text[:len(text)-1]
	case 'd', 'D':
		text = text[:len(text)-1]
	case 'm', 'M':
		s = Decimal
		text = text[:len(text)-1]
	}

	v := constant.MakeFromLiteral(text, token.FLOAT, 0)
	if v.Kind() == constant.Unknown {
		return nil, s
	}

	return v, s
}

// UnquoteString returns the value of a regular, verbatim or raw string literal.
func UnquoteString(text string) (string, bool) {
	switch {
	case strings.HasPrefix(text, `"""`):
		return unquoteRaw(text)

	case strings.HasPrefix(text, `@"`):
		if len(text) < 3 || !strings.HasSuffix(text, `"`) {
			return "", false
		}

		return strings.ReplaceAll(text[2:len(text)-1], `""`, `"`), true

	case strings.HasPrefix(text, `"`):
		if len(text) < 2 || !strings.HasSuffix(text, `"`) {
			return "", false
		}

		return unescape(text[1 : len(text)-1])
	}

	return "", false
}

func unquoteRaw(text string) (string, bool) {
	n := 0
	for n < len(text) && text[n] == '"' {
		n++
	}

	if len(text) < 2*n {
		return "", false
	}

	body := text[n : len(text)-n]

	if !strings.Contains(body, "\n") {
		return body, true
	}

	// multi-line raw strings strip the first and last line and the closing indentation
	lines := strings.Split(body, "\n")
	if len(lines) < 2 {
		return "", false
	}

	indent := lines[len(lines)-1]
	lines = lines[1 : len(lines)-1]

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(strings.TrimPrefix(line, indent), "\r")
	}

	return strings.Join(lines, "\n"), true
}

func unquoteChar(text string) (string, bool) {
	if len(text) < 3 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return "", false
	}

	s, ok := unescape(text[1 : len(text)-1])
	if !ok || utf8.RuneCountInString(s) != 1 {
		return "", false
	}

	return s, true
}

func unescape(s string) (string, bool) {
	if !strings.Contains(s, `\`) {
		return s, true
	}

	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])

			continue
		}

		i++
		if i >= len(s) {
			return "", false
		}

		switch s[i] {
		case '\'', '"', '\\':
			b.WriteByte(s[i])
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'e':
			b.WriteByte(0x1b)

		case 'u', 'x', 'U':
			width := 4
			if s[i] == 'U' {
				width = 8
			}

			j := i + 1
			for j < len(s) && j < i+1+width && isHex(s[j]) {
				j++
			}

			if j == i+1 || s[i] != 'x' && j != i+1+width {
				return "", false
			}

			r, err := strconv.ParseUint(s[i+1:j], 16, 32)
			if err != nil {
				return "", false
			}

			b.WriteRune(rune(r))

			i = j - 1

		default:
			return "", false
		}
	}

	return b.String(), true
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// ----------------------------------------------------------------------------
// Folding

var binaryTokens = map[syntax.Token]token.Token{
	syntax.ADD:  token.ADD,
	syntax.SUB:  token.SUB,
	syntax.MUL:  token.MUL,
	syntax.QUO:  token.QUO,
	syntax.REM:  token.REM,
	syntax.AND:  token.AND,
	syntax.OR:   token.OR,
	syntax.XOR:  token.XOR,
	syntax.LAND: token.LAND,
	syntax.LOR:  token.LOR,
	syntax.EQL:  token.EQL,
	syntax.NEQ:  token.NEQ,
	syntax.LSS:  token.LSS,
	syntax.GTR:  token.GTR,
	syntax.LEQ:  token.LEQ,
	syntax.GEQ:  token.GEQ,
	syntax.SHL:  token.SHL,
	syntax.SHR:  token.SHR,
}

// foldBinary evaluates a binary operation on constants of the given result type. It returns
// nil when the operation cannot be folded, including division by zero and overflow.
func foldBinary(op syntax.Token, x, y constant.Value, result Special) constant.Value {
	if x == nil || y == nil {
		return nil
	}

	if op == syntax.ADD && (x.Kind() == constant.String || y.Kind() == constant.String) {
		return constant.MakeString(stringValue(x) + stringValue(y))
	}

	tok, ok := binaryTokens[op]
	if !ok || x.Kind() != y.Kind() && !(isNumber(x) && isNumber(y)) {
		return nil
	}

	switch tok {
	case token.EQL, token.NEQ:
		return constant.MakeBool(constant.Compare(x, tok, y))

	case token.LSS, token.GTR, token.LEQ, token.GEQ:
		if !isNumber(x) && x.Kind() != constant.String {
			return nil
		}

		return constant.MakeBool(constant.Compare(x, tok, y))

	case token.LAND, token.LOR:
		if x.Kind() != constant.Bool {
			return nil
		}

		return constant.BinaryOp(x, tok, y)

	case token.SHL, token.SHR:
		s, ok := constant.Uint64Val(y)
		if !ok || x.Kind() != constant.Int {
			return nil
		}

		mask := uint64(31)
		if result == Int64 || result == UInt64 {
			mask = 63
		}

		return truncate(constant.Shift(x, tok, uint(s&mask)), result)

	case token.AND, token.OR, token.XOR:
		if x.Kind() == constant.Bool {
			return foldLogical(tok, constant.BoolVal(x), constant.BoolVal(y))
		}

		if x.Kind() != constant.Int || y.Kind() != constant.Int {
			return nil
		}

	case token.QUO, token.REM:
		if !isNumber(x) || !isNumber(y) || constant.Sign(y) == 0 {
			return nil
		}

		if x.Kind() == constant.Int && y.Kind() == constant.Int {
			if tok == token.QUO {
				tok = token.QUO_ASSIGN // integer division
			}
		} else if tok == token.REM {
			return nil
		}

	default:
		if !isNumber(x) || !isNumber(y) {
			return nil
		}
	}

	return truncate(constant.BinaryOp(x, tok, y), result)
}

func foldLogical(tok token.Token, x, y bool) constant.Value {
	switch tok {
	case token.AND:
		return constant.MakeBool(x && y)
	case token.OR:
		return constant.MakeBool(x || y)
	default:
		return constant.MakeBool(x != y)
	}
}

// foldUnary evaluates a unary operation.
func foldUnary(op syntax.Token, x constant.Value, result Special) constant.Value {
	if x == nil {
		return nil
	}

	switch op {
	case syntax.ADD:
		if isNumber(x) {
			return x
		}

	case syntax.SUB:
		if isNumber(x) {
			return truncate(constant.UnaryOp(token.SUB, x, 0), result)
		}

	case syntax.NOT:
		if x.Kind() == constant.Bool {
			return constant.UnaryOp(token.NOT, x, 0)
		}

	case syntax.TILDE:
		if x.Kind() == constant.Int {
			prec := uint(32)
			if result == Int64 || result == UInt64 {
				prec = 64
			}

			if result == UInt32 || result == UInt64 {
				return constant.UnaryOp(token.XOR, x, prec)
			}

			return constant.UnaryOp(token.XOR, x, 0)
		}
	}

	return nil
}

// convertConstant converts a constant to the integral, real or string type s, as an explicit
// cast would in an unchecked context. It returns nil when the result is not a constant.
func convertConstant(v constant.Value, s Special) constant.Value {
	if v == nil {
		return nil
	}

	switch {
	case s.IsIntegral():
		if v.Kind() == constant.Float {
			v = constant.ToInt(constant.MakeFromLiteral(truncFloat(v), token.INT, 0))
		}

		if v.Kind() != constant.Int {
			return nil
		}

		return wrap(v, s)

	case s == Single || s == Double || s == Decimal:
		if isNumber(v) {
			return constant.ToFloat(v)
		}

	case s == String && v.Kind() == constant.String, s == Bool && v.Kind() == constant.Bool:
		return v
	}

	return nil
}

func truncFloat(v constant.Value) string {
	f, _ := constant.Float64Val(v)

	return strconv.FormatFloat(f, 'f', 0, 64)
}

// truncate discards results that overflow the integral result type.
func truncate(v constant.Value, s Special) constant.Value {
	if v == nil || v.Kind() == constant.Unknown {
		return nil
	}

	if s.IsIntegral() && v.Kind() == constant.Int && !representable(v, s) {
		return nil
	}

	return v
}

// wrap reduces an integer constant modulo the width of the integral type s.
func wrap(v constant.Value, s Special) constant.Value {
	if representable(v, s) {
		return v
	}

	r := integralRange[s]
	span := constant.BinaryOp(constant.BinaryOp(r[1], token.SUB, r[0]), token.ADD, constant.MakeInt64(1))
	off := constant.BinaryOp(constant.BinaryOp(v, token.SUB, r[0]), token.REM, span)

	if constant.Sign(off) < 0 {
		off = constant.BinaryOp(off, token.ADD, span)
	}

	return constant.BinaryOp(off, token.ADD, r[0])
}

func isNumber(v constant.Value) bool {
	k := v.Kind()

	return k == constant.Int || k == constant.Float
}

func stringValue(v constant.Value) string {
	if v.Kind() == constant.String {
		return constant.StringVal(v)
	}

	return v.ExactString()
}
