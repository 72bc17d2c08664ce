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
	"go/token"
	"strings"
)

// Span is anything with a source extent.
type Span interface {
	Pos() token.Pos
	End() token.Pos
}

// Offset returns the byte offset of pos in the file source.
func (f *File) Offset(pos token.Pos) int { return int(pos - f.Pos()) }

// Text returns the source text of s.
func (f *File) Text(s Span) string {
	from, to := f.Offset(s.Pos()), f.Offset(s.End())
	if from < 0 || to > len(f.Src) || from > to {
		return ""
	}

	return string(f.Src[from:to])
}

// LineStart returns the position of the first byte on the line containing pos.
func (f *File) LineStart(pos token.Pos) token.Pos {
	off := f.Offset(pos)
	for off > 0 && f.Src[off-1] != '\n' {
		off--
	}

	return f.Pos() + token.Pos(off)
}

// Indent returns the leading white space of the line containing pos.
func (f *File) Indent(pos token.Pos) string {
	off := f.Offset(f.LineStart(pos))

	end := off
	for end < len(f.Src) && (f.Src[end] == ' ' || f.Src[end] == '\t') {
		end++
	}

	return string(f.Src[off:end])
}

// NextLine returns the position after the newline terminating the line containing pos, or the
// end of the file.
func (f *File) NextLine(pos token.Pos) token.Pos {
	off := f.Offset(pos)
	for off < len(f.Src) && f.Src[off] != '\n' {
		off++
	}

	if off < len(f.Src) {
		off++
	}

	return f.Pos() + token.Pos(off)
}

// FileOf returns the file containing n.
func FileOf(n Node) *File {
	for ; n != nil; n = n.Parent() {
		if f, ok := n.(*File); ok {
			return f
		}
	}

	return nil
}

// Unparen strips enclosing parentheses and null-forgiving operators.
func Unparen(x Expr) Expr {
	for {
		switch e := x.(type) {
		case *ParenExpr:
			x = e.X
		case *PostfixExpr:
			if e.Op != NOT {
				return x
			}

			x = e.X
		default:
			return x
		}
	}
}

// ExprString returns a compact rendering of x, used in messages.
func ExprString(x Expr) string {
	var b strings.Builder

	writeExpr(&b, x)

	return b.String()
}

func writeExpr(b *strings.Builder, x Expr) {
	switch e := x.(type) {
	case nil:
	case *Ident:
		b.WriteString(e.Name)
	case *GenericName:
		writeExpr(b, e.Name)
		writeTypeArgs(b, e.TypeArgs)
	case *MemberAccess:
		writeExpr(b, e.X)

		switch {
		case e.Alias:
			b.WriteString("::")
		case e.Conditional:
			b.WriteString("?.")
		default:
			b.WriteByte('.')
		}

		writeExpr(b, e.Name)

		if e.TypeArgs != nil {
			writeTypeArgs(b, e.TypeArgs)
		}
	case *PredefinedType:
		b.WriteString(e.Tok.String())
	case *ArrayType:
		writeExpr(b, e.Elem)
		b.WriteByte('[')
		b.WriteString(strings.Repeat(",", e.Rank-1))
		b.WriteByte(']')
	case *NullableType:
		writeExpr(b, e.Elem)
		b.WriteByte('?')
	case *BasicLit:
		b.WriteString(e.Value)
	case *ThisExpr:
		b.WriteString("this")
	case *BaseExpr:
		b.WriteString("base")
	case *ParenExpr:
		b.WriteByte('(')
		writeExpr(b, e.X)
		b.WriteByte(')')
	case *InvocationExpr:
		writeExpr(b, e.Fun)
		b.WriteString("(…)")
	case *TypeofExpr:
		b.WriteString("typeof(")
		writeExpr(b, e.Type)
		b.WriteByte(')')
	case *ObjectCreation:
		b.WriteString("new ")
		writeExpr(b, e.Type)
		b.WriteString("(…)")
	case *CastExpr:
		b.WriteByte('(')
		writeExpr(b, e.Type)
		b.WriteByte(')')
		writeExpr(b, e.X)
	case *UnaryExpr:
		b.WriteString(e.Op.String())
		writeExpr(b, e.X)
	case *PostfixExpr:
		writeExpr(b, e.X)
		b.WriteString(e.Op.String())
	case *BinaryExpr:
		writeExpr(b, e.X)
		b.WriteString(" " + e.Op.String() + " ")
		writeExpr(b, e.Y)
	default:
		b.WriteString("…")
	}
}

func writeTypeArgs(b *strings.Builder, args []Expr) {
	b.WriteByte('<')

	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}

		writeExpr(b, a)
	}

	b.WriteByte('>')
}
