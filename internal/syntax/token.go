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

// Token is the lexical token kind of C# source.
type Token uint8

//go:generate go tool stringer -type Token -linecomment

// Tokens.
const (
	ILLEGAL Token = iota // ILLEGAL
	EOF                  // EOF

	literalBeg
	IDENT        // IDENT
	INT          // INT
	REAL         // REAL
	CHAR         // CHAR
	STRING       // STRING
	INTERPOLATED // INTERPOLATED
	literalEnd

	operatorBeg
	ADD        // +
	SUB        // -
	MUL        // *
	QUO        // /
	REM        // %
	AND        // &
	OR         // |
	XOR        // ^
	SHL        // <<
	SHR        // >>
	NOT        // !
	TILDE      // ~
	LAND       // &&
	LOR        // ||
	INC        // ++
	DEC        // --
	EQL        // ==
	NEQ        // !=
	LSS        // <
	GTR        // >
	LEQ        // <=
	GEQ        // >=
	ASSIGN     // =
	ADDASSIGN  // +=
	SUBASSIGN  // -=
	MULASSIGN  // *=
	QUOASSIGN  // /=
	REMASSIGN  // %=
	ANDASSIGN  // &=
	ORASSIGN   // |=
	XORASSIGN  // ^=
	SHLASSIGN  // <<=
	SHRASSIGN  // >>=
	COALESCE   // ??
	COALASSIGN // ??=
	QUESTION   // ?
	CONDDOT    // ?.
	ARROW      // =>
	PTRARROW   // ->
	DCOLON     // ::
	LPAREN     // (
	RPAREN     // )
	LBRACK     // [
	RBRACK     // ]
	LBRACE     // {
	RBRACE     // }
	COMMA      // ,
	PERIOD     // .
	SEMICOLON  // ;
	COLON      // :
	RANGE      // ..
	operatorEnd

	keywordBeg
	ABSTRACT   // abstract
	AS         // as
	BASE       // base
	BOOL       // bool
	BREAK      // break
	BYTE       // byte
	CASE       // case
	CATCH      // catch
	CHARKW     // char
	CHECKED    // checked
	CLASS      // class
	CONST      // const
	CONTINUE   // continue
	DECIMAL    // decimal
	DEFAULT    // default
	DELEGATE   // delegate
	DO         // do
	DOUBLE     // double
	ELSE       // else
	ENUM       // enum
	EVENT      // event
	EXPLICIT   // explicit
	EXTERN     // extern
	FALSE      // false
	FINALLY    // finally
	FIXED      // fixed
	FLOAT      // float
	FOR        // for
	FOREACH    // foreach
	GOTO       // goto
	IF         // if
	IMPLICIT   // implicit
	IN         // in
	INTKW      // int
	INTERFACE  // interface
	INTERNAL   // internal
	IS         // is
	LOCK       // lock
	LONG       // long
	NAMESPACE  // namespace
	NEW        // new
	NULL       // null
	OBJECT     // object
	OPERATOR   // operator
	OUT        // out
	OVERRIDE   // override
	PARAMS     // params
	PRIVATE    // private
	PROTECTED  // protected
	PUBLIC     // public
	READONLY   // readonly
	REF        // ref
	RETURN     // return
	SBYTE      // sbyte
	SEALED     // sealed
	SHORT      // short
	SIZEOF     // sizeof
	STACKALLOC // stackalloc
	STATIC     // static
	STRINGKW   // string
	STRUCT     // struct
	SWITCH     // switch
	THIS       // this
	THROW      // throw
	TRUE       // true
	TRY        // try
	TYPEOF     // typeof
	UINT       // uint
	ULONG      // ulong
	UNCHECKED  // unchecked
	UNSAFE     // unsafe
	USHORT     // ushort
	USING      // using
	VIRTUAL    // virtual
	VOID       // void
	VOLATILE   // volatile
	WHILE      // while
	keywordEnd
)

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token, keywordEnd-keywordBeg)
	for t := keywordBeg + 1; t < keywordEnd; t++ {
		keywords[t.String()] = t
	}
}

// Lookup maps an identifier to its keyword token or [IDENT].
func Lookup(ident string) Token {
	if t, ok := keywords[ident]; ok {
		return t
	}

	return IDENT
}

// IsLiteral reports whether the token is an identifier or a literal.
func (t Token) IsLiteral() bool { return literalBeg < t && t < literalEnd }

// IsOperator reports whether the token is an operator or delimiter.
func (t Token) IsOperator() bool { return operatorBeg < t && t < operatorEnd }

// IsKeyword reports whether the token is a reserved keyword.
func (t Token) IsKeyword() bool { return keywordBeg < t && t < keywordEnd }

// IsPredefinedType reports whether the keyword names a built-in type.
func (t Token) IsPredefinedType() bool {
	switch t {
	case BOOL, BYTE, CHARKW, DECIMAL, DOUBLE, FLOAT, INTKW, LONG, OBJECT,
		SBYTE, SHORT, STRINGKW, UINT, ULONG, USHORT, VOID:
		return true
	}

	return false
}

// IsModifier reports whether the keyword is a declaration modifier.
func (t Token) IsModifier() bool {
	switch t {
	case ABSTRACT, EXTERN, INTERNAL, NEW, OVERRIDE, PRIVATE, PROTECTED, PUBLIC,
		READONLY, SEALED, STATIC, UNSAFE, VIRTUAL, VOLATILE, CONST, FIXED, REF:
		return true
	}

	return false
}

// IsAssignOp reports whether the token is a simple or compound assignment.
func (t Token) IsAssignOp() bool {
	switch t {
	case ASSIGN, ADDASSIGN, SUBASSIGN, MULASSIGN, QUOASSIGN, REMASSIGN,
		ANDASSIGN, ORASSIGN, XORASSIGN, SHLASSIGN, SHRASSIGN, COALASSIGN:
		return true
	}

	return false
}

// Item is a lexed token with its position and text.
type Item struct {
	Tok Token
	Pos token.Pos
	End token.Pos
	Lit string

	// Leading holds the comments between the previous token and this one.
	Leading []*Comment
}
