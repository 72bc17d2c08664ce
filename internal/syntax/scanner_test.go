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
	"testing"
)

func lex(t *testing.T, src string) *lexer {
	t.Helper()

	fset := token.NewFileSet()
	tf := fset.AddFile("test.cs", -1, len(src))
	tf.SetLinesForContent([]byte(src))

	l := &lexer{}
	l.init(tf, []byte(src))
	l.run()

	return l
}

func TestLexerTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{"Keywords", "public static readonly int", []Token{PUBLIC, STATIC, READONLY, INTKW, EOF}},
		{"Contextual", "var nameof async", []Token{IDENT, IDENT, IDENT, EOF}},
		{"Verbatim", "@class", []Token{IDENT, EOF}},
		{"Numbers", "1 0x1F 1.5 2e3 1.0f 10UL 0b101", []Token{INT, INT, REAL, REAL, REAL, INT, INT, EOF}},
		{"Strings", `"a\"b" @"c""d" 'x' '\n'`, []Token{STRING, STRING, CHAR, CHAR, EOF}},
		{"Interpolated", `$"a{b + "c"}d" $@"e{f}"`, []Token{INTERPOLATED, INTERPOLATED, EOF}},
		{"Raw", `"""raw "quoted" text"""`, []Token{STRING, EOF}},
		{"Operators", "?. ?? ??= => :: >= << <<= ->", []Token{CONDDOT, COALESCE, COALASSIGN, ARROW, DCOLON, GEQ, SHL, SHLASSIGN, PTRARROW, EOF}},
		{"ShiftRight", "a >> b", []Token{IDENT, GTR, GTR, IDENT, EOF}},
		{"Generic", "List<List<int>>", []Token{IDENT, LSS, IDENT, LSS, INTKW, GTR, GTR, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := lex(t, tt.src)
			if len(l.errors) > 0 {
				t.Fatalf("unexpected errors: %v", l.errors)
			}

			if len(l.items) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(l.items), len(tt.want), l.items)
			}

			for i, it := range l.items {
				if it.Tok != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, it.Tok, tt.want[i])
				}
			}
		})
	}
}

func TestLexerTrivia(t *testing.T) {
	t.Parallel()

	const src = `#pragma warning disable WPF0001
// plain
/// <summary>doc</summary>
/* block */ int x;
`

	l := lex(t, src)

	if len(l.directives) != 1 || l.directives[0].Text != "#pragma warning disable WPF0001" {
		t.Errorf("directives = %v", l.directives)
	}

	if len(l.comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(l.comments))
	}

	first := l.items[0]
	if first.Tok != INTKW || len(first.Leading) != 3 {
		t.Fatalf("first token %v has %d leading comments, want int with 3", first.Tok, len(first.Leading))
	}

	if !first.Leading[1].IsDoc() || first.Leading[0].IsDoc() {
		t.Error("doc comment classification wrong")
	}
}

func TestLexerErrors(t *testing.T) {
	t.Parallel()

	l := lex(t, `"unterminated`)
	if len(l.errors) == 0 {
		t.Error("expected error for unterminated string")
	}

	if last := l.items[len(l.items)-1]; last.Tok != EOF {
		t.Errorf("last token = %v, want EOF", last.Tok)
	}
}
