package lexer_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/token"
)

func TestLexer(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"identifier", "foo", []token.Kind{token.IDENT, token.EOF}},
		{"keywords", "class interface mixin extends implements on",
			[]token.Kind{token.CLASS, token.INTERFACE, token.MIXIN, token.EXTENDS, token.IMPLEMENTS, token.ON, token.EOF}},
		{"number_int", "42", []token.Kind{token.NUMBER, token.EOF}},
		{"number_float", "3.14", []token.Kind{token.NUMBER, token.EOF}},
		{"string", `"hello"`, []token.Kind{token.STRING, token.EOF}},
		{"template", "`x=${x}`", []token.Kind{token.TEMPLATE_STRING, token.EOF}},
		{"two_char_ops", "== != <= >= => ..",
			[]token.Kind{token.EQ, token.NEQ, token.LE, token.GE, token.ARROW, token.DOTDOT, token.EOF}},
		{"single_char_ops", "(){}[],;:#+-*/?|=<>!",
			[]token.Kind{token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET,
				token.COMMA, token.SEMI, token.COLON, token.HASH, token.PLUS, token.MINUS, token.STAR, token.SLASH,
				token.QUESTION, token.PIPE, token.ASSIGN, token.LT, token.GT, token.BANG, token.EOF}},
		{"line_comment", "let x = 1 // trailing comment\nlet y = 2",
			[]token.Kind{token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.EOF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := lexer.New(tc.name, tc.input)
			for i, want := range tc.want {
				got := l.NextToken()
				if got.Kind != want {
					t.Fatalf("token %d: got kind %d, want %d (lexeme %q)", i, got.Kind, want, got.Lexeme)
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	l := lexer.New("f", "a\nb")
	first := l.NextToken()
	if first.Position.Line != 1 {
		t.Fatalf("expected line 1, got %d", first.Position.Line)
	}
	second := l.NextToken()
	if second.Position.Line != 2 {
		t.Fatalf("expected line 2, got %d", second.Position.Line)
	}
}

func TestLexerStringEscapeSkipsClosingQuote(t *testing.T) {
	l := lexer.New("f", `"a\"b"`)
	tok := l.NextToken()
	if tok.Kind != token.STRING {
		t.Fatalf("expected STRING, got kind %d", tok.Kind)
	}
	if tok.Raw != `a\"b` {
		t.Fatalf("expected raw %q, got %q", `a\"b`, tok.Raw)
	}
}
