// Package lexer tokenizes the minimal textual surface syntax used to drive
// the checker/usage packages from literal program text in tests and
// cmd/semcheck (SPEC_FULL.md §1: "a concession to testability, not a claim
// that it is production-grade"). Scanner shape (position/readPosition/ch,
// peekChar, line/column tracking) follows the teacher's own
// internal/lexer/lexer.go (funvibe-funxy), trimmed to the much smaller
// token set spec.md's surface grammar actually needs.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/funxy/internal/token"
)

var keywords = map[string]token.Kind{
	"class": token.CLASS, "interface": token.INTERFACE, "mixin": token.MIXIN,
	"extends": token.EXTENDS, "implements": token.IMPLEMENTS, "on": token.ON,
	"abstract": token.ABSTRACT, "final": token.FINAL, "distinct": token.DISTINCT,
	"type": token.TYPE, "let": token.LET, "var": token.VAR,
	"export": token.EXPORT, "import": token.IMPORT, "new": token.NEW,
	"this": token.THIS, "super": token.SUPER, "return": token.RETURN,
	"throw": token.THROW, "if": token.IF, "else": token.ELSE,
	"null": token.NULL_KW, "true": token.TRUE, "false": token.FALSE,
	"for": token.FOR, "in": token.IN,
}

// Lexer scans a single source file into a token.Token stream.
type Lexer struct {
	file         string
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

func New(file, input string) *Lexer {
	l := &Lexer{file: file, input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{File: l.file, Line: l.line, Column: l.column}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

// NextToken returns the next token, advancing the scanner.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()
	pos := l.pos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Position: pos}
	case isLetter(l.ch):
		return l.readIdentifier(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '"':
		return l.readString(pos)
	case l.ch == '`':
		return l.readTemplate(pos)
	}

	two := func(next rune, kind token.Kind, lex string) (token.Token, bool) {
		if l.peekChar() == next {
			l.readChar()
			l.readChar()
			return token.Token{Kind: kind, Lexeme: lex, Position: pos}, true
		}
		return token.Token{}, false
	}

	switch l.ch {
	case '=':
		if tok, ok := two('=', token.EQ, "=="); ok {
			return tok
		}
		if tok, ok := two('>', token.ARROW, "=>"); ok {
			return tok
		}
		return l.single(token.ASSIGN, pos)
	case '!':
		if tok, ok := two('=', token.NEQ, "!="); ok {
			return tok
		}
		return l.single(token.BANG, pos)
	case '<':
		if tok, ok := two('=', token.LE, "<="); ok {
			return tok
		}
		return l.single(token.LT, pos)
	case '>':
		if tok, ok := two('=', token.GE, ">="); ok {
			return tok
		}
		return l.single(token.GT, pos)
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return token.Token{Kind: token.DOTDOT, Lexeme: "..", Position: pos}
		}
		return l.single(token.DOT, pos)
	case '(':
		return l.single(token.LPAREN, pos)
	case ')':
		return l.single(token.RPAREN, pos)
	case '{':
		return l.single(token.LBRACE, pos)
	case '}':
		return l.single(token.RBRACE, pos)
	case '[':
		return l.single(token.LBRACKET, pos)
	case ']':
		return l.single(token.RBRACKET, pos)
	case ',':
		return l.single(token.COMMA, pos)
	case ';':
		return l.single(token.SEMI, pos)
	case ':':
		return l.single(token.COLON, pos)
	case '#':
		return l.single(token.HASH, pos)
	case '+':
		return l.single(token.PLUS, pos)
	case '-':
		return l.single(token.MINUS, pos)
	case '*':
		return l.single(token.STAR, pos)
	case '/':
		return l.single(token.SLASH, pos)
	case '?':
		return l.single(token.QUESTION, pos)
	case '|':
		return l.single(token.PIPE, pos)
	}

	l.readChar()
	return token.Token{Kind: token.EOF, Lexeme: string(l.ch), Position: pos}
}

func (l *Lexer) single(kind token.Kind, pos token.Position) token.Token {
	lex := string(l.ch)
	l.readChar()
	return token.Token{Kind: kind, Lexeme: lex, Raw: lex, Position: pos}
}

func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.position]
	if kw, ok := keywords[text]; ok {
		return token.Token{Kind: kw, Lexeme: text, Raw: text, Position: pos}
	}
	return token.Token{Kind: token.IDENT, Lexeme: text, Raw: text, Position: pos}
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	text := l.input[start:l.position]
	return token.Token{Kind: token.NUMBER, Lexeme: text, Raw: text, Position: pos}
}

func (l *Lexer) readString(pos token.Position) token.Token {
	l.readChar() // opening quote
	start := l.position
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	text := l.input[start:l.position]
	l.readChar() // closing quote
	return token.Token{Kind: token.STRING, Lexeme: text, Raw: text, Position: pos}
}

// readTemplate scans a backtick template literal verbatim into Raw. ${...}
// interpolations are not split out here or in the parser, which keeps Raw
// as a single quasi with no expressions.
func (l *Lexer) readTemplate(pos token.Position) token.Token {
	l.readChar() // opening backtick
	start := l.position
	for l.ch != '`' && l.ch != 0 {
		l.readChar()
	}
	text := l.input[start:l.position]
	l.readChar() // closing backtick
	return token.Token{Kind: token.TEMPLATE_STRING, Lexeme: text, Raw: text, Position: pos}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
