// Package parser builds an internal/ast tree from the minimal textual
// surface syntax internal/lexer tokenizes (SPEC_FULL.md §1's testability
// concession). Structured as a Pratt parser over token.Kind, the way the
// teacher's internal/parser/expressions_*.go files dispatch by registered
// prefix/infix handlers per token kind, generalized here to spec.md's
// class-based grammar instead of funxy's HM-typed one.
package parser

import (
	"fmt"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/token"
)

// precedence levels, lowest to highest.
const (
	precLowest = iota
	precAssign
	precRange
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precCall
)

var precedences = map[token.Kind]int{
	token.ASSIGN: precAssign,
	token.DOTDOT: precRange,
	token.EQ:     precEquality,
	token.NEQ:    precEquality,
	token.LT:     precComparison,
	token.GT:     precComparison,
	token.LE:     precComparison,
	token.GE:     precComparison,
	token.PLUS:   precAdditive,
	token.MINUS:  precAdditive,
	token.STAR:   precMultiplicative,
	token.SLASH:  precMultiplicative,
	token.LPAREN: precCall,
	token.DOT:    precCall,
	token.LBRACKET: precCall,
}

// Parser is a single-file recursive-descent parser with one token of
// lookahead, plus bounded clone-the-scanner lookahead to disambiguate a
// parenthesized grouping expression from an arrow-function parameter list.
type Parser struct {
	file string
	lex  *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []error
}

// New constructs a parser over a single source file's text.
func New(file, input string) *Parser {
	p := &Parser{file: file, lex: lexer.New(file, input)}
	p.next()
	p.next()
	return p
}

func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Errorf("%s: %s", p.cur.Position.String(), fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(k token.Kind) token.Token {
	tok := p.cur
	if tok.Kind != k {
		p.errorf("expected token kind %d, got %q", k, tok.Lexeme)
	}
	p.next()
	return tok
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

// ParseProgram parses an entire module's top-level statement list.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	for !p.at(token.EOF) {
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) parseTopLevelStatement() ast.Statement {
	exported := false
	if p.at(token.EXPORT) {
		exported = true
		p.next()
	}
	switch p.cur.Kind {
	case token.IMPORT:
		return p.parseImport()
	case token.CLASS:
		return p.parseClass(exported, false, false, false)
	case token.ABSTRACT:
		p.next()
		p.expect(token.CLASS)
		return p.parseClass(exported, true, false, false)
	case token.FINAL:
		p.next()
		p.expect(token.CLASS)
		return p.parseClass(exported, false, true, false)
	case token.INTERFACE:
		return p.parseInterface(exported)
	case token.MIXIN:
		return p.parseMixin(exported)
	case token.TYPE:
		return p.parseTypeAlias(exported, false)
	case token.DISTINCT:
		p.next()
		p.expect(token.TYPE)
		return p.parseTypeAlias(exported, true)
	case token.LET, token.VAR:
		return p.parseVariableDeclaration(exported)
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseImport() ast.Statement {
	tok := p.cur
	p.next()
	path := p.expect(token.STRING).Lexeme
	var names []string
	if p.at(token.LPAREN) {
		p.next()
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			names = append(names, p.expect(token.IDENT).Lexeme)
			if p.at(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RPAREN)
	}
	return &ast.ImportStatement{Token: tok, Path: path, Names: names}
}

func (p *Parser) parseTypeParams() []*ast.TypeParamDecl {
	if !p.at(token.LT) {
		return nil
	}
	p.next()
	var out []*ast.TypeParamDecl
	for !p.at(token.GT) && !p.at(token.EOF) {
		tok := p.cur
		name := p.expect(token.IDENT).Lexeme
		decl := &ast.TypeParamDecl{Token: tok, Name: name}
		if p.at(token.ASSIGN) {
			p.next()
			decl.Default = p.parseTypeExpr()
		}
		out = append(out, decl)
		if p.at(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.GT)
	return out
}

func (p *Parser) parseClass(exported, isAbstract, isFinal, isExtension bool) ast.Statement {
	tok := p.cur
	p.expect(token.CLASS)
	name := p.expect(token.IDENT).Lexeme
	d := &ast.ClassDeclaration{Token: tok, Name: name, IsAbstract: isAbstract, IsFinal: isFinal, IsExtension: isExtension, IsExported: exported}
	d.TypeParameters = p.parseTypeParams()
	if p.at(token.ON) {
		p.next()
		d.OnType = p.parseTypeExpr()
		d.IsExtension = true
	}
	if p.at(token.EXTENDS) {
		p.next()
		if nt, ok := p.parseTypeExpr().(*ast.NamedTypeExpr); ok {
			d.SuperClass = nt
		}
	}
	if p.at(token.IMPLEMENTS) {
		p.next()
		for {
			if nt, ok := p.parseTypeExpr().(*ast.NamedTypeExpr); ok {
				d.Implements = append(d.Implements, nt)
			}
			if !p.at(token.COMMA) {
				break
			}
			p.next()
		}
	}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.parseClassMember(d)
	}
	p.expect(token.RBRACE)
	return d
}

func (p *Parser) parseClassMember(d *ast.ClassDeclaration) {
	isFinal, isAbstract, isStatic := false, false, false
	for {
		switch p.cur.Kind {
		case token.FINAL:
			isFinal = true
			p.next()
			continue
		case token.ABSTRACT:
			isAbstract = true
			p.next()
			continue
		}
		break
	}
	if p.cur.Lexeme == "static" {
		isStatic = true
		p.next()
	}
	if p.cur.Kind == token.NEW {
		tok := p.cur
		p.next()
		d.Constructor = p.parseMethodTail(tok, "#new", isFinal, isAbstract, isStatic)
		return
	}
	name := p.expect(token.IDENT).Lexeme
	if p.at(token.LPAREN) || p.at(token.LT) {
		d.Methods = append(d.Methods, p.parseMethodTail(p.cur, name, isFinal, isAbstract, isStatic))
		return
	}
	p.expect(token.COLON)
	typeExpr := p.parseTypeExpr()
	p.consumeSemi()
	d.Fields = append(d.Fields, &ast.FieldDecl{Name: name, TypeAnnotation: typeExpr})
}

// parseMethodTail parses a method/constructor's type params, parameter
// list, optional return type, and body, after the name has been consumed.
func (p *Parser) parseMethodTail(tok token.Token, name string, isFinal, isAbstract, isStatic bool) *ast.MethodDecl {
	m := &ast.MethodDecl{Token: tok, Name: name, IsFinal: isFinal, IsAbstract: isAbstract, IsStatic: isStatic}
	m.TypeParameters = p.parseTypeParams()
	m.Parameters = p.parseParamList()
	if p.at(token.COLON) {
		p.next()
		m.ReturnType = p.parseTypeExpr()
	}
	if p.at(token.ARROW) {
		p.next()
		m.IsExpressionBody = true
		m.ExpressionBody = p.parseExpression(precLowest)
		p.consumeSemi()
		return m
	}
	if isAbstract {
		p.consumeSemi()
		return m
	}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		m.Body = append(m.Body, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return m
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN)
	var params []*ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		name := p.expect(token.IDENT).Lexeme
		param := &ast.Param{Name: name}
		if p.at(token.COLON) {
			p.next()
			param.TypeAnnotation = p.parseTypeExpr()
		}
		if p.at(token.ASSIGN) {
			p.next()
			param.DefaultValue = p.parseExpression(precAssign)
		}
		params = append(params, param)
		if p.at(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseInterface(exported bool) ast.Statement {
	tok := p.cur
	p.expect(token.INTERFACE)
	name := p.expect(token.IDENT).Lexeme
	d := &ast.InterfaceDeclaration{Token: tok, Name: name, IsExported: exported}
	d.TypeParameters = p.parseTypeParams()
	if p.at(token.EXTENDS) {
		p.next()
		for {
			if nt, ok := p.parseTypeExpr().(*ast.NamedTypeExpr); ok {
				d.Extends = append(d.Extends, nt)
			}
			if !p.at(token.COMMA) {
				break
			}
			p.next()
		}
	}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		sigTok := p.cur
		name := p.expect(token.IDENT).Lexeme
		if p.at(token.LPAREN) || p.at(token.LT) {
			sig := &ast.MethodSignature{Token: sigTok, Name: name}
			sig.TypeParameters = p.parseTypeParams()
			sig.Parameters = p.parseParamList()
			if p.at(token.COLON) {
				p.next()
				sig.ReturnType = p.parseTypeExpr()
			}
			p.consumeSemi()
			d.Methods = append(d.Methods, sig)
			continue
		}
		p.expect(token.COLON)
		typeExpr := p.parseTypeExpr()
		p.consumeSemi()
		d.Fields = append(d.Fields, &ast.FieldDecl{Name: name, TypeAnnotation: typeExpr})
	}
	p.expect(token.RBRACE)
	return d
}

func (p *Parser) parseMixin(exported bool) ast.Statement {
	tok := p.cur
	p.expect(token.MIXIN)
	name := p.expect(token.IDENT).Lexeme
	d := &ast.MixinDeclaration{Token: tok, Name: name, IsExported: exported}
	d.TypeParameters = p.parseTypeParams()
	if p.at(token.ON) {
		p.next()
		if nt, ok := p.parseTypeExpr().(*ast.NamedTypeExpr); ok {
			d.OnType = nt
		}
	}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		name := p.expect(token.IDENT).Lexeme
		if p.at(token.LPAREN) || p.at(token.LT) {
			d.Methods = append(d.Methods, p.parseMethodTail(p.cur, name, false, false, false))
			continue
		}
		p.expect(token.COLON)
		typeExpr := p.parseTypeExpr()
		p.consumeSemi()
		d.Fields = append(d.Fields, &ast.FieldDecl{Name: name, TypeAnnotation: typeExpr})
	}
	p.expect(token.RBRACE)
	return d
}

func (p *Parser) parseTypeAlias(exported, distinct bool) ast.Statement {
	tok := p.cur
	p.expect(token.TYPE)
	name := p.expect(token.IDENT).Lexeme
	d := &ast.TypeAliasDeclaration{Token: tok, Name: name, IsExported: exported, IsDistinct: distinct}
	d.TypeParameters = p.parseTypeParams()
	p.expect(token.ASSIGN)
	d.Target = p.parseTypeExpr()
	p.consumeSemi()
	return d
}

func (p *Parser) parseVariableDeclaration(exported bool) ast.Statement {
	tok := p.cur
	kind := p.cur.Lexeme
	p.next()
	name := p.expect(token.IDENT).Lexeme
	d := &ast.VariableDeclaration{Token: tok, Name: name, Kind: kind, IsExported: exported}
	if p.at(token.COLON) {
		p.next()
		d.TypeAnnotation = p.parseTypeExpr()
	}
	p.expect(token.ASSIGN)
	d.Value = p.parseExpression(precLowest)
	p.consumeSemi()
	return d
}

func (p *Parser) consumeSemi() {
	if p.at(token.SEMI) {
		p.next()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LET, token.VAR:
		return p.parseVariableDeclaration(false)
	case token.RETURN:
		tok := p.cur
		p.next()
		if p.at(token.SEMI) || p.at(token.RBRACE) {
			p.consumeSemi()
			return &ast.ReturnStatement{Token: tok}
		}
		val := p.parseExpression(precLowest)
		p.consumeSemi()
		return &ast.ReturnStatement{Token: tok, Value: val}
	case token.IF:
		return p.parseIf()
	default:
		tok := p.cur
		expr := p.parseExpression(precLowest)
		p.consumeSemi()
		return &ast.ExpressionStatement{Token: tok, Expression: expr}
	}
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.cur
	p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression(precLowest)
	p.expect(token.RPAREN)
	then := p.parseBlock()
	var els []ast.Statement
	if p.at(token.ELSE) {
		p.next()
		if p.at(token.IF) {
			els = []ast.Statement{p.parseIf()}
		} else {
			els = p.parseBlock()
		}
	}
	return &ast.IfStatement{Token: tok, Condition: cond, Then: then, Else: els}
}

func (p *Parser) parseBlock() []ast.Statement {
	p.expect(token.LBRACE)
	var out []ast.Statement
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		out = append(out, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return out
}

// --- expressions (Pratt) ---

// curPrecedence reads p.cur's precedence. Every prefix production above
// consumes exactly its own leading token before returning, which leaves cur
// sitting on the following operator (or a non-operator terminator) rather
// than peek — so the Pratt loop below tests cur, and parseInfix consumes
// the operator itself instead of the loop pre-consuming it.
func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	for !p.at(token.SEMI) && minPrec < p.curPrecedence() {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur
	switch tok.Kind {
	case token.IDENT:
		p.next()
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}
	case token.THIS:
		p.next()
		return &ast.ThisExpression{Token: tok}
	case token.SUPER:
		p.next()
		return &ast.SuperExpression{Token: tok}
	case token.NUMBER:
		p.next()
		return &ast.NumberLiteral{Token: tok, Raw: tok.Raw, Value: parseFloat(tok.Raw)}
	case token.STRING:
		p.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Raw}
	case token.TEMPLATE_STRING:
		p.next()
		return &ast.TemplateLiteral{Token: tok, Quasis: []string{tok.Raw}}
	case token.TRUE:
		p.next()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case token.FALSE:
		p.next()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case token.NULL_KW:
		p.next()
		return &ast.NullLiteral{Token: tok}
	case token.NEW:
		return p.parseNew()
	case token.THROW:
		p.next()
		return &ast.ThrowExpression{Token: tok, Operand: p.parseExpression(precLowest)}
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LPAREN:
		if p.isArrowFunctionStart() {
			return p.parseFunctionExpression(nil)
		}
		p.next()
		expr := p.parseExpression(precLowest)
		p.expect(token.RPAREN)
		return expr
	case token.LT:
		return p.parseGenericFunctionExpression()
	case token.MINUS, token.BANG:
		p.next()
		return &ast.UnaryExpression{Token: tok, Operator: tok.Lexeme, Operand: p.parseExpression(precUnary)}
	case token.DOTDOT:
		p.next()
		return p.parseRangeFrom(tok, nil)
	default:
		p.errorf("unexpected token %q in expression", tok.Lexeme)
		p.next()
		return &ast.NullLiteral{Token: tok}
	}
}

// isArrowFunctionStart decides, with p.cur on the opening LPAREN, whether
// this parenthesized group is an arrow-function parameter list rather than
// a grouping expression: it must close with a `)` followed by `=>` or a
// `: ReturnType =>`. Lexer.Lexer has no shared mutable state beyond value
// fields, so cloning it gives an independent scanner to look past the
// matching close paren without disturbing the real token stream.
func (p *Parser) isArrowFunctionStart() bool {
	cp := *p.lex
	depth := 0
	tok := p.peek
	for {
		switch tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				after := cp.NextToken()
				return after.Kind == token.ARROW || after.Kind == token.COLON
			}
			depth--
		case token.EOF:
			return false
		}
		tok = cp.NextToken()
	}
}

// parseGenericFunctionExpression parses a leading `<T, U>` type-parameter
// list on an arrow function (spec.md §4.2.2's generic-lambda inference
// scenario), then falls through to the same parameter-list/body grammar
// parseFunctionExpression already handles.
func (p *Parser) parseGenericFunctionExpression() ast.Expression {
	tps := p.parseTypeParams()
	return p.parseFunctionExpression(tps)
}

func (p *Parser) parseFunctionExpression(typeParams []*ast.TypeParamDecl) ast.Expression {
	tok := p.cur
	f := &ast.FunctionExpression{Token: tok, TypeParameters: typeParams}
	f.Parameters = p.parseParamList()
	if p.at(token.COLON) {
		p.next()
		f.ReturnType = p.parseTypeExpr()
	}
	p.expect(token.ARROW)
	if p.at(token.LBRACE) {
		f.Body = p.parseBlock()
	} else {
		f.IsExpressionBody = true
		f.ExpressionBody = p.parseExpression(precAssign)
	}
	return f
}

func (p *Parser) parseRangeFrom(tok token.Token, from ast.Expression) ast.Expression {
	if p.at(token.SEMI) || p.at(token.RPAREN) || p.at(token.RBRACE) || p.at(token.COMMA) {
		return &ast.RangeExpression{Token: tok, From: from}
	}
	to := p.parseExpression(precRange)
	return &ast.RangeExpression{Token: tok, From: from, To: to}
}

func (p *Parser) parseNew() ast.Expression {
	tok := p.cur
	p.expect(token.NEW)
	name := p.expect(token.IDENT).Lexeme
	n := &ast.NewExpression{Token: tok, ClassName: name}
	if p.at(token.LT) {
		n.TypeArguments = p.parseTypeArgList()
	}
	n.Arguments = p.parseArgList()
	return n
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.cur
	p.expect(token.LBRACKET)
	a := &ast.ArrayLiteral{Token: tok}
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		a.Elements = append(a.Elements, p.parseExpression(precAssign))
		if p.at(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RBRACKET)
	return a
}

func (p *Parser) parseArgList() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExpression(precAssign))
		if p.at(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseTypeArgList() []ast.TypeExpr {
	p.expect(token.LT)
	var args []ast.TypeExpr
	for !p.at(token.GT) && !p.at(token.EOF) {
		args = append(args, p.parseTypeExpr())
		if p.at(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.GT)
	return args
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	tok := p.cur
	switch tok.Kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		prec := precedences[tok.Kind]
		p.next()
		right := p.parseExpression(prec)
		return &ast.BinaryExpression{Token: tok, Operator: tok.Lexeme, Left: left, Right: right}
	case token.ASSIGN:
		p.next()
		value := p.parseExpression(precAssign - 1)
		return &ast.AssignmentExpression{Token: tok, Target: left, Value: value}
	case token.DOT:
		p.next()
		private := false
		if p.at(token.HASH) {
			private = true
			p.next()
		}
		name := p.expect(token.IDENT).Lexeme
		return &ast.MemberExpression{Token: tok, Object: left, Property: name, IsPrivate: private}
	case token.LPAREN:
		args := p.parseArgList()
		return &ast.CallExpression{Token: tok, Callee: left, Arguments: args}
	case token.LBRACKET:
		p.next()
		idx := p.parseExpression(precLowest)
		p.expect(token.RBRACKET)
		return &ast.IndexExpression{Token: tok, Object: left, Index: idx}
	case token.DOTDOT:
		p.next()
		return p.parseRangeFrom(tok, left)
	default:
		p.errorf("unexpected infix token %q", tok.Lexeme)
		p.next()
		return left
	}
}

func parseFloat(raw string) float64 {
	var whole, frac float64
	var fracDiv float64 = 1
	seenDot := false
	for _, ch := range raw {
		if ch == '.' {
			seenDot = true
			continue
		}
		if ch < '0' || ch > '9' {
			continue
		}
		d := float64(ch - '0')
		if seenDot {
			fracDiv *= 10
			frac = frac*10 + d
		} else {
			whole = whole*10 + d
		}
	}
	return whole + frac/fracDiv
}

// --- type expressions ---

func (p *Parser) parseTypeExpr() ast.TypeExpr {
	base := p.parseTypeAtom()
	for p.at(token.QUESTION) {
		tok := p.cur
		p.next()
		base = &ast.NullableTypeExpr{Token: tok, Inner: base}
	}
	if p.at(token.PIPE) {
		tok := p.cur
		members := []ast.TypeExpr{base}
		for p.at(token.PIPE) {
			p.next()
			members = append(members, p.parseTypeAtom())
		}
		return &ast.UnionTypeExpr{Token: tok, Members: members}
	}
	return base
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	if p.at(token.LPAREN) {
		tok := p.cur
		p.next()
		var params []ast.TypeExpr
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			params = append(params, p.parseTypeExpr())
			if p.at(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RPAREN)
		p.expect(token.ARROW)
		ret := p.parseTypeExpr()
		return &ast.FunctionTypeExpr{Token: tok, Params: params, Return: ret}
	}
	tok := p.cur
	name := p.expect(token.IDENT).Lexeme
	nt := &ast.NamedTypeExpr{Token: tok, Name: name}
	if p.at(token.LT) {
		nt.Args = p.parseTypeArgList()
	}
	return nt
}
