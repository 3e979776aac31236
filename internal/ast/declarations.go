package ast

import "github.com/funvibe/funxy/internal/token"

// Program is the root node produced by the parser for a single source file.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token { return token.Token{} }

// TypeParamDecl is a generic type-parameter declaration, e.g. `<T>` or
// `<T = i32>`.
type TypeParamDecl struct {
	Token   token.Token
	Name    string
	Default TypeExpr
}

// ImportStatement is `import "path" (a, b)`.
type ImportStatement struct {
	Token token.Token
	Path  string
	Names []string // empty = import everything exported
}

func (i *ImportStatement) statementNode()       {}
func (i *ImportStatement) TokenLiteral() string { return i.Token.Lexeme }
func (i *ImportStatement) GetToken() token.Token { return i.Token }

// FieldDecl is a class/interface/mixin field declaration.
type FieldDecl struct {
	Name           string
	TypeAnnotation TypeExpr
	IsPrivate      bool
}

// MethodDecl is a method with a body (class/mixin), or the bare constructor.
type MethodDecl struct {
	Token            token.Token
	Name             string
	TypeParameters   []*TypeParamDecl
	Parameters       []*Param
	ReturnType       TypeExpr
	Body             []Statement
	IsExpressionBody bool
	ExpressionBody   Expression
	IsFinal          bool
	IsAbstract       bool
	IsStatic         bool
}

// MethodSignature is an interface method: no body, only a contract.
type MethodSignature struct {
	Token          token.Token
	Name           string
	TypeParameters []*TypeParamDecl
	Parameters     []*Param
	ReturnType     TypeExpr
}

// ClassDeclaration is `[abstract|final] class Name<T> extends S implements I { ... }`.
type ClassDeclaration struct {
	Token          token.Token
	Name           string
	TypeParameters []*TypeParamDecl
	SuperClass     *NamedTypeExpr
	Implements     []*NamedTypeExpr
	Mixins         []*NamedTypeExpr
	IsAbstract     bool
	IsFinal        bool
	IsExtension    bool
	OnType         TypeExpr
	Fields         []*FieldDecl
	Methods        []*MethodDecl
	Constructor    *MethodDecl // nil if implicit/default constructor
	IsExported     bool
}

func (c *ClassDeclaration) statementNode()       {}
func (c *ClassDeclaration) TokenLiteral() string { return c.Token.Lexeme }
func (c *ClassDeclaration) GetToken() token.Token { return c.Token }

// InterfaceDeclaration is `interface Name<T> extends A, B { ... }`.
type InterfaceDeclaration struct {
	Token          token.Token
	Name           string
	TypeParameters []*TypeParamDecl
	Extends        []*NamedTypeExpr
	Fields         []*FieldDecl
	Methods        []*MethodSignature
	IsExported     bool
}

func (i *InterfaceDeclaration) statementNode()       {}
func (i *InterfaceDeclaration) TokenLiteral() string { return i.Token.Lexeme }
func (i *InterfaceDeclaration) GetToken() token.Token { return i.Token }

// MixinDeclaration is `mixin Name<T> on Base { ... }`.
type MixinDeclaration struct {
	Token          token.Token
	Name           string
	TypeParameters []*TypeParamDecl
	OnType         *NamedTypeExpr
	Fields         []*FieldDecl
	Methods        []*MethodDecl
	IsExported     bool
}

func (m *MixinDeclaration) statementNode()       {}
func (m *MixinDeclaration) TokenLiteral() string { return m.Token.Lexeme }
func (m *MixinDeclaration) GetToken() token.Token { return m.Token }

// TypeAliasDeclaration is `type Name<T> = Target` or `distinct type Name = Target`.
type TypeAliasDeclaration struct {
	Token          token.Token
	Name           string
	TypeParameters []*TypeParamDecl
	Target         TypeExpr
	IsDistinct     bool
	IsExported     bool
}

func (t *TypeAliasDeclaration) statementNode()       {}
func (t *TypeAliasDeclaration) TokenLiteral() string { return t.Token.Lexeme }
func (t *TypeAliasDeclaration) GetToken() token.Token { return t.Token }

// VariableDeclaration is `let name = value` / `var name: T = value`. A
// `let`-bound FunctionExpression that redeclares an existing function name
// still gets its own VariableDeclaration node; the checker folds its
// signature into that function's overload list instead of reporting a
// duplicate (spec.md §4.2.1).
type VariableDeclaration struct {
	Token          token.Token
	Name           string
	Kind           string // "let" or "var"
	TypeAnnotation TypeExpr
	Value          Expression
	IsExported     bool
}

func (v *VariableDeclaration) statementNode()       {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Lexeme }
func (v *VariableDeclaration) GetToken() token.Token { return v.Token }

// ExpressionStatement wraps an expression used for its side effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Lexeme }
func (e *ExpressionStatement) GetToken() token.Token { return e.Token }

// ReturnStatement is `return expr` / `return`.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for bare `return`
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Lexeme }
func (r *ReturnStatement) GetToken() token.Token { return r.Token }

// IfStatement is `if (cond) { ... } else { ... }`.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Lexeme }
func (i *IfStatement) GetToken() token.Token { return i.Token }
