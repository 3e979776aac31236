package ast

import "github.com/funvibe/funxy/internal/token"

// Identifier is a bare name reference. The checker resolves it to a
// symbols.ResolvedBinding and stores that binding in the SemanticContext.
type Identifier struct {
	baseExpr
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token  { return i.Token }

// ThisExpression is `this`.
type ThisExpression struct {
	baseExpr
	Token token.Token
}

func (t *ThisExpression) expressionNode()       {}
func (t *ThisExpression) TokenLiteral() string  { return t.Token.Lexeme }
func (t *ThisExpression) GetToken() token.Token { return t.Token }

// NumberLiteral is an integer or floating-point literal. Raw preserves the
// exact source text: spec.md §4.2.2 says presence of '.' in Raw selects f32.
type NumberLiteral struct {
	baseExpr
	Token token.Token
	Raw   string
	Value float64
}

func (n *NumberLiteral) expressionNode()       {}
func (n *NumberLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NumberLiteral) GetToken() token.Token { return n.Token }

// StringLiteral is a plain string literal.
type StringLiteral struct {
	baseExpr
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()       {}
func (s *StringLiteral) TokenLiteral() string  { return s.Token.Lexeme }
func (s *StringLiteral) GetToken() token.Token { return s.Token }

// TemplateLiteral is a backtick-quoted interpolated string.
type TemplateLiteral struct {
	baseExpr
	Token        token.Token
	Quasis       []string
	Expressions  []Expression
}

func (t *TemplateLiteral) expressionNode()       {}
func (t *TemplateLiteral) TokenLiteral() string  { return t.Token.Lexeme }
func (t *TemplateLiteral) GetToken() token.Token { return t.Token }

// BooleanLiteral is `true` / `false`.
type BooleanLiteral struct {
	baseExpr
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// NullLiteral is `null`.
type NullLiteral struct {
	baseExpr
	Token token.Token
}

func (n *NullLiteral) expressionNode()       {}
func (n *NullLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token { return n.Token }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	baseExpr
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()       {}
func (a *ArrayLiteral) TokenLiteral() string  { return a.Token.Lexeme }
func (a *ArrayLiteral) GetToken() token.Token { return a.Token }

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	baseExpr
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) expressionNode()       {}
func (b *BinaryExpression) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BinaryExpression) GetToken() token.Token { return b.Token }

// UnaryExpression is `op operand`.
type UnaryExpression struct {
	baseExpr
	Token    token.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()       {}
func (u *UnaryExpression) TokenLiteral() string  { return u.Token.Lexeme }
func (u *UnaryExpression) GetToken() token.Token { return u.Token }

// CallExpression is `callee(args...)`, possibly `super(args...)` when
// Callee is a SuperExpression.
type CallExpression struct {
	baseExpr
	Token     token.Token
	Callee    Expression
	Arguments []Expression
	// TypeArguments holds explicit generic arguments written at the call
	// site (`id<i32>(x)`); empty when inference is expected to fill them.
	TypeArguments []TypeExpr
}

func (c *CallExpression) expressionNode()       {}
func (c *CallExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *CallExpression) GetToken() token.Token { return c.Token }

// SuperExpression is the bare `super` callee of a constructor call.
type SuperExpression struct {
	baseExpr
	Token token.Token
}

func (s *SuperExpression) expressionNode()       {}
func (s *SuperExpression) TokenLiteral() string  { return s.Token.Lexeme }
func (s *SuperExpression) GetToken() token.Token { return s.Token }

// NewExpression is `new Name<Targs>(args...)`.
type NewExpression struct {
	baseExpr
	Token         token.Token
	ClassName     string
	TypeArguments []TypeExpr
	Arguments     []Expression
}

func (n *NewExpression) expressionNode()       {}
func (n *NewExpression) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NewExpression) GetToken() token.Token { return n.Token }

// MemberExpression is `object.property` (or `object.#property` for private
// members).
type MemberExpression struct {
	baseExpr
	Token     token.Token
	Object    Expression
	Property  string
	IsPrivate bool
}

func (m *MemberExpression) expressionNode()       {}
func (m *MemberExpression) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MemberExpression) GetToken() token.Token { return m.Token }

// IndexExpression is `object[index]`.
type IndexExpression struct {
	baseExpr
	Token  token.Token
	Object Expression
	Index  Expression
}

func (i *IndexExpression) expressionNode()       {}
func (i *IndexExpression) TokenLiteral() string  { return i.Token.Lexeme }
func (i *IndexExpression) GetToken() token.Token { return i.Token }

// AssignmentExpression is `target = value`. Target is an Identifier,
// MemberExpression, or IndexExpression (spec.md §4.2.2).
type AssignmentExpression struct {
	baseExpr
	Token  token.Token
	Target Expression
	Value  Expression
}

func (a *AssignmentExpression) expressionNode()       {}
func (a *AssignmentExpression) TokenLiteral() string  { return a.Token.Lexeme }
func (a *AssignmentExpression) GetToken() token.Token { return a.Token }

// Param is a single function parameter.
type Param struct {
	Name           string
	TypeAnnotation TypeExpr
	DefaultValue   Expression
}

// FunctionExpression is an arrow function (lambda), usable both for
// top-level `let name = (...) => ...` bindings and inline callback
// arguments.
type FunctionExpression struct {
	baseExpr
	Token          token.Token
	TypeParameters []*TypeParamDecl
	Parameters     []*Param
	ReturnType     TypeExpr // may be nil (inferred)
	Body           []Statement // block body; used only when IsExpressionBody is false
	IsExpressionBody bool
	ExpressionBody Expression
}

func (f *FunctionExpression) expressionNode()       {}
func (f *FunctionExpression) TokenLiteral() string  { return f.Token.Lexeme }
func (f *FunctionExpression) GetToken() token.Token { return f.Token }

// ThrowExpression is `throw e` used in expression position.
type ThrowExpression struct {
	baseExpr
	Token   token.Token
	Operand Expression
}

func (t *ThrowExpression) expressionNode()       {}
func (t *ThrowExpression) TokenLiteral() string  { return t.Token.Lexeme }
func (t *ThrowExpression) GetToken() token.Token { return t.Token }

// RangeExpression is `from..to`, `..to`, `from..`, or `..`.
type RangeExpression struct {
	baseExpr
	Token token.Token
	From  Expression // nil if unbounded below
	To    Expression // nil if unbounded above
}

func (r *RangeExpression) expressionNode()       {}
func (r *RangeExpression) TokenLiteral() string  { return r.Token.Lexeme }
func (r *RangeExpression) GetToken() token.Token { return r.Token }
