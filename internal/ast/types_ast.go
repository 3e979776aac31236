package ast

import "github.com/funvibe/funxy/internal/token"

// NamedTypeExpr is a reference to a type by name, optionally with generic
// arguments: `i32`, `List<T>`, `Box<String>`.
type NamedTypeExpr struct {
	Token token.Token
	Name  string
	Args  []TypeExpr
}

func (n *NamedTypeExpr) typeExprNode()         {}
func (n *NamedTypeExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NamedTypeExpr) GetToken() token.Token { return n.Token }

// UnionTypeExpr is `A | B | C`.
type UnionTypeExpr struct {
	Token   token.Token
	Members []TypeExpr
}

func (n *UnionTypeExpr) typeExprNode()         {}
func (n *UnionTypeExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *UnionTypeExpr) GetToken() token.Token { return n.Token }

// FunctionTypeExpr is `(A, B) => C`.
type FunctionTypeExpr struct {
	Token   token.Token
	Params  []TypeExpr
	Return  TypeExpr
}

func (n *FunctionTypeExpr) typeExprNode()         {}
func (n *FunctionTypeExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *FunctionTypeExpr) GetToken() token.Token { return n.Token }

// NullableTypeExpr is `T?`, sugar for the union `T | Null`.
type NullableTypeExpr struct {
	Token token.Token
	Inner TypeExpr
}

func (n *NullableTypeExpr) typeExprNode()         {}
func (n *NullableTypeExpr) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullableTypeExpr) GetToken() token.Token { return n.Token }
