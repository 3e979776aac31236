// Package ast defines the parsed syntax tree consumed by the semantic
// middle-end (internal/checker, internal/usage). Node shapes follow
// spec.md §3.2/§6.1. There is no visitor interface: consumers dispatch on
// node kind with type switches.
package ast

import (
	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/types"
)

// Node is the base interface for every AST node.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a Node that can appear at statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that can appear at expression position. The checker
// writes InferredType (and, for generic call/new sites, InferredTypeArguments)
// directly onto the node — see spec.md §3.2.
type Expression interface {
	Node
	expressionNode()
	// Annotations returns the side-table slot the checker writes into.
	Annotations() *ExprAnnotations
}

// ExprAnnotations is the per-expression side table described by spec.md §3.2.
type ExprAnnotations struct {
	InferredType          types.Type
	InferredTypeArguments []types.Type
	ResolvedOperatorMethod *types.FunctionType
}

// TypeExpr is the syntactic representation of a type annotation, resolved by
// the checker into a types.Type.
type TypeExpr interface {
	Node
	typeExprNode()
}

// baseExpr factors the annotation slot shared by every Expression.
type baseExpr struct {
	ann ExprAnnotations
}

func (b *baseExpr) Annotations() *ExprAnnotations { return &b.ann }
