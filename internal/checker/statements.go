package checker

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/types"
)

// checkStatement dispatches over every statement kind reachable inside a
// function/method body (spec.md §4.2.3). Local `let`/`var` bindings are the
// ast.VariableDeclaration case; unlike the module-level pass in
// declarations.go, locals never participate in forward-reference/overload
// folding.
func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.checkExpression(s.Expression)

	case *ast.VariableDeclaration:
		valueType := c.checkExpression(s.Value)
		declType := valueType
		if s.TypeAnnotation != nil {
			declType = c.resolveTypeExpr(s.TypeAnnotation)
			if !c.Interner.IsAssignableTo(valueType, declType) {
				c.errorf(diagnostics.ErrTypeMismatch, s.Value, "cannot assign %s to %s", valueType.String(), declType.String())
			}
		}
		if _, dup := c.scopes.LookupValueLocal(s.Name); dup {
			c.errorf(diagnostics.ErrDuplicateDeclaration, s, "duplicate declaration of %q", s.Name)
			return
		}
		kind := symbols.DeclLet
		if s.Kind == "var" {
			kind = symbols.DeclVar
		}
		c.scopes.DeclareValue(s.Name, &symbols.SymbolInfo{Type: declType, Kind: kind, Decl: s})

	case *ast.ReturnStatement:
		if c.currentFunctionReturnType == nil {
			c.errorf(diagnostics.ErrReturnOutsideFunction, s, "return outside of a function or method")
			return
		}
		var actual types.Type = types.Void
		if s.Value != nil {
			actual = c.checkExpression(s.Value)
		}
		want := c.currentFunctionReturnType
		if want != types.Unknown && !c.Interner.IsAssignableTo(actual, want) {
			c.errorf(diagnostics.ErrTypeMismatch, s, "cannot return %s as %s", actual.String(), want.String())
		}

	case *ast.IfStatement:
		c.checkExpression(s.Condition)
		c.checkBlock(s.Then)
		if s.Else != nil {
			c.checkBlock(s.Else)
		}
	}
}

func (c *Checker) checkBlock(stmts []ast.Statement) {
	c.scopes.Push()
	defer c.scopes.Pop()
	for _, st := range stmts {
		c.checkStatement(st)
	}
}
