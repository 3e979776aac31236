package checker

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/types"
)

// checkFunctionBody checks a function literal's body against an
// already-built signature (either pre-declared at module scope for
// mutual-recursion support, or built on the spot for an inline lambda).
func (c *Checker) checkFunctionBody(sig *types.FunctionType, fn *ast.FunctionExpression) {
	c.scopes.Push()
	defer c.scopes.Pop()
	for _, tp := range sig.TypeParameters {
		c.scopes.DeclareType(tp.Name, &symbols.SymbolInfo{Type: tp, Kind: symbols.DeclType})
	}
	for i, p := range fn.Parameters {
		var pt types.Type = types.Unknown
		if i < len(sig.Parameters) {
			pt = sig.Parameters[i]
		}
		c.scopes.DeclareValue(p.Name, &symbols.SymbolInfo{Type: pt, Kind: symbols.DeclLet})
	}

	prevReturn := c.currentFunctionReturnType
	c.currentFunctionReturnType = sig.ReturnType
	defer func() { c.currentFunctionReturnType = prevReturn }()

	if fn.IsExpressionBody {
		t := c.checkExpression(fn.ExpressionBody)
		if sig.ReturnType == types.Unknown {
			sig.ReturnType = t
		} else if !c.Interner.IsAssignableTo(t, sig.ReturnType) {
			c.errorf(diagnostics.ErrTypeMismatch, fn.ExpressionBody, "cannot return %s as %s", t.String(), sig.ReturnType.String())
		}
		return
	}
	for _, st := range fn.Body {
		c.checkStatement(st)
	}
}

// checkInlineFunction builds a signature for a lambda appearing in
// expression position (e.g. a callback argument) and checks its body
// in place, returning the resulting FunctionType.
func (c *Checker) checkInlineFunction(fn *ast.FunctionExpression) types.Type {
	tps := newTypeParams(fn.TypeParameters)
	if len(tps) > 0 {
		c.pushTypeParamScope(tps)
		defer c.scopes.Pop()
		c.fillTypeParamDefaults(tps, fn.TypeParameters)
	}
	ft := &types.FunctionType{
		TypeParameters: tps,
		Parameters:     c.paramTypes(fn.Parameters),
	}
	if fn.ReturnType != nil {
		ft.ReturnType = c.resolveTypeExpr(fn.ReturnType)
	} else {
		ft.ReturnType = types.Unknown
	}
	c.checkFunctionBody(ft, fn)
	return ft
}
