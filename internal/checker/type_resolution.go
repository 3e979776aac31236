package checker

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/types"
)

// resolveTypeExpr turns a parsed TypeExpr into a types.Type, consulting the
// type scope and the interner's generic-instantiation machinery (spec.md
// §4.1.2). Unresolvable names report SymbolNotFound and return Unknown so
// callers can keep checking without cascading errors (spec.md §7).
func (c *Checker) resolveTypeExpr(te ast.TypeExpr) types.Type {
	switch t := te.(type) {
	case nil:
		return types.Unknown

	case *ast.NamedTypeExpr:
		return c.resolveNamedType(t)

	case *ast.UnionTypeExpr:
		members := make([]types.Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = c.resolveTypeExpr(m)
		}
		u, err := c.Interner.NewUnion(members)
		if err != nil {
			c.errorf(diagnostics.ErrInvalidUnionMember, t, "%s", err.Error())
			return types.Unknown
		}
		return u

	case *ast.FunctionTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveTypeExpr(p)
		}
		return &types.FunctionType{Parameters: params, ReturnType: c.resolveTypeExpr(t.Return)}

	case *ast.NullableTypeExpr:
		inner := c.resolveTypeExpr(t.Inner)
		u, err := c.Interner.NewUnion([]types.Type{inner, types.Null})
		if err != nil {
			return inner
		}
		return u

	default:
		return types.Unknown
	}
}

func (c *Checker) resolveNamedType(t *ast.NamedTypeExpr) types.Type {
	switch t.Name {
	case "i32", "i64", "u32", "u64", "f32", "f64":
		return types.NumberKind(t.Name)
	case "Boolean":
		return types.Boolean
	case "Void":
		return types.Void
	case "Never":
		return types.Never
	case "Null":
		return types.Null
	case "Any":
		return types.Any
	case "AnyRef":
		return types.AnyRef
	case "ByteArray":
		return types.ByteArray
	case "Array":
		if len(t.Args) == 1 {
			return c.Interner.NewArray(c.resolveTypeExpr(t.Args[0]))
		}
	case config.FixedArrayClassName:
		if len(t.Args) == 1 {
			return c.Interner.NewFixedArray(c.resolveTypeExpr(t.Args[0]))
		}
	}

	// Type parameter in scope?
	if info, ok := c.scopes.ResolveType(t.Name); ok {
		if tp, ok := info.Type.(*types.TypeParameter); ok {
			return tp
		}
	}

	args := make([]types.Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = c.resolveTypeExpr(a)
	}

	if class, ok := c.Interner.LookupClass(t.Name); ok {
		if len(class.TypeParameters) == 0 {
			return class
		}
		if len(args) == 0 {
			// No explicit arguments (e.g. a raw use of a generic class
			// name as a type annotation): fall back to each parameter's
			// default, or Unknown, rather than failing outright.
			args = defaultArgsFor(class.TypeParameters)
		}
		inst, err := c.Interner.Instantiate(class, args)
		if err != nil {
			c.errorf(diagnostics.ErrGenericTypeArgumentMismatch, t, "%s", err.Error())
			return types.Unknown
		}
		return inst
	}
	if iface, ok := c.Interner.LookupInterface(t.Name); ok {
		if len(iface.TypeParameters) == 0 {
			return iface
		}
		if len(args) == 0 {
			args = defaultArgsFor(iface.TypeParameters)
		}
		inst, err := c.Interner.InstantiateInterface(iface, args)
		if err != nil {
			c.errorf(diagnostics.ErrGenericTypeArgumentMismatch, t, "%s", err.Error())
			return types.Unknown
		}
		return inst
	}
	if mixin, ok := c.Interner.LookupMixin(t.Name); ok {
		if len(mixin.TypeParameters) == 0 {
			return mixin
		}
		if len(args) == 0 {
			args = defaultArgsFor(mixin.TypeParameters)
		}
		inst, err := c.Interner.InstantiateMixin(mixin, args)
		if err != nil {
			c.errorf(diagnostics.ErrGenericTypeArgumentMismatch, t, "%s", err.Error())
			return types.Unknown
		}
		return inst
	}
	if alias, ok := c.Interner.LookupAlias(t.Name); ok {
		return alias
	}

	c.errorf(diagnostics.ErrSymbolNotFound, t, "unknown type %q", t.Name)
	return types.Unknown
}

func defaultArgsFor(params []*types.TypeParameter) []types.Type {
	args := make([]types.Type, len(params))
	for i, p := range params {
		if p.DefaultType != nil {
			args[i] = p.DefaultType
		} else {
			args[i] = types.Unknown
		}
	}
	return args
}
