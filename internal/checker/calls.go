package checker

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/types"
)

// checkCall implements spec.md §4.2.2's CallExpression rules: resolve the
// callee, gather every overload candidate (including a union-of-functions
// callee), infer generic type arguments per candidate when none were
// written explicitly, and pick the first candidate - in source order - whose
// arity and (possibly instantiated) parameter types accept the call.
func (c *Checker) checkCall(call *ast.CallExpression) types.Type {
	if _, ok := call.Callee.(*ast.SuperExpression); ok {
		return c.checkSuperCall(call)
	}

	calleeType := c.checkExpression(call.Callee)
	argTypes := make([]types.Type, len(call.Arguments))
	for i, a := range call.Arguments {
		argTypes[i] = c.checkExpression(a)
	}

	candidates := functionCandidates(calleeType)
	if len(candidates) == 0 {
		c.errorf(diagnostics.ErrTypeMismatch, call, "%s is not callable", calleeType.String())
		return types.Unknown
	}

	explicitArgs := make([]types.Type, len(call.TypeArguments))
	for i, te := range call.TypeArguments {
		explicitArgs[i] = c.resolveTypeExpr(te)
	}

	var arityMatched bool
	var lastCandidate *types.FunctionType
	for _, cand := range candidates {
		if len(cand.Parameters) != len(argTypes) {
			continue
		}
		arityMatched = true
		resolved, ok := c.instantiateCallCandidate(cand, explicitArgs, argTypes, call)
		if !ok {
			lastCandidate = resolved
			continue
		}
		if assignableArgs(c, resolved.Parameters, argTypes) {
			call.Annotations().InferredTypeArguments = explicitArgsOrInferred(resolved, cand)
			return resolved.ReturnType
		}
		lastCandidate = resolved
	}

	if !arityMatched {
		c.errorf(diagnostics.ErrArgumentCountMismatch, call, "no overload of this call accepts %d argument(s)", len(argTypes))
		return types.Unknown
	}
	if lastCandidate != nil {
		c.errorf(diagnostics.ErrTypeMismatch, call, "argument types do not match any overload")
		return lastCandidate.ReturnType
	}
	return types.Unknown
}

func functionCandidates(t types.Type) []*types.FunctionType {
	switch v := t.(type) {
	case *types.FunctionType:
		out := []*types.FunctionType{v}
		return append(out, v.Overloads...)
	case *types.UnionType:
		var out []*types.FunctionType
		for _, m := range v.Types {
			out = append(out, functionCandidates(m)...)
		}
		return out
	default:
		return nil
	}
}

// instantiateCallCandidate substitutes cand's type parameters (explicit
// arguments if given at the call site, else inferred by unifying declared
// parameter types against argument types) and returns the concrete
// signature. ok is false when inference could not bind every parameter and
// no explicit arguments were given (spec.md §4.2.2 rule 5,
// ErrCannotInferTypeArgument), or when substitution does not yield a
// function type.
func (c *Checker) instantiateCallCandidate(cand *types.FunctionType, explicit, argTypes []types.Type, call *ast.CallExpression) (*types.FunctionType, bool) {
	if len(cand.TypeParameters) == 0 {
		return cand, true
	}
	var args []types.Type
	if len(explicit) == len(cand.TypeParameters) {
		args = explicit
	} else {
		c.inferCtx.reset()
		for i, p := range cand.Parameters {
			if i < len(argTypes) {
				// A literal argument binds its default type (42 -> i32),
				// not the literal itself.
				c.inferCtx.unify(p, c.widenLiteral(argTypes[i]))
			}
		}
		args = c.inferCtx.resolve(cand.TypeParameters)
		for i, a := range args {
			if a == nil {
				c.errorf(diagnostics.ErrCannotInferTypeArgument, call, "cannot infer type argument %q", cand.TypeParameters[i].Name)
				return cand, false
			}
		}
	}
	subst := make(types.Subst, len(cand.TypeParameters))
	for i, p := range cand.TypeParameters {
		subst[p.Name] = args[i]
	}
	resolved, _ := types.Substitute(cand, subst).(*types.FunctionType)
	if resolved == nil {
		return cand, false
	}
	return resolved, true
}

func explicitArgsOrInferred(resolved, template *types.FunctionType) []types.Type {
	if len(template.TypeParameters) == 0 {
		return nil
	}
	args := make([]types.Type, len(template.TypeParameters))
	for i := range template.TypeParameters {
		if i < len(resolved.Parameters) {
			args[i] = resolved.Parameters[i]
		}
	}
	return args
}

func assignableArgs(c *Checker, params []types.Type, args []types.Type) bool {
	for i, want := range params {
		if !c.Interner.IsAssignableTo(args[i], want) {
			return false
		}
	}
	return true
}

func (c *Checker) checkSuperCall(call *ast.CallExpression) types.Type {
	if c.currentClass == nil || c.currentClass.SuperType == nil {
		c.errorf(diagnostics.ErrSymbolNotFound, call, "no superclass constructor to call")
		return types.Void
	}
	ctorType := c.currentClass.SuperType.ConstructorType
	argTypes := make([]types.Type, len(call.Arguments))
	for i, a := range call.Arguments {
		argTypes[i] = c.checkExpression(a)
	}
	if ctorType != nil {
		if len(ctorType.Parameters) != len(argTypes) {
			c.errorf(diagnostics.ErrArgumentCountMismatch, call, "super() expects %d argument(s), got %d", len(ctorType.Parameters), len(argTypes))
		} else if !assignableArgs(c, ctorType.Parameters, argTypes) {
			c.errorf(diagnostics.ErrTypeMismatch, call, "super() argument types do not match")
		}
	}
	// checkSuperCall itself returns Void (super() has no usable value), so the
	// usage analyzer can't recover the superclass from the call's InferredType
	// the way it does for a regular method call. Bind the call node directly
	// to the superclass constructor so UA can mark it used.
	c.SemCtx.Bind(call, &symbols.ResolvedBinding{
		Kind:             symbols.BindMethod,
		Name:             config.ConstructorName,
		ReceiverClass:    c.currentClass.SuperType,
		IsStaticDispatch: true,
	})
	c.isThisInitialized = true
	return types.Void
}

// checkNew implements spec.md §4.2.2's NewExpression rules: the named
// class must exist, must not be abstract, and the constructor (if any)
// must accept the given arguments; explicit or inferred type arguments
// specialize a generic class before its constructor is checked.
func (c *Checker) checkNew(n *ast.NewExpression) types.Type {
	template, ok := c.Interner.LookupClass(n.ClassName)
	if !ok {
		c.errorf(diagnostics.ErrSymbolNotFound, n, "unknown class %q", n.ClassName)
		return types.Unknown
	}
	if template.IsAbstract {
		c.errorf(diagnostics.ErrCannotInstantiateAbstractClass, n, "cannot instantiate abstract class %q", n.ClassName)
	}

	argTypes := make([]types.Type, len(n.Arguments))
	for i, a := range n.Arguments {
		argTypes[i] = c.checkExpression(a)
	}

	instance := template
	if len(template.TypeParameters) > 0 {
		var typeArgs []types.Type
		if len(n.TypeArguments) > 0 {
			typeArgs = make([]types.Type, len(n.TypeArguments))
			for i, te := range n.TypeArguments {
				typeArgs[i] = c.resolveTypeExpr(te)
			}
		} else if template.ConstructorType != nil {
			c.inferCtx.reset()
			for i, p := range template.ConstructorType.Parameters {
				if i < len(argTypes) {
					c.inferCtx.unify(p, argTypes[i])
				}
			}
			typeArgs = c.inferCtx.resolve(template.TypeParameters)
			for i, a := range typeArgs {
				if a == nil {
					c.errorf(diagnostics.ErrCannotInferTypeArgument, n, "cannot infer type argument %q", template.TypeParameters[i].Name)
					return types.Unknown
				}
			}
		} else {
			typeArgs = defaultArgsFor(template.TypeParameters)
		}
		inst, err := c.Interner.Instantiate(template, typeArgs)
		if err != nil {
			c.errorf(diagnostics.ErrGenericTypeArgumentMismatch, n, "%s", err.Error())
			return types.Unknown
		}
		instance = inst
		n.Annotations().InferredTypeArguments = typeArgs
	}

	if instance.ConstructorType != nil {
		if len(instance.ConstructorType.Parameters) != len(argTypes) {
			c.errorf(diagnostics.ErrArgumentCountMismatch, n, "%s constructor expects %d argument(s), got %d", n.ClassName, len(instance.ConstructorType.Parameters), len(argTypes))
		} else if !assignableArgs(c, instance.ConstructorType.Parameters, argTypes) {
			c.errorf(diagnostics.ErrTypeMismatch, n, "%s constructor argument types do not match", n.ClassName)
		}
	}
	return instance
}
