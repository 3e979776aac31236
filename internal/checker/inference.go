package checker

import "github.com/funvibe/funxy/internal/types"

// inferenceContext accumulates type-parameter bindings discovered while
// unifying a call's declared parameter types against its arguments'
// inferred types (spec.md §4.2.2 rule 5: generic type-argument inference).
// Generalizes the teacher's Hindley-Milner unifier to spec.md's one-shot,
// non-backtracking structural unification: the first binding found for a
// type parameter wins, later occurrences are only checked for consistency
// by the caller re-running IsAssignableTo once all arguments are processed.
type inferenceContext struct {
	bindings map[string]types.Type
}

func newInferenceContext() *inferenceContext {
	return &inferenceContext{bindings: map[string]types.Type{}}
}

func (ic *inferenceContext) reset() {
	ic.bindings = map[string]types.Type{}
}

// unify walks param looking for TypeParameter occurrences and records what
// arg supplies at that position. Unmatched shapes are simply skipped: the
// caller falls back to ErrCannotInferTypeArgument if a parameter never gets
// bound.
func (ic *inferenceContext) unify(param, arg types.Type) {
	if param == nil || arg == nil {
		return
	}
	switch p := param.(type) {
	case *types.TypeParameter:
		if _, bound := ic.bindings[p.Name]; !bound {
			ic.bindings[p.Name] = arg
		}
	case *types.ArrayType:
		if a, ok := arg.(*types.ArrayType); ok {
			ic.unify(p.ElementType, a.ElementType)
		}
	case *types.FixedArrayType:
		if a, ok := arg.(*types.FixedArrayType); ok {
			ic.unify(p.ElementType, a.ElementType)
		}
	case *types.TupleType:
		if a, ok := arg.(*types.TupleType); ok {
			for i := range p.ElementTypes {
				if i < len(a.ElementTypes) {
					ic.unify(p.ElementTypes[i], a.ElementTypes[i])
				}
			}
		}
	case *types.FunctionType:
		if a, ok := arg.(*types.FunctionType); ok {
			for i := range p.Parameters {
				if i < len(a.Parameters) {
					ic.unify(p.Parameters[i], a.Parameters[i])
				}
			}
			ic.unify(p.ReturnType, a.ReturnType)
		}
	case *types.ClassType:
		if a, ok := arg.(*types.ClassType); ok && p.GenericSource != nil && a.GenericSource == p.GenericSource {
			for i := range p.TypeArguments {
				if i < len(a.TypeArguments) {
					ic.unify(p.TypeArguments[i], a.TypeArguments[i])
				}
			}
		}
	case *types.InterfaceType:
		if a, ok := arg.(*types.InterfaceType); ok && p.GenericSource != nil && a.GenericSource == p.GenericSource {
			for i := range p.TypeArguments {
				if i < len(a.TypeArguments) {
					ic.unify(p.TypeArguments[i], a.TypeArguments[i])
				}
			}
		}
	}
}

// resolve produces the inferred argument list for params, in declaration
// order, falling back to each parameter's default and finally to nil (the
// caller reports ErrCannotInferTypeArgument for any nil slot).
func (ic *inferenceContext) resolve(params []*types.TypeParameter) []types.Type {
	args := make([]types.Type, len(params))
	for i, p := range params {
		if t, ok := ic.bindings[p.Name]; ok {
			args[i] = t
		} else if p.DefaultType != nil {
			args[i] = p.DefaultType
		}
	}
	return args
}
