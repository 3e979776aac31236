package checker

import (
	"fmt"
	"strings"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/types"
)

// checkExpression dispatches over every expression kind, writing the
// resulting type onto the node's annotation slot before returning it
// (spec.md §3.2) so later passes (and the usage analyzer) never need to
// re-infer anything the checker already determined.
func (c *Checker) checkExpression(expr ast.Expression) types.Type {
	t := c.checkExpressionUncached(expr)
	if t == nil {
		t = types.Unknown
	}
	expr.Annotations().InferredType = t
	return t
}

func (c *Checker) checkExpressionUncached(expr ast.Expression) types.Type {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.checkIdentifier(e)
	case *ast.ThisExpression:
		return c.checkThis(e)
	case *ast.NumberLiteral:
		if strings.Contains(e.Raw, ".") {
			return types.F32
		}
		return &types.LiteralType{Value: e.Value}
	case *ast.StringLiteral:
		return &types.LiteralType{Value: e.Value}
	case *ast.TemplateLiteral:
		for _, sub := range e.Expressions {
			c.checkExpression(sub)
		}
		return c.wellKnownClass(config.StringClassName)
	case *ast.BooleanLiteral:
		return &types.LiteralType{Value: e.Value}
	case *ast.NullLiteral:
		return types.Null
	case *ast.ArrayLiteral:
		return c.checkArrayLiteral(e)
	case *ast.BinaryExpression:
		return c.checkBinary(e)
	case *ast.UnaryExpression:
		return c.checkUnary(e)
	case *ast.CallExpression:
		return c.checkCall(e)
	case *ast.NewExpression:
		return c.checkNew(e)
	case *ast.MemberExpression:
		return c.checkMember(e)
	case *ast.IndexExpression:
		return c.checkIndex(e)
	case *ast.AssignmentExpression:
		return c.checkAssignment(e)
	case *ast.FunctionExpression:
		return c.checkInlineFunction(e)
	case *ast.ThrowExpression:
		return c.checkThrow(e)
	case *ast.RangeExpression:
		return c.checkRange(e)
	case *ast.SuperExpression:
		c.errorf(diagnostics.ErrSymbolNotFound, e, "super can only be called, not referenced")
		return types.Unknown
	default:
		return types.Unknown
	}
}

func (c *Checker) wellKnownClass(name string) types.Type {
	if ct, ok := c.Interner.LookupClass(name); ok {
		return ct
	}
	return types.Unknown
}

func (c *Checker) checkIdentifier(id *ast.Identifier) types.Type {
	info, ok := c.scopes.ResolveValue(id.Name)
	if !ok {
		c.errorf(diagnostics.ErrSymbolNotFound, id, "undefined name %q", id.Name)
		return types.Unknown
	}
	var binding *symbols.ResolvedBinding
	if info.ImportWrap != nil {
		binding = info.ImportWrap
	} else {
		binding = &symbols.ResolvedBinding{Kind: bindingKindForDecl(info), Name: id.Name, Type: info.Type, Decl: info.Decl}
	}
	c.SemCtx.Bind(id, binding)
	return info.Type
}

func (c *Checker) checkThis(t *ast.ThisExpression) types.Type {
	if c.selfType == nil {
		c.errorf(diagnostics.ErrSymbolNotFound, t, "this used outside of a method")
		return types.Unknown
	}
	if c.insideConstructor && !c.isThisInitialized {
		c.errorf(diagnostics.ErrThisBeforeSuper, t, "this used before super() in constructor")
	}
	return c.selfType
}

func (c *Checker) checkArrayLiteral(a *ast.ArrayLiteral) types.Type {
	if len(a.Elements) == 0 {
		return c.Interner.NewArray(types.Unknown)
	}
	elemTypes := make([]types.Type, len(a.Elements))
	for i, el := range a.Elements {
		elemTypes[i] = c.checkExpression(el)
	}
	elem := elemTypes[0]
	uniform := true
	for _, t := range elemTypes[1:] {
		if !c.Interner.IsAssignableTo(t, elem) {
			uniform = false
			break
		}
	}
	if !uniform {
		if u, err := c.Interner.NewUnion(elemTypes); err == nil {
			elem = u
		} else {
			elem = types.Any
		}
	}
	return c.Interner.NewArray(elem)
}

func effectiveNumberKind(t types.Type) (*types.NumberType, bool) {
	switch v := t.(type) {
	case *types.NumberType:
		return v, true
	case *types.LiteralType:
		if _, ok := v.Value.(float64); ok {
			return types.I32, true
		}
	}
	return nil, false
}

func underlyingClass(t types.Type) (*types.ClassType, bool) {
	ct, ok := t.(*types.ClassType)
	return ct, ok
}

// widenLiteral maps an untyped literal to its default type so two literals
// (e.g. `1 == 2`) can be compared by assignability instead of by identity,
// which would never hold since each literal expression gets its own
// *types.LiteralType instance.
func (c *Checker) widenLiteral(t types.Type) types.Type {
	lit, ok := t.(*types.LiteralType)
	if !ok {
		return t
	}
	switch lit.Value.(type) {
	case float64:
		return types.I32
	case bool:
		return types.Boolean
	case string:
		return c.wellKnownClass(config.StringClassName)
	}
	return t
}

func (c *Checker) checkBinary(b *ast.BinaryExpression) types.Type {
	lt := c.checkExpression(b.Left)
	rt := c.checkExpression(b.Right)

	switch b.Operator {
	case "&&", "||":
		return types.Boolean
	case "==", "!=":
		if ct, ok := underlyingClass(lt); ok {
			if ft, ok := classMethod(ct, b.Operator); ok {
				b.Annotations().ResolvedOperatorMethod = ft
				return ft.ReturnType
			}
		}
		// Widen both sides before the mutual-assignability check: two
		// untyped literals (e.g. 1 == 2) are never assignable to each other
		// as raw LiteralTypes, only to their natural widened type.
		wl, wr := c.widenLiteral(lt), c.widenLiteral(rt)
		mismatch := !c.Interner.IsAssignableTo(wl, wr) && !c.Interner.IsAssignableTo(wr, wl)
		// A string literal widens to Unknown when no String class is
		// declared, and Unknown accepts anything, so two literals are
		// compared by the kind of their value instead.
		if ll, ok := lt.(*types.LiteralType); ok {
			if rl, ok := rt.(*types.LiteralType); ok {
				mismatch = fmt.Sprintf("%T", ll.Value) != fmt.Sprintf("%T", rl.Value)
			}
		}
		if mismatch {
			c.errorf(diagnostics.ErrTypeMismatch, b, "%q not defined between %s and %s", b.Operator, lt.String(), rt.String())
			return types.Unknown
		}
		return types.Boolean
	case "<", "<=", ">", ">=":
		if ln, lok := effectiveNumberKind(lt); lok {
			if rn, rok := effectiveNumberKind(rt); rok {
				if ln != rn {
					c.errorf(diagnostics.ErrTypeMismatch, b, "operator %q requires identical numeric kinds, got %s and %s", b.Operator, ln.String(), rn.String())
					return types.Unknown
				}
				return types.Boolean
			}
		}
		if ct, ok := underlyingClass(lt); ok {
			if ft, ok := classMethod(ct, b.Operator); ok {
				b.Annotations().ResolvedOperatorMethod = ft
				return ft.ReturnType
			}
		}
		c.errorf(diagnostics.ErrTypeMismatch, b, "operator %q not defined for %s and %s", b.Operator, lt.String(), rt.String())
		return types.Unknown
	default: // + - * / % and any operator-method names
		if ct, ok := underlyingClass(lt); ok {
			if ft, ok := classMethod(ct, b.Operator); ok {
				b.Annotations().ResolvedOperatorMethod = ft
				return ft.ReturnType
			}
		}
		ln, lok := effectiveNumberKind(lt)
		rn, rok := effectiveNumberKind(rt)
		if lok && rok {
			if ln != rn {
				c.errorf(diagnostics.ErrTypeMismatch, b, "operator %q requires identical numeric kinds, got %s and %s", b.Operator, ln.String(), rn.String())
				return types.Unknown
			}
			return ln
		}
		if b.Operator == "+" {
			if isStringLike(lt) && isStringLike(rt) {
				return c.wellKnownClass(config.StringClassName)
			}
		}
		c.errorf(diagnostics.ErrTypeMismatch, b, "operator %q not defined for %s and %s", b.Operator, lt.String(), rt.String())
		return types.Unknown
	}
}

func isStringLike(t types.Type) bool {
	if lit, ok := t.(*types.LiteralType); ok {
		_, ok := lit.Value.(string)
		return ok
	}
	ct, ok := t.(*types.ClassType)
	if !ok {
		return false
	}
	root := ct
	for root.GenericSource != nil {
		root = root.GenericSource
	}
	return root.Name == config.StringClassName
}

// classMethod walks source and its superclass chain for a method, since
// overridden/overloaded operator methods still need to resolve through
// inheritance.
func classMethod(ct *types.ClassType, name string) (*types.FunctionType, bool) {
	for cur := ct; cur != nil; cur = cur.SuperType {
		if ft, ok := cur.Methods[name]; ok {
			return ft, true
		}
	}
	return nil, false
}

func classField(ct *types.ClassType, name string) (types.Type, bool) {
	for cur := ct; cur != nil; cur = cur.SuperType {
		if t, ok := cur.Fields[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func interfaceMethod(it *types.InterfaceType, name string) (*types.FunctionType, bool) {
	if ft, ok := it.Methods[name]; ok {
		return ft, true
	}
	for _, ext := range it.Extends {
		if ft, ok := interfaceMethod(ext, name); ok {
			return ft, true
		}
	}
	return nil, false
}

func (c *Checker) checkUnary(u *ast.UnaryExpression) types.Type {
	ot := c.checkExpression(u.Operand)
	switch u.Operator {
	case "!":
		return types.Boolean
	case "-":
		if n, ok := effectiveNumberKind(ot); ok {
			return n
		}
		c.errorf(diagnostics.ErrTypeMismatch, u, "unary - not defined for %s", ot.String())
		return types.Unknown
	default:
		return ot
	}
}

// checkMember implements spec.md §4.2.2's MemberExpression rule: resolve
// the property against the object's type (class/interface/mixin field or
// method, array length, or record property), enforcing private-access and
// recording whether the call site can be resolved statically for the usage
// analyzer: a method counts as static when its class is final or an
// extension class, a field when its class is final. A method's own
// finality is not taken into account.
func (c *Checker) checkMember(m *ast.MemberExpression) types.Type {
	if _, ok := m.Object.(*ast.SuperExpression); ok {
		return c.checkSuperMember(m)
	}
	ot := c.checkExpression(m.Object)

	switch obj := ot.(type) {
	case *types.ClassType:
		if ft, ok := classMethod(obj, m.Property); ok {
			c.bindMember(m, symbols.BindMethod, ft, obj, nil, obj.IsFinal || obj.IsExtension)
			return ft
		}
		if ft, ok := classField(obj, m.Property); ok {
			if m.IsPrivate && (c.currentClass == nil || c.currentClass.Name != obj.Name) {
				c.errorf(diagnostics.ErrPrivateMemberAccess, m, "%q is private to %s", m.Property, obj.Name)
			}
			if c.isCheckingFieldInitializer {
				if _, isThis := m.Object.(*ast.ThisExpression); isThis && !c.initializedFields[m.Property] {
					c.errorf(diagnostics.ErrUninitializedFieldAccess, m, "field %q read before being initialized in constructor", m.Property)
				}
			}
			c.bindMember(m, symbols.BindField, ft, obj, nil, obj.IsFinal)
			return ft
		}
		if obj.Name == config.StringClassName || obj.Name == config.FixedArrayClassName {
			if m.Property == "length" {
				return types.I32
			}
		}
		c.errorf(diagnostics.ErrPropertyNotFound, m, "%s has no property %q", obj.String(), m.Property)
		return types.Unknown

	case *types.InterfaceType:
		if ft, ok := interfaceMethod(obj, m.Property); ok {
			c.bindMember(m, symbols.BindMethod, ft, nil, obj, false)
			return ft
		}
		if ft, ok := obj.Fields[m.Property]; ok {
			c.bindMember(m, symbols.BindField, ft, nil, obj, false)
			return ft
		}
		c.errorf(diagnostics.ErrPropertyNotFound, m, "%s has no property %q", obj.String(), m.Property)
		return types.Unknown

	case *types.MixinType:
		if ft, ok := obj.Methods[m.Property]; ok {
			return ft
		}
		if ft, ok := obj.Fields[m.Property]; ok {
			return ft
		}
		c.errorf(diagnostics.ErrPropertyNotFound, m, "%s has no property %q", obj.String(), m.Property)
		return types.Unknown

	case *types.RecordType:
		if ft, ok := obj.Properties[m.Property]; ok {
			return ft
		}
		c.errorf(diagnostics.ErrPropertyNotFound, m, "%s has no property %q", obj.String(), m.Property)
		return types.Unknown

	case *types.ArrayType:
		if m.Property == "length" {
			return types.I32
		}
		c.errorf(diagnostics.ErrPropertyNotFound, m, "Array has no property %q", m.Property)
		return types.Unknown

	case *types.FixedArrayType:
		if m.Property == "length" {
			return types.I32
		}
		c.errorf(diagnostics.ErrPropertyNotFound, m, "FixedArray has no property %q", m.Property)
		return types.Unknown

	default:
		c.errorf(diagnostics.ErrPropertyNotFound, m, "%s has no property %q", ot.String(), m.Property)
		return types.Unknown
	}
}

func (c *Checker) checkSuperMember(m *ast.MemberExpression) types.Type {
	if c.currentClass == nil || c.currentClass.SuperType == nil {
		c.errorf(diagnostics.ErrSymbolNotFound, m, "no superclass in scope")
		return types.Unknown
	}
	super := c.currentClass.SuperType
	if ft, ok := classMethod(super, m.Property); ok {
		c.bindMember(m, symbols.BindMethod, ft, super, nil, true)
		return ft
	}
	if ft, ok := classField(super, m.Property); ok {
		c.bindMember(m, symbols.BindField, ft, super, nil, true)
		return ft
	}
	c.errorf(diagnostics.ErrPropertyNotFound, m, "%s has no property %q", super.String(), m.Property)
	return types.Unknown
}

func (c *Checker) bindMember(m *ast.MemberExpression, kind symbols.BindingKind, t types.Type, rc *types.ClassType, ri *types.InterfaceType, static bool) {
	c.SemCtx.Bind(m, &symbols.ResolvedBinding{
		Kind: kind, Name: m.Property, Type: t,
		ReceiverClass: rc, ReceiverInterface: ri, IsStaticDispatch: static,
	})
}

func (c *Checker) checkIndex(ix *ast.IndexExpression) types.Type {
	ot := c.checkExpression(ix.Object)
	c.checkExpression(ix.Index)
	switch obj := ot.(type) {
	case *types.ArrayType:
		return obj.ElementType
	case *types.FixedArrayType:
		return obj.ElementType
	case *types.TupleType:
		return types.Any
	case *types.ClassType:
		if ft, ok := classMethod(obj, config.IndexGetMethodName); ok {
			return ft.ReturnType
		}
	}
	c.errorf(diagnostics.ErrNotIndexable, ix, "%s is not indexable", ot.String())
	return types.Unknown
}

func (c *Checker) checkAssignment(a *ast.AssignmentExpression) types.Type {
	valueType := c.checkExpression(a.Value)

	switch target := a.Target.(type) {
	case *ast.Identifier:
		info, ok := c.scopes.ResolveValue(target.Name)
		if !ok {
			c.errorf(diagnostics.ErrSymbolNotFound, target, "undefined name %q", target.Name)
			return valueType
		}
		if info.Kind == symbols.DeclLet {
			c.errorf(diagnostics.ErrInvalidAssignment, a, "cannot assign to immutable binding %q", target.Name)
		}
		if !c.Interner.IsAssignableTo(valueType, info.Type) {
			c.errorf(diagnostics.ErrTypeMismatch, a, "cannot assign %s to %s", valueType.String(), info.Type.String())
		}
		return info.Type

	case *ast.MemberExpression:
		// Writing this.x initializes it (spec.md §4.2.3): record it before
		// checking the member expression itself, so a write is never flagged
		// as a read of an uninitialized field.
		if c.isCheckingFieldInitializer {
			if _, isThis := target.Object.(*ast.ThisExpression); isThis {
				c.initializedFields[target.Property] = true
			}
		}
		fieldType := c.checkExpression(target)
		if !c.Interner.IsAssignableTo(valueType, fieldType) {
			c.errorf(diagnostics.ErrTypeMismatch, a, "cannot assign %s to %s", valueType.String(), fieldType.String())
		}
		return fieldType

	case *ast.IndexExpression:
		ot := c.checkExpression(target.Object)
		c.checkExpression(target.Index)
		switch obj := ot.(type) {
		case *types.ArrayType:
			if !c.Interner.IsAssignableTo(valueType, obj.ElementType) {
				c.errorf(diagnostics.ErrTypeMismatch, a, "cannot assign %s to %s", valueType.String(), obj.ElementType.String())
			}
			return obj.ElementType
		case *types.FixedArrayType:
			if !c.Interner.IsAssignableTo(valueType, obj.ElementType) {
				c.errorf(diagnostics.ErrTypeMismatch, a, "cannot assign %s to %s", valueType.String(), obj.ElementType.String())
			}
			return obj.ElementType
		case *types.ClassType:
			if ft, ok := classMethod(obj, config.IndexSetMethodName); ok {
				if len(ft.Parameters) == 2 && !c.Interner.IsAssignableTo(valueType, ft.Parameters[1]) {
					c.errorf(diagnostics.ErrTypeMismatch, a, "cannot assign %s to %s", valueType.String(), ft.Parameters[1].String())
				}
				return ft.ReturnType
			}
		}
		c.errorf(diagnostics.ErrNotIndexable, target, "%s is not indexable", ot.String())
		return types.Unknown

	default:
		c.errorf(diagnostics.ErrInvalidAssignment, a, "invalid assignment target")
		return valueType
	}
}

func (c *Checker) checkThrow(t *ast.ThrowExpression) types.Type {
	operand := c.checkExpression(t.Operand)
	errClass := c.wellKnownClass(config.ErrorClassName)
	if errClass != types.Unknown && !c.Interner.IsAssignableTo(operand, errClass) {
		c.errorf(diagnostics.ErrTypeMismatch, t, "cannot throw %s", operand.String())
	}
	return types.Never
}

func (c *Checker) checkRange(r *ast.RangeExpression) types.Type {
	var name string
	switch {
	case r.From != nil && r.To != nil:
		c.checkExpression(r.From)
		c.checkExpression(r.To)
		name = config.BoundedRangeClassName
	case r.From != nil:
		c.checkExpression(r.From)
		name = config.FromRangeClassName
	case r.To != nil:
		c.checkExpression(r.To)
		name = config.ToRangeClassName
	default:
		name = config.FullRangeClassName
	}
	return c.wellKnownClass(name)
}
