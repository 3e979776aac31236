package types

// Subst maps a type parameter name to its replacement type.
type Subst map[string]Type

// Substitute replaces every TypeParameter reference in t according to subst,
// recursing through compound types (spec.md §4.1.1). It mirrors the
// teacher's ApplyWithCycleCheck (internal/typesystem/types.go in
// funvibe-funxy): a visited set keyed by parameter name prevents infinite
// recursion when a substitution maps a parameter back to a type that
// contains the same parameter (spec.md §9's recursive-generic caveat).
func Substitute(t Type, subst Subst) Type {
	return substituteVisited(t, subst, map[string]bool{})
}

func substituteVisited(t Type, subst Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *TypeParameter:
		if visited[v.Name] {
			return v
		}
		if repl, ok := subst[v.Name]; ok {
			if tp, ok := repl.(*TypeParameter); ok && tp.Name == v.Name {
				return v
			}
			nv := copyVisited(visited)
			nv[v.Name] = true
			return substituteVisited(repl, subst, nv)
		}
		return v

	case *ArrayType:
		return &ArrayType{ElementType: substituteVisited(v.ElementType, subst, visited)}

	case *FixedArrayType:
		return &FixedArrayType{ElementType: substituteVisited(v.ElementType, subst, visited)}

	case *TupleType:
		elems := make([]Type, len(v.ElementTypes))
		for i, e := range v.ElementTypes {
			elems[i] = substituteVisited(e, subst, visited)
		}
		return &TupleType{ElementTypes: elems}

	case *RecordType:
		props := make(map[string]Type, len(v.Properties))
		for name, pt := range v.Properties {
			props[name] = substituteVisited(pt, subst, visited)
		}
		return &RecordType{Properties: props, Order: append([]string(nil), v.Order...)}

	case *FunctionType:
		return substituteFunction(v, subst, visited)

	case *UnionType:
		members := make([]Type, len(v.Types))
		for i, m := range v.Types {
			members[i] = substituteVisited(m, subst, visited)
		}
		return &UnionType{Types: members}

	case *ClassType:
		return substituteClass(v, subst, visited)

	case *InterfaceType:
		return substituteInterface(v, subst, visited)

	case *MixinType:
		return substituteMixin(v, subst, visited)

	case *TypeAlias:
		// Distinct and transparent aliases substitute only their target;
		// identity of the alias itself is unaffected by substitution.
		return &TypeAlias{
			Name:           v.Name,
			Target:         substituteVisited(v.Target, subst, visited),
			TypeParameters: v.TypeParameters,
			IsDistinct:     v.IsDistinct,
		}

	default:
		// Singletons, NumberType, LiteralType: no type parameters inside.
		return t
	}
}

func copyVisited(v map[string]bool) map[string]bool {
	nv := make(map[string]bool, len(v)+1)
	for k := range v {
		nv[k] = true
	}
	return nv
}

func substituteFunction(f *FunctionType, subst Subst, visited map[string]bool) *FunctionType {
	params := make([]Type, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = substituteVisited(p, subst, visited)
	}
	var ret Type
	if f.ReturnType != nil {
		ret = substituteVisited(f.ReturnType, subst, visited)
	}
	var overloads []*FunctionType
	for _, o := range f.Overloads {
		overloads = append(overloads, substituteFunction(o, subst, visited))
	}
	return &FunctionType{
		TypeParameters: f.TypeParameters,
		Parameters:     params,
		ReturnType:     ret,
		Overloads:      overloads,
	}
}

func substituteClass(c *ClassType, subst Subst, visited map[string]bool) *ClassType {
	out := &ClassType{
		Name:          c.Name,
		IsFinal:       c.IsFinal,
		IsAbstract:    c.IsAbstract,
		IsExtension:   c.IsExtension,
		GenericSource: c.GenericSource,
	}
	if len(c.TypeArguments) > 0 {
		out.TypeArguments = make([]Type, len(c.TypeArguments))
		for i, a := range c.TypeArguments {
			out.TypeArguments[i] = substituteVisited(a, subst, visited)
		}
	}
	out.Fields = make(map[string]Type, len(c.Fields))
	for name, ft := range c.Fields {
		out.Fields[name] = substituteVisited(ft, subst, visited)
	}
	out.FieldOrder = append([]string(nil), c.FieldOrder...)
	out.Methods = make(map[string]*FunctionType, len(c.Methods))
	for name, mt := range c.Methods {
		out.Methods[name] = substituteFunction(mt, subst, visited)
	}
	out.MethodOrder = append([]string(nil), c.MethodOrder...)
	if c.ConstructorType != nil {
		out.ConstructorType = substituteFunction(c.ConstructorType, subst, visited)
	}
	if c.SuperType != nil {
		out.SuperType = substituteClass(c.SuperType, subst, visited)
	}
	for _, iface := range c.Implements {
		out.Implements = append(out.Implements, substituteInterface(iface, subst, visited))
	}
	if c.OnType != nil {
		out.OnType = substituteVisited(c.OnType, subst, visited)
	}
	return out
}

func substituteInterface(i *InterfaceType, subst Subst, visited map[string]bool) *InterfaceType {
	out := &InterfaceType{Name: i.Name, GenericSource: i.GenericSource}
	if len(i.TypeArguments) > 0 {
		out.TypeArguments = make([]Type, len(i.TypeArguments))
		for idx, a := range i.TypeArguments {
			out.TypeArguments[idx] = substituteVisited(a, subst, visited)
		}
	}
	out.Fields = make(map[string]Type, len(i.Fields))
	for name, ft := range i.Fields {
		out.Fields[name] = substituteVisited(ft, subst, visited)
	}
	out.FieldOrder = append([]string(nil), i.FieldOrder...)
	out.Methods = make(map[string]*FunctionType, len(i.Methods))
	for name, mt := range i.Methods {
		out.Methods[name] = substituteFunction(mt, subst, visited)
	}
	out.MethodOrder = append([]string(nil), i.MethodOrder...)
	for _, ext := range i.Extends {
		out.Extends = append(out.Extends, substituteInterface(ext, subst, visited))
	}
	return out
}

func substituteMixin(m *MixinType, subst Subst, visited map[string]bool) *MixinType {
	out := &MixinType{Name: m.Name, GenericSource: m.GenericSource}
	if len(m.TypeArguments) > 0 {
		out.TypeArguments = make([]Type, len(m.TypeArguments))
		for idx, a := range m.TypeArguments {
			out.TypeArguments[idx] = substituteVisited(a, subst, visited)
		}
	}
	out.Fields = make(map[string]Type, len(m.Fields))
	for name, ft := range m.Fields {
		out.Fields[name] = substituteVisited(ft, subst, visited)
	}
	out.FieldOrder = append([]string(nil), m.FieldOrder...)
	out.Methods = make(map[string]*FunctionType, len(m.Methods))
	for name, mt := range m.Methods {
		out.Methods[name] = substituteFunction(mt, subst, visited)
	}
	out.MethodOrder = append([]string(nil), m.MethodOrder...)
	if m.OnType != nil {
		out.OnType = substituteVisited(m.OnType, subst, visited)
	}
	return out
}
