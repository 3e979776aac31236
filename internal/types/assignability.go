package types

// StrictLiteralWidening, when true (the default, per SPEC_FULL.md's decision
// on spec.md §9's open question), restricts integer-literal assignability to
// i32 only. Exposed as a field on Interner rather than a package global so a
// driver embedding multiple interners (e.g. tests) can vary it independently.
func (in *Interner) SetStrictLiteralWidening(v bool) { in.strictLiteralWidening = v }

// IsAssignableTo implements spec.md §4.1.3, rules applied in order with the
// first match winning.
func (in *Interner) IsAssignableTo(source, target Type) bool {
	// Rule 1: identity.
	if source == target {
		return true
	}
	// Rule 2.
	if _, ok := source.(*NeverType); ok {
		return true
	}
	if _, ok := source.(*UnknownType); ok {
		return true
	}
	if _, ok := target.(*UnknownType); ok {
		return true
	}
	// Rule 3.
	if _, ok := target.(*AnyType); ok {
		return true
	}
	if _, ok := source.(*AnyType); ok {
		return false
	}
	// Rule 4: literal widening.
	if lit, ok := source.(*LiteralType); ok {
		return in.literalAssignableTo(lit, target)
	}
	// Rule 5.
	if _, ok := target.(*AnyRefType); ok {
		if isReferenceKind(source) {
			return true
		}
	}
	// Rule 6: distinct alias.
	if da, ok := source.(*TypeAlias); ok && da.IsDistinct {
		if ta, ok := target.(*TypeAlias); ok && ta.Name == da.Name {
			return true
		}
		if u, ok := target.(*UnionType); ok {
			return unionContainsDistinct(u, da)
		}
		return false
	}
	if da, ok := target.(*TypeAlias); ok && da.IsDistinct {
		if sa, ok := source.(*TypeAlias); ok && sa.Name == da.Name {
			return true
		}
		return false
	}
	// Rule 7: transparent alias.
	if ta, ok := source.(*TypeAlias); ok && !ta.IsDistinct {
		return in.IsAssignableTo(ta.Target, target)
	}
	if ta, ok := target.(*TypeAlias); ok && !ta.IsDistinct {
		return in.IsAssignableTo(source, ta.Target)
	}
	// Rule 8: union source.
	if su, ok := source.(*UnionType); ok {
		for _, m := range su.Types {
			if !in.IsAssignableTo(m, target) {
				return false
			}
		}
		return true
	}
	// Rule 9: union target.
	if tu, ok := target.(*UnionType); ok {
		for _, m := range tu.Types {
			if in.IsAssignableTo(source, m) {
				return true
			}
		}
		return false
	}
	// Rule 10: null.
	if _, ok := source.(*NullType); ok {
		if _, ok := target.(*NullType); ok {
			return true
		}
		return isReferenceKind(target)
	}
	// Rule 11/12: class source.
	if sc, ok := source.(*ClassType); ok {
		if tc, ok := target.(*ClassType); ok {
			if classAssignableToClass(sc, tc) {
				return true
			}
		}
		if ti, ok := target.(*InterfaceType); ok {
			if in.classImplementsInterface(sc, ti) {
				return true
			}
		}
		if tr, ok := target.(*RecordType); ok {
			// Rule 15: Class -> Record.
			if in.classAssignableToRecord(sc, tr) {
				return true
			}
		}
		// Rule 16: extension class -> T.
		if sc.IsExtension && sc.OnType != nil {
			if in.IsAssignableTo(sc.OnType, target) {
				return true
			}
		}
	}
	// Rule 13: interface source.
	if si, ok := source.(*InterfaceType); ok {
		if ti, ok := target.(*InterfaceType); ok {
			if interfaceAssignableToInterface(si, ti) {
				return true
			}
		}
	}
	// Rule 14: record source.
	if sr, ok := source.(*RecordType); ok {
		if tr, ok := target.(*RecordType); ok {
			if in.recordAssignableToRecord(sr, tr) {
				return true
			}
		}
	}
	// Rule 17: array -> extension class wrapping array.
	if tc, ok := target.(*ClassType); ok && tc.IsExtension && tc.OnType != nil {
		if in.IsAssignableTo(source, tc.OnType) {
			return true
		}
	}
	// Rule 18: source has an extension implementing target interface.
	if ti, ok := target.(*InterfaceType); ok {
		if in.hasExtensionImplementing(source, ti) {
			return true
		}
	}
	// Rule 19: function -> function.
	if sf, ok := source.(*FunctionType); ok {
		if tf, ok := target.(*FunctionType); ok {
			return in.IsAdaptable(sf, tf)
		}
	}
	// Rule 20: fallback.
	return source.String() == target.String()
}

func (in *Interner) literalAssignableTo(lit *LiteralType, target Type) bool {
	switch lit.Value.(type) {
	case string:
		if tc, ok := target.(*ClassType); ok && isWellKnownString(tc) {
			return true
		}
	case bool:
		if _, ok := target.(*BooleanType); ok {
			return true
		}
	case float64:
		if n, ok := target.(*NumberType); ok {
			if !in.strictLiteralWidening {
				return true
			}
			return n.Name == "i32"
		}
	}
	return false
}

func isWellKnownString(c *ClassType) bool {
	root := c
	for root.GenericSource != nil {
		root = root.GenericSource
	}
	return root.Name == "String"
}

func isReferenceKind(t Type) bool {
	switch t.(type) {
	case *ClassType, *InterfaceType, *ArrayType, *FixedArrayType, *RecordType,
		*TupleType, *FunctionType, *NullType, *ByteArrayType, *MixinType:
		return true
	default:
		return false
	}
}

func unionContainsDistinct(u *UnionType, alias *TypeAlias) bool {
	for _, m := range u.Types {
		if ta, ok := m.(*TypeAlias); ok && ta.Name == alias.Name {
			return true
		}
	}
	return false
}

// classAssignableToClass walks source's superType chain looking for target,
// matched by canonical string or by the "self-ref vs base" special case
// (spec.md §4.1.3 rule 11): a class body referencing itself before its own
// specialization is fully built compares equal to the eventual instance.
func classAssignableToClass(source, target *ClassType) bool {
	for c := source; c != nil; c = c.SuperType {
		if c == target {
			return true
		}
		if c.String() == target.String() {
			return true
		}
		if selfRefMatches(c, target) {
			return true
		}
	}
	return false
}

func selfRefMatches(a, b *ClassType) bool {
	ga, gb := a, b
	for ga.GenericSource != nil {
		ga = ga.GenericSource
	}
	for gb.GenericSource != nil {
		gb = gb.GenericSource
	}
	return ga == gb && ga.Name == gb.Name
}

// classImplementsInterface walks source's superclass chain; at each class,
// checks each implemented interface via recursive assignability. If the
// Implements list is empty on an instantiated class but its generic source
// declares interfaces, those are reconstituted by substituting the
// instance's type arguments (spec.md §4.1.3 rule 12).
func (in *Interner) classImplementsInterface(source *ClassType, target *InterfaceType) bool {
	for c := source; c != nil; c = c.SuperType {
		ifaces := c.Implements
		if len(ifaces) == 0 && c.GenericSource != nil && len(c.GenericSource.Implements) > 0 {
			subst := buildSubst(c.GenericSource.TypeParameters, c.TypeArguments)
			for _, gi := range c.GenericSource.Implements {
				ifaces = append(ifaces, substituteInterface(gi, subst, map[string]bool{}))
			}
		}
		for _, iface := range ifaces {
			if interfaceAssignableToInterface(iface, target) {
				return true
			}
		}
	}
	return false
}

// interfaceAssignableToInterface matches by canonical string identity, or
// transitively through Extends (spec.md §4.1.3 rule 13).
func interfaceAssignableToInterface(source, target *InterfaceType) bool {
	if source == target || source.String() == target.String() {
		return true
	}
	for _, ext := range source.Extends {
		if interfaceAssignableToInterface(ext, target) {
			return true
		}
	}
	return false
}

// recordAssignableToRecord is width subtyping: every target property must
// exist in source with an assignable type (spec.md §4.1.3 rule 14).
func (in *Interner) recordAssignableToRecord(source, target *RecordType) bool {
	for name, propType := range target.Properties {
		sourceType, ok := source.Properties[name]
		if !ok || !in.IsAssignableTo(sourceType, propType) {
			return false
		}
	}
	return true
}

func (in *Interner) classAssignableToRecord(source *ClassType, target *RecordType) bool {
	for name, propType := range target.Properties {
		fieldType, ok := in.lookupClassField(source, name)
		if !ok || !in.IsAssignableTo(fieldType, propType) {
			return false
		}
	}
	return true
}

func (in *Interner) lookupClassField(c *ClassType, name string) (Type, bool) {
	for cur := c; cur != nil; cur = cur.SuperType {
		if t, ok := cur.Fields[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// hasExtensionImplementing iterates the global extension registry looking
// for an extension class that (a) is known to wrap source's shape and (b)
// implements target, unifying generic arguments from the extension's OnType
// pattern against source when the extension is itself generic (spec.md
// §4.1.3 rule 18, §9 "Extension classes over generic targets").
func (in *Interner) hasExtensionImplementing(source Type, target *InterfaceType) bool {
	for _, ext := range in.extensions {
		if ext.OnType == nil {
			continue
		}
		if fa, ok := ext.OnType.(*FixedArrayType); ok {
			sfa, ok := source.(*FixedArrayType)
			if !ok {
				continue
			}
			if tv, ok := fa.ElementType.(*TypeParameter); ok {
				subst := Subst{tv.Name: sfa.ElementType}
				specialized := substituteClass(ext, subst, map[string]bool{})
				if in.classImplementsInterface(specialized, target) {
					return true
				}
				continue
			}
		}
		if in.IsAssignableTo(source, ext.OnType) && in.classImplementsInterface(ext, target) {
			return true
		}
	}
	return false
}

// IsAdaptable implements spec.md §4.1.4 for function-to-function conversion:
// covariant return, source may ignore trailing parameters, contravariant
// parameters for the indices source does use.
func (in *Interner) IsAdaptable(source, target *FunctionType) bool {
	if source.ReturnType != nil && target.ReturnType != nil {
		if !in.IsAssignableTo(source.ReturnType, target.ReturnType) {
			return false
		}
	}
	if len(source.Parameters) > len(target.Parameters) {
		return false
	}
	for i, sp := range source.Parameters {
		if !in.IsAssignableTo(target.Parameters[i], sp) {
			return false
		}
	}
	return true
}
