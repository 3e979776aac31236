package types

import "strings"

// ClassType is a (possibly generic, possibly instantiated) class. Per
// spec.md §3.1: an instance with isExtension set carries OnType pointing at
// the underlying type it attaches methods to.
type ClassType struct {
	Name           string
	TypeParameters []*TypeParameter
	TypeArguments  []Type // nil for the template itself
	Fields         map[string]Type
	FieldOrder     []string
	Methods        map[string]*FunctionType
	MethodOrder    []string
	ConstructorType *FunctionType
	SuperType      *ClassType
	Implements     []*InterfaceType
	IsFinal        bool
	IsAbstract     bool
	IsExtension    bool
	OnType         Type // set when IsExtension
	// GenericSource points from a specialization back to its template.
	GenericSource *ClassType
}

// String intentionally does not recurse into Fields/Methods/SuperType: class
// identity is name + type arguments, and printing the full structural body
// would not terminate for self-referential classes (spec.md §9).
func (c *ClassType) String() string {
	if len(c.TypeArguments) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.TypeArguments))
	for i, a := range c.TypeArguments {
		parts[i] = a.String()
	}
	return c.Name + "<" + strings.Join(parts, ", ") + ">"
}

// InterfaceType is a (possibly generic, possibly instantiated) interface.
type InterfaceType struct {
	Name           string
	TypeParameters []*TypeParameter
	TypeArguments  []Type
	Fields         map[string]Type
	FieldOrder     []string
	Methods        map[string]*FunctionType
	MethodOrder    []string
	Extends        []*InterfaceType
	GenericSource  *InterfaceType
}

func (i *InterfaceType) String() string {
	if len(i.TypeArguments) == 0 {
		return i.Name
	}
	parts := make([]string, len(i.TypeArguments))
	for idx, a := range i.TypeArguments {
		parts[idx] = a.String()
	}
	return i.Name + "<" + strings.Join(parts, ", ") + ">"
}

// MixinType is a (possibly generic, possibly instantiated) mixin restricted
// to apply "on" a given type.
type MixinType struct {
	Name           string
	TypeParameters []*TypeParameter
	TypeArguments  []Type
	Fields         map[string]Type
	FieldOrder     []string
	Methods        map[string]*FunctionType
	MethodOrder    []string
	OnType         Type
	GenericSource  *MixinType
}

func (m *MixinType) String() string {
	if len(m.TypeArguments) == 0 {
		return m.Name
	}
	parts := make([]string, len(m.TypeArguments))
	for idx, a := range m.TypeArguments {
		parts[idx] = a.String()
	}
	return m.Name + "<" + strings.Join(parts, ", ") + ">"
}

// TypeParameter is a generic parameter, e.g. the `T` in `class Box<T>`.
type TypeParameter struct {
	Name        string
	DefaultType Type // nil if no default
}

func (t *TypeParameter) String() string { return t.Name }

// TypeAlias is `type Name = Target` or, when IsDistinct, an opaque alias
// that is never assignable to or from Target (spec.md §3.1).
type TypeAlias struct {
	Name           string
	Target         Type
	TypeParameters []*TypeParameter
	IsDistinct     bool
}

func (t *TypeAlias) String() string { return t.Name }

// UnionType is `A | B | C`. Construct only via NewUnion, which enforces the
// validity rules of spec.md §4.1.5.
type UnionType struct {
	Types []Type
}

func (u *UnionType) String() string {
	parts := make([]string, len(u.Types))
	for i, t := range u.Types {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}
