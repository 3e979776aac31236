package types

import "strings"

// ArrayType is a growable array (semantic; distinct from FixedArray).
type ArrayType struct {
	ElementType Type
}

func (a *ArrayType) String() string { return "Array<" + a.ElementType.String() + ">" }

// FixedArrayType is a fixed-length array, backed by the well-known class
// config.FixedArrayClassName.
type FixedArrayType struct {
	ElementType Type
}

func (a *FixedArrayType) String() string { return "FixedArray<" + a.ElementType.String() + ">" }

// TupleType is an ordered, fixed-arity sequence of element types.
type TupleType struct {
	ElementTypes []Type
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.ElementTypes))
	for i, e := range t.ElementTypes {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RecordType is a structurally typed record.
type RecordType struct {
	Properties map[string]Type
	// Order preserves declaration order for deterministic String()/iteration.
	Order []string
}

func (r *RecordType) String() string {
	parts := make([]string, 0, len(r.Order))
	for _, name := range r.Order {
		parts = append(parts, name+": "+r.Properties[name].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FunctionType is a callable signature, with optional generic parameters and
// overload alternatives (spec.md §9 "Overloaded functions").
type FunctionType struct {
	TypeParameters []*TypeParameter
	Parameters     []Type
	ReturnType     Type
	// Overloads holds alternative signatures attached to the same binding;
	// resolution picks the first compatible candidate in source order
	// (spec.md §4.2.2 CallExpression rule 4).
	Overloads []*FunctionType
}

func (f *FunctionType) String() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.String()
	}
	prefix := ""
	if len(f.TypeParameters) > 0 {
		tp := make([]string, len(f.TypeParameters))
		for i, t := range f.TypeParameters {
			tp[i] = t.Name
		}
		prefix = "<" + strings.Join(tp, ", ") + ">"
	}
	ret := "Void"
	if f.ReturnType != nil {
		ret = f.ReturnType.String()
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") -> " + ret
}
