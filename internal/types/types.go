// Package types is the Type System (TS) component of spec.md §4.1: the
// canonical representation of types, interning, instantiation, substitution,
// and the assignability/adaptability relations. It has no dependency on the
// checker or usage analyzer — it is the leaf-most package in the pipeline
// (spec.md §2 dependency order).
package types

import (
	"strconv"
	"strings"
)

// Type is the tagged-variant interface every type kind implements. Every
// concrete kind is a pointer type so that `==` on a Type interface value is
// pointer identity — the interning guarantee of spec.md §3.1 falls directly
// out of that and needs no separate equality method.
type Type interface {
	String() string
}

// --- Nullary singletons (spec.md §3.1) ---

type NeverType struct{}
type VoidType struct{}
type NullType struct{}
type AnyType struct{}
type AnyRefType struct{}
type UnknownType struct{}
type BooleanType struct{}
type ByteArrayType struct{}

func (*NeverType) String() string     { return "Never" }
func (*VoidType) String() string      { return "Void" }
func (*NullType) String() string      { return "Null" }
func (*AnyType) String() string       { return "Any" }
func (*AnyRefType) String() string    { return "AnyRef" }
func (*UnknownType) String() string   { return "Unknown" }
func (*BooleanType) String() string   { return "Boolean" }
func (*ByteArrayType) String() string { return "ByteArray" }

// Process-wide singletons. Every site that means "the Never type" must use
// this exact pointer — that's what makes `source == target` (rule 1 of
// isAssignableTo) a valid identity check.
var (
	Never     = &NeverType{}
	Void      = &VoidType{}
	Null      = &NullType{}
	Any       = &AnyType{}
	AnyRef    = &AnyRefType{}
	Unknown   = &UnknownType{}
	Boolean   = &BooleanType{}
	ByteArray = &ByteArrayType{}
)

// NumberType is one of the fixed-width numeric kinds.
type NumberType struct {
	Name string // i32, i64, u32, u64, f32, f64
}

func (n *NumberType) String() string { return n.Name }

var numberSingletons = map[string]*NumberType{}

// NumberKind returns the (singleton, interned) NumberType for name, creating
// it on first use.
func NumberKind(name string) *NumberType {
	if n, ok := numberSingletons[name]; ok {
		return n
	}
	n := &NumberType{Name: name}
	numberSingletons[name] = n
	return n
}

var (
	I32 = NumberKind("i32")
	I64 = NumberKind("i64")
	U32 = NumberKind("u32")
	U64 = NumberKind("u64")
	F32 = NumberKind("f32")
	F64 = NumberKind("f64")
)

// LiteralType is a singleton literal type, e.g. the type of the expression
// `42` considered on its own before being widened to i32.
type LiteralType struct {
	Value interface{} // string | float64 | bool
}

func (l *LiteralType) String() string {
	switch v := l.Value.(type) {
	case string:
		return "\"" + v + "\""
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return formatNumber(v)
	}
}

func formatNumber(v interface{}) string {
	switch n := v.(type) {
	case float64:
		s := trimFloat(n)
		return s
	default:
		return "?"
	}
}

func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "" || s == "-" {
		s += "0"
	}
	return s
}
