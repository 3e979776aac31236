package types

import "errors"

// Sentinel errors returned by the type system's own operations. The checker
// (internal/checker) translates these into located diagnostics.DiagnosticError
// values; the type system itself stays free of any dependency on
// diagnostics or token, per spec.md §2's leaf-first dependency order.
var (
	ErrArityMismatch        = errors.New("generic type argument count mismatch")
	ErrInvalidUnionMember   = errors.New("invalid union member")
	ErrRecursiveInstantiation = errors.New("recursive generic instantiation")
)
