// Package diagnostics collects and renders compiler errors produced by the
// type system, checker, and usage analyzer.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funxy/internal/token"
)

// ErrorCode identifies a diagnostic's category. Codes are grouped by subsystem
// prefix: R (resolution), T (type), A (arity), M (mutability), S (semantic),
// I (inference), X (internal).
type ErrorCode string

const (
	ErrSymbolNotFound               ErrorCode = "R001"
	ErrPrivateMemberAccess          ErrorCode = "R002"
	ErrPropertyNotFound             ErrorCode = "R003"

	ErrTypeMismatch                 ErrorCode = "T001"
	ErrNotIndexable                 ErrorCode = "T002"
	ErrInvalidUnionMember           ErrorCode = "T003"
	ErrDistinctAliasViolation       ErrorCode = "T004"
	ErrIndexOutOfBounds             ErrorCode = "T005"

	ErrArgumentCountMismatch        ErrorCode = "A001"
	ErrGenericTypeArgumentMismatch  ErrorCode = "A002"
	ErrOperatorArityMismatch        ErrorCode = "A003"

	ErrInvalidAssignment            ErrorCode = "M001"

	ErrDuplicateDeclaration         ErrorCode = "S001"
	ErrCannotInstantiateAbstractClass ErrorCode = "S002"
	ErrThisBeforeSuper              ErrorCode = "S003"
	ErrReturnOutsideFunction        ErrorCode = "S004"
	ErrAbstractFieldAccess          ErrorCode = "S005"
	ErrUninitializedFieldAccess     ErrorCode = "S006"

	ErrCannotInferTypeArgument      ErrorCode = "I001"

	ErrInternalCompilerError        ErrorCode = "X001"
)

// DiagnosticError is a single reported problem, optionally located in source.
type DiagnosticError struct {
	Code     ErrorCode
	Message  string
	Position token.Position
	HasPos   bool
}

func (e *DiagnosticError) Error() string {
	if e.HasPos {
		return fmt.Sprintf("%s: [%s] %s", e.Position.String(), e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// New creates a diagnostic located at tok's position.
func New(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: message, Position: tok.Position, HasPos: true}
}

// NewUnlocated creates a diagnostic with no source position (e.g. whole-program errors).
func NewUnlocated(code ErrorCode, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: message}
}

// Bag accumulates diagnostics for a single compilation run.
type Bag struct {
	// RunID correlates every diagnostic emitted during one TS/SC/UA run,
	// the way a build system stitches together logs from a multi-module
	// compile.
	RunID  string
	errors []*DiagnosticError
}

func NewBag(runID string) *Bag {
	return &Bag{RunID: runID}
}

func (b *Bag) Add(d *DiagnosticError) {
	b.errors = append(b.errors, d)
}

func (b *Bag) Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) {
	b.Add(New(code, tok, fmt.Sprintf(format, args...)))
}

func (b *Bag) HasErrors() bool {
	return len(b.errors) > 0
}

func (b *Bag) Errors() []*DiagnosticError {
	return b.errors
}

func (b *Bag) Len() int {
	return len(b.errors)
}
