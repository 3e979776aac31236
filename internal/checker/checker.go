// Package checker is the Semantic Checker (SC) component of spec.md §4.2:
// it walks the AST statement-by-statement and expression-by-expression,
// resolves names against internal/symbols, infers and checks types via
// internal/types, writes the inferredType/resolvedBinding side tables onto
// the AST, and collects internal/diagnostics. Modeled on the teacher's
// internal/analyzer package (funvibe-funxy) — same scope-stack-plus-walker
// shape, generalized from funxy's Hindley-Milner inference to spec.md's
// nominal class/interface/generics checking.
package checker

import (
	"github.com/google/uuid"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/types"
)

// ModuleExports is what a checked module hands to importers.
type ModuleExports struct {
	Values map[string]*symbols.SymbolInfo
	Types  map[string]*symbols.SymbolInfo
}

// Checker holds all mutable state for one compilation run across every
// module, mirroring the teacher's Analyzer struct.
type Checker struct {
	Interner *types.Interner
	SemCtx   *symbols.SemanticContext
	Diags    *diagnostics.Bag

	scopes *symbols.ScopeStack

	// currentClass/currentMethod/currentFunctionReturnType track the
	// enclosing declaration while checking a method or function body
	// (spec.md §4.2.2 private-member-access rule, §4.2.3 field init).
	currentClass              *types.ClassType
	selfType                  types.Type
	currentMethod             string
	currentFunctionReturnType types.Type
	isThisInitialized         bool
	isCheckingFieldInitializer bool
	initializedFields         map[string]bool
	insideConstructor         bool

	inferCtx *inferenceContext

	imports map[string]ModuleExports

	genCounter int
}

// New creates a Checker sharing interner across every module of a program
// (types created by one module's classes must be visible, by identity, to
// every other module that imports them).
func New(interner *types.Interner) *Checker {
	return &Checker{
		Interner: interner,
		SemCtx:   symbols.NewSemanticContext(),
		Diags:    diagnostics.NewBag(uuid.NewString()),
		scopes:   symbols.NewScopeStack(),
		inferCtx: newInferenceContext(),
		imports:  map[string]ModuleExports{},
	}
}

func (c *Checker) errorf(code diagnostics.ErrorCode, node ast.Node, format string, args ...interface{}) {
	c.Diags.Errorf(code, node.GetToken(), format, args...)
}

// declOf turns a SymbolInfo's Decl back into an ast.Node for the
// usage analyzer's worklist (spec.md §4.3.1's declarationsByName/...ByType
// fallback uses the same Decl field).
func declOf(info *symbols.SymbolInfo) ast.Node {
	if info == nil {
		return nil
	}
	return info.Decl
}

// SetImports makes another module's exports resolvable from import
// statements processed in this checker run (spec.md §6.1 module graph).
func (c *Checker) SetImports(path string, exports ModuleExports) {
	c.imports[path] = exports
}

// Exports snapshots the current global scope for use by importing modules.
// Only the names in exported are included — CheckModule fills that set as it
// declares each exported declaration.
func (c *Checker) Exports(exported map[string]bool) ModuleExports {
	out := ModuleExports{Values: map[string]*symbols.SymbolInfo{}, Types: map[string]*symbols.SymbolInfo{}}
	for name := range exported {
		if info, ok := c.scopes.ResolveValue(name); ok {
			out.Values[name] = info
		}
		if info, ok := c.scopes.ResolveType(name); ok {
			out.Types[name] = info
		}
	}
	return out
}

// freshTypeVarName returns a process-unique name for an inferred generic
// argument placeholder used only in diagnostic messages (it never reaches a
// final Type — genuine inference failures are reported, not patched over
// with a placeholder type).
func (c *Checker) freshTypeVarName() string {
	c.genCounter++
	if config.IsTestMode {
		return "t?"
	}
	return "t" + itoa(c.genCounter)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
