package symbols

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/types"
)

// DeclKind distinguishes a `let` binding (immutable) from a `var` binding
// (mutable), and a `type` declaration sharing the same name space rules
// (spec.md §4.2.1: "value:name and type:name coexist").
type DeclKind string

const (
	DeclLet  DeclKind = "let"
	DeclVar  DeclKind = "var"
	DeclType DeclKind = "type"
)

// SymbolInfo is a single scope entry.
type SymbolInfo struct {
	Type types.Type
	Kind DeclKind
	Decl ast.Node
	// ImportWrap, when set, is the fully-built import ResolvedBinding to use
	// verbatim for any Identifier that resolves to this entry (spec.md
	// §3.2: "Import bindings recursively wrap a target binding").
	ImportWrap *ResolvedBinding
}

// scope holds the value-namespace and type-namespace entries visible at one
// nesting level.
type scope struct {
	values map[string]*SymbolInfo
	types  map[string]*SymbolInfo
}

func newScope() *scope {
	return &scope{values: map[string]*SymbolInfo{}, types: map[string]*SymbolInfo{}}
}

// ScopeStack is the innermost-to-outermost chain of scopes the checker walks
// during name resolution, plus a standalone prelude table consulted on a
// full miss (spec.md §4.2.1).
type ScopeStack struct {
	scopes      []*scope
	prelude     *scope
	preludeUsed map[string]bool
}

func NewScopeStack() *ScopeStack {
	s := &ScopeStack{prelude: newScope(), preludeUsed: map[string]bool{}}
	s.Push() // global scope
	return s
}

func (s *ScopeStack) Push() {
	s.scopes = append(s.scopes, newScope())
}

func (s *ScopeStack) Pop() {
	if len(s.scopes) > 0 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *ScopeStack) top() *scope { return s.scopes[len(s.scopes)-1] }

// DeclareValue declares a `let`/`var` binding in the innermost scope.
// Returns (existing, true) on a genuine collision (DuplicateDeclaration);
// the one exception, per spec.md §4.2.1, is re-declaring a Function-typed
// `let` with the same name — callers detect that case themselves (via
// LookupValueLocal) and append to FunctionType.Overloads instead of calling
// DeclareValue again.
func (s *ScopeStack) DeclareValue(name string, info *SymbolInfo) (*SymbolInfo, bool) {
	top := s.top()
	if existing, ok := top.values[name]; ok {
		return existing, true
	}
	top.values[name] = info
	return nil, false
}

func (s *ScopeStack) DeclareType(name string, info *SymbolInfo) (*SymbolInfo, bool) {
	top := s.top()
	if existing, ok := top.types[name]; ok {
		return existing, true
	}
	top.types[name] = info
	return nil, false
}

// DeclarePrelude seeds the prelude table from a standard-library module.
func (s *ScopeStack) DeclarePrelude(name string, info *SymbolInfo, isType bool) {
	if isType {
		s.prelude.types[name] = info
	} else {
		s.prelude.values[name] = info
	}
}

// LookupValueLocal looks only in the innermost scope (used to detect the
// function-overload special case before declaring).
func (s *ScopeStack) LookupValueLocal(name string) (*SymbolInfo, bool) {
	info, ok := s.top().values[name]
	return info, ok
}

// ResolveValue walks innermost -> outermost, falling back to the prelude
// table (spec.md §4.2.1). ok is false on a full miss.
func (s *ScopeStack) ResolveValue(name string) (*SymbolInfo, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if info, ok := s.scopes[i].values[name]; ok {
			return info, true
		}
	}
	if info, ok := s.prelude.values[name]; ok {
		s.preludeUsed[name] = true
		return info, true
	}
	return nil, false
}

func (s *ScopeStack) ResolveType(name string) (*SymbolInfo, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if info, ok := s.scopes[i].types[name]; ok {
			return info, true
		}
	}
	if info, ok := s.prelude.types[name]; ok {
		s.preludeUsed[name] = true
		return info, true
	}
	return nil, false
}

// UsedPreludeNames returns every prelude entry consulted during resolution.
func (s *ScopeStack) UsedPreludeNames() map[string]bool {
	return s.preludeUsed
}
