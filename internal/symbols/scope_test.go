package symbols_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/symbols"
	"github.com/funvibe/funxy/internal/token"
	"github.com/funvibe/funxy/internal/types"
)

// fakeNode is a minimal ast.Node stand-in so SemanticContext can be tested
// without constructing a real AST node.
type fakeNode struct{}

func (*fakeNode) TokenLiteral() string   { return "" }
func (*fakeNode) GetToken() token.Token  { return token.Token{} }

// TestScopeStackShadowing covers spec.md §4.2.1: resolution walks innermost
// to outermost, so an inner declaration shadows an outer one of the same
// name without mutating it.
func TestScopeStackShadowing(t *testing.T) {
	s := symbols.NewScopeStack()
	s.DeclareValue("x", &symbols.SymbolInfo{Type: types.I32, Kind: symbols.DeclLet})

	s.Push()
	s.DeclareValue("x", &symbols.SymbolInfo{Type: types.Boolean, Kind: symbols.DeclLet})
	inner, ok := s.ResolveValue("x")
	if !ok || inner.Type != types.Boolean {
		t.Fatalf("expected inner x to resolve to Boolean, got %+v", inner)
	}
	s.Pop()

	outer, ok := s.ResolveValue("x")
	if !ok || outer.Type != types.I32 {
		t.Fatalf("expected outer x to resolve to i32 after popping the inner scope, got %+v", outer)
	}
}

// TestScopeStackValueTypeCoexist covers spec.md §4.2.1's "value:name and
// type:name coexist" rule: a class name inhabits both namespaces without
// collision.
func TestScopeStackValueTypeCoexist(t *testing.T) {
	s := symbols.NewScopeStack()
	classType := &types.ClassType{Name: "Widget"}
	if _, dup := s.DeclareValue("Widget", &symbols.SymbolInfo{Type: classType, Kind: symbols.DeclLet}); dup {
		t.Fatalf("unexpected duplicate on first value declaration")
	}
	if _, dup := s.DeclareType("Widget", &symbols.SymbolInfo{Type: classType, Kind: symbols.DeclType}); dup {
		t.Fatalf("unexpected duplicate: value and type namespaces must not collide")
	}
	if _, ok := s.ResolveValue("Widget"); !ok {
		t.Errorf("expected Widget to resolve in the value namespace")
	}
	if _, ok := s.ResolveType("Widget"); !ok {
		t.Errorf("expected Widget to resolve in the type namespace")
	}
}

// TestScopeStackDuplicateDeclaration covers the collision path DeclareValue
// reports to the checker (which turns it into a DuplicateDeclaration
// diagnostic).
func TestScopeStackDuplicateDeclaration(t *testing.T) {
	s := symbols.NewScopeStack()
	s.DeclareValue("x", &symbols.SymbolInfo{Type: types.I32, Kind: symbols.DeclLet})
	existing, dup := s.DeclareValue("x", &symbols.SymbolInfo{Type: types.Boolean, Kind: symbols.DeclLet})
	if !dup {
		t.Fatalf("expected a duplicate declaration to be reported")
	}
	if existing.Type != types.I32 {
		t.Errorf("expected the existing (first) declaration to be returned, got %+v", existing)
	}
}

// TestScopeStackPrelude covers the prelude fallback and its used-name
// tracking: a name only declared in the prelude resolves, and only once
// consulted is it recorded as used.
func TestScopeStackPrelude(t *testing.T) {
	s := symbols.NewScopeStack()
	s.DeclarePrelude("String", &symbols.SymbolInfo{Type: &types.ClassType{Name: "String"}, Kind: symbols.DeclType}, true)

	if used := s.UsedPreludeNames(); used["String"] {
		t.Fatalf("prelude name should not be marked used before being resolved")
	}
	if _, ok := s.ResolveType("String"); !ok {
		t.Fatalf("expected String to resolve via the prelude table")
	}
	if used := s.UsedPreludeNames(); !used["String"] {
		t.Errorf("expected String to be marked used after being resolved")
	}
}

// TestResolvedBindingUnwrap covers spec.md §3.2: an import binding
// recursively wraps its target, and Unwrap follows the chain to the
// underlying non-import binding.
func TestResolvedBindingUnwrap(t *testing.T) {
	target := &symbols.ResolvedBinding{Kind: symbols.BindFunction, Name: "helper"}
	imported := &symbols.ResolvedBinding{Kind: symbols.BindImport, Name: "helper", Target: target}
	reexported := &symbols.ResolvedBinding{Kind: symbols.BindImport, Name: "helper", Target: imported}

	if got := reexported.Unwrap(); got != target {
		t.Errorf("expected Unwrap to follow the import chain to the underlying binding, got %+v", got)
	}
	if got := target.Unwrap(); got != target {
		t.Errorf("expected Unwrap on a non-import binding to return itself")
	}
}

// TestSemanticContextBindLookup covers the checker->usage-analyzer side
// channel: a node bound once is retrievable by identity, and an unbound node
// reports a clean miss rather than a zero-value binding.
func TestSemanticContextBindLookup(t *testing.T) {
	ctx := symbols.NewSemanticContext()
	node := &fakeNode{}
	other := &fakeNode{}

	if _, ok := ctx.Lookup(node); ok {
		t.Fatalf("expected a miss before any binding is recorded")
	}

	binding := &symbols.ResolvedBinding{Kind: symbols.BindField, Name: "x"}
	ctx.Bind(node, binding)

	got, ok := ctx.Lookup(node)
	if !ok || got != binding {
		t.Fatalf("expected Lookup to return the exact bound binding, got %+v, %v", got, ok)
	}
	if _, ok := ctx.Lookup(other); ok {
		t.Errorf("expected a different node identity to still miss")
	}
}
