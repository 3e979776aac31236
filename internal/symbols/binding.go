// Package symbols implements name binding for the Semantic Checker: scope
// stacks, the prelude table, and the SemanticContext side table that maps
// every Identifier/MemberExpression to a ResolvedBinding (spec.md §3.2,
// §4.2.1). Modeled on the teacher's internal/symbols/symbol_table_core.go
// (funvibe-funxy), adapted from its HM-style Symbol to spec.md's nominal
// binding-kind enumeration.
package symbols

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/types"
)

// BindingKind enumerates every kind a ResolvedBinding can carry
// (spec.md §3.2).
type BindingKind int

const (
	BindLocal BindingKind = iota
	BindGlobal
	BindFunction
	BindClass
	BindInterface
	BindMixin
	BindTypeAlias
	BindTypeParameter
	BindImport
	BindField
	BindGetter
	BindSetter
	BindMethod
	BindRecordField
)

func (k BindingKind) String() string {
	switch k {
	case BindLocal:
		return "local"
	case BindGlobal:
		return "global"
	case BindFunction:
		return "function"
	case BindClass:
		return "class"
	case BindInterface:
		return "interface"
	case BindMixin:
		return "mixin"
	case BindTypeAlias:
		return "type-alias"
	case BindTypeParameter:
		return "type-parameter"
	case BindImport:
		return "import"
	case BindField:
		return "field"
	case BindGetter:
		return "getter"
	case BindSetter:
		return "setter"
	case BindMethod:
		return "method"
	case BindRecordField:
		return "record-field"
	default:
		return "unknown"
	}
}

// ResolvedBinding is the resolved meaning of a name or member-access site.
// Import bindings recursively wrap a Target binding (spec.md §3.2).
type ResolvedBinding struct {
	Kind BindingKind
	Name string
	Type types.Type
	// Decl is the AST node that introduced this binding (spec.md glossary
	// "Declaration"); the usage analyzer keys its worklist by this node's
	// identity.
	Decl ast.Node
	// Target unwraps an import binding to what it imports.
	Target *ResolvedBinding
	// ReceiverClass/ReceiverInterface is set for field/getter/setter/method
	// bindings: the (possibly instantiated) class or interface the member
	// was resolved on. The usage analyzer needs this to call markMethodUsed
	// against the right type.
	ReceiverClass     *types.ClassType
	ReceiverInterface *types.InterfaceType
	// IsStaticDispatch is set for a method whose containing class is final
	// or an extension class, and for a field whose class is final — such
	// sites never need polymorphic-usage propagation. A method's own
	// finality is not taken into account.
	IsStaticDispatch bool
}

// Unwrap follows Target through any chain of import bindings and returns the
// underlying non-import binding.
func (b *ResolvedBinding) Unwrap() *ResolvedBinding {
	cur := b
	for cur != nil && cur.Kind == BindImport && cur.Target != nil {
		cur = cur.Target
	}
	return cur
}

// SemanticContext maps every Identifier/MemberExpression node (and each
// super(...) call node) by identity to its ResolvedBinding. Resolved
// operator overloads are not kept here; the checker records them in the
// expression's ExprAnnotations.ResolvedOperatorMethod. Built by the checker
// and read read-only by the usage analyzer (spec.md §3.3 lifecycle).
type SemanticContext struct {
	bindings map[ast.Node]*ResolvedBinding
}

func NewSemanticContext() *SemanticContext {
	return &SemanticContext{bindings: map[ast.Node]*ResolvedBinding{}}
}

func (c *SemanticContext) Bind(node ast.Node, b *ResolvedBinding) {
	c.bindings[node] = b
}

func (c *SemanticContext) Lookup(node ast.Node) (*ResolvedBinding, bool) {
	b, ok := c.bindings[node]
	return b, ok
}
