package usage

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/types"
)

// UsageAnalysisResult is the read-only query surface of spec.md §6.2/§6.3,
// handed back once Analyze has drained the worklist.
type UsageAnalysisResult struct {
	a *Analyzer
}

// GetUsage returns the recorded UsageInfo for decl, or a conservative
// "used, no reason" default if the analyzer never visited it (spec.md
// §4.3.5's conservatism rule: unknown implies used).
func (r *UsageAnalysisResult) GetUsage(decl ast.Node) UsageInfo {
	if info, ok := r.a.usageMap[decl]; ok {
		return *info
	}
	return UsageInfo{IsUsed: true}
}

// IsUsed reports whether decl was ever reached by the worklist.
func (r *UsageAnalysisResult) IsUsed(decl ast.Node) bool {
	return r.GetUsage(decl).IsUsed
}

// IsModuleUsed reports whether path must be kept. Per spec.md §4.3.6, only
// pure modules (stdlib or configured via Options.PureModules) are eligible
// for elimination at all, since a non-pure module may run top-level
// initializers for their side effects; a pure module is kept only if the
// reachability sweep actually reached one of its declarations.
func (r *UsageAnalysisResult) IsModuleUsed(path string) bool {
	if !r.a.pureModules[path] {
		return true
	}
	return r.a.usedModules[path]
}

// IsMethodUsed reports whether name was ever called on receiver or on any
// ancestor/descendant it propagated to (spec.md §4.3.3).
func (r *UsageAnalysisResult) IsMethodUsed(receiver types.Type, name string) bool {
	return isMethodUsedWalk(r.a, receiver, name, map[types.Type]bool{})
}

func isMethodUsedWalk(a *Analyzer, receiver types.Type, name string, seen map[types.Type]bool) bool {
	if receiver == nil || seen[receiver] {
		return false
	}
	seen[receiver] = true
	if a.usedMethods[receiver] != nil && a.usedMethods[receiver][name] {
		return true
	}
	switch t := receiver.(type) {
	case *types.ClassType:
		if t.SuperType != nil && isMethodUsedWalk(a, t.SuperType, name, seen) {
			return true
		}
		for _, iface := range t.Implements {
			if isMethodUsedWalk(a, iface, name, seen) {
				return true
			}
		}
	case *types.InterfaceType:
		for _, ext := range t.Extends {
			if isMethodUsedWalk(a, ext, name, seen) {
				return true
			}
		}
	}
	return false
}

// GetFieldUsage reports whether field on receiver was ever read/written.
func (r *UsageAnalysisResult) GetFieldUsage(receiver types.Type, field string) FieldUsageInfo {
	if slot, ok := r.a.fieldUsage[receiver][field]; ok {
		return *slot
	}
	return FieldUsageInfo{}
}

// UsedDeclarations returns every declaration marked used, in the order the
// worklist first reached them (deterministic for a given program + root
// set, per spec.md §5).
func (r *UsageAnalysisResult) UsedDeclarations() []ast.Node {
	return r.a.usedDeclarations
}

// UsedModules returns every module path marked used, in first-reached order.
func (r *UsageAnalysisResult) UsedModules() []string {
	return r.a.usedModuleOrder
}
