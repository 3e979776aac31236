// Package program defines the input/output contract between the parser and
// the semantic middle-end (spec.md §6), and the driver that sequences the
// three passes: Type System, Semantic Checker, Usage Analyzer.
package program

import "github.com/funvibe/funxy/internal/ast"

// Module is a single compilation unit, produced by the parser (spec.md §6.1).
type Module struct {
	Path     string
	Body     []ast.Statement
	IsStdlib bool
	// Imports lists the module paths this module's ImportStatements name,
	// used to compute the leaf-first processing order (spec.md §5).
	Imports []string
}

// Program is every module known to this compilation, plus the entry point
// and prelude modules injected into every module's scope (spec.md §6.1).
type Program struct {
	Modules         map[string]*Module
	EntryPoint      string
	PreludeModules  []string
}

// TopoOrder returns module paths in leaf-first (dependency-first) order,
// per spec.md §5. A module that is part of an import cycle still appears
// exactly once, at the point its cycle is first reached — the inProgress
// set below stops the recursion at a module that is already being visited,
// so cyclic imports cannot loop; this function never errors on its own.
func (p *Program) TopoOrder() []string {
	visited := map[string]bool{}
	inProgress := map[string]bool{}
	var order []string

	var visit func(path string)
	visit = func(path string) {
		if visited[path] || inProgress[path] {
			return
		}
		mod, ok := p.Modules[path]
		if !ok {
			return
		}
		inProgress[path] = true
		for _, dep := range mod.Imports {
			visit(dep)
		}
		inProgress[path] = false
		visited[path] = true
		order = append(order, path)
	}

	for _, path := range p.PreludeModules {
		visit(path)
	}
	// Process the entry point's dependency closure next. Modules left over
	// after that are still visited and appended, in map iteration order,
	// which is not deterministic.
	visit(p.EntryPoint)
	for path := range p.Modules {
		visit(path)
	}
	return order
}
