package program_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/program"
	"github.com/funvibe/funxy/internal/usage"
)

func parseModule(t *testing.T, path, src string) *program.Module {
	t.Helper()
	p := parser.New(path, src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors in %s: %v", path, errs)
	}
	mod := &program.Module{Path: path, Body: prog.Statements}
	for _, stmt := range prog.Statements {
		if imp, ok := stmt.(*ast.ImportStatement); ok {
			mod.Imports = append(mod.Imports, imp.Path)
		}
	}
	return mod
}

// TestDeadMethodEliminated exercises spec.md §8.2's reachability scenario at
// a small scale: a class with one method called from the entry point and one
// method that is never called. Only the reached method should survive usage
// analysis.
func TestDeadMethodEliminated(t *testing.T) {
	mod := parseModule(t, "main", `
		export class Greeter {
			greet(): String => "hi"
			unused(): String => "never called"
		}
		export let g = new Greeter()
		export let result = g.greet()
	`)

	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}

	checked, diags := program.Run(prog, usage.Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Errors())
	}

	classDecl, ok := mod.Body[0].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected first statement to be a class declaration, got %T", mod.Body[0])
	}

	var greet, unused *ast.MethodDecl
	for _, m := range classDecl.Methods {
		switch m.Name {
		case "greet":
			greet = m
		case "unused":
			unused = m
		}
	}
	if greet == nil || unused == nil {
		t.Fatalf("expected both greet and unused methods to be parsed, got %+v", classDecl.Methods)
	}

	classType, ok := checked.Checker.Interner.LookupClass("Greeter")
	if !ok {
		t.Fatalf("expected Greeter to be registered in the interner")
	}
	if !checked.Usage.IsMethodUsed(classType, "greet") {
		t.Errorf("expected greet to be marked used")
	}
	if checked.Usage.IsMethodUsed(classType, "unused") {
		t.Errorf("expected unused to be marked dead")
	}
}

// TestNonPureModuleNeverEliminated exercises spec.md §4.3.6: only pure
// modules are eligible for elimination at all, since a non-pure module may
// run top-level initializers for their side effects. An orphan module that
// is never imported is still kept if it was never declared pure.
func TestNonPureModuleNeverEliminated(t *testing.T) {
	entry := parseModule(t, "main", `
		export let x = 1
	`)
	orphan := parseModule(t, "orphan", `
		export let y = 2
	`)

	prog := &program.Program{
		Modules: map[string]*program.Module{
			"main":   entry,
			"orphan": orphan,
		},
		EntryPoint: "main",
	}

	checked, diags := program.Run(prog, usage.Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Errors())
	}
	if !checked.Usage.IsModuleUsed("main") {
		t.Errorf("expected main to be used")
	}
	if !checked.Usage.IsModuleUsed("orphan") {
		t.Errorf("expected non-pure orphan module to be conservatively kept despite never being imported")
	}
}

// TestPureModuleEliminatedWhenUnreferenced is the counterpart: a module
// explicitly configured pure (spec.md §4.3.6's "stdlib or configured set")
// is dropped once nothing reaches it.
func TestPureModuleEliminatedWhenUnreferenced(t *testing.T) {
	entry := parseModule(t, "main", `
		export let x = 1
	`)
	orphan := parseModule(t, "orphan", `
		export let y = 2
	`)

	prog := &program.Program{
		Modules: map[string]*program.Module{
			"main":   entry,
			"orphan": orphan,
		},
		EntryPoint: "main",
	}

	checked, diags := program.Run(prog, usage.Options{
		PureModules: map[string]bool{"orphan": true},
	})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Errors())
	}
	if !checked.Usage.IsModuleUsed("main") {
		t.Errorf("expected main to be used")
	}
	if checked.Usage.IsModuleUsed("orphan") {
		t.Errorf("expected pure, unreferenced orphan module to be eliminated")
	}
}
