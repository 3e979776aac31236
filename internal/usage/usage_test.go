package usage_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/checker"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/types"
	"github.com/funvibe/funxy/internal/usage"
)

// checkedModule parses and semantically checks src as a single module,
// mirroring internal/program.Run's checker phase without pulling in the
// program package, so this test exercises internal/usage directly against a
// real checked AST rather than hand-built nodes.
func checkedModule(t *testing.T, src string) ([]ast.Statement, *checker.Checker) {
	t.Helper()
	p := parser.New("main", src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	interner := types.NewInterner()
	c := checker.New(interner)
	c.CheckModule("main", prog.Statements, false)
	if c.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", c.Diags.Errors())
	}
	return prog.Statements, c
}

// TestPolymorphicMethodUsagePropagatesThroughHierarchy covers spec.md §8.1
// invariant 10 at three levels: a polymorphic call on the root class must
// reach every used subclass, including a grandchild.
func TestPolymorphicMethodUsagePropagatesThroughHierarchy(t *testing.T) {
	body, c := checkedModule(t, `
		class Animal { speak(): i32 { return 0; } }
		class Dog extends Animal { speak(): i32 { return 1; } }
		class Puppy extends Dog { speak(): i32 { return 2; } }
		export let main = (): i32 => { let a: Animal = new Puppy(); return a.speak(); };
	`)

	a := usage.NewAnalyzer(usage.Options{Interner: c.Interner, SemanticContext: c.SemCtx})
	result := a.Analyze([]usage.ModuleInput{{Path: "main", Body: body}}, "main")

	animal, _ := c.Interner.LookupClass("Animal")
	dog, _ := c.Interner.LookupClass("Dog")
	puppy, _ := c.Interner.LookupClass("Puppy")

	if !result.IsMethodUsed(animal, "speak") {
		t.Errorf("expected speak to be used on Animal directly")
	}
	if !result.IsMethodUsed(dog, "speak") {
		t.Errorf("expected polymorphic usage to propagate to Dog")
	}
	if !result.IsMethodUsed(puppy, "speak") {
		t.Errorf("expected polymorphic usage to propagate through Dog down to Puppy")
	}
}

// TestUnreachableMethodNotUsed is the negative counterpart: a method never
// called anywhere, directly or polymorphically, is not marked used.
func TestUnreachableMethodNotUsed(t *testing.T) {
	body, c := checkedModule(t, `
		class Greeter {
			greet(): i32 { return 1; }
			silent(): i32 { return 2; }
		}
		export let main = (): i32 => new Greeter().greet();
	`)

	a := usage.NewAnalyzer(usage.Options{Interner: c.Interner, SemanticContext: c.SemCtx})
	result := a.Analyze([]usage.ModuleInput{{Path: "main", Body: body}}, "main")

	greeter, _ := c.Interner.LookupClass("Greeter")
	if !result.IsMethodUsed(greeter, "greet") {
		t.Errorf("expected greet to be used")
	}
	if result.IsMethodUsed(greeter, "silent") {
		t.Errorf("expected silent to be dead")
	}
}

// TestGetUsageConservativeDefault covers spec.md §4.3.5: a node the worklist
// never visited reports used=true rather than a zero-value false, so an
// unknown declaration is never silently eliminated.
func TestGetUsageConservativeDefault(t *testing.T) {
	a := usage.NewAnalyzer(usage.Options{})
	result := a.Analyze(nil, "main")
	unknown := &ast.VariableDeclaration{Name: "never_indexed"}
	info := result.GetUsage(unknown)
	if !info.IsUsed {
		t.Errorf("expected a never-visited node to conservatively report used=true")
	}
}

// TestIsStdlibFoldedIntoPureModules covers spec.md §4.3.6: a module input
// flagged IsStdlib is treated as pure even if the caller's PureModules set
// didn't separately name it.
func TestIsStdlibFoldedIntoPureModules(t *testing.T) {
	entry, _ := checkedModule(t, `export let x = 1`)
	orphan, _ := checkedModule(t, `export let y = 2`)

	a := usage.NewAnalyzer(usage.Options{})
	result := a.Analyze([]usage.ModuleInput{
		{Path: "main", Body: entry},
		{Path: "stdlib_mod", Body: orphan, IsStdlib: true},
	}, "main")

	if !result.IsModuleUsed("main") {
		t.Errorf("expected main to be used")
	}
	if result.IsModuleUsed("stdlib_mod") {
		t.Errorf("expected an unreferenced stdlib module to be eliminated")
	}
}

// TestNonPureUnreferencedModuleKept is the usage-package-local counterpart of
// internal/program's TestNonPureModuleNeverEliminated: without IsStdlib or an
// explicit PureModules entry, an orphan module is always reported used.
func TestNonPureUnreferencedModuleKept(t *testing.T) {
	entry, _ := checkedModule(t, `export let x = 1`)
	orphan, _ := checkedModule(t, `export let y = 2`)

	a := usage.NewAnalyzer(usage.Options{})
	result := a.Analyze([]usage.ModuleInput{
		{Path: "main", Body: entry},
		{Path: "orphan", Body: orphan},
	}, "main")

	if !result.IsModuleUsed("orphan") {
		t.Errorf("expected a non-pure, unreferenced module to still be reported used")
	}
}

// TestFieldUsageReadAndWrite exercises spec.md §8.2 scenario 6 at the
// internal/usage level: a field assigned in the constructor and read from
// main is both read and written; a field only ever assigned is write-only.
func TestFieldUsageReadAndWrite(t *testing.T) {
	body, c := checkedModule(t, `
		class U { name: i32; unusedId: i32;
			new(n: i32, id: i32) { this.name = n; this.unusedId = id; } }
		export let main = (): i32 => { let u = new U(42, 999); return u.name; };
	`)

	a := usage.NewAnalyzer(usage.Options{Interner: c.Interner, SemanticContext: c.SemCtx})
	result := a.Analyze([]usage.ModuleInput{{Path: "main", Body: body}}, "main")

	u, _ := c.Interner.LookupClass("U")
	name := result.GetFieldUsage(u, "name")
	if !name.IsRead || !name.IsWritten {
		t.Errorf("expected name to be read and written, got %+v", name)
	}
	unusedId := result.GetFieldUsage(u, "unusedId")
	if unusedId.IsRead {
		t.Errorf("expected unusedId to never be read, got %+v", unusedId)
	}
	if !unusedId.IsWritten {
		t.Errorf("expected unusedId to be written, got %+v", unusedId)
	}
}
