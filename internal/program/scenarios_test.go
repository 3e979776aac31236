package program_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/program"
	"github.com/funvibe/funxy/internal/usage"
)

// TestSuperConstructorMarkedUsed exercises spec.md §8.2 scenario 2: a
// subclass whose constructor is reachable only through `super()` must mark
// the superclass constructor used, even though checkSuperCall itself never
// produces a usable value to recover the superclass from.
func TestSuperConstructorMarkedUsed(t *testing.T) {
	mod := parseModule(t, "main", `
		class Base { x: i32; new() { this.x = 0; } }
		class Derived extends Base { new() { super(); } }
		export let main = () => new Derived();
	`)
	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}
	checked, diags := program.Run(prog, usage.Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Errors())
	}

	base, ok := checked.Interner.LookupClass("Base")
	if !ok {
		t.Fatalf("expected Base to be registered in the interner")
	}
	derived, ok := checked.Interner.LookupClass("Derived")
	if !ok {
		t.Fatalf("expected Derived to be registered in the interner")
	}
	if !checked.Usage.IsMethodUsed(derived, config.ConstructorName) {
		t.Errorf("expected Derived's own constructor to be marked used")
	}
	if !checked.Usage.IsMethodUsed(base, config.ConstructorName) {
		t.Errorf("expected Base's constructor to be marked used via super()")
	}
}

// TestPolymorphicMethodPropagatesToSubclass exercises spec.md §8.2 scenario 3:
// a call through a base-typed variable holding a subclass instance must mark
// the override used on the subclass, not just the base declaration.
func TestPolymorphicMethodPropagatesToSubclass(t *testing.T) {
	mod := parseModule(t, "main", `
		class Animal { speak(): i32 { return 0; } }
		class Dog extends Animal { speak(): i32 { return 1; } }
		export let main = (): i32 => { let a: Animal = new Dog(); return a.speak(); };
	`)
	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}
	checked, diags := program.Run(prog, usage.Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Errors())
	}

	dog, ok := checked.Interner.LookupClass("Dog")
	if !ok {
		t.Fatalf("expected Dog to be registered in the interner")
	}
	if !checked.Usage.IsMethodUsed(dog, "speak") {
		t.Errorf("expected speak to propagate from the polymorphic call on Animal down to Dog")
	}
}

// TestGenericLambdaInference exercises spec.md §8.2 scenario 4: a generic
// free-function lambda's own type parameter must be in scope while its
// signature is resolved (review fix for predeclareFunctions/checkInlineFunction),
// and the parser must accept a leading `<T>` on an arrow function.
func TestGenericLambdaInference(t *testing.T) {
	mod := parseModule(t, "main", `
		let id = <T>(x: T): T => x;
		export let main = (): i32 => id(42);
	`)
	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}
	checked, diags := program.Run(prog, usage.Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Errors())
	}

	mainDecl, ok := mod.Body[1].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected second statement to be the main variable declaration, got %T", mod.Body[1])
	}
	mainFn, ok := mainDecl.Value.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expected main's value to be a function expression, got %T", mainDecl.Value)
	}
	call, ok := mainFn.ExpressionBody.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected main's body to be a call expression, got %T", mainFn.ExpressionBody)
	}
	args := call.Annotations().InferredTypeArguments
	if len(args) != 1 {
		t.Fatalf("expected exactly one inferred type argument, got %d", len(args))
	}
	if args[0].String() != "i32" {
		t.Errorf("expected inferred type argument i32, got %s", args[0].String())
	}
	if call.Annotations().InferredType.String() != "i32" {
		t.Errorf("expected call's inferred type i32, got %s", call.Annotations().InferredType.String())
	}
}

// TestAbstractClassInstantiationRejected exercises spec.md §8.2 scenario 5.
func TestAbstractClassInstantiationRejected(t *testing.T) {
	mod := parseModule(t, "main", `
		abstract class A { x: i32; }
		export let main = () => new A();
	`)
	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}
	_, diags := program.Run(prog, usage.Options{})
	errs := diags.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(errs), errs)
	}
	if errs[0].Code != diagnostics.ErrCannotInstantiateAbstractClass {
		t.Errorf("expected code %s, got %s", diagnostics.ErrCannotInstantiateAbstractClass, errs[0].Code)
	}
}

// TestWriteOnlyFieldUsage exercises spec.md §8.2 scenario 6: a field that is
// only ever assigned, never read, is reported as write-only so a code
// generator downstream can drop its backing storage.
func TestWriteOnlyFieldUsage(t *testing.T) {
	mod := parseModule(t, "main", `
		class U { name: i32; unusedId: i32;
			new(n: i32, id: i32) { this.name = n; this.unusedId = id; } }
		export let main = (): i32 => { let u = new U(42, 999); return u.name; };
	`)
	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}
	checked, diags := program.Run(prog, usage.Options{})
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Errors())
	}

	u, ok := checked.Interner.LookupClass("U")
	if !ok {
		t.Fatalf("expected U to be registered in the interner")
	}
	name := checked.Usage.GetFieldUsage(u, "name")
	if !name.IsRead || !name.IsWritten {
		t.Errorf("expected name to be read and written, got %+v", name)
	}
	unusedId := checked.Usage.GetFieldUsage(u, "unusedId")
	if unusedId.IsRead {
		t.Errorf("expected unusedId to never be read, got %+v", unusedId)
	}
	if !unusedId.IsWritten {
		t.Errorf("expected unusedId to be written, got %+v", unusedId)
	}
}

// TestFieldReadBeforeInitializationRejected exercises spec.md §4.2.3: reading
// this.x in a constructor before it has been assigned is an error.
func TestFieldReadBeforeInitializationRejected(t *testing.T) {
	mod := parseModule(t, "main", `
		class Bad {
			x: i32;
			new() {
				let y = this.x;
				this.x = 1;
			}
		}
		export let main = () => new Bad();
	`)
	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}
	_, diags := program.Run(prog, usage.Options{})
	errs := diags.Errors()
	found := false
	for _, e := range errs {
		if e.Code == diagnostics.ErrUninitializedFieldAccess {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an uninitialized-field-access diagnostic, got %v", errs)
	}
}

// TestFieldWriteThenReadInConstructorAccepted is the positive counterpart:
// writing this.x before reading it in the same constructor is never flagged.
func TestFieldWriteThenReadInConstructorAccepted(t *testing.T) {
	mod := parseModule(t, "main", `
		class Good {
			x: i32;
			new() {
				this.x = 1;
				let y = this.x;
			}
		}
		export let main = () => new Good();
	`)
	prog := &program.Program{
		Modules:    map[string]*program.Module{"main": mod},
		EntryPoint: "main",
	}
	_, diags := program.Run(prog, usage.Options{})
	if diags.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", diags.Errors())
	}
}
