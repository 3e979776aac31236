package checker_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/checker"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/types"
)

func checkSource(t *testing.T, src string) *checker.Checker {
	t.Helper()
	p := parser.New("main", src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	c := checker.New(types.NewInterner())
	c.CheckModule("main", prog.Statements, false)
	return c
}

func hasCode(diags []*diagnostics.DiagnosticError, code diagnostics.ErrorCode) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestDuplicateDeclarationReported(t *testing.T) {
	c := checkSource(t, `
		let x = 1;
		let x = 2;
	`)
	if !c.Diags.HasErrors() {
		t.Fatalf("expected a duplicate declaration diagnostic")
	}
	if !hasCode(c.Diags.Errors(), diagnostics.ErrDuplicateDeclaration) {
		t.Errorf("expected code %s, got %v", diagnostics.ErrDuplicateDeclaration, c.Diags.Errors())
	}
}

func TestThisUsedBeforeSuperRejected(t *testing.T) {
	c := checkSource(t, `
		class Base { x: i32; new() { this.x = 0; } }
		class Derived extends Base {
			y: i32;
			new() {
				this.y = 1;
				super();
			}
		}
	`)
	if !hasCode(c.Diags.Errors(), diagnostics.ErrThisBeforeSuper) {
		t.Errorf("expected code %s for this-before-super, got %v", diagnostics.ErrThisBeforeSuper, c.Diags.Errors())
	}
}

func TestPrivateMemberAccessRejectedOutsideClass(t *testing.T) {
	c := checkSource(t, `
		class Counter { count: i32; new() { this.#count = 0; } }
		export let main = (): i32 => { let c = new Counter(); return c.#count; };
	`)
	if !hasCode(c.Diags.Errors(), diagnostics.ErrPrivateMemberAccess) {
		t.Errorf("expected code %s, got %v", diagnostics.ErrPrivateMemberAccess, c.Diags.Errors())
	}
}

func TestEqualityMismatchedTypesRejected(t *testing.T) {
	c := checkSource(t, `
		export let main = (): Boolean => 1 == "x";
	`)
	if !hasCode(c.Diags.Errors(), diagnostics.ErrTypeMismatch) {
		t.Errorf("expected code %s for 1 == \"x\", got %v", diagnostics.ErrTypeMismatch, c.Diags.Errors())
	}
}

func TestEqualityBetweenLikeLiteralsAccepted(t *testing.T) {
	c := checkSource(t, `
		export let main = (): Boolean => 1 == 2;
	`)
	if c.Diags.HasErrors() {
		t.Errorf("expected 1 == 2 to type-check cleanly, got %v", c.Diags.Errors())
	}
}

func TestArithmeticMismatchedNumericKindsRejected(t *testing.T) {
	c := checkSource(t, `
		export let main = (): i32 => {
			let a: i64 = 1;
			let b: i32 = 2;
			return a + b;
		};
	`)
	if !hasCode(c.Diags.Errors(), diagnostics.ErrTypeMismatch) {
		t.Errorf("expected code %s for i64 + i32, got %v", diagnostics.ErrTypeMismatch, c.Diags.Errors())
	}
}

func TestArgumentCountMismatchRejected(t *testing.T) {
	c := checkSource(t, `
		let add = (a: i32, b: i32): i32 => a + b;
		export let main = (): i32 => add(1);
	`)
	if !hasCode(c.Diags.Errors(), diagnostics.ErrArgumentCountMismatch) {
		t.Errorf("expected code %s, got %v", diagnostics.ErrArgumentCountMismatch, c.Diags.Errors())
	}
}
