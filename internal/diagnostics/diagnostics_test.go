package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

func TestBagAccumulatesInOrder(t *testing.T) {
	b := diagnostics.NewBag("run-1")
	if b.HasErrors() {
		t.Fatalf("expected a fresh bag to have no errors")
	}

	b.Errorf(diagnostics.ErrSymbolNotFound, token.Token{Lexeme: "foo"}, "unknown name %q", "foo")
	b.Errorf(diagnostics.ErrTypeMismatch, token.Token{Lexeme: "bar"}, "cannot assign %s to %s", "Boolean", "i32")

	if !b.HasErrors() {
		t.Fatalf("expected the bag to report errors after Errorf")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", b.Len())
	}
	errs := b.Errors()
	if errs[0].Code != diagnostics.ErrSymbolNotFound {
		t.Errorf("expected first diagnostic to be %s, got %s", diagnostics.ErrSymbolNotFound, errs[0].Code)
	}
	if errs[1].Code != diagnostics.ErrTypeMismatch {
		t.Errorf("expected second diagnostic to be %s, got %s", diagnostics.ErrTypeMismatch, errs[1].Code)
	}
	if !strings.Contains(errs[1].Message, "Boolean") {
		t.Errorf("expected formatted message to contain Boolean, got %q", errs[1].Message)
	}
}

func TestDiagnosticErrorStringIncludesPosition(t *testing.T) {
	tok := token.Token{Lexeme: "x", Position: token.Position{File: "main.src", Line: 3, Column: 7}}
	d := diagnostics.New(diagnostics.ErrDuplicateDeclaration, tok, "duplicate declaration of \"x\"")
	got := d.Error()
	if !strings.Contains(got, "main.src:3:7") {
		t.Errorf("expected error string to contain the position, got %q", got)
	}
	if !strings.Contains(got, string(diagnostics.ErrDuplicateDeclaration)) {
		t.Errorf("expected error string to contain the code, got %q", got)
	}
	if !d.HasPos {
		t.Errorf("expected New to record a position")
	}
}

func TestUnlocatedDiagnosticHasNoPosition(t *testing.T) {
	d := diagnostics.NewUnlocated(diagnostics.ErrInternalCompilerError, "whole-program failure")
	if d.HasPos {
		t.Errorf("expected NewUnlocated to leave HasPos false")
	}
	got := d.Error()
	if strings.Contains(got, "0:0") {
		t.Errorf("unlocated error string should not print a synthetic position, got %q", got)
	}
}
