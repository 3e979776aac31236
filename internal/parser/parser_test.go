package parser_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/parser"
)

func parseOne(t *testing.T, input string) ast.Statement {
	t.Helper()
	p := parser.New("t", input)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Statements))
	}
	return prog.Statements[0]
}

func TestParserClassDeclaration(t *testing.T) {
	stmt := parseOne(t, `export class Animal extends Creature implements Nameable {
		name: String
		speak(): String => name
	}`)
	cd, ok := stmt.(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected *ast.ClassDeclaration, got %T", stmt)
	}
	if cd.Name != "Animal" || !cd.IsExported {
		t.Fatalf("unexpected class header: %+v", cd)
	}
	if cd.SuperClass == nil || cd.SuperClass.Name != "Creature" {
		t.Fatalf("expected SuperClass Creature, got %+v", cd.SuperClass)
	}
	if len(cd.Implements) != 1 || cd.Implements[0].Name != "Nameable" {
		t.Fatalf("expected Implements [Nameable], got %+v", cd.Implements)
	}
	if len(cd.Fields) != 1 || cd.Fields[0].Name != "name" {
		t.Fatalf("expected one field 'name', got %+v", cd.Fields)
	}
	if len(cd.Methods) != 1 || cd.Methods[0].Name != "speak" || !cd.Methods[0].IsExpressionBody {
		t.Fatalf("expected one expression-bodied method 'speak', got %+v", cd.Methods)
	}
}

func TestParserConstructorAndFieldAssignment(t *testing.T) {
	stmt := parseOne(t, `class Point {
		x: i32
		new(x: i32) {
			this.x = x
		}
	}`)
	cd := stmt.(*ast.ClassDeclaration)
	if cd.Constructor == nil {
		t.Fatalf("expected a constructor")
	}
	if len(cd.Constructor.Parameters) != 1 || cd.Constructor.Parameters[0].Name != "x" {
		t.Fatalf("unexpected constructor params: %+v", cd.Constructor.Parameters)
	}
	if len(cd.Constructor.Body) != 1 {
		t.Fatalf("expected one constructor statement, got %d", len(cd.Constructor.Body))
	}
	exprStmt, ok := cd.Constructor.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", cd.Constructor.Body[0])
	}
	assign, ok := exprStmt.Expression.(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("expected AssignmentExpression, got %T", exprStmt.Expression)
	}
	member, ok := assign.Target.(*ast.MemberExpression)
	if !ok || member.Property != "x" {
		t.Fatalf("expected assignment target this.x, got %+v", assign.Target)
	}
}

func TestParserInterfaceAndMixin(t *testing.T) {
	stmt := parseOne(t, `interface Nameable extends Comparable {
		name: String
		greet(): String
	}`)
	id := stmt.(*ast.InterfaceDeclaration)
	if len(id.Extends) != 1 || id.Extends[0].Name != "Comparable" {
		t.Fatalf("unexpected Extends: %+v", id.Extends)
	}
	if len(id.Methods) != 1 || id.Methods[0].Name != "greet" {
		t.Fatalf("unexpected Methods: %+v", id.Methods)
	}

	stmt = parseOne(t, `mixin Greeter on Animal {
		greet(): String => "hi"
	}`)
	md := stmt.(*ast.MixinDeclaration)
	if md.OnType == nil || md.OnType.Name != "Animal" {
		t.Fatalf("unexpected OnType: %+v", md.OnType)
	}
}

func TestParserTypeAlias(t *testing.T) {
	stmt := parseOne(t, `type IntOrString = i32 | String`)
	ta := stmt.(*ast.TypeAliasDeclaration)
	union, ok := ta.Target.(*ast.UnionTypeExpr)
	if !ok || len(union.Members) != 2 {
		t.Fatalf("expected a 2-member union target, got %+v", ta.Target)
	}
}

func TestParserArrowFunctionVsGrouping(t *testing.T) {
	stmt := parseOne(t, `let f = (x: i32): i32 => x`)
	vd := stmt.(*ast.VariableDeclaration)
	fn, ok := vd.Value.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expected FunctionExpression, got %T", vd.Value)
	}
	if len(fn.Parameters) != 1 || fn.Parameters[0].Name != "x" {
		t.Fatalf("unexpected function params: %+v", fn.Parameters)
	}
	if !fn.IsExpressionBody {
		t.Fatalf("expected expression-bodied function")
	}

	stmt = parseOne(t, `let g = (1 + 2) * 3`)
	vd = stmt.(*ast.VariableDeclaration)
	if _, ok := vd.Value.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected a grouped binary expression, got %T", vd.Value)
	}
}

func TestParserNewAndRange(t *testing.T) {
	stmt := parseOne(t, `let a = new Box<i32>(1)`)
	vd := stmt.(*ast.VariableDeclaration)
	ne, ok := vd.Value.(*ast.NewExpression)
	if !ok || ne.ClassName != "Box" || len(ne.TypeArguments) != 1 {
		t.Fatalf("unexpected new-expression: %+v", vd.Value)
	}

	stmt = parseOne(t, `let r = 0..10`)
	vd = stmt.(*ast.VariableDeclaration)
	rng, ok := vd.Value.(*ast.RangeExpression)
	if !ok || rng.From == nil || rng.To == nil {
		t.Fatalf("unexpected range expression: %+v", vd.Value)
	}
}
