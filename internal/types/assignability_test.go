package types_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/types"
)

// TestAssignabilityReflexivity covers spec.md §8.1 invariant 6: isAssignableTo(t, t)
// holds for every non-error type, including compound ones built without going
// through the interner's Instantiate path.
func TestAssignabilityReflexivity(t *testing.T) {
	in := types.NewInterner()

	class := &types.ClassType{Name: "Widget", Fields: map[string]types.Type{}, Methods: map[string]*types.FunctionType{}}
	iface := &types.InterfaceType{Name: "Drawable"}
	fn := &types.FunctionType{Parameters: []types.Type{types.I32}, ReturnType: types.Boolean}
	arr := in.NewArray(types.I32)
	rec := &types.RecordType{Properties: map[string]types.Type{"x": types.I32}, Order: []string{"x"}}

	cases := []struct {
		name string
		typ  types.Type
	}{
		{"never", types.Never},
		{"void", types.Void},
		{"null", types.Null},
		{"any", types.Any},
		{"anyref", types.AnyRef},
		{"boolean", types.Boolean},
		{"bytearray", types.ByteArray},
		{"i32", types.I32},
		{"f64", types.F64},
		{"class", class},
		{"interface", iface},
		{"function", fn},
		{"array", arr},
		{"record", rec},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !in.IsAssignableTo(c.typ, c.typ) {
				t.Errorf("expected %s to be assignable to itself", c.typ.String())
			}
		})
	}
}

// TestDistinctAliasOpacity covers spec.md §8.1 invariant 8: a distinct alias
// is never assignable to or from its target, in either direction.
func TestDistinctAliasOpacity(t *testing.T) {
	in := types.NewInterner()

	alias := &types.TypeAlias{Name: "UserId", Target: types.I32, IsDistinct: true}

	if in.IsAssignableTo(alias, types.I32) {
		t.Errorf("distinct alias must not be assignable to its target")
	}
	if in.IsAssignableTo(types.I32, alias) {
		t.Errorf("target must not be assignable to a distinct alias")
	}
	// A distinct alias is still assignable to itself (reflexivity) and to a
	// union that mentions it by name.
	if !in.IsAssignableTo(alias, alias) {
		t.Errorf("distinct alias should be assignable to itself")
	}
	lit := &types.LiteralType{Value: true}
	union, err := in.NewUnion([]types.Type{alias, lit})
	if err != nil {
		t.Fatalf("unexpected union construction error: %v", err)
	}
	if !in.IsAssignableTo(alias, union) {
		t.Errorf("distinct alias should be assignable to a union containing it")
	}
}

// TestTransparentAliasUnwraps is the non-distinct counterpart: a transparent
// alias unwraps to its target on either side (spec.md §4.1.3 rule 7).
func TestTransparentAliasUnwraps(t *testing.T) {
	in := types.NewInterner()
	alias := &types.TypeAlias{Name: "Count", Target: types.I32}

	if !in.IsAssignableTo(alias, types.I32) {
		t.Errorf("transparent alias should unwrap to its target")
	}
	if !in.IsAssignableTo(types.I32, alias) {
		t.Errorf("target should be assignable to a transparent alias")
	}
}

// TestNullAssignableToReferenceKinds covers spec.md §8.1 invariant 7.
func TestNullAssignableToReferenceKinds(t *testing.T) {
	in := types.NewInterner()
	class := &types.ClassType{Name: "Widget"}
	iface := &types.InterfaceType{Name: "Drawable"}
	arr := in.NewArray(types.I32)

	for _, target := range []types.Type{class, iface, arr, types.Null} {
		if !in.IsAssignableTo(types.Null, target) {
			t.Errorf("Null should be assignable to %s", target.String())
		}
	}
	if in.IsAssignableTo(types.Null, types.I32) {
		t.Errorf("Null should not be assignable to a non-reference kind")
	}
}

// TestInterning covers spec.md §8.1 invariant 3: instantiating the same
// template with pairwise-identical type arguments returns the same object,
// even across two distinct (but type-identical) argument-list slices.
func TestInterning(t *testing.T) {
	in := types.NewInterner()
	tp := &types.TypeParameter{Name: "T"}
	box := &types.ClassType{
		Name:           "Box",
		TypeParameters: []*types.TypeParameter{tp},
		Fields:         map[string]types.Type{"value": tp},
		FieldOrder:     []string{"value"},
		Methods:        map[string]*types.FunctionType{},
	}
	in.DeclareClass(box)

	a, err := in.Instantiate(box, []types.Type{types.I32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := in.Instantiate(box, []types.Type{types.I32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("expected Instantiate(Box, [i32]) to return the same object both times")
	}

	c, err := in.Instantiate(box, []types.Type{types.F64})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == c {
		t.Errorf("expected Instantiate(Box, [f64]) to be distinct from Instantiate(Box, [i32])")
	}
}

// TestInterningArrays mirrors TestInterning for the Array/FixedArray caches,
// since NewArray/NewFixedArray intern independently of Instantiate.
func TestInterningArrays(t *testing.T) {
	in := types.NewInterner()
	a1 := in.NewArray(types.I32)
	a2 := in.NewArray(types.I32)
	if a1 != a2 {
		t.Errorf("expected NewArray(i32) to be interned")
	}
	if in.NewArray(types.F64) == a1 {
		t.Errorf("expected NewArray(f64) to be distinct from NewArray(i32)")
	}
}

// TestInstantiateArityMismatch covers spec.md §4.1.2 rule 1: a type-argument
// count mismatch is an error, not a panic or silent truncation.
func TestInstantiateArityMismatch(t *testing.T) {
	in := types.NewInterner()
	box := &types.ClassType{
		Name:           "Box",
		TypeParameters: []*types.TypeParameter{{Name: "T"}},
		Fields:         map[string]types.Type{},
		Methods:        map[string]*types.FunctionType{},
	}
	in.DeclareClass(box)

	if _, err := in.Instantiate(box, []types.Type{types.I32, types.F64}); err == nil {
		t.Errorf("expected an arity mismatch error")
	}
}

// TestNumberKindInterning grounds §4.2.2's reliance on pointer-identical
// numeric kinds: NumberKind must return the same singleton for a given name
// every time, across the whole process (not just one interner).
func TestNumberKindInterning(t *testing.T) {
	if types.NumberKind("i32") != types.I32 {
		t.Errorf("expected NumberKind(\"i32\") to return the I32 singleton")
	}
	if types.NumberKind("f64") != types.F64 {
		t.Errorf("expected NumberKind(\"f64\") to return the F64 singleton")
	}
	if types.I32 == types.F64 {
		t.Errorf("distinct numeric kinds must not share a singleton")
	}
}

// TestClassHierarchyAssignability covers assignability rule 11 (class walks
// its superType chain) used throughout scenario 2/3's subclass handling.
func TestClassHierarchyAssignability(t *testing.T) {
	in := types.NewInterner()
	base := &types.ClassType{Name: "Animal"}
	derived := &types.ClassType{Name: "Dog", SuperType: base}

	if !in.IsAssignableTo(derived, base) {
		t.Errorf("expected Dog to be assignable to Animal")
	}
	if in.IsAssignableTo(base, derived) {
		t.Errorf("expected Animal to not be assignable to Dog")
	}
}

// TestLiteralAssignability covers §4.1.3 rule 4 under the default strict
// literal-widening policy (SPEC_FULL.md's decision on §9's open question):
// integer literals only widen to i32 unless widening is relaxed.
func TestLiteralAssignability(t *testing.T) {
	in := types.NewInterner()
	lit := &types.LiteralType{Value: float64(1)}

	if !in.IsAssignableTo(lit, types.I32) {
		t.Errorf("expected integer literal to be assignable to i32")
	}
	if in.IsAssignableTo(lit, types.F64) {
		t.Errorf("expected strict literal widening to reject i32 literal -> f64")
	}
	in.SetStrictLiteralWidening(false)
	if !in.IsAssignableTo(lit, types.F64) {
		t.Errorf("expected relaxed literal widening to accept i32 literal -> f64")
	}
}

// TestUnionRejectsPrimitiveMembers covers spec.md §4.1.5: Number/Boolean are
// rejected as raw union members (literal types are exempt).
func TestUnionRejectsPrimitiveMembers(t *testing.T) {
	in := types.NewInterner()
	if _, err := in.NewUnion([]types.Type{types.Boolean, types.I32}); err == nil {
		t.Errorf("expected Boolean/Number to be rejected as bare union members")
	}
	lit := &types.LiteralType{Value: float64(1)}
	if _, err := in.NewUnion([]types.Type{lit, &types.TypeAlias{Name: "Other", Target: types.I32}}); err != nil {
		t.Errorf("expected a literal member alongside a non-primitive member to be accepted, got: %v", err)
	}
}
