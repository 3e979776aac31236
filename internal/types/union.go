package types

import "fmt"

// NewUnion builds a UnionType after enforcing the validity rules of
// spec.md §4.1.5:
//   - primitive Number/Boolean members are rejected (literal members are
//     fine — they're runtime-discriminable);
//   - two extension members that erase to mutually assignable OnTypes are
//     rejected (the union couldn't tell them apart at runtime);
//   - two distinct aliases with different names but mutually assignable
//     targets are rejected, for the same reason.
func (in *Interner) NewUnion(members []Type) (*UnionType, error) {
	for _, m := range members {
		switch t := m.(type) {
		case *NumberType:
			return nil, fmt.Errorf("%w: bare numeric type %s cannot appear in a union (use a literal type)", ErrInvalidUnionMember, t.Name)
		case *BooleanType:
			return nil, fmt.Errorf("%w: bare Boolean cannot appear in a union (use a literal type)", ErrInvalidUnionMember)
		}
	}

	for i := 0; i < len(members); i++ {
		ci, iok := members[i].(*ClassType)
		for j := i + 1; j < len(members); j++ {
			if iok && ci.IsExtension {
				if cj, ok := members[j].(*ClassType); ok && cj.IsExtension {
					if in.IsAssignableTo(ci.OnType, cj.OnType) && in.IsAssignableTo(cj.OnType, ci.OnType) {
						return nil, fmt.Errorf("%w: extension classes %s and %s both erase to the same underlying type", ErrInvalidUnionMember, ci.Name, cj.Name)
					}
				}
			}
			ai, iaok := members[i].(*TypeAlias)
			aj, jaok := members[j].(*TypeAlias)
			if iaok && jaok && ai.IsDistinct && aj.IsDistinct && ai.Name != aj.Name {
				if in.IsAssignableTo(ai.Target, aj.Target) && in.IsAssignableTo(aj.Target, ai.Target) {
					return nil, fmt.Errorf("%w: distinct aliases %s and %s share a mutually assignable target", ErrInvalidUnionMember, ai.Name, aj.Name)
				}
			}
		}
	}

	return &UnionType{Types: members}, nil
}
