package types

// Compatible implements the type-compatibility equivalence spec.md §4.2
// calls a black box the checker consumes: identical ids, implicit widening
// between basic numeric types when the literal has been marked widenable,
// and distinct/base-type coercion only where declared.
//
// literalWidenable is true when `from` is the type initially assigned to an
// untyped numeric literal; the checker is responsible for setting this only
// on literal nodes, never on arbitrary expressions.
func Compatible(from, to *Type, literalWidenable bool) bool {
	if from == nil || to == nil {
		return false
	}
	if from.ID == to.ID {
		return true
	}
	if from.Kind == KindBasic && to.Kind == KindBasic {
		if literalWidenable && widens(from.Basic, to.Basic) {
			return true
		}
		return false
	}
	// A distinct type is compatible with its own base type and vice versa;
	// this is the "distinct/base-type coercion only where declared" rule.
	if from.Kind == KindDistinct && Compatible(from.Base, to, literalWidenable) {
		return true
	}
	if to.Kind == KindDistinct && Compatible(from, to.Base, literalWidenable) {
		return true
	}
	return false
}

// widens reports whether a literal typed `from` may implicitly widen to `to`.
// An untyped float literal (always initially typed f64, see check.checkExpr)
// matches either float width, since the literal itself carries no preferred
// width; integer literals still only widen upward in rank.
func widens(from, to BasicKind) bool {
	fFloat, tFloat := from == BasicF32 || from == BasicF64, to == BasicF32 || to == BasicF64
	if fFloat != tFloat {
		return false
	}
	if fFloat && tFloat {
		return true
	}
	rank := map[BasicKind]int{
		BasicI8: 0, BasicI16: 1, BasicI32: 2, BasicI64: 3,
		BasicU8: 0, BasicU16: 1, BasicU32: 2, BasicU64: 3,
	}
	fr, fok := rank[from]
	tr, tok := rank[to]
	if !fok || !tok {
		return false
	}
	return fr <= tr
}

// CommonType returns the result type of a binary operator given two operand
// types already proven Compatible, used when filling a BinaryOp's type.
func CommonType(a, b *Type) *Type {
	if a.Kind == KindBasic && b.Kind == KindBasic {
		ra := basicRank(a.Basic)
		rb := basicRank(b.Basic)
		if ra >= rb {
			return a
		}
		return b
	}
	return a
}

func basicRank(b BasicKind) int {
	switch b {
	case BasicI8, BasicU8:
		return 0
	case BasicI16, BasicU16:
		return 1
	case BasicI32, BasicU32, BasicF32:
		return 2
	case BasicI64, BasicU64, BasicF64:
		return 3
	}
	return -1
}
