package ast

// Intrinsic is a closed enumeration of functions whose body is replaced by a
// fixed WASM instruction, selected by name (spec.md §4.2, Design Notes).
// Resolving is a static string-to-enum lookup so the checker never branches
// on source text beyond this table.
type Intrinsic int

const (
	IntrinsicUnknown Intrinsic = iota

	// Integer arithmetic
	IntrinsicI32Add
	IntrinsicI32Sub
	IntrinsicI32Mul
	IntrinsicI32DivS
	IntrinsicI32DivU
	IntrinsicI32RemS
	IntrinsicI32RemU
	IntrinsicI64Add
	IntrinsicI64Sub
	IntrinsicI64Mul
	IntrinsicI64DivS
	IntrinsicI64DivU
	IntrinsicI64RemS
	IntrinsicI64RemU

	// Bitwise
	IntrinsicI32And
	IntrinsicI32Or
	IntrinsicI32Xor
	IntrinsicI32Shl
	IntrinsicI32ShrS
	IntrinsicI32ShrU
	IntrinsicI64And
	IntrinsicI64Or
	IntrinsicI64Xor
	IntrinsicI64Shl
	IntrinsicI64ShrS
	IntrinsicI64ShrU

	// Float arithmetic
	IntrinsicF32Add
	IntrinsicF32Sub
	IntrinsicF32Mul
	IntrinsicF32Div
	IntrinsicF64Add
	IntrinsicF64Sub
	IntrinsicF64Mul
	IntrinsicF64Div

	// Comparisons
	IntrinsicI32Eq
	IntrinsicI32Ne
	IntrinsicI32LtS
	IntrinsicI32LeS
	IntrinsicI32GtS
	IntrinsicI32GeS
	IntrinsicF64Eq
	IntrinsicF64Lt
	IntrinsicF64Le

	// Conversions
	IntrinsicI32WrapI64
	IntrinsicI64ExtendI32S
	IntrinsicI64ExtendI32U
	IntrinsicF32DemoteF64
	IntrinsicF64PromoteF32
	IntrinsicI32TruncF64S
	IntrinsicF64ConvertI32S

	// Memory
	IntrinsicMemorySize
	IntrinsicMemoryGrow
	IntrinsicMemoryCopy
	IntrinsicMemoryFill

	// Bit counting
	IntrinsicI32Clz
	IntrinsicI32Ctz
	IntrinsicI32Popcnt
)

// intrinsicNames is the closed set of ~50 intrinsic names implementers must
// mirror exactly; any call name outside this table is rejected.
var intrinsicNames = map[string]Intrinsic{
	"__intrinsic_i32_add__": IntrinsicI32Add, "__intrinsic_i32_sub__": IntrinsicI32Sub,
	"__intrinsic_i32_mul__": IntrinsicI32Mul, "__intrinsic_i32_div_s__": IntrinsicI32DivS,
	"__intrinsic_i32_div_u__": IntrinsicI32DivU, "__intrinsic_i32_rem_s__": IntrinsicI32RemS,
	"__intrinsic_i32_rem_u__": IntrinsicI32RemU,
	"__intrinsic_i64_add__": IntrinsicI64Add, "__intrinsic_i64_sub__": IntrinsicI64Sub,
	"__intrinsic_i64_mul__": IntrinsicI64Mul, "__intrinsic_i64_div_s__": IntrinsicI64DivS,
	"__intrinsic_i64_div_u__": IntrinsicI64DivU, "__intrinsic_i64_rem_s__": IntrinsicI64RemS,
	"__intrinsic_i64_rem_u__": IntrinsicI64RemU,

	"__intrinsic_i32_and__": IntrinsicI32And, "__intrinsic_i32_or__": IntrinsicI32Or,
	"__intrinsic_i32_xor__": IntrinsicI32Xor, "__intrinsic_i32_shl__": IntrinsicI32Shl,
	"__intrinsic_i32_shr_s__": IntrinsicI32ShrS, "__intrinsic_i32_shr_u__": IntrinsicI32ShrU,
	"__intrinsic_i64_and__": IntrinsicI64And, "__intrinsic_i64_or__": IntrinsicI64Or,
	"__intrinsic_i64_xor__": IntrinsicI64Xor, "__intrinsic_i64_shl__": IntrinsicI64Shl,
	"__intrinsic_i64_shr_s__": IntrinsicI64ShrS, "__intrinsic_i64_shr_u__": IntrinsicI64ShrU,

	"__intrinsic_f32_add__": IntrinsicF32Add, "__intrinsic_f32_sub__": IntrinsicF32Sub,
	"__intrinsic_f32_mul__": IntrinsicF32Mul, "__intrinsic_f32_div__": IntrinsicF32Div,
	"__intrinsic_f64_add__": IntrinsicF64Add, "__intrinsic_f64_sub__": IntrinsicF64Sub,
	"__intrinsic_f64_mul__": IntrinsicF64Mul, "__intrinsic_f64_div__": IntrinsicF64Div,

	"__intrinsic_i32_eq__": IntrinsicI32Eq, "__intrinsic_i32_ne__": IntrinsicI32Ne,
	"__intrinsic_i32_lt_s__": IntrinsicI32LtS, "__intrinsic_i32_le_s__": IntrinsicI32LeS,
	"__intrinsic_i32_gt_s__": IntrinsicI32GtS, "__intrinsic_i32_ge_s__": IntrinsicI32GeS,
	"__intrinsic_f64_eq__": IntrinsicF64Eq, "__intrinsic_f64_lt__": IntrinsicF64Lt,
	"__intrinsic_f64_le__": IntrinsicF64Le,

	"__intrinsic_i32_wrap_i64__": IntrinsicI32WrapI64,
	"__intrinsic_i64_extend_i32_s__": IntrinsicI64ExtendI32S,
	"__intrinsic_i64_extend_i32_u__": IntrinsicI64ExtendI32U,
	"__intrinsic_f32_demote_f64__":   IntrinsicF32DemoteF64,
	"__intrinsic_f64_promote_f32__":  IntrinsicF64PromoteF32,
	"__intrinsic_i32_trunc_f64_s__":  IntrinsicI32TruncF64S,
	"__intrinsic_f64_convert_i32_s__": IntrinsicF64ConvertI32S,

	"__intrinsic_memory_size__": IntrinsicMemorySize, "__intrinsic_memory_grow__": IntrinsicMemoryGrow,
	"__intrinsic_memory_copy__": IntrinsicMemoryCopy, "__intrinsic_memory_fill__": IntrinsicMemoryFill,

	"__intrinsic_i32_clz__": IntrinsicI32Clz, "__intrinsic_i32_ctz__": IntrinsicI32Ctz,
	"__intrinsic_i32_popcnt__": IntrinsicI32Popcnt,
}

// LookupIntrinsic resolves an intrinsic-function name to its enumerator. The
// second return is false if name is not one of the closed set.
func LookupIntrinsic(name string) (Intrinsic, bool) {
	i, ok := intrinsicNames[name]
	return i, ok
}
