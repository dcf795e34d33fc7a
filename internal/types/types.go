// Package types implements the Type variant set described in spec.md §3: a
// discriminated union of Basic, Pointer, Array, Slice, DynArray, VarArgs,
// Compound, Function, Enum, Struct, PolyStruct, and Distinct types, each
// addressed by a stable, monotonically assigned id and indexed in a
// process-wide type map.
//
// This package has no dependency on internal/ast: a Type is a pure value
// describing a layout and a shape, built either by the type builder (from a
// resolved type expression) or directly by a pass that already knows the
// shape it wants (e.g. instantiating a polymorphic struct).
package types

import "fmt"

// Kind discriminates the Type variants.
type Kind int

const (
	KindBasic Kind = iota
	KindPointer
	KindArray
	KindSlice
	KindDynArray
	KindVarArgs
	KindCompound
	KindFunction
	KindEnum
	KindStruct
	KindPolyStruct
	KindDistinct
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindSlice:
		return "slice"
	case KindDynArray:
		return "dynarray"
	case KindVarArgs:
		return "varargs"
	case KindCompound:
		return "compound"
	case KindFunction:
		return "function"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindPolyStruct:
		return "polystruct"
	case KindDistinct:
		return "distinct"
	}
	return "unknown"
}

// BasicKind enumerates the primitive types.
type BasicKind int

const (
	BasicVoid BasicKind = iota
	BasicBool
	BasicI8
	BasicI16
	BasicI32
	BasicI64
	BasicU8
	BasicU16
	BasicU32
	BasicU64
	BasicF32
	BasicF64
	BasicRawPtr
)

var basicNames = map[BasicKind]string{
	BasicVoid: "void", BasicBool: "bool",
	BasicI8: "i8", BasicI16: "i16", BasicI32: "i32", BasicI64: "i64",
	BasicU8: "u8", BasicU16: "u16", BasicU32: "u32", BasicU64: "u64",
	BasicF32: "f32", BasicF64: "f64",
	BasicRawPtr: "rawptr",
}

func (b BasicKind) String() string { return basicNames[b] }

var basicSizes = map[BasicKind]uint32{
	BasicVoid: 0, BasicBool: 1,
	BasicI8: 1, BasicI16: 2, BasicI32: 4, BasicI64: 8,
	BasicU8: 1, BasicU16: 2, BasicU32: 4, BasicU64: 8,
	BasicF32: 4, BasicF64: 8,
	BasicRawPtr: 0, // sized by pointer width, see Type.Size()
}

// IsInteger reports whether b is one of the integer basic kinds.
func (b BasicKind) IsInteger() bool {
	switch b {
	case BasicI8, BasicI16, BasicI32, BasicI64, BasicU8, BasicU16, BasicU32, BasicU64:
		return true
	}
	return false
}

// IsFloat reports whether b is one of the floating-point basic kinds.
func (b BasicKind) IsFloat() bool { return b == BasicF32 || b == BasicF64 }

// IsSigned32 reports whether b is the signed 32-bit integer kind required by
// spec.md §4.2's For-loop rule.
func (b BasicKind) IsSigned32() bool { return b == BasicI32 }

// StructMember describes one field of a Struct type.
type StructMember struct {
	Name    string
	Offset  uint32
	Type    *Type
	Used    bool
	Default interface{} // compile-time-known default value, or nil
	Tags    []MetaTag
}

// MetaTag is a compile-time-known key/payload attached to a struct, member,
// or tagged procedure.
type MetaTag struct {
	Name string
	Type *Type
	// Value is filled in by internal/check's constant evaluator when the tag
	// payload is compile-time-known; nil if it could not be evaluated.
	Value interface{}
}

// EnumMember is one named, valued member of an Enum type.
type EnumMember struct {
	Name  string
	Value uint64
}

// Method is a struct method bound at reflection time to a WASM function index.
type Method struct {
	Name           string
	FuncIndexSlot  uint32 // patched with the WASM function index at link time
	FunctionTypeID uint32
}

// PolySolution is one concrete binding of a PolyStruct's type parameter,
// either a Type (when the parameter is itself a type) or a compile-time value.
type PolySolution struct {
	IsType bool
	Type   *Type
	Value  interface{}
}

// Type is the single discriminated variant used throughout the compiler. Only
// the fields relevant to Kind are populated; the zero value of the others is
// never inspected by emitters, matching the teacher's tagged-union ASTs.
type Type struct {
	ID   uint32
	Kind Kind

	// Basic
	Basic BasicKind

	// Pointer / Array / Slice / DynArray / VarArgs
	Elem  *Type
	Count uint32 // Array only

	// Compound
	Components []*Type

	// Function
	Params     []*Type
	Return     *Type
	HasVararg  bool

	// Enum
	Backing  *Type
	Name     string
	Members  []EnumMember
	IsFlags  bool

	// Struct / PolyStruct
	StructMembers    []StructMember
	PolySolutions    []PolySolution
	MetaTags         []MetaTag
	Scope            interface{} // opaque *scope.Scope, avoids an import cycle
	ConstructedFrom  *Type       // non-nil for a solidified PolyStruct instance
	// Methods is always empty today: nothing in internal/check binds a
	// method to a struct yet. The field exists so reflectemit's struct
	// record has a real (if currently empty) method table rather than an
	// omitted one.
	Methods []Method

	// Distinct
	Base *Type

	size  uint32
	align uint32
}

func (t *Type) String() string {
	switch t.Kind {
	case KindBasic:
		return t.Basic.String()
	case KindPointer:
		return "*" + t.Elem.String()
	case KindArray:
		return fmt.Sprintf("[%d]%s", t.Count, t.Elem.String())
	case KindSlice:
		return "[]" + t.Elem.String()
	case KindDynArray:
		return "[..]" + t.Elem.String()
	case KindVarArgs:
		return "..." + t.Elem.String()
	case KindEnum, KindStruct, KindPolyStruct, KindDistinct:
		return t.Name
	case KindFunction:
		return "function"
	case KindCompound:
		return "compound"
	}
	return "?"
}

// Size returns the byte size of the type, resolving pointer-sized variants
// against ptrSize (4 or 8, see reflectemit.PointerSize).
func (t *Type) Size(ptrSize uint32) uint32 {
	if t.Kind == KindBasic && t.Basic == BasicRawPtr {
		return ptrSize
	}
	if t.Kind == KindPointer || t.Kind == KindFunction {
		return ptrSize
	}
	if t.Kind == KindBasic {
		return basicSizes[t.Basic]
	}
	if t.size != 0 {
		return t.size
	}
	switch t.Kind {
	case KindArray:
		return t.Elem.Size(ptrSize) * t.Count
	case KindSlice, KindDynArray, KindVarArgs:
		return ptrSize * 2 // {ptr, len}
	case KindDistinct:
		return t.Base.Size(ptrSize)
	case KindEnum:
		return t.Backing.Size(ptrSize)
	}
	return t.size
}

// Align returns the alignment of the type.
func (t *Type) Align(ptrSize uint32) uint32 {
	if t.align != 0 {
		return t.align
	}
	s := t.Size(ptrSize)
	if s == 0 {
		return 1
	}
	if s > ptrSize {
		return ptrSize
	}
	return s
}

// SetLayout fixes an explicit size/alignment, used for Struct and PolyStruct
// variants where layout is computed by the builder rather than derived.
func (t *Type) SetLayout(size, align uint32) {
	t.size = size
	t.align = align
}
