package constexpr

import "github.com/lucidlang/lucidc/internal/types"

// PatchKind discriminates how reflectemit must finish resolving a value
// Emitter.Emit could not fully write: Relative patches need the buffer's own
// base address added once it is placed in the module's data section; Data
// patches need an address inside a second, caller-owned buffer (e.g. the
// string-literal pool).
type PatchKind int

const (
	// PatchRelative marks a slot holding an offset into the same buffer
	// the value was written into; the final patch is base+offset.
	PatchRelative PatchKind = iota
	// PatchData marks a slot holding an offset into a different,
	// caller-identified buffer (spec.md §4.5's string/data pool).
	PatchData
)

// Patch is one relocation request a value write produced: the byte offset
// within the destination buffer that holds a placeholder, and what kind of
// address must be patched into it once final layout is known.
type Patch struct {
	Offset uint32
	Kind   PatchKind
	// DataKey identifies which caller-owned buffer a PatchData patch
	// resolves against (e.g. a string literal's dedup key); empty for
	// PatchRelative.
	DataKey string
	// Target is a resolver-defined identifier (e.g. a types.Type.ID) the
	// caller uses, together with Kind, to look up the final offset to
	// write at Offset. Unused (0) when Offset's placeholder already holds
	// every bit a plain base-address add needs.
	Target uint32
}

// Emitter is the collaborator interface spec.md §4.4 calls out: something
// that knows how to serialize one compile-time-known value of a given type
// into a Buffer, returning any patches the caller must resolve later.
type Emitter interface {
	Emit(buf *Buffer, t *types.Type, value interface{}) ([]Patch, bool)
}

// Default is the emitter used by internal/reflectemit for compile-time
// values of basic, enum and distinct types (int/float/bool literals), null
// pointers, and []u8 string literals via the data pool. Struct-typed values
// and other slices are not encoded; Emit reports false for them.
type Default struct{}

// Emit writes value (as produced by internal/check's constant evaluator)
// into buf according to t's shape. It returns false, with no bytes written,
// if value's dynamic type doesn't match what t requires — a encoding
// mismatch the caller should treat as "could not be encoded" rather than a
// panic, consistent with spec.md §9's never-throw diagnostic discipline.
func (Default) Emit(buf *Buffer, t *types.Type, value interface{}) ([]Patch, bool) {
	if t == nil {
		return nil, false
	}
	switch t.Kind {
	case types.KindBasic:
		return emitBasic(buf, t.Basic, value)
	case types.KindEnum:
		return emitBasic(buf, t.Backing.Basic, value)
	case types.KindDistinct:
		return Default{}.Emit(buf, t.Base, value)
	case types.KindPointer:
		// A compile-time pointer constant is only ever null; any other
		// pointer value must come from a runtime allocation, outside
		// this emitter's scope.
		buf.WriteU64(0)
		return nil, true
	case types.KindSlice:
		if s, ok := value.(string); ok && t.Elem.Kind == types.KindBasic && t.Elem.Basic == types.BasicU8 {
			off := buf.Reserve(4)
			buf.WriteU32(uint32(len(s)))
			return []Patch{{Offset: off, Kind: PatchData, DataKey: s}}, true
		}
	}
	return nil, false
}

func emitBasic(buf *Buffer, bk types.BasicKind, value interface{}) ([]Patch, bool) {
	switch v := value.(type) {
	case uint64:
		switch bk {
		case types.BasicI8, types.BasicU8, types.BasicBool:
			buf.WriteU8(uint8(v))
		case types.BasicI16, types.BasicU16:
			buf.WriteU16(uint16(v))
		case types.BasicI32, types.BasicU32:
			buf.WriteU32(uint32(v))
		case types.BasicI64, types.BasicU64:
			buf.WriteU64(v)
		default:
			return nil, false
		}
		return nil, true
	case bool:
		buf.WriteBool(v)
		return nil, true
	case float64:
		switch bk {
		case types.BasicF32:
			buf.WriteF32(float32(v))
		case types.BasicF64:
			buf.WriteF64(v)
		default:
			return nil, false
		}
		return nil, true
	}
	return nil, false
}
