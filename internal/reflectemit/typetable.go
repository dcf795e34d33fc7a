package reflectemit

import (
	"github.com/lucidlang/lucidc/internal/constexpr"
	"github.com/lucidlang/lucidc/internal/types"
)

// emitTypeInfoTable builds C5.a: one variant-shaped record per Type,
// addressed by its offset in the blob, grounded on wasm_type_table.h's
// build_type_table. Every record shares a fixed header:
//
//	u8  kind
//	u32 name offset (into the blob's string pool; 0 = anonymous)
//	u32 size
//	u32 align
//
// followed immediately by a Kind-specific run of fixed-width fields — more
// u32s, and any WRITE_SLICE(ptr, count) fields the variant needs — and only
// after every fixed field is placed do the slice bodies those fields point
// at get appended, in the same order their WRITE_SLICE field was reserved
// in. A type-to-type reference (an element type, a struct member's type, a
// function's params/return, ...) is always written as the referenced
// Type's raw ID, never as a pointer to its record: ids are stable the
// moment a Type exists, so no relocation is needed to encode one, unlike a
// slice body's address, which depends on where this blob ends up placing
// the slice's contents.
//
// Byte 0 of the blob is always a reserved zero byte, so a record offset (or
// a null type ID) of 0 unambiguously means "none" wherever this table or a
// reader of it needs an absent-value sentinel.
func (c *Context) emitTypeInfoTable(typeList []*types.Type) Blob {
	b := newBlob()
	buf := constexpr.NewBuffer()
	buf.WriteU8(0) // reserved byte 0

	ordered := sortedTypeIDs(typeList)
	recordOff := make(map[uint32]uint32, len(ordered))

	for _, t := range ordered {
		buf.Pad(4)
		recordOff[t.ID] = buf.Len()
		c.emitTypeRecord(&b, buf, t)
	}

	b.TypeOffsets = recordOff
	b.Bytes = buf.Bytes()
	return b
}

func (c *Context) emitTypeRecord(b *Blob, buf *constexpr.Buffer, t *types.Type) {
	buf.WriteU8(uint8(t.Kind))
	nameOff := uint32(0)
	if t.Name != "" {
		nameOff = b.internString(t.Name)
	}
	buf.WriteU32(nameOff)
	buf.WriteU32(t.Size(PointerSize))
	buf.WriteU32(t.Align(PointerSize))

	switch t.Kind {
	case types.KindBasic:
		buf.WriteU32(uint32(t.Basic))

	case types.KindPointer:
		buf.WriteU32(typeID(t.Elem))

	case types.KindArray:
		buf.WriteU32(typeID(t.Elem))
		buf.WriteU32(t.Count)

	case types.KindSlice, types.KindDynArray, types.KindVarArgs:
		buf.WriteU32(typeID(t.Elem))

	case types.KindCompound:
		writeSliceField(buf, &b.Patches, len(t.Components), func() {
			for _, comp := range t.Components {
				buf.WriteU32(typeID(comp))
			}
		})

	case types.KindFunction:
		buf.WriteU32(typeID(t.Return))
		writeSliceField(buf, &b.Patches, len(t.Params), func() {
			for _, p := range t.Params {
				buf.WriteU32(typeID(p))
			}
		})
		buf.WriteU32(boolU32(t.HasVararg))

	case types.KindEnum:
		buf.WriteU32(typeID(t.Backing))
		writeSliceField(buf, &b.Patches, len(t.Members), func() {
			for _, m := range t.Members {
				buf.WriteU32(b.internString(m.Name))
				buf.WriteU64(m.Value)
			}
		})
		buf.WriteU32(boolU32(t.IsFlags))

	case types.KindStruct:
		buf.WriteU32(typeID(t.ConstructedFrom))
		c.emitStructMembers(b, buf, t)
		c.emitPolySolutions(b, buf, t)
		c.emitMetaTags(b, buf, t.MetaTags)
		c.emitMethods(b, buf, t)

	case types.KindPolyStruct:
		c.emitMetaTags(b, buf, t.MetaTags)

	case types.KindDistinct:
		buf.WriteU32(typeID(t.Base))
	}
}

// emitStructMembers writes the member-array tail shared by every Struct
// record: per member, name, byte offset, the member's type id (raw, not a
// pointer — a member is never itself a relocation target, only a
// reference), the used flag internal/check sets on first field access, the
// member's compile-time default if it has one, and its own meta tags.
func (c *Context) emitStructMembers(b *Blob, buf *constexpr.Buffer, t *types.Type) {
	writeSliceField(buf, &b.Patches, len(t.StructMembers), func() {
		for _, m := range t.StructMembers {
			buf.WriteU32(b.internString(m.Name))
			buf.WriteU32(m.Offset)
			buf.WriteU32(typeID(m.Type))
			buf.WriteBool(m.Used)
			defSlot := buf.Reserve(PointerSize)
			defOff := c.emitValue(buf, &b.Patches, m.Type, m.Default)
			fillPtr(buf, &b.Patches, defSlot, defOff)
			c.emitMetaTags(b, buf, m.Tags)
		}
	})
}

// emitMetaTags writes a WRITE_SLICE(tag records): each tag is its name, the
// tag payload's type id, and a pointer to the payload's compile-time value
// if C4 could encode it. Shared by struct declarations, struct members, and
// PolyStructs, matching wasm_type_table.h's reuse of the same tag shape in
// all three places.
func (c *Context) emitMetaTags(b *Blob, buf *constexpr.Buffer, tags []types.MetaTag) {
	writeSliceField(buf, &b.Patches, len(tags), func() {
		for _, tag := range tags {
			buf.WriteU32(b.internString(tag.Name))
			buf.WriteU32(typeID(tag.Type))
			valSlot := buf.Reserve(PointerSize)
			valOff := c.emitValue(buf, &b.Patches, tag.Type, tag.Value)
			fillPtr(buf, &b.Patches, valSlot, valOff)
		}
	})
}

// emitPolySolutions writes a Struct's WRITE_SLICE(poly solutions): one
// record per type argument a PolyStruct was instantiated with, round-
// tripping spec.md §8 scenario 5's constructed_from/PolySolutions pairing.
// A type-valued solution stores the bound Type's raw id; a value-valued
// solution serializes the compile-time value itself, if encodable.
func (c *Context) emitPolySolutions(b *Blob, buf *constexpr.Buffer, t *types.Type) {
	writeSliceField(buf, &b.Patches, len(t.PolySolutions), func() {
		for _, sol := range t.PolySolutions {
			buf.WriteBool(sol.IsType)
			if sol.IsType {
				buf.WriteU32(typeID(sol.Type))
				buf.Reserve(PointerSize) // no value payload for a type solution
			} else {
				buf.WriteU32(0)
				valSlot := buf.Reserve(PointerSize)
				valOff := c.emitValue(buf, &b.Patches, sol.Type, sol.Value)
				fillPtr(buf, &b.Patches, valSlot, valOff)
			}
		}
	})
}

// emitMethods writes a Struct's WRITE_SLICE(methods). Always empty in the
// current compiler — nothing in internal/check binds a method to a struct
// declaration yet — but the shape (name, a link-time-patched function-index
// slot, the method's function type id) is real so a future method-call
// feature only has to populate types.Type.Methods, not touch this emitter.
func (c *Context) emitMethods(b *Blob, buf *constexpr.Buffer, t *types.Type) {
	writeSliceField(buf, &b.Patches, len(t.Methods), func() {
		for _, m := range t.Methods {
			buf.WriteU32(b.internString(m.Name))
			slot := buf.Reserve(4)
			b.Patches = append(b.Patches, constexpr.Patch{Offset: slot, Kind: constexpr.PatchData, DataKey: m.Name})
			buf.WriteU32(m.FunctionTypeID)
		}
	})
}

func typeID(t *types.Type) uint32 {
	if t == nil {
		return 0
	}
	return t.ID
}

func boolU32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
