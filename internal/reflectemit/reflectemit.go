// Package reflectemit implements C5 of spec.md §4.5: three relocatable data
// blobs a linked module carries as reflection metadata — a type-info table,
// a foreign-block table, and a tagged-procedure table — each built from the
// typed AST the checker produced, each addressed by byte offset with byte 0
// of every blob reserved so a zero offset can always mean "absent" without
// colliding with a real record.
package reflectemit

import (
	"sort"

	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/constexpr"
	"github.com/lucidlang/lucidc/internal/types"
)

// PointerSize is the target's pointer width; it must match
// internal/check.PointerSize for a single compilation.
var PointerSize uint32 = 8

// Blob is one emitted table: its bytes, plus the patch records that must be
// resolved once the blob's base address (and the string pool's base
// address) are known.
type Blob struct {
	Bytes       []byte
	Patches     []constexpr.Patch
	StringPool  []byte
	stringOffs  map[string]uint32
	// TypeOffsets maps a Type.ID to its record offset within Bytes, when the
	// blob is a type-info table; nil for the other two tables.
	TypeOffsets map[uint32]uint32
}

// Result bundles the three tables C5 produces, in the order spec.md §6's
// verbose byte-size report lists them.
type Result struct {
	TypeInfo      Blob
	ForeignBlocks Blob
	TaggedProcs   Blob
}

// Context carries the state of one emission run.
type Context struct {
	Types *types.Map
	emitter constexpr.Default
}

// NewContext creates an emitter context over the program's type map.
func NewContext(tm *types.Map) *Context {
	return &Context{Types: tm}
}

func newBlob() Blob {
	b := Blob{stringOffs: make(map[string]uint32)}
	return b
}

// internString interns s into the blob's private string pool, returning its
// offset; repeated interning of the same string reuses the first offset.
func (b *Blob) internString(s string) uint32 {
	if off, ok := b.stringOffs[s]; ok {
		return off
	}
	off := uint32(len(b.StringPool))
	b.StringPool = append(b.StringPool, []byte(s)...)
	b.StringPool = append(b.StringPool, 0) // NUL-terminated, spec.md §4.5
	b.stringOffs[s] = off
	return off
}

// Run emits all three tables. types is every Type the compilation produced
// (typically tm.Ordered()); foreignBlocks and taggedProcs are gathered by
// the caller (internal/compiler) from the program's entity list.
func (c *Context) Run(typeList []*types.Type, foreignBlocks []*ast.ForeignBlockDecl, taggedProcs []*ast.FuncDecl) Result {
	return Result{
		TypeInfo:      c.emitTypeInfoTable(typeList),
		ForeignBlocks: c.emitForeignBlockTable(foreignBlocks),
		TaggedProcs:   c.emitTaggedProcTable(taggedProcs),
	}
}

// fillPtr patches a pointer-sized slot buf.Reserve'd earlier (for a
// WRITE_PTR or a reserveSlice's WRITE_SLICE field) once the blob-relative
// offset it must hold becomes known. A value or a slice body is always
// written after the fixed field that points at it — a record's fixed
// fields all come before its variable tails — so every such slot is filled
// this way rather than up front. body == 0 leaves the slot permanently
// null (WRITE_PTR(NULL)), the convention a blob's reserved byte 0 exists to
// make unambiguous. The one outstanding patch on a filled slot is the
// blob's own base address, added once C6 places it in the module's data
// section.
func fillPtr(buf *constexpr.Buffer, patches *[]constexpr.Patch, slot uint32, body uint32) {
	if body == 0 {
		return
	}
	var tmp [8]byte
	for i := uint32(0); i < PointerSize; i++ {
		tmp[i] = byte(body >> (8 * i))
	}
	buf.WriteAt(slot, tmp[:PointerSize])
	*patches = append(*patches, constexpr.Patch{Offset: slot, Kind: constexpr.PatchRelative})
}

// reserveSlice reserves a WRITE_SLICE(ptr, count) pair — a relocatable
// pointer-sized slot plus a u32 count — at the buffer's current position,
// the fixed-field position wasm_type_table.h's record layouts expect it at.
// count is always known up front, so it is written immediately; the
// pointer is filled in later via fillPtr once the slice's body (written
// after every fixed field in the record) has a known offset.
func reserveSlice(buf *constexpr.Buffer, count uint32) uint32 {
	slot := buf.Reserve(PointerSize)
	buf.WriteU32(count)
	return slot
}

// writeSliceField reserves a WRITE_SLICE field for n items at the buffer's
// current (fixed-field) position, then — only if n > 0 — invokes write to
// append the slice's body and patches the reserved pointer to where that
// body landed. An empty slice's pointer is left null and no body is
// written, matching fillPtr's body==0 convention.
func writeSliceField(buf *constexpr.Buffer, patches *[]constexpr.Patch, n int, write func()) {
	slot := reserveSlice(buf, uint32(n))
	if n == 0 {
		return
	}
	body := buf.Len()
	write()
	fillPtr(buf, patches, slot, body)
}

// emitValue serializes a compile-time-known value of type t into buf via the
// shared constexpr emitter, returning the blob-relative offset its bytes
// start at (or 0 if value is nil or could not be encoded — not every
// compile-time value the checker accepts is one constexpr.Default can
// serialize, per its own never-throw discipline). Any patches the value
// itself produced (e.g. a string literal's data-pool reference) are
// rebased by the offset and merged into patches.
func (c *Context) emitValue(buf *constexpr.Buffer, patches *[]constexpr.Patch, t *types.Type, value interface{}) uint32 {
	if value == nil || t == nil {
		return 0
	}
	tmp := constexpr.NewBuffer()
	valPatches, ok := c.emitter.Emit(tmp, t, value)
	if !ok {
		return 0
	}
	buf.Pad(4)
	off := buf.Len()
	buf.WriteBytes(tmp.Bytes())
	for _, p := range valPatches {
		p.Offset += off
		*patches = append(*patches, p)
	}
	return off
}

// sortedTypeIDs returns t's ids in a stable, deterministic order so repeated
// compilations of the same program produce byte-identical tables.
func sortedTypeIDs(typeList []*types.Type) []*types.Type {
	out := make([]*types.Type, len(typeList))
	copy(out, typeList)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
