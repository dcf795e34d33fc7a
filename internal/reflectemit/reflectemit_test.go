package reflectemit

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lucidlang/lucidc/internal/types"
)

// TestEmitTypeInfoTableReservesByteZero checks the §4.5 invariant shared by
// all three emitters: byte 0 of every content segment is reserved as zero,
// so offset 0 can always mean "absent" without colliding with a real record.
func TestEmitTypeInfoTableReservesByteZero(t *testing.T) {
	tm := types.NewMap()
	tm.Basic(types.BasicI32)

	c := NewContext(tm)
	blob := c.emitTypeInfoTable(tm.Ordered())

	if len(blob.Bytes) == 0 {
		t.Fatal("blob must contain at least the reserved byte 0")
	}
	if blob.Bytes[0] != 0 {
		t.Fatalf("byte 0 of content segment = %#x, want 0", blob.Bytes[0])
	}
}

// TestEmitTypeInfoTableRoundTripsStructMembers exercises spec.md §8's
// round-trip property: the struct's record offset must be a real,
// non-sentinel position, every patch produced while laying it out must
// resolve to an in-segment byte offset, and each member's name, byte offset
// and type id must decode back from the member records.
func TestEmitTypeInfoTableRoundTripsStructMembers(t *testing.T) {
	tm := types.NewMap()
	i32 := tm.Basic(types.BasicI32)

	pair := tm.New(types.KindStruct)
	pair.Name = "Pair"
	pair.StructMembers = []types.StructMember{
		{Name: "a", Offset: 0, Type: i32},
		{Name: "b", Offset: 4, Type: i32},
	}
	pair.SetLayout(8, 4)

	c := NewContext(tm)
	blob := c.emitTypeInfoTable(tm.Ordered())

	recordOff, ok := blob.TypeOffsets[pair.ID]
	if !ok {
		t.Fatalf("no type-info record offset recorded for struct %q", pair.Name)
	}
	if recordOff == 0 {
		t.Fatal("a real type's record offset must never be the reserved 0 sentinel")
	}

	for _, p := range blob.Patches {
		if p.Offset >= uint32(len(blob.Bytes)) {
			t.Fatalf("patch at offset %d falls outside the %d-byte segment", p.Offset, len(blob.Bytes))
		}
	}

	// Decode the members back: the member slice field follows the 13-byte
	// header and the constructed-from id; each member record is name, offset,
	// type id, used flag, default pointer and an empty meta-tag slice.
	slot := recordOff + 13 + 4
	if n := binary.LittleEndian.Uint32(blob.Bytes[slot+PointerSize:]); n != uint32(len(pair.StructMembers)) {
		t.Fatalf("member count = %d, want %d", n, len(pair.StructMembers))
	}
	body := binary.LittleEndian.Uint32(blob.Bytes[slot:])
	stride := 4 + 4 + 4 + 1 + PointerSize + PointerSize + 4
	for i, want := range pair.StructMembers {
		rec := blob.Bytes[body+uint32(i)*stride:]
		nameOff := binary.LittleEndian.Uint32(rec[0:])
		name := string(blob.StringPool[nameOff : nameOff+uint32(bytes.IndexByte(blob.StringPool[nameOff:], 0))])
		off := binary.LittleEndian.Uint32(rec[4:])
		id := binary.LittleEndian.Uint32(rec[8:])
		if name != want.Name || off != want.Offset || id != want.Type.ID {
			t.Fatalf("member %d = {%q, %d, type %d}, want {%q, %d, type %d}", i, name, off, id, want.Name, want.Offset, want.Type.ID)
		}
	}
}

// TestEmitForeignBlockTableEmptyIsJustTheSentinel checks that an empty
// foreign-block list produces exactly the reserved zero byte and interns no
// strings, per spec.md §4.5's shared invariants.
func TestEmitForeignBlockTableEmptyIsJustTheSentinel(t *testing.T) {
	c := NewContext(types.NewMap())
	blob := c.emitForeignBlockTable(nil)

	if diff := cmp.Diff([]byte{0}, blob.Bytes); diff != "" {
		t.Fatalf("empty foreign-block table mismatch (-want +got):\n%s", diff)
	}
	if len(blob.StringPool) != 0 {
		t.Fatalf("empty foreign-block list must not intern any strings, got %d bytes", len(blob.StringPool))
	}
}

// TestEmitTaggedProcTableEmptyProducesNoPatches checks that a nil procedure
// list (the "should emit" predicate approved nothing) emits only the
// reserved sentinel byte and no relocation patches.
func TestEmitTaggedProcTableEmptyProducesNoPatches(t *testing.T) {
	c := NewContext(types.NewMap())
	blob := c.emitTaggedProcTable(nil)

	if diff := cmp.Diff([]byte{0}, blob.Bytes); diff != "" {
		t.Fatalf("empty tagged-procedure table mismatch (-want +got):\n%s", diff)
	}
	if len(blob.Patches) != 0 {
		t.Fatalf("empty tagged-procedure table must emit no patches, got %d", len(blob.Patches))
	}
}
