package reflectemit

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/constexpr"
)

// emitTaggedProcTable builds C5.c: one record per function carrying at
// least one meta tag, so a host or another compiled module can discover
// procedures by tag at runtime (spec.md §4.5, §8 scenario 5's analogue for
// procedures rather than struct fields).
//
// Record layout:
//
//	u32 name offset, u32 name length (into the blob's own string pool)
//	u32 func index slot (patched by the linker once function indices are final)
//	u32 tag count
//	then, per tag: u32 tag name offset, u32 tag name length
func (c *Context) emitTaggedProcTable(procs []*ast.FuncDecl) Blob {
	b := newBlob()
	buf := constexpr.NewBuffer()
	buf.WriteU8(0) // reserved byte 0

	for _, fn := range procs {
		if len(fn.Tags) == 0 {
			continue
		}
		buf.Pad(4)
		buf.WriteU32(b.internString(fn.Name))
		buf.WriteU32(uint32(len(fn.Name)))
		slot := buf.Reserve(4) // function index, unknown until C6 links the module
		b.Patches = append(b.Patches, constexpr.Patch{Offset: slot, Kind: constexpr.PatchData, DataKey: fn.Name})
		buf.WriteU32(uint32(len(fn.Tags)))
		for _, tag := range fn.Tags {
			buf.WriteU32(b.internString(tag.Name))
			buf.WriteU32(uint32(len(tag.Name)))
		}
	}

	b.Bytes = buf.Bytes()
	return b
}
