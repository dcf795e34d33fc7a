package reflectemit

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/constexpr"
)

// emitForeignBlockTable builds C5.b: one record per `foreign` block,
// listing the host module name it binds to and the signatures of the
// functions it declares, so C6's loader can validate a dynamic library's
// exports against what the compiled module actually calls (spec.md §4.6,
// §8 scenario 6).
//
// Record layout (all string fields are offset/length pairs into the blob's
// own string pool, which the final module layout places immediately after
// Bytes — never a cross-blob relocation, so no patch is needed for them):
//
//	u32 module name offset, u32 module name length
//	u32 function count
//	then, per function: u32 name offset, u32 name length, u32 param count, u8 has-return
func (c *Context) emitForeignBlockTable(blocks []*ast.ForeignBlockDecl) Blob {
	b := newBlob()
	buf := constexpr.NewBuffer()
	buf.WriteU8(0) // reserved byte 0

	for _, fb := range blocks {
		buf.Pad(4)
		buf.WriteU32(b.internString(fb.ModuleName))
		buf.WriteU32(uint32(len(fb.ModuleName)))
		buf.WriteU32(uint32(len(fb.Funcs)))
		for _, fn := range fb.Funcs {
			buf.WriteU32(b.internString(fn.Name))
			buf.WriteU32(uint32(len(fn.Name)))
			buf.WriteU32(uint32(len(fn.Params)))
			buf.WriteBool(fn.ReturnType != nil)
		}
	}

	b.Bytes = buf.Bytes()
	return b
}
