// Package wasmhost implements C6 of spec.md §4.6: the runtime loader that
// takes a linked module, resolves its dynamic-library imports, instantiates
// it on a WASM engine, and runs it to completion — or symbolicates a trap
// when it doesn't.
package wasmhost

import "bytes"

// onyxSentinel is the 4-byte header lucidc's own linker writes in place of
// the real WASM magic while a module is still being assembled, so a
// half-built module can never be mistaken for a loadable one. RewriteMagic
// is the last step before handing bytes to the engine.
var onyxSentinel = [4]byte{'O', 'N', 'Y', 'X'}

var wasmMagic = [4]byte{0x00, 0x61, 0x73, 0x6d}

// RewriteMagic replaces a leading ONYX sentinel with the real WASM magic
// number. It returns the input unchanged (not copied) if the sentinel isn't
// present, since a module that already carries the real magic needs no
// rewriting.
func RewriteMagic(data []byte) []byte {
	if len(data) < 4 || !bytes.Equal(data[:4], onyxSentinel[:]) {
		return data
	}
	out := make([]byte, len(data))
	copy(out, data)
	copy(out[:4], wasmMagic[:])
	return out
}
