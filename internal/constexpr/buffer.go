// Package constexpr implements C4, the Constant-Expression Emitter
// collaborator spec.md §4.4 describes as a black box: something that writes
// a compile-time-known typed value into a growable byte buffer and reports
// back any offsets that must be patched once the buffer's final address is
// known. internal/reflectemit is the only caller; it owns deciding *where*
// a value's bytes land and asking this package to serialize them.
package constexpr

import (
	"encoding/binary"
	"math"
)

// Buffer is a growable little-endian byte buffer, grounded in the same
// append-and-grow idiom the teacher's iface encoder builds its output with.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Bytes returns the buffer's contents so far. The slice aliases the
// buffer's backing array; callers must copy before further writes if they
// need a stable snapshot.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes written so far.
func (b *Buffer) Len() uint32 { return uint32(len(b.data)) }

// Pad appends zero bytes until Len() is a multiple of align.
func (b *Buffer) Pad(align uint32) {
	if align == 0 {
		return
	}
	for b.Len()%align != 0 {
		b.data = append(b.data, 0)
	}
}

// Reserve appends n zero bytes and returns the offset they start at, for a
// field whose value is patched in later (e.g. a relocatable pointer slot).
func (b *Buffer) Reserve(n uint32) uint32 {
	off := b.Len()
	b.data = append(b.data, make([]byte, n)...)
	return off
}

func (b *Buffer) WriteU8(v uint8)   { b.data = append(b.data, v) }
func (b *Buffer) WriteBool(v bool) {
	if v {
		b.WriteU8(1)
	} else {
		b.WriteU8(0)
	}
}

func (b *Buffer) WriteU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *Buffer) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *Buffer) WriteU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *Buffer) WriteF32(v float32) { b.WriteU32(math.Float32bits(v)) }
func (b *Buffer) WriteF64(v float64) { b.WriteU64(math.Float64bits(v)) }

// WriteAt overwrites n bytes at off with v's little-endian encoding, used to
// patch a Reserve'd slot once its value becomes known.
func (b *Buffer) WriteAt(off uint32, v []byte) {
	copy(b.data[off:off+uint32(len(v))], v)
}

// WriteBytes appends p verbatim, used to splice a value another Buffer
// already serialized (e.g. a struct member's default) into this one.
func (b *Buffer) WriteBytes(p []byte) { b.data = append(b.data, p...) }
