package wasmhost

import (
	"encoding/binary"
	"fmt"
)

// CustomSections is the subset of a linked module's custom sections C6
// cares about: the dynamic-library manifest and the function-offset table
// the linker deposits so a trap can be mapped back to a source-level
// function name. Both are named exactly as spec.md §4.6 and §6 evoke:
// "_onyx_libs" and "_onyx_func_offsets".
type CustomSections struct {
	Libs []string // host library names the module needs loaded

	// FuncOffsets is the raw body of the "_onyx_func_offsets" custom
	// section, immediately after its name: a flat, function-index-keyed
	// table, not a (name, offset) pair list. For function index i, a
	// little-endian u32 at byte offset 4*i holds the byte offset (from the
	// start of this slice) of that function's NUL-terminated name. Nil if
	// the module carried no such section.
	FuncOffsets []byte
}

// FuncNameForIndex looks up the source-level name of WASM function index
// idx in the _onyx_func_offsets table, mirroring wasm_runtime.c's
// onyx_print_trap indexing: cursor = func_name_section + 4*func_idx.
func (s CustomSections) FuncNameForIndex(idx uint32) (string, bool) {
	if s.FuncOffsets == nil {
		return "", false
	}
	cursor := 4 * int(idx)
	if cursor < 0 || cursor+4 > len(s.FuncOffsets) {
		return "", false
	}
	off := int(binary.LittleEndian.Uint32(s.FuncOffsets[cursor : cursor+4]))
	if off < 0 || off > len(s.FuncOffsets) {
		return "", false
	}
	end := off
	for end < len(s.FuncOffsets) && s.FuncOffsets[end] != 0 {
		end++
	}
	if end >= len(s.FuncOffsets) {
		return "", false
	}
	return string(s.FuncOffsets[off:end]), true
}

// ScanCustomSections walks a WASM module's section stream (after the 8-byte
// magic+version header) looking for the two custom sections C6 consumes. It
// ignores every other section without fully parsing it, since C6 needs only
// these two tables before handing the whole module to the engine.
func ScanCustomSections(data []byte) (CustomSections, error) {
	var out CustomSections

	if len(data) < 8 {
		return out, fmt.Errorf("wasmhost: module too short to contain a header")
	}
	pos := 8
	for pos < len(data) {
		id := data[pos]
		pos++
		size, n, err := readULEB128(data[pos:])
		if err != nil {
			return out, fmt.Errorf("wasmhost: malformed section length at byte %d: %w", pos, err)
		}
		pos += n
		end := pos + int(size)
		if end > len(data) {
			return out, fmt.Errorf("wasmhost: section at byte %d overruns module", pos)
		}
		if id == 0 { // custom section
			if err := scanCustomSection(data[pos:end], &out); err != nil {
				return out, err
			}
		}
		pos = end
	}
	return out, nil
}

func scanCustomSection(payload []byte, out *CustomSections) error {
	name, n, err := readName(payload)
	if err != nil {
		return fmt.Errorf("wasmhost: malformed custom section name: %w", err)
	}
	body := payload[n:]
	switch name {
	case "_onyx_libs":
		return parseLibsSection(body, out)
	case "_onyx_func_offsets":
		return parseFuncOffsetsSection(body, out)
	}
	return nil
}

// parseLibsSection reads a vector of length-prefixed UTF-8 library names.
func parseLibsSection(body []byte, out *CustomSections) error {
	count, n, err := readULEB128(body)
	if err != nil {
		return fmt.Errorf("wasmhost: malformed _onyx_libs count: %w", err)
	}
	body = body[n:]
	for i := uint64(0); i < count; i++ {
		name, adv, err := readName(body)
		if err != nil {
			return fmt.Errorf("wasmhost: malformed _onyx_libs entry %d: %w", i, err)
		}
		out.Libs = append(out.Libs, name)
		body = body[adv:]
	}
	return nil
}

// parseFuncOffsetsSection records the section body verbatim: it is a flat,
// function-index-addressed table (see CustomSections.FuncOffsets), not a
// counted vector, so there is nothing to decode eagerly.
func parseFuncOffsetsSection(body []byte, out *CustomSections) error {
	out.FuncOffsets = body
	return nil
}

func readName(b []byte) (string, int, error) {
	length, n, err := readULEB128(b)
	if err != nil {
		return "", 0, err
	}
	end := n + int(length)
	if end > len(b) {
		return "", 0, fmt.Errorf("name length %d overruns section", length)
	}
	return string(b[n:end]), end, nil
}

// readULEB128 decodes an unsigned LEB128 integer, the varint encoding WASM
// uses throughout its binary format.
func readULEB128(b []byte) (uint64, int, error) {
	var result uint64
	var shift uint
	for i, byt := range b {
		result |= uint64(byt&0x7f) << shift
		if byt&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, 0, fmt.Errorf("uleb128 too long")
		}
	}
	return 0, 0, fmt.Errorf("uleb128 truncated")
}
