package wasmhost

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// TrapFrame is one symbolicated stack frame: the WASM function index, an
// Offset copied from the recorded frame (always 0, since the frame recorder
// does not capture a module offset), and the source-level function name if
// the module's `_onyx_func_offsets` table covered that index.
type TrapFrame struct {
	FuncIndex uint32
	Offset    uint64
	FuncName  string
}

// Symbolicate maps the raw frames a trap unwound through back to source
// names via the module's `_onyx_func_offsets` table, indexed directly by
// function index rather than by nearest-below code offset.
func (h *Host) Symbolicate(raw []trapFrame) []TrapFrame {
	frames := make([]TrapFrame, len(raw))
	for i, f := range raw {
		name, ok := h.sections.FuncNameForIndex(f.FuncIndex)
		if !ok {
			name = "<unknown>"
		}
		frames[i] = TrapFrame{FuncIndex: f.FuncIndex, Offset: f.Offset, FuncName: name}
	}
	return frames
}

// FormatTrap renders a trap the way onyx_print_trap does: a "TRAP:" line
// with the engine's message, then, only if the module carried a
// _onyx_func_offsets table, a "TRACE:" line followed by one
// "func[idx]:offset at name" line per frame, innermost first.
func FormatTrap(message string, haveFuncOffsets bool, frames []TrapFrame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TRAP: %s\n", message)
	if !haveFuncOffsets {
		return b.String()
	}
	b.WriteString("TRACE:\n")
	b.WriteString(FormatTrace(frames))
	return b.String()
}

// FormatTrace renders the frame lines alone, right-padding each function
// name to the widest name in the trace using golang.org/x/text/width so
// frames line up even when a name contains East-Asian wide characters.
func FormatTrace(frames []TrapFrame) string {
	maxW := 0
	for _, f := range frames {
		if w := displayWidth(f.FuncName); w > maxW {
			maxW = w
		}
	}
	var b strings.Builder
	for _, f := range frames {
		pad := maxW - displayWidth(f.FuncName)
		fmt.Fprintf(&b, "    func[%d]:%#x at %s%s\n", f.FuncIndex, f.Offset, f.FuncName, strings.Repeat(" ", pad))
	}
	return b.String()
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		p := width.LookupRune(r)
		switch p.Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
