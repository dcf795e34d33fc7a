package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer renders a Log to an io.Writer as "file:line:col: message" lines.
// When the destination looks like a terminal, the "file:line:col:" prefix is
// colored red and the diagnostic code is printed before the message; plain
// output omits the code.
type Printer struct {
	w        io.Writer
	colorize bool
}

// NewPrinter creates a Printer for w. Colorization is auto-detected from w when
// it is an *os.File; callers writing to a buffer get plain text.
func NewPrinter(w io.Writer) *Printer {
	colorize := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{w: w, colorize: colorize}
}

// Print renders every diagnostic in the log, one per line.
func (p *Printer) Print(log *Log) {
	errColor := color.New(color.FgRed, color.Bold)
	for _, d := range log.All() {
		if p.colorize {
			fmt.Fprintf(p.w, "%s %s: %s\n", errColor.Sprint(d.Pos.String()+":"), string(d.Code), d.Message)
			continue
		}
		fmt.Fprintf(p.w, "%s: %s\n", d.Pos, d.Message)
	}
}

// VerboseBlobSizes prints the byte sizes of the three reflection blobs,
// as spec.md §6 requires of verbose mode.
func (p *Printer) VerboseBlobSizes(typeInfo, foreignBlocks, taggedProcs int) {
	fmt.Fprintf(p.w, "type-info: %d bytes, foreign-blocks: %d bytes, tagged-procedures: %d bytes\n",
		typeInfo, foreignBlocks, taggedProcs)
}
