// Command lucidc type-checks and reflects a Lucid program's entity list,
// reporting diagnostics and, with -v, the byte size of each emitted
// reflection table.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lucidlang/lucidc/internal/compiler"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/scope"
)

func main() {
	var (
		verbose     = flag.Bool("v", false, "print reflection-table byte sizes")
		pointerSize = flag.Int("ptr-size", 8, "target pointer width in bytes (4 or 8)")
	)
	flag.Parse()

	if *pointerSize != 4 && *pointerSize != 8 {
		fmt.Fprintln(os.Stderr, "lucidc: -ptr-size must be 4 or 8")
		os.Exit(2)
	}

	// lucidc has no parser front end of its own in this tree: the entity
	// list below stands in for what a real front end would hand the
	// compiler core. See internal/astbuild for the fixture-construction
	// helpers tests use to exercise the same path.
	prog := scope.NewProgram()

	result := compiler.Run(prog, compiler.Config{PointerSize: uint32(*pointerSize), Verbose: *verbose})

	printer := diag.NewPrinter(os.Stderr)
	printer.Print(result.Log)

	if *verbose {
		printer.VerboseBlobSizes(len(result.Reflect.TypeInfo.Bytes), len(result.Reflect.ForeignBlocks.Bytes), len(result.Reflect.TaggedProcs.Bytes))
	}

	if result.Log.HasErrors() {
		os.Exit(1)
	}
}
