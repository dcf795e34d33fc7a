package wasmhost

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/experimental"

	"github.com/lucidlang/lucidc/internal/diag"
)

// Run loads, links, instantiates, and executes a linked module's `_start`
// export. If the module traps, Run adds a diag.Trap entry with the
// symbolicated trace to log and also returns the engine's error, per
// spec.md §9's never-panic diagnostic discipline. An unresolved import is
// not a trap: LinkImports returns an error carrying diag.ImportNotFound,
// nothing is added to log, and execution is aborted before `_start` is
// ever looked up.
func Run(ctx context.Context, moduleBytes []byte, cfg Config, blocks []ForeignBlockSig, log *diag.Log) error {
	moduleBytes = RewriteMagic(moduleBytes)

	sections, err := ScanCustomSections(moduleBytes)
	if err != nil {
		return fmt.Errorf("%s: %w", diag.ModuleParseFailed, err)
	}

	host, err := NewHost(ctx, cfg, sections)
	if err != nil {
		return err
	}
	defer host.Close(ctx)

	ctx = experimental.WithFunctionListenerFactory(ctx, host.frames)

	compiled, err := host.runtime.CompileModule(ctx, moduleBytes)
	if err != nil {
		return fmt.Errorf("%s: %w", diag.ModuleParseFailed, err)
	}

	if err := host.LinkImports(ctx, compiled, cfg, blocks); err != nil {
		return err
	}

	host.frames.reset()
	mod, err := host.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return host.reportTrap(err, log)
	}
	defer mod.Close(ctx)

	start := mod.ExportedFunction("_start")
	if start == nil {
		return fmt.Errorf("%s: module has no _start export", diag.ModuleParseFailed)
	}
	if _, err := start.Call(ctx); err != nil {
		return host.reportTrap(err, log)
	}
	return nil
}

// reportTrap symbolicates the real call-stack frames the frameRecorder
// captured as the trap unwound and records them as a diag.Trap diagnostic
// rather than surfacing the raw engine error, per onyx_print_trap.
func (h *Host) reportTrap(err error, log *diag.Log) error {
	raw := h.frames.take()
	frames := h.Symbolicate(raw)
	haveFuncOffsets := h.sections.FuncOffsets != nil
	log.Add(diag.Pos{}, diag.Trap, "%s", FormatTrap(err.Error(), haveFuncOffsets, frames))
	return err
}
