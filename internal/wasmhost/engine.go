package wasmhost

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/lucidlang/lucidc/internal/diag"
)

// defaultMemoryMinPages and onyxMemoryMaxPages are the limits the loader
// binds the built-in "onyx.memory" import to when a module imports it, per
// wasm_runtime.c's link_wasm_imports: { 1024, 65536 }.
const (
	defaultMemoryMinPages uint32 = 1024
	onyxMemoryMaxPages    uint32 = 65536
)

// Config controls one module run.
type Config struct {
	// MemoryPages is the initial linear-memory size, in 64KiB WASM pages,
	// backing the built-in "onyx.memory" import every module links against.
	// Zero means defaultMemoryMinPages.
	MemoryPages uint32
	// EnableSIMD, EnableThreads, and EnableBulkMemory gate the
	// corresponding WASM core features on the engine, per spec.md §4.6.
	EnableSIMD       bool
	EnableThreads    bool
	EnableBulkMemory bool
}

// Host is one running instance: the wazero runtime, every dynamic library
// opened to satisfy its foreign blocks, and the custom sections scanned
// from the module that let a trap be symbolicated back to source.
type Host struct {
	runtime     wazero.Runtime
	libs        map[string]*Library
	sections    CustomSections
	frames      *frameRecorder
	memoryBound bool
}

// NewHost builds the wazero runtime with the requested core features
// enabled and opens every dynamic library the module's `_onyx_libs` custom
// section names.
func NewHost(ctx context.Context, cfg Config, sections CustomSections) (*Host, error) {
	rc := wazero.NewRuntimeConfig()
	features := api.CoreFeaturesV2
	if cfg.EnableSIMD {
		features = features.SetEnabled(api.CoreFeatureSIMD, true)
	}
	if cfg.EnableThreads {
		features = features.SetEnabled(api.CoreFeatureThreads, true)
	}
	if cfg.EnableBulkMemory {
		features = features.SetEnabled(api.CoreFeatureBulkMemoryOperations, true)
	}
	rc = rc.WithCoreFeatures(features)

	h := &Host{
		runtime:  wazero.NewRuntimeWithConfig(ctx, rc),
		libs:     make(map[string]*Library),
		sections: sections,
		frames:   &frameRecorder{},
	}

	for _, name := range sections.Libs {
		lib, err := OpenLibrary(name)
		if err != nil {
			return nil, err
		}
		h.libs[name] = lib
	}
	return h, nil
}

// foreignBinding is one foreign function's resolved bridge: the library it
// dispatches through and its WASM-level signature.
type foreignBinding struct {
	lib *Library
	fn  ForeignFuncSig
}

// LinkImports resolves every import the compiled module actually declares
// against the built-in "onyx.memory" export and the foreign-block bindings
// derived from blocks, mirroring wasm_runtime.c's link_wasm_imports: every
// import is checked against a real source before instantiation is attempted,
// and the first one that matches nothing aborts linking with
// diag.ImportNotFound instead of letting wazero's generic "import not
// satisfied" instantiation error stand in for it.
func (h *Host) LinkImports(ctx context.Context, compiled wazero.CompiledModule, cfg Config, blocks []ForeignBlockSig) error {
	bindings := make(map[[2]string]foreignBinding)
	for _, block := range blocks {
		lib, ok := h.libs[block.LibraryName]
		if !ok {
			return fmt.Errorf("%s: foreign block %q: library %q was not opened", diag.ImportNotFound, block.ModuleName, block.LibraryName)
		}
		for _, fn := range block.Funcs {
			bindings[[2]string{block.ModuleName, fn.Name}] = foreignBinding{lib: lib, fn: fn}
		}
	}

	for _, m := range compiled.ImportedMemories() {
		modName, name, _ := m.Import()
		if modName == "onyx" && name == "memory" {
			if err := h.bindMemory(ctx, cfg); err != nil {
				return err
			}
			continue
		}
		return fmt.Errorf("%s: Couldn't find import %s.%s.", diag.ImportNotFound, modName, name)
	}

	byModule := make(map[string][]api.FunctionDefinition)
	for _, fn := range compiled.ImportedFunctions() {
		modName, name, _ := fn.Import()
		if _, ok := bindings[[2]string{modName, name}]; !ok {
			return fmt.Errorf("%s: Couldn't find import %s.%s.", diag.ImportNotFound, modName, name)
		}
		byModule[modName] = append(byModule[modName], fn)
	}

	for modName, fns := range byModule {
		mb := h.runtime.NewHostModuleBuilder(modName)
		for _, fndef := range fns {
			_, name, _ := fndef.Import()
			bind := bindings[[2]string{modName, name}]
			addr, err := bind.lib.Symbol(bind.fn.Name)
			if err != nil {
				return err
			}
			mb.NewFunctionBuilder().
				WithGoModuleFunction(bridgeFunc(addr, bind.fn), bind.fn.Params, bind.fn.Results).
				Export(bind.fn.Name)
		}
		if _, err := mb.Instantiate(ctx); err != nil {
			return fmt.Errorf("linking module %q: %w", modName, err)
		}
	}
	return nil
}

// bindMemory lazily creates the shared "onyx.memory" host export the first
// time a module imports it, reusing it for the lifetime of the Host.
func (h *Host) bindMemory(ctx context.Context, cfg Config) error {
	if h.memoryBound {
		return nil
	}
	min := cfg.MemoryPages
	if min == 0 {
		min = defaultMemoryMinPages
	}
	mb := h.runtime.NewHostModuleBuilder("onyx").
		ExportMemoryWithMax("memory", min, onyxMemoryMaxPages)
	if _, err := mb.Instantiate(ctx); err != nil {
		return fmt.Errorf("linking onyx.memory: %w", err)
	}
	h.memoryBound = true
	return nil
}

// ForeignBlockSig is the minimal per-block ABI description LinkImports
// needs: which dynamic library it binds to and every function's WASM
// value-type signature, as derived from the checker's types.Type for each
// ForeignFuncDecl.
type ForeignBlockSig struct {
	ModuleName  string
	LibraryName string
	Funcs       []ForeignFuncSig
}

// ForeignFuncSig is one function's WASM-level signature.
type ForeignFuncSig struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// bridgeFunc adapts a raw C function pointer into a wazero GoModuleFunc by
// converting each WASM stack value to a uintptr argument word and the C
// call's return value back into the declared WASM result type. This covers
// every signature spec.md's foreign-block ABI allows: scalar integers,
// floats, and raw pointers, never an aggregate passed by value.
func bridgeFunc(addr uintptr, fn ForeignFuncSig) api.GoModuleFunc {
	return api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
		args := make([]uintptr, len(fn.Params))
		for i := range fn.Params {
			args[i] = uintptr(stack[i])
		}
		result := Call(addr, args...)
		if len(fn.Results) > 0 {
			switch fn.Results[0] {
			case api.ValueTypeF32:
				stack[0] = uint64(math.Float32bits(float32(result)))
			case api.ValueTypeF64:
				stack[0] = math.Float64bits(float64(result))
			default:
				stack[0] = uint64(result)
			}
		}
	})
}

// Close releases the wazero runtime. Opened dynamic libraries are not
// closed; they stay loaded for the life of the process.
func (h *Host) Close(ctx context.Context) {
	_ = h.runtime.Close(ctx)
}
