package wasmhost

import (
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"

	"github.com/lucidlang/lucidc/internal/diag"
)

// Library is a host dynamic library opened for one of the module's foreign
// blocks. The file is found by platformFileName (lib<name>.so,
// lib<name>.dylib or <name>.dll, through the dynamic linker's default search
// path), and each foreign function is then resolved by its own symbol name.
// No `onyx_library_<name>` prefix is applied and no library entry symbol is
// looked up or called.
type Library struct {
	Name   string
	handle uintptr
}

// OpenLibrary loads the platform-appropriate shared-object file for name —
// dlopen on POSIX, LoadLibraryA on Windows — via purego, which implements
// both without cgo.
func OpenLibrary(name string) (*Library, error) {
	handle, err := purego.Dlopen(platformFileName(name), purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", diag.LibraryLoadFailed, err)
	}
	return &Library{Name: name, handle: handle}, nil
}

// platformFileName maps a bare library name (as it appears in a `foreign`
// block declaration) to the file name the host's dynamic linker expects.
func platformFileName(name string) string {
	switch runtime.GOOS {
	case "windows":
		return name + ".dll"
	case "darwin":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}

// Symbol resolves a single exported function by name.
func (l *Library) Symbol(name string) (uintptr, error) {
	sym, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("%s: library %q has no symbol %q: %w", diag.LibrarySymbolMissing, l.Name, name, err)
	}
	return sym, nil
}

// Call invokes the raw C function at addr with the given argument words,
// using purego's low-level call dispatcher so the bridge works for any
// foreign-block signature the checker already validated arity and basic
// numeric/pointer types for — no per-signature cgo stub is generated.
func Call(addr uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(addr, args...)
	return r1
}
