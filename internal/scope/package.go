package scope

import "github.com/lucidlang/lucidc/internal/diag"

// Package is a named compilation unit: an owning package scope where its own
// declarations live, and an include scope used for use-package aliases and
// selective imports (spec.md §3).
type Package struct {
	Name         string
	PackageScope *Scope
	IncludeScope *Scope
}

// NewPackage creates a package with fresh package/include scopes parented at
// global.
func NewPackage(name string, global *Scope) *Package {
	return &Package{
		Name:         name,
		PackageScope: NewScope(global),
		IncludeScope: NewScope(nil),
	}
}

// Position implements ast.Node so a *Package can be installed as the
// resolved declaration behind a Symbol (spec.md §4.1 package-qualified
// lookup), even though it has no source position of its own.
func (p *Package) Position() diag.Pos { return diag.Pos{} }
