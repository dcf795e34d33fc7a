// Package resolve implements C1, the Scope & Symbol Resolver of spec.md §4.1.
//
// Given the entity list, it resolves every unresolved identifier node in
// place to an AST declaration, including the names inside type expressions
// (NamedTypeExpr.Resolved); the concrete types.Type values are built later
// by internal/check. State — current scope, current function, current
// package, the type map, and the diagnostic log — is threaded explicitly
// through a Context, never held in a package-level singleton (spec.md §9
// Design Notes).
package resolve

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/scope"
	"github.com/lucidlang/lucidc/internal/types"
)

// Context carries the mutable state of one resolution run.
type Context struct {
	Prog    *scope.Program
	Types   *types.Map
	Log     *diag.Log
	stack   scope.Stack
	pkg     *scope.Package
	fn      *ast.FuncDecl
}

// NewContext creates a resolver context over prog, sharing the given type map
// and diagnostic log with the rest of the pipeline.
func NewContext(prog *scope.Program, tm *types.Map, log *diag.Log) *Context {
	return &Context{Prog: prog, Types: tm, Log: log}
}

// Run resolves every entity in the program's entity list, in order. Running
// Run twice over the same entity list produces no new bindings on the second
// pass (spec.md §8 idempotence property): every lookup that succeeded the
// first time finds the same declaration already installed, and every
// Define call is either a no-op repeat or guarded by the same "first wins"
// policy used for include-scope merges.
func (c *Context) Run() {
	for _, e := range c.Prog.Entities {
		c.pkg = e.Pkg
		c.stack.Enter(e.Pkg.PackageScope)
		c.resolveEntity(e)
		c.stack.Leave()
	}
}

func (c *Context) resolveEntity(e *scope.Entity) {
	switch e.Kind {
	case scope.EntityUsePackage:
		c.resolveUsePackage(e.Node.(*ast.UsePackageDecl))
	case scope.EntityFunction:
		c.resolveFunc(e.Node.(*ast.FuncDecl))
	case scope.EntityOverloadedFunction:
		c.resolveOverloadSet(e.Node.(*ast.OverloadedFuncDecl))
	case scope.EntityGlobal:
		c.resolveGlobal(e.Node.(*ast.GlobalDecl))
	case scope.EntityExpression:
		if x, ok := e.Node.(ast.Expr); ok {
			c.resolveExpr(x)
		}
	case scope.EntityStruct:
		c.resolveStruct(e.Node.(*ast.StructDecl))
	case scope.EntityEnum:
		c.resolveEnum(e.Node.(*ast.EnumDecl))
	case scope.EntityForeignBlock:
		c.resolveForeignBlock(e.Node.(*ast.ForeignBlockDecl))
	case scope.EntityStringLiteral:
		// Nothing to resolve: a bare string literal entity has no
		// identifiers or type expressions.
	}
}

// lookup searches the current scope chain, then falls back to the current
// package's include scope (use-package aliases and merged imports).
func (c *Context) lookup(name string) (ast.Node, bool) {
	if d, ok := c.stack.Current().Lookup(name); ok {
		return d, true
	}
	if c.pkg != nil {
		if d, ok := c.pkg.IncludeScope.Lookup(name); ok {
			return d, true
		}
	}
	return nil, false
}

func (c *Context) resolveUsePackage(u *ast.UsePackageDecl) {
	target, ok := c.Prog.Packages[u.PackageName]
	if !ok {
		c.Log.Add(u.Pos, diag.PackageNotFound, "package %q not found", u.PackageName)
		return
	}
	switch {
	case u.Alias != "":
		// Install a package-node under the alias in the current
		// package's include scope.
		c.pkg.IncludeScope.DefineIfAbsent(u.Alias, target)
	case len(u.Only) > 0:
		for _, name := range u.Only {
			decl, ok := target.PackageScope.LookupLocal(name)
			if !ok {
				c.Log.Add(u.Pos, diag.UnresolvedSymbol, "symbol %q not found in package %q", name, u.PackageName)
				continue
			}
			c.pkg.IncludeScope.DefineIfAbsent(name, decl)
		}
	default:
		// Merge: first binding wins; duplicate bindings are not
		// errors, later bindings are ignored. This is the explicit
		// conflict policy spec.md §9 asks implementers to document.
		c.pkg.IncludeScope.MergeFrom(target.PackageScope)
	}
}
