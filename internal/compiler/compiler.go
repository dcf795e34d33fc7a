// Package compiler is the pass driver: it wires C1 (resolve) through C2
// (check), C3 (collapse), and C5 (reflectemit) into a single Run call, the
// way the teacher's pipeline.go sequences its own passes over one Program.
package compiler

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/check"
	"github.com/lucidlang/lucidc/internal/collapse"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/reflectemit"
	"github.com/lucidlang/lucidc/internal/resolve"
	"github.com/lucidlang/lucidc/internal/scope"
	"github.com/lucidlang/lucidc/internal/types"
)

// Config controls one compilation.
type Config struct {
	PointerSize uint32 // 4 or 8; defaults to 8 if zero
	Verbose     bool
}

// Result is everything a successful (or partially successful, if Log has
// errors but the caller wants to inspect what was built anyway) compilation
// produces.
type Result struct {
	Program  *scope.Program
	Types    *types.Map
	Log      *diag.Log
	Reflect  reflectemit.Result
}

// Run executes C1 through C3, then C5, over prog in order, returning as
// soon as the diagnostic log has accumulated at least one error after a
// phase that later phases cannot safely run without (spec.md §9: later
// phases assume earlier ones left the tree in a typed, shape-complete
// state).
func Run(prog *scope.Program, cfg Config) Result {
	if cfg.PointerSize == 0 {
		cfg.PointerSize = 8
	}
	check.PointerSize = cfg.PointerSize
	reflectemit.PointerSize = cfg.PointerSize

	tm := types.NewMap()
	log := diag.NewLog()

	resolve.NewContext(prog, tm, log).Run()

	checker := check.NewContext(prog, tm, log)
	checker.Run()
	if log.HasErrors() {
		return Result{Program: prog, Types: tm, Log: log}
	}

	collapse.NewContext(prog).Run()

	var foreignBlocks []*ast.ForeignBlockDecl
	var taggedProcs []*ast.FuncDecl
	for _, e := range prog.Entities {
		switch n := e.Node.(type) {
		case *ast.ForeignBlockDecl:
			foreignBlocks = append(foreignBlocks, n)
		case *ast.FuncDecl:
			if len(n.Tags) > 0 {
				taggedProcs = append(taggedProcs, n)
			}
		}
	}

	rc := reflectemit.NewContext(tm)
	result := rc.Run(tm.Ordered(), foreignBlocks, taggedProcs)

	return Result{Program: prog, Types: tm, Log: log, Reflect: result}
}
