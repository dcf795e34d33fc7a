package check

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/scope"
	"github.com/lucidlang/lucidc/internal/types"
)

// Context carries the mutable state of one type-checking run, mirroring
// internal/resolve.Context: no package-level singletons, every piece of
// state an explicit field threaded through the call chain.
type Context struct {
	Prog *scope.Program
	Types *types.Map
	Log   *diag.Log

	fn *ast.FuncDecl // enclosing function, for Return-type checks; nil at global scope

	structCache map[*ast.StructDecl]*types.Type
	enumCache   map[*ast.EnumDecl]*types.Type
}

// NewContext creates a checker context sharing the type map and diagnostic
// log built up during C1.
func NewContext(prog *scope.Program, tm *types.Map, log *diag.Log) *Context {
	return &Context{
		Prog:        prog,
		Types:       tm,
		Log:         log,
		structCache: make(map[*ast.StructDecl]*types.Type),
		enumCache:   make(map[*ast.EnumDecl]*types.Type),
	}
}

// Run type-checks every entity in the program's entity list, in order.
func (c *Context) Run() {
	for _, e := range c.Prog.Entities {
		c.checkEntity(e)
	}
}

func (c *Context) checkEntity(e *scope.Entity) {
	switch e.Kind {
	case scope.EntityFunction:
		c.checkFunc(e.Node.(*ast.FuncDecl))
	case scope.EntityOverloadedFunction:
		c.checkOverloadSet(e.Node.(*ast.OverloadedFuncDecl))
	case scope.EntityGlobal:
		c.checkGlobal(e.Node.(*ast.GlobalDecl))
	case scope.EntityExpression:
		if x, ok := e.Node.(ast.Expr); ok {
			c.checkExpr(x)
		}
	case scope.EntityStruct:
		decl := e.Node.(*ast.StructDecl)
		if len(decl.TypeParams) > 0 {
			c.polyStructType(decl)
		} else {
			c.structType(decl, nil, nil)
		}
	case scope.EntityEnum:
		c.enumType(e.Node.(*ast.EnumDecl))
	case scope.EntityForeignBlock:
		c.checkForeignBlock(e.Node.(*ast.ForeignBlockDecl))
	}
}

// checkOverloadSet enforces spec.md §4.2's overloaded-function rule: no
// member of an overload set may itself be another overload set.
func (c *Context) checkOverloadSet(o *ast.OverloadedFuncDecl) {
	for _, sym := range o.Overloads {
		if _, nested := sym.Resolved.(*ast.OverloadedFuncDecl); nested {
			c.Log.Add(sym.Pos, diag.Literal, "overload set member %q cannot itself be overloaded", sym.Name)
		}
	}
}

func (c *Context) checkGlobal(g *ast.GlobalDecl) {
	var declared *types.Type
	if g.TypeExpr != nil {
		declared = c.BuildType(g.TypeExpr)
	}
	if g.Value != nil {
		vt := c.checkExpr(g.Value)
		if declared == nil {
			declared = vt
		} else if vt != nil && !types.Compatible(vt, declared, isLiteral(g.Value)) {
			c.Log.Add(g.Value.Position(), diag.BinopMismatch, "cannot assign %s to global %q of type %s", vt, g.Name, declared)
		}
	}
	g.Header.Type = declared
}

func (c *Context) checkForeignBlock(f *ast.ForeignBlockDecl) {
	for _, fn := range f.Funcs {
		ft := c.Types.New(types.KindFunction)
		for _, p := range fn.Params {
			ft.Params = append(ft.Params, c.BuildType(p))
		}
		if fn.ReturnType != nil {
			ft.Return = c.BuildType(fn.ReturnType)
		} else {
			ft.Return = c.Types.Basic(types.BasicVoid)
		}
	}
}
