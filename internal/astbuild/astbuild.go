// Package astbuild constructs AST fixtures directly, standing in for the
// external parser this repository does not implement: spec.md scopes the
// compiler core starting from an already-parsed entity list, so tests build
// that list by hand with the helpers here instead of lexing source text.
package astbuild

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/scope"
)

// Builder accumulates entities into one Program, tracking the current
// package so a sequence of Func/Struct/Enum calls doesn't need to repeat it.
type Builder struct {
	Prog *scope.Program
	pkg  *scope.Package
}

// New creates a builder with an empty program.
func New() *Builder {
	return &Builder{Prog: scope.NewProgram()}
}

// Package switches the current package, creating it if this is its first
// mention.
func (b *Builder) Package(name string) *Builder {
	b.pkg = b.Prog.Package(name)
	return b
}

func pos(line int) diag.Pos { return diag.Pos{File: "fixture", Line: line, Column: 1} }

// Func declares a function, binds its name in the current package scope
// (the way a real parser would as it builds the declaration), and adds it
// as an EntityFunction. A name later grouped into an Overload is still
// bound here under its own distinct name.
func (b *Builder) Func(name string, params []*ast.Param, ret ast.TypeExpr, body *ast.Block) *ast.FuncDecl {
	f := &ast.FuncDecl{Header: ast.Header{Pos: pos(0)}, Name: name, Params: params, ReturnType: ret, Body: body}
	b.pkg.PackageScope.Define(name, f)
	b.Prog.AddEntity(scope.EntityFunction, b.pkg, f)
	return f
}

// ForeignFunc declares a foreign-bound function (no body); it is not marked
// exported.
func (b *Builder) ForeignFunc(name, module string, params []*ast.Param, ret ast.TypeExpr) *ast.FuncDecl {
	f := &ast.FuncDecl{
		Header: ast.Header{Pos: pos(0)}, Name: name, Params: params, ReturnType: ret,
		IsForeign: true, ForeignModule: module,
	}
	b.pkg.PackageScope.Define(name, f)
	b.Prog.AddEntity(scope.EntityFunction, b.pkg, f)
	return f
}

// Overload groups existing function names into one overload set, in the
// given resolution-priority order, and binds the set's own name (distinct
// from any member name) in the package scope.
func (b *Builder) Overload(name string, memberNames ...string) *ast.OverloadedFuncDecl {
	o := &ast.OverloadedFuncDecl{Header: ast.Header{Pos: pos(0)}, Name: name}
	for _, m := range memberNames {
		o.Overloads = append(o.Overloads, &ast.Symbol{Header: ast.Header{Pos: pos(0)}, Name: m})
	}
	b.pkg.PackageScope.Define(name, o)
	b.Prog.AddEntity(scope.EntityOverloadedFunction, b.pkg, o)
	return o
}

// Global declares a package-level variable.
func (b *Builder) Global(name string, te ast.TypeExpr, value ast.Expr, isConst bool) *ast.GlobalDecl {
	g := &ast.GlobalDecl{Header: ast.Header{Pos: pos(0)}, Name: name, TypeExpr: te, Value: value, IsConst: isConst}
	b.pkg.PackageScope.Define(name, g)
	b.Prog.AddEntity(scope.EntityGlobal, b.pkg, g)
	return g
}

// Struct declares a (possibly polymorphic, if typeParams is non-empty)
// struct.
func (b *Builder) Struct(name string, typeParams []string, members ...*ast.StructMemberDecl) *ast.StructDecl {
	s := &ast.StructDecl{Header: ast.Header{Pos: pos(0)}, Name: name, TypeParams: typeParams, Members: members}
	b.pkg.PackageScope.Define(name, s)
	b.Prog.AddEntity(scope.EntityStruct, b.pkg, s)
	return s
}

// Member builds one struct field.
func Member(name string, te ast.TypeExpr) *ast.StructMemberDecl {
	return &ast.StructMemberDecl{Pos: pos(0), Name: name, TypeExpr: te}
}

// Enum declares an enum.
func (b *Builder) Enum(name string, backing ast.TypeExpr, members ...*ast.EnumMemberDecl) *ast.EnumDecl {
	e := &ast.EnumDecl{Header: ast.Header{Pos: pos(0)}, Name: name, Backing: backing, Members: members}
	b.pkg.PackageScope.Define(name, e)
	b.Prog.AddEntity(scope.EntityEnum, b.pkg, e)
	return e
}

// EnumMember builds one enum member, value nil for auto-assignment.
func EnumMember(name string, value ast.Expr) *ast.EnumMemberDecl {
	return &ast.EnumMemberDecl{Pos: pos(0), Name: name, Value: value}
}

// ForeignBlock declares a `foreign` block bound to a host module.
func (b *Builder) ForeignBlock(moduleName string, funcs ...*ast.ForeignFuncDecl) *ast.ForeignBlockDecl {
	fb := &ast.ForeignBlockDecl{Header: ast.Header{Pos: pos(0)}, ModuleName: moduleName, Funcs: funcs}
	b.Prog.AddEntity(scope.EntityForeignBlock, b.pkg, fb)
	return fb
}

// UsePackage declares a `use-package` entity.
func (b *Builder) UsePackage(target, alias string, only ...string) *ast.UsePackageDecl {
	u := &ast.UsePackageDecl{Header: ast.Header{Pos: pos(0)}, PackageName: target, Alias: alias, Only: only}
	b.Prog.AddEntity(scope.EntityUsePackage, b.pkg, u)
	return u
}

// ---- small expression/statement/type-expr helpers --------------------

func Param(name string, te ast.TypeExpr) *ast.Param { return &ast.Param{Name: name, TypeExpr: te} }
func Sym(name string) *ast.Symbol                   { return &ast.Symbol{Header: ast.Header{Pos: pos(0)}, Name: name} }
func Int(v int64) *ast.IntLit                        { return &ast.IntLit{Header: ast.Header{Pos: pos(0)}, Value: v} }
func Float(v float64) *ast.FloatLit                  { return &ast.FloatLit{Header: ast.Header{Pos: pos(0)}, Value: v} }
func Bool(v bool) *ast.BoolLit                       { return &ast.BoolLit{Header: ast.Header{Pos: pos(0)}, Value: v} }
func Str(v string) *ast.StringLit                    { return &ast.StringLit{Header: ast.Header{Pos: pos(0)}, Value: v} }

func Bin(op string, l, r ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Header: ast.Header{Pos: pos(0)}, Op: op, Left: l, Right: r}
}

func Call(callee ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Header: ast.Header{Pos: pos(0)}, Callee: callee, Args: args}
}

func Field(operand ast.Expr, field string) *ast.FieldAccess {
	return &ast.FieldAccess{Header: ast.Header{Pos: pos(0)}, Operand: operand, Field: field}
}

func Named(name string) *ast.NamedTypeExpr { return &ast.NamedTypeExpr{Pos: pos(0), Name: name} }

func Block(stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Header: ast.Header{Pos: pos(0)}, Stmts: stmts}
}

func Let(name string, te ast.TypeExpr, value ast.Expr) *ast.LocalDecl {
	return &ast.LocalDecl{Header: ast.Header{Pos: pos(0)}, Name: name, TypeExpr: te, Value: value}
}

func ExprStmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Header: ast.Header{Pos: pos(0)}, X: e} }

func Assign(lhs ast.Expr, op string, rhs ast.Expr) *ast.Assign {
	return &ast.Assign{Header: ast.Header{Pos: pos(0)}, Lhs: lhs, Op: op, Rhs: rhs}
}

func Ret(value ast.Expr) *ast.Return { return &ast.Return{Header: ast.Header{Pos: pos(0)}, Value: value} }

func IfStmt(cond ast.Expr, then *ast.Block, els ast.Stmt) *ast.If {
	return &ast.If{Header: ast.Header{Pos: pos(0)}, Cond: cond, Then: then, Else: els}
}

func ForStmt(varName string, start, end, step ast.Expr, body *ast.Block) *ast.For {
	return &ast.For{Header: ast.Header{Pos: pos(0)}, Var: varName, Start: start, End: end, Step: step, Body: body}
}
