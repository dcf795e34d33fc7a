package ast

import "github.com/lucidlang/lucidc/internal/diag"

// FuncDecl is a function declaration.
type FuncDecl struct {
	Header
	Name         string
	Params       []*Param
	ReturnType   TypeExpr
	Body         *Block
	Locals       []*LocalDecl // flattened by C3 into one list per function
	IsExported   bool
	ExportedName string
	IsForeign    bool
	ForeignModule string
	IsIntrinsic  bool
	IntrinsicName string
	IsInline     bool
	Tags         []MetaTagExpr // reflectable metadata; populates C5's tagged-procedure table
	FuncScope    interface{} // opaque *scope.Scope
}

func (f *FuncDecl) stmtNode() {}

// AddLocal appends a local to the function's flattened local list; used by
// C1 as each local is introduced. C3 rebuilds Locals itself when it hoists
// locals out of nested scopes.
func (f *FuncDecl) AddLocal(l *LocalDecl) {
	f.Locals = append(f.Locals, l)
}

// OverloadedFuncDecl names a group of FuncDecls sharing a name, in
// declaration order. spec.md §4.1/4.2: resolution picks the first overload
// whose arity and parameter types are compatible; nested overload sets are
// rejected by C2.
type OverloadedFuncDecl struct {
	Header
	Name      string
	Overloads []*Symbol // each resolves to a *FuncDecl
}

func (o *OverloadedFuncDecl) stmtNode() {}

// GlobalDecl is a package-level variable declaration.
type GlobalDecl struct {
	Header
	Name     string
	TypeExpr TypeExpr
	Value    Expr // nil if uninitialized
	IsConst  bool
}

func (g *GlobalDecl) stmtNode() {}

// StructMemberDecl is a field in a struct declaration.
type StructMemberDecl struct {
	Pos      diag.Pos
	Name     string
	TypeExpr TypeExpr
	Default  Expr
	Tags     []MetaTagExpr
}

// MetaTagExpr is a source-level meta tag attached to a struct, member, or
// function; its payload is encoded via the C4 collaborator once resolved.
type MetaTagExpr struct {
	Pos   diag.Pos
	Name  string
	Value Expr
}

// StructDecl is a struct (or polymorphic struct, when TypeParams is
// non-empty) declaration.
type StructDecl struct {
	Header
	Name       string
	TypeParams []string // non-empty => PolyStruct
	Members    []*StructMemberDecl
	Tags       []MetaTagExpr
	DeclScope  interface{} // opaque *scope.Scope
}

func (s *StructDecl) stmtNode() {}

// EnumMemberDecl is one member of an enum declaration.
type EnumMemberDecl struct {
	Pos   diag.Pos
	Name  string
	Value Expr // nil => auto-assigned
}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Header
	Name     string
	Backing  TypeExpr // nil defaults to i32
	Members  []*EnumMemberDecl
	IsFlags  bool
}

func (e *EnumDecl) stmtNode() {}

// ForeignFuncDecl is one function signature inside a ForeignBlockDecl.
type ForeignFuncDecl struct {
	Pos        diag.Pos
	Name       string
	Params     []TypeExpr
	ReturnType TypeExpr
}

// ForeignBlockDecl declares a block of functions imported from a named
// host module (spec.md §8 scenario 6, §6 foreign-block ABI).
type ForeignBlockDecl struct {
	Header
	ModuleName string
	Funcs      []*ForeignFuncDecl
}

func (f *ForeignBlockDecl) stmtNode() {}

// UsePackageDecl is a `use-package` entity (spec.md §4.1).
type UsePackageDecl struct {
	Header
	PackageName string
	Alias       string   // non-empty: install under this alias
	Only        []string // non-empty: selective import
}

func (u *UsePackageDecl) stmtNode() {}

// StringLitDecl promotes a top-level string literal to an entity so it can
// be deposited as a data segment independent of any function body.
type StringLitDecl struct {
	Header
	Value string
}

func (s *StringLitDecl) stmtNode() {}

// ---- Type expressions -----------------------------------------------------

// NamedTypeExpr refers to a type by name: a basic type keyword, or a
// struct/enum/distinct type declared elsewhere. C1 resolves Name to a
// declaration the same way it resolves value symbols.
type NamedTypeExpr struct {
	Pos      diag.Pos
	Name     string
	Resolved Node // *StructDecl, *EnumDecl, or nil for a basic-type keyword
	TypeArgs []TypeExpr // non-empty => PolyStruct instantiation
}

func (n *NamedTypeExpr) Position() diag.Pos { return n.Pos }
func (n *NamedTypeExpr) typeExprNode()      {}

type PointerTypeExpr struct {
	Pos  diag.Pos
	Elem TypeExpr
}

func (p *PointerTypeExpr) Position() diag.Pos { return p.Pos }
func (p *PointerTypeExpr) typeExprNode()      {}

type ArrayTypeExpr struct {
	Pos   diag.Pos
	Elem  TypeExpr
	Count int64
}

func (a *ArrayTypeExpr) Position() diag.Pos { return a.Pos }
func (a *ArrayTypeExpr) typeExprNode()      {}

type SliceTypeExpr struct {
	Pos  diag.Pos
	Elem TypeExpr
}

func (s *SliceTypeExpr) Position() diag.Pos { return s.Pos }
func (s *SliceTypeExpr) typeExprNode()      {}

type DynArrayTypeExpr struct {
	Pos  diag.Pos
	Elem TypeExpr
}

func (d *DynArrayTypeExpr) Position() diag.Pos { return d.Pos }
func (d *DynArrayTypeExpr) typeExprNode()      {}

type VarArgsTypeExpr struct {
	Pos  diag.Pos
	Elem TypeExpr
}

func (v *VarArgsTypeExpr) Position() diag.Pos { return v.Pos }
func (v *VarArgsTypeExpr) typeExprNode()      {}

type FuncTypeExpr struct {
	Pos       diag.Pos
	Params    []TypeExpr
	Return    TypeExpr
	HasVararg bool
}

func (f *FuncTypeExpr) Position() diag.Pos { return f.Pos }
func (f *FuncTypeExpr) typeExprNode()      {}
