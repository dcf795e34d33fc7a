// Package ast defines the discriminated AST node set described in spec.md §3:
// expressions, statements, type expressions, and declarations, each sharing a
// small header carrying position and an optional resolved-type handle. Nodes
// that are written with a type carry their own TypeExpr field beside it.
package ast

import (
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/types"
)

// Node is the base interface every AST variant implements.
type Node interface {
	Position() diag.Pos
}

// Header is embedded in every typed expression/declaration node. Type is
// filled by C2; it is non-nil iff type-checking succeeded for that subtree
// (spec.md §3 invariant).
type Header struct {
	Pos  diag.Pos
	Type *types.Type // resolved type, filled by C2
}

func (h *Header) Position() diag.Pos { return h.Pos }

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is an unresolved type expression, as written in source; C1
// (internal/resolve) binds the names in it to their declarations, and C2
// builds the *types.Type from it (check.BuildType).
type TypeExpr interface {
	Node
	typeExprNode()
}

// ---- Expressions --------------------------------------------------------

// Symbol is an identifier reference. C1 rewrites it in place to point at the
// Decl it resolves to; Resolved is nil until then.
type Symbol struct {
	Header
	Name     string
	Resolved Node // filled by C1: *FuncDecl, *Param, *LocalDecl, *GlobalDecl, *Package, ...
}

func (s *Symbol) exprNode() {}

// IntLit, FloatLit, BoolLit, StringLit are literal expressions.
type IntLit struct {
	Header
	Value int64
	// Widenable marks an untyped literal as eligible for the implicit
	// widening rule in types.Compatible.
	Widenable bool
}

func (l *IntLit) exprNode() {}

type FloatLit struct {
	Header
	Value     float64
	Widenable bool
}

func (l *FloatLit) exprNode() {}

type BoolLit struct {
	Header
	Value bool
}

func (l *BoolLit) exprNode() {}

type StringLit struct {
	Header
	Value string
}

func (l *StringLit) exprNode() {}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Header
	Op    string
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) exprNode() {}

// UnaryExpr is a unary operation, including AddressOf ("&") and Deref ("^").
type UnaryExpr struct {
	Header
	Op      string
	Operand Expr
}

func (u *UnaryExpr) exprNode() {}

// FieldAccess is `Operand.Field`. C1 rewrites a FieldAccess whose Operand
// resolves to a *Package into the symbol found in that package's scope
// (package-qualified name collapse).
type FieldAccess struct {
	Header
	Operand Expr
	Field   string
}

func (f *FieldAccess) exprNode() {}

// ArrayAccess is `Base[Index]`.
type ArrayAccess struct {
	Header
	Base     Expr
	Index    Expr
	ElemSize uint32 // cached by C2
}

func (a *ArrayAccess) exprNode() {}

// Call is a function call. Callee starts as whatever expression parsed in
// call position; C1 may rewrite a field-access callee into uniform call
// syntax, and C2 may rewrite an intrinsic-flagged callee into an
// IntrinsicCall.
type Call struct {
	Header
	Callee Expr
	Args   []Expr
}

func (c *Call) exprNode() {}

// IntrinsicCall replaces a Call whose resolved callee function carries the
// intrinsic flag (spec.md §4.2 Call rule).
type IntrinsicCall struct {
	Header
	Intrinsic Intrinsic
	Args      []Expr
}

func (c *IntrinsicCall) exprNode() {}

// ---- Statements -----------------------------------------------------------

type ExprStmt struct {
	Header
	X Expr
}

func (e *ExprStmt) stmtNode() {}

// LocalDecl introduces a local variable. C1 both installs it into the
// current scope and appends it to the enclosing function's local list; C3
// later relocates it into the function scope's local list if it was
// declared in a nested block.
type LocalDecl struct {
	Header
	Name        string
	TypeExpr    TypeExpr // nil if inferred from Value
	Value       Expr     // nil if uninitialized
	IsConst     bool
}

func (l *LocalDecl) stmtNode() {}

// Assign is `Lhs = Rhs`. A compound `Lhs Op= Rhs` is parsed directly into
// this form with Op set; C2 desugars it in place into a plain assignment
// whose Rhs is a BinaryExpr, clearing Op.
type Assign struct {
	Header
	Lhs Expr
	Op  string // "" for a plain assignment, otherwise the compound operator
	Rhs Expr
}

func (a *Assign) stmtNode() {}

// Return is a return statement; Value is nil for a bare `return`.
type Return struct {
	Header
	Value Expr
}

func (r *Return) stmtNode() {}

// If is a conditional statement.
type If struct {
	Header
	Cond Expr
	Then *Block
	Else Stmt // *Block, *If, or nil
}

func (i *If) stmtNode() {}

// While is a while loop.
type While struct {
	Header
	Cond Expr
	Body *Block
}

func (w *While) stmtNode() {}

// For is a counted loop; Start/End/Step must each type-check to i32
// (spec.md §4.2 For rule).
type For struct {
	Header
	Var        string
	VarDecl    *LocalDecl // synthesized by C1 to hold the loop variable's declaration
	Start      Expr
	End        Expr
	Step       Expr // nil defaults to literal 1
	Body       *Block
	LocalScope interface{} // opaque *scope.Scope owning Var
}

func (f *For) stmtNode() {}

// Block is a sequence of statements sharing a scope.
type Block struct {
	Header
	Stmts []Stmt
	Scope interface{} // opaque *scope.Scope
}

func (b *Block) stmtNode() {}

// Param is a function parameter.
type Param struct {
	Header
	Name     string
	TypeExpr TypeExpr
}

func (p *Param) Position() diag.Pos { return p.Header.Pos }
