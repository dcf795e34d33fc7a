package check_test

import (
	"testing"

	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/astbuild"
	"github.com/lucidlang/lucidc/internal/check"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/resolve"
	"github.com/lucidlang/lucidc/internal/types"
)

func runChecked(t *testing.T, b *astbuild.Builder) *diag.Log {
	t.Helper()
	tm := types.NewMap()
	log := diag.NewLog()
	resolve.NewContext(b.Prog, tm, log).Run()
	if log.HasErrors() {
		t.Fatalf("resolve failed: %v", log.All())
	}
	check.NewContext(b.Prog, tm, log).Run()
	return log
}

func TestCheckOverloadResolutionPicksFirstMatchingArity(t *testing.T) {
	b := astbuild.New().Package("main")
	showI32 := b.Func("show_i32", []*ast.Param{astbuild.Param("v", astbuild.Named("i32"))}, astbuild.Named("void"), astbuild.Block())
	b.Func("show_f64", []*ast.Param{astbuild.Param("v", astbuild.Named("f64"))}, astbuild.Named("void"), astbuild.Block())
	b.Overload("show", "show_i32", "show_f64")

	call := astbuild.Call(astbuild.Sym("show"), astbuild.Int(1))
	b.Func("use", nil, astbuild.Named("void"), astbuild.Block(astbuild.ExprStmt(call)))

	log := runChecked(t, b)
	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log.All())
	}
	callee, ok := call.Callee.(*ast.Symbol)
	if !ok || callee.Resolved != showI32 {
		t.Fatalf("overloaded call resolved to %v, want show_i32", call.Callee)
	}
}

func TestCheckCompoundAssignDesugarsInPlace(t *testing.T) {
	b := astbuild.New().Package("main")
	assign := astbuild.Assign(astbuild.Sym("x"), "+", astbuild.Int(1))
	body := astbuild.Block(
		astbuild.Let("x", astbuild.Named("i32"), astbuild.Int(0)),
		assign,
	)
	b.Func("f", nil, astbuild.Named("void"), body)

	log := runChecked(t, b)
	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log.All())
	}
	if assign.Op != "" {
		t.Fatal("compound assignment must clear Op once desugared")
	}
	bin, ok := assign.Rhs.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("desugared Rhs must be a BinaryExpr, got %T", assign.Rhs)
	}
	if bin.Op != "+" {
		t.Fatalf("desugared BinaryExpr.Op = %q, want %q", bin.Op, "+")
	}
}

func TestCheckPointerOperandRejectedInBinary(t *testing.T) {
	b := astbuild.New().Package("main")
	param := astbuild.Param("p", &ast.PointerTypeExpr{Elem: astbuild.Named("i32")})
	bin := astbuild.Bin("+", astbuild.Sym("p"), astbuild.Int(1))
	b.Func("f", []*ast.Param{param}, astbuild.Named("void"), astbuild.Block(astbuild.ExprStmt(bin)))

	log := runChecked(t, b)
	if !log.HasErrors() {
		t.Fatal("expected a diagnostic rejecting arithmetic on a pointer operand")
	}
}

func TestCheckForLoopBoundsMustBeI32(t *testing.T) {
	b := astbuild.New().Package("main")
	forStmt := astbuild.ForStmt("i", astbuild.Float(0), astbuild.Int(10), nil, astbuild.Block())
	b.Func("f", nil, astbuild.Named("void"), astbuild.Block(forStmt))

	log := runChecked(t, b)
	if !log.HasErrors() {
		t.Fatal("expected a diagnostic: for-loop start must be i32")
	}
}

func TestCheckExportedFunctionRejectsPolyStructParam(t *testing.T) {
	b := astbuild.New().Package("main")
	b.Struct("Box", []string{"T"}, astbuild.Member("value", astbuild.Named("T")))
	f := b.Func("use", []*ast.Param{astbuild.Param("b", astbuild.Named("Box"))}, astbuild.Named("void"), astbuild.Block())
	f.IsExported = true

	log := runChecked(t, b)
	if !log.HasErrors() {
		t.Fatal("expected a diagnostic: exported function cannot take an uninstantiated generic struct")
	}
}
