package resolve_test

import (
	"testing"

	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/astbuild"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/resolve"
	"github.com/lucidlang/lucidc/internal/types"
)

func TestResolveSymbolToLocal(t *testing.T) {
	b := astbuild.New().Package("main")
	b.Func("identity", []*ast.Param{astbuild.Param("x", astbuild.Named("i32"))}, astbuild.Named("i32"),
		astbuild.Block(astbuild.Ret(astbuild.Sym("x"))))

	log := diag.NewLog()
	resolve.NewContext(b.Prog, types.NewMap(), log).Run()

	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log.All())
	}
}

func TestResolveUnknownSymbolReportsDiagnostic(t *testing.T) {
	b := astbuild.New().Package("main")
	b.Func("f", nil, astbuild.Named("i32"), astbuild.Block(astbuild.Ret(astbuild.Sym("nope"))))

	log := diag.NewLog()
	resolve.NewContext(b.Prog, types.NewMap(), log).Run()

	if !log.HasErrors() {
		t.Fatal("expected an unresolved-symbol diagnostic")
	}
	if log.All()[0].Code != diag.UnresolvedSymbol {
		t.Fatalf("got code %s, want %s", log.All()[0].Code, diag.UnresolvedSymbol)
	}
}

func TestResolveUFCSRewritesFieldCallIntoPlainCall(t *testing.T) {
	b := astbuild.New().Package("main")
	b.Struct("Point", nil, astbuild.Member("x", astbuild.Named("i32")))
	b.Func("length", []*ast.Param{astbuild.Param("p", astbuild.Named("Point"))}, astbuild.Named("i32"), astbuild.Block())

	call := astbuild.Call(astbuild.Field(astbuild.Sym("p"), "length"))
	b.Func("use", []*ast.Param{astbuild.Param("p", astbuild.Named("Point"))}, astbuild.Named("i32"),
		astbuild.Block(astbuild.Ret(call)))

	log := diag.NewLog()
	resolve.NewContext(b.Prog, types.NewMap(), log).Run()
	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log.All())
	}

	sym, ok := call.Callee.(*ast.Symbol)
	if !ok {
		t.Fatalf("UFCS rewrite must leave Callee as a resolved Symbol, got %T", call.Callee)
	}
	if sym.Name != "length" {
		t.Fatalf("callee name = %q, want %q", sym.Name, "length")
	}
	if len(call.Args) != 1 {
		t.Fatalf("UFCS rewrite must prepend the receiver, got %d args", len(call.Args))
	}
}

func TestResolveUsePackageAliasCollapsesFieldAccess(t *testing.T) {
	b := astbuild.New()
	b.Package("mathlib")
	b.Global("pi", astbuild.Named("f64"), astbuild.Float(3.14), true)

	b.Package("main")
	b.UsePackage("mathlib", "m")
	fa := astbuild.Field(astbuild.Sym("m"), "pi")
	b.Func("use", nil, astbuild.Named("f64"), astbuild.Block(astbuild.Ret(fa)))

	log := diag.NewLog()
	resolve.NewContext(b.Prog, types.NewMap(), log).Run()
	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log.All())
	}

	// The For statement below exercises the synthesized loop-variable
	// declaration path in the same package (spec.md §4.1).
	forStmt := astbuild.ForStmt("i", astbuild.Int(0), astbuild.Int(10), nil, astbuild.Block())
	b.Func("loop", nil, astbuild.Named("void"), astbuild.Block(forStmt))
	log2 := diag.NewLog()
	resolve.NewContext(b.Prog, types.NewMap(), log2).Run()
	if log2.HasErrors() {
		t.Fatalf("unexpected diagnostics resolving for-loop: %v", log2.All())
	}
	if forStmt.VarDecl == nil || forStmt.VarDecl.Name != "i" {
		t.Fatal("resolve must synthesize a LocalDecl for the for-loop variable")
	}
}
