package collapse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/astbuild"
	"github.com/lucidlang/lucidc/internal/collapse"
)

// TestCollapseHoistsNestedLocalsBreadthFirst exercises spec.md §4.3 and the
// §8 testable property that every local declared anywhere inside a
// function's body is reachable from F.locals exactly once, in
// breadth-first (shallowest-nesting-first) order.
func TestCollapseHoistsNestedLocalsBreadthFirst(t *testing.T) {
	b := astbuild.New().Package("main")

	thenBlock := astbuild.Block(astbuild.Let("b", astbuild.Named("i32"), astbuild.Int(0)))
	ifStmt := astbuild.IfStmt(astbuild.Bool(true), thenBlock, nil)

	body := astbuild.Block(
		astbuild.Let("a", astbuild.Named("i32"), astbuild.Int(0)),
		ifStmt,
	)

	f := b.Func("f", nil, astbuild.Named("void"), body)

	collapse.NewContext(b.Prog).Run()

	var got []string
	for _, l := range f.Locals {
		got = append(got, l.Name)
	}

	want := []string{"a", "b"}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("collapsed locals mismatch (-want +got):\n%s", diff)
	}
}

// TestCollapseForLoopVarIsHoisted checks that a for-loop's synthesized
// VarDecl (installed by C1, see internal/resolve) is collapsed alongside
// ordinary locals declared in its body.
func TestCollapseForLoopVarIsHoisted(t *testing.T) {
	b := astbuild.New().Package("main")
	forStmt := astbuild.ForStmt("i", astbuild.Int(0), astbuild.Int(10), nil,
		astbuild.Block(astbuild.Let("sum", astbuild.Named("i32"), astbuild.Int(0))))
	forStmt.VarDecl = &ast.LocalDecl{Name: "i"}

	f := b.Func("loop", nil, astbuild.Named("void"), astbuild.Block(forStmt))
	collapse.NewContext(b.Prog).Run()

	var got []string
	for _, l := range f.Locals {
		got = append(got, l.Name)
	}
	want := []string{"i", "sum"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("collapsed locals mismatch (-want +got):\n%s", diff)
	}
}
