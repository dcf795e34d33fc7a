package scope

import (
	"testing"

	"github.com/lucidlang/lucidc/internal/ast"
)

func TestLookupWalksParentChain(t *testing.T) {
	root := NewScope(nil)
	root.Define("x", &ast.GlobalDecl{Name: "x"})
	child := NewScope(root)

	if _, ok := child.LookupLocal("x"); ok {
		t.Fatal("LookupLocal must not see an ancestor's binding")
	}
	decl, ok := child.Lookup("x")
	if !ok {
		t.Fatal("Lookup must find a binding in an ancestor scope")
	}
	if decl.(*ast.GlobalDecl).Name != "x" {
		t.Fatal("Lookup returned the wrong declaration")
	}
}

func TestDefineIfAbsentFirstWins(t *testing.T) {
	s := NewScope(nil)
	first := &ast.GlobalDecl{Name: "first"}
	second := &ast.GlobalDecl{Name: "second"}

	if !s.DefineIfAbsent("x", first) {
		t.Fatal("first DefineIfAbsent should install the binding")
	}
	if s.DefineIfAbsent("x", second) {
		t.Fatal("second DefineIfAbsent on an occupied name must report false")
	}
	got, _ := s.LookupLocal("x")
	if got.(*ast.GlobalDecl) != first {
		t.Fatal("first binding must win, not be overwritten")
	}
}

func TestMergeFromFirstWins(t *testing.T) {
	dst := NewScope(nil)
	dst.Define("shared", &ast.GlobalDecl{Name: "dst-shared"})
	src := NewScope(nil)
	src.Define("shared", &ast.GlobalDecl{Name: "src-shared"})
	src.Define("only-in-src", &ast.GlobalDecl{Name: "only-in-src"})

	dst.MergeFrom(src)

	got, _ := dst.LookupLocal("shared")
	if got.(*ast.GlobalDecl).Name != "dst-shared" {
		t.Fatal("MergeFrom must not overwrite an existing binding")
	}
	if _, ok := dst.LookupLocal("only-in-src"); !ok {
		t.Fatal("MergeFrom must copy bindings absent from dst")
	}
}

func TestStackEnterSetsParentOnlyOnce(t *testing.T) {
	var st Stack
	root := NewScope(nil)
	st.Enter(root)

	detachedParent := NewScope(nil)
	child := NewScope(detachedParent)
	st.Enter(child)

	if child.Parent() != detachedParent {
		t.Fatal("Enter must not override a scope's existing parent")
	}

	fresh := NewScope(nil)
	st.Enter(fresh)
	if fresh.Parent() != child {
		t.Fatal("Enter must set a parentless scope's parent to the current top")
	}
}
