// Package collapse implements C3, the Local Collapser of spec.md §4.3: a
// breadth-first walk that hoists every local declared in a nested block, if
// branch, while body, or for body up into its enclosing function's flat
// local list, so a single function-scope frame can allocate every local at
// a fixed offset before the body ever runs.
package collapse

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/scope"
)

// Context carries the state of one collapse run: just the program, since
// collapsing needs no type information and never emits diagnostics (every
// local it finds was already installed into some scope during C1).
type Context struct {
	Prog *scope.Program
}

// NewContext creates a collapser context over prog.
func NewContext(prog *scope.Program) *Context {
	return &Context{Prog: prog}
}

// Run collapses every function entity's nested locals into its flat list.
func (c *Context) Run() {
	for _, e := range c.Prog.Entities {
		if f, ok := e.Node.(*ast.FuncDecl); ok {
			collapseFunc(f)
		}
	}
}

// collapseFunc rebuilds f.Locals from scratch by walking the body
// breadth-first, so a local declared at a shallower nesting depth keeps a
// lower index than one declared deeper, matching the teacher's
// predictable-frame-layout convention.
func collapseFunc(f *ast.FuncDecl) {
	if f.Body == nil {
		return
	}
	var locals []*ast.LocalDecl
	queue := []*ast.Block{f.Body}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, s := range b.Stmts {
			nested := walkStmt(s, &locals)
			queue = append(queue, nested...)
		}
	}
	f.Locals = locals
}

// walkStmt records any local declared directly by s and returns the nested
// blocks s introduces, so the caller's breadth-first queue can visit them in
// level order.
func walkStmt(s ast.Stmt, locals *[]*ast.LocalDecl) []*ast.Block {
	switch st := s.(type) {
	case *ast.LocalDecl:
		*locals = append(*locals, st)
		return nil
	case *ast.If:
		nested := []*ast.Block{st.Then}
		if elseBlock, ok := st.Else.(*ast.Block); ok {
			nested = append(nested, elseBlock)
		} else if elseIf, ok := st.Else.(*ast.If); ok {
			nested = append(nested, walkStmt(elseIf, locals)...)
		}
		return nested
	case *ast.While:
		return []*ast.Block{st.Body}
	case *ast.For:
		if st.VarDecl != nil {
			*locals = append(*locals, st.VarDecl)
		}
		return []*ast.Block{st.Body}
	case *ast.Block:
		return []*ast.Block{st}
	}
	return nil
}
