package check

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/types"
)

// checkFunc implements spec.md §4.2's function-declaration rule: build the
// signature, check the body against the declared return type, and enforce
// that an exported function's parameters and return type are all
// reflectable (no bare PolyStruct, which has no concrete layout).
func (c *Context) checkFunc(f *ast.FuncDecl) {
	ft := c.funcType(f)
	if f.IsExported {
		for i, pt := range ft.Params {
			if pt != nil && pt.Kind == types.KindPolyStruct {
				c.Log.Add(f.Params[i].Pos, diag.FunctionParamMismatch, "exported function %q cannot take an uninstantiated generic struct", f.Name)
			}
		}
		if ft.Return != nil && ft.Return.Kind == types.KindPolyStruct {
			c.Log.Add(f.Pos, diag.FunctionReturnMismatch, "exported function %q cannot return an uninstantiated generic struct", f.Name)
		}
	}
	if f.Body == nil {
		return
	}
	prevFn := c.fn
	c.fn = f
	c.checkBlock(f.Body)
	c.fn = prevFn
}

func (c *Context) checkLocalDecl(l *ast.LocalDecl) {
	var declared *types.Type
	if l.TypeExpr != nil {
		declared = c.BuildType(l.TypeExpr)
	}
	if l.Value != nil {
		vt := c.checkExpr(l.Value)
		if declared == nil {
			declared = vt
		} else if vt != nil && !types.Compatible(vt, declared, isLiteral(l.Value)) {
			c.Log.Add(l.Value.Position(), diag.BinopMismatch, "cannot initialize %q of type %s with %s", l.Name, declared, vt)
		}
	}
	l.Header.Type = declared
}

func (c *Context) checkBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
	// Block rule: every symbol a nested scope bound must have a type by the
	// time the block finishes checking. Locals are checked as encountered
	// (checkLocalDecl/checkStmt); this loop catches the case where a local's
	// declared type expression failed to resolve and Type is still nil.
	for _, s := range b.Stmts {
		if l, ok := s.(*ast.LocalDecl); ok && l.Header.Type == nil {
			c.Log.Add(l.Pos, diag.UnresolvedType, "local %q has no type", l.Name)
		}
	}
}

func (c *Context) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		c.checkExpr(st.X)

	case *ast.LocalDecl:
		if st.Header.Type == nil {
			c.checkLocalDecl(st)
		}

	case *ast.Assign:
		c.checkAssign(st)

	case *ast.Return:
		c.checkReturn(st)

	case *ast.If:
		ct := c.checkExpr(st.Cond)
		if ct != nil && !(ct.Kind == types.KindBasic && ct.Basic == types.BasicBool) {
			c.Log.Add(st.Cond.Position(), diag.BinopMismatch, "if condition must be bool, got %s", ct)
		}
		c.checkBlock(st.Then)
		if st.Else != nil {
			c.checkStmt(st.Else)
		}

	case *ast.While:
		ct := c.checkExpr(st.Cond)
		if ct != nil && !(ct.Kind == types.KindBasic && ct.Basic == types.BasicBool) {
			c.Log.Add(st.Cond.Position(), diag.BinopMismatch, "while condition must be bool, got %s", ct)
		}
		c.checkBlock(st.Body)

	case *ast.For:
		c.checkFor(st)

	case *ast.Block:
		c.checkBlock(st)
	}
}

// checkAssign implements spec.md §4.2's Assignment rule: Lhs must be an
// lvalue and not a const-bound declaration, and a compound `Op=` is
// desugared in place into a plain assignment whose Rhs is a BinaryExpr.
func (c *Context) checkAssign(st *ast.Assign) {
	lt := c.checkExpr(st.Lhs)
	if !isLvalue(st.Lhs) {
		c.Log.Add(st.Pos, diag.NotLvalue, "left-hand side of assignment is not an lvalue")
		return
	}
	if sym, ok := st.Lhs.(*ast.Symbol); ok {
		if l, ok := sym.Resolved.(*ast.LocalDecl); ok && l.IsConst {
			c.Log.Add(st.Pos, diag.AssignConst, "cannot assign to const %q", l.Name)
			return
		}
		if g, ok := sym.Resolved.(*ast.GlobalDecl); ok && g.IsConst {
			c.Log.Add(st.Pos, diag.AssignConst, "cannot assign to const %q", g.Name)
			return
		}
	}
	if st.Op != "" {
		st.Rhs = &ast.BinaryExpr{Header: st.Header, Op: st.Op, Left: st.Lhs, Right: st.Rhs}
		st.Op = ""
	}
	rt := c.checkExpr(st.Rhs)
	if lt != nil && rt != nil && !types.Compatible(rt, lt, isLiteral(st.Rhs)) {
		c.Log.Add(st.Rhs.Position(), diag.BinopMismatch, "cannot assign %s to %s", rt, lt)
	}
}

func (c *Context) checkReturn(st *ast.Return) {
	var rt *types.Type
	if st.Value != nil {
		rt = c.checkExpr(st.Value)
	}
	if c.fn == nil {
		return
	}
	want := c.funcType(c.fn).Return
	switch {
	case st.Value == nil && want != nil && want.Kind == types.KindBasic && want.Basic == types.BasicVoid:
		// bare return from a void function
	case st.Value == nil:
		c.Log.Add(st.Pos, diag.FunctionReturnMismatch, "missing return value for function %q", c.fn.Name)
	case rt != nil && want != nil && !types.Compatible(rt, want, isLiteral(st.Value)):
		c.Log.Add(st.Value.Position(), diag.FunctionReturnMismatch, "cannot return %s from function %q declared to return %s", rt, c.fn.Name, want)
	}
}

// checkFor implements spec.md §4.2's For rule: Start, End, and Step must all
// type-check to i32.
func (c *Context) checkFor(st *ast.For) {
	checkI32 := func(e ast.Expr, what string) {
		t := c.checkExpr(e)
		if t != nil && !(t.Kind == types.KindBasic && t.Basic.IsSigned32()) {
			c.Log.Add(e.Position(), diag.BinopMismatch, "for-loop %s must be i32, got %s", what, t)
		}
	}
	checkI32(st.Start, "start")
	checkI32(st.End, "end")
	if st.Step != nil {
		checkI32(st.Step, "step")
	}
	if st.VarDecl != nil {
		st.VarDecl.Header.Type = c.Types.Basic(types.BasicI32)
	}
	c.checkBlock(st.Body)
}
