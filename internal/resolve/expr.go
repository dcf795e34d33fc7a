package resolve

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/scope"
)

// resolveExpr is the pre-order rewrite described in spec.md §4.1: a Symbol
// node is replaced by its resolved declaration node (in place, via
// sym.Resolved); a field-access on a package is collapsed to the member
// symbol; a call whose callee is a field access on a value is rewritten into
// uniform call syntax. Because Go cannot mutate an interface variable
// through an interface value, each call site that holds an Expr slot (a
// struct field or slice element) reassigns it to resolveExpr's return value.
func (c *Context) resolveExpr(e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case *ast.Symbol:
		decl, ok := c.lookup(x.Name)
		if !ok {
			c.Log.Add(x.Pos, diag.UnresolvedSymbol, "unresolved symbol %q", x.Name)
			return x
		}
		x.Resolved = decl
		return x

	case *ast.IntLit, *ast.FloatLit, *ast.BoolLit, *ast.StringLit:
		return x

	case *ast.BinaryExpr:
		x.Left = c.resolveExpr(x.Left)
		x.Right = c.resolveExpr(x.Right)
		return x

	case *ast.UnaryExpr:
		x.Operand = c.resolveExpr(x.Operand)
		return x

	case *ast.FieldAccess:
		x.Operand = c.resolveExpr(x.Operand)
		if pkg, ok := packageOf(x.Operand); ok {
			decl, ok := pkg.PackageScope.LookupLocal(x.Field)
			if !ok {
				c.Log.Add(x.Pos, diag.FieldAccessNoType, "package %q has no member %q", pkg.Name, x.Field)
				return x
			}
			return &ast.Symbol{Header: x.Header, Name: x.Field, Resolved: decl}
		}
		return x

	case *ast.ArrayAccess:
		x.Base = c.resolveExpr(x.Base)
		x.Index = c.resolveExpr(x.Index)
		return x

	case *ast.Call:
		for i, a := range x.Args {
			x.Args[i] = c.resolveExpr(a)
		}
		if fa, isField := x.Callee.(*ast.FieldAccess); isField {
			receiver := c.resolveExpr(fa.Operand)
			if pkg, ok := packageOf(receiver); ok {
				// Package-qualified call: plain name collapse, not UFCS.
				decl, ok := pkg.PackageScope.LookupLocal(fa.Field)
				if !ok {
					c.Log.Add(fa.Pos, diag.FieldAccessNoType, "package %q has no member %q", pkg.Name, fa.Field)
					return x
				}
				x.Callee = &ast.Symbol{Header: fa.Header, Name: fa.Field, Resolved: decl}
				return x
			}
			// Uniform call syntax: receiver.method(args) -> method(receiver, args)
			decl, ok := c.lookup(fa.Field)
			if !ok {
				c.Log.Add(fa.Pos, diag.UnresolvedSymbol, "unresolved method %q", fa.Field)
				return x
			}
			x.Callee = &ast.Symbol{Header: fa.Header, Name: fa.Field, Resolved: decl}
			x.Args = append([]ast.Expr{receiver}, x.Args...)
			return x
		}
		x.Callee = c.resolveExpr(x.Callee)
		return x

	case *ast.IntrinsicCall:
		for i, a := range x.Args {
			x.Args[i] = c.resolveExpr(a)
		}
		return x
	}
	return e
}

// packageOf reports whether e is a Symbol already resolved to a *scope.Package.
func packageOf(e ast.Expr) (*scope.Package, bool) {
	sym, ok := e.(*ast.Symbol)
	if !ok {
		return nil, false
	}
	pkg, ok := sym.Resolved.(*scope.Package)
	return pkg, ok
}

func (c *Context) resolveBlock(b *ast.Block) {
	if b.Scope == nil {
		b.Scope = scope.NewScope(c.stack.Current())
	}
	c.stack.Enter(b.Scope.(*scope.Scope))
	for i, s := range b.Stmts {
		b.Stmts[i] = c.resolveStmt(s)
	}
	c.stack.Leave()
}

func (c *Context) resolveStmt(s ast.Stmt) ast.Stmt {
	switch st := s.(type) {
	case *ast.ExprStmt:
		st.X = c.resolveExpr(st.X)
		return st

	case *ast.LocalDecl:
		if st.TypeExpr != nil {
			c.resolveTypeExpr(st.TypeExpr)
		}
		if st.Value != nil {
			st.Value = c.resolveExpr(st.Value)
		}
		// Introduced into the current scope and appended to the
		// enclosing function's local list.
		c.stack.Current().Define(st.Name, st)
		if c.fn != nil {
			c.fn.AddLocal(st)
		}
		return st

	case *ast.Assign:
		st.Lhs = c.resolveExpr(st.Lhs)
		st.Rhs = c.resolveExpr(st.Rhs)
		return st

	case *ast.Return:
		if st.Value != nil {
			st.Value = c.resolveExpr(st.Value)
		}
		return st

	case *ast.If:
		st.Cond = c.resolveExpr(st.Cond)
		c.resolveBlock(st.Then)
		if st.Else != nil {
			st.Else = c.resolveStmt(st.Else)
		}
		return st

	case *ast.While:
		st.Cond = c.resolveExpr(st.Cond)
		c.resolveBlock(st.Body)
		return st

	case *ast.For:
		if st.LocalScope == nil {
			st.LocalScope = scope.NewScope(c.stack.Current())
		}
		c.stack.Enter(st.LocalScope.(*scope.Scope))
		st.Start = c.resolveExpr(st.Start)
		st.End = c.resolveExpr(st.End)
		if st.Step != nil {
			st.Step = c.resolveExpr(st.Step)
		}
		if st.VarDecl == nil {
			st.VarDecl = &ast.LocalDecl{Header: st.Header, Name: st.Var}
		}
		c.stack.Current().Define(st.Var, st.VarDecl)
		if c.fn != nil {
			c.fn.AddLocal(st.VarDecl)
		}
		c.resolveBlock(st.Body)
		c.stack.Leave()
		return st

	case *ast.Block:
		c.resolveBlock(st)
		return st
	}
	return s
}
