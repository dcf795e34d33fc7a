package resolve

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/scope"
)

func (c *Context) resolveFunc(f *ast.FuncDecl) {
	if f.FuncScope == nil {
		f.FuncScope = scope.NewScope(c.stack.Current())
	}
	fscope := f.FuncScope.(*scope.Scope)

	prevFn := c.fn
	c.fn = f
	c.stack.Enter(fscope)

	for _, p := range f.Params {
		fscope.Define(p.Name, p)
		c.resolveTypeExpr(p.TypeExpr)
	}
	if f.ReturnType != nil {
		c.resolveTypeExpr(f.ReturnType)
	}
	if f.Body != nil {
		c.resolveBlock(f.Body)
	}
	for _, tag := range f.Tags {
		if tag.Value != nil {
			c.resolveExpr(tag.Value)
		}
	}

	c.stack.Leave()
	c.fn = prevFn
}

func (c *Context) resolveOverloadSet(o *ast.OverloadedFuncDecl) {
	for _, sym := range o.Overloads {
		decl, ok := c.lookup(sym.Name)
		if !ok {
			c.Log.Add(sym.Pos, diag.UnresolvedSymbol, "unresolved overload member %q", sym.Name)
			continue
		}
		sym.Resolved = decl
	}
}

func (c *Context) resolveGlobal(g *ast.GlobalDecl) {
	if g.TypeExpr != nil {
		c.resolveTypeExpr(g.TypeExpr)
	}
	if g.Value != nil {
		c.resolveExpr(g.Value)
	}
}

func (c *Context) resolveStruct(s *ast.StructDecl) {
	if s.DeclScope == nil {
		s.DeclScope = scope.NewScope(c.stack.Current())
	}
	for _, m := range s.Members {
		c.resolveTypeExpr(m.TypeExpr)
		if m.Default != nil {
			c.resolveExpr(m.Default)
		}
		for _, tag := range m.Tags {
			if tag.Value != nil {
				c.resolveExpr(tag.Value)
			}
		}
	}
	for _, tag := range s.Tags {
		if tag.Value != nil {
			c.resolveExpr(tag.Value)
		}
	}
}

func (c *Context) resolveEnum(e *ast.EnumDecl) {
	if e.Backing != nil {
		c.resolveTypeExpr(e.Backing)
	}
	for _, m := range e.Members {
		if m.Value != nil {
			c.resolveExpr(m.Value)
		}
	}
}

func (c *Context) resolveForeignBlock(f *ast.ForeignBlockDecl) {
	for _, fn := range f.Funcs {
		for _, p := range fn.Params {
			c.resolveTypeExpr(p)
		}
		if fn.ReturnType != nil {
			c.resolveTypeExpr(fn.ReturnType)
		}
	}
}

// resolveTypeExpr resolves a NamedTypeExpr's Name against the current scope
// chain; composite type expressions recurse into their element type.
func (c *Context) resolveTypeExpr(te ast.TypeExpr) {
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		if decl, ok := c.lookup(t.Name); ok {
			t.Resolved = decl
		}
		for _, arg := range t.TypeArgs {
			c.resolveTypeExpr(arg)
		}
	case *ast.PointerTypeExpr:
		c.resolveTypeExpr(t.Elem)
	case *ast.ArrayTypeExpr:
		c.resolveTypeExpr(t.Elem)
	case *ast.SliceTypeExpr:
		c.resolveTypeExpr(t.Elem)
	case *ast.DynArrayTypeExpr:
		c.resolveTypeExpr(t.Elem)
	case *ast.VarArgsTypeExpr:
		c.resolveTypeExpr(t.Elem)
	case *ast.FuncTypeExpr:
		for _, p := range t.Params {
			c.resolveTypeExpr(p)
		}
		if t.Return != nil {
			c.resolveTypeExpr(t.Return)
		}
	}
}
