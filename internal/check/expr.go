package check

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/types"
)

// stringType is the built-in representation of a string literal: a slice of
// u8, matching how spec.md §3 describes Slice as the {ptr, len} pair every
// reference type beyond a raw pointer reduces to. The first []u8 in the
// context's type map is reused; one is created only if none exists yet.
func (c *Context) stringType() *types.Type {
	u8 := c.Types.Basic(types.BasicU8)
	for _, t := range c.Types.Ordered() {
		if t.Kind == types.KindSlice && t.Elem == u8 {
			return t
		}
	}
	t := c.Types.New(types.KindSlice)
	t.Elem = u8
	return t
}

// checkExpr fills e's Header.Type (or emits a diagnostic) and returns it.
func (c *Context) checkExpr(e ast.Expr) *types.Type {
	switch x := e.(type) {
	case *ast.Symbol:
		t := c.typeOfDecl(x.Resolved)
		x.Header.Type = t
		return t

	case *ast.IntLit:
		x.Widenable = true
		x.Header.Type = c.Types.Basic(types.BasicI32)
		return x.Header.Type

	case *ast.FloatLit:
		x.Widenable = true
		x.Header.Type = c.Types.Basic(types.BasicF64)
		return x.Header.Type

	case *ast.BoolLit:
		x.Header.Type = c.Types.Basic(types.BasicBool)
		return x.Header.Type

	case *ast.StringLit:
		x.Header.Type = c.stringType()
		return x.Header.Type

	case *ast.BinaryExpr:
		return c.checkBinary(x)

	case *ast.UnaryExpr:
		return c.checkUnary(x)

	case *ast.FieldAccess:
		return c.checkFieldAccess(x)

	case *ast.ArrayAccess:
		return c.checkArrayAccess(x)

	case *ast.Call:
		return c.checkCall(x)

	case *ast.IntrinsicCall:
		return c.checkIntrinsicCall(x)
	}
	return nil
}

// typeOfDecl returns the type a resolved declaration node stands for when
// referenced as a value.
func (c *Context) typeOfDecl(decl ast.Node) *types.Type {
	switch d := decl.(type) {
	case *ast.Param:
		if d.Header.Type == nil {
			d.Header.Type = c.BuildType(d.TypeExpr)
		}
		return d.Header.Type
	case *ast.LocalDecl:
		if d.Header.Type == nil {
			c.checkLocalDecl(d)
		}
		return d.Header.Type
	case *ast.GlobalDecl:
		if d.Header.Type == nil {
			c.checkGlobal(d)
		}
		return d.Header.Type
	case *ast.FuncDecl:
		return c.funcType(d)
	}
	return nil
}

func (c *Context) funcType(d *ast.FuncDecl) *types.Type {
	if d.Header.Type != nil {
		return d.Header.Type
	}
	t := c.Types.New(types.KindFunction)
	d.Header.Type = t // set before recursing: guards against self-recursive signatures
	for _, p := range d.Params {
		t.Params = append(t.Params, c.BuildType(p.TypeExpr))
	}
	if d.ReturnType != nil {
		t.Return = c.BuildType(d.ReturnType)
	} else {
		t.Return = c.Types.Basic(types.BasicVoid)
	}
	return t
}

// checkBinary types a binary expression. A pointer operand is rejected for
// every operator, including == and !=, so pointers cannot be compared.
func (c *Context) checkBinary(x *ast.BinaryExpr) *types.Type {
	lt := c.checkExpr(x.Left)
	rt := c.checkExpr(x.Right)
	if lt == nil || rt == nil {
		return nil
	}
	if lt.Kind == types.KindPointer || rt.Kind == types.KindPointer {
		c.Log.Add(x.Pos, diag.BinopMismatch, "operator %q does not accept pointer operands", x.Op)
		return nil
	}
	if !types.Compatible(lt, rt, isLiteral(x.Left)) && !types.Compatible(rt, lt, isLiteral(x.Right)) {
		c.Log.Add(x.Pos, diag.BinopMismatch, "mismatched operand types %s and %s for %q", lt, rt, x.Op)
		return nil
	}
	switch x.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		x.Header.Type = c.Types.Basic(types.BasicBool)
	default:
		x.Header.Type = types.CommonType(lt, rt)
	}
	return x.Header.Type
}

func (c *Context) checkUnary(x *ast.UnaryExpr) *types.Type {
	switch x.Op {
	case "&":
		ot := c.checkExpr(x.Operand)
		if !isAddressOfOperand(x.Operand) {
			c.Log.Add(x.Pos, diag.Literal, "cannot take the address of this")
			return nil
		}
		p := c.Types.New(types.KindPointer)
		p.Elem = ot
		x.Header.Type = p
		return p
	case "^":
		ot := c.checkExpr(x.Operand)
		if ot == nil || ot.Kind != types.KindPointer {
			c.Log.Add(x.Pos, diag.BinopMismatch, "cannot dereference a non-pointer")
			return nil
		}
		x.Header.Type = ot.Elem
		return ot.Elem
	default:
		ot := c.checkExpr(x.Operand)
		x.Header.Type = ot
		return ot
	}
}

func (c *Context) checkFieldAccess(x *ast.FieldAccess) *types.Type {
	ot := c.checkExpr(x.Operand)
	if ot == nil {
		return nil
	}
	st := ot
	if st.Kind == types.KindPointer {
		st = st.Elem
	}
	if st == nil || (st.Kind != types.KindStruct && st.Kind != types.KindPolyStruct) {
		c.Log.Add(x.Pos, diag.FieldAccessNoType, "cannot access field %q on non-struct type", x.Field)
		return nil
	}
	for i := range st.StructMembers {
		m := &st.StructMembers[i]
		if m.Name == x.Field {
			m.Used = true
			x.Header.Type = m.Type
			return m.Type
		}
	}
	c.Log.Add(x.Pos, diag.FieldAccessNoType, "type %s has no field %q", st, x.Field)
	return nil
}

func (c *Context) checkArrayAccess(x *ast.ArrayAccess) *types.Type {
	bt := c.checkExpr(x.Base)
	it := c.checkExpr(x.Index)
	if bt == nil {
		return nil
	}
	if it != nil && it.Kind == types.KindBasic && !it.Basic.IsInteger() {
		c.Log.Add(x.Index.Position(), diag.BinopMismatch, "array index must be an integer, got %s", it)
	}
	var elem *types.Type
	switch bt.Kind {
	case types.KindArray, types.KindSlice, types.KindDynArray, types.KindVarArgs:
		elem = bt.Elem
	case types.KindPointer:
		elem = bt.Elem
	default:
		c.Log.Add(x.Pos, diag.BinopMismatch, "cannot index into type %s", bt)
		return nil
	}
	x.ElemSize = elem.Size(PointerSize)
	x.Header.Type = elem
	return elem
}

// isAddressOfOperand reports whether e is a valid operand for "&": only an
// array access or a dereference, never a plain symbol or field access, per
// onyxchecker.c's check_address_of.
func isAddressOfOperand(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.ArrayAccess:
		return true
	case *ast.UnaryExpr:
		return x.Op == "^"
	}
	return false
}

// isLvalue reports whether e denotes an addressable storage location:
// a symbol bound to a local/param/global, a field access, or an array access.
func isLvalue(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Symbol:
		switch x.Resolved.(type) {
		case *ast.LocalDecl, *ast.Param, *ast.GlobalDecl:
			return true
		}
		return false
	case *ast.FieldAccess, *ast.ArrayAccess:
		return true
	case *ast.UnaryExpr:
		return x.Op == "^"
	}
	return false
}
