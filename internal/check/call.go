package check

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/types"
)

// checkCall implements spec.md §4.2's Call rule: resolve overloads by first
// match in declaration order, rewrite an intrinsic-flagged callee into an
// IntrinsicCall, and otherwise check arity and per-parameter compatibility
// against the callee's function type.
func (c *Context) checkCall(x *ast.Call) *types.Type {
	argTypes := make([]*types.Type, len(x.Args))
	for i, a := range x.Args {
		argTypes[i] = c.checkExpr(a)
	}

	sym, isSym := x.Callee.(*ast.Symbol)
	if !isSym {
		ct := c.checkExpr(x.Callee)
		return c.checkDirectCall(x, x.Pos, ct, argTypes)
	}

	switch target := sym.Resolved.(type) {
	case *ast.OverloadedFuncDecl:
		fn := c.resolveOverload(target, x.Pos, argTypes, x.Args)
		if fn == nil {
			return nil
		}
		sym.Resolved = fn
		sym.Header.Type = c.funcType(fn)
		return c.finishCall(x, fn, argTypes)

	case *ast.FuncDecl:
		if target.IsIntrinsic {
			intr, ok := ast.LookupIntrinsic(target.IntrinsicName)
			if !ok {
				c.Log.Add(x.Pos, diag.CallNonFunction, "unknown intrinsic %q", target.IntrinsicName)
				return nil
			}
			ic := &ast.IntrinsicCall{Header: x.Header, Intrinsic: intr, Args: x.Args}
			return c.checkIntrinsicCall(ic)
		}
		sym.Header.Type = c.funcType(target)
		return c.finishCall(x, target, argTypes)

	default:
		ct := c.checkExpr(sym)
		return c.checkDirectCall(x, x.Pos, ct, argTypes)
	}
}

// checkDirectCall handles a call through a function-typed expression that is
// not a direct reference to a declaration (e.g. a function stored in a
// struct field).
func (c *Context) checkDirectCall(x *ast.Call, pos diag.Pos, ct *types.Type, argTypes []*types.Type) *types.Type {
	if ct == nil || ct.Kind != types.KindFunction {
		c.Log.Add(pos, diag.CallNonFunction, "called expression is not a function")
		return nil
	}
	c.checkArgs(pos, ct.Params, ct.HasVararg, x.Args, argTypes)
	x.Header.Type = ct.Return
	return ct.Return
}

func (c *Context) finishCall(x *ast.Call, fn *ast.FuncDecl, argTypes []*types.Type) *types.Type {
	ft := c.funcType(fn)
	c.checkArgs(x.Pos, ft.Params, ft.HasVararg, x.Args, argTypes)
	x.Header.Type = ft.Return
	return ft.Return
}

func (c *Context) checkArgs(pos diag.Pos, params []*types.Type, hasVararg bool, args []ast.Expr, argTypes []*types.Type) {
	if hasVararg {
		if len(argTypes) < len(params)-1 {
			c.Log.Add(pos, diag.FunctionParamMismatch, "expected at least %d arguments, got %d", len(params)-1, len(argTypes))
			return
		}
	} else if len(argTypes) != len(params) {
		c.Log.Add(pos, diag.FunctionParamMismatch, "expected %d arguments, got %d", len(params), len(argTypes))
		return
	}
	for i, pt := range params {
		if hasVararg && i == len(params)-1 {
			break
		}
		if i >= len(argTypes) || argTypes[i] == nil || pt == nil {
			continue
		}
		if !types.Compatible(argTypes[i], pt, isLiteral(args[i])) {
			c.Log.Add(args[i].Position(), diag.FunctionParamMismatch, "argument %d: cannot use %s as %s", i+1, argTypes[i], pt)
		}
	}
}

// resolveOverload picks the first overload member whose arity and parameter
// types are all compatible with the call-site arguments, in declaration
// order (spec.md §4.2, §8 scenario 1).
func (c *Context) resolveOverload(o *ast.OverloadedFuncDecl, pos diag.Pos, argTypes []*types.Type, args []ast.Expr) *ast.FuncDecl {
	for _, sym := range o.Overloads {
		fn, ok := sym.Resolved.(*ast.FuncDecl)
		if !ok {
			continue
		}
		ft := c.funcType(fn)
		if !arityMatches(ft, len(argTypes)) {
			continue
		}
		if allCompatible(ft.Params, argTypes, args) {
			return fn
		}
	}
	c.Log.Add(pos, diag.FunctionParamMismatch, "no overload of %q matches the given argument types", o.Name)
	return nil
}

func arityMatches(ft *types.Type, n int) bool {
	if ft.HasVararg {
		return n >= len(ft.Params)-1
	}
	return n == len(ft.Params)
}

// allCompatible checks every parameter against its argument type, honoring
// literal widening per argument the same way checkArgs does (e.g. an
// untyped float literal like 1.0 may match an f32 parameter), so overload
// resolution and final argument checking never disagree about whether a
// literal argument fits.
func allCompatible(params []*types.Type, argTypes []*types.Type, args []ast.Expr) bool {
	for i, pt := range params {
		if i >= len(argTypes) {
			return true // vararg tail
		}
		lit := i < len(args) && isLiteral(args[i])
		if argTypes[i] == nil || pt == nil || !types.Compatible(argTypes[i], pt, lit) {
			return false
		}
	}
	return true
}

// checkIntrinsicCall assigns the fixed result type spec.md §4.2/§6 defines
// for each intrinsic; operand types are trusted to already match (the
// intrinsic name itself encodes the operand width).
func (c *Context) checkIntrinsicCall(ic *ast.IntrinsicCall) *types.Type {
	for _, a := range ic.Args {
		c.checkExpr(a)
	}
	var bk types.BasicKind
	switch ic.Intrinsic {
	case ast.IntrinsicI32Add, ast.IntrinsicI32Sub, ast.IntrinsicI32Mul, ast.IntrinsicI32DivS, ast.IntrinsicI32DivU,
		ast.IntrinsicI32RemS, ast.IntrinsicI32RemU, ast.IntrinsicI32And, ast.IntrinsicI32Or, ast.IntrinsicI32Xor,
		ast.IntrinsicI32Shl, ast.IntrinsicI32ShrS, ast.IntrinsicI32ShrU, ast.IntrinsicI32WrapI64,
		ast.IntrinsicI32TruncF64S, ast.IntrinsicI32Clz, ast.IntrinsicI32Ctz, ast.IntrinsicI32Popcnt,
		ast.IntrinsicMemorySize, ast.IntrinsicMemoryGrow:
		bk = types.BasicI32
	case ast.IntrinsicI64Add, ast.IntrinsicI64Sub, ast.IntrinsicI64Mul, ast.IntrinsicI64DivS, ast.IntrinsicI64DivU,
		ast.IntrinsicI64RemS, ast.IntrinsicI64RemU, ast.IntrinsicI64And, ast.IntrinsicI64Or, ast.IntrinsicI64Xor,
		ast.IntrinsicI64Shl, ast.IntrinsicI64ShrS, ast.IntrinsicI64ShrU, ast.IntrinsicI64ExtendI32S, ast.IntrinsicI64ExtendI32U:
		bk = types.BasicI64
	case ast.IntrinsicF32Add, ast.IntrinsicF32Sub, ast.IntrinsicF32Mul, ast.IntrinsicF32Div, ast.IntrinsicF32DemoteF64:
		bk = types.BasicF32
	case ast.IntrinsicF64Add, ast.IntrinsicF64Sub, ast.IntrinsicF64Mul, ast.IntrinsicF64Div,
		ast.IntrinsicF64PromoteF32, ast.IntrinsicF64ConvertI32S:
		bk = types.BasicF64
	case ast.IntrinsicI32Eq, ast.IntrinsicI32Ne, ast.IntrinsicI32LtS, ast.IntrinsicI32LeS, ast.IntrinsicI32GtS,
		ast.IntrinsicI32GeS, ast.IntrinsicF64Eq, ast.IntrinsicF64Lt, ast.IntrinsicF64Le:
		ic.Header.Type = c.Types.Basic(types.BasicBool)
		return ic.Header.Type
	case ast.IntrinsicMemoryCopy, ast.IntrinsicMemoryFill:
		bk = types.BasicVoid
	default:
		bk = types.BasicI32
	}
	ic.Header.Type = c.Types.Basic(bk)
	return ic.Header.Type
}
