// Package check implements C2, the Type Checker of spec.md §4.2: for every
// typed node, either fill node.Type and prove all constraints, or emit a
// typed diagnostic. State is threaded explicitly through a Context, mirroring
// internal/resolve's discipline.
package check

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/diag"
	"github.com/lucidlang/lucidc/internal/types"
)

// basicKeywords maps the source-level basic-type keywords to their BasicKind.
// A NamedTypeExpr whose Resolved is nil and whose Name matches this table is
// a basic type, never a resolution failure.
var basicKeywords = map[string]types.BasicKind{
	"void": types.BasicVoid, "bool": types.BasicBool,
	"i8": types.BasicI8, "i16": types.BasicI16, "i32": types.BasicI32, "i64": types.BasicI64,
	"u8": types.BasicU8, "u16": types.BasicU16, "u32": types.BasicU32, "u64": types.BasicU64,
	"f32": types.BasicF32, "f64": types.BasicF64,
	"rawptr": types.BasicRawPtr,
}

// PointerSize is the compile-time pointer-width constant spec.md §4.4 keys
// layout decisions off. It is a package variable (not a Context field) only
// because every Context in a single compilation targets the same machine
// word width; tests may override it for 32-bit-target fixtures.
var PointerSize uint32 = 8

// BuildType builds a concrete Type from a resolved type expression. It is
// the black-box "fill-in" builder spec.md §4.2 calls for; the checker calls
// it whenever node.Type == nil.
func (c *Context) BuildType(te ast.TypeExpr) *types.Type {
	if te == nil {
		return nil
	}
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		return c.buildNamedType(t)
	case *ast.PointerTypeExpr:
		return c.newType(types.KindPointer, func(ty *types.Type) {
			ty.Elem = c.BuildType(t.Elem)
		})
	case *ast.ArrayTypeExpr:
		return c.newType(types.KindArray, func(ty *types.Type) {
			ty.Elem = c.BuildType(t.Elem)
			ty.Count = uint32(t.Count)
		})
	case *ast.SliceTypeExpr:
		return c.newType(types.KindSlice, func(ty *types.Type) { ty.Elem = c.BuildType(t.Elem) })
	case *ast.DynArrayTypeExpr:
		return c.newType(types.KindDynArray, func(ty *types.Type) { ty.Elem = c.BuildType(t.Elem) })
	case *ast.VarArgsTypeExpr:
		return c.newType(types.KindVarArgs, func(ty *types.Type) { ty.Elem = c.BuildType(t.Elem) })
	case *ast.FuncTypeExpr:
		return c.newType(types.KindFunction, func(ty *types.Type) {
			for _, p := range t.Params {
				ty.Params = append(ty.Params, c.BuildType(p))
			}
			ty.Return = c.BuildType(t.Return)
			ty.HasVararg = t.HasVararg
		})
	}
	return nil
}

func (c *Context) newType(kind types.Kind, fill func(*types.Type)) *types.Type {
	t := c.Types.New(kind)
	fill(t)
	return t
}

func (c *Context) buildNamedType(t *ast.NamedTypeExpr) *types.Type {
	if t.Resolved == nil {
		if bk, ok := basicKeywords[t.Name]; ok {
			return c.Types.Basic(bk)
		}
		c.Log.Add(t.Pos, diag.UnresolvedType, "unresolved type %q", t.Name)
		return nil
	}
	switch decl := t.Resolved.(type) {
	case *ast.StructDecl:
		if len(decl.TypeParams) > 0 {
			if len(t.TypeArgs) == 0 {
				return c.polyStructType(decl)
			}
			return c.instantiateStruct(decl, t.TypeArgs)
		}
		return c.structType(decl, nil, nil)
	case *ast.EnumDecl:
		return c.enumType(decl)
	}
	c.Log.Add(t.Pos, diag.UnresolvedType, "%q does not resolve to a type", t.Name)
	return nil
}
