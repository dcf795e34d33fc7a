package check

import (
	"github.com/lucidlang/lucidc/internal/ast"
	"github.com/lucidlang/lucidc/internal/types"
)

// structType builds (or returns the cached) Type for a non-polymorphic
// struct declaration. solutions/typeArgs are non-nil only when building a
// PolyStruct instantiation, in which case members whose declared type names
// a type parameter resolve against solutions instead of recursing into
// BuildType.
func (c *Context) structType(decl *ast.StructDecl, typeArgs []ast.TypeExpr, solutions []types.PolySolution) *types.Type {
	if cached, ok := c.structCache[decl]; ok && solutions == nil {
		return cached
	}
	t := c.Types.New(types.KindStruct)
	t.Name = decl.Name
	if solutions == nil {
		c.structCache[decl] = t
	}

	var offset uint32
	var maxAlign uint32 = 1
	for _, m := range decl.Members {
		mt := c.resolveMemberType(decl, m.TypeExpr, solutions)
		align := mt.Align(PointerSize)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignUp(offset, align)
		sm := types.StructMember{Name: m.Name, Offset: offset, Type: mt, Tags: c.buildMetaTags(m.Tags)}
		if m.Default != nil {
			sm.Default = c.constEval(m.Default, mt)
		}
		t.StructMembers = append(t.StructMembers, sm)
		offset += mt.Size(PointerSize)
	}
	t.SetLayout(alignUp(offset, maxAlign), maxAlign)
	t.MetaTags = c.buildMetaTags(decl.Tags)
	return t
}

// polyStructType builds the uninstantiated generic Type for a struct with
// type parameters; its StructMembers are left empty, as spec.md §3 shapes it
// (no concrete layout exists until a use site supplies type arguments).
func (c *Context) polyStructType(decl *ast.StructDecl) *types.Type {
	if cached, ok := c.structCache[decl]; ok {
		return cached
	}
	t := c.Types.New(types.KindPolyStruct)
	t.Name = decl.Name
	c.structCache[decl] = t
	return t
}

// instantiateStruct solidifies a PolyStruct with concrete type arguments into
// a fresh Struct Type, grounded in the type arguments' order matching the
// declaration's TypeParams order.
func (c *Context) instantiateStruct(decl *ast.StructDecl, typeArgs []ast.TypeExpr) *types.Type {
	solutions := make([]types.PolySolution, len(typeArgs))
	solBy := make(map[string]types.PolySolution, len(typeArgs))
	for i, arg := range typeArgs {
		at := c.BuildType(arg)
		solutions[i] = types.PolySolution{IsType: true, Type: at}
		if i < len(decl.TypeParams) {
			solBy[decl.TypeParams[i]] = solutions[i]
		}
	}
	inst := c.structType(decl, typeArgs, solutions)
	inst.PolySolutions = solutions
	inst.ConstructedFrom = c.polyStructType(decl)
	return inst
}

func (c *Context) resolveMemberType(decl *ast.StructDecl, te ast.TypeExpr, solutions []types.PolySolution) *types.Type {
	if named, ok := te.(*ast.NamedTypeExpr); ok && named.Resolved == nil {
		for i, p := range decl.TypeParams {
			if p == named.Name && i < len(solutions) && solutions[i].IsType {
				return solutions[i].Type
			}
		}
	}
	return c.BuildType(te)
}

func (c *Context) enumType(decl *ast.EnumDecl) *types.Type {
	if cached, ok := c.enumCache[decl]; ok {
		return cached
	}
	t := c.Types.New(types.KindEnum)
	t.Name = decl.Name
	c.enumCache[decl] = t
	if decl.Backing != nil {
		t.Backing = c.BuildType(decl.Backing)
	} else {
		t.Backing = c.Types.Basic(types.BasicI32)
	}
	t.IsFlags = decl.IsFlags
	var next uint64
	for _, m := range decl.Members {
		val := next
		if m.Value != nil {
			if v, ok := c.constEval(m.Value, t.Backing).(uint64); ok {
				val = v
			}
		}
		t.Members = append(t.Members, types.EnumMember{Name: m.Name, Value: val})
		next = val + 1
	}
	return t
}

func (c *Context) buildMetaTags(tags []ast.MetaTagExpr) []types.MetaTag {
	out := make([]types.MetaTag, 0, len(tags))
	for _, tg := range tags {
		mt := types.MetaTag{Name: tg.Name}
		if tg.Value != nil {
			mt.Value = c.constEval(tg.Value, nil)
		}
		out = append(out, mt)
	}
	return out
}

func alignUp(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) / align * align
}
