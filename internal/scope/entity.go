package scope

import "github.com/lucidlang/lucidc/internal/ast"

// EntityKind discriminates the entity kinds of spec.md §3: function,
// overloaded-function, global, expression, struct, enum, foreign-block,
// string-literal, use-package.
type EntityKind int

const (
	EntityFunction EntityKind = iota
	EntityOverloadedFunction
	EntityGlobal
	EntityExpression
	EntityStruct
	EntityEnum
	EntityForeignBlock
	EntityStringLiteral
	EntityUsePackage
)

// Entity is a top-level item in the program, carrying a back-pointer to its
// owning package. The program holds an ordered list of entities that drives
// both C1 and C2.
type Entity struct {
	Kind    EntityKind
	Pkg     *Package
	Node    ast.Node
}

// Program holds the ordered entity list plus the global scope and package
// table shared across passes; the type map is kept separately.
type Program struct {
	Global   *Scope
	Packages map[string]*Package
	Entities []*Entity
}

// NewProgram creates an empty program rooted at a fresh global scope.
func NewProgram() *Program {
	return &Program{
		Global:   NewScope(nil),
		Packages: make(map[string]*Package),
	}
}

// Package looks up or creates a package by name.
func (p *Program) Package(name string) *Package {
	if pkg, ok := p.Packages[name]; ok {
		return pkg
	}
	pkg := NewPackage(name, p.Global)
	p.Packages[name] = pkg
	return pkg
}

// AddEntity appends an entity reachable from exactly one package, preserving
// the spec.md §3 invariant "every entity is reachable from exactly one
// package".
func (p *Program) AddEntity(kind EntityKind, pkg *Package, node ast.Node) *Entity {
	e := &Entity{Kind: kind, Pkg: pkg, Node: node}
	p.Entities = append(p.Entities, e)
	return e
}
