// Package scope implements the Scope tree, Package, and Entity data model of
// spec.md §3: a mapping from identifier text to AST declaration with an
// optional parent, scopes forming a tree rooted at the global scope, and the
// ordered Entity list that drives both C1 and C2.
package scope

import "github.com/lucidlang/lucidc/internal/ast"

// Scope is a mapping from identifier text to declaration, plus an optional
// parent. Lookup searches upward until a match or the root.
type Scope struct {
	parent  *Scope
	bindings map[string]ast.Node
}

// NewScope creates a scope with the given parent (nil for the global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, bindings: make(map[string]ast.Node)}
}

// Parent returns the scope's parent, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// SetParent sets the scope's parent if unset, matching the enter(s) state
// machine of spec.md §4.1: "pushes s (and sets its parent if unset)".
func (s *Scope) SetParent(p *Scope) {
	if s.parent == nil {
		s.parent = p
	}
}

// Define binds name to decl in this scope. It does not check for an existing
// binding; callers that must keep an existing binding (e.g. the
// include-scope merge in C1) use DefineIfAbsent instead.
func (s *Scope) Define(name string, decl ast.Node) {
	s.bindings[name] = decl
}

// LookupLocal looks up name only in this scope, not its ancestors.
func (s *Scope) LookupLocal(name string) (ast.Node, bool) {
	d, ok := s.bindings[name]
	return d, ok
}

// Lookup searches this scope and its ancestors, upward to the root.
func (s *Scope) Lookup(name string) (ast.Node, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.bindings[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// DefineIfAbsent binds name to decl only if nothing is already bound in this
// scope, reporting whether the binding was installed. This is the primitive
// the "first wins" merge/alias/selective-import policies build on.
func (s *Scope) DefineIfAbsent(name string, decl ast.Node) bool {
	if _, exists := s.bindings[name]; exists {
		return false
	}
	s.bindings[name] = decl
	return true
}

// MergeFrom copies every binding from src into s that s does not already
// have — first binding wins, duplicates are silently ignored.
func (s *Scope) MergeFrom(src *Scope) {
	for name, decl := range src.bindings {
		s.DefineIfAbsent(name, decl)
	}
}

// Stack is the enter/leave scope-traversal state machine of spec.md §4.1.
// Each entity processed enters exactly its package scope and leaves it; Stack
// also supports nested pushes for function/block/for-loop scopes during the
// expression walk.
type Stack struct {
	stack []*Scope
}

// Enter pushes s, setting its parent to the current top if s has none.
func (st *Stack) Enter(s *Scope) {
	if len(st.stack) > 0 {
		s.SetParent(st.stack[len(st.stack)-1])
	}
	st.stack = append(st.stack, s)
}

// Leave pops the top scope.
func (st *Stack) Leave() {
	st.stack = st.stack[:len(st.stack)-1]
}

// Current returns the top of the stack, or nil if empty.
func (st *Stack) Current() *Scope {
	if len(st.stack) == 0 {
		return nil
	}
	return st.stack[len(st.stack)-1]
}
