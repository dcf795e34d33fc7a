package check

import "github.com/lucidlang/lucidc/internal/ast"

// constEval evaluates the small subset of expressions that must be
// compile-time known outside of a function body: enum member values, struct
// member defaults, and meta-tag payloads. It does not attempt general
// constant folding; the C4 collaborator (internal/constexpr) owns writing
// compile-time values into data segments once C2 has typed them. want is
// advisory and unused beyond documenting the expected literal kind.
func (c *Context) constEval(e ast.Expr, want interface{}) interface{} {
	switch x := e.(type) {
	case *ast.IntLit:
		return uint64(x.Value)
	case *ast.FloatLit:
		return x.Value
	case *ast.BoolLit:
		return x.Value
	case *ast.StringLit:
		return x.Value
	case *ast.UnaryExpr:
		if x.Op == "-" {
			if v := c.constEval(x.Operand, want); v != nil {
				switch n := v.(type) {
				case uint64:
					return uint64(-int64(n))
				case float64:
					return -n
				}
			}
		}
	}
	return nil
}

// isLiteral reports whether e is a bare numeric literal, the only case in
// which types.Compatible's implicit-widening rule applies.
func isLiteral(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IntLit, *ast.FloatLit:
		return true
	}
	return false
}
