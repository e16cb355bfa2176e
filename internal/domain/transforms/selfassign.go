package transforms

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

// SelfAssign removes statements that assign a variable to itself,
// such as `x = x` or `a.b = a.b`.
type SelfAssign struct{}

// Apply rewrites the working tree in place and returns it.
func (SelfAssign) Apply(file *ast.File) (*ast.File, error) {
	result := astutil.Apply(file, nil, func(c *astutil.Cursor) bool {
		stmt, ok := c.Node().(*ast.AssignStmt)
		if !ok {
			return true
		}

		// Only delete statements sitting in a statement list; an
		// assignment used as an if/for initializer stays put.
		if c.Index() < 0 {
			return true
		}

		if !isSelfAssign(stmt) {
			return true
		}

		c.Delete()

		return true
	})

	return result.(*ast.File), nil
}

func isSelfAssign(stmt *ast.AssignStmt) bool {
	if stmt.Tok != token.ASSIGN || len(stmt.Lhs) != len(stmt.Rhs) {
		return false
	}

	for i := range stmt.Lhs {
		if !sameTarget(stmt.Lhs[i], stmt.Rhs[i]) {
			return false
		}
	}

	return true
}

// sameTarget reports whether two expressions name the same plain
// variable or selector chain. Anything with potential side effects
// (calls, index expressions) is never treated as a self-assignment.
func sameTarget(a, b ast.Expr) bool {
	switch left := a.(type) {
	case *ast.Ident:
		right, ok := b.(*ast.Ident)
		return ok && left.Name == right.Name
	case *ast.SelectorExpr:
		right, ok := b.(*ast.SelectorExpr)
		return ok && left.Sel.Name == right.Sel.Name && sameTarget(left.X, right.X)
	default:
		return false
	}
}
