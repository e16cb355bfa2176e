package transforms

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

// DoubleNeg collapses double logical negation: `!!x` becomes `x`,
// including the parenthesized form `!(!x)`.
type DoubleNeg struct{}

// Apply rewrites the working tree in place and returns it.
func (DoubleNeg) Apply(file *ast.File) (*ast.File, error) {
	result := astutil.Apply(file, nil, func(c *astutil.Cursor) bool {
		outer, ok := c.Node().(*ast.UnaryExpr)
		if !ok || outer.Op != token.NOT {
			return true
		}

		inner, ok := stripParens(outer.X).(*ast.UnaryExpr)
		if !ok || inner.Op != token.NOT {
			return true
		}

		c.Replace(stripParens(inner.X))

		return true
	})

	return result.(*ast.File), nil
}

func stripParens(expr ast.Expr) ast.Expr {
	for {
		paren, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}

		expr = paren.X
	}
}
