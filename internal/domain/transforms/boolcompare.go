// Package transforms provides the built-in tree transformations.
package transforms

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

const (
	trueStr  = "true"
	falseStr = "false"
)

// BoolCompare drops redundant comparisons against boolean literals:
// `x == true` becomes `x`, `x != false` becomes `x`, and the two
// remaining forms become `!x`.
type BoolCompare struct{}

// Apply rewrites the working tree in place and returns it.
func (BoolCompare) Apply(file *ast.File) (*ast.File, error) {
	result := astutil.Apply(file, nil, func(c *astutil.Cursor) bool {
		expr, ok := c.Node().(*ast.BinaryExpr)
		if !ok {
			return true
		}

		if expr.Op != token.EQL && expr.Op != token.NEQ {
			return true
		}

		lit, other, ok := boolOperand(expr)
		if !ok {
			return true
		}

		keep := (lit == trueStr) == (expr.Op == token.EQL)
		if keep {
			c.Replace(other)
		} else {
			c.Replace(negate(other))
		}

		return true
	})

	return result.(*ast.File), nil
}

// boolOperand returns the boolean literal on either side of the
// comparison and the remaining operand.
func boolOperand(expr *ast.BinaryExpr) (string, ast.Expr, bool) {
	if name, ok := boolLiteral(expr.X); ok {
		return name, expr.Y, true
	}

	if name, ok := boolLiteral(expr.Y); ok {
		return name, expr.X, true
	}

	return "", nil, false
}

func boolLiteral(expr ast.Expr) (string, bool) {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}

	if ident.Name != trueStr && ident.Name != falseStr {
		return "", false
	}

	return ident.Name, true
}

// negate wraps the expression in a logical not, collapsing an existing
// one instead of stacking `!!`.
func negate(expr ast.Expr) ast.Expr {
	if unary, ok := expr.(*ast.UnaryExpr); ok && unary.Op == token.NOT {
		return unary.X
	}

	return &ast.UnaryExpr{OpPos: expr.Pos(), Op: token.NOT, X: parenthesize(expr)}
}

// parenthesize guards lower-precedence operands so the negation binds
// to the whole expression.
func parenthesize(expr ast.Expr) ast.Expr {
	switch expr.(type) {
	case *ast.BinaryExpr:
		return &ast.ParenExpr{Lparen: expr.Pos(), X: expr, Rparen: expr.End()}
	default:
		return expr
	}
}
