package transforms

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

// IncDec rewrites `x += 1` to `x++` and `x -= 1` to `x--`.
type IncDec struct{}

// Apply rewrites the working tree in place and returns it.
func (IncDec) Apply(file *ast.File) (*ast.File, error) {
	result := astutil.Apply(file, nil, func(c *astutil.Cursor) bool {
		stmt, ok := c.Node().(*ast.AssignStmt)
		if !ok {
			return true
		}

		incDecTok, ok := incDecFor(stmt)
		if !ok {
			return true
		}

		c.Replace(&ast.IncDecStmt{
			X:      stmt.Lhs[0],
			TokPos: stmt.TokPos,
			Tok:    incDecTok,
		})

		return true
	})

	return result.(*ast.File), nil
}

func incDecFor(stmt *ast.AssignStmt) (token.Token, bool) {
	if len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
		return token.ILLEGAL, false
	}

	if !isIntLiteralOne(stmt.Rhs[0]) {
		return token.ILLEGAL, false
	}

	switch stmt.Tok {
	case token.ADD_ASSIGN:
		return token.INC, true
	case token.SUB_ASSIGN:
		return token.DEC, true
	default:
		return token.ILLEGAL, false
	}
}

func isIntLiteralOne(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.INT && lit.Value == "1"
}
