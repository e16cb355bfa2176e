package transforms

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

// applyAndRender parses src, runs the transformation on the tree and
// returns the rendered output.
func applyAndRender(t *testing.T, src string, apply func(*ast.File) (*ast.File, error)) string {
	t.Helper()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	require.NoError(t, err)

	out, err := apply(file)
	require.NoError(t, err)
	require.NotNil(t, out)

	var buf bytes.Buffer
	require.NoError(t, format.Node(&buf, fset, out))

	return buf.String()
}

func TestBoolCompare(t *testing.T) {
	cases := []struct {
		name    string
		expr    string
		want    string
		dropped string
	}{
		{"eq true keeps operand", "ready == true", "if ready {", "== true"},
		{"neq false keeps operand", "ready != false", "if ready {", "!= false"},
		{"eq false negates", "ready == false", "if !ready {", "== false"},
		{"neq true negates", "ready != true", "if !ready {", "!= true"},
		{"literal on the left", "true == ready", "if ready {", "=="},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := "package demo\n\nfunc check(ready bool) {\n\tif " + tc.expr + " {\n\t\tprintln(\"go\")\n\t}\n}\n"

			got := applyAndRender(t, src, BoolCompare{}.Apply)
			require.Contains(t, got, tc.want)
			require.NotContains(t, got, tc.dropped)
		})
	}
}

func TestBoolCompareParenthesizesBinaryOperand(t *testing.T) {
	src := "package demo\n\nfunc check(a, b int) {\n\tif a < b == false {\n\t\tprintln(\"go\")\n\t}\n}\n"

	got := applyAndRender(t, src, BoolCompare{}.Apply)
	require.Contains(t, got, "if !(a < b) {")
}

func TestBoolCompareCollapsesExistingNot(t *testing.T) {
	src := "package demo\n\nfunc check(ready bool) {\n\tif !ready == false {\n\t\tprintln(\"go\")\n\t}\n}\n"

	got := applyAndRender(t, src, BoolCompare{}.Apply)
	require.Contains(t, got, "if ready {")
	require.NotContains(t, got, "!!")
}

func TestIncDec(t *testing.T) {
	src := `package demo

func bump(n int) int {
	n += 1
	n -= 1
	n += 2
	return n
}
`

	got := applyAndRender(t, src, IncDec{}.Apply)
	require.Contains(t, got, "n++")
	require.Contains(t, got, "n--")
	require.Contains(t, got, "n += 2")
	require.NotContains(t, got, "n += 1")
	require.NotContains(t, got, "n -= 1")
}

func TestIncDecSkipsMultiAssign(t *testing.T) {
	src := `package demo

func bump(n, k int) {
	n, k = n+1, 1
}
`

	got := applyAndRender(t, src, IncDec{}.Apply)
	require.NotContains(t, got, "n++")
	require.NotContains(t, got, "n--")
}

func TestSelfAssign(t *testing.T) {
	src := `package demo

func shuffle(x int) int {
	x = x
	x = x + 1
	return x
}
`

	got := applyAndRender(t, src, SelfAssign{}.Apply)
	require.NotContains(t, got, "x = x\n")
	require.Contains(t, got, "x = x + 1")
}

func TestSelfAssignSelectorChain(t *testing.T) {
	src := `package demo

type box struct{ v int }

type pair struct{ b box }

func poke(p pair) {
	p.b.v = p.b.v
	p.b.v = p.b.v + 1
}
`

	got := applyAndRender(t, src, SelfAssign{}.Apply)
	require.NotContains(t, got, "p.b.v = p.b.v\n")
	require.Contains(t, got, "p.b.v = p.b.v + 1")
}

func TestSelfAssignKeepsInitializers(t *testing.T) {
	// An assignment in an if initializer is not part of a statement
	// list and must survive even when it is a self-assignment.
	src := `package demo

func peek(x int) int {
	if x = x; x > 0 {
		return x
	}
	return 0
}
`

	got := applyAndRender(t, src, SelfAssign{}.Apply)
	require.Contains(t, got, "if x = x; x > 0 {")
}

func TestSelfAssignSkipsCallTargets(t *testing.T) {
	src := `package demo

func get() *int { return nil }

func poke() {
	*get() = *get()
}
`

	got := applyAndRender(t, src, SelfAssign{}.Apply)
	require.Contains(t, got, "*get() = *get()")
}

func TestDoubleNeg(t *testing.T) {
	cases := []struct {
		name string
		expr string
		want string
	}{
		{"plain", "!!ready", "return ready"},
		{"parenthesized", "!(!ready)", "return ready"},
		{"triple keeps one", "!!!ready", "return !ready"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := "package demo\n\nfunc check(ready bool) bool {\n\treturn " + tc.expr + "\n}\n"

			got := applyAndRender(t, src, DoubleNeg{}.Apply)
			require.Contains(t, got, tc.want)
		})
	}
}

func TestDoubleNegLeavesSingleNot(t *testing.T) {
	src := "package demo\n\nfunc check(ready bool) bool {\n\treturn !ready\n}\n"

	got := applyAndRender(t, src, DoubleNeg{}.Apply)
	require.Contains(t, got, "return !ready")
}
