package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"refract.dev/pkg/refract/internal/adapter"
	"refract.dev/pkg/refract/internal/domain/transforms"
	m "refract.dev/pkg/refract/internal/model"
)

// parseWithClone parses src as the reference tree and hands back an
// independent working copy alongside it.
func parseWithClone(t *testing.T, src string) (working, reference *adapter.ParsedFile) {
	t.Helper()

	files := adapter.NewLocalGoFileAdapter()

	reference, err := files.Parse("demo.go", []byte(src))
	require.NoError(t, err)

	working, err = files.Clone(reference)
	require.NoError(t, err)

	return working, reference
}

func TestPrintKeepsUntouchedDeclarationsVerbatim(t *testing.T) {
	// The first function carries formatting gofmt would rewrite; it must
	// survive byte for byte because only the second function changes.
	src := `package demo

// odd is deliberately misformatted.
func   odd( a,b int )int { return a+ b }

// bump counts up.
func bump(n int) int {
	n += 1
	return n
}
`

	working, reference := parseWithClone(t, src)

	mutated, err := transforms.IncDec{}.Apply(working.File)
	require.NoError(t, err)

	working.File = mutated

	out, err := NewPrinter().Print(working, reference, reference.Tokens)
	require.NoError(t, err)

	require.Contains(t, out, "func   odd( a,b int )int { return a+ b }")
	require.Contains(t, out, "n++")
	require.NotContains(t, out, "n += 1")
}

func TestPrintModifiedDeclarationKeepsDocOnce(t *testing.T) {
	src := `package demo

// bump counts up.
func bump(n int) int {
	n += 1
	return n
}
`

	working, reference := parseWithClone(t, src)

	mutated, err := transforms.IncDec{}.Apply(working.File)
	require.NoError(t, err)

	working.File = mutated

	out, err := NewPrinter().Print(working, reference, reference.Tokens)
	require.NoError(t, err)

	require.Equal(t, 1, strings.Count(out, "// bump counts up."))
	require.Contains(t, out, "n++")
}

func TestPrintKeepsInteriorComments(t *testing.T) {
	src := `package demo

func bump(n int) int {
	// one step at a time
	n += 1
	return n
}
`

	working, reference := parseWithClone(t, src)

	mutated, err := transforms.IncDec{}.Apply(working.File)
	require.NoError(t, err)

	working.File = mutated

	out, err := NewPrinter().Print(working, reference, reference.Tokens)
	require.NoError(t, err)

	require.Contains(t, out, "// one step at a time")
	require.Contains(t, out, "n++")
}

func TestPrintIdenticalTreeReproducesSource(t *testing.T) {
	src := `package demo

import "fmt"

// Greet says hi.
func Greet(name string) {
	fmt.Println("hi", name) // inline note
}

var counter = 0
`

	working, reference := parseWithClone(t, src)

	out, err := NewPrinter().Print(working, reference, reference.Tokens)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestPrintDropsRemovedDeclaration(t *testing.T) {
	src := `package demo

// gone is removed by the rule.
func gone() {}

func kept() int { return 1 }
`

	working, reference := parseWithClone(t, src)

	// Drop the first function from the working tree.
	working.File.Decls = working.File.Decls[1:]

	out, err := NewPrinter().Print(working, reference, reference.Tokens)
	require.NoError(t, err)

	require.NotContains(t, out, "func gone()")
	require.NotContains(t, out, "// gone is removed by the rule.")
	require.Contains(t, out, "func kept() int { return 1 }")
}

func TestPrintRejectsMismatchedTokenStream(t *testing.T) {
	working, reference := parseWithClone(t, "package demo\n\nfunc a() {}\n")

	files := adapter.NewLocalGoFileAdapter()

	other, err := files.Parse("other.go", []byte("package other\n"))
	require.NoError(t, err)

	_, err = NewPrinter().Print(working, reference, other.Tokens)
	require.Error(t, err)

	var printErr *m.PrintError
	require.True(t, errors.As(err, &printErr))
}

func TestPrintRejectsMissingWorkingTree(t *testing.T) {
	_, reference := parseWithClone(t, "package demo\n")

	_, err := NewPrinter().Print(nil, reference, reference.Tokens)
	require.Error(t, err)

	var printErr *m.PrintError
	require.True(t, errors.As(err, &printErr))
}
