package domain

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	m "refract.dev/pkg/refract/internal/model"
)

// diffContextLines is the number of unchanged lines shown around each hunk.
const diffContextLines = 3

// Differ computes textual diffs between original and reprinted source.
type Differ interface {
	// Unified returns a unified diff, or the empty string when the
	// texts are identical.
	Unified(path m.Path, original, updated string) (string, error)
}

type unifiedDiffer struct{}

// NewDiffer returns the default unified-diff implementation.
func NewDiffer() Differ {
	return unifiedDiffer{}
}

func (unifiedDiffer) Unified(path m.Path, original, updated string) (string, error) {
	if original == updated {
		return "", nil
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(updated),
		FromFile: "a/" + string(path),
		ToFile:   "b/" + string(path),
		Context:  diffContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}

	return text, nil
}
