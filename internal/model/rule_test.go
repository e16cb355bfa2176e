package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleExcluded(t *testing.T) {
	exclude, err := CompileExcludes([]string{`_test\.go$`, `/vendor/`})
	require.NoError(t, err)

	rule := Rule{Name: "alpha", Exclude: exclude}

	if !rule.Excluded("/src/pkg/foo_test.go") {
		t.Errorf("expected test file to be excluded")
	}

	if !rule.Excluded("/src/vendor/dep/dep.go") {
		t.Errorf("expected vendored file to be excluded")
	}

	if rule.Excluded("/src/pkg/foo.go") {
		t.Errorf("expected regular file not to be excluded")
	}
}

func TestRuleWithoutPatternsExcludesNothing(t *testing.T) {
	rule := Rule{Name: "alpha"}
	require.False(t, rule.Excluded("/src/pkg/foo_test.go"))
}

func TestCompileExcludesRejectsBadPattern(t *testing.T) {
	_, err := CompileExcludes([]string{"("})
	require.Error(t, err)
}
