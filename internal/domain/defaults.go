package domain

import (
	"fmt"

	"refract.dev/pkg/refract/internal/domain/transforms"
	m "refract.dev/pkg/refract/internal/model"
)

// builtin describes one shipped rule. Order here is registration order,
// which is also the order rules are applied per file.
type builtin struct {
	name        string
	description string
	impl        Transformation
}

func builtins() []builtin {
	return []builtin{
		{"boolcompare", "Remove redundant comparisons with boolean literals", transforms.BoolCompare{}},
		{"incdec", "Replace `x += 1` and `x -= 1` with `x++` and `x--`", transforms.IncDec{}},
		{"selfassign", "Remove assignments of a variable to itself", transforms.SelfAssign{}},
		{"doubleneg", "Collapse double logical negation", transforms.DoubleNeg{}},
	}
}

// DefaultRegistry builds the frozen registry of built-in
// transformations.
func DefaultRegistry() *Registry {
	reg := NewRegistry()

	for _, b := range builtins() {
		// Names are distinct by construction; a duplicate is a
		// programming error.
		if err := reg.Register(b.name, b.impl); err != nil {
			panic(err)
		}
	}

	return reg.Freeze()
}

// DefaultRules builds the rule list matching DefaultRegistry. The
// excludes map carries per-rule path patterns from configuration; the
// "*" key applies to every rule.
func DefaultRules(excludes map[string][]string) ([]m.Rule, error) {
	global := excludes["*"]

	rules := make([]m.Rule, 0, len(builtins()))

	for _, b := range builtins() {
		patterns := append(append([]string{}, global...), excludes[b.name]...)

		compiled, err := m.CompileExcludes(patterns)
		if err != nil {
			return nil, fmt.Errorf("rule %s: invalid exclude pattern: %w", b.name, err)
		}

		rules = append(rules, m.Rule{
			Name:        b.name,
			Description: b.description,
			Exclude:     compiled,
		})
	}

	return rules, nil
}
