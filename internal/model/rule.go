package model

import "regexp"

// Rule is a named source transformation plus metadata. Name doubles as
// the identifier used to resolve the concrete transformation from the
// registry. Rules are assembled once before processing starts and are
// read-only afterwards.
type Rule struct {
	// Name is the stable registry identifier for the transformation.
	Name string
	// Description is the human-readable definition shown in reports.
	Description string
	// Exclude holds compiled path patterns; a file matching any of
	// them is skipped silently for this rule.
	Exclude []*regexp.Regexp
}

// Excluded reports whether the rule must be skipped for the given file.
func (r Rule) Excluded(path Path) bool {
	for _, pattern := range r.Exclude {
		if pattern.MatchString(string(path)) {
			return true
		}
	}

	return false
}

// CompileExcludes compiles exclusion patterns, returning an error for
// the first pattern that is not a valid regular expression.
func CompileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}
