package model

// EntryKind distinguishes change records from error records.
type EntryKind string

const (
	// EntryChange records a non-empty diff produced by a rule.
	EntryChange EntryKind = "change"
	// EntryError records a rule-scoped failure (parse, transform, print).
	EntryError EntryKind = "error"
)

// ResultEntry is the recorded outcome of applying one rule to one file.
// Change and error entries share the same storage shape so downstream
// reporting can treat them uniformly; they differ only by content.
type ResultEntry struct {
	Kind    EntryKind `yaml:"kind"`
	File    Path      `yaml:"file"`
	Diff    string    `yaml:"diff,omitempty"`
	Message string    `yaml:"message"`
}

// RuleResults pairs a rule with its accumulated entries, ordered by
// file-processing order.
type RuleResults struct {
	Rule    string        `yaml:"rule"`
	Summary string        `yaml:"summary"`
	Entries []ResultEntry `yaml:"entries,omitempty"`
}

// ResultSet collects entries per rule, append-only, preserving rule
// registration order regardless of which rule produced entries first.
type ResultSet struct {
	order  []string
	byRule map[string]*RuleResults
}

// NewResultSet prepares an empty result set for the given rules.
func NewResultSet(rules []Rule) *ResultSet {
	set := &ResultSet{byRule: make(map[string]*RuleResults, len(rules))}

	for _, rule := range rules {
		set.order = append(set.order, rule.Name)
		set.byRule[rule.Name] = &RuleResults{Rule: rule.Name, Summary: rule.Description}
	}

	return set
}

// Append attaches an entry to the named rule. Entries for rules the set
// was not prepared for are dropped; the pipeline only appends for rules
// it was handed, so this is a guard, not a code path.
func (s *ResultSet) Append(rule string, entry ResultEntry) {
	results, ok := s.byRule[rule]
	if !ok {
		return
	}

	results.Entries = append(results.Entries, entry)
}

// ForRule returns the entries accumulated for the named rule.
func (s *ResultSet) ForRule(rule string) []ResultEntry {
	results, ok := s.byRule[rule]
	if !ok {
		return nil
	}

	return results.Entries
}

// All returns the per-rule results in rule registration order.
func (s *ResultSet) All() []RuleResults {
	all := make([]RuleResults, 0, len(s.order))
	for _, name := range s.order {
		all = append(all, *s.byRule[name])
	}

	return all
}

// Changes counts change entries across all rules.
func (s *ResultSet) Changes() int {
	return s.count(EntryChange)
}

// Errors counts error entries across all rules.
func (s *ResultSet) Errors() int {
	return s.count(EntryError)
}

func (s *ResultSet) count(kind EntryKind) int {
	total := 0

	for _, name := range s.order {
		for _, entry := range s.byRule[name].Entries {
			if entry.Kind == kind {
				total++
			}
		}
	}

	return total
}
