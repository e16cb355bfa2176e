package adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	m "refract.dev/pkg/refract/internal/model"
)

// resultsFileName is the file written under the output directory.
const resultsFileName = "results.yaml"

// ResultStore persists collected rule results so they can be browsed
// later with the view command.
type ResultStore interface {
	SaveResults(dir m.Path, results []m.RuleResults) error
	LoadResults(dir m.Path) ([]m.RuleResults, error)
}

type yamlResultStore struct {
	fs SourceFSAdapter
}

// NewResultStore creates a YAML-backed ResultStore over the provided
// filesystem adapter.
func NewResultStore(fs SourceFSAdapter) ResultStore {
	return &yamlResultStore{fs: fs}
}

// SaveResults writes the per-rule results to dir/results.yaml, creating
// the directory when needed.
func (s *yamlResultStore) SaveResults(dir m.Path, results []m.RuleResults) error {
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create results dir %s: %w", dir, err)
	}

	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	target := s.fs.JoinPath(string(dir), resultsFileName)
	if err := s.fs.WriteFile(target, data, 0o600); err != nil {
		return fmt.Errorf("write results %s: %w", target, err)
	}

	return nil
}

// LoadResults reads previously saved results from dir/results.yaml.
func (s *yamlResultStore) LoadResults(dir m.Path) ([]m.RuleResults, error) {
	target := s.fs.JoinPath(string(dir), resultsFileName)

	data, err := s.fs.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", target, err)
	}

	var results []m.RuleResults
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode results %s: %w", target, err)
	}

	return results, nil
}
