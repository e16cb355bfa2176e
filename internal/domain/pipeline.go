package domain

import (
	"errors"
	"fmt"
	"go/ast"
	"log/slog"

	"refract.dev/pkg/refract/internal/adapter"
	m "refract.dev/pkg/refract/internal/model"
)

// Pipeline drives rule application for one file. Rules run strictly in
// registration order, each against its own working tree, and a failure
// in one rule never aborts the remaining rules or files.
type Pipeline interface {
	ProcessFile(path m.Path, rules []m.Rule, results *m.ResultSet) error
}

type pipeline struct {
	fs       adapter.SourceFSAdapter
	files    adapter.GoFileAdapter
	registry *Registry
	printer  Printer
	differ   Differ
}

// NewPipeline constructs a Pipeline over the provided adapters and
// collaborators. The registry must be fully built before processing
// starts; the pipeline never mutates it.
func NewPipeline(
	fs adapter.SourceFSAdapter,
	files adapter.GoFileAdapter,
	registry *Registry,
	printer Printer,
	differ Differ,
) Pipeline {
	return &pipeline{
		fs:       fs,
		files:    files,
		registry: registry,
		printer:  printer,
		differ:   differ,
	}
}

// ProcessFile applies every non-excluded rule to the file, appending at
// most one entry per rule: a change entry when the rule produced a
// non-empty diff, an error entry when any stage failed. An unresolvable
// path is a configuration error, fatal for this file only.
func (p *pipeline) ProcessFile(path m.Path, rules []m.Rule, results *m.ResultSet) error {
	abs, err := p.fs.AbsPath(path)
	if err != nil {
		return &m.ConfigurationError{Path: path, Err: err}
	}

	content, err := p.fs.ReadFile(abs)
	if err != nil {
		return &m.ConfigurationError{Path: abs, Err: err}
	}

	source := m.SourceFile{Path: abs, Content: content}

	// Parse the reference baseline once per file; each rule works on a
	// fresh deep clone of it. A parse failure is replayed to every
	// non-excluded rule below so each records its own error entry.
	reference, parseErr := p.files.Parse(abs, content)

	for _, rule := range rules {
		if rule.Excluded(abs) {
			slog.Debug("rule excluded for file", "rule", rule.Name, "file", abs)
			continue
		}

		diff, ruleErr := p.runStages(source, rule, reference, parseErr)

		switch {
		case ruleErr != nil:
			slog.Warn("rule failed", "rule", rule.Name, "file", abs, "error", ruleErr)
			results.Append(rule.Name, m.ResultEntry{
				Kind:    m.EntryError,
				File:    abs,
				Message: ruleErr.Error(),
			})
		case diff != "":
			slog.Debug("rule produced change", "rule", rule.Name, "file", abs)
			results.Append(rule.Name, m.ResultEntry{
				Kind:    m.EntryChange,
				File:    abs,
				Diff:    diff,
				Message: rule.Description + "\n\n" + diff,
			})
		}
	}

	return nil
}

// runStages executes clone → transform → print → diff for one rule.
// The returned diff is empty when the rule was a textual no-op.
func (p *pipeline) runStages(source m.SourceFile, rule m.Rule, reference *adapter.ParsedFile, parseErr error) (string, error) {
	if parseErr != nil {
		return "", parseErr
	}

	working, err := p.files.Clone(reference)
	if err != nil {
		return "", &m.ParseError{Path: source.Path, Err: err}
	}

	transformation, err := p.registry.Resolve(rule.Name)
	if err != nil {
		return "", err
	}

	mutated, err := applyTransformation(transformation, rule.Name, working.File)
	if err != nil {
		return "", err
	}

	working.File = mutated

	printed, err := p.printer.Print(working, reference, reference.Tokens)
	if err != nil {
		return "", err
	}

	diff, err := p.differ.Unified(source.Path, source.Text(), printed)
	if err != nil {
		return "", &m.PrintError{Path: source.Path, Err: err}
	}

	return diff, nil
}

// applyTransformation runs one rule's mutation over the working tree,
// converting panics raised during traversal into TransformErrors so a
// misbehaving transformation cannot take down the run.
func applyTransformation(t Transformation, rule string, file *ast.File) (mutated *ast.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			mutated = nil
			err = &m.TransformError{Rule: rule, Err: fmt.Errorf("panic during traversal: %v", r)}
		}
	}()

	mutated, err = t.Apply(file)
	if err != nil {
		return nil, &m.TransformError{Rule: rule, Err: err}
	}

	if mutated == nil {
		return nil, &m.TransformError{Rule: rule, Err: errors.New("transformation returned no tree")}
	}

	return mutated, nil
}
