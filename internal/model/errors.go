package model

import "fmt"

// The error taxonomy mirrors the pipeline stages. ParseError,
// TransformError and PrintError are rule-scoped: the pipeline recovers
// them at the rule boundary and records an error entry.
// ConfigurationError is fatal for the whole file.

// ConfigurationError reports a file path that could not be resolved to
// a canonical form before processing began.
type ConfigurationError struct {
	Path Path
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: cannot resolve %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ParseError reports malformed source text.
type ParseError struct {
	Path Path
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransformError reports an unresolvable rule identifier or a failure
// raised while mutating the working tree.
type TransformError struct {
	Rule string
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s: %v", e.Rule, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// PrintError reports a failure reconstructing text from the working
// tree, typically an inconsistent tree/token pairing.
type PrintError struct {
	Path Path
	Err  error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print %s: %v", e.Path, e.Err)
}

func (e *PrintError) Unwrap() error { return e.Err }
