// Package model defines the data structures for rule-based refactoring previews.
package model

// Path represents a file system path.
type Path string

// SourceFile is a source file pinned for the duration of a run: its
// canonical path plus the raw bytes read from disk. The content is
// never written back; every reported change is a diff, not an edit.
type SourceFile struct {
	Path    Path
	Content []byte
}

// Text returns the file content as a string.
func (s SourceFile) Text() string {
	return string(s.Content)
}
