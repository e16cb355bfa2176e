package adapter

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	m "refract.dev/pkg/refract/internal/model"
)

// Token is a single lexical unit from the original source, recorded by
// byte offset so text can be reproduced exactly.
type Token struct {
	Offset int
	Tok    token.Token
	Lit    string
}

// TokenStream pairs the raw source bytes with the lexical scan of the
// text that produced a reference tree. A stream is only valid against
// the exact parse it was created with; cloned trees do not carry one.
type TokenStream struct {
	src  []byte
	toks []Token
}

// Bytes returns the raw source the stream was scanned from.
func (ts *TokenStream) Bytes() []byte { return ts.src }

// Tokens returns the scanned tokens in source order.
func (ts *TokenStream) Tokens() []Token { return ts.toks }

// Len returns the source length in bytes.
func (ts *TokenStream) Len() int { return len(ts.src) }

// Slice returns the raw bytes between two offsets, validating that both
// fall inside the scanned source.
func (ts *TokenStream) Slice(from, to int) ([]byte, error) {
	if from < 0 || to < from || to > len(ts.src) {
		return nil, fmt.Errorf("token stream slice [%d:%d) outside source of %d bytes", from, to, len(ts.src))
	}

	return ts.src[from:to], nil
}

// ParsedFile bundles a syntax tree with the FileSet it was parsed
// against. Reference trees additionally carry the paired TokenStream;
// working copies leave it nil so a stream can never be reused against
// a different parse.
type ParsedFile struct {
	Path    m.Path
	FileSet *token.FileSet
	File    *ast.File
	Tokens  *TokenStream
}

// Offset maps a position from this file's FileSet to a byte offset.
func (p *ParsedFile) Offset(pos token.Pos) int {
	return p.FileSet.Position(pos).Offset
}

// GoFileAdapter encapsulates Go parsing so the domain layer can focus
// on rule application while delegating compilation details to an
// infrastructure component.
type GoFileAdapter interface {
	// Parse builds a reference tree plus its paired token stream.
	Parse(path m.Path, src []byte) (*ParsedFile, error)

	// Clone produces a working copy of a reference tree: a deep,
	// mutation-independent duplicate sharing no node state.
	Clone(parsed *ParsedFile) (*ParsedFile, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by
// go/parser and go/scanner.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds the syntax tree and scans the same bytes into the paired
// token stream. Parse failures surface as a model.ParseError.
func (a *LocalGoFileAdapter) Parse(path m.Path, src []byte) (*ParsedFile, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, string(path), src, parser.ParseComments)
	if err != nil {
		return nil, &m.ParseError{Path: path, Err: err}
	}

	stream, err := scanTokens(path, src)
	if err != nil {
		return nil, &m.ParseError{Path: path, Err: err}
	}

	return &ParsedFile{
		Path:    path,
		FileSet: fset,
		File:    file,
		Tokens:  stream,
	}, nil
}

// Clone re-parses the reference tree's original bytes. A fresh parse of
// identical text yields a structurally identical tree with no shared
// node state, and keeps byte offsets aligned with the reference stream.
func (a *LocalGoFileAdapter) Clone(parsed *ParsedFile) (*ParsedFile, error) {
	if parsed == nil || parsed.Tokens == nil {
		return nil, fmt.Errorf("clone requires a reference tree with its token stream")
	}

	working, err := a.Parse(parsed.Path, parsed.Tokens.Bytes())
	if err != nil {
		return nil, err
	}

	// Working copies never carry the stream; it stays paired with the
	// reference tree only.
	working.Tokens = nil

	return working, nil
}

// scanTokens runs a full lexical scan, keeping comment trivia.
func scanTokens(path m.Path, src []byte) (*TokenStream, error) {
	fset := token.NewFileSet()
	tf := fset.AddFile(string(path), -1, len(src))

	var scanErr error

	var s scanner.Scanner

	s.Init(tf, src, func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%s: %s", pos, msg)
		}
	}, scanner.ScanComments)

	var toks []Token

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		toks = append(toks, Token{Offset: tf.Offset(pos), Tok: tok, Lit: lit})
	}

	if scanErr != nil {
		return nil, scanErr
	}

	return &TokenStream{src: src, toks: toks}, nil
}
