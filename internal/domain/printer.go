package domain

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/printer"
	"go/token"

	"refract.dev/pkg/refract/internal/adapter"
	m "refract.dev/pkg/refract/internal/model"
)

// Printer reconstructs text from a working tree. Declarations that are
// unchanged relative to the reference tree are emitted verbatim from the
// paired token stream, so untouched regions stay byte-identical to the
// original source. Changed or newly-introduced declarations are emitted
// with default formatting.
type Printer interface {
	Print(working, reference *adapter.ParsedFile, stream *adapter.TokenStream) (string, error)
}

type fidelityPrinter struct{}

// NewPrinter returns the fidelity-preserving printer.
func NewPrinter() Printer {
	return fidelityPrinter{}
}

// canonCfg renders nodes in a canonical form, both for change detection
// and for emitting changed declarations.
var canonCfg = printer.Config{Mode: printer.TabIndent, Tabwidth: 8}

func (p fidelityPrinter) Print(working, reference *adapter.ParsedFile, stream *adapter.TokenStream) (string, error) {
	if err := checkPairing(reference, stream); err != nil {
		return "", &m.PrintError{Path: pathOf(reference), Err: err}
	}

	if working == nil || working.File == nil {
		return "", &m.PrintError{Path: reference.Path, Err: fmt.Errorf("missing working tree")}
	}

	out, err := p.splice(working, reference, stream)
	if err != nil {
		return "", &m.PrintError{Path: reference.Path, Err: err}
	}

	return out, nil
}

// splice walks the working declarations in order, matching each against
// the remaining reference declarations by canonical rendering. Matches
// are copied from the token stream; everything else is pretty-printed.
func (p fidelityPrinter) splice(working, reference *adapter.ParsedFile, stream *adapter.TokenStream) (string, error) {
	refDecls := reference.File.Decls

	refCanon := make([]string, len(refDecls))

	for i, decl := range refDecls {
		canon, err := renderNode(reference.FileSet, decl)
		if err != nil {
			return "", fmt.Errorf("render reference declaration: %w", err)
		}

		refCanon[i] = canon
	}

	var out bytes.Buffer

	lastOff := 0
	ri := 0

	for _, decl := range working.File.Decls {
		canon, err := renderNode(working.FileSet, decl)
		if err != nil {
			return "", fmt.Errorf("render working declaration: %w", err)
		}

		match := -1

		for k := ri; k < len(refDecls); k++ {
			if refCanon[k] == canon {
				match = k
				break
			}
		}

		switch {
		case match >= 0:
			// Reference decls skipped over were removed by the rule.
			for k := ri; k < match; k++ {
				lastOff, err = dropDecl(&out, reference, stream, refDecls[k], lastOff)
				if err != nil {
					return "", err
				}
			}

			end := reference.Offset(refDecls[match].End())

			seg, err := stream.Slice(lastOff, end)
			if err != nil {
				return "", err
			}

			out.Write(seg)

			lastOff = end
			ri = match + 1

		case ri < len(refDecls) && decl.Pos().IsValid() && decl.Pos() == refDecls[ri].Pos():
			// Same position, different rendering: the rule modified this
			// declaration in place. Keep the leading trivia (including any
			// doc comment) and reprint the declaration itself.
			start := reference.Offset(refDecls[ri].Pos())

			gap, err := stream.Slice(lastOff, start)
			if err != nil {
				return "", err
			}

			out.Write(gap)

			printed, err := renderDecl(working, decl)
			if err != nil {
				return "", fmt.Errorf("render modified declaration: %w", err)
			}

			out.WriteString(printed)

			lastOff = reference.Offset(refDecls[ri].End())
			ri++

		default:
			// Newly-introduced declaration with no reference counterpart.
			printed, err := renderDecl(working, decl)
			if err != nil {
				return "", fmt.Errorf("render inserted declaration: %w", err)
			}

			out.WriteString("\n")
			out.WriteString(printed)
			out.WriteString("\n")
		}
	}

	// Reference decls left unmatched were removed.
	for k := ri; k < len(refDecls); k++ {
		var err error

		lastOff, err = dropDecl(&out, reference, stream, refDecls[k], lastOff)
		if err != nil {
			return "", err
		}
	}

	tail, err := stream.Slice(lastOff, stream.Len())
	if err != nil {
		return "", err
	}

	out.Write(tail)

	return out.String(), nil
}

// dropDecl emits the trivia preceding a removed declaration and skips
// the declaration itself along with its doc comment.
func dropDecl(out *bytes.Buffer, reference *adapter.ParsedFile, stream *adapter.TokenStream, decl ast.Decl, lastOff int) (int, error) {
	start := reference.Offset(declStart(decl))
	if start < lastOff {
		start = lastOff
	}

	gap, err := stream.Slice(lastOff, start)
	if err != nil {
		return 0, err
	}

	out.Write(gap)

	return reference.Offset(decl.End()), nil
}

// declStart returns the start of a declaration including its doc
// comment when present.
func declStart(decl ast.Decl) token.Pos {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Doc != nil {
			return d.Doc.Pos()
		}
	case *ast.GenDecl:
		if d.Doc != nil {
			return d.Doc.Pos()
		}
	}

	return decl.Pos()
}

// renderNode prints a node in canonical form without comments.
func renderNode(fset *token.FileSet, node ast.Node) (string, error) {
	var buf bytes.Buffer
	if err := canonCfg.Fprint(&buf, fset, node); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderDecl prints a declaration with the comment groups that live
// inside it, so rewritten functions keep their interior comments. The
// doc comment is stripped: it sits in the leading trivia the splice
// already emitted verbatim.
func renderDecl(parsed *adapter.ParsedFile, decl ast.Decl) (string, error) {
	decl = withoutDoc(decl)

	var node any = decl

	if comments := commentsWithin(parsed.File, decl); len(comments) > 0 {
		node = &printer.CommentedNode{Node: decl, Comments: comments}
	}

	var buf bytes.Buffer
	if err := canonCfg.Fprint(&buf, parsed.FileSet, node); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// withoutDoc returns a shallow copy of the declaration with its doc
// comment detached.
func withoutDoc(decl ast.Decl) ast.Decl {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Doc != nil {
			clone := *d
			clone.Doc = nil

			return &clone
		}
	case *ast.GenDecl:
		if d.Doc != nil {
			clone := *d
			clone.Doc = nil

			return &clone
		}
	}

	return decl
}

func commentsWithin(file *ast.File, decl ast.Decl) []*ast.CommentGroup {
	var groups []*ast.CommentGroup

	for _, group := range file.Comments {
		if group.Pos() > decl.Pos() && group.End() < decl.End() {
			groups = append(groups, group)
		}
	}

	return groups
}

// checkPairing verifies the token stream belongs to the exact parse
// that produced the reference tree.
func checkPairing(reference *adapter.ParsedFile, stream *adapter.TokenStream) error {
	if reference == nil || reference.File == nil || reference.FileSet == nil {
		return fmt.Errorf("missing reference tree")
	}

	if stream == nil {
		return fmt.Errorf("missing token stream")
	}

	tf := reference.FileSet.File(reference.File.Pos())
	if tf == nil || tf.Size() != stream.Len() {
		return fmt.Errorf("token stream does not pair with reference tree")
	}

	return nil
}

func pathOf(parsed *adapter.ParsedFile) m.Path {
	if parsed == nil {
		return ""
	}

	return parsed.Path
}
