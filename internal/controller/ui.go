// Package controller provides output adapters for displaying rule results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "refract.dev/pkg/refract/internal/model"
)

// UI defines the interface for presenting rules and results.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	// DisplayRules renders the registered rules.
	DisplayRules(ctx context.Context, rules []m.Rule) error
	// DisplayResults renders collected results after a check run.
	DisplayResults(ctx context.Context, results []m.RuleResults) error
	// DisplayFileError reports a file that was rejected before any rule ran.
	DisplayFileError(ctx context.Context, path m.Path, err error)
	// Browse opens an interactive view over saved results.
	Browse(ctx context.Context, results []m.RuleResults) error
}

// NewUI selects the UI implementation: interactive TUI browsing on a
// terminal, plain output otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	simple := NewSimpleUI(cmd)
	if !tty {
		return simple
	}

	return &ttyUI{SimpleUI: simple}
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ttyUI behaves like SimpleUI except that Browse opens the TUI.
type ttyUI struct {
	*SimpleUI
}

func (t *ttyUI) Browse(ctx context.Context, results []m.RuleResults) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return runBrowser(results)
}
