package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "refract.dev/pkg/refract/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayRules prints the registered rules as a table.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules []m.Rule) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Rule", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, rule := range rules {
		table.Append([]string{rule.Name, rule.Description})
	}

	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayResults prints each diff and error followed by a summary table.
func (s *SimpleUI) DisplayResults(ctx context.Context, results []m.RuleResults) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, perRule := range results {
		for _, entry := range perRule.Entries {
			switch entry.Kind {
			case m.EntryChange:
				s.printf("rule %s: %s\n%s\n", perRule.Rule, entry.File, entry.Diff)
			case m.EntryError:
				s.printf("rule %s: %s: %s\n", perRule.Rule, entry.File, entry.Message)
			}
		}
	}

	s.printf("\n%s", renderSummaryTable(results))

	return nil
}

// DisplayFileError reports a file rejected before any rule ran.
func (s *SimpleUI) DisplayFileError(ctx context.Context, path m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.printf("skipped %s: %v\n", path, err)
}

// Browse prints stored results; the plain UI has no interactive mode.
func (s *SimpleUI) Browse(ctx context.Context, results []m.RuleResults) error {
	return s.DisplayResults(ctx, results)
}

func renderSummaryTable(results []m.RuleResults) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Rule", "Changes", "Errors"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	totalChanges := 0
	totalErrors := 0

	for _, perRule := range results {
		changes := 0
		errors := 0

		for _, entry := range perRule.Entries {
			switch entry.Kind {
			case m.EntryChange:
				changes++
			case m.EntryError:
				errors++
			}
		}

		totalChanges += changes
		totalErrors += errors

		table.Append([]string{perRule.Rule, fmt.Sprintf("%d", changes), fmt.Sprintf("%d", errors)})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", totalChanges), fmt.Sprintf("%d", totalErrors)})
	table.Render()

	return buf.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
