package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered rules",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.List(context.Background())
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
