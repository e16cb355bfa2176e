package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"refract.dev/pkg/refract/internal/domain"
	m "refract.dev/pkg/refract/internal/model"
)

// ErrChangesFound signals a non-zero exit when rules produced diffs.
var ErrChangesFound = errors.New("changes found")

var checkParallelFlag int

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Preview the changes each rule would make",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			results, err := workflow.Check(context.Background(), domain.CheckArgs{
				Paths:    parsePaths(args),
				Excludes: ruleExcludes(),
				Output:   m.Path(viper.GetString(outputFlagName)),
				Threads:  viper.GetInt(parallelConfigKey),
			})
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}

			if results.Changes() > 0 {
				return ErrChangesFound
			}

			return nil
		},
	}

	configureCheckFlags(cmd)

	return cmd
}

func configureCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&checkParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files processed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
