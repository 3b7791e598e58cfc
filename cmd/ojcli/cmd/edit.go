package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

var editDaily bool

var editCmd = &cobra.Command{
	Use:   "edit [slug]",
	Short: "Generate a starter file and open it in the editor",
	Long: `Generate a code file for a problem from its starter snippet (fetching the
problem first when it is not cached) and open it in the configured editor.
An existing file is opened as-is, never overwritten.

Examples:
  ojcli edit two-sum
  ojcli edit --daily`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().BoolVar(&editDaily, "daily", false, "edit the daily challenge problem")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var p *model.Problem
	var err error
	switch {
	case editDaily:
		p, err = theApp.problems.Daily(ctx, model.UseCacheIfPresent)
	case len(args) == 1:
		p, err = theApp.problems.Fetch(ctx, args[0], model.UseCacheIfPresent)
	default:
		return fmt.Errorf("a problem slug or --daily is required")
	}
	if err != nil {
		return err
	}

	return theApp.workspace.Edit(ctx, p)
}
