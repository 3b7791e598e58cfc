package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var starRemove bool

var starCmd = &cobra.Command{
	Use:   "star <slug>",
	Short: "Star or unstar a cached problem",
	Long: `Mark a problem as starred in the local cache. Stars are local only and
survive cache refreshes.

Examples:
  ojcli star two-sum
  ojcli star two-sum --remove`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]
		if err := theApp.problems.Star(cmd.Context(), slug, !starRemove); err != nil {
			return err
		}
		if starRemove {
			fmt.Fprintf(cmd.OutOrStdout(), "unstarred %s\n", slug)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "starred %s\n", slug)
		}
		return nil
	},
}

func init() {
	starCmd.Flags().BoolVar(&starRemove, "remove", false, "remove the star")
	rootCmd.AddCommand(starCmd)
}
