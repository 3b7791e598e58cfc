package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

var (
	listSync       bool
	listDifficulty string
	listTag        string
	listCategory   string
	listStatus     string
	listStarred    bool
)

var listCmd = &cobra.Command{
	Use:   "list [keyword]",
	Short: "List cached problems",
	Long: `List problems from the local cache, optionally filtered. The cache is
populated from the judge on first use; pass --sync to refresh it explicitly.

Markers: * starred, ✓ accepted, 🔒 locked, e local file exists.

Examples:
  ojcli list --sync
  ojcli list --difficulty medium --tag array
  ojcli list two`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listSync, "sync", false, "refresh the cache from the judge first")
	listCmd.Flags().StringVarP(&listDifficulty, "difficulty", "d", "", "filter by difficulty (easy|medium|hard)")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "filter by topic tag")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by progress status (ac|notac)")
	listCmd.Flags().BoolVarP(&listStarred, "starred", "s", false, "only starred problems")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if listSync {
		n, err := theApp.problems.Sync(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("synced %d problems", n)))
	}

	filter := driven.ProblemFilter{
		Difficulty: model.Difficulty(listDifficulty),
		Tag:        listTag,
		Category:   listCategory,
		Status:     listStatus,
		Starred:    listStarred,
	}
	if len(args) == 1 {
		filter.Keyword = args[0]
	}

	problems, err := theApp.problems.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no problems match")
		return nil
	}

	for _, p := range problems {
		fmt.Fprintln(cmd.OutOrStdout(), renderProblemLine(p))
	}
	return nil
}
