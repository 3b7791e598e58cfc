package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

var (
	showForce bool
	showDaily bool
)

var showCmd = &cobra.Command{
	Use:   "show [slug]",
	Short: "Show a problem's statement",
	Long: `Show a problem, fetching it from the judge on a cache miss and from the
local cache otherwise. When the judge is unreachable a previously cached copy
is shown with a stale marker.

Examples:
  ojcli show two-sum
  ojcli show --daily
  ojcli show two-sum --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showForce, "force", "f", false, "refresh from the judge even when cached")
	showCmd.Flags().BoolVar(&showDaily, "daily", false, "show the daily challenge problem")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	policy := model.UseCacheIfPresent
	if showForce {
		policy = model.ForceRefresh
	}

	var p *model.Problem
	var err error
	switch {
	case showDaily:
		p, err = theApp.problems.Daily(ctx, policy)
	case len(args) == 1:
		p, err = theApp.problems.Fetch(ctx, args[0], policy)
	default:
		return fmt.Errorf("a problem slug or --daily is required")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render(fmt.Sprintf("[%d] %s", p.FrontendID, p.Title)), renderDifficulty(p.Difficulty))
	fmt.Fprintf(out, "%s  acceptance %.1f%%\n", slugStyle.Render(p.Slug), p.Percent)
	if len(p.Tags) > 0 {
		fmt.Fprintln(out, dimStyle.Render("tags: "+strings.Join(p.Tags, ", ")))
	}
	if p.Stale {
		fmt.Fprintln(out, staleStyle.Render("(offline: showing cached copy)"))
	}
	fmt.Fprintln(out)

	text, err := theApp.parser.StatementText(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}
