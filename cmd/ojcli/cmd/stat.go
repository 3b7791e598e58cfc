package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

var statCmd = &cobra.Command{
	Use:   "stat [slug]",
	Short: "Show progress statistics or a problem's submission history",
	Long: `Without arguments, summarize progress over the cached problem set. With a
slug, list the locally recorded submission history for that problem.

Examples:
  ojcli stat
  ojcli stat two-sum`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStat,
}

func init() {
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return statProblem(cmd, args[0])
	}
	return statOverall(cmd)
}

func statOverall(cmd *cobra.Command) error {
	problems, err := theApp.problems.List(cmd.Context(), driven.ProblemFilter{})
	if err != nil {
		return err
	}

	type bucket struct{ total, solved int }
	buckets := map[model.Difficulty]*bucket{
		model.DifficultyEasy:   {},
		model.DifficultyMedium: {},
		model.DifficultyHard:   {},
	}
	var starred int
	for _, p := range problems {
		b, ok := buckets[p.Difficulty]
		if !ok {
			continue
		}
		b.total++
		if p.Status == "ac" {
			b.solved++
		}
		if p.Starred {
			starred++
		}
	}

	out := cmd.OutOrStdout()
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		b := buckets[d]
		fmt.Fprintf(out, "%-18s %4d / %-4d %s\n", renderDifficulty(d), b.solved, b.total, progressBar(b.solved, b.total))
	}
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d problems cached, %d starred", len(problems), starred)))
	return nil
}

func statProblem(cmd *cobra.Command, slug string) error {
	ctx := cmd.Context()
	p, err := theApp.store.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("problem %q is not cached", slug)
	}

	subs, err := theApp.store.Submissions(ctx, p.ID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no local submissions for %s\n", slug)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("[%d] %s", p.FrontendID, p.Title)))
	for _, s := range subs {
		fmt.Fprintf(out, "%s  %-10s %-22s %s\n",
			s.SubmittedAt.Format("2006-01-02 15:04"),
			s.Language,
			renderVerdict(s.Verdict),
			dimStyle.Render(s.Runtime),
		)
	}
	return nil
}

// progressBar renders a 20-cell solved/total bar.
func progressBar(solved, total int) string {
	const width = 20
	if total == 0 {
		return ""
	}
	filled := solved * width / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return dimStyle.Render(bar)
}
