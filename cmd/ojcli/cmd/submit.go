package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

var submitLang string

// extLanguages maps code file extensions back to the platform's language
// slugs, for inferring --lang from the submitted file.
var extLanguages = map[string]string{
	".go":    "golang",
	".py":    "python3",
	".java":  "java",
	".cpp":   "cpp",
	".c":     "c",
	".cs":    "csharp",
	".js":    "javascript",
	".ts":    "typescript",
	".rs":    "rust",
	".kt":    "kotlin",
	".swift": "swift",
	".rb":    "ruby",
	".scala": "scala",
	".php":   "php",
}

var submitCmd = &cobra.Command{
	Use:   "submit <slug> [file]",
	Short: "Submit a solution and wait for the verdict",
	Long: `Submit a code file for judging, poll until the verdict is final and record
it in the local submission history. Without a file argument the workspace
file for the configured language is submitted.

Examples:
  ojcli submit two-sum
  ojcli submit two-sum solutions/alt.py --lang python3`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitLang, "lang", "l", "", "language slug (default: inferred from the file extension)")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := theApp.problems.Fetch(ctx, args[0], model.UseCacheIfPresent)
	if err != nil {
		return err
	}

	var path string
	if len(args) == 2 {
		path = args[1]
	} else {
		path, err = theApp.workspace.CodePath(p)
		if err != nil {
			return err
		}
	}

	lang := submitLang
	if lang == "" {
		lang = extLanguages[strings.ToLower(filepath.Ext(path))]
	}
	if lang == "" {
		return fmt.Errorf("cannot infer language from %q, pass --lang", path)
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read solution: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("judging..."))
	result, err := theApp.submits.Submit(ctx, p, lang, string(code))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderVerdict(result.Verdict))
	if result.Runtime != "" || result.Memory != "" {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("runtime %s  memory %s", result.Runtime, result.Memory)))
	}
	return nil
}
