package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// langExtensions maps the platform's language slugs to file extensions.
var langExtensions = map[string]string{
	"golang":     "go",
	"python3":    "py",
	"python":     "py",
	"java":       "java",
	"cpp":        "cpp",
	"c":          "c",
	"csharp":     "cs",
	"javascript": "js",
	"typescript": "ts",
	"rust":       "rs",
	"kotlin":     "kt",
	"swift":      "swift",
	"ruby":       "rb",
	"scala":      "scala",
	"php":        "php",
}

// langComments maps language slugs to their line-comment prefix, for the
// optional code markers around the starter snippet.
var langComments = map[string]string{
	"golang":     "//",
	"python3":    "#",
	"python":     "#",
	"java":       "//",
	"cpp":        "//",
	"c":          "//",
	"csharp":     "//",
	"javascript": "//",
	"typescript": "//",
	"rust":       "//",
	"kotlin":     "//",
	"swift":      "//",
	"ruby":       "#",
	"scala":      "//",
	"php":        "//",
}

// WorkspaceConfig carries the code-generation and editor settings.
type WorkspaceConfig struct {
	Dir          string
	Lang         string // Platform language slug.
	Editor       string
	EditorArgs   []string
	EditorEnvs   []string // "NAME=value" pairs added to the editor's environment.
	InjectBefore []string // Lines written before the starter snippet.
	InjectAfter  []string // Lines written after the starter snippet.
	CodeMarkers  bool     // Wrap the snippet in "code=start" / "code=end" comment lines.
	WriteTests   bool     // Also write the sample test input next to the code file.
}

// Workspace generates local code files from cached problems and opens them in
// the configured editor.
type Workspace struct {
	cfg    WorkspaceConfig
	parser driven.StatementParser
	store  driven.ProblemStore
}

// NewWorkspace creates a Workspace.
func NewWorkspace(cfg WorkspaceConfig, parser driven.StatementParser, store driven.ProblemStore) *Workspace {
	if cfg.Lang == "" {
		cfg.Lang = "golang"
	}
	if cfg.Editor == "" {
		cfg.Editor = os.Getenv("EDITOR")
	}
	if cfg.Editor == "" {
		cfg.Editor = "vi"
	}
	return &Workspace{cfg: cfg, parser: parser, store: store}
}

// CodePath returns the code file path for a problem in the configured
// language.
func (w *Workspace) CodePath(p *model.Problem) (string, error) {
	ext, ok := langExtensions[w.cfg.Lang]
	if !ok {
		return "", fmt.Errorf("unknown language %q", w.cfg.Lang)
	}
	name := fmt.Sprintf("%d.%s.%s", p.FrontendID, p.Slug, ext)
	return filepath.Join(w.cfg.Dir, name), nil
}

// Generate writes the starter file for a problem if it does not exist yet and
// records the file marker in the cache. It returns the code path. A problem
// with no snippet for the configured language is an error and leaves no
// half-written files behind.
func (w *Workspace) Generate(ctx context.Context, p *model.Problem) (string, error) {
	path, err := w.CodePath(p)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	snippet, err := w.parser.Snippet(p, w.cfg.Lang)
	if err != nil {
		return "", fmt.Errorf("problem %q does not support %q: %w", p.Slug, w.cfg.Lang, err)
	}

	if err := os.MkdirAll(w.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace dir: %w", err)
	}

	comment := langComments[w.cfg.Lang]

	var b strings.Builder
	for _, line := range w.cfg.InjectBefore {
		b.WriteString(line + "\n")
	}
	if w.cfg.CodeMarkers && comment != "" {
		b.WriteString(comment + " ojcli code=start\n")
	}
	b.WriteString(snippet + "\n")
	if w.cfg.CodeMarkers && comment != "" {
		b.WriteString(comment + " ojcli code=end\n")
	}
	for _, line := range w.cfg.InjectAfter {
		b.WriteString(line + "\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write code file: %w", err)
	}

	if w.cfg.WriteTests {
		if err := w.writeTests(p, path); err != nil {
			_ = os.Remove(path)
			return "", err
		}
	}

	if err := w.store.SetHasFile(ctx, p.ID, true); err != nil {
		slog.Warn("record file marker", "slug", p.Slug, "error", err)
	}

	return path, nil
}

// writeTests writes the problem's sample input next to the code file.
func (w *Workspace) writeTests(p *model.Problem, codePath string) error {
	sample, err := w.parser.SampleInput(p)
	if err != nil || sample == "" {
		return nil
	}

	testPath := strings.TrimSuffix(codePath, filepath.Ext(codePath)) + ".tests.dat"
	if err := os.WriteFile(testPath, []byte(sample+"\n"), 0o644); err != nil {
		return fmt.Errorf("write test file: %w", err)
	}
	return nil
}

// Edit generates the starter file when needed and opens it in the configured
// editor, blocking until the editor exits.
func (w *Workspace) Edit(ctx context.Context, p *model.Problem) error {
	path, err := w.Generate(ctx, p)
	if err != nil {
		return err
	}

	args := append(append([]string(nil), w.cfg.EditorArgs...), path)
	cmd := exec.CommandContext(ctx, w.cfg.Editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	for _, env := range w.cfg.EditorEnvs {
		if !strings.Contains(env, "=") {
			return fmt.Errorf("invalid editor environment variable %q", env)
		}
		cmd.Env = append(cmd.Env, env)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %q: %w", w.cfg.Editor, err)
	}
	return nil
}
