// Package cmd provides the CLI commands for ojcli.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ojcli/internal/adapter/driven/leetcode"
	"github.com/ericfisherdev/ojcli/internal/adapter/driven/sessionfile"
	sqliteadapter "github.com/ericfisherdev/ojcli/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/ojcli/internal/application"
	"github.com/ericfisherdev/ojcli/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// app holds the wired services shared by all subcommands. It is built once in
// the root PersistentPreRunE and torn down in PersistentPostRunE.
type app struct {
	cfg       *config.Config
	db        *sqliteadapter.DB
	problems  *application.ProblemService
	submits   *application.SubmitService
	auth      *application.AuthService
	workspace *application.Workspace
	parser    *leetcode.Parser
	store     *sqliteadapter.ProblemRepo
}

var theApp *app

var rootCmd = &cobra.Command{
	Use:   "ojcli",
	Short: "ojcli - offline-friendly client for the online judge",
	Long: `ojcli fetches coding problems from the online judge, caches them in a
local SQLite database and keeps working from the cache when the network is
unavailable.

Quick start:
  1. ojcli login
  2. ojcli list --sync
  3. ojcli show two-sum
  4. ojcli edit two-sum
  5. ojcli submit two-sum 1.two-sum.go

Configuration:
  Settings are read from ~/.ojcli/config.toml and can be overridden with
  OJCLI_* environment variables (OJCLI_BASE_URL, OJCLI_DB_PATH,
  OJCLI_SESSION_PATH, OJCLI_CODE_DIR, OJCLI_TIMEOUT).
  Stored credentials are encrypted with a key derived from OJCLI_SECRET_KEY.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		a, err := buildApp(cfgFile)
		if err != nil {
			return err
		}
		theApp = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if theApp == nil {
			return nil
		}
		return theApp.db.Close()
	},
}

// Execute runs the root command under a signal-cancelled context, so a
// Ctrl-C during a network call or verdict poll unwinds cleanly.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.ojcli/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func buildApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	db, err := sqliteadapter.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		db.Close()
		return nil, err
	}

	problemStore := sqliteadapter.NewProblemRepo(db)
	credStore := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
	sessionStore := sessionfile.NewStore(cfg.SessionPath)

	client := leetcode.NewClient(credStore, sessionStore, leetcode.Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		Categories: cfg.Categories,
	})
	parser := leetcode.NewParser()

	workspace := application.NewWorkspace(application.WorkspaceConfig{
		Dir:          cfg.CodeDir,
		Lang:         cfg.Code.Lang,
		Editor:       cfg.Code.Editor,
		EditorArgs:   cfg.Code.EditorArgs,
		EditorEnvs:   cfg.Code.EditorEnvs,
		InjectBefore: cfg.Code.InjectBefore,
		InjectAfter:  cfg.Code.InjectAfter,
		CodeMarkers:  cfg.Code.CodeMarkers,
		WriteTests:   cfg.Code.WriteTests,
	}, parser, problemStore)

	return &app{
		cfg:       cfg,
		db:        db,
		problems:  application.NewProblemService(client, parser, problemStore),
		submits:   application.NewSubmitService(client, problemStore, 0),
		auth:      application.NewAuthService(credStore, client, "leetcode"),
		workspace: workspace,
		parser:    parser,
		store:     problemStore,
	}, nil
}
