// Package cli defines Cobra command definitions for the atim CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/auth"
	"github.com/atim-dev/atim/internal/config"
	"github.com/atim-dev/atim/internal/history"
	"github.com/atim-dev/atim/internal/log"
	"github.com/atim-dev/atim/internal/tui"
	"github.com/atim-dev/atim/internal/tui/app"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "atim",
	Short: "Dashboard for the Atim development assistant",
	Long: `Atim watches the Nilotic Network codebase, detects issues, opens
fix pull requests, and proposes GitHub issues. This client browses that
work: issues, pull requests, the kanban board, issue proposals, and a
chat with the assistant.

Run without arguments to open the interactive dashboard.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		return tui.Run(app.New(deps))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newDeps builds the shared service bundle from the user's config directory.
// The history cache and event log are best-effort; the client works without
// them.
func newDeps() (tui.Deps, func(), error) {
	dir, err := config.Dir()
	if err != nil {
		return tui.Deps{}, nil, fmt.Errorf("resolving config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return tui.Deps{}, nil, fmt.Errorf("creating config directory: %w", err)
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	events, err := log.NewLogger(dir)
	if err != nil {
		events = nil
	}

	tokens := auth.NewFileTokenStore(dir)
	client := api.NewClient(cfg.APIBaseURL, tokens)
	github := api.NewGitHubClient(cfg.GitHubBaseURL)
	sessions := auth.NewStore(client, tokens, events)

	cache, err := history.NewStore(cfg.HistoryPath(dir))
	if err != nil {
		cache = nil
	}

	deps := tui.Deps{
		Cfg:      cfg,
		API:      client,
		GitHub:   github,
		Sessions: sessions,
		History:  cache,
		Events:   events,
	}
	cleanup := func() {
		if cache != nil {
			_ = cache.Close()
		}
	}
	return deps, cleanup, nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(prsCmd)
	rootCmd.AddCommand(kanbanCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(proposalsCmd)
}
