package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"basegraph.app/releasenotes/internal/console"
	"github.com/spf13/cobra"
)

var Version = "dev"

const usage = `Usage: releasenotes <owner> <repo> <start_date> <end_date> [--editor|--no-editor]

Generate release notes from the issues of a repository closed between two dates.

Arguments:
  owner        Repository owner or group
  repo         Repository name
  start_date   First day of the window (e.g. 2024-01-01)
  end_date     Last day of the window, inclusive (e.g. 2024-01-31)

Options:
  --editor     Run the editorial review pass (default)
  --no-editor  Skip the editorial review pass
  -h, --help   Show this help

Environment:
  GITHUB_TOKEN, OPENAI_API_KEY are required for the default setup.
  RELEASENOTES_OUTPUT=<path>|- skips the filename prompt.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	con := console.Stderr()

	rootCmd := &cobra.Command{
		Use:                "releasenotes <owner> <repo> <start_date> <end_date> [--editor|--no-editor]",
		Short:              "Generate release notes from closed issues",
		Version:            Version,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				cmd.Print(usage)
				return nil
			}
			return run(ctx, args, os.Stdout, con)
		},
	}
	rootCmd.SetOut(os.Stdout)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		con.Error(err)
		stop()
		os.Exit(1)
	}
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			return true
		}
	}
	return false
}
