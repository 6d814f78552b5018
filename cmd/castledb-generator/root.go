package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
}

// newRootCmd creates the root command with every subcommand attached.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "castledb-generator",
		Short:        "Generate typed data-access code from CastleDB schemas",
		SilenceUsage: true,

		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details to stderr")

	registerGenCmd(rootCmd)
	registerCheckCmd(rootCmd)
	registerInspectCmd(rootCmd)
	registerInitCmd(rootCmd)
	registerBackendsCmd(rootCmd)

	return rootCmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
