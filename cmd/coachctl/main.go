// Command coachctl inspects chunking and drives ingestion and questions
// from the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"salescoach-ai/internal/app"
	"salescoach-ai/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "coachctl",
		Short:         "Sales coach command line tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.AddCommand(chunkCmd())
	cmd.AddCommand(topicsCmd())
	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(askCmd())
	return cmd
}

// openApp loads configuration and connects to the configured backends.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.New(ctx, cfg)
}
