package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "lotofacil",
		Short: "Resolve, analyze, and backtest Lotofácil draws",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(debugMode)
		},
	}
	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a config file")
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCommand.AddCommand(
		newLatestCommand(),
		newContestCommand(),
		newStatsCommand(),
		newParityCommand(),
		newSimulateCommand(),
		newArchiveCommand(),
	)
	return rootCommand
}

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
