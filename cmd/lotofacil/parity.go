package main

import (
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Invoker2025/lotofacil-api/internal/collector"
	"github.com/Invoker2025/lotofacil-api/internal/suggestion"
)

// Window is a date-window flag value: "1m".."12m", "1y", or "all".
type Window string

var windowFlagPattern = regexp.MustCompile(`^(\d{1,2}m|1y|all)$`)

func (w *Window) Set(val string) error {
	if !windowFlagPattern.MatchString(val) {
		return fmt.Errorf(`invalid window %q: want "1m".."12m", "1y", or "all"`, val)
	}
	*w = Window(val)
	return nil
}

func (w Window) String() string {
	return string(w)
}

func (w *Window) Type() string {
	return "window"
}

var _ pflag.Value = (*Window)(nil)

func newParityCommand() *cobra.Command {
	var (
		window = Window("3m")
		even   int
		odd    int
	)

	command := &cobra.Command{
		Use:   "parity",
		Short: "Suggest a parity-balanced combination from a date window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig > %w", err)
			}
			c := buildCore(cfg)

			start, end := collector.WindowRange(string(window), time.Now().UTC())
			draws := c.collector.ByDate(cmd.Context(), start, end, cfg.Collector.MaxFetch)
			if len(draws) < suggestion.MinDrawsRequired {
				return fmt.Errorf("only %d draws in window %q, need at least %d",
					len(draws), window, suggestion.MinDrawsRequired)
			}

			sugg := c.builder.Build(draws, even, odd)
			fmt.Printf("window %s: %d draws considered\n", window, len(draws))
			fmt.Printf("pattern %s  ", sugg.Pattern)
			printNumbers(sugg.Combo)
			fmt.Println()
			fmt.Printf("valid=%t (sum_ok=%t repeat_ok=%t)\n",
				sugg.Valid, sugg.Rules.SumOK, sugg.Rules.RepeatOK)
			return nil
		},
	}
	command.Flags().Var(&window, "window", `date window: "1m".."12m", "1y", or "all"`)
	command.Flags().IntVar(&even, "even", suggestion.DefaultEvenNeeded, "even numbers wanted")
	command.Flags().IntVar(&odd, "odd", suggestion.DefaultOddNeeded, "odd numbers wanted")
	return command
}
