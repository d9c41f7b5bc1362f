package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSimulateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <contest>",
		Short: "Backtest the suggestion algorithm against a past contest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contest, err := strconv.Atoi(args[0])
			if err != nil || contest < 1 {
				return fmt.Errorf("contest must be a positive integer")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig > %w", err)
			}
			c := buildCore(cfg)

			result, err := c.simulator.Run(cmd.Context(), contest)
			if err != nil {
				return fmt.Errorf("simulator.Run > %w", err)
			}

			fmt.Printf("contest %d (%s), suggestion built from %d earlier draws\n",
				result.Contest, result.Date, result.SampleSize)
			fmt.Print("suggested: ")
			printNumbers(result.Suggestion.Combo)
			fmt.Println()
			fmt.Print("drawn:     ")
			printNumbers(result.Numbers)
			fmt.Println()
			fmt.Printf("hits: %d %v\n", result.HitCount, result.Hits)
			fmt.Printf("suggestion valid=%t (sum_ok=%t repeat_ok=%t)\n",
				result.Suggestion.Valid, result.Suggestion.Rules.SumOK, result.Suggestion.Rules.RepeatOK)
			return nil
		},
	}
}
