package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLatestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the newest published draw",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig > %w", err)
			}
			c := buildCore(cfg)

			latest := c.resolver.Latest(cmd.Context())
			if latest.Contest <= 0 {
				return fmt.Errorf("all sources exhausted, no draw available")
			}
			printDraw(latest)
			return nil
		},
	}
}

func newContestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contest <number>",
		Short: "Show one draw by contest number",
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

			d, ok := c.resolver.Contest(cmd.Context(), contest)
			if !ok {
				return fmt.Errorf("contest %d not found on any source", contest)
			}
			printDraw(d)
			return nil
		},
	}
}
