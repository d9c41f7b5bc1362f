package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Invoker2025/lotofacil-api/internal/stats"
)

func newStatsCommand() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "stats",
		Short: "Frequency table and parity summary over the last N draws",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig > %w", err)
			}
			c := buildCore(cfg)

			draws := c.collector.LastN(cmd.Context(), limit)
			if len(draws) == 0 {
				return fmt.Errorf("no draws could be collected")
			}

			fmt.Printf("considered draws: %d\n\n", len(draws))
			for _, f := range stats.Frequencies(draws) {
				fmt.Printf("%02d  count=%-3d %5.1f%%\n", f.Number, f.Count, f.Pct)
			}

			summary := stats.Summarize(draws)
			fmt.Printf("\nparity histogram: 7-8=%d 8-7=%d outros=%d (avg %.1f-%.1f)\n",
				summary.Histogram["7-8"], summary.Histogram["8-7"], summary.Histogram["outros"],
				summary.AvgEven, summary.AvgOdd)

			trend := stats.ClassifyTrend(draws, cfg.Suggestion.TrendWindow)
			fmt.Printf("hot:  %v\nwarm: %v\ncold: %v\n", trend.Hot, trend.Warm, trend.Cold)
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 60, "how many recent draws to consider")
	return command
}
