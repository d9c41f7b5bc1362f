package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/Invoker2025/lotofacil-api/internal/cache"
	"github.com/Invoker2025/lotofacil-api/internal/collector"
	"github.com/Invoker2025/lotofacil-api/internal/config"
	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/resolver"
	"github.com/Invoker2025/lotofacil-api/internal/simulation"
	"github.com/Invoker2025/lotofacil-api/internal/source"
	"github.com/Invoker2025/lotofacil-api/internal/suggestion"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// core bundles the wired components every command works with.
type core struct {
	config    *config.Config
	resolver  *resolver.Resolver
	collector *collector.Collector
	builder   *suggestion.Builder
	simulator *simulation.Simulator
}

func buildCore(cfg *config.Config) *core {
	timeout := time.Duration(cfg.Sources.HTTPTimeoutSec) * time.Second
	backoff := time.Duration(cfg.Sources.BackoffMs) * time.Millisecond

	primary := source.NewCaixaClient(source.CaixaOptions{
		Hosts:   cfg.Sources.CaixaHosts,
		Timeout: timeout,
		Backoff: backoff,
	})
	mirror := source.NewMirrorClient(source.MirrorOptions{
		LatestURL:  cfg.Sources.MirrorLatestURL,
		ContestURL: cfg.Sources.MirrorContestURL,
		Timeout:    timeout,
	})
	scrape := source.NewScrapeClient(source.ScrapeOptions{
		LatestURL:  cfg.Sources.ScrapeLatestURL,
		ContestURL: cfg.Sources.ScrapeContestURL,
		Timeout:    timeout,
	})

	res := resolver.New(resolver.Options{
		Tiers: resolver.TierOrder(primary, mirror, scrape, cfg.Sources.PreferMirror),
		Cache: cache.NewStore[draw.Draw](time.Duration(cfg.Cache.DrawTTLSec) * time.Second),
	})
	col := collector.New(res)
	builder := suggestion.NewBuilder(suggestion.Config{
		TrendWindow:     cfg.Suggestion.TrendWindow,
		HotFraction:     cfg.Suggestion.HotFraction,
		ColdFraction:    cfg.Suggestion.ColdFraction,
		SumMin:          cfg.Suggestion.SumMin,
		SumMax:          cfg.Suggestion.SumMax,
		RepeatThreshold: cfg.Suggestion.RepeatThreshold,
	})
	sim := simulation.New(simulation.Options{
		Resolver: res,
		Builder:  builder,
		MaxFetch: cfg.Collector.MaxFetch,
	})

	return &core{
		config:    cfg,
		resolver:  res,
		collector: col,
		builder:   builder,
		simulator: sim,
	}
}

var (
	evenBall = color.New(color.FgGreen, color.Bold)
	oddBall  = color.New(color.FgRed, color.Bold)
)

func printDraw(d draw.Draw) {
	fmt.Printf("contest %d", d.Contest)
	if d.Date != "" {
		fmt.Printf("  %s", d.Date)
	}
	fmt.Printf("  [%s]  ", d.Source)
	printNumbers(d.Numbers)
	fmt.Printf("  (%d-%d)\n", d.EvenCount, d.OddCount)
}

func printNumbers(numbers []int) {
	for i, n := range numbers {
		if i > 0 {
			fmt.Print(" ")
		}
		ball := oddBall
		if n%2 == 0 {
			ball = evenBall
		}
		ball.Printf("%02d", n)
	}
}
