package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Invoker2025/lotofacil-api/internal/cache"
	"github.com/Invoker2025/lotofacil-api/internal/collector"
	"github.com/Invoker2025/lotofacil-api/internal/config"
	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/resolver"
	"github.com/Invoker2025/lotofacil-api/internal/server"
	"github.com/Invoker2025/lotofacil-api/internal/simulation"
	"github.com/Invoker2025/lotofacil-api/internal/source"
	"github.com/Invoker2025/lotofacil-api/internal/suggestion"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

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
	simulator := simulation.New(simulation.Options{
		Resolver: res,
		Builder:  builder,
		MaxFetch: cfg.Collector.MaxFetch,
	})

	handler := server.NewHandler(server.Options{
		Resolver:     res,
		Collector:    col,
		Builder:      builder,
		Backtester:   simulator,
		MaxFetch:     cfg.Collector.MaxFetch,
		AggregateTTL: time.Duration(cfg.Cache.AggregateTTLSec) * time.Second,
	})

	mux := http.NewServeMux()
	handler.Register(mux)

	slog.Info("starting server", "addr", cfg.Server.Addr)
	return http.ListenAndServe(cfg.Server.Addr, corsMiddleware(h2c.NewHandler(mux, &http2.Server{})))
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("LOTOFACIL_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
