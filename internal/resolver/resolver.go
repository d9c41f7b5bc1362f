// Package resolver orchestrates the source tiers: cache check first, then
// each tier in priority order with soft-fail fallback, writing successful
// normalizations through the draw cache. Callers always get a well-formed
// result; exhaustion surfaces as a sentinel, never as an error.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Invoker2025/lotofacil-api/internal/cache"
	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/source"
)

const latestKey = "latest"

func contestKey(n int) string {
	return fmt.Sprintf("c:%d", n)
}

// Resolver resolves `latest` and per-contest draws through the ordered tier
// list. The cache is injected at construction and owned by the resolver;
// there is no module-level state.
type Resolver struct {
	tiers  []source.Client
	cache  *cache.Store[draw.Draw]
	logger *slog.Logger
}

// Options configures a Resolver.
type Options struct {
	// Tiers in priority order. Build the slice with TierOrder to honor the
	// prefer-mirror flag.
	Tiers  []source.Client
	Cache  *cache.Store[draw.Draw]
	Logger *slog.Logger
}

func New(opts Options) *Resolver {
	if opts.Cache == nil {
		opts.Cache = cache.NewStore[draw.Draw](cache.DefaultDrawTTL)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Resolver{
		tiers:  opts.Tiers,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

// TierOrder arranges the three tier clients by priority. With preferMirror
// set, the mirror is consulted before the primary API; the scrape tier is
// always last.
func TierOrder(primary, mirror, scrape source.Client, preferMirror bool) []source.Client {
	if preferMirror {
		return []source.Client{mirror, primary, scrape}
	}
	return []source.Client{primary, mirror, scrape}
}

// Latest resolves the newest published draw. When every tier fails it
// returns a zero-contest placeholder rather than an error.
func (r *Resolver) Latest(ctx context.Context) draw.Draw {
	if d, ok := r.cache.Get(latestKey); ok {
		return d
	}
	for _, tier := range r.tiers {
		payload, err := tier.FetchLatest(ctx)
		if err != nil {
			r.logger.Warn("latest fetch failed, falling through",
				"tier", tier.Name(), "kind", source.KindOf(err), "error", err)
			continue
		}
		d, ok := draw.Normalize(payload, tier.Name())
		if !ok {
			r.logger.Warn("latest payload rejected by normalization, falling through",
				"tier", tier.Name(), "contest", payload.ContestNumber())
			continue
		}
		r.cache.Put(latestKey, d)
		return d
	}
	r.logger.Warn("all tiers exhausted resolving latest")
	return draw.Draw{}
}

// Contest resolves one contest by number. ok=false means every tier failed;
// the sentinel is not cached so a later call can still succeed.
func (r *Resolver) Contest(ctx context.Context, n int) (draw.Draw, bool) {
	if n < 1 {
		return draw.Draw{}, false
	}
	key := contestKey(n)
	if d, ok := r.cache.Get(key); ok {
		return d, true
	}
	for _, tier := range r.tiers {
		payload, err := tier.FetchContest(ctx, n)
		if err != nil {
			level := slog.LevelDebug
			if source.KindOf(err) == source.KindTransient {
				level = slog.LevelWarn
			}
			r.logger.Log(ctx, level, "contest fetch failed, falling through",
				"tier", tier.Name(), "contest", n, "kind", source.KindOf(err), "error", err)
			continue
		}
		d, ok := draw.Normalize(payload, tier.Name())
		if !ok || d.Contest != n {
			r.logger.Debug("contest payload rejected by normalization, falling through",
				"tier", tier.Name(), "contest", n)
			continue
		}
		r.cache.Put(key, d)
		return d, true
	}
	return draw.Draw{}, false
}
