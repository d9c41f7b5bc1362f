// Package collector builds ordered draw sequences on top of the resolver,
// either by count or by date window. The walk is inherently sequential:
// every stopping decision depends on the previous step's outcome.
package collector

import (
	"context"
	"sort"
	"time"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

//go:generate mockgen -source=collector.go -destination=../mocks/collector/mock_resolver.go -package=mock_collector

// DefaultMaxFetch bounds how many resolution attempts a date-window
// collection may spend, successes and failures both counting.
const DefaultMaxFetch = 400

// DrawResolver is the slice of the resolver the collector needs.
type DrawResolver interface {
	Latest(ctx context.Context) draw.Draw
	Contest(ctx context.Context, n int) (draw.Draw, bool)
}

// Collector walks contests in descending order from the newest one.
type Collector struct {
	resolver DrawResolver
}

func New(resolver DrawResolver) *Collector {
	return &Collector{resolver: resolver}
}

// Walk is a lazy iterator over the descending contest sequence. Each Next
// call costs exactly one resolution attempt, whether or not it succeeds, so
// consumers can bound total upstream work by counting calls.
type Walk struct {
	resolver DrawResolver
	contest  int
}

// StartWalk resolves the newest contest and positions the walk on it.
// A walk starting from a failed `latest` resolution is immediately done.
func (c *Collector) StartWalk(ctx context.Context) *Walk {
	latest := c.resolver.Latest(ctx)
	return &Walk{resolver: c.resolver, contest: latest.Contest}
}

// More reports whether the walk has contests left (it stops at contest 1).
func (w *Walk) More() bool {
	return w.contest >= 1
}

// Next resolves the current contest and steps down. ok=false means that
// contest could not be resolved; the walk continues either way.
func (w *Walk) Next(ctx context.Context) (draw.Draw, bool) {
	if !w.More() {
		return draw.Draw{}, false
	}
	d, ok := w.resolver.Contest(ctx, w.contest)
	w.contest--
	return d, ok
}

// LastN collects the most recent limit draws, most-recent-first. Contests
// that fail to resolve are skipped without counting against limit.
func (c *Collector) LastN(ctx context.Context, limit int) []draw.Draw {
	if limit <= 0 {
		return nil
	}
	results := make([]draw.Draw, 0, limit)
	walk := c.StartWalk(ctx)
	for walk.More() && len(results) < limit {
		if d, ok := walk.Next(ctx); ok {
			results = append(results, d)
		}
	}
	return results
}

// ByDate collects draws dated within [start, end], most-recent-first. Zero
// start or end leaves that side unbounded. The walk spends at most maxFetch
// resolution attempts. Draws with unparsable dates are skipped. Once at
// least one draw has been collected, the first draw dated before start ends
// the walk: contests are walked in decreasing date order, so anything older
// is past the window. Before the first hit the walk keeps going, so a run
// of unparsable or out-of-range dates at the top cannot fake an empty
// window.
func (c *Collector) ByDate(ctx context.Context, start, end time.Time, maxFetch int) []draw.Draw {
	if maxFetch <= 0 {
		maxFetch = DefaultMaxFetch
	}
	var results []draw.Draw
	walk := c.StartWalk(ctx)
	for fetched := 0; walk.More() && fetched < maxFetch; fetched++ {
		d, ok := walk.Next(ctx)
		if !ok {
			continue
		}
		date, ok := d.ParsedDate()
		if !ok {
			continue
		}
		if !start.IsZero() && date.Before(start) {
			if len(results) > 0 {
				break
			}
			continue
		}
		if !end.IsZero() && date.After(end) {
			continue
		}
		results = append(results, d)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Contest > results[j].Contest
	})
	return results
}
