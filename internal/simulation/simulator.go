// Package simulation backtests the suggestion algorithm: it rebuilds the
// suggestion that would have been proposed before a historical contest,
// using only draws strictly dated earlier, then scores it against the
// contest's actual numbers.
package simulation

import (
	"context"
	"errors"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/suggestion"
)

// Structural errors surfaced to the caller. Per-fetch failures never reach
// here; they are absorbed by the resolver's fallback chain.
var (
	ErrNotFound            = errors.New("contest not found")
	ErrInsufficientHistory = errors.New("insufficient history before contest")
)

const (
	// MinHistory is the smallest past-only subset a backtest accepts.
	MinHistory = 20
	// defaultSampleSize caps how many past draws feed the builder.
	defaultSampleSize = 60
	// defaultMaxFetch bounds resolution attempts while gathering history.
	defaultMaxFetch = 400
)

// DrawResolver is the slice of the resolver the simulator needs.
type DrawResolver interface {
	Contest(ctx context.Context, n int) (draw.Draw, bool)
}

// Result pairs the reconstructed suggestion with the real outcome. Results
// are computed fresh on every call and never cached, so they always reflect
// the current algorithm against the fixed historical record.
type Result struct {
	Contest    int                   `json:"contest"`
	Date       string                `json:"date"`
	Numbers    []int                 `json:"numbers"`
	Suggestion suggestion.Suggestion `json:"suggestion"`
	Hits       []int                 `json:"hits"`
	HitCount   int                   `json:"hit_count"`
	SampleSize int                   `json:"considered_games"`
}

// Simulator reconstructs past suggestions.
type Simulator struct {
	resolver   DrawResolver
	builder    *suggestion.Builder
	sampleSize int
	maxFetch   int
}

// Options configures a Simulator. Zero values take the package defaults.
type Options struct {
	Resolver   DrawResolver
	Builder    *suggestion.Builder
	SampleSize int
	MaxFetch   int
}

func New(opts Options) *Simulator {
	if opts.Builder == nil {
		opts.Builder = suggestion.NewBuilder(suggestion.Config{})
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = defaultSampleSize
	}
	if opts.MaxFetch <= 0 {
		opts.MaxFetch = defaultMaxFetch
	}
	return &Simulator{
		resolver:   opts.Resolver,
		builder:    opts.Builder,
		sampleSize: opts.SampleSize,
		maxFetch:   opts.MaxFetch,
	}
}

// Run backtests one contest with the default parity split. It walks
// contests below the target gathering draws strictly dated before the
// target's date, so the rebuilt suggestion cannot see the outcome or
// anything published alongside it.
func (s *Simulator) Run(ctx context.Context, contest int) (Result, error) {
	target, ok := s.resolver.Contest(ctx, contest)
	if !ok {
		return Result{}, ErrNotFound
	}
	targetDate, ok := target.ParsedDate()
	if !ok {
		// Without a target date there is no strictly-past partition.
		return Result{}, ErrInsufficientHistory
	}

	var past []draw.Draw
	fetched := 0
	for n := contest - 1; n >= 1 && fetched < s.maxFetch && len(past) < s.sampleSize; n-- {
		fetched++
		d, ok := s.resolver.Contest(ctx, n)
		if !ok {
			continue
		}
		date, ok := d.ParsedDate()
		if !ok || !date.Before(targetDate) {
			continue
		}
		past = append(past, d)
	}
	if len(past) < MinHistory {
		return Result{}, ErrInsufficientHistory
	}

	sugg := s.builder.Build(past, suggestion.DefaultEvenNeeded, suggestion.DefaultOddNeeded)
	hits := suggestion.Intersect(sugg.Combo, target.Numbers)
	return Result{
		Contest:    target.Contest,
		Date:       target.Date,
		Numbers:    target.Numbers,
		Suggestion: sugg,
		Hits:       hits,
		HitCount:   len(hits),
		SampleSize: len(past),
	}, nil
}
