// Package suggestion derives a parity-balanced 15-number candidate
// combination from recent history. Validation is advisory everywhere: rule
// failures are reported on the Suggestion, never enforced by withholding the
// combo, so every call path gets the same policy.
package suggestion

import (
	"sort"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/stats"
)

// Policy defaults. The sum band brackets the historical mean of valid
// combinations; the repeat threshold caps overlap with the newest draw.
const (
	DefaultEvenNeeded      = 8
	DefaultOddNeeded       = 7
	DefaultSumMin          = 190
	DefaultSumMax          = 210
	DefaultRepeatThreshold = 9
	MinDrawsRequired       = 2
)

// RuleResults carries the per-rule advisory outcomes.
type RuleResults struct {
	SumOK    bool `json:"sum_ok"`
	RepeatOK bool `json:"repeat_ok"`
}

// Suggestion is a candidate combination plus its validation flags.
type Suggestion struct {
	Even    []int       `json:"even"`
	Odd     []int       `json:"odd"`
	Combo   []int       `json:"combo"`
	Pattern string      `json:"pattern"`
	Valid   bool        `json:"valid"`
	Rules   RuleResults `json:"rule_results"`
}

// Builder holds the tunable policy knobs.
type Builder struct {
	window          int
	hotFraction     float64
	coldFraction    float64
	sumMin, sumMax  int
	repeatThreshold int
}

// Config overrides Builder policy. Zero values keep the defaults.
type Config struct {
	TrendWindow     int
	HotFraction     float64
	ColdFraction    float64
	SumMin, SumMax  int
	RepeatThreshold int
}

func NewBuilder(cfg Config) *Builder {
	b := &Builder{
		window:          stats.DefaultTrendWindow,
		hotFraction:     stats.DefaultHotThreshold,
		coldFraction:    stats.DefaultColdFraction,
		sumMin:          DefaultSumMin,
		sumMax:          DefaultSumMax,
		repeatThreshold: DefaultRepeatThreshold,
	}
	if cfg.TrendWindow > 0 {
		b.window = cfg.TrendWindow
	}
	if cfg.HotFraction > 0 {
		b.hotFraction = cfg.HotFraction
	}
	if cfg.ColdFraction > 0 {
		b.coldFraction = cfg.ColdFraction
	}
	if cfg.SumMin > 0 {
		b.sumMin = cfg.SumMin
	}
	if cfg.SumMax > 0 {
		b.sumMax = cfg.SumMax
	}
	if cfg.RepeatThreshold > 0 {
		b.repeatThreshold = cfg.RepeatThreshold
	}
	return b
}

// ClampParity normalizes an even/odd split: both clamped into range, and any
// pair not summing to 15 reset to the 8/7 default.
func ClampParity(even, odd int) (int, int) {
	if even < 0 {
		even = 0
	}
	if even > 15 {
		even = 15
	}
	if odd < 0 {
		odd = 0
	}
	if odd > 15-even {
		odd = 15 - even
	}
	if even+odd != 15 {
		return DefaultEvenNeeded, DefaultOddNeeded
	}
	return even, odd
}

// Build produces a suggestion from a most-recent-first draw sequence.
// Cold numbers are excluded from the candidate pool unless that would leave
// fewer than 15 eligible numbers, or too few of either parity to satisfy the
// split, in which case the unrestricted frequency table is used. Fewer than
// MinDrawsRequired draws yields an explicit empty, invalid suggestion.
func (b *Builder) Build(draws []draw.Draw, evenNeeded, oddNeeded int) Suggestion {
	evenNeeded, oddNeeded = ClampParity(evenNeeded, oddNeeded)
	pattern := stats.Pattern(evenNeeded, oddNeeded)

	if len(draws) < MinDrawsRequired {
		return Suggestion{
			Even:    []int{},
			Odd:     []int{},
			Combo:   []int{},
			Pattern: pattern,
		}
	}

	trend := stats.ClassifyTrendWith(draws, b.window, b.hotFraction, b.coldFraction)
	table := stats.Frequencies(draws)

	pool := make([]stats.Frequency, 0, len(table))
	for _, f := range table {
		if trend.Eligible(f.Number) {
			pool = append(pool, f)
		}
	}
	evens := rankParity(pool, 0)
	odds := rankParity(pool, 1)
	if len(pool) < 15 || len(evens) < evenNeeded || len(odds) < oddNeeded {
		// The cold exclusion starved the pool or skewed its parity; fall
		// back to all 25 numbers so the requested split can be met.
		evens = rankParity(table, 0)
		odds = rankParity(table, 1)
	}
	if evenNeeded > len(evens) {
		evenNeeded = len(evens)
	}
	if oddNeeded > len(odds) {
		oddNeeded = len(odds)
	}
	chosenEven := evens[:evenNeeded]
	chosenOdd := odds[:oddNeeded]

	combo := make([]int, 0, len(chosenEven)+len(chosenOdd))
	combo = append(combo, chosenEven...)
	combo = append(combo, chosenOdd...)
	sort.Ints(combo)

	rules := RuleResults{
		SumOK:    b.sumOK(combo),
		RepeatOK: b.repeatOK(combo, draws[0]),
	}
	return Suggestion{
		Even:    chosenEven,
		Odd:     chosenOdd,
		Combo:   combo,
		Pattern: pattern,
		Valid:   rules.SumOK && rules.RepeatOK,
		Rules:   rules,
	}
}

// rankParity returns the numbers of the given parity ordered by descending
// count, lower number first on ties.
func rankParity(pool []stats.Frequency, parity int) []int {
	filtered := make([]stats.Frequency, 0, len(pool))
	for _, f := range pool {
		if f.Number%2 == parity {
			filtered = append(filtered, f)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Count != filtered[j].Count {
			return filtered[i].Count > filtered[j].Count
		}
		return filtered[i].Number < filtered[j].Number
	})
	numbers := make([]int, 0, len(filtered))
	for _, f := range filtered {
		numbers = append(numbers, f.Number)
	}
	return numbers
}

func (b *Builder) sumOK(combo []int) bool {
	sum := 0
	for _, n := range combo {
		sum += n
	}
	return sum >= b.sumMin && sum <= b.sumMax
}

func (b *Builder) repeatOK(combo []int, newest draw.Draw) bool {
	return len(Intersect(combo, newest.Numbers)) <= b.repeatThreshold
}

// Intersect returns the sorted intersection of two number lists.
func Intersect(a, b []int) []int {
	inB := make(map[int]struct{}, len(b))
	for _, n := range b {
		inB[n] = struct{}{}
	}
	var out []int
	for _, n := range a {
		if _, ok := inB[n]; ok {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}
