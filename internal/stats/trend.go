package stats

import "github.com/Invoker2025/lotofacil-api/internal/draw"

// Trend thresholds: a number is hot when it appears in at least 70% of the
// window's draws and cold when it appears in fewer than 30%. Fixed policy
// constants, tunable via ClassifyTrendWith, not statistically derived.
const (
	DefaultTrendWindow  = 20
	DefaultHotThreshold = 0.7
	DefaultColdFraction = 0.3
)

// Trend assigns every number 1..25 to exactly one bucket. The three sets
// are disjoint and their union is the full pool.
type Trend struct {
	Hot  []int `json:"hot"`
	Warm []int `json:"warm"`
	Cold []int `json:"cold"`
}

// Eligible reports whether n is in the hot or warm set.
func (t Trend) Eligible(n int) bool {
	for _, h := range t.Hot {
		if h == n {
			return true
		}
	}
	for _, w := range t.Warm {
		if w == n {
			return true
		}
	}
	return false
}

// ClassifyTrend classifies with the default thresholds.
func ClassifyTrend(draws []draw.Draw, window int) Trend {
	return ClassifyTrendWith(draws, window, DefaultHotThreshold, DefaultColdFraction)
}

// ClassifyTrendWith takes the window most recent draws (all of them when
// fewer exist; draws are most-recent-first) and buckets each number by its
// occurrence count relative to the subset size. An empty sequence puts the
// whole pool in cold.
func ClassifyTrendWith(draws []draw.Draw, window int, hotFraction, coldFraction float64) Trend {
	if window > len(draws) || window <= 0 {
		window = len(draws)
	}
	subset := draws[:window]

	counts := make(map[int]int, MaxNumber)
	for _, d := range subset {
		for _, n := range d.Numbers {
			counts[n]++
		}
	}

	var trend Trend
	if len(subset) == 0 {
		for n := MinNumber; n <= MaxNumber; n++ {
			trend.Cold = append(trend.Cold, n)
		}
		return trend
	}

	size := float64(len(subset))
	for n := MinNumber; n <= MaxNumber; n++ {
		count := float64(counts[n])
		switch {
		case count >= hotFraction*size:
			trend.Hot = append(trend.Hot, n)
		case count < coldFraction*size:
			trend.Cold = append(trend.Cold, n)
		default:
			trend.Warm = append(trend.Warm, n)
		}
	}
	return trend
}
