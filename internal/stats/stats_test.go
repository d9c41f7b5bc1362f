package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/testutil"
)

func lowFifteen(t *testing.T, contest int) draw.Draw {
	t.Helper()
	return testutil.NewDraw(t, contest, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15})
}

func TestFrequencies(t *testing.T) {
	t.Run("empty sequence yields a zeroed 25-row table", func(t *testing.T) {
		table := Frequencies(nil)
		require.Len(t, table, 25)
		for i, f := range table {
			assert.Equal(t, i+1, f.Number)
			assert.Equal(t, 0, f.Count)
			assert.Equal(t, 0.0, f.Pct)
		}
	})

	t.Run("counts sum to fifteen per draw", func(t *testing.T) {
		draws := testutil.History(t, 3000, 8, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
		table := Frequencies(draws)

		require.Len(t, table, 25)
		total := 0
		for _, f := range table {
			total += f.Count
		}
		assert.Equal(t, 15*len(draws), total)
	})

	t.Run("identical draws put every drawn number at 100 percent", func(t *testing.T) {
		draws := []draw.Draw{lowFifteen(t, 3000), lowFifteen(t, 2999)}
		table := Frequencies(draws)

		for _, f := range table {
			if f.Number <= 15 {
				assert.Equal(t, 2, f.Count)
				assert.Equal(t, 100.0, f.Pct)
			} else {
				assert.Equal(t, 0, f.Count)
			}
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty sequence", func(t *testing.T) {
		got := Summarize(nil)
		assert.Equal(t, map[string]int{"7-8": 0, "8-7": 0, "outros": 0}, got.Histogram)
		assert.Equal(t, 0.0, got.AvgEven)
		assert.Equal(t, 0.0, got.AvgOdd)
	})

	t.Run("buckets splits and averages parity", func(t *testing.T) {
		newestDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		draws := []draw.Draw{
			testutil.NewDraw(t, 3000, newestDate, testutil.NumbersWithParity(t, 8)),
			testutil.NewDraw(t, 2999, newestDate, testutil.NumbersWithParity(t, 7)),
			testutil.NewDraw(t, 2998, newestDate, testutil.NumbersWithParity(t, 7)),
			testutil.NewDraw(t, 2997, newestDate, testutil.NumbersWithParity(t, 5)),
		}

		got := Summarize(draws)
		assert.Equal(t, map[string]int{"7-8": 2, "8-7": 1, "outros": 1}, got.Histogram)
		assert.Equal(t, 6.8, got.AvgEven) // (8+7+7+5)/4 = 6.75 rounded
		assert.Equal(t, 8.3, got.AvgOdd)  // (7+8+8+10)/4 = 8.25 rounded
	})
}

func TestPattern(t *testing.T) {
	assert.Equal(t, "8-7", Pattern(8, 7))
	assert.Equal(t, "7-8", Pattern(7, 8))
}
