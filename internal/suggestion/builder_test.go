package suggestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/stats"
	"github.com/Invoker2025/lotofacil-api/internal/testutil"
)

func TestClampParity(t *testing.T) {
	tests := []struct {
		name      string
		even, odd int
		wantEven  int
		wantOdd   int
	}{
		{name: "default split passes through", even: 8, odd: 7, wantEven: 8, wantOdd: 7},
		{name: "mirrored split passes through", even: 7, odd: 8, wantEven: 7, wantOdd: 8},
		{name: "extreme valid split passes through", even: 15, odd: 0, wantEven: 15, wantOdd: 0},
		{name: "sum below fifteen resets", even: 7, odd: 7, wantEven: 8, wantOdd: 7},
		{name: "zero split resets", even: 0, odd: 0, wantEven: 8, wantOdd: 7},
		{name: "negative even clamps to zero", even: -3, odd: 20, wantEven: 0, wantOdd: 15},
		{name: "odd clamped to the remainder", even: 10, odd: 9, wantEven: 10, wantOdd: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			even, odd := ClampParity(tt.even, tt.odd)
			assert.Equal(t, tt.wantEven, even)
			assert.Equal(t, tt.wantOdd, odd)
		})
	}
}

func TestBuilder_Build_insufficientHistory(t *testing.T) {
	b := NewBuilder(Config{})
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	for _, draws := range [][]draw.Draw{
		nil,
		{testutil.NewDraw(t, 3000, date, testutil.NumbersWithParity(t, 8))},
	} {
		got := b.Build(draws, 8, 7)
		assert.False(t, got.Valid)
		assert.Empty(t, got.Combo)
		assert.Empty(t, got.Even)
		assert.Empty(t, got.Odd)
		assert.Equal(t, "8-7", got.Pattern)
	}
}

func TestBuilder_Build(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	midBand := []int{7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}

	t.Run("valid suggestion from a mid-band history", func(t *testing.T) {
		// Ten older draws of 7..21 make that band hot; the newest draw
		// shares only nine of those numbers, so the repeat rule holds.
		draws := []draw.Draw{
			testutil.NewDraw(t, 3000, date, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}),
		}
		for i := 1; i <= 10; i++ {
			draws = append(draws, testutil.NewDraw(t, 3000-i, date.AddDate(0, 0, -2*i), midBand))
		}

		got := NewBuilder(Config{}).Build(draws, 7, 8)

		assert.Equal(t, midBand, got.Combo)
		assert.Equal(t, "7-8", got.Pattern)
		assert.True(t, got.Rules.SumOK, "sum 210 sits on the band edge")
		assert.True(t, got.Rules.RepeatOK, "nine shared numbers is the repeat limit")
		assert.True(t, got.Valid)
	})

	t.Run("parity split is honored", func(t *testing.T) {
		draws := []draw.Draw{
			testutil.NewDraw(t, 3000, date, midBand),
			testutil.NewDraw(t, 2999, date.AddDate(0, 0, -2), midBand),
		}

		got := NewBuilder(Config{}).Build(draws, 7, 8)
		require.Len(t, got.Even, 7)
		require.Len(t, got.Odd, 8)
		for _, n := range got.Even {
			assert.Zero(t, n%2)
		}
		for _, n := range got.Odd {
			assert.NotZero(t, n%2)
		}
	})

	t.Run("invalid split is reset before building", func(t *testing.T) {
		draws := []draw.Draw{
			testutil.NewDraw(t, 3000, date, midBand),
			testutil.NewDraw(t, 2999, date.AddDate(0, 0, -2), midBand),
		}

		got := NewBuilder(Config{}).Build(draws, 0, 0)
		assert.Equal(t, "8-7", got.Pattern)
	})

	t.Run("starved pool falls back to the full table", func(t *testing.T) {
		// With aggressive thresholds only the five numbers both draws share
		// survive the cold exclusion; the builder must widen back out to
		// all 25 numbers instead of emitting a short combo.
		draws := []draw.Draw{
			testutil.NewDraw(t, 3000, date, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}),
			testutil.NewDraw(t, 2999, date.AddDate(0, 0, -2), []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25}),
		}

		got := NewBuilder(Config{HotFraction: 0.9, ColdFraction: 0.8}).Build(draws, 8, 7)
		require.Len(t, got.Combo, 15)
		assert.Contains(t, got.Combo, 16, "fallback pool includes numbers the exclusion dropped")
	})

	t.Run("parity-skewed pool widens to meet the split", func(t *testing.T) {
		// Every draw carries the same ten evens and five odds, so the cold
		// exclusion leaves a 15-number pool with only five odd members.
		// The builder must widen to the full table rather than emit a
		// short combo, and the ever-present evens rank ahead of the rest
		// with ties broken by ascending number.
		skewed := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 12, 14, 16, 18, 20}
		draws := make([]draw.Draw, 0, 30)
		for i := 0; i < 30; i++ {
			draws = append(draws, testutil.NewDraw(t, 3000-i, date.AddDate(0, 0, -2*i), skewed))
		}

		got := NewBuilder(Config{}).Build(draws, 8, 7)
		assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 14, 16}, got.Even)
		assert.Equal(t, []int{1, 3, 5, 7, 9, 11, 13}, got.Odd)
		require.Len(t, got.Combo, 15)
		assert.Equal(t, "8-7", got.Pattern)
	})

	t.Run("repeat rule flags heavy overlap with the newest draw", func(t *testing.T) {
		draws := []draw.Draw{
			testutil.NewDraw(t, 3000, date, midBand),
			testutil.NewDraw(t, 2999, date.AddDate(0, 0, -2), midBand),
		}

		// The suggestion reproduces the newest draw wholesale: sum is in
		// band but all 15 numbers repeat.
		got := NewBuilder(Config{}).Build(draws, 7, 8)
		assert.True(t, got.Rules.SumOK)
		assert.False(t, got.Rules.RepeatOK)
		assert.False(t, got.Valid)
	})
}

func TestRankParity(t *testing.T) {
	pool := []stats.Frequency{
		{Number: 2, Count: 5},
		{Number: 4, Count: 9},
		{Number: 6, Count: 9},
		{Number: 8, Count: 2},
		{Number: 3, Count: 7},
		{Number: 1, Count: 7},
	}

	assert.Equal(t, []int{4, 6, 2, 8}, rankParity(pool, 0), "descending count, lower number wins ties")
	assert.Equal(t, []int{1, 3}, rankParity(pool, 1))
}

func TestIntersect(t *testing.T) {
	assert.Equal(t, []int{3, 5}, Intersect([]int{5, 1, 3}, []int{3, 4, 5}))
	assert.Empty(t, Intersect([]int{1, 2}, []int{3, 4}))
	assert.Empty(t, Intersect(nil, []int{1}))
}
