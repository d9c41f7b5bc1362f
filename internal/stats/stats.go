// Package stats computes frequency tables, parity summaries, and the
// hot/warm/cold trend classification over draw sequences.
package stats

import (
	"fmt"
	"math"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

// MinNumber and MaxNumber bound the Lotofácil number pool.
const (
	MinNumber = 1
	MaxNumber = 25
)

// Frequency is one row of the per-number frequency table.
type Frequency struct {
	Number int     `json:"n"`
	Count  int     `json:"count"`
	Pct    float64 `json:"pct"`
}

// Frequencies counts occurrences of every number 1..25 across the draw
// sequence. Percentages are relative to the number of draws, rounded to one
// decimal. The table always has 25 rows in number order.
func Frequencies(draws []draw.Draw) []Frequency {
	counts := make(map[int]int, MaxNumber)
	for _, d := range draws {
		for _, n := range d.Numbers {
			counts[n]++
		}
	}
	total := len(draws)
	if total < 1 {
		total = 1
	}
	table := make([]Frequency, 0, MaxNumber)
	for n := MinNumber; n <= MaxNumber; n++ {
		pct := float64(counts[n]) / float64(total) * 100.0
		table = append(table, Frequency{
			Number: n,
			Count:  counts[n],
			Pct:    math.Round(pct*10) / 10,
		})
	}
	return table
}

// ParitySummary describes how even/odd splits distribute over a sequence.
type ParitySummary struct {
	Histogram map[string]int `json:"histogram"`
	AvgEven   float64        `json:"avg_even"`
	AvgOdd    float64        `json:"avg_odd"`
}

// Summarize buckets each draw's split into 7-8, 8-7, or other, and reports
// average even/odd counts.
func Summarize(draws []draw.Draw) ParitySummary {
	hist := map[string]int{"7-8": 0, "8-7": 0, "outros": 0}
	total := len(draws)
	if total < 1 {
		total = 1
	}
	var evenSum, oddSum int
	for _, d := range draws {
		switch {
		case d.EvenCount == 7 && d.OddCount == 8:
			hist["7-8"]++
		case d.EvenCount == 8 && d.OddCount == 7:
			hist["8-7"]++
		default:
			hist["outros"]++
		}
		evenSum += d.EvenCount
		oddSum += d.OddCount
	}
	return ParitySummary{
		Histogram: hist,
		AvgEven:   math.Round(float64(evenSum)/float64(total)*10) / 10,
		AvgOdd:    math.Round(float64(oddSum)/float64(total)*10) / 10,
	}
}

// Pattern renders an even-odd split as the "E-O" string used throughout the
// API surface.
func Pattern(even, odd int) string {
	return fmt.Sprintf("%d-%d", even, odd)
}
