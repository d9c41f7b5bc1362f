// Package draw holds the Lotofácil draw domain: the immutable Draw value,
// normalization of loosely-typed upstream payloads, and tolerant date parsing.
package draw

import "time"

// Source names identify which tier produced a draw. Informational only.
const (
	SourcePrimary = "caixa"
	SourceMirror  = "mirror"
	SourceScrape  = "scrape"
)

// Draw is one Lotofácil result: 15 distinct numbers from 1 to 25.
// A Draw is only ever constructed through Normalize, which enforces that
// invariant; treat it as immutable afterwards.
type Draw struct {
	Contest   int    `json:"contest" db:"contest"`
	Date      string `json:"date" db:"draw_date"`
	Numbers   []int  `json:"numbers"`
	EvenCount int    `json:"even_count" db:"even_count"`
	OddCount  int    `json:"odd_count" db:"odd_count"`
	Source    string `json:"source" db:"source"`
}

// ParsedDate parses the upstream date string. Draws from low-quality sources
// may carry an unparsable date; those report ok=false and are treated as
// "unknown" by date-window filtering.
func (d Draw) ParsedDate() (time.Time, bool) {
	return ParseDrawDate(d.Date)
}

// ValidNumbers reports whether nums is exactly 15 distinct integers in [1,25].
func ValidNumbers(nums []int) bool {
	if len(nums) != 15 {
		return false
	}
	seen := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		if n < 1 || n > 25 {
			return false
		}
		if _, ok := seen[n]; ok {
			return false
		}
		seen[n] = struct{}{}
	}
	return true
}

// ParityCounts returns how many of the 15 numbers are even and odd.
func ParityCounts(nums []int) (even, odd int) {
	for _, n := range nums {
		if n%2 == 0 {
			even++
		}
	}
	return even, len(nums) - even
}
