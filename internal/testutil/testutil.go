// Package testutil provides shared test helpers for creating config files and
// synthetic draw histories.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

// SetupTestConfig creates a minimal config file for testing and returns its
// path. Overrides are appended verbatim after the base content.
func SetupTestConfig(t *testing.T, tmpDir string, overrides string) string {
	t.Helper()

	configContent := `sources:
  caixa_hosts:
    - http://caixa.test
  mirror_latest_url: http://mirror.test/latest
  mirror_contest_url: http://mirror.test/%d
  http_timeout_sec: 2
  backoff_ms: 1
cache:
  draw_ttl_sec: 120
  aggregate_ttl_sec: 120
collector:
  max_fetch: 50
` + overrides

	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	return configPath
}

// NumbersWithParity returns 15 distinct numbers in [1, 25] with exactly
// even even numbers, lowest candidates first. even must be in [2, 12]
// because the range only holds 12 evens and 13 odds.
func NumbersWithParity(t *testing.T, even int) []int {
	t.Helper()
	require.GreaterOrEqual(t, even, 2)
	require.LessOrEqual(t, even, 12)

	numbers := make([]int, 0, 15)
	for n := 2; len(numbers) < even; n += 2 {
		numbers = append(numbers, n)
	}
	for n := 1; len(numbers) < 15; n += 2 {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// NewDraw builds a valid draw fixture with computed parity counts.
func NewDraw(t *testing.T, contest int, date time.Time, numbers []int) draw.Draw {
	t.Helper()
	require.True(t, draw.ValidNumbers(numbers), "fixture numbers must be a valid draw")

	even, odd := draw.ParityCounts(numbers)
	return draw.Draw{
		Contest:   contest,
		Date:      date.Format("02/01/2006"),
		Numbers:   numbers,
		EvenCount: even,
		OddCount:  odd,
		Source:    draw.SourcePrimary,
	}
}

// History builds count draws most-recent-first, starting at newestContest
// dated newestDate and stepping two days back per contest. Parities alternate
// between 8-7 and 7-8 so parity-sensitive code sees both patterns.
func History(t *testing.T, newestContest, count int, newestDate time.Time) []draw.Draw {
	t.Helper()

	draws := make([]draw.Draw, 0, count)
	for i := 0; i < count; i++ {
		even := 8
		if i%2 == 1 {
			even = 7
		}
		draws = append(draws, NewDraw(t,
			newestContest-i,
			newestDate.AddDate(0, 0, -2*i),
			NumbersWithParity(t, even)))
	}
	return draws
}

// Payload builds a raw upstream payload whose normalization yields d.
func Payload(d draw.Draw) draw.Payload {
	dezenas := make([]string, 0, len(d.Numbers))
	for _, n := range d.Numbers {
		dezenas = append(dezenas, fmt.Sprintf("%02d", n))
	}
	return draw.Payload{
		Numero:       json.Number(strconv.Itoa(d.Contest)),
		ListaDezenas: dezenas,
		DataApuracao: d.Date,
	}
}
