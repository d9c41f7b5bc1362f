package draw

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload is the loosely-typed record a source tier returns before
// normalization. Field aliases cover the shapes the known upstreams use:
// the CAIXA API ("numero", "listaDezenas", "dataApuracao"), the mirror API
// ("numero"/"concurso", "dezenas", "data"), and the scrape tier, which
// fills the same fields from extracted page text.
type Payload struct {
	Numero       json.Number `json:"numero"`
	Concurso     json.Number `json:"concurso"`
	ListaDezenas []string    `json:"listaDezenas"`
	Dezenas      []string    `json:"dezenas"`
	DataApuracao string      `json:"dataApuracao"`
	Data         string      `json:"data"`
}

// ContestNumber extracts the contest identifier, or 0 when absent.
func (p Payload) ContestNumber() int {
	for _, raw := range []json.Number{p.Numero, p.Concurso} {
		if raw == "" {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(raw.String())); err == nil {
			return n
		}
	}
	return 0
}

func (p Payload) rawNumbers() []string {
	if len(p.ListaDezenas) > 0 {
		return p.ListaDezenas
	}
	return p.Dezenas
}

func (p Payload) rawDate() string {
	if p.DataApuracao != "" {
		return p.DataApuracao
	}
	return p.Data
}

// Normalize converts a payload into a Draw, enforcing the 15-distinct-in-
// [1,25] invariant. It returns ok=false for anything that fails the check;
// a rejected payload never produces a Draw.
func Normalize(p Payload, source string) (Draw, bool) {
	contest := p.ContestNumber()
	if contest <= 0 {
		return Draw{}, false
	}

	raw := p.rawNumbers()
	nums := make([]int, 0, len(raw))
	for _, tok := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return Draw{}, false
		}
		nums = append(nums, n)
	}
	if !ValidNumbers(nums) {
		return Draw{}, false
	}

	even, odd := ParityCounts(nums)
	return Draw{
		Contest:   contest,
		Date:      p.rawDate(),
		Numbers:   nums,
		EvenCount: even,
		OddCount:  odd,
		Source:    source,
	}, true
}
