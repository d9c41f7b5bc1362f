package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

// ScrapeClient is the last-resort tier: it fetches a public results page and
// extracts the draw from the HTML. Extraction lives in extractPage so it can
// be exercised against saved fixtures instead of live pages.
type ScrapeClient struct {
	http       *resty.Client
	latestURL  string
	contestURL string // format string taking the contest number; empty disables FetchContest
}

// ScrapeOptions configures the scrape tier client.
type ScrapeOptions struct {
	LatestURL  string
	ContestURL string
	Timeout    time.Duration
}

func NewScrapeClient(opts ScrapeOptions) *ScrapeClient {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &ScrapeClient{
		http:       resty.New().SetTimeout(opts.Timeout).SetHeader("User-Agent", caixaHeaders["User-Agent"]),
		latestURL:  opts.LatestURL,
		contestURL: opts.ContestURL,
	}
}

func (c *ScrapeClient) Name() string {
	return draw.SourceScrape
}

func (c *ScrapeClient) FetchLatest(ctx context.Context) (draw.Payload, error) {
	return c.get(ctx, c.latestURL, 0)
}

func (c *ScrapeClient) FetchContest(ctx context.Context, n int) (draw.Payload, error) {
	if c.contestURL == "" {
		return draw.Payload{}, failure(draw.SourceScrape, KindNotFound,
			fmt.Errorf("no per-contest page configured"))
	}
	return c.get(ctx, fmt.Sprintf(c.contestURL, n), n)
}

func (c *ScrapeClient) get(ctx context.Context, url string, wantContest int) (draw.Payload, error) {
	if url == "" {
		return draw.Payload{}, failure(draw.SourceScrape, KindNotFound, fmt.Errorf("no page configured"))
	}
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return draw.Payload{}, failure(draw.SourceScrape, KindTransient, fmt.Errorf("client.R().Get > %w", err))
	}
	if res.StatusCode() == http.StatusNotFound {
		return draw.Payload{}, failure(draw.SourceScrape, KindNotFound, fmt.Errorf("status code: %d", res.StatusCode()))
	}
	if !res.IsSuccess() {
		return draw.Payload{}, failure(draw.SourceScrape, KindTransient, fmt.Errorf("status code: %d", res.StatusCode()))
	}
	payload, err := extractPage(string(res.Body()))
	if err != nil {
		return draw.Payload{}, err
	}
	if wantContest > 0 && payload.ContestNumber() != wantContest {
		return draw.Payload{}, failure(draw.SourceScrape, KindMismatch,
			fmt.Errorf("asked for contest %d, got %d", wantContest, payload.ContestNumber()))
	}
	return payload, nil
}

var (
	pageContestPattern = regexp.MustCompile(`(?i)concurso\s*(?:n[ºo°.]?\s*)?(\d{3,6})`)
	pageDatePattern    = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`)
	pageNumberPattern  = regexp.MustCompile(`(?s)<li[^>]*>\s*(\d{1,2})\s*</li>`)
)

// extractPage pulls the contest number, the draw date, and the first 15
// listed numbers out of a results page. It only extracts; the 15-unique
// invariant is the normalizer's job.
func extractPage(html string) (draw.Payload, error) {
	contest := pageContestPattern.FindStringSubmatch(html)
	if contest == nil {
		return draw.Payload{}, failure(draw.SourceScrape, KindMalformed, fmt.Errorf("no contest number on page"))
	}

	matches := pageNumberPattern.FindAllStringSubmatch(html, 15)
	if len(matches) < 15 {
		return draw.Payload{}, failure(draw.SourceScrape, KindMalformed,
			fmt.Errorf("found %d listed numbers, want 15", len(matches)))
	}
	numbers := make([]string, 0, len(matches))
	for _, m := range matches {
		numbers = append(numbers, m[1])
	}

	payload := draw.Payload{
		Concurso: json.Number(contest[1]),
		Dezenas:  numbers,
	}
	if date := pageDatePattern.FindStringSubmatch(html); date != nil {
		payload.Data = date[1]
	}
	return payload, nil
}
