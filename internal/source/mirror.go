package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

// Default mirror endpoints. The mirror is a read-only public API that stays
// reachable when CAIXA blocks datacenter traffic; it gets a single attempt
// per fetch.
const (
	DefaultMirrorLatestURL  = "https://loteriascaixa-api.herokuapp.com/api/lotofacil/latest"
	DefaultMirrorContestURL = "https://loteriascaixa-api.herokuapp.com/api/lotofacil/%d"
)

// MirrorClient is the mirror API tier.
type MirrorClient struct {
	http       *resty.Client
	latestURL  string
	contestURL string // format string taking the contest number
}

// MirrorOptions configures the mirror tier client. Zero values take the
// package defaults.
type MirrorOptions struct {
	LatestURL  string
	ContestURL string
	Timeout    time.Duration
}

func NewMirrorClient(opts MirrorOptions) *MirrorClient {
	if opts.LatestURL == "" {
		opts.LatestURL = DefaultMirrorLatestURL
	}
	if opts.ContestURL == "" {
		opts.ContestURL = DefaultMirrorContestURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &MirrorClient{
		http:       resty.New().SetTimeout(opts.Timeout),
		latestURL:  opts.LatestURL,
		contestURL: opts.ContestURL,
	}
}

func (c *MirrorClient) Name() string {
	return draw.SourceMirror
}

func (c *MirrorClient) FetchLatest(ctx context.Context) (draw.Payload, error) {
	return c.get(ctx, c.latestURL, 0)
}

func (c *MirrorClient) FetchContest(ctx context.Context, n int) (draw.Payload, error) {
	return c.get(ctx, fmt.Sprintf(c.contestURL, n), n)
}

func (c *MirrorClient) get(ctx context.Context, url string, wantContest int) (draw.Payload, error) {
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return draw.Payload{}, failure(draw.SourceMirror, KindTransient, fmt.Errorf("client.R().Get > %w", err))
	}
	if res.StatusCode() == http.StatusNotFound {
		return draw.Payload{}, failure(draw.SourceMirror, KindNotFound, fmt.Errorf("status code: %d", res.StatusCode()))
	}
	if !res.IsSuccess() {
		return draw.Payload{}, failure(draw.SourceMirror, KindTransient, fmt.Errorf("status code: %d", res.StatusCode()))
	}
	var payload draw.Payload
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return draw.Payload{}, failure(draw.SourceMirror, KindMalformed, fmt.Errorf("json.Unmarshal > %w", err))
	}
	if wantContest > 0 && payload.ContestNumber() != wantContest {
		return draw.Payload{}, failure(draw.SourceMirror, KindMismatch,
			fmt.Errorf("asked for contest %d, got %d", wantContest, payload.ContestNumber()))
	}
	return payload, nil
}
