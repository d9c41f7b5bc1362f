package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

// Default CAIXA hosts. The service bus host answers from most networks; the
// portal host is a same-tier alternate tried with a short backoff in between.
var DefaultCaixaHosts = []string{
	"https://servicebus2.caixa.gov.br/portaldeloterias/api/lotofacil",
	"https://loterias.caixa.gov.br/portaldeloterias/api/lotofacil",
}

const (
	defaultTimeout      = 12 * time.Second
	defaultVariantDelay = 60 * time.Millisecond
)

// The CAIXA API rejects requests that do not look like the official portal.
var caixaHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":           "application/json, text/plain, */*",
	"Accept-Language":  "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	"X-Requested-With": "XMLHttpRequest",
	"Referer":          "https://loterias.caixa.gov.br/wps/portal/loterias/landing/lotofacil",
	"Origin":           "https://loterias.caixa.gov.br",
	"Pragma":           "no-cache",
	"Cache-Control":    "no-cache",
}

// CaixaClient is the primary tier. Each logical fetch tries a bounded list
// of URL/parameter variants of the same upstream with a fixed short delay
// between attempts, tolerating transient hiccups without unbounded retries.
type CaixaClient struct {
	http    *resty.Client
	hosts   []string
	backoff time.Duration
	now     func() time.Time
}

// CaixaOptions configures the primary tier client. Zero values take the
// package defaults.
type CaixaOptions struct {
	Hosts   []string
	Timeout time.Duration
	Backoff time.Duration
}

func NewCaixaClient(opts CaixaOptions) *CaixaClient {
	if len(opts.Hosts) == 0 {
		opts.Hosts = DefaultCaixaHosts
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Backoff == 0 {
		opts.Backoff = defaultVariantDelay
	}
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeaders(caixaHeaders)
	return &CaixaClient{
		http:    client,
		hosts:   opts.Hosts,
		backoff: opts.Backoff,
		now:     time.Now,
	}
}

func (c *CaixaClient) Name() string {
	return draw.SourcePrimary
}

type requestVariant struct {
	url    string
	params map[string]string
}

// FetchLatest asks each host for the newest contest.
func (c *CaixaClient) FetchLatest(ctx context.Context) (draw.Payload, error) {
	variants := make([]requestVariant, 0, len(c.hosts))
	for _, host := range c.hosts {
		variants = append(variants, requestVariant{url: host, params: c.cacheBust(nil)})
	}
	return c.tryVariants(ctx, variants, 0)
}

// FetchContest tries both the query-parameter and the path form of the
// contest endpoint on every host.
func (c *CaixaClient) FetchContest(ctx context.Context, n int) (draw.Payload, error) {
	contest := strconv.Itoa(n)
	variants := make([]requestVariant, 0, 2*len(c.hosts))
	for _, host := range c.hosts {
		variants = append(variants, requestVariant{
			url:    host,
			params: c.cacheBust(map[string]string{"concurso": contest}),
		})
		variants = append(variants, requestVariant{
			url:    fmt.Sprintf("%s/%d", host, n),
			params: c.cacheBust(nil),
		})
	}
	return c.tryVariants(ctx, variants, n)
}

func (c *CaixaClient) cacheBust(params map[string]string) map[string]string {
	if params == nil {
		params = make(map[string]string, 1)
	}
	params["_"] = strconv.FormatInt(c.now().UnixMilli(), 10)
	return params
}

// tryVariants walks the variant list in order, one attempt per variant with
// a fixed delay in between. wantContest > 0 additionally rejects responses
// whose contest number does not match.
func (c *CaixaClient) tryVariants(ctx context.Context, variants []requestVariant, wantContest int) (draw.Payload, error) {
	var out draw.Payload
	attempt := 0
	err := retry.Do(
		func() error {
			v := variants[attempt%len(variants)]
			attempt++
			payload, err := c.get(ctx, v.url, v.params)
			if err != nil {
				return err
			}
			if wantContest > 0 && payload.ContestNumber() != wantContest {
				return failure(draw.SourcePrimary, KindMismatch,
					fmt.Errorf("asked for contest %d, got %d", wantContest, payload.ContestNumber()))
			}
			out = payload
			return nil
		},
		retry.Attempts(uint(len(variants))),
		retry.Delay(c.backoff),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return draw.Payload{}, err
	}
	return out, nil
}

func (c *CaixaClient) get(ctx context.Context, url string, params map[string]string) (draw.Payload, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)
	if err != nil {
		return draw.Payload{}, failure(draw.SourcePrimary, KindTransient, fmt.Errorf("client.R().Get > %w", err))
	}
	if res.StatusCode() == http.StatusNotFound {
		return draw.Payload{}, failure(draw.SourcePrimary, KindNotFound, fmt.Errorf("status code: %d", res.StatusCode()))
	}
	if !res.IsSuccess() {
		return draw.Payload{}, failure(draw.SourcePrimary, KindTransient, fmt.Errorf("status code: %d", res.StatusCode()))
	}
	var payload draw.Payload
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return draw.Payload{}, failure(draw.SourcePrimary, KindMalformed, fmt.Errorf("json.Unmarshal > %w", err))
	}
	return payload, nil
}
