// Package server exposes the resolver, statistics, and backtest operations
// as the JSON HTTP surface the web UI consumes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/Invoker2025/lotofacil-api/internal/cache"
	"github.com/Invoker2025/lotofacil-api/internal/collector"
	"github.com/Invoker2025/lotofacil-api/internal/draw"
	"github.com/Invoker2025/lotofacil-api/internal/simulation"
	"github.com/Invoker2025/lotofacil-api/internal/stats"
	"github.com/Invoker2025/lotofacil-api/internal/suggestion"
)

// Version of the HTTP API surface.
const Version = "1.0.0"

var windowPattern = regexp.MustCompile(`^(\d{1,2}m|all|1y)$`)

// DrawResolver resolves the newest draw, for the readiness probe.
type DrawResolver interface {
	Latest(ctx context.Context) draw.Draw
}

// DrawCollector builds the draw sequences the aggregate endpoints serve.
type DrawCollector interface {
	LastN(ctx context.Context, limit int) []draw.Draw
	ByDate(ctx context.Context, start, end time.Time, maxFetch int) []draw.Draw
}

// Backtester runs the historical simulation.
type Backtester interface {
	Run(ctx context.Context, contest int) (simulation.Result, error)
}

// Handler serves the JSON endpoints. Aggregate responses are cached with a
// short TTL; simulation results never are, so they always reflect current
// algorithm behavior.
type Handler struct {
	resolver  DrawResolver
	collector DrawCollector
	builder   *suggestion.Builder
	backtest  Backtester
	maxFetch  int
	logger    *slog.Logger

	listCache   *cache.Store[ListResponse]
	statsCache  *cache.Store[StatsResponse]
	parityCache *cache.Store[ParityResponse]
}

// Options wires a Handler.
type Options struct {
	Resolver     DrawResolver
	Collector    DrawCollector
	Builder      *suggestion.Builder
	Backtester   Backtester
	MaxFetch     int
	AggregateTTL time.Duration
	Logger       *slog.Logger
}

func NewHandler(opts Options) *Handler {
	if opts.Builder == nil {
		opts.Builder = suggestion.NewBuilder(suggestion.Config{})
	}
	if opts.MaxFetch <= 0 {
		opts.MaxFetch = collector.DefaultMaxFetch
	}
	if opts.AggregateTTL <= 0 {
		opts.AggregateTTL = cache.DefaultAggregateTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{
		resolver:    opts.Resolver,
		collector:   opts.Collector,
		builder:     opts.Builder,
		backtest:    opts.Backtester,
		maxFetch:    opts.MaxFetch,
		logger:      opts.Logger,
		listCache:   cache.NewStore[ListResponse](opts.AggregateTTL),
		statsCache:  cache.NewStore[StatsResponse](opts.AggregateTTL),
		parityCache: cache.NewStore[ParityResponse](opts.AggregateTTL),
	}
}

// Register mounts all endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/ready", h.handleReady)
	mux.HandleFunc("/lotofacil", h.handleLotofacil)
	mux.HandleFunc("/stats", h.handleStats)
	mux.HandleFunc("/parity", h.handleParity)
	mux.HandleFunc("/simulate", h.handleSimulate)
}

// ListResponse is the /lotofacil payload.
type ListResponse struct {
	OK              bool                `json:"ok"`
	Count           int                 `json:"count"`
	Limit           int                 `json:"limit"`
	Summary         stats.ParitySummary `json:"summary"`
	Results         []draw.Draw         `json:"results"`
	CacheAgeSeconds int                 `json:"cache_age_seconds"`
}

// StatsResponse is the /stats payload: frequency table plus a hi/lo pick.
type StatsResponse struct {
	OK              bool              `json:"ok"`
	ConsideredGames int               `json:"considered_games"`
	Limit           int               `json:"limit"`
	Hi              int               `json:"hi"`
	Lo              int               `json:"lo"`
	Frequencies     []stats.Frequency `json:"frequencies"`
	HiNumbers       []int             `json:"hi_numbers"`
	LoNumbers       []int             `json:"lo_numbers"`
	Combo           []int             `json:"combo"`
	UpdatedAt       string            `json:"updated_at"`
	CacheAgeSeconds int               `json:"cache_age_seconds"`
}

// ParityResponse is the /parity payload: the suggestion for a date window.
type ParityResponse struct {
	OK              bool                  `json:"ok"`
	ConsideredGames int                   `json:"considered_games"`
	Window          string                `json:"window"`
	Start           string                `json:"start,omitempty"`
	End             string                `json:"end,omitempty"`
	Even            int                   `json:"even"`
	Odd             int                   `json:"odd"`
	Frequencies     []stats.Frequency     `json:"frequencies"`
	Suggestion      suggestion.Suggestion `json:"suggestion"`
	Pattern         string                `json:"pattern"`
	UpdatedAt       string                `json:"updated_at"`
	CacheAgeSeconds int                   `json:"cache_age_seconds"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Lotofacil API is online",
		"version": Version,
		"examples": map[string]string{
			"lotofacil": "/lotofacil?limit=10",
			"stats":     "/stats?limit=60&hi=12&lo=3",
			"parity":    "/parity?window=3m&even=8&odd=7",
			"simulate":  "/simulate?contest=3000",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "version": Version})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	latest := h.resolver.Latest(r.Context())
	status := "ok"
	if latest.Contest <= 0 {
		status = "warn"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         status,
		"latest_contest": latest.Contest,
	})
}

func (h *Handler) handleLotofacil(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 10, 1, 200)
	force := boolQuery(r, "force")

	key := cache.Key("lotofacil", map[string]any{"limit": limit})
	if !force {
		if cached, ok := h.listCache.Get(key); ok {
			cached.CacheAgeSeconds = h.cacheAge(h.listCache.Age(key))
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	draws := h.collector.LastN(r.Context(), limit)
	response := ListResponse{
		OK:      true,
		Count:   len(draws),
		Limit:   limit,
		Summary: stats.Summarize(draws),
		Results: draws,
	}
	h.listCache.Put(key, response)
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 60, 1, 200)
	hi, lo := stats.ClampHiLo(intQuery(r, "hi", 12, 0, 15), intQuery(r, "lo", 3, 0, 15))
	force := boolQuery(r, "force")

	key := cache.Key("stats", map[string]any{"limit": limit, "hi": hi, "lo": lo})
	if !force {
		if cached, ok := h.statsCache.Get(key); ok {
			cached.CacheAgeSeconds = h.cacheAge(h.statsCache.Age(key))
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	draws := h.collector.LastN(r.Context(), limit)
	table := stats.Frequencies(draws)
	hiNums, loNums := stats.HiLo(table, hi, lo)
	combo := make([]int, 0, len(hiNums)+len(loNums))
	combo = append(combo, hiNums...)
	combo = append(combo, loNums...)
	sort.Ints(combo)

	response := StatsResponse{
		OK:              true,
		ConsideredGames: len(draws),
		Limit:           limit,
		Hi:              hi,
		Lo:              lo,
		Frequencies:     table,
		HiNumbers:       hiNums,
		LoNumbers:       loNums,
		Combo:           combo,
		UpdatedAt:       time.Now().Format("02/01/2006 15:04:05"),
	}
	h.statsCache.Put(key, response)
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleParity(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	if window == "" {
		window = "3m"
	}
	if !windowPattern.MatchString(window) {
		writeError(w, http.StatusBadRequest, "invalid window")
		return
	}
	even, odd := suggestion.ClampParity(intQuery(r, "even", 8, 0, 15), intQuery(r, "odd", 7, 0, 15))
	force := boolQuery(r, "force")
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	key := cache.Key("parity", map[string]any{
		"window": window, "start": startParam, "end": endParam, "even": even, "odd": odd,
	})
	if !force {
		if cached, ok := h.parityCache.Get(key); ok {
			cached.CacheAgeSeconds = h.cacheAge(h.parityCache.Age(key))
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	var start, end time.Time
	if startParam != "" || endParam != "" {
		var err error
		if start, err = parseISODate(startParam); err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		if end, err = parseISODate(endParam); err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
	} else {
		start, end = collector.WindowRange(window, time.Now().UTC())
	}

	draws := h.collector.ByDate(r.Context(), start, end, h.maxFetch)
	sugg := h.builder.Build(draws, even, odd)

	response := ParityResponse{
		OK:              true,
		ConsideredGames: len(draws),
		Window:          window,
		Even:            even,
		Odd:             odd,
		Frequencies:     stats.Frequencies(draws),
		Suggestion:      sugg,
		Pattern:         sugg.Pattern,
		UpdatedAt:       time.Now().Format("02/01/2006 15:04:05"),
	}
	if !start.IsZero() {
		response.Start = start.Format("2006-01-02")
	}
	if !end.IsZero() {
		response.End = end.Format("2006-01-02")
	}
	h.parityCache.Put(key, response)
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	contest, err := strconv.Atoi(r.URL.Query().Get("contest"))
	if err != nil || contest < 1 {
		writeError(w, http.StatusBadRequest, "contest must be a positive integer")
		return
	}

	result, err := h.backtest.Run(r.Context(), contest)
	switch {
	case errors.Is(err, simulation.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, simulation.ErrInsufficientHistory):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_history")
		return
	case err != nil:
		h.logger.Error("simulation failed", "contest", contest, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) cacheAge(age time.Duration, ok bool) int {
	if !ok {
		return 0
	}
	return int(age.Seconds())
}

func parseISODate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func intQuery(r *http.Request, name string, def, min, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func boolQuery(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": message})
}
