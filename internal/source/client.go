// Package source implements the upstream tiers a draw can be fetched from:
// the primary CAIXA API, a read-only public mirror, and an HTML results page
// as a last resort. All three satisfy Client and report failures as typed
// errors instead of raising, so the resolver can walk the fallback chain.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

//go:generate mockgen -source=client.go -destination=../mocks/source/mock_client.go -package=mock_source

// Client is one upstream tier. A fetch either returns a raw payload for
// normalization or a *FetchError; implementations never panic on upstream
// garbage.
type Client interface {
	// Name reports the tier name recorded as Draw provenance.
	Name() string
	// FetchLatest returns the newest published contest.
	FetchLatest(ctx context.Context) (draw.Payload, error)
	// FetchContest returns contest n. A response carrying a different
	// contest number is a failure, guarding against stale or misrouted
	// upstream responses.
	FetchContest(ctx context.Context, n int) (draw.Payload, error)
}

// FailureKind classifies why a tier attempt produced no payload.
type FailureKind string

const (
	// KindTransient covers network errors and non-2xx statuses other than 404.
	KindTransient FailureKind = "transient"
	// KindNotFound means the upstream does not have the requested contest.
	KindNotFound FailureKind = "not_found"
	// KindMismatch means the response carried a different contest number.
	KindMismatch FailureKind = "mismatch"
	// KindMalformed means the body could not be decoded or extracted.
	KindMalformed FailureKind = "malformed"
)

// FetchError is the tagged failure a tier attempt returns.
type FetchError struct {
	Source string
	Kind   FailureKind
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain. Errors that are not
// a *FetchError (context cancellation, retry exhaustion wrappers) report
// KindTransient.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransient
}

func failure(src string, kind FailureKind, err error) *FetchError {
	return &FetchError{Source: src, Kind: kind, Err: err}
}
