// Package urlcheck verifies that resolved external URLs are alive, with a
// per-run (or optionally persistent) liveness cache so each URL is hit at
// most once per run.
package urlcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/streamfold/docgen/internal/logfields"
	"github.com/streamfold/docgen/internal/metrics"
	"github.com/streamfold/docgen/internal/retry"
)

// Status classifies a liveness check.
type Status int

const (
	StatusOK Status = iota
	// StatusNotFound is a confirmed HTTP 404.
	StatusNotFound
	// StatusUnreachable is a connection-level failure. Kept distinct from
	// StatusNotFound for diagnostics; both fail validation.
	StatusUnreachable
)

// Result is the outcome of checking one URL.
type Result struct {
	Status Status
	Code   int    // HTTP status code, 0 for non-HTTP failures
	Detail string // transport error text for unreachable URLs
}

// Broken reports whether the result fails validation.
func (r Result) Broken() bool { return r.Status != StatusOK }

// Outcome returns the metrics label for the result.
func (r Result) Outcome() string {
	switch r.Status {
	case StatusNotFound:
		return "not_found"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "ok"
	}
}

// Checker issues HEAD requests with a bounded timeout. A 404 marks the URL
// broken; any other HTTP response passes. Connection failures are retried
// per the backoff policy, they are usually transient on CI runners.
type Checker struct {
	client   *http.Client
	cache    Cache
	recorder metrics.Recorder
	policy   retry.Policy
}

// Option configures a Checker.
type Option func(*Checker)

// WithCache swaps the liveness cache (default per-run in-memory).
func WithCache(c Cache) Option {
	return func(ch *Checker) { ch.cache = c }
}

// WithRecorder wires a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(ch *Checker) { ch.recorder = r }
}

// WithTimeout bounds each HEAD request.
func WithTimeout(d time.Duration) Option {
	return func(ch *Checker) { ch.client.Timeout = d }
}

// WithHTTPClient replaces the HTTP client entirely (tests).
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) { ch.client = c }
}

// WithRetryPolicy replaces the transient-failure backoff policy.
func WithRetryPolicy(p retry.Policy) Option {
	return func(ch *Checker) { ch.policy = p }
}

// NewChecker builds a checker with a 10s request timeout by default.
func NewChecker(opts ...Option) *Checker {
	ch := &Checker{
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    NewMemoryCache(),
		recorder: metrics.NoopRecorder{},
		policy:   retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Close releases the cache.
func (ch *Checker) Close() error { return ch.cache.Close() }

// Check returns the liveness of url, consulting the cache first.
func (ch *Checker) Check(ctx context.Context, url string) Result {
	if res, ok := ch.cache.Get(url); ok {
		ch.recorder.IncURLCacheHit()
		return res
	}

	res := retry.Do(ctx, ch.policy,
		func() Result { return ch.head(ctx, url) },
		func(r Result) bool { return r.Status == StatusUnreachable })

	ch.cache.Put(url, res)
	ch.recorder.IncLinkCheck(res.Outcome())
	slog.Debug("Checked external link", logfields.URL(url), "outcome", res.Outcome(), "code", res.Code)
	return res
}

func (ch *Checker) head(ctx context.Context, url string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Result{Status: StatusUnreachable, Detail: err.Error()}
	}
	resp, err := ch.client.Do(req)
	if err != nil {
		return Result{Status: StatusUnreachable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{Status: StatusNotFound, Code: resp.StatusCode, Detail: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	return Result{Status: StatusOK, Code: resp.StatusCode}
}
