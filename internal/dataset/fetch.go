// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Phantosirius/steam-dashboard/internal/metrics"
)

// maxDownloadBytes caps a remote dataset body.
const maxDownloadBytes = 512 << 20

// Fetcher opens a dataset source for reading.
type Fetcher interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// SourceType labels a source for metrics and logs: "http" or "file".
func SourceType(source string) string {
	if IsRemote(source) {
		return "http"
	}
	return "file"
}

// FileFetcher opens local files.
type FileFetcher struct{}

// Open opens the file at path.
func (FileFetcher) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // operator-configured dataset path
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	return f, nil
}

// HTTPFetcher downloads a dataset over HTTP behind a circuit breaker.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
type HTTPFetcher struct {
	client *http.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	name   string
	logger zerolog.Logger
}

// NewHTTPFetcher creates a fetcher whose downloads are bounded by timeout.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHTTPFetcher(timeout time.Duration, logger zerolog.Logger) *HTTPFetcher {
	return newHTTPFetcher(&http.Client{Timeout: timeout}, logger)
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newHTTPFetcher(client *http.Client, logger zerolog.Logger) *HTTPFetcher {
	cbName := "dataset-fetch"
	logger = logger.With().Str("circuit_breaker", cbName).Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &HTTPFetcher{
		client: client,
		cb:     cb,
		name:   cbName,
		logger: logger,
	}
}

// Open downloads url and returns the body held in memory.
func (f *HTTPFetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	body, err := f.execute(func() ([]byte, error) {
		return f.download(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// State returns the breaker state as "closed", "half-open" or "open".
func (f *HTTPFetcher) State() string {
	return stateToString(f.cb.State())
}

func (f *HTTPFetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, application/octet-stream;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected HTTP status %d from dataset source", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(strings.ToLower(ct), "text/html") {
		return nil, fmt.Errorf("dataset source returned HTML instead of CSV (content type %q)", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset body: %w", err)
	}
	if len(body) > maxDownloadBytes {
		return nil, fmt.Errorf("dataset body exceeds %d bytes", maxDownloadBytes)
	}
	return body, nil
}

// execute runs fn through the circuit breaker and records the outcome.
func (f *HTTPFetcher) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := f.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(f.name, "rejected").Inc()
			f.logger.Warn().Err(err).Msg("Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(f.name, "failure").Inc()
			counts := f.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(f.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(f.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(f.name).Set(0)
	return result, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// SourceFetcher routes http(s) sources to HTTP and everything else to File.
type SourceFetcher struct {
	File Fetcher
	HTTP Fetcher
}

// NewSourceFetcher builds a router using FileFetcher and an HTTPFetcher.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSourceFetcher(timeout time.Duration, logger zerolog.Logger) *SourceFetcher {
	return &SourceFetcher{
		File: FileFetcher{},
		HTTP: NewHTTPFetcher(timeout, logger),
	}
}

// Open dispatches on the source scheme.
func (s *SourceFetcher) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if IsRemote(source) {
		return s.HTTP.Open(ctx, source)
	}
	return s.File.Open(ctx, source)
}
