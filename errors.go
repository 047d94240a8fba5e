package main

import (
	"errors"
	"fmt"
)

// Engine lifecycle errors.
var (
	// ErrNoAPIKey means no credential was configured; the engine stays
	// not-ready until the process is restarted with a key.
	ErrNoAPIKey = errors.New("no API key configured")

	// ErrNoModel means every candidate model failed its startup probe.
	ErrNoModel = errors.New("no candidate model responded")

	// ErrEngineNotReady is returned by completion calls when the engine
	// never initialized.
	ErrEngineNotReady = errors.New("AI engine not ready")
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// ExtractErrorKind distinguishes the failure modes of URL extraction so
// callers can show the right remediation.
type ExtractErrorKind string

const (
	ExtractInvalidURL ExtractErrorKind = "invalid_url"
	ExtractTimeout    ExtractErrorKind = "timeout"
	ExtractConnection ExtractErrorKind = "connection"
	ExtractHTTPStatus ExtractErrorKind = "http_status"
	ExtractAggregator ExtractErrorKind = "aggregator_redirect"
	ExtractTooShort   ExtractErrorKind = "too_short"
	ExtractEmpty      ExtractErrorKind = "no_content"
)

// ExtractError is a user-facing extraction failure with a suggested next step.
type ExtractError struct {
	Kind ExtractErrorKind
	Msg  string
	Hint string
	Err  error
}

func (e *ExtractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ExtractError) Unwrap() error { return e.Err }

func newExtractError(kind ExtractErrorKind, msg, hint string, err error) *ExtractError {
	return &ExtractError{Kind: kind, Msg: msg, Hint: hint, Err: err}
}
