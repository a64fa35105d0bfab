// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apierr defines the error kinds shared by the news, paper, and
// summarization clients. Components wrap their failures in *Error so the
// pipeline can record a kind per item without string matching.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind string

const (
	KindAuth       Kind = "AuthError"
	KindNetwork    Kind = "NetworkError"
	KindRateLimit  Kind = "RateLimitError"
	KindParse      Kind = "ParseError"
	KindModel      Kind = "ModelError"
	KindValidation Kind = "ValidationError"
)

// Error is a classified failure. Op names the operation that failed
// (e.g. "serpapi search", "arxiv query").
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, &Error{Kind: k}) match on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// New wraps err with a kind and operation name.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf classifies err. A classified error anywhere in the chain wins;
// anything else is reported as a network failure since every remote call
// in this module goes over HTTP.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNetwork
}

// Classify returns err as an *Error. Already-classified errors are returned
// as-is; anything else (transport failures, context expiry, timeouts)
// becomes KindNetwork.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return New(KindNetwork, op, err)
}

// FromStatus maps an HTTP status to a kind. It returns "" for 2xx.
func FromStatus(code int) Kind {
	switch {
	case code >= 200 && code < 300:
		return ""
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindNetwork
	}
}

// Message returns the short, user-facing text for a kind.
func Message(kind Kind) string {
	switch kind {
	case KindAuth:
		return "missing or invalid API key"
	case KindRateLimit:
		return "rate limit reached"
	case KindParse:
		return "unreadable response"
	case KindModel:
		return "summary unavailable"
	case KindValidation:
		return "invalid input"
	default:
		return "service unreachable"
	}
}
