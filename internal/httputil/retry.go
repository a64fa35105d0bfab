// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the remote clients:
// retry on 429 with exponential backoff and status classification into
// apierr kinds.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) with exponential backoff. The delay starts at RetryBaseDelay
// and doubles each attempt.
//
// maxRetries <= 0 disables retrying: the request is sent once. On each
// 429 the response body is drained and closed before sleeping. If the
// context is cancelled during a backoff wait the function returns
// ctx.Err(). After exhausting retries the last 429 response is returned so
// the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	return retry(ctx, maxRetries, func() (*http.Response, error) {
		r, err := rewind(ctx, req)
		if err != nil {
			return nil, err
		}
		return client.Do(r)
	})
}

// rewind clones req for another attempt, replaying the body when the
// request knows how to.
func rewind(ctx context.Context, req *http.Request) (*http.Request, error) {
	r := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = body
	}
	return r, nil
}

func retry(ctx context.Context, maxRetries int, send func() (*http.Response, error)) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := send()
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// CheckStatus returns nil for 2xx responses. Otherwise it reads a short
// prefix of the body for context and returns an *apierr.Error whose kind
// follows the status: 401/403 auth, 429 rate limit, anything else network.
// The body is left for the caller to close.
func CheckStatus(op string, resp *http.Response) error {
	kind := apierr.FromStatus(resp.StatusCode)
	if kind == "" {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return apierr.Errorf(kind, op, "HTTP %d", resp.StatusCode)
	}
	return apierr.Errorf(kind, op, "HTTP %d: %s", resp.StatusCode, msg)
}

// Transport is an http.RoundTripper for libraries that own their request
// loop (e.g. the SerpApi client). It retries 429 responses like
// DoWithRetry and converts non-2xx responses into classified errors, so
// the library's caller sees an *apierr.Error through the *url.Error chain.
type Transport struct {
	// Base performs the requests. Nil uses http.DefaultTransport.
	Base http.RoundTripper

	// MaxRetries is the number of retries on 429. Zero disables retries.
	MaxRetries int

	// Op names the operation in returned errors.
	Op string
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	ctx := req.Context()
	resp, err := retry(ctx, t.MaxRetries, func() (*http.Response, error) {
		r, err := rewind(ctx, req)
		if err != nil {
			return nil, err
		}
		return base.RoundTrip(r)
	})
	if err != nil {
		return nil, err
	}
	if err := CheckStatus(t.Op, resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// UserAgent returns a RoundTripper that sets the User-Agent header when the
// request does not already carry one.
func UserAgent(base http.RoundTripper, ua string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if ua == "" {
		return base
	}
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("User-Agent") == "" {
			req = req.Clone(req.Context())
			req.Header.Set("User-Agent", ua)
		}
		return base.RoundTrip(req)
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

