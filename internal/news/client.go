// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package news searches Google News through SerpApi.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	g "github.com/serpapi/google-search-results-golang"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/internal/httputil"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

const op = "serpapi search"

// Client queries SerpApi's Google engine restricted to the news vertical.
type Client struct {
	cfg  types.NewsConfig
	base http.RoundTripper
}

// NewClient returns a client using cfg. A nil transport uses
// http.DefaultTransport.
func NewClient(cfg types.NewsConfig, transport http.RoundTripper) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{cfg: cfg, base: transport}
}

// Name returns the source identifier.
func (c *Client) Name() string { return "serpapi" }

// Search returns up to maxResults news results for topic in SerpApi's
// relevance order.
func (c *Client) Search(ctx context.Context, topic string, maxResults int) ([]types.RawNewsRecord, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apierr.Errorf(apierr.KindValidation, op, "empty topic")
	}
	if maxResults <= 0 {
		return nil, apierr.Errorf(apierr.KindValidation, op, "max results must be positive, got %d", maxResults)
	}
	if c.cfg.APIKey == "" {
		return nil, apierr.Errorf(apierr.KindAuth, op, "SerpApi API key is not set")
	}

	params := map[string]string{
		"engine": "google",
		"q":      topic,
		"tbm":    "nws",
		"num":    strconv.Itoa(maxResults),
	}
	if c.cfg.Language != "" {
		params["hl"] = c.cfg.Language
	}
	if c.cfg.Country != "" {
		params["gl"] = c.cfg.Country
	}

	endpoint, err := parseEndpoint(c.cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	search := g.NewGoogleSearch(params, c.cfg.APIKey)
	search.HttpSearch = c.httpClient(ctx, endpoint)

	data, err := search.GetJSON()
	if err != nil {
		return classify(err)
	}

	records := extractResults(data)
	if len(records) > maxResults {
		records = records[:maxResults]
	}
	return records, nil
}

// httpClient builds the client handed to the SerpApi library. The library
// issues plain GETs without a context, so the transport binds ctx to every
// request and redirects to cfg.Endpoint when set.
func (c *Client) httpClient(ctx context.Context, endpoint *url.URL) *http.Client {

	rt := &httputil.Transport{
		Base:       httputil.UserAgent(c.base, c.cfg.UserAgent),
		MaxRetries: c.cfg.MaxRetries,
		Op:         op,
	}

	return &http.Client{
		Timeout: c.cfg.Timeout,
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			req = req.Clone(ctx)
			if endpoint != nil && endpoint.Host != "" {
				req.URL.Scheme = endpoint.Scheme
				req.URL.Host = endpoint.Host
				req.Host = endpoint.Host
			}
			resp, err := rt.RoundTrip(req)
			if err != nil {
				return nil, err
			}
			return bufferJSON(resp)
		}),
	}
}

// parseEndpoint returns nil for an empty endpoint and rejects anything
// that is not an absolute http(s) URL.
func parseEndpoint(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apierr.Errorf(apierr.KindValidation, op, "invalid endpoint %q", raw)
	}
	return u, nil
}

// maxResponseBytes bounds a buffered SerpApi response.
const maxResponseBytes = 8 << 20

// bufferJSON reads and closes the response body, rejecting anything that
// is not JSON, and hands back an in-memory copy. The SerpApi library never
// closes the body and reports decode failures without their cause.
func bufferJSON(resp *http.Response) (*http.Response, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apierr.New(apierr.KindNetwork, op, fmt.Errorf("reading SerpApi response: %w", err))
	}
	if !json.Valid(b) {
		return nil, apierr.Errorf(apierr.KindParse, op, "SerpApi response is not valid JSON (%d bytes)", len(b))
	}
	resp.Body = io.NopCloser(bytes.NewReader(b))
	resp.ContentLength = int64(len(b))
	return resp, nil
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// extractResults prefers the news vertical and falls back to organic
// results, which SerpApi returns when the news vertical is unavailable.
func extractResults(data map[string]any) []types.RawNewsRecord {
	for _, key := range []string{"news_results", "organic_results"} {
		items, ok := data[key].([]any)
		if !ok {
			continue
		}
		records := make([]types.RawNewsRecord, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				records = append(records, types.RawNewsRecord(m))
			}
		}
		return records
	}
	return nil
}

// classify maps a SerpApi library error to an apierr kind. Transport errors
// already carry a kind; in-band "error" messages are matched by content.
func classify(err error) ([]types.RawNewsRecord, error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return nil, err
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return nil, apierr.New(apierr.KindParse, op, fmt.Errorf("decoding SerpApi response: %w", err))
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return nil, apierr.New(apierr.KindNetwork, op, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "fail to decode"):
		return nil, apierr.New(apierr.KindParse, op, err)
	case strings.Contains(msg, "hasn't returned any results"):
		return []types.RawNewsRecord{}, nil
	case strings.Contains(msg, "invalid api key"), strings.Contains(msg, "api key"):
		return nil, apierr.New(apierr.KindAuth, op, err)
	case strings.Contains(msg, "run out of searches"), strings.Contains(msg, "rate limit"):
		return nil, apierr.New(apierr.KindRateLimit, op, err)
	default:
		return nil, apierr.New(apierr.KindNetwork, op, err)
	}
}
