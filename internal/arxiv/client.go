// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv Atom API for papers matching a topic.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/internal/httputil"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

const op = "arxiv query"

// Client queries the arXiv API.
type Client struct {
	http *http.Client
	cfg  types.PaperConfig
}

// NewClient returns a client using cfg. A nil httpClient gets one with
// cfg.Timeout.
func NewClient(cfg types.PaperConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{http: httpClient, cfg: cfg}
}

// Name returns the source identifier.
func (c *Client) Name() string { return "arxiv" }

// SearchPapers returns up to maxResults feed entries for topic in the order
// arXiv returns them.
func (c *Client) SearchPapers(ctx context.Context, topic string, maxResults int) ([]types.RawPaperRecord, error) {
	q := buildQuery(topic)
	if q == "" {
		return nil, apierr.Errorf(apierr.KindValidation, op, "empty topic")
	}
	if maxResults <= 0 {
		return nil, apierr.Errorf(apierr.KindValidation, op, "max results must be positive, got %d", maxResults)
	}

	sortBy := c.cfg.SortBy
	if sortBy == "" {
		sortBy = types.SortRelevance
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=%s&sortOrder=descending",
		apiBase, q, maxResults, url.QueryEscape(string(sortBy)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apierr.New(apierr.KindValidation, op, fmt.Errorf("creating request: %w", err))
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, apierr.Classify(op, err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(op, resp); err != nil {
		return nil, err
	}

	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, apierr.New(apierr.KindParse, op, fmt.Errorf("parsing arXiv response: %w", err))
	}

	if len(f.Entries) == 1 && isErrorEntry(f.Entries[0]) {
		return nil, apierr.Errorf(apierr.KindParse, op, "arXiv API error: %s", strings.TrimSpace(f.Entries[0].Summary))
	}

	entries := f.Entries
	if len(entries) > maxResults {
		entries = entries[:maxResults]
	}
	return entries, nil
}

// buildQuery turns a free-text topic into the search_query parameter,
// requiring every term to match in any field.
func buildQuery(topic string) string {
	terms := strings.Fields(topic)
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, "all:"+url.QueryEscape(t))
	}
	return strings.Join(parts, "+AND+")
}

// arXiv reports malformed queries as a single entry whose id points at
// the API error namespace.
func isErrorEntry(e types.RawPaperRecord) bool {
	return strings.Contains(e.ID, "arxiv.org/api/errors")
}

// feed is the arXiv Atom document.
type feed struct {
	Entries []types.RawPaperRecord `xml:"entry"`
}
