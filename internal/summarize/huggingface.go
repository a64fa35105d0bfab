// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/nkprajapati01/newssumirizer/internal/httputil"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// huggingFaceAPIBase is the Inference API prefix; the model id is appended.
// Package-level var for test substitution.
var huggingFaceAPIBase = "https://router.huggingface.co/hf-inference/models"

// HuggingFaceBackend calls a hosted summarization model (facebook/bart-large-cnn
// by default) through the Hugging Face Inference API.
type HuggingFaceBackend struct {
	client    *http.Client
	apiKey    string
	model     string
	endpoint  string
	minLength int
	maxLength int
	ua        string
	retries   int
}

// NewHuggingFaceBackend returns a backend configured from cfg.
func NewHuggingFaceBackend(cfg types.SummarizerConfig, client *http.Client) *HuggingFaceBackend {
	model := cfg.Model
	if model == "" {
		model = "facebook/bart-large-cnn"
	}
	return &HuggingFaceBackend{
		client:    client,
		apiKey:    cfg.APIKey,
		model:     model,
		endpoint:  cfg.Endpoint,
		minLength: cfg.MinLength,
		maxLength: cfg.MaxLength,
		ua:        cfg.UserAgent,
		retries:   cfg.MaxRetries,
	}
}

// Name returns the backend identifier.
func (b *HuggingFaceBackend) Name() string { return "huggingface:" + b.model }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MinLength int  `json:"min_length,omitempty"`
	MaxLength int  `json:"max_length,omitempty"`
	DoSample  bool `json:"do_sample"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

// Summarize sends text to the model and returns the first summary.
func (b *HuggingFaceBackend) Summarize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MinLength: b.minLength,
			MaxLength: b.maxLength,
			DoSample:  false,
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	base := huggingFaceAPIBase
	if b.endpoint != "" {
		base = b.endpoint
	}
	url := strings.TrimRight(base, "/") + "/" + b.model

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}
	if b.ua != "" {
		req.Header.Set("User-Agent", b.ua)
	}

	resp, err := httputil.DoWithRetry(ctx, b.client, req, b.retries)
	if err != nil {
		return "", fmt.Errorf("calling Hugging Face API: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus("huggingface inference", resp); err != nil {
		return "", err
	}

	var out []hfSummary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding Hugging Face response: %w", err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("Hugging Face API returned no summaries")
	}
	return out[0].SummaryText, nil
}
