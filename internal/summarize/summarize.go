// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize produces short summaries of document text through a
// pluggable inference backend. Summarizer adds the length guard and input
// truncation shared by every backend and classifies failures as model
// errors.
package summarize

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

const op = "summarize"

// Backend abstracts the inference service so tests can supply a mock.
// Each call is stateless.
type Backend interface {
	Name() string
	Summarize(ctx context.Context, text string) (string, error)
}

// Summarizer wraps a Backend with the minimum-length guard and input
// truncation.
type Summarizer struct {
	backend       Backend
	minChars      int
	maxInputChars int
}

// New returns a Summarizer over backend using the length settings in cfg.
func New(backend Backend, cfg types.SummarizerConfig) *Summarizer {
	return &Summarizer{
		backend:       backend,
		minChars:      cfg.MinChars,
		maxInputChars: cfg.MaxInputChars,
	}
}

// Backend returns the wrapped backend's name.
func (s *Summarizer) Backend() string { return s.backend.Name() }

// Summarize returns a summary of text. Text shorter than the minimum length
// is returned unchanged without a backend call, so summarizing such a
// result again yields the same string. Backend failures and empty output
// are reported as apierr.KindModel.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < s.minChars || trimmed == "" {
		return text, nil
	}

	input := truncateRunes(trimmed, s.maxInputChars)

	out, err := s.backend.Summarize(ctx, input)
	if err != nil {
		return "", apierr.New(apierr.KindModel, op, fmt.Errorf("%s: %w", s.backend.Name(), err))
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", apierr.Errorf(apierr.KindModel, op, "%s returned an empty summary", s.backend.Name())
	}
	return out, nil
}

// truncateRunes cuts s to at most max runes. max <= 0 leaves s unchanged.
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// NewBackend builds the backend selected by cfg.Backend. A nil httpClient
// gets one with cfg.Timeout.
func NewBackend(cfg types.SummarizerConfig, httpClient *http.Client) (Backend, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	switch cfg.Backend {
	case types.BackendHuggingFace, "":
		return NewHuggingFaceBackend(cfg, httpClient), nil
	case types.BackendClaude:
		return NewClaudeBackend(cfg, httpClient), nil
	case types.BackendGemini:
		return NewGeminiBackend(cfg, httpClient), nil
	case types.BackendLead:
		return NewLeadBackend(cfg), nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Backend)
	}
}
