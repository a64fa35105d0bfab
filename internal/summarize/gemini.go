// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// GeminiBackend summarizes text with a Gemini model through the genai SDK.
// The SDK client is created on first use so a missing key fails per item
// instead of at startup.
type GeminiBackend struct {
	cfg        types.SummarizerConfig
	model      string
	httpClient *http.Client

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiBackend returns a backend configured from cfg.
func NewGeminiBackend(cfg types.SummarizerConfig, httpClient *http.Client) *GeminiBackend {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiBackend{cfg: cfg, model: model, httpClient: httpClient}
}

// Name returns the backend identifier.
func (b *GeminiBackend) Name() string { return "gemini:" + b.model }

func (b *GeminiBackend) init(ctx context.Context) error {
	b.once.Do(func() {
		if b.cfg.APIKey == "" {
			b.initErr = fmt.Errorf("Gemini API key is not set")
			return
		}
		cc := &genai.ClientConfig{
			APIKey:     b.cfg.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: b.httpClient,
		}
		if b.cfg.Endpoint != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: b.cfg.Endpoint}
		}
		b.client, b.initErr = genai.NewClient(ctx, cc)
	})
	return b.initErr
}

// Summarize sends the summary prompt to the model and returns the text of
// the first candidate.
func (b *GeminiBackend) Summarize(ctx context.Context, text string) (string, error) {
	if err := b.init(ctx); err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	prompt, err := renderPrompt(text)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	gc := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)}
	if b.cfg.MaxLength > 0 {
		gc.MaxOutputTokens = int32(b.cfg.MaxLength * 2)
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), gc)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}
