// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"

	"github.com/nkprajapati01/newssumirizer/internal/httputil"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// summaryPromptTmpl is the prompt sent to chat-style models for one document.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`Summarize the following text in two or three plain sentences for a reader scanning search results. Keep names, numbers, and findings exact. Do not add information that is not in the text. Respond with the summary only.

Text:
{{.Text}}
`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend summarizes text through the Claude Messages API.
type ClaudeBackend struct {
	APIKey    string
	Model     string
	MaxTokens int
	Client    *http.Client

	// Endpoint overrides claudeAPIURL when set.
	Endpoint string

	// UserAgent and MaxRetries follow the summarizer's HTTP settings.
	UserAgent  string
	MaxRetries int
}

// NewClaudeBackend returns a backend configured from cfg.
func NewClaudeBackend(cfg types.SummarizerConfig, client *http.Client) *ClaudeBackend {
	model := cfg.Model
	if model == "" {
		model = "claude-haiku-4-5"
	}
	maxTokens := cfg.MaxLength * 2
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &ClaudeBackend{
		APIKey:    cfg.APIKey,
		Model:     model,
		MaxTokens: maxTokens,
		Client:    client,
		Endpoint:  cfg.Endpoint,

		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
}

// Name returns the backend identifier.
func (c *ClaudeBackend) Name() string { return "claude:" + c.Model }

func (c *ClaudeBackend) url() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return claudeAPIURL
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Summarize calls the Claude API with the summary prompt.
func (c *ClaudeBackend) Summarize(ctx context.Context, text string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("Anthropic API key is not set")
	}

	prompt, err := renderPrompt(text)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	bodyBytes, err := json.Marshal(claudeRequest{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus("claude messages", resp); err != nil {
		return "", err
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Claude API response")
}

// renderPrompt executes the summary prompt template with the given text.
func renderPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := summaryPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
