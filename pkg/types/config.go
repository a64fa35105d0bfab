package types

import (
	"fmt"
	"net/url"
	"time"
)

// HTTPConfig holds shared HTTP settings used by every remote client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "newssumirizer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of extra attempts on HTTP 429. Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// NewsConfig holds settings for the SerpApi news client.
type NewsConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the SerpApi key. Required; a missing key is reported as an
	// AuthError result rather than a startup failure.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults caps the number of news results per topic (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Endpoint overrides the SerpApi host (e.g. a proxy). Empty uses serpapi.com.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Language and Country map to the SerpApi hl and gl parameters.
	Language string `json:"language" yaml:"language"`
	Country  string `json:"country" yaml:"country"`
}

// PaperSort selects the arXiv result ordering.
type PaperSort string

const (
	SortRelevance       PaperSort = "relevance"
	SortSubmittedDate   PaperSort = "submittedDate"
	SortLastUpdatedDate PaperSort = "lastUpdatedDate"
)

// PaperConfig holds settings for the arXiv client.
type PaperConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of papers per topic (default 3).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SortBy is relevance, submittedDate, or lastUpdatedDate.
	SortBy PaperSort `json:"sort_by" yaml:"sort_by"`
}

// SummarizerBackend identifies the inference service used for summaries.
type SummarizerBackend string

const (
	BackendHuggingFace SummarizerBackend = "huggingface"
	BackendClaude      SummarizerBackend = "claude"
	BackendGemini      SummarizerBackend = "gemini"
	BackendLead        SummarizerBackend = "lead"
)

// SummarizerConfig holds settings for the summarization stage.
type SummarizerConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects huggingface, claude, gemini, or lead.
	Backend SummarizerBackend `json:"backend" yaml:"backend"`

	// Model is the model identifier for the selected backend. Empty picks
	// the backend default (facebook/bart-large-cnn on huggingface).
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the selected backend. Optional for
	// huggingface and unused by lead.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Endpoint overrides the backend base URL.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// MinChars is the input length, in runes, below which text is returned
	// unchanged without calling the model (default 100).
	MinChars int `json:"min_chars" yaml:"min_chars"`

	// MaxInputChars truncates input before the model call (default 1024).
	MaxInputChars int `json:"max_input_chars" yaml:"max_input_chars"`

	// MinLength and MaxLength bound the summary length in model tokens
	// (defaults 30 and 150).
	MinLength int `json:"min_length" yaml:"min_length"`
	MaxLength int `json:"max_length" yaml:"max_length"`
}

// PipelineConfig holds orchestration settings.
type PipelineConfig struct {
	// CallTimeout bounds each source query, including retries (default 30s).
	CallTimeout time.Duration `json:"call_timeout" yaml:"call_timeout"`

	// SummarizeWorkers bounds concurrent summarizer calls (default 1, sequential).
	SummarizeWorkers int `json:"summarize_workers" yaml:"summarize_workers"`
}

// Config groups every component's settings.
type Config struct {
	News       NewsConfig       `json:"news" yaml:"news"`
	Papers     PaperConfig      `json:"papers" yaml:"papers"`
	Summarizer SummarizerConfig `json:"summarizer" yaml:"summarizer"`
	Pipeline   PipelineConfig   `json:"pipeline" yaml:"pipeline"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// ListenAddr is the web UI address for the serve command.
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
}

const defaultUserAgent = "newssumirizer/0.1"

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		News: NewsConfig{
			HTTPConfig: HTTPConfig{Timeout: 20 * time.Second, UserAgent: defaultUserAgent},
			MaxResults: 5,
			Language:   "en",
			Country:    "us",
		},
		Papers: PaperConfig{
			HTTPConfig: HTTPConfig{Timeout: 20 * time.Second, UserAgent: defaultUserAgent},
			MaxResults: 3,
			SortBy:     SortRelevance,
		},
		Summarizer: SummarizerConfig{
			HTTPConfig:    HTTPConfig{Timeout: 60 * time.Second, UserAgent: defaultUserAgent},
			Backend:       BackendHuggingFace,
			MinChars:      100,
			MaxInputChars: 1024,
			MinLength:     30,
			MaxLength:     150,
		},
		Pipeline: PipelineConfig{
			CallTimeout:      30 * time.Second,
			SummarizeWorkers: 1,
		},
		LogLevel:   "info",
		ListenAddr: ":8080",
	}
}

// Validate checks values that would make a component misbehave. Missing
// API keys are not checked here; they surface as per-source errors.
func (c Config) Validate() error {
	if c.News.MaxResults <= 0 {
		return fmt.Errorf("news.max_results must be positive, got %d", c.News.MaxResults)
	}
	if err := checkEndpoint("news.endpoint", c.News.Endpoint); err != nil {
		return err
	}
	if c.Papers.MaxResults <= 0 {
		return fmt.Errorf("papers.max_results must be positive, got %d", c.Papers.MaxResults)
	}
	switch c.Papers.SortBy {
	case SortRelevance, SortSubmittedDate, SortLastUpdatedDate:
	default:
		return fmt.Errorf("papers.sort_by %q: want relevance, submittedDate, or lastUpdatedDate", c.Papers.SortBy)
	}
	switch c.Summarizer.Backend {
	case BackendHuggingFace, BackendClaude, BackendGemini, BackendLead:
	default:
		return fmt.Errorf("summarizer.backend %q: want huggingface, claude, gemini, or lead", c.Summarizer.Backend)
	}
	if c.Summarizer.MinChars < 0 {
		return fmt.Errorf("summarizer.min_chars must not be negative")
	}
	if c.Summarizer.MaxInputChars <= 0 {
		return fmt.Errorf("summarizer.max_input_chars must be positive")
	}
	if c.Summarizer.MinLength > c.Summarizer.MaxLength {
		return fmt.Errorf("summarizer.min_length (%d) exceeds max_length (%d)", c.Summarizer.MinLength, c.Summarizer.MaxLength)
	}
	if err := checkEndpoint("summarizer.endpoint", c.Summarizer.Endpoint); err != nil {
		return err
	}
	if c.Pipeline.SummarizeWorkers <= 0 {
		return fmt.Errorf("pipeline.summarize_workers must be positive")
	}
	return nil
}

// checkEndpoint accepts an empty value or an absolute http(s) URL.
func checkEndpoint(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s %q: want an absolute http or https URL", field, raw)
	}
	return nil
}
