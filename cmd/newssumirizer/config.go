// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/viper"

	"github.com/nkprajapati01/newssumirizer/internal/arxiv"
	"github.com/nkprajapati01/newssumirizer/internal/news"
	"github.com/nkprajapati01/newssumirizer/internal/pipeline"
	"github.com/nkprajapati01/newssumirizer/internal/secrets"
	"github.com/nkprajapati01/newssumirizer/internal/summarize"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// setDefaults registers every config key with viper so that env variables
// (NEWSSUMIRIZER_NEWS_MAX_RESULTS etc.) are picked up by AutomaticEnv.
func setDefaults(d types.Config) {
	viper.SetDefault("news.api_key", "")
	viper.SetDefault("news.max_results", d.News.MaxResults)
	viper.SetDefault("news.endpoint", d.News.Endpoint)
	viper.SetDefault("news.language", d.News.Language)
	viper.SetDefault("news.country", d.News.Country)
	viper.SetDefault("news.timeout", d.News.Timeout)
	viper.SetDefault("news.max_retries", d.News.MaxRetries)

	viper.SetDefault("papers.max_results", d.Papers.MaxResults)
	viper.SetDefault("papers.sort_by", string(d.Papers.SortBy))
	viper.SetDefault("papers.timeout", d.Papers.Timeout)
	viper.SetDefault("papers.max_retries", d.Papers.MaxRetries)

	viper.SetDefault("summarizer.backend", string(d.Summarizer.Backend))
	viper.SetDefault("summarizer.model", d.Summarizer.Model)
	viper.SetDefault("summarizer.api_key", "")
	viper.SetDefault("summarizer.endpoint", d.Summarizer.Endpoint)
	viper.SetDefault("summarizer.min_chars", d.Summarizer.MinChars)
	viper.SetDefault("summarizer.max_input_chars", d.Summarizer.MaxInputChars)
	viper.SetDefault("summarizer.min_length", d.Summarizer.MinLength)
	viper.SetDefault("summarizer.max_length", d.Summarizer.MaxLength)
	viper.SetDefault("summarizer.timeout", d.Summarizer.Timeout)
	viper.SetDefault("summarizer.max_retries", d.Summarizer.MaxRetries)

	viper.SetDefault("pipeline.call_timeout", d.Pipeline.CallTimeout)
	viper.SetDefault("pipeline.summarize_workers", d.Pipeline.SummarizeWorkers)

	viper.SetDefault("http.user_agent", d.News.UserAgent)
	viper.SetDefault("log.level", d.LogLevel)
	viper.SetDefault("serve.addr", d.ListenAddr)
}

// loadConfig builds a Config from viper and the loaded secrets. Config
// values take precedence over secrets for API keys.
func loadConfig() (types.Config, error) {
	ua := viper.GetString("http.user_agent")

	cfg := types.Config{
		News: types.NewsConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("news.timeout"),
				UserAgent:  ua,
				MaxRetries: viper.GetInt("news.max_retries"),
			},
			APIKey:     firstNonEmpty(viper.GetString("news.api_key"), loadedSecrets.Get(secrets.SerpAPIKey)),
			MaxResults: viper.GetInt("news.max_results"),
			Endpoint:   viper.GetString("news.endpoint"),
			Language:   viper.GetString("news.language"),
			Country:    viper.GetString("news.country"),
		},
		Papers: types.PaperConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("papers.timeout"),
				UserAgent:  ua,
				MaxRetries: viper.GetInt("papers.max_retries"),
			},
			MaxResults: viper.GetInt("papers.max_results"),
			SortBy:     types.PaperSort(viper.GetString("papers.sort_by")),
		},
		Summarizer: types.SummarizerConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    viper.GetDuration("summarizer.timeout"),
				UserAgent:  ua,
				MaxRetries: viper.GetInt("summarizer.max_retries"),
			},
			Backend:       types.SummarizerBackend(viper.GetString("summarizer.backend")),
			Model:         viper.GetString("summarizer.model"),
			Endpoint:      viper.GetString("summarizer.endpoint"),
			MinChars:      viper.GetInt("summarizer.min_chars"),
			MaxInputChars: viper.GetInt("summarizer.max_input_chars"),
			MinLength:     viper.GetInt("summarizer.min_length"),
			MaxLength:     viper.GetInt("summarizer.max_length"),
		},
		Pipeline: types.PipelineConfig{
			CallTimeout:      viper.GetDuration("pipeline.call_timeout"),
			SummarizeWorkers: viper.GetInt("pipeline.summarize_workers"),
		},
		LogLevel:   viper.GetString("log.level"),
		ListenAddr: viper.GetString("serve.addr"),
	}
	cfg.Summarizer.APIKey = firstNonEmpty(viper.GetString("summarizer.api_key"), summarizerKey(cfg.Summarizer.Backend))

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// summarizerKey returns the secret matching backend. Hugging Face works
// without a key at a lower rate limit; lead needs none.
func summarizerKey(backend types.SummarizerBackend) string {
	switch backend {
	case types.BackendHuggingFace:
		return loadedSecrets.Get(secrets.HuggingFaceKey)
	case types.BackendClaude:
		return loadedSecrets.Get(secrets.AnthropicKey)
	case types.BackendGemini:
		return loadedSecrets.Get(secrets.GeminiKey)
	default:
		return ""
	}
}

// newPipeline wires the clients and the summarizer for cfg.
func newPipeline(cfg types.Config, log *slog.Logger) (*pipeline.Pipeline, error) {
	backend, err := summarize.NewBackend(cfg.Summarizer, nil)
	if err != nil {
		return nil, err
	}
	log.Debug("pipeline configured",
		"summarizer", backend.Name(),
		"max_news", cfg.News.MaxResults, "max_papers", cfg.Papers.MaxResults,
		"news_key_set", cfg.News.APIKey != "")

	return pipeline.New(
		news.NewClient(cfg.News, nil),
		arxiv.NewClient(cfg.Papers, &http.Client{Timeout: cfg.Papers.Timeout}),
		summarize.New(backend, cfg.Summarizer),
		cfg, log,
	), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
