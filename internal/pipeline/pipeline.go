// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one topic search: it queries the news and paper
// sources, normalizes every record into a Document, summarizes each one,
// and returns the results news-first, each group in source order.
//
// Failures are isolated. A failing source becomes a single result with no
// Document; a failing summary becomes an error on that item only.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/internal/logging"
	"github.com/nkprajapati01/newssumirizer/internal/normalize"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// NewsSearcher returns raw news records for a topic.
type NewsSearcher interface {
	Search(ctx context.Context, topic string, maxResults int) ([]types.RawNewsRecord, error)
}

// PaperSearcher returns raw paper records for a topic.
type PaperSearcher interface {
	SearchPapers(ctx context.Context, topic string, maxResults int) ([]types.RawPaperRecord, error)
}

// Summarizer turns document text into a summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Pipeline wires the sources and the summarizer together.
type Pipeline struct {
	news       NewsSearcher
	papers     PaperSearcher
	summarizer Summarizer

	maxNews     int
	maxPapers   int
	callTimeout time.Duration
	workers     int

	log *slog.Logger
}

// New returns a pipeline. A nil logger discards output.
func New(news NewsSearcher, papers PaperSearcher, summarizer Summarizer, cfg types.Config, log *slog.Logger) *Pipeline {
	if log == nil {
		log = logging.Discard()
	}
	workers := cfg.Pipeline.SummarizeWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		news:        news,
		papers:      papers,
		summarizer:  summarizer,
		maxNews:     cfg.News.MaxResults,
		maxPapers:   cfg.Papers.MaxResults,
		callTimeout: cfg.Pipeline.CallTimeout,
		workers:     workers,
		log:         log,
	}
}

// Run searches both sources for topic and summarizes every result.
//
// An empty or blank topic short-circuits: no source is called and Run
// returns a KindValidation error. Every other failure is reported inside
// the returned results.
func (p *Pipeline) Run(ctx context.Context, topic string) ([]types.SummaryResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apierr.Errorf(apierr.KindValidation, "pipeline", "topic is empty")
	}

	log := p.log.With("run_id", uuid.NewString(), "topic", topic)
	start := time.Now()
	log.Info("searching")

	var (
		newsRecs  []types.RawNewsRecord
		paperRecs []types.RawPaperRecord
		newsErr   error
		paperErr  error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		ctx, cancel := p.withTimeout(ctx)
		defer cancel()
		newsRecs, newsErr = p.news.Search(ctx, topic, p.maxNews)
	})
	wg.Go(func() {
		ctx, cancel := p.withTimeout(ctx)
		defer cancel()
		paperRecs, paperErr = p.papers.SearchPapers(ctx, topic, p.maxPapers)
	})
	wg.Wait()

	pending := make([]types.SummaryResult, 0, len(newsRecs)+len(paperRecs)+2)

	if newsErr != nil {
		pending = append(pending, p.sourceFailure(log, types.KindNews, "news", newsErr))
	} else {
		for _, r := range newsRecs {
			doc := normalize.News(r)
			pending = append(pending, types.SummaryResult{Kind: types.KindNews, Document: &doc})
		}
	}

	if paperErr != nil {
		pending = append(pending, p.sourceFailure(log, types.KindPaper, "papers", paperErr))
	} else {
		for _, r := range paperRecs {
			doc := normalize.Paper(r)
			pending = append(pending, types.SummaryResult{Kind: types.KindPaper, Document: &doc})
		}
	}

	mapper := iter.Mapper[types.SummaryResult, types.SummaryResult]{MaxGoroutines: p.workers}
	results := mapper.Map(pending, func(r *types.SummaryResult) types.SummaryResult {
		if r.Document == nil {
			return *r
		}
		return p.summarize(ctx, log, *r)
	})

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	log.Info("run complete",
		"news", len(newsRecs), "papers", len(paperRecs),
		"results", len(results), "failed", failed,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return results, nil
}

func (p *Pipeline) summarize(ctx context.Context, log *slog.Logger, r types.SummaryResult) types.SummaryResult {
	summary, err := p.summarizer.Summarize(ctx, r.Document.BodyText)
	if err != nil {
		if apierr.KindOf(err) != apierr.KindModel {
			err = apierr.New(apierr.KindModel, "summarize", err)
		}
		log.Warn("summary failed", "kind", r.Kind, "title", r.Document.Title, "err", err)
		r.Err = err
		return r
	}
	r.Summary = summary
	return r
}

func (p *Pipeline) sourceFailure(log *slog.Logger, kind types.Kind, source string, err error) types.SummaryResult {
	err = apierr.Classify(source+" search", err)
	log.Warn("source failed", "source", source, "kind", apierr.KindOf(err), "err", err)
	return types.SummaryResult{Kind: kind, Err: err}
}

func (p *Pipeline) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.callTimeout)
}
