// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/internal/news"
	"github.com/nkprajapati01/newssumirizer/internal/summarize"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

type fakeNews struct {
	recs  []types.RawNewsRecord
	err   error
	block bool
	calls atomic.Int32
}

func (f *fakeNews) Search(ctx context.Context, _ string, maxResults int) ([]types.RawNewsRecord, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recs) > maxResults {
		return f.recs[:maxResults], nil
	}
	return f.recs, nil
}

type fakePapers struct {
	recs  []types.RawPaperRecord
	err   error
	calls atomic.Int32
}

func (f *fakePapers) SearchPapers(_ context.Context, _ string, maxResults int) ([]types.RawPaperRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recs) > maxResults {
		return f.recs[:maxResults], nil
	}
	return f.recs, nil
}

// fakeSummarizer echoes "summary of <text>" and fails for any text
// containing failOn.
type fakeSummarizer struct {
	failOn string
	calls  atomic.Int32
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.calls.Add(1)
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return "", apierr.Errorf(apierr.KindModel, "summarize", "model exploded")
	}
	return "summary of " + text, nil
}

func newsRecords(n int) []types.RawNewsRecord {
	out := make([]types.RawNewsRecord, n)
	for i := range out {
		out[i] = types.RawNewsRecord{
			"title":   fmt.Sprintf("News %d", i+1),
			"link":    fmt.Sprintf("https://example.com/news/%d", i+1),
			"snippet": fmt.Sprintf("news body %d", i+1),
			"source":  "Example Wire",
		}
	}
	return out
}

func paperRecords(n int) []types.RawPaperRecord {
	out := make([]types.RawPaperRecord, n)
	for i := range out {
		out[i] = types.RawPaperRecord{
			ID:      fmt.Sprintf("http://arxiv.org/abs/2401.0000%dv1", i+1),
			Title:   fmt.Sprintf("Paper %d", i+1),
			Summary: fmt.Sprintf("paper abstract %d", i+1),
			Authors: []types.RawAuthor{{Name: "Ada Lovelace"}},
		}
	}
	return out
}

func testConfig() types.Config {
	cfg := types.DefaultConfig()
	cfg.News.MaxResults = 3
	cfg.Papers.MaxResults = 2
	cfg.Pipeline.CallTimeout = 2 * time.Second
	return cfg
}

func TestRun_NewsThenPapersInOrder(t *testing.T) {
	n := &fakeNews{recs: newsRecords(3)}
	p := &fakePapers{recs: paperRecords(2)}
	s := &fakeSummarizer{}

	results, err := New(n, p, s, testConfig(), nil).Run(context.Background(), "quantum computing")
	require.NoError(t, err)
	require.Len(t, results, 5)

	wantTitles := []string{"News 1", "News 2", "News 3", "Paper 1", "Paper 2"}
	for i, r := range results {
		require.True(t, r.OK(), "result %d: %v", i, r.Err)
		require.NotNil(t, r.Document)
		assert.Equal(t, wantTitles[i], r.Document.Title)
		assert.Equal(t, "summary of "+r.Document.BodyText, r.Summary)
	}
	for _, r := range results[:3] {
		assert.Equal(t, types.KindNews, r.Kind)
		assert.Equal(t, "Example Wire", r.Document.Origin)
	}
	for _, r := range results[3:] {
		assert.Equal(t, types.KindPaper, r.Kind)
		assert.Equal(t, "arXiv", r.Document.Origin)
		assert.Equal(t, []string{"Ada Lovelace"}, r.Document.Authors)
	}
	assert.Equal(t, int32(5), s.calls.Load())
}

func TestRun_PaperSourceFailure(t *testing.T) {
	n := &fakeNews{recs: newsRecords(3)}
	p := &fakePapers{err: apierr.Errorf(apierr.KindParse, "arxiv query", "malformed feed")}

	results, err := New(n, p, &fakeSummarizer{}, testConfig(), nil).Run(context.Background(), "quantum")
	require.NoError(t, err)
	require.Len(t, results, 4)

	for _, r := range results[:3] {
		assert.Equal(t, types.KindNews, r.Kind)
		assert.True(t, r.OK())
	}
	last := results[3]
	assert.Equal(t, types.KindPaper, last.Kind)
	assert.True(t, last.SourceFailure())
	assert.Nil(t, last.Document)
	assert.Equal(t, apierr.KindParse, apierr.KindOf(last.Err))
}

func TestRun_NewsSourceFailureKeepsSlot(t *testing.T) {
	n := &fakeNews{err: apierr.Errorf(apierr.KindAuth, "serpapi search", "SerpApi API key is not set")}
	p := &fakePapers{recs: paperRecords(2)}

	results, err := New(n, p, &fakeSummarizer{}, testConfig(), nil).Run(context.Background(), "quantum")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].SourceFailure())
	assert.Equal(t, types.KindNews, results[0].Kind)
	assert.Equal(t, apierr.KindAuth, apierr.KindOf(results[0].Err))
	assert.Equal(t, types.KindPaper, results[1].Kind)
	assert.Equal(t, types.KindPaper, results[2].Kind)
}

func TestRun_UnclassifiedSourceErrorIsNetwork(t *testing.T) {
	n := &fakeNews{recs: newsRecords(1)}
	p := &fakePapers{err: errors.New("connection refused")}

	results, err := New(n, p, &fakeSummarizer{}, testConfig(), nil).Run(context.Background(), "quantum")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, apierr.KindNetwork, apierr.KindOf(results[1].Err))
}

func TestRun_SummaryFailureIsIsolated(t *testing.T) {
	n := &fakeNews{recs: newsRecords(3)}
	p := &fakePapers{recs: paperRecords(2)}
	s := &fakeSummarizer{failOn: "news body 2"}

	results, err := New(n, p, s, testConfig(), nil).Run(context.Background(), "quantum")
	require.NoError(t, err)
	require.Len(t, results, 5)

	failed := results[1]
	assert.False(t, failed.OK())
	assert.False(t, failed.SourceFailure())
	require.NotNil(t, failed.Document)
	assert.Equal(t, "News 2", failed.Document.Title)
	assert.Empty(t, failed.Summary)
	assert.Equal(t, apierr.KindModel, apierr.KindOf(failed.Err))

	for i, r := range results {
		if i == 1 {
			continue
		}
		assert.True(t, r.OK(), "result %d should succeed", i)
	}
}

func TestRun_SummarizerErrorBecomesModelKind(t *testing.T) {
	n := &fakeNews{recs: newsRecords(1)}
	p := &fakePapers{}
	s := summarizerFunc(func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	})

	results, err := New(n, p, s, testConfig(), nil).Run(context.Background(), "quantum")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, apierr.KindModel, apierr.KindOf(results[0].Err))
}

type summarizerFunc func(context.Context, string) (string, error)

func (f summarizerFunc) Summarize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func TestRun_SourceTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Pipeline.CallTimeout = 20 * time.Millisecond

	n := &fakeNews{block: true}
	p := &fakePapers{recs: paperRecords(2)}

	start := time.Now()
	results, err := New(n, p, &fakeSummarizer{}, cfg, nil).Run(context.Background(), "quantum")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	require.Len(t, results, 3)
	assert.True(t, results[0].SourceFailure())
	assert.Equal(t, apierr.KindNetwork, apierr.KindOf(results[0].Err))
	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
	assert.True(t, results[1].OK())
	assert.True(t, results[2].OK())
}

func TestRun_EmptyTopic(t *testing.T) {
	for _, topic := range []string{"", "   ", "\t\n"} {
		n := &fakeNews{recs: newsRecords(3)}
		p := &fakePapers{recs: paperRecords(2)}
		s := &fakeSummarizer{}

		results, err := New(n, p, s, testConfig(), nil).Run(context.Background(), topic)
		require.Error(t, err, "topic %q", topic)
		assert.Nil(t, results)
		assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
		assert.Zero(t, n.calls.Load())
		assert.Zero(t, p.calls.Load())
		assert.Zero(t, s.calls.Load())
	}
}

func TestRun_EmptySources(t *testing.T) {
	results, err := New(&fakeNews{}, &fakePapers{}, &fakeSummarizer{}, testConfig(), nil).Run(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRun_LengthProperty(t *testing.T) {
	cases := []struct {
		name      string
		news      int
		papers    int
		newsErr   error
		paperErr  error
		wantCount int
	}{
		{name: "both ok", news: 3, papers: 2, wantCount: 5},
		{name: "news failed", papers: 2, newsErr: errors.New("down"), wantCount: 3},
		{name: "papers failed", news: 3, paperErr: errors.New("down"), wantCount: 4},
		{name: "both failed", newsErr: errors.New("down"), paperErr: errors.New("down"), wantCount: 2},
		{name: "no results", wantCount: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := &fakeNews{recs: newsRecords(tc.news), err: tc.newsErr}
			p := &fakePapers{recs: paperRecords(tc.papers), err: tc.paperErr}
			results, err := New(n, p, &fakeSummarizer{}, testConfig(), nil).Run(context.Background(), "topic")
			require.NoError(t, err)
			assert.Len(t, results, tc.wantCount)
		})
	}
}

func TestRun_ParallelSummariesKeepOrder(t *testing.T) {
	cfg := testConfig()
	cfg.News.MaxResults = 8
	cfg.Papers.MaxResults = 8
	cfg.Pipeline.SummarizeWorkers = 4

	s := summarizerFunc(func(_ context.Context, text string) (string, error) {
		// Earlier items finish later.
		if strings.HasSuffix(text, " 1") {
			time.Sleep(20 * time.Millisecond)
		}
		return strings.ToUpper(text), nil
	})

	results, err := New(&fakeNews{recs: newsRecords(8)}, &fakePapers{recs: paperRecords(8)}, s, cfg, nil).
		Run(context.Background(), "topic")
	require.NoError(t, err)
	require.Len(t, results, 16)

	for i, r := range results {
		require.True(t, r.OK())
		assert.Equal(t, strings.ToUpper(r.Document.BodyText), r.Summary)
		if i < 8 {
			assert.Equal(t, fmt.Sprintf("News %d", i+1), r.Document.Title)
		} else {
			assert.Equal(t, fmt.Sprintf("Paper %d", i-7), r.Document.Title)
		}
	}
}

func TestRun_WithSerpApiClientAndLeadSummarizer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nws", r.URL.Query().Get("tbm"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"news_results": [
			{"title": "Fusion milestone", "link": "https://example.com/f", "snippet": "Short snippet.", "source": {"name": "Wire"}},
			{"title": "Second story", "link": "https://example.com/s", "snippet": "Another one."}
		]}`)
	}))
	defer ts.Close()

	cfg := testConfig()
	cfg.News.APIKey = "serp-test-key"
	cfg.News.Endpoint = ts.URL
	cfg.Summarizer.Backend = types.BackendLead

	backend, err := summarize.NewBackend(cfg.Summarizer, nil)
	require.NoError(t, err)

	p := New(
		news.NewClient(cfg.News, ts.Client().Transport),
		&fakePapers{recs: paperRecords(1)},
		summarize.New(backend, cfg.Summarizer),
		cfg, nil,
	)

	results, err := p.Run(context.Background(), "fusion")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Fusion milestone", results[0].Document.Title)
	assert.Equal(t, "Wire", results[0].Document.Origin)
	// Below min_chars: returned unchanged.
	assert.Equal(t, "Short snippet.", results[0].Summary)
	assert.Equal(t, "Second story", results[1].Document.Title)
	assert.Equal(t, types.KindPaper, results[2].Kind)
}
