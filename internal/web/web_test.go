// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

type runnerFunc func(ctx context.Context, topic string) ([]types.SummaryResult, error)

func (f runnerFunc) Run(ctx context.Context, topic string) ([]types.SummaryResult, error) {
	return f(ctx, topic)
}

func get(t *testing.T, h http.Handler, target string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndex_FormOnly(t *testing.T) {
	called := false
	h := NewHandler(runnerFunc(func(context.Context, string) ([]types.SummaryResult, error) {
		called = true
		return nil, nil
	}), nil)

	resp, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `name="topic"`)
	assert.NotContains(t, body, "<h2>")
	assert.False(t, called)
}

func TestIndex_RunsTopic(t *testing.T) {
	var gotTopic string
	h := NewHandler(runnerFunc(func(_ context.Context, topic string) ([]types.SummaryResult, error) {
		gotTopic = topic
		return []types.SummaryResult{
			{
				Kind:     types.KindNews,
				Document: &types.Document{Title: "Fusion milestone", SourceURL: "https://example.com/f", Origin: "Wire"},
				Summary:  "Net energy gain reported.",
			},
			{
				Kind:     types.KindNews,
				Document: &types.Document{Title: "Second story"},
				Err:      apierr.Errorf(apierr.KindModel, "summarize", "boom"),
			},
			{
				Kind: types.KindPaper,
				Err:  apierr.Errorf(apierr.KindNetwork, "papers search", "timeout"),
			},
		}, nil
	}), nil)

	resp, body := get(t, h, "/?topic=+nuclear+fusion+")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nuclear fusion", gotTopic)
	assert.Contains(t, body, "<h2>News</h2>")
	assert.Contains(t, body, "<h2>Papers</h2>")
	assert.Contains(t, body, "Net energy gain reported.")
	assert.Contains(t, body, "summary unavailable")
	assert.Contains(t, body, "Could not load papers: service unreachable.")
	assert.Contains(t, body, `value="nuclear fusion"`)
}

func TestIndex_EmptyTopic(t *testing.T) {
	h := NewHandler(runnerFunc(func(context.Context, string) ([]types.SummaryResult, error) {
		return nil, apierr.Errorf(apierr.KindValidation, "pipeline", "topic is empty")
	}), nil)

	resp, body := get(t, h, "/?topic=")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Please enter a topic.")
	assert.NotContains(t, body, "<h2>")
}

func TestIndex_UnexpectedError(t *testing.T) {
	h := NewHandler(runnerFunc(func(context.Context, string) ([]types.SummaryResult, error) {
		return nil, errors.New("boom")
	}), nil)

	_, body := get(t, h, "/?topic=x")
	assert.Contains(t, body, "Something went wrong: service unreachable.")
}

func TestHealthz(t *testing.T) {
	h := NewHandler(nil, nil)
	resp, body := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", body)
}

func TestUnknownPath(t *testing.T) {
	h := NewHandler(nil, nil)
	resp, _ := get(t, h, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPanicRecovered(t *testing.T) {
	h := NewHandler(runnerFunc(func(context.Context, string) ([]types.SummaryResult, error) {
		panic("kaboom")
	}), nil)

	resp, _ := get(t, h, "/?topic=x")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", NewHandler(nil, nil), nil)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
