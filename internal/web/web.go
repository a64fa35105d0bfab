// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the single-page UI: a topic form whose submission runs
// the pipeline and renders the grouped summaries below it.
package web

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/internal/logging"
	"github.com/nkprajapati01/newssumirizer/internal/render"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// Runner runs one topic search. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, topic string) ([]types.SummaryResult, error)
}

// Handler serves the UI.
type Handler struct {
	runner Runner
	log    *slog.Logger
	mux    *http.ServeMux
}

// NewHandler returns a handler backed by runner. A nil logger discards output.
func NewHandler(runner Runner, log *slog.Logger) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	h := &Handler{runner: runner, log: log, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.index)
	h.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return h
}

// ServeHTTP recovers from panics in the routes so one bad request does not
// take the server down.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.log.Error("panic recovered", "path", r.URL.Path, "err", err, "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := render.Page{}

	if q.Has("topic") {
		topic := strings.TrimSpace(q.Get("topic"))
		start := time.Now()
		results, err := h.runner.Run(r.Context(), topic)
		switch {
		case apierr.KindOf(err) == apierr.KindValidation:
			page.Notice = "Please enter a topic."
		case err != nil:
			h.log.Error("run failed", "topic", topic, "err", err)
			page.Topic = topic
			page.Notice = "Something went wrong: " + apierr.Message(apierr.KindOf(err)) + "."
		default:
			page = render.NewPage(topic, results)
			ok, failed := render.Count(results)
			h.log.Info("request served", "topic", topic, "ok", ok, "failed", failed,
				"elapsed", time.Since(start).Round(time.Millisecond))
		}
	}

	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, page); err != nil {
		h.log.Error("render failed", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	if log == nil {
		log = logging.Discard()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
