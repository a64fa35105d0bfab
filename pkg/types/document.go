// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data shared between the clients, the pipeline,
// and the presentation layer: raw source records, the normalized Document,
// per-item SummaryResult values, and configuration.
package types

// Kind tags a Document with the source group it came from.
type Kind string

const (
	KindNews  Kind = "news"
	KindPaper Kind = "paper"
)

// Document is a normalized, source-agnostic record. It is built once by the
// normalizer and passed by value afterwards.
type Document struct {
	// Title is the headline or paper title.
	Title string `json:"title" yaml:"title"`

	// SourceURL links to the article or the arXiv abstract page.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// BodyText is the text handed to the summarizer: the news snippet or
	// the paper abstract.
	BodyText string `json:"body_text" yaml:"body_text"`

	// Kind is news or paper.
	Kind Kind `json:"kind" yaml:"kind"`

	// Authors lists paper authors in feed order. Empty for news.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Origin names the publisher (e.g. "Reuters") or "arXiv".
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`

	// Published is the date string as reported by the source.
	Published string `json:"published,omitempty" yaml:"published,omitempty"`
}

// SummaryResult is the pipeline's output for one document, or for a whole
// source that failed. Err == nil means Summary holds the result.
type SummaryResult struct {
	// Kind is the source group, set on every result including source failures.
	Kind Kind

	// Document is nil when the entry stands in for a failed source.
	Document *Document

	// Summary is the summarizer output. Meaningful only when Err is nil.
	Summary string

	// Err is the per-item or per-source failure.
	Err error
}

// OK reports whether the result carries a summary.
func (r SummaryResult) OK() bool { return r.Err == nil }

// SourceFailure reports whether the result is a synthetic entry recording
// that a whole source failed.
func (r SummaryResult) SourceFailure() bool { return r.Document == nil && r.Err != nil }
