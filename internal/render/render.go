// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats pipeline results for the terminal (table, JSON,
// YAML) and for the web UI (HTML).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/nkprajapati01/newssumirizer/internal/apierr"
	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// Format selects the digest output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json, or yaml (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format %q: want table, json, or yaml", s)
	}
}

// unavailable is shown in place of a summary that could not be produced.
const unavailable = "summary unavailable"

// Group is one heading's worth of results.
type Group struct {
	Heading string
	Kind    types.Kind
	Items   []Item
	// Notice is set when the whole source failed.
	Notice string
}

// Item is one rendered result.
type Item struct {
	Title     string
	URL       string
	Origin    string
	Published string
	Authors   string
	Summary   string
	Failed    bool
}

// Groups splits results into the News and Papers groups, in that order,
// keeping result order within each group. Both groups are always present.
func Groups(results []types.SummaryResult) []Group {
	groups := []Group{
		{Heading: "News", Kind: types.KindNews},
		{Heading: "Papers", Kind: types.KindPaper},
	}
	for _, r := range results {
		g := &groups[0]
		if r.Kind == types.KindPaper {
			g = &groups[1]
		}
		if r.SourceFailure() {
			g.Notice = "Could not load " + strings.ToLower(g.Heading) + ": " + apierr.Message(apierr.KindOf(r.Err)) + "."
			continue
		}
		if r.Document == nil {
			continue
		}
		it := Item{
			Title:     r.Document.Title,
			URL:       r.Document.SourceURL,
			Origin:    r.Document.Origin,
			Published: r.Document.Published,
			Authors:   formatAuthors(r.Document.Authors),
			Summary:   r.Summary,
		}
		if !r.OK() {
			it.Summary = unavailable
			it.Failed = true
		}
		g.Items = append(g.Items, it)
	}
	return groups
}

// Write encodes results to w in format f.
func Write(w io.Writer, f Format, topic string, results []types.SummaryResult) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, topic, results)
	case FormatYAML:
		return WriteYAML(w, topic, results)
	default:
		WriteTable(w, topic, results)
		return nil
	}
}

// WriteTable prints one block per group with a title line, origin and
// link, and the wrapped summary.
func WriteTable(w io.Writer, topic string, results []types.SummaryResult) {
	fmt.Fprintf(w, "Topic: %s\n", topic)

	for _, g := range Groups(results) {
		fmt.Fprintf(w, "\n%s\n%s\n", g.Heading, strings.Repeat("-", 78))
		if g.Notice != "" {
			fmt.Fprintf(w, "  %s\n", g.Notice)
			continue
		}
		if len(g.Items) == 0 {
			fmt.Fprintln(w, "  No results found.")
			continue
		}
		for i, it := range g.Items {
			fmt.Fprintf(w, "%2d. %s\n", i+1, truncate(it.Title, 74))
			meta := it.Origin
			if it.Authors != "" {
				meta = it.Authors + ", " + meta
			}
			if it.Published != "" {
				meta += " (" + it.Published + ")"
			}
			if meta != "" {
				fmt.Fprintf(w, "    %s\n", meta)
			}
			if it.URL != "" {
				fmt.Fprintf(w, "    %s\n", it.URL)
			}
			for _, line := range wrap(it.Summary, 74) {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}

	ok, failed := Count(results)
	fmt.Fprintf(w, "\n%d results", ok)
	if failed > 0 {
		fmt.Fprintf(w, " (%d failed)", failed)
	}
	fmt.Fprintln(w)
}

// Count returns the number of successful and failed results.
func Count(results []types.SummaryResult) (ok, failed int) {
	for _, r := range results {
		if r.OK() {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

// resultView is the serialized form of one SummaryResult. Errors are
// flattened to their kind and message.
type resultView struct {
	Kind      types.Kind  `json:"kind" yaml:"kind"`
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	URL       string      `json:"url,omitempty" yaml:"url,omitempty"`
	Origin    string      `json:"origin,omitempty" yaml:"origin,omitempty"`
	Published string      `json:"published,omitempty" yaml:"published,omitempty"`
	Authors   []string    `json:"authors,omitempty" yaml:"authors,omitempty"`
	Summary   string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	ErrorKind apierr.Kind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type digestView struct {
	Topic   string       `json:"topic" yaml:"topic"`
	Results []resultView `json:"results" yaml:"results"`
}

func view(topic string, results []types.SummaryResult) digestView {
	out := digestView{Topic: topic, Results: make([]resultView, 0, len(results))}
	for _, r := range results {
		v := resultView{Kind: r.Kind, Summary: r.Summary}
		if d := r.Document; d != nil {
			v.Title = d.Title
			v.URL = d.SourceURL
			v.Origin = d.Origin
			v.Published = d.Published
			v.Authors = d.Authors
		}
		if r.Err != nil {
			v.ErrorKind = apierr.KindOf(r.Err)
			v.Error = r.Err.Error()
		}
		out.Results = append(out.Results, v)
	}
	return out
}

// WriteJSON writes results as indented JSON.
func WriteJSON(w io.Writer, topic string, results []types.SummaryResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view(topic, results))
}

// WriteYAML writes results as a YAML document.
func WriteYAML(w io.Writer, topic string, results []types.SummaryResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view(topic, results)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// wrap breaks s into lines of at most width runes at word boundaries.
// Words longer than width get a line of their own.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		size := utf8.RuneCountInString(word)
		if n > 0 && n+1+size > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += size
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
