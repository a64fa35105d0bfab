// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// LeadBackend is a local extractive summarizer: it keeps the leading
// sentences of the text up to a character budget. It needs no network and
// never fails, which makes it the offline choice.
type LeadBackend struct {
	maxChars int
}

// NewLeadBackend sizes the budget from cfg.MaxLength, treating one model
// token as roughly four characters.
func NewLeadBackend(cfg types.SummarizerConfig) *LeadBackend {
	maxChars := cfg.MaxLength * 4
	if maxChars <= 0 {
		maxChars = 600
	}
	return &LeadBackend{maxChars: maxChars}
}

// Name returns the backend identifier.
func (b *LeadBackend) Name() string { return "lead" }

// Summarize returns whole leading sentences that fit the budget. The first
// sentence is always kept, cut at the budget if it alone is too long.
func (b *LeadBackend) Summarize(_ context.Context, text string) (string, error) {
	var out strings.Builder
	n := 0
	for i, s := range splitSentences(text) {
		size := utf8.RuneCountInString(s)
		if i == 0 {
			if size > b.maxChars {
				return truncateRunes(s, b.maxChars), nil
			}
			out.WriteString(s)
			n = size
			continue
		}
		if n+1+size > b.maxChars {
			break
		}
		out.WriteByte(' ')
		out.WriteString(s)
		n += 1 + size
	}
	return out.String(), nil
}

// splitSentences breaks text after '.', '!' or '?' when followed by
// whitespace. Whitespace inside sentences is collapsed.
func splitSentences(text string) []string {
	words := strings.Fields(text)
	var sentences []string
	var cur []string
	for _, w := range words {
		cur = append(cur, w)
		last, _ := utf8.DecodeLastRuneInString(w)
		if last == '.' || last == '!' || last == '?' {
			sentences = append(sentences, strings.Join(cur, " "))
			cur = nil
		}
	}
	if len(cur) > 0 {
		sentences = append(sentences, strings.Join(cur, " "))
	}
	return sentences
}

