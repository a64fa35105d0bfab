// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

func TestNews(t *testing.T) {
	raw := types.RawNewsRecord{
		"title":   "Quantum  chip\nbreaks record",
		"link":    " https://example.com/a ",
		"snippet": "A <b>new</b> chip &amp; a new record...",
		"source":  "Example News",
		"date":    "2 hours ago",
	}

	got := News(raw)
	assert.Equal(t, types.Document{
		Title:     "Quantum chip breaks record",
		SourceURL: "https://example.com/a",
		BodyText:  "A new chip & a new record...",
		Kind:      types.KindNews,
		Origin:    "Example News",
		Published: "2 hours ago",
	}, got)
}

func TestNewsMissingAndMistypedFields(t *testing.T) {
	tests := []struct {
		name string
		raw  types.RawNewsRecord
		want types.Document
	}{
		{
			name: "nil record",
			raw:  nil,
			want: types.Document{Kind: types.KindNews},
		},
		{
			name: "empty record",
			raw:  types.RawNewsRecord{},
			want: types.Document{Kind: types.KindNews},
		},
		{
			name: "only title",
			raw:  types.RawNewsRecord{"title": "Headline"},
			want: types.Document{Title: "Headline", Kind: types.KindNews},
		},
		{
			name: "non-string values",
			raw:  types.RawNewsRecord{"title": 42, "link": []any{"x"}, "snippet": nil, "source": 3.5},
			want: types.Document{Kind: types.KindNews},
		},
		{
			name: "source object",
			raw:  types.RawNewsRecord{"title": "T", "source": map[string]any{"name": "Reuters", "icon": "x.png"}},
			want: types.Document{Title: "T", Kind: types.KindNews, Origin: "Reuters"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { News(tt.raw) })
			assert.Equal(t, tt.want, News(tt.raw))
		})
	}
}

func TestPaper(t *testing.T) {
	raw := types.RawPaperRecord{
		ID:        "http://arxiv.org/abs/1706.03762v1",
		Title:     "Attention Is All\n      You Need",
		Summary:   "  We propose a new\n  architecture.  ",
		Published: "2017-06-12T17:57:34Z",
		Authors:   []types.RawAuthor{{Name: " Ashish Vaswani "}, {Name: ""}, {Name: "Noam Shazeer"}},
		Links: []types.RawLink{
			{Href: "http://arxiv.org/pdf/1706.03762v1", Rel: "related", Title: "pdf"},
			{Href: "http://arxiv.org/abs/1706.03762v1", Rel: "alternate"},
		},
	}

	got := Paper(raw)
	assert.Equal(t, types.Document{
		Title:     "Attention Is All You Need",
		SourceURL: "http://arxiv.org/abs/1706.03762v1",
		BodyText:  "We propose a new architecture.",
		Kind:      types.KindPaper,
		Authors:   []string{"Ashish Vaswani", "Noam Shazeer"},
		Origin:    "arXiv",
		Published: "2017-06-12T17:57:34Z",
	}, got)
}

func TestPaperURLFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  types.RawPaperRecord
		want string
	}{
		{"alternate wins", types.RawPaperRecord{ID: "id", Links: []types.RawLink{{Href: "plain"}, {Href: "alt", Rel: "alternate"}}}, "alt"},
		{"link without rel", types.RawPaperRecord{ID: "id", Links: []types.RawLink{{Href: "pdf", Rel: "related"}, {Href: "plain"}}}, "plain"},
		{"entry id", types.RawPaperRecord{ID: " http://arxiv.org/abs/2301.07041v1 "}, "http://arxiv.org/abs/2301.07041v1"},
		{"nothing", types.RawPaperRecord{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paperURL(tt.raw))
		})
	}
}

func TestPaperEmptyRecord(t *testing.T) {
	got := Paper(types.RawPaperRecord{})
	assert.Equal(t, types.Document{Kind: types.KindPaper, Origin: "arXiv"}, got)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"  spaced \n\t out ", "spaced out"},
		{"Q&amp;A session", "Q&A session"},
		{"<em>bold</em> claim", "bold claim"},
		{"a < b and c", "a < b and c"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}
