// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw news and paper records into Documents.
// Both functions are total: absent or mistyped fields become empty strings.
package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// News converts one SerpApi result object.
func News(raw types.RawNewsRecord) types.Document {
	return types.Document{
		Title:     cleanText(stringField(raw, "title")),
		SourceURL: strings.TrimSpace(stringField(raw, "link")),
		BodyText:  cleanText(stringField(raw, "snippet")),
		Kind:      types.KindNews,
		Origin:    cleanText(sourceName(raw)),
		Published: strings.TrimSpace(stringField(raw, "date")),
	}
}

// Paper converts one arXiv feed entry.
func Paper(raw types.RawPaperRecord) types.Document {
	var authors []string
	for _, a := range raw.Authors {
		if name := collapseSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	return types.Document{
		Title:     collapseSpace(raw.Title),
		SourceURL: paperURL(raw),
		BodyText:  collapseSpace(raw.Summary),
		Kind:      types.KindPaper,
		Authors:   authors,
		Origin:    "arXiv",
		Published: strings.TrimSpace(raw.Published),
	}
}

// stringField returns raw[key] if it is a string, "" otherwise. Reading a
// nil map is safe.
func stringField(raw types.RawNewsRecord, key string) string {
	s, _ := raw[key].(string)
	return s
}

// sourceName handles both shapes SerpApi uses for "source": a plain string
// on the news vertical, an object with a "name" on Google News results.
func sourceName(raw types.RawNewsRecord) string {
	switch v := raw["source"].(type) {
	case string:
		return v
	case map[string]any:
		name, _ := v["name"].(string)
		return name
	default:
		return ""
	}
}

// paperURL prefers the alternate (abstract page) link, then any link
// without a rel, then the entry id, which arXiv sets to the abstract URL.
func paperURL(raw types.RawPaperRecord) string {
	for _, l := range raw.Links {
		if l.Rel == "alternate" && l.Href != "" {
			return strings.TrimSpace(l.Href)
		}
	}
	for _, l := range raw.Links {
		if l.Rel == "" && l.Href != "" {
			return strings.TrimSpace(l.Href)
		}
	}
	return strings.TrimSpace(raw.ID)
}

// cleanText strips markup and decodes entities when the text contains any,
// then collapses whitespace. Text that fails to parse is kept as-is.
func cleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return collapseSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
