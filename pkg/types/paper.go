// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RawNewsRecord is one result object from the SerpApi JSON response, left
// untyped. Field presence and value types are not guaranteed.
type RawNewsRecord map[string]any

// RawPaperRecord is one <entry> of the arXiv Atom feed as decoded, before
// whitespace cleanup.
type RawPaperRecord struct {
	ID        string      `xml:"id"`
	Title     string      `xml:"title"`
	Summary   string      `xml:"summary"`
	Published string      `xml:"published"`
	Updated   string      `xml:"updated"`
	Authors   []RawAuthor `xml:"author"`
	Links     []RawLink   `xml:"link"`
}

// RawAuthor is an Atom <author> element.
type RawAuthor struct {
	Name string `xml:"name"`
}

// RawLink is an Atom <link> element.
type RawLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}
