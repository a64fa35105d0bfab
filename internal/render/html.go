// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/nkprajapati01/newssumirizer/pkg/types"
)

// Page is the data behind the web UI.
type Page struct {
	Topic  string
	Notice string
	Groups []Group
	// Searched is false on the initial form-only page.
	Searched bool
}

// NewPage builds a results page for topic.
func NewPage(topic string, results []types.SummaryResult) Page {
	return Page{Topic: topic, Groups: Groups(results), Searched: true}
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Topic}}{{.Topic}} | {{end}}News &amp; Research Summarizer</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
form { display: flex; gap: .5rem; margin-bottom: 1.5rem; }
input[type=text] { flex: 1; padding: .4rem; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: .2rem; }
.item { margin-bottom: 1.2rem; }
.meta { color: #666; font-size: .9rem; }
.failed { color: #a33; font-style: italic; }
.notice { color: #a33; }
</style>
</head>
<body>
<h1>News &amp; Research Summarizer</h1>
<form method="get" action="/">
<input type="text" name="topic" value="{{.Topic}}" placeholder="Enter a topic, e.g. quantum computing" autofocus>
<button type="submit">Summarize</button>
</form>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
{{if .Searched}}{{range .Groups}}
<section>
<h2>{{.Heading}}</h2>
{{if .Notice}}<p class="notice">{{.Notice}}</p>
{{else if not .Items}}<p>No results found.</p>
{{else}}{{range .Items}}<div class="item">
<h3>{{if .URL}}<a href="{{.URL}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</h3>
<div class="meta">{{if .Authors}}{{.Authors}}, {{end}}{{.Origin}}{{if .Published}} ({{.Published}}){{end}}</div>
{{if .Failed}}<p class="failed">{{.Summary}}</p>{{else}}<p>{{.Summary}}</p>{{end}}
</div>
{{end}}{{end}}</section>
{{end}}{{end}}
</body>
</html>
`))

// WriteHTML renders p as a complete HTML page.
func WriteHTML(w io.Writer, p Page) error {
	if err := pageTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
