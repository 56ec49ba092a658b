package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go-pipelinereport/internal/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// TableColumns are the columns of the HTML table report, in order.
var TableColumns = []string{"id", "symbol", "status", "message", "timestamp", "numberOfExecution"}

var markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

var templateFuncs = template.FuncMap{
	"message": func(m *string) string {
		if m == nil {
			return ""
		}
		return *m
	},
	"ts": func(t time.Time) string { return t.UTC().Format(TimestampLayout) },
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}</body>
</html>
`))

var tableTemplate = template.Must(template.New("table").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<table border="1">
<thead>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Symbol}}</td><td>{{.Status}}</td><td>{{message .Message}}</td><td>{{ts .Timestamp}}</td><td>{{.NumberOfExecution}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// MarkdownToHTML renders a Markdown document (optionally with front matter)
// into a standalone HTML page titled from the front matter.
func MarkdownToHTML(ctx context.Context, md string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return "", context.DeadlineExceeded
	}
	fm, body, err := splitFrontMatter(md)
	if err != nil {
		return "", err
	}

	rendered, err := convertMarkdown(ctx, body)
	if err != nil {
		return "", err
	}

	var page bytes.Buffer
	err = pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: fm.Title,
		Body:  template.HTML(rendered), // goldmark escapes raw HTML by default
	})
	if err != nil {
		return "", fmt.Errorf("failed to render html page: %w", err)
	}
	return page.String(), nil
}

// convertMarkdown runs goldmark off the caller's goroutine so ctx can abandon
// a conversion that is still running. The buffered channel lets the worker exit.
func convertMarkdown(ctx context.Context, body string) (string, error) {
	type conversion struct {
		html string
		err  error
	}
	done := make(chan conversion, 1)
	go func() {
		var buf bytes.Buffer
		err := markdownEngine.Convert([]byte(body), &buf)
		done <- conversion{html: buf.String(), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("markdown conversion failed: %w", res.err)
		}
		return res.html, nil
	}
}

// RenderHTMLTable renders rows as an HTML document holding a single table.
func RenderHTMLTable(rows []models.ReportRow, title string) (string, error) {
	var out bytes.Buffer
	err := tableTemplate.Execute(&out, struct {
		Title   string
		Columns []string
		Rows    []models.ReportRow
	}{
		Title:   title,
		Columns: TableColumns,
		Rows:    rows,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render html table: %w", err)
	}
	return out.String(), nil
}
