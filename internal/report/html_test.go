package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTML(t *testing.T) {
	md := renderExample(t, exampleLogs(), false)

	html, err := MarkdownToHTML(context.Background(), md)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Pipeline Execution Report</title>")
	assert.Contains(t, html, "<h1>Pipeline Execution Report</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>message</th>")
	assert.Contains(t, html, "<td>timeout</td>")
	assert.Contains(t, html, "<li>Total executions: 2</li>")
	assert.NotContains(t, html, "html_document")
}

func TestMarkdownToHTML_EscapesRawHTML(t *testing.T) {
	html, err := MarkdownToHTML(context.Background(), "---\ntitle: a<b\n---\n\n<script>alert(1)</script>\n")
	require.NoError(t, err)

	assert.Contains(t, html, "<title>a&lt;b</title>")
	assert.NotContains(t, html, "<script>")
}

func TestMarkdownToHTML_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MarkdownToHTML(ctx, "# title\n")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarkdownToHTML_ExpiredDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := MarkdownToHTML(ctx, "# title\n")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConvertMarkdown_LargeDocument(t *testing.T) {
	md := strings.Repeat("- item with `code` and **bold**\n", 5000)

	html, err := convertMarkdown(context.Background(), md)
	require.NoError(t, err)
	assert.Equal(t, 5000, strings.Count(html, "<li>"))
}

func TestRenderHTMLTable(t *testing.T) {
	kept, _ := FilterWindow(exampleLogs(), refNow)

	html, err := RenderHTMLTable(Project(kept), "Pipeline Execution Report")
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Pipeline Execution Report</title>")
	assert.Contains(t, html, "<th>numberOfExecution</th>")
	assert.Equal(t, 2, strings.Count(html, "<tr><td>"))
	assert.Contains(t, html, "<tr><td>2</td><td>ETL_DAILY</td><td>fail</td><td>timeout</td><td>2026-10-19 10:00:00</td><td>2</td></tr>")
	assert.Contains(t, html, "<tr><td>1</td><td>ETL_DAILY</td><td>ok</td><td></td><td>2026-10-19 11:00:00</td><td>2</td></tr>")
}

func TestRenderHTMLTable_EscapesCells(t *testing.T) {
	rows := Project(exampleLogs()[1:2])
	*rows[0].Message = "<b>boom</b>"

	html, err := RenderHTMLTable(rows, "t")
	require.NoError(t, err)
	assert.Contains(t, html, "&lt;b&gt;boom&lt;/b&gt;")
}

func TestRenderHTMLTable_Empty(t *testing.T) {
	html, err := RenderHTMLTable(nil, "Empty")
	require.NoError(t, err)

	assert.Contains(t, html, "<thead>")
	assert.NotContains(t, html, "<tr><td>")
}
