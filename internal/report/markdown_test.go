package report

import (
	"strings"
	"testing"
	"time"

	"go-pipelinereport/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderExample(t *testing.T, records []models.PipelineLog, escape bool) string {
	t.Helper()
	kept, _ := FilterWindow(records, refNow)
	md, err := RenderMarkdown(MarkdownDocument{
		Title:       "Pipeline Execution Report",
		GeneratedAt: refNow,
		Summary:     Summarize(kept),
		Records:     kept,
		EscapePipes: escape,
	})
	require.NoError(t, err)
	return md
}

func TestRenderMarkdown_Example(t *testing.T) {
	md := renderExample(t, exampleLogs(), false)

	fm, body, err := splitFrontMatter(md)
	require.NoError(t, err)
	assert.Equal(t, "Pipeline Execution Report", fm.Title)
	assert.Equal(t, "2026-10-19 12:00:00", fm.Date)
	assert.Equal(t, "html_document", fm.Output)

	assert.Contains(t, body, "# Pipeline Execution Report\n")
	assert.Contains(t, body, "Report generated at 2026-10-19 12:00:00 UTC.")
	assert.Contains(t, body, "- Total executions: 2\n")
	assert.Contains(t, body, "- Successful executions: 1\n")
	assert.Contains(t, body, "- Failed executions: 1\n")
	assert.Contains(t, body, "## Error Messages\n\n- timeout\n")
	assert.NotContains(t, body, NoErrorsSentence)

	assert.Contains(t, body, "id|symbol|status|message|timestamp\n---|---|---|---|---\n")
	assert.Contains(t, body, "1|ETL_DAILY|ok||2026-10-19 11:00:00\n")
	assert.Contains(t, body, "2|ETL_DAILY|fail|timeout|2026-10-19 10:00:00\n")
	assert.NotContains(t, body, "|2026-10-18 06:00:00")
}

func TestRenderMarkdown_EmptyWindow(t *testing.T) {
	old := []models.PipelineLog{logAt(1, "ok", nil, refNow.Add(-48*time.Hour))}

	md := renderExample(t, old, false)

	assert.Contains(t, md, "- Total executions: 0\n")
	assert.Contains(t, md, "- Successful executions: 0\n")
	assert.Contains(t, md, "- Failed executions: 0\n")
	assert.Contains(t, md, NoErrorsSentence)
	assert.Contains(t, md, NoExecutionsSentence)
	assert.NotContains(t, md, "---|---")
}

func TestRenderMarkdown_PipeInMessage(t *testing.T) {
	records := []models.PipelineLog{
		logAt(7, "fail", strPtr("a|b"), refNow.Add(-time.Hour)),
	}

	t.Run("unescaped adds a column", func(t *testing.T) {
		md := renderExample(t, records, false)
		line := tableLine(t, md, "7|")
		assert.Equal(t, len(DetailColumns)+1, len(strings.Split(line, "|")))
	})

	t.Run("escaped keeps the column count", func(t *testing.T) {
		md := renderExample(t, records, true)
		line := tableLine(t, md, "7|")
		assert.Contains(t, line, `a\|b`)
		assert.Equal(t, len(DetailColumns), len(strings.Split(strings.ReplaceAll(line, `\|`, ""), "|")))
	})
}

func TestRenderMarkdown_NewlinesStayOnOneRow(t *testing.T) {
	records := []models.PipelineLog{
		logAt(9, "fail", strPtr("line one\nline two"), refNow.Add(-time.Hour)),
	}

	md := renderExample(t, records, false)

	assert.Contains(t, md, "- line one line two\n")
	assert.Contains(t, md, "9|ETL_DAILY|fail|line one line two|")
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	first := renderExample(t, exampleLogs(), false)
	second := renderExample(t, exampleLogs(), false)
	assert.Equal(t, first, second)
}

func TestSplitFrontMatter(t *testing.T) {
	fm, body, err := splitFrontMatter("# no front matter\n")
	require.NoError(t, err)
	assert.Empty(t, fm.Title)
	assert.Equal(t, "# no front matter\n", body)

	_, _, err = splitFrontMatter("---\ntitle: x\n# never closed\n")
	assert.Error(t, err)
}

func tableLine(t *testing.T, md, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("no table line starting with %q", prefix)
	return ""
}
