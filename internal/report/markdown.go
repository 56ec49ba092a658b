package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-pipelinereport/internal/models"

	"gopkg.in/yaml.v3"
)

// TimestampLayout formats every instant printed in a report.
const TimestampLayout = "2006-01-02 15:04:05"

// Sentences printed in place of an empty list or table.
const (
	NoErrorsSentence     = "No errors recorded in the last 24 hours."
	NoExecutionsSentence = "No executions recorded in the last 24 hours."
)

// DetailColumns are the columns of the Markdown detail table, in order.
var DetailColumns = []string{"id", "symbol", "status", "message", "timestamp"}

// FrontMatter is the metadata block at the top of the Markdown document.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Date   string `yaml:"date"`
	Output string `yaml:"output"`
}

// MarkdownDocument is the input of RenderMarkdown.
type MarkdownDocument struct {
	Title       string
	GeneratedAt time.Time
	Summary     Summary
	Records     []models.PipelineLog
	// EscapePipes backslash-escapes "|" inside table cells. When false a cell
	// containing "|" adds columns to its row and breaks the table.
	EscapePipes bool
}

// RenderMarkdown builds the report document: front matter, header, summary,
// error messages and the detail table.
func RenderMarkdown(doc MarkdownDocument) (string, error) {
	generated := doc.GeneratedAt.UTC().Format(TimestampLayout)
	fm, err := yaml.Marshal(FrontMatter{
		Title:  doc.Title,
		Date:   generated,
		Output: "html_document",
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "Report generated at %s UTC.\n\n", generated)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total executions: %d\n", doc.Summary.TotalExecutions)
	fmt.Fprintf(&b, "- Successful executions: %d\n", doc.Summary.SuccessfulExecutions)
	fmt.Fprintf(&b, "- Failed executions: %d\n\n", doc.Summary.FailedExecutions)

	b.WriteString("## Error Messages\n\n")
	if len(doc.Summary.ErrorMessages) == 0 {
		b.WriteString(NoErrorsSentence + "\n\n")
	} else {
		for _, msg := range doc.Summary.ErrorMessages {
			fmt.Fprintf(&b, "- %s\n", strings.ReplaceAll(msg, "\n", " "))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Detailed Executions\n\n")
	if len(doc.Records) == 0 {
		b.WriteString(NoExecutionsSentence + "\n")
		return b.String(), nil
	}
	writeTable(&b, doc.Records, doc.EscapePipes)
	return b.String(), nil
}

func writeTable(b *strings.Builder, records []models.PipelineLog, escapePipes bool) {
	b.WriteString(strings.Join(DetailColumns, "|") + "\n")
	sep := make([]string, len(DetailColumns))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString(strings.Join(sep, "|") + "\n")

	for _, rec := range records {
		cells := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Symbol,
			rec.Status,
			rec.MessageOrEmpty(),
			rec.Timestamp.Time.UTC().Format(TimestampLayout),
		}
		for i, c := range cells {
			c = strings.ReplaceAll(c, "\n", " ")
			if escapePipes {
				c = strings.ReplaceAll(c, "|", `\|`)
			}
			cells[i] = c
		}
		b.WriteString(strings.Join(cells, "|") + "\n")
	}
}

// splitFrontMatter separates a leading "---" block from the Markdown body.
func splitFrontMatter(md string) (FrontMatter, string, error) {
	var fm FrontMatter
	if !strings.HasPrefix(md, "---\n") {
		return fm, md, nil
	}
	rest := md[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return fm, md, fmt.Errorf("unterminated front matter")
	}
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return fm, md, fmt.Errorf("failed to decode front matter: %w", err)
	}
	return fm, rest[end+len("\n---\n"):], nil
}
