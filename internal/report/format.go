// Package report turns fetched pipeline logs into the lookback-window report:
// filtering, aggregation and the two output renderings.
package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for a format name outside the supported set.
var ErrUnknownFormat = errors.New("unknown report format")

// Format selects how the report is rendered.
type Format string

const (
	// FormatMarkdownHTML writes a Markdown document and its rendered HTML twin.
	FormatMarkdownHTML Format = "markdown-html"
	// FormatHTMLTable writes a single HTML table document.
	FormatHTMLTable Format = "html-table"
)

// ParseFormat accepts the canonical names case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdownHTML, FormatHTMLTable:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownFormat, s, FormatMarkdownHTML, FormatHTMLTable)
	}
}

// DefaultOutputPath is used when the caller supplies no output path.
func DefaultOutputPath(f Format) string {
	if f == FormatHTMLTable {
		return "output.html"
	}
	return "output.md"
}
