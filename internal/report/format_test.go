package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "markdown-html", want: FormatMarkdownHTML},
		{in: " HTML-Table ", want: FormatHTMLTable},
		{in: "pdf", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "output.md", DefaultOutputPath(FormatMarkdownHTML))
	assert.Equal(t, "output.html", DefaultOutputPath(FormatHTMLTable))
}
