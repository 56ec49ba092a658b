// Package output persists rendered reports.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Writer writes report documents to a filesystem.
type Writer struct {
	fs afero.Fs
}

// NewWriter returns a Writer over fs. A nil fs means the OS filesystem.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs}
}

// WriteText replaces the content at path with content, line by line.
// Missing parent directories are created.
func (w *Writer) WriteText(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := w.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	lines := strings.SplitAfter(content, "\n")
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// HTMLSiblingPath derives the HTML twin of a Markdown path: a trailing ".md"
// is replaced by ".html"; any other path gets ".html" appended.
func HTMLSiblingPath(path string) string {
	if strings.HasSuffix(path, ".md") {
		return strings.TrimSuffix(path, ".md") + ".html"
	}
	return path + ".html"
}
