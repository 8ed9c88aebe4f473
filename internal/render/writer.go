package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/schemagen-labs/schemagen/internal/selector"
	"github.com/schemagen-labs/schemagen/pkg/schema"
)

const timestampLayout = "2006-01-02 15:04:05"

// Writer writes the documentation set of each source into its own folder
// under an output root. Folder names are unique per Writer.
type Writer struct {
	Fs  afero.Fs
	Now func() time.Time
	Log io.Writer

	used map[string]int
}

// NewWriter returns a Writer on fs that reports progress to log.
func NewWriter(fs afero.Fs, log io.Writer) *Writer {
	return &Writer{Fs: fs, Now: time.Now, Log: log}
}

// WriteAll renders src into <outDir>/<folder>/ and returns the folder path.
// name is the source type's simple name.
func (w *Writer) WriteAll(name string, src schema.Source, outDir string) (string, error) {
	m := src.Model()
	if m == nil {
		return "", fmt.Errorf("source %s returned no model", name)
	}

	dir := filepath.Join(outDir, w.folder(name))
	if err := w.Fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	ts := now()

	w.logf("Generating schema documentation for %s...\n", name)
	files := []struct {
		label, file, content string
	}{
		{"Markdown", MarkdownFile, Markdown(name, m, ts)},
		{"Mermaid ERD", DiagramFile, Mermaid(m, ts)},
		{"SQL DDL", DDLFile, DDL(name, m, ts)},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.file)
		if err := afero.WriteFile(w.Fs, path, []byte(f.content), 0644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		w.logf("  %s: %s\n", f.label, path)
	}
	w.logf("Schema documentation generated in: %s\n\n", dir)
	return dir, nil
}

// FolderName returns the folder for a source type name: the name without a
// DbContext or Context suffix, lowercased.
func FolderName(name string) string {
	return strings.ToLower(selector.ShortName(name))
}

func (w *Writer) folder(name string) string {
	base := FolderName(name)
	if w.used == nil {
		w.used = make(map[string]int)
	}
	w.used[base]++
	if n := w.used[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}

func (w *Writer) logf(format string, args ...interface{}) {
	if w.Log != nil {
		fmt.Fprintf(w.Log, format, args...)
	}
}
