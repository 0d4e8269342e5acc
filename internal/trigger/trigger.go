// Package trigger performs the platform-specific emission of finished
// export artifacts: writing them to a directory or streaming to stdout.
package trigger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MIME types for the supported artifact formats.
const (
	MIMECSV   = "text/csv;charset=utf-8"
	MIMEJSON  = "application/json;charset=utf-8"
	MIMEJSONL = "application/x-ndjson;charset=utf-8"
)

// illegalFilenameChars are characters that cannot appear in filenames
// on common platforms. They are replaced with underscores.
const illegalFilenameChars = `\/:*?"<>|`

// SanitizeFilename replaces characters illegal in filenames with underscores.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if strings.ContainsRune(illegalFilenameChars, r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResultFilename builds the conventional artifact filename for an
// export result: <name>-result.<ext>, sanitized for the filesystem.
func ResultFilename(name, ext string) string {
	if name == "" {
		name = "export"
	}
	return SanitizeFilename(fmt.Sprintf("%s-result.%s", name, ext))
}

// ExtensionFor maps an output format to its file extension.
func ExtensionFor(format string) string {
	switch format {
	case "json":
		return "json"
	case "jsonl":
		return "jsonl"
	default:
		return "csv"
	}
}

// MIMEFor maps an output format to its MIME type.
func MIMEFor(format string) string {
	switch format {
	case "json":
		return MIMEJSON
	case "jsonl":
		return MIMEJSONL
	default:
		return MIMECSV
	}
}

// Writer emits finished artifacts. When Dir is empty the content is
// streamed to Stdout instead of being written to a file.
type Writer struct {
	Dir    string
	Stdout io.Writer
}

// NewWriter creates a Writer targeting the given directory. An empty
// directory means stdout.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Stdout: os.Stdout}
}

// Write emits the artifact and returns the destination path, or "-"
// when the content went to stdout. The MIME type is recorded for
// callers that forward artifacts to transports which need it; the
// filesystem itself ignores it.
func (w *Writer) Write(content, filename, mimeType string) (string, error) {
	_ = mimeType

	if w.Dir == "" {
		out := w.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := io.WriteString(out, content); err != nil {
			return "", fmt.Errorf("failed to write to stdout: %w", err)
		}
		return "-", nil
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.Dir, SanitizeFilename(filename))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}
