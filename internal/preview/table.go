// Package preview renders discovered rows as an aligned text table for
// terminal inspection before an export is written.
package preview

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/dbsmedya/goexport/internal/export"
)

// Options controls table rendering.
type Options struct {
	MaxRows      int
	MaxColumns   int
	MaxCellWidth int
	Color        bool
}

// DefaultOptions returns rendering defaults suitable for a terminal.
func DefaultOptions() *Options {
	return &Options{
		MaxRows:      10,
		MaxColumns:   8,
		MaxCellWidth: 24,
		Color:        true,
	}
}

// Render builds a preview table from discovered rows. Rows are
// flattened the same way the CSV formatter flattens them, so the
// preview shows exactly the columns an export would produce.
func Render(rows []any, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}

	flat := make([]*export.Object, 0, len(rows))
	for _, row := range rows {
		flat = append(flat, export.Flatten(row))
	}

	headers := collectHeaders(flat, opts.MaxColumns)
	if len(headers) == 0 {
		return "(no columns)\n"
	}

	shown := len(flat)
	if opts.MaxRows > 0 && shown > opts.MaxRows {
		shown = opts.MaxRows
	}

	// Compute column widths over headers and the shown rows.
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = cellWidth(h, opts.MaxCellWidth)
	}
	cells := make([][]string, shown)
	for r := 0; r < shown; r++ {
		cells[r] = make([]string, len(headers))
		for i, h := range headers {
			text := cellText(flat[r], h)
			text = truncate(text, opts.MaxCellWidth)
			cells[r][i] = text
			if w := runewidth.StringWidth(text); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	// Header line
	headerCells := make([]string, len(headers))
	for i, h := range headers {
		label := runewidth.FillRight(truncate(h, opts.MaxCellWidth), widths[i])
		if opts.Color {
			label = color.Bold.Render(label)
		}
		headerCells[i] = label
	}
	b.WriteString(strings.Join(headerCells, "  "))
	b.WriteString("\n")

	// Separator
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(sep, "  "))
	b.WriteString("\n")

	// Data lines
	for r := 0; r < shown; r++ {
		line := make([]string, len(headers))
		for i := range headers {
			line[i] = runewidth.FillRight(cells[r][i], widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(line, "  "), " "))
		b.WriteString("\n")
	}

	if hidden := len(flat) - shown; hidden > 0 {
		b.WriteString(fmt.Sprintf("... %d more rows\n", hidden))
	}

	return b.String()
}

// collectHeaders gathers column keys in first-seen order, capped at max.
func collectHeaders(flat []*export.Object, max int) []string {
	var headers []string
	seen := make(map[string]bool)
	for _, row := range flat {
		for el := row.Front(); el != nil; el = el.Next() {
			if seen[el.Key] {
				continue
			}
			if max > 0 && len(headers) >= max {
				return headers
			}
			seen[el.Key] = true
			headers = append(headers, el.Key)
		}
	}
	return headers
}

func cellText(row *export.Object, key string) string {
	v, ok := row.Get(key)
	if !ok || v == nil {
		return ""
	}
	return export.CellText(v, nil)
}

func cellWidth(s string, max int) int {
	w := runewidth.StringWidth(s)
	if max > 0 && w > max {
		return max
	}
	return w
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	// Preview never emits control characters into the terminal.
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
	return runewidth.Truncate(s, max, "…")
}
