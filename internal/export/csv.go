package export

import (
	"sort"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// utf8BOM is the byte order mark some spreadsheet readers need to
// detect UTF-8 input.
const utf8BOM = "\uFEFF"

// ConversionResult is the outcome of one CSV formatting call.
type ConversionResult struct {
	// CSV is the final delimited text.
	CSV string
	// Headers are the emitted column labels, post trim/dedupe, in
	// output order. Populated even when OmitHeaderRow is set.
	Headers []string
	// RowCount is the number of emitted data rows.
	RowCount int
	// SkippedRows counts rows omitted because every cell was empty.
	SkippedRows int
	// TruncatedRows counts rows dropped by the MaxRows cap plus emitted
	// rows that had at least one length-truncated cell. The counters
	// are independent and additive.
	TruncatedRows int
}

// column pairs a source lookup key with its display label, so header
// relabeling never changes which value a column reads.
type column struct {
	key   string
	label string
}

// ConvertToCSV flattens the given record rows and assembles the final
// delimited text. Rows are object nodes as produced by FindRows. The
// call never fails: malformed cell values fall back to best-effort
// strings and out-of-range options normalize to defaults.
func ConvertToCSV(rows []any, opts *CSVOptions) *ConversionResult {
	opts = normalizeCSVOptions(opts)
	result := &ConversionResult{Headers: []string{}}
	if len(rows) == 0 {
		return result
	}

	flat := make([]*Object, len(rows))
	for i, row := range rows {
		flat[i] = Flatten(row)
	}

	cols := buildColumns(flat, opts)
	for _, col := range cols {
		result.Headers = append(result.Headers, col.label)
	}
	if opts.RowNumbers {
		result.Headers = append([]string{opts.RowNumberHeader}, result.Headers...)
	}

	lines := make([]string, 0, len(flat)+1)
	if !opts.OmitHeaderRow {
		lines = append(lines, headerLine(result.Headers, opts))
	}

	emitted := 0
	for i, row := range flat {
		if opts.MaxRows > 0 && emitted >= opts.MaxRows {
			result.TruncatedRows += len(flat) - i
			break
		}

		cells := make([]string, len(cols))
		empty := true
		truncatedCell := false
		for j, col := range cols {
			value, _ := row.Get(col.key)
			text, truncated := serializeRaw(value, opts)
			if text != "" {
				empty = false
			}
			if truncated {
				truncatedCell = true
			}
			cells[j] = escapeCell(text, opts)
		}

		if opts.SkipEmptyRows && empty {
			result.SkippedRows++
			continue
		}
		if truncatedCell {
			result.TruncatedRows++
		}

		if opts.RowNumbers {
			number := escapeCell(strconv.Itoa(emitted+1), opts)
			cells = append([]string{number}, cells...)
		}

		lines = append(lines, strings.Join(cells, opts.Delimiter))
		emitted++
	}
	result.RowCount = emitted

	text := strings.Join(lines, opts.LineTerminator)
	if opts.IncludeBOM {
		text = utf8BOM + text
	}
	result.CSV = text
	return result
}

// buildColumns resolves the output column sequence: explicit override
// or first-seen union across flattened rows, then sorting, relabeling,
// trimming, and deduplication as configured.
func buildColumns(flat []*Object, opts *CSVOptions) []column {
	var keys []string
	if opts.Headers != nil {
		keys = append(keys, opts.Headers...)
	} else {
		union := orderedmap.NewOrderedMap[string, struct{}]()
		for _, row := range flat {
			for _, k := range row.Keys() {
				union.Set(k, struct{}{})
			}
		}
		keys = union.Keys()
	}

	if opts.SortHeaders {
		sort.Strings(keys)
	}

	cols := make([]column, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		label := key
		if mapped, ok := opts.HeaderLabels[key]; ok {
			label = mapped
		}
		if opts.TrimHeaders {
			label = strings.TrimSpace(label)
		}
		if opts.DedupeHeaders {
			if seen[label] {
				continue
			}
			seen[label] = true
		}
		cols = append(cols, column{key: key, label: label})
	}
	return cols
}

func headerLine(labels []string, opts *CSVOptions) string {
	cells := make([]string, len(labels))
	for i, label := range labels {
		cells[i] = escapeCell(label, opts)
	}
	return strings.Join(cells, opts.Delimiter)
}
