package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formulaTriggers are the characters spreadsheet applications interpret
// as the start of a formula.
const formulaTriggers = "=+-@"

// SerializeCell converts a single value into its final CSV cell text,
// including RFC 4180 quoting. The boolean reports whether the cell was
// length-truncated.
func SerializeCell(value any, opts *CSVOptions) (string, bool) {
	opts = normalizeCSVOptions(opts)
	s, truncated := serializeRaw(value, opts)
	return escapeCell(s, opts), truncated
}

// CellText converts a value into its serialized cell text without CSV
// quoting. Used for previews and empty-row detection.
func CellText(value any, opts *CSVOptions) string {
	s, _ := serializeRaw(value, normalizeCSVOptions(opts))
	return s
}

// serializeRaw produces the unquoted cell text: stringification, trim,
// truncation, and formula hardening, in that order. opts must already
// be normalized.
func serializeRaw(value any, opts *CSVOptions) (string, bool) {
	s := stringifyValue(value, opts)

	if opts.TrimCells {
		s = strings.TrimSpace(s)
	}

	truncated := false
	if opts.MaxCellLength > 0 {
		s, truncated = truncateCell(s, opts.MaxCellLength, opts.TruncateSuffix)
	}

	if opts.ExcelSafe && s != "" && strings.ContainsRune(formulaTriggers, rune(s[0])) {
		s = "'" + s
	}

	return s, truncated
}

// stringifyValue renders a decoded JSON value (or time.Time) as text.
func stringifyValue(value any, opts *CSVOptions) string {
	switch v := value.(type) {
	case nil:
		return opts.NullValue
	case string:
		return v
	case bool:
		if opts.NumericBooleans {
			if v {
				return "1"
			}
			return "0"
		}
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case time.Time:
		return formatTime(v, opts)
	case *time.Time:
		if v == nil {
			return opts.NullValue
		}
		return formatTime(*v, opts)
	case []any:
		if opts.JoinArrays {
			parts := make([]string, len(v))
			for i, el := range v {
				parts[i] = stringifyValue(el, opts)
			}
			return strings.Join(parts, opts.ArrayDelimiter)
		}
		return jsonText(v)
	case map[string]any, *Object:
		return jsonText(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// jsonText renders nested values as compact JSON, falling back to fmt
// coercion so a best-effort string is always produced.
func jsonText(v any) string {
	data, err := marshalOrdered(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func formatTime(t time.Time, opts *CSVOptions) string {
	if opts.DateLayout != "" {
		return t.Format(opts.DateLayout)
	}
	return t.Format(time.RFC3339)
}

// truncateCell cuts s to max runes, reserving room for the suffix when
// it fits within the limit.
func truncateCell(s string, max int, suffix string) (string, bool) {
	runes := []rune(s)
	if len(runes) <= max {
		return s, false
	}
	cut := max - len([]rune(suffix))
	if cut < 0 {
		cut = max
		suffix = ""
	}
	return string(runes[:cut]) + suffix, true
}

// escapeCell applies RFC 4180 quoting: cells containing the delimiter,
// a double quote, or a line break are wrapped in double quotes with
// embedded quotes doubled. opts must already be normalized.
func escapeCell(s string, opts *CSVOptions) string {
	needsQuoting := opts.AlwaysQuote ||
		strings.Contains(s, opts.Delimiter) ||
		strings.ContainsAny(s, "\"\n\r")
	if !needsQuoting {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
