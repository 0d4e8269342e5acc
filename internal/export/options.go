// Package export implements the tabular export engine: discovery of
// exportable record arrays inside arbitrary JSON payloads, row
// flattening, and delimited-text generation.
package export

// Default discovery limits and path heuristics.
var (
	defaultPreferredPathTokens = []string{"items", "nodes", "results", "edges"}
	defaultExcludedPathTokens  = []string{"meta", "error"}
)

const (
	defaultMaxDepth = 6

	// rowScoreCap bounds the contribution of row count to a candidate's
	// score so that one huge array cannot outweigh every path heuristic.
	rowScoreCap = 100.0
)

// DiscoverOptions controls how FindRows searches a payload for
// exportable arrays of records. Build it with DefaultDiscoverOptions
// (or DepthOptions) and override fields as needed; a nil options value
// behaves like DefaultDiscoverOptions().
type DiscoverOptions struct {
	// MaxDepth is the deepest node level considered for candidates.
	// Negative values disqualify everything.
	MaxDepth int
	// MinRows discards candidates with fewer qualifying object rows.
	MinRows int
	// PreferredPathTokens add +2 score per substring found in the path.
	PreferredPathTokens []string
	// ExcludedPathTokens veto an entire subtree on a case-insensitive
	// substring match against the path.
	ExcludedPathTokens []string
	// RequirePathTokens must all appear in the path for an array to qualify.
	RequirePathTokens []string
	// PreferShallow weights the depth penalty steeply toward shallow arrays.
	PreferShallow bool
	// PreferLargeDatasets doubles the per-row score contribution.
	PreferLargeDatasets bool
	// AllowEmptyObjectRows counts objects with zero keys as valid rows.
	AllowEmptyObjectRows bool
	// MaxCandidates stops traversal after this many arrays have been
	// scored. Zero means unlimited.
	MaxCandidates int
	// MaxInspectedNodes stops traversal after this many nodes have been
	// visited. Zero means unlimited.
	MaxInspectedNodes int
	// MinObjectKeys requires each row object to carry at least this many keys.
	MinObjectKeys int
	// MinObjectRatio requires this fraction of array elements to be
	// qualifying object rows.
	MinObjectRatio float64
	// IncludePathPattern, when non-empty, is a regular expression the
	// path must match.
	IncludePathPattern string
	// ExcludePathPattern, when non-empty, is a regular expression the
	// path must not match.
	ExcludePathPattern string
}

// DefaultDiscoverOptions returns discovery options with the standard
// limits and path heuristics.
func DefaultDiscoverOptions() *DiscoverOptions {
	return &DiscoverOptions{
		MaxDepth:            defaultMaxDepth,
		PreferredPathTokens: defaultPreferredPathTokens,
		ExcludedPathTokens:  defaultExcludedPathTokens,
		PreferShallow:       true,
		PreferLargeDatasets: true,
	}
}

// DepthOptions returns default discovery options with only the depth
// limit changed. It is the structured form of the legacy call style
// that passed a bare depth number instead of an options record.
func DepthOptions(maxDepth int) *DiscoverOptions {
	opts := DefaultDiscoverOptions()
	opts.MaxDepth = maxDepth
	return opts
}

// normalizeDiscoverOptions clamps malformed values into a usable range.
// A negative MaxDepth is kept as-is so that discovery finds nothing
// rather than failing.
func normalizeDiscoverOptions(opts *DiscoverOptions) *DiscoverOptions {
	if opts == nil {
		return DefaultDiscoverOptions()
	}
	out := *opts
	if out.MinRows < 0 {
		out.MinRows = 0
	}
	if out.MaxCandidates < 0 {
		out.MaxCandidates = 0
	}
	if out.MaxInspectedNodes < 0 {
		out.MaxInspectedNodes = 0
	}
	if out.MinObjectKeys < 0 {
		out.MinObjectKeys = 0
	}
	if out.MinObjectRatio < 0 {
		out.MinObjectRatio = 0
	}
	if out.MinObjectRatio > 1 {
		out.MinObjectRatio = 1
	}
	return &out
}

// CSVOptions controls cell serialization and CSV assembly. Build it
// with DefaultCSVOptions and override fields as needed; a nil options
// value behaves like DefaultCSVOptions().
type CSVOptions struct {
	// Delimiter separates cells within a line.
	Delimiter string
	// LineTerminator joins lines; "\n" and "\r\n" are the expected values.
	LineTerminator string
	// NullValue replaces null (and missing) values.
	NullValue string
	// JoinArrays renders array values as elements joined by
	// ArrayDelimiter instead of JSON bracket text.
	JoinArrays bool
	// ArrayDelimiter joins array elements when JoinArrays is set.
	ArrayDelimiter string
	// DateLayout formats time values; empty means RFC 3339.
	DateLayout string
	// NumericBooleans renders booleans as "1"/"0" instead of "true"/"false".
	NumericBooleans bool
	// TrimCells trims surrounding whitespace from serialized cells.
	TrimCells bool
	// MaxCellLength truncates longer cells, appending TruncateSuffix.
	// Zero means unlimited.
	MaxCellLength int
	// TruncateSuffix is appended to truncated cells.
	TruncateSuffix string
	// ExcelSafe prefixes cells starting with =, +, - or @ with a single
	// quote to defuse spreadsheet formula execution.
	ExcelSafe bool
	// AlwaysQuote wraps every cell in double quotes.
	AlwaysQuote bool
	// Headers overrides discovered headers; values missing for a row
	// serialize as NullValue.
	Headers []string
	// HeaderLabels remaps source keys to display labels. Value lookup
	// keeps using the source key.
	HeaderLabels map[string]string
	// SortHeaders orders discovered headers lexicographically.
	SortHeaders bool
	// TrimHeaders trims surrounding whitespace from header labels.
	TrimHeaders bool
	// DedupeHeaders drops later columns whose label duplicates an
	// earlier one.
	DedupeHeaders bool
	// RowNumbers injects a leading 1-based row number column.
	RowNumbers bool
	// RowNumberHeader names the row number column.
	RowNumberHeader string
	// SkipEmptyRows omits rows whose cells all serialize to "".
	SkipEmptyRows bool
	// MaxRows caps emitted data rows. Zero means unlimited.
	MaxRows int
	// OmitHeaderRow suppresses the header line in the CSV text while
	// keeping headers in the result metadata.
	OmitHeaderRow bool
	// IncludeBOM prefixes the text with a UTF-8 byte order mark.
	IncludeBOM bool
}

// DefaultCSVOptions returns CSV options producing plain RFC 4180 output.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Delimiter:       ",",
		LineTerminator:  "\n",
		ArrayDelimiter:  "; ",
		TruncateSuffix:  "...",
		RowNumberHeader: "#",
	}
}

// normalizeCSVOptions fills unset structural fields and clamps
// malformed limits to safe defaults.
func normalizeCSVOptions(opts *CSVOptions) *CSVOptions {
	if opts == nil {
		return DefaultCSVOptions()
	}
	out := *opts
	if out.Delimiter == "" {
		out.Delimiter = ","
	}
	if out.LineTerminator != "\r\n" && out.LineTerminator != "\n" {
		out.LineTerminator = "\n"
	}
	if out.ArrayDelimiter == "" {
		out.ArrayDelimiter = "; "
	}
	if out.RowNumberHeader == "" {
		out.RowNumberHeader = "#"
	}
	if out.MaxCellLength < 0 {
		out.MaxCellLength = 0
	}
	if out.MaxRows < 0 {
		out.MaxRows = 0
	}
	return &out
}
