package export

import (
	"math"
	"regexp"
	"strings"
)

// RootPath labels the traversal root. Child paths append dotted keys;
// arrays are evaluated as whole candidates and never indexed into.
const RootPath = "root"

// Candidate is an array node that qualified as a potential export
// source, with the score that ranked it. Each row is an object node
// (*Object or map[string]any).
type Candidate struct {
	Rows  []any
	Path  string
	Depth int
	Score float64
}

// Diagnostics carries the traversal counters for a single FindRows
// call. Callers feed these into their logging sink.
type Diagnostics struct {
	Candidates     int
	InspectedNodes int
}

// queueItem is one pending node in the breadth-first traversal.
type queueItem struct {
	node  any
	path  string
	depth int
}

// FindRows locates the most export-worthy array of records inside an
// arbitrary decoded JSON payload. It performs a breadth-first traversal
// from the payload root, scores every qualifying array, and returns the
// best candidate or nil when nothing qualifies. The search is
// deterministic for a fixed payload and options, and never returns an
// error: malformed options degrade to finding nothing.
func FindRows(payload any, opts *DiscoverOptions) (*Candidate, Diagnostics) {
	opts = normalizeDiscoverOptions(opts)
	var diag Diagnostics

	if payload == nil {
		return nil, diag
	}

	include, exclude, ok := compilePatterns(opts)
	if !ok {
		return nil, diag
	}

	var best *Candidate
	queue := []queueItem{{node: payload, path: RootPath, depth: 0}}

walk:
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if opts.MaxInspectedNodes > 0 && diag.InspectedNodes >= opts.MaxInspectedNodes {
			break
		}
		diag.InspectedNodes++

		// Excluded tokens veto the whole subtree.
		if pathHasAnyToken(item.path, opts.ExcludedPathTokens) {
			continue
		}

		if arr, isArray := item.node.([]any); isArray {
			if item.depth > opts.MaxDepth {
				continue
			}
			if !pathQualifies(item.path, opts, include, exclude) {
				continue
			}
			if len(arr) == 0 {
				// Zero-score fallback: only when nothing better exists
				// and no minimum row count is demanded.
				if best == nil && opts.MinRows == 0 {
					best = &Candidate{Rows: []any{}, Path: item.path, Depth: item.depth}
				}
				continue
			}
			rows, ok := extractRows(arr, opts)
			if !ok {
				continue
			}
			if opts.MaxCandidates > 0 && diag.Candidates >= opts.MaxCandidates {
				break walk
			}
			diag.Candidates++
			score := scoreCandidate(item.path, item.depth, len(rows), opts)
			// Strictly greater replaces; BFS order keeps the earlier,
			// shallower candidate on ties.
			if best == nil || score > best.Score {
				best = &Candidate{Rows: rows, Path: item.path, Depth: item.depth, Score: score}
			}
			continue
		}

		// Plain objects enqueue their children one level deeper.
		// Arrays do not: their elements are never searched for nested
		// candidates.
		if keys, isObject := objectKeys(item.node); isObject && item.depth < opts.MaxDepth {
			for _, k := range keys {
				child, _ := objectValue(item.node, k)
				queue = append(queue, queueItem{
					node:  child,
					path:  item.path + "." + k,
					depth: item.depth + 1,
				})
			}
		}
	}

	return best, diag
}

// FindRowsAtDepth is the legacy bare-number call form: equivalent to
// FindRows with only the depth limit overridden.
func FindRowsAtDepth(payload any, maxDepth int) (*Candidate, Diagnostics) {
	return FindRows(payload, DepthOptions(maxDepth))
}

// compilePatterns compiles the include/exclude path patterns. A pattern
// that fails to compile disqualifies the whole search.
func compilePatterns(opts *DiscoverOptions) (include, exclude *regexp.Regexp, ok bool) {
	var err error
	if opts.IncludePathPattern != "" {
		include, err = regexp.Compile(opts.IncludePathPattern)
		if err != nil {
			return nil, nil, false
		}
	}
	if opts.ExcludePathPattern != "" {
		exclude, err = regexp.Compile(opts.ExcludePathPattern)
		if err != nil {
			return nil, nil, false
		}
	}
	return include, exclude, true
}

// pathQualifies checks required tokens and include/exclude patterns.
func pathQualifies(path string, opts *DiscoverOptions, include, exclude *regexp.Regexp) bool {
	lower := strings.ToLower(path)
	for _, token := range opts.RequirePathTokens {
		if !strings.Contains(lower, strings.ToLower(token)) {
			return false
		}
	}
	if include != nil && !include.MatchString(path) {
		return false
	}
	if exclude != nil && exclude.MatchString(path) {
		return false
	}
	return true
}

// pathHasAnyToken reports whether any token appears in the path,
// case-insensitively.
func pathHasAnyToken(path string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(path)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

// extractRows filters array elements down to qualifying object rows.
// The array is rejected outright when too few elements qualify.
func extractRows(arr []any, opts *DiscoverOptions) ([]any, bool) {
	rows := make([]any, 0, len(arr))
	for _, el := range arr {
		size := objectLen(el)
		if size < 0 {
			continue
		}
		if size == 0 && !opts.AllowEmptyObjectRows {
			continue
		}
		if opts.MinObjectKeys > 0 && size < opts.MinObjectKeys {
			continue
		}
		rows = append(rows, el)
	}
	if len(rows) == 0 {
		return nil, false
	}
	if len(rows) < opts.MinRows {
		return nil, false
	}
	if opts.MinObjectRatio > 0 {
		ratio := float64(len(rows)) / float64(len(arr))
		if ratio < opts.MinObjectRatio {
			return nil, false
		}
	}
	return rows, true
}

// scoreCandidate computes rowScore + depthScore + tokenScore. The
// function is pure: identical inputs always produce identical scores.
func scoreCandidate(path string, depth, rowCount int, opts *DiscoverOptions) float64 {
	rowWeight := 1.0
	if opts.PreferLargeDatasets {
		rowWeight = 2.0
	}
	rowScore := math.Min(float64(rowCount)*rowWeight, rowScoreCap)

	depthWeight := 1.0
	if opts.PreferShallow {
		depthWeight = 3.0
	}
	depthScore := float64(opts.MaxDepth-depth) * depthWeight
	if depthScore < 0 {
		depthScore = 0
	}

	tokenScore := 0.0
	lower := strings.ToLower(path)
	for _, token := range opts.PreferredPathTokens {
		if token == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(token)) {
			tokenScore += 2
		}
	}

	return rowScore + depthScore + tokenScore
}
