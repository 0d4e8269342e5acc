// Package config provides configuration structures and loading for GoExport.
package config

import "github.com/dbsmedya/goexport/internal/export"

// Config represents the complete application configuration.
type Config struct {
	Profiles  map[string]ProfileConfig `yaml:"profiles" mapstructure:"profiles"`
	Discovery DiscoveryConfig          `yaml:"discovery" mapstructure:"discovery"`
	CSV       CSVConfig                `yaml:"csv" mapstructure:"csv"`
	Output    OutputConfig             `yaml:"output" mapstructure:"output"`
	Logging   LoggingConfig            `yaml:"logging" mapstructure:"logging"`
}

// ProfileConfig represents a named export profile. Unset sections fall
// back to the global configuration; a set section overrides only the
// keys it names, with the loader merging the rest from the global
// section.
type ProfileConfig struct {
	Discovery *DiscoveryConfig `yaml:"discovery,omitempty" mapstructure:"discovery"`
	CSV       *CSVConfig       `yaml:"csv,omitempty" mapstructure:"csv"`
	Output    *OutputConfig    `yaml:"output,omitempty" mapstructure:"output"`
}

// DiscoveryConfig represents row discovery settings.
type DiscoveryConfig struct {
	MaxDepth             int      `yaml:"max_depth" mapstructure:"max_depth"`
	MinRows              int      `yaml:"min_rows" mapstructure:"min_rows"`
	PreferredPathTokens  []string `yaml:"preferred_path_tokens" mapstructure:"preferred_path_tokens"`
	ExcludedPathTokens   []string `yaml:"excluded_path_tokens" mapstructure:"excluded_path_tokens"`
	RequirePathTokens    []string `yaml:"require_path_tokens" mapstructure:"require_path_tokens"`
	PreferShallow        bool     `yaml:"prefer_shallow" mapstructure:"prefer_shallow"`
	PreferLargeDatasets  bool     `yaml:"prefer_large_datasets" mapstructure:"prefer_large_datasets"`
	AllowEmptyObjectRows bool     `yaml:"allow_empty_object_rows" mapstructure:"allow_empty_object_rows"`
	MaxCandidates        int      `yaml:"max_candidates" mapstructure:"max_candidates"`
	MaxInspectedNodes    int      `yaml:"max_inspected_nodes" mapstructure:"max_inspected_nodes"`
	MinObjectKeys        int      `yaml:"min_object_keys" mapstructure:"min_object_keys"`
	MinObjectRatio       float64  `yaml:"min_object_ratio" mapstructure:"min_object_ratio"`
	IncludePathPattern   string   `yaml:"include_path_pattern" mapstructure:"include_path_pattern"`
	ExcludePathPattern   string   `yaml:"exclude_path_pattern" mapstructure:"exclude_path_pattern"`
}

// CSVConfig represents CSV formatting settings.
type CSVConfig struct {
	Delimiter       string            `yaml:"delimiter" mapstructure:"delimiter"`
	LineTerminator  string            `yaml:"line_terminator" mapstructure:"line_terminator"` // "lf" or "crlf"
	NullValue       string            `yaml:"null_value" mapstructure:"null_value"`
	JoinArrays      bool              `yaml:"join_arrays" mapstructure:"join_arrays"`
	ArrayDelimiter  string            `yaml:"array_delimiter" mapstructure:"array_delimiter"`
	DateLayout      string            `yaml:"date_layout" mapstructure:"date_layout"`
	NumericBooleans bool              `yaml:"numeric_booleans" mapstructure:"numeric_booleans"`
	TrimCells       bool              `yaml:"trim_cells" mapstructure:"trim_cells"`
	MaxCellLength   int               `yaml:"max_cell_length" mapstructure:"max_cell_length"`
	TruncateSuffix  string            `yaml:"truncate_suffix" mapstructure:"truncate_suffix"`
	ExcelSafe       bool              `yaml:"excel_safe" mapstructure:"excel_safe"`
	AlwaysQuote     bool              `yaml:"always_quote" mapstructure:"always_quote"`
	Headers         []string          `yaml:"headers" mapstructure:"headers"`
	HeaderLabels    map[string]string `yaml:"header_labels" mapstructure:"header_labels"`
	SortHeaders     bool              `yaml:"sort_headers" mapstructure:"sort_headers"`
	TrimHeaders     bool              `yaml:"trim_headers" mapstructure:"trim_headers"`
	DedupeHeaders   bool              `yaml:"dedupe_headers" mapstructure:"dedupe_headers"`
	RowNumbers      bool              `yaml:"row_numbers" mapstructure:"row_numbers"`
	RowNumberHeader string            `yaml:"row_number_header" mapstructure:"row_number_header"`
	SkipEmptyRows   bool              `yaml:"skip_empty_rows" mapstructure:"skip_empty_rows"`
	MaxRows         int               `yaml:"max_rows" mapstructure:"max_rows"`
	OmitHeaderRow   bool              `yaml:"omit_header_row" mapstructure:"omit_header_row"`
	IncludeBOM      bool              `yaml:"include_bom" mapstructure:"include_bom"`
}

// OutputConfig represents artifact emission settings.
type OutputConfig struct {
	Dir    string `yaml:"dir" mapstructure:"dir"`       // empty means stdout
	Format string `yaml:"format" mapstructure:"format"` // csv, json, or jsonl
	Name   string `yaml:"name" mapstructure:"name"`     // base name for <name>-result.<ext>
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	discover := export.DefaultDiscoverOptions()
	csv := export.DefaultCSVOptions()
	return &Config{
		Discovery: DiscoveryConfig{
			MaxDepth:            discover.MaxDepth,
			PreferredPathTokens: discover.PreferredPathTokens,
			ExcludedPathTokens:  discover.ExcludedPathTokens,
			PreferShallow:       discover.PreferShallow,
			PreferLargeDatasets: discover.PreferLargeDatasets,
		},
		CSV: CSVConfig{
			Delimiter:       csv.Delimiter,
			LineTerminator:  "lf",
			ArrayDelimiter:  csv.ArrayDelimiter,
			TruncateSuffix:  csv.TruncateSuffix,
			RowNumberHeader: csv.RowNumberHeader,
		},
		Output: OutputConfig{
			Format: "csv",
			Name:   "export",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// ToOptions converts discovery settings into engine options.
func (dc *DiscoveryConfig) ToOptions() *export.DiscoverOptions {
	return &export.DiscoverOptions{
		MaxDepth:             dc.MaxDepth,
		MinRows:              dc.MinRows,
		PreferredPathTokens:  dc.PreferredPathTokens,
		ExcludedPathTokens:   dc.ExcludedPathTokens,
		RequirePathTokens:    dc.RequirePathTokens,
		PreferShallow:        dc.PreferShallow,
		PreferLargeDatasets:  dc.PreferLargeDatasets,
		AllowEmptyObjectRows: dc.AllowEmptyObjectRows,
		MaxCandidates:        dc.MaxCandidates,
		MaxInspectedNodes:    dc.MaxInspectedNodes,
		MinObjectKeys:        dc.MinObjectKeys,
		MinObjectRatio:       dc.MinObjectRatio,
		IncludePathPattern:   dc.IncludePathPattern,
		ExcludePathPattern:   dc.ExcludePathPattern,
	}
}

// ToOptions converts CSV settings into engine options.
func (cc *CSVConfig) ToOptions() *export.CSVOptions {
	terminator := "\n"
	if cc.LineTerminator == "crlf" {
		terminator = "\r\n"
	}
	return &export.CSVOptions{
		Delimiter:       cc.Delimiter,
		LineTerminator:  terminator,
		NullValue:       cc.NullValue,
		JoinArrays:      cc.JoinArrays,
		ArrayDelimiter:  cc.ArrayDelimiter,
		DateLayout:      cc.DateLayout,
		NumericBooleans: cc.NumericBooleans,
		TrimCells:       cc.TrimCells,
		MaxCellLength:   cc.MaxCellLength,
		TruncateSuffix:  cc.TruncateSuffix,
		ExcelSafe:       cc.ExcelSafe,
		AlwaysQuote:     cc.AlwaysQuote,
		Headers:         cc.Headers,
		HeaderLabels:    cc.HeaderLabels,
		SortHeaders:     cc.SortHeaders,
		TrimHeaders:     cc.TrimHeaders,
		DedupeHeaders:   cc.DedupeHeaders,
		RowNumbers:      cc.RowNumbers,
		RowNumberHeader: cc.RowNumberHeader,
		SkipEmptyRows:   cc.SkipEmptyRows,
		MaxRows:         cc.MaxRows,
		OmitHeaderRow:   cc.OmitHeaderRow,
		IncludeBOM:      cc.IncludeBOM,
	}
}

// GetProfileDiscovery returns the discovery config for a profile by
// name, falling back to global settings if not set.
func (c *Config) GetProfileDiscovery(name string) DiscoveryConfig {
	profile, ok := c.Profiles[name]
	if !ok || profile.Discovery == nil {
		return c.Discovery
	}
	return *profile.Discovery
}

// GetProfileCSV returns the CSV config for a profile by name, falling
// back to global settings if not set.
func (c *Config) GetProfileCSV(name string) CSVConfig {
	profile, ok := c.Profiles[name]
	if !ok || profile.CSV == nil {
		return c.CSV
	}
	return *profile.CSV
}

// GetProfileOutput returns the output config for a profile by name,
// merging unset fields from the global settings.
func (c *Config) GetProfileOutput(name string) OutputConfig {
	profile, ok := c.Profiles[name]
	if !ok || profile.Output == nil {
		return c.Output
	}
	result := c.Output
	if profile.Output.Dir != "" {
		result.Dir = profile.Output.Dir
	}
	if profile.Output.Format != "" {
		result.Format = profile.Output.Format
	}
	if profile.Output.Name != "" {
		result.Name = profile.Output.Name
	}
	return result
}
