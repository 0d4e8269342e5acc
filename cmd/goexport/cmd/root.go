package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	outFormat string
	outName   string
	outDir    string
	maxDepth  int
	maxRows   int
)

var rootCmd = &cobra.Command{
	Use:   "goexport",
	Short: "JSON to CSV Export Engine",
	Long: `A CLI tool that discovers tabular data inside arbitrary JSON payloads
and exports it as CSV, JSON, or JSONL.

Features:
  - Breadth-first discovery of the best array-of-records in a payload
  - Nested records flattened to dotted-path columns
  - RFC-4180 quoting with Excel formula injection hardening
  - Configurable export profiles with per-profile overrides
  - Terminal preview of discovered rows before writing`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "goexport.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output overrides
	rootCmd.PersistentFlags().StringVar(&outFormat, "format", "",
		"Override output format (csv, json, jsonl)")
	rootCmd.PersistentFlags().StringVar(&outName, "name", "",
		"Override artifact base name")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "",
		"Override output directory (empty writes to stdout)")

	// Engine overrides
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0,
		"Override maximum traversal depth")
	rootCmd.PersistentFlags().IntVar(&maxRows, "max-rows", 0,
		"Override maximum exported row count")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	Format    string
	Name      string
	OutDir    string
	MaxDepth  int
	MaxRows   int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Format:    outFormat,
		Name:      outName,
		OutDir:    outDir,
		MaxDepth:  maxDepth,
		MaxRows:   maxRows,
	}
}
