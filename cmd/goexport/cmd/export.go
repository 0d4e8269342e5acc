package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/goexport/internal/config"
	"github.com/dbsmedya/goexport/internal/export"
	"github.com/dbsmedya/goexport/internal/logger"
	"github.com/dbsmedya/goexport/internal/trigger"
)

var (
	exportInput   string
	exportProfile string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Discover tabular data in a JSON payload and export it",
	Long: `Export reads a JSON payload, discovers the best array-of-records
inside it, and writes the result as CSV, JSON, or JSONL.

The export process follows these steps:
  1. Discover candidate arrays using BFS traversal
  2. Flatten nested records to dotted-path columns
  3. Serialize and assemble the output artifact
  4. Write the artifact to the output directory or stdout

Example:
  goexport export --config goexport.yaml --input response.json --profile users`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "",
		"Path to JSON payload file, or '-' for stdin (required)")
	exportCmd.MarkFlagRequired("input")

	exportCmd.Flags().StringVarP(&exportProfile, "profile", "p", "",
		"Profile name from configuration file (optional)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Format, overrides.Name, overrides.OutDir,
		overrides.MaxDepth, overrides.MaxRows)

	if exportProfile != "" {
		if _, err := cfg.GetProfile(exportProfile); err != nil {
			return err
		}
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	runID := uuid.NewString()
	log = log.WithRun(runID)
	if exportProfile != "" {
		log = log.WithProfile(exportProfile)
	}

	log.Infow("Starting export",
		"input", exportInput,
		"config", configFile,
	)

	// Read and decode the payload
	payload, err := readPayload(exportInput)
	if err != nil {
		return err
	}

	// Resolve effective settings for the selected profile
	discoveryCfg := cfg.ApplyProfileOverrides(exportProfile, overrides.MaxDepth)
	csvCfg := cfg.GetProfileCSV(exportProfile)
	outputCfg := cfg.GetProfileOutput(exportProfile)
	if overrides.MaxRows > 0 {
		csvCfg.MaxRows = overrides.MaxRows
	}

	// Discover rows
	candidate, diag := export.FindRows(payload, discoveryCfg.ToOptions())
	log.Infow("Discovery finished",
		"candidates", diag.Candidates,
		"inspected_nodes", diag.InspectedNodes,
	)
	if candidate == nil {
		return fmt.Errorf("no exportable rows found in payload")
	}

	log.WithPath(candidate.Path).Infow("Selected candidate",
		"rows", len(candidate.Rows),
		"depth", candidate.Depth,
		"score", candidate.Score,
	)

	// Build the artifact
	content, meta, err := buildArtifact(candidate.Rows, outputCfg.Format, csvCfg.ToOptions())
	if err != nil {
		return err
	}
	if meta != nil {
		log.Infow("Formatting finished",
			"rows", meta.RowCount,
			"skipped_rows", meta.SkippedRows,
			"truncated_rows", meta.TruncatedRows,
		)
	}

	// Emit the artifact
	writer := trigger.NewWriter(outputCfg.Dir)
	filename := trigger.ResultFilename(outputCfg.Name, trigger.ExtensionFor(outputCfg.Format))
	dest, err := writer.Write(content, filename, trigger.MIMEFor(outputCfg.Format))
	if err != nil {
		return err
	}

	// Display results: stdout carries the artifact itself, so the
	// summary only appears for file output.
	if dest != "-" {
		cmd.Printf("\n=== Export Complete ===\n")
		cmd.Printf("Source path: %s\n", candidate.Path)
		cmd.Printf("Rows: %d\n", len(candidate.Rows))
		if meta != nil {
			cmd.Printf("Emitted: %d\n", meta.RowCount)
			cmd.Printf("Skipped: %d\n", meta.SkippedRows)
			cmd.Printf("Truncated: %d\n", meta.TruncatedRows)
		}
		cmd.Printf("Artifact: %s\n", dest)
	}

	return nil
}

// readPayload reads and decodes a JSON payload from a file or stdin.
func readPayload(input string) (any, error) {
	var data []byte
	var err error

	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
	}

	payload, err := export.DecodePayload(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return payload, nil
}

// buildArtifact converts discovered rows into the requested format.
// The metadata result is nil for non-CSV formats.
func buildArtifact(rows []any, format string, opts *export.CSVOptions) (string, *export.ConversionResult, error) {
	switch format {
	case "json":
		text, err := export.ConvertToJSON(rows)
		if err != nil {
			return "", nil, fmt.Errorf("failed to serialize JSON: %w", err)
		}
		return text, nil, nil
	case "jsonl":
		text, err := export.ConvertToJSONL(rows)
		if err != nil {
			return "", nil, fmt.Errorf("failed to serialize JSONL: %w", err)
		}
		return text, nil, nil
	default:
		result := export.ConvertToCSV(rows, opts)
		return result.CSV, result, nil
	}
}
