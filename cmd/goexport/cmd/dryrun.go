package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goexport/internal/config"
	"github.com/dbsmedya/goexport/internal/export"
	"github.com/dbsmedya/goexport/internal/logger"
	"github.com/dbsmedya/goexport/internal/preview"
)

var (
	dryrunInput   string
	dryrunProfile string
	dryrunLimit   int
	dryrunNoColor bool
)

var dryrunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Run discovery and preview the result without writing anything",
	Long: `Dry-run runs row discovery on a payload and prints a preview table of
the rows that an export would produce, without writing any artifact.

The dry-run shows:
  - The winning candidate path, depth, and score
  - Discovery diagnostics (candidate and inspected node counts)
  - A preview table of the first rows

Example:
  goexport dry-run --config goexport.yaml --input response.json --limit 5`,
	RunE: runDryrun,
}

func init() {
	dryrunCmd.Flags().StringVarP(&dryrunInput, "input", "i", "",
		"Path to JSON payload file, or '-' for stdin (required)")
	dryrunCmd.MarkFlagRequired("input")

	dryrunCmd.Flags().StringVarP(&dryrunProfile, "profile", "p", "",
		"Profile name from configuration file (optional)")
	dryrunCmd.Flags().IntVar(&dryrunLimit, "limit", 10,
		"Maximum preview rows")
	dryrunCmd.Flags().BoolVar(&dryrunNoColor, "no-color", false,
		"Disable colored output")

	rootCmd.AddCommand(dryrunCmd)
}

func runDryrun(cmd *cobra.Command, args []string) error {
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

	if dryrunProfile != "" {
		if _, err := cfg.GetProfile(dryrunProfile); err != nil {
			return err
		}
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Read and decode the payload
	payload, err := readPayload(dryrunInput)
	if err != nil {
		return err
	}

	// Discover rows
	discoveryCfg := cfg.ApplyProfileOverrides(dryrunProfile, overrides.MaxDepth)
	candidate, diag := export.FindRows(payload, discoveryCfg.ToOptions())

	log.Infow("Discovery finished",
		"candidates", diag.Candidates,
		"inspected_nodes", diag.InspectedNodes,
	)

	cmd.Printf("=== Dry Run ===\n")
	cmd.Printf("Input: %s\n", dryrunInput)
	cmd.Printf("Candidates: %d\n", diag.Candidates)
	cmd.Printf("Inspected nodes: %d\n\n", diag.InspectedNodes)

	if candidate == nil {
		cmd.Println("No exportable rows found.")
		return nil
	}

	cmd.Printf("Winner: %s (depth %d, score %.0f)\n", candidate.Path, candidate.Depth, candidate.Score)
	cmd.Printf("Rows: %d\n\n", len(candidate.Rows))

	opts := preview.DefaultOptions()
	opts.MaxRows = dryrunLimit
	opts.Color = !dryrunNoColor
	cmd.Print(preview.Render(candidate.Rows, opts))

	return nil
}
