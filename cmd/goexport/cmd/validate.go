package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goexport/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate checks the configuration file for syntax errors and invalid
values.

Checks performed:
  - YAML syntax and field types
  - Discovery limits and ratio ranges
  - Path pattern regular expressions
  - Output format and filename settings
  - Logging level and format
  - Per-profile overrides

Example:
  goexport validate --config goexport.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides so the validated result matches what a run
	// with the same flags would use.
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Format, overrides.Name, overrides.OutDir,
		overrides.MaxDepth, overrides.MaxRows)

	cmd.Printf("=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", configFile)
	cmd.Printf("Profiles found: %d\n\n", len(cfg.Profiles))

	if err := cfg.Validate(); err != nil {
		cmd.Printf("❌ %v\n", err)
		return fmt.Errorf("configuration validation failed")
	}

	cmd.Println("✅ Configuration is valid")
	return nil
}
