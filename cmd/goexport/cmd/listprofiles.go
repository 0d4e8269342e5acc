package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goexport/internal/config"
	"github.com/dbsmedya/goexport/internal/trigger"
)

var listProfilesCmd = &cobra.Command{
	Use:   "list-profiles",
	Short: "List all export profiles defined in configuration",
	Long: `List-profiles displays all export profiles defined in the configuration
file along with their effective settings.

Example:
  goexport list-profiles --config goexport.yaml`,
	RunE: runListProfiles,
}

func init() {
	rootCmd.AddCommand(listProfilesCmd)
}

func runListProfiles(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	profileNames := cfg.ListProfiles()

	if len(profileNames) == 0 {
		cmd.Printf("No profiles defined in %s\n", configFile)
		return nil
	}

	cmd.Printf("Profiles defined in %s:\n\n", configFile)

	for i, name := range profileNames {
		discovery := cfg.GetProfileDiscovery(name)
		output := cfg.GetProfileOutput(name)

		// Profile header
		cmd.Printf("%d. %s\n", i+1, name)
		cmd.Printf("   Format:        %s\n", output.Format)
		cmd.Printf("   Artifact:      %s\n", trigger.ResultFilename(output.Name, trigger.ExtensionFor(output.Format)))
		if output.Dir != "" {
			cmd.Printf("   Output dir:    %s\n", output.Dir)
		} else {
			cmd.Printf("   Output dir:    (stdout)\n")
		}
		cmd.Printf("   Max depth:     %d\n", discovery.MaxDepth)

		if len(discovery.RequirePathTokens) > 0 {
			cmd.Printf("   Require:       %v\n", discovery.RequirePathTokens)
		}
		if len(discovery.PreferredPathTokens) > 0 {
			cmd.Printf("   Preferred:     %v\n", discovery.PreferredPathTokens)
		}
		if len(discovery.ExcludedPathTokens) > 0 {
			cmd.Printf("   Excluded:      %v\n", discovery.ExcludedPathTokens)
		}

		// Add spacing between profiles
		if i < len(profileNames)-1 {
			cmd.Println()
		}
	}

	cmd.Printf("\nTotal: %d profile(s)\n", len(profileNames))
	return nil
}
