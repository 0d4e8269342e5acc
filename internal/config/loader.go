package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return decodeConfig(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	return decodeConfig(v)
}

// decodeConfig unmarshals the viper state over the defaults, merges
// profile sections over their global counterparts, and substitutes
// environment variables.
func decodeConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := mergeProfileSections(v, cfg); err != nil {
		return nil, err
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// mergeProfileSections re-decodes each present profile discovery and
// csv section on top of a copy of the matching global section. The
// first Unmarshal leaves a partial section's unset fields at their
// zero values; decoding the section keys again over the global copy
// restores the inherited settings.
func mergeProfileSections(v *viper.Viper, cfg *Config) error {
	for name, profile := range cfg.Profiles {
		if profile.Discovery != nil {
			merged := cfg.Discovery
			if err := v.UnmarshalKey("profiles."+name+".discovery", &merged); err != nil {
				return fmt.Errorf("failed to unmarshal discovery section of profile %q: %w", name, err)
			}
			profile.Discovery = &merged
		}
		if profile.CSV != nil {
			merged := cfg.CSV
			if err := v.UnmarshalKey("profiles."+name+".csv", &merged); err != nil {
				return fmt.Errorf("failed to unmarshal csv section of profile %q: %w", name, err)
			}
			profile.CSV = &merged
		}
		cfg.Profiles[name] = profile
	}
	return nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Output.Dir = expandEnvVar(cfg.Output.Dir)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	for name, profile := range cfg.Profiles {
		if profile.Output != nil {
			profile.Output.Dir = expandEnvVar(profile.Output.Dir)
			cfg.Profiles[name] = profile
		}
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// GetProfile retrieves a specific profile configuration by name.
func (c *Config) GetProfile(name string) (*ProfileConfig, error) {
	profile, exists := c.Profiles[name]
	if !exists {
		return nil, fmt.Errorf("profile %q not found in configuration", name)
	}
	return &profile, nil
}

// ListProfiles returns all profile names defined in the configuration,
// sorted for stable output.
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// ApplyOverrides applies CLI flag overrides to the global configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, format, name, outDir string, maxDepth, maxRows int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if format != "" {
		c.Output.Format = format
	}
	if name != "" {
		c.Output.Name = name
	}
	if outDir != "" {
		c.Output.Dir = outDir
	}
	if maxDepth > 0 {
		c.Discovery.MaxDepth = maxDepth
	}
	if maxRows > 0 {
		c.CSV.MaxRows = maxRows
	}
}

// ApplyProfileOverrides applies CLI flag overrides on top of a specific
// profile's discovery configuration.
func (c *Config) ApplyProfileOverrides(profileName string, maxDepth int) DiscoveryConfig {
	discovery := c.GetProfileDiscovery(profileName)

	if maxDepth > 0 {
		discovery.MaxDepth = maxDepth
	}

	return discovery
}
