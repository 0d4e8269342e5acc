package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
discovery:
  max_depth: 4
  min_rows: 2
  preferred_path_tokens: [records, rows]
  excluded_path_tokens: [meta]

csv:
  delimiter: ";"
  line_terminator: crlf
  null_value: "NULL"
  max_rows: 100

output:
  dir: /tmp/exports
  format: jsonl
  name: report

profiles:
  users:
    discovery:
      max_depth: 2
      require_path_tokens: [users]
    output:
      name: users

logging:
  level: debug
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify discovery config
	if cfg.Discovery.MaxDepth != 4 {
		t.Errorf("expected max_depth 4, got %d", cfg.Discovery.MaxDepth)
	}
	if cfg.Discovery.MinRows != 2 {
		t.Errorf("expected min_rows 2, got %d", cfg.Discovery.MinRows)
	}
	if len(cfg.Discovery.PreferredPathTokens) != 2 {
		t.Errorf("expected 2 preferred tokens, got %v", cfg.Discovery.PreferredPathTokens)
	}

	// Verify CSV config
	if cfg.CSV.Delimiter != ";" {
		t.Errorf("expected delimiter ';', got %s", cfg.CSV.Delimiter)
	}
	if cfg.CSV.LineTerminator != "crlf" {
		t.Errorf("expected line_terminator 'crlf', got %s", cfg.CSV.LineTerminator)
	}
	if cfg.CSV.MaxRows != 100 {
		t.Errorf("expected max_rows 100, got %d", cfg.CSV.MaxRows)
	}

	// Verify output config
	if cfg.Output.Dir != "/tmp/exports" {
		t.Errorf("expected output dir '/tmp/exports', got %s", cfg.Output.Dir)
	}
	if cfg.Output.Format != "jsonl" {
		t.Errorf("expected output format 'jsonl', got %s", cfg.Output.Format)
	}

	// Verify profile config
	if len(cfg.Profiles) != 1 {
		t.Errorf("expected 1 profile, got %d", len(cfg.Profiles))
	}
	profile, exists := cfg.Profiles["users"]
	if !exists {
		t.Fatal("expected 'users' profile to exist")
	}
	if profile.Discovery == nil || profile.Discovery.MaxDepth != 2 {
		t.Errorf("expected profile max_depth 2, got %+v", profile.Discovery)
	}
	if profile.Output == nil || profile.Output.Name != "users" {
		t.Errorf("expected profile output name 'users', got %+v", profile.Output)
	}

	// Verify logging config
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadPartialProfileSections(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	configContent := `
discovery:
  max_depth: 4
  preferred_path_tokens: [records]
  prefer_shallow: true

csv:
  delimiter: ";"
  truncate_suffix: "~"

profiles:
  users:
    discovery:
      require_path_tokens: [users]
      prefer_large_datasets: false
    csv:
      max_rows: 50
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	discovery := cfg.GetProfileDiscovery("users")
	if got := discovery.RequirePathTokens; len(got) != 1 || got[0] != "users" {
		t.Errorf("expected require tokens [users], got %v", got)
	}
	// Keys the profile section does not set inherit the global values.
	if discovery.MaxDepth != 4 {
		t.Errorf("expected inherited max_depth 4, got %d", discovery.MaxDepth)
	}
	if len(discovery.PreferredPathTokens) != 1 || discovery.PreferredPathTokens[0] != "records" {
		t.Errorf("expected inherited preferred tokens [records], got %v", discovery.PreferredPathTokens)
	}
	if !discovery.PreferShallow {
		t.Error("expected inherited prefer_shallow true")
	}
	// A key the profile sets to a zero value still wins over the global.
	if discovery.PreferLargeDatasets {
		t.Error("expected profile prefer_large_datasets false")
	}

	csv := cfg.GetProfileCSV("users")
	if csv.MaxRows != 50 {
		t.Errorf("expected profile max_rows 50, got %d", csv.MaxRows)
	}
	if csv.Delimiter != ";" {
		t.Errorf("expected inherited delimiter ';', got %s", csv.Delimiter)
	}
	if csv.TruncateSuffix != "~" {
		t.Errorf("expected inherited truncate_suffix '~', got %s", csv.TruncateSuffix)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("TEST_EXPORT_DIR", "/data/exports")
	os.Setenv("TEST_LOG_FILE", "/var/log/goexport.log")
	defer func() {
		os.Unsetenv("TEST_EXPORT_DIR")
		os.Unsetenv("TEST_LOG_FILE")
	}()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-env.yaml")

	configContent := `
output:
  dir: ${TEST_EXPORT_DIR}

profiles:
  nightly:
    output:
      dir: ${TEST_EXPORT_DIR}/nightly

logging:
  output: ${TEST_LOG_FILE}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Output.Dir != "/data/exports" {
		t.Errorf("expected output dir '/data/exports', got %s", cfg.Output.Dir)
	}
	if cfg.Logging.Output != "/var/log/goexport.log" {
		t.Errorf("expected logging output '/var/log/goexport.log', got %s", cfg.Logging.Output)
	}
	if got := cfg.Profiles["nightly"].Output.Dir; got != "/data/exports/nightly" {
		t.Errorf("expected profile dir '/data/exports/nightly', got %s", got)
	}
}

func TestExpandEnvVar(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test-value"},
		{"$TEST_VAR", "test-value"},
		{"prefix-${TEST_VAR}-suffix", "prefix-test-value-suffix"},
		{"${NONEXISTENT}", "${NONEXISTENT}"}, // Unset vars remain unchanged
		{"no-vars-here", "no-vars-here"},
	}

	for _, tt := range tests {
		result := expandEnvVar(tt.input)
		if result != tt.expected {
			t.Errorf("expandEnvVar(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestGetProfile(t *testing.T) {
	cfg := &Config{
		Profiles: map[string]ProfileConfig{
			"existing": {
				Output: &OutputConfig{Name: "orders"},
			},
		},
	}

	// Test existing profile
	profile, err := cfg.GetProfile("existing")
	if err != nil {
		t.Errorf("unexpected error getting existing profile: %v", err)
	}
	if profile.Output.Name != "orders" {
		t.Errorf("expected output name 'orders', got %s", profile.Output.Name)
	}

	// Test non-existing profile
	_, err = cfg.GetProfile("nonexistent")
	if err == nil {
		t.Error("expected error for non-existing profile")
	}
}

func TestListProfiles(t *testing.T) {
	cfg := &Config{
		Profiles: map[string]ProfileConfig{
			"profile_c": {},
			"profile_a": {},
			"profile_b": {},
		},
	}

	profiles := cfg.ListProfiles()
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}

	// ListProfiles output is sorted
	expected := []string{"profile_a", "profile_b", "profile_c"}
	for i, name := range expected {
		if profiles[i] != name {
			t.Errorf("expected profile %q at position %d, got %q", name, i, profiles[i])
		}
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestApplyOverrides(t *testing.T) {
	// Start with a default config
	cfg := DefaultConfig()

	// Verify defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("expected default format 'csv', got %s", cfg.Output.Format)
	}

	// Apply some overrides
	cfg.ApplyOverrides("debug", "text", "jsonl", "orders", "/tmp/out", 3, 500)

	// Verify overrides were applied
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug' after override, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text' after override, got %s", cfg.Logging.Format)
	}
	if cfg.Output.Format != "jsonl" {
		t.Errorf("expected format 'jsonl' after override, got %s", cfg.Output.Format)
	}
	if cfg.Output.Name != "orders" {
		t.Errorf("expected name 'orders' after override, got %s", cfg.Output.Name)
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Errorf("expected dir '/tmp/out' after override, got %s", cfg.Output.Dir)
	}
	if cfg.Discovery.MaxDepth != 3 {
		t.Errorf("expected max_depth 3 after override, got %d", cfg.Discovery.MaxDepth)
	}
	if cfg.CSV.MaxRows != 500 {
		t.Errorf("expected max_rows 500 after override, got %d", cfg.CSV.MaxRows)
	}
}

func TestApplyOverridesZeroValues(t *testing.T) {
	// Start with a custom config
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
		Discovery: DiscoveryConfig{MaxDepth: 4},
		CSV:       CSVConfig{MaxRows: 200},
		Output:    OutputConfig{Format: "json", Name: "report", Dir: "/srv/out"},
	}

	// Apply zero values (should NOT override)
	cfg.ApplyOverrides("", "", "", "", "", 0, 0)

	// Verify original values are preserved
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn' to be preserved, got %s", cfg.Logging.Level)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format 'json' to be preserved, got %s", cfg.Output.Format)
	}
	if cfg.Output.Name != "report" {
		t.Errorf("expected name 'report' to be preserved, got %s", cfg.Output.Name)
	}
	if cfg.Discovery.MaxDepth != 4 {
		t.Errorf("expected max_depth 4 to be preserved, got %d", cfg.Discovery.MaxDepth)
	}
	if cfg.CSV.MaxRows != 200 {
		t.Errorf("expected max_rows 200 to be preserved, got %d", cfg.CSV.MaxRows)
	}
}

func TestApplyProfileOverrides(t *testing.T) {
	cfg := &Config{
		Discovery: DiscoveryConfig{MaxDepth: 6},
		Profiles: map[string]ProfileConfig{
			"deep": {
				Discovery: &DiscoveryConfig{MaxDepth: 10},
			},
		},
	}

	// CLI value wins over the profile value
	got := cfg.ApplyProfileOverrides("deep", 3)
	if got.MaxDepth != 3 {
		t.Errorf("expected max_depth 3 after override, got %d", got.MaxDepth)
	}

	// Zero leaves the profile value in place
	got = cfg.ApplyProfileOverrides("deep", 0)
	if got.MaxDepth != 10 {
		t.Errorf("expected profile max_depth 10, got %d", got.MaxDepth)
	}
}
