package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if err := c.validateDiscovery("discovery", &c.Discovery); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateCSV("csv", &c.CSV); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateOutput("output", &c.Output); err != nil {
		errors = append(errors, err...)
	}

	for name, profile := range c.Profiles {
		prefix := fmt.Sprintf("profiles.%s", name)
		if profile.Discovery != nil {
			if err := c.validateDiscovery(prefix+".discovery", profile.Discovery); err != nil {
				errors = append(errors, err...)
			}
		}
		if profile.CSV != nil {
			if err := c.validateCSV(prefix+".csv", profile.CSV); err != nil {
				errors = append(errors, err...)
			}
		}
		if profile.Output != nil {
			if err := c.validateProfileOutput(prefix+".output", profile.Output); err != nil {
				errors = append(errors, err...)
			}
		}
	}

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateDiscovery(prefix string, dc *DiscoveryConfig) ValidationErrors {
	var errors ValidationErrors

	if dc.MaxDepth < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_depth",
			Message: "max_depth cannot be negative",
		})
	}

	if dc.MinRows < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".min_rows",
			Message: "min_rows cannot be negative",
		})
	}

	if dc.MaxCandidates < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_candidates",
			Message: "max_candidates cannot be negative",
		})
	}

	if dc.MaxInspectedNodes < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_inspected_nodes",
			Message: "max_inspected_nodes cannot be negative",
		})
	}

	if dc.MinObjectRatio < 0 || dc.MinObjectRatio > 1 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".min_object_ratio",
			Message: "min_object_ratio must be between 0 and 1",
		})
	}

	if dc.IncludePathPattern != "" {
		if _, err := regexp.Compile(dc.IncludePathPattern); err != nil {
			errors = append(errors, ValidationError{
				Field:   prefix + ".include_path_pattern",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	if dc.ExcludePathPattern != "" {
		if _, err := regexp.Compile(dc.ExcludePathPattern); err != nil {
			errors = append(errors, ValidationError{
				Field:   prefix + ".exclude_path_pattern",
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	return errors
}

func (c *Config) validateCSV(prefix string, cc *CSVConfig) ValidationErrors {
	var errors ValidationErrors

	validTerminators := map[string]bool{"lf": true, "crlf": true, "": true}
	if !validTerminators[cc.LineTerminator] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".line_terminator",
			Message: "line_terminator must be 'lf' or 'crlf'",
		})
	}

	if cc.MaxCellLength < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_cell_length",
			Message: "max_cell_length cannot be negative",
		})
	}

	if cc.MaxRows < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_rows",
			Message: "max_rows cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateOutput(prefix string, oc *OutputConfig) ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"csv": true, "json": true, "jsonl": true}
	if !validFormats[oc.Format] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".format",
			Message: "format must be 'csv', 'json', or 'jsonl'",
		})
	}

	if oc.Name == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".name",
			Message: "name is required",
		})
	}

	return errors
}

// validateProfileOutput allows empty fields since they fall back to the
// global output settings.
func (c *Config) validateProfileOutput(prefix string, oc *OutputConfig) ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"csv": true, "json": true, "jsonl": true, "": true}
	if !validFormats[oc.Format] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".format",
			Message: "format must be 'csv', 'json', or 'jsonl'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
