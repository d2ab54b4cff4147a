// FILE: override.go
package drlogger

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the listener's current configuration.
// Each override should be in the format "key=value".
//
// Example:
//
//	listener := drlogger.NewDailyFileListener()
//	err := listener.ApplyOverride(
//	    "directory=/var/log/app",
//	    "max_file_size=10MB",
//	    "min_level=info",
//	)
func (d *DailyFileListener) ApplyOverride(overrides ...string) error {
	cfg := d.Config()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return d.ApplyConfig(cfg)
}

// ApplyOverrides applies "key=value" overrides to a Config without validating it
func (c *Config) ApplyOverrides(overrides ...string) error {
	var errors []error
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}
		if err := applyConfigField(c, key, value); err != nil {
			errors = append(errors, err)
		}
	}
	return combineConfigErrors(errors)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString(diagnosticPrefix + "multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), diagnosticPrefix)
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "directory":
		cfg.Directory = value
	case "name_prefix":
		cfg.NamePrefix = value

	case "max_file_count":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_file_count '%s': %w", value, err)
		}
		cfg.MaxFileCount = intVal
	case "max_file_age_days":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_file_age_days '%s': %w", value, err)
		}
		cfg.MaxFileAgeDays = intVal
	case "max_file_size":
		cfg.MaxFileSize = value
	case "cleanup_schedule":
		cfg.CleanupSchedule = value

	case "enabled":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for enabled '%s': %w", value, err)
		}
		cfg.Enabled = boolVal
	case "min_level":
		if _, err := ParseLevel(value); err != nil {
			return fmtErrorf("invalid min_level value '%s': %w", value, err)
		}
		cfg.MinLevel = value
	case "tag_regex":
		cfg.TagRegex = value
	case "message_regex":
		cfg.MessageRegex = value

	case "sanitize_tags":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for sanitize_tags '%s': %w", value, err)
		}
		cfg.SanitizeTags = boolVal
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
