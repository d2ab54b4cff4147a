// FILE: config.go
package drlogger

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/dobrawek/drlogger/filesystem"
	"github.com/lixenwraith/config"
	"github.com/robfig/cron/v3"
)

// configPrefix is the TOML table holding the listener settings
const configPrefix = "drlogger."

// Config holds all daily file listener configuration values
type Config struct {
	// File layout
	Directory  string `toml:"directory"`
	NamePrefix string `toml:"name_prefix"` // Prepended to the yyyyMMdd date of every file

	// Retention and rotation
	MaxFileCount    int64  `toml:"max_file_count"`    // Files kept after a retention pass
	MaxFileAgeDays  int64  `toml:"max_file_age_days"` // Older files are removed by retention
	MaxFileSize     string `toml:"max_file_size"`     // e.g. "10MB"; empty disables size rotation
	CleanupSchedule string `toml:"cleanup_schedule"`  // Cron expression for periodic retention; empty runs it on start only

	// Filtering
	Enabled      bool   `toml:"enabled"`
	MinLevel     string `toml:"min_level"`
	TagRegex     string `toml:"tag_regex"`
	MessageRegex string `toml:"message_regex"`

	// Output
	SanitizeTags bool `toml:"sanitize_tags"` // Hex-encode non-printable runes in tags

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write diagnostics to the console
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Directory:  "./logs",
	NamePrefix: "",

	MaxFileCount:    DefaultMaxFileCount,
	MaxFileAgeDays:  DefaultMaxFileAgeDays,
	MaxFileSize:     "",
	CleanupSchedule: "",

	Enabled:      true,
	MinLevel:     "trace",
	TagRegex:     "",
	MessageRegex: "",

	SanitizeTags: false,

	InternalErrorsToStderr: true,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [drlogger] table of a TOML file.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	if err := loader.RegisterStruct(configPrefix, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, configPrefix, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides keyed by toml name
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			// TOML decoders may hand integers over as floats
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty")
	}

	if strings.ContainsAny(c.NamePrefix, `/\`) {
		return fmtErrorf("name_prefix cannot contain path separators: %s", c.NamePrefix)
	}

	if c.MaxFileCount < 0 {
		return fmtErrorf("max_file_count cannot be negative: %d", c.MaxFileCount)
	}

	if c.MaxFileAgeDays < 0 {
		return fmtErrorf("max_file_age_days cannot be negative: %d", c.MaxFileAgeDays)
	}

	if _, err := c.maxFileSize(); err != nil {
		return err
	}

	if _, err := ParseLevel(c.MinLevel); err != nil {
		return fmtErrorf("invalid min_level: %w", err)
	}

	if _, err := regexp.Compile(c.TagRegex); err != nil {
		return fmtErrorf("invalid tag_regex '%s': %w", c.TagRegex, err)
	}

	if _, err := regexp.Compile(c.MessageRegex); err != nil {
		return fmtErrorf("invalid message_regex '%s': %w", c.MessageRegex, err)
	}

	if c.CleanupSchedule != "" {
		if _, err := cron.ParseStandard(c.CleanupSchedule); err != nil {
			return fmtErrorf("invalid cleanup_schedule '%s': %w", c.CleanupSchedule, err)
		}
	}

	return nil
}

// maxFileSize parses MaxFileSize; an empty value means no ceiling
func (c *Config) maxFileSize() (*filesystem.Size, error) {
	if strings.TrimSpace(c.MaxFileSize) == "" {
		return nil, nil
	}
	size, err := filesystem.ParseSize(c.MaxFileSize)
	if err != nil {
		return nil, fmtErrorf("invalid max_file_size: %w", err)
	}
	return &size, nil
}

// CurrentFile returns the main daily file for t without touching the filesystem
func (c *Config) CurrentFile(t time.Time) string {
	return filepath.Join(c.Directory, c.NamePrefix+t.Format(dateLayout)+logExtension)
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// ApplyConfig validates cfg and applies it to the listener.
// The directory is created when missing; a creation failure is returned after
// every other setting has been applied.
func (d *DailyFileListener) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	// Validated above
	maxSize, _ := cfg.maxFileSize()
	minLevel, _ := ParseLevel(cfg.MinLevel)

	d.mu.Lock()
	d.namePrefix = cfg.NamePrefix
	d.maxFileCount = int(cfg.MaxFileCount)
	d.maxFileAgeDays = int(cfg.MaxFileAgeDays)
	d.maxFileSize = maxSize
	d.mu.Unlock()

	d.SetSanitizeTags(cfg.SanitizeTags)
	d.diag.enabled.Store(cfg.InternalErrorsToStderr)

	d.filter.SetEnabled(cfg.Enabled)
	d.filter.SetMinLevel(minLevel)
	err := combineErrors(d.filter.SetTagRegex(cfg.TagRegex), d.filter.SetMessageRegex(cfg.MessageRegex))

	err = combineErrors(err, d.SetCleanupSchedule(cfg.CleanupSchedule))
	return combineErrors(err, d.SetPath(cfg.Directory))
}

// Config returns the listener's current settings as a Config
func (d *DailyFileListener) Config() *Config {
	cfg := DefaultConfig()
	if dir := d.Path(); dir != "" {
		cfg.Directory = dir
	}

	d.mu.Lock()
	cfg.NamePrefix = d.namePrefix
	cfg.MaxFileCount = int64(d.maxFileCount)
	cfg.MaxFileAgeDays = int64(d.maxFileAgeDays)
	if d.maxFileSize != nil {
		cfg.MaxFileSize = d.maxFileSize.String()
	} else {
		cfg.MaxFileSize = ""
	}
	cfg.SanitizeTags = d.tagSanitizer != nil
	d.mu.Unlock()

	d.filter.mu.RLock()
	cfg.Enabled = d.filter.enabled
	cfg.MinLevel = strings.ToLower(d.filter.minLevel.String())
	if d.filter.tagRegex != nil {
		cfg.TagRegex = d.filter.tagRegex.String()
	}
	if d.filter.messageRegex != nil {
		cfg.MessageRegex = d.filter.messageRegex.String()
	}
	d.filter.mu.RUnlock()

	cfg.CleanupSchedule = d.CleanupSchedule()
	cfg.InternalErrorsToStderr = d.diag.enabled.Load()
	return cfg
}
