// Package config provides configuration loading and management for roster.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	rerrors "github.com/wexinc/roster/internal/errors"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the working directory.
	DefaultConfigPath = ".roster/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "ROSTER"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
// If path is empty, it uses DefaultConfigPath relative to the working directory.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{
			Path:    path,
			Message: "config file not found",
			Err:     err,
		}
	}

	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read config file",
			Err:     err,
		}
	}

	cfg := NewConfig()

	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	return l.finish(path, cfg)
}

// LoadConfigOrDefault behaves like LoadConfig but returns the defaults, with
// environment overrides applied, when the file does not exist.
func (l *Loader) LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := l.LoadConfig(path)
	if err == nil || !IsNotFound(err) {
		return cfg, err
	}
	if path == "" {
		path = DefaultConfigPath
	}
	return l.finish(path, NewConfig())
}

func (l *Loader) finish(path string, cfg *Config) (*Config, error) {
	l.applyEnvOverrides(cfg)

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .roster/config.yaml in the specified directory.
func (l *Loader) LoadConfigFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultConfigPath)
	return l.LoadConfig(path)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Malformed numeric and duration values are ignored.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// View settings
	if v := os.Getenv(EnvPrefix + "_VIEW_SORT_COLUMN"); v != "" {
		cfg.View.SortColumn = SortColumn(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPrefix + "_VIEW_SORT_DIRECTION"); v != "" {
		cfg.View.SortDirection = SortDirection(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPrefix + "_VIEW_FILTER"); v != "" {
		cfg.View.Filter = v
	}

	// Editor settings
	if v := os.Getenv(EnvPrefix + "_EDITOR_REJECT_NEGATIVE_AGE"); v != "" {
		cfg.Editor.RejectNegativeAge = parseBool(v)
	}
	if v := os.Getenv(EnvPrefix + "_EDITOR_MAX_NAME_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.MaxNameLength = n
		}
	}

	// File settings
	if v := os.Getenv(EnvPrefix + "_FILES_DEFAULT_DIR"); v != "" {
		cfg.Files.DefaultDir = v
	}
	if v := os.Getenv(EnvPrefix + "_FILES_DEFAULT_NAME"); v != "" {
		cfg.Files.DefaultName = v
	}

	// Logging settings
	if v := os.Getenv(EnvPrefix + "_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = LogLevel(strings.ToLower(v))
	}
	if v := os.Getenv(EnvPrefix + "_LOGGING_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv(EnvPrefix + "_LOGGING_MAX_AGE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Logging.MaxAge = d
		}
	}
	if v := os.Getenv(EnvPrefix + "_LOGGING_CONSOLE"); v != "" {
		cfg.Logging.Console = parseBool(v)
	}
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
// Returns false for anything else.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook composes the standard mapstructure hooks with our custom ones.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToCustomTypeHookFunc(),
	)
}

// stringToCustomTypeHookFunc lower-cases values for the enum string types so
// "Age" and "DESC" are accepted in the file.
func stringToCustomTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		s := strings.ToLower(strings.TrimSpace(data.(string)))
		switch to {
		case reflect.TypeOf(SortColumn("")):
			return SortColumn(s), nil
		case reflect.TypeOf(SortDirection("")):
			return SortDirection(s), nil
		case reflect.TypeOf(LogLevel("")):
			return LogLevel(s), nil
		}

		return data, nil
	}
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a LoadError for a missing file.
func IsNotFound(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && errors.Is(le.Err, os.ErrNotExist)
}

// Describe converts a load failure into a RosterError with a suggestion the
// CLI can print.
func Describe(err error) *rerrors.RosterError {
	var le *LoadError
	if !errors.As(err, &le) {
		return rerrors.Wrap(err, rerrors.ErrConfig, "failed to load configuration")
	}

	if IsNotFound(err) {
		return rerrors.ConfigNotFound(le.Path)
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		re := rerrors.ConfigValidationError(first.Field, verrs.Error(), first.Options)
		return re.WithDetails("path", le.Path)
	}

	return rerrors.ConfigParseError(le.Path, le.Err)
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// LoadOrDefault is a convenience function for Loader.LoadConfigOrDefault.
func LoadOrDefault(path string) (*Config, error) {
	return NewLoader().LoadConfigOrDefault(path)
}

// LoadFromDir is a convenience function that loads configuration from a directory.
func LoadFromDir(dir string) (*Config, error) {
	return NewLoader().LoadConfigFromDir(dir)
}

// Write saves cfg as YAML to path, creating parent directories.
// It refuses to replace an existing file unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if path == "" {
		path = DefaultConfigPath
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# roster configuration\n# Environment variables prefixed with " + EnvPrefix + "_ override these values.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
