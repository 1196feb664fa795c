// Package config provides configuration data structures for roster.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config represents the complete roster configuration loaded from .roster/config.yaml.
type Config struct {
	View    ViewConfig    `yaml:"view"    json:"view"    mapstructure:"view"`
	Editor  EditorConfig  `yaml:"editor"  json:"editor"  mapstructure:"editor"`
	Files   FilesConfig   `yaml:"files"   json:"files"   mapstructure:"files"`
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
}

// SortColumn names the column the table is initially sorted by.
type SortColumn string

const (
	// SortNone keeps roster order.
	SortNone SortColumn = ""
	// SortFirstName sorts by first name.
	SortFirstName SortColumn = "first"
	// SortLastName sorts by last name.
	SortLastName SortColumn = "last"
	// SortAge sorts by age.
	SortAge SortColumn = "age"
)

// SortDirection is the initial sort direction.
type SortDirection string

const (
	// SortAscending sorts smallest first.
	SortAscending SortDirection = "asc"
	// SortDescending sorts largest first.
	SortDescending SortDirection = "desc"
)

// ViewConfig configures the initial table view.
type ViewConfig struct {
	// SortColumn is the initial sort column. Empty keeps roster order.
	SortColumn SortColumn `yaml:"sort_column" json:"sort_column" mapstructure:"sort_column"`
	// SortDirection is the initial sort direction (default: asc).
	SortDirection SortDirection `yaml:"sort_direction" json:"sort_direction" mapstructure:"sort_direction"`
	// Filter is the initial first name filter.
	Filter string `yaml:"filter" json:"filter" mapstructure:"filter"`
}

// EditorConfig configures validation in the person dialog.
type EditorConfig struct {
	// RejectNegativeAge makes the dialog refuse ages below zero (default: false).
	// Imports accept any integer regardless.
	RejectNegativeAge bool `yaml:"reject_negative_age" json:"reject_negative_age" mapstructure:"reject_negative_age"`
	// MaxNameLength limits first and last names in the dialog. Zero means no limit.
	MaxNameLength int `yaml:"max_name_length" json:"max_name_length" mapstructure:"max_name_length"`
}

// FilesConfig configures the import/export path prompt.
type FilesConfig struct {
	// DefaultDir is the directory offered in the path prompt (default: ".").
	DefaultDir string `yaml:"default_dir" json:"default_dir" mapstructure:"default_dir"`
	// DefaultName is the file name offered in the path prompt (default: "roster.csv").
	DefaultName string `yaml:"default_name" json:"default_name" mapstructure:"default_name"`
}

// DefaultPath joins DefaultDir and DefaultName.
func (f FilesConfig) DefaultPath() string {
	return filepath.Join(f.DefaultDir, f.DefaultName)
}

// LogLevel is the minimum level written to the log.
type LogLevel string

const (
	// LogLevelDebug logs everything.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs informational messages and above.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

// LoggingConfig configures the log file and console output.
type LoggingConfig struct {
	// Level is the minimum log level (default: info).
	Level LogLevel `yaml:"level" json:"level" mapstructure:"level"`
	// Dir is the log directory (default: .roster/logs).
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`
	// MaxFiles is the number of log files kept (default: 10).
	MaxFiles int `yaml:"max_files" json:"max_files" mapstructure:"max_files"`
	// MaxAge is how long log files are kept (default: 168h).
	MaxAge time.Duration `yaml:"max_age" json:"max_age" mapstructure:"max_age"`
	// Console also logs to stderr. The TUI ignores it.
	Console bool `yaml:"console" json:"console" mapstructure:"console"`
	// JSON writes the log file as JSON lines.
	JSON bool `yaml:"json" json:"json" mapstructure:"json"`
}

// MarshalYAML writes MaxAge as a duration string such as "168h0m0s".
func (c LoggingConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Level    LogLevel `yaml:"level"`
		Dir      string   `yaml:"dir"`
		MaxFiles int      `yaml:"max_files"`
		MaxAge   string   `yaml:"max_age"`
		Console  bool     `yaml:"console"`
		JSON     bool     `yaml:"json"`
	}{
		Level:    c.Level,
		Dir:      c.Dir,
		MaxFiles: c.MaxFiles,
		MaxAge:   c.MaxAge.String(),
		Console:  c.Console,
		JSON:     c.JSON,
	}, nil
}

// Default values.
const (
	DefaultSortDirection = SortAscending
	DefaultFilesDir      = "."
	DefaultFileName      = "roster.csv"
	DefaultLogLevel      = LogLevelInfo
	DefaultLogDir        = ".roster/logs"
	DefaultLogMaxFiles   = 10
	DefaultLogMaxAge     = 7 * 24 * time.Hour
)

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		View: ViewConfig{
			SortColumn:    SortNone,
			SortDirection: DefaultSortDirection,
		},
		Editor: EditorConfig{
			RejectNegativeAge: false,
			MaxNameLength:     0,
		},
		Files: FilesConfig{
			DefaultDir:  DefaultFilesDir,
			DefaultName: DefaultFileName,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Dir:      DefaultLogDir,
			MaxFiles: DefaultLogMaxFiles,
			MaxAge:   DefaultLogMaxAge,
		},
	}
}

// ApplyDefaults fills in any unset fields after loading from a file.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.View.SortDirection == "" {
		c.View.SortDirection = defaults.View.SortDirection
	}

	if c.Files.DefaultDir == "" {
		c.Files.DefaultDir = defaults.Files.DefaultDir
	}
	if c.Files.DefaultName == "" {
		c.Files.DefaultName = defaults.Files.DefaultName
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = defaults.Logging.Dir
	}
	if c.Logging.MaxFiles == 0 {
		c.Logging.MaxFiles = defaults.Logging.MaxFiles
	}
	if c.Logging.MaxAge == 0 {
		c.Logging.MaxAge = defaults.Logging.MaxAge
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	// Options lists the accepted values, when the field is an enum.
	Options []string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	switch c.View.SortColumn {
	case SortNone, SortFirstName, SortLastName, SortAge:
	default:
		errs = append(errs, &ValidationError{
			Field:   "view.sort_column",
			Message: fmt.Sprintf("unknown column %q", c.View.SortColumn),
			Options: []string{"first", "last", "age"},
		})
	}

	switch c.View.SortDirection {
	case "", SortAscending, SortDescending:
	default:
		errs = append(errs, &ValidationError{
			Field:   "view.sort_direction",
			Message: fmt.Sprintf("unknown direction %q", c.View.SortDirection),
			Options: []string{"asc", "desc"},
		})
	}

	if c.Editor.MaxNameLength < 0 {
		errs = append(errs, &ValidationError{Field: "editor.max_name_length", Message: "must be non-negative"})
	}

	if c.Files.DefaultName != "" && filepath.Base(c.Files.DefaultName) != c.Files.DefaultName {
		errs = append(errs, &ValidationError{
			Field:   "files.default_name",
			Message: "must be a file name without directories; use files.default_dir for the directory",
		})
	}

	switch c.Logging.Level {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		errs = append(errs, &ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", c.Logging.Level),
			Options: []string{"debug", "info", "warn", "error"},
		})
	}
	if c.Logging.MaxFiles < 0 {
		errs = append(errs, &ValidationError{Field: "logging.max_files", Message: "must be non-negative"})
	}
	if c.Logging.MaxAge < 0 {
		errs = append(errs, &ValidationError{Field: "logging.max_age", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
