package config

import (
	"fmt"

	"github.com/nibzard/ganttfmt/internal/gantt"
	"github.com/nibzard/ganttfmt/internal/logging"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, user file first.
	Files []string
}

// Default values.
const (
	DefaultColumnGap            = 2
	DefaultCollapseEmptyColumns = true
	DefaultMinColumnWidth       = 0
	DefaultTrimTrailingSpace    = true
	DefaultDisplayWidth         = false
	DefaultLogLevel             = "warn"
	DefaultLogFormat            = "text"
)

// Config holds the full configuration for ganttfmt.
type Config struct {
	// Layout
	ColumnGap            int  `toml:"column_gap"`
	CollapseEmptyColumns bool `toml:"collapse_empty_columns"`
	MinColumnWidth       int  `toml:"min_column_width"`
	TrimTrailingSpace    bool `toml:"trim_trailing_space"`
	DisplayWidth         bool `toml:"display_width"`

	// Keywords are extra directive keywords kept as passthrough lines.
	Keywords []string `toml:"keywords"`

	// SchemaFile replaces the embedded JSON Schema used by dump.
	SchemaFile string `toml:"schema_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// FormatOptions returns the formatter options described by the config.
func (c *Config) FormatOptions() gantt.Options {
	return gantt.Options{
		Layout: gantt.Layout{
			ColumnGap:            c.ColumnGap,
			CollapseEmptyColumns: c.CollapseEmptyColumns,
			MinColumnWidth:       c.MinColumnWidth,
			TrimTrailingSpace:    c.TrimTrailingSpace,
			DisplayWidth:         c.DisplayWidth,
		},
		Keywords: c.Keywords,
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.ColumnGap < 0 {
		return fmt.Errorf("column_gap must not be negative, got %d", c.ColumnGap)
	}
	if c.MinColumnWidth < 0 {
		return fmt.Errorf("min_column_width must not be negative, got %d", c.MinColumnWidth)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error, fatal", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("log_format %q is not one of text, json, logfmt", c.LogFormat)
	}
	return nil
}
