package config

import (
	"fmt"
	"strings"
)

// Entry is one effective configuration value and where it came from.
type Entry struct {
	Field  string
	Value  string
	Source ConfigSource
}

// Source returns the source of field, or SourceDefault when untracked.
func (cws *ConfigWithSources) Source(field string) ConfigSource {
	if s, ok := cws.Sources[field]; ok {
		return s
	}
	return SourceDefault
}

// Entries returns every configurable field with its value and source.
func (cws *ConfigWithSources) Entries() []Entry {
	cfg := cws.Config
	values := map[string]string{
		"column_gap":             fmt.Sprint(cfg.ColumnGap),
		"collapse_empty_columns": fmt.Sprint(cfg.CollapseEmptyColumns),
		"min_column_width":       fmt.Sprint(cfg.MinColumnWidth),
		"trim_trailing_space":    fmt.Sprint(cfg.TrimTrailingSpace),
		"display_width":          fmt.Sprint(cfg.DisplayWidth),
		"keywords":               strings.Join(cfg.Keywords, ","),
		"schema_file":            cfg.SchemaFile,
		"log_level":              cfg.LogLevel,
		"log_format":             cfg.LogFormat,
		"log_timestamps":         fmt.Sprint(cfg.LogTimestamps),
		"log_caller":             fmt.Sprint(cfg.LogCaller),
	}

	fields := configFields()
	entries := make([]Entry, 0, len(fields))
	for _, field := range fields {
		entries = append(entries, Entry{
			Field:  field,
			Value:  values[field],
			Source: cws.Source(field),
		})
	}
	return entries
}

// GetConfigFile returns the config file with the highest priority that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
