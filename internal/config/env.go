package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from GANTTFMT_* environment variables. If
// sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}
	setInt := func(name, field string, target *int) error {
		v, ok := lookupEnv(name)
		if !ok {
			return nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", name, v)
		}
		*target = i
		set(field)
		return nil
	}
	setBool := func(name, field string, target *bool) {
		if v, ok := lookupEnv(name); ok {
			*target = boolFromString(v)
			set(field)
		}
	}
	setString := func(name, field string, target *string) {
		if v, ok := lookupEnv(name); ok {
			*target = v
			set(field)
		}
	}

	if err := setInt("GANTTFMT_COLUMN_GAP", "column_gap", &cfg.ColumnGap); err != nil {
		return err
	}
	if err := setInt("GANTTFMT_MIN_COLUMN_WIDTH", "min_column_width", &cfg.MinColumnWidth); err != nil {
		return err
	}
	setBool("GANTTFMT_COLLAPSE_EMPTY_COLUMNS", "collapse_empty_columns", &cfg.CollapseEmptyColumns)
	setBool("GANTTFMT_TRIM_TRAILING_SPACE", "trim_trailing_space", &cfg.TrimTrailingSpace)
	setBool("GANTTFMT_DISPLAY_WIDTH", "display_width", &cfg.DisplayWidth)
	if v, ok := lookupEnv("GANTTFMT_KEYWORDS"); ok {
		cfg.Keywords = splitAndTrim(v, ",")
		set("keywords")
	}
	setString("GANTTFMT_SCHEMA", "schema_file", &cfg.SchemaFile)

	// Logging configuration
	setString("GANTTFMT_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("GANTTFMT_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("GANTTFMT_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("GANTTFMT_LOG_CALLER", "log_caller", &cfg.LogCaller)
	return nil
}

// lookupEnv returns the trimmed value of a set, non-blank variable.
func lookupEnv(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

// boolFromString parses a boolean from common string representations.
func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// splitAndTrim splits s by sep and drops empty parts.
func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
