package config

import (
	"flag"
	"fmt"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"gap":            "column_gap",
	"collapse":       "collapse_empty_columns",
	"min-width":      "min_column_width",
	"trim":           "trim_trailing_space",
	"display-width":  "display_width",
	"keyword":        "keywords",
	"schema":         "schema_file",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// BindFlags defines the config flags on fs, defaulting to the current values of
// cfg. Parsing fs writes straight into cfg.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.ColumnGap, "gap", cfg.ColumnGap, "Spaces between metadata columns")
	fs.BoolVar(&cfg.CollapseEmptyColumns, "collapse", cfg.CollapseEmptyColumns, "Elide metadata columns no task uses")
	fs.IntVar(&cfg.MinColumnWidth, "min-width", cfg.MinColumnWidth, "Minimum width of a metadata column")
	fs.BoolVar(&cfg.TrimTrailingSpace, "trim", cfg.TrimTrailingSpace, "Remove trailing whitespace from output lines")
	fs.BoolVar(&cfg.DisplayWidth, "display-width", cfg.DisplayWidth, "Align on terminal cells instead of characters")
	fs.Func("keyword", "Extra passthrough directive keyword (repeatable, comma-separated)", func(s string) error {
		cfg.Keywords = append(cfg.Keywords, splitAndTrim(s, ",")...)
		return nil
	})
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "JSON Schema file used by dump instead of the built-in one")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
}

// ParseFlags binds the config flags on fs, parses args and records which
// fields the flags set. It can be called again with a subcommand's flag set so
// that layout flags are accepted after the subcommand name.
func (cws *ConfigWithSources) ParseFlags(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("ganttfmt", flag.ContinueOnError)
	}
	if cws.Sources == nil {
		cws.Sources = make(map[string]ConfigSource)
	}
	BindFlags(fs, cws.Config)

	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			cws.Sources[field] = SourceFlag
		}
	})

	if err := finalizeConfig(cws.Config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
