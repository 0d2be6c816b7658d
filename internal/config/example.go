package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# ganttfmt configuration file
# Values can be overridden by GANTTFMT_* environment variables or CLI flags

# Spaces between metadata columns
column_gap = 2

# Drop metadata columns that no task uses
collapse_empty_columns = true

# Minimum width of every drawn metadata column
min_column_width = 0

# Remove padding left at the end of task lines
trim_trailing_space = true

# Align on terminal cells (wide CJK characters count as two) instead of runes
display_width = false

# Extra directive keywords to keep as-is, in addition to the Mermaid gantt ones
# keywords = ["vertical"]

# JSON Schema used by "ganttfmt dump" (the built-in schema when empty)
# schema_file = "gantt.schema.json"

# Logging (written to stderr)
log_level = "warn"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
