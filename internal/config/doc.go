// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.ganttfmt/ganttfmt.toml or OS-specific config directory)
// 3. Project config file (ganttfmt.toml or .ganttfmt.toml in the working directory)
// 4. Environment variables (GANTTFMT_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.ganttfmt/ganttfmt.toml (preferred)
// - Windows: %APPDATA%\ganttfmt\ganttfmt.toml
// - macOS: ~/Library/Application Support/ganttfmt/ganttfmt.toml
// - Linux/BSD: $XDG_CONFIG_HOME/ganttfmt/ganttfmt.toml or ~/.config/ganttfmt/ganttfmt.toml
//
// Project-level config locations (overrides user config):
// - ./ganttfmt.toml (preferred)
// - ./.ganttfmt.toml
package config
