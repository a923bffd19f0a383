// SPDX-License-Identifier: MPL-2.0

// Package config handles vtail configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/vtail/config.cue on Linux
// (~/.config/vtail when unset), ~/Library/Application Support/vtail/config.cue
// on macOS and %APPDATA%\vtail\config.cue on Windows, falling back to
// ./config.cue. VTAIL_* environment variables override file values, for
// example VTAIL_LINES or VTAIL_UI_LOG_LEVEL.
//
// Files are validated against the embedded CUE schema (config_schema.cue)
// before being merged into Viper.
package config
