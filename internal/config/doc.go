// Package config loads and validates termreader's TOML configuration.
//
// Configuration lives at $XDG_CONFIG_HOME/termreader/config.toml (via
// os.UserConfigDir). A missing file is not an error; defaults apply.
// The Watcher reloads the file on change so dictionary and logging
// tweaks take effect without restarting the terminal.
package config
