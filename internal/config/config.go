package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Reattach modes for the live-region reattachment workaround.
const (
	ReattachAuto = "auto"
	ReattachOn   = "on"
	ReattachOff  = "off"
)

// Config is the full termreader configuration.
type Config struct {
	Terminal TerminalConfig `toml:"terminal"`
	Render   RenderConfig   `toml:"render"`
	Speech   SpeechConfig   `toml:"speech"`
	Log      LogConfig      `toml:"log"`
}

// TerminalConfig controls the embedded terminal.
type TerminalConfig struct {
	// Cols and Rows are the initial grid size.
	Cols int `toml:"cols"`
	Rows int `toml:"rows"`

	// Scrollback is the number of history lines kept beyond the
	// viewport.
	Scrollback int `toml:"scrollback"`

	// Shell overrides $SHELL when non-empty.
	Shell string `toml:"shell"`
}

// RenderConfig controls cell raster metrics.
type RenderConfig struct {
	FontScale float64 `toml:"font_scale"`
	DPR       float64 `toml:"dpr"`
}

// SpeechConfig controls announcement behavior.
type SpeechConfig struct {
	// Dictionary is the path to a Lua rewrite script, empty for none.
	Dictionary string `toml:"dictionary"`

	// ReattachWorkaround selects the live-region reattach cycle:
	// "auto" decides per platform, "on" and "off" force it.
	ReattachWorkaround string `toml:"reattach_workaround"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// File receives log output; empty discards it. Logging to the
	// controlling terminal would corrupt the screen.
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Terminal: TerminalConfig{
			Cols:       80,
			Rows:       24,
			Scrollback: 1000,
		},
		Render: RenderConfig{
			FontScale: 1.0,
			DPR:       1.0,
		},
		Speech: SpeechConfig{
			ReattachWorkaround: ReattachAuto,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "termreader", "config.toml"), nil
}

// Load reads and validates the config file at path. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.Terminal.Cols <= 0 || c.Terminal.Rows <= 0 {
		return ErrInvalidSize
	}
	if c.Terminal.Scrollback < 0 {
		return ErrInvalidScrollback
	}
	if c.Render.FontScale <= 0 || c.Render.DPR <= 0 {
		return ErrInvalidScale
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch c.Speech.ReattachWorkaround {
	case ReattachAuto, ReattachOn, ReattachOff:
	default:
		return ErrInvalidReattach
	}
	return nil
}

// ReattachEnabled resolves the reattach mode for the current platform.
// Auto enables the workaround on Linux, where the common screen readers
// only announce live content that appears as new.
func (c Config) ReattachEnabled() bool {
	switch c.Speech.ReattachWorkaround {
	case ReattachOn:
		return true
	case ReattachOff:
		return false
	default:
		return runtime.GOOS == "linux"
	}
}
