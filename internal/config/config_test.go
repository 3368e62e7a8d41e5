package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[terminal]
cols = 120
rows = 40
shell = "/bin/zsh"

[speech]
dictionary = "/home/user/dict.lua"
reattach_workaround = "on"

[log]
file = "/tmp/termreader.log"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Terminal.Cols != 120 || cfg.Terminal.Rows != 40 {
		t.Errorf("terminal size = %dx%d, want 120x40", cfg.Terminal.Cols, cfg.Terminal.Rows)
	}
	if cfg.Terminal.Shell != "/bin/zsh" {
		t.Errorf("shell = %q, want /bin/zsh", cfg.Terminal.Shell)
	}
	if cfg.Terminal.Scrollback != 1000 {
		t.Errorf("scrollback = %d, unset field must keep default 1000", cfg.Terminal.Scrollback)
	}
	if cfg.Speech.Dictionary != "/home/user/dict.lua" {
		t.Errorf("dictionary = %q", cfg.Speech.Dictionary)
	}
	if !cfg.ReattachEnabled() {
		t.Error("ReattachEnabled() = false with reattach_workaround = on")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("terminal = {"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil for malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults pass", func(c *Config) {}, nil},
		{"zero cols", func(c *Config) { c.Terminal.Cols = 0 }, ErrInvalidSize},
		{"negative rows", func(c *Config) { c.Terminal.Rows = -1 }, ErrInvalidSize},
		{"negative scrollback", func(c *Config) { c.Terminal.Scrollback = -1 }, ErrInvalidScrollback},
		{"zero font scale", func(c *Config) { c.Render.FontScale = 0 }, ErrInvalidScale},
		{"zero dpr", func(c *Config) { c.Render.DPR = 0 }, ErrInvalidScale},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
		{"bad reattach mode", func(c *Config) { c.Speech.ReattachWorkaround = "maybe" }, ErrInvalidReattach},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReattachEnabledForcedModes(t *testing.T) {
	cfg := Default()

	cfg.Speech.ReattachWorkaround = ReattachOn
	if !cfg.ReattachEnabled() {
		t.Error("ReattachEnabled() = false with mode on")
	}

	cfg.Speech.ReattachWorkaround = ReattachOff
	if cfg.ReattachEnabled() {
		t.Error("ReattachEnabled() = true with mode off")
	}
}
