package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan Config, 4)
	w, err := NewWatcher(path, func(cfg Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		reloads <- cfg
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	content := "[terminal]\ncols = 132\nrows = 50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloads:
		if cfg.Terminal.Cols != 132 {
			t.Errorf("reloaded cols = %d, want 132", cfg.Terminal.Cols)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s of config write")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan struct{}, 4)
	w, err := NewWatcher(path, func(Config, error) {
		reloads <- struct{}{}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloads:
		t.Error("reload fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w, err := NewWatcher(path, func(Config, error) {})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
