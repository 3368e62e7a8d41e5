package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown warn")
	l.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %s", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("output missing expected messages: %s", out)
	}
}

func TestLoggerFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "termreader"})

	l.Info("session %s started", "abc")

	out := buf.String()
	if !strings.Contains(out, "termreader: session abc started") {
		t.Errorf("output = %q, want formatted message with prefix", out)
	}
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("output = %q, want level tag", out)
	}
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	l.WithComponent("a11y").Info("ready")

	if !strings.Contains(buf.String(), "component=a11y") {
		t.Errorf("output = %q, want component field", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termreader.log")

	l, err := NewFileLogger(path, LogLevelInfo)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	l.Info("persisted")
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "persisted") {
		t.Errorf("log file = %q, want logged message", data)
	}
}

func TestNewFileLoggerEmptyPathDiscards(t *testing.T) {
	l, err := NewFileLogger("", LogLevelDebug)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer l.Close()

	// Must not panic or write anywhere.
	l.Debug("into the void")
}

func TestNullLoggerIsSilent(t *testing.T) {
	NullLogger.Error("nothing happens")
}
