package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		level   zapcore.Level
		enabled bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"warning", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"ERROR", zapcore.ErrorLevel, true},
		{" debug ", zapcore.DebugLevel, true},
		{"off", 0, false},
		{"", 0, false},
		{"verbose", 0, false},
	}

	for _, tt := range tests {
		level, enabled := ParseLevel(tt.in)
		if enabled != tt.enabled {
			t.Errorf("ParseLevel(%q): expected enabled=%v, got %v", tt.in, tt.enabled, enabled)
			continue
		}
		if enabled && level != tt.level {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.level, level)
		}
	}
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ebb.log")

	if err := Setup("debug", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Infof("hello %s", "world")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Errorf("log file missing message, got %q", data)
	}
}

func TestSetupOffDisablesLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ebb.log")

	if err := Setup("off", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Debugf("should not appear")
	Infof("should not appear")
	Close()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled logging must not create the file")
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ebb.log")

	if err := Setup("warn", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Debugf("debug line")
	Warnf("warn line")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if strings.Contains(string(data), "debug line") {
		t.Error("debug line should be filtered at warn level")
	}
	if !strings.Contains(string(data), "warn line") {
		t.Error("warn line missing")
	}
}
