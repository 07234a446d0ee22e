package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/thinglang/thing/thing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	isolateConfig(t)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	want := defaultConfig()
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.MaxDepth != thing.DefaultMaxDepth {
		t.Fatalf("expected default max depth, got %d", cfg.MaxDepth)
	}
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	isolateConfig(t)
	path := writeConfig(t, "max_depth: 32\nprompt: \"> \"\nplain: true\nlog_level: debug\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	want := defaultConfig()
	want.MaxDepth = 32
	want.Prompt = "> "
	want.Plain = true
	want.LogLevel = "debug"
	want.Path = path
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromXDGHome(t *testing.T) {
	t.Setenv(configEnvVar, "")
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, "thing")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("history_file: /tmp/h\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.HistoryFile != "/tmp/h" {
		t.Fatalf("expected history file from XDG config, got %q", cfg.HistoryFile)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	isolateConfig(t)
	t.Setenv(configEnvVar, writeConfig(t, "max_depth: 7\n"))

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.MaxDepth != 7 {
		t.Fatalf("expected max_depth 7, got %d", cfg.MaxDepth)
	}
}

func TestLoadConfigExplicitPathMustExist(t *testing.T) {
	isolateConfig(t)
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	isolateConfig(t)
	_, err := loadConfig(writeConfig(t, "max_depth: 3\ncolour: red\n"))
	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigEmptyFileKeepsDefaults(t *testing.T) {
	isolateConfig(t)
	path := writeConfig(t, "")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg, cmpopts.IgnoreFields(Config{}, "Path")); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	isolateConfig(t)
	_, err := loadConfig(writeConfig(t, "max_depth: 0\nlog_level: loud\nprompt: \"a\\nb\"\n"))

	var validation *ConfigValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ConfigValidationError, got %v", err)
	}
	if len(validation.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", validation.Issues)
	}
	if !strings.HasPrefix(err.Error(), "config validation failed (") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "warn", "error"} {
		if _, err := parseLogLevel(name); err != nil {
			t.Fatalf("parseLogLevel(%q) failed: %v", name, err)
		}
	}
	if _, err := parseLogLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestCommonFlagsOverrideConfig(t *testing.T) {
	isolateConfig(t)
	path := writeConfig(t, "max_depth: 5\nlog_level: info\n")
	scriptPath := writeScript(t, "((1));")

	err := runCommand([]string{"-config", path, "-max-depth", "2", "-log-level", "error", scriptPath})
	if err == nil || !strings.Contains(err.Error(), "nesting too deep (limit 2)") {
		t.Fatalf("expected flag to override config max_depth, got %v", err)
	}
}
