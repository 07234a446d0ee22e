package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thinglang/thing/thing"
)

const configEnvVar = "THING_CONFIG"

// Config holds the CLI settings read from config.yaml.
type Config struct {
	MaxDepth    int    `yaml:"max_depth"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Plain       bool   `yaml:"plain"`
	LogLevel    string `yaml:"log_level"`

	// Path is the file the settings came from, empty for defaults.
	Path string `yaml:"-"`
}

// ConfigValidationError aggregates config validation failures.
type ConfigValidationError struct {
	Path   string
	Issues []string
}

func (e *ConfigValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func defaultConfig() Config {
	cfg := Config{
		MaxDepth: thing.DefaultMaxDepth,
		Prompt:   "thing> ",
		LogLevel: "warn",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".thing_history")
	}
	return cfg
}

// configPath picks the config file to load. An explicit path must exist;
// the environment and XDG locations are optional.
func configPath(explicit string) (path string, required bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(configEnvVar); env != "" {
		return env, true
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "thing", "config.yaml"), false
}

func loadConfig(explicit string) (Config, error) {
	cfg := defaultConfig()
	path, required := configPath(explicit)
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := decodeConfig(file, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decodeConfig overlays the YAML document in r onto cfg. An empty document
// leaves cfg untouched.
func decodeConfig(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (c Config) validate() error {
	errs := ConfigValidationError{Path: c.Path}
	if c.MaxDepth < 1 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if strings.ContainsAny(c.Prompt, "\n\r") {
		errs.Issues = append(errs.Issues, "prompt must be a single line")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, err.Error())
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (c Config) logAttrs() []any {
	return []any{
		slog.String("path", c.Path),
		slog.Int("max_depth", c.MaxDepth),
		slog.Bool("plain", c.Plain),
		slog.String("log_level", c.LogLevel),
	}
}
