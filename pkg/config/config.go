// Package config holds the tool's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tortuga/pkg/annotate"
)

// Config is the full configuration. Every field has a usable default so the
// tool runs with no config file at all.
type Config struct {
	// Server is the base URL of the annotation service.
	Server string `yaml:"server"`
	// Prompt is printed before each interactive instruction read.
	Prompt string `yaml:"prompt"`
	// HistoryFile stores REPL line history, relative to the home directory.
	HistoryFile string `yaml:"history_file"`
	Window      Window `yaml:"window"`
}

// Window sizes the render canvas.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:      annotate.DefaultBaseURL,
		Prompt:      ">>> ",
		HistoryFile: ".tortuga_history",
		Window:      Window{Width: 640, Height: 480},
	}
}

// Load reads a YAML config file and fills unset fields with defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server == "" {
		cfg.Server = def.Server
	}
	if cfg.Prompt == "" {
		cfg.Prompt = def.Prompt
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = def.HistoryFile
	}
	if cfg.Window.Width <= 0 {
		cfg.Window.Width = def.Window.Width
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = def.Window.Height
	}
}
