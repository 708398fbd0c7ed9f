package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/ui"
)

// Config for the engine run.
type Config struct {
	Title      string       `yaml:"title"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	VSync      bool         `yaml:"vsync"`
	ClearColor colors.Color `yaml:"clear_color"`

	// StylePath is a YAML style file, reloaded when it changes on disk.
	StylePath string `yaml:"style"`
	// FontPath is a TTF/OTF file; empty uses the built-in Go font.
	FontPath string  `yaml:"font"`
	FontSize float32 `yaml:"font_size"`

	// MetricsAddr serves Prometheus metrics when set, e.g. "127.0.0.1:9464".
	MetricsAddr string `yaml:"metrics_addr"`

	UI ui.Config `yaml:"ui"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "imgrove",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
		FontSize:   13,
		UI:         ui.DefaultConfig(),
	}
}

// LoadConfig reads a YAML config over DefaultConfig. A missing file is not
// an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config %q: window size %dx%d must be positive", path, cfg.Width, cfg.Height)
	}
	if cfg.FontSize <= 0 {
		return cfg, fmt.Errorf("config %q: font_size must be positive", path)
	}
	return cfg, nil
}

// LoadStyleFile reads a style YAML file; see ui.LoadStyle.
func LoadStyleFile(path string) (ui.Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return ui.Style{}, fmt.Errorf("open style %q: %w", path, err)
	}
	defer f.Close()
	s, err := ui.LoadStyle(f)
	if err != nil {
		return ui.Style{}, fmt.Errorf("style %q: %w", path, err)
	}
	return s, nil
}
