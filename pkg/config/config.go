package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/coffle/pkg/errors"
	"github.com/arthur-debert/coffle/pkg/template"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the application configuration
type Config struct {
	Repository string   `koanf:"repository" toml:"repository"`
	Target     string   `koanf:"target" toml:"target"`
	Verbose    bool     `koanf:"verbose" toml:"verbose"`
	Color      string   `koanf:"color" toml:"color"`
	Template   Template `koanf:"template" toml:"template"`
}

// Template configures the renderer
type Template struct {
	LeftDelim  string            `koanf:"left_delim" toml:"left_delim"`
	RightDelim string            `koanf:"right_delim" toml:"right_delim"`
	Variables  map[string]string `koanf:"variables" toml:"variables"`
}

// RendererOptions converts the template section for the renderer
func (t Template) RendererOptions() template.Options {
	return template.Options{
		LeftDelim:  t.LeftDelim,
		RightDelim: t.RightDelim,
		Variables:  t.Variables,
	}
}

// postProcess expands paths and validates values
func postProcess(cfg *Config) error {
	cfg.Repository = expandHome(cfg.Repository)
	cfg.Target = expandHome(cfg.Target)

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	case "":
		cfg.Color = ColorAuto
	default:
		return errors.Newf(errors.ErrConfigParse, "invalid color mode %q (auto, always or never)", cfg.Color).
			WithDetail("color", cfg.Color)
	}

	if cfg.Template.LeftDelim == "" {
		cfg.Template.LeftDelim = template.DefaultLeftDelim
	}
	if cfg.Template.RightDelim == "" {
		cfg.Template.RightDelim = template.DefaultRightDelim
	}
	if cfg.Template.Variables == nil {
		cfg.Template.Variables = map[string]string{}
	}
	return nil
}

// expandHome replaces a leading ~ with the home directory
func expandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}
