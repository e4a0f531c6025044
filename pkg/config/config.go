// Package config loads formgrid's user configuration.
//
// The configuration lives in $XDG_CONFIG_HOME/formgrid/config.toml
// (~/.config/formgrid/config.toml when XDG_CONFIG_HOME is unset). Every key
// is optional; a missing file yields [Default].
//
//	[render]
//	renderer = "bootstrap"
//	include_labels = true
//	indent = "  "
//
//	[catalog]
//	path = "~/forms/catalog.toml"
//
//	[cache]
//	enabled = true
//	ttl = "24h"
//
// Command-line flags override configured values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/formgrid/pkg/errors"
)

const appName = "formgrid"

// Config is the decoded configuration file.
type Config struct {
	Render  Render  `toml:"render"`
	Catalog Catalog `toml:"catalog"`
	Cache   Cache   `toml:"cache"`
}

// Render holds rendering defaults.
type Render struct {
	Renderer      string `toml:"renderer"`
	IncludeLabels bool   `toml:"include_labels"`
	Indent        string `toml:"indent"`
}

// Catalog points at a user element catalog replacing the built-in one.
type Catalog struct {
	Path string `toml:"path"`
}

// Cache controls the render artifact cache.
type Cache struct {
	Enabled bool     `toml:"enabled"`
	TTL     Duration `toml:"ttl"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Render: Render{Renderer: "html", IncludeLabels: true, Indent: "  "},
		Cache:  Cache{Enabled: true, TTL: Duration{24 * time.Hour}},
	}
}

// Path returns the configuration file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path on top of Default. A missing file
// is not an error. Unknown keys and invalid values fail with
// VALIDATION_FAILED.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeValidation, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeValidation, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Catalog.Path = expandHome(cfg.Catalog.Path)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the configuration from Path.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var v errors.Violations
	if c.Render.Renderer == "" {
		v.Addf("render.renderer", "must not be empty")
	}
	if strings.Trim(c.Render.Indent, " \t") != "" {
		v.Addf("render.indent", "may only contain spaces and tabs")
	}
	if c.Cache.TTL.Duration < 0 {
		v.Addf("cache.ttl", "must not be negative")
	}
	return v.Err("config")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
