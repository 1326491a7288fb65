// Package config loads the optional blendview.toml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the settings file looked up in the working directory.
const FileName = "blendview.toml"

// Config is the application settings. Every field has a usable default
// so the file is optional.
type Config struct {
	Window   Window  `toml:"window"`
	StartDir string  `toml:"start_dir"`
	Preview  Preview `toml:"preview"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Preview struct {
	// Material is the placeholder material name looked up in picked
	// files when spawning a preview.
	Material string `toml:"material"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 800,
			Title:  "blendview",
		},
		Preview: Preview{Material: "Blue"},
	}
}

// Load reads path and overlays it onto the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// LoadDefault reads FileName from the working directory.
func LoadDefault() (Config, error) {
	return Load(filepath.Join(".", FileName))
}

func (c *Config) sanitize() {
	d := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = d.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = d.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Preview.Material == "" {
		c.Preview.Material = d.Preview.Material
	}
}
