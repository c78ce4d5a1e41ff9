// Package config loads the YAML document that controls how a render
// runs: output size, recursion depth, worker band size, and where the
// resulting image is written. It is independent of the scene
// description language in internal/gmlscene, which controls what is
// rendered rather than how.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RenderConfig carries the render loop's tunable parameters (recursion
// depth, band size) plus the ambient surface a CLI driver needs
// (output dimensions, worker count, output path).
type RenderConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Depth      int    `yaml:"depth"`
	BandSize   int    `yaml:"band_size"`
	Workers    int    `yaml:"workers"`
	OutputPath string `yaml:"output"`
}

// Default matches the render loop's own defaults: depth 5, band size
// 10, GOMAXPROCS-many workers (Workers == 0 tells the caller to use
// runtime.GOMAXPROCS(0)).
func Default() RenderConfig {
	return RenderConfig{
		Width:      400,
		Height:     400,
		Depth:      5,
		BandSize:   10,
		Workers:    0,
		OutputPath: "render.png",
	}
}

// Load reads and parses a YAML render configuration, filling in
// Default()'s values for any field the document omits.
func Load(path string) (RenderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Validate rejects a configuration the render loop cannot act on.
func (c RenderConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Depth < 0 {
		return fmt.Errorf("config: depth must be non-negative, got %d", c.Depth)
	}
	if c.BandSize <= 0 {
		return fmt.Errorf("config: band_size must be positive, got %d", c.BandSize)
	}
	return nil
}
