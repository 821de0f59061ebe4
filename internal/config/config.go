// Package config holds the run configuration of the authoring tool: timing
// defaults for new projects, history bounds, the onion-skin window, and
// export options. Loaded from YAML with flag overrides applied by cmd.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CanvasWidth  int `yaml:"canvasWidth"`
	CanvasHeight int `yaml:"canvasHeight"`
	FrameRate    int `yaml:"frameRate"`
	TotalFrames  int `yaml:"totalFrames"`

	// MaxHistoryDepth bounds undo memory; 0 keeps everything, otherwise the
	// oldest entry is dropped on overflow.
	MaxHistoryDepth int `yaml:"maxHistoryDepth"`

	Onion  OnionConfig  `yaml:"onion"`
	Export ExportConfig `yaml:"export"`
}

type OnionConfig struct {
	Enabled      bool    `yaml:"enabled"`
	FramesBefore int     `yaml:"framesBefore"`
	FramesAfter  int     `yaml:"framesAfter"`
	BaseAlpha    float64 `yaml:"baseAlpha"`
}

type ExportConfig struct {
	Dir           string  `yaml:"dir"`
	Workers       int     `yaml:"workers"`
	SpriteColumns int     `yaml:"spriteColumns"`
	SpriteScale   float64 `yaml:"spriteScale"`
}

// Default mirrors a fresh authoring session: 1080p canvas, 24 fps, 120
// frames, unbounded history.
func Default() Config {
	return Config{
		CanvasWidth:  1920,
		CanvasHeight: 1080,
		FrameRate:    24,
		TotalFrames:  120,
		Onion: OnionConfig{
			Enabled:      true,
			FramesBefore: 2,
			FramesAfter:  2,
			BaseAlpha:    0.3,
		},
		Export: ExportConfig{
			Dir:           "output",
			Workers:       runtime.NumCPU(),
			SpriteColumns: 8,
			SpriteScale:   0.25,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the core cannot work with.
func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("frameRate %d must be positive", c.FrameRate)
	}
	if c.TotalFrames <= 0 {
		return fmt.Errorf("totalFrames %d must be positive", c.TotalFrames)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas %dx%d must be positive", c.CanvasWidth, c.CanvasHeight)
	}
	if c.MaxHistoryDepth < 0 {
		return fmt.Errorf("maxHistoryDepth %d must not be negative", c.MaxHistoryDepth)
	}
	if c.Onion.BaseAlpha < 0 || c.Onion.BaseAlpha > 1 {
		return fmt.Errorf("onion baseAlpha %v out of range", c.Onion.BaseAlpha)
	}
	if c.Export.SpriteScale <= 0 || c.Export.SpriteScale > 1 {
		return fmt.Errorf("spriteScale %v out of range", c.Export.SpriteScale)
	}
	return nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
