package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hashviz/internal/api"
	"github.com/san-kum/hashviz/internal/gesture"
	"github.com/san-kum/hashviz/internal/grid"
	"github.com/san-kum/hashviz/internal/scene"
	"github.com/san-kum/hashviz/internal/spectrum"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
	DefaultTitle  = "HashUtility"

	DefaultFFTSize = 128
)

type Config struct {
	Window   WindowConfig    `yaml:"window"`
	Grid     GridConfig      `yaml:"grid"`
	Spectrum spectrum.Layout `yaml:"spectrum"`
	Audio    AudioConfig     `yaml:"audio"`
	Gesture  GestureConfig   `yaml:"gesture"`
	API      APIConfig       `yaml:"api"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

type GridConfig struct {
	Gap     float64 `yaml:"gap"`
	Size    float64 `yaml:"size"`
	Radius  float64 `yaml:"radius"`
	Gain    float64 `yaml:"gain"`
	Spring  float64 `yaml:"spring"`
	Damping float64 `yaml:"damping"`
}

type AudioConfig struct {
	Track   string `yaml:"track"`
	FFTSize int    `yaml:"fft_size"`
}

type GestureConfig struct {
	Threshold  float64 `yaml:"threshold"`
	CooldownMs int     `yaml:"cooldown_ms"`
}

type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Title:  DefaultTitle,
		},
		Grid: GridConfig{
			Gap:     grid.DefaultGap,
			Size:    grid.DefaultSize,
			Radius:  grid.DefaultRadius,
			Gain:    grid.DefaultGain,
			Spring:  grid.DefaultSpring,
			Damping: grid.DefaultDamping,
		},
		Spectrum: spectrum.DefaultLayout(),
		Audio: AudioConfig{
			FFTSize: DefaultFFTSize,
		},
		Gesture: GestureConfig{
			Threshold:  gesture.DefaultThreshold,
			CooldownMs: int(gesture.DefaultCooldown / time.Millisecond),
		},
		API: APIConfig{
			BaseURL:   api.DefaultBaseURL,
			TimeoutMs: int(api.DefaultTimeout / time.Millisecond),
		},
	}
}

// Load reads a yaml file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.GridParams().Validate(); err != nil {
		return err
	}
	if c.Grid.Gap+c.Grid.Size <= 0 {
		return fmt.Errorf("config: grid gap + size must be positive")
	}
	if c.Spectrum.Count <= 0 || c.Spectrum.Height <= 0 {
		return fmt.Errorf("config: spectrum needs a positive bar count and height")
	}
	if c.Gesture.CooldownMs < 0 {
		return fmt.Errorf("config: gesture cooldown must not be negative")
	}
	return nil
}

func (c *Config) GridParams() grid.Params {
	return grid.Params{
		Gap:     c.Grid.Gap,
		Size:    c.Grid.Size,
		Radius:  c.Grid.Radius,
		Gain:    c.Grid.Gain,
		Spring:  c.Grid.Spring,
		Damping: c.Grid.Damping,
	}
}

func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Gesture.CooldownMs) * time.Millisecond
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

// SceneOptions collects what the dispatcher needs.
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		Grid:      c.GridParams(),
		Layout:    c.Spectrum,
		Threshold: c.Gesture.Threshold,
		Cooldown:  c.Cooldown(),
	}
}
