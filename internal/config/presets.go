package config

import "sort"

// Preset overrides part of the default tuning. Zero fields are left alone.
type Preset struct {
	Description string
	Grid        GridConfig
	Threshold   float64
	FFTSize     int
}

var Presets = map[string]Preset{
	"landing": {
		Description: "the landing page as shipped",
	},
	"calm": {
		Description: "wider spacing, soft push, slow settle",
		Grid:        GridConfig{Gap: 28, Radius: 90, Gain: 1, Spring: 0.05, Damping: 0.9},
		Threshold:   120,
	},
	"frantic": {
		Description: "dense grid, strong push, easy trigger",
		Grid:        GridConfig{Gap: 12, Radius: 160, Gain: 4, Spring: 0.15, Damping: 0.8},
		Threshold:   30,
		FFTSize:     64,
	},
}

// GetPreset returns a default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Apply(p)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's non-zero fields onto c.
func (c *Config) Apply(p Preset) {
	g := p.Grid
	setIf(&c.Grid.Gap, g.Gap)
	setIf(&c.Grid.Size, g.Size)
	setIf(&c.Grid.Radius, g.Radius)
	setIf(&c.Grid.Gain, g.Gain)
	setIf(&c.Grid.Spring, g.Spring)
	setIf(&c.Grid.Damping, g.Damping)
	setIf(&c.Gesture.Threshold, p.Threshold)
	if p.FFTSize != 0 {
		c.Audio.FFTSize = p.FFTSize
	}
}

func setIf(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
